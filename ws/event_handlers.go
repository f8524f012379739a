package ws

import (
	"fmt"
	"log"

	"github.com/judgegodwins/chess-relay/chess"
)

func (r *Relay) handle(a Action) {
	switch a := a.(type) {
	case ConnectAction:
		r.connect(a)
	case DisconnectAction:
		if m, ok := r.members[a.ClientID]; ok {
			r.remove(m)
			r.broadcast(DisconnectPayload(m.name))
		}
	case MsgAction:
		if _, ok := r.members[a.ClientID]; ok {
			r.broadcast(MsgPayload(a.User, a.Text))
		}
	case SelectAction:
		r.selectCell(a)
	case MoveAction:
		r.move(a)
	case ResetAction:
		r.board = chess.NewBoard()
		r.broadcast(BoardPayload(r.board.State()))
	case snapshotQuery:
		a.reply <- r.board.State()
	case membersQuery:
		a.reply <- r.listMembers()
	default:
		log.Printf("relay: unhandled action %T", a)
	}
}

func (r *Relay) connect(a ConnectAction) {
	if _, ok := r.members[a.ClientID]; ok {
		return
	}

	r.joins++
	m := &member{id: a.ClientID, name: a.Addr, sink: a.Sink, joined: r.joins}
	r.members[m.id] = m

	for _, color := range []chess.Color{chess.White, chess.Black} {
		if _, taken := r.seats[color]; !taken {
			r.seats[color] = m.id
			break
		}
	}

	r.broadcast(ConnectPayload(m.name))

	if _, ok := r.members[m.id]; !ok {
		return
	}
	r.send(m, MsgPayload(ServerUser, fmt.Sprintf("Welcome! You are playing %s.", r.seatOf(m.id))))
	r.send(m, BoardPayload(r.board.State()))
}

func (r *Relay) selectCell(a SelectAction) {
	m, ok := r.members[a.ClientID]
	if !ok {
		return
	}

	cells := []chess.Cell{}
	if r.board.IsFriendly(a.Cell, r.board.Turn()) && r.mayPlay(m.id) {
		cells = append(cells, r.board.LegalMoves(a.Cell)...)
	}

	r.send(m, MovesPayload(cells))
}

func (r *Relay) move(a MoveAction) {
	m, ok := r.members[a.ClientID]
	if !ok {
		return
	}

	if !r.mayPlay(m.id) {
		log.Printf("relay: %s tried to move for %s", m.name, r.board.Turn())
		return
	}

	if err := r.board.Move(a.From, a.To); err != nil {
		log.Printf("relay: rejected move %s-%s from %s: %v", a.From, a.To, m.name, err)
		return
	}

	r.broadcast(BoardPayload(r.board.State()))

	if _, ok := r.members[m.id]; ok {
		r.send(m, MoveAckPayload())
	}
}
