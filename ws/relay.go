package ws

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/judgegodwins/chess-relay/chess"
	"github.com/samber/lo"
)

var ErrRelayClosed = errors.New("relay is not running")

const (
	SeatSpectator = "Spectator"
	ServerUser    = "server"
)

// Member describes a registered client.
type Member struct {
	Name string `json:"name"`
	Seat string `json:"seat"`
}

type member struct {
	id     string
	name   string
	sink   Sink
	joined uint64
}

type RelayOptions struct {
	// Board is the starting position. Nil means the standard arrangement.
	Board *chess.Board
	// EnforceSeats restricts Select and Move to the client seated on the
	// side to move.
	EnforceSeats bool
	// Mirror, if set, receives a copy of every broadcast.
	Mirror Sink
	// Backlog is the capacity of the action channel.
	Backlog int
}

// Relay is the single owner of the board and the client registry. All
// mutations happen on the goroutine running Run, in arrival order.
type Relay struct {
	actions chan Action
	done    chan struct{}

	board   *chess.Board
	members map[string]*member
	seats   map[chess.Color]string
	joins   uint64

	enforceSeats bool
	mirror       Sink
}

func NewRelay(opts RelayOptions) *Relay {
	board := opts.Board
	if board == nil {
		board = chess.NewBoard()
	}
	backlog := opts.Backlog
	if backlog <= 0 {
		backlog = 64
	}

	return &Relay{
		actions:      make(chan Action, backlog),
		done:         make(chan struct{}),
		board:        board,
		members:      make(map[string]*member),
		seats:        make(map[chess.Color]string),
		enforceSeats: opts.EnforceSeats,
		mirror:       opts.Mirror,
	}
}

// Run consumes actions until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	defer close(r.done)

	for {
		select {
		case <-ctx.Done():
			return
		case a := <-r.actions:
			r.handle(a)
		}
	}
}

// Submit queues an action for the relay.
func (r *Relay) Submit(ctx context.Context, a Action) error {
	select {
	case <-r.done:
		return ErrRelayClosed
	default:
	}

	select {
	case r.actions <- a:
		return nil
	case <-r.done:
		return ErrRelayClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot reads the current board state through the action stream.
func (r *Relay) Snapshot(ctx context.Context) (chess.State, error) {
	reply := make(chan chess.State, 1)
	if err := r.Submit(ctx, snapshotQuery{reply: reply}); err != nil {
		return chess.State{}, err
	}
	select {
	case st := <-reply:
		return st, nil
	case <-r.done:
		return chess.State{}, ErrRelayClosed
	case <-ctx.Done():
		return chess.State{}, ctx.Err()
	}
}

// Members lists registered clients in the order they joined.
func (r *Relay) Members(ctx context.Context) ([]Member, error) {
	reply := make(chan []Member, 1)
	if err := r.Submit(ctx, membersQuery{reply: reply}); err != nil {
		return nil, err
	}
	select {
	case ms := <-reply:
		return ms, nil
	case <-r.done:
		return nil, ErrRelayClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// mayPlay reports whether the client may act for the side to move.
func (r *Relay) mayPlay(id string) bool {
	if !r.enforceSeats {
		return true
	}
	return r.seats[r.board.Turn()] == id
}

func (r *Relay) seatOf(id string) string {
	for color, holder := range r.seats {
		if holder == id {
			return color.String()
		}
	}
	return SeatSpectator
}

func (r *Relay) listMembers() []Member {
	ms := lo.Values(r.members)
	sort.Slice(ms, func(i, j int) bool { return ms[i].joined < ms[j].joined })

	return lo.Map(ms, func(m *member, _ int) Member {
		return Member{Name: m.name, Seat: r.seatOf(m.id)}
	})
}

func (r *Relay) remove(m *member) {
	delete(r.members, m.id)
	for color, holder := range r.seats {
		if holder == m.id {
			delete(r.seats, color)
		}
	}
}

// send queues p for one member, evicting it if its queue is full.
func (r *Relay) send(m *member, p Payload) {
	if !m.sink.Deliver(p) {
		r.evict(m)
	}
}

// broadcast offers p to every member before returning. Members whose
// queues are full are evicted afterwards.
func (r *Relay) broadcast(p Payload) {
	if r.mirror != nil {
		r.mirror.Deliver(p)
	}

	var stalled []*member
	for _, m := range r.members {
		if !m.sink.Deliver(p) {
			stalled = append(stalled, m)
		}
	}

	for _, m := range stalled {
		r.evict(m)
	}
}

func (r *Relay) evict(m *member) {
	if _, ok := r.members[m.id]; !ok {
		return
	}
	log.Printf("relay: evicting %s, delivery queue full", m.name)
	r.remove(m)
	m.sink.Close()
	r.broadcast(DisconnectPayload(m.name))
}
