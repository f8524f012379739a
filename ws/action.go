package ws

import "github.com/judgegodwins/chess-relay/chess"

// Action is one event handed to the relay. The set is closed: only the
// types in this file implement it.
type Action interface {
	action()
}

// Sink receives payloads addressed to one client. Deliver must not block;
// it reports false when the payload could not be queued.
type Sink interface {
	Deliver(p Payload) bool
	Close()
}

type ConnectAction struct {
	ClientID string
	Addr     string
	Sink     Sink
}

type DisconnectAction struct {
	ClientID string
	Addr     string
}

type SelectAction struct {
	ClientID string
	Cell     chess.Cell
}

type MoveAction struct {
	ClientID string
	From     chess.Cell
	To       chess.Cell
}

type MsgAction struct {
	ClientID string
	User     string
	Text     string
}

// ResetAction puts the starting arrangement back and broadcasts it.
type ResetAction struct{}

type snapshotQuery struct {
	reply chan chess.State
}

type membersQuery struct {
	reply chan []Member
}

func (ConnectAction) action()    {}
func (DisconnectAction) action() {}
func (SelectAction) action()     {}
func (MoveAction) action()       {}
func (MsgAction) action()        {}
func (ResetAction) action()      {}
func (snapshotQuery) action()    {}
func (membersQuery) action()     {}
