package chess

import "errors"

var (
	ErrOutOfBounds = errors.New("cell out of bounds")
	ErrEmptyCell   = errors.New("no piece on cell")
	ErrWrongTurn   = errors.New("piece does not belong to the side to move")
	ErrIllegalMove = errors.New("illegal move")
	ErrBadGrid     = errors.New("malformed board grid")
)
