package chess

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid is the wire form of the board: Size rows of Size optional pieces.
type Grid [][]*Piece

// State is the snapshot broadcast after every accepted move.
type State struct {
	Board     Grid  `json:"board"`
	Check     bool  `json:"check"`
	Checkmate bool  `json:"checkmate"`
	Turn      Color `json:"turn"`
}

func (b *Board) Grid() Grid {
	grid := make(Grid, Size)
	for row := range grid {
		grid[row] = make([]*Piece, Size)
		for col := range grid[row] {
			if p, ok := b.PieceAt(Cell{Row: row, Col: col}); ok {
				grid[row][col] = &p
			}
		}
	}
	return grid
}

// State evaluates check and checkmate for the side to move.
func (b *Board) State() State {
	return State{
		Board:     b.Grid(),
		Check:     b.Check(b.turn),
		Checkmate: b.Checkmate(b.turn),
		Turn:      b.turn,
	}
}

// FEN renders the position in Forsyth-Edwards notation. Castling and en
// passant do not exist here, so those fields are always "-".
func (b *Board) FEN() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < Size; col++ {
			p, ok := b.PieceAt(Cell{Row: row, Col: col})
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pieceLetter(p))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	side := "w"
	if b.turn == Black {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s - - 0 1", side)
	return sb.String()
}

// FromGrid rebuilds a board from its wire form. Each piece must sit in the
// slot its own cell names.
func FromGrid(grid Grid, turn Color) (*Board, error) {
	if len(grid) != Size {
		return nil, fmt.Errorf("%w: %d rows", ErrBadGrid, len(grid))
	}
	b := NewEmptyBoard(turn)
	for row := range grid {
		if len(grid[row]) != Size {
			return nil, fmt.Errorf("%w: row %d has %d cells", ErrBadGrid, row, len(grid[row]))
		}
		for col, p := range grid[row] {
			if p == nil {
				continue
			}
			if p.Cell != (Cell{Row: row, Col: col}) {
				return nil, fmt.Errorf("%w: %s stored at (%d,%d)", ErrBadGrid, p, row, col)
			}
			b.Place(*p)
		}
	}
	return b, nil
}
