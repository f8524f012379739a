package chess

import (
	"fmt"
	"strings"
)

type square struct {
	piece    Piece
	occupied bool
}

// Board is the full game state. It is a plain value: copying a Board
// copies the whole grid, which is what move simulation relies on.
type Board struct {
	squares [Size][Size]square
	turn    Color
}

var backRank = [Size]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting arrangement with White to move.
func NewBoard() *Board {
	b := NewEmptyBoard(White)
	for col, pt := range backRank {
		b.Place(Piece{Type: pt, Color: Black, Cell: Cell{Row: 0, Col: col}})
		b.Place(Piece{Type: Pawn, Color: Black, Cell: Cell{Row: 1, Col: col}})
		b.Place(Piece{Type: Pawn, Color: White, Cell: Cell{Row: 6, Col: col}})
		b.Place(Piece{Type: pt, Color: White, Cell: Cell{Row: 7, Col: col}})
	}
	return b
}

// NewEmptyBoard returns a board with no pieces. Used to set up positions.
func NewEmptyBoard(turn Color) *Board {
	return &Board{turn: turn}
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

func (b *Board) Turn() Color {
	return b.turn
}

func (b *Board) SwitchTurn() {
	b.turn = b.turn.Opponent()
}

// Place puts p on p.Cell, replacing whatever was there.
func (b *Board) Place(p Piece) {
	if !InBounds(p.Cell) {
		return
	}
	b.squares[p.Cell.Row][p.Cell.Col] = square{piece: p, occupied: true}
}

func (b *Board) Remove(c Cell) {
	if !InBounds(c) {
		return
	}
	b.squares[c.Row][c.Col] = square{}
}

func InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

// PieceAt looks up the piece on c. The second result is false for empty
// or out of bounds cells.
func (b *Board) PieceAt(c Cell) (Piece, bool) {
	if !InBounds(c) {
		return Piece{}, false
	}
	sq := b.squares[c.Row][c.Col]
	return sq.piece, sq.occupied
}

func (b *Board) IsEmpty(c Cell) bool {
	if !InBounds(c) {
		return false
	}
	return !b.squares[c.Row][c.Col].occupied
}

// IsEnemy reports whether c holds a piece of the side opposing color.
func (b *Board) IsEnemy(c Cell, color Color) bool {
	p, ok := b.PieceAt(c)
	return ok && p.Color != color
}

// IsFriendly reports whether c holds a piece of color.
func (b *Board) IsFriendly(c Cell, color Color) bool {
	p, ok := b.PieceAt(c)
	return ok && p.Color == color
}

// Pieces returns every piece of color in row-major order.
func (b *Board) Pieces(color Color) []Piece {
	var out []Piece
	for row := range b.squares {
		for col := range b.squares[row] {
			sq := b.squares[row][col]
			if sq.occupied && sq.piece.Color == color {
				out = append(out, sq.piece)
			}
		}
	}
	return out
}

// KingCell finds the king of color.
func (b *Board) KingCell(color Color) (Cell, bool) {
	for _, p := range b.Pieces(color) {
		if p.Type == King {
			return p.Cell, true
		}
	}
	return Cell{}, false
}

// relocate moves the piece on from to to without any rule checks.
func (b *Board) relocate(from, to Cell) {
	sq := b.squares[from.Row][from.Col]
	sq.piece.Cell = to
	b.squares[to.Row][to.Col] = sq
	b.squares[from.Row][from.Col] = square{}
}

var pieceLetters = map[PieceType]byte{
	Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q', King: 'k',
}

// pieceLetter is the FEN letter for p, uppercase for White.
func pieceLetter(p Piece) byte {
	ch := pieceLetters[p.Type]
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// String draws the board with rank 8 on top, uppercase for White.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d ", Size-row)
		for col := 0; col < Size; col++ {
			p, ok := b.PieceAt(Cell{Row: row, Col: col})
			if !ok {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(pieceLetter(p))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcdefgh\n")
	fmt.Fprintf(&sb, "%s to move\n", b.turn)
	return sb.String()
}
