package chess

import (
	"encoding/json"
	"fmt"
)

// Size is the number of rows and columns on the board.
const Size = 8

type Color int

const (
	White Color = iota
	Black
)

var colorNames = []string{"White", "Black"}

func (c Color) String() string {
	if c < White || c > Black {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) MarshalJSON() ([]byte, error) {
	if c < White || c > Black {
		return nil, fmt.Errorf("invalid color %d", int(c))
	}
	return json.Marshal(c.String())
}

func (c *Color) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, ok := ParseColor(s)
	if !ok {
		return fmt.Errorf("unknown color %q", s)
	}
	*c = parsed
	return nil
}

func ParseColor(s string) (Color, bool) {
	for i, name := range colorNames {
		if name == s {
			return Color(i), true
		}
	}
	return White, false
}

type PieceType int

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = []string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

func (p PieceType) String() string {
	if p < Pawn || p > King {
		return fmt.Sprintf("PieceType(%d)", int(p))
	}
	return pieceTypeNames[p]
}

func (p PieceType) MarshalJSON() ([]byte, error) {
	if p < Pawn || p > King {
		return nil, fmt.Errorf("invalid piece type %d", int(p))
	}
	return json.Marshal(p.String())
}

func (p *PieceType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, ok := ParsePieceType(s)
	if !ok {
		return fmt.Errorf("unknown piece type %q", s)
	}
	*p = parsed
	return nil
}

func ParsePieceType(s string) (PieceType, bool) {
	for i, name := range pieceTypeNames {
		if name == s {
			return PieceType(i), true
		}
	}
	return Pawn, false
}

// Cell is a board coordinate. Row 0 is rank 8 and column 0 is file a.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) Add(d Cell) Cell {
	return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// Notation renders the cell in algebraic form, e.g. Cell{6, 4} is "e2".
func (c Cell) Notation() string {
	if !InBounds(c) {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+c.Col, Size-c.Row)
}

func (c Cell) String() string {
	return c.Notation()
}

type Piece struct {
	Type  PieceType `json:"piece_type"`
	Color Color     `json:"color"`
	Cell  Cell      `json:"cell"`
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.Color, p.Type, p.Cell)
}
