package chess

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// SelfCheck reports whether moving from -> to would leave the mover's own
// king attacked. The move is played on a scratch copy.
func (b *Board) SelfCheck(from, to Cell) bool {
	mover, ok := b.PieceAt(from)
	if !ok || !InBounds(to) {
		return false
	}
	scratch := *b
	scratch.relocate(from, to)
	return scratch.Check(mover.Color)
}

// Attacked reports whether any piece of the side opposing color has a
// potential move landing on target.
func (b *Board) Attacked(target Cell, color Color) bool {
	for _, enemy := range b.Pieces(color.Opponent()) {
		if slices.Contains(b.PotentialMoves(enemy.Cell), target) {
			return true
		}
	}
	return false
}

// Check reports whether color's king is attacked. A side without a king is
// never in check.
func (b *Board) Check(color Color) bool {
	king, ok := b.KingCell(color)
	if !ok {
		return false
	}
	return b.Attacked(king, color)
}

// Checkmate reports whether color is in check and no move of any of its
// pieces gets it out.
func (b *Board) Checkmate(color Color) bool {
	if !b.Check(color) {
		return false
	}
	for _, p := range b.Pieces(color) {
		if len(b.LegalMoves(p.Cell)) > 0 {
			return false
		}
	}
	return true
}

// Move plays from -> to for the side to move and switches the turn. On
// error the board is left untouched.
func (b *Board) Move(from, to Cell) error {
	if !InBounds(from) || !InBounds(to) {
		return ErrOutOfBounds
	}
	p, ok := b.PieceAt(from)
	if !ok {
		return ErrEmptyCell
	}
	if p.Color != b.turn {
		return fmt.Errorf("%w: %s is %s, %s to move", ErrWrongTurn, from, p.Color, b.turn)
	}
	if !slices.Contains(b.PotentialMoves(from), to) {
		return fmt.Errorf("%w: %s cannot reach %s", ErrIllegalMove, p, to)
	}
	if b.SelfCheck(from, to) {
		return fmt.Errorf("%w: %s to %s exposes the %s king", ErrIllegalMove, p, to, p.Color)
	}
	b.relocate(from, to)
	b.SwitchTurn()
	return nil
}

// MovePiece is Move reporting success as a bool.
func (b *Board) MovePiece(from, to Cell) bool {
	return b.Move(from, to) == nil
}
