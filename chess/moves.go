package chess

var (
	orthogonals = []Cell{{0, 1}, {1, 0}, {-1, 0}, {0, -1}}
	diagonals   = []Cell{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allLines    = append(append([]Cell{}, orthogonals...), diagonals...)

	knightJumps = []Cell{{2, 1}, {1, -2}, {-1, 2}, {-2, -1}, {1, 2}, {-2, 1}, {2, -1}, {-1, -2}}
	kingSteps   = allLines
)

// MovesUntilCollision walks from from along each direction. Empty cells are
// collected and the walk goes on; an enemy piece is collected and ends the
// walk; a friendly piece or the board edge ends it without being collected.
func (b *Board) MovesUntilCollision(dirs []Cell, from Cell) []Cell {
	mover, ok := b.PieceAt(from)
	if !ok {
		return nil
	}
	var moves []Cell
	for _, dir := range dirs {
		for next := from.Add(dir); InBounds(next); next = next.Add(dir) {
			if b.IsEmpty(next) {
				moves = append(moves, next)
				continue
			}
			if b.IsEnemy(next, mover.Color) {
				moves = append(moves, next)
			}
			break
		}
	}
	return moves
}

// BasicMoves applies each offset once. A target counts if it is on the
// board and not held by a friendly piece.
func (b *Board) BasicMoves(offsets []Cell, from Cell) []Cell {
	mover, ok := b.PieceAt(from)
	if !ok {
		return nil
	}
	var moves []Cell
	for _, off := range offsets {
		to := from.Add(off)
		if InBounds(to) && !b.IsFriendly(to, mover.Color) {
			moves = append(moves, to)
		}
	}
	return moves
}

// PawnDirection is the row delta of a forward pawn step: White moves up
// the board (decreasing row), Black moves down.
func PawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// PawnMoves yields a single forward step onto an empty cell and diagonal
// forward captures. There is no double step, en passant or promotion.
func (b *Board) PawnMoves(from Cell) []Cell {
	pawn, ok := b.PieceAt(from)
	if !ok {
		return nil
	}
	dir := PawnDirection(pawn.Color)
	var moves []Cell
	if ahead := from.Add(Cell{Row: dir}); b.IsEmpty(ahead) {
		moves = append(moves, ahead)
	}
	for _, side := range []int{-1, 1} {
		diag := from.Add(Cell{Row: dir, Col: side})
		if b.IsEnemy(diag, pawn.Color) {
			moves = append(moves, diag)
		}
	}
	return moves
}

// PotentialMoves returns the pseudo-legal destinations of the piece on c,
// ignoring whether the move would expose the mover's own king.
func (b *Board) PotentialMoves(c Cell) []Cell {
	p, ok := b.PieceAt(c)
	if !ok {
		return nil
	}
	switch p.Type {
	case Pawn:
		return b.PawnMoves(c)
	case Knight:
		return b.BasicMoves(knightJumps, c)
	case Bishop:
		return b.MovesUntilCollision(diagonals, c)
	case Rook:
		return b.MovesUntilCollision(orthogonals, c)
	case Queen:
		return b.MovesUntilCollision(allLines, c)
	case King:
		return b.BasicMoves(kingSteps, c)
	}
	return nil
}

// LegalMoves is PotentialMoves minus every destination that leaves the
// mover's king attacked.
func (b *Board) LegalMoves(c Cell) []Cell {
	var legal []Cell
	for _, to := range b.PotentialMoves(c) {
		if !b.SelfCheck(c, to) {
			legal = append(legal, to)
		}
	}
	return legal
}
