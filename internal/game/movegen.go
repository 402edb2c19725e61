package game

import "chessrules/internal/shared"

// pseudoLegalMoves lists the moves p's geometry allows on pos, ignoring
// whether they expose p's own king.
func (p Piece) pseudoLegalMoves(pos *Position) []Move {
	switch p.Type {
	case King:
		return stepMoves(pos, p, shared.KingOffsets)
	case Knight:
		return stepMoves(pos, p, shared.KnightOffsets)
	case Bishop:
		return slideMoves(pos, p, shared.BishopDirections)
	case Rook:
		return slideMoves(pos, p, shared.RookDirections)
	case Queen:
		moves := slideMoves(pos, p, shared.BishopDirections)
		return append(moves, slideMoves(pos, p, shared.RookDirections)...)
	case Pawn:
		return pawnMoves(pos, p)
	default:
		return nil
	}
}

// stepMoves handles pieces that jump straight to each offset.
func stepMoves(pos *Position, p Piece, offsets []shared.Offset) []Move {
	moves := make([]Move, 0, len(offsets))
	for _, o := range offsets {
		dest := p.Coord.Offset(o)
		if !dest.Valid() {
			continue
		}
		occupant, occupied := pos.PieceAt(dest)
		switch {
		case !occupied:
			moves = append(moves, newMove(pos, MoveNormal, p, dest))
		case occupant.Color != p.Color:
			moves = append(moves, newAttackMove(pos, MoveAttack, p, dest, occupant))
		}
	}
	return moves
}

// slideMoves walks each direction until the edge or the first occupant,
// which is captured when it is an enemy.
func slideMoves(pos *Position, p Piece, directions []shared.Offset) []Move {
	var moves []Move
	for _, dir := range directions {
		for dest := p.Coord.Offset(dir); dest.Valid(); dest = dest.Offset(dir) {
			occupant, occupied := pos.PieceAt(dest)
			if !occupied {
				moves = append(moves, newMove(pos, MoveNormal, p, dest))
				continue
			}
			if occupant.Color != p.Color {
				moves = append(moves, newAttackMove(pos, MoveAttack, p, dest, occupant))
			}
			break
		}
	}
	return moves
}

// pawnMoves covers single and double pushes plus diagonal captures. There is
// no promotion, so a pawn on its last rank has no forward move.
func pawnMoves(pos *Position, p Piece) []Move {
	var moves []Move
	fwd := p.Color.Forward()

	one := p.Coord.Offset(shared.Offset{DR: fwd})
	if one.Valid() && !pos.isOccupied(one) {
		moves = append(moves, newMove(pos, MovePawn, p, one))
		if !p.Moved {
			two := one.Offset(shared.Offset{DR: fwd})
			if two.Valid() && !pos.isOccupied(two) {
				moves = append(moves, newMove(pos, MovePawnJump, p, two))
			}
		}
	}

	for _, df := range [...]int{-1, 1} {
		dest := p.Coord.Offset(shared.Offset{DF: df, DR: fwd})
		if !dest.Valid() {
			continue
		}
		if occupant, ok := pos.PieceAt(dest); ok && occupant.Color != p.Color {
			moves = append(moves, newAttackMove(pos, MovePawnAttack, p, dest, occupant))
		}
	}
	return moves
}
