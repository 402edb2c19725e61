package game

import (
	"iter"

	"chessrules/internal/shared"
)

// Player controls one color of a Position: its legal moves, check status,
// and the validation every move goes through before it is applied.
type Player struct {
	pos     *Position
	color   Color
	king    Piece
	legal   *MoveSet
	castles []Move
	inCheck bool
}

func newPlayer(pos *Position, color Color, king Piece) *Player {
	attacked := pos.pseudoLegal[color.Opposite()].Targets()
	p := &Player{
		pos:   pos,
		color: color,
		king:  king,
	}
	// Castling eligibility depends on the check flag, so it is set first.
	p.inCheck = attacked.Has(king.Coord)
	p.castles = p.castleMoves(attacked)
	p.legal = pos.pseudoLegal[color].clone()
	p.legal.addAll(p.castles)
	return p
}

func (p *Player) Color() Color { return p.color }

func (p *Player) King() Piece { return p.king }

func (p *Player) Position() *Position { return p.pos }

func (p *Player) Opponent() *Player { return p.pos.players[p.color.Opposite()] }

func (p *Player) IsInCheck() bool { return p.inCheck }

// LegalMoves returns pseudo-legal moves plus available castles. Moves that
// expose the king are still included; MakeMove rejects them.
func (p *Player) LegalMoves() []Move { return p.legal.Moves() }

func (p *Player) CastleMoves() []Move {
	out := make([]Move, len(p.castles))
	copy(out, p.castles)
	return out
}

// moves iterates the legal set in generation order.
func (p *Player) moves() iter.Seq[Move] { return p.legal.All() }

func (p *Player) IsMoveLegal(m Move) bool { return p.legal.Contains(m) }

// MakeMove validates m and, when it holds, returns the next position. A
// rejected move leaves the transition pointing at the current position. The
// error is reserved for moves whose execution cannot produce a position.
func (p *Player) MakeMove(m Move) (MoveTransition, error) {
	stored, ok := p.legal.Get(m.Key())
	if !ok {
		return MoveTransition{Position: p.pos, Move: m, Status: MoveIllegal}, nil
	}

	next, err := stored.Execute()
	if err != nil {
		return MoveTransition{Position: p.pos, Move: stored, Status: MoveIllegal}, err
	}

	// The mover is now the non-moving side of next.
	if next.Player(p.color).IsInCheck() {
		return MoveTransition{Position: p.pos, Move: stored, Status: MoveLeavesPlayerInCheck}, nil
	}
	return MoveTransition{Position: next, Move: stored, Status: MoveDone}, nil
}

// HasEscapeMoves reports whether at least one legal move survives MakeMove.
func (p *Player) HasEscapeMoves() bool {
	for m := range p.moves() {
		t, err := p.MakeMove(m)
		if err != nil {
			continue
		}
		if t.Status.IsDone() {
			return true
		}
	}
	return false
}

func (p *Player) IsInCheckMate() bool {
	return p.inCheck && !p.HasEscapeMoves()
}

func (p *Player) IsInStaleMate() bool {
	return !p.inCheck && !p.HasEscapeMoves()
}

// castleMoves lists the castles available against the opponent's attacked
// squares.
func (p *Player) castleMoves(attacked Bitboard) []Move {
	if p.king.Moved || p.inCheck {
		return nil
	}
	home := p.color.HomeRank()
	if p.king.Coord != (Coordinate{File: shared.FileE, Rank: home}) {
		return nil
	}

	var moves []Move
	for _, side := range shared.CastlingSides {
		layout := shared.CastlingLayout(side)
		rookSq := Coordinate{File: layout.RookFrom, Rank: home}
		if !p.pathClear(rookSq) {
			continue
		}
		rook, ok := p.pos.PieceAt(rookSq)
		if !ok || rook.Type != Rook || rook.Color != p.color || rook.Moved {
			continue
		}
		if transitAttacked(layout.Transit, home, attacked) {
			continue
		}
		kind := MoveShortCastle
		if side == shared.CastleQueenside {
			kind = MoveLongCastle
		}
		moves = append(moves, newCastleMove(p.pos, kind, p.king,
			Coordinate{File: layout.KingTo, Rank: home}, rook,
			Coordinate{File: layout.RookTo, Rank: home}))
	}
	return moves
}

func (p *Player) pathClear(rookSq Coordinate) bool {
	for _, c := range shared.Between(p.king.Coord, rookSq) {
		if p.pos.isOccupied(c) {
			return false
		}
	}
	return true
}

func transitAttacked(files []File, rank Rank, attacked Bitboard) bool {
	for _, f := range files {
		if attacked.Has(Coordinate{File: f, Rank: rank}) {
			return true
		}
	}
	return false
}
