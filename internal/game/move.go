package game

import (
	"github.com/pkg/errors"
)

type MoveKind uint8

const (
	MoveNull MoveKind = iota
	MoveNormal
	MoveAttack
	MovePawn
	MovePawnJump
	MovePawnAttack
	// MovePawnEnPassantAttack is never generated. Executing one behaves like a
	// plain pawn capture and does not remove the passed pawn.
	MovePawnEnPassantAttack
	MoveShortCastle
	MoveLongCastle
)

func (k MoveKind) String() string {
	switch k {
	case MoveNull:
		return "null"
	case MoveNormal:
		return "normal"
	case MoveAttack:
		return "attack"
	case MovePawn:
		return "pawn"
	case MovePawnJump:
		return "pawn-jump"
	case MovePawnAttack:
		return "pawn-attack"
	case MovePawnEnPassantAttack:
		return "pawn-en-passant"
	case MoveShortCastle:
		return "short-castle"
	case MoveLongCastle:
		return "long-castle"
	default:
		return "?"
	}
}

// Move is one transition out of the Position it was generated from. Only
// the fields of its kind are set: Captured for attacks, Rook and RookDest
// for castles.
type Move struct {
	Kind     MoveKind
	Piece    Piece
	Dest     Coordinate
	Captured Piece
	Rook     Piece
	RookDest Coordinate

	board *Position
}

// MoveKey identifies a move inside a move set. Moves of different kinds
// that share a piece and destination collapse to one entry.
type MoveKey struct {
	Piece Piece
	Dest  Coordinate
}

// NullMove is returned when a lookup finds nothing. Executing it fails.
var NullMove = Move{Kind: MoveNull, Piece: Piece{Coord: NoCoordinate}, Dest: NoCoordinate}

func newMove(pos *Position, kind MoveKind, p Piece, dest Coordinate) Move {
	return Move{Kind: kind, Piece: p, Dest: dest, board: pos}
}

func newAttackMove(pos *Position, kind MoveKind, p Piece, dest Coordinate, captured Piece) Move {
	m := newMove(pos, kind, p, dest)
	m.Captured = captured
	return m
}

func newCastleMove(pos *Position, kind MoveKind, king Piece, dest Coordinate, rook Piece, rookDest Coordinate) Move {
	m := newMove(pos, kind, king, dest)
	m.Rook = rook
	m.RookDest = rookDest
	return m
}

func (m Move) Key() MoveKey { return MoveKey{Piece: m.Piece, Dest: m.Dest} }

func (m Move) From() Coordinate { return m.Piece.Coord }

func (m Move) IsNull() bool { return m.Kind == MoveNull }

func (m Move) IsAttack() bool {
	switch m.Kind {
	case MoveAttack, MovePawnAttack, MovePawnEnPassantAttack:
		return true
	}
	return false
}

func (m Move) IsCastle() bool {
	return m.Kind == MoveShortCastle || m.Kind == MoveLongCastle
}

// Position is the board the move was generated from.
func (m Move) Position() *Position { return m.board }

// Execute builds the Position that follows m. The source Position is not
// modified. Every piece is copied except the mover (and, for castles, the
// rook); their successors are then placed on their destinations.
func (m Move) Execute() (*Position, error) {
	if m.IsNull() || m.board == nil {
		return nil, errors.WithStack(ErrNullMove)
	}

	b := newBuilder(m.Piece.Color.Opposite())
	for _, pc := range m.board.AllPieces() {
		if pc == m.Piece || (m.IsCastle() && pc == m.Rook) {
			continue
		}
		b.place(pc)
	}

	moved := m.Piece.MoveTo(m.Dest)
	b.place(moved)

	switch m.Kind {
	case MovePawnJump:
		b.setEnPassantPawn(moved)
	case MoveShortCastle, MoveLongCastle:
		b.place(m.Rook.MoveTo(m.RookDest))
	}

	next, err := b.build()
	if err != nil {
		return nil, errors.Wrapf(err, "execute %s", m)
	}
	return next, nil
}

// String renders the move in short algebraic form, without check marks.
func (m Move) String() string {
	switch m.Kind {
	case MoveNull:
		return "--"
	case MoveShortCastle:
		return "O-O"
	case MoveLongCastle:
		return "O-O-O"
	case MovePawn, MovePawnJump:
		return m.Dest.String()
	case MovePawnAttack, MovePawnEnPassantAttack:
		return m.Piece.Coord.File.String() + "x" + m.Dest.String()
	case MoveAttack:
		return m.Piece.Type.String() + "x" + m.Dest.String()
	default:
		return m.Piece.Type.String() + m.Dest.String()
	}
}
