package game

import "chessrules/internal/shared"

type (
	Color        = shared.Color
	PieceType    = shared.PieceType
	File         = shared.File
	Rank         = shared.Rank
	Coordinate   = shared.Coordinate
	CastlingSide = shared.CastlingSide
)

const (
	White = shared.White
	Black = shared.Black

	Pawn   = shared.Pawn
	Knight = shared.Knight
	Bishop = shared.Bishop
	Rook   = shared.Rook
	Queen  = shared.Queen
	King   = shared.King
)

var NoCoordinate = shared.NoCoordinate

// CoordToSquare parses algebraic square names such as "e4".
func CoordToSquare(coord string) (Coordinate, bool) {
	return shared.ParseCoordinate(coord)
}

// Sq is CoordToSquare for literals known to be valid. It panics otherwise.
func Sq(coord string) Coordinate {
	c, ok := shared.ParseCoordinate(coord)
	if !ok {
		panic("game: invalid square " + coord)
	}
	return c
}

func coordinateAt(index int) Coordinate { return shared.CoordinateAt(index) }
