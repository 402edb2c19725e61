package game

import (
	"fmt"
	"strings"
)

// Piece is an immutable value. Moving a piece produces its successor via
// MoveTo; two pieces are equal when all four fields match.
type Piece struct {
	Type  PieceType
	Color Color
	Coord Coordinate
	Moved bool
}

func NewPiece(t PieceType, color Color, coord Coordinate) Piece {
	return Piece{Type: t, Color: color, Coord: coord}
}

// MoveTo returns the successor of p standing on dest. The successor is
// always marked as moved.
func (p Piece) MoveTo(dest Coordinate) Piece {
	p.Coord = dest
	p.Moved = true
	return p
}

// Letter is the piece letter, upper case for white and lower case for black.
func (p Piece) Letter() string {
	if p.Color == White {
		return p.Type.String()
	}
	return strings.ToLower(p.Type.String())
}

// ImageName is the image resource a board renderer loads for this piece.
func (p Piece) ImageName() string {
	return fmt.Sprintf("%c%s.png", p.Color.String()[0], strings.ToLower(p.Type.String()))
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s %s", p.Color, p.Type.Name(), p.Coord)
}
