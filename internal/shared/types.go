package shared

import (
	"fmt"
	"strings"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Forward is the rank delta a pawn of this color advances by.
func (c Color) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRank is the back rank the color's king and rooks start on.
func (c Color) HomeRank() Rank {
	if c == White {
		return Rank1
	}
	return Rank8
}

// PawnRank is the rank the color's pawns start on.
func (c Color) PawnRank() Rank {
	if c == White {
		return Rank2
	}
	return Rank7
}

func (c Color) Valid() bool { return c == White || c == Black }

type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) Valid() bool { return p <= King }

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return fmt.Sprintf("piece(%d)", p)
	}
}

func (p PieceType) Name() string {
	switch p {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "?"
	}
}

// File is a board column; FileNone marks a coordinate that fell off the board.
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
	FileNone File = -1
)

func (f File) String() string {
	if f < FileA || f > FileH {
		return "-"
	}
	return string(rune('a' + f))
}

// Rank is a board row; RankNone marks a coordinate that fell off the board.
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	RankNone Rank = -1
)

func (r Rank) String() string {
	if r < Rank1 || r > Rank8 {
		return "-"
	}
	return string(rune('1' + r))
}

// Coordinate names a square. Coordinates compare equal when file and rank match,
// so they are usable directly as map keys.
type Coordinate struct {
	File File
	Rank Rank
}

var NoCoordinate = Coordinate{File: FileNone, Rank: RankNone}

// NewCoordinate maps out-of-range ordinals to the None sentinels.
func NewCoordinate(file, rank int) Coordinate {
	c := NoCoordinate
	if file >= 0 && file < 8 {
		c.File = File(file)
	}
	if rank >= 0 && rank < 8 {
		c.Rank = Rank(rank)
	}
	return c
}

// CoordinateAt is the inverse of Index.
func CoordinateAt(index int) Coordinate {
	if index < 0 || index >= 64 {
		return NoCoordinate
	}
	return Coordinate{File: File(index & 7), Rank: Rank(index >> 3)}
}

func (c Coordinate) Valid() bool {
	return c.File != FileNone && c.Rank != RankNone
}

// Index returns rank*8+file, or -1 for an invalid coordinate.
func (c Coordinate) Index() int {
	if !c.Valid() {
		return -1
	}
	return int(c.Rank)*8 + int(c.File)
}

func (c Coordinate) Offset(o Offset) Coordinate {
	if !c.Valid() {
		return NoCoordinate
	}
	return NewCoordinate(int(c.File)+o.DF, int(c.Rank)+o.DR)
}

func (c Coordinate) String() string {
	if !c.Valid() {
		return "-"
	}
	return c.File.String() + c.Rank.String()
}

func (c Coordinate) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Coordinate) UnmarshalText(text []byte) error {
	parsed, ok := ParseCoordinate(string(text))
	if !ok {
		return fmt.Errorf("invalid coordinate %q", string(text))
	}
	*c = parsed
	return nil
}

func ParseCoordinate(s string) (Coordinate, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return NoCoordinate, false
	}
	file := s[0]
	rank := s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoCoordinate, false
	}
	return Coordinate{File: File(file - 'a'), Rank: Rank(rank - '1')}, true
}

// ---------------------------
// Castling
// ---------------------------

type CastlingSide uint8

const (
	CastleKingside CastlingSide = iota
	CastleQueenside
)

var CastlingSides = []CastlingSide{CastleKingside, CastleQueenside}

func (cs CastlingSide) String() string {
	switch cs {
	case CastleKingside:
		return "kingside"
	case CastleQueenside:
		return "queenside"
	default:
		return "?"
	}
}

// CastlingFiles holds the fixed files a castle touches on the home rank.
type CastlingFiles struct {
	RookFrom File
	KingTo   File
	RookTo   File
	// Transit is every square the king crosses or lands on.
	Transit []File
}

func CastlingLayout(side CastlingSide) CastlingFiles {
	if side == CastleQueenside {
		return CastlingFiles{RookFrom: FileA, KingTo: FileC, RookTo: FileD, Transit: []File{FileC, FileD}}
	}
	return CastlingFiles{RookFrom: FileH, KingTo: FileG, RookTo: FileF, Transit: []File{FileF, FileG}}
}
