package game

import "math/bits"

// Bitboard is a set of squares, one bit per square index.
type Bitboard uint64

func BB(c Coordinate) Bitboard {
	if !c.Valid() {
		return 0
	}
	return 1 << uint(c.Index())
}

func (b Bitboard) Has(c Coordinate) bool { return b&BB(c) != 0 }

func (b Bitboard) Add(c Coordinate) Bitboard { return b | BB(c) }

func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }
