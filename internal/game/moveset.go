package game

import "iter"

// MoveSet is a deduplicated collection of moves keyed by MoveKey. It keeps
// insertion order so iteration is deterministic.
type MoveSet struct {
	moves []Move
	index map[MoveKey]int
}

func newMoveSet(capacity int) *MoveSet {
	return &MoveSet{
		moves: make([]Move, 0, capacity),
		index: make(map[MoveKey]int, capacity),
	}
}

// add inserts m unless a move with the same key is already present.
func (s *MoveSet) add(m Move) bool {
	k := m.Key()
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.moves)
	s.moves = append(s.moves, m)
	return true
}

func (s *MoveSet) addAll(moves []Move) {
	for _, m := range moves {
		s.add(m)
	}
}

func (s *MoveSet) clone() *MoveSet {
	out := newMoveSet(len(s.moves) + 2)
	out.addAll(s.moves)
	return out
}

func (s *MoveSet) Len() int { return len(s.moves) }

func (s *MoveSet) Contains(m Move) bool {
	_, ok := s.index[m.Key()]
	return ok
}

func (s *MoveSet) Get(k MoveKey) (Move, bool) {
	i, ok := s.index[k]
	if !ok {
		return NullMove, false
	}
	return s.moves[i], true
}

// Moves returns a copy of the moves in insertion order.
func (s *MoveSet) Moves() []Move {
	out := make([]Move, len(s.moves))
	copy(out, s.moves)
	return out
}

// All yields the moves in insertion order without copying them.
func (s *MoveSet) All() iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for _, m := range s.moves {
			if !yield(m) {
				return
			}
		}
	}
}

// Targets is the set of destination squares.
func (s *MoveSet) Targets() Bitboard {
	var bb Bitboard
	for _, m := range s.moves {
		bb = bb.Add(m.Dest)
	}
	return bb
}
