package game

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Perft counts the move sequences of length depth playable from pos.
func Perft(pos *Position, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	var nodes uint64
	player := pos.CurrentPlayer()
	for m := range player.moves() {
		t, err := player.MakeMove(m)
		if err != nil {
			return 0, errors.Wrapf(err, "perft %s", m)
		}
		if !t.Status.IsDone() {
			continue
		}
		n, err := Perft(t.Position, depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

type PerftEntry struct {
	Move  Move
	Nodes uint64
}

// PerftDivide splits the perft count by first move, ordered by origin
// square then destination square.
func PerftDivide(pos *Position, depth int) ([]PerftEntry, error) {
	if depth <= 0 {
		return nil, nil
	}
	var entries []PerftEntry
	player := pos.CurrentPlayer()
	for m := range player.moves() {
		t, err := player.MakeMove(m)
		if err != nil {
			return nil, errors.Wrapf(err, "perft %s", m)
		}
		if !t.Status.IsDone() {
			continue
		}
		n, err := Perft(t.Position, depth-1)
		if err != nil {
			return nil, err
		}
		entries = append(entries, PerftEntry{Move: t.Move, Nodes: n})
	}
	slices.SortFunc(entries, func(a, b PerftEntry) int {
		return compareMoves(a.Move, b.Move)
	})
	return entries, nil
}

func compareMoves(a, b Move) int {
	if d := a.From().Index() - b.From().Index(); d != 0 {
		return d
	}
	return a.Dest.Index() - b.Dest.Index()
}
