// Command perft counts legal move sequences from the starting position,
// optionally after a list of opening moves.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"chessrules/internal/game"
)

func main() {
	depth := flag.Int("depth", getenvInt("CHESS_PERFT_DEPTH", 3), "search depth in plies")
	divide := flag.Bool("divide", false, "print the node count under each first move")
	moves := flag.String("moves", "", "comma-separated moves to play first, e.g. e2e4,e7e5")
	board := flag.Bool("board", false, "print the position before counting")
	cpuProf := flag.String("cpuprofile", "", "write a CPU profile to this file")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := playOpening(game.StandardPosition(), *moves)
	if err != nil {
		log.Fatalf("moves: %v", err)
	}
	if *board {
		fmt.Print(pos)
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Fatalf("cpuprofile: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("cpuprofile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	start := time.Now()
	if *divide {
		entries, err := game.PerftDivide(pos, *depth)
		if err != nil {
			log.Fatalf("perft: %v", err)
		}
		var total uint64
		for _, e := range entries {
			fmt.Printf("%s%s (%s): %d\n", e.Move.From(), e.Move.Dest, e.Move, e.Nodes)
			total += e.Nodes
		}
		fmt.Printf("\nmoves: %d\nTotal: %d\n", len(entries), total)
	} else {
		nodes, err := game.Perft(pos, *depth)
		if err != nil {
			log.Fatalf("perft: %v", err)
		}
		fmt.Printf("nodes: %d\n", nodes)
	}
	fmt.Fprintf(os.Stderr, "depth %d in %s\n", *depth, time.Since(start).Round(time.Millisecond))
}

func playOpening(pos *game.Position, csv string) (*game.Position, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return pos, nil
	}
	for _, raw := range strings.Split(csv, ",") {
		raw = strings.TrimSpace(raw)
		if len(raw) != 4 {
			return nil, errors.Errorf("move %q: want four characters like e2e4", raw)
		}
		from, ok := game.CoordToSquare(raw[:2])
		if !ok {
			return nil, errors.Errorf("move %q: bad origin", raw)
		}
		to, ok := game.CoordToSquare(raw[2:])
		if !ok {
			return nil, errors.Errorf("move %q: bad destination", raw)
		}
		m := game.LookupMove(pos, from, to)
		if m.IsNull() {
			return nil, errors.Wrapf(game.ErrInvalidMove, "move %q", raw)
		}
		t, err := pos.CurrentPlayer().MakeMove(m)
		if err != nil {
			return nil, errors.Wrapf(err, "move %q", raw)
		}
		if !t.Status.IsDone() {
			return nil, errors.Errorf("move %q: %s", raw, t.Status)
		}
		pos = t.Position
	}
	return pos, nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}
