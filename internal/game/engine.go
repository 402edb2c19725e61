// Package game implements the chess rules core: immutable positions, move
// generation and validation, and an Engine session that walks a game
// forward one position at a time.
package game

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Engine holds the mutable state of one game on top of immutable positions.
// It is not safe for concurrent use.
type Engine struct {
	start    *Position
	pos      *Position
	history  []*Position
	played   []Move
	lastNote string
	status   gameStatus
}

// MoveRequest is passed in by an external layer to request a move.
type MoveRequest struct {
	From Coordinate
	To   Coordinate
}

// NewEngine creates an engine at the standard starting position.
func NewEngine() *Engine {
	return NewEngineFrom(StandardPosition())
}

// NewEngineFrom creates an engine whose game, and every Reset, starts at pos.
func NewEngineFrom(pos *Position) *Engine {
	e := &Engine{start: pos}
	e.restart()
	return e
}

func (e *Engine) restart() {
	e.pos = e.start
	e.history = e.history[:0]
	e.played = e.played[:0]
	e.lastNote = "New game"
	e.updateGameStatus()
}

// Reset returns the engine to its starting position.
func (e *Engine) Reset() error {
	e.restart()
	return nil
}

func (e *Engine) Position() *Position { return e.pos }

// Move looks up the move for req and applies it for the side to move.
func (e *Engine) Move(req MoveRequest) error {
	if e.status.GameOver {
		return errors.Wrap(ErrGameOver, e.status.Status)
	}
	m := LookupMove(e.pos, req.From, req.To)
	if m.IsNull() {
		return errors.Wrapf(ErrInvalidMove, "no move from %s to %s", req.From, req.To)
	}

	t, err := e.pos.CurrentPlayer().MakeMove(m)
	if err != nil {
		return err
	}
	switch t.Status {
	case MoveIllegal:
		return errors.Wrapf(ErrInvalidMove, "%s to move, %s is not playable", e.pos.ToMove(), m)
	case MoveLeavesPlayerInCheck:
		return errors.Wrapf(ErrLeavesKingInCheck, "%s", m)
	}

	e.history = append(e.history, e.pos)
	e.played = append(e.played, t.Move)
	e.pos = t.Position
	e.lastNote = t.Move.String()
	e.updateGameStatus()
	return nil
}

// Undo takes back the last applied move.
func (e *Engine) Undo() error {
	n := len(e.history)
	if n == 0 {
		return ErrNoHistory
	}
	undone := e.played[n-1]
	e.pos = e.history[n-1]
	e.history = e.history[:n-1]
	e.played = e.played[:n-1]
	e.lastNote = "Undo " + undone.String()
	e.updateGameStatus()
	return nil
}

// LegalDestinations lists the squares the piece on from can reach with a
// move that survives validation. It is empty when from does not hold a
// piece of the side to move.
func (e *Engine) LegalDestinations(from Coordinate) []Coordinate {
	var out []Coordinate
	for _, m := range e.playableMoves() {
		if m.From() == from {
			out = append(out, m.Dest)
		}
	}
	return out
}

// playableMoves are the current player's moves that MakeMove accepts, in
// square order.
func (e *Engine) playableMoves() []Move {
	player := e.pos.CurrentPlayer()
	var out []Move
	for m := range player.moves() {
		t, err := player.MakeMove(m)
		if err != nil || !t.Status.IsDone() {
			continue
		}
		out = append(out, t.Move)
	}
	slices.SortFunc(out, compareMoves)
	return out
}

func (e *Engine) updateGameStatus() {
	e.status = evaluateStatus(e.pos)
}

// State returns a serializable snapshot of the game.
func (e *Engine) State() BoardState {
	winnerName := ""
	if e.status.HasWinner {
		winnerName = e.status.Winner.String()
	}

	state := BoardState{
		Pieces:     make([]PieceState, 0, 32),
		Turn:       e.pos.ToMove(),
		TurnName:   e.pos.ToMove().String(),
		LastNote:   e.lastNote,
		InCheck:    e.status.InCheck,
		GameOver:   e.status.GameOver,
		Status:     e.status.Status,
		HasWinner:  e.status.HasWinner,
		Winner:     e.status.Winner,
		WinnerName: winnerName,
		History:    make([]string, 0, len(e.played)),
		LegalMoves: []MoveState{},
	}
	for _, pc := range e.pos.AllPieces() {
		state.Pieces = append(state.Pieces, pieceState(pc))
	}
	if pawn, ok := e.pos.EnPassantPawn(); ok {
		state.EnPassant = pawn.Coord.String()
	}
	for _, m := range e.played {
		state.History = append(state.History, m.String())
	}
	for _, m := range e.playableMoves() {
		state.LegalMoves = append(state.LegalMoves, moveState(m))
	}
	return state
}
