package game

import "github.com/pkg/errors"

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidMove       = errors.New("invalid move")
	ErrNullMove          = errors.New("null move cannot be executed")
	ErrLeavesKingInCheck = errors.New("move leaves king in check")
	ErrNoHistory         = errors.New("no move to undo")
	ErrGameOver          = errors.New("game over")
)
