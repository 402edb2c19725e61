package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullMoveCannotExecute(t *testing.T) {
	next, err := NullMove.Execute()
	assert.Nil(t, next)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNullMove))
	assert.True(t, NullMove.IsNull())
	assert.Equal(t, "--", NullMove.String())
}

func TestExecuteLeavesSourceUntouched(t *testing.T) {
	pos := StandardPosition()
	before := pos.String()

	m := LookupMove(pos, Sq("g1"), Sq("f3"))
	require.Equal(t, MoveNormal, m.Kind)
	require.Same(t, pos, m.Position())

	next, err := m.Execute()
	require.NoError(t, err)
	assert.Equal(t, before, pos.String())
	assert.NotSame(t, pos, next)
	assert.Equal(t, Black, next.ToMove())
	assert.Equal(t, White, pos.ToMove())

	knight, ok := next.PieceAt(Sq("f3"))
	require.True(t, ok)
	assert.True(t, knight.Moved)
	_, ok = next.PieceAt(Sq("g1"))
	assert.False(t, ok)
}

func TestPawnJumpRecordsEnPassantPawn(t *testing.T) {
	next := playMoves(t, StandardPosition(), "d2d4")
	pawn, ok := next.EnPassantPawn()
	require.True(t, ok)
	assert.Equal(t, Piece{Type: Pawn, Color: White, Coord: Sq("d4"), Moved: true}, pawn)

	after := playMoves(t, next, "g8f6")
	_, ok = after.EnPassantPawn()
	assert.False(t, ok)
}

func TestCaptureRemovesCapturedPiece(t *testing.T) {
	pos := playMoves(t, StandardPosition(), "e2e4", "d7d5")
	m := LookupMove(pos, Sq("e4"), Sq("d5"))
	require.Equal(t, MovePawnAttack, m.Kind)
	assert.Equal(t, NewPiece(Pawn, Black, Sq("d5")).MoveTo(Sq("d5")), m.Captured)
	assert.True(t, m.IsAttack())

	next := playMoves(t, pos, "e4d5")
	assert.Len(t, next.Pieces(Black), 15)
	assert.Len(t, next.Pieces(White), 16)
	pc, _ := next.PieceAt(Sq("d5"))
	assert.Equal(t, White, pc.Color)
}

func TestEnPassantKindExecutesAsPlainCapture(t *testing.T) {
	pos := mustPosition(t, White, "Ke1", "ke8", "Pe5*", "pd5*", "pd6*")
	pawn, _ := pos.PieceAt(Sq("e5"))
	target, _ := pos.PieceAt(Sq("d6"))

	m := newAttackMove(pos, MovePawnEnPassantAttack, pawn, Sq("d6"), target)
	next, err := m.Execute()
	require.NoError(t, err)

	_, passedStillThere := next.PieceAt(Sq("d5"))
	assert.True(t, passedStillThere)
	assert.Len(t, next.Pieces(Black), 2)
	assert.Equal(t, "exd6", m.String())
}

func TestExecuteFailsWhenKingIsCaptured(t *testing.T) {
	pos := mustPosition(t, White, "Ke1", "Qe7", "ke8")
	m := LookupMove(pos, Sq("e7"), Sq("e8"))
	require.Equal(t, MoveAttack, m.Kind)

	_, err := m.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	_, err = pos.CurrentPlayer().MakeMove(m)
	assert.Error(t, err)
}

func TestMoveNotation(t *testing.T) {
	pos := playMoves(t, StandardPosition(), "e2e4", "d7d5", "g1f3", "c8g4", "f1e2", "g4f3")
	tests := []struct {
		from, to string
		want     string
	}{
		{"e4", "d5", "exd5"},
		{"e4", "e5", "e5"},
		{"e2", "f3", "Bxf3"},
		{"e2", "d3", "Bd3"},
		{"d2", "d4", "d4"},
		{"g2", "f3", "gxf3"},
		{"e1", "f1", "Kf1"},
	}
	for _, tt := range tests {
		m := LookupMove(pos, Sq(tt.from), Sq(tt.to))
		require.False(t, m.IsNull(), "%s%s", tt.from, tt.to)
		assert.Equal(t, tt.want, m.String())
	}
}

func TestMoveKindNames(t *testing.T) {
	assert.Equal(t, "pawn-jump", MovePawnJump.String())
	assert.Equal(t, "short-castle", MoveShortCastle.String())
	assert.Equal(t, "leaves player in check", MoveLeavesPlayerInCheck.String())
	assert.True(t, MoveDone.IsDone())
	assert.False(t, MoveIllegal.IsDone())
}
