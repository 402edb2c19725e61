package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// piecesFromSpecs decodes entries such as "Ke1" (white king on e1) or "qh4"
// (black queen on h4). A trailing "*" marks the piece as already moved.
func piecesFromSpecs(t *testing.T, specs ...string) []Piece {
	t.Helper()
	pieces := make([]Piece, 0, len(specs))
	for _, entry := range specs {
		moved := strings.HasSuffix(entry, "*")
		entry = strings.TrimSuffix(entry, "*")
		require.Len(t, entry, 3, "piece %q", entry)

		color := White
		letter := entry[:1]
		if strings.ToLower(letter) == letter {
			color = Black
		}
		var typ PieceType
		found := false
		for _, pt := range []PieceType{Pawn, Knight, Bishop, Rook, Queen, King} {
			if pt.String() == strings.ToUpper(letter) {
				typ, found = pt, true
			}
		}
		require.True(t, found, "piece letter %q", letter)

		coord, ok := CoordToSquare(entry[1:])
		require.True(t, ok, "square %q", entry[1:])
		pc := NewPiece(typ, color, coord)
		pc.Moved = moved
		pieces = append(pieces, pc)
	}
	return pieces
}

func mustPosition(t *testing.T, toMove Color, specs ...string) *Position {
	t.Helper()
	pos, err := NewPosition(piecesFromSpecs(t, specs...), toMove)
	require.NoError(t, err)
	return pos
}

func playMoves(t *testing.T, pos *Position, moves ...string) *Position {
	t.Helper()
	for _, mv := range moves {
		require.Len(t, mv, 4, "move %q", mv)
		m := LookupMove(pos, Sq(mv[:2]), Sq(mv[2:]))
		require.False(t, m.IsNull(), "no move %s in\n%s", mv, pos)
		tr, err := pos.CurrentPlayer().MakeMove(m)
		require.NoError(t, err)
		require.Equal(t, MoveDone, tr.Status, "move %s", mv)
		pos = tr.Position
	}
	return pos
}
