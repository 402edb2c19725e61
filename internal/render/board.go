// Package render draws positions as SVG.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"chessrules/internal/game"
	"chessrules/internal/shared"
)

const (
	LightSquare     = "#FFFACD"
	DarkSquare      = "#593E1A"
	HighlightSquare = "#7FB3D5"
)

// Options controls board drawing.
type Options struct {
	// SquareSize is the edge of one square in pixels. Zero means 64.
	SquareSize int
	// Flipped draws the board from black's side.
	Flipped bool
	// Highlight lists squares drawn in HighlightSquare.
	Highlight []game.Coordinate
}

var glyphs = map[game.Color]map[game.PieceType]string{
	game.White: {
		game.King: "♔", game.Queen: "♕", game.Rook: "♖",
		game.Bishop: "♗", game.Knight: "♘", game.Pawn: "♙",
	},
	game.Black: {
		game.King: "♚", game.Queen: "♛", game.Rook: "♜",
		game.Bishop: "♝", game.Knight: "♞", game.Pawn: "♟",
	},
}

// Glyph is the unicode chess symbol for pc.
func Glyph(pc game.Piece) string {
	return glyphs[pc.Color][pc.Type]
}

// Board writes pos as a standalone SVG document to w.
func Board(w io.Writer, pos *game.Position, opts Options) {
	size := opts.SquareSize
	if size <= 0 {
		size = 64
	}
	highlight := make(map[game.Coordinate]bool, len(opts.Highlight))
	for _, c := range opts.Highlight {
		highlight[c] = true
	}

	canvas := svg.New(w)
	canvas.Start(size*8, size*8)
	canvas.Title(fmt.Sprintf("%s to move", pos.ToMove()))

	canvas.Gid("squares")
	for idx := 0; idx < 64; idx++ {
		c := shared.CoordinateAt(idx)
		x, y := origin(c, size, opts.Flipped)
		fill := DarkSquare
		if (int(c.File)+int(c.Rank))%2 == 1 {
			fill = LightSquare
		}
		if highlight[c] {
			fill = HighlightSquare
		}
		canvas.Rect(x, y, size, size, "fill:"+fill)
	}
	canvas.Gend()

	canvas.Gid("pieces")
	for _, pc := range pos.AllPieces() {
		x, y := origin(pc.Coord, size, opts.Flipped)
		canvas.Text(x+size/2, y+size*4/5, Glyph(pc),
			fmt.Sprintf("font-size:%dpx;text-anchor:middle", size*3/4),
			fmt.Sprintf(`data-square="%s"`, pc.Coord))
	}
	canvas.Gend()

	canvas.End()
}

// origin is the top-left pixel of c's square.
func origin(c game.Coordinate, size int, flipped bool) (int, int) {
	col := int(c.File)
	row := 7 - int(c.Rank)
	if flipped {
		col = 7 - col
		row = 7 - row
	}
	return col * size, row * size
}
