package game

// builder collects the pieces of a Position under construction. It lives
// only for the duration of one move execution.
type builder struct {
	pieces        map[Coordinate]Piece
	toMove        Color
	enPassantPawn *Piece
}

func newBuilder(toMove Color) *builder {
	return &builder{
		pieces: make(map[Coordinate]Piece, 32),
		toMove: toMove,
	}
}

// place puts p on its square, replacing whatever stood there.
func (b *builder) place(p Piece) *builder {
	b.pieces[p.Coord] = p
	return b
}

func (b *builder) setEnPassantPawn(p Piece) *builder {
	b.enPassantPawn = &p
	return b
}

func (b *builder) build() (*Position, error) {
	return newPosition(b.pieces, b.toMove, b.enPassantPawn)
}
