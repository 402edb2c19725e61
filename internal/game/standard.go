package game

import "chessrules/internal/shared"

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StandardPieces lists the 32 pieces of the initial setup.
func StandardPieces() []Piece {
	pieces := make([]Piece, 0, 32)
	for _, color := range [...]Color{White, Black} {
		for file, t := range backRank {
			pieces = append(pieces, NewPiece(t, color, Coordinate{File: File(file), Rank: color.HomeRank()}))
		}
		for file := shared.FileA; file <= shared.FileH; file++ {
			pieces = append(pieces, NewPiece(Pawn, color, Coordinate{File: file, Rank: color.PawnRank()}))
		}
	}
	return pieces
}

// StandardPosition is the initial setup with white to move.
func StandardPosition() *Position {
	pos, err := NewPosition(StandardPieces(), White)
	if err != nil {
		panic(err)
	}
	return pos
}
