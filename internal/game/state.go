package game

// PieceState is a serializable representation of a Piece.
type PieceState struct {
	Color     Color      `json:"color"`
	ColorName string     `json:"colorName"`
	Type      PieceType  `json:"type"`
	TypeName  string     `json:"typeName"`
	Square    Coordinate `json:"square"`
	Moved     bool       `json:"moved"`
	Image     string     `json:"image"`
}

// MoveState is a serializable representation of a Move.
type MoveState struct {
	From     Coordinate `json:"from"`
	To       Coordinate `json:"to"`
	Kind     string     `json:"kind"`
	Notation string     `json:"notation"`
}

// BoardState is a serializable representation of the game state.
type BoardState struct {
	Pieces     []PieceState `json:"pieces"`
	Turn       Color        `json:"turn"`
	TurnName   string       `json:"turnName"`
	LastNote   string       `json:"lastNote"`
	InCheck    bool         `json:"inCheck"`
	GameOver   bool         `json:"gameOver"`
	Status     string       `json:"status"`
	HasWinner  bool         `json:"hasWinner"`
	Winner     Color        `json:"winner"`
	WinnerName string       `json:"winnerName"`
	EnPassant  string       `json:"enPassant"`
	History    []string     `json:"history"`
	LegalMoves []MoveState  `json:"legalMoves"`
}

func pieceState(pc Piece) PieceState {
	return PieceState{
		Color:     pc.Color,
		ColorName: pc.Color.String(),
		Type:      pc.Type,
		TypeName:  pc.Type.Name(),
		Square:    pc.Coord,
		Moved:     pc.Moved,
		Image:     pc.ImageName(),
	}
}

func moveState(m Move) MoveState {
	return MoveState{
		From:     m.From(),
		To:       m.Dest,
		Kind:     m.Kind.String(),
		Notation: m.String(),
	}
}
