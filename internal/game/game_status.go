package game

const (
	StatusOngoing   = "ongoing"
	StatusCheck     = "check"
	StatusCheckmate = "checkmate"
	StatusStalemate = "stalemate"
)

type gameStatus struct {
	InCheck   bool
	GameOver  bool
	HasWinner bool
	Winner    Color
	Status    string
}

func evaluateStatus(pos *Position) gameStatus {
	current := pos.CurrentPlayer()
	st := gameStatus{
		InCheck: current.IsInCheck(),
		Status:  StatusOngoing,
	}
	if st.InCheck {
		st.Status = StatusCheck
	}

	if !current.HasEscapeMoves() {
		st.GameOver = true
		if st.InCheck {
			st.Status = StatusCheckmate
			st.HasWinner = true
			st.Winner = current.Color().Opposite()
		} else {
			st.Status = StatusStalemate
		}
	}
	return st
}
