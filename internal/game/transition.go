package game

// MoveStatus is the outcome of Player.MakeMove.
type MoveStatus uint8

const (
	MoveDone MoveStatus = iota
	MoveIllegal
	MoveLeavesPlayerInCheck
)

func (s MoveStatus) IsDone() bool { return s == MoveDone }

func (s MoveStatus) String() string {
	switch s {
	case MoveDone:
		return "done"
	case MoveIllegal:
		return "illegal move"
	case MoveLeavesPlayerInCheck:
		return "leaves player in check"
	default:
		return "?"
	}
}

// MoveTransition pairs a move with its outcome. Position is the next
// position when Status is MoveDone and the unchanged one otherwise.
type MoveTransition struct {
	Position *Position
	Move     Move
	Status   MoveStatus
}
