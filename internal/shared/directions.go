package shared

// Offset is a file/rank delta.
type Offset struct {
	DF int
	DR int
}

var (
	KingOffsets = []Offset{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	KnightOffsets = []Offset{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
	BishopDirections = []Offset{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	RookDirections   = []Offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

// DirectionOf returns the unit step from one coordinate toward another, and
// false when the two are not on a shared rank, file, or diagonal.
func DirectionOf(from, to Coordinate) (Offset, bool) {
	if !from.Valid() || !to.Valid() || from == to {
		return Offset{}, false
	}
	df := int(to.File) - int(from.File)
	dr := int(to.Rank) - int(from.Rank)
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return Offset{}, false
	}
	return Offset{DF: normalize(df), DR: normalize(dr)}, true
}

// Between lists the coordinates strictly between from and to along a line,
// or nil when they are not aligned.
func Between(from, to Coordinate) []Coordinate {
	step, ok := DirectionOf(from, to)
	if !ok {
		return nil
	}
	var squares []Coordinate
	for c := from.Offset(step); c.Valid() && c != to; c = c.Offset(step) {
		squares = append(squares, c)
	}
	return squares
}

func normalize(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
