package game

// LookupMove finds the legal move of either side that takes the piece on
// from to to. White's moves are searched before black's; the first match
// wins. NullMove is returned when nothing matches.
func LookupMove(pos *Position, from, to Coordinate) Move {
	for _, color := range [...]Color{White, Black} {
		for m := range pos.players[color].moves() {
			if m.From() == from && m.Dest == to {
				return m
			}
		}
	}
	return NullMove
}
