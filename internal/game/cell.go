package game

// Cell is the content of one square of a Position. Cells never change; a
// square whose content differs between two positions holds different cells.
type Cell struct {
	coord    Coordinate
	piece    Piece
	occupied bool
}

// emptyCells holds one shared empty cell per square, built once at init.
var emptyCells = func() [64]*Cell {
	var cells [64]*Cell
	for i := range cells {
		cells[i] = &Cell{coord: coordinateAt(i)}
	}
	return cells
}()

func emptyCell(c Coordinate) *Cell {
	return emptyCells[c.Index()]
}

func occupiedCell(p Piece) *Cell {
	return &Cell{coord: p.Coord, piece: p, occupied: true}
}

func (c *Cell) Coordinate() Coordinate { return c.coord }

func (c *Cell) Occupied() bool { return c.occupied }

// Piece returns the occupant, if any.
func (c *Cell) Piece() (Piece, bool) {
	return c.piece, c.occupied
}

func (c *Cell) String() string {
	if !c.occupied {
		return "-"
	}
	return c.piece.Letter()
}
