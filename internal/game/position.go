package game

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Position is an immutable board snapshot. Everything derived from the
// layout (piece lists, move sets, players) is computed once by the
// constructor and never changes afterwards.
type Position struct {
	cells         [64]*Cell
	pieces        [2][]Piece
	pseudoLegal   [2]*MoveSet
	players       [2]*Player
	toMove        Color
	enPassantPawn *Piece
}

// NewPosition validates pieces and builds the position with toMove to play.
// Every violation is reported, wrapped in ErrInvalidConfig.
func NewPosition(pieces []Piece, toMove Color) (*Position, error) {
	var merr *multierror.Error
	layout := make(map[Coordinate]Piece, len(pieces))
	if !toMove.Valid() {
		merr = multierror.Append(merr, errors.Errorf("unknown side to move %d", toMove))
	}
	for _, pc := range pieces {
		if !pc.Color.Valid() || !pc.Type.Valid() {
			merr = multierror.Append(merr, errors.Errorf("unknown piece (color %d, type %d) on %s", pc.Color, pc.Type, pc.Coord))
			continue
		}
		if !pc.Coord.Valid() {
			merr = multierror.Append(merr, errors.Errorf("%s %s is off the board", pc.Color, pc.Type.Name()))
			continue
		}
		if prev, dup := layout[pc.Coord]; dup {
			merr = multierror.Append(merr, errors.Errorf("%s and %s share %s", prev.Letter(), pc.Letter(), pc.Coord))
			continue
		}
		layout[pc.Coord] = pc
	}
	if err := kingCountErrors(layout); err != nil {
		merr = multierror.Append(merr, err)
	}
	if err := configError(merr); err != nil {
		return nil, err
	}
	return newPosition(layout, toMove, nil)
}

func newPosition(layout map[Coordinate]Piece, toMove Color, enPassantPawn *Piece) (*Position, error) {
	pos := &Position{toMove: toMove, enPassantPawn: enPassantPawn}
	for i := range pos.cells {
		pos.cells[i] = emptyCells[i]
	}
	for c, pc := range layout {
		pos.cells[c.Index()] = occupiedCell(pc)
	}

	var kings [2]*Piece
	for _, cell := range pos.cells {
		pc, ok := cell.Piece()
		if !ok {
			continue
		}
		pos.pieces[pc.Color] = append(pos.pieces[pc.Color], pc)
		if pc.Type == King {
			king := pc
			kings[pc.Color] = &king
		}
	}
	if err := kingCountErrors(layout); err != nil {
		return nil, configError(multierror.Append(nil, err))
	}

	for _, color := range [...]Color{White, Black} {
		set := newMoveSet(48)
		for _, pc := range pos.pieces[color] {
			set.addAll(pc.pseudoLegalMoves(pos))
		}
		pos.pseudoLegal[color] = set
	}
	for _, color := range [...]Color{White, Black} {
		pos.players[color] = newPlayer(pos, color, *kings[color])
	}
	return pos, nil
}

func kingCountErrors(layout map[Coordinate]Piece) error {
	var counts [2]int
	for _, pc := range layout {
		if pc.Type == King {
			counts[pc.Color]++
		}
	}
	var merr *multierror.Error
	for _, color := range [...]Color{White, Black} {
		if counts[color] != 1 {
			merr = multierror.Append(merr, errors.Errorf("%s has %d kings, want 1", color, counts[color]))
		}
	}
	return merr.ErrorOrNil()
}

func configError(merr *multierror.Error) error {
	if merr == nil {
		return nil
	}
	merr.ErrorFormat = joinErrors
	if err := merr.ErrorOrNil(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

func joinErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Cell returns the cell at c, or nil when c is off the board.
func (p *Position) Cell(c Coordinate) *Cell {
	if !c.Valid() {
		return nil
	}
	return p.cells[c.Index()]
}

func (p *Position) PieceAt(c Coordinate) (Piece, bool) {
	cell := p.Cell(c)
	if cell == nil {
		return Piece{}, false
	}
	return cell.Piece()
}

func (p *Position) isOccupied(c Coordinate) bool {
	cell := p.Cell(c)
	return cell != nil && cell.Occupied()
}

// Pieces lists color's active pieces in square order.
func (p *Position) Pieces(color Color) []Piece {
	out := make([]Piece, len(p.pieces[color]))
	copy(out, p.pieces[color])
	return out
}

func (p *Position) AllPieces() []Piece {
	out := make([]Piece, 0, len(p.pieces[White])+len(p.pieces[Black]))
	out = append(out, p.pieces[White]...)
	return append(out, p.pieces[Black]...)
}

func (p *Position) ToMove() Color { return p.toMove }

func (p *Position) Player(color Color) *Player { return p.players[color] }

func (p *Position) CurrentPlayer() *Player { return p.players[p.toMove] }

// PseudoLegalMoves lists color's moves before castling and self-check rules.
func (p *Position) PseudoLegalMoves(color Color) []Move {
	return p.pseudoLegal[color].Moves()
}

// AllLegalMoves is white's legal set followed by black's.
func (p *Position) AllLegalMoves() []Move {
	out := p.players[White].legal.Moves()
	return append(out, p.players[Black].legal.Moves()...)
}

// EnPassantPawn is the pawn that double-pushed into this position, if any.
func (p *Position) EnPassantPawn() (Piece, bool) {
	if p.enPassantPawn == nil {
		return Piece{}, false
	}
	return *p.enPassantPawn, true
}

// String draws the board with rank 8 on top.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if file > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.cells[rank*8+file].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
