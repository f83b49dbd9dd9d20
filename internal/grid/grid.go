package grid

import (
	"errors"
	"fmt"
)

// RuleID identifies the rule owning a cell. Inert (zero) means no rule.
type RuleID uint16

// Inert marks a cell that no rule owns.
const Inert RuleID = 0

// DefaultStrength is the conversion resistance of freshly created cells.
const DefaultStrength = 1.0

var (
	// ErrInvalidSize is returned when a grid is requested with non-positive dimensions.
	ErrInvalidSize = errors.New("grid: dimensions must be positive")
	// ErrOutOfBounds is returned when external code addresses a cell outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
)

// Cell is the smallest unit of the arena.
type Cell struct {
	State    uint8
	Rule     RuleID
	Age      uint32
	Strength float64
}

// Blank returns an inert cell.
func Blank() Cell { return Cell{Strength: DefaultStrength} }

// Active reports whether a rule owns the cell.
func (c Cell) Active() bool { return c.Rule != Inert }

// Coord addresses a cell by row and column.
type Coord struct {
	Row, Col int
}

// Grid stores the current and next cell buffers in row-major order. Reads of
// neighbour state during a generation go to the current buffer; rule-driven
// writes go to the next buffer until Swap exchanges their roles.
type Grid struct {
	rows, cols int
	cur        []Cell
	nxt        []Cell
}

// New allocates an inert grid with the given dimensions.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	g := &Grid{
		rows: rows,
		cols: cols,
		cur:  make([]Cell, rows*cols),
		nxt:  make([]Cell, rows*cols),
	}
	g.Clear()
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells in one buffer.
func (g *Grid) Len() int { return len(g.cur) }

// Index returns the linear slice index for an in-range coordinate.
func (g *Grid) Index(row, col int) int { return row*g.cols + col }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(row, col int) (int, int) {
	row = (row%g.rows + g.rows) % g.rows
	col = (col%g.cols + g.cols) % g.cols
	return row, col
}

// InBounds reports whether a coordinate addresses a cell without wrapping.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Check validates an externally supplied coordinate.
func (g *Grid) Check(row, col int) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d grid", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return nil
}

// Current returns the cell at a wrapped coordinate in the authoritative buffer.
func (g *Grid) Current(row, col int) Cell {
	row, col = g.Wrap(row, col)
	return g.cur[row*g.cols+col]
}

// CurrentRef returns a pointer into the authoritative buffer. Only the
// turmite pass and external seeding write through it.
func (g *Grid) CurrentRef(row, col int) *Cell {
	row, col = g.Wrap(row, col)
	return &g.cur[row*g.cols+col]
}

// NextRef returns a pointer into the scratch buffer at a wrapped coordinate.
func (g *Grid) NextRef(row, col int) *Cell {
	row, col = g.Wrap(row, col)
	return &g.nxt[row*g.cols+col]
}

// CurrentCells exposes the authoritative buffer for read-only iteration.
func (g *Grid) CurrentCells() []Cell { return g.cur }

// ResetNext seeds the scratch buffer from the current one: rule and strength
// carry over, state and age start from zero.
func (g *Grid) ResetNext() {
	for i, c := range g.cur {
		g.nxt[i] = Cell{Rule: c.Rule, Strength: c.Strength}
	}
}

// Swap exchanges the current and next buffers.
func (g *Grid) Swap() {
	g.cur, g.nxt = g.nxt, g.cur
}

// Clear resets both buffers to inert cells.
func (g *Grid) Clear() {
	blank := Blank()
	for i := range g.cur {
		g.cur[i] = blank
		g.nxt[i] = blank
	}
}
