package rules

import (
	"math/rand/v2"

	"ca-arena/internal/grid"
)

// Transition is the view a family gets of one cell during a generation.
// Reads go to the current buffer; Set and Keep write the cell's own next
// state, Emit hands outward writes to the scheduler's sink.
type Transition struct {
	Grid *grid.Grid
	Rand *rand.Rand
	Gen  uint64

	Row, Col int
	Cell     grid.Cell
	Rule     *Def

	next     *grid.Cell
	sink     grid.Sink
	isolated bool
}

// NewTransition prepares a reusable context bound to a grid, RNG and sink.
func NewTransition(g *grid.Grid, rng *rand.Rand, sink grid.Sink) *Transition {
	return &Transition{Grid: g, Rand: rng, sink: sink}
}

// Bind points the context at a new cell.
func (t *Transition) Bind(gen uint64, row, col int, cell grid.Cell, def *Def) {
	t.Gen = gen
	t.Row, t.Col = row, col
	t.Cell = cell
	t.Rule = def
	t.next = t.Grid.NextRef(row, col)
}

// SetSink swaps the destination for outward writes.
func (t *Transition) SetSink(s grid.Sink) { t.sink = s }

// SetIsolated confines outward writes to inert cells and cells of the same
// rule. The scheduler sets it while interactions are off.
func (t *Transition) SetIsolated(on bool) { t.isolated = on }

// Blocked reports whether the cell at an offset belongs to another rule that
// this cell may not touch.
func (t *Transition) Blocked(dr, dc int) bool {
	if !t.isolated {
		return false
	}
	c := t.Peek(dr, dc)
	return c.Rule != grid.Inert && c.Rule != t.Rule.ID
}

// Set writes the cell's own next state.
func (t *Transition) Set(state uint8) { t.next.State = state }

// SetBool writes state 1 when on and 0 otherwise.
func (t *Transition) SetBool(on bool) {
	if on {
		t.Set(1)
	} else {
		t.Set(0)
	}
}

// Keep carries the current state into the next generation.
func (t *Transition) Keep() { t.next.State = t.Cell.State }

// Emit writes state and this cell's rule at a wrapped offset. Blocked
// targets are left alone.
func (t *Transition) Emit(dr, dc int, state uint8) {
	if t.Blocked(dr, dc) {
		return
	}
	r, c := t.Grid.Wrap(t.Row+dr, t.Col+dc)
	t.sink.Put(grid.Write{
		Row:  r,
		Col:  c,
		Mode: grid.WriteOwner,
		Cell: grid.Cell{State: state, Rule: t.Rule.ID},
	})
}

// Suppress zeroes the state at a wrapped offset without changing its owner.
func (t *Transition) Suppress(dr, dc int) {
	if t.Blocked(dr, dc) {
		return
	}
	r, c := t.Grid.Wrap(t.Row+dr, t.Col+dc)
	t.sink.Put(grid.Write{Row: r, Col: c, Mode: grid.WriteState})
}

// Peek reads the current cell at a wrapped offset.
func (t *Transition) Peek(dr, dc int) grid.Cell {
	return t.Grid.Current(t.Row+dr, t.Col+dc)
}

// Empty reports whether the cell at an offset is in state 0 and not blocked.
func (t *Transition) Empty(dr, dc int) bool {
	return t.Peek(dr, dc).State == 0 && !t.Blocked(dr, dc)
}

// Count returns the same-rule Moore neighbours in state.
func (t *Transition) Count(state uint8) int {
	return t.Grid.Count(t.Row, t.Col, t.Rule.ID, state)
}

// Live returns the same-rule Moore neighbours with a non-zero state.
func (t *Transition) Live() int {
	return t.Grid.CountLive(t.Row, t.Col, t.Rule.ID)
}

// Chance draws a uniform sample and reports whether it falls below p.
func (t *Transition) Chance(p float64) bool { return t.Rand.Float64() < p }

// Intn returns a uniform integer in [0, n).
func (t *Transition) Intn(n int) int { return t.Rand.IntN(n) }
