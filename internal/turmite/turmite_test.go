package turmite

import (
	"testing"

	"ca-arena/internal/grid"
)

const langton grid.RuleID = 7

func newGrid(t *testing.T, rows, cols int) *grid.Grid {
	t.Helper()
	g, err := grid.New(rows, cols)
	if err != nil {
		t.Fatalf("grid.New: %v", err)
	}
	return g
}

func TestAntOnEmptyCellTurnsRightAndPaints(t *testing.T) {
	g := newGrid(t, 5, 5)
	var c Colony
	c.Add(Ant{Row: 2, Col: 2, Heading: North})
	c.Advance(g, langton)

	cell := g.Current(2, 2)
	if cell.State != 1 || cell.Rule != langton {
		t.Fatalf("cell = %+v, want state 1 rule %d", cell, langton)
	}
	ants := c.Ants()
	if ants[0].Heading != East || ants[0].Row != 2 || ants[0].Col != 3 {
		t.Fatalf("ant = %+v, want east at (2,3)", ants[0])
	}
}

func TestAntOnLiveCellTurnsLeftAndClears(t *testing.T) {
	g := newGrid(t, 5, 5)
	*g.CurrentRef(2, 2) = grid.Cell{State: 3, Rule: 9, Age: 4, Strength: 1}
	var c Colony
	c.Add(Ant{Row: 2, Col: 2, Heading: North})
	c.Advance(g, langton)

	cell := g.Current(2, 2)
	if cell.State != 0 || cell.Rule != 9 {
		t.Fatalf("cell = %+v, want cleared state with owner kept", cell)
	}
	ants := c.Ants()
	if ants[0].Heading != West || ants[0].Col != 1 {
		t.Fatalf("ant = %+v, want west at (2,1)", ants[0])
	}
}

func TestAntWrapsAtEdge(t *testing.T) {
	g := newGrid(t, 4, 4)
	var c Colony
	c.Add(Ant{Row: 0, Col: 3, Heading: North})
	c.Advance(g, langton) // turns east, steps off the right edge
	if a := c.Ants()[0]; a.Row != 0 || a.Col != 0 {
		t.Fatalf("ant = %+v, want wrapped to (0,0)", a)
	}
}

func TestAntResetsAgeOnlyWhenOwnerChanges(t *testing.T) {
	g := newGrid(t, 3, 3)
	*g.CurrentRef(1, 1) = grid.Cell{State: 0, Rule: langton, Age: 12, Strength: 1}
	*g.CurrentRef(0, 0) = grid.Cell{State: 0, Rule: 5, Age: 12, Strength: 1}
	var c Colony
	c.Add(Ant{Row: 1, Col: 1})
	c.Add(Ant{Row: 0, Col: 0})
	c.Advance(g, langton)
	if got := g.Current(1, 1).Age; got != 12 {
		t.Fatalf("same-owner age = %d, want 12", got)
	}
	if got := g.Current(0, 0).Age; got != 0 {
		t.Fatalf("new-owner age = %d, want 0", got)
	}
}

func TestAntsOnSameCellActInOrder(t *testing.T) {
	g := newGrid(t, 5, 5)
	var c Colony
	c.Add(Ant{Row: 2, Col: 2, Heading: North})
	c.Add(Ant{Row: 2, Col: 2, Heading: North})
	c.Advance(g, langton)
	// The first ant paints, the second sees the painted cell and clears it.
	if g.Current(2, 2).State != 0 {
		t.Fatalf("second ant should clear the first ant's mark")
	}
	ants := c.Ants()
	if ants[0].Heading != East || ants[1].Heading != West {
		t.Fatalf("headings = %v,%v; want east,west", ants[0].Heading, ants[1].Heading)
	}
}

func TestLangtonHighwayEventuallyLeavesOrigin(t *testing.T) {
	g := newGrid(t, 64, 64)
	var c Colony
	c.Add(Ant{Row: 32, Col: 32})
	for i := 0; i < 500; i++ {
		c.Advance(g, langton)
	}
	painted := 0
	for _, cell := range g.CurrentCells() {
		if cell.State == 1 {
			painted++
		}
	}
	if painted == 0 {
		t.Fatalf("ant left no trail after 500 steps")
	}
}

func TestRemoveAtAndHeadings(t *testing.T) {
	var c Colony
	c.Add(Ant{Row: 1, Col: 1})
	c.Add(Ant{Row: 2, Col: 2})
	c.Add(Ant{Row: 1, Col: 1})
	if n := c.RemoveAt(1, 1); n != 2 || c.Len() != 1 {
		t.Fatalf("RemoveAt removed %d, left %d", n, c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("Clear left %d ants", c.Len())
	}
	if h, err := ParseHeading("S"); err != nil || h != South {
		t.Fatalf("ParseHeading(S) = %v, %v", h, err)
	}
	if _, err := ParseHeading("up"); err == nil {
		t.Fatalf("ParseHeading should reject unknown names")
	}
	if West.Clockwise() != North || North.CounterClockwise() != West {
		t.Fatalf("heading rotation wraps incorrectly")
	}
}

func TestAdvanceMirrorsIntoNextBuffer(t *testing.T) {
	g := newGrid(t, 3, 3)
	var c Colony
	c.Add(Ant{Row: 1, Col: 1})
	c.Advance(g, langton)
	g.Swap()
	if cell := g.Current(1, 1); cell.State != 1 || cell.Rule != langton {
		t.Fatalf("paint lost across swap: %+v", cell)
	}
}
