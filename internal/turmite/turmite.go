// Package turmite moves Langton's-ant agents over the grid.
package turmite

import (
	"fmt"
	"strings"

	"ca-arena/internal/grid"
)

// Heading is the direction an ant faces.
type Heading uint8

const (
	North Heading = iota
	East
	South
	West
)

var headingOffsets = [4]grid.Coord{
	North: {Row: -1, Col: 0},
	East:  {Row: 0, Col: 1},
	South: {Row: 1, Col: 0},
	West:  {Row: 0, Col: -1},
}

// Clockwise returns the heading a quarter turn to the right.
func (h Heading) Clockwise() Heading { return (h + 1) % 4 }

// CounterClockwise returns the heading a quarter turn to the left.
func (h Heading) CounterClockwise() Heading { return (h + 3) % 4 }

// Offset returns the row/column step for the heading.
func (h Heading) Offset() grid.Coord { return headingOffsets[h%4] }

func (h Heading) String() string {
	switch h % 4 {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	default:
		return "west"
	}
}

// ParseHeading accepts a heading name or its first letter.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	}
	return North, fmt.Errorf("turmite: unknown heading %q", s)
}

// Ant is a single agent.
type Ant struct {
	Row, Col int
	Heading  Heading
}

// Colony is the ordered set of ants. Ants are processed in insertion order;
// two ants on the same cell both act on it in sequence.
type Colony struct {
	ants []Ant
}

// Add appends an ant.
func (c *Colony) Add(a Ant) { c.ants = append(c.ants, a) }

// Len reports the number of ants.
func (c *Colony) Len() int { return len(c.ants) }

// Ants returns a copy of the ant list.
func (c *Colony) Ants() []Ant {
	out := make([]Ant, len(c.ants))
	copy(out, c.ants)
	return out
}

// Clear removes every ant.
func (c *Colony) Clear() { c.ants = c.ants[:0] }

// RemoveAt drops every ant standing on (row, col) and reports how many went.
func (c *Colony) RemoveAt(row, col int) int {
	kept := c.ants[:0]
	for _, a := range c.ants {
		if a.Row == row && a.Col == col {
			continue
		}
		kept = append(kept, a)
	}
	removed := len(c.ants) - len(kept)
	c.ants = kept
	return removed
}

// Advance moves every ant one step. An ant reads the colour of its cell in
// the authoritative buffer: on state 0 it turns clockwise and claims the cell
// for rule in state 1; otherwise it turns counter-clockwise and clears the
// state while leaving the owner alone. Then it steps forward with toroidal
// wrap.
//
// Writes land in the current buffer, so later ants see earlier ones, and are
// mirrored into the next buffer so they survive the swap that ends the
// generation.
func (c *Colony) Advance(g *grid.Grid, rule grid.RuleID) {
	for i := range c.ants {
		a := &c.ants[i]
		cur := g.CurrentRef(a.Row, a.Col)
		nxt := g.NextRef(a.Row, a.Col)
		if cur.State == 0 {
			a.Heading = a.Heading.Clockwise()
			paint(cur, rule)
			paint(nxt, rule)
		} else {
			a.Heading = a.Heading.CounterClockwise()
			cur.State = 0
			nxt.State = 0
		}
		d := a.Heading.Offset()
		a.Row, a.Col = g.Wrap(a.Row+d.Row, a.Col+d.Col)
	}
}

func paint(cell *grid.Cell, rule grid.RuleID) {
	if cell.Rule != rule {
		cell.Age = 0
	}
	cell.State = 1
	cell.Rule = rule
}
