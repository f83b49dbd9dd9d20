package brush

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"ca-arena/internal/grid"
	"ca-arena/internal/rules"
)

type canvas struct {
	rows, cols int
	reg        *rules.Registry
	cells      map[grid.Coord]grid.Cell
	calls      int
}

func newCanvas(rows, cols int) *canvas {
	return &canvas{rows: rows, cols: cols, reg: rules.Default(), cells: map[grid.Coord]grid.Cell{}}
}

func (c *canvas) Rows() int { return c.rows }
func (c *canvas) Cols() int { return c.cols }

func (c *canvas) Rule(name string) (*rules.Def, bool) { return c.reg.Lookup(name) }

func (c *canvas) SeedRegion(coords []grid.Coord, rule string, state uint8, strength float64) error {
	def, ok := c.reg.Lookup(rule)
	if !ok {
		return errors.New("unknown rule")
	}
	c.calls++
	for _, at := range coords {
		if at.Row < 0 || at.Row >= c.rows || at.Col < 0 || at.Col >= c.cols {
			return grid.ErrOutOfBounds
		}
		c.cells[at] = grid.Cell{State: state, Rule: def.ID, Strength: strength}
	}
	return nil
}

func (c *canvas) ClearRegion(coords []grid.Coord) error {
	for _, at := range coords {
		delete(c.cells, at)
	}
	return nil
}

func rng() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func TestSquareClipsAtEdges(t *testing.T) {
	c := newCanvas(10, 10)
	if n := len(Square(c, 0, 0, 1)); n != 4 {
		t.Fatalf("corner brush covers %d cells, want 4", n)
	}
	if n := len(Square(c, 5, 5, 1)); n != 9 {
		t.Fatalf("interior brush covers %d cells, want 9", n)
	}
}

func TestPaintFillsBrush(t *testing.T) {
	c := newCanvas(20, 20)
	n, err := Paint(c, rng(), 10, 10, 3, "gameoflife")
	if err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if n != 9 || len(c.cells) != 9 {
		t.Fatalf("painted %d cells (%d stored), want 9", n, len(c.cells))
	}
	for at, cell := range c.cells {
		if cell.Strength != grid.DefaultStrength {
			t.Fatalf("%v strength = %v", at, cell.Strength)
		}
	}
}

func TestPaintUnknownRule(t *testing.T) {
	c := newCanvas(5, 5)
	if _, err := Paint(c, rng(), 2, 2, 3, "nope"); err == nil {
		t.Fatalf("expected an error for an unknown rule")
	}
	if len(c.cells) != 0 {
		t.Fatalf("unknown rule must not paint")
	}
}

func TestClusteredRulesPaintInnerHalf(t *testing.T) {
	c := newCanvas(40, 40)
	if _, err := Paint(c, rng(), 20, 20, 9, "virus"); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	for at := range c.cells {
		if math.Hypot(float64(at.Row-20), float64(at.Col-20)) > 2 {
			t.Fatalf("virus painted outside its cluster at %v", at)
		}
	}
}

func TestEraseClearsBrush(t *testing.T) {
	c := newCanvas(10, 10)
	if _, err := Paint(c, rng(), 5, 5, 5, "gameoflife"); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if err := Erase(c, 5, 5, 3); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if len(c.cells) != 25-9 {
		t.Fatalf("%d cells left, want 16", len(c.cells))
	}
}

func TestStrokeCoversLine(t *testing.T) {
	c := newCanvas(20, 20)
	if err := Stroke(c, rng(), 2, 2, 2, 12, 1, "gameoflife"); err != nil {
		t.Fatalf("Stroke: %v", err)
	}
	for col := 2; col <= 12; col++ {
		if _, ok := c.cells[grid.Coord{Row: 2, Col: col}]; !ok {
			t.Fatalf("stroke skipped column %d", col)
		}
	}
}

func TestInvadeStaysInsideRadius(t *testing.T) {
	c := newCanvas(64, 64)
	n, err := Invade(c, rng(), 32, 32, "cyclic")
	if err != nil {
		t.Fatalf("Invade: %v", err)
	}
	if n == 0 {
		t.Fatalf("invasion placed no cells")
	}
	for at, cell := range c.cells {
		if math.Hypot(float64(at.Row-32), float64(at.Col-32)) > InvasionRadius {
			t.Fatalf("cell %v outside the invasion radius", at)
		}
		if cell.Strength != InvasionStrength || cell.State != 1 {
			t.Fatalf("invader = %+v", cell)
		}
	}
}

func TestInvasionStatesPerRule(t *testing.T) {
	c := newCanvas(64, 64)
	if _, err := Invade(c, rng(), 32, 32, "dna"); err != nil {
		t.Fatalf("Invade: %v", err)
	}
	for _, cell := range c.cells {
		if cell.State < 1 || cell.State > 4 {
			t.Fatalf("dna invader in state %d", cell.State)
		}
	}
}

func TestSpawnStaysOnGrid(t *testing.T) {
	c := newCanvas(16, 16)
	for i := 0; i < 20; i++ {
		if _, err := Spawn(c, rng(), "sand"); err != nil {
			t.Fatalf("Spawn: %v", err)
		}
	}
	if len(c.cells) == 0 {
		t.Fatalf("spawn painted nothing")
	}
}
