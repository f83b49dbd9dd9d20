package grid

// Moore lists the offsets of the eight cells surrounding a centre cell in
// row-major order.
var Moore = []Coord{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// VonNeumann lists the four orthogonal offsets (east, south, west, north).
var VonNeumann = []Coord{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Square returns the offsets of a (2r+1)x(2r+1) block without its centre.
func Square(radius int) []Coord {
	if radius <= 0 {
		return nil
	}
	out := make([]Coord, 0, (2*radius+1)*(2*radius+1)-1)
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			out = append(out, Coord{dr, dc})
		}
	}
	return out
}

// Count returns how many Moore neighbours carry rule id in the given state.
func (g *Grid) Count(row, col int, id RuleID, state uint8) int {
	n := 0
	for _, d := range Moore {
		c := g.Current(row+d.Row, col+d.Col)
		if c.Rule == id && c.State == state {
			n++
		}
	}
	return n
}

// CountLive returns how many Moore neighbours carry rule id with a non-zero state.
func (g *Grid) CountLive(row, col int, id RuleID) int {
	n := 0
	for _, d := range Moore {
		c := g.Current(row+d.Row, col+d.Col)
		if c.Rule == id && c.State > 0 {
			n++
		}
	}
	return n
}

// CountWhere counts cells at the given offsets that satisfy pred.
func (g *Grid) CountWhere(row, col int, offsets []Coord, pred func(Cell) bool) int {
	n := 0
	for _, d := range offsets {
		if pred(g.Current(row+d.Row, col+d.Col)) {
			n++
		}
	}
	return n
}

// Foreign counts Moore neighbours owned by a rule other than id.
func (g *Grid) Foreign(row, col int, id RuleID) int {
	return g.CountWhere(row, col, Moore, func(c Cell) bool {
		return c.Rule != Inert && c.Rule != id
	})
}

// StateAt returns the state of a wrapped neighbour when it shares rule id,
// and zero otherwise.
func (g *Grid) StateAt(row, col int, id RuleID) uint8 {
	c := g.Current(row, col)
	if c.Rule != id {
		return 0
	}
	return c.State
}
