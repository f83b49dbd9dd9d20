// Package brush paints rules onto an arena between generations: square
// brushes, strokes, erasers, radial invasion patches and random spawns.
package brush

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"ca-arena/internal/grid"
	"ca-arena/internal/rules"
)

const (
	// InvasionRadius is the radius of an invasion patch.
	InvasionRadius = 15
	// InvasionStrength makes invasion patches harder to convert.
	InvasionStrength = 1.5
	// SpawnRadius bounds how far spawn dabs land from their centre.
	SpawnRadius = 12
)

// Canvas is what a brush paints on. Coordinates handed to it are always in
// bounds; brushes clip at the grid edge rather than wrapping.
type Canvas interface {
	Rows() int
	Cols() int
	Rule(name string) (*rules.Def, bool)
	SeedRegion(coords []grid.Coord, rule string, state uint8, strength float64) error
	ClearRegion(coords []grid.Coord) error
}

// clustered rules only take the inner half of a brush so they start as
// dense clumps.
var clustered = map[string]bool{"virus": true, "bacteria": true, "cancer": true}

// Square returns the in-bounds coordinates of a (2r+1)-wide square brush.
func Square(c Canvas, row, col, radius int) []grid.Coord {
	var out []grid.Coord
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			r, cc := row+dr, col+dc
			if r < 0 || r >= c.Rows() || cc < 0 || cc >= c.Cols() {
				continue
			}
			out = append(out, grid.Coord{Row: r, Col: cc})
		}
	}
	return out
}

type plan map[uint8][]grid.Coord

func (p plan) add(state uint8, at grid.Coord) { p[state] = append(p[state], at) }

func (p plan) seed(c Canvas, rule string, strength float64) (int, error) {
	states := make([]int, 0, len(p))
	for s := range p {
		states = append(states, int(s))
	}
	sort.Ints(states)
	n := 0
	for _, s := range states {
		coords := p[uint8(s)]
		if err := c.SeedRegion(coords, rule, uint8(s), strength); err != nil {
			return n, err
		}
		n += len(coords)
	}
	return n, nil
}

func lookup(c Canvas, name string) (*rules.Def, error) {
	def, ok := c.Rule(name)
	if !ok {
		return nil, fmt.Errorf("brush: unknown rule %q", name)
	}
	return def, nil
}

// Paint fills a square brush of the given size centred on (row, col) with
// rule, using the rule's initialization pattern for each cell. It returns
// the number of cells written.
func Paint(c Canvas, rng *rand.Rand, row, col, size int, rule string) (int, error) {
	def, err := lookup(c, rule)
	if err != nil {
		return 0, err
	}
	radius := size / 2
	p := plan{}
	for _, at := range Square(c, row, col, radius) {
		if clustered[rule] {
			dr, dc := float64(at.Row-row), float64(at.Col-col)
			if math.Hypot(dr, dc) > float64(radius)*0.5 {
				continue
			}
		}
		p.add(def.InitialState(rng), at)
	}
	return p.seed(c, rule, grid.DefaultStrength)
}

// Erase resets a square brush of the given size to inert cells.
func Erase(c Canvas, row, col, size int) error {
	return c.ClearRegion(Square(c, row, col, size/2))
}

// Stroke paints (or erases, when rule is empty) along a line, dabbing the
// brush at least once per cell travelled.
func Stroke(c Canvas, rng *rand.Rand, r0, c0, r1, c1, size int, rule string) error {
	dist := math.Hypot(float64(r1-r0), float64(c1-c0))
	steps := max(1, int(math.Ceil(dist)))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r := int(math.Round(float64(r0) + float64(r1-r0)*t))
		cc := int(math.Round(float64(c0) + float64(c1-c0)*t))
		var err error
		if rule == "" {
			err = Erase(c, r, cc, size)
		} else {
			_, err = Paint(c, rng, r, cc, size, rule)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func invasionState(rng *rand.Rand, def *rules.Def) uint8 {
	switch def.Name {
	case "antcolony":
		if rng.Float64() < 0.4 {
			return 1
		}
		return 2
	case "evolution":
		return uint8(rng.IntN(3)) + 2
	case "dna":
		return uint8(rng.IntN(4)) + 1
	default:
		return 1
	}
}

// Invade drops a radial invasion patch: density falls off linearly from the
// centre, and invading cells carry InvasionStrength.
func Invade(c Canvas, rng *rand.Rand, row, col int, rule string) (int, error) {
	def, err := lookup(c, rule)
	if err != nil {
		return 0, err
	}
	p := plan{}
	for _, at := range Square(c, row, col, InvasionRadius) {
		d := math.Hypot(float64(at.Row-row), float64(at.Col-col))
		if d > InvasionRadius {
			continue
		}
		if rng.Float64() >= 1-d/InvasionRadius {
			continue
		}
		p.add(invasionState(rng, def), at)
	}
	return p.seed(c, rule, InvasionStrength)
}

// InvadeRandom drops an invasion patch at a random location.
func InvadeRandom(c Canvas, rng *rand.Rand, rule string) (int, error) {
	return Invade(c, rng, rng.IntN(c.Rows()), rng.IntN(c.Cols()), rule)
}

// Spawn scatters small dabs of rule around a random centre.
func Spawn(c Canvas, rng *rand.Rand, rule string) (int, error) {
	row, col := rng.IntN(c.Rows()), rng.IntN(c.Cols())
	dabs := 10 + rng.IntN(20)
	total := 0
	for i := 0; i < dabs; i++ {
		angle := float64(i) / float64(dabs) * 2 * math.Pi
		radius := rng.Float64() * SpawnRadius
		r := row + int(math.Round(math.Sin(angle)*radius))
		cc := col + int(math.Round(math.Cos(angle)*radius))
		n, err := Paint(c, rng, r, cc, 2, rule)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
