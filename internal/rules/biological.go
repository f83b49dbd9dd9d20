package rules

import "ca-arena/internal/grid"

// Behavior selects the algorithm of a biological rule.
type Behavior uint8

const (
	// Colony grows by survive/spread/birth thresholds.
	Colony Behavior = iota
	// Mitosis divides into empty neighbours every Period generations of age.
	Mitosis
	// AntColony lays pheromone (2) behind ants (1) that follow trails.
	AntColony
	// Flocking drifts toward the centroid of nearby kin.
	Flocking
	// Schooling steps toward denser kin when isolated.
	Schooling
	// Evolution keeps fitter cells (higher states) and breeds mutants.
	Evolution
	// DNA replicates bases (1..4) as complements every Period generations.
	DNA
	// Immune pits pathogens (1) against T-cells (2); 3 marks B-cells.
	Immune
	// Ecosystem runs a prey (1) and predator (2) balance.
	Ecosystem
)

// Spread selects where a colony pushes new cells.
type Spread uint8

const (
	// SpreadMoore tries each Moore neighbour with TargetChance.
	SpreadMoore Spread = iota
	// SpreadOne picks one random orthogonal neighbour.
	SpreadOne
	// SpreadOrthogonal tries each orthogonal neighbour with TargetChance.
	SpreadOrthogonal
	// SpreadRoots tries the downward-weighted offsets in RootOffsets.
	SpreadRoots
)

// RootOffset pairs a growth direction with its probability.
type RootOffset struct {
	grid.Coord
	Chance float64
}

// RootOffsets favour growth downward.
var RootOffsets = []RootOffset{
	{grid.Coord{Row: 1, Col: 0}, 0.5},
	{grid.Coord{Row: 1, Col: 1}, 0.3},
	{grid.Coord{Row: 1, Col: -1}, 0.3},
	{grid.Coord{Row: 0, Col: 1}, 0.2},
	{grid.Coord{Row: 0, Col: -1}, 0.2},
}

// Biological covers the colony-style and agent-style living rules. The
// growth fields apply to Colony; Period applies to Mitosis and DNA.
type Biological struct {
	Behavior Behavior

	// A live cell dies when it has more than SurviveMax live kin.
	SurviveMax int
	// A live cell with SpreadMin..SpreadMax kin spreads with SpreadChance.
	SpreadMin, SpreadMax int
	SpreadChance         float64
	Spread               Spread
	TargetChance         float64
	// An empty cell with BirthMin..BirthMax kin is born with BirthChance.
	BirthMin, BirthMax int
	BirthChance        float64

	Period uint32
}

// Family implements Params.
func (Biological) Family() Family { return FamilyBiological }

func inRange(n, lo, hi int) bool { return n >= lo && n <= hi }

func (b Biological) apply(t *Transition) {
	switch b.Behavior {
	case Colony:
		b.colony(t)
	case Mitosis:
		b.mitosis(t)
	case AntColony:
		antColony(t)
	case Flocking:
		flocking(t)
	case Schooling:
		schooling(t)
	case Evolution:
		evolution(t)
	case DNA:
		b.dna(t)
	case Immune:
		immune(t)
	case Ecosystem:
		ecosystem(t)
	}
}

func (b Biological) colony(t *Transition) {
	n := t.Count(1)
	if t.Cell.State == 1 {
		if n > b.SurviveMax {
			t.Set(0)
			return
		}
		t.Set(1)
		if inRange(n, b.SpreadMin, b.SpreadMax) && t.Chance(b.SpreadChance) {
			b.spread(t)
		}
		return
	}
	if inRange(n, b.BirthMin, b.BirthMax) {
		t.SetBool(t.Chance(b.BirthChance))
	}
}

func (b Biological) spread(t *Transition) {
	grow := func(d grid.Coord) {
		if t.Empty(d.Row, d.Col) {
			t.Emit(d.Row, d.Col, 1)
		}
	}
	switch b.Spread {
	case SpreadOne:
		grow(grid.VonNeumann[t.Intn(4)])
	case SpreadOrthogonal:
		for _, d := range grid.VonNeumann {
			if t.Chance(b.TargetChance) {
				grow(d)
			}
		}
	case SpreadRoots:
		for _, d := range RootOffsets {
			if t.Chance(d.Chance) {
				grow(d.Coord)
			}
		}
	default:
		for _, d := range grid.Moore {
			if t.Chance(b.TargetChance) {
				grow(d)
			}
		}
	}
}

func (b Biological) mitosis(t *Transition) {
	if t.Cell.State != 1 {
		return
	}
	t.Set(1)
	if b.Period == 0 || t.Cell.Age == 0 || t.Cell.Age%b.Period != 0 {
		return
	}
	var empty []grid.Coord
	for _, d := range grid.Moore {
		if t.Empty(d.Row, d.Col) {
			empty = append(empty, d)
		}
	}
	for i := 0; i < min(2, len(empty)); i++ {
		d := empty[t.Intn(len(empty))]
		t.Emit(d.Row, d.Col, 1)
	}
}

func antColony(t *Transition) {
	switch t.Cell.State {
	case 1:
		t.Set(2)
		if t.Count(2) > 0 {
			for _, d := range grid.Moore {
				if t.Peek(d.Row, d.Col).State == 2 && t.Chance(0.3) {
					t.Emit(d.Row, d.Col, 1)
					return
				}
			}
			return
		}
		d := grid.VonNeumann[t.Intn(4)]
		if t.Empty(d.Row, d.Col) {
			t.Emit(d.Row, d.Col, 1)
		}
	case 2:
		if t.Chance(0.1) {
			t.Set(0)
		} else {
			t.Set(2)
		}
	case 0:
		if t.Count(1) >= 3 {
			t.SetBool(t.Chance(0.1))
		}
	default:
		t.Keep()
	}
}

// offsets5x5 is the 5x5 block around a cell, centre included.
var offsets5x5 = append([]grid.Coord{{Row: 0, Col: 0}}, grid.Square(2)...)

func flocking(t *Transition) {
	n := t.Count(1)
	if t.Cell.State != 1 {
		if n == 3 {
			t.Set(1)
		}
		return
	}
	switch {
	case n > 4:
		t.Set(0)
	case n < 2:
		t.Set(1)
	default:
		t.Set(1)
		if !t.Chance(0.4) {
			return
		}
		sumR, sumC, count := 0, 0, 0
		for _, d := range offsets5x5 {
			c := t.Peek(d.Row, d.Col)
			if c.Rule == t.Rule.ID && c.State == 1 {
				sumR += d.Row
				sumC += d.Col
				count++
			}
		}
		if count <= 1 {
			return
		}
		d := grid.Coord{Row: sign(sumR), Col: sign(sumC)}
		if (d.Row != 0 || d.Col != 0) && t.Empty(d.Row, d.Col) {
			t.Set(0)
			t.Emit(d.Row, d.Col, 1)
		}
	}
}

func schooling(t *Transition) {
	n := t.Count(1)
	if t.Cell.State != 1 {
		if n >= 4 {
			t.Set(1)
		}
		return
	}
	switch {
	case n > 5:
		t.Set(0)
	case n >= 3:
		t.Set(1)
	default:
		for _, d := range grid.Moore {
			r, c := t.Row+d.Row, t.Col+d.Col
			if t.Empty(d.Row, d.Col) && t.Grid.Count(r, c, t.Rule.ID, 1) > n {
				t.Set(0)
				t.Emit(d.Row, d.Col, 1)
				return
			}
		}
		t.Set(1)
	}
}

func averageFitness(t *Transition) float64 {
	total, count := 0, 0
	for _, d := range offsets5x5 {
		c := t.Peek(d.Row, d.Col)
		if c.Rule == t.Rule.ID && c.State > 0 {
			total += int(c.State)
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return float64(total) / float64(count)
}

func evolution(t *Transition) {
	n := t.Count(1)
	fitness := t.Cell.State
	if fitness == 0 {
		if n >= 3 {
			t.Set(1)
		}
		return
	}
	if float64(fitness) < averageFitness(t) {
		t.Set(fitness - 1)
		return
	}
	if t.Chance(0.1) {
		t.Set(min(4, fitness+1))
	} else {
		t.Set(min(4, fitness))
	}
	if !inRange(n, 2, 3) || !t.Chance(0.3) {
		return
	}
	for _, d := range grid.Moore {
		if !t.Empty(d.Row, d.Col) || !t.Chance(0.2) {
			continue
		}
		child := int(fitness)
		if t.Chance(0.3) {
			if t.Chance(0.5) {
				child++
			} else {
				child--
			}
		}
		t.Emit(d.Row, d.Col, uint8(max(1, min(4, child))))
	}
}

// Complement pairs DNA bases 1-2 and 3-4.
func Complement(base uint8) uint8 {
	switch base {
	case 1:
		return 2
	case 2:
		return 1
	case 3:
		return 4
	case 4:
		return 3
	default:
		return 1
	}
}

func (b Biological) dna(t *Transition) {
	s := t.Cell.State
	if s == 0 {
		if t.Live() >= 2 {
			t.Set(uint8(t.Intn(4)) + 1)
		}
		return
	}
	t.Set(s)
	if b.Period == 0 || t.Cell.Age == 0 || t.Cell.Age%b.Period != 0 {
		return
	}
	comp := Complement(s)
	for _, d := range grid.Moore {
		if t.Empty(d.Row, d.Col) && t.Chance(0.3) {
			t.Emit(d.Row, d.Col, comp)
		}
	}
}

func immune(t *Transition) {
	switch t.Cell.State {
	case 0:
		if t.Count(1) >= 2 {
			if t.Chance(0.5) {
				t.Set(2)
			} else {
				t.Set(3)
			}
		}
	case 1:
		t.Set(1)
		if t.Chance(0.4) {
			d := grid.VonNeumann[t.Intn(4)]
			if t.Empty(d.Row, d.Col) {
				t.Emit(d.Row, d.Col, 1)
			}
		}
	case 2:
		t.Set(2)
		if t.Count(1) == 0 {
			return
		}
		for _, d := range grid.Moore {
			switch s := t.Peek(d.Row, d.Col).State; {
			case s == 1:
				t.Suppress(d.Row, d.Col)
			case s == 0 && t.Chance(0.2):
				t.Emit(d.Row, d.Col, 2)
			}
		}
	}
}

func ecosystem(t *Transition) {
	s := t.Cell.State
	prey, predators := t.Count(1), t.Count(2)
	switch {
	case s == 0 && prey >= 2 && predators == 0:
		t.Set(1)
	case s == 1 && predators > 0:
		t.Set(0)
	case s == 1 && prey >= 4:
		t.Set(0)
	case s == 2 && prey == 0:
		t.Set(0)
	case s == 0 && predators >= 2:
		t.Set(2)
	default:
		t.Keep()
	}
}
