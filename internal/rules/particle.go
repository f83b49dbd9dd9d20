package rules

import "ca-arena/internal/grid"

// Motion selects how a particle rule moves its live cells.
type Motion uint8

const (
	// Billiard moves state-1 cells along a direction derived from position
	// and generation.
	Billiard Motion = iota
	// Lattice encodes the heading in the state (1..4 = E,S,W,N).
	Lattice
	// Bouncy moves every cell along its heading with occasional random turns.
	Bouncy
	// Diagonal steps down-right when both diagonal neighbours are clear.
	Diagonal
	// Granular falls down, sliding diagonally when blocked.
	Granular
	// Gravitate walks toward the grid centre without wrapping.
	Gravitate
	// Fluid flows down when sparse and condenses when crowded.
	Fluid
	// Discharge strikes at random every Period generations and forks downward.
	Discharge
)

// Collision selects what a particle does when its destination is occupied.
type Collision uint8

const (
	// Bounce keeps the particle in place.
	Bounce Collision = iota
	// Deflect rotates a lattice heading clockwise.
	Deflect
	// Absorb moves anyway, overwriting the destination.
	Absorb
)

// Particle is a movement rule. Jitter is the motion's secondary probability
// (random turn, diagonal slide or fork chance); Strike and Period drive
// Discharge.
type Particle struct {
	Motion    Motion
	Collision Collision
	Jitter    float64
	Strike    float64
	Period    uint64
}

// Family implements Params.
func (Particle) Family() Family { return FamilyParticle }

func (p Particle) move(t *Transition, d grid.Coord, state uint8) {
	if t.Empty(d.Row, d.Col) || (p.Collision == Absorb && !t.Blocked(d.Row, d.Col)) {
		t.Set(0)
		t.Emit(d.Row, d.Col, state)
		return
	}
	switch p.Collision {
	case Deflect:
		t.Set(state%4 + 1)
	default:
		t.Set(t.Cell.State)
	}
}

var downward = []grid.Coord{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: -1}}

func (p Particle) apply(t *Transition) {
	s := t.Cell.State
	switch p.Motion {
	case Billiard:
		if s != 1 {
			return
		}
		i := (uint64(t.Row) + uint64(t.Col) + t.Gen) % 4
		p.move(t, grid.VonNeumann[i], 1)

	case Lattice:
		if s < 1 || s > 4 {
			return
		}
		p.move(t, grid.VonNeumann[s-1], s)

	case Bouncy:
		if s == 0 {
			return
		}
		d := grid.VonNeumann[(s-1)%4]
		if t.Chance(p.Jitter) {
			d = grid.VonNeumann[t.Intn(4)]
		}
		p.move(t, d, uint8(t.Intn(4))+1)

	case Diagonal:
		if s != 1 {
			return
		}
		if t.Empty(-1, -1) && t.Empty(1, 1) {
			p.move(t, grid.Coord{Row: 1, Col: 1}, 1)
			return
		}
		t.Keep()

	case Granular:
		if s != 1 {
			return
		}
		switch {
		case t.Empty(1, 0):
			p.move(t, grid.Coord{Row: 1, Col: 0}, 1)
		case t.Empty(1, -1) && t.Chance(p.Jitter):
			p.move(t, grid.Coord{Row: 1, Col: -1}, 1)
		case t.Empty(1, 1):
			p.move(t, grid.Coord{Row: 1, Col: 1}, 1)
		default:
			t.Keep()
		}

	case Gravitate:
		if s != 1 {
			return
		}
		d := grid.Coord{
			Row: sign(t.Grid.Rows()/2 - t.Row),
			Col: sign(t.Grid.Cols()/2 - t.Col),
		}
		if d.Row == 0 && d.Col == 0 {
			t.Keep()
			return
		}
		p.move(t, d, 1)

	case Fluid:
		n := t.Count(1)
		switch {
		case s == 1 && n < 3:
			p.move(t, grid.Coord{Row: 1, Col: 0}, 1)
		case s == 1:
			t.SetBool(n < 6)
		case s == 0:
			t.SetBool(n >= 3)
		}

	case Discharge:
		if p.Period > 0 && t.Gen%p.Period == 0 && t.Chance(p.Strike) {
			t.Set(4)
			return
		}
		if s == 0 {
			return
		}
		t.Set(s - 1)
		if s == 4 && t.Chance(p.Jitter) {
			d := downward[t.Intn(len(downward))]
			if t.Empty(d.Row, d.Col) {
				t.Emit(d.Row, d.Col, 3)
			}
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
