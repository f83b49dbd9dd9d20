package rules

import (
	"math/rand/v2"
	"strconv"
	"sync"

	"ca-arena/internal/interact"
)

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the built-in catalogue. It is built once and must not be
// modified by callers.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		registerCatalog(defaultReg)
	})
	return defaultReg
}

// Initialization patterns used when painting a rule.
func oneOf(states ...uint8) func(*rand.Rand) uint8 {
	return func(r *rand.Rand) uint8 { return states[r.IntN(len(states))] }
}

func weighted(p float64, hit, miss uint8) func(*rand.Rand) uint8 {
	return func(r *rand.Rand) uint8 {
		if r.Float64() < p {
			return hit
		}
		return miss
	}
}

func live(rate, strength float64) interact.Spec {
	return interact.Spec{
		States:      interact.StateMask(1),
		Shape:       interact.Moore,
		RequireLive: true,
		BaseRate:    rate,
		State:       1,
		Strength:    strength,
	}
}

// biological rules share a mild colonization hook.
func infect() Option {
	return WithInteraction(interact.Spec{
		States:   interact.StateMask(1),
		Shape:    interact.Moore,
		BaseRate: 0.1,
		State:    1,
		Strength: 0.7,
	})
}

func registerCatalog(r *Registry) {
	// Life-like.
	r.MustRegister("gameoflife", MustLife("B3/S23"), WithInteraction(interact.Spec{
		States:        interact.StateMask(1),
		MinAge:        10,
		MinForeign:    2,
		ForeignLive:   true,
		ForeignMinAge: 5,
		Shape:         interact.Moore,
		RequireLive:   true,
		BaseRate:      0.05,
		State:         1,
		Strength:      1.2,
	}))
	r.MustRegister("highlife", MustLife("B36/S23"), WithInteraction(interact.Spec{
		States:     interact.StateMask(1),
		MinAge:     5,
		MinForeign: 2,
		Shape:      interact.Moore,
		BaseRate:   0.1,
		State:      1,
		Strength:   1.3,
	}))
	r.MustRegister("daynight", MustLife("B3678/S34678"))
	r.MustRegister("replicator", MustLife("B1357/S1357"), WithInteraction(interact.Spec{
		States:     interact.StateMask(1),
		Shape:      interact.Moore,
		ClaimInert: true,
		BaseRate:   0.4,
		State:      1,
		Strength:   2,
	}))
	r.MustRegister("lifewithoutdeath", MustLife("B3/S012345678"), WithInteraction(interact.Spec{
		States:     interact.StateMask(1),
		MinForeign: 1,
		Shape:      interact.Moore,
		BaseRate:   0.02,
		State:      1,
		Strength:   2,
	}))
	r.MustRegister("twobytwo", MustLife("B36/S125"))
	r.MustRegister("morley", MustLife("B368/S245"))
	r.MustRegister("anneal", MustLife("B4678/S35678"))
	r.MustRegister("diamoeba", MustLife("B35678/S5678"))
	r.MustRegister("gnarl", MustLife("B1/S1"))
	r.MustRegister("dotlife", MustLife("B3/S023"))
	r.MustRegister("pedestrian", MustLife("B38/S23"))
	r.MustRegister("stains", MustLife("B3678/S235678"))
	r.MustRegister("coagulations", MustLife("B378/S235678"))
	r.MustRegister("worms", MustLife("B367/S23"))
	r.MustRegister("bugs", MustLife("B3567/S15678"))
	r.MustRegister("seeds", MustLife("B2/S"), WithInteraction(interact.Spec{
		States:     interact.StateMask(1),
		MinForeign: 1,
		GateChance: 0.15,
		Shape:      interact.Extended,
		BaseRate:   0.1,
		State:      1,
		Strength:   0.8,
	}))
	r.MustRegister("maze", MustLife("B5678/S45678"))
	r.MustRegister("vote", MustLife("B5678/S45678"), WithInteraction(interact.Spec{
		States:   interact.StateMask(1),
		MinKin:   3,
		Shape:    interact.Moore,
		BaseRate: 0.15,
		State:    1,
		Strength: 1,
	}))
	r.MustRegister("stringthing", MustLife("B3/S23"))
	r.MustRegister("tron", MustLife("B12345678/S0123"))
	r.MustRegister("critters", MustLife("B0134/S25678"))
	coral := MustLife("B3/S012345678")
	coral.BirthChance = 0.8
	coral.SeepChance = 0.02
	r.MustRegister("coral", coral, WithInteraction(live(0.05, 1.5)))

	// Multi-state.
	brain := MultiState{
		States:  3,
		Clauses: []Clause{{From: 0, Count: 1, Min: 2, Max: 2, To: 1}},
		Decay:   map[uint8]uint8{1: 2, 2: 0},
	}
	r.MustRegister("brain", brain, WithInteraction(interact.Spec{
		States:     interact.StateMask(1),
		MinForeign: 1,
		Shape:      interact.Moore,
		BaseRate:   0.1,
		Result:     interact.ResultEither,
		Either:     [2]uint8{1, 2},
		Strength:   0.7,
	}))
	r.MustRegister("generations", brain)
	r.MustRegister("starwars", MultiState{
		States: 4,
		Clauses: []Clause{
			{From: 0, Count: 1, Min: 2, Max: 2, To: 1},
			{From: 1, Count: 1, Min: 3, Max: 5, To: 1},
		},
		Decay: map[uint8]uint8{1: 2, 2: 3, 3: 0},
	})
	r.MustRegister("wireworld", MultiState{
		States:  4,
		Clauses: []Clause{{From: 1, Count: 2, Min: 1, Max: 2, To: 2}},
		Decay:   map[uint8]uint8{2: 3, 3: 1},
		Hold:    true,
	}, WithInitial(weighted(0.7, 1, 2)), WithInteraction(interact.Spec{
		States:      interact.StateMask(2),
		Shape:       interact.Moore,
		RequireLive: true,
		BaseRate:    0.2,
		State:       1,
		Strength:    1,
	}))
	r.MustRegister("cyclic", MultiState{
		States:  4,
		Clauses: cyclicClauses(4),
		Hold:    true,
	}, WithInitial(oneOf(0, 1, 2, 3)), WithInteraction(interact.Spec{
		MinForeign: 1,
		Shape:      interact.Moore,
		BaseRate:   0.08,
		Result:     interact.ResultCycle,
		Cycle:      4,
		Strength:   1,
	}))
	r.MustRegister("crystal", MultiState{
		States: 4,
		Clauses: []Clause{
			{From: 0, Count: 1, Min: 1, Max: 1, To: 1},
			{From: 1, Count: 1, Min: 2, Max: 8, To: 2},
			{From: 3, Count: 1, Min: 0, Max: 1, To: 0},
		},
		Decay: map[uint8]uint8{2: 3},
		Hold:  true,
	})
	r.MustRegister("neural", MultiState{
		States: 4,
		Clauses: []Clause{
			{From: 0, Count: 1, Min: 5, Max: 8, To: 1},
			{From: 1, Count: 1, Min: 0, Max: 2, To: 0},
		},
		Decay: map[uint8]uint8{1: 2, 2: 3, 3: 0},
		Hold:  true,
	})
	r.MustRegister("chemistry", MultiState{
		States: 4,
		Clauses: []Clause{
			{From: 1, Count: 1, Min: 2, Max: 8, To: 3},
			{From: 2, Count: 1, Min: 1, Max: 8, To: 3},
			{From: 3, Count: 1, Min: 0, Max: 1, To: 1, Chance: 0.5, Alt: 2},
			{From: 0, Count: 1, Min: 3, Max: 3, To: 1},
		},
		Hold: true,
	})

	// Particle.
	r.MustRegister("bbm", Particle{Motion: Billiard})
	r.MustRegister("hppgas", Particle{Motion: Lattice, Collision: Deflect}, WithInitial(oneOf(1, 2, 3, 4)))
	r.MustRegister("bouncygas", Particle{Motion: Bouncy, Collision: Absorb, Jitter: 0.1}, WithInitial(oneOf(1, 2, 3, 4)))
	r.MustRegister("swapdiag", Particle{Motion: Diagonal})
	r.MustRegister("sand", Particle{Motion: Granular, Jitter: 0.5})
	r.MustRegister("gravity", Particle{Motion: Gravitate})
	r.MustRegister("liquid", Particle{Motion: Fluid})
	r.MustRegister("lightning", Particle{Motion: Discharge, Jitter: 0.3, Strike: 0.001, Period: 30},
		WithInitial(oneOf(4)),
		WithInteraction(interact.Spec{
			States:   interact.StateMask(4),
			Shape:    interact.Downward,
			BaseRate: 0.3,
			State:    3,
			Strength: 0.5,
		}))

	// Procedural.
	r.MustRegister("plasma", Procedural{Pattern: Plasma, MinKin: 2})
	r.MustRegister("fabric", Procedural{Pattern: Fabric})
	r.MustRegister("quantum", Procedural{Pattern: Quantum})
	r.MustRegister("magnetic", Procedural{Pattern: Magnetic})
	r.MustRegister("music", Procedural{Pattern: Music})
	r.MustRegister("fractal", Procedural{Pattern: Fractal})
	r.MustRegister("kaleidoscope", Procedural{Pattern: Kaleidoscope})
	r.MustRegister("aurora", Procedural{Pattern: Aurora})

	// Biological.
	r.MustRegister("virus", Biological{
		Behavior: Colony, SurviveMax: 8,
		SpreadMin: 0, SpreadMax: 8, SpreadChance: 1, Spread: SpreadMoore, TargetChance: 0.4,
		BirthMin: 1, BirthMax: 8, BirthChance: 0.3,
	}, infect())
	r.MustRegister("bacteria", Biological{
		Behavior: Colony, SurviveMax: 5,
		SpreadMin: 2, SpreadMax: 2, SpreadChance: 0.6, Spread: SpreadOne,
		BirthMin: 2, BirthMax: 3, BirthChance: 1,
	}, infect())
	r.MustRegister("mitosis", Biological{Behavior: Mitosis, Period: 8}, infect())
	r.MustRegister("cancer", Biological{
		Behavior: Colony, SurviveMax: 8,
		SpreadMin: 0, SpreadMax: 8, SpreadChance: 1, Spread: SpreadMoore, TargetChance: 0.5,
		BirthMin: 1, BirthMax: 8, BirthChance: 0.2,
	}, infect())
	r.MustRegister("slimemold", Biological{
		Behavior: Colony, SurviveMax: 3,
		SpreadMin: 1, SpreadMax: 3, SpreadChance: 0.3, Spread: SpreadOne,
		BirthMin: 2, BirthMax: 2, BirthChance: 1,
	}, infect())
	r.MustRegister("antcolony", Biological{Behavior: AntColony},
		WithInitial(func(rng *rand.Rand) uint8 {
			if rng.Float64() < 0.3 {
				return 1
			}
			return oneOf(0, 2)(rng)
		}), infect())
	r.MustRegister("flocking", Biological{Behavior: Flocking})
	r.MustRegister("schooling", Biological{Behavior: Schooling})
	r.MustRegister("mycelium", Biological{
		Behavior: Colony, SurviveMax: 8,
		SpreadMin: 0, SpreadMax: 2, SpreadChance: 0.4, Spread: SpreadOrthogonal, TargetChance: 0.3,
		BirthMin: 1, BirthMax: 2, BirthChance: 0.3,
	}, infect())
	r.MustRegister("evolution", Biological{Behavior: Evolution}, WithInitial(oneOf(1, 2, 3, 4)), infect())
	r.MustRegister("dna", Biological{Behavior: DNA, Period: 10}, WithInitial(oneOf(1, 2, 3, 4)), infect())
	r.MustRegister("immune", Biological{Behavior: Immune}, WithInitial(weighted(0.7, 1, 2)), infect())
	r.MustRegister("neuron", Biological{
		Behavior: Colony, SurviveMax: 8,
		SpreadMin: 0, SpreadMax: 3, SpreadChance: 0.3, Spread: SpreadOne,
		BirthMin: 2, BirthMax: 3, BirthChance: 1,
	}, infect())
	r.MustRegister("roots", Biological{
		Behavior: Colony, SurviveMax: 8,
		SpreadMin: 0, SpreadMax: 2, SpreadChance: 0.4, Spread: SpreadRoots,
		BirthMin: 1, BirthMax: 2, BirthChance: 0.2,
	}, infect())
	r.MustRegister("algae", Biological{
		Behavior: Colony, SurviveMax: 6,
		SpreadMin: 0, SpreadMax: 4, SpreadChance: 0.6, Spread: SpreadMoore, TargetChance: 0.3,
		BirthMin: 2, BirthMax: 8, BirthChance: 0.4,
	}, infect())
	r.MustRegister("ecosystem", Biological{Behavior: Ecosystem}, WithInitial(weighted(0.8, 1, 2)))

	// Elementary: every Wolfram number.
	for n := 0; n <= 255; n++ {
		r.MustRegister(elementaryName(uint8(n)), Elementary{Number: uint8(n), Stride: 2})
	}

	// Turmite.
	r.MustRegister(Langton, Trail{})

	// Forest fire: 1 tree, 2 burning.
	r.MustRegister("forestfire", MultiState{
		States: 3,
		Clauses: []Clause{
			{From: 0, Count: 0, Min: 0, Max: 8, To: 1, Chance: 0.01, Alt: 0},
			{From: 1, Count: 2, Min: 1, Max: 8, To: 2},
			{From: 1, Count: 2, Min: 0, Max: 8, To: 2, Chance: 0.001, Alt: 1},
		},
		Decay: map[uint8]uint8{2: 0},
		Hold:  true,
	}, WithInitial(weighted(0.8, 1, 0)), WithInteraction(interact.Spec{
		States:      interact.StateMask(2),
		Shape:       interact.Moore,
		RequireLive: true,
		BaseRate:    0.3,
		State:       2,
		Strength:    0.5,
	}))
}

// Langton names the rule whose cells turmites paint.
const Langton = "langton"

func elementaryName(n uint8) string { return "rule" + strconv.Itoa(int(n)) }
