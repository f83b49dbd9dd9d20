// Package interact implements probabilistic colonization between rules.
//
// After a cell's own transition, a rule with an interaction hook may try to
// convert neighbouring cells owned by other rules. Each target resists in
// proportion to its strength: conversion succeeds with probability
// rate/strength.
package interact

import (
	"math/rand/v2"

	"ca-arena/internal/grid"
)

// BattleMultiplier scales every base rate while battle mode is on.
const BattleMultiplier = 2.0

// Shape lists target offsets relative to the acting cell.
type Shape []grid.Coord

var (
	// Moore targets the eight surrounding cells.
	Moore = Shape(grid.Moore)
	// Extended targets the 5x5 block around the actor.
	Extended = Shape(grid.Square(2))
	// Downward targets the three cells below the actor.
	Downward = Shape{{Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}}
)

// ResultKind selects how the converted state is chosen.
type ResultKind uint8

const (
	// ResultFixed writes Spec.State.
	ResultFixed ResultKind = iota
	// ResultEither writes one of Spec.Either chosen uniformly.
	ResultEither
	// ResultCycle writes the actor's next state modulo Spec.Cycle.
	ResultCycle
)

// Spec describes one rule's colonization hook.
type Spec struct {
	// States is a bitmask of actor states allowed to act; zero admits any.
	States uint16
	// MinAge requires the actor to be strictly older.
	MinAge uint32
	// MinForeign requires at least this many Moore neighbours owned by
	// another rule. With ForeignLive only live ones older than
	// ForeignMinAge are counted.
	MinForeign    int
	ForeignLive   bool
	ForeignMinAge uint32
	// MinKin requires this many Moore neighbours of the same rule in state 1.
	MinKin int
	// GateChance, when non-zero, is the probability the hook fires at all.
	GateChance float64

	Shape Shape
	// RequireLive skips targets in state 0.
	RequireLive bool
	// ClaimInert lets the hook take unowned cells as well.
	ClaimInert bool
	BaseRate   float64

	Result   ResultKind
	State    uint8
	Either   [2]uint8
	Cycle    uint8
	Strength float64
}

// StateMask builds a States bitmask.
func StateMask(states ...uint8) uint16 {
	var m uint16
	for _, s := range states {
		m |= 1 << s
	}
	return m
}

// Options carries the per-step toggles an interaction pass reads.
type Options struct {
	Battle bool
}

// Rate returns the effective conversion rate for the options.
func (s *Spec) Rate(opts Options) float64 {
	if opts.Battle {
		return s.BaseRate * BattleMultiplier
	}
	return s.BaseRate
}

// Converts draws one sample and reports whether a target of the given
// strength is converted at rate. Non-positive strengths count as the default.
func Converts(rng *rand.Rand, rate, strength float64) bool {
	if strength <= 0 {
		strength = grid.DefaultStrength
	}
	return rng.Float64() < rate/strength
}

// Gate reports whether the actor at (row, col) may act this generation.
func (s *Spec) Gate(g *grid.Grid, rng *rand.Rand, row, col int) bool {
	actor := g.Current(row, col)
	if s.States != 0 && s.States&(1<<actor.State) == 0 {
		return false
	}
	if s.MinAge > 0 && actor.Age <= s.MinAge {
		return false
	}
	if s.MinForeign > 0 {
		n := g.CountWhere(row, col, grid.Moore, func(c grid.Cell) bool {
			if c.Rule == grid.Inert || c.Rule == actor.Rule {
				return false
			}
			return !s.ForeignLive || (c.State > 0 && c.Age > s.ForeignMinAge)
		})
		if n < s.MinForeign {
			return false
		}
	}
	if s.MinKin > 0 && g.Count(row, col, actor.Rule, 1) < s.MinKin {
		return false
	}
	if s.GateChance > 0 && rng.Float64() >= s.GateChance {
		return false
	}
	return true
}

func (s *Spec) result(rng *rand.Rand, actor grid.Cell) uint8 {
	switch s.Result {
	case ResultEither:
		return s.Either[rng.IntN(2)]
	case ResultCycle:
		if s.Cycle == 0 {
			return actor.State
		}
		return (actor.State + 1) % s.Cycle
	default:
		return s.State
	}
}

// Colonize runs the hook of the actor at (row, col) against its shape and
// hands every conversion to sink. It returns how many targets converted.
func (s *Spec) Colonize(g *grid.Grid, sink grid.Sink, rng *rand.Rand, row, col int, opts Options) int {
	if !s.Gate(g, rng, row, col) {
		return 0
	}
	actor := g.Current(row, col)
	rate := s.Rate(opts)
	converted := 0
	for _, d := range s.Shape {
		if d.Row == 0 && d.Col == 0 {
			continue
		}
		tr, tc := g.Wrap(row+d.Row, col+d.Col)
		target := g.Current(tr, tc)
		if target.Rule == actor.Rule {
			continue
		}
		if target.Rule == grid.Inert && !s.ClaimInert {
			continue
		}
		if s.RequireLive && target.State == 0 {
			continue
		}
		if !Converts(rng, rate, target.Strength) {
			continue
		}
		sink.Put(grid.Write{
			Row:  tr,
			Col:  tc,
			Mode: grid.WriteCell,
			Cell: grid.Cell{
				State:    s.result(rng, actor),
				Rule:     actor.Rule,
				Strength: s.Strength,
			},
		})
		converted++
	}
	return converted
}
