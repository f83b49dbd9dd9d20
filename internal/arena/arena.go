// Package arena runs many cellular-automaton rules side by side on one
// toroidal grid and lets them fight over territory.
package arena

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"ca-arena/internal/core"
	"ca-arena/internal/grid"
	"ca-arena/internal/interact"
	"ca-arena/internal/rules"
	"ca-arena/internal/turmite"
)

// StepOptions are the per-generation toggles. They are read once at the
// start of a step.
type StepOptions struct {
	Interactions bool
	Battle       bool
	Order        WriteOrder
}

// Stats describes the last generation.
type Stats struct {
	Visited     int
	Conversions int
	Deferred    int
}

// Arena owns the grid, the ants and the generation counter. It is not safe
// for concurrent use: painting and querying must happen between steps.
type Arena struct {
	cfg   Config
	log   *slog.Logger
	rules *rules.Registry

	grid    *grid.Grid
	ants    turmite.Colony
	langton grid.RuleID

	rng  *rand.Rand
	gen  uint64
	opts StepOptions

	tr      *rules.Transition
	pending grid.Buffer
	unknown map[grid.RuleID]bool
	stats   Stats
	states  []uint8
}

// New validates cfg and builds an inert arena using the rule catalogue reg.
// A nil reg selects the built-in catalogue.
func New(cfg Config, reg *rules.Registry) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = rules.Default()
	}
	g, err := grid.New(cfg.Height, cfg.Width)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	a := &Arena{
		cfg:     cfg,
		log:     logger,
		rules:   reg,
		grid:    g,
		rng:     core.NewRNG(cfg.Seed).Source(),
		unknown: map[grid.RuleID]bool{},
		states:  make([]uint8, g.Len()),
		opts: StepOptions{
			Interactions: cfg.Interactions,
			Battle:       cfg.Battle,
			Order:        cfg.Order,
		},
	}
	if def, ok := reg.Lookup(rules.Langton); ok {
		a.langton = def.ID
	}
	a.tr = rules.NewTransition(g, a.rng, grid.Direct{G: g})
	return a, nil
}

// Step advances one generation using the arena's current options.
func (a *Arena) Step() { a.StepWith(a.opts) }

// StepWith advances one generation with explicit options:
//
//  1. reset the next buffer (rule and strength carry over, state and age zero);
//  2. sweep active cells in row-major order, running each rule's transition
//     and, when enabled, its colonization hook;
//  3. under OrderDeferred, apply the queued outward writes in issue order;
//  4. move the ants;
//  5. swap buffers and advance the generation counter.
func (a *Arena) StepWith(opts StepOptions) {
	g := a.grid
	g.ResetNext()

	var sink grid.Sink = grid.Direct{G: g}
	if opts.Order == OrderDeferred {
		sink = &a.pending
	}
	a.tr.SetSink(sink)
	a.tr.SetIsolated(!opts.Interactions)
	iopts := interact.Options{Battle: opts.Battle}
	stats := Stats{}

	cells := g.CurrentCells()
	rows, cols := g.Rows(), g.Cols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := cells[g.Index(r, c)]
			if !cell.Active() {
				continue
			}
			def, ok := a.rules.ByID(cell.Rule)
			if !ok {
				a.reportUnknown(cell.Rule)
				continue
			}
			stats.Visited++
			*g.NextRef(r, c) = grid.Cell{Rule: cell.Rule, Age: cell.Age + 1, Strength: cell.Strength}

			a.tr.Bind(a.gen, r, c, cell, def)
			def.Step(a.tr)

			if opts.Interactions && def.Interaction != nil {
				stats.Conversions += def.Interaction.Colonize(g, sink, a.rng, r, c, iopts)
			}
		}
	}

	if opts.Order == OrderDeferred {
		stats.Deferred = a.pending.Len()
		a.pending.Flush(g)
	}

	a.ants.Advance(g, a.langton)
	g.Swap()
	a.gen++
	a.stats = stats
}

func (a *Arena) reportUnknown(id grid.RuleID) {
	if a.unknown[id] {
		return
	}
	a.unknown[id] = true
	a.log.Debug("cell owned by unregistered rule left frozen", "rule_id", id, "generation", a.gen)
}

// Options returns the toggles Step uses.
func (a *Arena) Options() StepOptions { return a.opts }

// SetInteractionsEnabled toggles colonization between rules.
func (a *Arena) SetInteractionsEnabled(on bool) { a.opts.Interactions = on }

// SetBattleModeEnabled toggles the battle rate multiplier.
func (a *Arena) SetBattleModeEnabled(on bool) { a.opts.Battle = on }

// SetWriteOrder selects when outward writes land.
func (a *Arena) SetWriteOrder(o WriteOrder) { a.opts.Order = o }

// Generation returns the number of completed steps since the last reset.
func (a *Arena) Generation() uint64 { return a.gen }

// LastStats reports counters from the most recent step.
func (a *Arena) LastStats() Stats { return a.stats }

// Rows returns the grid height.
func (a *Arena) Rows() int { return a.grid.Rows() }

// Cols returns the grid width.
func (a *Arena) Cols() int { return a.grid.Cols() }

// Config returns the configuration the arena was built with.
func (a *Arena) Config() Config { return a.cfg }

// Registry exposes the rule catalogue in use.
func (a *Arena) Registry() *rules.Registry { return a.rules }

// Rule looks up a rule definition by name.
func (a *Arena) Rule(name string) (*rules.Def, bool) { return a.rules.Lookup(name) }

// RuleName resolves a rule id to its name.
func (a *Arena) RuleName(id grid.RuleID) string { return a.rules.Name(id) }

// Rand exposes the arena's random source for collaborators that paint
// between steps.
func (a *Arena) Rand() *rand.Rand { return a.rng }

func (a *Arena) checkAll(coords []grid.Coord) error {
	for _, at := range coords {
		if err := a.grid.Check(at.Row, at.Col); err != nil {
			return err
		}
	}
	return nil
}

// SeedRegion writes rule cells straight into the current buffer. Either every
// coordinate is written or, on error, none is.
func (a *Arena) SeedRegion(coords []grid.Coord, ruleName string, state uint8, strength float64) error {
	def, ok := a.rules.Lookup(ruleName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRule, ruleName)
	}
	if !(strength > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidStrength, strength)
	}
	if err := a.checkAll(coords); err != nil {
		return err
	}
	for _, at := range coords {
		*a.grid.CurrentRef(at.Row, at.Col) = grid.Cell{
			State:    state,
			Rule:     def.ID,
			Strength: strength,
		}
	}
	return nil
}

// ClearRegion resets cells to inert. Ants standing on them stay put.
func (a *Arena) ClearRegion(coords []grid.Coord) error {
	if err := a.checkAll(coords); err != nil {
		return err
	}
	for _, at := range coords {
		*a.grid.CurrentRef(at.Row, at.Col) = grid.Blank()
	}
	return nil
}

// AddAnt places a turmite.
func (a *Arena) AddAnt(row, col int, heading turmite.Heading) error {
	if err := a.grid.Check(row, col); err != nil {
		return err
	}
	a.ants.Add(turmite.Ant{Row: row, Col: col, Heading: heading})
	return nil
}

// RemoveAnts drops every ant standing on an in-bounds cell.
func (a *Arena) RemoveAnts(row, col int) (int, error) {
	if err := a.grid.Check(row, col); err != nil {
		return 0, err
	}
	return a.ants.RemoveAt(row, col), nil
}

// Ants returns a copy of the ant list.
func (a *Arena) Ants() []turmite.Ant { return a.ants.Ants() }

// CellAt returns the current cell at an in-bounds coordinate.
func (a *Arena) CellAt(row, col int) (grid.Cell, error) {
	if err := a.grid.Check(row, col); err != nil {
		return grid.Cell{}, err
	}
	return a.grid.Current(row, col), nil
}

// EachActive calls fn for every cell owned by a rule, in row-major order.
func (a *Arena) EachActive(fn func(row, col int, rule string, state uint8)) {
	cols := a.grid.Cols()
	for i, c := range a.grid.CurrentCells() {
		if !c.Active() {
			continue
		}
		fn(i/cols, i%cols, a.rules.Name(c.Rule), c.State)
	}
}

// CurrentCells exposes the authoritative buffer for read-only rendering.
func (a *Arena) CurrentCells() []grid.Cell { return a.grid.CurrentCells() }

// Clear empties the grid, drops every ant and rewinds the generation counter.
func (a *Arena) Clear() {
	a.grid.Clear()
	a.ants.Clear()
	a.gen = 0
	a.stats = Stats{}
}
