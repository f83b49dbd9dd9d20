package app

import (
	"fmt"
	"log/slog"
	"strings"

	"ca-arena/internal/arena"
	"ca-arena/internal/brush"
	"ca-arena/internal/census"
	"ca-arena/internal/core"
	"ca-arena/internal/turmite"
)

// Brush size and speed limits.
const (
	MinBrush = 1
	MaxBrush = 20
	MinTPS   = 1
	MaxTPS   = 60
)

// Mode selects what the primary pointer action does.
type Mode uint8

const (
	ModePaint Mode = iota
	ModeErase
)

func (m Mode) String() string {
	if m == ModeErase {
		return "erase"
	}
	return "paint"
}

// Controller holds viewer state shared by the GUI and the terminal front
// ends and turns user actions into arena calls. Painting happens between
// steps; the controller is driven from a single goroutine.
type Controller struct {
	arena *arena.Arena
	log   *slog.Logger
	clock *core.FixedStep

	species []string
	sel     int
	brush   int
	mode    Mode
	paused  bool
	step    bool
	seed    int64

	counts census.Counts
}

// NewController wraps a reset arena.
func NewController(a *arena.Arena, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := a.Config()
	c := &Controller{
		arena:   a,
		log:     logger,
		clock:   core.NewFixedStep(cfg.TPS),
		species: a.Registry().Names(),
		brush:   clamp(cfg.Brush, MinBrush, MaxBrush),
		seed:    cfg.Seed,
	}
	if len(cfg.Species) > 0 {
		c.Select(cfg.Species[0])
	}
	c.counts = census.Take(a)
	return c
}

func clamp(v, lo, hi int) int { return max(lo, min(hi, v)) }

// Arena returns the controlled arena.
func (c *Controller) Arena() *arena.Arena { return c.arena }

// Species returns the rule the brush paints with.
func (c *Controller) Species() string { return c.species[c.sel] }

// Select picks the brush rule by name.
func (c *Controller) Select(name string) bool {
	for i, s := range c.species {
		if s == name {
			c.sel = i
			return true
		}
	}
	return false
}

// CycleSpecies moves the brush rule selection by delta, wrapping.
func (c *Controller) CycleSpecies(delta int) string {
	n := len(c.species)
	c.sel = ((c.sel+delta)%n + n) % n
	return c.Species()
}

// Brush returns the brush size in cells.
func (c *Controller) Brush() int { return c.brush }

// GrowBrush changes the brush size by delta within limits.
func (c *Controller) GrowBrush(delta int) int {
	c.brush = clamp(c.brush+delta, MinBrush, MaxBrush)
	return c.brush
}

// Mode returns the pointer mode.
func (c *Controller) Mode() Mode { return c.mode }

// ToggleMode switches between painting and erasing.
func (c *Controller) ToggleMode() Mode {
	c.mode ^= 1
	return c.mode
}

// Paused reports whether automatic stepping is off.
func (c *Controller) Paused() bool { return c.paused }

// TogglePause flips automatic stepping.
func (c *Controller) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

// RequestStep advances exactly one generation on the next Tick while paused.
func (c *Controller) RequestStep() { c.step = true }

// TPS returns the target generations per second.
func (c *Controller) TPS() int { return c.clock.TPS() }

// Speed changes the target generations per second by delta.
func (c *Controller) Speed(delta int) int {
	c.clock.SetTPS(clamp(c.clock.TPS()+delta, MinTPS, MaxTPS))
	return c.clock.TPS()
}

// Tick is called once per frame. It steps the arena when the fixed-step
// clock says so, or once when a single step was requested, and reports
// whether a generation ran.
func (c *Controller) Tick() bool {
	due := c.clock.ShouldStep()
	if c.paused && !c.step {
		return false
	}
	if !c.paused && !due {
		return false
	}
	c.step = false
	c.arena.Step()
	c.counts = census.Take(c.arena)
	return true
}

func (c *Controller) refresh() { c.counts = census.Take(c.arena) }

// DrawAt applies the brush at a cell in the current mode.
func (c *Controller) DrawAt(row, col int) error {
	return c.DrawLine(row, col, row, col)
}

// DrawLine drags the brush from one cell to another in the current mode.
func (c *Controller) DrawLine(r0, c0, r1, c1 int) error {
	rule := c.Species()
	if c.mode == ModeErase {
		rule = ""
	}
	err := brush.Stroke(c.arena, c.arena.Rand(), r0, c0, r1, c1, c.brush, rule)
	c.refresh()
	return err
}

// EraseLine erases along a line regardless of mode.
func (c *Controller) EraseLine(r0, c0, r1, c1 int) error {
	err := brush.Stroke(c.arena, c.arena.Rand(), r0, c0, r1, c1, c.brush, "")
	c.refresh()
	return err
}

// InvadeAt drops an invasion patch of the selected rule centred on a cell.
func (c *Controller) InvadeAt(row, col int) (int, error) {
	n, err := brush.Invade(c.arena, c.arena.Rand(), row, col, c.Species())
	c.refresh()
	c.log.Debug("invasion", "rule", c.Species(), "row", row, "col", col, "cells", n)
	return n, err
}

// Invade drops an invasion patch of the selected rule at random.
func (c *Controller) Invade() (int, error) {
	n, err := brush.InvadeRandom(c.arena, c.arena.Rand(), c.Species())
	c.refresh()
	return n, err
}

// Spawn scatters the selected rule around a random point.
func (c *Controller) Spawn() (int, error) {
	n, err := brush.Spawn(c.arena, c.arena.Rand(), c.Species())
	c.refresh()
	return n, err
}

// ToggleAnt removes the ants on a cell, or places one facing north when
// there are none. It reports whether an ant was added.
func (c *Controller) ToggleAnt(row, col int) (bool, error) {
	n, err := c.arena.RemoveAnts(row, col)
	if err != nil || n > 0 {
		return false, err
	}
	return true, c.arena.AddAnt(row, col, turmite.North)
}

// ToggleInteractions flips colonization.
func (c *Controller) ToggleInteractions() bool {
	on := !c.arena.Options().Interactions
	c.arena.SetInteractionsEnabled(on)
	return on
}

// ToggleBattle flips battle mode.
func (c *Controller) ToggleBattle() bool {
	on := !c.arena.Options().Battle
	c.arena.SetBattleModeEnabled(on)
	return on
}

// ToggleOrder switches between deferred and scan-order writes.
func (c *Controller) ToggleOrder() arena.WriteOrder {
	o := arena.OrderScan
	if c.arena.Options().Order == arena.OrderScan {
		o = arena.OrderDeferred
	}
	c.arena.SetWriteOrder(o)
	return o
}

// Clear empties the arena.
func (c *Controller) Clear() {
	c.arena.Clear()
	c.refresh()
}

// Reset reseeds the arena's scenario.
func (c *Controller) Reset(seed int64) {
	c.seed = seed
	c.arena.Reset(seed)
	c.refresh()
}

// Seed returns the seed of the last reset.
func (c *Controller) Seed() int64 { return c.seed }

// Census returns the live-cell tally as of the last change.
func (c *Controller) Census() census.Counts { return c.counts }

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Status is a one-line summary of the arena and the controls.
func (c *Controller) Status() string {
	opts := c.arena.Options()
	state := "running"
	if c.paused {
		state = "paused"
	}
	return fmt.Sprintf("gen %d %s | %d tps | live %d | interactions %s battle %s order %s | %s %s brush %d",
		c.arena.Generation(), state, c.TPS(), c.counts.Total(),
		onOff(opts.Interactions), onOff(opts.Battle), opts.Order,
		c.mode, c.Species(), c.brush)
}

// Leaders lists the n most populous rules as "name count" pairs.
func (c *Controller) Leaders(n int) []string {
	names := c.counts.Names()
	var out []string
	for _, name := range names {
		if len(out) == n || c.counts[name] == 0 {
			break
		}
		out = append(out, fmt.Sprintf("%s %d", name, c.counts[name]))
	}
	return out
}

// Summary joins the leaders into a single line.
func (c *Controller) Summary(n int) string { return strings.Join(c.Leaders(n), "  ") }
