package arena

import (
	"fmt"
	"strconv"
	"strings"

	"ca-arena/internal/brush"
	"ca-arena/internal/core"
	"ca-arena/internal/grid"
	"ca-arena/internal/rules"
	"ca-arena/internal/turmite"
)

// Name returns the simulation identifier.
func (a *Arena) Name() string { return a.cfg.Name }

// Size returns the grid dimensions.
func (a *Arena) Size() core.Size { return core.Size{W: a.grid.Cols(), H: a.grid.Rows()} }

// Cells returns the state of every cell in row-major order, 0 for inert
// cells. Owners are not encoded; rule-aware colouring reads CurrentCells
// through a render.LUT. The slice is reused between calls.
func (a *Arena) Cells() []uint8 {
	for i, c := range a.grid.CurrentCells() {
		if c.Active() {
			a.states[i] = c.State
		} else {
			a.states[i] = 0
		}
	}
	return a.states
}

// Reset clears the arena, reseeds the random source and lays out the
// configured scenario. Seeding problems are logged; the arena stays usable.
func (a *Arena) Reset(seed int64) {
	a.cfg.Seed = seed
	a.rng = core.NewRNG(seed).Source()
	a.tr = rules.NewTransition(a.grid, a.rng, grid.Direct{G: a.grid})
	a.Clear()
	clear(a.unknown)
	if err := a.populate(); err != nil {
		a.log.Warn("scenario seeding failed", "sim", a.cfg.Name, "err", err)
	}
}

func (a *Arena) species() ([]string, error) {
	for _, name := range a.cfg.Species {
		if _, ok := a.rules.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
	}
	return a.cfg.Species, nil
}

func (a *Arena) populate() error {
	names, err := a.species()
	if err != nil {
		return err
	}
	rows, cols := a.grid.Rows(), a.grid.Cols()

	switch a.cfg.Layout {
	case LayoutPatches:
		for _, name := range names {
			for i := 0; i < a.cfg.Patches; i++ {
				if _, err := brush.InvadeRandom(a, a.rng, name); err != nil {
					return err
				}
			}
		}
	case LayoutFill:
		if len(names) == 0 {
			break
		}
		var live, dead []grid.Coord
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				at := grid.Coord{Row: r, Col: c}
				if a.rng.Float64() < a.cfg.Density {
					live = append(live, at)
				} else {
					dead = append(dead, at)
				}
			}
		}
		if err := a.SeedRegion(dead, names[0], 0, grid.DefaultStrength); err != nil {
			return err
		}
		if err := a.SeedRegion(live, names[0], 1, grid.DefaultStrength); err != nil {
			return err
		}
	case LayoutLine:
		if len(names) == 0 {
			break
		}
		row := make([]grid.Coord, cols)
		for c := range row {
			row[c] = grid.Coord{Row: 0, Col: c}
		}
		if err := a.SeedRegion(row, names[0], 0, grid.DefaultStrength); err != nil {
			return err
		}
		if err := a.SeedRegion(row[cols/2:cols/2+1], names[0], 1, grid.DefaultStrength); err != nil {
			return err
		}
	}

	for i := 0; i < a.cfg.Ants; i++ {
		r, c, h := rows/2, cols/2, a.cfg.Heading
		if i > 0 {
			r, c, h = a.rng.IntN(rows), a.rng.IntN(cols), turmite.Heading(a.rng.IntN(4))
		}
		if err := a.AddAnt(r, c, h); err != nil {
			return err
		}
	}
	return nil
}

// Parameters exposes the arena's settings to viewers.
func (a *Arena) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Arena",
			Params: []core.Parameter{
				intParam("w", "Width", a.grid.Cols()),
				intParam("h", "Height", a.grid.Rows()),
				{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(a.cfg.Seed, 10)},
				{Key: "species", Label: "Species", Type: core.ParamTypeString, Value: strings.Join(a.cfg.Species, ",")},
				{Key: "layout", Label: "Layout", Type: core.ParamTypeString, Value: a.cfg.Layout.String()},
			},
		},
		{
			Name: "Interactions",
			Params: []core.Parameter{
				boolParam("interactions", "Interactions", a.opts.Interactions),
				boolParam("battle", "Battle mode", a.opts.Battle),
				boolParam("scan_order", "Scan-order writes", a.opts.Order == OrderScan),
			},
		},
	}}
}

// SetBoolParameter flips an interaction toggle by key. Every boolean in the
// Interactions group is settable.
func (a *Arena) SetBoolParameter(key string, value bool) bool {
	switch key {
	case "interactions":
		a.SetInteractionsEnabled(value)
	case "battle":
		a.SetBattleModeEnabled(value)
	case "scan_order":
		if value {
			a.SetWriteOrder(OrderScan)
		} else {
			a.SetWriteOrder(OrderDeferred)
		}
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}

// Preset returns the base configuration registered under name.
func Preset(name string) (Config, bool) {
	c := DefaultConfig()
	c.Name = name
	switch name {
	case "arena":
	case "life":
		c.Species = []string{"gameoflife"}
		c.Layout = LayoutFill
		c.Interactions = false
	case "briansbrain":
		c.Species = []string{"brain"}
		c.Layout = LayoutFill
		c.Density = 0.125
		c.Interactions = false
	case "elementary":
		c.Species = []string{"rule110"}
		c.Layout = LayoutLine
		c.Interactions = false
	case "langton":
		c.Species = nil
		c.Layout = LayoutEmpty
		c.Ants = 1
	default:
		return Config{}, false
	}
	return c, true
}

// PresetNames lists the registered presets.
var PresetNames = []string{"arena", "life", "briansbrain", "elementary", "langton"}

// Build constructs the preset name with cfg overlaid.
func Build(name string, cfg map[string]string) (*Arena, error) {
	c, ok := Preset(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
	}
	if v, ok := cfg["rule"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 255 {
			c.Species = []string{"rule" + strconv.Itoa(n)}
		}
	}
	c.Apply(cfg)
	return New(c, nil)
}

func init() {
	for _, name := range PresetNames {
		name := name
		core.Register(name, func(cfg map[string]string) (core.Sim, error) {
			a, err := Build(name, cfg)
			if err != nil {
				return nil, err
			}
			return a, nil
		})
	}
}
