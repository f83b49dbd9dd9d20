package arena

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"ca-arena/internal/grid"
	"ca-arena/internal/turmite"
)

var (
	// ErrInvalidConfig is returned when a configuration cannot produce a grid.
	ErrInvalidConfig = errors.New("arena: invalid config")
	// ErrUnknownRule is returned when a rule name is not registered.
	ErrUnknownRule = errors.New("arena: unknown rule")
	// ErrInvalidStrength is returned when a seeded strength is not positive.
	ErrInvalidStrength = errors.New("arena: strength must be positive")
	// ErrOutOfBounds is returned for external coordinates outside the grid.
	ErrOutOfBounds = grid.ErrOutOfBounds
)

// WriteOrder selects when outward and interaction writes land in the next
// buffer.
type WriteOrder uint8

const (
	// OrderDeferred queues outward writes during the sweep and applies them
	// in issue order afterwards. Colonization does not depend on scan
	// position.
	OrderDeferred WriteOrder = iota
	// OrderScan applies writes immediately. A later cell's own transition
	// overwrites a write aimed at it; writes to cells already visited stick.
	OrderScan
)

func (o WriteOrder) String() string {
	if o == OrderScan {
		return "scan"
	}
	return "deferred"
}

// ParseWriteOrder accepts "deferred" or "scan".
func ParseWriteOrder(s string) (WriteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deferred", "":
		return OrderDeferred, nil
	case "scan":
		return OrderScan, nil
	}
	return OrderDeferred, fmt.Errorf("%w: unknown write order %q", ErrInvalidConfig, s)
}

// Layout selects how Reset populates the grid.
type Layout uint8

const (
	// LayoutPatches drops invasion patches of each species at random.
	LayoutPatches Layout = iota
	// LayoutFill gives every cell to the first species, live with Density.
	LayoutFill
	// LayoutLine gives the top row to the first species with one live
	// cell in the middle.
	LayoutLine
	// LayoutEmpty leaves the grid inert apart from ants.
	LayoutEmpty
)

var layoutNames = map[Layout]string{
	LayoutPatches: "patches",
	LayoutFill:    "fill",
	LayoutLine:    "line",
	LayoutEmpty:   "empty",
}

func (l Layout) String() string { return layoutNames[l] }

// ParseLayout accepts a layout name.
func ParseLayout(s string) (Layout, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, name := range layoutNames {
		if name == s {
			return l, nil
		}
	}
	return LayoutPatches, fmt.Errorf("%w: unknown layout %q", ErrInvalidConfig, s)
}

// Config controls arena construction and scenario seeding.
type Config struct {
	Name     string
	Width    int
	Height   int
	CellSize int
	TPS      int
	Brush    int

	Seed int64

	Interactions bool
	Battle       bool
	Order        WriteOrder

	Species []string
	Layout  Layout
	Patches int
	Density float64
	Ants    int
	// Heading is the direction of the first ant; later ants face at random.
	Heading turmite.Heading

	Logger *slog.Logger
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Name:         "arena",
		Width:        256,
		Height:       256,
		CellSize:     4,
		TPS:          10,
		Brush:        3,
		Seed:         1337,
		Interactions: true,
		Order:        OrderDeferred,
		Species:      []string{"gameoflife", "brain", "virus", "cyclic"},
		Layout:       LayoutPatches,
		Patches:      2,
		Density:      0.5,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed values are ignored and leave the default in place.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.Apply(cfg)
	return c
}

// Apply overlays key/value pairs onto c.
func (c *Config) Apply(cfg map[string]string) {
	if cfg == nil {
		return
	}
	if v, ok := cfg["name"]; ok && v != "" {
		c.Name = v
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["cell"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.CellSize = parsed
		}
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TPS = parsed
		}
	}
	if v, ok := cfg["brush"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Brush = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["interactions"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Interactions = parsed
		}
	}
	if v, ok := cfg["battle"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Battle = parsed
		}
	}
	if v, ok := cfg["order"]; ok {
		if parsed, err := ParseWriteOrder(v); err == nil {
			c.Order = parsed
		}
	}
	if v, ok := cfg["species"]; ok {
		if names := splitList(v); len(names) > 0 {
			c.Species = names
		}
	}
	if v, ok := cfg["layout"]; ok {
		if parsed, err := ParseLayout(v); err == nil {
			c.Layout = parsed
		}
	}
	if v, ok := cfg["patches"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Patches = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["ants"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Ants = parsed
		}
	}
	if v, ok := cfg["heading"]; ok {
		if parsed, err := turmite.ParseHeading(v); err == nil {
			c.Heading = parsed
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports the first field that cannot produce a working arena.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height %d", ErrInvalidConfig, c.Height)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size %d", ErrInvalidConfig, c.CellSize)
	case c.Density < 0 || c.Density > 1:
		return fmt.Errorf("%w: density %v", ErrInvalidConfig, c.Density)
	case c.Patches < 0 || c.Ants < 0:
		return fmt.Errorf("%w: negative patch or ant count", ErrInvalidConfig)
	}
	return nil
}

// Bind registers the configuration keys on fs as flags writing into a map
// that FromMap understands. Only flags the user set end up in the map.
func Bind(fs *flag.FlagSet) func() map[string]string {
	d := DefaultConfig()
	keys := map[string]*string{}
	def := func(key, value, usage string) {
		keys[key] = fs.String(key, value, usage)
	}
	def("w", strconv.Itoa(d.Width), "grid width in cells")
	def("h", strconv.Itoa(d.Height), "grid height in cells")
	def("cell", strconv.Itoa(d.CellSize), "cell size in pixels")
	def("tps", strconv.Itoa(d.TPS), "generations per second")
	def("brush", strconv.Itoa(d.Brush), "brush size in cells")
	def("seed", strconv.FormatInt(d.Seed, 10), "random seed")
	def("interactions", strconv.FormatBool(d.Interactions), "enable colonization between rules")
	def("battle", strconv.FormatBool(d.Battle), "double every colonization rate")
	def("order", d.Order.String(), "write order: deferred or scan")
	def("species", strings.Join(d.Species, ","), "comma-separated rule names to seed")
	def("layout", d.Layout.String(), "seeding layout: patches, fill, line or empty")
	def("patches", strconv.Itoa(d.Patches), "invasion patches per species")
	def("density", strconv.FormatFloat(d.Density, 'f', -1, 64), "live fraction for the fill layout")
	def("ants", strconv.Itoa(d.Ants), "turmites placed at reset")
	def("heading", d.Heading.String(), "heading of the first turmite: n, e, s or w")
	return func() map[string]string {
		out := map[string]string{}
		fs.Visit(func(f *flag.Flag) {
			if p, ok := keys[f.Name]; ok {
				out[f.Name] = *p
			}
		})
		return out
	}
}
