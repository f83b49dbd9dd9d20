package arena

import (
	"errors"
	"flag"
	"testing"

	"ca-arena/internal/core"
	"ca-arena/internal/turmite"
)

func TestFromMapOverridesAndIgnoresGarbage(t *testing.T) {
	c := FromMap(map[string]string{
		"w":            "64",
		"h":            "nope",
		"seed":         "42",
		"interactions": "false",
		"battle":       "true",
		"order":        "scan",
		"species":      " virus, ,cancer ",
		"layout":       "fill",
		"density":      "1.5",
		"ants":         "3",
	})
	d := DefaultConfig()
	if c.Width != 64 || c.Height != d.Height {
		t.Fatalf("size = %dx%d", c.Width, c.Height)
	}
	if c.Seed != 42 || c.Interactions || !c.Battle || c.Order != OrderScan {
		t.Fatalf("toggles not applied: %+v", c)
	}
	if len(c.Species) != 2 || c.Species[0] != "virus" || c.Species[1] != "cancer" {
		t.Fatalf("species = %v", c.Species)
	}
	if c.Layout != LayoutFill || c.Density != d.Density || c.Ants != 3 {
		t.Fatalf("layout fields = %v %v %v", c.Layout, c.Density, c.Ants)
	}
}

func TestParseWriteOrder(t *testing.T) {
	if o, err := ParseWriteOrder("Scan"); err != nil || o != OrderScan {
		t.Fatalf("ParseWriteOrder(Scan) = %v, %v", o, err)
	}
	if o, err := ParseWriteOrder(""); err != nil || o != OrderDeferred {
		t.Fatalf("empty order should default to deferred, got %v, %v", o, err)
	}
	if _, err := ParseWriteOrder("sideways"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestParseLayoutRoundTrip(t *testing.T) {
	for _, l := range []Layout{LayoutPatches, LayoutFill, LayoutLine, LayoutEmpty} {
		got, err := ParseLayout(l.String())
		if err != nil || got != l {
			t.Fatalf("ParseLayout(%q) = %v, %v", l.String(), got, err)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	c := DefaultConfig()
	c.Density = -0.1
	if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestBindReturnsOnlySetFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	values := Bind(fs)
	if err := fs.Parse([]string{"-w", "32", "-order", "scan"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := values()
	if len(got) != 2 || got["w"] != "32" || got["order"] != "scan" {
		t.Fatalf("values = %v", got)
	}
}

func TestPresetsBuildAndReset(t *testing.T) {
	for _, name := range PresetNames {
		a, err := Build(name, map[string]string{"w": "40", "h": "30"})
		if err != nil {
			t.Fatalf("Build(%s): %v", name, err)
		}
		a.Reset(7)
		if a.Name() != name {
			t.Fatalf("Name = %q, want %q", a.Name(), name)
		}
		if sz := a.Size(); sz.W != 40 || sz.H != 30 {
			t.Fatalf("%s: size = %+v", name, sz)
		}
		if len(a.Cells()) != 40*30 {
			t.Fatalf("%s: Cells has %d entries", name, len(a.Cells()))
		}
		a.Step()
		if a.Generation() != 1 {
			t.Fatalf("%s: generation = %d after one step", name, a.Generation())
		}
	}
	if _, err := Build("nonsense", nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for unknown preset, got %v", err)
	}
}

func TestElementaryPresetPicksRule(t *testing.T) {
	a, err := Build("elementary", map[string]string{"rule": "90", "w": "21", "h": "10"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a.Reset(1)
	cell, _ := a.CellAt(0, 10)
	if a.RuleName(cell.Rule) != "rule90" || cell.State != 1 {
		t.Fatalf("seed cell = %+v (%s)", cell, a.RuleName(cell.Rule))
	}

	for _, n := range []string{"7", "45", "0", "255"} {
		a, err := Build("elementary", map[string]string{"rule": n, "w": "21", "h": "10"})
		if err != nil {
			t.Fatalf("Build(rule=%s): %v", n, err)
		}
		a.Reset(1)
		cell, _ := a.CellAt(0, 10)
		if a.RuleName(cell.Rule) != "rule"+n || cell.State != 1 {
			t.Fatalf("rule=%s seed cell = %+v (%s)", n, cell, a.RuleName(cell.Rule))
		}
		if got := len(live(a, "rule"+n)); got != 1 {
			t.Fatalf("rule=%s seeded %d live cells, want 1", n, got)
		}
	}
}

func TestLangtonPresetPlacesAnt(t *testing.T) {
	a, err := Build("langton", map[string]string{"w": "20", "h": "20"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a.Reset(1)
	ants := a.Ants()
	if len(ants) != 1 || ants[0].Row != 10 || ants[0].Col != 10 {
		t.Fatalf("ants = %+v", ants)
	}
}

func TestHeadingKeyTurnsFirstAnt(t *testing.T) {
	a, err := Build("langton", map[string]string{"w": "20", "h": "20", "heading": "w"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a.Reset(1)
	if h := a.Ants()[0].Heading; h != turmite.West {
		t.Fatalf("heading = %v, want west", h)
	}
	if c := FromMap(map[string]string{"heading": "up"}); c.Heading != turmite.North {
		t.Fatalf("bad heading should keep the default, got %v", c.Heading)
	}
	n, err := a.RemoveAnts(10, 10)
	if err != nil || n != 1 || len(a.Ants()) != 0 {
		t.Fatalf("RemoveAnts = %d, %v; ants left %d", n, err, len(a.Ants()))
	}
	if _, err := a.RemoveAnts(20, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestResetIsDeterministic(t *testing.T) {
	run := func() []uint8 {
		a, err := Build("arena", map[string]string{"w": "48", "h": "48"})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		a.Reset(99)
		for i := 0; i < 10; i++ {
			a.Step()
		}
		return append([]uint8(nil), a.Cells()...)
	}
	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("cell %d differs between identical runs", i)
		}
	}
}

func TestSetBoolParameter(t *testing.T) {
	a, err := Build("arena", map[string]string{"w": "8", "h": "8"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !a.SetBoolParameter("battle", true) || !a.Options().Battle {
		t.Fatalf("battle toggle not applied")
	}
	if a.SetBoolParameter("colour", true) {
		t.Fatalf("unknown key should be rejected")
	}
	if !a.SetBoolParameter("scan_order", true) || a.Options().Order != OrderScan {
		t.Fatalf("scan_order toggle not applied")
	}
	if !a.SetBoolParameter("scan_order", false) || a.Options().Order != OrderDeferred {
		t.Fatalf("scan_order toggle not cleared")
	}
	for _, g := range a.Parameters().Groups {
		if g.Name != "Interactions" {
			continue
		}
		for _, p := range g.Params {
			if p.Type != core.ParamTypeBool {
				t.Fatalf("interaction parameter %q is not a toggle", p.Key)
			}
			if !a.SetBoolParameter(p.Key, true) {
				t.Fatalf("published toggle %q is not settable", p.Key)
			}
		}
	}
}

func TestPresetsRegisteredAsSims(t *testing.T) {
	names := core.SimNames()
	for _, want := range PresetNames {
		found := false
		for _, n := range names {
			found = found || n == want
		}
		if !found {
			t.Fatalf("preset %q not registered, have %v", want, names)
		}
	}
	sim, err := core.Build("life", map[string]string{"w": "16", "h": "12"})
	if err != nil {
		t.Fatalf("core.Build: %v", err)
	}
	sim.Reset(5)
	if sz := sim.Size(); sz.W != 16 || sz.H != 12 || len(sim.Cells()) != 16*12 {
		t.Fatalf("life sim size = %+v", sz)
	}
	if _, ok := sim.(core.ParameterProvider); !ok {
		t.Fatalf("arena should expose parameters")
	}
}
