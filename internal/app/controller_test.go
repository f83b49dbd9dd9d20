package app

import (
	"strings"
	"testing"

	"ca-arena/internal/arena"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	a, err := arena.Build("arena", map[string]string{"w": "40", "h": "40", "layout": "empty"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a.Reset(3)
	return NewController(a, nil)
}

func TestControllerStartsOnFirstSpecies(t *testing.T) {
	c := newController(t)
	if c.Species() != "gameoflife" {
		t.Fatalf("Species = %q", c.Species())
	}
	if c.Brush() != 3 {
		t.Fatalf("Brush = %d", c.Brush())
	}
}

func TestCycleSpeciesWraps(t *testing.T) {
	c := newController(t)
	start := c.Species()
	n := len(c.species)
	if got := c.CycleSpecies(n); got != start {
		t.Fatalf("full cycle landed on %q, want %q", got, start)
	}
	back := c.CycleSpecies(-1)
	if c.CycleSpecies(1) != start || back == start {
		t.Fatalf("cycling back and forth is inconsistent")
	}
}

func TestBrushLimits(t *testing.T) {
	c := newController(t)
	if c.GrowBrush(100) != MaxBrush || c.GrowBrush(-100) != MinBrush {
		t.Fatalf("brush not clamped")
	}
}

func TestPaintAndEraseUpdateCensus(t *testing.T) {
	c := newController(t)
	c.Select("cyclic")
	if err := c.DrawAt(20, 20); err != nil {
		t.Fatalf("DrawAt: %v", err)
	}
	painted := c.Census()["cyclic"]
	if _, ok := c.Census()["cyclic"]; !ok {
		t.Fatalf("census missing painted rule: %v", c.Census())
	}
	c.ToggleMode()
	if err := c.DrawAt(20, 20); err != nil {
		t.Fatalf("DrawAt erase: %v", err)
	}
	if _, ok := c.Census()["cyclic"]; ok {
		t.Fatalf("erase left %d cyclic cells", painted)
	}
}

func TestPausedTickOnlyStepsOnRequest(t *testing.T) {
	c := newController(t)
	c.TogglePause()
	if c.Tick() {
		t.Fatalf("paused controller stepped")
	}
	c.RequestStep()
	if !c.Tick() || c.Arena().Generation() != 1 {
		t.Fatalf("requested step did not run")
	}
	if c.Tick() {
		t.Fatalf("step request should be consumed")
	}
}

func TestTogglesReachArena(t *testing.T) {
	c := newController(t)
	if c.ToggleInteractions() || c.Arena().Options().Interactions {
		t.Fatalf("interactions should now be off")
	}
	if !c.ToggleBattle() || !c.Arena().Options().Battle {
		t.Fatalf("battle should now be on")
	}
	if c.ToggleOrder() != arena.OrderScan {
		t.Fatalf("order should flip to scan")
	}
	status := c.Status()
	for _, want := range []string{"interactions off", "battle on", "order scan", "gen 0"} {
		if !strings.Contains(status, want) {
			t.Fatalf("status %q missing %q", status, want)
		}
	}
}

func TestInvadeAndLeaders(t *testing.T) {
	c := newController(t)
	c.Select("virus")
	if n, err := c.InvadeAt(20, 20); err != nil || n == 0 {
		t.Fatalf("InvadeAt = %d, %v", n, err)
	}
	leaders := c.Leaders(3)
	if len(leaders) != 1 || !strings.HasPrefix(leaders[0], "virus ") {
		t.Fatalf("leaders = %v", leaders)
	}
	c.Clear()
	if c.Census().Total() != 0 || len(c.Leaders(3)) != 0 {
		t.Fatalf("clear left cells behind")
	}
}

func TestSpeedClamped(t *testing.T) {
	c := newController(t)
	if c.Speed(1000) != MaxTPS || c.Speed(-1000) != MinTPS {
		t.Fatalf("speed not clamped")
	}
}

func TestToggleAntPlacesAndRemoves(t *testing.T) {
	c := newController(t)
	added, err := c.ToggleAnt(5, 6)
	if err != nil || !added || len(c.Arena().Ants()) != 1 {
		t.Fatalf("first toggle: added=%v err=%v ants=%d", added, err, len(c.Arena().Ants()))
	}
	added, err = c.ToggleAnt(5, 6)
	if err != nil || added || len(c.Arena().Ants()) != 0 {
		t.Fatalf("second toggle: added=%v err=%v ants=%d", added, err, len(c.Arena().Ants()))
	}
	if _, err := c.ToggleAnt(-1, 0); err == nil {
		t.Fatalf("out-of-bounds toggle should fail")
	}
}
