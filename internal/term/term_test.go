package term

import (
	"strings"
	"testing"

	"ca-arena/internal/app"
	"ca-arena/internal/arena"
	"ca-arena/internal/grid"
	"ca-arena/internal/render"
	"ca-arena/internal/turmite"

	"github.com/gdamore/tcell/v2"
)

func newViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 21)

	a, err := arena.Build("arena", map[string]string{"w": "40", "h": "20", "layout": "empty"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a.Reset(1)
	return New(screen, app.NewController(a, nil)), screen
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestFitSize(t *testing.T) {
	if c, r := FitSize(80, 25); c != 40 || r != 24 {
		t.Fatalf("FitSize = %d,%d", c, r)
	}
	if c, r := FitSize(1, 1); c != 1 || r != 1 {
		t.Fatalf("FitSize floor = %d,%d", c, r)
	}
}

func TestDrawPaintsCellColours(t *testing.T) {
	v, screen := newViewer(t)
	a := v.ctl.Arena()
	if err := a.SeedRegion([]grid.Coord{{Row: 2, Col: 3}}, "gameoflife", 1, 1); err != nil {
		t.Fatalf("SeedRegion: %v", err)
	}
	v.Draw()
	_, _, st, _ := screen.GetContent(6, 2)
	_, bg, _ := st.Decompose()
	want := render.Color("gameoflife", 1)
	if bg != tcell.NewRGBColor(int32(want.R), int32(want.G), int32(want.B)) {
		t.Fatalf("cell background = %v", bg)
	}
}

func TestDrawShowsAntsAndStatus(t *testing.T) {
	v, screen := newViewer(t)
	if err := v.ctl.Arena().AddAnt(1, 1, turmite.North); err != nil {
		t.Fatalf("AddAnt: %v", err)
	}
	v.Draw()
	if r, _, _, _ := screen.GetContent(2, 1); r != '@' {
		t.Fatalf("ant glyph = %q", r)
	}
	var b strings.Builder
	for x := 0; x < 20; x++ {
		r, _, _, _ := screen.GetContent(x, 20)
		b.WriteRune(r)
	}
	if !strings.HasPrefix(b.String(), "gen 0") {
		t.Fatalf("status line = %q", b.String())
	}
}

func TestKeysDriveController(t *testing.T) {
	v, _ := newViewer(t)
	v.HandleEvent(key(' '))
	if !v.ctl.Paused() {
		t.Fatalf("space should pause")
	}
	v.HandleEvent(key('i'))
	if v.ctl.Arena().Options().Interactions {
		t.Fatalf("i should toggle interactions off")
	}
	v.HandleEvent(key(']'))
	if v.ctl.Brush() != 4 {
		t.Fatalf("brush = %d, want 4", v.ctl.Brush())
	}
	if !v.HandleEvent(key('q')) {
		t.Fatalf("q should quit")
	}
}

func TestCursorMovesAndPaints(t *testing.T) {
	v, _ := newViewer(t)
	v.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	v.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	row, col := v.Cursor()
	if row != 9 || col != 19 {
		t.Fatalf("cursor = %d,%d", row, col)
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	cell, err := v.ctl.Arena().CellAt(row, col)
	if err != nil || !cell.Active() {
		t.Fatalf("enter did not paint: %+v, %v", cell, err)
	}
	for i := 0; i < 50; i++ {
		v.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	}
	if row, _ := v.Cursor(); row != 0 {
		t.Fatalf("cursor should stop at the edge, row %d", row)
	}
}

func TestMouseDragPaintsAndErases(t *testing.T) {
	v, _ := newViewer(t)
	v.ctl.GrowBrush(-10)
	v.HandleEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(20, 5, tcell.Button1, tcell.ModNone))
	a := v.ctl.Arena()
	for col := 5; col <= 10; col++ {
		if c, _ := a.CellAt(5, col); !c.Active() {
			t.Fatalf("drag skipped col %d", col)
		}
	}
	v.HandleEvent(tcell.NewEventMouse(20, 5, tcell.ButtonNone, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(14, 5, tcell.Button2, tcell.ModNone))
	if c, _ := a.CellAt(5, 7); c.Active() {
		t.Fatalf("right button should erase")
	}
}
