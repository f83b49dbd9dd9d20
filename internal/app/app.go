//go:build ebiten

package app

import (
	"strconv"
	"time"

	"ca-arena/internal/render"
	"ca-arena/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the side panel in pixels.
const HUDWidth = 240

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctl     *Controller
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale   int
	drawing bool
	erasing bool
	lastRow int
	lastCol int
}

// New constructs a Game drawing ctl's arena at scale pixels per cell.
func New(ctl *Controller, scale int) *Game {
	a := ctl.Arena()
	return &Game{
		ctl:     ctl,
		painter: render.NewGridPainter(a.Cols(), a.Rows(), render.NewLUT(a.Registry())),
		hud:     ui.NewHUD(ui.Title(a.Name()), HUDWidth, a),
		overlay: ui.NewOverlay(scale),
		scale:   scale,
	}
}

// Reset reinitializes the arena with the provided seed.
func (g *Game) Reset(seed int64) { g.ctl.Reset(seed) }

func (g *Game) cursor() (row, col int, inside bool) {
	mx, my := ebiten.CursorPosition()
	a := g.ctl.Arena()
	row, col = my/g.scale, mx/g.scale
	return row, col, mx >= 0 && my >= 0 && row < a.Rows() && col < a.Cols()
}

// Update handles per-frame input and advances the arena.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.handleKeys()
	g.handleMouse()
	g.overlay.Update()

	a := g.ctl.Arena()
	g.hud.Update(a.Cols()*g.scale, a.Parameters(), g.lines())
	g.ctl.Tick()
	return nil
}

func (g *Game) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	pressed := inpututil.IsKeyJustPressed
	switch {
	case pressed(ebiten.KeySpace):
		g.ctl.TogglePause()
	case pressed(ebiten.KeyN):
		g.ctl.RequestStep()
	case pressed(ebiten.KeyR):
		g.ctl.Reset(g.ctl.Seed())
	case pressed(ebiten.KeyS):
		g.ctl.Reset(time.Now().UnixNano())
	case pressed(ebiten.KeyC) && ctrl:
		g.ctl.Clear()
	case pressed(ebiten.KeyB):
		g.ctl.ToggleMode()
	case pressed(ebiten.KeyBracketLeft):
		g.ctl.GrowBrush(-1)
	case pressed(ebiten.KeyBracketRight):
		g.ctl.GrowBrush(1)
	case pressed(ebiten.KeyMinus):
		g.ctl.Speed(-1)
	case pressed(ebiten.KeyEqual):
		g.ctl.Speed(1)
	case pressed(ebiten.KeyTab) && shift:
		g.ctl.CycleSpecies(-1)
	case pressed(ebiten.KeyTab):
		g.ctl.CycleSpecies(1)
	case pressed(ebiten.KeyI):
		g.ctl.ToggleInteractions()
	case pressed(ebiten.KeyT):
		g.ctl.ToggleBattle()
	case pressed(ebiten.KeyO):
		g.ctl.ToggleOrder()
	case pressed(ebiten.KeyV):
		g.ctl.Invade()
	case pressed(ebiten.KeyP):
		g.ctl.Spawn()
	case pressed(ebiten.KeyA):
		if row, col, inside := g.cursor(); inside {
			g.ctl.ToggleAnt(row, col)
		}
	}
}

func (g *Game) handleMouse() {
	row, col, inside := g.cursor()
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)

	if inside && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		g.ctl.InvadeAt(row, col)
	}
	if !inside || (!left && !right) {
		g.drawing = false
		return
	}
	if !g.drawing || g.erasing != right {
		g.lastRow, g.lastCol = row, col
	}
	g.drawing, g.erasing = true, right
	if right {
		g.ctl.EraseLine(g.lastRow, g.lastCol, row, col)
	} else {
		g.ctl.DrawLine(g.lastRow, g.lastCol, row, col)
	}
	g.lastRow, g.lastCol = row, col
}

func (g *Game) lines() []ui.Line {
	species := render.Base(g.ctl.Species())
	lines := []ui.Line{
		{Text: g.ctl.Mode().String() + " " + g.ctl.Species(), Swatch: &species},
	}
	for _, name := range g.ctl.Census().Names() {
		if len(lines) > 16 {
			break
		}
		n := g.ctl.Census()[name]
		if n == 0 {
			continue
		}
		c := render.Base(name)
		lines = append(lines, ui.Line{Text: name + " " + strconv.Itoa(n), Swatch: &c})
	}
	return append(lines,
		ui.Line{Text: "gen " + strconv.Itoa(int(g.ctl.Arena().Generation()))},
		ui.Line{Text: "space pause  n step  tab rule"},
		ui.Line{Text: "b brush/erase  [ ] size"},
		ui.Line{Text: "i interact  t battle  o order"},
		ui.Line{Text: "v invade  p spawn  ctrl+c clear"},
		ui.Line{Text: "a ant at cursor"},
	)
}

// Draw renders the grid, the overlay and the side panel.
func (g *Game) Draw(screen *ebiten.Image) {
	a := g.ctl.Arena()
	g.painter.Blit(screen, a.CurrentCells(), a.Ants(), g.scale)
	row, col, inside := g.cursor()
	g.overlay.Draw(screen, ui.Cursor{
		Row: row, Col: col, Inside: inside,
		Size:  g.ctl.Brush(),
		Erase: g.ctl.Mode() == ModeErase || ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
	}, a.Ants())
	g.hud.Draw(screen, a.Cols()*g.scale, a.Rows()*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	a := g.ctl.Arena()
	return a.Cols()*g.scale + g.hud.Width(), a.Rows() * g.scale
}
