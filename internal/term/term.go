// Package term shows an arena in a terminal with tcell. Each grid cell takes
// two terminal columns; the bottom row carries the status line.
package term

import (
	"context"
	"time"

	"ca-arena/internal/app"
	"ca-arena/internal/grid"
	"ca-arena/internal/render"

	"github.com/gdamore/tcell/v2"
)

// FrameInterval is how often the viewer redraws and ticks the controller.
const FrameInterval = time.Second / 30

// Viewer draws a controller's arena onto a tcell screen and maps key and
// mouse events onto controller actions.
type Viewer struct {
	screen tcell.Screen
	ctl    *app.Controller
	lut    render.LUT

	row, col int
	last     *grid.Coord
}

// New builds a viewer. The screen must already be initialised.
func New(screen tcell.Screen, ctl *app.Controller) *Viewer {
	a := ctl.Arena()
	screen.EnableMouse()
	return &Viewer{
		screen: screen,
		ctl:    ctl,
		lut:    render.NewLUT(a.Registry()),
		row:    a.Rows() / 2,
		col:    a.Cols() / 2,
	}
}

// FitSize returns the largest grid that fits a terminal of w by h characters.
func FitSize(w, h int) (cols, rows int) {
	return max(1, w/2), max(1, h-1)
}

func style(c [3]uint8) tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2])))
}

// Draw paints the grid, ants, cursor and status line.
func (v *Viewer) Draw() {
	a := v.ctl.Arena()
	cols := a.Cols()
	for i, c := range a.CurrentCells() {
		col := v.lut.At(c)
		st := style([3]uint8{col.R, col.G, col.B})
		x, y := (i%cols)*2, i/cols
		v.screen.SetContent(x, y, ' ', nil, st)
		v.screen.SetContent(x+1, y, ' ', nil, st)
	}
	antStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	for _, ant := range a.Ants() {
		v.screen.SetContent(ant.Col*2, ant.Row, '@', nil, antStyle)
		v.screen.SetContent(ant.Col*2+1, ant.Row, ' ', nil, antStyle)
	}
	cur := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	if v.ctl.Mode() == app.ModeErase {
		cur = cur.Foreground(tcell.ColorRed)
	}
	v.screen.SetContent(v.col*2, v.row, '[', nil, cur)
	v.screen.SetContent(v.col*2+1, v.row, ']', nil, cur)

	v.drawStatus(a.Rows())
	v.screen.Show()
}

func (v *Viewer) drawStatus(y int) {
	w, _ := v.screen.Size()
	line := []rune(v.ctl.Status() + " | " + v.ctl.Summary(4))
	st := tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		v.screen.SetContent(x, y, r, nil, st)
	}
}

// Cursor returns the keyboard cursor position in cells.
func (v *Viewer) Cursor() (row, col int) { return v.row, v.col }

func (v *Viewer) move(dr, dc int) {
	a := v.ctl.Arena()
	v.row = min(max(v.row+dr, 0), a.Rows()-1)
	v.col = min(max(v.col+dc, 0), a.Cols()-1)
}

// HandleEvent applies one event and reports whether the viewer should quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		return v.key(ev)
	case *tcell.EventMouse:
		v.mouse(ev)
	}
	return false
}

func (v *Viewer) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlQ:
		return true
	case tcell.KeyCtrlC:
		v.ctl.Clear()
	case tcell.KeyUp:
		v.move(-1, 0)
	case tcell.KeyDown:
		v.move(1, 0)
	case tcell.KeyLeft:
		v.move(0, -1)
	case tcell.KeyRight:
		v.move(0, 1)
	case tcell.KeyEnter:
		v.ctl.DrawAt(v.row, v.col)
	case tcell.KeyTab:
		v.ctl.CycleSpecies(1)
	case tcell.KeyBacktab:
		v.ctl.CycleSpecies(-1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			v.ctl.TogglePause()
		case 'n':
			v.ctl.RequestStep()
		case 'r':
			v.ctl.Reset(v.ctl.Seed())
		case 's':
			v.ctl.Reset(time.Now().UnixNano())
		case 'b':
			v.ctl.ToggleMode()
		case 'x':
			v.ctl.EraseLine(v.row, v.col, v.row, v.col)
		case '[':
			v.ctl.GrowBrush(-1)
		case ']':
			v.ctl.GrowBrush(1)
		case '-':
			v.ctl.Speed(-1)
		case '=', '+':
			v.ctl.Speed(1)
		case 'i':
			v.ctl.ToggleInteractions()
		case 't':
			v.ctl.ToggleBattle()
		case 'o':
			v.ctl.ToggleOrder()
		case 'v':
			v.ctl.InvadeAt(v.row, v.col)
		case 'p':
			v.ctl.Spawn()
		case 'a':
			v.ctl.ToggleAnt(v.row, v.col)
		}
	}
	return false
}

func (v *Viewer) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	a := v.ctl.Arena()
	row, col := y, x/2
	if row < 0 || row >= a.Rows() || col < 0 || col >= a.Cols() {
		v.last = nil
		return
	}
	v.row, v.col = row, col
	btn := ev.Buttons()
	if btn&(tcell.Button1|tcell.Button2) == 0 {
		v.last = nil
		if btn&tcell.Button3 != 0 {
			v.ctl.InvadeAt(row, col)
		}
		return
	}
	from := grid.Coord{Row: row, Col: col}
	if v.last != nil {
		from = *v.last
	}
	if btn&tcell.Button2 != 0 {
		v.ctl.EraseLine(from.Row, from.Col, row, col)
	} else {
		v.ctl.DrawLine(from.Row, from.Col, row, col)
	}
	v.last = &grid.Coord{Row: row, Col: col}
}

// Run polls events and redraws until the user quits or ctx ends.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()
	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if v.HandleEvent(ev) {
				return nil
			}
			v.Draw()
		case <-ticker.C:
			if v.ctl.Tick() {
				v.Draw()
			}
		}
	}
}
