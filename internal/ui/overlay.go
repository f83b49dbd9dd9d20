//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"ca-arena/internal/turmite"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var (
	paintOutline = color.RGBA{R: 0x00, G: 0xff, B: 0x88, A: 255}
	eraseOutline = color.RGBA{R: 0xff, G: 0x44, B: 0x44, A: 255}
	headingColor = color.RGBA{R: 255, G: 200, B: 200, A: 255}
)

// Cursor is where the pointer sits, in cells, and what the brush would do.
type Cursor struct {
	Row, Col int
	Inside   bool
	Size     int
	Erase    bool
}

// Overlay draws the brush outline and, optionally, ant headings over the grid.
type Overlay struct {
	scale        int
	showBrush    bool
	showHeadings bool
	pixel        *ebiten.Image
}

// NewOverlay constructs an overlay for a grid drawn at scale pixels per cell.
func NewOverlay(scale int) *Overlay {
	o := &Overlay{scale: scale, showBrush: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showBrush = !o.showBrush
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHeadings = !o.showHeadings
	}
}

// Draw paints the overlay.
func (o *Overlay) Draw(screen *ebiten.Image, cur Cursor, ants []turmite.Ant) {
	s := float64(o.scale)
	if o.showBrush && cur.Inside {
		col := paintOutline
		if cur.Erase {
			col = eraseOutline
		}
		r := cur.Size / 2
		x0 := float64(cur.Col-r) * s
		y0 := float64(cur.Row-r) * s
		x1 := float64(cur.Col+r+1) * s
		y1 := float64(cur.Row+r+1) * s
		o.drawLine(screen, x0, y0, x1, y0, 1, col)
		o.drawLine(screen, x1, y0, x1, y1, 1, col)
		o.drawLine(screen, x1, y1, x0, y1, 1, col)
		o.drawLine(screen, x0, y1, x0, y0, 1, col)
	}
	if o.showHeadings {
		for _, a := range ants {
			d := a.Heading.Offset()
			cx := (float64(a.Col) + 0.5) * s
			cy := (float64(a.Row) + 0.5) * s
			o.drawLine(screen, cx, cy, cx+float64(d.Col)*s*1.5, cy+float64(d.Row)*s*1.5, math.Max(1, s/4), headingColor)
		}
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}
