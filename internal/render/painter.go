//go:build ebiten

package render

import (
	"ca-arena/internal/grid"
	"ca-arena/internal/turmite"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter keeps one RGBA image in sync with the arena.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
	lut  LUT
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int, lut LUT) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), lut: lut}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads the cells and ants into the painter image and draws it scaled.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []grid.Cell, ants []turmite.Ant, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	FillRGBA(gp.buf, cells, gp.lut)
	PaintAnts(gp.buf, gp.w, ants, AntColor)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
