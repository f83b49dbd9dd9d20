package render

import (
	"image/color"

	"ca-arena/internal/grid"
	"ca-arena/internal/turmite"
)

// FillRGBA converts cells into RGBA pixels in buf using lut.
func FillRGBA(buf []byte, cells []grid.Cell, lut LUT) {
	for i, c := range cells {
		col := lut.At(c)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// PaintAnts draws each ant as one pixel on top of a filled buffer.
func PaintAnts(buf []byte, cols int, ants []turmite.Ant, c color.RGBA) {
	for _, a := range ants {
		base := (a.Row*cols + a.Col) * 4
		if base < 0 || base+3 >= len(buf) {
			continue
		}
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}
