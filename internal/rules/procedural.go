package rules

import "math"

// Pattern selects a closed-form generator for procedural rules.
type Pattern uint8

const (
	Plasma Pattern = iota
	Fabric
	Quantum
	Magnetic
	Music
	Fractal
	Kaleidoscope
	Aurora
)

// Procedural derives a cell's next state from its coordinates and the
// generation, mostly ignoring neighbours. MinKin gates Plasma growth.
type Procedural struct {
	Pattern Pattern
	MinKin  int
}

// Family implements Params.
func (Procedural) Family() Family { return FamilyProcedural }

// MaxLevel is the highest intensity a procedural rule produces.
const MaxLevel = 4

func level(v float64) uint8 {
	l := int(math.Floor(v*4)) + 1
	if l > MaxLevel {
		l = MaxLevel
	}
	if l < 1 {
		l = 1
	}
	return uint8(l)
}

func fade(s uint8) uint8 {
	if s == 0 {
		return 0
	}
	return s - 1
}

func (p Procedural) apply(t *Transition) {
	row, col := float64(t.Row), float64(t.Col)
	gen := float64(t.Gen)
	rows, cols := float64(t.Grid.Rows()), float64(t.Grid.Cols())
	s := t.Cell.State

	switch p.Pattern {
	case Plasma:
		wave := math.Sin((row+col+gen)*0.1)*0.5 + 0.5
		if wave > 0.6 && t.Count(1) >= p.MinKin {
			t.Set(min(MaxLevel, s+1))
			return
		}
		t.Set(fade(s))

	case Fabric:
		warp := (t.Gen+uint64(t.Row))%4 < 2
		weft := (t.Gen+uint64(t.Col))%4 < 2
		switch {
		case warp && weft:
			t.Set(3)
		case warp:
			t.Set(1)
		case weft:
			t.Set(2)
		default:
			t.Set(0)
		}

	case Quantum:
		tunnel := math.Sin((row*col+gen)*0.05)*0.5 + 0.5
		switch {
		case s == 0 && tunnel > 0.8:
			t.Set(1)
		case s == 1 && tunnel < 0.2:
			t.Set(0)
		case s == 1:
			t.Set(level(tunnel))
		}

	case Magnetic:
		field := math.Cos(row*0.1) * math.Sin(col*0.1)
		switch {
		case field > 0.5:
			t.Set(1)
		case field < -0.5:
			t.Set(2)
		default:
			t.Set(0)
		}

	case Music:
		note := (uint64(t.Row) + uint64(t.Col)) % 12
		beat := t.Gen % 16
		if beat == note || beat == (note+4)%12 || beat == (note+7)%12 {
			t.Set(uint8(note%4) + 1)
			return
		}
		t.Set(0)

	case Fractal:
		x := (col - cols/2) / (cols / 4)
		y := (row - rows/2) / (rows / 4)
		zx, zy := x, y
		iter := 0
		for i := 0; i < 10; i++ {
			nx := zx*zx - zy*zy + x
			ny := 2*zx*zy + y
			if nx*nx+ny*ny > 4 {
				break
			}
			zx, zy = nx, ny
			iter++
		}
		t.Set(uint8(iter % 5))

	case Kaleidoscope:
		dx := col - math.Floor(cols/2)
		dy := row - math.Floor(rows/2)
		angle := math.Atan2(dy, dx)
		radius := math.Hypot(dx, dy)
		sector := math.Pi / 6
		sym := math.Floor(angle/sector) * sector
		v := math.Sin(radius*0.1 + gen*0.1 + sym*3)
		if v > 0 {
			t.Set(level(v))
			return
		}
		t.Set(0)

	case Aurora:
		w1 := math.Sin((col+gen)*0.05)*0.5 + 0.5
		w2 := math.Sin((col+gen*0.7)*0.03)*0.5 + 0.5
		intensity := w1 * w2
		if row < rows*0.3 && intensity > 0.6 {
			t.Set(level(intensity))
			return
		}
		t.Set(fade(s))
	}
}
