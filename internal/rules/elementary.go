package rules

// Elementary projects a one-dimensional Wolfram rule onto the grid. Every
// Stride generations each cell looks up its left/centre/right neighbourhood
// in Number and writes the result to the cell below; in between, cells hold
// their state. The live row therefore advances one row per Stride.
type Elementary struct {
	Number uint8
	Stride uint64
}

// Family implements Params.
func (Elementary) Family() Family { return FamilyElementary }

func bit(s uint8) uint8 {
	if s > 0 {
		return 1
	}
	return 0
}

func (e Elementary) apply(t *Transition) {
	stride := e.Stride
	if stride == 0 {
		stride = 1
	}
	if t.Gen%stride != stride-1 {
		t.Keep()
		return
	}
	id := t.Rule.ID
	left := bit(t.Grid.StateAt(t.Row, t.Col-1, id))
	right := bit(t.Grid.StateAt(t.Row, t.Col+1, id))
	idx := left<<2 | bit(t.Cell.State)<<1 | right
	t.Emit(1, 0, (e.Number>>idx)&1)
}

// Trail is the cell side of a turmite rule: the state holds, ants do the
// work in their own pass.
type Trail struct{}

// Family implements Params.
func (Trail) Family() Family { return FamilyTurmite }

func (Trail) apply(t *Transition) { t.Keep() }
