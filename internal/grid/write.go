package grid

// WriteMode selects which fields of the target cell a Write replaces.
type WriteMode uint8

const (
	// WriteState replaces only the state, keeping the owner.
	WriteState WriteMode = iota
	// WriteOwner replaces state and rule, keeping strength. Age restarts at 0
	// when the owner changes.
	WriteOwner
	// WriteCell replaces the whole cell.
	WriteCell
)

// Write is a change aimed at the next buffer at a coordinate other than the
// cell currently being updated.
type Write struct {
	Row, Col int
	Mode     WriteMode
	Cell     Cell
}

// Sink receives writes produced while a generation is being computed. The
// scheduler decides whether they land immediately or after the sweep.
type Sink interface {
	Put(w Write)
}

// Apply lands a write in the next buffer.
func (g *Grid) Apply(w Write) {
	dst := g.NextRef(w.Row, w.Col)
	switch w.Mode {
	case WriteState:
		dst.State = w.Cell.State
	case WriteOwner:
		if dst.Rule != w.Cell.Rule {
			dst.Age = 0
		}
		dst.State = w.Cell.State
		dst.Rule = w.Cell.Rule
	default:
		*dst = w.Cell
	}
}

// Direct is a Sink that applies every write immediately.
type Direct struct {
	G *Grid
}

// Put applies w to the next buffer right away.
func (d Direct) Put(w Write) { d.G.Apply(w) }

// Buffer is a Sink that queues writes until Flush.
type Buffer struct {
	pending []Write
}

// Put queues w.
func (b *Buffer) Put(w Write) { b.pending = append(b.pending, w) }

// Len reports the number of queued writes.
func (b *Buffer) Len() int { return len(b.pending) }

// Flush applies queued writes in issue order and empties the queue.
func (b *Buffer) Flush(g *Grid) {
	for _, w := range b.pending {
		g.Apply(w)
	}
	b.pending = b.pending[:0]
}
