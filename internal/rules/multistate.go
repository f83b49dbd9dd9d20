package rules

// Clause fires when a cell in state From sees between Min and Max same-rule
// neighbours in state Count. The cell moves to To, or, when Chance is set and
// the draw fails, to Alt.
type Clause struct {
	From     uint8
	Count    uint8
	Min, Max int
	To       uint8
	Chance   float64
	Alt      uint8
}

// MultiState is a table-driven rule with more than two states. Clauses are
// tried in order; the first match wins. A state listed in Decay that matched
// no clause advances unconditionally. Otherwise the cell holds its state when
// Hold is set and clears to 0 when it is not.
type MultiState struct {
	States  uint8
	Clauses []Clause
	Decay   map[uint8]uint8
	Hold    bool
}

// Family implements Params.
func (MultiState) Family() Family { return FamilyMultiState }

func (m MultiState) apply(t *Transition) {
	s := t.Cell.State
	for _, cl := range m.Clauses {
		if cl.From != s {
			continue
		}
		n := t.Count(cl.Count)
		if n < cl.Min || n > cl.Max {
			continue
		}
		if cl.Chance > 0 && !t.Chance(cl.Chance) {
			t.Set(cl.Alt)
		} else {
			t.Set(cl.To)
		}
		return
	}
	if to, ok := m.Decay[s]; ok {
		t.Set(to)
		return
	}
	if m.Hold {
		t.Keep()
		return
	}
	t.Set(0)
}

// cyclicClauses builds the clause table of an n-state cyclic rule: each
// state yields to its successor when at least one neighbour already holds it.
func cyclicClauses(n uint8) []Clause {
	out := make([]Clause, 0, n)
	for s := uint8(0); s < n; s++ {
		next := (s + 1) % n
		out = append(out, Clause{From: s, Count: next, Min: 1, Max: 8, To: next})
	}
	return out
}
