package rules

import (
	"fmt"
	"strings"
)

// Mask is a set of neighbour counts 0..8.
type Mask uint16

// MaskOf builds a Mask from counts.
func MaskOf(counts ...int) Mask {
	var m Mask
	for _, n := range counts {
		if n >= 0 && n <= 8 {
			m |= 1 << n
		}
	}
	return m
}

// Has reports whether n is in the set.
func (m Mask) Has(n int) bool {
	return n >= 0 && n <= 8 && m&(1<<n) != 0
}

func (m Mask) String() string {
	var b strings.Builder
	for n := 0; n <= 8; n++ {
		if m.Has(n) {
			b.WriteByte(byte('0' + n))
		}
	}
	return b.String()
}

// LifeLike is an outer-totalistic binary rule over same-rule neighbours in
// state 1. A dead cell whose count is in Birth becomes live, with probability
// BirthChance when that is non-zero. A dead cell that misses birth but has at
// least one live neighbour seeps alive with probability SeepChance.
type LifeLike struct {
	Birth       Mask
	Survive     Mask
	BirthChance float64
	SeepChance  float64
}

// ParseLife reads Birth/Survive notation such as "B3/S23".
func ParseLife(notation string) (LifeLike, error) {
	var l LifeLike
	parts := strings.Split(strings.ToUpper(notation), "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "B") || !strings.HasPrefix(parts[1], "S") {
		return l, fmt.Errorf("rules: bad life notation %q", notation)
	}
	parse := func(digits string) (Mask, error) {
		var m Mask
		for _, r := range digits {
			if r < '0' || r > '8' {
				return 0, fmt.Errorf("rules: bad neighbour count %q in %q", r, notation)
			}
			m |= 1 << (r - '0')
		}
		return m, nil
	}
	var err error
	if l.Birth, err = parse(parts[0][1:]); err != nil {
		return l, err
	}
	if l.Survive, err = parse(parts[1][1:]); err != nil {
		return l, err
	}
	return l, nil
}

// MustLife is ParseLife for catalogue literals.
func MustLife(notation string) LifeLike {
	l, err := ParseLife(notation)
	if err != nil {
		panic(err)
	}
	return l
}

// Family implements Params.
func (LifeLike) Family() Family { return FamilyLifeLike }

// String renders the rule in Birth/Survive notation.
func (l LifeLike) String() string { return "B" + l.Birth.String() + "/S" + l.Survive.String() }

func (l LifeLike) apply(t *Transition) {
	n := t.Count(1)
	if t.Cell.State == 1 {
		t.SetBool(l.Survive.Has(n))
		return
	}
	if l.Birth.Has(n) {
		t.SetBool(l.BirthChance == 0 || t.Chance(l.BirthChance))
		return
	}
	if l.SeepChance > 0 && n >= 1 {
		t.SetBool(t.Chance(l.SeepChance))
		return
	}
	t.Set(0)
}
