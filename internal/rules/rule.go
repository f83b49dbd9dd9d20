// Package rules maps rule names to parameterised transition algorithms.
//
// Every named rule belongs to one of a closed set of families. A family is
// implemented once and configured by data, so adding a variant such as a new
// Birth/Survive combination is a catalogue entry rather than new code.
package rules

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"ca-arena/internal/grid"
	"ca-arena/internal/interact"
)

// Family enumerates the transition algorithms.
type Family uint8

const (
	FamilyLifeLike Family = iota + 1
	FamilyMultiState
	FamilyParticle
	FamilyProcedural
	FamilyBiological
	FamilyElementary
	FamilyTurmite
)

func (f Family) String() string {
	switch f {
	case FamilyLifeLike:
		return "life-like"
	case FamilyMultiState:
		return "multi-state"
	case FamilyParticle:
		return "particle"
	case FamilyProcedural:
		return "procedural"
	case FamilyBiological:
		return "biological"
	case FamilyElementary:
		return "elementary"
	case FamilyTurmite:
		return "turmite"
	default:
		return fmt.Sprintf("family(%d)", uint8(f))
	}
}

// Params is the sealed set of family parameterisations.
type Params interface {
	Family() Family
	apply(t *Transition)
}

// ErrDuplicateRule is returned when a name is registered twice.
var ErrDuplicateRule = errors.New("rules: duplicate rule name")

// Def is an immutable, registered rule.
type Def struct {
	ID          grid.RuleID
	Name        string
	Params      Params
	Interaction *interact.Spec
	Initial     func(r *rand.Rand) uint8
}

// Family reports the family the rule belongs to.
func (d *Def) Family() Family { return d.Params.Family() }

// Step runs the rule's transition for the cell described by t.
func (d *Def) Step(t *Transition) { d.Params.apply(t) }

// InitialState returns the state a painter should give a freshly seeded cell.
func (d *Def) InitialState(r *rand.Rand) uint8 {
	if d.Initial == nil {
		return 1
	}
	return d.Initial(r)
}

// Option customises a rule at registration.
type Option func(*Def)

// WithInteraction attaches a colonization hook.
func WithInteraction(spec interact.Spec) Option {
	return func(d *Def) {
		s := spec
		d.Interaction = &s
	}
}

// WithInitial sets the initialization pattern used by painters.
func WithInitial(fn func(r *rand.Rand) uint8) Option {
	return func(d *Def) { d.Initial = fn }
}

// Registry resolves rule names and ids to definitions.
type Registry struct {
	byName map[string]*Def
	byID   []*Def
}

// NewRegistry returns an empty registry. Id 0 is reserved for inert cells.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]*Def{}, byID: []*Def{nil}}
}

// Register adds a rule and assigns it the next free id.
func (r *Registry) Register(name string, p Params, opts ...Option) (*Def, error) {
	if name == "" || p == nil {
		return nil, fmt.Errorf("rules: rule %q needs a name and parameters", name)
	}
	if _, ok := r.byName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateRule, name)
	}
	d := &Def{ID: grid.RuleID(len(r.byID)), Name: name, Params: p}
	for _, opt := range opts {
		opt(d)
	}
	r.byName[name] = d
	r.byID = append(r.byID, d)
	return d, nil
}

// MustRegister is Register for static catalogues; it panics on error.
func (r *Registry) MustRegister(name string, p Params, opts ...Option) *Def {
	d, err := r.Register(name, p, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Lookup finds a rule by name.
func (r *Registry) Lookup(name string) (*Def, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// ByID finds a rule by id. Inert and unassigned ids report false.
func (r *Registry) ByID(id grid.RuleID) (*Def, bool) {
	if id == grid.Inert || int(id) >= len(r.byID) {
		return nil, false
	}
	return r.byID[id], true
}

// Name returns the rule name for id, or "" when unknown.
func (r *Registry) Name(id grid.RuleID) string {
	if d, ok := r.ByID(id); ok {
		return d.Name
	}
	return ""
}

// Names lists registered rule names alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many rules are registered.
func (r *Registry) Len() int { return len(r.byID) - 1 }
