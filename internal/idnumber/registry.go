package idnumber

import (
	"fmt"
	"sort"
	"strings"

	"idcheck/pkg/platform/sentinel"
)

// Registry maps identifier tags to definitions. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	defs  map[Type]Definition
	order []Type
}

// NewRegistry builds a registry, rejecting duplicate tags.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[Type]Definition, len(defs))}
	for _, d := range defs {
		if _, dup := r.defs[d.Type()]; dup {
			return nil, fmt.Errorf("%w: duplicate identifier type %q", sentinel.ErrConflict, d.Type())
		}
		r.defs[d.Type()] = d
		r.order = append(r.order, d.Type())
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	return r, nil
}

// MustRegistry is NewRegistry for package-level tables.
func MustRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Default holds every built-in identifier type.
var Default = MustRegistry(builtin...)

// ParseType normalizes a tag ("BR_CPF", " br_cpf ") and checks it is known to r.
func (r *Registry) ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := r.defs[t]; !ok {
		return "", fmt.Errorf("%w: identifier type %q", sentinel.ErrNotFound, s)
	}
	return t, nil
}

// Lookup returns the definition for t.
func (r *Registry) Lookup(t Type) (Definition, error) {
	d, ok := r.defs[t]
	if !ok {
		return Definition{}, fmt.Errorf("%w: identifier type %q", sentinel.ErrNotFound, t)
	}
	return d, nil
}

// Definitions returns all definitions ordered by tag.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.defs[t])
	}
	return out
}

// Validate looks up t and validates raw against it.
func (r *Registry) Validate(t Type, raw string, opts Options) (Result, error) {
	d, err := r.Lookup(t)
	if err != nil {
		return Result{}, err
	}
	return d.Validate(raw, opts)
}

// Validate validates raw against a built-in identifier type.
func Validate(t Type, raw string, opts Options) (Result, error) {
	return Default.Validate(t, raw, opts)
}
