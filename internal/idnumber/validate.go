package idnumber

import (
	"strings"

	"idcheck/internal/idnumber/failure"
)

// Options tune a single validation call.
type Options struct {
	// Strict requires the fully punctuated display form.
	Strict bool
	// Required turns empty input into a failure instead of an empty Result.
	Required bool
}

// Result is an accepted identifier.
type Result struct {
	Type Type
	// Value is the canonical form used for storage and equality.
	Value string
	// Display is the formatted form for presentation.
	Display string
	// Empty is set when optional input was blank; Value and Display are "".
	Empty bool
}

// Validate runs the pipeline for one raw input:
//
//	canonicalize → shape check → checksum → domain rules → format
//
// Every rejection is a *failure.Error. The call is pure and allocates only
// local values.
func (d Definition) Validate(raw string, opts Options) (Result, error) {
	if strings.TrimSpace(raw) == "" {
		if opts.Required {
			return Result{}, failure.Empty(string(d.typ))
		}
		return Result{Type: d.typ, Empty: true}, nil
	}

	parts, err := d.shape.Match(raw, opts.Strict)
	if err != nil {
		return Result{}, err
	}

	if d.algorithm != nil {
		pos, err := d.algorithm.Mismatch(parts.Body, parts.Check)
		if err != nil {
			return Result{}, failure.Shape(string(d.typ), failure.KindInvalidFormat, nil)
		}
		if pos != 0 {
			return Result{}, failure.Checksum(string(d.typ), pos)
		}
	}

	for _, rule := range d.rules {
		if kind := rule(parts); kind != "" {
			return Result{}, failure.Degenerate(string(d.typ), kind)
		}
	}

	return Result{
		Type:    d.typ,
		Value:   d.shape.Canonical(parts),
		Display: d.Format(parts),
	}, nil
}
