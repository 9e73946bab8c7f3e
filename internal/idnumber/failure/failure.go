// Package failure defines the classified outcomes of a rejected identifier.
//
// Every rejection carries a class (one of the sentinel errors below) and a kind
// naming the precise rule that failed. Callers branch with errors.Is on the class
// or errors.As on *Error for the kind and its parameters. The package never
// produces end-user prose; message catalogs are owned by the presentation layer.
package failure

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Failure classes.
var (
	ErrShape      = errors.New("shape error")
	ErrChecksum   = errors.New("checksum error")
	ErrDegenerate = errors.New("degenerate value")
	ErrEmpty      = errors.New("empty value")
)

// Kind names the rule that rejected the input.
type Kind string

const (
	KindInvalidFormat  Kind = "invalid_format"
	KindWrongLength    Kind = "wrong_length"
	KindInvalidPrefix  Kind = "invalid_prefix"
	KindChecksum       Kind = "checksum_mismatch"
	KindRepeatedDigits Kind = "repeated_digits"
	KindRequired       Kind = "required"
)

// Parameter keys attached to failures.
const (
	ParamLength    = "length"
	ParamMinLength = "min_length"
	ParamMaxLength = "max_length"
	ParamActual    = "actual_length"
	ParamPrefixes  = "allowed_prefixes"
	ParamPosition  = "check_position"
	ParamStrict    = "strict"
)

// Error is a classified validation failure for one identifier type.
type Error struct {
	Class  error
	Kind   Kind
	Type   string
	Params map[string]string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Type)
	b.WriteString(": ")
	b.WriteString(e.Class.Error())
	b.WriteString(" (")
	b.WriteString(string(e.Kind))
	if len(e.Params) > 0 {
		keys := make([]string, 0, len(e.Params))
		for k := range e.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%s", k, e.Params[k])
		}
	}
	b.WriteString(")")
	return b.String()
}

// Unwrap exposes the class so errors.Is(err, ErrChecksum) works.
func (e *Error) Unwrap() error {
	return e.Class
}

// Shape reports a surface syntax failure.
func Shape(typ string, kind Kind, params map[string]string) *Error {
	return &Error{Class: ErrShape, Kind: kind, Type: typ, Params: params}
}

// Checksum reports a check digit mismatch at the given check position (1-based).
func Checksum(typ string, position int) *Error {
	return &Error{
		Class:  ErrChecksum,
		Kind:   KindChecksum,
		Type:   typ,
		Params: map[string]string{ParamPosition: fmt.Sprint(position)},
	}
}

// Degenerate reports a checksum-valid value excluded by a domain rule.
func Degenerate(typ string, kind Kind) *Error {
	return &Error{Class: ErrDegenerate, Kind: kind, Type: typ}
}

// Empty reports a missing value for a required field.
func Empty(typ string) *Error {
	return &Error{Class: ErrEmpty, Kind: KindRequired, Type: typ}
}

// As extracts a *Error from err.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// ClassName returns the stable wire name of a failure class.
func ClassName(class error) string {
	switch {
	case errors.Is(class, ErrShape):
		return "shape"
	case errors.Is(class, ErrChecksum):
		return "checksum"
	case errors.Is(class, ErrDegenerate):
		return "degenerate"
	case errors.Is(class, ErrEmpty):
		return "empty"
	default:
		return "unknown"
	}
}
