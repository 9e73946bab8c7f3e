// Package shape matches raw identifier input against its accepted surface
// syntaxes and splits the canonical value into body and check characters.
//
// Two patterns exist per identifier. The strict pattern requires the fully
// punctuated display form. The lenient pattern also accepts bare input and is
// permissive about where separators appear, so the canonical length is checked
// separately after matching.
package shape

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"idcheck/internal/idnumber/failure"
)

// ErrInvalidShape indicates a Spec that cannot describe any identifier.
var ErrInvalidShape = errors.New("invalid identifier shape")

// Spec is the input to New. Length fixes the canonical length; otherwise
// MinLength and MaxLength bound it.
type Spec struct {
	Type    string
	Lenient string
	Strict  string

	Length    int
	MinLength int
	MaxLength int

	// CheckDigits is the number of trailing check characters.
	CheckDigits int
	// CheckSeparator is placed between body and check in the canonical value.
	CheckSeparator string
	// Prefixes, when set, restricts the leading characters of the body.
	Prefixes []string
}

// Shape is an immutable surface syntax description.
//
// Invariants:
//   - MinLength > CheckDigits, so every match has a non-empty body
//   - MinLength <= MaxLength
type Shape struct {
	typ            string
	lenient        *regexp.Regexp
	strict         *regexp.Regexp
	minLength      int
	maxLength      int
	checkDigits    int
	checkSeparator string
	prefixes       []string
}

// Parts is the canonical value split at the check boundary.
type Parts struct {
	Body  string
	Check string
}

// Bare returns body and check concatenated without separators.
func (p Parts) Bare() string {
	return p.Body + p.Check
}

// New compiles spec into a Shape.
func New(spec Spec) (Shape, error) {
	if spec.Strict == "" {
		return Shape{}, fmt.Errorf("%w: %s: strict pattern required", ErrInvalidShape, spec.Type)
	}
	lenientPattern := spec.Lenient
	if lenientPattern == "" {
		lenientPattern = spec.Strict
	}
	strict, err := regexp.Compile(spec.Strict)
	if err != nil {
		return Shape{}, fmt.Errorf("%w: %s: %v", ErrInvalidShape, spec.Type, err)
	}
	lenient, err := regexp.Compile(lenientPattern)
	if err != nil {
		return Shape{}, fmt.Errorf("%w: %s: %v", ErrInvalidShape, spec.Type, err)
	}

	minLength, maxLength := spec.MinLength, spec.MaxLength
	if spec.Length > 0 {
		minLength, maxLength = spec.Length, spec.Length
	}
	if spec.CheckDigits < 0 || minLength <= spec.CheckDigits || minLength > maxLength {
		return Shape{}, fmt.Errorf("%w: %s: length %d..%d with %d check digits",
			ErrInvalidShape, spec.Type, minLength, maxLength, spec.CheckDigits)
	}

	return Shape{
		typ:            spec.Type,
		lenient:        lenient,
		strict:         strict,
		minLength:      minLength,
		maxLength:      maxLength,
		checkDigits:    spec.CheckDigits,
		checkSeparator: spec.CheckSeparator,
		prefixes:       append([]string(nil), spec.Prefixes...),
	}, nil
}

// Must is New for package-level tables.
func Must(spec Spec) Shape {
	s, err := New(spec)
	if err != nil {
		panic(err)
	}
	return s
}

// MinLength returns the shortest accepted canonical length.
func (s Shape) MinLength() int { return s.minLength }

// MaxLength returns the longest accepted canonical length.
func (s Shape) MaxLength() int { return s.maxLength }

// CheckDigits returns the number of trailing check characters.
func (s Shape) CheckDigits() int { return s.checkDigits }

// Canonical renders parts as the canonical value, with the check separator if any.
func (s Shape) Canonical(p Parts) string {
	if p.Check == "" {
		return p.Body
	}
	return p.Body + s.checkSeparator + p.Check
}

// Match checks raw against the strict or lenient pattern, then canonicalizes it
// and splits body from check. Surrounding whitespace is ignored.
func (s Shape) Match(raw string, strict bool) (Parts, error) {
	trimmed := strings.TrimSpace(raw)
	pattern := s.lenient
	if strict {
		pattern = s.strict
	}
	if !pattern.MatchString(trimmed) {
		return Parts{}, failure.Shape(s.typ, failure.KindInvalidFormat, map[string]string{
			failure.ParamStrict: strconv.FormatBool(strict),
		})
	}

	canonical := Canonicalize(trimmed)
	if n := utf8.RuneCountInString(canonical); n < s.minLength || n > s.maxLength {
		return Parts{}, failure.Shape(s.typ, failure.KindWrongLength, s.lengthParams(n))
	}

	runes := []rune(canonical)
	split := len(runes) - s.checkDigits
	parts := Parts{
		Body:  string(runes[:split]),
		Check: string(runes[split:]),
	}

	if len(s.prefixes) > 0 && !s.hasPrefix(parts.Body) {
		return Parts{}, failure.Shape(s.typ, failure.KindInvalidPrefix, map[string]string{
			failure.ParamPrefixes: strings.Join(s.prefixes, ","),
		})
	}
	return parts, nil
}

func (s Shape) hasPrefix(body string) bool {
	for _, p := range s.prefixes {
		if strings.HasPrefix(body, p) {
			return true
		}
	}
	return false
}

func (s Shape) lengthParams(actual int) map[string]string {
	params := map[string]string{failure.ParamActual: strconv.Itoa(actual)}
	if s.minLength == s.maxLength {
		params[failure.ParamLength] = strconv.Itoa(s.minLength)
		return params
	}
	params[failure.ParamMinLength] = strconv.Itoa(s.minLength)
	params[failure.ParamMaxLength] = strconv.Itoa(s.maxLength)
	return params
}
