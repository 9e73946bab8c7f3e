// Package checkdigit computes weighted-sum modulo check digits.
//
// A Descriptor is an immutable description of one checksum scheme. The same
// engine serves every supported identifier: the Brazilian CPF and CNPJ, the
// Chilean RUT and the Argentine CUIT differ only in their descriptor values.
//
// Domain Purity: no I/O, no shared mutable state. Descriptors are safe to share
// across goroutines once built.
package checkdigit

import (
	"errors"
	"fmt"
	"strings"
)

// Direction controls how weights are paired with body digits.
type Direction int

const (
	// LeftToRight pairs the first weight with the leftmost digit.
	LeftToRight Direction = iota
	// RightToLeft pairs the first weight with the rightmost digit.
	RightToLeft
)

var (
	// ErrInvalidDescriptor indicates a descriptor that cannot map every remainder.
	ErrInvalidDescriptor = errors.New("invalid check digit descriptor")
	// ErrNotDigit indicates a body character outside 0-9.
	ErrNotDigit = errors.New("body contains a non-digit character")
	// ErrCheckIndex indicates a check index the descriptor does not define.
	ErrCheckIndex = errors.New("check index out of range")
)

// Descriptor describes one checksum scheme.
//
// Invariants:
//   - one non-empty weight cycle per check digit
//   - Modulus >= 2
//   - len(Sequence) == Modulus+1, so remainder r maps to Sequence[Modulus-r]
//     for every r in 0..Modulus-1
type Descriptor struct {
	name      string
	weights   [][]int
	modulus   int
	sequence  string
	direction Direction
	chained   bool
}

// Spec is the input to New.
type Spec struct {
	Name      string
	Weights   [][]int
	Modulus   int
	Sequence  string
	Direction Direction
	// Chained appends each computed check digit to the body before computing
	// the next one.
	Chained bool
}

// New validates spec and returns an immutable Descriptor.
func New(spec Spec) (Descriptor, error) {
	if spec.Modulus < 2 {
		return Descriptor{}, fmt.Errorf("%w: modulus %d", ErrInvalidDescriptor, spec.Modulus)
	}
	if len(spec.Weights) == 0 || len(spec.Weights) > 2 {
		return Descriptor{}, fmt.Errorf("%w: %d weight cycles", ErrInvalidDescriptor, len(spec.Weights))
	}
	if len(spec.Sequence) != spec.Modulus+1 {
		return Descriptor{}, fmt.Errorf("%w: sequence %q does not cover modulus %d",
			ErrInvalidDescriptor, spec.Sequence, spec.Modulus)
	}
	weights := make([][]int, len(spec.Weights))
	for i, cycle := range spec.Weights {
		if len(cycle) == 0 {
			return Descriptor{}, fmt.Errorf("%w: empty weight cycle %d", ErrInvalidDescriptor, i)
		}
		weights[i] = append([]int(nil), cycle...)
	}
	return Descriptor{
		name:      spec.Name,
		weights:   weights,
		modulus:   spec.Modulus,
		sequence:  spec.Sequence,
		direction: spec.Direction,
		chained:   spec.Chained,
	}, nil
}

// Must is New for package-level descriptor tables; it panics on an invalid spec.
func Must(spec Spec) Descriptor {
	d, err := New(spec)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the scheme name.
func (d Descriptor) Name() string { return d.name }

// Checks returns the number of check digits the scheme produces.
func (d Descriptor) Checks() int { return len(d.weights) }

// Modulus returns the scheme modulus.
func (d Descriptor) Modulus() int { return d.modulus }

// Chained reports whether later check digits cover earlier ones.
func (d Descriptor) Chained() bool { return d.chained }

// Alphabet returns the distinct characters the scheme can produce, in sequence order.
func (d Descriptor) Alphabet() string {
	var b strings.Builder
	for i := 0; i < len(d.sequence); i++ {
		if !strings.ContainsRune(b.String(), rune(d.sequence[i])) {
			b.WriteByte(d.sequence[i])
		}
	}
	return b.String()
}

// Compute returns the check character at index for the given body digits.
// For index 1 of a chained scheme, body must already include check digit 0.
func (d Descriptor) Compute(body string, index int) (byte, error) {
	if index < 0 || index >= len(d.weights) {
		return 0, fmt.Errorf("%w: %d", ErrCheckIndex, index)
	}
	cycle := d.weights[index]
	n := len(body)
	sum := 0
	for i := 0; i < n; i++ {
		pos := i
		if d.direction == RightToLeft {
			pos = n - 1 - i
		}
		c := body[pos]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q at %d", ErrNotDigit, c, pos)
		}
		sum += int(c-'0') * cycle[i%len(cycle)]
	}
	return d.Map(sum % d.modulus), nil
}

// Map converts a remainder into its check character.
func (d Descriptor) Map(remainder int) byte {
	return d.sequence[d.modulus-remainder]
}

// Digits computes every check character for body, chaining when configured.
func (d Descriptor) Digits(body string) (string, error) {
	out := make([]byte, 0, len(d.weights))
	input := body
	for i := range d.weights {
		c, err := d.Compute(input, i)
		if err != nil {
			return "", err
		}
		out = append(out, c)
		if d.chained {
			input += string(c)
		}
	}
	return string(out), nil
}

// Mismatch compares supplied check characters against computed ones and
// returns the 1-based position of the first disagreement, or 0 when all match.
// len(check) must equal Checks().
func (d Descriptor) Mismatch(body, check string) (int, error) {
	if len(check) != len(d.weights) {
		return 0, fmt.Errorf("%w: want %d check characters, got %d", ErrCheckIndex, len(d.weights), len(check))
	}
	input := body
	for i := range d.weights {
		c, err := d.Compute(input, i)
		if err != nil {
			return 0, err
		}
		if c != check[i] {
			return i + 1, nil
		}
		if d.chained {
			input += string(c)
		}
	}
	return 0, nil
}
