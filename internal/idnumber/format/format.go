// Package format renders canonical identifiers for display.
//
// Every Layout is pure and total: any body and check input produces a string,
// and stripping cosmetic separators from the output gives back body+check.
package format

import "strings"

// Layout re-inserts separators into a canonical body and check.
type Layout interface {
	Format(body, check string) string
}

// Plain renders body and check with nothing between them.
type Plain struct{}

// Format implements Layout.
func (Plain) Format(body, check string) string {
	return body + check
}

// Mask fills the '#' placeholders of Pattern with body+check characters in
// order. Literals after the last filled placeholder are dropped and any
// characters left over are appended, so short or long input never panics.
type Mask struct {
	Pattern string
}

// Format implements Layout.
func (m Mask) Format(body, check string) string {
	chars := body + check
	var b strings.Builder
	b.Grow(len(m.Pattern))
	i := 0
	pending := strings.Builder{}
	for _, p := range m.Pattern {
		if p != '#' {
			pending.WriteRune(p)
			continue
		}
		if i >= len(chars) {
			break
		}
		b.WriteString(pending.String())
		pending.Reset()
		b.WriteByte(chars[i])
		i++
	}
	b.WriteString(chars[i:])
	return b.String()
}

// Grouped splits the body into runs of Size from the right joined by
// Separator, then appends CheckSeparator and the check characters.
// 7654321 and 6 with Size 3, "." and "-" give 7.654.321-6.
type Grouped struct {
	Size           int
	Separator      string
	CheckSeparator string
}

// Format implements Layout.
func (g Grouped) Format(body, check string) string {
	size := g.Size
	if size <= 0 {
		size = 3
	}
	var b strings.Builder
	lead := len(body) % size
	if lead == 0 && len(body) > 0 {
		lead = size
	}
	b.WriteString(body[:lead])
	for i := lead; i < len(body); i += size {
		b.WriteString(g.Separator)
		b.WriteString(body[i : i+size])
	}
	if check != "" {
		b.WriteString(g.CheckSeparator)
		b.WriteString(check)
	}
	return b.String()
}
