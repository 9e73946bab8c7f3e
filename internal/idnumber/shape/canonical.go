package shape

import (
	"strings"
	"unicode"
)

// cosmetic reports characters that carry no identifier information.
func cosmetic(r rune) bool {
	switch r {
	case '.', '-', '/':
		return true
	}
	return unicode.IsSpace(r)
}

// Canonicalize strips cosmetic separators (dots, dashes, slashes, whitespace)
// and upper-cases ASCII letters. Other runes pass through unchanged. It never
// fails: malformed input is detected later by Match.
func Canonicalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if cosmetic(r) {
			continue
		}
		if 'a' <= r && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
