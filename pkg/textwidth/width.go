// Package textwidth computes terminal display widths for table alignment.
//
// The rule is deliberately simpler than the full Unicode recommendation:
// East Asian Wide and Fullwidth characters count as 2 cells, everything
// else (including the Ambiguous class) counts as 1. The remote tool pads
// its table columns with exactly this rule, so column splitting has to
// reproduce it bit for bit.
package textwidth

import "golang.org/x/text/width"

// RuneWidth returns the display width of a single rune: 2 for East Asian
// Wide and Fullwidth, 1 for everything else.
func RuneWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// Width returns the display width of s.
func Width(s string) int {
	w := 0
	for _, r := range s {
		w += RuneWidth(r)
	}
	return w
}

// Truncate returns the prefix of s whose display width does not exceed max,
// together with the remainder. A wide rune straddling the boundary is left
// in the remainder.
func Truncate(s string, max int) (prefix, rest string) {
	w := 0
	for i, r := range s {
		rw := RuneWidth(r)
		if w+rw > max {
			return s[:i], s[i:]
		}
		w += rw
	}
	return s, ""
}

// Pad appends spaces to s until its display width reaches total. Strings
// already at or past total are returned unchanged.
func Pad(s string, total int) string {
	w := Width(s)
	for w < total {
		s += " "
		w++
	}
	return s
}
