// Package datafactory generates the randomized test data the acceptance
// suites feed into entity fields: plain ASCII kinds for labels and logins,
// Latin-1/Cyrillic/CJK kinds to exercise multibyte handling, and the
// canned invalid-value lists for negative cases.
package datafactory

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Kind selects the character repertoire of a generated string.
type Kind string

const (
	Alpha        Kind = "alpha"
	Alphanumeric Kind = "alphanumeric"
	Numeric      Kind = "numeric"
	Latin1       Kind = "latin1"
	Cyrillic     Kind = "cyrillic"
	CJK          Kind = "cjk"
	UTF8         Kind = "utf8"
	HTML         Kind = "html"
)

var repertoires = map[Kind][]rune{
	Alpha:        runeRange('a', 'z'),
	Numeric:      runeRange('0', '9'),
	Latin1:       runeRange(0x00C0, 0x00FF),
	Cyrillic:     runeRange(0x0410, 0x044F),
	CJK:          runeRange(0x4E00, 0x4E7F),
	Alphanumeric: append(runeRange('a', 'z'), runeRange('0', '9')...),
}

func runeRange(lo, hi rune) []rune {
	rs := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		rs = append(rs, r)
	}
	return rs
}

// String returns a random string of n characters from the given kind.
// UTF8 mixes the multibyte repertoires; HTML wraps an alpha string in a
// markup element, which servers must either escape or reject.
func String(kind Kind, n int) string {
	switch kind {
	case UTF8:
		mixed := []Kind{Latin1, Cyrillic, CJK}
		var sb strings.Builder
		for i := 0; i < n; i++ {
			sb.WriteString(String(mixed[rand.IntN(len(mixed))], 1))
		}
		return sb.String()
	case HTML:
		return fmt.Sprintf("<b>%s</b>", String(Alpha, n))
	default:
		repertoire := repertoires[kind]
		runes := make([]rune, n)
		for i := range runes {
			runes[i] = repertoire[rand.IntN(len(repertoire))]
		}
		return string(runes)
	}
}

// Name returns a random alpha name of a sensible fixture length.
func Name() string {
	return String(Alpha, 10)
}

// Label returns a random value fit for label fields, which only accept
// ASCII alphanumerics, '-' and '_'.
func Label() string {
	return String(Alpha, 5) + "-" + String(Alpha, 5)
}

// ValidNames covers the accepted name shapes: each kind plus a name with
// an internal space.
func ValidNames() []string {
	return []string{
		String(Alpha, 10),
		String(Alphanumeric, 10),
		String(Numeric, 10),
		String(Latin1, 10),
		String(Cyrillic, 10),
		String(CJK, 10),
		String(UTF8, 10),
		String(Alpha, 5) + " " + String(Alpha, 5),
	}
}

// ValidDescriptions covers the accepted free-text shapes.
func ValidDescriptions() []string {
	return []string{
		String(Alpha, 15),
		String(Alphanumeric, 15),
		String(Numeric, 15),
		String(UTF8, 15),
		String(HTML, 15),
	}
}

// InvalidValues is the canonical negative list: whitespace-only values and
// a value past the common 255-character column limit.
func InvalidValues() []string {
	return []string{
		"",
		" ",
		"\t",
		String(Alpha, 256),
	}
}
