package matcher

import (
	"strings"
	"unicode/utf8"
)

// Only ASCII and the Polish diacritics fold; everything else passes through.
var diacriticLower = map[rune]rune{
	'Ą': 'ą',
	'Ć': 'ć',
	'Ę': 'ę',
	'Ł': 'ł',
	'Ń': 'ń',
	'Ó': 'ó',
	'Ś': 'ś',
	'Ź': 'ź',
	'Ż': 'ż',
}

// Fold lowercases s for matching.
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteByte(byte(r) + 'a' - 'A')
		case r == utf8.RuneError:
			b.WriteString(s[:size])
		default:
			if lower, ok := diacriticLower[r]; ok {
				b.WriteRune(lower)
			} else {
				b.WriteString(s[:size])
			}
		}
		s = s[size:]
	}
	return b.String()
}

// SplitToken returns the first whitespace-delimited token of s and the trimmed rest.
func SplitToken(s string) (string, string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexAny(s, " \t\n\r")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+1:])
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
