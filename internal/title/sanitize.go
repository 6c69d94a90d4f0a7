package title

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// illegalChars are rejected in file names by at least one common file system.
const illegalChars = `<>:"/\|?*`

func isQuote(r rune) bool {
	switch r {
	case '"', '\'', '“', '”', '‘', '’':
		return true
	}
	return false
}

// Sanitize turns raw model output into a file name component: wrapping
// quotes and whitespace are stripped, illegal characters become spaces and
// whitespace runs collapse to one space. The result may be empty.
func Sanitize(raw string) string {
	s := raw
	for {
		next := sanitizePass(s)
		if next == s {
			return next
		}
		s = next
	}
}

// sanitizePass applies the three steps once. Stripping can expose a quote
// that step 2 or 3 moved to an edge, so Sanitize repeats until stable.
func sanitizePass(s string) string {
	s = norm.NFC.String(s)
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || isQuote(r)
	})
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(illegalChars, r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
