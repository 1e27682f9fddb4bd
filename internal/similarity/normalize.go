package similarity

import (
	"strings"
	"unicode"
)

// Normalize lowercases s, replaces every rune that is not a letter or digit
// with a space, collapses whitespace runs and trims the ends. Idempotent:
// Normalize(Normalize(s)) == Normalize(s) for any input.
func Normalize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}
