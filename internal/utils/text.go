package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize title-cases the first rune of s and lower-cases the rest.
// Capitalize(Capitalize(s)) == Capitalize(s). Casers are stateful, so one is
// built per call.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(r)) + cases.Lower(language.Und).String(s[size:])
}

// Normalize trims surrounding whitespace and case-folds s for comparisons.
func Normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
