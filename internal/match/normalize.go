package match

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s with language-neutral Unicode rules.
// Hangul has no case, so syllables and jamo pass through untouched.
func Fold(s string) string {
	if s == "" {
		return ""
	}

	// cases.Caser is stateful and not safe for concurrent use.
	return cases.Lower(language.Und).String(s)
}

// Compose returns the NFC form of s. Text pasted from macOS file names or
// some IMEs arrives as conjoining jamo (U+1100 block); composing it first
// lets the initial-consonant extraction see whole syllables.
func Compose(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}

	return norm.NFC.String(s)
}

// Collapse trims s and squeezes inner whitespace runs to a single space.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
