package chosung

import (
	"strings"

	"casenara/utils"
)

const (
	syllableFirst rune = 0xAC00 // 가
	syllableLast  rune = 0xD7A3 // 힣

	// syllablesPerInitial is the number of syllables sharing one initial
	// consonant: 21 medial vowels times 28 finals (including none).
	syllablesPerInitial = 21 * 28
)

// Initials lists the 19 initial consonants in Unicode decomposition order.
var Initials = [...]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return utils.IsInRange(syllableFirst, r, syllableLast)
}

// Initial returns the initial consonant of a Hangul syllable.
// The second result is false for any other rune.
func Initial(r rune) (rune, bool) {
	if !IsSyllable(r) {
		return r, false
	}

	idx := int(r-syllableFirst) / syllablesPerInitial
	if idx < 0 || idx >= len(Initials) {
		return r, false
	}

	return Initials[idx], true
}

// Extract replaces every Hangul syllable in text with its initial consonant.
// All other runes, including jamo, Latin letters, digits and spaces, are
// copied unchanged.
func Extract(text string) string {
	if text == "" {
		return ""
	}

	var out strings.Builder

	out.Grow(len(text))

	for _, r := range text {
		initial, _ := Initial(r)
		out.WriteRune(initial)
	}

	return out.String()
}

// ExtractAll returns Extract applied to every name, index aligned.
func ExtractAll(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = Extract(name)
	}

	return out
}
