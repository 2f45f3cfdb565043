// Package match provides query normalization, rune-level Levenshtein distance
// and similarity ranking for name lookups.
//
// Key functions:
//   - Fold: Unicode lower casing used for case-insensitive containment
//   - Compose: NFC composition so decomposed Hangul jamo become syllables
//   - Levenshtein: computes edit distance between strings, rune by rune
//   - RankSuggestions: ranks candidate names by similarity to a query
package match
