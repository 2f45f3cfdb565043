package chosung

import (
	"strings"

	"casenara/internal/match"
)

// Limit is the maximum number of names Filter returns.
const Limit = 10

// Filter returns up to Limit names matching query, in their original order.
//
// A name matches when its lower-cased form contains the lower-cased query, or
// when its entry in chosungs contains the initial consonant form of the query.
// An entry missing from chosungs counts as the empty string. A query that is
// empty after trimming matches nothing.
func Filter(query string, names, chosungs []string) []string {
	idx := FilterIndices(query, names, chosungs)

	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, names[i])
	}

	return out
}

// FilterIndices is Filter returning positions into names instead of names.
// The scan stops as soon as Limit matches are collected.
func FilterIndices(query string, names, chosungs []string) []int {
	q := strings.TrimSpace(query)
	if q == "" {
		return []int{}
	}

	folded := match.Fold(q)
	initials := Extract(q)

	out := make([]int, 0, min(Limit, len(names)))

	for i, name := range names {
		var cho string
		if i < len(chosungs) {
			cho = chosungs[i]
		}

		if strings.Contains(match.Fold(name), folded) || strings.Contains(cho, initials) {
			out = append(out, i)
			if len(out) >= Limit {
				break
			}
		}
	}

	return out
}
