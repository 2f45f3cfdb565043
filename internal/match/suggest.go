package match

import (
	"sort"
)

// Suggestion is a ranked near-miss for a query that matched nothing.
type Suggestion struct {
	Name  string
	Index int

	// Scoring components
	TextScore    float64 // similarity of the folded names (0-1)
	InitialScore float64 // similarity of the initial-consonant forms (0-1)

	// Combined score for ranking (higher is better)
	Score float64
}

// Suggestions is a list of suggestions with ranking functionality.
type Suggestions []Suggestion

// Query carries the precomputed forms of a search term.
type Query struct {
	Folded   string // Fold(term)
	Initials string // initial-consonant form of term
}

// RankSuggestions scores every candidate against q and returns those at or
// above minScore, best first. Initials may be shorter than names, missing
// entries score as the empty string.
func RankSuggestions(q Query, names, initials []string, minScore float64) Suggestions {
	var out Suggestions

	for i, name := range names {
		var init string
		if i < len(initials) {
			init = initials[i]
		}

		textScore := Similarity(q.Folded, Fold(name))
		initialScore := Similarity(q.Initials, init)

		score := combineScores(textScore, initialScore)
		if score < minScore {
			continue
		}

		out = append(out, Suggestion{
			Name:         name,
			Index:        i,
			TextScore:    textScore,
			InitialScore: initialScore,
			Score:        score,
		})
	}

	sort.Stable(out)

	return out
}

// combineScores weights the initial-consonant similarity over the literal one.
// Weights:
//   - Initial consonants: 60%
//   - Folded text: 40%
func combineScores(textScore, initialScore float64) float64 {
	const (
		initialWeight = 0.6
		textWeight    = 0.4
	)

	return initialScore*initialWeight + textScore*textWeight
}

// Len implements sort.Interface.
func (s Suggestions) Len() int { return len(s) }

// Swap implements sort.Interface.
func (s Suggestions) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Less implements sort.Interface.
// Higher scores first, ties keep the original candidate order.
func (s Suggestions) Less(i, j int) bool {
	if s[i].Score != s[j].Score {
		return s[i].Score > s[j].Score
	}
	return s[i].Index < s[j].Index
}

// Top returns the top n suggestions.
func (s Suggestions) Top(n int) Suggestions {
	n = max(n, 0)
	if n >= len(s) {
		return s
	}
	return s[:n]
}

// Names returns the suggested names in rank order.
func (s Suggestions) Names() []string {
	out := make([]string, 0, len(s))
	for _, sg := range s {
		out = append(out, sg.Name)
	}
	return out
}

// Default thresholds for suggestions.
const (
	// DefaultMinScore is the minimum combined score worth showing.
	DefaultMinScore = 0.5
	// DefaultLimit caps the number of suggestions returned.
	DefaultLimit = 5
)
