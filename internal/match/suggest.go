package match

import (
	"sort"
)

// Default thresholds for suggestions.
const (
	// DefaultMinScore is the minimum name similarity for a suggestion.
	DefaultMinScore = 0.6
	// DefaultSuggestions is the number of suggestions kept per diagnostic.
	DefaultSuggestions = 3
)

// Suggestion is a known name ranked by its similarity to a requested one.
type Suggestion struct {
	Name  string
	Score float64 // Normalized Levenshtein similarity (0-1)
}

// SuggestionList is a list of suggestions sorted by score descending.
type SuggestionList []Suggestion

// NameScore computes the similarity of two identifiers after normalization.
func NameScore(a, b string) float64 {
	return LevenshteinNormalized(NormalizeIdent(a), NormalizeIdent(b))
}

// RankNames ranks every candidate name by its similarity to name; ties are broken
// alphabetically. The exact name itself is skipped.
func RankNames(name string, candidates []string) SuggestionList {
	var res SuggestionList

	for _, candidate := range candidates {
		if candidate == name {
			continue
		}

		res = append(res, Suggestion{Name: candidate, Score: NameScore(name, candidate)})
	}

	sort.Sort(res)

	return res
}

// Suggest returns up to n candidate names similar enough to name.
func Suggest(name string, candidates []string, n int) []string {
	var res []string
	for _, s := range RankNames(name, candidates).AboveThreshold(DefaultMinScore).Top(n) {
		res = append(res, s.Name)
	}

	return res
}

// Len implements sort.Interface.
func (l SuggestionList) Len() int { return len(l) }

// Swap implements sort.Interface.
func (l SuggestionList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less implements sort.Interface.
func (l SuggestionList) Less(i, j int) bool {
	if l[i].Score != l[j].Score {
		return l[i].Score > l[j].Score
	}

	return l[i].Name < l[j].Name
}

// Top returns the first n suggestions.
func (l SuggestionList) Top(n int) SuggestionList {
	if n >= len(l) {
		return l
	}

	return l[:n]
}

// AboveThreshold returns the suggestions scoring at least threshold.
func (l SuggestionList) AboveThreshold(threshold float64) SuggestionList {
	var res SuggestionList
	for _, s := range l {
		if s.Score >= threshold {
			res = append(res, s)
		}
	}

	return res
}
