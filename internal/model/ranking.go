package model

import "sort"

// RankingSource identifies which signal produced a classification.
type RankingSource string

const (
	// SourceOverride means a user pin short-circuited scoring.
	SourceOverride RankingSource = "override"
	// SourceRule means keyword/pattern rules produced the winner.
	SourceRule RankingSource = "rule"
	// SourceSemantic means embedding similarity produced the winner.
	SourceSemantic RankingSource = "semantic"
	// SourceFallback means no signal matched and the default category was used.
	SourceFallback RankingSource = "fallback"
)

// CategoryScore represents how strongly a piece of text matched one category.
type CategoryScore struct {
	Category Category
	Score    float64
}

// CategoryScores is a slice of CategoryScore that supports sorting and utility methods.
type CategoryScores []CategoryScore

// Len implements sort.Interface.
func (s CategoryScores) Len() int {
	return len(s)
}

// Less implements sort.Interface - higher scores come first.
func (s CategoryScores) Less(i, j int) bool {
	if s[i].Score != s[j].Score {
		return s[i].Score > s[j].Score
	}
	// Equal scores sort by category name for deterministic output
	return s[i].Category.Name < s[j].Category.Name
}

// Swap implements sort.Interface.
func (s CategoryScores) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// Sort sorts the scores in descending order.
func (s CategoryScores) Sort() {
	sort.Sort(s)
}

// TopN returns the N highest-scoring entries.
func (s CategoryScores) TopN(n int) CategoryScores {
	if n <= 0 {
		return CategoryScores{}
	}

	s.Sort()

	if n > len(s) {
		n = len(s)
	}

	result := make(CategoryScores, n)
	copy(result, s[:n])
	return result
}

// Values returns the raw scores in the slice's current order.
func (s CategoryScores) Values() []float64 {
	values := make([]float64, len(s))
	for i, cs := range s {
		values[i] = cs.Score
	}
	return values
}

// RankingResult is the outcome of classifying one expense.
// Confidence and alternatives are always derived from the same score set
// used to pick the winner.
type RankingResult struct {
	BestCategory Category
	Confidence   float64
	Alternatives CategoryScores
	Source       RankingSource
}
