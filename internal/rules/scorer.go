package rules

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/iddobarnoon/BudgetWise/internal/model"
)

// priorityBoost is the per-priority-point nudge added to a nonzero raw
// score. It breaks ties between close competitors; it never manufactures
// a match from zero signal.
const priorityBoost = 0.01

// Scorer computes a bounded [0,1] match score between normalized text and
// one category rule. It is stateless apart from a compiled-regex cache and
// is safe for concurrent use.
type Scorer struct {
	mu       sync.RWMutex
	compiled map[string]*regexp.Regexp // nil entry = known-invalid pattern
}

// NewScorer creates a rule scorer.
func NewScorer() *Scorer {
	return &Scorer{compiled: make(map[string]*regexp.Regexp)}
}

// Score evaluates every matching branch of the rule against the normalized
// text, takes the maximum, and applies the priority boost. The boost is
// skipped entirely when the raw maximum is zero.
func (s *Scorer) Score(normalizedText string, rule model.CategoryRule) float64 {
	if normalizedText == "" {
		return 0
	}

	raw := 0.0

	for _, keyword := range rule.Keywords {
		if keyword == "" {
			continue
		}

		var score float64
		switch rule.MatchType {
		case model.MatchExact:
			if normalizedText == keyword {
				score = 1.0
			}
		case model.MatchRegex:
			if s.matchPattern(keyword, normalizedText) {
				// Discounted versus exact: regex false positives are likelier.
				score = 0.9
			}
		default: // substring
			if strings.Contains(normalizedText, keyword) {
				score = 1.5 * float64(len(keyword)) / float64(len(normalizedText))
				if score > 1.0 {
					score = 1.0
				}
			}
		}

		if score > raw {
			raw = score
		}
	}

	// Merchant patterns contribute token-overlap similarity regardless of
	// the rule's match type.
	textTokens := strings.Fields(normalizedText)
	for _, pattern := range rule.MerchantPatterns {
		if score := jaccard(textTokens, strings.Fields(pattern)); score > raw {
			raw = score
		}
	}

	if raw == 0 {
		return 0
	}

	final := raw + float64(rule.Priority)*priorityBoost
	if final > 1.0 {
		final = 1.0
	}
	return final
}

// matchPattern matches pattern case-insensitively against text. Invalid
// patterns are remembered and skipped; a bad rule is a data-quality issue,
// never a request failure.
func (s *Scorer) matchPattern(pattern, text string) bool {
	s.mu.RLock()
	re, seen := s.compiled[pattern]
	s.mu.RUnlock()

	if !seen {
		var err error
		re, err = regexp.Compile("(?i)" + pattern)
		if err != nil {
			slog.Warn("Skipping invalid regex rule pattern",
				"pattern", pattern,
				"error", err)
			re = nil
		}
		s.mu.Lock()
		s.compiled[pattern] = re
		s.mu.Unlock()
	}

	if re == nil {
		return false
	}
	return re.MatchString(text)
}

// jaccard computes token-set overlap between two token lists.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, tok := range a {
		setA[tok] = struct{}{}
	}

	setB := make(map[string]struct{}, len(b))
	for _, tok := range b {
		setB[tok] = struct{}{}
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
