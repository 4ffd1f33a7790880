package model

// MatchType determines how a rule's keywords are compared against text.
type MatchType string

const (
	// MatchExact requires the normalized text to equal a keyword.
	MatchExact MatchType = "exact"
	// MatchSubstring matches keywords contained within the text.
	MatchSubstring MatchType = "substring"
	// MatchRegex treats keywords as regular expression patterns.
	MatchRegex MatchType = "regex"
)

// CategoryRule is a matching rule tied to exactly one category.
// Multiple rules may target the same category; scoring takes the maximum
// across a category's rules, never the sum.
type CategoryRule struct {
	ID               string
	CategoryID       string
	Keywords         []string
	MerchantPatterns []string
	MatchType        MatchType
	Priority         int
}
