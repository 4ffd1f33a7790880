// Package normalize canonicalizes merchant and description text for matching.
package normalize

import (
	"regexp"
	"strings"
)

var (
	storeNumberPattern = regexp.MustCompile(`#\d+`)
	digitPattern       = regexp.MustCompile(`\d+`)
	punctPattern       = regexp.MustCompile(`[\p{P}\p{S}]`)
)

// Merchant canonicalizes a raw merchant or description string into a
// comparable key: ASCII lower-case, store-number suffixes and digits
// removed, punctuation stripped, whitespace collapsed.
//
// The transform is deterministic and idempotent. Empty or whitespace-only
// input yields an empty string, which callers must treat as "no signal".
func Merchant(raw string) string {
	normalized := asciiLower(raw)

	normalized = storeNumberPattern.ReplaceAllString(normalized, "")
	normalized = digitPattern.ReplaceAllString(normalized, "")
	normalized = punctPattern.ReplaceAllString(normalized, "")

	return strings.Join(strings.Fields(normalized), " ")
}

// asciiLower lower-cases ASCII letters only. Non-ASCII runes pass through
// unchanged; the catalog's rule keywords are ASCII and locale-aware folding
// would alter input we have no rules for anyway.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
