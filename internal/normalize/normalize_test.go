package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerchant(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "store number suffix",
			input: "Trader Joe's #122",
			want:  "trader joes",
		},
		{
			name:  "trailing store number without hash",
			input: "STARBUCKS STORE 12345",
			want:  "starbucks store",
		},
		{
			name:  "corporate suffix punctuation",
			input: "Whole Foods Market, Inc.",
			want:  "whole foods market inc",
		},
		{
			name:  "apostrophe and hash",
			input: "McDonald's #789",
			want:  "mcdonalds",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   \t  ",
			want:  "",
		},
		{
			name:  "digits only",
			input: "12345",
			want:  "",
		},
		{
			name:  "internal whitespace collapsed",
			input: "  UBER   *TRIP   8842 ",
			want:  "uber trip",
		},
		{
			name:  "currency symbols stripped",
			input: "AMZN Mktp US*$12.99",
			want:  "amzn mktp us",
		},
		{
			name:  "non-ascii letters preserved",
			input: "Café Río #4",
			want:  "café río",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merchant(tt.input))
		})
	}
}

func TestMerchantIdempotent(t *testing.T) {
	inputs := []string{
		"Trader Joe's #122",
		"STARBUCKS STORE 12345",
		"Whole Foods Market, Inc.",
		"plain merchant",
		"",
		"Café Río #4",
		"!!! ###",
	}

	for _, input := range inputs {
		once := Merchant(input)
		assert.Equal(t, once, Merchant(once), "normalize must be idempotent for %q", input)
	}
}
