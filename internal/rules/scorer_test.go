package rules

import (
	"testing"

	"github.com/iddobarnoon/BudgetWise/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestScorer_Score(t *testing.T) {
	tests := []struct {
		name string
		text string
		rule model.CategoryRule
		want float64
	}{
		{
			name: "exact match scores full",
			text: "starbucks",
			rule: model.CategoryRule{
				Keywords:  []string{"starbucks"},
				MatchType: model.MatchExact,
			},
			want: 1.0,
		},
		{
			name: "exact match requires equality",
			text: "starbucks store",
			rule: model.CategoryRule{
				Keywords:  []string{"starbucks"},
				MatchType: model.MatchExact,
			},
			want: 0,
		},
		{
			name: "substring rewards coverage",
			text: "starbucks store",
			rule: model.CategoryRule{
				Keywords:  []string{"starbucks"},
				MatchType: model.MatchSubstring,
			},
			// 1.5 * 9/15
			want: 0.9,
		},
		{
			name: "substring clamps at one",
			text: "starbucks",
			rule: model.CategoryRule{
				Keywords:  []string{"starbucks"},
				MatchType: model.MatchSubstring,
			},
			want: 1.0,
		},
		{
			name: "substring miss scores zero",
			text: "home depot",
			rule: model.CategoryRule{
				Keywords:  []string{"starbucks"},
				MatchType: model.MatchSubstring,
			},
			want: 0,
		},
		{
			name: "regex match is discounted",
			text: "uber trip",
			rule: model.CategoryRule{
				Keywords:  []string{`^uber\b`},
				MatchType: model.MatchRegex,
			},
			want: 0.9,
		},
		{
			name: "invalid regex is skipped",
			text: "uber trip",
			rule: model.CategoryRule{
				Keywords:  []string{`([unclosed`},
				MatchType: model.MatchRegex,
			},
			want: 0,
		},
		{
			name: "merchant pattern token overlap",
			text: "whole foods market",
			rule: model.CategoryRule{
				MerchantPatterns: []string{"whole foods"},
				MatchType:        model.MatchExact,
			},
			// |{whole,foods}| / |{whole,foods,market}|
			want: 2.0 / 3.0,
		},
		{
			name: "priority cannot manufacture a match",
			text: "completely unrelated",
			rule: model.CategoryRule{
				Keywords:  []string{"starbucks"},
				MatchType: model.MatchSubstring,
				Priority:  10,
			},
			want: 0,
		},
		{
			name: "priority boost clamps at one",
			text: "starbucks",
			rule: model.CategoryRule{
				Keywords:  []string{"starbucks"},
				MatchType: model.MatchExact,
				Priority:  8,
			},
			want: 1.0,
		},
		{
			name: "empty text has no signal",
			text: "",
			rule: model.CategoryRule{
				Keywords:  []string{"starbucks"},
				MatchType: model.MatchSubstring,
				Priority:  5,
			},
			want: 0,
		},
	}

	scorer := NewScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.text, tt.rule)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestScorer_PriorityBreaksTies(t *testing.T) {
	scorer := NewScorer()

	low := model.CategoryRule{
		Keywords:  []string{"coffee"},
		MatchType: model.MatchSubstring,
		Priority:  1,
	}
	high := model.CategoryRule{
		Keywords:  []string{"coffee"},
		MatchType: model.MatchSubstring,
		Priority:  5,
	}

	text := "coffee downtown roasters"
	assert.Greater(t, scorer.Score(text, high), scorer.Score(text, low))
}

func TestScorer_TakesMaximumAcrossBranches(t *testing.T) {
	scorer := NewScorer()

	rule := model.CategoryRule{
		Keywords:         []string{"gas", "fuel station chevron"},
		MerchantPatterns: []string{"chevron"},
		MatchType:        model.MatchSubstring,
	}

	// "gas" substring gives 1.5*3/11 ≈ 0.41; the pattern's token overlap
	// of {chevron,gas} against {chevron} gives 0.5. The best branch wins.
	got := scorer.Score("chevron gas", rule)
	assert.InDelta(t, 0.5, got, 1e-9)
}
