package rules

import (
	"context"

	"github.com/iddobarnoon/BudgetWise/internal/model"
)

// DefaultDescriptionWeight is the discount applied to description-derived
// scores before they blend with merchant scores.
const DefaultDescriptionWeight = 0.8

// Strategy scores categories with keyword/pattern rules. It implements the
// ranking engine's scoring strategy contract.
type Strategy struct {
	scorer            *Scorer
	descriptionWeight float64
}

// NewStrategy creates a rule-based scoring strategy. A descriptionWeight
// of 0 selects the default discount.
func NewStrategy(descriptionWeight float64) *Strategy {
	if descriptionWeight <= 0 || descriptionWeight > 1 {
		descriptionWeight = DefaultDescriptionWeight
	}
	return &Strategy{
		scorer:            NewScorer(),
		descriptionWeight: descriptionWeight,
	}
}

// Name identifies the strategy in results and metrics.
func (s *Strategy) Name() model.RankingSource {
	return model.SourceRule
}

// ScoreCategories evaluates every rule in the snapshot against the
// normalized merchant and description. Scores accumulate per category as a
// maximum across that category's rules, never a sum, so redundant keywords
// cannot inflate a category. The description goes through the same pipeline
// and blends in as max(merchant, weight*description) per category.
func (s *Strategy) ScoreCategories(_ context.Context, snap *model.CatalogSnapshot, merchant, description string) (map[string]float64, error) {
	merchantMax := make(map[string]float64)
	descriptionMax := make(map[string]float64)

	for _, rule := range snap.Rules {
		if score := s.scorer.Score(merchant, rule); score > merchantMax[rule.CategoryID] {
			merchantMax[rule.CategoryID] = score
		}
		if description == "" {
			continue
		}
		if score := s.scorer.Score(description, rule); score > descriptionMax[rule.CategoryID] {
			descriptionMax[rule.CategoryID] = score
		}
	}

	scores := make(map[string]float64, len(merchantMax))
	for categoryID, score := range merchantMax {
		if score > 0 {
			scores[categoryID] = score
		}
	}
	for categoryID, score := range descriptionMax {
		discounted := score * s.descriptionWeight
		if discounted > scores[categoryID] {
			scores[categoryID] = discounted
		}
	}

	return scores, nil
}
