package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/iddobarnoon/BudgetWise/internal/common"
	"github.com/iddobarnoon/BudgetWise/internal/model"
)

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("%w: context is required", common.ErrInvalidConfig)
	}
	return nil
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", common.ErrInvalidConfig, name)
	}
	return nil
}

func validateCategory(cat *model.Category) error {
	if cat == nil {
		return fmt.Errorf("%w: category is required", common.ErrInvalidConfig)
	}
	if cat.ID == "" || cat.Name == "" {
		return fmt.Errorf("%w: category id and name are required", common.ErrInvalidConfig)
	}
	if cat.NecessityScore < 1 || cat.NecessityScore > 10 {
		return fmt.Errorf("%w: necessity score must be between 1 and 10, got %d",
			common.ErrInvalidConfig, cat.NecessityScore)
	}
	return nil
}

func validateRule(rule *model.CategoryRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule is required", common.ErrInvalidConfig)
	}
	if rule.ID == "" || rule.CategoryID == "" {
		return fmt.Errorf("%w: rule id and category id are required", common.ErrInvalidConfig)
	}
	switch rule.MatchType {
	case model.MatchExact, model.MatchSubstring, model.MatchRegex:
	default:
		return fmt.Errorf("%w: unknown match type %q", common.ErrInvalidConfig, rule.MatchType)
	}
	return nil
}
