package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/iddobarnoon/BudgetWise/internal/model"
)

type seedCategory struct {
	name              string
	necessityScore    int
	allocationPercent float64
}

type seedRule struct {
	categoryName string
	pattern      string
	priority     int
}

// Default catalog: twenty system categories spanning essential to
// discretionary spending. "Other" is the fallback and must exist.
var defaultCategories = []seedCategory{
	{"Housing", 10, 30.0},
	{"Utilities", 10, 10.0},
	{"Groceries", 9, 15.0},
	{"Healthcare", 9, 8.0},
	{"Transportation", 8, 10.0},
	{"Insurance", 8, 5.0},
	{"Debt Payments", 8, 10.0},
	{"Savings", 7, 15.0},
	{"Childcare", 7, 8.0},
	{"Education", 6, 5.0},
	{"Dining Out", 4, 8.0},
	{"Entertainment", 3, 5.0},
	{"Shopping", 3, 7.0},
	{"Fitness & Wellness", 5, 3.0},
	{"Subscriptions", 4, 3.0},
	{"Travel", 2, 5.0},
	{"Hobbies", 2, 3.0},
	{"Gifts & Donations", 3, 3.0},
	{"Personal Care", 4, 3.0},
	{"Other", 1, 2.0},
}

var defaultRules = []seedRule{
	{"Groceries", "walmart", 10},
	{"Groceries", "target", 10},
	{"Groceries", "kroger", 10},
	{"Groceries", "safeway", 10},
	{"Groceries", "whole foods", 10},
	{"Groceries", "trader joes", 10},
	{"Groceries", "costco", 10},
	{"Groceries", "sams club", 10},
	{"Groceries", "aldi", 10},
	{"Groceries", "publix", 10},

	{"Transportation", "shell", 10},
	{"Transportation", "chevron", 10},
	{"Transportation", "exxon", 10},
	{"Transportation", "bp", 10},
	{"Transportation", "gas", 8},
	{"Transportation", "fuel", 8},
	{"Transportation", "uber", 10},
	{"Transportation", "lyft", 10},
	{"Transportation", "taxi", 10},

	{"Dining Out", "restaurant", 10},
	{"Dining Out", "mcdonalds", 10},
	{"Dining Out", "burger king", 10},
	{"Dining Out", "starbucks", 10},
	{"Dining Out", "subway", 10},
	{"Dining Out", "chipotle", 10},
	{"Dining Out", "pizza", 8},
	{"Dining Out", "cafe", 8},
	{"Dining Out", "coffee", 7},
	{"Dining Out", "doordash", 10},
	{"Dining Out", "grubhub", 10},
	{"Dining Out", "uber eats", 10},

	{"Entertainment", "netflix", 10},
	{"Entertainment", "spotify", 10},
	{"Entertainment", "hulu", 10},
	{"Entertainment", "disney", 10},
	{"Entertainment", "movie", 9},
	{"Entertainment", "theater", 9},
	{"Entertainment", "cinema", 9},
	{"Entertainment", "amc", 10},
	{"Entertainment", "steam", 10},
	{"Entertainment", "playstation", 10},
	{"Entertainment", "xbox", 10},

	{"Utilities", "electric", 10},
	{"Utilities", "water", 10},
	{"Utilities", "internet", 10},
	{"Utilities", "comcast", 10},
	{"Utilities", "verizon", 10},
	{"Utilities", "att", 10},
	{"Utilities", "tmobile", 10},

	{"Shopping", "amazon", 10},
	{"Shopping", "ebay", 10},
	{"Shopping", "etsy", 10},
	{"Shopping", "bestbuy", 10},
	{"Shopping", "macys", 10},
	{"Shopping", "nordstrom", 10},

	{"Healthcare", "pharmacy", 10},
	{"Healthcare", "cvs", 10},
	{"Healthcare", "walgreens", 10},
	{"Healthcare", "doctor", 9},
	{"Healthcare", "hospital", 9},
	{"Healthcare", "medical", 9},
}

// categorySlug derives a stable ID from a category name, e.g.
// "Dining Out" becomes "cat_dining_out".
func categorySlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, "&", "and")
	slug = strings.Join(strings.Fields(slug), "_")
	return "cat_" + slug
}

// Seed populates the default categories and matching rules. It is
// idempotent: existing categories are left alone, and rules are only
// inserted on first run.
func (s *SQLiteStorage) Seed(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var categoryCount int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories`).Scan(&categoryCount); err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if categoryCount > 0 {
		return nil
	}

	for _, sc := range defaultCategories {
		cat := model.Category{
			ID:                       categorySlug(sc.name),
			Name:                     sc.name,
			NecessityScore:           sc.necessityScore,
			DefaultAllocationPercent: sc.allocationPercent,
			IsSystem:                 true,
		}
		if err := s.CreateCategory(ctx, &cat); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", sc.name, err)
		}
	}

	for _, sr := range defaultRules {
		rule := model.CategoryRule{
			ID:               uuid.NewString(),
			CategoryID:       categorySlug(sr.categoryName),
			Keywords:         []string{sr.pattern},
			MerchantPatterns: []string{sr.pattern},
			MatchType:        model.MatchSubstring,
			Priority:         sr.priority,
		}
		if err := s.CreateRule(ctx, &rule); err != nil {
			return fmt.Errorf("failed to seed rule %q: %w", sr.pattern, err)
		}
	}

	return nil
}
