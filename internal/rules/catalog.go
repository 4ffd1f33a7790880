// Package rules provides the in-memory rule catalog and keyword/pattern scoring.
package rules

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/iddobarnoon/BudgetWise/internal/model"
	"github.com/iddobarnoon/BudgetWise/internal/service"
)

// Catalog holds the current category/rule snapshot. Concurrent classifications
// read the snapshot through an atomic pointer; Refresh builds a complete
// replacement and swaps it in, so an in-flight read never observes a torn set.
type Catalog struct {
	provider service.CatalogProvider
	current  atomic.Pointer[model.CatalogSnapshot]
}

// NewCatalog creates a catalog backed by the given provider.
// The catalog starts empty; call Refresh before classifying.
func NewCatalog(provider service.CatalogProvider) *Catalog {
	c := &Catalog{provider: provider}
	c.current.Store(&model.CatalogSnapshot{Categories: map[string]model.Category{}})
	return c
}

// Refresh loads categories and rules from the provider and atomically
// replaces the current snapshot. An empty catalog is not an error here;
// classification falls back to the default category instead.
func (c *Catalog) Refresh(ctx context.Context) error {
	categories, err := c.provider.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	catalogRules, err := c.provider.ListRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}

	byID := make(map[string]model.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	// Drop rules that point at categories the catalog no longer has.
	kept := make([]model.CategoryRule, 0, len(catalogRules))
	for _, rule := range catalogRules {
		if _, ok := byID[rule.CategoryID]; !ok {
			slog.Warn("Dropping rule for unknown category",
				"rule_id", rule.ID,
				"category_id", rule.CategoryID)
			continue
		}
		kept = append(kept, rule)
	}

	c.current.Store(&model.CatalogSnapshot{
		Categories: byID,
		Rules:      kept,
	})

	slog.Debug("Catalog refreshed",
		"categories", len(byID),
		"rules", len(kept))

	return nil
}

// Snapshot returns the current immutable snapshot. Callers must not mutate it.
func (c *Catalog) Snapshot() *model.CatalogSnapshot {
	return c.current.Load()
}
