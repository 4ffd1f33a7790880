// Package ranking implements the classification and ranking orchestrator.
package ranking

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/iddobarnoon/BudgetWise/internal/common"
	"github.com/iddobarnoon/BudgetWise/internal/metrics"
	"github.com/iddobarnoon/BudgetWise/internal/model"
	"github.com/iddobarnoon/BudgetWise/internal/normalize"
	"github.com/iddobarnoon/BudgetWise/internal/rules"
	"github.com/iddobarnoon/BudgetWise/internal/service"
)

// Strategy scores every catalog category against normalized merchant and
// description text. The rule scorer and the semantic scorer are the two
// implementations; the engine reconciles them by per-category best-of,
// never additively.
type Strategy interface {
	Name() model.RankingSource
	ScoreCategories(ctx context.Context, snap *model.CatalogSnapshot, merchant, description string) (map[string]float64, error)
}

// Config holds tunable engine constants.
type Config struct {
	// DefaultCategoryName identifies the fallback category by display
	// name, case-insensitively.
	DefaultCategoryName string
	// PinnedConfidence is reported for override hits.
	PinnedConfidence float64
	// FallbackConfidence is reported when no signal matched anything.
	FallbackConfidence float64
	// MaxAlternatives caps the alternatives list, winner excluded.
	MaxAlternatives int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		DefaultCategoryName: "Other",
		PinnedConfidence:    0.99,
		FallbackConfidence:  0.3,
		MaxAlternatives:     3,
	}
}

// Engine composes the normalizer, override store, catalog, and scoring
// strategies into the public classify/correct/priority operations. It holds
// no request-scoped mutable state; classifications run fully in parallel.
type Engine struct {
	catalog     *rules.Catalog
	overrides   service.OverrideStore
	preferences service.PreferenceStore
	audit       service.AuditStore
	strategies  []Strategy
	config      Config
}

// New creates an engine. The audit store may be nil to disable the
// classification log; preferences may be nil when priority operations are
// not needed. At least one strategy is required.
func New(catalog *rules.Catalog, overrides service.OverrideStore, strategies []Strategy, opts ...Option) *Engine {
	e := &Engine{
		catalog:    catalog,
		overrides:  overrides,
		strategies: strategies,
		config:     DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option customizes engine construction.
type Option func(*Engine)

// WithConfig replaces the default engine constants.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.config = cfg }
}

// WithPreferences attaches a preference store for priority operations.
func WithPreferences(store service.PreferenceStore) Option {
	return func(e *Engine) { e.preferences = store }
}

// WithAudit attaches an audit store; every classification is then recorded.
func WithAudit(store service.AuditStore) Option {
	return func(e *Engine) { e.audit = store }
}

// Refresh reloads the catalog snapshot and invalidates any strategy caches
// keyed on catalog contents.
func (e *Engine) Refresh(ctx context.Context) error {
	if err := e.catalog.Refresh(ctx); err != nil {
		return err
	}
	for _, strat := range e.strategies {
		if inv, ok := strat.(interface{ InvalidateCache() }); ok {
			inv.InvalidateCache()
		}
	}
	return nil
}

// Classify picks the best-matching category for an expense, with a
// calibrated confidence and up to MaxAlternatives ranked alternatives.
//
// A stored override for the normalized merchant short-circuits everything:
// the pinned category returns with PinnedConfidence, an empty alternatives
// list, and no scoring at all. Otherwise every strategy scores every
// category, scores merge per category by maximum, and the sorted result
// feeds the confidence estimator. When nothing scores above zero the
// catalog's default category is returned at FallbackConfidence.
func (e *Engine) Classify(ctx context.Context, userID, merchant string, amount float64, description string) (*model.RankingResult, error) {
	// The original surface accepts a lone description in place of a merchant.
	if merchant == "" {
		merchant = description
	}

	normalized := normalize.Merchant(merchant)
	normalizedDesc := normalize.Merchant(description)

	snap := e.catalog.Snapshot()

	if normalized != "" {
		categoryID, ok, err := e.overrides.GetOverride(ctx, userID, normalized)
		if err != nil {
			return nil, fmt.Errorf("failed to check override: %w", err)
		}
		if ok {
			if cat, found := snap.Categories[categoryID]; found {
				result := &model.RankingResult{
					BestCategory: cat,
					Confidence:   e.config.PinnedConfidence,
					Alternatives: model.CategoryScores{},
					Source:       model.SourceOverride,
				}
				e.finish(ctx, userID, merchant, amount, result)
				return result, nil
			}
			// A pin referencing a category the catalog dropped is stale
			// data, not a reason to fail; fall through to scoring.
			slog.Warn("Override references unknown category, ignoring",
				"user_id", userID,
				"category_id", categoryID)
		}
	}

	merged := make(map[string]float64)
	sources := make(map[string]model.RankingSource)

	for _, strat := range e.strategies {
		scores, err := strat.ScoreCategories(ctx, snap, normalized, normalizedDesc)
		if err != nil {
			// A failing strategy degrades to no signal; the rule-based
			// signal must always be able to produce a result on its own.
			slog.Warn("Scoring strategy failed, skipping",
				"strategy", strat.Name(),
				"error", err)
			continue
		}
		for categoryID, score := range scores {
			if score > merged[categoryID] {
				merged[categoryID] = score
				sources[categoryID] = strat.Name()
			}
		}
	}

	ranked := make(model.CategoryScores, 0, len(merged))
	for categoryID, score := range merged {
		if score <= 0 {
			continue
		}
		cat, ok := snap.Categories[categoryID]
		if !ok {
			continue
		}
		ranked = append(ranked, model.CategoryScore{Category: cat, Score: score})
	}
	ranked.Sort()

	if len(ranked) == 0 {
		result, err := e.fallback(snap)
		if err != nil {
			return nil, err
		}
		e.finish(ctx, userID, merchant, amount, result)
		return result, nil
	}

	best := ranked[0]
	alternatives := ranked[1:].TopN(e.config.MaxAlternatives)

	result := &model.RankingResult{
		BestCategory: best.Category,
		Confidence:   Confidence(ranked.Values()),
		Alternatives: alternatives,
		Source:       sources[best.Category.ID],
	}
	e.finish(ctx, userID, merchant, amount, result)
	return result, nil
}

// fallback resolves the default category. An empty catalog, or a catalog
// without the default category, is a fatal configuration error since
// classification is meaningless without any catalog.
func (e *Engine) fallback(snap *model.CatalogSnapshot) (*model.RankingResult, error) {
	if snap.Empty() {
		return nil, common.ErrEmptyCatalog
	}

	cat, ok := snap.CategoryByName(e.config.DefaultCategoryName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrNoDefaultCategory, e.config.DefaultCategoryName)
	}

	return &model.RankingResult{
		BestCategory: cat,
		Confidence:   e.config.FallbackConfidence,
		Alternatives: model.CategoryScores{},
		Source:       model.SourceFallback,
	}, nil
}

// finish records metrics and the optional audit entry for a classification.
func (e *Engine) finish(ctx context.Context, userID, merchant string, amount float64, result *model.RankingResult) {
	metrics.Classification(string(result.Source), result.Confidence)

	if e.audit == nil {
		return
	}

	record := &model.ClassificationRecord{
		ClassifiedAt: time.Now(),
		UserID:       userID,
		Merchant:     merchant,
		CategoryID:   result.BestCategory.ID,
		Source:       result.Source,
		Confidence:   result.Confidence,
		Amount:       amount,
	}
	if err := e.audit.SaveClassification(ctx, record); err != nil {
		// Auditing is best-effort; a failed write never fails the request.
		slog.Warn("Failed to record classification", "error", err)
	}
}

// Correct stores a user correction as a merchant override. It does not
// retroactively rescore any prior classification.
func (e *Engine) Correct(ctx context.Context, userID, merchant, categoryID string) error {
	normalized := normalize.Merchant(merchant)
	if normalized == "" {
		return common.NewUserError(fmt.Sprintf("merchant %q has no comparable text after normalization", merchant), nil)
	}

	snap := e.catalog.Snapshot()
	if _, ok := snap.Categories[categoryID]; !ok {
		return fmt.Errorf("%w: %q", common.ErrUnknownCategory, categoryID)
	}

	if err := e.overrides.SetOverride(ctx, userID, normalized, categoryID); err != nil {
		return fmt.Errorf("failed to save override: %w", err)
	}

	slog.Debug("Override saved",
		"user_id", userID,
		"merchant", normalized,
		"category_id", categoryID)

	return nil
}

// PriorityOrder returns the catalog's categories ordered by the user's
// custom priority where one is set, otherwise by necessity score, both
// descending. This is a read-only view for the budgeting collaborator; it
// plays no part in the ranking algorithm.
func (e *Engine) PriorityOrder(ctx context.Context, userID string) ([]model.Category, error) {
	snap := e.catalog.Snapshot()
	if snap.Empty() {
		return nil, common.ErrEmptyCatalog
	}

	custom := make(map[string]int)
	if e.preferences != nil {
		prefs, err := e.preferences.GetPreferences(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load preferences: %w", err)
		}
		for _, pref := range prefs {
			custom[pref.CategoryID] = pref.CustomPriority
		}
	}

	categories := make([]model.Category, 0, len(snap.Categories))
	for _, cat := range snap.Categories {
		categories = append(categories, cat)
	}

	effective := func(cat model.Category) int {
		if p, ok := custom[cat.ID]; ok {
			return p
		}
		return cat.NecessityScore
	}

	sort.Slice(categories, func(i, j int) bool {
		pi, pj := effective(categories[i]), effective(categories[j])
		if pi != pj {
			return pi > pj
		}
		if categories[i].NecessityScore != categories[j].NecessityScore {
			return categories[i].NecessityScore > categories[j].NecessityScore
		}
		return categories[i].Name < categories[j].Name
	})

	return categories, nil
}

// SetPriority upserts a user's custom priority (1-10) and optional monthly
// limit for a category.
func (e *Engine) SetPriority(ctx context.Context, userID, categoryID string, priority int, monthlyLimit *float64) error {
	if e.preferences == nil {
		return common.NewUserError("priority customization is not configured", nil)
	}
	if priority < 1 || priority > 10 {
		return common.NewUserError(fmt.Sprintf("priority must be between 1 and 10, got %d", priority), nil)
	}

	snap := e.catalog.Snapshot()
	if _, ok := snap.Categories[categoryID]; !ok {
		return fmt.Errorf("%w: %q", common.ErrUnknownCategory, categoryID)
	}

	pref := model.UserCategoryPreference{
		UpdatedAt:      time.Now(),
		UserID:         userID,
		CategoryID:     categoryID,
		CustomPriority: priority,
		MonthlyLimit:   monthlyLimit,
	}
	if err := e.preferences.SetPreference(ctx, pref); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	return nil
}
