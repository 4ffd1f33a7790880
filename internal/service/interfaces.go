// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/iddobarnoon/BudgetWise/internal/model"
)

// CatalogProvider supplies the category catalog and its matching rules.
// Implementations own the source of truth; the engine only reads snapshots.
type CatalogProvider interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListRules(ctx context.Context) ([]model.CategoryRule, error)
}

// OverrideStore persists per-user merchant category pins.
// Keys are normalized merchant names so cosmetic variants collapse.
type OverrideStore interface {
	// GetOverride returns the pinned category for (userID, normalizedMerchant).
	// ok is false when no override exists.
	GetOverride(ctx context.Context, userID, normalizedMerchant string) (categoryID string, ok bool, err error)
	// SetOverride upserts a pin; last write wins.
	SetOverride(ctx context.Context, userID, normalizedMerchant, categoryID string) error
	// ListOverrides returns all pins for a user.
	ListOverrides(ctx context.Context, userID string) ([]model.Override, error)
}

// PreferenceStore persists per-user category priorities and limits.
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) ([]model.UserCategoryPreference, error)
	SetPreference(ctx context.Context, pref model.UserCategoryPreference) error
}

// AuditStore records classification results for later review.
// It is optional; a nil store disables auditing.
type AuditStore interface {
	SaveClassification(ctx context.Context, record *model.ClassificationRecord) error
	GetClassificationsByUser(ctx context.Context, userID string, limit int) ([]model.ClassificationRecord, error)
}

// Embedder obtains an embedding vector for arbitrary text.
// Implementations own transport, retries, and rate limiting.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
