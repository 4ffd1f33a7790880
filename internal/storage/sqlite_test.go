package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/iddobarnoon/BudgetWise/internal/common"
	"github.com/iddobarnoon/BudgetWise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create migrated test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))

	var version int
	err := store.db.QueryRowContext(ctx,
		`SELECT MAX(version) FROM schema_migrations`).Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestCategoriesCRUD(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat := model.Category{
		ID:                       "cat_groceries",
		Name:                     "Groceries",
		NecessityScore:           9,
		DefaultAllocationPercent: 15.0,
		IsSystem:                 true,
	}
	require.NoError(t, store.CreateCategory(ctx, &cat))

	t.Run("duplicate name rejected", func(t *testing.T) {
		dup := model.Category{ID: "cat_groceries2", Name: "Groceries", NecessityScore: 5}
		err := store.CreateCategory(ctx, &dup)
		assert.ErrorIs(t, err, common.ErrDuplicateEntry)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := store.GetCategory(ctx, "cat_groceries")
		require.NoError(t, err)
		assert.Equal(t, "Groceries", got.Name)
		assert.Equal(t, 9, got.NecessityScore)
	})

	t.Run("get by name is case-insensitive", func(t *testing.T) {
		got, err := store.GetCategoryByName(ctx, "groceries")
		require.NoError(t, err)
		assert.Equal(t, "cat_groceries", got.ID)
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := store.GetCategory(ctx, "cat_nope")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("necessity score bounds enforced", func(t *testing.T) {
		bad := model.Category{ID: "cat_bad", Name: "Bad", NecessityScore: 11}
		assert.Error(t, store.CreateCategory(ctx, &bad))
	})
}

func TestRulesRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat := model.Category{ID: "cat_dining", Name: "Dining Out", NecessityScore: 4}
	require.NoError(t, store.CreateCategory(ctx, &cat))

	rule := model.CategoryRule{
		ID:               "rule-1",
		CategoryID:       "cat_dining",
		Keywords:         []string{"starbucks", "coffee"},
		MerchantPatterns: []string{"starbucks"},
		MatchType:        model.MatchSubstring,
		Priority:         10,
	}
	require.NoError(t, store.CreateRule(ctx, &rule))

	rules, err := store.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, []string{"starbucks", "coffee"}, rules[0].Keywords)
	assert.Equal(t, []string{"starbucks"}, rules[0].MerchantPatterns)
	assert.Equal(t, model.MatchSubstring, rules[0].MatchType)
	assert.Equal(t, 10, rules[0].Priority)
}

func TestRulesOrderedByPriority(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat := model.Category{ID: "cat_transport", Name: "Transportation", NecessityScore: 8}
	require.NoError(t, store.CreateCategory(ctx, &cat))

	low := model.CategoryRule{
		ID: "rule-low", CategoryID: "cat_transport",
		Keywords: []string{"gas"}, MatchType: model.MatchSubstring, Priority: 3,
	}
	high := model.CategoryRule{
		ID: "rule-high", CategoryID: "cat_transport",
		Keywords: []string{"uber"}, MatchType: model.MatchSubstring, Priority: 10,
	}
	require.NoError(t, store.CreateRule(ctx, &low))
	require.NoError(t, store.CreateRule(ctx, &high))

	rules, err := store.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "rule-high", rules[0].ID)
}

func TestOverrides(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	t.Run("missing override reports not found", func(t *testing.T) {
		_, ok, err := store.GetOverride(ctx, "user-1", "costco")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.SetOverride(ctx, "user-1", "costco", "cat_groceries"))

		categoryID, ok, err := store.GetOverride(ctx, "user-1", "costco")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "cat_groceries", categoryID)
	})

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, store.SetOverride(ctx, "user-1", "costco", "cat_shopping"))

		categoryID, ok, err := store.GetOverride(ctx, "user-1", "costco")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "cat_shopping", categoryID)
	})

	t.Run("overrides are per user", func(t *testing.T) {
		_, ok, err := store.GetOverride(ctx, "user-2", "costco")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, store.SetOverride(ctx, "user-1", "amazon", "cat_shopping"))

		overrides, err := store.ListOverrides(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, overrides, 2)
		assert.Equal(t, "amazon", overrides[0].Merchant)
		assert.Equal(t, "costco", overrides[1].Merchant)
	})
}

func TestPreferences(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	cat := model.Category{ID: "cat_travel", Name: "Travel", NecessityScore: 2}
	require.NoError(t, store.CreateCategory(ctx, &cat))

	t.Run("priority bounds enforced", func(t *testing.T) {
		err := store.SetPreference(ctx, model.UserCategoryPreference{
			UserID: "user-1", CategoryID: "cat_travel", CustomPriority: 0,
		})
		assert.Error(t, err)
	})

	t.Run("upsert", func(t *testing.T) {
		limit := 250.0
		require.NoError(t, store.SetPreference(ctx, model.UserCategoryPreference{
			UserID: "user-1", CategoryID: "cat_travel", CustomPriority: 9, MonthlyLimit: &limit,
		}))
		require.NoError(t, store.SetPreference(ctx, model.UserCategoryPreference{
			UserID: "user-1", CategoryID: "cat_travel", CustomPriority: 4,
		}))

		prefs, err := store.GetPreferences(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, prefs, 1)
		assert.Equal(t, 4, prefs[0].CustomPriority)
		assert.Nil(t, prefs[0].MonthlyLimit)
	})
}

func TestClassificationsAudit(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		record := model.ClassificationRecord{
			ExpenseID:  "exp-1",
			UserID:     "user-1",
			Merchant:   "starbucks",
			CategoryID: "cat_dining_out",
			Source:     model.SourceRule,
			Confidence: 0.9,
			Amount:     5.75,
		}
		require.NoError(t, store.SaveClassification(ctx, &record))
	}

	records, err := store.GetClassificationsByUser(ctx, "user-1", 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, model.SourceRule, records[0].Source)

	other, err := store.GetClassificationsByUser(ctx, "user-2", 10)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSeed(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx))

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 20)

	other, err := store.GetCategoryByName(ctx, "Other")
	require.NoError(t, err)
	assert.Equal(t, "cat_other", other.ID)
	assert.Equal(t, 1, other.NecessityScore)

	rules, err := store.ListRules(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, rules)

	t.Run("seed is idempotent", func(t *testing.T) {
		require.NoError(t, store.Seed(ctx))

		again, err := store.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, again, 20)
	})

	t.Run("slug handles punctuation", func(t *testing.T) {
		fitness, err := store.GetCategoryByName(ctx, "Fitness & Wellness")
		require.NoError(t, err)
		assert.Equal(t, "cat_fitness_and_wellness", fitness.ID)
	})
}
