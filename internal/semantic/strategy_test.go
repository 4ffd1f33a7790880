package semantic

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/iddobarnoon/BudgetWise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder returns fixed vectors per text and counts calls.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   atomic.Int64
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	vec, ok := f.vectors[text]
	if !ok {
		return nil, errors.New("no vector for " + text)
	}
	return vec, nil
}

func testSnapshot() *model.CatalogSnapshot {
	return &model.CatalogSnapshot{
		Categories: map[string]model.Category{
			"cat_dining":    {ID: "cat_dining", Name: "Dining Out"},
			"cat_groceries": {ID: "cat_groceries", Name: "Groceries"},
		},
	}
}

func TestStrategy_ScoreCategories(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"starbucks":  {1, 0, 0},
		"Dining Out": {0.9, 0.1, 0},
		"Groceries":  {0, 1, 0},
	}}

	strategy := NewStrategy(embedder, 2)
	scores, err := strategy.ScoreCategories(context.Background(), testSnapshot(), "starbucks", "")
	require.NoError(t, err)

	assert.Greater(t, scores["cat_dining"], 0.9)
	// Orthogonal vectors give 0 and are dropped from the map.
	assert.NotContains(t, scores, "cat_groceries")
}

func TestStrategy_NegativeCosineClampedToZero(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"starbucks":  {1, 0},
		"Dining Out": {-1, 0},
		"Groceries":  {1, 0},
	}}

	strategy := NewStrategy(embedder, 1)
	scores, err := strategy.ScoreCategories(context.Background(), testSnapshot(), "starbucks", "")
	require.NoError(t, err)

	assert.NotContains(t, scores, "cat_dining")
	assert.InDelta(t, 1.0, scores["cat_groceries"], 1e-9)
}

func TestStrategy_EmbedderFailureDegradesToNoSignal(t *testing.T) {
	embedder := &fakeEmbedder{err: errors.New("provider down")}

	strategy := NewStrategy(embedder, 2)
	scores, err := strategy.ScoreCategories(context.Background(), testSnapshot(), "starbucks", "")

	// Never hard-fails: empty scores, nil error.
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestStrategy_LabelCacheAvoidsRepeatEmbeds(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"starbucks":  {1, 0},
		"coffee":     {1, 0},
		"Dining Out": {1, 0},
		"Groceries":  {0, 1},
	}}

	strategy := NewStrategy(embedder, 2)
	ctx := context.Background()
	snap := testSnapshot()

	_, err := strategy.ScoreCategories(ctx, snap, "starbucks", "")
	require.NoError(t, err)
	afterFirst := embedder.calls.Load()

	_, err = strategy.ScoreCategories(ctx, snap, "coffee", "")
	require.NoError(t, err)

	// Second call embeds only the merchant; both labels come from cache.
	assert.Equal(t, afterFirst+1, embedder.calls.Load())

	strategy.InvalidateCache()
	_, err = strategy.ScoreCategories(ctx, snap, "coffee", "")
	require.NoError(t, err)
	assert.Equal(t, afterFirst+1+3, embedder.calls.Load())
}

func TestStrategy_EmptyMerchantHasNoSignal(t *testing.T) {
	strategy := NewStrategy(&fakeEmbedder{}, 1)
	scores, err := strategy.ScoreCategories(context.Background(), testSnapshot(), "", "")
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float64
		b    []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite clamps to zero", []float64{1, 0}, []float64{-1, 0}, 0.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
		{"length mismatch", []float64{1}, []float64{1, 0}, 0.0},
		{"empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}
