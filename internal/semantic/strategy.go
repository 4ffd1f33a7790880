package semantic

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/iddobarnoon/BudgetWise/internal/metrics"
	"github.com/iddobarnoon/BudgetWise/internal/model"
	"github.com/iddobarnoon/BudgetWise/internal/service"
)

// defaultWorkers bounds concurrent label-embedding lookups per classification.
const defaultWorkers = 4

// Strategy scores categories by cosine similarity between the merchant
// embedding and each category-label embedding. It is an alternative to the
// rule strategy behind the same scoring contract; the engine reconciles the
// two by per-category best-of.
type Strategy struct {
	embedder service.Embedder
	cache    *labelCache
	workers  int
}

// NewStrategy creates a semantic scoring strategy.
func NewStrategy(embedder service.Embedder, workers int) *Strategy {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Strategy{
		embedder: embedder,
		cache:    newLabelCache(),
		workers:  workers,
	}
}

// Name identifies the strategy in results and metrics.
func (s *Strategy) Name() model.RankingSource {
	return model.SourceSemantic
}

// InvalidateCache drops all cached label embeddings. The engine calls this
// on catalog refresh since labels may have changed.
func (s *Strategy) InvalidateCache() {
	s.cache.clear()
}

// ScoreCategories embeds the merchant text once and scores it against every
// category label concurrently, bounded by the worker limit. Any embedding
// failure or timeout degrades to score 0 for that side; classification must
// never hard-fail because the embedding provider is down.
func (s *Strategy) ScoreCategories(ctx context.Context, snap *model.CatalogSnapshot, merchant, _ string) (map[string]float64, error) {
	if merchant == "" || snap.Empty() {
		return map[string]float64{}, nil
	}

	merchantVec, err := s.embedder.Embed(ctx, merchant)
	if err != nil {
		metrics.EmbeddingFailure()
		slog.Warn("Merchant embedding failed, skipping semantic signal",
			"merchant", merchant,
			"error", err)
		return map[string]float64{}, nil
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		scores = make(map[string]float64, len(snap.Categories))
		sem    = make(chan struct{}, s.workers)
	)

	for _, cat := range snap.Categories {
		wg.Add(1)
		sem <- struct{}{}
		go func(cat model.Category) {
			defer wg.Done()
			defer func() { <-sem }()

			labelVec, ok := s.labelVector(ctx, cat)
			if !ok {
				return
			}

			score := cosineSimilarity(merchantVec, labelVec)
			if score <= 0 {
				return
			}

			mu.Lock()
			scores[cat.ID] = score
			mu.Unlock()
		}(cat)
	}

	wg.Wait()

	return scores, nil
}

// labelVector returns the embedding for a category label, from cache when
// possible. Failures degrade to no signal for that category.
func (s *Strategy) labelVector(ctx context.Context, cat model.Category) ([]float64, bool) {
	if vec, ok := s.cache.get(cat.ID); ok {
		return vec, true
	}

	vec, err := s.embedder.Embed(ctx, cat.Name)
	if err != nil {
		metrics.EmbeddingFailure()
		slog.Warn("Category label embedding failed",
			"category", cat.Name,
			"error", err)
		return nil, false
	}

	s.cache.set(cat.ID, vec)
	return vec, true
}

// cosineSimilarity computes cosine similarity clamped to [0,1]. Downstream
// ranking assumes non-negative scores, so negative cosine becomes 0.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
