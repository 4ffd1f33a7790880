package semantic

import "sync"

// labelCache stores category-label embeddings keyed by category ID.
// Labels are near-static, so entries live until the catalog refreshes
// and the owner calls clear. Merchant embeddings are never cached; they
// are effectively unique per call.
type labelCache struct {
	entries map[string][]float64
	mu      sync.RWMutex
}

func newLabelCache() *labelCache {
	return &labelCache{entries: make(map[string][]float64)}
}

// get retrieves a cached vector for a category ID.
func (c *labelCache) get(categoryID string) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	vec, ok := c.entries[categoryID]
	return vec, ok
}

// set stores a vector for a category ID.
func (c *labelCache) set(categoryID string, vec []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[categoryID] = vec
}

// clear removes all entries.
func (c *labelCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]float64)
}
