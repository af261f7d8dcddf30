// Package memory provides a bounded in-process search-response cache.
//
// The cache never evicts: once the configured capacity is reached, new
// entries are refused with domain.ErrCacheFull. Eviction policies make
// response latency unpredictable under load; refusing keeps the cache a
// strict optimisation whose worst case is a plain uncached search.
package memory

import (
	"context"
	"sync"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
)

// Ensure SearchCache implements the interface.
var _ driven.SearchCache = (*SearchCache)(nil)

// DefaultCapacity bounds the cache when none is configured.
const DefaultCapacity = 128

// SearchCache is a bounded in-memory response cache.
type SearchCache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[string][]domain.SearchResult
}

// NewSearchCache creates a cache holding at most capacity entries.
// Non-positive capacity falls back to DefaultCapacity.
func NewSearchCache(capacity int) *SearchCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &SearchCache{
		capacity: capacity,
		entries:  make(map[string][]domain.SearchResult),
	}
}

// Get returns the cached results for a key, or domain.ErrNotFound.
func (c *SearchCache) Get(_ context.Context, key string) ([]domain.SearchResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	results, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	// Callers may mutate the returned slice; hand out a copy.
	out := make([]domain.SearchResult, len(results))
	copy(out, results)
	return out, nil
}

// Set stores results under a key. Overwriting an existing key always
// succeeds; a new key is refused with domain.ErrCacheFull once the
// capacity is reached.
func (c *SearchCache) Set(_ context.Context, key string, results []domain.SearchResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		return domain.ErrCacheFull
	}

	stored := make([]domain.SearchResult, len(results))
	copy(stored, results)
	c.entries[key] = stored
	return nil
}

// Len returns the number of cached entries.
func (c *SearchCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close releases resources (none held).
func (c *SearchCache) Close() error {
	return nil
}
