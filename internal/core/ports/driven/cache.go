package driven

import (
	"context"

	"github.com/avocatech/juricite/internal/core/domain"
)

// SearchCache stores full enriched-search responses keyed by query,
// tenant and filters. Caching is an optimisation only: any cache
// failure degrades to an uncached search, never to a failed one.
type SearchCache interface {
	// Get returns the cached results for a key, or
	// domain.ErrNotFound on a miss.
	Get(ctx context.Context, key string) ([]domain.SearchResult, error)

	// Set stores results under a key. The bounded in-process cache
	// refuses new entries once full (domain.ErrCacheFull) instead of
	// evicting; callers treat that as a non-fatal condition.
	Set(ctx context.Context, key string, results []domain.SearchResult) error

	// Close releases resources.
	Close() error
}
