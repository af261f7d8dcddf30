package driven

import "context"

// Reranker is an optional second-pass scorer, typically a remote
// cross-encoder that scores (query, candidate) pairs jointly. When nil
// or unreachable, enriched search passes results through unchanged;
// re-ranking is never load-bearing.
type Reranker interface {
	// Rerank scores each candidate text against the query, returning
	// one score per candidate in input order. Higher is more relevant.
	Rerank(ctx context.Context, query string, candidates []string) ([]float64, error)

	// Ping validates the scoring endpoint is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
