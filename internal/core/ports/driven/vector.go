package driven

import (
	"context"

	"github.com/avocatech/juricite/internal/core/domain"
)

// VectorIndex stores (vector, chunk) pairs and answers filtered
// cosine-similarity queries. The durable remote backend and the pure
// in-process backend satisfy the identical contract; callers can swap
// one for the other with no behaviour change beyond latency and
// availability.
type VectorIndex interface {
	// Upsert inserts or overwrites vectors by chunk ID. The three
	// slices must be equal length or the call fails with
	// domain.ErrInvalidInput. Each id is written atomically: a
	// concurrent reader sees either the old pair or the new one,
	// never a partial write. Concurrent upserts of the same id are
	// last-write-wins.
	Upsert(ctx context.Context, ids []string, vectors [][]float32, payloads []domain.Chunk) error

	// Search returns the nearest chunks by cosine similarity,
	// descending. The tenant filter is mandatory and applied before
	// top-k truncation, as are the case and exact-match filters.
	// A zero-magnitude vector on either side scores 0.
	Search(ctx context.Context, query VectorQuery) ([]VectorHit, error)

	// DeleteByDocument removes every vector whose payload document ID
	// matches. Idempotent: deleting an unknown document is not an error.
	DeleteByDocument(ctx context.Context, documentID string) error

	// Close releases resources.
	Close() error
}

// VectorQuery describes one similarity search.
type VectorQuery struct {
	// Vector is the query embedding.
	Vector []float32

	// TenantID scopes the search. Required; queries without it fail
	// with domain.ErrMissingTenant.
	TenantID string

	// TopK is the maximum number of hits.
	TopK int

	// CaseID narrows the search to one case file when set.
	CaseID string

	// Filters are exact-match metadata filters, applied pre-truncation.
	Filters map[string]string
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// Chunk is the stored payload.
	Chunk domain.Chunk

	// Score is the cosine similarity, in [-1, 1].
	Score float64
}
