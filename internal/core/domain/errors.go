package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// Upsert calls with mismatched id/vector/payload lengths fail with this.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown MIME or backend type.
	// Unknown MIME types at ingest fall back to lossy plain text
	// instead of surfacing this.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrMissingTenant indicates an index or search call without a
	// tenant identifier. Tenant scoping is non-bypassable.
	ErrMissingTenant = errors.New("tenant id required")

	// ErrDimensionMismatch indicates a vector whose length does not
	// match the index dimension. Indexes built for the 384-dim default
	// provider and the 1536-dim legal-grade provider are never mixed.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// Availability errors: an optional dependency is missing at
	// runtime. The affected component degrades rather than failing
	// the request.

	// ErrEmbeddingUnavailable indicates no embedding provider is
	// reachable. Semantic and hybrid search are disabled.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector backend is not
	// configured or unreachable.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrRerankerUnavailable indicates the cross-encoder re-ranker is
	// not configured. Enriched search passes results through unchanged.
	ErrRerankerUnavailable = errors.New("reranker unavailable")

	// ErrCacheUnavailable indicates the response cache backend is
	// unreachable. Searches proceed uncached.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrCacheFull indicates the bounded response cache refused a new
	// entry. Existing entries are kept; the new response is simply
	// not cached.
	ErrCacheFull = errors.New("cache full")

	// ErrUpstream indicates a network or backend failure calling a
	// remote embedding model, vector store or re-ranker. Distinct from
	// an empty result set, which is not an error. The engine does not
	// retry; retry policy belongs to the caller's I/O wrapper.
	ErrUpstream = errors.New("upstream failure")

	// ErrRateLimited indicates the per-tenant budget for an expensive
	// upstream call is exhausted.
	ErrRateLimited = errors.New("rate limited")
)
