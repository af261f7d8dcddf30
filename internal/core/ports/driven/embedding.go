// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from VectorIndex which stores and searches vectors.
// EmbeddingService generates vectors; VectorIndex stores them.
//
// Embeddings must be deterministic per model version: the same text
// yields the same vector on every call, so indexing is idempotent and
// cosine distances stay meaningful. Implementations:
//
//   - hash: deterministic SHA-256-derived vectors, 384 dimensions, no
//     model dependency (the always-available fallback)
//   - openai: OpenAI-compatible remote models, 1536 dimensions
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, one vector
	// per input in the same order. More efficient than calling Embed
	// in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536).
	// This is determined by the model and must match the vector index
	// configuration; the two dimension families are never mixed.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	// This is used at startup to verify connectivity before committing to a provider.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
