// Package hash provides a deterministic in-process embedding service.
//
// Vectors are derived from a SHA-256 digest chain over the input text:
// each digest byte maps to a float in [-1, 1], and the chain is extended
// (digest of digest) until the target dimension is filled. The same text
// always yields the same vector, so indexing is idempotent and tests are
// reproducible. There is no semantic model behind it; dispersion comes
// from the hash, which is good enough for exact and near-duplicate
// retrieval and for every test path.
package hash

import (
	"context"
	"crypto/sha256"

	"github.com/avocatech/juricite/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultDimensions is the vector size when none is configured.
const DefaultDimensions = 384

// EmbeddingService generates deterministic hash-derived embeddings.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a hash embedding service. Non-positive
// dimensions fall back to DefaultDimensions.
func NewEmbeddingService(dimensions int) *EmbeddingService {
	if dimensions <= 0 {
		dimensions = DefaultDimensions
	}
	return &EmbeddingService{dimensions: dimensions}
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	vector := make([]float32, s.dimensions)

	digest := sha256.Sum256([]byte(text))
	for i := 0; i < s.dimensions; {
		for _, b := range digest {
			if i >= s.dimensions {
				break
			}
			// Map the byte range [0, 255] onto [-1, 1].
			vector[i] = float32(b)/127.5 - 1
			i++
		}
		digest = sha256.Sum256(digest[:])
	}

	return vector, nil
}

// EmbedBatch generates embeddings for multiple texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vector
	}
	return vectors, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model.
func (s *EmbeddingService) ModelName() string {
	return "hash-sha256"
}

// Ping always succeeds; there is no remote dependency.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources (none held).
func (s *EmbeddingService) Close() error {
	return nil
}
