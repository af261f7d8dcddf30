// Package memory provides an in-process implementation of the vector
// index. Fully synchronous with no I/O failure modes; the reference
// backend for tests and the default for single-process deployments.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/avocatech/juricite/internal/adapters/driven/vector"
	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// entry pairs a stored vector with its chunk payload.
type entry struct {
	vector []float32
	chunk  domain.Chunk
}

// VectorIndex is an in-memory vector index guarded by a single RWMutex.
// Upserts of one id are atomic with respect to readers; concurrent
// upserts of the same id are last-write-wins.
type VectorIndex struct {
	mu         sync.RWMutex
	dimensions int
	entries    map[string]entry
}

// NewVectorIndex creates an in-memory index for vectors of the given
// dimension. Every write is validated against it; the index never holds
// mixed-dimension vectors.
func NewVectorIndex(dimensions int) *VectorIndex {
	return &VectorIndex{
		dimensions: dimensions,
		entries:    make(map[string]entry),
	}
}

// Upsert inserts or overwrites vectors by chunk ID.
func (idx *VectorIndex) Upsert(_ context.Context, ids []string, vectors [][]float32, payloads []domain.Chunk) error {
	if len(ids) != len(vectors) || len(ids) != len(payloads) {
		return fmt.Errorf("%w: ids/vectors/payloads length mismatch (%d/%d/%d)",
			domain.ErrInvalidInput, len(ids), len(vectors), len(payloads))
	}
	for i, v := range vectors {
		if len(v) != idx.dimensions {
			return fmt.Errorf("%w: vector %d has %d dimensions, index expects %d",
				domain.ErrDimensionMismatch, i, len(v), idx.dimensions)
		}
	}
	for _, p := range payloads {
		if p.TenantID == "" {
			return domain.ErrMissingTenant
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for i, id := range ids {
		stored := make([]float32, len(vectors[i]))
		copy(stored, vectors[i])
		idx.entries[id] = entry{vector: stored, chunk: payloads[i]}
	}
	return nil
}

// Search returns the nearest chunks by cosine similarity, descending.
// Tenant, case and metadata filters are applied before truncation.
func (idx *VectorIndex) Search(_ context.Context, query driven.VectorQuery) ([]driven.VectorHit, error) {
	if query.TenantID == "" {
		return nil, domain.ErrMissingTenant
	}
	if len(query.Vector) != idx.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(query.Vector), idx.dimensions)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	hits := make([]driven.VectorHit, 0, len(idx.entries))
	for _, e := range idx.entries {
		if !matches(e.chunk, query) {
			continue
		}
		hits = append(hits, driven.VectorHit{
			Chunk: e.chunk,
			Score: vector.Cosine(query.Vector, e.vector),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if query.TopK > 0 && len(hits) > query.TopK {
		hits = hits[:query.TopK]
	}
	return hits, nil
}

// DeleteByDocument removes every vector of a document. Idempotent.
func (idx *VectorIndex) DeleteByDocument(_ context.Context, documentID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for id, e := range idx.entries {
		if e.chunk.DocumentID == documentID {
			delete(idx.entries, id)
		}
	}
	return nil
}

// Close releases resources (none held).
func (idx *VectorIndex) Close() error {
	return nil
}

// Len returns the number of stored vectors.
func (idx *VectorIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// matches applies the mandatory tenant filter plus the optional case
// and exact-match metadata filters.
func matches(chunk domain.Chunk, query driven.VectorQuery) bool {
	if chunk.TenantID != query.TenantID {
		return false
	}
	if query.CaseID != "" && chunk.CaseID != query.CaseID {
		return false
	}
	for key, want := range query.Filters {
		got, ok := chunk.Metadata[key].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}
