package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
)

func chunkFor(id, docID, tenantID string) domain.Chunk {
	return domain.Chunk{
		ID:         id,
		DocumentID: docID,
		TenantID:   tenantID,
		Content:    "contenu " + id,
	}
}

func mustUpsert(t *testing.T, idx *VectorIndex, id string, vec []float32, chunk domain.Chunk) {
	t.Helper()
	require.NoError(t, idx.Upsert(context.Background(), []string{id}, [][]float32{vec}, []domain.Chunk{chunk}))
}

func TestUpsert_LengthMismatchRejected(t *testing.T) {
	idx := NewVectorIndex(2)

	err := idx.Upsert(context.Background(), []string{"a", "b"}, [][]float32{{1, 0}}, []domain.Chunk{chunkFor("a", "d", "t1")})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpsert_DimensionMismatchRejected(t *testing.T) {
	idx := NewVectorIndex(3)

	err := idx.Upsert(context.Background(), []string{"a"}, [][]float32{{1, 0}}, []domain.Chunk{chunkFor("a", "d", "t1")})

	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestUpsert_MissingTenantRejected(t *testing.T) {
	idx := NewVectorIndex(2)

	err := idx.Upsert(context.Background(), []string{"a"}, [][]float32{{1, 0}}, []domain.Chunk{chunkFor("a", "d", "")})

	assert.ErrorIs(t, err, domain.ErrMissingTenant)
}

func TestSearch_RanksByCosineSimilarity(t *testing.T) {
	idx := NewVectorIndex(2)
	mustUpsert(t, idx, "close", []float32{1, 0.1}, chunkFor("close", "d1", "t1"))
	mustUpsert(t, idx, "far", []float32{0, 1}, chunkFor("far", "d2", "t1"))

	hits, err := idx.Search(context.Background(), driven.VectorQuery{
		Vector:   []float32{1, 0},
		TenantID: "t1",
		TopK:     10,
	})

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "close", hits[0].Chunk.ID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestSearch_TenantIsolation(t *testing.T) {
	idx := NewVectorIndex(2)
	mustUpsert(t, idx, "a", []float32{1, 0}, chunkFor("a", "doc_1", "t1"))

	hits, err := idx.Search(context.Background(), driven.VectorQuery{
		Vector:   []float32{1, 0},
		TenantID: "t2",
		TopK:     10,
	})

	require.NoError(t, err)
	assert.Empty(t, hits, "tenant t2 must never see t1 documents")
}

func TestSearch_MissingTenantRejected(t *testing.T) {
	idx := NewVectorIndex(2)

	_, err := idx.Search(context.Background(), driven.VectorQuery{Vector: []float32{1, 0}})

	assert.ErrorIs(t, err, domain.ErrMissingTenant)
}

func TestSearch_QueryDimensionMismatchRejected(t *testing.T) {
	idx := NewVectorIndex(3)

	_, err := idx.Search(context.Background(), driven.VectorQuery{Vector: []float32{1, 0}, TenantID: "t1"})

	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
}

func TestSearch_CaseFilterAppliedBeforeTruncation(t *testing.T) {
	idx := NewVectorIndex(2)
	for i, caseID := range []string{"c1", "c2", "c1"} {
		chunk := chunkFor(string(rune('a'+i)), "d", "t1")
		chunk.CaseID = caseID
		mustUpsert(t, idx, chunk.ID, []float32{1, 0}, chunk)
	}

	hits, err := idx.Search(context.Background(), driven.VectorQuery{
		Vector:   []float32{1, 0},
		TenantID: "t1",
		CaseID:   "c1",
		TopK:     2,
	})

	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, hit := range hits {
		assert.Equal(t, "c1", hit.Chunk.CaseID)
	}
}

func TestSearch_MetadataFilters(t *testing.T) {
	idx := NewVectorIndex(2)
	tagged := chunkFor("a", "d", "t1")
	tagged.Metadata = map[string]any{"category": "jurisprudence"}
	mustUpsert(t, idx, "a", []float32{1, 0}, tagged)
	mustUpsert(t, idx, "b", []float32{1, 0}, chunkFor("b", "d", "t1"))

	hits, err := idx.Search(context.Background(), driven.VectorQuery{
		Vector:   []float32{1, 0},
		TenantID: "t1",
		TopK:     10,
		Filters:  map[string]string{"category": "jurisprudence"},
	})

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "a", hits[0].Chunk.ID)
}

func TestUpsert_OverwritesByID(t *testing.T) {
	idx := NewVectorIndex(2)
	mustUpsert(t, idx, "a", []float32{1, 0}, chunkFor("a", "d", "t1"))

	updated := chunkFor("a", "d", "t1")
	updated.Content = "nouveau contenu"
	mustUpsert(t, idx, "a", []float32{0, 1}, updated)

	require.Equal(t, 1, idx.Len())
	hits, err := idx.Search(context.Background(), driven.VectorQuery{
		Vector:   []float32{0, 1},
		TenantID: "t1",
		TopK:     1,
	})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "nouveau contenu", hits[0].Chunk.Content)
}

func TestDeleteByDocument_RemovesAllChunks(t *testing.T) {
	idx := NewVectorIndex(2)
	mustUpsert(t, idx, "a", []float32{1, 0}, chunkFor("a", "doc_1", "t1"))
	mustUpsert(t, idx, "b", []float32{0, 1}, chunkFor("b", "doc_1", "t1"))
	mustUpsert(t, idx, "c", []float32{1, 1}, chunkFor("c", "doc_2", "t1"))

	require.NoError(t, idx.DeleteByDocument(context.Background(), "doc_1"))

	assert.Equal(t, 1, idx.Len())
	require.NoError(t, idx.DeleteByDocument(context.Background(), "doc_1"), "idempotent")
}

func TestConcurrentAccess(t *testing.T) {
	idx := NewVectorIndex(2)
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			chunk := chunkFor("a", "d", "t1")
			_ = idx.Upsert(context.Background(), []string{"a"}, [][]float32{{float32(n), 1}}, []domain.Chunk{chunk})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = idx.Search(context.Background(), driven.VectorQuery{Vector: []float32{1, 0}, TenantID: "t1", TopK: 5})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, idx.Len())
}
