package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avocatech/juricite/internal/core/domain"
)

func TestSearchCache_GetMissReturnsNotFound(t *testing.T) {
	cache := NewSearchCache(4)

	_, err := cache.Get(context.Background(), "absent")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchCache_SetThenGet(t *testing.T) {
	cache := NewSearchCache(4)
	results := []domain.SearchResult{{ChunkID: "c1", Score: 0.9}}

	require.NoError(t, cache.Set(context.Background(), "k", results))

	got, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, results, got)
}

func TestSearchCache_RefusesNewEntriesWhenFull(t *testing.T) {
	cache := NewSearchCache(2)
	for i := 0; i < 2; i++ {
		require.NoError(t, cache.Set(context.Background(), fmt.Sprintf("k%d", i), nil))
	}

	err := cache.Set(context.Background(), "overflow", nil)

	assert.ErrorIs(t, err, domain.ErrCacheFull)
	assert.Equal(t, 2, cache.Len())
}

func TestSearchCache_OverwriteExistingKeyAlwaysSucceeds(t *testing.T) {
	cache := NewSearchCache(1)
	require.NoError(t, cache.Set(context.Background(), "k", nil))

	updated := []domain.SearchResult{{ChunkID: "c2"}}
	require.NoError(t, cache.Set(context.Background(), "k", updated))

	got, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestSearchCache_ReturnedSliceIsACopy(t *testing.T) {
	cache := NewSearchCache(4)
	require.NoError(t, cache.Set(context.Background(), "k", []domain.SearchResult{{ChunkID: "c1"}}))

	first, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	first[0].ChunkID = "mutated"

	second, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "c1", second[0].ChunkID)
}

func TestSearchCache_DefaultCapacity(t *testing.T) {
	cache := NewSearchCache(0)
	for i := 0; i < DefaultCapacity; i++ {
		require.NoError(t, cache.Set(context.Background(), fmt.Sprintf("k%d", i), nil))
	}

	assert.ErrorIs(t, cache.Set(context.Background(), "overflow", nil), domain.ErrCacheFull)
}
