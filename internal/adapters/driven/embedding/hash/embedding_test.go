package hash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed_Deterministic(t *testing.T) {
	svc := NewEmbeddingService(384)

	first, err := svc.Embed(context.Background(), "le contrat de travail")
	require.NoError(t, err)
	second, err := svc.Embed(context.Background(), "le contrat de travail")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEmbed_DistinctTextsDiffer(t *testing.T) {
	svc := NewEmbeddingService(384)

	a, err := svc.Embed(context.Background(), "préavis de trente jours")
	require.NoError(t, err)
	b, err := svc.Embed(context.Background(), "clause de non-concurrence")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEmbed_ValuesInRange(t *testing.T) {
	svc := NewEmbeddingService(384)

	vector, err := svc.Embed(context.Background(), "article 700 du code de procédure civile")
	require.NoError(t, err)
	require.Len(t, vector, 384)

	for _, v := range vector {
		assert.GreaterOrEqual(t, v, float32(-1))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestEmbed_DimensionBeyondDigestLength(t *testing.T) {
	// 384 > 32 digest bytes, so the chain must extend; the extension
	// must not repeat the first block verbatim.
	svc := NewEmbeddingService(64)

	vector, err := svc.Embed(context.Background(), "texte")
	require.NoError(t, err)
	require.Len(t, vector, 64)
	assert.NotEqual(t, vector[:32], vector[32:64])
}

func TestEmbedBatch_OrderPreserving(t *testing.T) {
	svc := NewEmbeddingService(384)
	texts := []string{"premier", "second", "troisième"}

	vectors, err := svc.EmbedBatch(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	for i, text := range texts {
		single, err := svc.Embed(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, single, vectors[i])
	}
}

func TestNewEmbeddingService_DefaultDimensions(t *testing.T) {
	assert.Equal(t, DefaultDimensions, NewEmbeddingService(0).Dimensions())
	assert.Equal(t, 1536, NewEmbeddingService(1536).Dimensions())
}

func TestPing_AlwaysSucceeds(t *testing.T) {
	assert.NoError(t, NewEmbeddingService(0).Ping(context.Background()))
}
