// Package providers builds the engine's driven adapters from settings:
// embedding service, vector index, re-ranker and response cache. Remote
// backends are ping-validated at creation; anything optional that fails
// degrades to the in-process fallback with a recorded warning instead
// of blocking startup.
package providers

import (
	"context"
	"fmt"
	"time"

	memorycache "github.com/avocatech/juricite/internal/adapters/driven/cache/memory"
	rediscache "github.com/avocatech/juricite/internal/adapters/driven/cache/redis"
	hashembed "github.com/avocatech/juricite/internal/adapters/driven/embedding/hash"
	openaiembed "github.com/avocatech/juricite/internal/adapters/driven/embedding/openai"
	"github.com/avocatech/juricite/internal/adapters/driven/rerank/crossencoder"
	memoryvec "github.com/avocatech/juricite/internal/adapters/driven/vector/memory"
	qdrantvec "github.com/avocatech/juricite/internal/adapters/driven/vector/qdrant"
	sqlitevec "github.com/avocatech/juricite/internal/adapters/driven/vector/sqlite"
	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for backend connectivity validation.
const pingTimeout = 5 * time.Second

// Backends contains the driven adapters built from settings.
type Backends struct {
	EmbeddingService driven.EmbeddingService
	VectorIndex      driven.VectorIndex
	Reranker         driven.Reranker // nil when not configured or unreachable
	Cache            driven.SearchCache
	Warnings         []string // Non-fatal issues that caused fallback.
}

// Close releases all resources held by the backends.
func (b *Backends) Close() {
	if b.EmbeddingService != nil {
		b.EmbeddingService.Close()
	}
	if b.VectorIndex != nil {
		b.VectorIndex.Close()
	}
	if b.Reranker != nil {
		b.Reranker.Close()
	}
	if b.Cache != nil {
		b.Cache.Close()
	}
}

// Build creates every driven adapter the engine needs. The embedding
// service and vector index are load-bearing: a configured remote that
// cannot be reached falls back to the in-process implementation with a
// warning, so the engine always comes up. Re-ranker and cache failures
// only cost their optimisation.
func Build(ctx context.Context, settings *domain.EngineSettings) (*Backends, error) {
	if settings == nil {
		return nil, domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	b := &Backends{}

	embedding, warning := buildEmbedding(ctx, settings.Embedding)
	if warning != "" {
		b.Warnings = append(b.Warnings, warning)
	}
	b.EmbeddingService = embedding

	index, warning, err := buildVectorIndex(settings.VectorIndex, embedding.Dimensions())
	if err != nil {
		b.Close()
		return nil, err
	}
	if warning != "" {
		b.Warnings = append(b.Warnings, warning)
	}
	b.VectorIndex = index

	if reranker, warning := buildReranker(ctx, settings.Reranker); warning != "" {
		b.Warnings = append(b.Warnings, warning)
	} else {
		b.Reranker = reranker
	}

	cache, warning := buildCache(ctx, settings.Cache)
	if warning != "" {
		b.Warnings = append(b.Warnings, warning)
	}
	b.Cache = cache

	return b, nil
}

// buildEmbedding creates the configured embedding service, falling
// back to the deterministic hash provider when the remote one is
// unusable.
func buildEmbedding(ctx context.Context, settings domain.EmbeddingSettings) (driven.EmbeddingService, string) {
	dimensions := settings.EffectiveDimensions()
	fallback := func(reason string) (driven.EmbeddingService, string) {
		return hashembed.NewEmbeddingService(hashembed.DefaultDimensions),
			fmt.Sprintf("embedding provider %s unavailable (%s), using deterministic hash vectors", settings.Provider, reason)
	}

	switch settings.Provider {
	case domain.EmbeddingProviderOpenAI:
		if !settings.IsConfigured() {
			return fallback("api key missing")
		}
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})
		if err != nil {
			return fallback(err.Error())
		}

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := svc.Ping(pingCtx); err != nil {
			svc.Close()
			return fallback(err.Error())
		}
		return svc, ""

	default:
		return hashembed.NewEmbeddingService(dimensions), ""
	}
}

// buildVectorIndex creates the configured vector index. The sqlite and
// qdrant backends fall back to memory with a warning when they cannot
// be opened; an in-memory index always works.
func buildVectorIndex(settings domain.VectorIndexSettings, dimensions int) (driven.VectorIndex, string, error) {
	switch settings.Backend {
	case domain.VectorBackendSQLite:
		idx, err := sqlitevec.NewVectorIndex(settings.Path, dimensions)
		if err != nil {
			return memoryvec.NewVectorIndex(dimensions),
				fmt.Sprintf("sqlite vector index unavailable (%v), using in-memory index", err), nil
		}
		return idx, "", nil

	case domain.VectorBackendQdrant:
		idx, err := qdrantvec.NewVectorIndex(qdrantvec.Config{
			URL:        settings.URL,
			APIKey:     settings.APIKey,
			Collection: settings.Collection,
			Dimensions: dimensions,
		})
		if err != nil {
			return memoryvec.NewVectorIndex(dimensions),
				fmt.Sprintf("qdrant unavailable (%v), using in-memory index", err), nil
		}
		return idx, "", nil

	default:
		return memoryvec.NewVectorIndex(dimensions), "", nil
	}
}

// buildReranker creates the cross-encoder re-ranker when configured.
// A missing or unreachable re-ranker returns nil; enriched search
// passes results through unchanged.
func buildReranker(ctx context.Context, settings domain.RerankerSettings) (driven.Reranker, string) {
	if !settings.IsConfigured() {
		return nil, ""
	}

	reranker, err := crossencoder.NewReranker(crossencoder.Config{
		Endpoint: settings.Endpoint,
		Model:    settings.Model,
		APIKey:   settings.APIKey,
	})
	if err != nil {
		return nil, fmt.Sprintf("reranker unavailable (%v), skipping re-ranking", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := reranker.Ping(pingCtx); err != nil {
		reranker.Close()
		return nil, fmt.Sprintf("reranker unreachable (%v), skipping re-ranking", err)
	}
	return reranker, ""
}

// buildCache creates the configured response cache, falling back to
// the bounded in-process cache when Redis is unreachable.
func buildCache(ctx context.Context, settings domain.CacheSettings) (driven.SearchCache, string) {
	if settings.Backend == domain.CacheBackendRedis {
		cache, err := rediscache.NewSearchCache(ctx, settings.RedisAddr,
			time.Duration(settings.TTLSeconds)*time.Second)
		if err == nil {
			return cache, ""
		}
		return memorycache.NewSearchCache(settings.Capacity),
			fmt.Sprintf("redis cache unavailable (%v), using in-memory cache", err)
	}
	return memorycache.NewSearchCache(settings.Capacity), ""
}
