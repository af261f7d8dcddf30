package services

import (
	"fmt"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
	"github.com/avocatech/juricite/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySearchMode       = "search.mode"
	keySearchTopK       = "search.top_k"
	keyVectorWeight     = "search.vector_weight"
	keyKeywordWeight    = "search.keyword_weight"
	keyHighlightCount   = "search.highlight_count"
	keyChunkMaxTokens   = "chunking.max_tokens"
	keyChunkOverlap     = "chunking.overlap_tokens"
	keyLexicalK1        = "lexical.k1"
	keyLexicalAvgDocLen = "lexical.avg_doc_len"
	keyEmbedProvider    = "embedding.provider"
	keyEmbedModel       = "embedding.model"
	keyEmbedBaseURL     = "embedding.base_url"
	keyEmbedAPIKey      = "embedding.api_key"
	keyEmbedDimensions  = "embedding.dimensions"
	keyRerankEndpoint   = "reranker.endpoint"
	keyRerankModel      = "reranker.model"
	keyRerankAPIKey     = "reranker.api_key"
	keyVectorBackend    = "vector_index.backend"
	keyVectorPath       = "vector_index.path"
	keyVectorURL        = "vector_index.url"
	keyVectorAPIKey     = "vector_index.api_key"
	keyVectorCollection = "vector_index.collection"
	keyCacheBackend     = "cache.backend"
	keyCacheCapacity    = "cache.capacity"
	keyCacheRedisAddr   = "cache.redis_addr"
	keyCacheTTLSeconds  = "cache.ttl_seconds"
	keyCiteMinOverlap   = "citation.min_overlap_words"
	keyCiteMinWordLen   = "citation.min_word_length"
	keyRerankPerSecond  = "rate_limit.rerank_per_second"
	keyRerankBurst      = "rate_limit.rerank_burst"
)

// SettingsService manages engine settings over a config store.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current engine settings, falling back to defaults for
// anything the store does not hold.
func (s *SettingsService) Get() (*domain.EngineSettings, error) {
	defaults := domain.DefaultEngineSettings()

	settings := &domain.EngineSettings{
		Chunking: domain.ChunkingSettings{
			MaxTokens:     s.getInt(keyChunkMaxTokens, defaults.Chunking.MaxTokens),
			OverlapTokens: s.getIntAllowZero(keyChunkOverlap, defaults.Chunking.OverlapTokens),
		},
		Lexical: domain.LexicalSettings{
			K1:        s.getFloat(keyLexicalK1, defaults.Lexical.K1),
			AvgDocLen: s.getFloat(keyLexicalAvgDocLen, defaults.Lexical.AvgDocLen),
		},
		Search: domain.SearchSettings{
			Mode:           s.getSearchMode(defaults.Search.Mode),
			TopK:           s.getInt(keySearchTopK, defaults.Search.TopK),
			VectorWeight:   s.getFloat(keyVectorWeight, defaults.Search.VectorWeight),
			KeywordWeight:  s.getFloat(keyKeywordWeight, defaults.Search.KeywordWeight),
			HighlightCount: s.getInt(keyHighlightCount, defaults.Search.HighlightCount),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:   s.getEmbeddingProvider(defaults.Embedding.Provider),
			Model:      s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:    s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:     s.configStore.GetString(keyEmbedAPIKey),
			Dimensions: s.configStore.GetInt(keyEmbedDimensions), // Zero means provider default
		},
		Reranker: domain.RerankerSettings{
			Endpoint: s.configStore.GetString(keyRerankEndpoint), // No default - empty disables re-ranking
			Model:    s.configStore.GetString(keyRerankModel),
			APIKey:   s.configStore.GetString(keyRerankAPIKey),
		},
		VectorIndex: domain.VectorIndexSettings{
			Backend:    s.getVectorBackend(defaults.VectorIndex.Backend),
			Path:       s.configStore.GetString(keyVectorPath),
			URL:        s.configStore.GetString(keyVectorURL),
			APIKey:     s.configStore.GetString(keyVectorAPIKey),
			Collection: s.configStore.GetString(keyVectorCollection),
		},
		Cache: domain.CacheSettings{
			Backend:    s.getCacheBackend(defaults.Cache.Backend),
			Capacity:   s.getInt(keyCacheCapacity, defaults.Cache.Capacity),
			RedisAddr:  s.configStore.GetString(keyCacheRedisAddr),
			TTLSeconds: s.getInt(keyCacheTTLSeconds, defaults.Cache.TTLSeconds),
		},
		Citation: domain.CitationSettings{
			MinOverlapWords: s.getInt(keyCiteMinOverlap, defaults.Citation.MinOverlapWords),
			MinWordLength:   s.getInt(keyCiteMinWordLen, defaults.Citation.MinWordLength),
		},
		RateLimit: domain.RateLimitSettings{
			RerankPerSecond: s.getFloat(keyRerankPerSecond, defaults.RateLimit.RerankPerSecond),
			RerankBurst:     s.getInt(keyRerankBurst, defaults.RateLimit.RerankBurst),
		},
	}

	return settings, nil
}

// Save persists engine settings.
func (s *SettingsService) Save(settings *domain.EngineSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	entries := []struct {
		key   string
		value any
	}{
		{keySearchMode, settings.Search.Mode.String()},
		{keySearchTopK, settings.Search.TopK},
		{keyVectorWeight, settings.Search.VectorWeight},
		{keyKeywordWeight, settings.Search.KeywordWeight},
		{keyHighlightCount, settings.Search.HighlightCount},
		{keyChunkMaxTokens, settings.Chunking.MaxTokens},
		{keyChunkOverlap, settings.Chunking.OverlapTokens},
		{keyLexicalK1, settings.Lexical.K1},
		{keyLexicalAvgDocLen, settings.Lexical.AvgDocLen},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedDimensions, settings.Embedding.Dimensions},
		{keyRerankEndpoint, settings.Reranker.Endpoint},
		{keyRerankModel, settings.Reranker.Model},
		{keyVectorBackend, settings.VectorIndex.Backend.String()},
		{keyVectorPath, settings.VectorIndex.Path},
		{keyVectorURL, settings.VectorIndex.URL},
		{keyVectorCollection, settings.VectorIndex.Collection},
		{keyCacheBackend, settings.Cache.Backend.String()},
		{keyCacheCapacity, settings.Cache.Capacity},
		{keyCacheRedisAddr, settings.Cache.RedisAddr},
		{keyCacheTTLSeconds, settings.Cache.TTLSeconds},
		{keyCiteMinOverlap, settings.Citation.MinOverlapWords},
		{keyCiteMinWordLen, settings.Citation.MinWordLength},
		{keyRerankPerSecond, settings.RateLimit.RerankPerSecond},
		{keyRerankBurst, settings.RateLimit.RerankBurst},
	}
	for _, e := range entries {
		if err := s.configStore.Set(e.key, e.value); err != nil {
			return fmt.Errorf("save %s: %w", e.key, err)
		}
	}

	// API keys are written only when set, so a settings round-trip
	// never blanks a stored credential.
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	if settings.Reranker.APIKey != "" {
		if err := s.configStore.Set(keyRerankAPIKey, settings.Reranker.APIKey); err != nil {
			return fmt.Errorf("save reranker api_key: %w", err)
		}
	}
	if settings.VectorIndex.APIKey != "" {
		if err := s.configStore.Set(keyVectorAPIKey, settings.VectorIndex.APIKey); err != nil {
			return fmt.Errorf("save vector api_key: %w", err)
		}
	}

	return nil
}

// SetSearchMode updates the default search mode.
func (s *SettingsService) SetSearchMode(mode domain.SearchMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: search mode %q", domain.ErrInvalidInput, mode)
	}
	return s.configStore.Set(keySearchMode, mode.String())
}

// SetEmbeddingProvider configures the embedding provider. Changing the
// provider family changes vector dimensions; existing indexes built
// with the old family must be re-ingested.
func (s *SettingsService) SetEmbeddingProvider(provider domain.EmbeddingProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: embedding provider %q", domain.ErrInvalidInput, provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" && s.configStore.GetString(keyEmbedAPIKey) == "" {
		return fmt.Errorf("%w: provider %s requires an API key", domain.ErrInvalidInput, provider)
	}

	if model == "" {
		model = domain.DefaultEmbeddingModels()[provider]
	}

	if err := s.configStore.Set(keyEmbedProvider, provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if apiKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, apiKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	return nil
}

// SetVectorBackend selects the vector index implementation.
func (s *SettingsService) SetVectorBackend(backend domain.VectorBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: vector backend %q", domain.ErrInvalidInput, backend)
	}
	return s.configStore.Set(keyVectorBackend, backend.String())
}

// Validate checks if current settings are internally consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.EngineSettings {
	return domain.DefaultEngineSettings()
}

// getString returns the stored value or the default when unset.
func (s *SettingsService) getString(key, defaultValue string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return defaultValue
}

// getInt returns the stored value or the default when unset or invalid.
func (s *SettingsService) getInt(key string, defaultValue int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultValue
	}
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return defaultValue
}

// getIntAllowZero returns the stored value or the default when unset.
// Zero is a legitimate stored value here (overlap can be disabled).
func (s *SettingsService) getIntAllowZero(key string, defaultValue int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultValue
	}
	return s.configStore.GetInt(key)
}

// getFloat returns the stored value or the default when unset or invalid.
func (s *SettingsService) getFloat(key string, defaultValue float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultValue
	}
	if v := s.configStore.GetFloat(key); v > 0 {
		return v
	}
	return defaultValue
}

// getSearchMode returns the stored mode, or the default when unset or
// unrecognised.
func (s *SettingsService) getSearchMode(defaultMode domain.SearchMode) domain.SearchMode {
	mode := domain.SearchMode(s.configStore.GetString(keySearchMode))
	if mode.IsValid() {
		return mode
	}
	return defaultMode
}

// getEmbeddingProvider returns the stored provider, or the default when
// unset or unrecognised.
func (s *SettingsService) getEmbeddingProvider(defaultProvider domain.EmbeddingProvider) domain.EmbeddingProvider {
	provider := domain.EmbeddingProvider(s.configStore.GetString(keyEmbedProvider))
	if provider.IsValid() {
		return provider
	}
	return defaultProvider
}

// getVectorBackend returns the stored backend, or the default when
// unset or unrecognised.
func (s *SettingsService) getVectorBackend(defaultBackend domain.VectorBackend) domain.VectorBackend {
	backend := domain.VectorBackend(s.configStore.GetString(keyVectorBackend))
	if backend.IsValid() {
		return backend
	}
	return defaultBackend
}

// getCacheBackend returns the stored backend, or the default when
// unset or unrecognised.
func (s *SettingsService) getCacheBackend(defaultBackend domain.CacheBackend) domain.CacheBackend {
	backend := domain.CacheBackend(s.configStore.GetString(keyCacheBackend))
	if backend.IsValid() {
		return backend
	}
	return defaultBackend
}
