package domain

import "fmt"

const unknownDescription = "Unknown"

// SearchMode defines how search operations combine retrieval methods.
type SearchMode string

// Available search modes.
const (
	// SearchModeVector uses pure cosine-similarity retrieval. Fastest;
	// skips lexical blending.
	SearchModeVector SearchMode = "vector_only"

	// SearchModeHybrid blends vector similarity with lexical relevance.
	SearchModeHybrid SearchMode = "hybrid"

	// SearchModeLegal is hybrid search plus legal enrichment: entity
	// extraction, query expansion, translation, re-ranking, highlights.
	SearchModeLegal SearchMode = "legal"
)

// IsValid returns true if the search mode is recognised.
func (m SearchMode) IsValid() bool {
	switch m {
	case SearchModeVector, SearchModeHybrid, SearchModeLegal:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SearchMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m SearchMode) Description() string {
	switch m {
	case SearchModeVector:
		return "Vector only (cosine similarity)"
	case SearchModeHybrid:
		return "Hybrid (vector + keyword blend)"
	case SearchModeLegal:
		return "Legal (hybrid + enrichment and re-ranking)"
	default:
		return unknownDescription
	}
}

// EmbeddingProvider identifies an embedding backend.
type EmbeddingProvider string

// Available embedding providers.
const (
	// EmbeddingProviderHash is the deterministic in-process provider.
	// Vectors are derived from a cryptographic hash of the text; no
	// model dependency, stable across runs.
	EmbeddingProviderHash EmbeddingProvider = "hash"

	// EmbeddingProviderOpenAI is an OpenAI-compatible remote model,
	// used for legal-grade 1536-dimension embeddings.
	EmbeddingProviderOpenAI EmbeddingProvider = "openai"
)

// IsValid returns true if the provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case EmbeddingProviderHash, EmbeddingProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p EmbeddingProvider) RequiresAPIKey() bool {
	return p == EmbeddingProviderOpenAI
}

// IsLocal returns true if this provider runs in-process.
func (p EmbeddingProvider) IsLocal() bool {
	return p == EmbeddingProviderHash
}

// String returns the string representation.
func (p EmbeddingProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p EmbeddingProvider) Description() string {
	switch p {
	case EmbeddingProviderHash:
		return "Deterministic hash (local, 384 dimensions)"
	case EmbeddingProviderOpenAI:
		return "OpenAI-compatible (remote, 1536 dimensions)"
	default:
		return unknownDescription
	}
}

// DefaultDimensions returns the embedding dimension this provider
// produces unless overridden. The two families must never share an
// index.
func (p EmbeddingProvider) DefaultDimensions() int {
	switch p {
	case EmbeddingProviderOpenAI:
		return 1536
	default:
		return 384
	}
}

// VectorBackend identifies a vector index implementation.
type VectorBackend string

// Available vector backends.
const (
	// VectorBackendMemory is the in-process index. Fully synchronous,
	// no I/O failure modes; the reference implementation for tests.
	VectorBackendMemory VectorBackend = "memory"

	// VectorBackendSQLite is the durable single-file index.
	VectorBackendSQLite VectorBackend = "sqlite"

	// VectorBackendQdrant is a remote vector database reached over
	// HTTP. Calls may be slow or fail; failures surface as upstream
	// errors.
	VectorBackendQdrant VectorBackend = "qdrant"
)

// IsValid returns true if the backend is recognised.
func (b VectorBackend) IsValid() bool {
	switch b {
	case VectorBackendMemory, VectorBackendSQLite, VectorBackendQdrant:
		return true
	default:
		return false
	}
}

// IsDurable returns true if vectors survive a process restart.
func (b VectorBackend) IsDurable() bool {
	return b == VectorBackendSQLite || b == VectorBackendQdrant
}

// String returns the string representation.
func (b VectorBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b VectorBackend) Description() string {
	switch b {
	case VectorBackendMemory:
		return "In-memory (volatile)"
	case VectorBackendSQLite:
		return "SQLite (durable, single file)"
	case VectorBackendQdrant:
		return "Qdrant (durable, remote)"
	default:
		return unknownDescription
	}
}

// CacheBackend identifies a search-response cache implementation.
type CacheBackend string

// Available cache backends.
const (
	// CacheBackendMemory is the bounded in-process cache.
	CacheBackendMemory CacheBackend = "memory"

	// CacheBackendRedis is a shared Redis cache.
	CacheBackendRedis CacheBackend = "redis"
)

// IsValid returns true if the cache backend is recognised.
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheBackendMemory, CacheBackendRedis:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b CacheBackend) String() string {
	return string(b)
}

// ChunkingSettings holds tokenizer/chunker configuration.
type ChunkingSettings struct {
	// MaxTokens is the window size in whitespace tokens.
	MaxTokens int

	// OverlapTokens is the overlap between consecutive windows.
	OverlapTokens int
}

// LexicalSettings holds keyword scorer configuration.
type LexicalSettings struct {
	// K1 is the BM25-style saturation constant.
	K1 float64

	// AvgDocLen is the length normalisation reference in tokens.
	AvgDocLen float64
}

// SearchSettings holds search behaviour configuration.
type SearchSettings struct {
	// Mode is the default retrieval mode.
	Mode SearchMode

	// TopK is the default result count.
	TopK int

	// VectorWeight and KeywordWeight are the default hybrid blend.
	// Empirical constants; behaviour parity matters more than tuning.
	VectorWeight  float64
	KeywordWeight float64

	// HighlightCount is the number of highlighted sentences attached
	// to each enriched result.
	HighlightCount int
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding backend.
	Provider EmbeddingProvider

	// Model is the remote model name (OpenAI-compatible providers).
	Model string

	// BaseURL is the API endpoint.
	BaseURL string

	// APIKey is the API key for remote providers.
	APIKey string

	// Dimensions is the vector size. Zero means the provider default
	// (384 for hash, 1536 for OpenAI-compatible).
	Dimensions int
}

// IsConfigured returns true if the provider is usable as configured.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// EffectiveDimensions returns the configured dimension or the
// provider default.
func (e EmbeddingSettings) EffectiveDimensions() int {
	if e.Dimensions > 0 {
		return e.Dimensions
	}
	return e.Provider.DefaultDimensions()
}

// RerankerSettings holds cross-encoder re-ranker configuration.
// An empty endpoint means no re-ranker; enriched search passes
// results through unchanged.
type RerankerSettings struct {
	// Endpoint is the scoring API URL.
	Endpoint string

	// Model is the cross-encoder model name.
	Model string

	// APIKey authenticates against the scoring API.
	APIKey string
}

// IsConfigured returns true if a re-ranker endpoint is set.
func (r RerankerSettings) IsConfigured() bool {
	return r.Endpoint != ""
}

// VectorIndexSettings holds vector index configuration.
type VectorIndexSettings struct {
	// Backend selects the index implementation.
	Backend VectorBackend

	// Path is the database file location (sqlite backend).
	Path string

	// URL is the remote endpoint (qdrant backend).
	URL string

	// APIKey authenticates against the remote backend.
	APIKey string

	// Collection is the remote collection name (qdrant backend).
	Collection string
}

// CacheSettings holds search-response cache configuration.
type CacheSettings struct {
	// Backend selects the cache implementation.
	Backend CacheBackend

	// Capacity bounds the in-process cache. When full, new entries
	// are refused rather than evicted.
	Capacity int

	// RedisAddr is the Redis address (redis backend).
	RedisAddr string

	// TTLSeconds is the Redis entry lifetime (redis backend).
	TTLSeconds int
}

// CitationSettings holds citation validator configuration.
type CitationSettings struct {
	// MinOverlapWords is how many significant words of a claim must
	// appear in the sources for the claim to count as cited.
	// Empirical constant; keep at 2 unless product behaviour changes.
	MinOverlapWords int

	// MinWordLength is the minimum length of a significant word.
	MinWordLength int
}

// RateLimitSettings bounds expensive upstream calls per tenant.
type RateLimitSettings struct {
	// RerankPerSecond is the sustained re-rank call budget.
	RerankPerSecond float64

	// RerankBurst is the re-rank burst size.
	RerankBurst int
}

// EngineSettings holds all engine configuration. Plain scalars only;
// the engine never reconfigures itself at runtime.
type EngineSettings struct {
	// Chunking holds tokenizer/chunker settings.
	Chunking ChunkingSettings

	// Lexical holds keyword scorer settings.
	Lexical LexicalSettings

	// Search holds retrieval settings.
	Search SearchSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// Reranker holds cross-encoder settings.
	Reranker RerankerSettings

	// VectorIndex holds vector backend settings.
	VectorIndex VectorIndexSettings

	// Cache holds response cache settings.
	Cache CacheSettings

	// Citation holds citation validator settings.
	Citation CitationSettings

	// RateLimit holds per-tenant upstream budgets.
	RateLimit RateLimitSettings
}

// DefaultEngineSettings returns settings with the engine defaults.
// The hash embedding provider and the in-memory backends work with no
// further configuration.
func DefaultEngineSettings() EngineSettings {
	return EngineSettings{
		Chunking: ChunkingSettings{
			MaxTokens:     512,
			OverlapTokens: 64,
		},
		Lexical: LexicalSettings{
			K1:        1.2,
			AvgDocLen: 200,
		},
		Search: SearchSettings{
			Mode:           SearchModeHybrid,
			TopK:           10,
			VectorWeight:   0.7,
			KeywordWeight:  0.3,
			HighlightCount: 3,
		},
		Embedding: EmbeddingSettings{
			Provider: EmbeddingProviderHash,
		},
		VectorIndex: VectorIndexSettings{
			Backend: VectorBackendMemory,
		},
		Cache: CacheSettings{
			Backend:    CacheBackendMemory,
			Capacity:   128,
			TTLSeconds: 300,
		},
		Citation: CitationSettings{
			MinOverlapWords: 2,
			MinWordLength:   4,
		},
		RateLimit: RateLimitSettings{
			RerankPerSecond: 2.0,
			RerankBurst:     5,
		},
	}
}

// Validate checks the settings for internal consistency.
func (s EngineSettings) Validate() error {
	if s.Chunking.MaxTokens <= 0 {
		return fmt.Errorf("%w: chunking max tokens must be positive", ErrInvalidInput)
	}
	if s.Chunking.OverlapTokens < 0 || s.Chunking.OverlapTokens >= s.Chunking.MaxTokens {
		return fmt.Errorf("%w: overlap must be in [0, max tokens)", ErrInvalidInput)
	}
	if s.Search.TopK <= 0 {
		return fmt.Errorf("%w: top k must be positive", ErrInvalidInput)
	}
	if s.Search.VectorWeight < 0 || s.Search.KeywordWeight < 0 {
		return fmt.Errorf("%w: blend weights must be non-negative", ErrInvalidInput)
	}
	if s.Search.VectorWeight+s.Search.KeywordWeight == 0 {
		return fmt.Errorf("%w: at least one blend weight must be positive", ErrInvalidInput)
	}
	if !s.Search.Mode.IsValid() {
		return fmt.Errorf("%w: unknown search mode %q", ErrInvalidInput, s.Search.Mode)
	}
	if !s.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidInput, s.Embedding.Provider)
	}
	if !s.VectorIndex.Backend.IsValid() {
		return fmt.Errorf("%w: unknown vector backend %q", ErrInvalidInput, s.VectorIndex.Backend)
	}
	if !s.Cache.Backend.IsValid() {
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidInput, s.Cache.Backend)
	}
	if s.Lexical.K1 <= 0 || s.Lexical.AvgDocLen <= 0 {
		return fmt.Errorf("%w: lexical constants must be positive", ErrInvalidInput)
	}
	if s.Citation.MinOverlapWords <= 0 || s.Citation.MinWordLength <= 0 {
		return fmt.Errorf("%w: citation thresholds must be positive", ErrInvalidInput)
	}
	return nil
}

// AllSearchModes returns all available search modes.
func AllSearchModes() []SearchMode {
	return []SearchMode{
		SearchModeVector,
		SearchModeHybrid,
		SearchModeLegal,
	}
}

// AllEmbeddingProviders returns all embedding providers.
func AllEmbeddingProviders() []EmbeddingProvider {
	return []EmbeddingProvider{
		EmbeddingProviderHash,
		EmbeddingProviderOpenAI,
	}
}

// AllVectorBackends returns all vector backends.
func AllVectorBackends() []VectorBackend {
	return []VectorBackend{
		VectorBackendMemory,
		VectorBackendSQLite,
		VectorBackendQdrant,
	}
}

// DefaultEmbeddingModels returns default models for remote providers.
func DefaultEmbeddingModels() map[EmbeddingProvider]string {
	return map[EmbeddingProvider]string{
		EmbeddingProviderOpenAI: "text-embedding-3-small",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		"text-embedding-3-small": 1536,
		"text-embedding-ada-002": 1536,
	}
}

// PipelineConfig holds post-processor pipeline configuration.
// Uses generic map-based config for extensibility - new processors can
// be added without modifying this struct.
type PipelineConfig struct {
	// Processors is the ordered list of processor names to run.
	Processors []string

	// ProcessorConfigs holds per-processor configuration as generic maps.
	// Key is processor name, value is processor-specific config.
	ProcessorConfigs map[string]map[string]any
}

// GetProcessorConfig returns config for a specific processor, or nil if not set.
func (c *PipelineConfig) GetProcessorConfig(name string) map[string]any {
	if c.ProcessorConfigs == nil {
		return nil
	}
	return c.ProcessorConfigs[name]
}

// DefaultPipelineConfig returns the default pipeline configuration.
// Works out-of-the-box with the token chunker.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Processors: []string{"chunker"},
		ProcessorConfigs: map[string]map[string]any{
			"chunker": {
				"max_tokens":     512,
				"overlap_tokens": 64,
			},
		},
	}
}
