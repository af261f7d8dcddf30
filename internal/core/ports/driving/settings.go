package driving

import "github.com/avocatech/juricite/internal/core/domain"

// SettingsService manages engine settings.
type SettingsService interface {
	// Get retrieves current engine settings.
	Get() (*domain.EngineSettings, error)

	// Save persists engine settings.
	Save(settings *domain.EngineSettings) error

	// SetSearchMode updates the default search mode.
	SetSearchMode(mode domain.SearchMode) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.EmbeddingProvider, model, apiKey string) error

	// SetVectorBackend selects the vector index implementation.
	SetVectorBackend(backend domain.VectorBackend) error

	// Validate checks if current settings are internally consistent.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.EngineSettings
}
