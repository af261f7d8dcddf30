// Package openai provides the remote embedding service adapter for
// OpenAI-compatible APIs. It is the legal-grade provider: higher
// dimensional vectors than the in-process hash fallback, reached over
// the network, so every call can fail upstream.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

const (
	// DefaultBaseURL targets the public OpenAI API; any compatible
	// endpoint (Azure, a local proxy) can be substituted.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the embedding model used when none is configured.
	DefaultModel = "text-embedding-3-small"

	// DefaultDimensions is the vector size of the default model.
	DefaultDimensions = 1536

	// DefaultTimeout bounds a single embeddings request.
	DefaultTimeout = 60 * time.Second
)

// Config holds the remote embedding service configuration.
type Config struct {
	// APIKey authenticates against the API (required).
	APIKey string

	// BaseURL is the API base URL (default DefaultBaseURL).
	BaseURL string

	// Model is the embedding model name (default DefaultModel).
	Model string

	// Dimensions overrides the model's vector size. The index built
	// alongside this service must use the same value.
	Dimensions int

	// Timeout bounds each request (default DefaultTimeout).
	Timeout time.Duration
}

// EmbeddingService embeds text through an OpenAI-compatible
// /v1/embeddings endpoint.
type EmbeddingService struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewEmbeddingService creates a remote embedding service from config.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: embedding API key is required", domain.ErrInvalidInput)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &EmbeddingService{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed returns the vector for one text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 || vectors[0] == nil {
		return nil, fmt.Errorf("%w: embeddings API returned no vector", domain.ErrUpstream)
	}
	return vectors[0], nil
}

// EmbedBatch returns one vector per input text, order preserved.
// Transport failures, API errors and malformed responses are wrapped
// in domain.ErrUpstream so callers can tell a backend failure apart
// from an empty result.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(embeddingRequest{
		Model:      s.model,
		Input:      texts,
		Dimensions: s.requestDimensions(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrUpstream, err)
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrUpstream, err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("%w: embeddings API: %s", domain.ErrUpstream, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: embeddings API %s: %s",
			domain.ErrUpstream, resp.Status, strings.TrimSpace(string(body)))
	}

	// The API may return vectors out of order; map them back by index.
	vectors := make([][]float32, len(texts))
	for _, item := range parsed.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", domain.ErrUpstream, item.Index)
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}

// requestDimensions returns the dimensions override to send, or 0 when
// the model does not support one.
func (s *EmbeddingService) requestDimensions() int {
	if strings.HasPrefix(s.model, "text-embedding-3-") {
		return s.dimensions
	}
	return 0
}

// Dimensions returns the configured vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the embedding model name.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping validates connectivity and credentials with a one-word embed
// call, so a passing ping means the model actually serves vectors.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	_, err := s.Embed(ctx, "ping")
	return err
}

// Close releases resources. The HTTP client holds none.
func (s *EmbeddingService) Close() error {
	return nil
}
