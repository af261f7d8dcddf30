// Package crossencoder provides a re-ranker adapter that calls a
// remote cross-encoder scoring API. The API scores (query, document)
// pairs jointly, which is slower but sharper than the bi-encoder
// similarity used for retrieval; that is why it only ever sees the
// short candidate list, never the index.
package crossencoder

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

// Ensure Reranker implements the interface.
var _ driven.Reranker = (*Reranker)(nil)

// DefaultTimeout is the scoring request timeout.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the cross-encoder re-ranker.
type Config struct {
	// Endpoint is the scoring API base URL (required).
	Endpoint string

	// Model is the cross-encoder model name.
	Model string

	// APIKey authenticates against the scoring API.
	APIKey string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Reranker scores candidates via a remote cross-encoder API.
type Reranker struct {
	client   *http.Client
	endpoint string
	model    string
	apiKey   string
}

type rerankRequest struct {
	Model     string   `json:"model,omitempty"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

type rerankResponse struct {
	Results []struct {
		Index          int     `json:"index"`
		RelevanceScore float64 `json:"relevance_score"`
	} `json:"results"`
}

// NewReranker creates a cross-encoder re-ranker.
func NewReranker(cfg Config) (*Reranker, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: reranker endpoint required", domain.ErrInvalidInput)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Reranker{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
	}, nil
}

// Rerank scores each candidate against the query, returning one score
// per candidate in input order.
func (r *Reranker) Rerank(ctx context.Context, query string, candidates []string) ([]float64, error) {
	if len(candidates) == 0 {
		return []float64{}, nil
	}

	payload, err := json.Marshal(rerankRequest{
		Model:     r.model,
		Query:     query,
		Documents: candidates,
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+"/rerank", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: rerank API %s: %s",
			domain.ErrUpstream, resp.Status, strings.TrimSpace(string(detail)))
	}

	var parsed rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrUpstream, err)
	}

	// The API returns results ordered by relevance; map them back to
	// candidate positions.
	scores := make([]float64, len(candidates))
	for _, result := range parsed.Results {
		if result.Index < 0 || result.Index >= len(scores) {
			return nil, fmt.Errorf("%w: result index %d out of range", domain.ErrUpstream, result.Index)
		}
		scores[result.Index] = result.RelevanceScore
	}
	return scores, nil
}

// Ping validates the scoring endpoint by submitting a single-pair
// request.
func (r *Reranker) Ping(ctx context.Context) error {
	_, err := r.Rerank(ctx, "ping", []string{"ping"})
	return err
}

// Close releases resources.
func (r *Reranker) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
