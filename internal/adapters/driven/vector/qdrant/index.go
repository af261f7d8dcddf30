// Package qdrant provides a remote implementation of the vector index
// backed by a Qdrant server reached over its REST API. The collection
// is created on first use with cosine distance; tenant, case and
// metadata filters are pushed down as payload filters so isolation is
// enforced server-side, before top-k truncation.
package qdrant

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

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// Default configuration values.
const (
	DefaultCollection = "juricite_chunks"
	DefaultTimeout    = 15 * time.Second
)

// Config holds configuration for the Qdrant vector index.
type Config struct {
	// URL is the Qdrant server base URL (required).
	URL string

	// APIKey authenticates requests when the server requires it.
	APIKey string

	// Collection is the collection name (default: juricite_chunks).
	Collection string

	// Dimensions is the vector size (required).
	Dimensions int

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration
}

// VectorIndex is a Qdrant-backed vector index.
type VectorIndex struct {
	client     *http.Client
	url        string
	apiKey     string
	collection string
	dimensions int
}

// NewVectorIndex creates a Qdrant vector index and ensures the
// collection exists with the expected dimension.
func NewVectorIndex(cfg Config) (*VectorIndex, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: qdrant url required", domain.ErrInvalidInput)
	}
	if cfg.Dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive", domain.ErrInvalidInput)
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	idx := &VectorIndex{
		client:     &http.Client{Timeout: cfg.Timeout},
		url:        strings.TrimRight(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimensions: cfg.Dimensions,
	}

	// Create collection if missing. Qdrant returns 409 when it already
	// exists; both outcomes leave a usable collection behind.
	body := map[string]any{
		"vectors": map[string]any{
			"size":     cfg.Dimensions,
			"distance": "Cosine",
		},
	}
	err := idx.doJSON(context.Background(), http.MethodPut,
		fmt.Sprintf("%s/collections/%s", idx.url, idx.collection), body, nil, http.StatusConflict)
	if err != nil {
		return nil, fmt.Errorf("ensuring collection: %w", err)
	}

	return idx, nil
}

// Upsert inserts or overwrites vectors by chunk ID.
func (idx *VectorIndex) Upsert(ctx context.Context, ids []string, vectors [][]float32, payloads []domain.Chunk) error {
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

	points := make([]map[string]any, len(ids))
	for i, id := range ids {
		chunk := payloads[i]
		if chunk.TenantID == "" {
			return domain.ErrMissingTenant
		}
		points[i] = map[string]any{
			"id":     id,
			"vector": vectors[i],
			"payload": map[string]any{
				"chunk_id":         id,
				"document_id":      chunk.DocumentID,
				"tenant_id":        chunk.TenantID,
				"case_id":          chunk.CaseID,
				"evidence_link_id": chunk.EvidenceLinkID,
				"content":          chunk.Content,
				"chunk_index":      chunk.ChunkIndex,
				"page_number":      chunk.PageNumber,
				"metadata":         chunk.Metadata,
			},
		}
	}

	body := map[string]any{"points": points}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", idx.url, idx.collection)
	if err := idx.doJSON(ctx, http.MethodPut, url, body, nil); err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}
	return nil
}

// Search returns the nearest chunks by cosine similarity, descending.
func (idx *VectorIndex) Search(ctx context.Context, query driven.VectorQuery) ([]driven.VectorHit, error) {
	if query.TenantID == "" {
		return nil, domain.ErrMissingTenant
	}
	if len(query.Vector) != idx.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(query.Vector), idx.dimensions)
	}

	must := []map[string]any{
		{"key": "tenant_id", "match": map[string]any{"value": query.TenantID}},
	}
	if query.CaseID != "" {
		must = append(must, map[string]any{
			"key": "case_id", "match": map[string]any{"value": query.CaseID},
		})
	}
	for key, value := range query.Filters {
		must = append(must, map[string]any{
			"key": "metadata." + key, "match": map[string]any{"value": value},
		})
	}

	body := map[string]any{
		"vector":       query.Vector,
		"limit":        query.TopK,
		"with_payload": true,
		"filter":       map[string]any{"must": must},
	}

	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", idx.url, idx.collection)
	if err := idx.doJSON(ctx, http.MethodPost, url, body, &resp); err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	hits := make([]driven.VectorHit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hits = append(hits, driven.VectorHit{
			Chunk: chunkFromPayload(r.Payload),
			Score: r.Score,
		})
	}
	return hits, nil
}

// DeleteByDocument removes every vector of a document. Idempotent.
func (idx *VectorIndex) DeleteByDocument(ctx context.Context, documentID string) error {
	body := map[string]any{
		"filter": map[string]any{
			"must": []map[string]any{
				{"key": "document_id", "match": map[string]any{"value": documentID}},
			},
		},
	}
	url := fmt.Sprintf("%s/collections/%s/points/delete?wait=true", idx.url, idx.collection)
	if err := idx.doJSON(ctx, http.MethodPost, url, body, nil); err != nil {
		return fmt.Errorf("deleting points: %w", err)
	}
	return nil
}

// Close releases resources.
func (idx *VectorIndex) Close() error {
	idx.client.CloseIdleConnections()
	return nil
}

// doJSON performs one JSON round-trip against the Qdrant API.
// Transport and non-2xx failures are wrapped in domain.ErrUpstream so
// callers can distinguish backend trouble from bad input; statuses in
// tolerate are accepted as success.
func (idx *VectorIndex) doJSON(ctx context.Context, method, url string, body, out any, tolerate ...int) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idx.apiKey != "" {
		req.Header.Set("api-key", idx.apiKey)
	}

	resp, err := idx.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		for _, code := range tolerate {
			if resp.StatusCode == code {
				return nil
			}
		}
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: qdrant %s %s: %s: %s",
			domain.ErrUpstream, method, url, resp.Status, strings.TrimSpace(string(detail)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", domain.ErrUpstream, err)
		}
	}
	return nil
}

// chunkFromPayload rebuilds a chunk from a Qdrant payload map.
func chunkFromPayload(payload map[string]any) domain.Chunk {
	var chunk domain.Chunk
	if v, ok := payload["chunk_id"].(string); ok {
		chunk.ID = v
	}
	if v, ok := payload["document_id"].(string); ok {
		chunk.DocumentID = v
	}
	if v, ok := payload["tenant_id"].(string); ok {
		chunk.TenantID = v
	}
	if v, ok := payload["case_id"].(string); ok {
		chunk.CaseID = v
	}
	if v, ok := payload["evidence_link_id"].(string); ok {
		chunk.EvidenceLinkID = v
	}
	if v, ok := payload["content"].(string); ok {
		chunk.Content = v
	}
	if v, ok := payload["chunk_index"].(float64); ok {
		chunk.ChunkIndex = int(v)
	}
	if v, ok := payload["page_number"].(float64); ok {
		chunk.PageNumber = int(v)
	}
	if v, ok := payload["metadata"].(map[string]any); ok {
		chunk.Metadata = v
	}
	return chunk
}
