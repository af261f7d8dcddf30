package crossencoder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avocatech/juricite/internal/core/domain"
)

func TestNewReranker_RequiresEndpoint(t *testing.T) {
	_, err := NewReranker(Config{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRerank_ScoresMappedToInputOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rerankRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "/rerank", r.URL.Path)
		assert.Equal(t, "préavis", req.Query)
		assert.Len(t, req.Documents, 2)

		// Results come back relevance-ordered, not input-ordered.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"index": 1, "relevance_score": 0.95},
				{"index": 0, "relevance_score": 0.20},
			},
		})
	}))
	defer server.Close()

	r, err := NewReranker(Config{Endpoint: server.URL, Model: "ce-test"})
	require.NoError(t, err)

	scores, err := r.Rerank(context.Background(), "préavis", []string{"premier", "second"})

	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.InDelta(t, 0.20, scores[0], 1e-9)
	assert.InDelta(t, 0.95, scores[1], 1e-9)
}

func TestRerank_EmptyCandidates(t *testing.T) {
	r, err := NewReranker(Config{Endpoint: "http://localhost:9"})
	require.NoError(t, err)

	scores, err := r.Rerank(context.Background(), "préavis", nil)

	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestRerank_ServerErrorIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	r, err := NewReranker(Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = r.Rerank(context.Background(), "préavis", []string{"texte"})

	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestRerank_OutOfRangeIndexIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"index": 7, "relevance_score": 0.5}},
		})
	}))
	defer server.Close()

	r, err := NewReranker(Config{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = r.Rerank(context.Background(), "préavis", []string{"texte"})

	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestRerank_SendsAuthorizationHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"results": []map[string]any{{"index": 0, "relevance_score": 1.0}}})
	}))
	defer server.Close()

	r, err := NewReranker(Config{Endpoint: server.URL, APIKey: "sk-rerank"})
	require.NoError(t, err)

	_, err = r.Rerank(context.Background(), "q", []string{"d"})

	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-rerank", gotAuth)
}
