package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avocatech/juricite/internal/core/domain"
)

func newTestServer(t *testing.T, search *mockLegalSearchService, citation *mockCitationService) *Server {
	t.Helper()
	if search == nil {
		search = &mockLegalSearchService{}
	}
	if citation == nil {
		citation = &mockCitationService{}
	}
	server, err := NewServer(&Ports{Search: search, Citation: citation})
	require.NoError(t, err)
	return server
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns source-attributed results", func(t *testing.T) {
		mockSearch := &mockLegalSearchService{
			results: []domain.SearchResult{
				{
					ChunkID:         "chunk-1",
					DocumentID:      "doc-1",
					CaseID:          "case-7",
					PageNumber:      3,
					Score:           0.95,
					Content:         "Le délai de préavis est de deux mois.",
					Highlights:      []string{"délai de préavis"},
					RelatedArticles: []string{"L.1234-5"},
				},
			},
		}
		server := newTestServer(t, mockSearch, nil)

		input := SearchInput{Query: "préavis", TenantID: "t1", Limit: 10}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "doc-1", output.Results[0].DocumentID)
		assert.Equal(t, "case-7", output.Results[0].CaseID)
		assert.Equal(t, 3, output.Results[0].PageNumber)
		assert.Equal(t, 0.95, output.Results[0].Score)
		assert.Equal(t, []string{"L.1234-5"}, output.Results[0].RelatedArticles)
	})

	t.Run("forwards tenant and filters", func(t *testing.T) {
		mockSearch := &mockLegalSearchService{}
		server := newTestServer(t, mockSearch, nil)

		input := SearchInput{
			Query:    "bail commercial",
			TenantID: "t1",
			CaseID:   "case-2",
			Filters:  map[string]string{"document_type": "contrat"},
		}
		_, _, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "t1", mockSearch.lastOpts.TenantID)
		assert.Equal(t, "case-2", mockSearch.lastOpts.CaseID)
		assert.Equal(t, "contrat", mockSearch.lastOpts.Filters["document_type"])
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockLegalSearchService{
			err: errors.New("search failed"),
		}
		server := newTestServer(t, mockSearch, nil)

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "test", TenantID: "t1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleValidate(t *testing.T) {
	ctx := context.Background()

	citation := &mockCitationService{
		report: domain.CitationReport{
			IsValid:       false,
			UncitedClaims: []string{"Le contrat est nul."},
			ClaimCount:    2,
			SentenceCount: 3,
		},
	}
	server := newTestServer(t, nil, citation)

	input := ValidateInput{
		Text:    "Le contrat est nul. Le préavis est de deux mois.",
		Sources: []domain.Source{{DocumentID: "doc-1", ChunkText: "préavis de deux mois"}},
	}
	_, report, err := server.handleValidate(ctx, nil, input)

	require.NoError(t, err)
	assert.False(t, report.IsValid)
	assert.Equal(t, []string{"Le contrat est nul."}, report.UncitedClaims)
	assert.Equal(t, 2, report.ClaimCount)
}

func TestServer_handleEntities(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, nil, nil)

	input := EntitiesInput{Text: "Selon l'article L.1234-1 du Code du travail, le préavis est dû."}
	_, output, err := server.handleEntities(ctx, nil, input)

	require.NoError(t, err)
	require.NotEmpty(t, output.Entities)
	assert.Equal(t, output.Count, len(output.Entities))

	var foundArticle bool
	for _, entity := range output.Entities {
		if entity.Type == domain.EntityTypeArticle.String() {
			foundArticle = true
			assert.NotEmpty(t, entity.Normalized)
			assert.Greater(t, entity.Confidence, 0.0)
		}
	}
	assert.True(t, foundArticle, "expected an article entity")
}
