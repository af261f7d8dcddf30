package mcp

import (
	"context"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/legal"
)

// mockLegalSearchService is a mock implementation of driving.LegalSearchService.
type mockLegalSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockLegalSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockLegalSearchService) ExtractEntities(text string) []domain.LegalEntity {
	return legal.ExtractEntities(text)
}

func (m *mockLegalSearchService) BuildContextChunks(results []domain.SearchResult) []domain.ContextChunk {
	chunks := make([]domain.ContextChunk, len(results))
	for i := range results {
		chunks[i] = domain.ContextChunk{
			Content:    results[i].Content,
			DocumentID: results[i].DocumentID,
		}
	}
	return chunks
}

// mockCitationService is a mock implementation of driving.CitationService.
type mockCitationService struct {
	report domain.CitationReport
}

func (m *mockCitationService) Validate(_ string, _ []domain.Source) domain.CitationReport {
	return m.report
}
