package cli

import (
	"context"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driving"
	"github.com/avocatech/juricite/internal/legal"
)

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	results  []domain.SearchResult
	err      error
	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) VectorSearch(
	_ context.Context,
	_ string,
	opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	m.lastOpts = opts
	return m.results, m.err
}

// mockLegalSearchService implements driving.LegalSearchService for testing.
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

// mockIngestService implements driving.IngestService for testing.
type mockIngestService struct {
	result  *driving.IngestResult
	err     error
	lastRaw *domain.RawDocument
	removed []string
}

func (m *mockIngestService) Ingest(
	_ context.Context,
	raw *domain.RawDocument,
) (*driving.IngestResult, error) {
	m.lastRaw = raw
	if m.result != nil {
		return m.result, m.err
	}
	return &driving.IngestResult{
		DocumentID: "doc-generated",
		Title:      "Titre",
		ChunkCount: 3,
	}, m.err
}

func (m *mockIngestService) Remove(_ context.Context, documentID string) error {
	m.removed = append(m.removed, documentID)
	return m.err
}

// mockCitationService implements driving.CitationService for testing.
type mockCitationService struct {
	report domain.CitationReport
}

func (m *mockCitationService) Validate(_ string, _ []domain.Source) domain.CitationReport {
	return m.report
}

func testResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			ChunkID:    "chunk-1",
			DocumentID: "doc-1",
			CaseID:     "case-1",
			PageNumber: 2,
			Score:      0.91,
			Content:    "Le délai de préavis est de deux mois.",
		},
		{
			ChunkID:        "chunk-2",
			EvidenceLinkID: "ev-7",
			Score:          0.74,
			Content:        "La clause de non-concurrence est limitée à deux ans.",
		},
	}
}

// setupTestServices installs mock services into the package variables
// and returns a cleanup that restores the previous state. The non-nil
// search service also disables service wiring in ensureServices.
func setupTestServices() func() {
	oldSearch := searchService
	oldLegal := legalSearchService
	oldIngest := ingestService
	oldCitation := citationService

	searchService = &mockSearchService{results: testResults()}
	legalSearchService = &mockLegalSearchService{results: testResults()}
	ingestService = &mockIngestService{}
	citationService = &mockCitationService{report: domain.CitationReport{IsValid: true}}

	return func() {
		searchService = oldSearch
		legalSearchService = oldLegal
		ingestService = oldIngest
		citationService = oldCitation
	}
}
