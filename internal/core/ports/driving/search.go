package driving

import (
	"context"

	"github.com/avocatech/juricite/internal/core/domain"
)

// SearchService provides retrieval capabilities to external actors.
type SearchService interface {
	// Search performs hybrid (vector + keyword) search over the
	// caller's tenant. Every returned result carries a source.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// VectorSearch performs pure cosine-similarity search, skipping
	// the lexical blend. Used when speed matters more than hybrid
	// precision; source-less and empty-content results are still dropped.
	VectorSearch(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}

// LegalSearchService provides enriched legal retrieval: entity
// extraction, query expansion, translation, re-ranking, highlights and
// related-article suggestions on top of hybrid search.
type LegalSearchService interface {
	// Search performs enriched search. Responses are cached per
	// (query, tenant, case, filters).
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// ExtractEntities recognises statute, law and case references in
	// free text.
	ExtractEntities(text string) []domain.LegalEntity

	// BuildContextChunks converts search results into the shape the
	// generation gateway consumes.
	BuildContextChunks(results []domain.SearchResult) []domain.ContextChunk
}
