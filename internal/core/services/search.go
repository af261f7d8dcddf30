package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
	"github.com/avocatech/juricite/internal/core/ports/driving"
	"github.com/avocatech/juricite/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// overfetchFactor is how many candidates are pulled from the vector
// index relative to the requested top-k, to give the lexical blend
// reranking headroom.
const overfetchFactor = 2

// SearchService provides hybrid retrieval: dense cosine similarity
// blended with BM25-style keyword relevance. Every result it returns
// carries a traceable source; candidates without one are dropped
// outright, not merely penalised.
type SearchService struct {
	vectorIndex      driven.VectorIndex
	embeddingService driven.EmbeddingService
	lexical          *LexicalScorer
	settings         domain.SearchSettings
}

// NewSearchService creates a new search service.
func NewSearchService(
	vectorIndex driven.VectorIndex,
	embeddingService driven.EmbeddingService,
	lexical *LexicalScorer,
	settings domain.SearchSettings,
) *SearchService {
	return &SearchService{
		vectorIndex:      vectorIndex,
		embeddingService: embeddingService,
		lexical:          lexical,
		settings:         settings,
	}
}

// Search performs hybrid search over the caller's tenant.
func (s *SearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	hits, topK, err := s.fetchCandidates(ctx, query, opts)
	if err != nil || hits == nil {
		return []domain.SearchResult{}, err
	}

	vectorWeight, keywordWeight := opts.Weights(s.settings.VectorWeight, s.settings.KeywordWeight)
	logger.Debug("hybrid blend: %d candidates, weights %.2f/%.2f", len(hits), vectorWeight, keywordWeight)

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		result := resultFromHit(hit)
		if !result.HasSource() || strings.TrimSpace(result.Content) == "" {
			// No Source No Claim applies at retrieval time: an
			// untraceable chunk never reaches the caller, however well
			// it scores.
			continue
		}
		result.KeywordScore = s.lexical.Score(result.Content, query)
		result.Score = vectorWeight*result.VectorScore + keywordWeight*result.KeywordScore
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}

	logger.Debug("hybrid search: %d results", len(results))
	return results, nil
}

// VectorSearch performs pure cosine-similarity search, skipping the
// lexical blend. Used when speed matters more than hybrid precision;
// source-less and empty-content results are still dropped.
func (s *SearchService) VectorSearch(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	hits, topK, err := s.fetchCandidates(ctx, query, opts)
	if err != nil || hits == nil {
		return []domain.SearchResult{}, err
	}

	results := make([]domain.SearchResult, 0, len(hits))
	for _, hit := range hits {
		result := resultFromHit(hit)
		if !result.HasSource() || strings.TrimSpace(result.Content) == "" {
			continue
		}
		result.Score = result.VectorScore
		results = append(results, result)
	}

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// fetchCandidates embeds the query and over-fetches candidates from
// the vector index. A nil hit slice with nil error means the query was
// empty and the caller should return no results.
func (s *SearchService) fetchCandidates(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]driven.VectorHit, int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, 0, nil
	}
	if opts.TenantID == "" {
		return nil, 0, domain.ErrMissingTenant
	}
	if s.embeddingService == nil {
		return nil, 0, domain.ErrEmbeddingUnavailable
	}
	if s.vectorIndex == nil {
		return nil, 0, domain.ErrVectorIndexUnavailable
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.settings.TopK
	}

	vector, err := s.embeddingService.Embed(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.vectorIndex.Search(ctx, driven.VectorQuery{
		Vector:   vector,
		TenantID: opts.TenantID,
		TopK:     topK * overfetchFactor,
		CaseID:   opts.CaseID,
		Filters:  opts.Filters,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("vector search: %w", err)
	}
	if hits == nil {
		hits = []driven.VectorHit{}
	}
	return hits, topK, nil
}

// resultFromHit converts a raw vector hit into a search result.
func resultFromHit(hit driven.VectorHit) domain.SearchResult {
	return domain.SearchResult{
		ChunkID:        hit.Chunk.ID,
		VectorScore:    hit.Score,
		Content:        hit.Chunk.Content,
		DocumentID:     hit.Chunk.DocumentID,
		EvidenceLinkID: hit.Chunk.EvidenceLinkID,
		CaseID:         hit.Chunk.CaseID,
		PageNumber:     hit.Chunk.PageNumber,
		Metadata:       hit.Chunk.Metadata,
	}
}

// BuildContextChunks converts search results into the shape the
// generation gateway consumes, preserving the identifiers it must echo
// back as sources.
func BuildContextChunks(results []domain.SearchResult) []domain.ContextChunk {
	chunks := make([]domain.ContextChunk, len(results))
	for i, r := range results {
		chunks[i] = domain.ContextChunk{
			Content:        r.Content,
			DocumentID:     r.DocumentID,
			EvidenceLinkID: r.EvidenceLinkID,
			CaseID:         r.CaseID,
			PageNumber:     r.PageNumber,
		}
	}
	return chunks
}
