package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
	"github.com/avocatech/juricite/internal/core/ports/driving"
	"github.com/avocatech/juricite/internal/legal"
	"github.com/avocatech/juricite/internal/logger"
)

// Ensure LegalSearchService implements the interface.
var _ driving.LegalSearchService = (*LegalSearchService)(nil)

// RerankBudget gates expensive re-rank calls per tenant. Implemented
// by internal/ratelimit; nil means no budget (always allowed).
type RerankBudget interface {
	Allow(tenantID string) bool
}

// LegalSearchService layers legal enrichment on top of hybrid search:
// entity extraction, synonym expansion, glossary translation, optional
// cross-encoder re-ranking, highlighted passages and related-article
// suggestions. Responses are cached per (query, tenant, case, filters).
type LegalSearchService struct {
	search   driving.SearchService
	reranker driven.Reranker
	cache    driven.SearchCache
	budget   RerankBudget
	settings domain.SearchSettings
}

// NewLegalSearchService creates an enriched search service. The
// reranker, cache and budget are optional; nil disables the
// corresponding step rather than failing.
func NewLegalSearchService(
	search driving.SearchService,
	reranker driven.Reranker,
	cache driven.SearchCache,
	budget RerankBudget,
	settings domain.SearchSettings,
) *LegalSearchService {
	return &LegalSearchService{
		search:   search,
		reranker: reranker,
		cache:    cache,
		budget:   budget,
		settings: settings,
	}
}

// Search performs enriched legal search.
func (s *LegalSearchService) Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.SearchResult{}, nil
	}
	if opts.TenantID == "" {
		return nil, domain.ErrMissingTenant
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = s.settings.TopK
	}
	opts.TopK = topK

	cacheKey := s.cacheKey(query, opts)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			logger.Debug("legal search cache hit for %q", query)
			return cached, nil
		}
	}

	logger.Section("Legal Search")
	entities := legal.ExtractEntities(query)
	logger.Debug("query entities: %d", len(entities))

	expanded := legal.ExpandQuery(query)
	results, err := s.search.Search(ctx, expanded, opts)
	if err != nil {
		return nil, fmt.Errorf("expanded search: %w", err)
	}

	// One extra variant via the bilingual glossary; merged, never a
	// replacement for the primary query.
	if translated, changed := legal.TranslateQuery(query); changed {
		logger.Debug("translated variant: %q", translated)
		extra, err := s.search.Search(ctx, translated, opts)
		if err != nil {
			logger.Warn("translated search failed: %v", err)
		} else {
			results = append(results, extra...)
		}
	}

	results = dedupeByContent(results)
	results = s.rerank(ctx, query, opts.TenantID, results, topK)
	s.enrich(query, entities, results)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, results); err != nil &&
			!errors.Is(err, domain.ErrCacheFull) {
			logger.Warn("cache set failed: %v", err)
		}
	}

	return results, nil
}

// ExtractEntities recognises statute, law and case references in text.
func (s *LegalSearchService) ExtractEntities(text string) []domain.LegalEntity {
	return legal.ExtractEntities(text)
}

// BuildContextChunks converts results to the generation gateway shape.
func (s *LegalSearchService) BuildContextChunks(results []domain.SearchResult) []domain.ContextChunk {
	return BuildContextChunks(results)
}

// rerank applies the optional cross-encoder pass. Missing reranker,
// exhausted tenant budget or upstream failure all degrade to
// pass-through: the first topK results in incoming order.
func (s *LegalSearchService) rerank(
	ctx context.Context, query, tenantID string, results []domain.SearchResult, topK int,
) []domain.SearchResult {
	if len(results) > topK*overfetchFactor {
		results = results[:topK*overfetchFactor]
	}

	truncate := func(rs []domain.SearchResult) []domain.SearchResult {
		if len(rs) > topK {
			return rs[:topK]
		}
		return rs
	}

	if s.reranker == nil || len(results) == 0 {
		return truncate(results)
	}
	if s.budget != nil && !s.budget.Allow(tenantID) {
		logger.Debug("rerank budget exhausted for tenant %s, skipping", tenantID)
		return truncate(results)
	}

	candidates := make([]string, len(results))
	for i, r := range results {
		candidates[i] = r.Content
	}

	scores, err := s.reranker.Rerank(ctx, query, candidates)
	if err != nil || len(scores) != len(results) {
		logger.Warn("rerank failed, passing results through: %v", err)
		return truncate(results)
	}

	for i := range results {
		results[i].Score = scores[i]
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return truncate(results)
}

// enrich attaches highlighted passages and related-article suggestions
// to each surviving result.
func (s *LegalSearchService) enrich(query string, entities []domain.LegalEntity, results []domain.SearchResult) {
	var related []string
	for _, number := range legal.ArticleNumbers(entities) {
		related = append(related, legal.RelatedArticles(number)...)
	}

	highlightCount := s.settings.HighlightCount
	if highlightCount <= 0 {
		highlightCount = domain.DefaultEngineSettings().Search.HighlightCount
	}

	for i := range results {
		results[i].Highlights = highlightSentences(results[i].Content, query, highlightCount)
		if len(related) > 0 {
			results[i].RelatedArticles = append([]string(nil), related...)
		}
	}
}

// highlightSentences returns the top-n sentences of content ranked by
// raw count of query-term occurrences. Sentences without any query
// term are never highlighted.
func highlightSentences(content, query string, n int) []string {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 || n <= 0 {
		return nil
	}

	type scored struct {
		sentence string
		count    int
		order    int
	}

	var candidates []scored
	for i, sentence := range legal.SplitSentences(content) {
		lower := strings.ToLower(sentence)
		count := 0
		for _, term := range terms {
			count += strings.Count(lower, term)
		}
		if count > 0 {
			candidates = append(candidates, scored{sentence, count, i})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].count != candidates[j].count {
			return candidates[i].count > candidates[j].count
		}
		return candidates[i].order < candidates[j].order
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	highlights := make([]string, len(candidates))
	for i, c := range candidates {
		highlights[i] = c.sentence
	}
	return highlights
}

// dedupeByContent drops results whose literal chunk text was already
// seen, keeping the first (higher ranked) occurrence.
func dedupeByContent(results []domain.SearchResult) []domain.SearchResult {
	seen := make(map[string]bool, len(results))
	out := results[:0]
	for _, r := range results {
		if seen[r.Content] {
			continue
		}
		seen[r.Content] = true
		out = append(out, r)
	}
	return out
}

// cacheKey derives the response cache key from everything that shapes
// the response.
func (s *LegalSearchService) cacheKey(query string, opts domain.SearchOptions) string {
	var b strings.Builder
	b.WriteString(query)
	b.WriteString("|")
	b.WriteString(opts.TenantID)
	b.WriteString("|")
	b.WriteString(opts.CaseID)
	b.WriteString("|")
	fmt.Fprintf(&b, "%d", opts.TopK)

	if len(opts.Filters) > 0 {
		keys := make([]string, 0, len(opts.Filters))
		for k := range opts.Filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("|")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(opts.Filters[k])
		}
	}
	return b.String()
}
