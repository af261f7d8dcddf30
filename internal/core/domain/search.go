package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// TenantID scopes the search to one law firm. Mandatory; searches
	// without a tenant are rejected before touching the index.
	TenantID string

	// CaseID narrows results to a single case file when set.
	CaseID string

	// TopK is the maximum number of results. Zero means the
	// configured default.
	TopK int

	// Filters are exact-match payload filters applied before top-k
	// truncation, e.g. {"document_type": "contrat"}.
	Filters map[string]string

	// VectorWeight and KeywordWeight blend the two relevance signals.
	// Both zero means the configured defaults (0.7 / 0.3).
	VectorWeight  float64
	KeywordWeight float64
}

// Weights returns the effective blend weights, falling back to the
// given defaults when the caller left both unset.
func (o SearchOptions) Weights(defVector, defKeyword float64) (float64, float64) {
	if o.VectorWeight == 0 && o.KeywordWeight == 0 {
		return defVector, defKeyword
	}
	return o.VectorWeight, o.KeywordWeight
}

// SearchResult represents a single search hit. It is transient,
// produced per query, and always carries enough identifiers to cite
// the underlying source.
type SearchResult struct {
	// ChunkID identifies the matched chunk.
	ChunkID string

	// Score is the final relevance score used for ordering.
	Score float64

	// VectorScore is the cosine similarity component.
	VectorScore float64

	// KeywordScore is the lexical relevance component. Zero for
	// pure-vector searches.
	KeywordScore float64

	// Content is the chunk text.
	Content string

	// DocumentID and EvidenceLinkID trace the hit to its source.
	// At least one is always set in results returned by the engine.
	DocumentID     string
	EvidenceLinkID string

	// CaseID is the case file the chunk belongs to, if any.
	CaseID string

	// PageNumber is the 1-based page of the source document, when known.
	PageNumber int

	// Metadata carries the remaining payload key-value pairs.
	Metadata map[string]any

	// Highlights contains the sentences of the chunk that best match
	// the query. Populated by enriched search.
	Highlights []string

	// RelatedArticles lists statute articles commonly cited together
	// with articles found in the query. Populated by enriched search.
	RelatedArticles []string
}

// HasSource reports whether the result is traceable to a document or
// evidence record.
func (r SearchResult) HasSource() bool {
	return r.DocumentID != "" || r.EvidenceLinkID != ""
}
