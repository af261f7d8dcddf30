package domain

// Source is the citation unit handed to the citation validator: one
// retrieved chunk with the identifiers needed to trace it back to a
// stored document or evidence record.
type Source struct {
	// DocumentID identifies the source document, if any.
	DocumentID string `json:"document_id,omitempty"`

	// EvidenceLinkID identifies the evidence record, if any.
	EvidenceLinkID string `json:"evidence_link_id,omitempty"`

	// CaseID is the case file the source belongs to, if any.
	CaseID string `json:"case_id,omitempty"`

	// ChunkText is the retrieved text the generator was shown.
	ChunkText string `json:"chunk_text"`

	// PageNumber is the 1-based page of the source document, when known.
	PageNumber int `json:"page_number,omitempty"`
}

// ContextChunk is the shape the generation gateway consumes: chunk
// content plus the identifiers it must echo back as sources.
type ContextChunk struct {
	// Content is the chunk text supplied as generation context.
	Content string `json:"content"`

	// DocumentID identifies the source document, if any.
	DocumentID string `json:"document_id,omitempty"`

	// EvidenceLinkID identifies the evidence record, if any.
	EvidenceLinkID string `json:"evidence_link_id,omitempty"`

	// CaseID is the case file the chunk belongs to, if any.
	CaseID string `json:"case_id,omitempty"`

	// PageNumber is the 1-based page of the source document, when known.
	PageNumber int `json:"page_number,omitempty"`
}

// CitationReport is the outcome of running generated text through the
// No Source No Claim gate. The answer is returned regardless; the
// report annotates it so the consuming application decides how to
// surface the warning.
type CitationReport struct {
	// IsValid is true when every claim sentence is backed by the
	// supplied sources.
	IsValid bool `json:"is_valid"`

	// UncitedClaims lists the claim sentences that no source backs.
	UncitedClaims []string `json:"uncited_claims"`

	// ClaimCount is the number of sentences classified as claims.
	ClaimCount int `json:"claim_count"`

	// SentenceCount is the total number of sentences examined.
	SentenceCount int `json:"sentence_count"`
}

// HasUncitedClaims reports whether any claim failed citation checking.
func (r CitationReport) HasUncitedClaims() bool {
	return len(r.UncitedClaims) > 0
}
