package domain

import "time"

// Document represents a legal document after normalisation.
// It is the canonical representation before chunking: one uploaded
// file (pleading, contract, judgment, evidence exhibit) per Document.
type Document struct {
	// ID is the unique identifier for the document.
	// Caller-supplied identifiers are passed through unchanged; an
	// empty ID is filled with a generated one at normalisation time.
	ID string

	// TenantID identifies the law firm the document belongs to.
	// Every chunk derived from this document inherits it.
	TenantID string

	// CaseID links the document to a case file, if any.
	CaseID string

	// EvidenceLinkID links the document to an evidence record, if any.
	EvidenceLinkID string

	// URI is the original location (file path, storage key, etc).
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full text content after normalisation.
	// Page boundaries, when known, are marked with form feed (\f)
	// so the chunker can retain page numbers.
	Content string

	// MIMEType is the declared content type of the original bytes.
	MIMEType string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the document was last re-ingested.
	UpdatedAt time.Time
}

// Chunk is a bounded fragment of a document produced for indexing.
// Chunks are immutable once created; identity is the randomly
// generated ID, not the content.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document. May be empty for text
	// chunked outside any document context.
	DocumentID string

	// EvidenceLinkID links to an evidence record, if any.
	EvidenceLinkID string

	// CaseID links to a case file, if any.
	CaseID string

	// TenantID identifies the owning law firm. Chunks without a
	// tenant are never admitted to the vector index.
	TenantID string

	// Content is the text content of this chunk.
	Content string

	// ChunkIndex is the ordinal position within the document,
	// starting at 0 and numbered globally across all pages.
	ChunkIndex int

	// PageNumber is the 1-based physical page the chunk came from.
	// Zero when the source format has no page structure.
	PageNumber int

	// Embedding is the vector representation for semantic search.
	Embedding []float32

	// Metadata contains chunk-specific key-value pairs. This is an
	// open bag for forward compatibility; the named fields above are
	// the contract.
	Metadata map[string]any
}

// HasSource reports whether the chunk is traceable to a stored
// document or evidence record. Chunks without a source are dropped
// at retrieval time under the No Source No Claim rule.
func (c Chunk) HasSource() bool {
	return c.DocumentID != "" || c.EvidenceLinkID != ""
}
