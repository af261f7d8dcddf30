package domain

// RawDocument represents opaque bytes handed to the ingest pipeline.
// It is the caller's upload before normalisation.
type RawDocument struct {
	// TenantID identifies the owning law firm. Required.
	TenantID string

	// CaseID links the upload to a case file, if any.
	CaseID string

	// DocumentID is the caller-supplied document identifier.
	// Propagated unchanged to every derived chunk. Optional; one is
	// generated when empty.
	DocumentID string

	// EvidenceLinkID links the upload to an evidence record, if any.
	EvidenceLinkID string

	// URI is the original location (file path, storage key, etc).
	URI string

	// MIMEType is the declared content type (e.g. "application/pdf").
	// Unknown types are decoded as lossy UTF-8 rather than rejected.
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains caller-specific key-value pairs.
	Metadata map[string]any
}
