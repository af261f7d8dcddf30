package driving

import (
	"context"

	"github.com/avocatech/juricite/internal/core/domain"
)

// IngestService coordinates the write path: normalise, chunk, embed,
// index.
type IngestService interface {
	// Ingest runs a raw document through the full pipeline and
	// returns a summary of what was indexed. Re-ingesting the same
	// document ID replaces its chunks.
	Ingest(ctx context.Context, raw *domain.RawDocument) (*IngestResult, error)

	// Remove deletes every indexed chunk of a document. Idempotent.
	Remove(ctx context.Context, documentID string) error
}

// IngestResult summarises one ingested document.
type IngestResult struct {
	// DocumentID is the identifier the chunks were indexed under.
	DocumentID string

	// Title is the extracted document title.
	Title string

	// ChunkCount is the number of chunks indexed.
	ChunkCount int

	// PageCount is the number of physical pages, when the format has
	// pages. Zero otherwise.
	PageCount int
}
