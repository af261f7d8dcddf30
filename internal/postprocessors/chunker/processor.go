// Package chunker provides a token-window text chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/avocatech/juricite/internal/core/domain"
)

// DefaultMaxTokens is the default window size in whitespace tokens.
const DefaultMaxTokens = 512

// DefaultOverlapTokens is the default overlap between consecutive windows.
const DefaultOverlapTokens = 64

// Processor splits document content into overlapping token windows.
// It implements the PostProcessor interface.
type Processor struct {
	maxTokens     int
	overlapTokens int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxTokens sets the window size in tokens.
func WithMaxTokens(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxTokens = n
		}
	}
}

// WithOverlap sets the overlap between windows in tokens.
func WithOverlap(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.overlapTokens = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxTokens:     DefaultMaxTokens,
		overlapTokens: DefaultOverlapTokens,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed window size
	if p.overlapTokens >= p.maxTokens {
		p.overlapTokens = p.maxTokens / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Split divides text into overlapping token windows. Tokens are
// whitespace-delimited words; windows are decoded by joining with
// single spaces. Text at or under the window size is returned
// unchanged as a single element, so short inputs lose nothing.
func (p *Processor) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tokens := strings.Fields(text)
	if len(tokens) <= p.maxTokens {
		return []string{text}
	}

	step := p.maxTokens - p.overlapTokens
	windows := make([]string, 0, (len(tokens)/step)+1)

	for start := 0; ; start += step {
		end := start + p.maxTokens
		if end >= len(tokens) {
			windows = append(windows, strings.Join(tokens[start:], " "))
			break
		}
		windows = append(windows, strings.Join(tokens[start:end], " "))
	}

	return windows
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
//
// Content containing form feed (\f) page separators, as produced by
// the PDF normaliser, is chunked page by page. Each chunk carries the
// 1-based page it came from, and ChunkIndex is renumbered globally
// across the whole document so index order equals document order.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if strings.TrimSpace(doc.Content) == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	pages := strings.Split(doc.Content, "\f")
	paged := len(pages) > 1

	var chunks []domain.Chunk
	index := 0

	for pageNum, page := range pages {
		for _, window := range p.Split(page) {
			chunk := domain.Chunk{
				ID:             uuid.New().String(),
				DocumentID:     doc.ID,
				EvidenceLinkID: doc.EvidenceLinkID,
				CaseID:         doc.CaseID,
				TenantID:       doc.TenantID,
				Content:        window,
				ChunkIndex:     index,
				Metadata:       make(map[string]any),
			}
			if paged {
				chunk.PageNumber = pageNum + 1
			}
			chunks = append(chunks, chunk)
			index++
		}
	}

	return chunks, nil
}
