// Package pdf extracts text from PDF documents page by page. Page
// boundaries are marked with form feed (\f) in the resulting Content
// so the chunker can attribute each chunk to a physical page.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"application/pdf",
		"application/x-pdf",
	}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 80 // Format-specific normaliser
}

// Normalise extracts plain text from the PDF bytes. Pages that fail
// text extraction (scanned images, malformed content streams) are
// skipped rather than failing the whole document; a PDF with no
// extractable text at all yields an empty document, which chunks to
// nothing downstream.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	content, pageCount, err := extractText(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("pdf extraction for %s: %w", raw.URI, err)
	}

	doc := domain.Document{
		ID:        uuid.New().String(),
		URI:       raw.URI,
		Title:     extractTitleFromMetadataOrURI(raw),
		Content:   content,
		MIMEType:  raw.MIMEType,
		Metadata:  copyMetadata(raw.Metadata),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata["mime_type"] = raw.MIMEType
	doc.Metadata["page_count"] = pageCount

	return &driven.NormaliseResult{
		Document: doc,
	}, nil
}

// extractText pulls plain text out of the PDF, one entry per physical
// page. Skipped pages keep their (empty) slot so later pages are not
// renumbered.
func extractText(content []byte) (string, int, error) {
	if len(content) == 0 {
		return "", 0, domain.ErrInvalidInput
	}

	reader, err := pdflib.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", 0, err
	}

	pageCount := reader.NumPage()
	texts := make([]string, pageCount)
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		texts[i-1] = text
	}

	return joinPages(texts), pageCount, nil
}

// joinPages joins per-page text with one form feed per page boundary,
// so an empty page still occupies its position in the separator count.
func joinPages(texts []string) string {
	return norm.NFC.String(strings.Join(texts, "\f"))
}

// extractTitleFromMetadataOrURI checks metadata for title first, then falls back to URI.
func extractTitleFromMetadataOrURI(raw *domain.RawDocument) string {
	if raw.Metadata != nil {
		if title, ok := raw.Metadata["title"].(string); ok && title != "" {
			return title
		}
	}

	filename := filepath.Base(raw.URI)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
