package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
	"github.com/avocatech/juricite/internal/core/ports/driving"
	"github.com/avocatech/juricite/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService coordinates the write path: normalise raw bytes, chunk
// the text, embed every chunk and upsert into the vector index.
type IngestService struct {
	registry         driven.NormaliserRegistry
	pipeline         driven.PostProcessorPipeline
	embeddingService driven.EmbeddingService
	vectorIndex      driven.VectorIndex
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	registry driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
	embeddingService driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
) *IngestService {
	return &IngestService{
		registry:         registry,
		pipeline:         pipeline,
		embeddingService: embeddingService,
		vectorIndex:      vectorIndex,
	}
}

// Ingest runs a raw document through the full pipeline. Re-ingesting
// the same document ID replaces its chunks: old vectors are deleted
// before the new ones are written.
func (s *IngestService) Ingest(ctx context.Context, raw *domain.RawDocument) (*driving.IngestResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if raw.TenantID == "" {
		return nil, domain.ErrMissingTenant
	}
	if s.embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.vectorIndex == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	if raw.DocumentID == "" {
		raw.DocumentID = uuid.New().String()
	}

	logger.Section("Ingest")
	logger.Debug("document %s (%s), %d bytes", raw.DocumentID, raw.MIMEType, len(raw.Content))

	normalised, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise: %w", err)
	}
	doc := normalised.Document
	doc.ID = raw.DocumentID
	doc.TenantID = raw.TenantID
	doc.CaseID = raw.CaseID
	doc.EvidenceLinkID = raw.EvidenceLinkID

	chunks, err := s.pipeline.Process(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("chunk: %w", err)
	}

	result := &driving.IngestResult{
		DocumentID: doc.ID,
		Title:      doc.Title,
		PageCount:  pageCount(doc.Content),
	}
	if len(chunks) == 0 {
		logger.Info("document %s produced no chunks", doc.ID)
		return result, nil
	}

	texts := make([]string, len(chunks))
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
		ids[i] = c.ID
	}

	vectors, err := s.embeddingService.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: embedding count %d for %d chunks",
			domain.ErrInvalidInput, len(vectors), len(chunks))
	}

	// Replace-by-document: drop stale vectors before writing the new
	// generation so a re-ingest never leaves orphans behind.
	if err := s.vectorIndex.DeleteByDocument(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("delete stale vectors: %w", err)
	}
	if err := s.vectorIndex.Upsert(ctx, ids, vectors, chunks); err != nil {
		return nil, fmt.Errorf("index chunks: %w", err)
	}

	result.ChunkCount = len(chunks)
	logger.Info("indexed %d chunks for document %s", len(chunks), doc.ID)
	return result, nil
}

// Remove deletes every indexed chunk of a document. Idempotent.
func (s *IngestService) Remove(ctx context.Context, documentID string) error {
	if documentID == "" {
		return domain.ErrInvalidInput
	}
	if s.vectorIndex == nil {
		return domain.ErrVectorIndexUnavailable
	}
	if err := s.vectorIndex.DeleteByDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document %s: %w", documentID, err)
	}
	return nil
}

// pageCount counts physical pages in normalised content. Page
// boundaries are form feeds, as produced by the PDF normaliser; flat
// formats report zero.
func pageCount(content string) int {
	if !strings.Contains(content, "\f") {
		return 0
	}
	return strings.Count(content, "\f") + 1
}
