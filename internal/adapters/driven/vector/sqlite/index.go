// Package sqlite provides a durable single-file implementation of the
// vector index. Vectors and chunk payloads live in one SQLite database
// opened in WAL mode; similarity is computed in-process over the
// tenant-filtered candidate rows.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/avocatech/juricite/internal/adapters/driven/vector"
	"github.com/avocatech/juricite/internal/adapters/driven/vector/sqlite/migrations"
	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is a SQLite-backed vector index.
type VectorIndex struct {
	db         *sql.DB
	path       string
	dimensions int
}

// NewVectorIndex creates a SQLite vector index at the given file path.
// If path is empty, defaults to ~/.juricite/data/vectors.db.
func NewVectorIndex(path string, dimensions int) (*VectorIndex, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".juricite", "data", "vectors.db")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &VectorIndex{
		db:         db,
		path:       path,
		dimensions: dimensions,
	}

	if err := idx.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	if err := idx.checkStoredDimensions(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

// checkStoredDimensions refuses to open an index file whose vectors
// were written by an embedder of a different dimension family. Cosine
// over mismatched lengths scores every row 0, so the mismatch must
// surface at open time instead.
func (idx *VectorIndex) checkStoredDimensions() error {
	var blobLen int
	err := idx.db.QueryRow("SELECT length(embedding) FROM chunks LIMIT 1").Scan(&blobLen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("probing stored vectors: %w", err)
	}
	if stored := blobLen / 4; stored != idx.dimensions {
		return fmt.Errorf("%w: index at %s stores %d-dimension vectors, embedder produces %d",
			domain.ErrDimensionMismatch, idx.path, stored, idx.dimensions)
	}
	return nil
}

// Upsert inserts or overwrites vectors by chunk ID. The whole batch is
// written in one transaction, so a reader sees either the old rows or
// the new ones.
func (idx *VectorIndex) Upsert(ctx context.Context, ids []string, vectors [][]float32, payloads []domain.Chunk) error {
	if len(ids) != len(vectors) || len(ids) != len(payloads) {
		return fmt.Errorf("%w: ids/vectors/payloads length mismatch (%d/%d/%d)",
			domain.ErrInvalidInput, len(ids), len(vectors), len(payloads))
	}
	for i, v := range vectors {
		if len(v) != idx.dimensions {
			return fmt.Errorf("%w: vector %d has %d dimensions, index expects %d",
				domain.ErrDimensionMismatch, i, len(v), idx.dimensions)
		}
	}
	for _, p := range payloads {
		if p.TenantID == "" {
			return domain.ErrMissingTenant
		}
	}

	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	now := time.Now().UTC()
	for i, id := range ids {
		chunk := payloads[i]
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO chunks
				(id, document_id, tenant_id, case_id, evidence_link_id, content,
				 chunk_index, page_number, embedding, metadata, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				document_id = excluded.document_id,
				tenant_id = excluded.tenant_id,
				case_id = excluded.case_id,
				evidence_link_id = excluded.evidence_link_id,
				content = excluded.content,
				chunk_index = excluded.chunk_index,
				page_number = excluded.page_number,
				embedding = excluded.embedding,
				metadata = excluded.metadata,
				updated_at = excluded.updated_at
		`, id, chunk.DocumentID, chunk.TenantID, chunk.CaseID, chunk.EvidenceLinkID,
			chunk.Content, chunk.ChunkIndex, chunk.PageNumber,
			vector.Encode(vectors[i]), string(metadataJSON), now, now)
		if err != nil {
			return fmt.Errorf("upserting chunk %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing upsert: %w", err)
	}
	return nil
}

// Search returns the nearest chunks by cosine similarity, descending.
// Tenant and case filters are pushed down to SQL; metadata filters and
// similarity are applied in-process.
func (idx *VectorIndex) Search(ctx context.Context, query driven.VectorQuery) ([]driven.VectorHit, error) {
	if query.TenantID == "" {
		return nil, domain.ErrMissingTenant
	}
	if len(query.Vector) != idx.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(query.Vector), idx.dimensions)
	}

	sqlQuery := `
		SELECT id, document_id, tenant_id, case_id, evidence_link_id, content,
			chunk_index, page_number, embedding, metadata
		FROM chunks WHERE tenant_id = ?`
	args := []any{query.TenantID}
	if query.CaseID != "" {
		sqlQuery += " AND case_id = ?"
		args = append(args, query.CaseID)
	}

	rows, err := idx.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var hits []driven.VectorHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, embedding, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		if !matchesFilters(chunk.Metadata, query.Filters) {
			continue
		}
		hits = append(hits, driven.VectorHit{
			Chunk: chunk,
			Score: vector.Cosine(query.Vector, embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if query.TopK > 0 && len(hits) > query.TopK {
		hits = hits[:query.TopK]
	}
	return hits, nil
}

// DeleteByDocument removes every vector of a document. Idempotent.
func (idx *VectorIndex) DeleteByDocument(ctx context.Context, documentID string) error {
	if _, err := idx.db.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("deleting document chunks: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (idx *VectorIndex) Close() error {
	return idx.db.Close()
}

// Path returns the database file path.
func (idx *VectorIndex) Path() string {
	return idx.path
}

// migrate runs all pending migrations.
func (idx *VectorIndex) migrate(fsys embed.FS) error {
	_, err := idx.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := idx.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := idx.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := idx.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// scanChunk scans one chunk row plus its embedding.
func scanChunk(rows *sql.Rows) (domain.Chunk, []float32, error) {
	var chunk domain.Chunk
	var embeddingBlob []byte
	var metadataJSON string

	if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.TenantID, &chunk.CaseID,
		&chunk.EvidenceLinkID, &chunk.Content, &chunk.ChunkIndex, &chunk.PageNumber,
		&embeddingBlob, &metadataJSON); err != nil {
		return domain.Chunk{}, nil, fmt.Errorf("scanning chunk: %w", err)
	}

	if metadataJSON != "" && metadataJSON != "null" {
		if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
			return domain.Chunk{}, nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
		}
	}

	return chunk, vector.Decode(embeddingBlob), nil
}

// matchesFilters applies exact-match metadata filters.
func matchesFilters(metadata map[string]any, filters map[string]string) bool {
	for key, want := range filters {
		got, ok := metadata[key].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}
