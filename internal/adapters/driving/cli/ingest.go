package cli

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/avocatech/juricite/internal/core/domain"
)

var (
	ingestTenant   string
	ingestCase     string
	ingestEvidence string
	ingestDocID    string
	ingestMIME     string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Index documents for a tenant",
	Long: `Reads the given files, extracts their text, chunks it and indexes
the chunks under the tenant. Re-ingesting a file with the same
document ID replaces its previous chunks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

var removeCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove an indexed document",
	Long:  `Deletes every indexed chunk of the document. Idempotent.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestTenant, "tenant", "t", "", "tenant (law firm) identifier")
	ingestCmd.Flags().StringVarP(&ingestCase, "case", "c", "", "case file identifier")
	ingestCmd.Flags().StringVar(&ingestEvidence, "evidence", "", "evidence record identifier")
	ingestCmd.Flags().StringVar(&ingestDocID, "id", "", "document identifier (generated when empty; only valid with a single file)")
	ingestCmd.Flags().StringVar(&ingestMIME, "mime", "", "MIME type override (detected from extension when empty)")
	_ = ingestCmd.MarkFlagRequired("tenant")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(removeCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	if ingestDocID != "" && len(args) > 1 {
		return errors.New("--id cannot be used with multiple files")
	}

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		raw := &domain.RawDocument{
			TenantID:       ingestTenant,
			CaseID:         ingestCase,
			DocumentID:     ingestDocID,
			EvidenceLinkID: ingestEvidence,
			URI:            path,
			MIMEType:       detectMIME(path, ingestMIME),
			Content:        content,
		}

		result, err := ingestService.Ingest(cmd.Context(), raw)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}

		cmd.Printf("Indexed %s\n", path)
		cmd.Printf("  Document: %s\n", result.DocumentID)
		if result.Title != "" {
			cmd.Printf("  Title:    %s\n", result.Title)
		}
		cmd.Printf("  Chunks:   %d\n", result.ChunkCount)
		if result.PageCount > 0 {
			cmd.Printf("  Pages:    %d\n", result.PageCount)
		}
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	docID := args[0]
	if err := ingestService.Remove(cmd.Context(), docID); err != nil {
		return fmt.Errorf("removing %s: %w", docID, err)
	}

	cmd.Printf("Removed document %s from the index.\n", docID)
	return nil
}

// detectMIME resolves the MIME type from the override flag or the
// file extension. Unknown extensions fall back to text/plain, which
// the lossy fallback normaliser accepts.
func detectMIME(path, override string) string {
	if override != "" {
		return override
	}
	if mimeType := mime.TypeByExtension(filepath.Ext(path)); mimeType != "" {
		// Strip parameters such as "; charset=utf-8"; the registry
		// dispatches on the bare media type.
		if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
			return parsed
		}
		return mimeType
	}
	return "text/plain"
}
