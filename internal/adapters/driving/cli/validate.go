package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/avocatech/juricite/internal/core/domain"
)

var (
	validateSourcesPath string
	validateJSON        bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [text-file]",
	Short: "Check generated text against its sources",
	Long: `Runs generated text through the "no source, no claim" gate:
every assertive sentence must be lexically backed by the supplied
sources. Reads the text from the file argument, or from stdin when no
argument is given.

The sources file is a JSON array of source objects:
  [{"document_id": "doc-1", "chunk_text": "..."}]`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateSourcesPath, "sources", "s", "", "JSON file with the sources shown to the generator")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output the report as JSON")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if citationService == nil {
		return errors.New("citation service not configured")
	}

	text, err := readValidateText(cmd, args)
	if err != nil {
		return err
	}

	var sources []domain.Source
	if validateSourcesPath != "" {
		data, err := os.ReadFile(validateSourcesPath)
		if err != nil {
			return fmt.Errorf("reading sources: %w", err)
		}
		if err := json.Unmarshal(data, &sources); err != nil {
			return fmt.Errorf("parsing sources: %w", err)
		}
	}

	report := citationService.Validate(text, sources)

	if validateJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Sentences: %d  Claims: %d\n", report.SentenceCount, report.ClaimCount)
	if report.IsValid {
		cmd.Println("All claims are backed by the supplied sources.")
		return nil
	}

	cmd.Printf("\n%d uncited claim(s):\n", len(report.UncitedClaims))
	for _, claim := range report.UncitedClaims {
		cmd.Printf("  - %s\n", claim)
	}
	return nil
}

func readValidateText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading text: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
