package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var entitiesJSON bool

var entitiesCmd = &cobra.Command{
	Use:   "entities [text]",
	Short: "Extract legal references from text",
	Long: `Recognises statute articles, laws and court decisions in free
text, e.g. "article L.1234-1 du Code du travail" or
"Cass. soc., 25 juin 2003".`,
	Args: cobra.ExactArgs(1),
	RunE: runEntities,
}

func init() {
	entitiesCmd.Flags().BoolVar(&entitiesJSON, "json", false, "output entities as JSON")

	rootCmd.AddCommand(entitiesCmd)
}

func runEntities(cmd *cobra.Command, args []string) error {
	if legalSearchService == nil {
		return errors.New("legal search service not configured")
	}

	entities := legalSearchService.ExtractEntities(args[0])

	if entitiesJSON {
		data, err := json.MarshalIndent(entities, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entities: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(entities) == 0 {
		cmd.Println("No legal references found.")
		return nil
	}

	for _, entity := range entities {
		cmd.Printf("  %-15s %s (%.2f)\n", entity.Type, entity.Normalized, entity.Confidence)
	}
	return nil
}
