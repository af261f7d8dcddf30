package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avocatech/juricite/internal/core/domain"
)

var (
	searchTenant  string
	searchCase    string
	searchLimit   int
	searchMode    string
	searchJSON    bool
	searchFilters []string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search indexed documents",
	Long: `Performs hybrid search over the tenant's indexed documents,
blending semantic (vector) similarity with keyword (BM25) relevance.
Every result is traceable to a stored document or evidence record.

Modes:
  vector_only - cosine similarity only (fastest)
  hybrid      - vector + keyword blend (default)
  legal       - hybrid + entity extraction, expansion, re-ranking`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchTenant, "tenant", "t", "", "tenant (law firm) identifier")
	searchCmd.Flags().StringVarP(&searchCase, "case", "c", "", "restrict to one case file")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", "", "search mode (vector_only, hybrid, legal)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringArrayVarP(&searchFilters, "filter", "f", nil, "payload filter key=value (repeatable)")
	_ = searchCmd.MarkFlagRequired("tenant")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := args[0]
	filters, err := parseFilters(searchFilters)
	if err != nil {
		return err
	}

	opts := domain.SearchOptions{
		TenantID: searchTenant,
		CaseID:   searchCase,
		TopK:     searchLimit,
		Filters:  filters,
	}

	var results []domain.SearchResult
	switch domain.SearchMode(searchMode) {
	case domain.SearchModeVector:
		results, err = searchService.VectorSearch(cmd.Context(), query, opts)
	case domain.SearchModeLegal:
		if legalSearchService == nil {
			return errors.New("legal search service not configured")
		}
		results, err = legalSearchService.Search(cmd.Context(), query, opts)
	case "", domain.SearchModeHybrid:
		results, err = searchService.Search(cmd.Context(), query, opts)
	default:
		return fmt.Errorf("unknown search mode %q", searchMode)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]

		source := r.DocumentID
		if source == "" {
			source = r.EvidenceLinkID
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, source, r.Score)
		if r.CaseID != "" {
			cmd.Printf("      Case: %s\n", r.CaseID)
		}
		if r.PageNumber > 0 {
			cmd.Printf("      Page: %d\n", r.PageNumber)
		}
		if len(r.Highlights) > 0 {
			cmd.Printf("      %s\n", r.Highlights[0])
		} else if r.Content != "" {
			cmd.Printf("      %s\n", snippet(r.Content, 120))
		}
		if len(r.RelatedArticles) > 0 {
			cmd.Printf("      See also: %s\n", strings.Join(r.RelatedArticles, ", "))
		}
		cmd.Println()
	}
	return nil
}

// parseFilters turns key=value flags into a filter map.
func parseFilters(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	filters := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, expected key=value", pair)
		}
		filters[key] = value
	}
	return filters, nil
}

// snippet truncates content to at most n runes for table display.
func snippet(content string, n int) string {
	content = strings.Join(strings.Fields(content), " ")
	runes := []rune(content)
	if len(runes) <= n {
		return content
	}
	return string(runes[:n]) + "…"
}
