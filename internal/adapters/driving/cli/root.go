// Package cli provides the command-line interface. Commands talk to
// the core services through the driving ports; everything below the
// ports is wired once per invocation from the persisted settings.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avocatech/juricite/internal/adapters/driven/providers"
	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/core/ports/driven"
	"github.com/avocatech/juricite/internal/core/ports/driving"
	"github.com/avocatech/juricite/internal/core/services"
	"github.com/avocatech/juricite/internal/logger"
	"github.com/avocatech/juricite/internal/normalisers"
	"github.com/avocatech/juricite/internal/normalisers/docx"
	"github.com/avocatech/juricite/internal/normalisers/markdown"
	"github.com/avocatech/juricite/internal/normalisers/pdf"
	"github.com/avocatech/juricite/internal/normalisers/plaintext"
	"github.com/avocatech/juricite/internal/postprocessors"
	"github.com/avocatech/juricite/internal/ratelimit"

	configfile "github.com/avocatech/juricite/internal/adapters/driven/config/file"
)

// version is set by Execute.
var version = "dev"

// Services used by the commands. Populated by ensureServices on first
// use; tests substitute mocks directly.
var (
	settingsService    driving.SettingsService
	ingestService      driving.IngestService
	searchService      driving.SearchService
	legalSearchService driving.LegalSearchService
	citationService    driving.CitationService

	backends *providers.Backends
)

var (
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "juricite",
	Short: "Legal retrieval and citation enforcement engine",
	Long: `Juricite indexes legal documents for hybrid (semantic + keyword)
search with tenant isolation, and validates generated text against its
sources under the "no source, no claim" rule.`,
	SilenceUsage:      true,
	PersistentPreRunE: ensureServices,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if backends != nil {
			backends.Close()
			backends = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.juricite)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI with the given version string.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// ensureServices wires the core services from persisted settings. It
// is a no-op when services are already present, so tests can install
// mocks before running commands.
func ensureServices(cmd *cobra.Command, _ []string) error {
	if verbose {
		logger.SetVerbose(true)
	}
	if searchService != nil {
		return nil
	}

	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	settingsService = services.NewSettingsService(store)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	b, err := providers.Build(cmd.Context(), settings)
	if err != nil {
		return fmt.Errorf("building backends: %w", err)
	}
	for _, warning := range b.Warnings {
		logger.Info("%s", warning)
	}
	backends = b

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(pdf.New())
	registry.Register(docx.New())
	registry.Register(markdown.New())

	pipeline, err := buildPipeline(settings)
	if err != nil {
		return fmt.Errorf("building pipeline: %w", err)
	}

	ingestService = services.NewIngestService(registry, pipeline, b.EmbeddingService, b.VectorIndex)

	lexical := services.NewLexicalScorer(settings.Lexical)
	search := services.NewSearchService(b.VectorIndex, b.EmbeddingService, lexical, settings.Search)
	searchService = search

	limiter := ratelimit.NewTenantLimiter(settings.RateLimit)
	legalSearchService = services.NewLegalSearchService(search, b.Reranker, b.Cache, limiter, settings.Search)

	citationService = services.NewCitationService(settings.Citation)

	return nil
}

// buildPipeline constructs the post-processor pipeline with the
// chunker configured from settings.
func buildPipeline(settings *domain.EngineSettings) (driven.PostProcessorPipeline, error) {
	procRegistry := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(procRegistry)

	cfg := domain.DefaultPipelineConfig()
	cfg.ProcessorConfigs["chunker"]["max_tokens"] = settings.Chunking.MaxTokens
	cfg.ProcessorConfigs["chunker"]["overlap_tokens"] = settings.Chunking.OverlapTokens

	processors := make([]driven.PostProcessor, 0, len(cfg.Processors))
	for _, name := range cfg.Processors {
		processor, err := procRegistry.Build(name, cfg.GetProcessorConfig(name))
		if err != nil {
			return nil, err
		}
		processors = append(processors, processor)
	}
	return postprocessors.NewPipeline(processors...), nil
}
