package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avocatech/juricite/internal/adapters/driving/tui"
	"github.com/avocatech/juricite/internal/core/domain"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Launch the interactive search console",
	Long: `Launch the interactive terminal console for searching a tenant's
indexed documents. Results carry their provenance so passages can be
checked before citing them.

Controls:
  ↑/k, ↓/j - Navigate results
  Enter    - Search / Open result
  Esc      - Back / Quit
  ?        - Help`,
	RunE: runConsole,
}

func init() {
	consoleCmd.Flags().StringP("tenant", "t", "", "tenant identifier (required)")
	consoleCmd.Flags().StringP("case", "c", "", "restrict searches to one case file")
	_ = consoleCmd.MarkFlagRequired("tenant")
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, _ []string) error {
	// Panic recovery with a stack trace; a crashed alternate screen
	// otherwise swallows the cause.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in console: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	tenantID, err := cmd.Flags().GetString("tenant")
	if err != nil {
		return fmt.Errorf("getting tenant flag: %w", err)
	}
	caseID, err := cmd.Flags().GetString("case")
	if err != nil {
		return fmt.Errorf("getting case flag: %w", err)
	}

	ports := &tui.Ports{Search: legalSearchService}

	app, err := tui.NewApp(ports, domain.SearchOptions{
		TenantID: tenantID,
		CaseID:   caseID,
	})
	if err != nil {
		return fmt.Errorf("creating console: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	return nil
}
