package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/tui"
	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
	"github.com/custodia-labs/changelog-migrate/internal/logger"
)

// fetchDashboard shows the interactive progress dashboard instead of
// per-entry lines. Ignored when stdout is not a terminal.
var fetchDashboard bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the markdown of every feed entry",
	Long: `Parses the feed and downloads <link>.md for every entry into the
markdown directory as <slug>.mdx. A failed entry is reported and skipped.
The command fails if the feed cannot be read or no entry was downloaded.

With --tui the progress is shown as an interactive dashboard; press q to
cancel the remaining downloads.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchDashboard, "tui", false, "show an interactive progress dashboard")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	_, err = fetchWithProgress(cmd, svc)
	return err
}

// fetchWithProgress runs the fetch stage, printing one line per entry and a
// summary.
func fetchWithProgress(cmd *cobra.Command, svc *Services) (*domain.FetchSummary, error) {
	if svc.Fetch == nil {
		return nil, errors.New("fetch service not configured")
	}

	st := newStyles(cmd.OutOrStdout())
	if fetchDashboard && isTerminal(cmd.OutOrStdout()) {
		summary, err := fetchWithDashboard(cmd, svc.Fetch)
		if summary != nil {
			printFetchSummary(cmd, st, summary)
		}
		return summary, err
	}

	cmd.Println(st.Heading.Render("Fetching changelog entries"))

	summary, err := svc.Fetch.Fetch(commandContext(cmd), func(e driving.FetchEvent) {
		if e.Err != nil {
			cmd.Printf("[%d/%d] %s %s\n", e.Index, e.Total, e.Item.Slug,
				st.Failed.Render("failed: "+e.Err.Error()))
			return
		}
		cmd.Printf("[%d/%d] %s %s\n", e.Index, e.Total, e.Item.Slug, st.Detail.Render("-> "+e.Path))
	})

	if summary != nil {
		printFetchSummary(cmd, st, summary)
	}
	return summary, err
}

// fetchWithDashboard runs the fetch stage under the bubbletea dashboard.
// Diagnostic logging is muted while the dashboard owns the terminal.
func fetchWithDashboard(cmd *cobra.Command, fetch driving.FetchService) (*domain.FetchSummary, error) {
	app, err := tui.NewApp(tui.NewPorts(fetch))
	if err != nil {
		return nil, err
	}
	app.WithContext(commandContext(cmd))
	defer app.Stop()

	restore := logger.Output()
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(restore)

	program := tea.NewProgram(app,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := program.Run(); err != nil {
		return nil, fmt.Errorf("running dashboard: %w", err)
	}
	return app.Result()
}

func printFetchSummary(cmd *cobra.Command, st *styles.Styles, summary *domain.FetchSummary) {
	dir := summary.OutputDir
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	cmd.Println()
	cmd.Println(st.Heading.Render("Fetch summary"))
	cmd.Printf("  Downloaded:       %s\n", st.OK.Render(pluralise(summary.Succeeded, "entry", "entries")))
	if summary.Failed > 0 {
		cmd.Printf("  Failed:           %s\n", st.Failed.Render(pluralise(summary.Failed, "entry", "entries")))
	} else {
		cmd.Printf("  Failed:           %d\n", summary.Failed)
	}
	if skipped := summary.Total - summary.Succeeded - summary.Failed; skipped > 0 {
		cmd.Printf("  Not attempted:    %s\n", st.Skipped.Render(pluralise(skipped, "entry", "entries")))
	}
	cmd.Printf("  Output directory: %s\n", dir)
}
