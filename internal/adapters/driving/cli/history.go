package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/changelog-migrate/internal/adapters/driving/tui/styles"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded runs",
	Long: `Lists recent fetch and combine runs from the history database, most
recent first. With a run ID, lists the outcome of every entry in that run.

History is only recorded when history_db is set in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	if svc.History == nil {
		return errors.New("history service not configured")
	}
	if len(args) == 1 {
		return runHistoryItems(cmd, svc, args[0])
	}

	runs, err := svc.History.Recent(commandContext(cmd), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	t := newTable(newStyles(cmd.OutOrStdout()),
		"ID", "STAGE", "STARTED", "DURATION", "OK", "FAILED", "ERROR")
	for _, run := range runs {
		t.Row(
			run.ID, string(run.Stage),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.EndedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
			strconv.Itoa(run.Succeeded), strconv.Itoa(run.Failed), run.Error,
		)
	}
	cmd.Println(t.String())
	return nil
}

func runHistoryItems(cmd *cobra.Command, svc *Services, runID string) error {
	items, err := svc.History.Items(commandContext(cmd), runID)
	if err != nil {
		return fmt.Errorf("failed to list run %s: %w", runID, err)
	}
	if len(items) == 0 {
		cmd.Printf("Run %s has no entries.\n", runID)
		return nil
	}

	t := newTable(newStyles(cmd.OutOrStdout()), "SLUG", "STATUS", "ERROR")
	for _, item := range items {
		t.Row(item.Slug, string(item.Status), item.Error)
	}
	cmd.Println(t.String())
	return nil
}

// newTable returns a bordered table with styled headers.
func newTable(st *styles.Styles, headers ...string) *table.Table {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.Detail).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Heading.Padding(0, 1)
			}
			return cell
		})
}
