package cli

import (
	"github.com/spf13/cobra"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Fetch every entry, then combine them",
	Long: `Runs fetch followed by combine. Combine still runs when some entries
failed to download, but not when the feed could not be read or nothing
was downloaded.`,
	Args: cobra.NoArgs,
	RunE: runAll,
}

func init() {
	allCmd.Flags().BoolVar(&fetchDashboard, "tui", false, "show an interactive progress dashboard while fetching")
	rootCmd.AddCommand(allCmd)
}

func runAll(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	if _, err := fetchWithProgress(cmd, svc); err != nil {
		return err
	}

	cmd.Println()
	_, err = combineAndReport(cmd, svc)
	return err
}
