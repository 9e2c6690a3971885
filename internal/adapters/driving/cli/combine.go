package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
)

var combineWatch bool

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine downloaded entries into one MDX document",
	Long: `Parses the feed again and concatenates every downloaded entry into the
output document, grouped into one <Update> block per month with the most
recent month first. Entries without a downloaded file or a parseable date
are left out.

With --watch the document is rebuilt whenever an entry or the feed changes.`,
	Args: cobra.NoArgs,
	RunE: runCombine,
}

func init() {
	combineCmd.Flags().BoolVarP(&combineWatch, "watch", "w", false,
		"rebuild when entries or the feed change")
	rootCmd.AddCommand(combineCmd)
}

func runCombine(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	if combineWatch {
		return watchAndCombine(cmd, svc)
	}
	_, err = combineAndReport(cmd, svc)
	return err
}

// combineAndReport runs the combine stage and prints its summary.
func combineAndReport(cmd *cobra.Command, svc *Services) (*domain.CombineSummary, error) {
	if svc.Combine == nil {
		return nil, errors.New("combine service not configured")
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Println(st.Heading.Render("Combining changelog entries"))

	summary, err := svc.Combine.Combine(commandContext(cmd))
	if err != nil {
		return nil, err
	}

	cmd.Printf("  Wrote %s: %s in %s\n", summary.OutputPath,
		st.OK.Render(pluralise(summary.Rendered, "entry", "entries")),
		pluralise(summary.Months, "month", "months"))
	if summary.Missing > 0 {
		cmd.Printf("  %s\n", st.Skipped.Render(pluralise(summary.Missing, "entry", "entries")+" without a downloaded file"))
	}
	if summary.Undated > 0 {
		cmd.Printf("  %s\n", st.Skipped.Render(pluralise(summary.Undated, "entry", "entries")+" with an unparseable date"))
	}
	return summary, nil
}

// watchAndCombine combines once, then again after every batch of changes
// until the command's context is cancelled. Failed rebuilds are reported
// and watching continues.
func watchAndCombine(cmd *cobra.Command, svc *Services) error {
	if svc.NewWatcher == nil {
		return errors.New("watch mode not available")
	}

	ctx := commandContext(cmd)
	st := newStyles(cmd.OutOrStdout())

	watcher := svc.NewWatcher()
	defer watcher.Close()

	changes, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	rebuild := func() {
		if _, err := combineAndReport(cmd, svc); err != nil {
			cmd.Println(st.Failed.Render("  combine failed: " + err.Error()))
		}
	}

	rebuild()
	cmd.Println(st.Detail.Render("Watching for changes, press Ctrl-C to stop"))

	for batch := range changes {
		cmd.Println(st.Detail.Render(pluralise(len(batch), "file", "files") + " changed"))
		rebuild()
	}

	return nil
}
