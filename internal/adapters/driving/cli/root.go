// Package cli provides the changelog-migrate command line interface.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
	"github.com/custodia-labs/changelog-migrate/internal/logger"
)

var (
	version = "dev"

	cfgFile string
	verbose bool
)

// ChangeWatcher reports batches of changed files until ctx is done.
type ChangeWatcher interface {
	Watch(ctx context.Context) (<-chan []string, error)
	Close() error
}

// Services are the driving ports the commands run against.
type Services struct {
	Config     domain.Config
	ConfigPath string

	ConfigSvc driving.ConfigService
	Feed      driving.FeedService
	Fetch     driving.FetchService
	Combine   driving.CombineService
	History   driving.HistoryService

	// NewWatcher is used by combine --watch. It may be nil.
	NewWatcher func() ChangeWatcher

	// Closer releases resources such as the history database. It may be nil.
	Closer io.Closer
}

// Factory builds the services from the config file at path.
type Factory func(path string) (*Services, error)

var (
	factory     Factory
	initFactory InitFactory
	services    *Services
)

var rootCmd = &cobra.Command{
	Use:   "changelog-migrate",
	Short: "Migrate a hosted changelog feed into a single MDX document",
	Long: `changelog-migrate reads a changelog RSS feed, downloads the markdown of
every entry and combines the entries into one MDX document grouped by month.

Run "fetch" to download entries, "combine" to build the document, or "all"
to do both. Without a subcommand the feed is parsed and its items listed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default ./changelog-migrate.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// InitFactory builds the config service used by config init. It must not
// read or validate the existing file, so a broken config can be reset.
// It returns the resolved config path.
type InitFactory func(path string) (driving.ConfigService, string)

// SetInitFactory sets how config init gets its config service.
func SetInitFactory(f InitFactory) {
	initFactory = f
}

// SetFactory sets how services are built once flags are parsed.
func SetFactory(f Factory) {
	factory = f
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

// loadServices builds the services on first use.
func loadServices() (*Services, error) {
	if services != nil {
		return services, nil
	}
	if factory == nil {
		return nil, errors.New("services not configured")
	}

	built, err := factory(cfgFile)
	if err != nil {
		return nil, err
	}
	services = built
	return services, nil
}

func closeServices() {
	if services == nil || services.Closer == nil {
		return
	}
	if err := services.Closer.Close(); err != nil {
		logger.Warn("closing services: %v", err)
	}
}

func runRoot(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	if svc.Feed == nil {
		return errors.New("feed service not configured")
	}

	items, err := svc.Feed.Items(commandContext(cmd))
	if err != nil {
		return err
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Println(st.OK.Render(pluralise(len(items), "changelog item", "changelog items") +
		" in " + svc.Config.FeedPath))
	for _, item := range items {
		cmd.Printf("  %-40s %s\n", item.Slug, st.Detail.Render(item.PubDate))
	}
	cmd.Println()
	cmd.Print(cmd.UsageString())
	return nil
}

// commandContext returns the command's context, falling back to Background
// when the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
