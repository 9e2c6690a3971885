package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
	"github.com/custodia-labs/changelog-migrate/internal/core/ports/driving"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Long: `Writes every setting with its default value to the config file so it
can be edited. An existing file is only replaced with --force.`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	cfg := svc.Config
	source := svc.ConfigPath
	if _, err := os.Stat(source); err != nil {
		source += " (not found, using defaults)"
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Printf("Config file: %s\n", source)
	cmd.Println()

	cmd.Println("[Paths]")
	cmd.Printf("  feed_path:           %s\n", cfg.FeedPath)
	cmd.Printf("  markdown_dir:        %s\n", cfg.MarkdownDir)
	cmd.Printf("  output_path:         %s\n", cfg.OutputPath)
	cmd.Println()

	cmd.Println("[Fetch]")
	cmd.Printf("  request_timeout:     %s\n", cfg.RequestTimeout)
	cmd.Printf("  inter_request_delay: %s\n", cfg.InterRequestDelay)
	cmd.Printf("  concurrency:         %d\n", cfg.Concurrency)
	cmd.Printf("  user_agent:          %s\n", cfg.UserAgent)
	cmd.Printf("  max_body_bytes:      %d\n", cfg.MaxBodyBytes)
	cmd.Println()

	cmd.Println("[Combine]")
	cmd.Printf("  indent_width:        %d\n", cfg.IndentWidth)
	cmd.Printf("  title:               %s\n", cfg.Title)
	cmd.Printf("  description:         %s\n", cfg.Description)
	cmd.Println()

	cmd.Println("[History]")
	if cfg.HistoryDB == "" {
		cmd.Println("  history_db:          (disabled)")
	} else {
		cmd.Printf("  history_db:          %s\n", cfg.HistoryDB)
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configSvc, path, err := initConfigService()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := configSvc.Save(domain.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	cmd.Printf("Wrote default configuration to %s\n", path)
	return nil
}

// initConfigService skips loading the existing file when an init factory
// is set, so an invalid config can still be replaced.
func initConfigService() (driving.ConfigService, string, error) {
	if initFactory != nil {
		configSvc, path := initFactory(cfgFile)
		return configSvc, path, nil
	}

	svc, err := loadServices()
	if err != nil {
		return nil, "", err
	}
	if svc.ConfigSvc == nil {
		return nil, "", errors.New("config service not configured")
	}
	return svc.ConfigSvc, svc.ConfigPath, nil
}
