package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"devopshq/artifactory-cleanup/pkg/config"
	"devopshq/artifactory-cleanup/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "artifactory-cleanup",
	Short: "Policy-driven artifact cleanup for JFrog Artifactory",
	Long: `Artifactory-cleanup removes stale artifacts from Artifactory repositories
according to declarative cleanup policies.

Each policy chains rules: delete rules select removal candidates, keep rules
protect artifacts that must survive. Runs are dry-run by default; pass
--destroy to actually delete.

For more information, visit: https://github.com/devopshq/artifactory-cleanup`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setupLogging builds the process logger from the logging config and
// installs it as the slog default. The --verbose flag forces debug level.
func setupLogging(cfg *config.Config) *slog.Logger {
	loggingCfg := cfg.Logging
	if verbose {
		loggingCfg.Level = "debug"
	}

	logger, err := logging.New(loggingCfg, os.Stderr)
	if err != nil {
		// Validation already vets level and format; fall back rather
		// than failing the command over a logging setting.
		logger = slog.Default()
		logger.Warn("invalid logging configuration", "error", err)
		return logger
	}

	slog.SetDefault(logger)
	return logger
}
