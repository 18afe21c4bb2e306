package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"devopshq/artifactory-cleanup/pkg/artifactory"
	"devopshq/artifactory-cleanup/pkg/cleanup"
	"devopshq/artifactory-cleanup/pkg/cli"
	"devopshq/artifactory-cleanup/pkg/config"
	"devopshq/artifactory-cleanup/pkg/history"
	"devopshq/artifactory-cleanup/pkg/policies"
)

var runFlags struct {
	policiesFile string
	server       string
	user         string
	password     string
	destroy      bool
	output       string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute cleanup policies once",
	Long: `Execute every policy from the definition file against the configured
Artifactory instance.

Without --destroy the command is a dry run: it reports what would be removed
without deleting anything.

Examples:
  # Dry run with default config
  artifactory-cleanup run

  # Actually delete
  artifactory-cleanup run --destroy

  # Use a different definition file
  artifactory-cleanup run --policies /etc/cleanup/policies.yaml

  # Machine-readable output
  artifactory-cleanup run --output json`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.policiesFile, "policies", "p", "", "override policy definition file")
	runCmd.Flags().StringVar(&runFlags.server, "server", "", "override Artifactory server URL")
	runCmd.Flags().StringVar(&runFlags.user, "user", "", "override Artifactory user")
	runCmd.Flags().StringVar(&runFlags.password, "password", "", "override Artifactory password or API token")
	runCmd.Flags().BoolVar(&runFlags.destroy, "destroy", false, "actually delete artifacts instead of dry run")
	runCmd.Flags().StringVarP(&runFlags.output, "output", "o", "text", "output format: text, json")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	// Load configuration
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.policiesFile != "" {
		cfg.Policies.FilePath = runFlags.policiesFile
	}
	if runFlags.server != "" {
		cfg.Artifactory.Server = runFlags.server
	}
	if runFlags.user != "" {
		cfg.Artifactory.User = runFlags.user
	}
	if runFlags.password != "" {
		cfg.Artifactory.Password = runFlags.password
	}

	logger := setupLogging(cfg)

	cliCtx := cli.NewContext(
		cfg.Artifactory.Server,
		cfg.Artifactory.User,
		cfg.Artifactory.Password,
		cfg.Policies.FilePath,
		runFlags.destroy,
	)

	manager, err := loadPolicies(cliCtx.PolicyFile(), logger)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	policySet := manager.Policies()

	server, user, password := cliCtx.GetConnection()
	session, err := artifactory.NewClient(artifactory.Config{
		Server:   server,
		User:     user,
		Password: password,
		Timeout:  cfg.Artifactory.Timeout,
	}, logger)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	runner, err := cleanup.NewRunner(session, cleanup.RunnerConfig{Destroy: cliCtx.Destroy()}, logger)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	// Show deletion progress on the terminal; JSON output stays clean.
	if runFlags.output != "json" && cliCtx.Destroy() {
		reporter := cli.NewProgressReporter(os.Stderr)
		runner.WithProgress(func(done, total int) {
			if done == 1 {
				reporter.Start(int64(total))
			}
			reporter.Update(int64(done))
			if done == total {
				reporter.Finish()
			}
		})
	}

	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History.DBPath)
		if err != nil {
			return cli.NewCommandError("run", fmt.Errorf("failed to open history store: %w", err))
		}
		defer store.Close()
		runner.WithHistory(store)
	}

	ctx := cli.SetupSignalHandler()
	summary, err := runner.Run(ctx, policySet)
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	if err := printSummary(summary, cliCtx.Destroy()); err != nil {
		return cli.NewCommandError("run", err)
	}

	if failed := summary.Failed(); len(failed) > 0 {
		return cli.NewCommandError("run", fmt.Errorf("%d of %d policies failed", len(failed), len(summary.Reports)))
	}
	return nil
}

// loadPolicies loads the definition file through the loader matching its
// extension and returns the manager holding the policy set.
func loadPolicies(path string, logger *slog.Logger) (*policies.Manager, error) {
	loader := policies.ForFile(path, nil)
	manager, err := policies.NewManager(policies.ManagerConfig{FilePath: path}, loader, logger)
	if err != nil {
		return nil, err
	}
	if err := manager.Load(); err != nil {
		return nil, err
	}
	return manager, nil
}

func printSummary(summary *cleanup.Summary, destroy bool) error {
	if runFlags.output == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(os.Stdout, summary)
	}

	for _, report := range summary.Reports {
		fmt.Println(report.String())
	}

	mode := "dry run, nothing was deleted"
	if destroy {
		mode = "destroy mode"
	}
	fmt.Println()
	fmt.Printf("✓ %d policies executed (%s)\n", len(summary.Reports), mode)
	fmt.Printf("✓ %d artifacts removed, %d bytes reclaimed\n", summary.Removed(), summary.BytesReclaimed())
	return nil
}
