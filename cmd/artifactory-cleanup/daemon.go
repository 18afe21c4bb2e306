package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"devopshq/artifactory-cleanup/pkg/artifactory"
	"devopshq/artifactory-cleanup/pkg/cleanup"
	"devopshq/artifactory-cleanup/pkg/cli"
	"devopshq/artifactory-cleanup/pkg/config"
	"devopshq/artifactory-cleanup/pkg/history"
	"devopshq/artifactory-cleanup/pkg/policies"
	"devopshq/artifactory-cleanup/pkg/schedule"
	"devopshq/artifactory-cleanup/pkg/telemetry/health"
	"devopshq/artifactory-cleanup/pkg/telemetry/metrics"
)

var daemonFlags struct {
	destroy bool
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run cleanup on a schedule",
	Long: `Run cleanup continuously on a cron schedule, with Prometheus metrics
and optional hot reload of the policy definition file.

Before every scheduled run the definition file is reloaded, so policy edits
take effect without restarting the daemon. Runs are dry-run unless --destroy
is passed.

Examples:
  # Nightly dry runs with default config
  artifactory-cleanup daemon

  # Actually delete on each scheduled run
  artifactory-cleanup daemon --destroy`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)

	daemonCmd.Flags().BoolVar(&daemonFlags.destroy, "destroy", false, "actually delete artifacts instead of dry run")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	// Load configuration
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	logger := setupLogging(cfg)

	fmt.Printf("artifactory-cleanup v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	collector := metrics.NewCollector(nil)

	manager, err := newDaemonManager(cfg, collector, logger)
	if err != nil {
		return cli.NewCommandError("daemon", err)
	}
	defer manager.Close()
	fmt.Printf("✓ Policies loaded (%d policies)\n", len(manager.Policies()))

	session, err := artifactory.NewClient(artifactory.Config{
		Server:   cfg.Artifactory.Server,
		User:     cfg.Artifactory.User,
		Password: cfg.Artifactory.Password,
		Timeout:  cfg.Artifactory.Timeout,
	}, logger)
	if err != nil {
		return cli.NewCommandError("daemon", err)
	}

	runner, err := cleanup.NewRunner(session, cleanup.RunnerConfig{Destroy: daemonFlags.destroy}, logger)
	if err != nil {
		return cli.NewCommandError("daemon", err)
	}
	runner.WithMetrics(collector)

	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History.DBPath)
		if err != nil {
			return cli.NewCommandError("daemon", fmt.Errorf("failed to open history store: %w", err))
		}
		defer store.Close()
		runner.WithHistory(store)
		fmt.Println("✓ History store initialized")
	}

	ctx := cli.SetupSignalHandler()

	// Scheduled job: refresh the definition, then execute the policy set.
	job := func(jobCtx context.Context) {
		if err := manager.Reload(); err != nil {
			collector.RecordReload(false)
		} else {
			collector.RecordReload(true)
			collector.SetPoliciesLoaded(len(manager.Policies()))
		}

		policySet := manager.Policies()
		if len(policySet) == 0 {
			logger.Warn("no policies loaded, skipping scheduled run")
			return
		}

		summary, err := runner.Run(jobCtx, policySet)
		if err != nil {
			logger.Error("scheduled run failed", "error", err)
			return
		}
		logger.Info("scheduled run completed",
			"policies", len(summary.Reports),
			"failed", len(summary.Failed()),
			"removed", summary.Removed(),
			"bytes_reclaimed", summary.BytesReclaimed(),
		)
	}

	scheduler := schedule.NewScheduler(cfg.Daemon.Schedule, job)
	if err := scheduler.Start(ctx); err != nil {
		return cli.NewCommandError("daemon", fmt.Errorf("failed to start scheduler: %w", err))
	}
	defer scheduler.Stop()
	if next := scheduler.NextRun(); next != nil {
		fmt.Printf("✓ Scheduler started (next run: %s)\n", next.Format(time.RFC3339))
	}

	// Hot reload between scheduled runs when enabled.
	if cfg.Policies.Watch {
		go func() {
			if err := manager.Watch(ctx); err != nil {
				logger.Error("definition watcher stopped", "error", err)
			}
		}()
		fmt.Println("✓ Definition hot reload enabled")
	}

	checker := health.New(0)
	checker.RegisterCheck("definition", func(context.Context) error {
		return manager.LastLoadError()
	})
	checker.RegisterCheck("artifactory", func(checkCtx context.Context) error {
		_, err := session.Repositories(checkCtx)
		return err
	})

	metricsSrv := startMetricsServer(cfg.Daemon.MetricsListenAddress, collector, checker, logger)
	fmt.Printf("✓ Metrics endpoint: http://%s/metrics\n", cfg.Daemon.MetricsListenAddress)
	fmt.Println("\nPress Ctrl+C to stop")

	<-ctx.Done()

	fmt.Println("\nShutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown failed", "error", err)
	}

	fmt.Println("✓ Daemon stopped")
	return nil
}

// newDaemonManager loads the policy definition and seeds the policy gauge.
func newDaemonManager(cfg *config.Config, collector *metrics.Collector, logger *slog.Logger) (*policies.Manager, error) {
	loader := policies.ForFile(cfg.Policies.FilePath, nil)
	manager, err := policies.NewManager(policies.ManagerConfig{
		FilePath: cfg.Policies.FilePath,
		Watch:    cfg.Policies.Watch,
	}, loader, logger)
	if err != nil {
		return nil, err
	}
	if err := manager.Load(); err != nil {
		return nil, err
	}

	collector.SetPoliciesLoaded(len(manager.Policies()))
	return manager, nil
}

// startMetricsServer exposes the Prometheus and health endpoints in the
// background.
func startMetricsServer(address string, collector *metrics.Collector, checker *health.Checker, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	mux.Handle("/healthz", checker.LivenessHandler())
	mux.Handle("/readyz", checker.ReadinessHandler())

	srv := &http.Server{Addr: address, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()
	return srv
}
