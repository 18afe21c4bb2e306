package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"devopshq/artifactory-cleanup/pkg/artifactory"
	"devopshq/artifactory-cleanup/pkg/history"
	"devopshq/artifactory-cleanup/pkg/policies"
	"devopshq/artifactory-cleanup/pkg/rules"
	"devopshq/artifactory-cleanup/pkg/telemetry/metrics"
)

// RunnerConfig configures a cleanup Runner.
type RunnerConfig struct {
	// Destroy enables actual deletion. When false (the default), the
	// runner reports what would be removed without touching anything.
	Destroy bool
}

// Runner executes policies against an Artifactory session.
type Runner struct {
	session artifactory.Session
	config  RunnerConfig
	logger  *slog.Logger

	// Optional sinks, nil when disabled.
	metrics  *metrics.Collector
	history  *history.Store
	progress ProgressFunc

	now func() time.Time
}

// ProgressFunc is invoked after each processed candidate with the running
// and total counts for the current policy.
type ProgressFunc func(done, total int)

// NewRunner creates a runner over the given session.
func NewRunner(session artifactory.Session, config RunnerConfig, logger *slog.Logger) (*Runner, error) {
	if session == nil {
		return nil, fmt.Errorf("session cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		session: session,
		config:  config,
		logger:  logger.With("component", "cleanup.runner"),
		now:     time.Now,
	}, nil
}

// WithMetrics attaches a metrics collector. Completed runs are recorded
// per policy.
func (r *Runner) WithMetrics(collector *metrics.Collector) *Runner {
	r.metrics = collector
	return r
}

// WithHistory attaches a run history store.
func (r *Runner) WithHistory(store *history.Store) *Runner {
	r.history = store
	return r
}

// WithProgress attaches a progress callback for the removal loop.
func (r *Runner) WithProgress(fn ProgressFunc) *Runner {
	r.progress = fn
	return r
}

// Run executes every policy in order and returns the aggregated summary.
// A failing policy does not stop the run; its report carries the error and
// the remaining policies still execute.
func (r *Runner) Run(ctx context.Context, policySet []*policies.Policy) (*Summary, error) {
	if len(policySet) == 0 {
		return nil, fmt.Errorf("no policies to run")
	}

	summary := &Summary{StartedAt: r.now()}

	for _, policy := range policySet {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Reports = append(summary.Reports, r.runPolicy(ctx, policy))
	}

	summary.FinishedAt = r.now()
	return summary, nil
}

// runPolicy executes a single policy and records the outcome in the
// attached sinks.
func (r *Runner) runPolicy(ctx context.Context, policy *policies.Policy) *Report {
	report := &Report{
		RunID:     uuid.NewString(),
		Policy:    policy.Name(),
		StartedAt: r.now(),
		Destroy:   r.config.Destroy,
	}

	logger := r.logger.With("policy", policy.Name(), "run_id", report.RunID)
	logger.Info("policy run started", "destroy", r.config.Destroy)

	candidates, err := r.collectCandidates(ctx, policy, report)
	if err == nil {
		err = r.removeCandidates(ctx, candidates, report, logger)
	}

	report.FinishedAt = r.now()
	report.Err = err

	if err != nil {
		logger.Error("policy run failed", "error", err)
	} else {
		logger.Info("policy run completed",
			"examined", report.Examined,
			"removed", len(report.Removed),
			"bytes_reclaimed", report.BytesReclaimed,
		)
	}

	r.record(ctx, report)
	return report
}

// collectCandidates lists the policy's repositories and runs the listing
// through the rule chain. Whatever survives the chain is up for removal.
func (r *Runner) collectCandidates(ctx context.Context, policy *policies.Policy, report *Report) ([]artifactory.Item, error) {
	repos, err := r.repositoriesFor(ctx, policy)
	if err != nil {
		return nil, err
	}

	var items []artifactory.Item
	for _, repo := range repos {
		listed, err := r.session.List(ctx, repo)
		if err != nil {
			return nil, fmt.Errorf("failed to list repository %q: %w", repo, err)
		}
		items = append(items, listed...)
	}
	report.Examined = int64(len(items))

	for _, rule := range policy.Rules() {
		items, err = rule.Filter(ctx, items)
		if err != nil {
			return nil, fmt.Errorf("rule %q failed: %w", rule.Name(), err)
		}
	}

	return items, nil
}

// removeCandidates deletes the candidates, or only tallies them in
// dry-run mode.
func (r *Runner) removeCandidates(ctx context.Context, candidates []artifactory.Item, report *Report, logger *slog.Logger) error {
	for i, item := range candidates {
		if r.config.Destroy {
			if err := r.session.Delete(ctx, item); err != nil {
				return fmt.Errorf("failed to delete %q: %w", item.FullPath(), err)
			}
			logger.Debug("artifact removed", "path", item.FullPath(), "size", item.Size)
		} else {
			logger.Debug("artifact would be removed", "path", item.FullPath(), "size", item.Size)
		}

		report.Removed = append(report.Removed, item)
		report.BytesReclaimed += item.Size

		if r.progress != nil {
			r.progress(i+1, len(candidates))
		}
	}
	return nil
}

// repositoriesFor resolves the repositories a policy targets. Selector
// rules that carry an explicit repository list win; mask selectors match
// against the instance's repository listing; a policy without any selector
// falls back to its own name as the repository.
func (r *Runner) repositoriesFor(ctx context.Context, policy *policies.Policy) ([]string, error) {
	var (
		repos    []string
		matchers []rules.RepositoryMatcher
	)

	for _, rule := range policy.Rules() {
		if provider, ok := rule.(rules.RepositoryProvider); ok {
			repos = append(repos, provider.Repositories()...)
		}
		if matcher, ok := rule.(rules.RepositoryMatcher); ok {
			matchers = append(matchers, matcher)
		}
	}

	if len(matchers) > 0 {
		all, err := r.session.Repositories(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}
		for _, repo := range all {
			for _, matcher := range matchers {
				if matcher.MatchRepository(repo) {
					repos = append(repos, repo)
					break
				}
			}
		}
	}

	if len(repos) == 0 {
		repos = []string{policy.Name()}
	}

	return dedupe(repos), nil
}

// record pushes the report into the attached metrics and history sinks.
func (r *Runner) record(ctx context.Context, report *Report) {
	status := "success"
	if report.Err != nil {
		status = "error"
	}

	if r.metrics != nil {
		r.metrics.RecordRun(
			report.Policy,
			status,
			report.FinishedAt.Sub(report.StartedAt),
			report.Examined,
			int64(len(report.Removed)),
			report.BytesReclaimed,
		)
	}

	if r.history != nil {
		record := &history.Record{
			ID:             report.RunID,
			Policy:         report.Policy,
			StartedAt:      report.StartedAt,
			FinishedAt:     report.FinishedAt,
			Examined:       report.Examined,
			Removed:        int64(len(report.Removed)),
			BytesReclaimed: report.BytesReclaimed,
			Destroy:        report.Destroy,
		}
		if err := r.history.Append(ctx, record); err != nil {
			r.logger.Error("failed to record run history",
				"policy", report.Policy,
				"error", err,
			)
		}
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
