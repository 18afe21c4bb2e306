// Package metrics provides Prometheus metrics for artifactory-cleanup.
//
// The Collector owns a private Prometheus registry and exposes per-policy
// cleanup metrics plus definition reload metrics. In daemon mode the
// collector's Handler is mounted on the metrics listen address:
//
//	collector := metrics.NewCollector(nil)
//	http.Handle("/metrics", collector.Handler())
//
// Exported metrics:
//
//   - artifactory_cleanup_runs_total{policy,status}
//   - artifactory_cleanup_run_duration_seconds{policy}
//   - artifactory_cleanup_artifacts_examined_total{policy}
//   - artifactory_cleanup_artifacts_removed_total{policy}
//   - artifactory_cleanup_bytes_reclaimed_total{policy}
//   - artifactory_cleanup_policies_loaded
//   - artifactory_cleanup_definition_reloads_total{status}
package metrics
