package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "artifactory"
	subsystem = "cleanup"
)

// Collector owns the Prometheus registry and all cleanup metrics.
type Collector struct {
	registry *prometheus.Registry

	// Per-policy run counters
	runsTotal              *prometheus.CounterVec
	runDuration            *prometheus.HistogramVec
	artifactsExaminedTotal *prometheus.CounterVec
	artifactsRemovedTotal  *prometheus.CounterVec
	bytesReclaimedTotal    *prometheus.CounterVec

	// Definition loading
	policiesLoaded    prometheus.Gauge
	definitionReloads *prometheus.CounterVec
}

// NewCollector creates a metrics collector. If registry is nil, a fresh
// private registry is used.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,

		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "runs_total",
				Help:      "Total number of policy cleanup runs",
			},
			[]string{"policy", "status"},
		),

		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of policy cleanup runs in seconds",
				// Runs range from sub-second dry-runs on small repos to
				// multi-minute deletions on large ones.
				Buckets: []float64{0.5, 1, 5, 15, 60, 300, 900, 3600},
			},
			[]string{"policy"},
		),

		artifactsExaminedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "artifacts_examined_total",
				Help:      "Total number of artifacts examined by the rule chain",
			},
			[]string{"policy"},
		),

		artifactsRemovedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "artifacts_removed_total",
				Help:      "Total number of artifacts removed",
			},
			[]string{"policy"},
		),

		bytesReclaimedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "bytes_reclaimed_total",
				Help:      "Total size of removed artifacts in bytes",
			},
			[]string{"policy"},
		),

		policiesLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "policies_loaded",
				Help:      "Number of policies in the currently loaded definition",
			},
		),

		definitionReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "definition_reloads_total",
				Help:      "Total number of definition reload attempts",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		c.runsTotal,
		c.runDuration,
		c.artifactsExaminedTotal,
		c.artifactsRemovedTotal,
		c.bytesReclaimedTotal,
		c.policiesLoaded,
		c.definitionReloads,
	)

	return c
}

// RecordRun records a completed policy run.
//
// Parameters:
//   - policy: policy name
//   - status: run outcome ("success" or "error")
//   - duration: total run duration
//   - examined: artifacts seen by the rule chain
//   - removed: artifacts deleted (or that would be in dry-run)
//   - bytesReclaimed: total size of removed artifacts
func (c *Collector) RecordRun(policy, status string, duration time.Duration, examined, removed, bytesReclaimed int64) {
	c.runsTotal.WithLabelValues(policy, status).Inc()
	c.runDuration.WithLabelValues(policy).Observe(duration.Seconds())
	c.artifactsExaminedTotal.WithLabelValues(policy).Add(float64(examined))
	c.artifactsRemovedTotal.WithLabelValues(policy).Add(float64(removed))
	c.bytesReclaimedTotal.WithLabelValues(policy).Add(float64(bytesReclaimed))
}

// SetPoliciesLoaded updates the loaded policy count gauge.
func (c *Collector) SetPoliciesLoaded(count int) {
	c.policiesLoaded.Set(float64(count))
}

// RecordReload records a definition reload attempt.
func (c *Collector) RecordReload(success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	c.definitionReloads.WithLabelValues(status).Inc()
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
