// Package telemetry groups the observability concerns of daemon mode.
//
// # Components
//
//   - logging: builds the process logger from the logging configuration
//   - metrics: Prometheus metrics for cleanup runs and definition reloads
//   - health: liveness and readiness endpoints
//
// One-shot commands only use logging; the metrics and health endpoints are
// served by the daemon alongside the scheduler.
package telemetry
