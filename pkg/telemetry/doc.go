// Package telemetry groups the guard's diagnostics.
//
// # Components
//
//   - logging: slog loggers whose output never carries a full cached value
//   - metrics: Prometheus counters for registry, cache, scrub and hand-off events
//
// Diagnostics go to stderr, separate from the guarded program's own output.
// Metrics have no HTTP endpoint; a short-lived process writes them to a
// node_exporter textfile instead:
//
//	collector := metrics.NewCollector(&cfg.Metrics, prometheus.NewRegistry())
//	defer collector.WriteTextfile("")
package telemetry
