// Package metrics exposes the guard's activity as Prometheus metrics.
//
// The guard runs inside an arbitrary host process and serves no network
// endpoint, so metrics are collected into a private registry and, when
// configured, written in the Prometheus text format to a file suitable for
// the node_exporter textfile collector.
//
// Metrics (namespace and subsystem are configurable, default oneshot_guard):
//
//   - protected_names: number of protected names, by source (custom, default)
//   - first_access_total: first reads of a protected name, by origin
//     (getenv, secure_getenv, prestaged) and result (present, absent)
//   - cache_hits_total: reads served from the cache
//   - passthrough_total: reads of unprotected names, by entry point
//   - scrubs_total: scrub outcomes (cleared, exposed, failed)
//   - handoff_total: pre-staged hand-off outcomes (loaded, missing, error)
//   - handoff_entries_total: values loaded from hand-off files
//
// Label values are fixed sets; names of protected variables are never used
// as labels.
package metrics
