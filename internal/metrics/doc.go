// Package metrics records calculation metrics. Recorder exports Prometheus
// series to a node_exporter textfile and MemoryCollector reads runtime
// memory statistics for the --details report.
package metrics
