// Package instrumentation provides OpenTelemetry instrumentation for the
// meetpresence daemon.
//
// It wires metrics and tracing through a single Provider:
//   - Prometheus metrics export via the /metrics endpoint (default)
//   - OTLP and stdout exporters for metrics and traces
//   - env-driven configuration (OTEL_*, METRICS_EXPORTER, TRACING_EXPORTER)
//
// # Metrics
//
// Presence:
//   - presence_transitions_total: Counter of presence transitions by direction
//   - meeting_presence: Gauge of the current presence (1 in a meeting, 0 idle)
//   - presence_observations_total: Counter of source observations by source and status
//
// Delivery:
//   - deliveries_total: Counter of Home Assistant deliveries by method and status
//   - delivery_duration_seconds: Histogram of delivery durations including retries
//
// Connectivity:
//   - connectivity_probes_total: Counter of probe outcomes
//
// All Metrics methods are nil-safe, so a disabled provider costs callers
// nothing but the method call.
package instrumentation
