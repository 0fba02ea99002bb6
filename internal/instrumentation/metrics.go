package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrMethod   = "method"
	attrStatus   = "status"
	attrPresence = "presence"
	attrOnline   = "online"
	attrSource   = "source"
)

// Metrics provides methods for recording observability metrics.
// All methods are safe to call on a nil receiver, so callers never have
// to guard for a disabled provider.
type Metrics struct {
	// Presence metrics
	transitionsTotal metric.Int64Counter
	presenceState    metric.Int64Gauge

	// Delivery metrics
	deliveriesTotal  metric.Int64Counter
	deliveryDuration metric.Float64Histogram

	// Connectivity metrics
	probesTotal metric.Int64Counter

	// Presence source metrics
	observationsTotal metric.Int64Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.transitionsTotal, err = meter.Int64Counter(
		"presence_transitions_total",
		metric.WithDescription("Total number of meeting presence transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create presence_transitions_total counter: %w", err)
	}

	m.presenceState, err = meter.Int64Gauge(
		"meeting_presence",
		metric.WithDescription("Current meeting presence (1 = in a meeting, 0 = idle)"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting_presence gauge: %w", err)
	}

	m.deliveriesTotal, err = meter.Int64Counter(
		"deliveries_total",
		metric.WithDescription("Total number of Home Assistant deliveries by method and status"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create deliveries_total counter: %w", err)
	}

	m.deliveryDuration, err = meter.Float64Histogram(
		"delivery_duration_seconds",
		metric.WithDescription("Home Assistant delivery duration in seconds, including retries"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery_duration_seconds histogram: %w", err)
	}

	m.probesTotal, err = meter.Int64Counter(
		"connectivity_probes_total",
		metric.WithDescription("Total number of connectivity probes by outcome"),
		metric.WithUnit("{probe}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create connectivity_probes_total counter: %w", err)
	}

	m.observationsTotal, err = meter.Int64Counter(
		"presence_observations_total",
		metric.WithDescription("Total number of presence observations by source and status"),
		metric.WithUnit("{observation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create presence_observations_total counter: %w", err)
	}

	return m, nil
}

// RecordTransition records a meeting presence transition and updates the
// presence gauge.
func (m *Metrics) RecordTransition(ctx context.Context, inMeeting bool) {
	if m == nil || m.transitionsTotal == nil {
		return // Instrumentation not initialized
	}

	presence := PresenceIdle
	var state int64
	if inMeeting {
		presence = PresenceInMeeting
		state = 1
	}

	m.transitionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrPresence, presence),
	))
	m.presenceState.Record(ctx, state)
}

// RecordDelivery records a Home Assistant delivery with method, outcome,
// and total duration including retries.
func (m *Metrics) RecordDelivery(ctx context.Context, method string, success bool, duration time.Duration) {
	if m == nil || m.deliveriesTotal == nil {
		return // Instrumentation not initialized
	}

	status := StatusError
	if success {
		status = StatusSuccess
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrStatus, status),
	}

	m.deliveriesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.deliveryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordProbe records a connectivity probe outcome.
func (m *Metrics) RecordProbe(ctx context.Context, online bool) {
	if m == nil || m.probesTotal == nil {
		return // Instrumentation not initialized
	}

	m.probesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool(attrOnline, online),
	))
}

// RecordObservation records a presence source observation.
//
// Parameters:
//   - source: presence source name ("browser" or "meet-api")
//   - status: "success" or "error"
func (m *Metrics) RecordObservation(ctx context.Context, source, status string) {
	if m == nil || m.observationsTotal == nil {
		return // Instrumentation not initialized
	}

	m.observationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrSource, source),
		attribute.String(attrStatus, status),
	))
}
