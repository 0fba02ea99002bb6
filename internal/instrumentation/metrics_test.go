package instrumentation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
)

func testMetrics(t *testing.T) *Metrics {
	t.Helper()
	provider := metric.NewMeterProvider(metric.WithReader(metric.NewManualReader()))
	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	m, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return m
}

func TestMetricsRecording(t *testing.T) {
	m := testMetrics(t)
	ctx := context.Background()

	// Nothing to assert beyond "does not panic"; the SDK owns aggregation.
	m.RecordTransition(ctx, true)
	m.RecordTransition(ctx, false)
	m.RecordDelivery(ctx, "webhook", true, 120*time.Millisecond)
	m.RecordDelivery(ctx, "api", false, 7*time.Second)
	m.RecordProbe(ctx, true)
	m.RecordProbe(ctx, false)
	m.RecordObservation(ctx, "browser", StatusSuccess)
	m.RecordObservation(ctx, "meet-api", StatusError)
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordTransition(ctx, true)
		m.RecordDelivery(ctx, "api", true, time.Second)
		m.RecordProbe(ctx, false)
		m.RecordObservation(ctx, "browser", StatusSuccess)
	})
}

func TestMetricsZeroValueIsSafe(t *testing.T) {
	m := &Metrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordTransition(ctx, false)
		m.RecordDelivery(ctx, "webhook", false, time.Second)
		m.RecordProbe(ctx, true)
		m.RecordObservation(ctx, "meet-api", StatusError)
	})
}
