package instrumentation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false

	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.NotNil(t, p.Metrics(), "disabled provider still hands out a no-op recorder")
	assert.NotNil(t, p.Tracer("test"))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProviderPrometheus(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsExporter = ExporterPrometheus
	cfg.TracingExporter = ExporterNone

	p, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	defer func() {
		_ = p.Shutdown(context.Background())
	}()

	assert.True(t, p.Enabled())
	assert.NotNil(t, p.Metrics())
}

func TestNewProviderRejectsUnknownExporter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsExporter = "graphite"

	_, err := NewProvider(context.Background(), cfg)
	assert.ErrorContains(t, err, "unsupported metrics exporter")
}

func TestNewProviderOTLPWithoutEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MetricsExporter = ExporterOTLP
	cfg.OTLPEndpoint = ""

	_, err := NewProvider(context.Background(), cfg)
	assert.ErrorContains(t, err, "OTLP endpoint is required")
}
