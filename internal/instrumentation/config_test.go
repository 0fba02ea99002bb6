package instrumentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "meetpresence", cfg.ServiceName)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, ExporterPrometheus, cfg.MetricsExporter)
	assert.Equal(t, ExporterNone, cfg.TracingExporter)
	assert.Equal(t, 0.1, cfg.TraceSamplingRate)
	assert.Equal(t, "/metrics", cfg.PrometheusEndpoint)
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "presence-test")
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.5")

	cfg := DefaultConfig()

	assert.Equal(t, "presence-test", cfg.ServiceName)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, ExporterStdout, cfg.MetricsExporter)
	assert.Equal(t, 0.5, cfg.TraceSamplingRate)
}

func TestDefaultConfigIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "not-a-bool")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "not-a-float")

	cfg := DefaultConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 0.1, cfg.TraceSamplingRate)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name: "sampling rate out of range",
			mutate: func(c *Config) {
				c.TraceSamplingRate = 1.5
			},
			wantErr: "trace sampling rate",
		},
		{
			name: "unknown metrics exporter",
			mutate: func(c *Config) {
				c.MetricsExporter = "graphite"
			},
			wantErr: "invalid metrics exporter",
		},
		{
			name: "unknown tracing exporter",
			mutate: func(c *Config) {
				c.TracingExporter = "jaeger"
			},
			wantErr: "invalid tracing exporter",
		},
		{
			name: "otlp metrics without endpoint",
			mutate: func(c *Config) {
				c.MetricsExporter = ExporterOTLP
			},
			wantErr: "OTLP endpoint is required",
		},
		{
			name: "otlp tracing without endpoint",
			mutate: func(c *Config) {
				c.TracingExporter = ExporterOTLP
			},
			wantErr: "OTLP endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
