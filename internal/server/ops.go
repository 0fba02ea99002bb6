package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/teemow/meetpresence/internal/instrumentation"
)

const (
	// DefaultOpsAddr is the default address for the ops server.
	DefaultOpsAddr = ":9090"

	// DefaultOpsReadTimeout is the default read header timeout for the ops server.
	DefaultOpsReadTimeout = 10 * time.Second

	// DefaultOpsWriteTimeout is the default write timeout for the ops server.
	DefaultOpsWriteTimeout = 10 * time.Second

	// DefaultOpsIdleTimeout is the default idle timeout for the ops server.
	DefaultOpsIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout is the default timeout for graceful server shutdown.
	DefaultShutdownTimeout = 30 * time.Second
)

// OpsServerConfig holds configuration for the ops server.
type OpsServerConfig struct {
	// Addr is the address to bind the ops server to (e.g., ":9090").
	Addr string

	// InstrumentationProvider provides the Prometheus metrics handler.
	InstrumentationProvider *instrumentation.Provider

	// Health provides the /healthz, /readyz and /statusz endpoints.
	// Optional; when nil only /metrics is served.
	Health *HealthChecker
}

// OpsServer serves Prometheus metrics and health endpoints on a
// dedicated port, away from anything user-facing.
type OpsServer struct {
	httpServer *http.Server
	health     *HealthChecker
	addr       string
}

// NewOpsServer creates a new ops server with the given configuration.
func NewOpsServer(config OpsServerConfig) (*OpsServer, error) {
	if config.Addr == "" {
		config.Addr = DefaultOpsAddr
	}

	if config.InstrumentationProvider == nil {
		return nil, fmt.Errorf("instrumentation provider is required for ops server")
	}

	if !config.InstrumentationProvider.Enabled() {
		return nil, fmt.Errorf("instrumentation provider is not enabled")
	}

	return &OpsServer{
		addr:   config.Addr,
		health: config.Health,
	}, nil
}

// Start starts the ops server in a blocking manner.
// Call this in a goroutine if you need non-blocking operation.
func (s *OpsServer) Start() error {
	s.buildServer()
	slog.Info("starting ops server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// StartWithReadySignal starts the ops server and closes ready once the
// listener is bound, so callers can fail fast on startup errors instead
// of racing the first scrape.
func (s *OpsServer) StartWithReadySignal(ready chan<- struct{}) error {
	s.buildServer()

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind ops server on %s: %w", s.addr, err)
	}

	slog.Info("starting ops server", "addr", s.addr)
	close(ready)
	return s.httpServer.Serve(ln)
}

func (s *OpsServer) buildServer() {
	mux := http.NewServeMux()

	// The OpenTelemetry prometheus exporter registers metrics to the
	// global Prometheus registry, which promhttp.Handler() exposes.
	mux.Handle("/metrics", promhttp.Handler())

	if s.health != nil {
		s.health.RegisterHealthEndpoints(mux)
	} else {
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
	}

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: DefaultOpsReadTimeout,
		WriteTimeout:      DefaultOpsWriteTimeout,
		IdleTimeout:       DefaultOpsIdleTimeout,
	}
}

// Shutdown gracefully shuts down the ops server.
func (s *OpsServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		slog.Info("shutting down ops server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the configured address for the ops server.
func (s *OpsServer) Addr() string {
	return s.addr
}
