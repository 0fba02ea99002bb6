package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Health status constants for health check responses.
const (
	healthStatusOK       = "ok"
	healthStatusNotReady = "not ready"
)

// StatusFunc reports the current indicator status for the /statusz
// endpoint. It may be nil.
type StatusFunc func() string

// HealthChecker provides health check endpoints for liveness and
// readiness probes.
type HealthChecker struct {
	// ready indicates whether the daemon is ready, meaning the watcher
	// has been started
	ready atomic.Bool
	// status reports the current indicator status
	status StatusFunc
	// startTime tracks when the daemon started
	startTime time.Time
}

// NewHealthChecker creates a new HealthChecker. The daemon starts out
// not ready; the watch loop flips it once observation begins.
func NewHealthChecker(status StatusFunc) *HealthChecker {
	return &HealthChecker{
		status:    status,
		startTime: time.Now(),
	}
}

// SetReady sets the readiness state of the daemon.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady returns whether the daemon is ready.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

// HealthResponse represents the JSON response for health endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// StatusResponse reports daemon state for the /statusz endpoint.
type StatusResponse struct {
	Status   string `json:"status"`
	Presence string `json:"presence,omitempty"`
	Uptime   string `json:"uptime"`
}

// LivenessHandler returns an HTTP handler for the /healthz endpoint.
// Liveness only asserts that the process is running.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: healthStatusOK,
		})
	})
}

// ReadinessHandler returns an HTTP handler for the /readyz endpoint.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		checks := make(map[string]string)
		response := HealthResponse{Checks: checks}

		if h.ready.Load() {
			checks["watcher"] = healthStatusOK
			response.Status = healthStatusOK
			w.WriteHeader(http.StatusOK)
		} else {
			checks["watcher"] = healthStatusNotReady
			response.Status = healthStatusNotReady
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		_ = json.NewEncoder(w).Encode(response)
	})
}

// StatusHandler returns an HTTP handler for the /statusz endpoint. It
// reports the current indicator status and daemon uptime.
func (h *HealthChecker) StatusHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		response := StatusResponse{
			Status: healthStatusOK,
			Uptime: time.Since(h.startTime).Truncate(time.Second).String(),
		}
		if h.status != nil {
			response.Presence = h.status()
		}

		if !h.ready.Load() {
			response.Status = healthStatusNotReady
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(response)
	})
}

// RegisterHealthEndpoints registers health check endpoints on the given mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
	mux.Handle("/statusz", h.StatusHandler())
}
