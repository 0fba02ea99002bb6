// Package server hosts the operational HTTP surface of the daemon.
//
// The OpsServer binds a dedicated port (default :9090) serving Prometheus
// metrics on /metrics plus the /healthz, /readyz and /statusz endpoints
// from the HealthChecker. The watch loop marks readiness once the first
// observation cycle is running.
package server
