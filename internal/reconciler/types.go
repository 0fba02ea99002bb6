package reconciler

import (
	"context"

	"github.com/teemow/meetpresence/internal/config"
	"github.com/teemow/meetpresence/internal/homeassistant"
)

// Status is the conceptual indicator state. How the three states are
// rendered (badge text, colors, log lines, gauges) is up to the Indicator
// implementation; they only have to stay distinguishable.
type Status string

const (
	StatusInMeeting Status = "in-meeting"
	StatusIdle      Status = "idle"
	StatusError     Status = "error"
)

// Indicator receives status updates from the reconciler. Implementations
// must be safe for calls from the reconciliation goroutine.
type Indicator interface {
	Set(status Status)
}

// ConfigStore loads the current settings. The file-backed store in the
// config package implements it; tests substitute fixtures.
type ConfigStore interface {
	Load() (config.Config, error)
}

// Prober is the connectivity gate consulted before any delivery.
type Prober interface {
	Online(ctx context.Context) bool
}

// DelivererFactory builds a delivery client for a validated config.
// The default is homeassistant.NewDeliverer.
type DelivererFactory func(cfg config.Config) (homeassistant.Deliverer, error)
