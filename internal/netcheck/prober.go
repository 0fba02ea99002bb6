package netcheck

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/teemow/meetpresence/internal/logging"
)

// DefaultProbeURL is a stable, always-available endpoint that answers HEAD
// requests cheaply. 204 responses carry no body at all.
const DefaultProbeURL = "https://www.gstatic.com/generate_204"

// DefaultTimeout bounds how long a single probe may take.
const DefaultTimeout = 5 * time.Second

// Prober performs a lightweight reachability check. It answers the question
// "are we online at all", which is distinct from "is the delivery target
// failing": a failed probe skips delivery entirely without consuming a
// retry cycle.
type Prober struct {
	url    string
	client *http.Client
}

// New creates a prober against DefaultProbeURL with DefaultTimeout.
func New() *Prober {
	return NewWithURL(DefaultProbeURL)
}

// NewWithURL creates a prober against the given endpoint.
func NewWithURL(url string) *Prober {
	return &Prober{
		url:    url,
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// Online reports whether the probe endpoint is reachable. Any completed
// HTTP exchange counts as online; only transport-level failures count as
// offline.
func (p *Prober) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		slog.Debug("connectivity probe request could not be built", logging.Err(err))
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		slog.Debug("connectivity probe failed", logging.Err(err))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return true
}
