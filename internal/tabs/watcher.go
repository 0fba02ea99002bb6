package tabs

import (
	"context"
	"log/slog"
	"time"

	"github.com/teemow/meetpresence/internal/logging"
)

// Source answers the single question the reconciler cares about.
// The browser client and the Meet API client both implement it.
type Source interface {
	InMeeting(ctx context.Context) (bool, error)
}

// Handler receives one presence observation per poll.
type Handler func(ctx context.Context, inMeeting bool)

// Watcher periodically observes a presence source and hands each
// observation to its handler. Observation errors (browser not running,
// devtools port closed) are logged and skipped so a temporarily absent
// browser does not flap the presence state.
type Watcher struct {
	source   Source
	interval time.Duration
	handler  Handler
	logger   *slog.Logger
}

// NewWatcher creates a watcher polling source every interval.
func NewWatcher(source Source, interval time.Duration, handler Handler) *Watcher {
	return &Watcher{
		source:   source,
		interval: interval,
		handler:  handler,
		logger:   logging.WithComponent(slog.Default(), "watcher"),
	}
}

// Run observes once immediately, then on every tick until the context is
// cancelled. It only returns the context's error.
func (w *Watcher) Run(ctx context.Context) error {
	w.observe(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.observe(ctx)
		}
	}
}

func (w *Watcher) observe(ctx context.Context) {
	inMeeting, err := w.source.InMeeting(ctx)
	if err != nil {
		w.logger.Debug("presence observation failed", logging.Err(err))
		return
	}
	w.handler(ctx, inMeeting)
}
