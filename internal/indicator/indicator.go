package indicator

import (
	"log/slog"
	"sync/atomic"

	"github.com/teemow/meetpresence/internal/logging"
	"github.com/teemow/meetpresence/internal/reconciler"
)

// Log writes every status change to the structured log. It is the
// default indicator for a headless daemon.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a logging indicator.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logging.WithComponent(logger, "indicator")}
}

// Set implements reconciler.Indicator.
func (l *Log) Set(status reconciler.Status) {
	switch status {
	case reconciler.StatusError:
		l.logger.Warn("indicator changed", slog.String("indicator", string(status)))
	default:
		l.logger.Info("indicator changed", slog.String("indicator", string(status)))
	}
}

// State remembers the most recent status so other components, like the
// ops server, can report it. The zero value reports an empty status
// until the first Set.
type State struct {
	current atomic.Value // reconciler.Status
}

// Set implements reconciler.Indicator.
func (s *State) Set(status reconciler.Status) {
	s.current.Store(status)
}

// Current returns the last status set, or "" before the first update.
func (s *State) Current() reconciler.Status {
	v := s.current.Load()
	if v == nil {
		return ""
	}
	return v.(reconciler.Status)
}

// Multi fans a status update out to several indicators in order.
type Multi []reconciler.Indicator

// Set implements reconciler.Indicator.
func (m Multi) Set(status reconciler.Status) {
	for _, ind := range m {
		ind.Set(status)
	}
}
