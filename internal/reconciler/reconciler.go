package reconciler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/teemow/meetpresence/internal/config"
	"github.com/teemow/meetpresence/internal/homeassistant"
	"github.com/teemow/meetpresence/internal/instrumentation"
	"github.com/teemow/meetpresence/internal/logging"
	"github.com/teemow/meetpresence/internal/retry"
)

// ErrOffline is reported when the connectivity probe fails before a
// delivery. It short-circuits the attempt without consuming retries.
var ErrOffline = errors.New("connectivity probe failed: no network reachability")

// Reconciler is the single authority on "did meeting presence change, and
// if so, act". It compares each observation against the last known
// presence, short-circuits when nothing changed, and otherwise drives the
// indicator and the delivery pipeline.
//
// Reconciliations are serialized with a mutex, so overlapping observations
// can never both act on the same stale state.
type Reconciler struct {
	mu           sync.Mutex
	wasInMeeting *bool // nil until the first observation

	store        ConfigStore
	prober       Prober
	indicator    Indicator
	newDeliverer DelivererFactory
	retryOpts    retry.Options
	metrics      *instrumentation.Metrics
	logger       *slog.Logger
}

// New creates a reconciler with the default deliverer factory and retry
// policy.
func New(store ConfigStore, prober Prober, indicator Indicator) *Reconciler {
	return &Reconciler{
		store:        store,
		prober:       prober,
		indicator:    indicator,
		newDeliverer: homeassistant.NewDeliverer,
		retryOpts:    retry.DefaultOptions(),
		logger:       logging.WithComponent(slog.Default(), "reconciler"),
	}
}

// SetMetrics attaches a metrics recorder. A nil recorder disables metric
// recording.
func (r *Reconciler) SetMetrics(m *instrumentation.Metrics) {
	r.metrics = m
}

// SetRetryOptions overrides the delivery retry policy.
func (r *Reconciler) SetRetryOptions(opts retry.Options) {
	r.retryOpts = opts
}

// SetDelivererFactory overrides how delivery clients are built.
func (r *Reconciler) SetDelivererFactory(f DelivererFactory) {
	r.newDeliverer = f
}

// Last returns the last determined presence. known is false until the
// first observation has been processed.
func (r *Reconciler) Last() (inMeeting bool, known bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.wasInMeeting == nil {
		return false, false
	}
	return *r.wasInMeeting, true
}

// Observe processes one presence observation. It never returns an error
// and never panics outward: the watcher must keep observing indefinitely,
// so every failure ends at the indicator and the log.
func (r *Reconciler) Observe(ctx context.Context, inMeeting bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("reconciliation panicked", slog.Any("panic", rec))
			r.indicator.Set(StatusError)
		}
	}()

	// Idempotent short-circuit: the dominant invariant of this component.
	if r.wasInMeeting != nil && *r.wasInMeeting == inMeeting {
		return
	}

	ctx, span := otel.Tracer("meetpresence/reconciler").Start(ctx, "reconcile",
		trace.WithAttributes(attribute.Bool("presence", inMeeting)))
	defer span.End()

	r.wasInMeeting = &inMeeting
	r.metrics.RecordTransition(ctx, inMeeting)
	r.logger.Info("meeting presence changed", logging.Presence(inMeeting))

	// Optimistic: the indicator reflects the new presence before any
	// network confirmation.
	if inMeeting {
		r.indicator.Set(StatusInMeeting)
	} else {
		r.indicator.Set(StatusIdle)
	}

	cfg, err := r.store.Load()
	if err != nil {
		// Treated like an incomplete configuration: skip quietly so an
		// unconfigured installation does not nag on every observation.
		r.logger.Warn("failed to load config, skipping delivery", logging.Err(err))
		return
	}

	if result := config.Validate(cfg); !result.Valid {
		r.logger.Debug("delivery skipped: configuration incomplete",
			logging.Status(logging.StatusSkipped), slog.Any("errors", result.Errors))
		return
	}

	start := time.Now()
	err = r.deliver(ctx, cfg, inMeeting)
	r.metrics.RecordDelivery(ctx, string(cfg.Method), err == nil, time.Since(start))

	if err != nil {
		// A failed send is not re-driven; the next transition wins.
		r.logger.Error("delivery failed",
			logging.Presence(inMeeting), logging.Method(string(cfg.Method)), logging.Err(err))
		r.indicator.Set(StatusError)
		return
	}

	r.logger.Info("presence delivered",
		logging.Presence(inMeeting), logging.Method(string(cfg.Method)), logging.Status(logging.StatusSuccess))
}

func (r *Reconciler) deliver(ctx context.Context, cfg config.Config, inMeeting bool) error {
	online := r.prober.Online(ctx)
	r.metrics.RecordProbe(ctx, online)
	if !online {
		return ErrOffline
	}

	deliverer, err := r.newDeliverer(cfg)
	if err != nil {
		return err
	}

	return retry.Do(ctx, func() error {
		return deliverer.Deliver(ctx, inMeeting)
	}, r.retryOpts)
}
