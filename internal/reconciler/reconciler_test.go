package reconciler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/meetpresence/internal/config"
	"github.com/teemow/meetpresence/internal/homeassistant"
	"github.com/teemow/meetpresence/internal/retry"
)

type fakeStore struct {
	cfg config.Config
	err error
}

func (s *fakeStore) Load() (config.Config, error) {
	return s.cfg, s.err
}

type fakeProber struct {
	online bool
}

func (p *fakeProber) Online(context.Context) bool {
	return p.online
}

type fakeIndicator struct {
	history []Status
}

func (i *fakeIndicator) Set(status Status) {
	i.history = append(i.history, status)
}

func (i *fakeIndicator) last() Status {
	if len(i.history) == 0 {
		return ""
	}
	return i.history[len(i.history)-1]
}

type fakeDeliverer struct {
	deliveries []bool
	errs       []error
}

func (d *fakeDeliverer) Deliver(_ context.Context, inMeeting bool) error {
	i := len(d.deliveries)
	d.deliveries = append(d.deliveries, inMeeting)
	if i < len(d.errs) {
		return d.errs[i]
	}
	return nil
}

func webhookConfig() config.Config {
	cfg := config.Default()
	cfg.Method = config.MethodWebhook
	cfg.WebhookURL = "https://ha.example/api/webhook/meet"
	return cfg
}

func fastRetry() retry.Options {
	return retry.Options{MaxRetries: retry.DefaultMaxRetries, BaseDelay: time.Millisecond}
}

func newTestReconciler(store ConfigStore, prober Prober, deliverer homeassistant.Deliverer) (*Reconciler, *fakeIndicator) {
	ind := &fakeIndicator{}
	r := New(store, prober, ind)
	r.SetRetryOptions(fastRetry())
	r.SetDelivererFactory(func(config.Config) (homeassistant.Deliverer, error) {
		return deliverer, nil
	})
	return r, ind
}

func TestObserveDeliversOnFirstObservation(t *testing.T) {
	// Startup with no meeting open: the unknown initial state still counts
	// as a transition, so "off" is delivered once.
	del := &fakeDeliverer{}
	r, ind := newTestReconciler(&fakeStore{cfg: webhookConfig()}, &fakeProber{online: true}, del)

	r.Observe(context.Background(), false)

	assert.Equal(t, []bool{false}, del.deliveries)
	assert.Equal(t, StatusIdle, ind.last())

	inMeeting, known := r.Last()
	require.True(t, known)
	assert.False(t, inMeeting)
}

func TestObserveIsIdempotent(t *testing.T) {
	del := &fakeDeliverer{}
	r, ind := newTestReconciler(&fakeStore{cfg: webhookConfig()}, &fakeProber{online: true}, del)

	r.Observe(context.Background(), true)
	r.Observe(context.Background(), true)
	r.Observe(context.Background(), true)

	assert.Equal(t, []bool{true}, del.deliveries, "repeated identical observations must not re-deliver")
	assert.Equal(t, []Status{StatusInMeeting}, ind.history)
}

func TestObserveDetectsTransitions(t *testing.T) {
	del := &fakeDeliverer{}
	r, ind := newTestReconciler(&fakeStore{cfg: webhookConfig()}, &fakeProber{online: true}, del)

	r.Observe(context.Background(), true)
	r.Observe(context.Background(), false)
	r.Observe(context.Background(), false)
	r.Observe(context.Background(), true)

	assert.Equal(t, []bool{true, false, true}, del.deliveries)
	assert.Equal(t, []Status{StatusInMeeting, StatusIdle, StatusInMeeting}, ind.history)
}

func TestObserveSkipsDeliveryWhenUnconfigured(t *testing.T) {
	// Fresh install: presence tracking works, nothing is sent, and no
	// error status is shown.
	del := &fakeDeliverer{}
	r, ind := newTestReconciler(&fakeStore{cfg: config.Default()}, &fakeProber{online: true}, del)

	r.Observe(context.Background(), true)
	r.Observe(context.Background(), false)

	assert.Empty(t, del.deliveries)
	assert.Equal(t, []Status{StatusInMeeting, StatusIdle}, ind.history)
}

func TestObserveSkipsDeliveryOnConfigLoadError(t *testing.T) {
	del := &fakeDeliverer{}
	r, ind := newTestReconciler(&fakeStore{err: errors.New("corrupt config file")}, &fakeProber{online: true}, del)

	r.Observe(context.Background(), true)

	assert.Empty(t, del.deliveries)
	assert.Equal(t, StatusInMeeting, ind.last(), "config problems never surface as an error status")
}

func TestObserveShowsErrorWhenOffline(t *testing.T) {
	del := &fakeDeliverer{}
	r, ind := newTestReconciler(&fakeStore{cfg: webhookConfig()}, &fakeProber{online: false}, del)

	r.Observe(context.Background(), true)

	assert.Empty(t, del.deliveries, "offline must short-circuit before any delivery attempt")
	assert.Equal(t, []Status{StatusInMeeting, StatusError}, ind.history)

	inMeeting, known := r.Last()
	require.True(t, known)
	assert.True(t, inMeeting, "tracked presence survives a failed delivery")
}

func TestObserveRetriesThenShowsError(t *testing.T) {
	failure := errors.New("service unavailable")
	del := &fakeDeliverer{errs: []error{failure, failure, failure, failure}}
	r, ind := newTestReconciler(&fakeStore{cfg: webhookConfig()}, &fakeProber{online: true}, del)

	r.Observe(context.Background(), true)

	assert.Len(t, del.deliveries, 4, "initial attempt plus three retries")
	assert.Equal(t, []Status{StatusInMeeting, StatusError}, ind.history)
}

func TestObserveRecoversAfterRetry(t *testing.T) {
	del := &fakeDeliverer{errs: []error{errors.New("timeout"), nil}}
	r, ind := newTestReconciler(&fakeStore{cfg: webhookConfig()}, &fakeProber{online: true}, del)

	r.Observe(context.Background(), true)

	assert.Len(t, del.deliveries, 2)
	assert.Equal(t, []Status{StatusInMeeting}, ind.history, "a recovered delivery leaves the presence status in place")
}

func TestObserveFailedSendIsNotRedriven(t *testing.T) {
	failure := errors.New("unreachable")
	del := &fakeDeliverer{errs: []error{failure, failure, failure, failure}}
	r, _ := newTestReconciler(&fakeStore{cfg: webhookConfig()}, &fakeProber{online: true}, del)

	r.Observe(context.Background(), true)
	attempts := len(del.deliveries)

	// The same presence again: no catch-up delivery for the lost send.
	r.Observe(context.Background(), true)
	assert.Equal(t, attempts, len(del.deliveries))

	// Only the next transition triggers delivery again.
	r.Observe(context.Background(), false)
	assert.Equal(t, attempts+1, len(del.deliveries))
	assert.False(t, del.deliveries[len(del.deliveries)-1])
}

func TestObserveDelivererFactoryError(t *testing.T) {
	ind := &fakeIndicator{}
	r := New(&fakeStore{cfg: webhookConfig()}, &fakeProber{online: true}, ind)
	r.SetRetryOptions(fastRetry())
	r.SetDelivererFactory(func(config.Config) (homeassistant.Deliverer, error) {
		return nil, errors.New("unknown delivery method")
	})

	r.Observe(context.Background(), true)

	assert.Equal(t, []Status{StatusInMeeting, StatusError}, ind.history)
}

func TestObserveRecoversFromPanic(t *testing.T) {
	ind := &fakeIndicator{}
	r := New(&fakeStore{cfg: webhookConfig()}, &fakeProber{online: true}, ind)
	r.SetRetryOptions(fastRetry())
	r.SetDelivererFactory(func(config.Config) (homeassistant.Deliverer, error) {
		panic("boom")
	})

	assert.NotPanics(t, func() {
		r.Observe(context.Background(), true)
	})
	assert.Equal(t, StatusError, ind.last())

	// The reconciler keeps working after the panic.
	r.SetDelivererFactory(func(config.Config) (homeassistant.Deliverer, error) {
		return &fakeDeliverer{}, nil
	})
	assert.NotPanics(t, func() {
		r.Observe(context.Background(), false)
	})
}

func TestLastBeforeFirstObservation(t *testing.T) {
	r, _ := newTestReconciler(&fakeStore{cfg: webhookConfig()}, &fakeProber{online: true}, &fakeDeliverer{})

	_, known := r.Last()
	assert.False(t, known)
}
