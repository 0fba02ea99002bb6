package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Defaults match the delivery path: up to 3 extra attempts with waits of
// 1s, 2s and 4s between them.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = time.Second
)

// Options configures a retry run.
type Options struct {
	// MaxRetries is the number of additional attempts after the first
	// (total attempts = MaxRetries + 1).
	MaxRetries int

	// BaseDelay is the wait before the first retry; subsequent waits
	// double (BaseDelay * 2^attempt), with no jitter.
	BaseDelay time.Duration
}

// DefaultOptions returns the delivery-path defaults.
func DefaultOptions() Options {
	return Options{MaxRetries: DefaultMaxRetries, BaseDelay: DefaultBaseDelay}
}

// Do invokes op, retrying failures with bounded exponential backoff.
// On exhaustion the last error is returned. The context cancels waits
// between attempts.
func Do(ctx context.Context, op func() error, opts Options) error {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.BaseDelay
	b.RandomizationFactor = 0 // deterministic delays
	b.Multiplier = 2
	// Never cap the doubling within the configured retry budget.
	b.MaxInterval = opts.BaseDelay << uint(opts.MaxRetries)

	operation := func() (struct{}, error) {
		return struct{}{}, op()
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(opts.MaxRetries)+1),
	)
	return err
}
