package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	}, Options{MaxRetries: 3, BaseDelay: time.Millisecond})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoStopsRetryingAfterSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, Options{MaxRetries: 3, BaseDelay: time.Millisecond})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoBoundsAttemptsAndReturnsLastError(t *testing.T) {
	calls := 0
	lastErr := errors.New("still failing")
	err := Do(context.Background(), func() error {
		calls++
		return lastErr
	}, Options{MaxRetries: 3, BaseDelay: time.Millisecond})

	// MaxRetries=3 means at most 4 total attempts.
	assert.Equal(t, 4, calls)
	assert.ErrorContains(t, err, "still failing")
}

func TestDoWaitsExponentially(t *testing.T) {
	base := 10 * time.Millisecond

	start := time.Now()
	err := Do(context.Background(), func() error {
		return errors.New("nope")
	}, Options{MaxRetries: 3, BaseDelay: base})
	elapsed := time.Since(start)

	require.Error(t, err)
	// Waits of base, 2*base and 4*base must have happened: 7*base total.
	assert.GreaterOrEqual(t, elapsed, 7*base)
}

func TestDoContextCancelsBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	calls := 0
	start := time.Now()
	err := Do(ctx, func() error {
		calls++
		return errors.New("nope")
	}, Options{MaxRetries: 5, BaseDelay: time.Minute})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestDoZeroValueOptionsGetDefaults(t *testing.T) {
	// A zero BaseDelay must not mean busy-looping; it falls back to the
	// default. MaxRetries 0 means a single attempt.
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return errors.New("nope")
	}, Options{MaxRetries: 0, BaseDelay: time.Millisecond})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
