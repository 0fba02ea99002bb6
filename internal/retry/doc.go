// Package retry wraps an operation with bounded exponential backoff.
//
// It is a thin layer over github.com/cenkalti/backoff with jitter disabled,
// so the wait sequence is exactly base, 2*base, 4*base, ... between
// attempts. The delivery client composes this around its HTTP calls; the
// connection test path deliberately does not.
package retry
