// Package indicator renders reconciler status updates.
//
// A browser extension would flip a toolbar badge; the daemon equivalents
// are a log line (Log), a queryable last-known status (State), and a
// fan-out over both (Multi).
package indicator
