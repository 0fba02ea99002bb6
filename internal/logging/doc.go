// Package logging provides structured logging helpers built on log/slog.
//
// It defines the canonical attribute keys used across the codebase so that
// log output stays greppable, plus sanitizers for values that must never
// reach log storage verbatim (the Home Assistant access token, webhook URLs).
package logging
