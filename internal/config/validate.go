package config

import "strings"

// Validator error messages. The automatic path only cares about Valid;
// the configure and test commands show these to the user verbatim.
const (
	ErrNotConfigured      = "not configured yet; run 'meetpresence configure' first"
	ErrHostRequired       = "host is required for the api method"
	ErrHostScheme         = "host must start with http:// or https://"
	ErrEntityIDRequired   = "entity_id is required for the api method"
	ErrTokenRequired      = "token is required for the api method"
	ErrTokenPlaceholder   = "token is still set to the placeholder value"
	ErrWebhookURLRequired = "webhook_url is required for the webhook method"
	ErrUnknownMethod      = "method must be either \"api\" or \"webhook\""
)

// Result is the outcome of validating a Config.
type Result struct {
	Valid  bool
	Errors []string
}

// Validate checks a Config for completeness. It is a pure function: every
// call site (save path, test path, watch path) depends on it instead of
// re-deriving the rules.
//
// An entirely empty delivery configuration is reported as the single
// "not configured" error so a fresh installation is distinguishable from a
// misconfigured one.
func Validate(cfg Config) Result {
	// First-run short-circuit: nothing was ever configured.
	if cfg.Host == "" && cfg.Token == "" && cfg.WebhookURL == "" {
		return Result{Valid: false, Errors: []string{ErrNotConfigured}}
	}

	var errs []string

	switch cfg.Method {
	case MethodAPI:
		if cfg.Host == "" {
			errs = append(errs, ErrHostRequired)
		} else if !strings.HasPrefix(cfg.Host, "http://") && !strings.HasPrefix(cfg.Host, "https://") {
			errs = append(errs, ErrHostScheme)
		}
		if cfg.EntityID == "" {
			errs = append(errs, ErrEntityIDRequired)
		}
		if cfg.Token == "" {
			errs = append(errs, ErrTokenRequired)
		} else if cfg.Token == TokenPlaceholder {
			errs = append(errs, ErrTokenPlaceholder)
		}
	case MethodWebhook:
		if cfg.WebhookURL == "" {
			errs = append(errs, ErrWebhookURLRequired)
		}
	default:
		errs = append(errs, ErrUnknownMethod)
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
