package config

import "time"

// Method selects the wire strategy used to push state to Home Assistant.
type Method string

const (
	// MethodAPI pushes state through the Home Assistant REST API using a
	// long-lived access token.
	MethodAPI Method = "api"

	// MethodWebhook pushes state through a Home Assistant webhook trigger.
	MethodWebhook Method = "webhook"
)

// Source selects how meeting presence is observed.
type Source string

const (
	// SourceBrowser queries open browser tabs via the Chrome DevTools
	// HTTP endpoint and matches them against the Meet call URL pattern.
	SourceBrowser Source = "browser"

	// SourceMeetAPI asks the Google Meet API whether any of the configured
	// spaces currently has an active conference.
	SourceMeetAPI Source = "meet-api"
)

// TokenPlaceholder is the example value shown in documentation and the
// generated config file. A token equal to this value is treated as unset.
const TokenPlaceholder = "YOUR_LONG_LIVED_ACCESS_TOKEN"

// Default daemon settings.
const (
	DefaultDevToolsURL  = "http://localhost:9222"
	DefaultPollInterval = 5 * time.Second
	DefaultAccount      = "default"
)

// Config holds the persisted settings for the presence bridge.
//
// Exactly one of the two delivery field groups is meaningful, selected by
// Method: (Host, Token, EntityID) for the API, WebhookURL for the webhook.
type Config struct {
	// Method selects the delivery strategy: "api" or "webhook".
	Method Method `mapstructure:"method"`

	// Host is the Home Assistant base URL, e.g. "http://homeassistant.local:8123".
	Host string `mapstructure:"host"`

	// Token is a Home Assistant long-lived access token.
	Token string `mapstructure:"token"`

	// EntityID is the entity to drive, e.g. "input_boolean.in_meeting".
	EntityID string `mapstructure:"entity_id"`

	// WebhookURL is the full webhook endpoint, including the webhook id.
	WebhookURL string `mapstructure:"webhook_url"`

	// Source selects the presence source: "browser" or "meet-api".
	Source Source `mapstructure:"source"`

	// DevToolsURL is the Chrome DevTools HTTP endpoint queried for open tabs.
	DevToolsURL string `mapstructure:"devtools_url"`

	// PollInterval is how often presence is re-observed.
	PollInterval time.Duration `mapstructure:"poll_interval"`

	// Spaces lists Google Meet space resource names checked by the
	// meet-api source, e.g. "spaces/abcdefghijk".
	Spaces []string `mapstructure:"spaces"`

	// Account is the Google account name used by the meet-api source.
	Account string `mapstructure:"account"`
}

// Default returns the configuration used when no config file exists yet.
// The delivery fields are intentionally empty; the validator reports them
// as "not configured" until the user runs the configure command.
func Default() Config {
	return Config{
		Method:       MethodAPI,
		Source:       SourceBrowser,
		DevToolsURL:  DefaultDevToolsURL,
		PollInterval: DefaultPollInterval,
		Account:      DefaultAccount,
	}
}
