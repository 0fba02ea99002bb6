package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFirstRun(t *testing.T) {
	// Entirely empty delivery settings must produce exactly the single
	// "not configured" error, regardless of method.
	for _, method := range []Method{MethodAPI, MethodWebhook, ""} {
		cfg := Config{Method: method}
		result := Validate(cfg)

		assert.False(t, result.Valid)
		assert.Equal(t, []string{ErrNotConfigured}, result.Errors)
	}
}

func TestValidateAPI(t *testing.T) {
	valid := Config{
		Method:   MethodAPI,
		Host:     "http://homeassistant.local:8123",
		Token:    "abc123",
		EntityID: "input_boolean.in_meeting",
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		expected []string
	}{
		{
			name:     "complete config",
			mutate:   func(*Config) {},
			expected: nil,
		},
		{
			name:     "https host",
			mutate:   func(c *Config) { c.Host = "https://ha.example.com" },
			expected: nil,
		},
		{
			name:     "missing host",
			mutate:   func(c *Config) { c.Host = "" },
			expected: []string{ErrHostRequired},
		},
		{
			name:     "host without scheme",
			mutate:   func(c *Config) { c.Host = "homeassistant.local:8123" },
			expected: []string{ErrHostScheme},
		},
		{
			name:     "missing entity id",
			mutate:   func(c *Config) { c.EntityID = "" },
			expected: []string{ErrEntityIDRequired},
		},
		{
			name:     "missing token",
			mutate:   func(c *Config) { c.Token = "" },
			expected: []string{ErrTokenRequired},
		},
		{
			name:     "placeholder token",
			mutate:   func(c *Config) { c.Token = TokenPlaceholder },
			expected: []string{ErrTokenPlaceholder},
		},
		{
			name: "multiple errors accumulate",
			mutate: func(c *Config) {
				c.Host = "ha.local"
				c.EntityID = ""
				c.Token = TokenPlaceholder
			},
			expected: []string{ErrHostScheme, ErrEntityIDRequired, ErrTokenPlaceholder},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			result := Validate(cfg)
			assert.Equal(t, len(tt.expected) == 0, result.Valid)
			assert.Equal(t, tt.expected, result.Errors)
		})
	}
}

func TestValidateWebhook(t *testing.T) {
	cfg := Config{Method: MethodWebhook, WebhookURL: "https://ha.example.com/api/webhook/abc"}
	result := Validate(cfg)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	// A webhook config with a leftover token but no URL is misconfigured,
	// not first-run.
	cfg = Config{Method: MethodWebhook, Token: "leftover"}
	result = Validate(cfg)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{ErrWebhookURLRequired}, result.Errors)
}

func TestValidateUnknownMethod(t *testing.T) {
	cfg := Config{Method: "mqtt", Host: "http://ha.local", Token: "abc"}
	result := Validate(cfg)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{ErrUnknownMethod}, result.Errors)
}
