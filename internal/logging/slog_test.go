package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{
			name:     "empty token",
			token:    "",
			expected: "<empty>",
		},
		{
			name:     "short token",
			token:    "abc",
			expected: "[token:3 chars]",
		},
		{
			name:     "long lived access token",
			token:    "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.payload.signature",
			expected: "[token:54 chars]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeToken(tt.token))
		})
	}
}

func TestSanitizeTokenNeverEchoesContent(t *testing.T) {
	token := "super-secret-token"
	sanitized := SanitizeToken(token)
	assert.NotContains(t, sanitized, "super")
	assert.NotContains(t, sanitized, "secret")
}

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "empty",
			url:      "",
			expected: "<empty>",
		},
		{
			name:     "host only",
			url:      "http://ha.local:8123",
			expected: "http://ha.local:8123",
		},
		{
			name:     "webhook path is masked",
			url:      "https://ha.example.com/api/webhook/abcdef123456",
			expected: "https://ha.example.com/...",
		},
		{
			name:     "root path",
			url:      "https://ha.example.com/",
			expected: "https://ha.example.com",
		},
		{
			name:     "not a url",
			url:      "::::",
			expected: "<invalid url>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeURL(tt.url))
		})
	}
}

func TestErrWithNilError(t *testing.T) {
	// Err(nil) must return an attribute that slog omits from output
	attr := Err(nil)
	assert.Equal(t, "", attr.Key)
}
