package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLoadMissingFileReturnsDefaults(t *testing.T) {
	store := NewStoreAt(t.TempDir())

	cfg, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, MethodAPI, cfg.Method)
	assert.Equal(t, SourceBrowser, cfg.Source)
	assert.Equal(t, DefaultDevToolsURL, cfg.DevToolsURL)
	assert.Equal(t, DefaultPollInterval, cfg.PollInterval)
	assert.Empty(t, cfg.Host)
	assert.Empty(t, cfg.Token)
	assert.Empty(t, cfg.WebhookURL)
}

func TestStoreSaveAndLoadRoundTrip(t *testing.T) {
	store := NewStoreAt(t.TempDir())

	want := Config{
		Method:       MethodWebhook,
		WebhookURL:   "https://ha.example.com/api/webhook/abc",
		Source:       SourceMeetAPI,
		DevToolsURL:  "http://localhost:9333",
		PollInterval: 10 * time.Second,
		Spaces:       []string{"spaces/abcdefghijk"},
		Account:      "work",
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStoreSaveRestrictsPermissions(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "nested"))

	cfg := Default()
	cfg.Method = MethodAPI
	cfg.Host = "http://ha.local:8123"
	cfg.Token = "secret"
	cfg.EntityID = "input_boolean.in_meeting"
	require.NoError(t, store.Save(cfg))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStoreLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreAt(dir)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not yaml:::"), 0600))

	_, err := store.Load()
	assert.Error(t, err)
}
