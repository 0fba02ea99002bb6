package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"
)

// Store loads and saves the settings file.
//
// The file lives in the user config directory by default
// (~/.config/meetpresence/config.yaml on Linux). A missing file is not an
// error: Load returns the defaults so a fresh installation behaves like an
// unconfigured one rather than a broken one.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the default user config directory.
func NewStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine user config directory: %w", err)
	}
	return NewStoreAt(filepath.Join(base, "meetpresence")), nil
}

// NewStoreAt creates a store rooted at the given directory.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the full path of the settings file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, configName+"."+configType)
}

// Load reads the settings file. When the file does not exist the defaults
// are returned without error.
func (s *Store) Load() (Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(s.dir)

	cfg := Default()
	v.SetDefault("method", string(cfg.Method))
	v.SetDefault("source", string(cfg.Source))
	v.SetDefault("devtools_url", cfg.DevToolsURL)
	v.SetDefault("poll_interval", cfg.PollInterval.String())
	v.SetDefault("account", cfg.Account)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the settings file, creating the config directory if needed.
func (s *Store) Save(cfg Config) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType(configType)
	v.Set("method", string(cfg.Method))
	v.Set("host", cfg.Host)
	v.Set("token", cfg.Token)
	v.Set("entity_id", cfg.EntityID)
	v.Set("webhook_url", cfg.WebhookURL)
	v.Set("source", string(cfg.Source))
	v.Set("devtools_url", cfg.DevToolsURL)
	v.Set("poll_interval", cfg.PollInterval.String())
	v.Set("spaces", cfg.Spaces)
	v.Set("account", cfg.Account)

	if err := v.WriteConfigAs(s.Path()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file carries the access token; keep it private to the user.
	if err := os.Chmod(s.Path(), 0600); err != nil {
		return fmt.Errorf("failed to restrict config file permissions: %w", err)
	}

	return nil
}
