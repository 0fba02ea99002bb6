// Package config holds the persisted settings for the presence bridge and
// the single validator every call site depends on.
//
// Settings live in a YAML file under the user config directory and are read
// and written through viper. A missing file is treated as "not configured",
// never as an error, so the watch loop stays quiet on fresh installations.
package config
