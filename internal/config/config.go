// Package config loads server configuration from an optional YAML file
// with environment variable overrides. Every field has a usable default so
// the server starts with no configuration at all.
package config

import (
	"fmt"
	"os"
	"time"

	yaml "go.yaml.in/yaml/v3"
)

// Config holds the server configuration.
type Config struct {
	Env        string   `yaml:"env"`
	Addr       string   `yaml:"addr"`
	DBPath     string   `yaml:"db_path"`
	StorageKey string   `yaml:"storage_key"`
	Autosave   Duration `yaml:"autosave_interval"`
	LogLevel   string   `yaml:"log_level"`
	CSRFKey    string   `yaml:"csrf_key"`
}

// Duration wraps time.Duration so YAML configs can use Go duration strings
// (e.g. "30s", "1m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Env:        "development",
		Addr:       ":8080",
		DBPath:     "arenaboard.db",
		StorageKey: "bourgo_arena_planning",
		Autosave:   Duration(30 * time.Second),
		LogLevel:   "info",
	}
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist), then applies ARENA_* environment overrides.
// POST: Returns a complete config; only a malformed file is an error
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Env = envOrDefault("ARENA_ENV", cfg.Env)
	cfg.Addr = envOrDefault("ARENA_ADDR", cfg.Addr)
	cfg.DBPath = envOrDefault("ARENA_DB_PATH", cfg.DBPath)
	cfg.StorageKey = envOrDefault("ARENA_STORAGE_KEY", cfg.StorageKey)
	cfg.LogLevel = envOrDefault("ARENA_LOG_LEVEL", cfg.LogLevel)
	cfg.CSRFKey = envOrDefault("ARENA_CSRF_KEY", cfg.CSRFKey)
	if raw := os.Getenv("ARENA_AUTOSAVE_INTERVAL"); raw != "" {
		v, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid ARENA_AUTOSAVE_INTERVAL %q: %w", raw, err)
		}
		cfg.Autosave = Duration(v)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
