package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults and
// environment overrides, and validates the result. A missing file is not
// an error: the tool runs fine on defaults and flags alone.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse configuration file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read configuration file %q: %w", path, err)
	}
	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides applies ANGLER_* environment variables on top of the
// file values. Environment always wins over the file.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("ANGLER_INPUT"); val != "" {
		cfg.Input = val
	}
	if val := os.Getenv("ANGLER_OUTPUT"); val != "" {
		cfg.Output = val
	}
	if val := os.Getenv("ANGLER_SIMPLIFY"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Convert.Simplify = b
		}
	}
	if val := os.Getenv("ANGLER_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Watch = b
		}
	}
	if val := os.Getenv("ANGLER_LOG_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("ANGLER_LOG_FORMAT"); val != "" {
		cfg.Logging.Format = val
	}
}
