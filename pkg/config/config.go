package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config is the tool's full configuration.
type Config struct {
	// Input is the exported session document to convert. A positional
	// command-line argument takes precedence.
	Input string `yaml:"input"`
	// Output is where the converted document is written. Empty derives
	// the path from the input file name.
	Output  string        `yaml:"output"`
	Convert ConvertConfig `yaml:"convert"`
	// Watch keeps the tool running and reconverts the input whenever it
	// changes on disk.
	Watch   bool          `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig tunes the conversion itself.
type ConvertConfig struct {
	// Simplify folds constant guards and eliminates dead branches.
	Simplify bool `yaml:"simplify"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ApplyDefaults fills in unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// Validate checks the configuration for values the tool cannot act on.
func Validate(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", cfg.Logging.Format)
	}
	return nil
}

// SlogLevel maps the configured level onto slog's.
func (c LoggingConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// OutputPath resolves where the converted document goes: the configured
// output if set, otherwise the input path with its extension replaced by
// ".angler.json".
func (c *Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	in := c.Input
	if i := strings.LastIndex(in, "."); i > 0 {
		in = in[:i]
	}
	return in + ".angler.json"
}
