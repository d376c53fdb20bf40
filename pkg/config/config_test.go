package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ANGLER_INPUT", "ANGLER_OUTPUT", "ANGLER_SIMPLIFY",
		"ANGLER_WATCH", "ANGLER_LOG_LEVEL", "ANGLER_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)
	if cfg.Logging.Level != "info" {
		t.Errorf("default level = %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("default format = %q", cfg.Logging.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(*Config) {}, false},
		{"debug json", func(c *Config) { c.Logging.Level = "debug"; c.Logging.Format = "json" }, false},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			ApplyDefaults(&cfg)
			tt.mutate(&cfg)
			err := Validate(&cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := (LoggingConfig{Level: tt.level}).SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		want   string
	}{
		{"explicit output wins", "snap.json", "out.json", "out.json"},
		{"derived from input", "snap.json", "", "snap.angler.json"},
		{"input without extension", "snapshot", "", "snapshot.angler.json"},
		{"nested path", "data/run.v2.json", "", "data/run.v2.angler.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Input: tt.input, Output: tt.output}
			if got := cfg.OutputPath(); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "angler.yaml")
	doc := `input: snap.json
output: net.json
convert:
  simplify: true
watch: true
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Input != "snap.json" || cfg.Output != "net.json" {
		t.Errorf("paths = %q, %q", cfg.Input, cfg.Output)
	}
	if !cfg.Convert.Simplify || !cfg.Watch {
		t.Errorf("flags = %+v", cfg)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "angler.yaml")
	doc := `input: file.json
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ANGLER_INPUT", "env.json")
	t.Setenv("ANGLER_SIMPLIFY", "true")
	t.Setenv("ANGLER_LOG_LEVEL", "error")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Input != "env.json" {
		t.Errorf("input = %q, environment should win", cfg.Input)
	}
	if !cfg.Convert.Simplify {
		t.Error("simplify should be set from environment")
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANGLER_LOG_LEVEL", "screaming")
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "no-such.yaml")); err == nil {
		t.Error("expected validation error for bad level")
	}
}
