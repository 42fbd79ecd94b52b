package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PG_DSN", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8001" {
		t.Errorf("port = %q, want 8001", cfg.Port)
	}
	if cfg.Years.First != 2016 || cfg.Years.Last != 2025 {
		t.Errorf("years = %+v", cfg.Years)
	}
	if cfg.Store.Source != "csv" || cfg.Store.DataDir != "./data" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	path := writeConfig(t, "port: \"9000\"\nyears:\n  first: 2018\n  last: 2024\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.Years.First != 2018 || cfg.Years.Last != 2024 {
		t.Errorf("years = %+v", cfg.Years)
	}
	// Untouched sections keep their defaults.
	if cfg.TopMinistries != 10 {
		t.Errorf("top ministries = %d", cfg.TopMinistries)
	}
	if cfg.Gemini.APIKeyEnv != "GEMINI_API_KEY" {
		t.Errorf("api key env = %q", cfg.Gemini.APIKeyEnv)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "port: [not: valid\n")
	if _, err := Load(path); err == nil {
		t.Fatal("no error for malformed yaml")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("PG_DSN", "postgres://env/override")

	path := writeConfig(t, "port: \"9000\"\nstore:\n  source: postgres\n  dsn: postgres://file\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7777" {
		t.Errorf("port = %q, env should win", cfg.Port)
	}
	if cfg.Store.DSN != "postgres://env/override" {
		t.Errorf("dsn = %q, env should win", cfg.Store.DSN)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"inverted years", func(c *Config) { c.Years.First = 2025; c.Years.Last = 2016 }, "invalid year range"},
		{"zero top ministries", func(c *Config) { c.TopMinistries = -1 }, "top_ministries"},
		{"unknown source", func(c *Config) { c.Store.Source = "redis" }, "unknown store source"},
		{"postgres without dsn", func(c *Config) { c.Store.Source = "postgres"; c.Store.DSN = "" }, "store.dsn"},
		{"csv without dir", func(c *Config) { c.Store.DataDir = "" }, "store.data_dir"},
	}
	for _, tt := range tests {
		cfg := defaults()
		tt.mutate(cfg)
		err := cfg.Validate()
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: err = %v, want %q", tt.name, err, tt.wantErr)
		}
	}
}

func TestAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "secret")
	cfg := defaults()
	if got := cfg.APIKey(); got != "secret" {
		t.Errorf("APIKey() = %q", got)
	}
}
