package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"budgetlens/internal/models"
)

// StoreConfig selects and configures the tabular data source.
type StoreConfig struct {
	Source  string `yaml:"source"`   // "csv" or "postgres"
	DataDir string `yaml:"data_dir"` // csv source
	DSN     string `yaml:"dsn"`      // postgres source; PG_DSN overrides
}

// GeminiConfig configures the completion service client.
type GeminiConfig struct {
	Model       string `yaml:"model"`
	Endpoint    string `yaml:"endpoint"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// Config is the root application configuration.
type Config struct {
	Port          string           `yaml:"port"`
	Years         models.YearRange `yaml:"years"`
	TopMinistries int              `yaml:"top_ministries"`
	Store         StoreConfig      `yaml:"store"`
	Gemini        GeminiConfig     `yaml:"gemini"`
}

// Load reads the config from path. A missing file yields defaults.
// Environment overrides (PORT, PG_DSN) are applied last.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(cfg)

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("PG_DSN"); v != "" {
		cfg.Store.DSN = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// APIKey resolves the Gemini API key from the configured env var.
func (c *Config) APIKey() string {
	return os.Getenv(c.Gemini.APIKeyEnv)
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	var problems []string
	if c.Years.Last < c.Years.First {
		problems = append(problems, fmt.Sprintf("invalid year range %d-%d", c.Years.First, c.Years.Last))
	}
	if c.TopMinistries < 1 {
		problems = append(problems, fmt.Sprintf("top_ministries must be positive, got %d", c.TopMinistries))
	}
	switch c.Store.Source {
	case "csv":
		if c.Store.DataDir == "" {
			problems = append(problems, "store.data_dir is required for the csv source")
		}
	case "postgres":
		if c.Store.DSN == "" {
			problems = append(problems, "store.dsn (or PG_DSN) is required for the postgres source")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown store source %q, want csv or postgres", c.Store.Source))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %v", problems)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Port:          "8001",
		Years:         models.YearRange{First: 2016, Last: 2025},
		TopMinistries: 10,
		Store: StoreConfig{
			Source:  "csv",
			DataDir: "./data",
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			Endpoint:    "https://generativelanguage.googleapis.com/v1beta/models",
			APIKeyEnv:   "GEMINI_API_KEY",
			TimeoutSecs: 30,
		},
	}
}

// applyDefaults fills in zero values left by a partial config file.
func applyDefaults(cfg *Config) {
	def := defaults()
	if cfg.Port == "" {
		cfg.Port = def.Port
	}
	if cfg.Years.First == 0 && cfg.Years.Last == 0 {
		cfg.Years = def.Years
	}
	if cfg.TopMinistries == 0 {
		cfg.TopMinistries = def.TopMinistries
	}
	if cfg.Store.Source == "" {
		cfg.Store.Source = def.Store.Source
	}
	if cfg.Store.Source == "csv" && cfg.Store.DataDir == "" {
		cfg.Store.DataDir = def.Store.DataDir
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = def.Gemini.Model
	}
	if cfg.Gemini.Endpoint == "" {
		cfg.Gemini.Endpoint = def.Gemini.Endpoint
	}
	if cfg.Gemini.APIKeyEnv == "" {
		cfg.Gemini.APIKeyEnv = def.Gemini.APIKeyEnv
	}
	if cfg.Gemini.TimeoutSecs == 0 {
		cfg.Gemini.TimeoutSecs = def.Gemini.TimeoutSecs
	}
}
