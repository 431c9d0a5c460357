package padron

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config defines client configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Lookup LookupConfig `yaml:"lookup"`
	Log    LogConfig    `yaml:"log"`
}

type StoreConfig struct {
	// Backend selects the store implementation: "sqlite" or "postgres".
	Backend string `yaml:"backend"`
	// Path is the sqlite database file.
	Path string `yaml:"path"`
	// DSN is the postgres connection string.
	DSN string `yaml:"dsn"`
}

type LookupConfig struct {
	// BaseURL of the person registry. Empty disables enrichment.
	BaseURL string `yaml:"base_url"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig reads configuration from an optional YAML file and
// environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{
		Store: StoreConfig{
			Backend: "sqlite",
			Path:    "padron.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("PADRON_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if backend := os.Getenv("PADRON_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if path := os.Getenv("PADRON_STORE_PATH"); path != "" {
		cfg.Store.Path = path
	}
	if dsn := os.Getenv("PADRON_STORE_DSN"); dsn != "" {
		cfg.Store.DSN = dsn
	}
	if url := os.Getenv("PADRON_LOOKUP_URL"); url != "" {
		cfg.Lookup.BaseURL = url
	}
	if level := os.Getenv("PADRON_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
