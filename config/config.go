// Package config loads the application configuration from a YAML file,
// falling back to defaults when the file is absent.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default file locations and settings.
const (
	DefaultPath         = "config.yaml"
	DefaultCatalogPath  = "data/catalog.json"
	DefaultSnapshotPath = "data/snapshot.html"
	DefaultTimeoutSecs  = 60
)

// Config is the root application configuration.
type Config struct {
	// CatalogPath is where the deduplicated catalog JSON lives.
	CatalogPath string `yaml:"catalog_path"`

	// SnapshotPath points at the saved HTML listing page.
	SnapshotPath string `yaml:"snapshot_path"`

	// Model overrides the text generation model name.
	Model string `yaml:"model"`

	// AnalysisTimeoutSecs bounds a single analysis request.
	AnalysisTimeoutSecs int `yaml:"analysis_timeout_secs"`
}

// Load reads a config from path. A missing file yields the defaults; a
// present but unreadable or malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = DefaultCatalogPath
	}
	if cfg.SnapshotPath == "" {
		cfg.SnapshotPath = DefaultSnapshotPath
	}
	if cfg.AnalysisTimeoutSecs <= 0 {
		cfg.AnalysisTimeoutSecs = DefaultTimeoutSecs
	}
}
