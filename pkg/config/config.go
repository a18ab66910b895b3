// Package config loads calculator defaults from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds file-level defaults. Command-line flags override these.
type Config struct {
	// Degrees selects degree mode for trigonometry. Defaults to true,
	// matching the calculator's default angle mode.
	Degrees *bool `yaml:"degrees"`

	// HistoryFile is where the evaluation log is persisted. Empty disables
	// persistence.
	HistoryFile string `yaml:"history_file"`

	// RulesFile holds additional natural-language rewrite rules appended to
	// the built-in chain.
	RulesFile string `yaml:"rules_file"`

	// ListenHost and ListenPort configure the HTTP API server.
	ListenHost string `yaml:"listen_host"`
	ListenPort int    `yaml:"listen_port"`
}

// DegreesOrDefault resolves the angle mode, defaulting to degrees.
func (c *Config) DegreesOrDefault() bool {
	if c.Degrees == nil {
		return true
	}
	return *c.Degrees
}

// Load reads a config file. A missing file yields zero-value defaults, not
// an error, so the config flag stays optional.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
