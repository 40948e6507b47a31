// Package config handles reading and writing ~/.intervu/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version int           `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	UI      UIConfig      `yaml:"ui"`
	Roles   []RoleConfig  `yaml:"roles,omitempty"`
}

// ServerConfig holds the interview engine endpoint settings.
type ServerConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"` // unary requests only, streams are unbounded
}

// UIConfig controls chat rendering behaviour.
type UIConfig struct {
	Streaming bool `yaml:"streaming"` // stream responses instead of atomic send
	Markdown  bool `yaml:"markdown"`  // render assistant messages as markdown
}

// RoleConfig adds an interview role to the built-in catalog.
type RoleConfig struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Difficulty  string `yaml:"difficulty,omitempty"`
}

const configFile = "config.yaml"

// Dir returns the intervu data directory (~/.intervu), which holds the
// config file, the event log, and the transcript archive.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".intervu"), nil
}

// ReadConfig reads config.yaml from the given data directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to config.yaml in the given data directory.
// Creates the directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			URL:            "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		UI: UIConfig{
			Streaming: true,
			Markdown:  true,
		},
	}
}

// RequestTimeout returns the unary request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	if c.Server.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}
