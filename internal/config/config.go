// Package config loads application configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence (later
// wins).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration. Endpoint URLs exist so tests and
// unusual deployments can point the dispatcher at a different server; they
// default to the fixed provider endpoints and are not meant to be changed in
// normal operation.
type Config struct {
	DBPath       string   `yaml:"db_path"`
	LogPath      string   `yaml:"log_path"`
	LogLevel     string   `yaml:"log_level"`
	PollInterval Duration `yaml:"poll_interval"`
	IPv4Endpoint string   `yaml:"ipv4_endpoint"`
	IPv6Endpoint string   `yaml:"ipv6_endpoint"`
}

// Duration wraps time.Duration for YAML unmarshalling of strings like "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:       "mydnsadapter.db",
		LogPath:      "",
		LogLevel:     "info",
		PollInterval: Duration(5 * time.Minute),
	}
}

// Load builds the configuration: defaults, then the YAML file at path (when
// non-empty), then environment variable overrides. Malformed values fail
// fast.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("MYDNSADAPTER_DB_PATH"); ok {
		c.DBPath = v
	}
	if v, ok := os.LookupEnv("MYDNSADAPTER_LOG_PATH"); ok {
		c.LogPath = v
	}
	if v, ok := os.LookupEnv("MYDNSADAPTER_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv("MYDNSADAPTER_POLL_INTERVAL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MYDNSADAPTER_POLL_INTERVAL has invalid duration %q: %w", v, err)
		}
		c.PollInterval = Duration(parsed)
	}
	if v, ok := os.LookupEnv("MYDNSADAPTER_IPV4_URL"); ok {
		c.IPv4Endpoint = v
	}
	if v, ok := os.LookupEnv("MYDNSADAPTER_IPV6_URL"); ok {
		c.IPv6Endpoint = v
	}
	return nil
}
