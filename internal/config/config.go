// Package config loads hgdb's startup configuration.
//
// Configuration is read once at startup and passed explicitly to the
// components that need it. Values come from, in increasing precedence:
//  1. built-in defaults
//  2. the first config file found (see FindConfigPath)
//  3. HGDB_* environment variables
//  4. Overrides passed by the caller, such as command-line flags
//
// db_path has no default. A configuration without one is rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ErrMissingDBPath is returned when db_path is missing, empty or malformed
var ErrMissingDBPath = errors.New("config: db_path is required")

// EnvPrefix prefixes every environment override
const EnvPrefix = "HGDB_"

// Config holds all startup settings
type Config struct {
	DBPath    string          `yaml:"db_path" json:"db_path" env:"DB_PATH"`
	LogLevel  string          `yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`
	HTTPAddr  string          `yaml:"http_addr" json:"http_addr" env:"HTTP_ADDR"`
	Keyspaces KeyspacesConfig `yaml:"keyspaces" json:"keyspaces" envPrefix:"KEYSPACE_"`
}

// KeyspacesConfig names the keyspace of each entity kind
type KeyspacesConfig struct {
	Simple string `yaml:"simple" json:"simple" env:"SIMPLE"`
	Light  string `yaml:"light" json:"light" env:"LIGHT"`
	Dual   string `yaml:"dual" json:"dual" env:"DUAL"`
}

// DefaultConfig returns the defaults. DBPath is left empty.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		HTTPAddr: ":3000",
		Keyspaces: KeyspacesConfig{
			Simple: "simple_hyper_edges",
			Light:  "light_hyper_edges",
			Dual:   "dual_hyper_edges",
		},
	}
}

// Override adjusts a loaded configuration before it is validated
type Override func(*Config)

// WithDBPath overrides db_path when path is non-empty
func WithDBPath(path string) Override {
	return func(c *Config) {
		if path != "" {
			c.DBPath = path
		}
	}
}

// WithLogLevel overrides log_level when level is non-empty
func WithLogLevel(level string) Override {
	return func(c *Config) {
		if level != "" {
			c.LogLevel = level
		}
	}
}

// WithHTTPAddr overrides http_addr when addr is non-empty
func WithHTTPAddr(addr string) Override {
	return func(c *Config) {
		if addr != "" {
			c.HTTPAddr = addr
		}
	}
}

// Load finds and loads the config file, applies environment and caller
// overrides and validates the result. The returned path is empty when no
// file was found.
func Load(overrides ...Override) (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		cfg := DefaultConfig()
		if err := cfg.finish(overrides); err != nil {
			return nil, "", err
		}
		return cfg, "", nil
	}
	return LoadFromPath(path, overrides...)
}

// LoadFromPath loads config from a specific path, then applies overrides and
// validates
func LoadFromPath(path string, overrides ...Override) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}
	if err := cfg.finish(overrides); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Parse decodes a YAML document over the defaults. Unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the configuration can start the store
func (c *Config) Validate() error {
	path := strings.TrimSpace(c.DBPath)
	if path == "" || path != c.DBPath || strings.ContainsRune(c.DBPath, 0) {
		return ErrMissingDBPath
	}
	if c.Keyspaces.Simple == c.Keyspaces.Light ||
		c.Keyspaces.Simple == c.Keyspaces.Dual ||
		c.Keyspaces.Light == c.Keyspaces.Dual {
		return fmt.Errorf("config: keyspaces must be distinct")
	}
	return nil
}

// finish applies environment and caller overrides, then validates
func (c *Config) finish(overrides []Override) error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	for _, o := range overrides {
		o(c)
	}
	c.applyDefaults()
	return c.Validate()
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = d.HTTPAddr
	}
	if c.Keyspaces.Simple == "" {
		c.Keyspaces.Simple = d.Keyspaces.Simple
	}
	if c.Keyspaces.Light == "" {
		c.Keyspaces.Light = d.Keyspaces.Light
	}
	if c.Keyspaces.Dual == "" {
		c.Keyspaces.Dual = d.Keyspaces.Dual
	}
}
