// Package config loads ntt settings from a TOML or YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Log       LogConfig       `toml:"log" yaml:"log"`
	Store     StoreConfig     `toml:"store" yaml:"store"`
	Reference ReferenceConfig `toml:"reference" yaml:"reference"`
}

type ServerConfig struct {
	Addr         string   `toml:"addr" yaml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout" yaml:"read_timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes" yaml:"max_body_bytes"`
	CORSOrigins  []string `toml:"cors_origins" yaml:"cors_origins"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // text or json
}

type StoreConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// ReferenceConfig toggles the tree-sitter cross-check.
type ReferenceConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
}

// Duration wraps time.Duration so it can be written as "30s" in config files.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg
}

// Load reads path, choosing the decoder by extension, then fills in defaults
// and applies NTT_* environment overrides.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8011"
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 15 * time.Second
	}
	if c.Server.MaxBodyBytes == 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Store.Path == "" {
		c.Store.Path = "./data/ntt.db"
	}
}

func (c *Config) applyEnv() {
	c.Server.Addr = env.Str("NTT_ADDR", c.Server.Addr)
	c.Log.Level = env.Str("NTT_LOG_LEVEL", c.Log.Level)
	c.Log.Format = env.Str("NTT_LOG_FORMAT", c.Log.Format)
	if env.Has("NTT_STORE_PATH") {
		c.Store.Path = env.Str("NTT_STORE_PATH")
		c.Store.Enabled = true
	}
}

// Validate checks the values a caller cannot recover from at runtime.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("invalid max_body_bytes %d", c.Server.MaxBodyBytes)
	}
	return nil
}
