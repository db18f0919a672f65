// Package config loads rewear settings from a YAML file, a .env file and
// the environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/erazemk/rewear/internal/kv"
)

const (
	// DefaultPath is read when no config file is named. It may be absent.
	DefaultPath = "rewear.yaml"
	// MemoryDB selects the in-process backend instead of SQLite.
	MemoryDB = ":memory:"
)

// Config holds all settings for the data layer and CLI.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	JWT      JWTConfig      `yaml:"jwt"`
	Seed     bool           `yaml:"seed"`
}

// DatabaseConfig selects the substrate backend.
// A QuotaBytes of 0 disables the limit.
type DatabaseConfig struct {
	Path       string `yaml:"path"`
	QuotaBytes int64  `yaml:"quota_bytes"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// JWTConfig holds the token signing secret. Empty means use the stored one.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "rewear.sqlite3", QuotaBytes: kv.DefaultQuota},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults, then .env, then environment overrides.
// A missing file is an error unless path is DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("REWEAR_DB"); ok && v != "" {
		c.Database.Path = v
	}
	if v, ok := lookup("REWEAR_QUOTA_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing REWEAR_QUOTA_BYTES: %w", err)
		}
		c.Database.QuotaBytes = n
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("REWEAR_JWT_SECRET"); ok && v != "" {
		c.JWT.Secret = v
	}
	if v, ok := lookup("REWEAR_SEED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing REWEAR_SEED: %w", err)
		}
		c.Seed = b
	}
	return nil
}

// Validate reports settings the data layer cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}
	if c.Database.QuotaBytes < 0 {
		return fmt.Errorf("quota must not be negative, got %d", c.Database.QuotaBytes)
	}
	return nil
}

// InMemory reports whether the memory backend was selected.
func (c *Config) InMemory() bool {
	return c.Database.Path == MemoryDB
}
