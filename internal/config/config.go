// Package config loads fanchart settings from a TOML file and the environment.
//
// Precedence, lowest first: built-in defaults, the config file, FANCHART_*
// environment variables, command-line flags (applied by the CLI).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fanchart/pkg/cache"
	"github.com/matzehuels/fanchart/pkg/pipeline"
)

// Config is the content of fanchart.toml.
//
//	[chart]
//	generations = 8
//	angle = 270
//	show_missing = true
//	time_weights = true
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
type Config struct {
	Chart  pipeline.Options `toml:"chart"`
	Cache  cache.Config     `toml:"cache"`
	Server Server           `toml:"server"`
}

// Server configures the HTTP API.
type Server struct {
	Addr            string        `toml:"addr"`             // FANCHART_ADDR (default ":8080")
	MaxUploadBytes  int64         `toml:"max_upload_bytes"` // FANCHART_MAX_UPLOAD_BYTES
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"` // FANCHART_SHUTDOWN_TIMEOUT (default 10s)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chart: pipeline.Options{
			Generations: pipeline.DefaultGenerations,
			AngleDeg:    pipeline.DefaultAngle,
			ShowMissing: true,
		},
		Cache: cache.Config{Backend: cache.BackendFile},
		Server: Server{
			Addr:            ":8080",
			MaxUploadBytes:  pipeline.MaxInputSize,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// DefaultPath returns the per-user config file, e.g.
// ~/.config/fanchart/config.toml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fanchart", "config.toml"), nil
}

// Load reads the config file at path and applies environment overrides.
// An empty path loads DefaultPath and tolerates its absence; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			path = ""
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, c); err != nil {
			if !os.IsNotExist(err) || explicit {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	c.Cache.Backend = envOrDefault("FANCHART_CACHE_BACKEND", c.Cache.Backend)
	c.Cache.Dir = envOrDefault("FANCHART_CACHE_DIR", c.Cache.Dir)
	c.Cache.URL = envOrDefault("FANCHART_CACHE_URL", c.Cache.URL)
	c.Cache.Prefix = envOrDefault("FANCHART_CACHE_PREFIX", c.Cache.Prefix)
	c.Server.Addr = envOrDefault("FANCHART_ADDR", c.Server.Addr)

	if v := os.Getenv("FANCHART_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("FANCHART_MAX_UPLOAD_BYTES: invalid size %q", v)
		}
		c.Server.MaxUploadBytes = n
	}
	if v := os.Getenv("FANCHART_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FANCHART_SHUTDOWN_TIMEOUT: %w", err)
		}
		c.Server.ShutdownTimeout = d
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
