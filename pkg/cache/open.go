package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend    string `toml:"backend" json:"backend"`
	Dir        string `toml:"dir" json:"dir,omitempty"`
	URL        string `toml:"url" json:"-"`
	Database   string `toml:"database" json:"database,omitempty"`
	Collection string `toml:"collection" json:"collection,omitempty"`
	Prefix     string `toml:"prefix" json:"prefix,omitempty"`
}

// Open creates the configured backend. An empty backend means file.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultDir(); err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
		}
		return NewFileCache(dir)
	case BackendRedis:
		if cfg.URL == "" {
			return nil, fmt.Errorf("redis cache requires a url")
		}
		return NewRedisCache(ctx, cfg.URL)
	case BackendMongo:
		if cfg.URL == "" {
			return nil, fmt.Errorf("mongo cache requires a url")
		}
		return NewMongoCache(ctx, cfg.URL, cfg.Database, cfg.Collection)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (must be one of: none, file, redis, mongo)", cfg.Backend)
	}
}

// KeyerFor returns the keyer matching cfg: scoped when a prefix is set.
func KeyerFor(cfg Config) Keyer {
	if cfg.Prefix != "" {
		return NewScopedKeyer(NewDefaultKeyer(), cfg.Prefix)
	}
	return NewDefaultKeyer()
}
