// Package config loads brickstep configuration from a TOML file.
//
// All settings have working defaults so the CLI runs without any config
// file; flags override file values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/brickforge/brickstep/pkg/errors"
)

// Config is the full brickstep configuration.
type Config struct {
	Library LibraryConfig `toml:"library"`
	View    ViewConfig    `toml:"view"`
	Cache   CacheConfig   `toml:"cache"`
	Mongo   MongoConfig   `toml:"mongo"`
	Server  ServerConfig  `toml:"server"`
}

// LibraryConfig locates the LDraw part libraries.
type LibraryConfig struct {
	// Dirs are the library root directories, searched in order.
	Dirs []string `toml:"dirs"`
}

// ViewConfig sets the default view parameters for unwrapping.
type ViewConfig struct {
	// Aspect is the initial view rotation as x, y, z degrees.
	Aspect [3]float64 `toml:"aspect"`
	Scale  float64    `toml:"scale"`
	DPI    int        `toml:"dpi"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "file", "redis" or "none".
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	// TTL is a duration string like "24h". Empty uses the per-artifact
	// defaults.
	TTL string `toml:"ttl"`
}

// ParseTTL returns the configured TTL, or fallback when unset or invalid.
func (c CacheConfig) ParseTTL(fallback time.Duration) time.Duration {
	if c.TTL == "" {
		return fallback
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return fallback
	}
	return d
}

// MongoConfig configures the run store used by the serve command.
// An empty URI selects the in-memory store.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			Scale: 1,
			DPI:   300,
		},
		Cache: CacheConfig{
			Backend: "file",
		},
		Mongo: MongoConfig{
			Database: "brickstep",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "brickstep", "config.toml")
}

// Load reads configuration from path, applying defaults for anything the
// file leaves unset. A missing file at the default location is not an
// error; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults restores defaults zeroed out by partial files.
func (c *Config) applyDefaults() {
	if c.View.Scale == 0 {
		c.View.Scale = 1
	}
	if c.View.DPI == 0 {
		c.View.DPI = 300
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "file"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "brickstep"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}
