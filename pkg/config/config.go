// Package config loads relgraph settings from a TOML file.
//
// A missing default file is not an error; every setting has a default and
// command-line flags override whatever the file says.
//
//	graph = true
//	graphdir = "/var/lib/relgraph/graphs"
//	container_types = ["Class", "Stage"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[log]
//	level = "debug"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/relgraph/pkg/errors"
)

const appName = "relgraph"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds all settings.
type Config struct {
	// Graph writes relationships.dot and expanded_relationships.dot to
	// GraphDir on every run.
	Graph          bool     `toml:"graph"`
	GraphDir       string   `toml:"graphdir"`
	ContainerTypes []string `toml:"container_types"`

	Cache CacheConfig `toml:"cache"`
	Log   LogConfig   `toml:"log"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	Prefix    string   `toml:"prefix"`
	TTL       Duration `toml:"ttl"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string ("24h", "90m") in TOML.
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings, with directories under the XDG
// cache and state homes.
func Default() *Config {
	return &Config{
		GraphDir:       filepath.Join(stateDir(), "graphs"),
		ContainerTypes: []string{"Class", "Stage"},
		Cache: CacheConfig{
			Backend: BackendFile,
			Dir:     cacheDir(),
			Prefix:  appName + ":",
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns the config file location, $XDG_CONFIG_HOME/relgraph/config.toml.
func DefaultPath() string {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// Load reads path on top of the defaults and validates the result. An empty
// path means DefaultPath, which may be absent; an explicit path must exist.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return Default(), nil
			}
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be expressed by the TOML types.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile:
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
		}
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	case BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if c.Graph && c.GraphDir == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "graphdir is required when graph = true")
	}
	for _, t := range c.ContainerTypes {
		if err := errors.ValidateType(t); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "container_types")
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return nil
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// cacheDir returns $XDG_CACHE_HOME/relgraph or ~/.cache/relgraph.
func cacheDir() string {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName, "cache")
	}
	return filepath.Join(home, ".cache", appName)
}

// stateDir returns $XDG_STATE_HOME/relgraph or ~/.local/state/relgraph.
func stateDir() string {
	if home := os.Getenv("XDG_STATE_HOME"); home != "" {
		return filepath.Join(home, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName, "state")
	}
	return filepath.Join(home, ".local", "state", appName)
}
