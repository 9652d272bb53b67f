package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relgraph/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	t.Setenv("XDG_STATE_HOME", "/tmp/xdg-state")

	cfg := Default()
	if cfg.Cache.Dir != "/tmp/xdg-cache/relgraph" {
		t.Errorf("cache dir = %s", cfg.Cache.Dir)
	}
	if cfg.GraphDir != "/tmp/xdg-state/relgraph/graphs" {
		t.Errorf("graphdir = %s", cfg.GraphDir)
	}
	if cfg.Graph {
		t.Error("graph output should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	if cfg.Level() != log.InfoLevel {
		t.Errorf("Level() = %v", cfg.Level())
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
graph = true
graphdir = "/srv/graphs"
container_types = ["Class", "Apache::Vhost"]

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "90m"

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Graph || cfg.GraphDir != "/srv/graphs" {
		t.Errorf("graph settings = %v %s", cfg.Graph, cfg.GraphDir)
	}
	if !slices.Equal(cfg.ContainerTypes, []string{"Class", "Apache::Vhost"}) {
		t.Errorf("container types = %v", cfg.ContainerTypes)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Cache.Prefix != "relgraph:" {
		t.Errorf("unset keys should keep defaults, prefix = %q", cfg.Cache.Prefix)
	}
	if cfg.Level() != log.DebugLevel {
		t.Errorf("Level() = %v", cfg.Level())
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") with no file = %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("backend = %s", cfg.Cache.Backend)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	if err := os.MkdirAll(filepath.Join(home, "relgraph"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, "relgraph", "config.toml"), []byte("graph = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Graph {
		t.Error("default config file was not read")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", `graph = `, errors.ErrCodeInvalidConfig},
		{"unknown key", `colour = "blue"`, errors.ErrCodeInvalidConfig},
		{"backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
		{"redis without addr", "[cache]\nbackend = \"redis\"", errors.ErrCodeInvalidConfig},
		{"bad ttl", "[cache]\nttl = \"soon\"", errors.ErrCodeInvalidConfig},
		{"negative ttl", "[cache]\nttl = \"-1h\"", errors.ErrCodeInvalidConfig},
		{"container type", `container_types = ["not a type"]`, errors.ErrCodeInvalidConfig},
		{"log level", "[log]\nlevel = \"loud\"", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) = %v, want FILE_NOT_FOUND", err)
	}
}
