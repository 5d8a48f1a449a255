package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.View.Scale != 1 || cfg.View.DPI != 300 {
		t.Errorf("view defaults = %+v", cfg.View)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("cache backend = %q", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}
}

func TestLoadMissingDefaultPath(t *testing.T) {
	// Loading with no explicit path never fails on a missing file.
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.View.DPI != 300 {
		t.Errorf("dpi = %d", cfg.View.DPI)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("explicit missing file should fail")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[library]
dirs = ["/opt/ldraw", "/home/user/parts"]

[view]
aspect = [30.0, 45.0, 0.0]
dpi = 600

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "48h"

[mongo]
uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Library.Dirs) != 2 || cfg.Library.Dirs[0] != "/opt/ldraw" {
		t.Errorf("library dirs = %v", cfg.Library.Dirs)
	}
	if cfg.View.Aspect != [3]float64{30, 45, 0} {
		t.Errorf("aspect = %v", cfg.View.Aspect)
	}
	if cfg.View.DPI != 600 {
		t.Errorf("dpi = %d", cfg.View.DPI)
	}
	// Scale untouched by the file falls back to its default.
	if cfg.View.Scale != 1 {
		t.Errorf("scale = %v", cfg.View.Scale)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if got := cfg.Cache.ParseTTL(time.Hour); got != 48*time.Hour {
		t.Errorf("ttl = %v", got)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" || cfg.Mongo.Database != "brickstep" {
		t.Errorf("mongo = %+v", cfg.Mongo)
	}
}

func TestParseTTLFallback(t *testing.T) {
	c := CacheConfig{}
	if got := c.ParseTTL(time.Minute); got != time.Minute {
		t.Errorf("empty ttl = %v", got)
	}
	c.TTL = "bogus"
	if got := c.ParseTTL(time.Minute); got != time.Minute {
		t.Errorf("invalid ttl = %v", got)
	}
}
