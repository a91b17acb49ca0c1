package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "galbubble.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.SpriteDir != "assets" || cfg.Server.Addr != ":8080" || !cfg.SpriteShadow {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
sprite_dir: /srv/sprites
sprite_shadow: false
fonts:
  Microsoft YaHei:
    regular: /fonts/msyh.ttc
    bold: /fonts/msyhbd.ttc
server:
  render_timeout: 3s
cache:
  redis_addr: localhost:6379
  ttl: 30m
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SpriteDir != "/srv/sprites" {
		t.Errorf("SpriteDir = %q", cfg.SpriteDir)
	}
	if cfg.SpriteShadow {
		t.Error("SpriteShadow = true, want false")
	}
	if got := cfg.Fonts["Microsoft YaHei"].Bold; got != "/fonts/msyhbd.ttc" {
		t.Errorf("bold font = %q", got)
	}
	if cfg.Server.RenderTimeout != 3*time.Second {
		t.Errorf("RenderTimeout = %s, want 3s", cfg.Server.RenderTimeout)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want default kept", cfg.Server.Addr)
	}
	if cfg.Cache.RedisAddr != "localhost:6379" || cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Prefix != "galbubble" {
		t.Errorf("Prefix = %q, want default kept", cfg.Cache.Prefix)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "sprite_dir: [",
		"no regular":    "fonts:\n  Foo:\n    bold: /x.ttf\n",
		"zero timeout":  "server:\n  render_timeout: 0s\n",
		"negative size": "font_cache_size: -1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.SpriteDir = ""
	cfg.Cache.MemoryEntries = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"sprite_dir", "memory_entries"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %q, missing %q", err, want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load(missing) expected error")
	}
}
