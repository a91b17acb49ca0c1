// Package config loads the YAML settings shared by the CLI and the render service.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"galbubble/pkg/engine/canvas"
)

// Config is the full settings file. Zero values in the file keep the defaults.
type Config struct {
	SpriteDir     string                      `yaml:"sprite_dir"`
	SpriteShadow  bool                        `yaml:"sprite_shadow"`
	Fonts         map[string]canvas.FontFiles `yaml:"fonts"`
	FontCacheSize int                         `yaml:"font_cache_size"`
	LocaleDir     string                      `yaml:"locale_dir"`
	Language      string                      `yaml:"language"`
	Server        Server                      `yaml:"server"`
	Cache         Cache                       `yaml:"cache"`
}

// Server configures the HTTP/WebSocket render service.
type Server struct {
	Addr            string        `yaml:"addr"`
	RenderTimeout   time.Duration `yaml:"render_timeout"`
	MaxMessageBytes int64         `yaml:"max_message_bytes"`
}

// Cache configures the rendered image cache. An empty RedisAddr selects the
// in-memory store; MemoryEntries of 0 disables caching entirely.
type Cache struct {
	RedisAddr     string        `yaml:"redis_addr"`
	Prefix        string        `yaml:"prefix"`
	TTL           time.Duration `yaml:"ttl"`
	MemoryEntries int           `yaml:"memory_entries"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SpriteDir:     "assets",
		SpriteShadow:  true,
		Fonts:         map[string]canvas.FontFiles{},
		FontCacheSize: canvas.DefaultFontCacheSize,
		LocaleDir:     "locale",
		Language:      "zh_CN",
		Server: Server{
			Addr:            ":8080",
			RenderTimeout:   10 * time.Second,
			MaxMessageBytes: 64 << 10,
		},
		Cache: Cache{
			Prefix:        "galbubble",
			TTL:           time.Hour,
			MemoryEntries: 128,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every unusable setting.
func (c Config) Validate() error {
	var errs []error
	if c.SpriteDir == "" {
		errs = append(errs, errors.New("sprite_dir is required"))
	}
	if c.FontCacheSize < 0 {
		errs = append(errs, fmt.Errorf("font_cache_size must not be negative, got %d", c.FontCacheSize))
	}
	for name, files := range c.Fonts {
		if files.Regular == "" {
			errs = append(errs, fmt.Errorf("font %q has no regular file", name))
		}
	}
	if c.Server.RenderTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.render_timeout must be positive, got %s", c.Server.RenderTimeout))
	}
	if c.Server.MaxMessageBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_message_bytes must be positive, got %d", c.Server.MaxMessageBytes))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL))
	}
	if c.Cache.MemoryEntries < 0 {
		errs = append(errs, fmt.Errorf("cache.memory_entries must not be negative, got %d", c.Cache.MemoryEntries))
	}
	return errors.Join(errs...)
}

// FontLibrary builds the font library described by the config.
func (c Config) FontLibrary() *canvas.FontLibrary {
	return canvas.NewFontLibrary(c.Fonts, c.FontCacheSize)
}
