// Package config loads stitchkit settings.
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, by default $XDG_CONFIG_HOME/stitchkit/config.toml
//  3. STITCHKIT_* environment variables, optionally from a .env file
//
// A missing config file is not an error. Example file:
//
//	[render]
//	line_width = 0.25
//	metadata = true
//
//	[verify]
//	iterations = 3
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	log_file = "/var/log/stitchkit.log"
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/render"
)

// Config is the complete configuration.
type Config struct {
	Render RenderConfig `toml:"render"`
	Verify VerifyConfig `toml:"verify"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig controls SVG and PNG output.
type RenderConfig struct {
	LineWidth      float64 `toml:"line_width"`
	StitchDiameter float64 `toml:"stitch_diameter"`
	Margin         float64 `toml:"margin"`
	Metadata       bool    `toml:"metadata"`
	Markers        bool    `toml:"markers"`
	PNGScale       float64 `toml:"png_scale"`
}

// VerifyConfig controls round-trip verification.
type VerifyConfig struct {
	Iterations int    `toml:"iterations"`
	Codec      string `toml:"codec"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
}

// ServerConfig controls the HTTP service.
type ServerConfig struct {
	Addr           string `toml:"addr"`
	MaxUploadBytes int64  `toml:"max_upload_bytes"`
	LogFile        string `toml:"log_file"`
}

// Defaults.
const (
	DefaultIterations     = 2
	DefaultCodec          = "dst"
	DefaultCacheBackend   = "file"
	DefaultCacheTTL       = 7 * 24 * time.Hour
	DefaultAddr           = ":8080"
	DefaultMaxUploadBytes = 16 << 20
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			LineWidth:      render.DefaultLineWidth,
			StitchDiameter: render.DefaultStitchDiameter,
			Margin:         render.DefaultMargin,
			Markers:        true,
			PNGScale:       render.DefaultScale,
		},
		Verify: VerifyConfig{
			Iterations: DefaultIterations,
			Codec:      DefaultCodec,
		},
		Cache: CacheConfig{
			Backend: DefaultCacheBackend,
			TTL:     DefaultCacheTTL,
		},
		Server: ServerConfig{
			Addr:           DefaultAddr,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/stitchkit/config.toml, falling back to
// ~/.config/stitchkit/config.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "stitchkit", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "stitchkit", "config.toml")
}

// Load builds the configuration from defaults, the TOML file at path (or
// DefaultPath when empty) and the environment. A .env file in the working
// directory is loaded first if present; variables already set win.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, stitcherrors.Wrap(stitcherrors.ErrCodeInvalidConfig, err, "load .env")
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile overlays a TOML file. A missing file is only an error when the
// user named it.
func (c *Config) loadFile(path string, required bool) error {
	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, os.ErrNotExist) {
		if required {
			return stitcherrors.Wrap(stitcherrors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil
	}
	if err != nil {
		return stitcherrors.Wrap(stitcherrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return stitcherrors.New(stitcherrors.ErrCodeInvalidConfig, "%s: unknown key %s", path, undecoded[0])
	}
	return nil
}

// Validate rejects settings no component can honour.
func (c Config) Validate() error {
	switch {
	case c.Render.LineWidth <= 0:
		return stitcherrors.New(stitcherrors.ErrCodeInvalidConfig, "render.line_width must be positive")
	case c.Render.StitchDiameter <= 0:
		return stitcherrors.New(stitcherrors.ErrCodeInvalidConfig, "render.stitch_diameter must be positive")
	case c.Render.Margin < 0:
		return stitcherrors.New(stitcherrors.ErrCodeInvalidConfig, "render.margin cannot be negative")
	case c.Render.PNGScale <= 0:
		return stitcherrors.New(stitcherrors.ErrCodeInvalidConfig, "render.png_scale must be positive")
	case c.Server.MaxUploadBytes <= 0:
		return stitcherrors.New(stitcherrors.ErrCodeInvalidConfig, "server.max_upload_bytes must be positive")
	case c.Cache.TTL < 0:
		return stitcherrors.New(stitcherrors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if err := stitcherrors.ValidateIterations(c.Verify.Iterations); err != nil {
		return stitcherrors.Wrap(stitcherrors.ErrCodeInvalidConfig, err, "verify.iterations")
	}
	switch c.Cache.Backend {
	case "none", "file", "redis":
	default:
		return stitcherrors.New(stitcherrors.ErrCodeInvalidConfig, "cache.backend must be none, file or redis (got %q)", c.Cache.Backend)
	}
	return nil
}

// RenderOptions converts the render section into renderer options.
func (c RenderConfig) RenderOptions() []render.Option {
	opts := []render.Option{
		render.WithLineWidth(c.LineWidth),
		render.WithStitchDiameter(c.StitchDiameter),
		render.WithMargin(c.Margin),
		render.WithScale(c.PNGScale),
	}
	if c.Metadata {
		opts = append(opts, render.WithMetadata())
	}
	if !c.Markers {
		opts = append(opts, render.WithoutMarkers())
	}
	return opts
}
