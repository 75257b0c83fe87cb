package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Verify.Iterations != DefaultIterations {
		t.Errorf("Iterations = %d, want %d", cfg.Verify.Iterations, DefaultIterations)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !stitcherrors.Is(err, stitcherrors.ErrCodeFileNotFound) {
		t.Errorf("Load error = %v, want %s", err, stitcherrors.ErrCodeFileNotFound)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[render]
line_width = 0.3
metadata = true
markers = false

[verify]
iterations = 5

[cache]
backend = "redis"
redis_addr = "localhost:6379"
ttl = "1h"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.LineWidth != 0.3 {
		t.Errorf("LineWidth = %v, want 0.3", cfg.Render.LineWidth)
	}
	if !cfg.Render.Metadata || cfg.Render.Markers {
		t.Errorf("Metadata, Markers = %v, %v, want true, false", cfg.Render.Metadata, cfg.Render.Markers)
	}
	if cfg.Render.StitchDiameter != Default().Render.StitchDiameter {
		t.Errorf("StitchDiameter = %v, want default", cfg.Render.StitchDiameter)
	}
	if cfg.Verify.Iterations != 5 {
		t.Errorf("Iterations = %d, want 5", cfg.Verify.Iterations)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache = %+v, want redis with 1h ttl", cfg.Cache)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "[render]\nline_widht = 0.3\n")
	_, err := Load(path)
	if !stitcherrors.Is(err, stitcherrors.ErrCodeInvalidConfig) {
		t.Errorf("Load error = %v, want %s", err, stitcherrors.ErrCodeInvalidConfig)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "[render\n")
	_, err := Load(path)
	if !stitcherrors.Is(err, stitcherrors.ErrCodeInvalidConfig) {
		t.Errorf("Load error = %v, want %s", err, stitcherrors.ErrCodeInvalidConfig)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[verify]\niterations = 5\n")
	t.Setenv("STITCHKIT_VERIFY_ITERATIONS", "7")
	t.Setenv("STITCHKIT_RENDER_MARKERS", "off")
	t.Setenv("STITCHKIT_CACHE_TTL", "30m")
	t.Setenv("STITCHKIT_SERVER_ADDR", "127.0.0.1:9000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Verify.Iterations != 7 {
		t.Errorf("Iterations = %d, want 7", cfg.Verify.Iterations)
	}
	if cfg.Render.Markers {
		t.Error("Markers = true, want false")
	}
	if cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("TTL = %v, want 30m", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q, want 127.0.0.1:9000", cfg.Server.Addr)
	}
}

func TestEnvMalformed(t *testing.T) {
	tests := []struct {
		name, value string
	}{
		{"STITCHKIT_RENDER_LINE_WIDTH", "thin"},
		{"STITCHKIT_VERIFY_ITERATIONS", "two"},
		{"STITCHKIT_RENDER_METADATA", "maybe"},
		{"STITCHKIT_CACHE_TTL", "forever"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			t.Setenv(tt.name, tt.value)
			_, err := Load("")
			if !stitcherrors.Is(err, stitcherrors.ErrCodeInvalidConfig) {
				t.Errorf("Load error = %v, want %s", err, stitcherrors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero line width", func(c *Config) { c.Render.LineWidth = 0 }},
		{"negative diameter", func(c *Config) { c.Render.StitchDiameter = -1 }},
		{"negative margin", func(c *Config) { c.Render.Margin = -1 }},
		{"zero png scale", func(c *Config) { c.Render.PNGScale = 0 }},
		{"negative iterations", func(c *Config) { c.Verify.Iterations = -1 }},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"zero upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !stitcherrors.Is(err, stitcherrors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want %s", err, stitcherrors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := Default().Render
	if n := len(cfg.RenderOptions()); n != 4 {
		t.Errorf("default RenderOptions = %d options, want 4", n)
	}
	cfg.Metadata = true
	cfg.Markers = false
	if n := len(cfg.RenderOptions()); n != 6 {
		t.Errorf("RenderOptions = %d options, want 6", n)
	}
}
