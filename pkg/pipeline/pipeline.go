// Package pipeline provides the load → render / verify / convert flows shared
// by the CLI and the HTTP service.
//
// By centralizing this logic, both entry points decode, render and cache
// patterns the same way.
//
// # Usage
//
// Create a Runner and run the stages you need:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	p, err := runner.LoadFile(ctx, "rose.dst", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artifacts, err := runner.Render(ctx, p, pipeline.Options{Formats: []string{"svg"}})
//	svg := artifacts["svg"]
//
// Verify a codec:
//
//	n := 2
//	res, err := runner.Verify(ctx, p, pipeline.Options{Codec: "dst", Iterations: &n}, nil)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stitchkit/pkg/cache"
	"github.com/matzehuels/stitchkit/pkg/config"
	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pattern"
	"github.com/matzehuels/stitchkit/pkg/render"
	"github.com/matzehuels/stitchkit/pkg/verify"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format names.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDST  = "dst"
	FormatJSON = "json"
)

const (
	// DefaultIterations is the number of round trips verify runs.
	DefaultIterations = config.DefaultIterations

	// DefaultCodec is the codec verify exercises.
	DefaultCodec = config.DefaultCodec
)

// ValidRenderFormats is the set of image formats Render produces.
var ValidRenderFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures rendering and verification.
// Zero values select the renderer defaults.
type Options struct {
	// Render options
	Formats        []string `json:"formats,omitempty"`
	LineWidth      float64  `json:"line_width,omitempty"`
	StitchDiameter float64  `json:"stitch_diameter,omitempty"`
	Margin         *float64 `json:"margin,omitempty"`
	Scale          float64  `json:"scale,omitempty"`
	Metadata       bool     `json:"metadata,omitempty"`
	NoMarkers      bool     `json:"no_markers,omitempty"`

	// Verify options
	Codec      string `json:"codec,omitempty"`
	Iterations *int   `json:"iterations,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// OptionsFromConfig maps the [render] and [verify] config sections.
func OptionsFromConfig(cfg config.Config) Options {
	margin := cfg.Render.Margin
	iterations := cfg.Verify.Iterations
	return Options{
		LineWidth:      cfg.Render.LineWidth,
		StitchDiameter: cfg.Render.StitchDiameter,
		Margin:         &margin,
		Scale:          cfg.Render.PNGScale,
		Metadata:       cfg.Render.Metadata,
		NoMarkers:      !cfg.Render.Markers,
		Codec:          cfg.Verify.Codec,
		Iterations:     &iterations,
	}
}

// Result types

// RenderResult holds rendered images keyed by format.
type RenderResult struct {
	Artifacts map[string][]byte
	CacheHit  bool
	Duration  time.Duration
}

// VerifyResult is the outcome of a successful verification.
type VerifyResult struct {
	// Pattern is the pattern after the last round trip.
	Pattern *pattern.Pattern
	Report  *verify.Report
	// Encoded is Pattern written once more with the verified codec.
	Encoded  []byte
	Duration time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateRenderFormat checks that format is an image format.
func ValidateRenderFormat(format string) error {
	if !ValidRenderFormats[format] {
		return stitcherrors.New(stitcherrors.ErrCodeInvalidFormat,
			"invalid render format: %q (must be one of: svg, png)", format)
	}
	return nil
}

// ParseFormats splits a comma-separated list, trimming blanks and dropping
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero values.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.LineWidth == 0 {
		o.LineWidth = render.DefaultLineWidth
	}
	if o.StitchDiameter == 0 {
		o.StitchDiameter = render.DefaultStitchDiameter
	}
	if o.Margin == nil {
		m := float64(render.DefaultMargin)
		o.Margin = &m
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultScale
	}
	if o.Codec == "" {
		o.Codec = DefaultCodec
	}
	if o.Iterations == nil {
		n := DefaultIterations
		o.Iterations = &n
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and checks render options.
func (o *Options) ValidateForRender() error {
	o.SetDefaults()
	for _, f := range o.Formats {
		if err := ValidateRenderFormat(f); err != nil {
			return err
		}
	}
	if o.LineWidth < 0 || o.StitchDiameter < 0 || *o.Margin < 0 || o.Scale < 0 {
		return stitcherrors.New(stitcherrors.ErrCodeInvalidInput, "render sizes cannot be negative")
	}
	return nil
}

// ValidateForVerify sets defaults and checks verify options.
func (o *Options) ValidateForVerify() error {
	o.SetDefaults()
	return stitcherrors.ValidateIterations(*o.Iterations)
}

// RenderOptions converts o into renderer options.
func (o *Options) RenderOptions() []render.Option {
	o.SetDefaults()
	opts := []render.Option{
		render.WithLineWidth(o.LineWidth),
		render.WithStitchDiameter(o.StitchDiameter),
		render.WithMargin(*o.Margin),
		render.WithScale(o.Scale),
	}
	if o.Metadata {
		opts = append(opts, render.WithMetadata())
	}
	if o.NoMarkers {
		opts = append(opts, render.WithoutMarkers())
	}
	return opts
}

// RenderKeyOpts returns cache key options for one rendered format.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	o.SetDefaults()
	k := cache.RenderKeyOpts{
		Format:         format,
		LineWidth:      o.LineWidth,
		StitchDiameter: o.StitchDiameter,
		Margin:         *o.Margin,
		Metadata:       o.Metadata,
		NoMarkers:      o.NoMarkers,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
