package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stitchkit/pkg/cache"
	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/format"
	stitchio "github.com/matzehuels/stitchkit/pkg/io"
	"github.com/matzehuels/stitchkit/pkg/observability"
	"github.com/matzehuels/stitchkit/pkg/pattern"
	"github.com/matzehuels/stitchkit/pkg/render"
	"github.com/matzehuels/stitchkit/pkg/verify"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, the format registry and the
// logger. Multiple goroutines can safely use the same Runner.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Formats *format.Registry
	Logger  *log.Logger
	// TTL overrides the per-type cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Cache events are reported to the observability hooks.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   cache.Instrument(c),
		Keyer:   keyer,
		Formats: NewRegistry(logger),
		Logger:  logger,
	}
}

// Load decodes data in the named format. Decoded non-JSON patterns are
// cached as JSON under the hash of data.
func (r *Runner) Load(ctx context.Context, name string, data []byte) (p *pattern.Pattern, err error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, name)
	start := time.Now()
	defer func() {
		n := 0
		if p != nil {
			n = p.StitchCount()
		}
		hooks.OnLoadComplete(ctx, name, n, time.Since(start), err)
	}()

	reader, err := r.Formats.Reader(name)
	if err != nil {
		return nil, err
	}

	cacheable := name != FormatJSON
	key := r.Keyer.PatternKey(name, cache.Hash(data))
	if cacheable {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if p, err := stitchio.ReadJSON(bytes.NewReader(cached)); err == nil {
				r.Logger.Debug("pattern cache hit", "format", name)
				return p, nil
			}
		}
	}

	p, err = reader.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if cacheable {
		var buf bytes.Buffer
		if err := stitchio.WriteJSON(p, &buf); err == nil {
			_ = r.Cache.Set(ctx, key, buf.Bytes(), r.ttl(cache.TTLPattern))
		}
	}
	return p, nil
}

// LoadFile reads and decodes path. An empty name picks the format from the
// file extension. It returns the pattern and the format name used.
func (r *Runner) LoadFile(ctx context.Context, path, name string) (*pattern.Pattern, string, error) {
	if err := stitcherrors.ValidatePath(path); err != nil {
		return nil, "", err
	}
	if name == "" {
		c, err := r.Formats.ForPath(path)
		if err != nil {
			return nil, "", err
		}
		name = c.Name
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", stitcherrors.Wrap(stitcherrors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, "", stitcherrors.Wrap(stitcherrors.ErrCodeIO, err, "read %s", path)
	}
	p, err := r.Load(ctx, name, data)
	if err != nil {
		return nil, "", err
	}
	r.Logger.Info("loaded pattern", "file", path, "format", name,
		"color_groups", len(p.ColorGroups), "stitches", p.StitchCount())
	return p, name, nil
}

// RenderWithCacheInfo renders every requested format, serving all of them
// from the cache when possible.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *pattern.Pattern, opts Options) (res *RenderResult, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	hash, err := patternHash(p)
	if err != nil {
		return nil, err
	}

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, f := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.RenderKey(hash, opts.RenderKeyOpts(f)))
			if err != nil || !hit {
				break
			}
			artifacts[f] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return &RenderResult{Artifacts: artifacts, CacheHit: true, Duration: time.Since(start)}, nil
		}
	}

	ropts := opts.RenderOptions()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		var data []byte
		switch f {
		case FormatSVG:
			data = render.RenderSVG(p, ropts...)
		case FormatPNG:
			if data, err = render.RenderPNG(p, ropts...); err != nil {
				return nil, err
			}
		}
		artifacts[f] = data
		_ = r.Cache.Set(ctx, r.Keyer.RenderKey(hash, opts.RenderKeyOpts(f)), data, r.ttl(cache.TTLRender))
	}

	r.Logger.Debug("rendered", "formats", opts.Formats, "duration", time.Since(start))
	return &RenderResult{Artifacts: artifacts, Duration: time.Since(start)}, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, p *pattern.Pattern, opts Options) (map[string][]byte, error) {
	res, err := r.RenderWithCacheInfo(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	return res.Artifacts, nil
}

// Verify round-trips p through opts.Codec opts.Iterations times and encodes
// the final pattern once more. reporter may be nil to log divergences.
func (r *Runner) Verify(ctx context.Context, p *pattern.Pattern, opts Options, reporter verify.Reporter) (*VerifyResult, error) {
	if err := opts.ValidateForVerify(); err != nil {
		return nil, err
	}
	c, err := r.Formats.Lookup(opts.Codec)
	if err != nil {
		return nil, err
	}
	if !c.RoundTrips() {
		return nil, stitcherrors.New(stitcherrors.ErrCodeUnsupported, "format %s cannot be read back", c.Name)
	}

	start := time.Now()
	v := &verify.Verifier{
		Name:     c.Name,
		Reader:   c.Reader,
		Writer:   c.Writer,
		Logger:   r.Logger,
		Reporter: reporter,
	}
	out, report, err := v.Run(ctx, p, *opts.Iterations)
	if err != nil {
		return &VerifyResult{Report: report, Duration: time.Since(start)}, err
	}

	var buf bytes.Buffer
	if err := c.Writer.Write(out, &buf); err != nil {
		return nil, stitcherrors.Wrap(stitcherrors.ErrCodeEncode, err, "encode verified pattern")
	}
	r.Logger.Info("round trip verified", "codec", c.Name, "iterations", report.Iterations,
		"duration", time.Since(start))
	return &VerifyResult{Pattern: out, Report: report, Encoded: buf.Bytes(), Duration: time.Since(start)}, nil
}

// Convert encodes p in the named format. Image formats use opts' render
// settings.
func (r *Runner) Convert(ctx context.Context, p *pattern.Pattern, to string, opts Options) ([]byte, error) {
	if ValidRenderFormats[to] {
		opts.Formats = []string{to}
		artifacts, err := r.Render(ctx, p, opts)
		if err != nil {
			return nil, err
		}
		return artifacts[to], nil
	}
	w, err := r.Formats.Writer(to)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := w.Write(p, &buf); err != nil {
		return nil, stitcherrors.Wrap(stitcherrors.ErrCodeEncode, err, "encode %s", to)
	}
	return buf.Bytes(), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// patternHash is the content hash of p's JSON encoding.
func patternHash(p *pattern.Pattern) (string, error) {
	var buf bytes.Buffer
	if err := stitchio.WriteJSON(p, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}
