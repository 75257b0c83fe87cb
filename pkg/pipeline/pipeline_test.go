package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/stitchkit/pkg/cache"
	"github.com/matzehuels/stitchkit/pkg/config"
	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/format/dst"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

func samplePattern() *pattern.Pattern {
	return &pattern.Pattern{
		Attributes: []pattern.Attribute{{Key: pattern.AttrTitle, Value: "Rose"}},
		ColorGroups: []pattern.ColorGroup{
			{
				Thread: &pattern.Thread{Color: pattern.Color{R: 255}},
				StitchGroups: []pattern.StitchGroup{
					{Stitches: []pattern.Stitch{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 3, Y: 1}}},
				},
			},
			{
				StitchGroups: []pattern.StitchGroup{
					{Stitches: []pattern.Stitch{{X: 3, Y: 1}, {X: 4, Y: 4}}},
				},
			},
		},
	}
}

func encodeDST(t *testing.T, p *pattern.Pattern) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := (dst.Codec{}).Write(p, &buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestValidateRenderFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dst", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateRenderFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateRenderFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"svg, PNG", []string{"svg", "png"}},
		{"svg,,svg", []string{"svg"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if !reflect.DeepEqual(o.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Codec != DefaultCodec || *o.Iterations != DefaultIterations {
		t.Errorf("Codec, Iterations = %s, %d, want %s, %d", o.Codec, *o.Iterations, DefaultCodec, DefaultIterations)
	}
	if *o.Margin != 10 {
		t.Errorf("Margin = %v, want 10", *o.Margin)
	}

	zero := 0.0
	o = Options{Margin: &zero}
	o.SetDefaults()
	if *o.Margin != 0 {
		t.Errorf("explicit zero Margin = %v, want 0", *o.Margin)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Markers = false
	cfg.Verify.Iterations = 0
	o := OptionsFromConfig(cfg)
	if !o.NoMarkers {
		t.Error("NoMarkers = false, want true")
	}
	if err := o.ValidateForVerify(); err != nil {
		t.Fatal(err)
	}
	if *o.Iterations != 0 {
		t.Errorf("Iterations = %d, want 0 kept from config", *o.Iterations)
	}
}

func TestLoadCachesDecodedPattern(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	data := encodeDST(t, samplePattern())

	p1, err := r.Load(ctx, FormatDST, data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	key := r.Keyer.PatternKey(FormatDST, cache.Hash(data))
	if _, hit, _ := r.Cache.Get(ctx, key); !hit {
		t.Fatal("decoded pattern not cached")
	}
	p2, err := r.Load(ctx, FormatDST, data)
	if err != nil {
		t.Fatalf("Load (cached): %v", err)
	}
	if !reflect.DeepEqual(p1.Stitches(), p2.Stitches()) {
		t.Errorf("cached stitches = %v, want %v", p2.Stitches(), p1.Stitches())
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Load(context.Background(), "pes", nil)
	if !stitcherrors.Is(err, stitcherrors.ErrCodeInvalidFormat) {
		t.Errorf("Load error = %v, want %s", err, stitcherrors.ErrCodeInvalidFormat)
	}
	_, err = r.Load(context.Background(), FormatSVG, nil)
	if !stitcherrors.Is(err, stitcherrors.ErrCodeUnsupported) {
		t.Errorf("Load(svg) error = %v, want %s", err, stitcherrors.ErrCodeUnsupported)
	}
}

func TestLoadFile(t *testing.T) {
	r := newTestRunner(t)
	path := filepath.Join(t.TempDir(), "rose.dst")
	if err := os.WriteFile(path, encodeDST(t, samplePattern()), 0644); err != nil {
		t.Fatal(err)
	}
	p, name, err := r.LoadFile(context.Background(), path, "")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if name != FormatDST || p.StitchCount() != 5 {
		t.Errorf("LoadFile = %s with %d stitches, want dst with 5", name, p.StitchCount())
	}

	_, _, err = r.LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.dst"), "")
	if !stitcherrors.Is(err, stitcherrors.ErrCodeFileNotFound) {
		t.Errorf("LoadFile(missing) error = %v, want %s", err, stitcherrors.ErrCodeFileNotFound)
	}
}

func TestRenderWithCacheInfo(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	opts := Options{Formats: []string{FormatSVG, FormatPNG}}

	res, err := r.RenderWithCacheInfo(ctx, samplePattern(), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if res.CacheHit {
		t.Error("first render should miss the cache")
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact missing")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact missing")
	}

	res2, err := r.RenderWithCacheInfo(ctx, samplePattern(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !res2.CacheHit {
		t.Error("second render should hit the cache")
	}
	if !bytes.Equal(res2.Artifacts[FormatSVG], res.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}

	opts.Refresh = true
	res3, _ := r.RenderWithCacheInfo(ctx, samplePattern(), opts)
	if res3.CacheHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRenderOptionsChangeKey(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	if _, err := r.Render(ctx, samplePattern(), Options{}); err != nil {
		t.Fatal(err)
	}
	res, err := r.RenderWithCacheInfo(ctx, samplePattern(), Options{Metadata: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("different options should not hit the cache")
	}
	if !strings.Contains(string(res.Artifacts[FormatSVG]), "<title>Rose</title>") {
		t.Error("metadata render missing title")
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Render(context.Background(), samplePattern(), Options{Formats: []string{"pdf"}})
	if !stitcherrors.Is(err, stitcherrors.ErrCodeInvalidFormat) {
		t.Errorf("Render error = %v, want %s", err, stitcherrors.ErrCodeInvalidFormat)
	}
}

func TestVerify(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Verify(context.Background(), samplePattern(), Options{}, nil)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !res.Report.OK() || res.Report.Iterations != DefaultIterations {
		t.Errorf("report = %+v, want %d clean iterations", res.Report, DefaultIterations)
	}
	if len(res.Encoded) < 512 {
		t.Errorf("encoded = %d bytes, want a DST file", len(res.Encoded))
	}
}

func TestVerifyFidelityViolation(t *testing.T) {
	r := newTestRunner(t)
	p := samplePattern()
	p.Attributes = append(p.Attributes, pattern.Attribute{Key: "machine", Value: "x"})
	res, err := r.Verify(context.Background(), p, Options{}, nil)
	if !stitcherrors.Is(err, stitcherrors.ErrCodeFidelity) {
		t.Fatalf("Verify error = %v, want %s", err, stitcherrors.ErrCodeFidelity)
	}
	if res == nil || res.Report.OK() {
		t.Error("failed verify should still return the report")
	}
}

func TestVerifyWriteOnlyCodec(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Verify(context.Background(), samplePattern(), Options{Codec: FormatSVG}, nil)
	if !stitcherrors.Is(err, stitcherrors.ErrCodeUnsupported) {
		t.Errorf("Verify error = %v, want %s", err, stitcherrors.ErrCodeUnsupported)
	}
}

func TestConvert(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	p := samplePattern()

	data, err := r.Convert(ctx, p, FormatJSON, Options{})
	if err != nil {
		t.Fatalf("Convert(json): %v", err)
	}
	back, err := r.Load(ctx, FormatJSON, data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, p) {
		t.Errorf("json round trip = %+v, want %+v", back, p)
	}

	svg, err := r.Convert(ctx, p, FormatSVG, Options{NoMarkers: true})
	if err != nil {
		t.Fatalf("Convert(svg): %v", err)
	}
	if strings.Contains(string(svg), "<circle") {
		t.Error("converted svg should honour NoMarkers")
	}
}
