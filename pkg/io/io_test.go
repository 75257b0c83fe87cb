package io

import (
	"bytes"
	"errors"
	"io"
	"math"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

func samplePattern() *pattern.Pattern {
	return &pattern.Pattern{
		Attributes: []pattern.Attribute{
			{Key: pattern.AttrTitle, Value: "Rose"},
			{Key: "machine", Value: "PR1055X"},
		},
		ColorGroups: []pattern.ColorGroup{
			{
				Thread: &pattern.Thread{Color: pattern.Color{R: 200, G: 10, B: 10}, Name: "Red", Code: "1147"},
				StitchGroups: []pattern.StitchGroup{
					{Stitches: []pattern.Stitch{{X: 0, Y: 0}, {X: 0.1, Y: 1.0 / 3}}},
					{Stitches: []pattern.Stitch{}},
				},
			},
			{
				StitchGroups: []pattern.StitchGroup{
					{Stitches: []pattern.Stitch{{X: -2.25, Y: 1e-9}}},
				},
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	p := samplePattern()
	var buf bytes.Buffer
	if err := WriteJSON(p, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Errorf("ReadJSON(WriteJSON(p)) = %+v, want %+v", got, p)
	}
}

func TestReadJSON(t *testing.T) {
	input := `{
		"attributes": [{"key": "author", "value": "ada"}],
		"color_groups": [
			{"thread": {"color": "#00ff00"}, "stitch_groups": [{"stitches": [[1, 2], [3, 4]]}]}
		]
	}`
	p, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got, _ := p.Attribute(pattern.AttrAuthor); got != "ada" {
		t.Errorf("author = %q, want %q", got, "ada")
	}
	if c := p.ColorGroups[0].Thread.Color; c != (pattern.Color{G: 255}) {
		t.Errorf("thread color = %v, want #00ff00", c)
	}
	want := []pattern.Stitch{{X: 1, Y: 2}, {X: 3, Y: 4}}
	if got := p.Stitches(); !reflect.DeepEqual(got, want) {
		t.Errorf("stitches = %v, want %v", got, want)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"color_groups": [`},
		{"bad color", `{"color_groups": [{"thread": {"color": "red"}}]}`},
		{"short stitch", `{"color_groups": [{"stitch_groups": [{"stitches": [[1]]}]}]}`},
		{"string stitch", `{"color_groups": [{"stitch_groups": [{"stitches": [["a", "b"]]}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !stitcherrors.Is(err, stitcherrors.ErrCodeDecode) {
				t.Errorf("ReadJSON error = %v, want %s", err, stitcherrors.ErrCodeDecode)
			}
		})
	}
}

func TestReadJSONEmpty(t *testing.T) {
	p, err := ReadJSON(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(p.ColorGroups) != 0 || len(p.Attributes) != 0 {
		t.Errorf("ReadJSON({}) = %+v, want empty pattern", p)
	}
}

func TestExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rose.json")
	p := samplePattern()
	if err := ExportJSON(p, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if got.StitchCount() != p.StitchCount() {
		t.Errorf("StitchCount = %d, want %d", got.StitchCount(), p.StitchCount())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteJSONErrors(t *testing.T) {
	nan := samplePattern()
	nan.ColorGroups[0].StitchGroups[0].Stitches[0].X = math.NaN()

	tests := []struct {
		name string
		p    *pattern.Pattern
		w    io.Writer
		want stitcherrors.Code
	}{
		{"unencodable coordinate", nan, &bytes.Buffer{}, stitcherrors.ErrCodeEncode},
		{"sink failure", samplePattern(), failingWriter{}, stitcherrors.ErrCodeIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WriteJSON(tt.p, tt.w)
			if !stitcherrors.Is(err, tt.want) {
				t.Errorf("WriteJSON error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestExportJSONErrors(t *testing.T) {
	dir := t.TempDir()
	if err := ExportJSON(samplePattern(), dir); !stitcherrors.Is(err, stitcherrors.ErrCodeIO) {
		t.Errorf("ExportJSON(dir) error = %v, want %s", err, stitcherrors.ErrCodeIO)
	}

	nan := samplePattern()
	nan.ColorGroups[0].StitchGroups[0].Stitches[0].Y = math.Inf(1)
	if err := ExportJSON(nan, filepath.Join(dir, "bad.json")); !stitcherrors.Is(err, stitcherrors.ErrCodeEncode) {
		t.Errorf("ExportJSON(+Inf) error = %v, want %s", err, stitcherrors.ErrCodeEncode)
	}
}

func TestImportJSONMissing(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !stitcherrors.Is(err, stitcherrors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON error = %v, want %s", err, stitcherrors.ErrCodeFileNotFound)
	}
}
