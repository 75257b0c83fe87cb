package format

import (
	"bytes"
	"io"
	"testing"

	"github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

func testRegistry() *Registry {
	read := ReaderFunc(func(io.Reader) (*pattern.Pattern, error) { return &pattern.Pattern{}, nil })
	write := WriterFunc(func(*pattern.Pattern, io.Writer) error { return nil })
	return NewRegistry(
		Codec{Name: "dst", Extensions: []string{".dst"}, Reader: read, Writer: write},
		Codec{Name: "svg", Extensions: []string{".svg"}, Writer: write},
	)
}

func TestRegistryLookup(t *testing.T) {
	r := testRegistry()

	if _, err := r.Lookup("dst"); err != nil {
		t.Errorf("Lookup(dst) error: %v", err)
	}
	if _, err := r.Lookup("DST"); err != nil {
		t.Errorf("Lookup should be case-insensitive: %v", err)
	}
	_, err := r.Lookup("pes")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Lookup(pes) code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestRegistryMixedCaseName(t *testing.T) {
	r := NewRegistry(Codec{Name: "JSON", Extensions: []string{".JSON"}, Writer: WriterFunc(func(*pattern.Pattern, io.Writer) error { return nil })})

	for _, name := range []string{"json", "JSON", "Json"} {
		if _, err := r.Lookup(name); err != nil {
			t.Errorf("Lookup(%q) error: %v", name, err)
		}
	}
	c, err := r.ForPath("leaf.json")
	if err != nil || c.Name != "JSON" {
		t.Errorf("ForPath(leaf.json) = %q, %v, want JSON", c.Name, err)
	}
	if got := r.Names(); len(got) != 1 || got[0] != "json" {
		t.Errorf("Names() = %v, want [json]", got)
	}
}

func TestRegistryForPath(t *testing.T) {
	r := testRegistry()
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"logo.dst", "dst", false},
		{"dir/LOGO.DST", "dst", false},
		{"out.svg", "svg", false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		c, err := r.ForPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if c.Name != tt.want {
			t.Errorf("ForPath(%q) = %q, want %q", tt.path, c.Name, tt.want)
		}
	}
}

func TestRegistryDirections(t *testing.T) {
	r := testRegistry()

	if _, err := r.Reader("svg"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Reader(svg) should be unsupported, got %v", err)
	}
	if _, err := r.Writer("svg"); err != nil {
		t.Errorf("Writer(svg) error: %v", err)
	}

	c, _ := r.Lookup("dst")
	if !c.RoundTrips() {
		t.Error("dst should round trip")
	}
	c, _ = r.Lookup("svg")
	if c.RoundTrips() {
		t.Error("svg should not round trip")
	}
}

func TestNames(t *testing.T) {
	got := testRegistry().Names()
	if len(got) != 2 || got[0] != "dst" || got[1] != "svg" {
		t.Errorf("Names() = %v, want [dst svg]", got)
	}
}

func TestFuncAdapters(t *testing.T) {
	var gotW bool
	w := WriterFunc(func(p *pattern.Pattern, out io.Writer) error {
		gotW = true
		_, err := out.Write([]byte("x"))
		return err
	})
	var buf bytes.Buffer
	if err := w.Write(&pattern.Pattern{}, &buf); err != nil || !gotW || buf.String() != "x" {
		t.Errorf("WriterFunc did not delegate: err=%v called=%v out=%q", err, gotW, buf.String())
	}
}
