// Package format defines the codec abstraction shared by every pattern
// format.
//
// A format is a pair of capabilities: a [Reader] that decodes a pattern from a
// byte source and a [Writer] that encodes a pattern to a byte sink. Binary
// stitch codecs implement both; image renderers implement only [Writer]. Code
// that exercises a codec, such as the round-trip verifier, is written once
// against these interfaces.
//
// A [Registry] maps format names and file extensions to codecs so the CLI and
// the HTTP service can pick one from a path or a query parameter.
package format

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

// Reader decodes a pattern from r.
type Reader interface {
	Read(r io.Reader) (*pattern.Pattern, error)
}

// Writer encodes p to w.
type Writer interface {
	Write(p *pattern.Pattern, w io.Writer) error
}

// ReaderFunc adapts a function to [Reader].
type ReaderFunc func(r io.Reader) (*pattern.Pattern, error)

// Read calls f(r).
func (f ReaderFunc) Read(r io.Reader) (*pattern.Pattern, error) { return f(r) }

// WriterFunc adapts a function to [Writer].
type WriterFunc func(p *pattern.Pattern, w io.Writer) error

// Write calls f(p, w).
func (f WriterFunc) Write(p *pattern.Pattern, w io.Writer) error { return f(p, w) }

// Codec describes one named format. Reader or Writer may be nil for
// one-directional formats.
type Codec struct {
	Name       string   // e.g. "dst"
	Extensions []string // lowercase, with dot, e.g. ".dst"
	Reader     Reader
	Writer     Writer
}

// CanRead reports whether the codec decodes patterns.
func (c Codec) CanRead() bool { return c.Reader != nil }

// CanWrite reports whether the codec encodes patterns.
func (c Codec) CanWrite() bool { return c.Writer != nil }

// RoundTrips reports whether the codec can be exercised by the verifier.
func (c Codec) RoundTrips() bool { return c.CanRead() && c.CanWrite() }

// Registry maps names and extensions to codecs.
// It is not safe for concurrent registration; build it once at startup.
type Registry struct {
	byName map[string]Codec
	byExt  map[string]string
}

// NewRegistry returns a registry holding codecs.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{byName: make(map[string]Codec), byExt: make(map[string]string)}
	for _, c := range codecs {
		r.Register(c)
	}
	return r
}

// Register adds or replaces a codec. Names are matched case-insensitively.
func (r *Registry) Register(c Codec) {
	name := strings.ToLower(c.Name)
	r.byName[name] = c
	for _, ext := range c.Extensions {
		r.byExt[strings.ToLower(ext)] = name
	}
}

// Lookup returns the codec registered under name.
func (r *Registry) Lookup(name string) (Codec, error) {
	c, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Codec{}, errors.New(errors.ErrCodeInvalidFormat,
			"unknown format: %s (must be one of %s)", name, strings.Join(r.Names(), ", "))
	}
	return c, nil
}

// ForPath returns the codec for path's extension.
func (r *Registry) ForPath(path string) (Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))
	name, ok := r.byExt[ext]
	if !ok {
		return Codec{}, errors.New(errors.ErrCodeInvalidFormat, "no format for extension %q (%s)", ext, path)
	}
	return r.byName[name], nil
}

// Reader returns the decoder registered under name.
func (r *Registry) Reader(name string) (Reader, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !c.CanRead() {
		return nil, errors.New(errors.ErrCodeUnsupported, "format %s cannot be read", name)
	}
	return c.Reader, nil
}

// Writer returns the encoder registered under name.
func (r *Registry) Writer(name string) (Writer, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !c.CanWrite() {
		return nil, errors.New(errors.ErrCodeUnsupported, "format %s cannot be written", name)
	}
	return c.Writer, nil
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
