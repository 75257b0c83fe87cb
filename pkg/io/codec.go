package io

import (
	"io"

	"github.com/matzehuels/stitchkit/pkg/pattern"
)

// Codec exposes the JSON format through the format.Reader and format.Writer
// interfaces.
type Codec struct{}

// Read calls [ReadJSON].
func (Codec) Read(r io.Reader) (*pattern.Pattern, error) { return ReadJSON(r) }

// Write calls [WriteJSON].
func (Codec) Write(p *pattern.Pattern, w io.Writer) error { return WriteJSON(p, w) }
