package io

import (
	"encoding/json"
	"io"
	"os"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

type document struct {
	Attributes  []attribute  `json:"attributes"`
	ColorGroups []colorGroup `json:"color_groups"`
}

type attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type thread struct {
	Color pattern.Color `json:"color"`
	Name  string        `json:"name,omitempty"`
	Code  string        `json:"code,omitempty"`
}

type colorGroup struct {
	Thread       *thread       `json:"thread,omitempty"`
	StitchGroups []stitchGroup `json:"stitch_groups"`
}

type stitchGroup struct {
	Stitches []point `json:"stitches"`
}

// point is a stitch encoded as an [x, y] array.
type point [2]float64

// WriteJSON encodes a pattern as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] without loss. Encoding
// failures are ENCODE_ERROR; failures of w are IO_ERROR.
func WriteJSON(p *pattern.Pattern, w io.Writer) error {
	out := document{
		Attributes:  make([]attribute, len(p.Attributes)),
		ColorGroups: make([]colorGroup, len(p.ColorGroups)),
	}
	for i, a := range p.Attributes {
		out.Attributes[i] = attribute{Key: a.Key, Value: a.Value}
	}
	for i, cg := range p.ColorGroups {
		g := colorGroup{StitchGroups: make([]stitchGroup, len(cg.StitchGroups))}
		if cg.Thread != nil {
			g.Thread = &thread{Color: cg.Thread.Color, Name: cg.Thread.Name, Code: cg.Thread.Code}
		}
		for j, sg := range cg.StitchGroups {
			pts := make([]point, len(sg.Stitches))
			for k, s := range sg.Stitches {
				pts[k] = point{s.X, s.Y}
			}
			g.StitchGroups[j] = stitchGroup{Stitches: pts}
		}
		out.ColorGroups[i] = g
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return stitcherrors.Wrap(stitcherrors.ErrCodeEncode, err, "json: encode")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return stitcherrors.Wrap(stitcherrors.ErrCodeIO, err, "json: write")
	}
	return nil
}

// ExportJSON writes a pattern to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(p *pattern.Pattern, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return stitcherrors.Wrap(stitcherrors.ErrCodeIO, err, "create %s", path)
	}
	if err := WriteJSON(p, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return stitcherrors.Wrap(stitcherrors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
