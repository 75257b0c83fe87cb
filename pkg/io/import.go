package io

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

// ReadJSON decodes a JSON pattern from r.
//
// Missing "attributes" or "color_groups" arrays decode as empty. ReadJSON
// returns a DECODE_ERROR if the JSON is malformed, a thread color is not a
// hex color, or a stitch is not a pair of numbers.
//
// The returned pattern is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*pattern.Pattern, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, stitcherrors.Wrap(stitcherrors.ErrCodeDecode, err, "json: decode")
	}

	p := &pattern.Pattern{}
	for _, a := range data.Attributes {
		p.Attributes = append(p.Attributes, pattern.Attribute{Key: a.Key, Value: a.Value})
	}
	for _, g := range data.ColorGroups {
		cg := pattern.ColorGroup{StitchGroups: make([]pattern.StitchGroup, len(g.StitchGroups))}
		if g.Thread != nil {
			cg.Thread = &pattern.Thread{Color: g.Thread.Color, Name: g.Thread.Name, Code: g.Thread.Code}
		}
		for j, sg := range g.StitchGroups {
			stitches := make([]pattern.Stitch, len(sg.Stitches))
			for k, pt := range sg.Stitches {
				stitches[k] = pattern.Stitch{X: pt[0], Y: pt[1]}
			}
			cg.StitchGroups[j] = pattern.StitchGroup{Stitches: stitches}
		}
		p.ColorGroups = append(p.ColorGroups, cg)
	}
	return p, nil
}

// ImportJSON reads a JSON file at path and returns the decoded pattern.
// A missing file yields FILE_NOT_FOUND.
func ImportJSON(path string) (*pattern.Pattern, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, stitcherrors.Wrap(stitcherrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, stitcherrors.Wrap(stitcherrors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// UnmarshalJSON requires exactly two coordinates.
func (pt *point) UnmarshalJSON(b []byte) error {
	var xs []float64
	if err := json.Unmarshal(b, &xs); err != nil {
		return err
	}
	if len(xs) != 2 {
		return stitcherrors.New(stitcherrors.ErrCodeDecode, "stitch has %d coordinates, want 2", len(xs))
	}
	pt[0], pt[1] = xs[0], xs[1]
	return nil
}
