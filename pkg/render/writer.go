package render

import (
	"io"

	"github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

// SVGWriter writes patterns as SVG documents.
type SVGWriter struct {
	Options []Option
}

// Write renders p and writes the document to w. A failed write is returned
// as an IO_ERROR; bytes already written stay written.
func (sw SVGWriter) Write(p *pattern.Pattern, w io.Writer) error {
	if _, err := w.Write(RenderSVG(p, sw.Options...)); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write svg")
	}
	return nil
}

// PNGWriter writes patterns as PNG previews.
type PNGWriter struct {
	Options []Option
}

// Write renders p and writes the image to w.
func (pw PNGWriter) Write(p *pattern.Pattern, w io.Writer) error {
	data, err := RenderPNG(p, pw.Options...)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write png")
	}
	return nil
}
