package render

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

// MaxPNGDimension caps either side of a PNG preview in pixels.
const MaxPNGDimension = 16384

// RenderPNG renders a raster preview of p on a white background. Layers and
// colors match [RenderSVG]; the resolution is set with [WithScale].
func RenderPNG(p *pattern.Pattern, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	if o.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", o.scale)
	}

	bounds := p.Bounds()
	tf := TransformFor(bounds)
	vp := ViewportFor(bounds, o.margin)
	colors := ResolveColors(p, o.alloc)

	w := int(math.Ceil(vp.Width * o.scale))
	h := int(math.Ceil(vp.Height * o.scale))
	if w < 1 || h < 1 || w > MaxPNGDimension || h > MaxPNGDimension {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png size %dx%d outside 1..%d", w, h, MaxPNGDimension)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(o.scale, o.scale)
	dc.Translate(-vp.X, -vp.Y)
	// Line width is in device pixels; path points go through the matrix.
	dc.SetLineWidth(o.lineWidth * o.scale)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for i, cg := range p.ColorGroups {
		c := colors[i]
		dc.SetRGB255(int(c.R), int(c.G), int(c.B))
		for _, sg := range cg.StitchGroups {
			if o.markers && len(sg.Stitches) > 0 {
				for _, s := range sg.Stitches {
					x, y := tf.Apply(s)
					dc.DrawCircle(x, y, o.stitchDiameter/2)
				}
				dc.Fill()
			}
			if len(sg.Stitches) == 0 {
				continue
			}
			for j, s := range sg.Stitches {
				x, y := tf.Apply(s)
				if j == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.Stroke()
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode png")
	}
	return buf.Bytes(), nil
}
