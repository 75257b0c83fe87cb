package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/stitchkit/pkg/pattern"
)

const svgHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n"

// RenderSVG renders p as an SVG document. Output is byte-for-byte stable for
// the same pattern and options.
func RenderSVG(p *pattern.Pattern, opts ...Option) []byte {
	o := newOptions(opts...)

	bounds := p.Bounds()
	tf := TransformFor(bounds)
	vp := ViewportFor(bounds, o.margin)
	colors := ResolveColors(p, o.alloc)

	var buf bytes.Buffer
	buf.WriteString(svgHeader)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" preserveAspectRatio="xMidYMid meet" shape-rendering="geometricPrecision" width="%smm" height="%smm" viewBox="%s %s %s %s">`+"\n",
		num(vp.Width), num(vp.Height), num(vp.X), num(vp.Y), num(vp.Width), num(vp.Height))

	if o.metadata {
		renderMetadata(&buf, p)
	}
	for i, cg := range p.ColorGroups {
		renderColorGroup(&buf, &o, tf, cg, colors[i])
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderColorGroup(buf *bytes.Buffer, o *options, tf Transform, cg pattern.ColorGroup, c pattern.Color) {
	fmt.Fprintf(buf, `  <g fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round">`+"\n",
		c, num(o.lineWidth))
	for _, sg := range cg.StitchGroups {
		if o.markers {
			renderMarkers(buf, o, tf, sg, c)
		}
		fmt.Fprintf(buf, `    <path class="stitch-trace" d="%s"/>`+"\n", tracePath(tf, sg))
	}
	buf.WriteString("  </g>\n")
}

func renderMarkers(buf *bytes.Buffer, o *options, tf Transform, sg pattern.StitchGroup, c pattern.Color) {
	fmt.Fprintf(buf, `    <g class="emb_ignore stitch-markers" stroke="none" fill="%s">`+"\n", c)
	r := num(o.stitchDiameter / 2)
	for _, s := range sg.Stitches {
		x, y := tf.Apply(s)
		fmt.Fprintf(buf, `      <circle cx="%s" cy="%s" r="%s"/>`+"\n", num(x), num(y), r)
	}
	buf.WriteString("    </g>\n")
}

// tracePath builds "M x y L x y ..." through every stitch. An empty group
// yields "".
func tracePath(tf Transform, sg pattern.StitchGroup) string {
	var d bytes.Buffer
	for i, s := range sg.Stitches {
		x, y := tf.Apply(s)
		if i == 0 {
			d.WriteString("M")
		} else {
			d.WriteString(" L")
		}
		d.WriteString(num(x))
		d.WriteByte(' ')
		d.WriteString(num(y))
	}
	return d.String()
}

func renderMetadata(buf *bytes.Buffer, p *pattern.Pattern) {
	if title := p.Title(); title != "" {
		buf.WriteString("  <title>")
		_ = xml.EscapeText(buf, []byte(title))
		buf.WriteString("</title>\n")
	}
	attrs := p.AttributeSet().Sorted()
	if len(attrs) == 0 {
		return
	}
	buf.WriteString("  <metadata>\n")
	for _, a := range attrs {
		buf.WriteString(`    <attribute key="`)
		_ = xml.EscapeText(buf, []byte(a.Key))
		buf.WriteString(`">`)
		_ = xml.EscapeText(buf, []byte(a.Value))
		buf.WriteString("</attribute>\n")
	}
	buf.WriteString("  </metadata>\n")
}

// num formats v with the fewest digits that round-trip.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
