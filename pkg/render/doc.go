// Package render turns embroidery patterns into images.
//
// # Overview
//
// Two outputs are supported:
//
//   - SVG: a layered vector document, one group per color group ([RenderSVG])
//   - PNG: a raster preview of the same layers ([RenderPNG])
//
// Both share the same geometry and color resolution, so a PNG preview looks
// like the SVG it was produced alongside.
//
// # Coordinates
//
// Patterns use millimetres with y increasing upward. Images grow downward, so
// every point goes through [Transform], which flips y against the pattern's
// maximum y. The visible area is the pattern's bounding box grown by a margin
// on every side ([ViewportFor]), so strokes and stitch markers at the edge are
// not clipped.
//
// # Colors
//
// A color group with a thread is drawn in the thread's color. Groups without
// a thread receive colors from the palette package, numbered in pattern order
// among the thread-less groups only ([ResolveColors]).
//
// # SVG Structure
//
//	<svg viewBox="minX-10 -10 w+20 h+20" width="..mm" height="..mm">
//	  <g stroke="#color" stroke-width="0.2" ...>        one per color group
//	    <g class="emb_ignore stitch-markers" fill="#color">
//	      <circle .../>                                 one per stitch
//	    </g>
//	    <path class="stitch-trace" d="M.. L.. L.."/>    one per stitch group
//	  </g>
//	</svg>
//
// The marker layer is a debugging aid. Viewers can hide it by its class.
//
// Basic usage:
//
//	svg := render.RenderSVG(p)
//	svg = render.RenderSVG(p, render.WithMetadata(), render.WithMargin(5))
//
// # Writers
//
// [SVGWriter] and [PNGWriter] wrap the renderers in the same Write(pattern,
// sink) shape the binary codecs use, so a renderer can stand wherever a
// pattern writer is expected.
package render
