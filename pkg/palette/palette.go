// Package palette assigns display colors to color groups that have no thread.
//
// Colors are spread evenly around the hue circle of CIE LCh(ab) at a fixed
// lightness and chroma, then converted to sRGB. Even spacing in a perceptual
// space keeps neighbouring groups distinguishable regardless of how many
// there are, and the mapping is a pure function of (index, total), so renders
// are reproducible.
package palette

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/stitchkit/pkg/pattern"
)

const (
	// Lightness is the LCh lightness of generated colors (L* = 50).
	Lightness = 50.0
	// Chroma is the LCh chroma of generated colors (C* = 100).
	Chroma = 100.0
)

// Hue returns the hue in degrees for the i-th of n generated colors.
func Hue(i, n int) float64 {
	if n <= 0 {
		panic(fmt.Sprintf("palette: total must be positive, got %d", n))
	}
	return float64(i) * 360 / float64(n)
}

// Generate returns the i-th of n evenly spaced colors. i counts only the
// color groups without a thread, starting at 0. n must be at least 1.
func Generate(i, n int) pattern.Color {
	// go-colorful scales L and C to [0, 1].
	c := colorful.Hcl(Hue(i, n), Chroma/100, Lightness/100).Clamped()
	r, g, b := c.RGB255()
	return pattern.Color{R: r, G: g, B: b}
}
