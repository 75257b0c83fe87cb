package render

import "github.com/matzehuels/stitchkit/pkg/pattern"

// DefaultMargin is the space added around the pattern on every side, in mm.
const DefaultMargin = 10.0

// Transform maps pattern coordinates (y up) to image coordinates (y down).
// Only y changes: y' = MaxY - y.
type Transform struct {
	MaxY float64
}

// TransformFor returns the transform for a pattern's bounding box.
func TransformFor(b pattern.Bounds) Transform {
	return Transform{MaxY: b.MaxY}
}

// Apply converts a stitch to image coordinates.
func (t Transform) Apply(s pattern.Stitch) (x, y float64) {
	return s.X, t.MaxY - s.Y
}

// Invert converts image coordinates back to a stitch.
// The reflection is its own inverse.
func (t Transform) Invert(x, y float64) pattern.Stitch {
	return pattern.Stitch{X: x, Y: t.MaxY - y}
}

// Viewport is the visible image area in image coordinates.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// ViewportFor grows b by margin on each side. After the y flip the pattern
// spans [0, height] vertically, so the origin is (MinX - margin, -margin).
func ViewportFor(b pattern.Bounds, margin float64) Viewport {
	return Viewport{
		X:      b.MinX - margin,
		Y:      -margin,
		Width:  b.Width() + 2*margin,
		Height: b.Height() + 2*margin,
	}
}
