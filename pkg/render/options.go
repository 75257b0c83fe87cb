package render

const (
	// DefaultLineWidth is the stroke width of thread traces in mm.
	DefaultLineWidth = 0.2
	// DefaultStitchDiameter is the diameter of stitch markers in mm.
	DefaultStitchDiameter = 0.4
	// DefaultScale is the PNG resolution in pixels per mm.
	DefaultScale = 10.0
)

// Option configures a renderer.
type Option func(*options)

type options struct {
	lineWidth      float64
	stitchDiameter float64
	margin         float64
	scale          float64
	metadata       bool
	markers        bool
	alloc          Allocator
}

func newOptions(opts ...Option) options {
	o := options{
		lineWidth:      DefaultLineWidth,
		stitchDiameter: DefaultStitchDiameter,
		margin:         DefaultMargin,
		scale:          DefaultScale,
		markers:        true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLineWidth sets the trace stroke width in mm.
func WithLineWidth(w float64) Option { return func(o *options) { o.lineWidth = w } }

// WithStitchDiameter sets the stitch marker diameter in mm.
func WithStitchDiameter(d float64) Option { return func(o *options) { o.stitchDiameter = d } }

// WithMargin sets the space around the pattern in mm.
func WithMargin(m float64) Option { return func(o *options) { o.margin = m } }

// WithScale sets the PNG resolution in pixels per mm. Ignored by SVG.
func WithScale(s float64) Option { return func(o *options) { o.scale = s } }

// WithMetadata adds a <title> and a <metadata> block listing the pattern's
// attributes to SVG output.
func WithMetadata() Option { return func(o *options) { o.metadata = true } }

// WithoutMarkers omits the stitch marker layer.
func WithoutMarkers() Option { return func(o *options) { o.markers = false } }

// WithAllocator replaces the palette used for thread-less color groups.
func WithAllocator(a Allocator) Option { return func(o *options) { o.alloc = a } }
