package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/stitchkit/pkg/format"
	"github.com/matzehuels/stitchkit/pkg/format/dst"
	stitchio "github.com/matzehuels/stitchkit/pkg/io"
	"github.com/matzehuels/stitchkit/pkg/render"
)

// NewRegistry returns the formats stitchkit knows: dst and json read and
// write, svg and png write only. The image writers use default options;
// Runner.Convert substitutes the caller's render options.
func NewRegistry(logger *log.Logger) *format.Registry {
	dstCodec := dst.Codec{Logger: logger}
	return format.NewRegistry(
		format.Codec{Name: FormatDST, Extensions: []string{".dst"}, Reader: dstCodec, Writer: dstCodec},
		format.Codec{Name: FormatJSON, Extensions: []string{".json"}, Reader: stitchio.Codec{}, Writer: stitchio.Codec{}},
		format.Codec{Name: FormatSVG, Extensions: []string{".svg"}, Writer: render.SVGWriter{}},
		format.Codec{Name: FormatPNG, Extensions: []string{".png"}, Writer: render.PNGWriter{}},
	)
}
