package render_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/stitchkit/pkg/pattern"
	"github.com/matzehuels/stitchkit/pkg/render"
)

func ExampleRenderSVG() {
	p := &pattern.Pattern{ColorGroups: []pattern.ColorGroup{{
		Thread: &pattern.Thread{Color: pattern.Color{R: 0x20, G: 0x40, B: 0x80}},
		StitchGroups: []pattern.StitchGroup{
			{Stitches: []pattern.Stitch{{X: 0, Y: 0}, {X: 3, Y: 4}}},
		},
	}}}

	svg := string(render.RenderSVG(p, render.WithoutMarkers()))
	for _, line := range strings.Split(svg, "\n")[2:4] {
		fmt.Println(line)
	}
	// Output:
	//   <g fill="none" stroke="#204080" stroke-width="0.2" stroke-linecap="round" stroke-linejoin="round">
	//     <path class="stitch-trace" d="M0 4 L3 0"/>
}

func ExampleTransform() {
	tf := render.Transform{MaxY: 10}
	x, y := tf.Apply(pattern.Stitch{X: 2, Y: 10})
	fmt.Println(x, y)
	// Output: 2 0
}
