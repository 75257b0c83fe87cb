package render

import (
	"github.com/matzehuels/stitchkit/pkg/palette"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

// Allocator produces the i-th of n generated colors.
type Allocator func(i, n int) pattern.Color

// colorFold carries the generated-color counter through the color groups.
type colorFold struct {
	next  int // thread-less groups seen so far
	total int // thread-less groups in the pattern
}

func (f colorFold) resolve(cg pattern.ColorGroup, alloc Allocator) (pattern.Color, colorFold) {
	if cg.Thread != nil {
		return cg.Thread.Color, f
	}
	c := alloc(f.next, f.total)
	return c, colorFold{next: f.next + 1, total: f.total}
}

// ResolveColors returns one color per color group, in pattern order. Groups
// with a thread keep its color; the others get alloc(i, n) where i counts
// thread-less groups only and n is their total. alloc is never called when
// every group has a thread. A nil alloc uses [palette.Generate].
func ResolveColors(p *pattern.Pattern, alloc Allocator) []pattern.Color {
	if alloc == nil {
		alloc = palette.Generate
	}
	out := make([]pattern.Color, len(p.ColorGroups))
	f := colorFold{total: p.UnthreadedCount()}
	for i, cg := range p.ColorGroups {
		out[i], f = f.resolve(cg, alloc)
	}
	return out
}
