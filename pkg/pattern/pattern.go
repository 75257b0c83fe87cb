package pattern

import (
	"math"
	"slices"
)

// Stitch is a single needle-penetration point in millimetres (y up).
// Two stitches are equal only if both coordinates match exactly.
type Stitch struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StitchGroup is a contiguous run of stitches sewn without a color change.
type StitchGroup struct {
	Stitches []Stitch
}

// ColorGroup is one needle pass of a single thread.
// A nil Thread means the design does not say which color to use; renderers
// generate one.
type ColorGroup struct {
	Thread       *Thread
	StitchGroups []StitchGroup
}

// StitchCount returns the number of stitches across all stitch groups.
func (cg ColorGroup) StitchCount() int {
	n := 0
	for _, sg := range cg.StitchGroups {
		n += len(sg.Stitches)
	}
	return n
}

// Pattern is a complete embroidery design.
//
// The zero value is an empty, valid pattern.
type Pattern struct {
	ColorGroups []ColorGroup
	Attributes  []Attribute
}

// Bounds is an axis-aligned bounding box in pattern coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether s lies inside b (edges included).
func (b Bounds) Contains(s Stitch) bool {
	return s.X >= b.MinX && s.X <= b.MaxX && s.Y >= b.MinY && s.Y <= b.MaxY
}

// Bounds returns the smallest box enclosing every stitch of every group.
// A pattern without stitches has the zero Bounds.
func (p *Pattern) Bounds() Bounds {
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	seen := false
	p.EachStitch(func(s Stitch) {
		seen = true
		b.MinX = math.Min(b.MinX, s.X)
		b.MinY = math.Min(b.MinY, s.Y)
		b.MaxX = math.Max(b.MaxX, s.X)
		b.MaxY = math.Max(b.MaxY, s.Y)
	})
	if !seen {
		return Bounds{}
	}
	return b
}

// EachStitch calls fn for every stitch in pattern order:
// color groups outer, stitch groups inner.
func (p *Pattern) EachStitch(fn func(Stitch)) {
	for _, cg := range p.ColorGroups {
		for _, sg := range cg.StitchGroups {
			for _, s := range sg.Stitches {
				fn(s)
			}
		}
	}
}

// Stitches returns the flat stitch sequence in pattern order.
func (p *Pattern) Stitches() []Stitch {
	out := make([]Stitch, 0, p.StitchCount())
	p.EachStitch(func(s Stitch) { out = append(out, s) })
	return out
}

// StitchCount returns the total number of stitches.
func (p *Pattern) StitchCount() int {
	n := 0
	for _, cg := range p.ColorGroups {
		n += cg.StitchCount()
	}
	return n
}

// UnthreadedCount returns how many color groups have no thread and
// therefore need a generated color.
func (p *Pattern) UnthreadedCount() int {
	n := 0
	for _, cg := range p.ColorGroups {
		if cg.Thread == nil {
			n++
		}
	}
	return n
}

// AttributeSet returns the pattern's attributes as a set.
func (p *Pattern) AttributeSet() AttributeSet {
	return NewAttributeSet(p.Attributes...)
}

// Attribute returns the value of the first attribute with the given key.
func (p *Pattern) Attribute(key string) (string, bool) {
	for _, a := range p.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Title returns the design title, or "" if none is set.
func (p *Pattern) Title() string {
	v, _ := p.Attribute(AttrTitle)
	return v
}

// Clone returns a deep copy that shares no slices or threads with p.
func (p *Pattern) Clone() *Pattern {
	if p == nil {
		return nil
	}
	out := &Pattern{}
	out.Attributes = slices.Clone(p.Attributes)
	if p.ColorGroups != nil {
		out.ColorGroups = make([]ColorGroup, len(p.ColorGroups))
	}
	for i, cg := range p.ColorGroups {
		ncg := ColorGroup{}
		if cg.Thread != nil {
			t := *cg.Thread
			ncg.Thread = &t
		}
		if cg.StitchGroups != nil {
			ncg.StitchGroups = make([]StitchGroup, len(cg.StitchGroups))
		}
		for j, sg := range cg.StitchGroups {
			ncg.StitchGroups[j].Stitches = slices.Clone(sg.Stitches)
		}
		out.ColorGroups[i] = ncg
	}
	return out
}
