package pattern

import (
	"cmp"
	"fmt"
	"slices"
)

// Well-known attribute keys. Codecs map these to their own header fields;
// other keys are free-form.
const (
	AttrTitle     = "title"
	AttrAuthor    = "author"
	AttrCopyright = "copyright"
	AttrComment   = "comment"
)

// Attribute is an opaque metadata marker. It is comparable and hashable so it
// can be used as a set member.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// String returns "key=value".
func (a Attribute) String() string {
	return fmt.Sprintf("%s=%q", a.Key, a.Value)
}

// AttributeSet is a membership-only collection of attributes.
type AttributeSet map[Attribute]struct{}

// NewAttributeSet builds a set from attrs. Duplicates collapse.
func NewAttributeSet(attrs ...Attribute) AttributeSet {
	s := make(AttributeSet, len(attrs))
	for _, a := range attrs {
		s[a] = struct{}{}
	}
	return s
}

// Has reports whether a is a member.
func (s AttributeSet) Has(a Attribute) bool {
	_, ok := s[a]
	return ok
}

// Equal reports whether both sets have the same members.
func (s AttributeSet) Equal(other AttributeSet) bool {
	if len(s) != len(other) {
		return false
	}
	for a := range s {
		if !other.Has(a) {
			return false
		}
	}
	return true
}

// Difference returns the members of s missing from other, sorted by key then
// value so reports are stable.
func (s AttributeSet) Difference(other AttributeSet) []Attribute {
	var out []Attribute
	for a := range s {
		if !other.Has(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, compareAttributes)
	return out
}

// Sorted returns all members in key/value order.
func (s AttributeSet) Sorted() []Attribute {
	out := make([]Attribute, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	slices.SortFunc(out, compareAttributes)
	return out
}

func compareAttributes(a, b Attribute) int {
	if c := cmp.Compare(a.Key, b.Key); c != 0 {
		return c
	}
	return cmp.Compare(a.Value, b.Value)
}
