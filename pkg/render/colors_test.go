package render

import (
	"testing"

	"github.com/matzehuels/stitchkit/pkg/palette"
	"github.com/matzehuels/stitchkit/pkg/pattern"
)

func threaded(c pattern.Color) pattern.ColorGroup {
	return pattern.ColorGroup{Thread: &pattern.Thread{Color: c}}
}

func TestResolveColorsNeverAllocatesWhenAllThreaded(t *testing.T) {
	p := &pattern.Pattern{ColorGroups: []pattern.ColorGroup{
		threaded(pattern.Color{R: 1}),
		threaded(pattern.Color{G: 2}),
	}}
	alloc := func(i, n int) pattern.Color {
		t.Fatalf("allocator called with (%d, %d)", i, n)
		return pattern.Color{}
	}

	got := ResolveColors(p, alloc)
	if got[0] != (pattern.Color{R: 1}) || got[1] != (pattern.Color{G: 2}) {
		t.Errorf("ResolveColors() = %v, want thread colors", got)
	}
}

func TestResolveColorsCountsOnlyUnthreaded(t *testing.T) {
	p := &pattern.Pattern{ColorGroups: []pattern.ColorGroup{
		{},
		threaded(pattern.Color{B: 9}),
		{},
		{},
	}}

	type call struct{ i, n int }
	var calls []call
	alloc := func(i, n int) pattern.Color {
		calls = append(calls, call{i, n})
		return pattern.Color{R: uint8(i + 100)}
	}

	got := ResolveColors(p, alloc)

	wantCalls := []call{{0, 3}, {1, 3}, {2, 3}}
	if len(calls) != len(wantCalls) {
		t.Fatalf("allocator calls = %v, want %v", calls, wantCalls)
	}
	for i := range calls {
		if calls[i] != wantCalls[i] {
			t.Errorf("call %d = %v, want %v", i, calls[i], wantCalls[i])
		}
	}

	want := []pattern.Color{{R: 100}, {B: 9}, {R: 101}, {R: 102}}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("color[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResolveColorsDefaultPalette(t *testing.T) {
	explicit := pattern.Color{R: 0x12, G: 0x34, B: 0x56}
	for _, order := range []string{"explicit first", "colorless first"} {
		t.Run(order, func(t *testing.T) {
			groups := []pattern.ColorGroup{threaded(explicit), {}}
			colorless := 1
			if order == "colorless first" {
				groups[0], groups[1] = groups[1], groups[0]
				colorless = 0
			}
			got := ResolveColors(&pattern.Pattern{ColorGroups: groups}, nil)

			if got[colorless] != palette.Generate(0, 1) {
				t.Errorf("colorless group = %v, want palette index 0 %v", got[colorless], palette.Generate(0, 1))
			}
			if got[1-colorless] != explicit {
				t.Errorf("explicit group = %v, want %v", got[1-colorless], explicit)
			}
		})
	}
}
