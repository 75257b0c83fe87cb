package palette

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestHue(t *testing.T) {
	tests := []struct {
		i, n int
		want float64
	}{
		{0, 1, 0},
		{0, 4, 0},
		{1, 4, 90},
		{3, 4, 270},
		{1, 3, 120},
		{2, 3, 240},
	}
	for _, tt := range tests {
		if got := Hue(tt.i, tt.n); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Hue(%d, %d) = %v, want %v", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestHueSpansCircle(t *testing.T) {
	for n := 1; n <= 12; n++ {
		step := 360 / float64(n)
		for i := 0; i < n; i++ {
			if got := Hue(i, n); math.Abs(got-float64(i)*step) > 1e-9 {
				t.Errorf("Hue(%d, %d) = %v, want %v", i, n, got, float64(i)*step)
			}
			if h := Hue(i, n); h < 0 || h >= 360 {
				t.Errorf("Hue(%d, %d) = %v, outside [0, 360)", i, n, h)
			}
		}
	}
}

func TestHueZeroTotalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Hue with n = 0 should panic")
		}
	}()
	Hue(0, 0)
}

func TestGenerateDeterministic(t *testing.T) {
	for n := 1; n <= 8; n++ {
		for i := 0; i < n; i++ {
			if Generate(i, n) != Generate(i, n) {
				t.Errorf("Generate(%d, %d) is not deterministic", i, n)
			}
		}
	}
}

func TestGenerateDistinct(t *testing.T) {
	for _, n := range []int{2, 3, 6, 12} {
		seen := make(map[string]int)
		for i := range n {
			c := Generate(i, n)
			if prev, ok := seen[c.String()]; ok {
				t.Errorf("n=%d: colors %d and %d are both %s", n, prev, i, c)
			}
			seen[c.String()] = i
		}
	}
}

func TestGenerateMatchesLCh(t *testing.T) {
	c := Generate(0, 1)
	want := colorful.Hcl(0, 1, 0.5).Clamped()
	r, g, b := want.RGB255()
	if c.R != r || c.G != g || c.B != b {
		t.Errorf("Generate(0, 1) = %s, want %s", c, want.Hex())
	}
}
