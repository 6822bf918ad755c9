package pagefit

import (
	"math"
	"testing"
)

func TestFitWidthPreservesAspectRatio(t *testing.T) {
	cases := []struct {
		name string
		src  Size
	}{
		{"letter", Size{612, 792}},
		{"landscape", Size{842, 595}},
		{"square", Size{500, 500}},
		{"tall slide", Size{400, 1600}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := FitWidth(tc.src, A4, 0.10)
			got := p.H / p.W
			want := tc.src.H / tc.src.W
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("aspect ratio changed: got %v, want %v", got, want)
			}
			if p.W != A4.W {
				t.Errorf("width not filled: got %v, want %v", p.W, A4.W)
			}
		})
	}
}

func TestFitWidthAnchorsTopAtMarginLine(t *testing.T) {
	p := FitWidth(Size{612, 792}, A4, 0.10)
	if want := A4.H * 0.10; p.Y != want {
		t.Errorf("top edge at %v, want %v", p.Y, want)
	}
	if p.X != 0 {
		t.Errorf("content not left-aligned: x = %v", p.X)
	}
}

func TestFitWidthAllowsOverflow(t *testing.T) {
	// A very tall page scaled to full width will not fit above the bottom
	// edge; placement must still anchor the top at the margin line.
	p := FitWidth(Size{400, 1600}, A4, 0.10)
	if p.Y+p.H <= A4.H {
		t.Fatalf("expected overflow past the bottom edge, content ends at %v", p.Y+p.H)
	}
	if want := A4.H * 0.10; p.Y != want {
		t.Errorf("top edge at %v, want %v", p.Y, want)
	}
}
