package vignette

import (
	"testing"

	"github.com/gogpu/gg"
)

func TestGradientTransformMapsUnitCircleToMask(t *testing.T) {
	mask := RectLTRB(10, 20, 110, 220)
	m := GradientTransform(mask)
	cases := []struct {
		in, want gg.Point
	}{
		{gg.Pt(0, 0), gg.Pt(60, 120)},
		{gg.Pt(1, 0), gg.Pt(110, 120)},
		{gg.Pt(0, 1), gg.Pt(60, 220)},
		{gg.Pt(-1, -1), gg.Pt(10, 20)},
	}
	for _, c := range cases {
		got := m.TransformPoint(c.in)
		if !near(got.X, c.want.X) || !near(got.Y, c.want.Y) {
			t.Fatalf("%v -> %v, want %v", c.in, got, c.want)
		}
		back := m.Invert().TransformPoint(got)
		if !near(back.X, c.in.X) || !near(back.Y, c.in.Y) {
			t.Fatalf("inverse of %v -> %v, want %v", got, back, c.in)
		}
	}
}
