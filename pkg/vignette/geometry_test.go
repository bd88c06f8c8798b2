package vignette

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func rectNear(a, b Rect) bool {
	return near(a.Left, b.Left) && near(a.Top, b.Top) && near(a.Right, b.Right) && near(a.Bottom, b.Bottom)
}

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := RectLTRB(0, 0, 10, 10)
	cases := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{9.999, 9.999, true},
		{10, 5, false},
		{5, 10, false},
		{-eps, 5, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.x, c.y); got != c.want {
			t.Fatalf("Contains(%v,%v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
	if (Rect{}).Contains(0, 0) {
		t.Fatalf("empty rect must contain nothing")
	}
}

func TestRectInsetOffset(t *testing.T) {
	r := RectLTRB(10, 20, 110, 220)
	if got := r.Inset(5, -10); got != RectLTRB(15, 10, 105, 230) {
		t.Fatalf("Inset: got %v", got)
	}
	if got := r.Offset(-10, 5); got != RectLTRB(0, 25, 100, 225) {
		t.Fatalf("Offset: got %v", got)
	}
	if r.Width() != 100 || r.Height() != 200 || r.CenterX() != 60 || r.CenterY() != 120 {
		t.Fatalf("unexpected size/center for %v", r)
	}
}

func TestRectIsEmpty(t *testing.T) {
	if !(Rect{}).IsEmpty() {
		t.Fatalf("zero rect should be empty")
	}
	if !RectLTRB(10, 0, 5, 10).IsEmpty() {
		t.Fatalf("inverted rect should be empty")
	}
	if RectLTRB(0, 0, 1, 1).IsEmpty() {
		t.Fatalf("unit rect should not be empty")
	}
}

func TestRectIntersect(t *testing.T) {
	a := RectLTRB(0, 0, 100, 100)
	if got := a.Intersect(RectLTRB(50, -10, 150, 40)); got != RectLTRB(50, 0, 100, 40) {
		t.Fatalf("Intersect: got %v", got)
	}
	if got := a.Intersect(RectLTRB(200, 200, 300, 300)); got != (Rect{}) {
		t.Fatalf("disjoint Intersect should be zero, got %v", got)
	}
}

func TestDiagonalAnchors(t *testing.T) {
	mask := RectLTRB(0, 0, 200, 100)
	rx := 100 * math.Cos(math.Pi/4)
	ry := 50 * math.Sin(math.Pi/4)
	want := [4]Point{
		{100 - rx, 50 - ry},
		{100 + rx, 50 - ry},
		{100 + rx, 50 + ry},
		{100 - rx, 50 + ry},
	}
	got := DiagonalAnchors(mask)
	for i := range want {
		if !near(got[i].X, want[i].X) || !near(got[i].Y, want[i].Y) {
			t.Fatalf("anchor %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestHypotenuse(t *testing.T) {
	if h := Hypotenuse(RectLTRB(0, 0, 3, 4)); h != 5 {
		t.Fatalf("Hypotenuse = %v, want 5", h)
	}
	if h := HypotenuseLTRB(1, 1, 7, 9); h != 10 {
		t.Fatalf("HypotenuseLTRB = %v, want 10", h)
	}
}
