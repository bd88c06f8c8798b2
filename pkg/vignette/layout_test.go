package vignette

import "testing"

func TestFitIfBigger(t *testing.T) {
	cases := []struct {
		name   string
		iw, ih int
		vw, vh int
		want   Rect
	}{
		{"smaller", 400, 300, 800, 600, RectLTRB(200, 150, 600, 450)},
		{"wider", 1600, 600, 800, 600, RectLTRB(0, 150, 800, 450)},
		{"taller", 400, 1200, 800, 600, RectLTRB(300, 0, 500, 600)},
		{"exact", 800, 600, 800, 600, RectLTRB(0, 0, 800, 600)},
		{"empty", 0, 10, 800, 600, Rect{}},
	}
	for _, c := range cases {
		if got := FitIfBigger(c.iw, c.ih, c.vw, c.vh); got != c.want {
			t.Fatalf("%s: got %v want %v", c.name, got, c.want)
		}
	}
}

func TestViewToImage(t *testing.T) {
	bounds := RectLTRB(100, 50, 500, 250)
	got := ViewToImage(RectLTRB(150, 100, 450, 200), bounds, 800, 400)
	if got != RectLTRB(100, 100, 700, 300) {
		t.Fatalf("got %v", got)
	}
	if !ViewToImage(bounds, Rect{}, 10, 10).IsEmpty() {
		t.Fatalf("empty bounds should map to an empty rect")
	}
}
