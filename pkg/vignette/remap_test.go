package vignette

import "testing"

func TestRemapBoundsIdentity(t *testing.T) {
	b := RectLTRB(12.5, 7, 812.5, 607)
	r := RectLTRB(40, 60, 300, 500)
	if got := RemapBounds(b, b, r, 30); got != r {
		t.Fatalf("got %v want %v", got, r)
	}
}

func TestRemapBoundsFromEmpty(t *testing.T) {
	b := RectLTRB(0, 0, 1000, 800)
	if got := RemapBounds(Rect{}, b, Rect{}, 30); got != RectLTRB(30, 30, 970, 770) {
		t.Fatalf("got %v", got)
	}
}

func TestRemapBoundsTranslate(t *testing.T) {
	old := RectLTRB(0, 0, 100, 100)
	nb := RectLTRB(10, 20, 110, 120)
	got := RemapBounds(old, nb, RectLTRB(20, 20, 80, 80), 30)
	if got != RectLTRB(30, 40, 90, 100) {
		t.Fatalf("got %v", got)
	}
}

func TestRemapBoundsResize(t *testing.T) {
	old := RectLTRB(0, 0, 100, 100)
	nb := RectLTRB(0, 0, 200, 100)
	got := RemapBounds(old, nb, RectLTRB(20, 20, 80, 80), 30)
	if got != RectLTRB(20, 20, 180, 80) {
		t.Fatalf("got %v", got)
	}
}

func TestRemapBoundsResizeAndMove(t *testing.T) {
	old := RectLTRB(0, 0, 100, 100)
	nb := RectLTRB(10, 20, 210, 120)
	got := RemapBounds(old, nb, RectLTRB(20, 20, 80, 80), 30)
	if got != RectLTRB(30, 40, 190, 100) {
		t.Fatalf("got %v", got)
	}
}
