package stdimg

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
)

func TestDestinationOutErasesUnderMask(t *testing.T) {
	dst := NewSolid(image.Rect(0, 0, 10, 10), color.NRGBA{R: 0, G: 0, B: 0, A: 200})
	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}
	mask.SetAlpha(1, 1, color.Alpha{A: 128})

	DestinationOut(dst, mask, 3, 3)

	if a := dst.NRGBAAt(3, 3).A; a != 0 {
		t.Fatalf("expected fully erased pixel, got alpha %d", a)
	}
	if a := dst.NRGBAAt(0, 0).A; a != 200 {
		t.Fatalf("pixel outside the mask changed: alpha %d", a)
	}
	// 200 * (1 - 128/255) = 99.6
	if a := dst.NRGBAAt(4, 4).A; a != 100 {
		t.Fatalf("expected partially erased alpha 100, got %d", a)
	}
	if os.Getenv("VIGNETTE_SAVE_TEST_OUTPUT") == "1" {
		f, _ := os.Create("dst_out_test_out.png")
		defer f.Close()
		png.Encode(f, dst)
	}
}

func TestDestinationOutClipsToDestination(t *testing.T) {
	dst := NewSolid(image.Rect(0, 0, 4, 4), color.NRGBA{A: 255})
	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}
	DestinationOut(dst, mask, 2, 2)
	if a := dst.NRGBAAt(1, 1).A; a != 255 {
		t.Fatalf("expected untouched pixel, got alpha %d", a)
	}
	if a := dst.NRGBAAt(3, 3).A; a != 0 {
		t.Fatalf("expected erased pixel, got alpha %d", a)
	}
}

func TestOverBlendsSourceAlpha(t *testing.T) {
	bg := NewSolid(image.Rect(0, 0, 8, 8), color.NRGBA{R: 255, A: 255})
	fg := NewSolid(image.Rect(0, 0, 2, 2), color.NRGBA{B: 255, A: 128})

	Over(bg, fg, 3, 3)

	c := bg.NRGBAAt(3, 3)
	if c.A != 255 {
		t.Fatalf("expected opaque result, got alpha %d", c.A)
	}
	if c.R < 120 || c.R > 135 || c.B < 120 || c.B > 135 {
		t.Fatalf("expected roughly half red half blue, got %+v", c)
	}
	if c := bg.NRGBAAt(0, 0); c.R != 255 || c.B != 0 {
		t.Fatalf("pixel outside the source changed: %+v", c)
	}
}

func TestOverTransparentDestination(t *testing.T) {
	bg := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	fg := NewSolid(image.Rect(0, 0, 2, 2), color.NRGBA{G: 255, A: 64})
	Over(bg, fg, 0, 0)
	c := bg.NRGBAAt(1, 1)
	if c.G != 255 || c.A != 64 {
		t.Fatalf("expected source color over transparent, got %+v", c)
	}
}
