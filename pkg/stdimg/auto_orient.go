package stdimg

import (
	"image"
)

// AutoOrient applies an EXIF orientation (1..8) to img so that it displays
// upright. Orientation 1 and unknown values return img unchanged.
func AutoOrient(img image.Image, orientation int) image.Image {
	if img == nil {
		return nil
	}
	if orientation <= 1 || orientation > 8 {
		return img
	}
	src := ToNRGBA(img)
	switch orientation {
	case 2:
		return Flop(src)
	case 3:
		return Rotate180(src)
	case 4:
		return Flip(src)
	case 5:
		return transpose(src)
	case 6:
		return Rotate90CW(src)
	case 7:
		return transverse(src)
	default:
		return Rotate90CCW(src)
	}
}

// pixelMap returns the destination coordinates of source pixel (x, y) in an
// image of size w x h.
type pixelMap func(x, y, w, h int) (int, int)

// remap copies every pixel of src to the position given by m. When swap is
// set the output has width and height exchanged.
func remap(src *image.NRGBA, swap bool, m pixelMap) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	ow, oh := w, h
	if swap {
		ow, oh = h, w
	}
	out := image.NewNRGBA(image.Rect(0, 0, ow, oh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			dx, dy := m(x, y, w, h)
			di := out.PixOffset(dx, dy)
			copy(out.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return out
}

// Flip mirrors src vertically.
func Flip(src *image.NRGBA) *image.NRGBA {
	return remap(src, false, func(x, y, w, h int) (int, int) { return x, h - 1 - y })
}

// Flop mirrors src horizontally.
func Flop(src *image.NRGBA) *image.NRGBA {
	return remap(src, false, func(x, y, w, h int) (int, int) { return w - 1 - x, y })
}

func Rotate180(src *image.NRGBA) *image.NRGBA {
	return remap(src, false, func(x, y, w, h int) (int, int) { return w - 1 - x, h - 1 - y })
}

func Rotate90CW(src *image.NRGBA) *image.NRGBA {
	return remap(src, true, func(x, y, w, h int) (int, int) { return h - 1 - y, x })
}

func Rotate90CCW(src *image.NRGBA) *image.NRGBA {
	return remap(src, true, func(x, y, w, h int) (int, int) { return y, w - 1 - x })
}

// transpose mirrors across the main diagonal (EXIF 5).
func transpose(src *image.NRGBA) *image.NRGBA {
	return remap(src, true, func(x, y, w, h int) (int, int) { return y, x })
}

// transverse mirrors across the anti-diagonal (EXIF 7).
func transverse(src *image.NRGBA) *image.NRGBA {
	return remap(src, true, func(x, y, w, h int) (int, int) { return h - 1 - y, w - 1 - x })
}
