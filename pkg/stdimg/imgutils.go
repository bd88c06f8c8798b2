// Package stdimg holds pure-Go pixel operations on *image.NRGBA shared by
// the renderer, the image loader and the CLI.
package stdimg

import (
	"image"
	"image/color"
)

// ToNRGBA converts any image.Image to *image.NRGBA (non-premultiplied RGBA).
// The result always owns its pixels, so callers may modify it freely.
func ToNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	if n, ok := src.(*image.NRGBA); ok {
		return CloneNRGBA(n)
	}
	b := src.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
		}
	}
	return out
}

// CloneNRGBA returns a copy of the provided image.NRGBA
func CloneNRGBA(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	out := image.NewNRGBA(b)
	n := 4 * b.Dx()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		copy(out.Pix[out.PixOffset(b.Min.X, y):][:n], src.Pix[src.PixOffset(b.Min.X, y):][:n])
	}
	return out
}

// NewSolid returns an image of the given bounds filled with c.
func NewSolid(r image.Rectangle, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(r)
	Fill(img, c)
	return img
}

// Fill paints every pixel of img with c.
func Fill(img *image.NRGBA, c color.NRGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
			i += 4
		}
	}
}

func clampFloatToUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
