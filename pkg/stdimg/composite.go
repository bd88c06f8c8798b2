package stdimg

import (
	"image"
)

// DestinationOut erases dst where mask is opaque: every pixel's alpha is
// multiplied by (1 - maskAlpha). mask is placed with its origin at
// (xoff, yoff) in dst coordinates. Color channels are left untouched since
// dst is non-premultiplied. dst is modified in place and returned.
func DestinationOut(dst *image.NRGBA, mask *image.Alpha, xoff, yoff int) *image.NRGBA {
	if dst == nil || mask == nil {
		return dst
	}
	r := overlap(dst.Bounds(), mask.Bounds(), xoff, yoff)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			ma := mask.Pix[mask.PixOffset(x-xoff, y-yoff)]
			if ma == 0 {
				continue
			}
			di := dst.PixOffset(x, y) + 3
			da := float64(dst.Pix[di]) / 255.0
			dst.Pix[di] = clampFloatToUint8(da * (1 - float64(ma)/255.0) * 255.0)
		}
	}
	return dst
}

// Over composites src onto dst at offset (xoff, yoff) with the source-over
// operator. dst is modified in place and returned.
func Over(dst *image.NRGBA, src image.Image, xoff, yoff int) *image.NRGBA {
	if dst == nil || src == nil {
		return dst
	}
	srcNR, ok := src.(*image.NRGBA)
	if !ok {
		srcNR = ToNRGBA(src)
	}
	r := overlap(dst.Bounds(), srcNR.Bounds(), xoff, yoff)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			si := srcNR.PixOffset(x-xoff, y-yoff)
			di := dst.PixOffset(x, y)
			sa := float64(srcNR.Pix[si+3]) / 255.0
			if sa == 0 {
				continue
			}
			da := float64(dst.Pix[di+3]) / 255.0
			outA := sa + da*(1-sa)
			for c := 0; c < 3; c++ {
				sc := float64(srcNR.Pix[si+c]) / 255.0
				dc := float64(dst.Pix[di+c]) / 255.0
				v := (sc*sa + dc*da*(1-sa)) / outA
				dst.Pix[di+c] = clampFloatToUint8(v * 255.0)
			}
			dst.Pix[di+3] = clampFloatToUint8(outA * 255.0)
		}
	}
	return dst
}

// overlap returns the part of dst covered by src placed at (xoff, yoff).
func overlap(dst, src image.Rectangle, xoff, yoff int) image.Rectangle {
	return dst.Intersect(src.Add(image.Pt(xoff, yoff)))
}
