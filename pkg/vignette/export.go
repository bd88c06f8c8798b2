package vignette

import (
	"errors"
	"image"

	"github.com/Fepozopo/vignette/pkg/stdimg"
)

// Export bakes the vignette into photo at its full resolution. imageBounds
// is where photo is displayed in the view and mask is the mask rect in view
// coordinates; both are scaled into photo's pixel space. Controls are not
// drawn.
func Export(photo image.Image, imageBounds, mask Rect, style RenderStyle) (*image.NRGBA, error) {
	if photo == nil {
		return nil, errors.New("export: no image")
	}
	out := stdimg.ToNRGBA(photo)
	b := out.Bounds()
	if b.Empty() {
		return nil, errors.New("export: empty image")
	}
	if mask.IsEmpty() || imageBounds.IsEmpty() {
		return out, nil
	}

	full := Rect{Right: float64(b.Dx()), Bottom: float64(b.Dy())}
	scale := (full.Width()/imageBounds.Width() + full.Height()/imageBounds.Height()) / 2
	style.GradientInset *= scale

	p := RenderParams{
		ImageBounds: full,
		Mask:        ViewToImage(mask, imageBounds, b.Dx(), b.Dy()),
		Style:       style,
	}
	layer, origin := ScrimLayer(p, image.Rect(0, 0, b.Dx(), b.Dy()))
	if layer != nil {
		stdimg.Over(out, layer, b.Min.X+origin.X, b.Min.Y+origin.Y)
	}
	return out, nil
}

// Export bakes the current vignette into photo, which must be the image
// whose display bounds were passed to SetImageBounds.
func (w *Widget) Export(photo image.Image) (*image.NRGBA, error) {
	return Export(photo, w.imageBounds, w.mask, w.style)
}
