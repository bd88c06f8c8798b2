package cli

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/Fepozopo/vignette/pkg/stdimg"
	"github.com/Fepozopo/vignette/pkg/vignette"
)

// viewBackground is the color around the photo.
var viewBackground = gg.RGBA{R: 0.1, G: 0.1, B: 0.1, A: 1}

// scalePhoto resamples photo to the pixel size of bounds. A photo that
// already has that size is returned as is.
func scalePhoto(photo *image.NRGBA, bounds vignette.Rect) *image.NRGBA {
	w := int(bounds.Width() + 0.5)
	h := int(bounds.Height() + 0.5)
	if w == photo.Bounds().Dx() && h == photo.Bounds().Dy() {
		return photo
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), photo, photo.Bounds(), xdraw.Src, nil)
	return dst
}

// RenderFrame draws what the view shows: the photo at its fitted bounds,
// the vignette overlay with its controls, and a status line.
func (s *Session) RenderFrame() (*image.NRGBA, error) {
	if s.viewW <= 0 || s.viewH <= 0 {
		return nil, fmt.Errorf("render: empty view %dx%d", s.viewW, s.viewH)
	}
	canvas := gg.NewContext(s.viewW, s.viewH)
	canvas.ClearWithColor(viewBackground)

	bounds := s.widget.ImageBounds()
	if s.photo != nil && !bounds.IsEmpty() {
		shown := scalePhoto(s.photo, bounds)
		canvas.DrawImage(gg.ImageBufFromImage(shown), bounds.Left, bounds.Top)
	}
	if err := s.widget.Draw(canvas); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	frame := stdimg.ToNRGBA(canvas.Image())
	stdimg.Annotate(frame, []string{s.hudLine()}, s.hudFace, 6, s.viewH-6, s.hudShadow())
	stdimg.Annotate(frame, []string{s.hudLine()}, s.hudFace, 5, s.viewH-7, s.hudColor)
	return frame, nil
}

func (s *Session) hudLine() string {
	w := s.widget
	return fmt.Sprintf("intensity %d  feather %.2f  region %s", w.Intensity(), w.Feather(), w.ActiveRegion())
}

// hudShadow is the drop shadow color under the status line.
func (s *Session) hudShadow() color.NRGBA {
	if int(s.hudColor.R)+int(s.hudColor.G)+int(s.hudColor.B) > 3*127 {
		return color.NRGBA{A: 160}
	}
	return color.NRGBA{R: 255, G: 255, B: 255, A: 160}
}
