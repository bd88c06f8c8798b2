package vignette

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/Fepozopo/vignette/pkg/stdimg"
	"github.com/gogpu/gg"
)

const (
	// SweepAngle is the angular length in degrees of each edge arc.
	SweepAngle = 8.0

	arcSegments = 8
)

// RenderParams is the state needed to draw one frame.
type RenderParams struct {
	ImageBounds Rect
	Mask        Rect
	Style       RenderStyle
	// Gradient maps the unit circle onto Mask. The zero value is derived
	// from Mask.
	Gradient gg.Matrix
}

func (p RenderParams) gradient() gg.Matrix {
	if p.Gradient == (gg.Matrix{}) {
		return GradientTransform(p.Mask)
	}
	return p.Gradient
}

// Render draws the vignette over canvas, which already holds the displayed
// photo. Nothing is drawn when the mask or the image bounds are empty.
//
// The first pass builds a layer covering the image bounds filled with the
// scrim, erases the feather gradient from it and composites it over the
// canvas. The second pass draws the outline and control points with the
// current paint alpha.
func Render(canvas *gg.Context, p RenderParams) error {
	if p.Mask.IsEmpty() || p.ImageBounds.IsEmpty() {
		return nil
	}
	clip := image.Rect(0, 0, canvas.Width(), canvas.Height())
	layer, origin := ScrimLayer(p, clip)
	if layer != nil {
		canvas.DrawImage(gg.ImageBufFromImage(layer), float64(origin.X), float64(origin.Y))
	}
	if p.Style.PaintAlpha == 0 {
		return nil
	}
	if err := drawControls(canvas, p); err != nil {
		return fmt.Errorf("draw controls: %w", err)
	}
	return nil
}

// ScrimLayer returns the composited scrim for p, clipped to clip, together
// with the position of its top-left pixel in canvas coordinates. The layer
// is nil when nothing is visible.
func ScrimLayer(p RenderParams, clip image.Rectangle) (*image.NRGBA, image.Point) {
	area := p.ImageBounds.PixelBounds().Intersect(clip)
	if area.Empty() || p.Mask.IsEmpty() {
		return nil, image.Point{}
	}
	w, h := area.Dx(), area.Dy()

	scrim := p.Style.Scrim
	c := color.NRGBA{A: scrim.Alpha}
	if scrim.White {
		c.R, c.G, c.B = 255, 255, 255
	}
	layer := stdimg.NewSolid(image.Rect(0, 0, w, h), c)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !p.ImageBounds.Contains(float64(area.Min.X+x)+0.5, float64(area.Min.Y+y)+0.5) {
				layer.Pix[layer.PixOffset(x, y)+3] = 0
			}
		}
	}

	mask := featherMask(p, area)
	stdimg.DestinationOut(layer, mask, 0, 0)
	return layer, area.Min
}

// featherMask rasterizes the feather gradient over area. Each pixel holds
// the gradient alpha at its center, zero outside the oval. The oval is the
// mask grown by the gradient inset; the gradient itself stays fitted to the
// mask.
func featherMask(p RenderParams, area image.Rectangle) *image.Alpha {
	out := image.NewAlpha(image.Rect(0, 0, area.Dx(), area.Dy()))
	oval := p.Mask.Inset(-p.Style.GradientInset, -p.Style.GradientInset)
	if oval.IsEmpty() {
		return out
	}
	brush := p.Style.Gradient
	if brush == nil {
		brush = FeatherBrush(p.Style.Feather)
	}
	inv := p.gradient().Invert()

	span := oval.PixelBounds().Intersect(area)
	for py := span.Min.Y; py < span.Max.Y; py++ {
		for px := span.Min.X; px < span.Max.X; px++ {
			u := inv.TransformPoint(gg.Pt(float64(px)+0.5, float64(py)+0.5))
			if u.X*u.X+u.Y*u.Y >= 1 {
				continue
			}
			a := brush.ColorAt(u.X, u.Y).A
			out.Pix[out.PixOffset(px-area.Min.X, py-area.Min.Y)] = uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
		}
	}
	return out
}

func drawControls(dc *gg.Context, p RenderParams) error {
	st := p.Style
	mask := p.Mask
	alpha := float64(st.PaintAlpha) / 255
	cx, cy := mask.CenterX(), mask.CenterY()

	dc.SetRGBA(1, 1, 1, alpha)
	dc.SetLineWidth(st.OutlineWidth)
	dc.DrawEllipse(cx, cy, mask.Width()/2, mask.Height()/2)
	if err := dc.Stroke(); err != nil {
		return err
	}

	dc.SetLineWidth(st.ControlWidth)
	dc.DrawCircle(cx, cy, st.ControlPointSize)
	if err := dc.Stroke(); err != nil {
		return err
	}

	for _, r := range []Rect{mask.Inset(-st.ArcDistance, -st.ArcDistance), mask.Inset(st.ArcDistance, st.ArcDistance)} {
		if r.IsEmpty() {
			continue
		}
		for _, start := range [...]float64{0, 90, 180, 270} {
			arcPath(dc, r, start-SweepAngle/2, SweepAngle)
			if err := dc.Stroke(); err != nil {
				return err
			}
		}
	}

	s := st.ControlPointSize
	for _, a := range DiagonalAnchors(mask) {
		dc.DrawRectangle(a.X-s, a.Y-s, 2*s, 2*s)
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

// arcPath adds an open elliptical arc inscribed in r. Angles are in degrees,
// clockwise from the positive x axis as seen on screen.
func arcPath(dc *gg.Context, r Rect, startDeg, sweepDeg float64) {
	cx, cy := r.CenterX(), r.CenterY()
	rx, ry := r.Width()/2, r.Height()/2
	for i := 0; i <= arcSegments; i++ {
		t := (startDeg + sweepDeg*float64(i)/arcSegments) * math.Pi / 180
		x, y := cx+rx*math.Cos(t), cy+ry*math.Sin(t)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
}
