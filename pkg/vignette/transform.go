package vignette

import "github.com/gogpu/gg"

// GradientTransform returns the matrix that maps the unit circle onto the
// ellipse inscribed in mask. It translates the origin to the mask center and
// then scales by half the mask size about that center, so a unit-space point
// p lands on center + (w/2, h/2)*p.
func GradientTransform(mask Rect) gg.Matrix {
	cx, cy := mask.CenterX(), mask.CenterY()
	m := gg.Translate(cx, cy)
	return scaleAbout(mask.Width()/2, mask.Height()/2, cx, cy).Multiply(m)
}

// scaleAbout scales by (sx, sy) keeping (px, py) fixed.
func scaleAbout(sx, sy, px, py float64) gg.Matrix {
	return gg.Translate(px, py).Multiply(gg.Scale(sx, sy)).Multiply(gg.Translate(-px, -py))
}
