package vignette

import (
	"fmt"
	"image"
	"math"
)

// diagonalAngle is the position of the corner control points on the ellipse.
var diagonalAngle = 45 * math.Pi / 180

// Rect is an axis-aligned rectangle in view-local float coordinates.
// A Rect is empty when it has no positive area.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectLTRB returns a Rect from its four edges.
func RectLTRB(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

func (r Rect) Width() float64   { return r.Right - r.Left }
func (r Rect) Height() float64  { return r.Bottom - r.Top }
func (r Rect) CenterX() float64 { return (r.Left + r.Right) * 0.5 }
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) * 0.5 }

// IsEmpty reports whether the rect has no area (left >= right or top >= bottom).
func (r Rect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Inset moves the left and right edges inward by dx and the top and bottom
// edges inward by dy. Negative values grow the rect.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right - dx,
		Bottom: r.Bottom - dy,
	}
}

// Offset translates the rect by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Contains reports whether (x, y) lies inside the rect. The left and top
// edges are inclusive, the right and bottom edges exclusive; an empty rect
// contains nothing.
func (r Rect) Contains(x, y float64) bool {
	return r.Left < r.Right && r.Top < r.Bottom &&
		x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// PixelBounds returns the smallest integer rectangle covering r.
func (r Rect) PixelBounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Left)),
		int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)),
		int(math.Ceil(r.Bottom)),
	)
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%.2f, %.2f, %.2f, %.2f)", r.Left, r.Top, r.Right, r.Bottom)
}

// Point is a position in view coordinates.
type Point struct {
	X, Y float64
}

// DiagonalRadii returns the horizontal and vertical offsets from the mask
// center to the diagonal control points. They lie on the ellipse at 45°, not
// on the bounding box corners.
func DiagonalRadii(mask Rect) (rx, ry float64) {
	rx = mask.Width() / 2 * math.Cos(diagonalAngle)
	ry = mask.Height() / 2 * math.Sin(diagonalAngle)
	return rx, ry
}

// DiagonalAnchors returns the four diagonal control points of the mask
// ellipse in the order TopLeft, TopRight, BottomRight, BottomLeft.
func DiagonalAnchors(mask Rect) [4]Point {
	rx, ry := DiagonalRadii(mask)
	cx, cy := mask.CenterX(), mask.CenterY()
	return [4]Point{
		{X: cx - rx, Y: cy - ry},
		{X: cx + rx, Y: cy - ry},
		{X: cx + rx, Y: cy + ry},
		{X: cx - rx, Y: cy + ry},
	}
}

// squareAround returns a square of half-width h centered on (x, y).
func squareAround(x, y, h float64) Rect {
	return Rect{Left: x - h, Top: y - h, Right: x + h, Bottom: y + h}
}

// Hypotenuse returns the diagonal length of r.
func Hypotenuse(r Rect) float64 {
	return HypotenuseLTRB(r.Left, r.Top, r.Right, r.Bottom)
}

// HypotenuseLTRB returns the diagonal length of the rect given by its edges.
func HypotenuseLTRB(left, top, right, bottom float64) float64 {
	return math.Hypot(right-left, bottom-top)
}
