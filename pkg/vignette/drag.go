package vignette

import "math"

// ApplyDrag returns the mask rect after a drag sample on region.
//
// dx and dy are the pointer distances since the previous sample, measured as
// previous minus current position. Edge regions grow or shrink the mask
// symmetrically about its center; corner regions scale both axes by the same
// amount, taken from whichever delta has the larger magnitude. Center moves
// the mask by (-dx, -dy) as long as the new center stays inside imageBounds.
//
// A candidate whose width or height is not greater than minSize is
// rejected and current is returned unchanged.
func ApplyDrag(region Region, dx, dy float64, imageBounds, current Rect, minSize float64) Rect {
	next := current
	dominantX := math.Abs(dx) > math.Abs(dy)

	switch region {
	case RegionNone:
	case RegionCenter:
		if imageBounds.Contains(current.CenterX()-dx, current.CenterY()-dy) {
			next = current.Offset(-dx, -dy)
		}
	case RegionLeft:
		next = current.Inset(-dx, 0)
	case RegionRight:
		next = current.Inset(dx, 0)
	case RegionTop:
		next = current.Inset(0, -dy)
	case RegionBottom:
		next = current.Inset(0, dy)
	case RegionTopLeft:
		m := dy
		if dominantX {
			m = dx
		}
		next = current.Inset(-m, -m)
	case RegionTopRight:
		m := -dy
		if dominantX {
			m = dx
		}
		next = current.Inset(m, m)
	case RegionBottomLeft:
		m := dy
		if dominantX {
			m = -dx
		}
		next = current.Inset(m, m)
	case RegionBottomRight:
		m := dy
		if dominantX {
			m = dx
		}
		next = current.Inset(m, m)
	}

	if next.Width() > minSize && next.Height() > minSize {
		return next
	}
	return current
}
