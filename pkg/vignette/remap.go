package vignette

// RemapBounds returns the mask rect that keeps its placement relative to the
// image when the image bounds change from oldBounds to newBounds.
//
// With no previous bounds the default placement is used: newBounds inset by
// tolerance on every side. Otherwise the mask grows by half the size delta
// on each side, then moves by the change of the top-left corner, then by half
// the size delta.
func RemapBounds(oldBounds, newBounds, mask Rect, tolerance float64) Rect {
	if oldBounds.IsEmpty() {
		return newBounds.Inset(tolerance, tolerance)
	}
	dw := newBounds.Width() - oldBounds.Width()
	dh := newBounds.Height() - oldBounds.Height()

	out := mask.Inset(-dw/2, -dh/2)
	out = out.Offset(newBounds.Left-oldBounds.Left, newBounds.Top-oldBounds.Top)
	return out.Offset(dw/2, dh/2)
}
