package vignette

// FitIfBigger returns where an image of imgW x imgH pixels is displayed in a
// view of viewW x viewH. Images larger than the view on either axis are
// scaled down uniformly to fit; smaller images keep their natural size. The
// result is centered in the view.
func FitIfBigger(imgW, imgH, viewW, viewH int) Rect {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return Rect{}
	}
	w, h := float64(imgW), float64(imgH)
	vw, vh := float64(viewW), float64(viewH)

	scale := 1.0
	if w > vw || h > vh {
		scale = min(vw/w, vh/h)
	}
	w *= scale
	h *= scale
	left := (vw - w) / 2
	top := (vh - h) / 2
	return Rect{Left: left, Top: top, Right: left + w, Bottom: top + h}
}

// ViewToImage maps r from view coordinates, where the image occupies bounds,
// into the pixel space of an image of imgW x imgH.
func ViewToImage(r, bounds Rect, imgW, imgH int) Rect {
	if bounds.IsEmpty() {
		return Rect{}
	}
	sx := float64(imgW) / bounds.Width()
	sy := float64(imgH) / bounds.Height()
	return Rect{
		Left:   (r.Left - bounds.Left) * sx,
		Top:    (r.Top - bounds.Top) * sy,
		Right:  (r.Right - bounds.Left) * sx,
		Bottom: (r.Bottom - bounds.Top) * sy,
	}
}
