package vignette

// Region identifies which part of the mask a gesture is dragging.
type Region int

const (
	RegionNone Region = iota
	RegionCenter
	RegionLeft
	RegionTop
	RegionRight
	RegionBottom
	RegionTopLeft
	RegionTopRight
	RegionBottomLeft
	RegionBottomRight
)

var regionNames = [...]string{
	RegionNone:        "None",
	RegionCenter:      "Center",
	RegionLeft:        "Left",
	RegionTop:         "Top",
	RegionRight:       "Right",
	RegionBottom:      "Bottom",
	RegionTopLeft:     "TopLeft",
	RegionTopRight:    "TopRight",
	RegionBottomLeft:  "BottomLeft",
	RegionBottomRight: "BottomRight",
}

func (r Region) String() string {
	if r < 0 || int(r) >= len(regionNames) {
		return "Unknown"
	}
	return regionNames[r]
}

// Classify returns the region of mask hit by the point (x, y).
//
// Corner anchors are tested first with boxes of half-width tolerance, in the
// order TopLeft, TopRight, BottomRight, BottomLeft. Then the edge midpoints
// (Left, Right, Top, Bottom) and finally the center are tested with boxes of
// half-width 2*tolerance. A miss returns RegionNone, which is a valid
// outcome: the gesture is still consumed, it just has nothing to drag.
//
// mask must not be empty.
func Classify(x, y float64, mask Rect, tolerance float64) Region {
	anchors := DiagonalAnchors(mask)
	corners := [4]Region{RegionTopLeft, RegionTopRight, RegionBottomRight, RegionBottomLeft}
	for i, a := range anchors {
		if squareAround(a.X, a.Y, tolerance).Contains(x, y) {
			return corners[i]
		}
	}

	cx, cy := mask.CenterX(), mask.CenterY()
	wide := tolerance * 2
	edges := [...]struct {
		region Region
		at     Point
	}{
		{RegionLeft, Point{mask.Left, cy}},
		{RegionRight, Point{mask.Right, cy}},
		{RegionTop, Point{cx, mask.Top}},
		{RegionBottom, Point{cx, mask.Bottom}},
		{RegionCenter, Point{cx, cy}},
	}
	for _, e := range edges {
		if squareAround(e.at.X, e.at.Y, wide).Contains(x, y) {
			return e.region
		}
	}
	return RegionNone
}
