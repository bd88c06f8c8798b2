package vignette

import "time"

// Metrics holds the device-dependent sizes of the overlay. Sizes ending in
// DP are density-independent and converted to pixels with Density.
// Tolerance is already in pixels.
type Metrics struct {
	Density   float64
	Tolerance float64

	ControlSizeDP   float64
	ArcDistanceDP   float64
	GradientInsetDP float64
	OutlineDP       float64
	ControlStrokeDP float64

	FadeDelay    time.Duration
	FadeDuration time.Duration
}

// DefaultMetrics returns the metrics of a density 1 display.
func DefaultMetrics() Metrics {
	return Metrics{
		Density:         1,
		Tolerance:       30,
		ControlSizeDP:   4,
		ArcDistanceDP:   3,
		GradientInsetDP: 0,
		OutlineDP:       0.75,
		ControlStrokeDP: 1.5,
		FadeDelay:       DefaultFadeDelay,
		FadeDuration:    DefaultFadeDuration,
	}
}

func (m Metrics) px(dp float64) float64 {
	if m.Density <= 0 {
		return dp
	}
	return dp * m.Density
}
