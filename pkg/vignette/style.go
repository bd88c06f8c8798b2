package vignette

import (
	"math"

	"github.com/gogpu/gg"
)

const (
	DefaultFeather   = 0.7
	DefaultIntensity = 15

	MinIntensity = -100
	MaxIntensity = 100
)

// Scrim is the solid layer the feather mask is cut out of. Positive
// intensities darken with black, negative ones lighten with white.
type Scrim struct {
	White bool
	Alpha uint8
}

// ScrimFromIntensity encodes an intensity in [-100, 100] as a scrim.
// Out-of-range values are clamped.
func ScrimFromIntensity(v int) Scrim {
	v = clampInt(v, MinIntensity, MaxIntensity)
	a := math.Round(math.Abs(float64(v)) * 2.55)
	return Scrim{White: v < 0, Alpha: uint8(a)}
}

// Intensity decodes the scrim back to an intensity. The encoding is lossy,
// the result is the nearest integer to alpha/2.55 with the scrim's sign.
func (s Scrim) Intensity() int {
	v := int(math.Round(float64(s.Alpha) / 2.55))
	if s.White {
		return -v
	}
	return v
}

// RGBA returns the scrim color with straight alpha.
func (s Scrim) RGBA() gg.RGBA {
	a := float64(s.Alpha) / 255
	if s.White {
		return gg.RGBA2(1, 1, 1, a)
	}
	return gg.RGBA2(0, 0, 0, a)
}

// ClampFeather limits f to [0, 1].
func ClampFeather(f float64) float64 {
	if math.IsNaN(f) {
		return DefaultFeather
	}
	return math.Max(0, math.Min(1, f))
}

// FeatherBrush returns the unit-radius radial gradient used to erase the
// scrim. It is fully opaque from the center out to feather and fades to
// transparent at radius 1.
func FeatherBrush(feather float64) *gg.RadialGradientBrush {
	feather = ClampFeather(feather)
	return gg.NewRadialGradientBrush(0, 0, 0, 1).
		AddColorStop(0, gg.Black).
		AddColorStop(feather, gg.Black).
		AddColorStop(1, gg.Transparent)
}

// RenderStyle is everything the compositor needs besides geometry. It is
// rebuilt from the widget parameters whenever one of them changes.
type RenderStyle struct {
	Scrim      Scrim
	Feather    float64
	Gradient   *gg.RadialGradientBrush
	PaintAlpha uint8

	OutlineWidth     float64
	ControlWidth     float64
	ControlPointSize float64
	ArcDistance      float64
	GradientInset    float64
}

// NewRenderStyle builds a style for the given parameters and metrics.
func NewRenderStyle(scrim Scrim, feather float64, paintAlpha uint8, m Metrics) RenderStyle {
	feather = ClampFeather(feather)
	return RenderStyle{
		Scrim:            scrim,
		Feather:          feather,
		Gradient:         FeatherBrush(feather),
		PaintAlpha:       paintAlpha,
		OutlineWidth:     m.px(m.OutlineDP),
		ControlWidth:     m.px(m.ControlStrokeDP),
		ControlPointSize: m.px(m.ControlSizeDP),
		ArcDistance:      m.px(m.ArcDistanceDP),
		GradientInset:    m.px(m.GradientInsetDP),
	}
}

// IntensityFromProgress maps a 0..100 slider position to an intensity.
func IntensityFromProgress(p int) int {
	return clampInt(p, 0, 100)*2 - 100
}

// ProgressFromIntensity maps an intensity to a 0..100 slider position.
func ProgressFromIntensity(v int) int {
	return (clampInt(v, MinIntensity, MaxIntensity) + 100) / 2
}

// FeatherFromProgress maps a 0..100 slider position to a feather value.
func FeatherFromProgress(p int) float64 {
	return float64(clampInt(p, 0, 100)) / 100
}

// ProgressFromFeather maps a feather value to a 0..100 slider position.
func ProgressFromFeather(f float64) int {
	return int(math.Round(ClampFeather(f) * 100))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
