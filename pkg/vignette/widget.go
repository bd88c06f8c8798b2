package vignette

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gg"
)

// RenderSurface is notified whenever the widget needs to be redrawn.
type RenderSurface interface {
	Invalidate()
}

// SurfaceFunc adapts a function to RenderSurface.
type SurfaceFunc func()

func (f SurfaceFunc) Invalidate() { f() }

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the logger. A nil logger keeps the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSurface sets the surface to invalidate on changes.
func WithSurface(s RenderSurface) Option {
	return func(w *Widget) { w.surface = s }
}

// WithFader replaces the default Fader. The scheduler is expected to deliver
// alpha values through Widget.SetPaintAlpha.
func WithFader(f FadeScheduler) Option {
	return func(w *Widget) { w.fader = f }
}

// WithMetrics sets device sizes and fade timings.
func WithMetrics(m Metrics) Option {
	return func(w *Widget) { w.metrics = m }
}

// WithFeather sets the initial feather.
func WithFeather(f float64) Option {
	return func(w *Widget) { w.feather = ClampFeather(f) }
}

// WithIntensity sets the initial intensity.
func WithIntensity(v int) Option {
	return func(w *Widget) { w.scrim = ScrimFromIntensity(v) }
}

// Widget is the interactive vignette editor. It tracks the displayed image
// bounds, the mask ellipse and the gesture in progress, and draws itself
// onto a gg canvas. A Widget is not safe for concurrent use; the host must
// deliver input, image changes and fade ticks from a single goroutine.
type Widget struct {
	metrics Metrics
	logger  *slog.Logger
	surface RenderSurface
	fader   FadeScheduler

	imageBounds Rect
	mask        Rect
	region      Region
	feather     float64
	scrim       Scrim
	paintAlpha  uint8
	gradient    gg.Matrix
	style       RenderStyle
}

// NewWidget returns a widget with no image.
func NewWidget(opts ...Option) *Widget {
	w := &Widget{
		metrics:    DefaultMetrics(),
		logger:     newNopLogger(),
		feather:    DefaultFeather,
		scrim:      ScrimFromIntensity(DefaultIntensity),
		paintAlpha: 255,
		gradient:   gg.Identity(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.fader == nil {
		w.fader = NewFader(w.metrics.FadeDuration, w.SetPaintAlpha, WithFaderLogger(w.logger))
	}
	w.rebuildStyle()
	return w
}

func (w *Widget) tolerance() float64 { return w.metrics.Tolerance }

// OnDown starts a gesture at (x, y). It returns false when there is no image
// or no mask to interact with.
func (w *Widget) OnDown(x, y float64) bool {
	if w.imageBounds.IsEmpty() {
		return false
	}
	w.fader.Cancel()
	if w.paintAlpha != 255 {
		w.fader.StartFadeIn()
	}
	if w.mask.IsEmpty() {
		return false
	}
	w.setRegion(Classify(x, y, w.mask, w.tolerance()))
	return true
}

// OnMove applies a drag sample. dx and dy are the distances since the last
// sample, previous minus current position.
func (w *Widget) OnMove(x, y, dx, dy float64) bool {
	if w.imageBounds.IsEmpty() || w.mask.IsEmpty() {
		return false
	}
	next := ApplyDrag(w.region, dx, dy, w.imageBounds, w.mask, w.tolerance())
	if next != w.mask {
		w.logger.Debug("mask dragged",
			slog.String("region", w.region.String()),
			slog.Float64("dx", dx), slog.Float64("dy", dy),
			rectAttr("mask", next))
	}
	w.mask = next
	w.updateGradient()
	w.invalidate()
	return true
}

// OnUp ends the gesture and schedules the controls to fade out.
func (w *Widget) OnUp(x, y float64) bool {
	if w.imageBounds.IsEmpty() {
		return false
	}
	w.setRegion(RegionNone)
	w.fader.StartFadeOut(w.metrics.FadeDelay)
	return true
}

// SetImageBounds sets where the image is displayed, in view coordinates.
// The first non-empty bounds place the mask inset by the touch tolerance;
// later changes carry the mask along with the image. Empty bounds clear
// both rects.
func (w *Widget) SetImageBounds(b Rect) {
	old := w.imageBounds
	switch {
	case b.IsEmpty():
		w.imageBounds = Rect{}
		w.mask = Rect{}
	case w.mask.IsEmpty():
		w.imageBounds = b
		w.mask = b.Inset(w.tolerance(), w.tolerance())
	case b != old:
		w.imageBounds = b
		w.mask = RemapBounds(old, b, w.mask, w.tolerance())
	}
	w.logger.Info("image bounds set", rectAttr("bounds", w.imageBounds), rectAttr("mask", w.mask))

	w.region = RegionNone
	w.updateGradient()
	w.paintAlpha = 255
	w.style.PaintAlpha = 255
	w.invalidate()
	w.fader.StartFadeOut(w.metrics.FadeDelay)
}

// ClearImage removes the image; both rects become empty.
func (w *Widget) ClearImage() {
	w.SetImageBounds(Rect{})
}

func (w *Widget) ImageBounds() Rect         { return w.imageBounds }
func (w *Widget) MaskRect() Rect            { return w.mask }
func (w *Widget) ActiveRegion() Region      { return w.region }
func (w *Widget) PaintAlpha() uint8         { return w.paintAlpha }
func (w *Widget) Feather() float64          { return w.feather }
func (w *Widget) Metrics() Metrics          { return w.metrics }
func (w *Widget) Style() RenderStyle        { return w.style }
func (w *Widget) GradientMatrix() gg.Matrix { return w.gradient }

// SetMaskRect replaces the mask ellipse bounds.
func (w *Widget) SetMaskRect(r Rect) {
	w.mask = r
	w.updateGradient()
	w.invalidate()
}

// SetFeather sets the feather, clamped to [0, 1].
func (w *Widget) SetFeather(f float64) {
	w.feather = ClampFeather(f)
	w.logger.Debug("feather set", slog.Float64("feather", w.feather))
	w.rebuildStyle()
	w.updateGradient()
	w.invalidate()
}

// SetIntensity sets the intensity, clamped to [-100, 100]. Positive values
// darken the area outside the mask, negative values lighten it.
func (w *Widget) SetIntensity(v int) {
	w.scrim = ScrimFromIntensity(v)
	w.logger.Debug("intensity set", slog.Int("value", v), slog.Int("alpha", int(w.scrim.Alpha)))
	w.rebuildStyle()
	w.invalidate()
}

// Intensity returns the intensity decoded from the scrim. Because the scrim
// stores an 8-bit alpha the value may differ by one from what was set.
func (w *Widget) Intensity() int { return w.scrim.Intensity() }

// SetPaintAlpha sets the alpha of the outline and control points.
func (w *Widget) SetPaintAlpha(a uint8) {
	if a == w.paintAlpha {
		return
	}
	w.paintAlpha = a
	w.style.PaintAlpha = a
	w.invalidate()
}

// Tick advances the fade animation when the widget owns a tick-driven
// scheduler. It returns true while more ticks are needed.
func (w *Widget) Tick(now time.Time) bool {
	if t, ok := w.fader.(interface{ Tick(time.Time) bool }); ok {
		return t.Tick(now)
	}
	return false
}

// SaveState returns the persisted widget state.
func (w *Widget) SaveState() SavedState {
	b := w.imageBounds
	return SavedState{
		Left:   float32(b.Left),
		Top:    float32(b.Top),
		Right:  float32(b.Right),
		Bottom: float32(b.Bottom),
	}
}

// RestoreState applies a saved state to a freshly built widget. Only the
// image bounds are restored; the mask gets its default placement on the
// next SetImageBounds.
func (w *Widget) RestoreState(s SavedState) {
	w.imageBounds = s.Bounds()
	if w.imageBounds.IsEmpty() {
		w.imageBounds = Rect{}
	}
	w.logger.Debug("state restored", rectAttr("bounds", w.imageBounds))
}

// RenderParams returns the current frame description.
func (w *Widget) RenderParams() RenderParams {
	return RenderParams{ImageBounds: w.imageBounds, Mask: w.mask, Style: w.style, Gradient: w.gradient}
}

// Draw renders the vignette and controls onto canvas.
func (w *Widget) Draw(canvas *gg.Context) error {
	if err := Render(canvas, w.RenderParams()); err != nil {
		return fmt.Errorf("render vignette: %w", err)
	}
	return nil
}

func (w *Widget) setRegion(r Region) {
	if r == w.region {
		return
	}
	w.logger.Debug("touch state", slog.String("region", r.String()))
	w.region = r
	w.invalidate()
}

func (w *Widget) updateGradient() {
	w.gradient = GradientTransform(w.mask)
}

func (w *Widget) rebuildStyle() {
	w.style = NewRenderStyle(w.scrim, w.feather, w.paintAlpha, w.metrics)
}

func (w *Widget) invalidate() {
	if w.surface != nil {
		w.surface.Invalidate()
	}
}
