package vignette

import (
	"log/slog"
	"math"
	"time"
)

const (
	DefaultFadeDelay    = 3 * time.Second
	DefaultFadeDuration = 300 * time.Millisecond
)

// FadeScheduler animates the paint alpha of the overlay controls.
type FadeScheduler interface {
	// StartFadeIn animates the alpha from 0 to 255, restarting if running.
	// A pending fade-out is cancelled.
	StartFadeIn()
	// StartFadeOut animates the alpha from 255 to 0 after delay. A pending
	// fade-out is replaced.
	StartFadeOut(delay time.Duration)
	// Cancel drops a pending or running fade-out.
	Cancel()
}

// AlphaSink receives animated alpha values.
type AlphaSink func(alpha uint8)

// Fader is a FadeScheduler driven by explicit Tick calls from the host
// event loop. It never starts goroutines and is not safe for concurrent use.
type Fader struct {
	duration time.Duration
	sink     AlphaSink
	now      func() time.Time
	logger   *slog.Logger

	in, out fade
}

type fade struct {
	active   bool
	from, to float64
	start    time.Time
}

// FaderOption configures a Fader.
type FaderOption func(*Fader)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) FaderOption {
	return func(f *Fader) { f.now = now }
}

// WithFaderLogger sets the logger used for fade transitions.
func WithFaderLogger(l *slog.Logger) FaderOption {
	return func(f *Fader) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFader returns a Fader that animates over duration and reports values
// to sink. A non-positive duration uses DefaultFadeDuration.
func NewFader(duration time.Duration, sink AlphaSink, opts ...FaderOption) *Fader {
	if duration <= 0 {
		duration = DefaultFadeDuration
	}
	f := &Fader{
		duration: duration,
		sink:     sink,
		now:      time.Now,
		logger:   newNopLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fader) StartFadeIn() {
	f.Cancel()
	f.in = fade{active: true, from: 0, to: 255, start: f.now()}
	f.logger.Debug("fade in started")
}

func (f *Fader) StartFadeOut(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	f.out = fade{active: true, from: 255, to: 0, start: f.now().Add(delay)}
	f.logger.Debug("fade out scheduled", slog.Duration("delay", delay))
}

func (f *Fader) Cancel() {
	if f.out.active {
		f.logger.Debug("fade out cancelled")
	}
	f.out.active = false
}

// Active reports whether a fade is pending or running.
func (f *Fader) Active() bool {
	return f.in.active || f.out.active
}

// Tick advances the animations to now and delivers the current alpha. It
// returns true while more ticks are needed. A fade-out that has started
// running stops any fade-in.
func (f *Fader) Tick(now time.Time) bool {
	if f.out.active && !now.Before(f.out.start) {
		if f.in.active {
			f.in.active = false
			f.logger.Debug("fade in stopped by fade out")
		}
		f.step(&f.out, now)
	} else if f.in.active {
		f.step(&f.in, now)
	}
	return f.Active()
}

func (f *Fader) step(a *fade, now time.Time) {
	frac := float64(now.Sub(a.start)) / float64(f.duration)
	if frac >= 1 {
		frac = 1
		a.active = false
	}
	if frac < 0 {
		frac = 0
	}
	v := a.from + (a.to-a.from)*AccelerateDecelerate(frac)
	if !a.active {
		v = a.to
	}
	if f.sink != nil {
		f.sink(uint8(v))
	}
}

// AccelerateDecelerate is the ease-in-out curve used for fades. It maps 0 to
// 0 and 1 to 1.
func AccelerateDecelerate(t float64) float64 {
	return math.Cos((t+1)*math.Pi)/2 + 0.5
}
