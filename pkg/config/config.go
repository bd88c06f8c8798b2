package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Fepozopo/vignette/pkg/vignette"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the engine and the CLI host.
// Values come from the environment, optionally seeded from a .env file.
type Config struct {
	Density   float64
	Tolerance float64

	ControlSizeDP   float64
	ArcDistanceDP   float64
	GradientInsetDP float64
	OutlineDP       float64
	ControlStrokeDP float64

	FadeDelay    time.Duration
	FadeDuration time.Duration

	Feather   float64
	Intensity int

	ViewWidth  int
	ViewHeight int

	LogLevel string
	HUDFont  string
	HUDColor string
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	m := vignette.DefaultMetrics()
	return &Config{
		Density:         m.Density,
		Tolerance:       m.Tolerance,
		ControlSizeDP:   m.ControlSizeDP,
		ArcDistanceDP:   m.ArcDistanceDP,
		GradientInsetDP: m.GradientInsetDP,
		OutlineDP:       m.OutlineDP,
		ControlStrokeDP: m.ControlStrokeDP,
		FadeDelay:       m.FadeDelay,
		FadeDuration:    m.FadeDuration,
		Feather:         vignette.DefaultFeather,
		Intensity:       vignette.DefaultIntensity,
		ViewWidth:       800,
		ViewHeight:      600,
		LogLevel:        "warn",
		HUDColor:        "#ffffff",
	}
}

// Load reads the .env file at path into the process environment (without
// overriding variables that are already set) and builds a Config from the
// environment. An empty path loads ./.env when present.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return cfg, fmt.Errorf("load env file %s: %w", path, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.Apply(os.LookupEnv); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// FromMap builds a Config from key/value pairs, as returned by
// godotenv.Read or godotenv.Unmarshal.
func FromMap(env map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	err := cfg.Apply(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	_ = cfg.Validate()
	return cfg, err
}

// Apply overrides fields from the variables found by lookup.
func (c *Config) Apply(lookup func(string) (string, bool)) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{"VIGNETTE_DENSITY", &c.Density},
		{"VIGNETTE_TOLERANCE", &c.Tolerance},
		{"VIGNETTE_CONTROL_SIZE_DP", &c.ControlSizeDP},
		{"VIGNETTE_ARC_DISTANCE_DP", &c.ArcDistanceDP},
		{"VIGNETTE_GRADIENT_INSET_DP", &c.GradientInsetDP},
		{"VIGNETTE_OUTLINE_DP", &c.OutlineDP},
		{"VIGNETTE_CONTROL_STROKE_DP", &c.ControlStrokeDP},
		{"VIGNETTE_FEATHER", &c.Feather},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = n
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"VIGNETTE_INTENSITY", &c.Intensity},
		{"VIGNETTE_VIEW_WIDTH", &c.ViewWidth},
		{"VIGNETTE_VIEW_HEIGHT", &c.ViewHeight},
	}
	for _, f := range ints {
		v, ok := lookup(f.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = n
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"VIGNETTE_FADE_DELAY", &c.FadeDelay},
		{"VIGNETTE_FADE_DURATION", &c.FadeDuration},
	}
	for _, f := range durations {
		v, ok := lookup(f.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		d, err := parseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = d
	}

	if v, ok := lookup("VIGNETTE_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("VIGNETTE_HUD_FONT"); ok {
		c.HUDFont = strings.TrimSpace(v)
	}
	if v, ok := lookup("VIGNETTE_HUD_COLOR"); ok && v != "" {
		c.HUDColor = strings.TrimSpace(v)
	}
	return nil
}

// parseDuration accepts Go duration strings and bare integers, which are
// taken as milliseconds.
func parseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	def := DefaultConfig()
	if c.Density <= 0 {
		c.Density = def.Density
	}
	if c.Tolerance <= 0 {
		c.Tolerance = def.Tolerance
	}
	for _, p := range []struct{ v, d *float64 }{
		{&c.ControlSizeDP, &def.ControlSizeDP},
		{&c.ArcDistanceDP, &def.ArcDistanceDP},
		{&c.OutlineDP, &def.OutlineDP},
		{&c.ControlStrokeDP, &def.ControlStrokeDP},
	} {
		if *p.v <= 0 {
			*p.v = *p.d
		}
	}
	if c.GradientInsetDP < 0 {
		c.GradientInsetDP = 0
	}
	if c.FadeDelay < 0 {
		c.FadeDelay = 0
	}
	if c.FadeDuration <= 0 {
		c.FadeDuration = def.FadeDuration
	}
	c.Feather = vignette.ClampFeather(c.Feather)
	if c.Intensity < vignette.MinIntensity {
		c.Intensity = vignette.MinIntensity
	}
	if c.Intensity > vignette.MaxIntensity {
		c.Intensity = vignette.MaxIntensity
	}
	if c.ViewWidth <= 0 {
		c.ViewWidth = def.ViewWidth
	}
	if c.ViewHeight <= 0 {
		c.ViewHeight = def.ViewHeight
	}
	if _, ok := levels[c.LogLevel]; !ok {
		c.LogLevel = def.LogLevel
	}
	return nil
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	if l, ok := levels[c.LogLevel]; ok {
		return l
	}
	return slog.LevelWarn
}

// Metrics returns the engine metrics described by c.
func (c *Config) Metrics() vignette.Metrics {
	return vignette.Metrics{
		Density:         c.Density,
		Tolerance:       c.Tolerance,
		ControlSizeDP:   c.ControlSizeDP,
		ArcDistanceDP:   c.ArcDistanceDP,
		GradientInsetDP: c.GradientInsetDP,
		OutlineDP:       c.OutlineDP,
		ControlStrokeDP: c.ControlStrokeDP,
		FadeDelay:       c.FadeDelay,
		FadeDuration:    c.FadeDuration,
	}
}

// EngineOptions converts c to widget options.
func (c *Config) EngineOptions() []vignette.Option {
	return []vignette.Option{
		vignette.WithMetrics(c.Metrics()),
		vignette.WithFeather(c.Feather),
		vignette.WithIntensity(c.Intensity),
	}
}
