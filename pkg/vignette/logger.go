package vignette

import (
	"context"
	"log/slog"
)

// nopHandler discards every record. Enabled reports false so callers skip
// building attributes.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

func rectAttr(key string, r Rect) slog.Attr {
	return slog.Group(key,
		slog.Float64("left", r.Left),
		slog.Float64("top", r.Top),
		slog.Float64("right", r.Right),
		slog.Float64("bottom", r.Bottom),
	)
}
