package vignette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidState is returned when a saved state blob cannot be decoded.
var ErrInvalidState = errors.New("vignette: invalid saved state")

const savedStateSize = 16

// SavedState is the persisted part of the widget: the image bounds in view
// coordinates. The mask itself is not saved; it is rebuilt from the bounds
// on restore. The zero value means no image.
type SavedState struct {
	Left, Top, Right, Bottom float32
}

// Bounds returns the saved image bounds.
func (s SavedState) Bounds() Rect {
	return Rect{
		Left:   float64(s.Left),
		Top:    float64(s.Top),
		Right:  float64(s.Right),
		Bottom: float64(s.Bottom),
	}
}

// MarshalBinary encodes the four edges as big-endian float32 values in
// left, top, right, bottom order.
func (s SavedState) MarshalBinary() ([]byte, error) {
	buf := make([]byte, savedStateSize)
	for i, v := range [4]float32{s.Left, s.Top, s.Right, s.Bottom} {
		binary.BigEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf, nil
}

// UnmarshalBinary decodes a blob written by MarshalBinary.
func (s *SavedState) UnmarshalBinary(data []byte) error {
	if len(data) != savedStateSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidState, len(data), savedStateSize)
	}
	var v [4]float32
	for i := range v {
		v[i] = math.Float32frombits(binary.BigEndian.Uint32(data[i*4:]))
		if math.IsNaN(float64(v[i])) || math.IsInf(float64(v[i]), 0) {
			return fmt.Errorf("%w: edge %d is not finite", ErrInvalidState, i)
		}
	}
	s.Left, s.Top, s.Right, s.Bottom = v[0], v[1], v[2], v[3]
	return nil
}
