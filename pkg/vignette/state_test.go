package vignette

import (
	"bytes"
	"errors"
	"testing"
)

func TestSavedStateMarshalLayout(t *testing.T) {
	s := SavedState{Left: 1, Top: 2, Right: -1, Bottom: 0}
	data, err := s.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := []byte{
		0x3f, 0x80, 0x00, 0x00,
		0x40, 0x00, 0x00, 0x00,
		0xbf, 0x80, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	if !bytes.Equal(data, want) {
		t.Fatalf("got % x want % x", data, want)
	}

	var back SavedState
	if err := back.UnmarshalBinary(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != s {
		t.Fatalf("got %+v want %+v", back, s)
	}
}

func TestSavedStateRejectsBadBlobs(t *testing.T) {
	var s SavedState
	if err := s.UnmarshalBinary(make([]byte, 15)); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("short blob: got %v", err)
	}
	nan := []byte{0x7f, 0xc0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if err := s.UnmarshalBinary(nan); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("NaN blob: got %v", err)
	}
}

func TestSavedStateZeroMeansNoImage(t *testing.T) {
	if !(SavedState{}).Bounds().IsEmpty() {
		t.Fatalf("zero state should have empty bounds")
	}
}
