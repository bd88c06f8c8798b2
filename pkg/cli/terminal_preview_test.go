package cli

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func noTools(string) (string, error) { return "", errors.New("not found") }

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	return img
}

// TestPreviewInlineSequence verifies that an inline-capable terminal gets an
// OSC 1337 sequence.
func TestPreviewInlineSequence(t *testing.T) {
	var out bytes.Buffer
	p := NewPreviewer(&out, nil)
	p.Getenv = fakeEnv(map[string]string{"TERM_PROGRAM": "WezTerm"})
	p.lookPath = noTools
	if err := p.Preview(testImage(), "png"); err != nil {
		t.Fatalf("Preview error: %v", err)
	}
	if !strings.Contains(out.String(), "\x1b]1337;File=") {
		t.Fatalf("expected inline 1337 sequence in output, got: %q", out.String())
	}
}

// TestPreviewEncodesJPEG checks that the inline payload is JPEG when asked.
func TestPreviewEncodesJPEG(t *testing.T) {
	var out bytes.Buffer
	p := NewPreviewer(&out, nil)
	p.Getenv = fakeEnv(map[string]string{"TERM_PROGRAM": "iTerm.app"})
	p.lookPath = noTools
	if err := p.Preview(testImage(), "jpeg"); err != nil {
		t.Fatalf("Preview error: %v", err)
	}
	s := out.String()
	idx := strings.LastIndex(s, ":")
	if idx < 0 {
		t.Fatalf("no ':' found in output: %q", s)
	}
	payload := s[idx+1:]
	if bi := strings.Index(payload, "\a"); bi >= 0 {
		payload = payload[:bi]
	}
	dec, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("base64 decode failed: %v", err)
	}
	if len(dec) < 2 || dec[0] != 0xFF || dec[1] != 0xD8 {
		t.Fatalf("expected JPEG SOI bytes, got: %x", dec[:2])
	}
}

func TestPreviewKittyChunks(t *testing.T) {
	var out bytes.Buffer
	p := NewPreviewer(&out, nil)
	p.Getenv = fakeEnv(map[string]string{"KITTY_WINDOW_ID": "1"})
	p.lookPath = noTools
	// noisy pixels so the PNG spans several chunks
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7919 % 251)
	}
	if err := p.Preview(img, "jpeg"); err != nil {
		t.Fatalf("Preview error: %v", err)
	}
	s := out.String()
	if !strings.HasPrefix(s, "\x1b_Ga=T,f=100,") {
		t.Fatalf("expected kitty header, got %q", s[:min(len(s), 40)])
	}
	if !strings.Contains(s, "m=1;") || !strings.Contains(s, "\x1b_Gm=0;") {
		t.Fatalf("expected a chunked transfer ending with m=0")
	}
}

func TestBackendsOrder(t *testing.T) {
	p := NewPreviewer(nil, nil)
	p.lookPath = func(name string) (string, error) {
		if name == "chafa" {
			return "/usr/bin/chafa", nil
		}
		return "", errors.New("not found")
	}
	p.Getenv = fakeEnv(map[string]string{"PREVIEW_BACKEND": "chafa", "TERM_PROGRAM": "WezTerm", "TERM": "xterm-kitty"})
	got := p.Backends()
	want := []string{BackendChafa, BackendInline, BackendKitty}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Backends() = %v, want %v", got, want)
	}

	p.Getenv = fakeEnv(nil)
	p.lookPath = noTools
	if p.Supported() {
		t.Fatalf("plain terminal without chafa should not be supported")
	}
	if err := p.Preview(testImage(), "png"); err == nil {
		t.Fatalf("expected error without a backend")
	}
}

func TestComputePreviewSize(t *testing.T) {
	s := computePreviewSize(image.NewRGBA(image.Rect(0, 0, 1600, 1200)))
	if s.Cols != 100 || s.Rows != 38 {
		t.Fatalf("got %+v", s)
	}
	s = computePreviewSize(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	if s.Cols != 6 || s.Rows != 3 {
		t.Fatalf("small images clamp to the minimum, got %+v", s)
	}
}
