package imgload

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

// makeExifPayload builds a minimal APP1 payload ("Exif\x00\x00" + TIFF)
// holding only an Orientation tag in IFD0.
func makeExifPayload(order binary.ByteOrder, orientation uint16) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("Exif\x00\x00")
	if order == binary.BigEndian {
		buf.WriteString("MM")
	} else {
		buf.WriteString("II")
	}
	_ = binary.Write(buf, order, uint16(0x2A))
	_ = binary.Write(buf, order, uint32(8))
	_ = binary.Write(buf, order, uint16(1))
	_ = binary.Write(buf, order, uint16(0x0112))
	_ = binary.Write(buf, order, uint16(3))
	_ = binary.Write(buf, order, uint32(1))
	_ = binary.Write(buf, order, orientation)
	_ = binary.Write(buf, order, uint16(0))
	_ = binary.Write(buf, order, uint32(0))
	return buf.Bytes()
}

// jpegWithOrientation encodes a w x h JPEG and inserts an APP1 segment
// right after SOI.
func jpegWithOrientation(t *testing.T, w, h int, order binary.ByteOrder, orientation uint16) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 128, 255})
		}
	}
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}
	raw := buf.Bytes()
	payload := makeExifPayload(order, orientation)
	seg := []byte{0xFF, 0xE1, byte((len(payload) + 2) >> 8), byte(len(payload) + 2)}
	out := append([]byte{}, raw[:2]...)
	out = append(out, seg...)
	out = append(out, payload...)
	return append(out, raw[2:]...)
}

func TestDetectFormat(t *testing.T) {
	cases := map[string][]byte{
		FormatJPEG: {0xFF, 0xD8, 0xFF, 0xE0},
		FormatPNG:  []byte("\x89PNG\r\n\x1a\nrest"),
		FormatGIF:  []byte("GIF89a..."),
		FormatWebP: []byte("RIFF\x00\x00\x00\x00WEBPVP8 "),
		FormatBMP:  []byte("BM\x00\x00"),
		FormatTIFF: []byte("MM\x00*\x00\x00\x00\x08"),
		"":         []byte("hello"),
	}
	for want, data := range cases {
		if got := DetectFormat(data); got != want {
			t.Fatalf("DetectFormat(%q) = %q, want %q", data, got, want)
		}
	}
}

func TestOrientationFromJPEG(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		data := jpegWithOrientation(t, 16, 8, order, 6)
		if o := Orientation(data); o != 6 {
			t.Fatalf("%v: orientation %d, want 6", order, o)
		}
	}
}

func TestOrientationDefaults(t *testing.T) {
	if o := Orientation([]byte("not an image")); o != 1 {
		t.Fatalf("got %d", o)
	}
	data := jpegWithOrientation(t, 4, 4, binary.LittleEndian, 42)
	if o := Orientation(data); o != 1 {
		t.Fatalf("out-of-range orientation should be ignored, got %d", o)
	}
}

func TestDecodeAppliesOrientation(t *testing.T) {
	data := jpegWithOrientation(t, 16, 8, binary.LittleEndian, 6)
	img, info, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 16 {
		t.Fatalf("expected rotated 8x16, got %v", b)
	}
	if info.Format != FormatJPEG || info.Orientation != 6 || info.Width != 8 {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestDecodeBMP(t *testing.T) {
	buf := &bytes.Buffer{}
	if err := bmp.Encode(buf, image.NewRGBA(image.Rect(0, 0, 5, 3))); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}
	_, info, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Format != FormatBMP || info.Width != 5 || info.Height != 3 {
		t.Fatalf("unexpected info %+v", info)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, _, err := Decode([]byte("garbage")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for _, name := range []string{"a.png", "a.jpg", "a.bmp", "a.tiff", "a.gif", "a.unknown"} {
		path := filepath.Join(dir, name)
		if err := Save(path, img); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
		got, info, err := Load(path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if b := got.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
			t.Fatalf("%s: size %v", name, b)
		}
		if info.Format == "" {
			t.Fatalf("%s: format not detected", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatalf("expected error")
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

func TestLoaderDeliversLatest(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.png")
	second := filepath.Join(dir, "second.png")
	writePNG(t, first, 3, 3)
	writePNG(t, second, 7, 5)

	l := NewLoader(nil)
	defer l.Close()
	l.Start(context.Background(), first)
	l.Start(context.Background(), second)

	select {
	case res := <-l.Results():
		if res.Err != nil {
			t.Fatalf("load: %v", res.Err)
		}
		if res.Path != second || res.Info.Width != 7 {
			t.Fatalf("expected the second image, got %s %+v", res.Path, res.Info)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for the loader")
	}
}

func TestLoaderReportsErrors(t *testing.T) {
	l := NewLoader(nil)
	defer l.Close()
	l.Start(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	select {
	case res := <-l.Results():
		if res.Err == nil {
			t.Fatalf("expected error")
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for the loader")
	}
}
