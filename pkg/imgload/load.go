// Package imgload decodes photos for display, applying EXIF orientation,
// and saves rendered frames.
package imgload

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/Fepozopo/vignette/pkg/stdimg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info describes a decoded image.
type Info struct {
	Format      string
	Width       int
	Height      int
	Orientation int
}

func (i Info) String() string {
	return fmt.Sprintf("Format: %s, Width: %d, Height: %d, Orientation: %d", i.Format, i.Width, i.Height, i.Orientation)
}

// Decode decodes an encoded image and rotates it upright according to its
// EXIF orientation.
func Decode(data []byte) (image.Image, Info, error) {
	format := DetectFormat(data)
	img, decoded, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("decode image: %w", err)
	}
	if format == "" {
		format = decoded
	}
	orientation := Orientation(data)
	if orientation != 1 {
		img = stdimg.AutoOrient(img, orientation)
	}
	b := img.Bounds()
	return img, Info{Format: format, Width: b.Dx(), Height: b.Dy(), Orientation: orientation}, nil
}

// Load reads and decodes the image at path.
func Load(path string) (image.Image, Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Info{}, fmt.Errorf("read %s: %w", path, err)
	}
	img, info, err := Decode(data)
	if err != nil {
		return nil, Info{}, fmt.Errorf("%s: %w", path, err)
	}
	return img, info, nil
}

// Save writes img to path using the format implied by the file extension.
// Unknown extensions are written as PNG.
func Save(path string, img image.Image) error {
	if img == nil {
		return fmt.Errorf("save %s: nil image", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	case ".gif":
		err = gif.Encode(f, img, nil)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
