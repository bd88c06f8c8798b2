package stdimg

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace returns a face for the TrueType/OpenType font at path, sized in
// points at 72 DPI. An empty path returns the built-in 7x13 face.
func LoadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return basicfont.Face7x13, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	tt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

// Annotate draws lines of text onto dst in place, starting with the first
// baseline at (x, y). A nil face uses the built-in basic font.
func Annotate(dst *image.NRGBA, lines []string, face font.Face, x, y int, col color.Color) {
	if dst == nil || len(lines) == 0 {
		return
	}
	if face == nil {
		face = basicfont.Face7x13
	}
	lineHeight := face.Metrics().Height
	if lineHeight <= 0 {
		lineHeight = fixed.I(13)
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	for _, line := range lines {
		d.Dot.X = fixed.I(x)
		d.DrawString(line)
		d.Dot.Y += lineHeight
	}
}

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ff0000",
	"green":  "#008000",
	"lime":   "#00ff00",
	"blue":   "#0000ff",
	"yellow": "#ffff00",
	"cyan":   "#00ffff",
	"orange": "#ffa500",
	"gray":   "#808080",
	"grey":   "#808080",
}

// ParseHexColor accepts a few named colors and the forms #rgb, #rgba,
// #rrggbb and #rrggbbaa (the leading # is optional).
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color")
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 || len(hex) == 4 {
		var b strings.Builder
		for _, c := range hex {
			b.WriteRune(c)
			b.WriteRune(c)
		}
		hex = b.String()
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("unsupported hex color length: %d", len(hex))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
