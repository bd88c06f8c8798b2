package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"strings"
)

// Terminal preview of rendered frames.
//
// Backends, in detection order:
//   - inline: the iTerm2 OSC 1337 sequence, also spoken by WezTerm, Warp,
//     Tabby, VSCode and Hyper.
//   - kitty: the kitty graphics protocol, chunked base64 in ESC _G ... ESC \.
//   - sixel: the PNG piped through img2sixel (or chafa -f sixels).
//   - chafa: character-cell approximation for everything else.
//
// PREVIEW_BACKEND forces a backend; the remaining ones are still tried when it
// fails.

// Backend names accepted by PREVIEW_BACKEND.
const (
	BackendInline = "inline"
	BackendKitty  = "kitty"
	BackendSixel  = "sixel"
	BackendChafa  = "chafa"
)

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int
	PixelHeight int
}

// Previewer writes images to a terminal.
type Previewer struct {
	Out    io.Writer
	Getenv func(string) string
	Logger *slog.Logger
	// lookPath is swapped in tests.
	lookPath func(string) (string, error)
}

// NewPreviewer returns a Previewer writing to out and reading the process
// environment.
func NewPreviewer(out io.Writer, logger *slog.Logger) *Previewer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Previewer{Out: out, Getenv: os.Getenv, Logger: logger, lookPath: exec.LookPath}
}

func (p *Previewer) env(k string) string { return p.Getenv(k) }

func (p *Previewer) isKitty() bool {
	if p.env("KITTY_WINDOW_ID") != "" {
		return true
	}
	// ghostty speaks the kitty protocol
	term := strings.ToLower(p.env("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func (p *Previewer) isInlineCapable() bool {
	switch p.env("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby":
		return true
	}
	if p.env("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(p.env("TERM"))
	return strings.Contains(term, "wezterm") || strings.Contains(term, "tabby")
}

func (p *Previewer) isSixelCapable() bool {
	if p.env("SIXEL_PREVIEW") == "1" {
		return true
	}
	term := strings.ToLower(p.env("TERM"))
	if strings.Contains(term, "foot") || strings.Contains(term, "mlterm") {
		return true
	}
	// Windows Terminal
	return p.env("WT_SESSION") != ""
}

func (p *Previewer) hasTool(name string) bool {
	if p.lookPath == nil {
		return false
	}
	_, err := p.lookPath(name)
	return err == nil
}

// Backends returns the backends to try, most preferred first.
func (p *Previewer) Backends() []string {
	var out []string
	add := func(b string) {
		if !contains(out, b) {
			out = append(out, b)
		}
	}
	if forced := strings.ToLower(p.env("PREVIEW_BACKEND")); forced != "" {
		switch forced {
		case "iterm", "wezterm":
			forced = BackendInline
		}
		add(forced)
	}
	if p.isInlineCapable() {
		add(BackendInline)
	}
	if p.isKitty() {
		add(BackendKitty)
	}
	if p.isSixelCapable() && (p.hasTool("img2sixel") || p.hasTool("chafa")) {
		add(BackendSixel)
	}
	if p.hasTool("chafa") {
		add(BackendChafa)
	}
	return out
}

// Supported reports whether any backend is usable.
func (p *Previewer) Supported() bool { return len(p.Backends()) > 0 }

// Preview encodes img (PNG unless format is "jpeg") and sends it with the
// first backend that succeeds.
func (p *Previewer) Preview(img image.Image, format string) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	backends := p.Backends()
	if len(backends) == 0 {
		return fmt.Errorf("no preview protocol matched")
	}
	f := strings.ToLower(format)
	// kitty wants PNG
	if backends[0] == BackendKitty {
		f = "png"
	}
	var buf bytes.Buffer
	if f == "jpeg" || f == "jpg" {
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 92}); err != nil {
			return fmt.Errorf("jpeg encode failed: %w", err)
		}
		f = "jpeg"
	} else {
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("png encode failed: %w", err)
		}
		f = "png"
	}
	size := computePreviewSize(img)

	var firstErr error
	for _, b := range backends {
		err := p.send(b, buf.Bytes(), f, size)
		if err == nil {
			return nil
		}
		p.Logger.Debug("preview backend failed", slog.String("backend", b), slog.Any("err", err))
		if firstErr == nil {
			firstErr = err
		}
	}
	return fmt.Errorf("preview failed: %w", firstErr)
}

func (p *Previewer) send(backend string, data []byte, format string, size PreviewSize) error {
	switch backend {
	case BackendInline:
		return p.sendInline(data, format, size)
	case BackendKitty:
		return p.sendKitty(data, size)
	case BackendSixel:
		return p.sendSixel(data, size)
	case BackendChafa:
		return p.sendChafa(data, size)
	}
	return fmt.Errorf("unknown preview backend %q", backend)
}

// computePreviewSize maps an image's pixel dimensions into character cells,
// never scaling up and clamping to a reasonable area.
func computePreviewSize(img image.Image) PreviewSize {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	const charW, charH = 8, 16
	const minCols, minRows = 6, 3
	const maxCols, maxRows = 100, 40

	scale := 1.0
	if w > 0 && h > 0 {
		scale = math.Min(1.0, math.Min(float64(maxCols*charW)/float64(w), float64(maxRows*charH)/float64(h)))
	}
	cols := int(math.Round(float64(w) * scale / charW))
	rows := int(math.Round(float64(h) * scale / charH))
	cols = min(max(cols, minCols), maxCols)
	rows = min(max(rows, minRows), maxRows)
	return PreviewSize{Cols: cols, Rows: rows, PixelWidth: cols * charW, PixelHeight: rows * charH}
}

// sendKitty transmits PNG bytes with the kitty graphics protocol. The first
// chunk carries the placement (c, r); q=2 suppresses terminal replies.
func (p *Previewer) sendKitty(data []byte, size PreviewSize) error {
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = "\x1b_Gm=" + more + ";" + enc[pos:end] + "\x1b\\"
		}
		if _, err := io.WriteString(p.Out, seq); err != nil {
			return err
		}
	}
	_, err := io.WriteString(p.Out, "\n")
	return err
}

// sendInline emits the iTerm2-style OSC 1337 inline file sequence.
func (p *Previewer) sendInline(data []byte, format string, size PreviewSize) error {
	name := base64.StdEncoding.EncodeToString([]byte("vignette." + format))
	seq := fmt.Sprintf("\x1b]1337;File=name=%s;size=%d;inline=1;width=%d;height=%d;preserveAspectRatio=1:%s\a\n",
		name, len(data), size.Cols, size.Rows, base64.StdEncoding.EncodeToString(data))
	_, err := io.WriteString(p.Out, seq)
	return err
}

func (p *Previewer) sendSixel(data []byte, size PreviewSize) error {
	if p.hasTool("img2sixel") {
		return p.pipe("img2sixel", data, "-w", fmt.Sprint(size.PixelWidth))
	}
	return p.pipe("chafa", data, "-f", "sixels", "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
}

func (p *Previewer) sendChafa(data []byte, size PreviewSize) error {
	return p.pipe("chafa", data, "--fill=block", "--symbols=block", "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
}

// pipe runs an external renderer with data on stdin and its output going to
// the preview writer.
func (p *Previewer) pipe(tool string, data []byte, args ...string) error {
	cmd := exec.Command(tool, args...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = p.Out
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", tool, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
