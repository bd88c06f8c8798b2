package cli

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/font"

	"github.com/Fepozopo/vignette/pkg/config"
	"github.com/Fepozopo/vignette/pkg/imgload"
	"github.com/Fepozopo/vignette/pkg/stdimg"
	"github.com/Fepozopo/vignette/pkg/vignette"
)

// ErrQuit is returned by Execute for the quit command.
var ErrQuit = errors.New("quit")

// Session is the host side of the overlay: it owns the photo, the view
// size and the widget, and turns text commands into widget calls.
type Session struct {
	cfg     *config.Config
	logger  *slog.Logger
	out     io.Writer
	store   *MetaStore
	widget  *vignette.Widget
	loader  *imgload.Loader
	preview *Previewer

	photo     *image.NRGBA
	photoPath string
	info      imgload.Info
	viewW     int
	viewH     int

	hudFace  font.Face
	hudColor color.NRGBA

	pressed      bool
	lastX, lastY float64

	// dirty is set whenever the widget asks for a redraw.
	dirty       bool
	redraws     int
	AutoPreview bool
}

// NewSession builds a session from cfg. Output is written to out.
func NewSession(cfg *config.Config, logger *slog.Logger, out io.Writer) (*Session, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{
		cfg:     cfg,
		logger:  logger,
		out:     out,
		store:   NewMetaStore(Commands),
		loader:  imgload.NewLoader(logger.With(slog.String("component", "loader"))),
		preview: NewPreviewer(out, logger),
		viewW:   cfg.ViewWidth,
		viewH:   cfg.ViewHeight,
	}
	face, err := stdimg.LoadFace(cfg.HUDFont, 13)
	if err != nil {
		return nil, fmt.Errorf("hud font: %w", err)
	}
	col, err := stdimg.ParseHexColor(cfg.HUDColor)
	if err != nil {
		return nil, fmt.Errorf("hud color: %w", err)
	}
	s.hudFace = face
	s.hudColor = col
	s.widget = s.newWidget()
	return s, nil
}

func (s *Session) newWidget() *vignette.Widget {
	opts := append(s.cfg.EngineOptions(),
		vignette.WithLogger(s.logger.With(slog.String("component", "widget"))),
		vignette.WithSurface(vignette.SurfaceFunc(s.invalidate)),
	)
	return vignette.NewWidget(opts...)
}

func (s *Session) invalidate() {
	s.dirty = true
	s.redraws++
}

// Widget returns the session's widget.
func (s *Session) Widget() *vignette.Widget { return s.widget }

// Loader returns the background image loader.
func (s *Session) Loader() *imgload.Loader { return s.loader }

// Close stops background work.
func (s *Session) Close() { s.loader.Close() }

// Tick advances the fade animation.
func (s *Session) Tick(now time.Time) bool { return s.widget.Tick(now) }

// Attach shows img in the view, fitting it when larger than the view.
func (s *Session) Attach(img image.Image, path string, info imgload.Info) {
	s.photo = stdimg.ToNRGBA(img)
	s.photoPath = path
	s.info = info
	s.layout()
}

// layout recomputes the image bounds for the current photo and view size.
func (s *Session) layout() {
	if s.photo == nil {
		s.widget.ClearImage()
		return
	}
	b := s.photo.Bounds()
	s.widget.SetImageBounds(vignette.FitIfBigger(b.Dx(), b.Dy(), s.viewW, s.viewH))
}

// HandleLoad consumes a loader result. A failed load leaves the session
// without an image.
func (s *Session) HandleLoad(res imgload.Result) error {
	if res.Err != nil {
		s.Attach(nil, "", imgload.Info{})
		return fmt.Errorf("failed to read image %s: %w", res.Path, res.Err)
	}
	s.Attach(res.Image, res.Path, res.Info)
	fmt.Fprintf(s.out, "Opened %s\n%s\n", res.Path, res.Info)
	return nil
}

// ExecuteLine parses and runs one command line. Empty lines are ignored.
func (s *Session) ExecuteLine(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return s.Execute(ctx, fields[0], fields[1:])
}

// Execute validates args against the command metadata and runs the command.
func (s *Session) Execute(ctx context.Context, name string, rawArgs []string) error {
	c, err := s.store.Lookup(name)
	if err != nil {
		return err
	}
	args, err := NormalizeArgs(s.store, c.Name, rawArgs)
	if err != nil {
		return fmt.Errorf("input validation error: %w", err)
	}
	s.logger.Debug("command", slog.String("name", c.Name), slog.Any("args", args))

	switch c.Name {
	case "open":
		path := args[0]
		if path == "" {
			if path, err = s.preview.SelectFileWithFzf("."); err != nil {
				return fmt.Errorf("open: %w", err)
			}
		}
		s.loader.Start(ctx, path)
		fmt.Fprintf(s.out, "Loading %s...\n", path)

	case "down":
		x, y := num(args[0]), num(args[1])
		s.pressed, s.lastX, s.lastY = true, x, y
		if !s.widget.OnDown(x, y) {
			fmt.Fprintln(s.out, "no image loaded")
			return nil
		}
		fmt.Fprintf(s.out, "region: %s\n", s.widget.ActiveRegion())

	case "move":
		if !s.pressed {
			return fmt.Errorf("move: pointer is not down")
		}
		s.move(num(args[0]), num(args[1]))

	case "up":
		x, y := s.lastX, s.lastY
		if args[0] != "" {
			x = num(args[0])
		}
		if args[1] != "" {
			y = num(args[1])
		}
		s.pressed = false
		s.widget.OnUp(x, y)

	case "drag":
		x0, y0, x1, y1 := num(args[0]), num(args[1]), num(args[2]), num(args[3])
		steps := 8
		if args[4] != "" {
			steps, _ = strconv.Atoi(args[4])
		}
		s.Drag(x0, y0, x1, y1, steps)
		fmt.Fprintf(s.out, "mask: %s\n", s.widget.MaskRect())

	case "feather":
		s.widget.SetFeather(num(args[0]))

	case "intensity":
		v, _ := strconv.Atoi(args[0])
		s.widget.SetIntensity(v)

	case "progress":
		p := int(num(args[1]))
		if args[0] == "feather" {
			s.widget.SetFeather(vignette.FeatherFromProgress(p))
		} else {
			s.widget.SetIntensity(vignette.IntensityFromProgress(p))
		}

	case "rotate":
		if s.photo == nil {
			return fmt.Errorf("rotate: no image loaded")
		}
		s.photo = rotatePhoto(s.photo, args[0])
		s.layout()

	case "view":
		w, _ := strconv.Atoi(args[0])
		h, _ := strconv.Atoi(args[1])
		s.viewW, s.viewH = w, h
		s.layout()

	case "restore":
		if err := s.Restore(); err != nil {
			return err
		}

	case "status":
		fmt.Fprintln(s.out, s.Status())

	case "preview":
		switch args[0] {
		case "on":
			s.AutoPreview = true
			return nil
		case "off":
			s.AutoPreview = false
			return nil
		}
		return s.Preview()

	case "save":
		frame, err := s.RenderFrame()
		if err != nil {
			return err
		}
		if err := imgload.Save(args[0], frame); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Saved to %s\n", args[0])

	case "export":
		if s.photo == nil {
			return fmt.Errorf("export: no image loaded")
		}
		out, err := s.widget.Export(s.photo)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err := imgload.Save(args[0], out); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Exported %dx%d to %s\n", out.Bounds().Dx(), out.Bounds().Dy(), args[0])

	case "update":
		return CheckForUpdates(s.out, args[0] == "yes")

	case "help":
		if args[0] == "" {
			s.usage()
			return nil
		}
		tip, _, err := s.store.GetCommandHelp(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, tip)

	case "quit":
		return ErrQuit
	}
	return nil
}

func (s *Session) move(x, y float64) {
	// deltas are previous minus current
	dx, dy := s.lastX-x, s.lastY-y
	s.lastX, s.lastY = x, y
	s.widget.OnMove(x, y, dx, dy)
}

// Drag performs a down, steps evenly spaced moves and an up.
func (s *Session) Drag(x0, y0, x1, y1 float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	s.pressed, s.lastX, s.lastY = true, x0, y0
	if !s.widget.OnDown(x0, y0) {
		s.pressed = false
		return
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.move(x0+(x1-x0)*t, y0+(y1-y0)*t)
	}
	s.pressed = false
	s.widget.OnUp(x1, y1)
}

// Restore simulates the widget being torn down and rebuilt: the saved state
// is serialized, a fresh widget is created from it and the photo is attached
// again.
func (s *Session) Restore() error {
	blob, err := s.widget.SaveState().MarshalBinary()
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	var st vignette.SavedState
	if err := st.UnmarshalBinary(blob); err != nil {
		return fmt.Errorf("restore state: %w", err)
	}
	feather, intensity := s.widget.Feather(), s.widget.Intensity()
	s.widget = s.newWidget()
	s.widget.SetFeather(feather)
	s.widget.SetIntensity(intensity)
	s.widget.RestoreState(st)
	s.layout()
	fmt.Fprintf(s.out, "restored %d-byte state: bounds %s\n", len(blob), st.Bounds())
	return nil
}

// Status describes the widget state in one block of text.
func (s *Session) Status() string {
	w := s.widget
	var b strings.Builder
	if s.photo != nil {
		fmt.Fprintf(&b, "image: %s (%dx%d %s)\n", s.photoPath, s.photo.Bounds().Dx(), s.photo.Bounds().Dy(), s.info.Format)
	} else {
		b.WriteString("image: none\n")
	}
	fmt.Fprintf(&b, "view: %dx%d\n", s.viewW, s.viewH)
	fmt.Fprintf(&b, "bounds: %s\n", w.ImageBounds())
	fmt.Fprintf(&b, "mask: %s\n", w.MaskRect())
	fmt.Fprintf(&b, "region: %s\n", w.ActiveRegion())
	fmt.Fprintf(&b, "intensity: %d (progress %d)\n", w.Intensity(), vignette.ProgressFromIntensity(w.Intensity()))
	fmt.Fprintf(&b, "feather: %.2f (progress %d)\n", w.Feather(), vignette.ProgressFromFeather(w.Feather()))
	fmt.Fprintf(&b, "controls alpha: %d", w.PaintAlpha())
	return b.String()
}

// Preview renders the current frame to the terminal.
func (s *Session) Preview() error {
	frame, err := s.RenderFrame()
	if err != nil {
		return err
	}
	s.dirty = false
	return s.preview.Preview(frame, "png")
}

// Flush previews the frame when auto preview is on and something changed.
func (s *Session) Flush() error {
	if !s.AutoPreview || !s.dirty {
		return nil
	}
	return s.Preview()
}

func (s *Session) usage() {
	fmt.Fprintln(s.out, "Commands available:")
	for _, c := range s.store.Commands {
		fmt.Fprintf(s.out, "  %-38s %s\n", c.Usage, c.Description)
	}
}

// num parses an argument that NormalizeArgs already validated.
func num(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

func rotatePhoto(img *image.NRGBA, op string) *image.NRGBA {
	switch op {
	case "cw":
		return stdimg.Rotate90CW(img)
	case "ccw":
		return stdimg.Rotate90CCW(img)
	case "180":
		return stdimg.Rotate180(img)
	case "flip":
		return stdimg.Flip(img)
	case "flop":
		return stdimg.Flop(img)
	}
	return img
}
