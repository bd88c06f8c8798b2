package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Fepozopo/vignette/pkg/config"
)

// frameInterval is how often the fade animation is advanced.
const frameInterval = 16 * time.Millisecond

// readLines sends each input line on the returned channel and waits for a
// value on next before reading the following one, so commands that hand the
// terminal to another program (fzf) own stdin while they run. The channel is
// closed at EOF.
func readLines(ctx context.Context, in io.Reader, next <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
			select {
			case <-next:
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// Run is the interactive host loop. A single goroutine owns the session:
// it handles input lines, background load results and fade ticks, so the
// widget is never touched concurrently. args may name an image to open.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string, in io.Reader, out, errOut io.Writer) error {
	s, err := NewSession(cfg, logger, out)
	if err != nil {
		return err
	}
	defer s.Close()
	s.AutoPreview = s.preview.Supported()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(out, "Vignette editor")
	s.usage()
	if len(args) > 0 && args[0] != "" {
		s.loader.Start(ctx, args[0])
	}

	next := make(chan struct{})
	lines := readLines(ctx, in, next)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	animating := false
	fmt.Fprint(out, "> ")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := s.ExecuteLine(ctx, line)
			if errors.Is(err, ErrQuit) {
				fmt.Fprintln(out, "Exiting...")
				return nil
			}
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
			}
			if err := s.Flush(); err != nil {
				s.logger.Debug("preview failed", slog.Any("err", err))
			}
			fmt.Fprint(out, "> ")
			next <- struct{}{}

		case res := <-s.loader.Results():
			if err := s.HandleLoad(res); err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				continue
			}
			if err := s.Flush(); err != nil {
				s.logger.Debug("preview failed", slog.Any("err", err))
			}

		case now := <-ticker.C:
			running := s.Tick(now)
			// redraw once the fade settles rather than on every frame
			if animating && !running {
				if err := s.Flush(); err != nil {
					s.logger.Debug("preview failed", slog.Any("err", err))
				}
			}
			animating = running
		}
	}
}
