package imgload

import (
	"context"
	"image"
	"log/slog"
	"sync"
)

// Result is delivered by a Loader when a load finishes.
type Result struct {
	Path  string
	Image image.Image
	Info  Info
	Err   error
}

// Loader decodes images in the background and delivers results on a
// channel, so the host event loop never blocks on disk or decoding. Only the
// most recent request is delivered; results of superseded loads are dropped.
type Loader struct {
	results chan Result
	logger  *slog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLoader returns a Loader. A nil logger discards output.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		results: make(chan Result, 1),
		logger:  logger,
	}
}

// Results returns the channel results are delivered on.
func (l *Loader) Results() <-chan Result { return l.results }

// Start begins loading path, superseding any load in progress. It must be
// called from the goroutine that reads Results.
func (l *Loader) Start(ctx context.Context, path string) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	// drop a finished result nobody has read yet
	select {
	case <-l.results:
	default:
	}
	l.mu.Unlock()

	l.logger.Debug("load started", slog.String("path", path), slog.Uint64("gen", gen))
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, info, err := Load(path)
		res := Result{Path: path, Image: img, Info: info, Err: err}

		l.mu.Lock()
		defer l.mu.Unlock()
		if gen != l.gen || ctx.Err() != nil {
			l.logger.Debug("load superseded", slog.String("path", path))
			return
		}
		// only the current generation sends and Start drains under mu, so
		// the buffer always has room here
		select {
		case l.results <- res:
		default:
			l.logger.Warn("load result dropped", slog.String("path", path))
		}
	}()
}

// Close cancels outstanding loads and waits for them to exit.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.mu.Unlock()
	l.wg.Wait()
}
