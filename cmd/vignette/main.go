// Command vignette is a terminal editor for a movable, feathered vignette
// over a photo.
//
// Usage:
//
//	vignette [image]
//
// Settings come from the environment and an optional ./.env file; see
// pkg/config for the recognised VIGNETTE_* variables.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Fepozopo/vignette/pkg/cli"
	"github.com/Fepozopo/vignette/pkg/config"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, cfg, logger, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "vignette: %v\n", err)
		os.Exit(1)
	}
}
