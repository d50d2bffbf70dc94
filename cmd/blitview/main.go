// Command blitview drives a blit session from a terminal.
//
// It renders a generated pattern (or an image) into a small application
// buffer, submits it through a blit.Session and presents the composed
// frames either as half-block cells (tcell) or as sixel graphics.
//
// Usage:
//
//	blitview -pattern julia -size 160x100 -policy AspectFill
//	blitview -mode sixel -image photo.png -scale fit -frames 1
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/blit"
)

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, errorf("blitview: %v", err))
		os.Exit(2)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorf("blitview: %v", err))
		os.Exit(1)
	}
	defer closeLog()
	blit.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("blitview: run failed", "err", err)
		fmt.Fprintln(os.Stderr, errorf("blitview: %v", err))
		closeLog()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config) error {
	pat, src, err := newPattern(cfg)
	if err != nil {
		return err
	}

	switch cfg.Mode {
	case modeCells:
		return runCells(ctx, cfg, pat, src)
	case modeSixel:
		return runSixel(ctx, cfg, pat, src)
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}
