package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gogpu/blit"
)

const (
	modeCells = "cells"
	modeSixel = "sixel"
)

// Config holds the command line settings.
type Config struct {
	Mode      string
	Pattern   string
	ImagePath string
	Width     int
	Height    int
	Policy    blit.Policy
	Filter    blit.Filter
	Scale     blit.Scale
	Slots     int
	Frames    int
	Rate      time.Duration
	Debug     bool
	LogFile   string
}

var policies = []blit.Policy{blit.Stretch, blit.AspectFill, blit.Center, blit.UpperLeft}

func parsePolicy(name string) (blit.Policy, error) {
	for _, p := range policies {
		if strings.EqualFold(p.String(), name) {
			return p, nil
		}
	}
	return blit.Stretch, fmt.Errorf("unknown policy %q", name)
}

// nextPolicy cycles through the placement policies.
func nextPolicy(p blit.Policy) blit.Policy {
	for i, q := range policies {
		if q == p {
			return policies[(i+1)%len(policies)]
		}
	}
	return policies[0]
}

func parseFilter(name string) (blit.Filter, error) {
	switch strings.ToLower(name) {
	case "nearest":
		return blit.Nearest, nil
	case "bilinear":
		return blit.Bilinear, nil
	default:
		return blit.Nearest, fmt.Errorf("unknown filter %q", name)
	}
}

func parseSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: dimensions must be positive", s)
	}
	return w, h, nil
}

func parseFlags(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("blitview", flag.ContinueOnError)

	var size, policy, filter, scaleName string
	fs.StringVar(&cfg.Mode, "mode", modeCells, "output mode: cells or sixel")
	fs.StringVar(&cfg.Pattern, "pattern", "julia", "generated pattern: julia, plasma or noise")
	fs.StringVar(&cfg.ImagePath, "image", "", "show an image file instead of a pattern")
	fs.StringVar(&size, "size", "160x100", "application buffer size")
	fs.StringVar(&policy, "policy", "AspectFill", "placement policy: Stretch, AspectFill, Center or UpperLeft")
	fs.StringVar(&filter, "filter", "nearest", "resampling filter: nearest or bilinear")
	fs.StringVar(&scaleName, "scale", "fit", "sixel window scale: 1, 2, 4, 8, 16, 32 or fit")
	fs.IntVar(&cfg.Slots, "slots", 3, "presentation ring slots")
	fs.IntVar(&cfg.Frames, "frames", 0, "stop after this many frames (0 runs until interrupted)")
	fs.DurationVar(&cfg.Rate, "rate", blit.DefaultUpdateRate, "minimum frame period")
	fs.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	fs.StringVar(&cfg.LogFile, "logfile", "", "write logs to this file")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage of %s:\n", fs.Name())
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nKeys (cells mode):\n")
		fmt.Fprintf(fs.Output(), "  space  pause\n  p      next policy\n  f      toggle filter\n  q, esc quit\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var err error
	if cfg.Mode != modeCells && cfg.Mode != modeSixel {
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	if cfg.Width, cfg.Height, err = parseSize(size); err != nil {
		return nil, err
	}
	if cfg.Policy, err = parsePolicy(policy); err != nil {
		return nil, err
	}
	if cfg.Filter, err = parseFilter(filter); err != nil {
		return nil, err
	}
	if cfg.Scale, err = blit.ParseScale(scaleName); err != nil {
		return nil, err
	}
	if cfg.Frames < 0 {
		return nil, fmt.Errorf("invalid frame count %d", cfg.Frames)
	}
	if cfg.ImagePath != "" {
		if _, err := os.Stat(cfg.ImagePath); err != nil {
			return nil, fmt.Errorf("image not found: %w", err)
		}
	}
	return cfg, nil
}

// sessionOptions returns the blit options shared by both modes.
func (c *Config) sessionOptions() []blit.Option {
	return []blit.Option{
		blit.WithPolicy(c.Policy),
		blit.WithFilter(c.Filter),
		blit.WithScale(c.Scale),
		blit.WithUpdateRate(c.Rate),
		blit.WithBackground(0x101018),
	}
}
