package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var (
	errorf = color.New(color.FgRed).SprintfFunc()
	infof  = color.New(color.FgCyan).SprintfFunc()
)

// colorHandler is a slog.Handler that writes one coloured line per record.
type colorHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string
	plain  bool
}

func newColorHandler(w io.Writer, level slog.Leveler, plain bool) *colorHandler {
	return &colorHandler{mu: &sync.Mutex{}, w: w, level: level, plain: plain}
}

func (h *colorHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Time.Format("15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.prefix, a)
		return true
	})

	line := fmt.Sprintf("[%s] %s", r.Level, b.String())
	if !h.plain {
		line = levelColor(r.Level).Sprint(line)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, line)
	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}
	return &c
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	fmt.Fprintf(b, " %s%s=%v", prefix, a.Key, a.Value.Resolve())
}

func levelColor(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return color.New(color.FgRed)
	case l >= slog.LevelWarn:
		return color.New(color.FgYellow)
	case l >= slog.LevelInfo:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Faint)
	}
}

// newLogger builds the process logger. Cells mode owns the terminal, so
// without -logfile it logs nothing.
func newLogger(cfg *Config) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	switch {
	case cfg.LogFile != "":
		f, err := os.Create(cfg.LogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("creating log file: %w", err)
		}
		var once sync.Once
		return slog.New(newColorHandler(f, level, true)), func() { once.Do(func() { f.Close() }) }, nil
	case cfg.Mode == modeCells:
		return slog.New(newColorHandler(io.Discard, level, true)), func() {}, nil
	default:
		return slog.New(newColorHandler(os.Stderr, level, false)), func() {}, nil
	}
}
