package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-sixel"
	"golang.org/x/term"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/pixel"
)

// Character cell size assumed when converting the terminal size to pixels.
const (
	cellWidth  = 8
	cellHeight = 16
)

// terminalPixels returns the drawable area of the terminal in pixels,
// keeping one text row free for the summary. It falls back to 80×24
// cells when stdout is not a terminal.
func terminalPixels(fd int) (int, int, error) {
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return 80 * cellWidth, 23 * cellHeight, err
	}
	return max(cols, 1) * cellWidth, max(rows-1, 1) * cellHeight, nil
}

func runSixel(ctx context.Context, cfg *Config, pat pattern, src pixel.Buffer) error {
	log := blit.Logger()

	screenW, screenH, err := terminalPixels(int(os.Stdout.Fd()))
	if err != nil {
		log.Warn("blitview: terminal size unavailable, assuming 80x24", "err", err)
	}

	sess, err := blit.Configure(cfg.Slots, 1, 1, cfg.sessionOptions()...)
	if err != nil {
		return err
	}
	w, h := sess.WindowSize(src.Width, src.Height, screenW, screenH)
	w, h = min(w, screenW), min(h, screenH)
	sess.Resize(w, h)
	log.Info("blitview: sixel output", "width", w, "height", h, "scale", cfg.Scale)

	out := bufio.NewWriter(os.Stdout)
	fmt.Fprint(out, "\033[2J")

	start := time.Now()
	shown, err := presentSixel(ctx, sess, pat, src, out, cfg.Frames)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	tctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err = errors.Join(err, sess.Teardown(tctx))

	st := sess.Stats()
	fmt.Fprintln(out)
	fmt.Fprintln(out, infof("%d frames in %v, %d submitted, %d blocked acquires",
		shown, time.Since(start).Round(time.Millisecond), st.Submitted, st.BlockedAcquires))
	return errors.Join(err, out.Flush())
}

// presentSixel submits and encodes frames one at a time until frames have
// been shown (0 means until ctx is done). Each frame is consumed and
// released before the next one is submitted.
func presentSixel(ctx context.Context, sess *blit.Session, pat pattern, src pixel.Buffer, w io.Writer, frames int) (int, error) {
	enc := sixel.NewEncoder(w)
	shown := 0
	for frames == 0 || shown < frames {
		pat.Draw(src, shown)
		h, err := sess.SubmitFrame(ctx, src)
		if err != nil {
			return shown, err
		}
		view, err := sess.View(h)
		if err != nil {
			return shown, err
		}

		fmt.Fprint(w, "\033[H")
		enc.Width, enc.Height = view.Width, view.Height
		if err := enc.Encode(view.ToRGBA()); err != nil {
			return shown, fmt.Errorf("encoding sixel: %w", err)
		}
		if f, ok := w.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil {
				return shown, err
			}
		}
		shown++

		if err := sess.MarkConsumed(h); err != nil {
			return shown, err
		}
		sess.FrameComplete()
	}
	return shown, nil
}
