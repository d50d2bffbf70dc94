package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/pixel"
	"github.com/gogpu/blit/present"
)

// Terminals report key presses but not releases. A key counts as held
// until no repeat for it has arrived for tapHold.
const tapHold = 150 * time.Millisecond

// cellShell shows frames as half-block characters: each terminal cell
// carries two vertically stacked pixels, the upper one as foreground.
type cellShell struct {
	screen tcell.Screen
	sess   *blit.Session
	src    pixel.Buffer

	held   map[blit.Key]time.Time
	mouse  string
	shown  int
	paused bool
}

func runCells(ctx context.Context, cfg *Config, pat pattern, src pixel.Buffer) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	cols, rows := screen.Size()
	sh := &cellShell{screen: screen, src: src, held: make(map[blit.Key]time.Time)}
	opts := append(cfg.sessionOptions(), blit.WithEventSink(blit.SinkFuncs{
		Resize: func(w, h int) {
			blit.Logger().Debug("blitview: resized", "width", w, "height", h)
		},
	}))
	sh.sess, err = blit.Configure(cfg.Slots, max(cols, 1), cellPixelRows(rows), opts...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	// At most Len frames are presenting at once, so sends never block.
	frames := make(chan present.Handle, sh.sess.Ring().Len())
	errc := make(chan error, 1)
	go func() { errc <- sh.produce(ctx, pat, frames) }()

	runErr := sh.pump(ctx, events, frames, errc, cfg.Frames)
	cancel()
	if err := <-errc; err != nil && runErr == nil {
		runErr = err
	}
	return errors.Join(runErr, shutdown(sh.sess, frames))
}

// pump dispatches terminal events and produced frames until ctx is done,
// the user quits, the producer fails or maxFrames frames have been shown.
// A producer result taken from errc is put back for the caller.
func (sh *cellShell) pump(ctx context.Context, events <-chan tcell.Event, frames <-chan present.Handle, errc chan error, maxFrames int) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errc:
			errc <- err
			return err
		case ev := <-events:
			if !sh.handleEvent(ev) {
				return nil
			}
		case h, ok := <-frames:
			if !ok {
				// The producer has returned and its result is on errc.
				err := <-errc
				errc <- err
				return err
			}
			if err := sh.show(h); err != nil {
				return err
			}
			if maxFrames > 0 && sh.shown >= maxFrames {
				return nil
			}
		}
	}
}

// cellPixelRows converts terminal rows to buffer rows, keeping the last
// row for the status line.
func cellPixelRows(rows int) int {
	return max(rows-1, 1) * 2
}

// produce renders and submits frames until ctx is done. It closes frames
// on return.
func (sh *cellShell) produce(ctx context.Context, pat pattern, frames chan<- present.Handle) error {
	defer close(frames)
	keys := sh.sess.Keys()
	for n := 0; ; {
		if !sh.paused {
			pat.Draw(sh.src, n)
			n++
		}
		h, err := sh.sess.SubmitFrame(ctx, sh.src)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		frames <- h

		// Keys were sampled by SubmitFrame for this frame.
		if keys.IsPressed(blit.KeySpace, false) {
			sh.paused = !sh.paused
		}
		if keys.IsPressed(blit.KeyP, false) {
			if err := sh.sess.SetPolicy(nextPolicy(sh.sess.Policy())); err != nil {
				return err
			}
		}
		if keys.IsPressed(blit.KeyF, false) {
			if sh.sess.Filter() == blit.Nearest {
				sh.sess.SetFilter(blit.Bilinear)
			} else {
				sh.sess.SetFilter(blit.Nearest)
			}
		}
	}
}

// handleEvent reports false when the user asked to quit.
func (sh *cellShell) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		sh.screen.Sync()
		cols, rows := sh.screen.Size()
		sh.sess.Resize(max(cols, 1), cellPixelRows(rows))
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return false
		}
		if k := keyFromEvent(ev); k != blit.KeyUnknown {
			sh.sess.HandleKey(k, true)
			sh.held[k] = time.Now()
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		if sx, sy, ok := sh.sess.MapPoint(x, y*2); ok {
			sh.mouse = fmt.Sprintf("src %d,%d", sx, sy)
		} else {
			sh.mouse = ""
		}
	}
	return true
}

// show draws the frame behind h, hands it back and advances the release
// countdown.
func (sh *cellShell) show(h present.Handle) error {
	view, err := sh.sess.View(h)
	if err != nil {
		return err
	}
	drawCells(sh.screen, view)
	sh.shown++
	sh.drawStatus(view)
	sh.screen.Show()

	if err := sh.sess.MarkConsumed(h); err != nil {
		return err
	}
	sh.sess.FrameComplete()

	now := time.Now()
	for k, t := range sh.held {
		if now.Sub(t) > tapHold {
			sh.sess.HandleKey(k, false)
			delete(sh.held, k)
		}
	}
	return nil
}

func drawCells(s tcell.Screen, view pixel.Buffer) {
	for cy := 0; cy*2 < view.Height; cy++ {
		top := view.Row(cy * 2)
		var bottom []uint32
		if cy*2+1 < view.Height {
			bottom = view.Row(cy*2 + 1)
		}
		for x, c := range top {
			style := tcell.StyleDefault.Foreground(cellColor(c))
			if bottom != nil {
				style = style.Background(cellColor(bottom[x]))
			}
			s.SetContent(x, cy, '▀', nil, style)
		}
	}
}

func cellColor(c uint32) tcell.Color {
	return tcell.NewHexColor(int32(c & 0xFFFFFF))
}

func (sh *cellShell) drawStatus(view pixel.Buffer) {
	cols, rows := sh.screen.Size()
	st := sh.sess.Stats()
	msg := fmt.Sprintf(" %dx%d -> %dx%d %v/%v  frames %d  blocked %d  %s  [space] pause [p] policy [f] filter [q] quit",
		sh.src.Width, sh.src.Height, view.Width, view.Height,
		sh.sess.Policy(), sh.sess.Filter(), sh.shown, st.BlockedAcquires, sh.mouse)
	drawText(sh.screen, rows-1, cols, msg)
}

func drawText(s tcell.Screen, y, width int, msg string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	x := 0
	for _, ch := range msg {
		if x >= width {
			break
		}
		s.SetContent(x, y, ch, nil, style)
		x++
	}
	for ; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

// keyFromEvent translates a tcell key event into a blit.Key.
func keyFromEvent(ev *tcell.EventKey) blit.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return blit.KeyForRune(ev.Rune())
	case tcell.KeyUp:
		return blit.KeyUp
	case tcell.KeyDown:
		return blit.KeyDown
	case tcell.KeyLeft:
		return blit.KeyLeft
	case tcell.KeyRight:
		return blit.KeyRight
	case tcell.KeyEnter:
		return blit.KeyEnter
	case tcell.KeyTab:
		return blit.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return blit.KeyBackspace
	case tcell.KeyDelete:
		return blit.KeyDelete
	case tcell.KeyHome:
		return blit.KeyHome
	case tcell.KeyEnd:
		return blit.KeyEnd
	case tcell.KeyPgUp:
		return blit.KeyPageUp
	case tcell.KeyPgDn:
		return blit.KeyPageDown
	case tcell.KeyEscape:
		return blit.KeyEscape
	}
	if k := ev.Key(); k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return blit.KeyF1 + blit.Key(k-tcell.KeyF1)
	}
	return blit.KeyUnknown
}

// shutdown hands back every outstanding frame and tears the session down,
// driving the release countdown while Teardown waits.
func shutdown(sess *blit.Session, frames <-chan present.Handle) error {
	for h := range frames {
		_ = sess.MarkConsumed(h)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- sess.Teardown(ctx) }()

	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case err := <-done:
			return err
		case <-tick.C:
			sess.FrameComplete()
		}
	}
}
