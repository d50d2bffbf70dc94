// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/blit/internal/scale"
	"github.com/gogpu/blit/pixel"
	"github.com/gogpu/blit/present"
)

// Session ties a presentation ring to the scaling engine and the
// per-window state a shell needs: placement policy, background color,
// window scale, key state and the frame-rate limiter.
//
// A Session has one producer, which calls SubmitFrame, and one consumer,
// which calls View, MarkConsumed and FrameComplete. Both sides may run on
// different goroutines. The setters are safe to call from either.
type Session struct {
	ring   *present.Ring
	scaler *scale.Scaler
	keys   *KeyState
	rate   *rateLimiter

	// mu guards the fields below.
	mu         sync.Mutex
	log        *slog.Logger
	policy     Policy
	background uint32
	filter     Filter
	scale      Scale
	sink       EventSink
	layout     scale.Layout
}

// Configure creates a session with a ring of slots destination buffers of
// width×height pixels. slots must be in 1..present.MaxSlots; two or three
// give double or triple buffering. Non-positive dimensions are clamped
// to 1.
func Configure(slots, width, height int, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.policy.IsValid() {
		return nil, fmt.Errorf("blit: configure: %w: %d", ErrUnknownPolicy, o.policy)
	}
	logger := o.logger
	if logger == nil {
		logger = Logger()
	}

	ring, err := present.New(slots, width, height,
		present.WithReleaseDelay(o.releaseDelay),
		present.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("blit: configure: %w", err)
	}

	w, h := ring.Size()
	s := &Session{
		ring:       ring,
		scaler:     scale.NewScaler(16),
		keys:       NewKeyState(),
		rate:       newRateLimiter(o.updateRate),
		log:        logger,
		policy:     o.policy,
		background: o.background,
		filter:     o.filter,
		scale:      o.scale,
		sink:       o.sink,
		layout:     scale.ComputeLayout(o.policy, w, h, w, h),
	}

	logger.Info("blit: session configured",
		"slots", slots, "width", w, "height", h,
		"policy", o.policy.String(), "updateRate", o.updateRate)
	return s, nil
}

// Ring returns the session's presentation ring, for consumers such as
// integration/texture that attach to it directly.
func (s *Session) Ring() *present.Ring {
	return s.ring
}

// Keys returns the key state tracker updated by HandleKey.
func (s *Session) Keys() *KeyState {
	return s.keys
}

// SetLogger replaces the logger of the session and its ring.
func (s *Session) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	s.mu.Lock()
	s.log = l
	s.mu.Unlock()
	propagateLogger(s.ring, l)
}

func (s *Session) slogger() *slog.Logger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log
}

// SetPolicy changes the placement policy for subsequent frames.
func (s *Session) SetPolicy(p Policy) error {
	if !p.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownPolicy, p)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = p
	return nil
}

// Policy returns the current placement policy.
func (s *Session) Policy() Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}

// SetBackground changes the 0x00RRGGBB clear color for subsequent frames.
func (s *Session) SetBackground(c uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

// SetFilter changes the resampling kernel for subsequent frames.
func (s *Session) SetFilter(f Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// Filter returns the current resampling kernel.
func (s *Session) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// SetUpdateRate changes the minimum frame period. Zero disables limiting.
func (s *Session) SetUpdateRate(d time.Duration) {
	s.rate.setTarget(d)
}

// Delta returns the measured time between the two most recent frames,
// including any limiter sleep. It is zero before the first frame.
func (s *Session) Delta() time.Duration {
	return s.rate.lastDelta()
}

// WindowSize returns the surface size a shell should create for a
// bufWidth×bufHeight application buffer under the session's window scale.
func (s *Session) WindowSize(bufWidth, bufHeight, screenWidth, screenHeight int) (int, int) {
	s.mu.Lock()
	sc := s.scale
	s.mu.Unlock()
	return sc.WindowSize(bufWidth, bufHeight, screenWidth, screenHeight)
}

// SubmitFrame places src into the next ring slot using the session policy
// and background, and commits it for presentation. It blocks while the
// ring is full or the update rate limiter holds the producer back.
//
// src is only read during the call.
func (s *Session) SubmitFrame(ctx context.Context, src pixel.Buffer) (present.Handle, error) {
	s.mu.Lock()
	p, bg := s.policy, s.background
	s.mu.Unlock()
	return s.SubmitFrameWith(ctx, src, p, bg)
}

// SubmitFrameWith is SubmitFrame with an explicit policy and background
// for this frame only.
func (s *Session) SubmitFrameWith(ctx context.Context, src pixel.Buffer, p Policy, background uint32) (present.Handle, error) {
	if err := src.Validate(); err != nil {
		return present.Handle{}, fmt.Errorf("blit: submit: %w", err)
	}
	if !p.IsValid() {
		return present.Handle{}, fmt.Errorf("blit: submit: %w: %d", ErrUnknownPolicy, p)
	}

	s.mu.Lock()
	filter := s.filter
	s.mu.Unlock()

	delta, err := s.rate.wait(ctx)
	if err != nil {
		return present.Handle{}, fmt.Errorf("blit: submit: %w", err)
	}
	s.keys.Update(delta)

	frame, err := s.ring.Acquire(ctx)
	if err != nil {
		return present.Handle{}, fmt.Errorf("blit: submit: %w", err)
	}

	dst := frame.Buffer()
	layout, err := s.compose(dst, src, p, background, filter)
	if err != nil {
		frame.Abort()
		return present.Handle{}, fmt.Errorf("blit: submit: %w", err)
	}

	h, err := frame.Commit()
	if err != nil {
		return present.Handle{}, fmt.Errorf("blit: submit: %w", err)
	}

	s.mu.Lock()
	s.layout = layout
	s.mu.Unlock()

	s.slogger().Debug("blit: frame submitted",
		"slot", h.Index, "seq", h.Seq,
		"src", fmt.Sprintf("%dx%d", src.Width, src.Height),
		"dst", fmt.Sprintf("%dx%d", dst.Width, dst.Height),
		"policy", p.String())
	return h, nil
}

// compose writes one frame into dst. Nearest scaling by an exact factor
// of 1, 2 or 4 takes the box upscaler, which produces the same pixels;
// everything else goes through placement.
func (s *Session) compose(dst, src pixel.Buffer, p Policy, background uint32, filter Filter) (scale.Layout, error) {
	if p.Scaled() && filter == Nearest {
		if n, ok := exactMultiple(src, dst); ok && scale.SupportedBox(n) {
			if err := scale.Box(dst, src, n); err != nil {
				return scale.Layout{}, err
			}
			return scale.ComputeLayout(scale.Stretch, src.Width, src.Height, dst.Width, dst.Height), nil
		}
	}
	return s.scaler.Place(scale.Request{
		Src:        src,
		Dst:        dst,
		Policy:     p,
		Background: background,
		Filter:     filter,
	})
}

// exactMultiple reports whether dst is src scaled by the same integer on
// both axes.
func exactMultiple(src, dst pixel.Buffer) (int, bool) {
	if src.Width <= 0 || src.Height <= 0 || dst.Width%src.Width != 0 || dst.Height%src.Height != 0 {
		return 0, false
	}
	n := dst.Width / src.Width
	return n, n >= 1 && dst.Height/src.Height == n
}

// View returns the read-only pixels of a presenting frame.
func (s *Session) View(h present.Handle) (pixel.Buffer, error) {
	return s.ring.View(h)
}

// MarkConsumed reports that the consumer finished displaying h.
func (s *Session) MarkConsumed(h present.Handle) error {
	return s.ring.MarkConsumed(h)
}

// FrameComplete forwards the display's frame-complete signal to the ring
// and returns the number of slots it released.
func (s *Session) FrameComplete() int {
	return s.ring.FrameComplete()
}

// Stats returns the ring counters.
func (s *Session) Stats() present.Stats {
	return s.ring.Stats()
}

// Resize changes the destination surface size for subsequent frames and
// notifies the event sink. Non-positive dimensions are clamped to 1.
func (s *Session) Resize(width, height int) {
	s.ring.Resize(width, height)
	w, h := s.ring.Size()

	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()

	s.slogger().Debug("blit: surface resized", "width", w, "height", h)
	sink.OnResize(w, h)
}

// Size returns the current destination surface size.
func (s *Session) Size() (width, height int) {
	return s.ring.Size()
}

// HandleKey records a key transition reported by the shell and forwards
// it to the event sink.
func (s *Session) HandleKey(key Key, pressed bool) {
	s.keys.Set(key, pressed)

	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	sink.OnKey(key, pressed)
}

// MapPoint converts a position on the destination surface into source
// buffer coordinates using the layout of the most recent frame. ok is
// false when the point lies on a background bar.
func (s *Session) MapPoint(x, y int) (sx, sy int, ok bool) {
	s.mu.Lock()
	l := s.layout
	s.mu.Unlock()
	return l.ToSource(x, y)
}

// Teardown stops accepting frames and waits for the consumer to drain
// every in-flight slot. See present.Ring.Teardown.
func (s *Session) Teardown(ctx context.Context) error {
	if err := s.ring.Teardown(ctx); err != nil {
		return fmt.Errorf("blit: teardown: %w", err)
	}
	s.slogger().Info("blit: session torn down")
	return nil
}
