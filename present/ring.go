// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/blit/pixel"
)

// MaxSlots is the largest ring New accepts.
const MaxSlots = 8

// Errors returned by ring operations.
var (
	// ErrInvalidSlotCount is returned by New for counts outside 1..MaxSlots.
	ErrInvalidSlotCount = errors.New("present: slot count out of range")

	// ErrWriteInProgress is returned by Acquire while another frame is
	// being written.
	ErrWriteInProgress = errors.New("present: a frame is already being written")

	// ErrRingClosed is returned by Acquire once Teardown has started.
	ErrRingClosed = errors.New("present: ring closed")

	// ErrStaleHandle is returned for handles whose slot has since been
	// reacquired, or whose index is out of range.
	ErrStaleHandle = errors.New("present: stale slot handle")

	// ErrNotPresenting is returned when a handle refers to a slot that is
	// not in the presenting state.
	ErrNotPresenting = errors.New("present: slot is not presenting")

	// ErrOutOfOrder is returned by MarkConsumed for any slot other than
	// the oldest presenting one.
	ErrOutOfOrder = errors.New("present: frames must be consumed in submission order")

	// ErrFrameFinished is returned by Frame.Commit on a frame that was
	// already committed or aborted.
	ErrFrameFinished = errors.New("present: frame already finished")
)

// Stats holds cumulative ring counters.
type Stats struct {
	// Submitted counts committed frames.
	Submitted uint64
	// Consumed counts MarkConsumed calls that succeeded.
	Consumed uint64
	// Released counts slots returned to the free pool after consumption.
	Released uint64
	// Aborted counts frames abandoned with Frame.Abort.
	Aborted uint64
	// BlockedAcquires counts Acquire calls that had to wait for a slot.
	BlockedAcquires uint64
}

// Ring is a fixed pool of presentation slots shared by one producer and
// one consumer.
//
// All methods are safe for concurrent use.
type Ring struct {
	mu      sync.Mutex
	changed chan struct{}

	slots   []slot
	cursor  int
	writing int   // index of the writing slot, -1 if none
	queue   []int // presenting slot indices, oldest first
	seq     uint64

	width, height int

	closing bool
	closed  bool

	releaseDelay int
	hooks        []func(Handle)
	stats        Stats

	log atomic.Pointer[slog.Logger]
}

// New creates a ring of n slots of width×height pixels. n must be in
// 1..MaxSlots; non-positive dimensions are clamped to 1.
func New(n, width, height int, opts ...Option) (*Ring, error) {
	if n < 1 || n > MaxSlots {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidSlotCount, n, MaxSlots)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Ring{
		changed:      make(chan struct{}),
		slots:        make([]slot, n),
		writing:      -1,
		queue:        make([]int, 0, n),
		width:        max(width, 1),
		height:       max(height, 1),
		releaseDelay: o.releaseDelay,
	}
	if o.releaseHook != nil {
		r.hooks = append(r.hooks, o.releaseHook)
	}
	r.SetLogger(o.logger)
	for i := range r.slots {
		r.slots[i].buf = pixel.New(r.width, r.height)
	}

	r.slogger().Info("present: ring created",
		"slots", n, "width", r.width, "height", r.height, "releaseDelay", r.releaseDelay)
	return r, nil
}

// Len returns the number of slots.
func (r *Ring) Len() int {
	return len(r.slots)
}

// Size returns the geometry new frames are allocated with.
func (r *Ring) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// SlotState reports the state and remaining release countdown of slot i.
func (r *Ring) SlotState(i int) (State, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.slots) {
		return StateFree, 0
	}
	return r.slots[i].state, r.slots[i].pending
}

// Closing reports whether Teardown has been called.
func (r *Ring) Closing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closing
}

// Stats returns a snapshot of the ring counters.
func (r *Ring) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// broadcast wakes every waiter. Caller must hold r.mu.
func (r *Ring) broadcast() {
	close(r.changed)
	r.changed = make(chan struct{})
}

// Acquire claims the slot at the cursor for writing. It blocks until that
// slot is free, ctx is done, or the ring starts tearing down.
//
// Slots are reused strictly round-robin: Acquire waits for the oldest slot
// even if a later one happens to be free.
func (r *Ring) Acquire(ctx context.Context) (*Frame, error) {
	blocked := false

	r.mu.Lock()
	for {
		if r.closing {
			r.mu.Unlock()
			return nil, ErrRingClosed
		}
		if r.writing >= 0 {
			r.mu.Unlock()
			return nil, ErrWriteInProgress
		}
		if r.slots[r.cursor].state == StateFree {
			break
		}

		if !blocked {
			blocked = true
			r.stats.BlockedAcquires++
			r.slogger().Debug("present: acquire waiting",
				"slot", r.cursor, "state", r.slots[r.cursor].state.String())
		}
		ch := r.changed
		r.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		r.mu.Lock()
	}
	defer r.mu.Unlock()

	index := r.cursor
	s := &r.slots[index]
	r.cursor = (r.cursor + 1) % len(r.slots)
	r.seq++
	s.seq = r.seq
	s.state = StateWriting
	r.writing = index

	if s.buf.Width != r.width || s.buf.Height != r.height {
		s.buf = pixel.New(r.width, r.height)
		r.slogger().Debug("present: slot reallocated",
			"slot", index, "width", r.width, "height", r.height)
	}
	r.broadcast()

	return &Frame{ring: r, handle: s.handle(index), buf: s.buf}, nil
}

func (r *Ring) commit(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &r.slots[h.Index]
	s.state = StatePresenting
	r.writing = -1
	r.queue = append(r.queue, h.Index)
	r.stats.Submitted++
	r.broadcast()
}

func (r *Ring) abort(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[h.Index].state = StateFree
	r.writing = -1
	r.cursor = h.Index
	r.stats.Aborted++
	r.broadcast()
}

// lookup resolves a handle. Caller must hold r.mu.
func (r *Ring) lookup(h Handle) (*slot, error) {
	if h.Index < 0 || h.Index >= len(r.slots) {
		return nil, fmt.Errorf("%w: %v", ErrStaleHandle, h)
	}
	s := &r.slots[h.Index]
	if s.seq != h.Seq {
		return nil, fmt.Errorf("%w: %v (slot now at seq %d)", ErrStaleHandle, h, s.seq)
	}
	return s, nil
}

// View returns a read-only view of a presenting slot. Callers must not
// write through it and must stop using it after MarkConsumed.
func (r *Ring) View(h Handle) (pixel.Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.lookup(h)
	if err != nil {
		return pixel.Buffer{}, err
	}
	if s.state != StatePresenting {
		return pixel.Buffer{}, fmt.Errorf("%w: %v is %v", ErrNotPresenting, h, s.state)
	}
	return s.buf, nil
}

// MarkConsumed reports that the consumer has finished displaying the frame.
// The slot enters pending-release, or becomes free immediately when the
// release delay is 0. It never blocks.
func (r *Ring) MarkConsumed(h Handle) error {
	r.mu.Lock()

	s, err := r.lookup(h)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	if s.state != StatePresenting {
		r.mu.Unlock()
		return fmt.Errorf("%w: %v is %v", ErrNotPresenting, h, s.state)
	}
	if r.queue[0] != h.Index {
		oldest := r.slots[r.queue[0]].handle(r.queue[0])
		r.mu.Unlock()
		return fmt.Errorf("%w: got %v, oldest is %v", ErrOutOfOrder, h, oldest)
	}

	r.queue = r.queue[1:]
	r.stats.Consumed++

	var released []Handle
	if r.releaseDelay == 0 {
		s.state = StateFree
		r.stats.Released++
		released = append(released, h)
	} else {
		s.state = StatePendingRelease
		s.pending = r.releaseDelay
	}
	r.broadcast()
	r.mu.Unlock()

	r.runHook(released)
	return nil
}

// FrameComplete advances every pending-release countdown by one and frees
// the slots that reach zero. Shells call it once per display refresh or
// GPU fence. It returns the number of slots released.
func (r *Ring) FrameComplete() int {
	r.mu.Lock()

	var released []Handle
	for i := range r.slots {
		s := &r.slots[i]
		if s.state != StatePendingRelease {
			continue
		}
		s.pending--
		if s.pending <= 0 {
			s.pending = 0
			s.state = StateFree
			r.stats.Released++
			released = append(released, s.handle(i))
		}
	}
	if len(released) > 0 {
		r.broadcast()
	}
	r.mu.Unlock()

	r.runHook(released)
	return len(released)
}

// Resize changes the geometry of frames acquired from now on. Slots that
// are in flight keep their buffers; free slots are reallocated lazily on
// their next Acquire. Non-positive dimensions are clamped to 1.
func (r *Ring) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height = max(width, 1), max(height, 1)
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.slogger().Debug("present: ring resized", "width", width, "height", height)
}

// Teardown stops the ring. New Acquire calls fail with ErrRingClosed
// immediately; Teardown itself waits until every slot is free again,
// which requires the consumer to keep calling MarkConsumed and
// FrameComplete. It then drops the slot buffers and runs the release hook
// once per slot.
//
// If ctx is done first Teardown returns ctx.Err() and the ring stays
// closed to new frames; Teardown may be called again to finish draining.
func (r *Ring) Teardown(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	if !r.closing {
		r.closing = true
		r.broadcast()
		r.slogger().Info("present: ring closing", "inFlight", r.inFlightLocked())
	}

	for r.inFlightLocked() > 0 {
		ch := r.changed
		r.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
		r.mu.Lock()
	}
	if r.closed {
		r.mu.Unlock()
		return nil
	}

	handles := make([]Handle, len(r.slots))
	for i := range r.slots {
		handles[i] = r.slots[i].handle(i)
		r.slots[i].buf = pixel.Buffer{}
	}
	r.closed = true
	r.broadcast()
	r.mu.Unlock()

	r.runHook(handles)
	r.slogger().Info("present: ring torn down", "slots", len(handles))
	return nil
}

// inFlightLocked counts slots that are not free. Caller must hold r.mu.
func (r *Ring) inFlightLocked() int {
	n := 0
	for i := range r.slots {
		if r.slots[i].state != StateFree {
			n++
		}
	}
	return n
}

// OnRelease registers another release hook, with the same semantics as
// WithReleaseHook. Hooks run in registration order.
func (r *Ring) OnRelease(fn func(Handle)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

func (r *Ring) runHook(handles []Handle) {
	if len(handles) == 0 {
		return
	}
	r.mu.Lock()
	hooks := r.hooks
	r.mu.Unlock()

	for _, h := range handles {
		for _, fn := range hooks {
			fn(h)
		}
	}
}
