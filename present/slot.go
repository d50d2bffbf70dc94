// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"fmt"

	"github.com/gogpu/blit/pixel"
)

// State is the lifecycle state of a slot.
type State uint8

const (
	// StateFree means the slot may be acquired by the producer.
	StateFree State = iota

	// StateWriting means the producer holds the slot's buffer.
	StateWriting

	// StatePresenting means the slot was committed and the consumer may
	// read it.
	StatePresenting

	// StatePendingRelease means the consumer signalled completion but the
	// slot still waits for FrameComplete before it can be reused.
	StatePendingRelease
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateWriting:
		return "writing"
	case StatePresenting:
		return "presenting"
	case StatePendingRelease:
		return "pending-release"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Handle identifies one committed frame: the slot it lives in and the
// sequence number it was acquired with. A handle becomes stale once its
// slot is acquired again.
type Handle struct {
	Index int
	Seq   uint64
}

// String returns a compact description of the handle.
func (h Handle) String() string {
	return fmt.Sprintf("slot %d seq %d", h.Index, h.Seq)
}

type slot struct {
	buf     pixel.Buffer
	state   State
	seq     uint64
	pending int
}

func (s *slot) handle(index int) Handle {
	return Handle{Index: index, Seq: s.seq}
}

// Frame is the producer's exclusive claim on a writing slot.
//
// A Frame must be finished with exactly one call to Commit or Abort.
// It must not be used from more than one goroutine.
type Frame struct {
	ring   *Ring
	handle Handle
	buf    pixel.Buffer
	done   bool
}

// Buffer returns the writable pixel view of the slot. The view is only
// valid until Commit or Abort.
func (f *Frame) Buffer() pixel.Buffer {
	return f.buf
}

// Handle returns the handle the frame will be presented under.
func (f *Frame) Handle() Handle {
	return f.handle
}

// Commit hands the slot to the consumer and returns its handle.
// It returns ErrFrameFinished if the frame was already committed or
// aborted.
func (f *Frame) Commit() (Handle, error) {
	if f.done {
		return f.handle, ErrFrameFinished
	}
	f.done = true
	f.ring.commit(f.handle)
	return f.handle, nil
}

// Abort returns the slot to the free pool without presenting it. The ring
// cursor is rewound so the next Acquire reuses the same slot. Abort on a
// finished frame is a no-op.
func (f *Frame) Abort() {
	if f.done {
		return
	}
	f.done = true
	f.ring.abort(f.handle)
}
