// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

// EventSink receives input and geometry events forwarded by a Session.
//
// Shells translate their native events and call Session.HandleKey and
// Session.Resize; the session updates its own state and then notifies the
// sink. Methods are called synchronously on the shell's goroutine.
type EventSink interface {
	// OnKey is called for every key transition.
	OnKey(key Key, pressed bool)

	// OnResize is called after the destination surface changed size.
	OnResize(width, height int)
}

// NopSink is an EventSink that ignores all events.
type NopSink struct{}

func (NopSink) OnKey(Key, bool)   {}
func (NopSink) OnResize(int, int) {}

// SinkFuncs adapts plain functions to EventSink. Nil fields are ignored.
type SinkFuncs struct {
	Key    func(key Key, pressed bool)
	Resize func(width, height int)
}

// OnKey calls f.Key if set.
func (f SinkFuncs) OnKey(key Key, pressed bool) {
	if f.Key != nil {
		f.Key(key, pressed)
	}
}

// OnResize calls f.Resize if set.
func (f SinkFuncs) OnResize(width, height int) {
	if f.Resize != nil {
		f.Resize(width, height)
	}
}
