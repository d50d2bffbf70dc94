// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import "log/slog"

// Option configures a Ring during creation.
type Option func(*options)

type options struct {
	releaseDelay int
	releaseHook  func(Handle)
	logger       *slog.Logger
}

func defaultOptions() options {
	return options{
		releaseDelay: 1,
	}
}

// WithReleaseDelay sets how many FrameComplete signals a consumed slot
// waits before it is free again. The default is 1. A delay of 0 frees
// slots as soon as they are consumed; negative values are treated as 0.
func WithReleaseDelay(k int) Option {
	return func(o *options) {
		o.releaseDelay = max(k, 0)
	}
}

// WithReleaseHook registers a function called whenever a slot returns to
// the free pool after consumption, and once per slot during Teardown.
//
// The hook runs on the goroutine that triggered the release, outside the
// ring's lock, so it may call back into the ring.
func WithReleaseHook(fn func(Handle)) Option {
	return func(o *options) {
		o.releaseHook = fn
	}
}

// WithLogger sets the logger for the ring. The default discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
