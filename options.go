// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"log/slog"
	"time"

	"github.com/gogpu/blit/internal/scale"
)

// Policy selects how a frame is fitted into the destination surface.
type Policy = scale.Policy

// Placement policies.
const (
	// Stretch scales both axes independently to fill the destination.
	Stretch = scale.Stretch
	// AspectFill scales uniformly to fit and centers the result between
	// background bars.
	AspectFill = scale.AspectFill
	// Center copies the frame unscaled into the middle of the destination,
	// cropping the edges when it is larger.
	Center = scale.Center
	// UpperLeft copies the frame unscaled into the top-left corner.
	UpperLeft = scale.UpperLeft
)

// Filter selects the resampling kernel for scaled policies.
type Filter = scale.Filter

// Resampling kernels.
const (
	Nearest  = scale.FilterNearest
	Bilinear = scale.FilterBilinear
)

// Option configures a Session during creation.
// Use functional options to customize Session behavior.
//
// Example:
//
//	s, err := blit.Configure(3, 1280, 720,
//	    blit.WithPolicy(blit.AspectFill),
//	    blit.WithBackground(0x202020),
//	)
type Option func(*options)

// options holds optional configuration for Session creation.
type options struct {
	policy       Policy
	background   uint32
	filter       Filter
	scale        Scale
	sink         EventSink
	updateRate   time.Duration
	releaseDelay int
	logger       *slog.Logger
}

// defaultOptions returns the default session options.
func defaultOptions() options {
	return options{
		policy:       Stretch,
		filter:       Nearest,
		scale:        X1,
		sink:         NopSink{},
		updateRate:   DefaultUpdateRate,
		releaseDelay: 1,
	}
}

// WithPolicy sets the placement policy used by SubmitFrame.
// The default is Stretch.
func WithPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithBackground sets the 0x00RRGGBB color used for bars and padding.
// The default is black.
func WithBackground(c uint32) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithFilter selects the resampling kernel for Stretch and AspectFill.
// Bilinear requires sources of at least 2×2 pixels.
func WithFilter(f Filter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// WithScale sets the window scale the shell sizes its surface with.
// See Session.WindowSize.
func WithScale(s Scale) Option {
	return func(o *options) {
		o.scale = s
	}
}

// WithEventSink sets the receiver for key and resize events.
// A nil sink is replaced with NopSink.
func WithEventSink(sink EventSink) Option {
	return func(o *options) {
		if sink == nil {
			sink = NopSink{}
		}
		o.sink = sink
	}
}

// WithUpdateRate sets the minimum period between submitted frames.
// SubmitFrame sleeps for the remainder when called sooner. The default is
// DefaultUpdateRate; zero disables the limiter.
func WithUpdateRate(d time.Duration) Option {
	return func(o *options) {
		o.updateRate = max(d, 0)
	}
}

// WithReleaseDelay sets how many FrameComplete signals a consumed slot
// waits before it may be reused. The default is 1.
func WithReleaseDelay(k int) Option {
	return func(o *options) {
		o.releaseDelay = max(k, 0)
	}
}

// WithLogger sets the session logger. The default is the package logger
// returned by Logger at Configure time.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
