// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/gogpu/blit/pixel"
	"github.com/gogpu/blit/present"
)

// TestDefaultOptions tests the defaults Configure starts from.
func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.policy != Stretch {
		t.Errorf("policy = %v, want Stretch", o.policy)
	}
	if o.filter != Nearest {
		t.Errorf("filter = %v, want Nearest", o.filter)
	}
	if o.scale != X1 {
		t.Errorf("scale = %v, want X1", o.scale)
	}
	if o.updateRate != DefaultUpdateRate {
		t.Errorf("updateRate = %v, want %v", o.updateRate, DefaultUpdateRate)
	}
	if o.releaseDelay != 1 {
		t.Errorf("releaseDelay = %d, want 1", o.releaseDelay)
	}
	if _, ok := o.sink.(NopSink); !ok {
		t.Errorf("sink = %T, want NopSink", o.sink)
	}
}

// TestOptionsApply tests that every option writes its field and clamps
// out-of-range input.
func TestOptionsApply(t *testing.T) {
	logger := slog.New(nopHandler{})
	sink := SinkFuncs{}

	o := defaultOptions()
	for _, opt := range []Option{
		WithPolicy(UpperLeft),
		WithBackground(0x123456),
		WithFilter(Bilinear),
		WithScale(FitScreen),
		WithEventSink(sink),
		WithUpdateRate(-time.Second),
		WithReleaseDelay(-3),
		WithLogger(logger),
	} {
		opt(&o)
	}

	if o.policy != UpperLeft || o.background != 0x123456 || o.filter != Bilinear || o.scale != FitScreen {
		t.Errorf("options = %+v", o)
	}
	if _, ok := o.sink.(SinkFuncs); !ok {
		t.Errorf("sink = %T, want SinkFuncs", o.sink)
	}
	if o.updateRate != 0 {
		t.Errorf("updateRate = %v, want 0 for negative input", o.updateRate)
	}
	if o.releaseDelay != 0 {
		t.Errorf("releaseDelay = %d, want 0 for negative input", o.releaseDelay)
	}
	if o.logger != logger {
		t.Error("logger not applied")
	}
}

// TestWithReleaseDelayZero tests that a zero delay frees a slot as soon
// as it is consumed.
func TestWithReleaseDelayZero(t *testing.T) {
	s, err := Configure(1, 2, 2, WithUpdateRate(0), WithReleaseDelay(0))
	if err != nil {
		t.Fatal(err)
	}
	h, err := s.SubmitFrame(context.Background(), pixel.New(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.MarkConsumed(h); err != nil {
		t.Fatal(err)
	}
	if st, _ := s.Ring().SlotState(h.Index); st != present.StateFree {
		t.Errorf("slot state = %v, want free", st)
	}
}
