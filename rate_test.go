// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeClock drives a rateLimiter without real sleeps.
type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(_ context.Context, d time.Duration) error {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
	return nil
}

func newFakeLimiter(target time.Duration) (*rateLimiter, *fakeClock) {
	c := &fakeClock{t: time.Unix(100, 0)}
	r := &rateLimiter{target: target, prev: c.t, now: c.now, sleep: c.sleep}
	return r, c
}

func TestRateLimiterSleepsRemainder(t *testing.T) {
	r, c := newFakeLimiter(4 * time.Millisecond)

	c.t = c.t.Add(time.Millisecond)
	d, err := r.wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.slept) != 1 || c.slept[0] != 3*time.Millisecond {
		t.Errorf("slept %v, want [3ms]", c.slept)
	}
	if d != 4*time.Millisecond || r.lastDelta() != d {
		t.Errorf("delta = %v (recorded %v), want 4ms", d, r.lastDelta())
	}
}

func TestRateLimiterNoSleepWhenLate(t *testing.T) {
	r, c := newFakeLimiter(4 * time.Millisecond)

	c.t = c.t.Add(10 * time.Millisecond)
	d, err := r.wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(c.slept) != 0 {
		t.Errorf("slept %v, want none", c.slept)
	}
	if d != 10*time.Millisecond {
		t.Errorf("delta = %v, want 10ms", d)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	r, c := newFakeLimiter(0)
	for range 3 {
		if _, err := r.wait(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if len(c.slept) != 0 {
		t.Errorf("slept %v with limiter disabled", c.slept)
	}

	r.setTarget(-time.Second)
	if r.target != 0 {
		t.Errorf("target = %v, want 0 for negative input", r.target)
	}
}

func TestRateLimiterContext(t *testing.T) {
	r := newRateLimiter(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("wait() error = %v, want context.Canceled", err)
	}
}
