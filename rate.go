// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import (
	"context"
	"sync"
	"time"
)

// DefaultUpdateRate is the default minimum frame period, about 250 frames
// per second.
const DefaultUpdateRate = 4 * time.Millisecond

// rateLimiter holds a producer to a minimum period between frames and
// measures the real period including any sleep.
//
// wait is called by the producer only; target and delta may be read and
// written from any goroutine.
type rateLimiter struct {
	mu     sync.Mutex
	target time.Duration
	delta  time.Duration

	prev  time.Time
	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

func newRateLimiter(target time.Duration) *rateLimiter {
	return &rateLimiter{
		target: max(target, 0),
		prev:   time.Now(),
		now:    time.Now,
		sleep:  sleepContext,
	}
}

func (r *rateLimiter) setTarget(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = max(d, 0)
}

func (r *rateLimiter) lastDelta() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delta
}

// wait sleeps for the remainder of the target period since the previous
// call, then records and returns the delta. A zero target never sleeps.
func (r *rateLimiter) wait(ctx context.Context) (time.Duration, error) {
	r.mu.Lock()
	target := r.target
	r.mu.Unlock()

	if target > 0 {
		if elapsed := r.now().Sub(r.prev); elapsed < target {
			if err := r.sleep(ctx, target-elapsed); err != nil {
				return 0, err
			}
		}
	}

	now := r.now()
	delta := now.Sub(r.prev)
	r.prev = now

	r.mu.Lock()
	r.delta = delta
	r.mu.Unlock()
	return delta, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
