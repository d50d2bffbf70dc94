// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package present implements a presentation ring: a small fixed set of
// destination buffers cycled between one producer and one consumer.
//
// Every slot moves through the same states:
//
//	free → writing → presenting → pending-release(k) → free
//
// The producer calls [Ring.Acquire] to obtain the slot at the round-robin
// cursor, fills it through [Frame.Buffer] and hands it over with
// [Frame.Commit]. The consumer reads presenting slots through [Ring.View]
// and reports completion with [Ring.MarkConsumed]. Slots then wait for
// [Ring.FrameComplete] to be called k more times before they may be
// written again, which covers consumers such as GPUs that keep reading a
// resource for a few frames after signalling.
//
// Acquire blocks while the slot at the cursor is still in flight, so a
// fast producer is throttled to the consumer instead of dropping or
// overwriting frames. Frames are consumed strictly in submission order.
//
// The ring performs no internal threading. All state is guarded by one
// mutex and waiters are woken through a broadcast channel replaced on
// every state transition.
package present
