// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package blit presents an application-managed pixel buffer on a display
// surface.
//
// # Overview
//
// An application renders into a plain 32-bit pixel buffer at whatever
// resolution suits it. blit scales that buffer into the surface size the
// platform shell reports, writes the result into one slot of a small ring
// of destination buffers and hands the slot to the display consumer. The
// producer never writes a slot the consumer may still be reading.
//
// # Quick Start
//
//	s, err := blit.Configure(3, 1280, 720, blit.WithPolicy(blit.AspectFill))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Teardown(context.Background())
//
//	frame := pixel.New(320, 200)
//	for running {
//	    draw(frame)
//	    h, err := s.SubmitFrame(ctx, frame)
//	    if err != nil {
//	        break
//	    }
//	    view, _ := s.View(h) // consumer side
//	    display(view)
//	    s.MarkConsumed(h)
//	    s.FrameComplete()
//	}
//
// # Placement
//
// Four policies decide how a frame fits the surface:
//   - Stretch: scale both axes independently
//   - AspectFill: scale uniformly and center between background bars
//   - Center: copy unscaled into the middle, cropping if larger
//   - UpperLeft: copy unscaled into the top-left corner
//
// The surface is always cleared to the background color first. Scaling
// uses a fixed-point nearest-neighbor kernel, or bilinear interpolation
// with WithFilter(Bilinear). Exact 2× and 4× nearest scaling uses a
// faster block-replicating path.
//
// # Presentation
//
// Each Session owns a present.Ring. SubmitFrame blocks while every slot is
// in flight, so a fast producer is paced by the consumer. After a consumer
// calls MarkConsumed, the slot still waits for a number of FrameComplete
// signals (WithReleaseDelay) before reuse, covering GPUs that read a
// texture for a frame or two after the CPU is told they are done.
//
// # Pixel Format
//
// Pixels are 0x00RRGGBB with blue in the lowest byte. The top byte is
// ignored by interpolation. See package pixel for conversion to and from
// image.Image and to GPU texture byte orders.
//
// # Logging
//
// blit is silent by default. Call SetLogger to route diagnostics through
// log/slog.
package blit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
