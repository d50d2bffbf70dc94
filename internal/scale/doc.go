// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scale implements the CPU frame scaling engine used by blit.
//
// # Resamplers
//
// Two kernels map destination pixels back into the source:
//
//   - Nearest: per-axis 10-bit fixed-point step, no sub-pixel blending.
//     The running accumulator starts at 0 for every pass, so destination
//     pixel (0, 0) always reads source pixel (0, 0).
//   - Bilinear: floating-point source coordinates, 2×2 neighborhood blend
//     of the blue, green and red channels. Requires a source of at least
//     2×2 pixels and fails fast with ErrSourceTooSmall otherwise.
//
// Both honor source and destination strides, so either side can be a
// sub-rectangle of a larger buffer.
//
// # Placement
//
// Place fits a source into a destination under one of four policies
// (Stretch, AspectFill, Center, UpperLeft). Every policy clears the whole
// destination to the background color first; borders are never drawn
// explicitly.
//
// # Box upscaling
//
// Upscale and Box replicate each source pixel into an N×N block for
// N in {1, 2, 4}. Other factors return ErrUnsupportedScale.
//
// # Caching
//
// Nearest-neighbor index tables are cached per (source, destination) axis
// length in a Scaler, so steady-state frames of a fixed geometry allocate
// nothing. The package-level functions share one default Scaler.
package scale
