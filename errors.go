// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import "github.com/gogpu/blit/internal/scale"

// Errors surfaced from the scaling engine.
var (
	// ErrUnknownPolicy is returned for a placement policy outside
	// Stretch..UpperLeft.
	ErrUnknownPolicy = scale.ErrUnknownPolicy

	// ErrSourceTooSmall is returned when the Bilinear filter is asked to
	// scale a frame narrower or shorter than 2 pixels.
	ErrSourceTooSmall = scale.ErrSourceTooSmall

	// ErrUnsupportedScale is returned by the box upscaler for factors
	// other than 1, 2 and 4.
	ErrUnsupportedScale = scale.ErrUnsupportedScale
)
