// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scale

import (
	"fmt"

	"github.com/gogpu/blit/pixel"
)

// SupportedBox reports whether n is a box upscale factor.
func SupportedBox(n int) bool {
	return n == 1 || n == 2 || n == 4
}

// Box replicates every source pixel into an n×n block of dst, starting at
// dst's origin. Only the part that fits in dst is written. n must be 1, 2
// or 4; other values return ErrUnsupportedScale and leave dst untouched.
func Box(dst, src pixel.Buffer, n int) error {
	if !SupportedBox(n) {
		return fmt.Errorf("%w: %d", ErrUnsupportedScale, n)
	}

	w := min(dst.Width, src.Width*n)
	h := min(dst.Height, src.Height*n)
	if w <= 0 || h <= 0 {
		return nil
	}

	for y := 0; y < h; y += n {
		first := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		srcRow := src.Pix[(y/n)*src.Stride:]
		for x := range first {
			first[x] = srcRow[x/n]
		}
		for k := 1; k < n && y+k < h; k++ {
			off := (y + k) * dst.Stride
			copy(dst.Pix[off:off+w], first)
		}
	}
	return nil
}

// Upscale is the slice form of Box. width and height are the destination
// dimensions, already multiplied by scale; src is tightly packed at
// width/scale × height/scale.
func Upscale(dst, src []uint32, width, height, scale int) error {
	if !SupportedBox(scale) {
		return fmt.Errorf("%w: %d", ErrUnsupportedScale, scale)
	}
	d, err := pixel.FromRaw(dst, width, height, width)
	if err != nil {
		return fmt.Errorf("scale: upscale destination: %w", err)
	}
	sw, sh := width/scale, height/scale
	s, err := pixel.FromRaw(src, sw, sh, sw)
	if err != nil {
		return fmt.Errorf("scale: upscale source: %w", err)
	}
	return Box(d, s, scale)
}
