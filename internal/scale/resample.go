// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scale

import (
	"errors"
	"math"

	"github.com/gogpu/blit/pixel"
)

// Errors returned by the scaling engine.
var (
	// ErrSourceTooSmall is returned by the bilinear kernel for sources
	// narrower or shorter than 2 pixels.
	ErrSourceTooSmall = errors.New("scale: bilinear source must be at least 2x2")

	// ErrUnsupportedScale is returned by the box upscaler for factors
	// other than 1, 2 and 4.
	ErrUnsupportedScale = errors.New("scale: unsupported box scale factor")

	// ErrUnknownPolicy is returned by Place for an unrecognized policy.
	ErrUnknownPolicy = errors.New("scale: unknown placement policy")
)

// fixedShift is the number of fractional bits in the nearest-neighbor step.
const fixedShift = 10

// Filter selects the resampling kernel.
type Filter uint8

const (
	// FilterNearest maps each destination pixel to one source pixel.
	FilterNearest Filter = iota

	// FilterBilinear blends the 2×2 source neighborhood.
	FilterBilinear
)

// String returns a string representation of the filter.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "Nearest"
	case FilterBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// Step returns the fixed-point step for spreading srcLen pixels over
// dstLen pixels: round(srcLen/dstLen * 1024). dstLen <= 0 is treated as 1.
func Step(srcLen, dstLen int) int {
	dstLen = max(dstLen, 1)
	return int(math.Round(float64(srcLen) / float64(dstLen) * (1 << fixedShift)))
}

// buildAxis computes the source index for every destination position on
// one axis with a running fixed-point accumulator. Indices are clamped to
// the last source pixel: a rounded-up step can otherwise overshoot by one
// on very long axes.
func buildAxis(srcLen, dstLen int) []int {
	dstLen = max(dstLen, 1)
	step := Step(srcLen, dstLen)
	last := max(srcLen-1, 0)

	table := make([]int, dstLen)
	acc := 0
	for i := range table {
		table[i] = min(acc>>fixedShift, last)
		acc += step
	}
	return table
}

// Scaler resamples and places frames, caching per-axis index tables.
//
// A Scaler is safe for concurrent use.
type Scaler struct {
	tables *tableCache
}

// NewScaler creates a Scaler that retains up to tableLimit axis tables.
// A tableLimit of 0 means unlimited.
func NewScaler(tableLimit int) *Scaler {
	return &Scaler{tables: newTableCache(tableLimit)}
}

// defaultScaler backs the package-level functions.
var defaultScaler = NewScaler(64)

// CachedTables returns the number of axis tables currently cached.
func (s *Scaler) CachedTables() int {
	return s.tables.len()
}

// Reset drops all cached tables.
func (s *Scaler) Reset() {
	s.tables.reset()
}

// Nearest fills every visible pixel of dst from src with the fixed-point
// nearest-neighbor kernel. Both views may carry a stride.
func (s *Scaler) Nearest(dst, src pixel.Buffer) {
	if dst.IsEmpty() || src.IsEmpty() {
		return
	}
	xs := s.tables.get(axisKey{src.Width, dst.Width})
	ys := s.tables.get(axisKey{src.Height, dst.Height})

	for i, sy := range ys {
		srcRow := src.Pix[sy*src.Stride:]
		dstRow := dst.Pix[i*dst.Stride : i*dst.Stride+dst.Width]
		for j, sx := range xs {
			dstRow[j] = srcRow[sx]
		}
	}
}

// Nearest resamples with the default Scaler.
func Nearest(dst, src pixel.Buffer) {
	defaultScaler.Nearest(dst, src)
}

// Resample fills a tightly packed dstW×dstH destination from a source of
// srcW×srcH pixels with row stride srcStride. Non-positive destination
// dimensions are treated as 1; dst must hold at least that many pixels.
func Resample(dst []uint32, dstW, dstH int, src []uint32, srcW, srcH, srcStride int) {
	dstW = max(dstW, 1)
	ResampleStride(dst, dstW, dstH, dstW, src, srcW, srcH, srcStride)
}

// ResampleStride is Resample for a destination whose rows are dstStride
// pixels apart, skipping dstStride-dstW pixels after each row. It writes
// into a sub-rectangle of a larger buffer without an intermediate copy.
func ResampleStride(dst []uint32, dstW, dstH, dstStride int, src []uint32, srcW, srcH, srcStride int) {
	dstW = max(dstW, 1)
	dstH = max(dstH, 1)
	dstStride = max(dstStride, dstW)
	Nearest(
		pixel.Buffer{Pix: dst, Width: dstW, Height: dstH, Stride: dstStride},
		pixel.Buffer{Pix: src, Width: srcW, Height: srcH, Stride: max(srcStride, srcW)},
	)
}

// Resize resamples src into dst with the selected filter.
func (s *Scaler) Resize(dst, src pixel.Buffer, f Filter) error {
	switch f {
	case FilterBilinear:
		return Bilinear(dst, src)
	default:
		s.Nearest(dst, src)
		return nil
	}
}
