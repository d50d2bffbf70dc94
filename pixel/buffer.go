// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pixel provides 32-bit pixel buffer views for blit.
//
// A Buffer is a view over a []uint32 slice with an independent stride, so a
// sub-rectangle of a larger buffer can be addressed without copying. Pixels
// are packed as 0x00RRGGBB with blue in the lowest byte. The top byte is
// carried through untouched by copies and ignored by interpolation.
package pixel

import (
	"errors"
	"fmt"
)

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixel: invalid dimensions")

	// ErrInvalidStride is returned when stride is less than width.
	ErrInvalidStride = errors.New("pixel: stride too small for width")

	// ErrDataTooSmall is returned when the backing slice cannot hold the view.
	ErrDataTooSmall = errors.New("pixel: data buffer too small")
)

// Buffer is a rectangular view of 32-bit pixels.
//
// Row y occupies Pix[y*Stride : y*Stride+Width]. Stride is measured in
// pixels, not bytes. The zero Buffer is empty.
//
// Buffer does not own Pix. Copying a Buffer copies the view, not the pixels.
type Buffer struct {
	Pix    []uint32
	Width  int
	Height int
	Stride int
}

// New allocates a tightly packed buffer. Non-positive dimensions are
// clamped to 1.
func New(width, height int) Buffer {
	width = max(width, 1)
	height = max(height, 1)
	return Buffer{
		Pix:    make([]uint32, width*height),
		Width:  width,
		Height: height,
		Stride: width,
	}
}

// FromRaw wraps existing pixel data without copying.
// A stride of 0 means tightly packed.
func FromRaw(pix []uint32, width, height, stride int) (Buffer, error) {
	if stride == 0 {
		stride = width
	}
	b := Buffer{Pix: pix, Width: width, Height: height, Stride: stride}
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}
	return b, nil
}

// Validate checks the view invariants: positive dimensions, Stride >= Width,
// and a backing slice long enough to hold every visible row.
func (b Buffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, b.Width, b.Height)
	}
	if b.Stride < b.Width {
		return fmt.Errorf("%w: stride=%d width=%d", ErrInvalidStride, b.Stride, b.Width)
	}
	if need := RequiredLen(b.Width, b.Height, b.Stride); len(b.Pix) < need {
		return fmt.Errorf("%w: %dx%d (stride %d) needs %d pixels, have %d",
			ErrDataTooSmall, b.Width, b.Height, b.Stride, need, len(b.Pix))
	}
	return nil
}

// RequiredLen returns the number of pixels a buffer of the given geometry
// must provide. The last row only needs its visible width, so sub-views
// produced by Sub validate.
func RequiredLen(width, height, stride int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	return (height-1)*max(width, stride) + width
}

// IsEmpty reports whether the buffer has no pixels.
func (b Buffer) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Row returns the visible pixels of row y, or nil if y is out of range.
func (b Buffer) Row(y int) []uint32 {
	if y < 0 || y >= b.Height {
		return nil
	}
	start := y * b.Stride
	return b.Pix[start : start+b.Width]
}

// At returns the pixel at (x, y), or 0 when out of bounds.
func (b Buffer) At(x, y int) uint32 {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Stride+x]
}

// Set writes the pixel at (x, y). Out-of-bounds writes are ignored.
func (b Buffer) Set(x, y int, c uint32) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.Pix[y*b.Stride+x] = c
}

// Fill sets every visible pixel to c. Padding between rows is untouched.
func (b Buffer) Fill(c uint32) {
	for y := range b.Height {
		row := b.Row(y)
		for i := range row {
			row[i] = c
		}
	}
}

// Sub returns a view of the rectangle (x, y, width, height) sharing memory
// with b. The rectangle is intersected with b's bounds; an empty Buffer is
// returned when nothing remains.
func (b Buffer) Sub(x, y, width, height int) Buffer {
	if x < 0 {
		width += x
		x = 0
	}
	if y < 0 {
		height += y
		y = 0
	}
	width = min(width, b.Width-x)
	height = min(height, b.Height-y)
	if width <= 0 || height <= 0 {
		return Buffer{}
	}

	start := y*b.Stride + x
	end := (y+height-1)*b.Stride + x + width
	return Buffer{
		Pix:    b.Pix[start:end],
		Width:  width,
		Height: height,
		Stride: b.Stride,
	}
}

// CopyFrom copies the overlapping top-left region of src into b.
// It returns the number of rows copied.
func (b Buffer) CopyFrom(src Buffer) int {
	w := min(b.Width, src.Width)
	h := min(b.Height, src.Height)
	if w <= 0 || h <= 0 {
		return 0
	}
	for y := range h {
		copy(b.Pix[y*b.Stride:y*b.Stride+w], src.Pix[y*src.Stride:y*src.Stride+w])
	}
	return h
}

// Clone returns a tightly packed deep copy of the visible pixels.
func (b Buffer) Clone() Buffer {
	if b.IsEmpty() {
		return Buffer{}
	}
	out := Buffer{
		Pix:    make([]uint32, b.Width*b.Height),
		Width:  b.Width,
		Height: b.Height,
		Stride: b.Width,
	}
	out.CopyFrom(b)
	return out
}

// RGB packs 8-bit channels into a pixel value.
func RGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Channels unpacks a pixel value into its 8-bit red, green and blue parts.
func Channels(c uint32) (r, g, b uint8) {
	//nolint:gosec // G115: masked to 8 bits
	return uint8(c >> 16 & 0xFF), uint8(c >> 8 & 0xFF), uint8(c & 0xFF)
}
