// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scale

import (
	"fmt"

	"github.com/gogpu/blit/pixel"
)

// Policy selects how a source rectangle is fitted into a destination.
type Policy uint8

const (
	// Stretch resamples both axes independently to cover the destination.
	Stretch Policy = iota

	// AspectFill scales to the largest size that keeps the source aspect
	// ratio and centers the result, leaving background bars on one axis.
	AspectFill

	// Center copies the source 1:1 centered in the destination, cropping
	// symmetrically on axes where the source is larger.
	Center

	// UpperLeft copies the source 1:1 anchored at the top-left corner,
	// cropping the right and bottom where the source is larger.
	UpperLeft
)

// String returns a string representation of the policy.
func (p Policy) String() string {
	switch p {
	case Stretch:
		return "Stretch"
	case AspectFill:
		return "AspectFill"
	case Center:
		return "Center"
	case UpperLeft:
		return "UpperLeft"
	default:
		return "Unknown"
	}
}

// IsValid reports whether p is a known policy.
func (p Policy) IsValid() bool {
	return p <= UpperLeft
}

// Scaled reports whether the policy resamples rather than copies.
func (p Policy) Scaled() bool {
	return p == Stretch || p == AspectFill
}

// Request describes one frame to place.
type Request struct {
	Src        pixel.Buffer
	Dst        pixel.Buffer
	Policy     Policy
	Background uint32

	// Filter applies to the scaled policies only.
	Filter Filter
}

// Layout is the destination geometry computed for one placement.
//
// For scaled policies the source rectangle is the whole source and the
// destination rectangle is where it lands. For copy policies both
// rectangles have the same size: the cropped part of the source and where
// it is written.
type Layout struct {
	X, Y          int
	Width, Height int

	SrcX, SrcY          int
	SrcWidth, SrcHeight int
}

// ComputeLayout derives the destination rectangle for a policy.
// All dimensions are clamped to at least 1.
func ComputeLayout(p Policy, srcW, srcH, dstW, dstH int) Layout {
	srcW, srcH = max(srcW, 1), max(srcH, 1)
	dstW, dstH = max(dstW, 1), max(dstH, 1)

	switch p {
	case AspectFill:
		return aspectLayout(srcW, srcH, dstW, dstH)
	case Center:
		x, sx, w := centerAxis(srcW, dstW)
		y, sy, h := centerAxis(srcH, dstH)
		return Layout{X: x, Y: y, Width: w, Height: h, SrcX: sx, SrcY: sy, SrcWidth: w, SrcHeight: h}
	case UpperLeft:
		w, h := min(srcW, dstW), min(srcH, dstH)
		return Layout{Width: w, Height: h, SrcWidth: w, SrcHeight: h}
	default:
		return Layout{Width: dstW, Height: dstH, SrcWidth: srcW, SrcHeight: srcH}
	}
}

// aspectLayout fits the source inside the destination keeping its aspect
// ratio. The centering offset is (new - dst) / -2 with truncating integer
// division, so a leftover odd pixel goes to the far bar.
func aspectLayout(srcW, srcH, dstW, dstH int) Layout {
	bufferAspect := float32(srcW) / float32(srcH)
	windowAspect := float32(dstW) / float32(dstH)

	l := Layout{SrcWidth: srcW, SrcHeight: srcH}
	if bufferAspect > windowAspect {
		newH := max(int(float32(dstW)/bufferAspect), 1)
		l.Y = (newH - dstH) / -2
		l.Width, l.Height = dstW, newH
	} else {
		newW := max(int(float32(dstH)*bufferAspect), 1)
		l.X = (newW - dstW) / -2
		l.Width, l.Height = newW, dstH
	}
	return l
}

// centerAxis returns the destination offset, source offset and copied
// length for one axis of the Center policy.
func centerAxis(src, dst int) (dstOff, srcOff, n int) {
	if src > dst {
		return 0, (src - dst) / 2, dst
	}
	return (dst - src) / 2, 0, src
}

// ToSource maps a destination coordinate back into source pixels.
// ok is false when the coordinate falls on the background.
func (l Layout) ToSource(x, y int) (sx, sy int, ok bool) {
	if x < l.X || y < l.Y || x >= l.X+l.Width || y >= l.Y+l.Height {
		return 0, 0, false
	}
	if l.Width == l.SrcWidth && l.Height == l.SrcHeight {
		return x - l.X + l.SrcX, y - l.Y + l.SrcY, true
	}
	sx = l.SrcX + (x-l.X)*l.SrcWidth/l.Width
	sy = l.SrcY + (y-l.Y)*l.SrcHeight/l.Height
	return sx, sy, true
}

// Place clears the destination to the background color and composites the
// source into it according to the request policy. It returns the layout
// that was applied.
//
// The whole destination is cleared for every policy, including the region
// the source overwrites.
func (s *Scaler) Place(req Request) (Layout, error) {
	if !req.Policy.IsValid() {
		return Layout{}, fmt.Errorf("%w: %d", ErrUnknownPolicy, req.Policy)
	}
	if err := req.Src.Validate(); err != nil {
		return Layout{}, fmt.Errorf("scale: source: %w", err)
	}
	if err := req.Dst.Validate(); err != nil {
		return Layout{}, fmt.Errorf("scale: destination: %w", err)
	}

	dst, src := req.Dst, req.Src
	l := ComputeLayout(req.Policy, src.Width, src.Height, dst.Width, dst.Height)

	dst.Fill(req.Background)

	target := dst.Sub(l.X, l.Y, l.Width, l.Height)
	if req.Policy.Scaled() {
		if err := s.Resize(target, src, req.Filter); err != nil {
			return l, err
		}
		return l, nil
	}

	target.CopyFrom(src.Sub(l.SrcX, l.SrcY, l.SrcWidth, l.SrcHeight))
	return l, nil
}

// Place places a frame with the default Scaler.
func Place(req Request) (Layout, error) {
	return defaultScaler.Place(req)
}
