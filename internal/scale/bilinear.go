// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scale

import (
	"fmt"

	"github.com/gogpu/blit/pixel"
)

// Bilinear fills every visible pixel of dst by blending the 2×2 source
// neighborhood around the mapped coordinate.
//
// The ratios are (srcW-1)/dstW and (srcH-1)/dstH, so the sampled
// coordinate never reaches the last row or column and the +1 neighbors
// stay in bounds. Each of blue, green and red is blended with
//
//	A(1-dx)(1-dy) + B·dx(1-dy) + C·dy(1-dx) + D·dx·dy
//
// and truncated. The top byte of the output is zero.
func Bilinear(dst, src pixel.Buffer) error {
	if src.Width < 2 || src.Height < 2 {
		return fmt.Errorf("%w: got %dx%d", ErrSourceTooSmall, src.Width, src.Height)
	}
	if dst.IsEmpty() {
		return nil
	}

	xRatio := float32(src.Width-1) / float32(dst.Width)
	yRatio := float32(src.Height-1) / float32(dst.Height)

	for i := range dst.Height {
		fy := yRatio * float32(i)
		y := min(int(fy), src.Height-2)
		dy := fy - float32(y)
		top := src.Pix[y*src.Stride:]
		bottom := src.Pix[(y+1)*src.Stride:]
		dstRow := dst.Row(i)

		for j := range dstRow {
			fx := xRatio * float32(j)
			x := min(int(fx), src.Width-2)
			dx := fx - float32(x)
			dstRow[j] = blend(top[x], top[x+1], bottom[x], bottom[x+1], dx, dy)
		}
	}
	return nil
}

// BilinearResample is the slice form of Bilinear for a tightly packed
// destination. Non-positive destination dimensions are treated as 1.
func BilinearResample(dst []uint32, dstW, dstH int, src []uint32, srcW, srcH, srcStride int) error {
	dstW = max(dstW, 1)
	dstH = max(dstH, 1)
	return Bilinear(
		pixel.Buffer{Pix: dst, Width: dstW, Height: dstH, Stride: dstW},
		pixel.Buffer{Pix: src, Width: srcW, Height: srcH, Stride: max(srcStride, srcW)},
	)
}

// blend interpolates the blue, green and red channels of a 2×2 block.
func blend(a, b, c, d uint32, dx, dy float32) uint32 {
	wa := (1 - dx) * (1 - dy)
	wb := dx * (1 - dy)
	wc := dy * (1 - dx)
	wd := dx * dy

	channel := func(shift uint) uint32 {
		v := float32(a>>shift&0xFF)*wa +
			float32(b>>shift&0xFF)*wb +
			float32(c>>shift&0xFF)*wc +
			float32(d>>shift&0xFF)*wd
		return uint32(int(v)) & 0xFF
	}

	return channel(16)<<16 | channel(8)<<8 | channel(0)
}
