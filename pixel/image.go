// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixel

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// FromImage converts any image into a new tightly packed Buffer.
// Alpha is discarded; pixels are flattened as if composited onto black.
// An empty image yields an empty Buffer.
func FromImage(img image.Image) Buffer {
	bounds := img.Bounds()
	if bounds.Empty() {
		return Buffer{}
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		xdraw.Draw(rgba, rgba.Bounds(), img, bounds.Min, xdraw.Src)
	}

	out := New(bounds.Dx(), bounds.Dy())
	for y := range out.Height {
		src := rgba.Pix[y*rgba.Stride:]
		row := out.Row(y)
		for x := range row {
			i := x * 4
			row[x] = RGB(src[i], src[i+1], src[i+2])
		}
	}
	return out
}

// ScaledFromImage converts img into a width×height Buffer using the
// approximate bilinear scaler from x/image. It is meant for loading
// assets into a session, not for per-frame presentation.
func ScaledFromImage(img image.Image, width, height int) Buffer {
	width = max(width, 1)
	height = max(height, 1)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return FromImage(dst)
}

// ToRGBA copies the visible pixels into a new opaque *image.RGBA.
func (b Buffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := range b.Height {
		for x, c := range b.Row(y) {
			r, g, bl := Channels(c)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: bl, A: 0xFF})
		}
	}
	return img
}
