// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixel

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewClampsDimensions(t *testing.T) {
	b := New(0, -3)
	if b.Width != 1 || b.Height != 1 || b.Stride != 1 {
		t.Errorf("New(0, -3) = %dx%d stride %d, want 1x1 stride 1", b.Width, b.Height, b.Stride)
	}
	if len(b.Pix) != 1 {
		t.Errorf("len(Pix) = %d, want 1", len(b.Pix))
	}
}

func TestFromRawValidation(t *testing.T) {
	tests := []struct {
		name    string
		pixLen  int
		w, h, s int
		wantErr error
	}{
		{"packed", 12, 4, 3, 0, nil},
		{"with stride", 18, 4, 3, 6, nil},
		{"zero width", 12, 0, 3, 0, ErrInvalidDimensions},
		{"negative height", 12, 4, -1, 0, ErrInvalidDimensions},
		{"stride below width", 12, 4, 3, 2, ErrInvalidStride},
		{"short data", 11, 4, 3, 0, ErrDataTooSmall},
		{"short for stride", 15, 4, 3, 6, ErrDataTooSmall},
		{"last row unpadded", 16, 4, 3, 6, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRaw(make([]uint32, tt.pixLen), tt.w, tt.h, tt.s)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FromRaw() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRowConfinedToWidth(t *testing.T) {
	pix := make([]uint32, 6*3)
	for i := range pix {
		pix[i] = uint32(i)
	}
	b, err := FromRaw(pix, 4, 3, 6)
	if err != nil {
		t.Fatalf("FromRaw failed: %v", err)
	}

	row := b.Row(1)
	if len(row) != 4 {
		t.Fatalf("len(Row(1)) = %d, want 4", len(row))
	}
	if row[0] != 6 || row[3] != 9 {
		t.Errorf("Row(1) = %v, want [6 7 8 9]", row)
	}
	if b.Row(3) != nil || b.Row(-1) != nil {
		t.Error("Row out of range should be nil")
	}
}

func TestSubSharesMemory(t *testing.T) {
	b := New(8, 8)
	sub := b.Sub(2, 3, 4, 2)
	if sub.Width != 4 || sub.Height != 2 || sub.Stride != 8 {
		t.Fatalf("Sub = %dx%d stride %d, want 4x2 stride 8", sub.Width, sub.Height, sub.Stride)
	}

	sub.Fill(0xABCDEF)
	if got := b.At(2, 3); got != 0xABCDEF {
		t.Errorf("parent At(2,3) = %#x, want 0xabcdef", got)
	}
	if got := b.At(5, 4); got != 0xABCDEF {
		t.Errorf("parent At(5,4) = %#x, want 0xabcdef", got)
	}
	if got := b.At(6, 3); got != 0 {
		t.Errorf("parent At(6,3) = %#x, want 0 (outside sub)", got)
	}
	if got := b.At(2, 5); got != 0 {
		t.Errorf("parent At(2,5) = %#x, want 0 (outside sub)", got)
	}
}

func TestSubClipsToBounds(t *testing.T) {
	b := New(4, 4)
	if s := b.Sub(-1, -1, 3, 3); s.Width != 2 || s.Height != 2 {
		t.Errorf("Sub(-1,-1,3,3) = %dx%d, want 2x2", s.Width, s.Height)
	}
	if s := b.Sub(3, 3, 5, 5); s.Width != 1 || s.Height != 1 {
		t.Errorf("Sub(3,3,5,5) = %dx%d, want 1x1", s.Width, s.Height)
	}
	if s := b.Sub(4, 0, 1, 1); !s.IsEmpty() {
		t.Errorf("Sub(4,0,1,1) = %dx%d, want empty", s.Width, s.Height)
	}
}

func TestCloneIsPacked(t *testing.T) {
	b := New(6, 2)
	for i := range b.Pix {
		b.Pix[i] = uint32(i + 1)
	}
	c := b.Sub(1, 0, 3, 2).Clone()
	if c.Stride != 3 || len(c.Pix) != 6 {
		t.Fatalf("Clone stride=%d len=%d, want 3 and 6", c.Stride, len(c.Pix))
	}
	want := []uint32{2, 3, 4, 8, 9, 10}
	for i, v := range want {
		if c.Pix[i] != v {
			t.Errorf("Clone.Pix[%d] = %d, want %d", i, c.Pix[i], v)
		}
	}
}

func TestChannelsRoundTrip(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if c != 0x123456 {
		t.Errorf("RGB() = %#x, want 0x123456", c)
	}
	r, g, b := Channels(0xFF123456)
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Errorf("Channels() = %#x %#x %#x, want 0x12 0x34 0x56", r, g, b)
	}
}

func TestBytesLayout(t *testing.T) {
	b := New(1, 1)
	b.Pix[0] = 0x112233

	if got := b.Bytes(FormatBGRA8); string(got) != "\x33\x22\x11\xff" {
		t.Errorf("Bytes(BGRA8) = %x, want 332211ff", got)
	}
	if got := b.Bytes(FormatRGBA8); string(got) != "\x11\x22\x33\xff" {
		t.Errorf("Bytes(RGBA8) = %x, want 112233ff", got)
	}
}

func TestFormatForTexture(t *testing.T) {
	tests := []struct {
		tf     gputypes.TextureFormat
		want   Format
		wantOK bool
	}{
		{gputypes.TextureFormatBGRA8Unorm, FormatBGRA8, true},
		{gputypes.TextureFormatRGBA8Unorm, FormatRGBA8, true},
		{gputypes.TextureFormatUndefined, FormatRGBA8, false},
	}
	for _, tt := range tests {
		got, ok := FormatForTexture(tt.tf)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("FormatForTexture(%v) = (%v, %v), want (%v, %v)", tt.tf, got, ok, tt.want, tt.wantOK)
		}
		if ok && got.TextureFormat() != tt.tf {
			t.Errorf("%v.TextureFormat() = %v, want %v", got, got.TextureFormat(), tt.tf)
		}
	}
}

func TestImageConversion(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 10, 13, 12))
	img.SetNRGBA(10, 10, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	img.SetNRGBA(12, 11, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	b := FromImage(img)
	if b.Width != 3 || b.Height != 2 {
		t.Fatalf("FromImage size = %dx%d, want 3x2", b.Width, b.Height)
	}
	if got := b.At(0, 0); got != RGB(200, 100, 50) {
		t.Errorf("At(0,0) = %#x, want %#x", got, RGB(200, 100, 50))
	}
	if got := b.At(2, 1); got != RGB(1, 2, 3) {
		t.Errorf("At(2,1) = %#x, want %#x", got, RGB(1, 2, 3))
	}

	back := b.ToRGBA()
	if c := back.RGBAAt(0, 0); c != (color.RGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Errorf("ToRGBA At(0,0) = %v", c)
	}
}

func TestFromImageEmpty(t *testing.T) {
	full := image.NewRGBA(image.Rect(0, 0, 4, 4))
	tests := []struct {
		name string
		img  image.Image
	}{
		{"zero rgba", image.NewRGBA(image.Rect(0, 0, 0, 0))},
		{"zero width", image.NewNRGBA(image.Rect(0, 0, 0, 5))},
		{"empty sub image", full.SubImage(image.Rect(2, 2, 2, 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := FromImage(tt.img)
			if !b.IsEmpty() {
				t.Errorf("FromImage() = %dx%d, want empty", b.Width, b.Height)
			}
		})
	}
}

func TestScaledFromImageSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	b := ScaledFromImage(img, 4, 0)
	if b.Width != 4 || b.Height != 1 {
		t.Errorf("ScaledFromImage size = %dx%d, want 4x1", b.Width, b.Height)
	}
}
