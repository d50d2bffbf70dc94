// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixel

import "github.com/gogpu/gputypes"

// Format is the byte layout used when a Buffer is exported to a consumer
// that reads bytes rather than packed uint32 values.
type Format uint8

const (
	// FormatBGRA8 stores each pixel as B, G, R, A bytes. This is the
	// in-memory layout of a packed 0xAARRGGBB value on little-endian hosts
	// and what X11, Win32 and Wayland XRGB surfaces expect.
	FormatBGRA8 Format = iota

	// FormatRGBA8 stores each pixel as R, G, B, A bytes, as image.RGBA and
	// most GPU upload paths expect.
	FormatRGBA8

	formatCount
)

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatBGRA8:
		return "BGRA8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// BytesPerPixel is always 4 for the supported formats.
func (f Format) BytesPerPixel() int {
	return 4
}

// TextureFormat returns the matching GPU texture format.
func (f Format) TextureFormat() gputypes.TextureFormat {
	switch f {
	case FormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm
	case FormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}

// FormatForTexture maps a GPU texture format to the byte layout the
// pixels must be written in. Unknown formats fall back to RGBA8 and
// report false.
func FormatForTexture(tf gputypes.TextureFormat) (Format, bool) {
	switch tf {
	case gputypes.TextureFormatBGRA8Unorm:
		return FormatBGRA8, true
	case gputypes.TextureFormatRGBA8Unorm:
		return FormatRGBA8, true
	default:
		return FormatRGBA8, false
	}
}

// AppendBytes appends the visible pixels of b to dst in format f with an
// opaque alpha byte and returns the extended slice. Rows are tightly packed.
func (b Buffer) AppendBytes(dst []byte, f Format) []byte {
	for y := range b.Height {
		for _, c := range b.Row(y) {
			r, g, bl := Channels(c)
			if f == FormatBGRA8 {
				dst = append(dst, bl, g, r, 0xFF)
			} else {
				dst = append(dst, r, g, bl, 0xFF)
			}
		}
	}
	return dst
}

// Bytes returns the visible pixels as a tightly packed byte slice.
func (b Buffer) Bytes(f Format) []byte {
	if b.IsEmpty() {
		return nil
	}
	return b.AppendBytes(make([]byte, 0, b.Width*b.Height*f.BytesPerPixel()), f)
}
