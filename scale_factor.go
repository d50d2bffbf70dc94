// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blit

import "fmt"

// Scale is the integer window scale requested for a buffer. A shell uses
// it to size its window as a multiple of the application buffer.
type Scale uint8

const (
	// X1 leaves the buffer size untouched.
	X1 Scale = iota
	// X2 doubles both dimensions (320×200 becomes 640×400).
	X2
	// X4 quadruples both dimensions.
	X4
	// X8 scales both dimensions by 8.
	X8
	// X16 scales both dimensions by 16.
	X16
	// X32 scales both dimensions by 32.
	X32
	// FitScreen picks the largest power-of-two scale, up to 32, whose
	// window still fits the screen.
	FitScreen
)

// MaxScale is the largest factor Scale.Factor returns.
const MaxScale = 32

// String returns a string representation of the scale.
func (s Scale) String() string {
	switch s {
	case X1:
		return "X1"
	case X2:
		return "X2"
	case X4:
		return "X4"
	case X8:
		return "X8"
	case X16:
		return "X16"
	case X32:
		return "X32"
	case FitScreen:
		return "FitScreen"
	default:
		return fmt.Sprintf("Scale(%d)", s)
	}
}

// ParseScale parses the names produced by String, case-sensitively, plus
// the bare factors "1" through "32".
func ParseScale(name string) (Scale, error) {
	switch name {
	case "X1", "1":
		return X1, nil
	case "X2", "2":
		return X2, nil
	case "X4", "4":
		return X4, nil
	case "X8", "8":
		return X8, nil
	case "X16", "16":
		return X16, nil
	case "X32", "32":
		return X32, nil
	case "FitScreen", "fit":
		return FitScreen, nil
	default:
		return X1, fmt.Errorf("blit: unknown scale %q", name)
	}
}

// Factor returns the integer multiplier for a width×height buffer on a
// screenWidth×screenHeight display. Only FitScreen looks at the sizes.
//
// FitScreen starts at 1 and doubles while the doubled window would still
// be strictly smaller than the screen on both axes.
func (s Scale) Factor(width, height, screenWidth, screenHeight int) int {
	switch s {
	case X1:
		return 1
	case X2:
		return 2
	case X4:
		return 4
	case X8:
		return 8
	case X16:
		return 16
	case X32:
		return 32
	case FitScreen:
		width, height = max(width, 1), max(height, 1)
		factor := 1
		for factor < MaxScale {
			next := factor * 2
			if width*next >= screenWidth || height*next >= screenHeight {
				break
			}
			factor = next
		}
		return factor
	default:
		return 1
	}
}

// WindowSize returns the window size a shell should request for a buffer.
func (s Scale) WindowSize(width, height, screenWidth, screenHeight int) (int, int) {
	f := s.Factor(width, height, screenWidth, screenHeight)
	return max(width, 1) * f, max(height, 1) * f
}
