package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/blit/pixel"
)

func TestPatternsAnimate(t *testing.T) {
	for _, name := range []string{"julia", "plasma", "noise"} {
		t.Run(name, func(t *testing.T) {
			pat, src, err := newPattern(&Config{Pattern: name, Width: 32, Height: 20})
			if err != nil {
				t.Fatalf("newPattern() error = %v", err)
			}
			if src.Width != 32 || src.Height != 20 {
				t.Fatalf("buffer = %dx%d, want 32x20", src.Width, src.Height)
			}

			pat.Draw(src, 0)
			first := src.Clone()
			pat.Draw(src, 0)
			if !equal(first, src) {
				t.Error("same frame number drew different pixels")
			}
			pat.Draw(src, 40)
			if equal(first, src) {
				t.Error("frame 40 is identical to frame 0")
			}
			for y := range src.Height {
				for _, c := range src.Row(y) {
					if c>>24 != 0 {
						t.Fatalf("pixel %#x has a non-zero top byte", c)
					}
				}
			}
		})
	}
}

func TestUnknownPattern(t *testing.T) {
	if _, _, err := newPattern(&Config{Pattern: "tunnel", Width: 4, Height: 4}); err == nil {
		t.Error("newPattern(tunnel) error = nil")
	}
}

func TestImagePattern(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	img.Set(2, 1, color.RGBA{B: 0xFF, A: 0xFF})

	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	pat, src, err := newPattern(&Config{ImagePath: path, Pattern: "julia", Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("newPattern() error = %v", err)
	}
	if src.Width != 3 || src.Height != 2 {
		t.Fatalf("buffer = %dx%d, want the image size 3x2", src.Width, src.Height)
	}
	pat.Draw(src, 7)
	if got := src.At(0, 0); got != 0xFF0000 {
		t.Errorf("At(0, 0) = %#06x, want 0xff0000", got)
	}
	if got := src.At(2, 1); got != 0x0000FF {
		t.Errorf("At(2, 1) = %#06x, want 0x0000ff", got)
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := loadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("loadImage(missing) error = nil")
	}
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadImage(junk); err == nil {
		t.Error("loadImage(junk) error = nil")
	}
}

func TestEscapeColor(t *testing.T) {
	if got := escapeColor(64, 64); got != 0 {
		t.Errorf("escapeColor(max) = %#x, want 0", got)
	}
	if got := escapeColor(0, 64); got != 0 {
		t.Errorf("escapeColor(0) = %#x, want 0", got)
	}
	if got := escapeColor(32, 64); got == 0 {
		t.Error("escapeColor(32) = 0, want a visible color")
	}
}

func equal(a, b pixel.Buffer) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	for y := range a.Height {
		ra, rb := a.Row(y), b.Row(y)
		for x := range ra {
			if ra[x] != rb[x] {
				return false
			}
		}
	}
	return true
}
