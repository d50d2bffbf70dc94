package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/blit/pixel"
)

// pattern renders frame n of an animation into buf.
type pattern interface {
	Draw(buf pixel.Buffer, n int)
}

// newPattern returns the pattern selected by cfg together with the
// application buffer it draws into. Images define their own size.
func newPattern(cfg *Config) (pattern, pixel.Buffer, error) {
	if cfg.ImagePath != "" {
		img, err := loadImage(cfg.ImagePath)
		if err != nil {
			return nil, pixel.Buffer{}, err
		}
		return still{img: img}, pixel.New(img.Width, img.Height), nil
	}

	src := pixel.New(cfg.Width, cfg.Height)
	switch cfg.Pattern {
	case "julia":
		return julia{maxIter: 64}, src, nil
	case "plasma":
		return plasma{}, src, nil
	case "noise":
		return noise{seed: 0x2545F491}, src, nil
	default:
		return nil, pixel.Buffer{}, fmt.Errorf("unknown pattern %q", cfg.Pattern)
	}
}

func loadImage(path string) (pixel.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return pixel.Buffer{}, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return pixel.Buffer{}, fmt.Errorf("decoding image: %w", err)
	}
	buf := pixel.FromImage(img)
	if buf.IsEmpty() {
		return pixel.Buffer{}, fmt.Errorf("decoding image: %s is empty", path)
	}
	return buf, nil
}

// still shows the same image on every frame.
type still struct {
	img pixel.Buffer
}

func (s still) Draw(buf pixel.Buffer, _ int) {
	buf.CopyFrom(s.img)
}

// julia animates the Julia set for c on a circle of radius 0.7885.
type julia struct {
	maxIter int
}

func (j julia) Draw(buf pixel.Buffer, n int) {
	a := float64(n) * 0.01
	cr, ci := 0.7885*math.Cos(a), 0.7885*math.Sin(a)
	sx := 3.0 / float64(max(buf.Width, 1))
	sy := 2.0 / float64(max(buf.Height, 1))

	for y := range buf.Height {
		row := buf.Row(y)
		for x := range row {
			zr := float64(x)*sx - 1.5
			zi := float64(y)*sy - 1.0
			i := 0
			for ; i < j.maxIter && zr*zr+zi*zi < 4; i++ {
				zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
			}
			row[x] = escapeColor(i, j.maxIter)
		}
	}
}

// escapeColor maps an iteration count to a smooth blue-orange palette.
// Points that never escape are black.
func escapeColor(i, maxIter int) uint32 {
	if i >= maxIter {
		return 0
	}
	t := float64(i) / float64(maxIter)
	u := 1 - t
	r := 9 * u * t * t * t
	g := 15 * u * u * t * t
	b := 8.5 * u * u * u * t
	return pixel.RGB(uint8(r*255), uint8(g*255), uint8(b*255))
}

// plasma is the classic sum-of-sines effect.
type plasma struct{}

func (plasma) Draw(buf pixel.Buffer, n int) {
	t := float64(n) * 0.05
	for y := range buf.Height {
		row := buf.Row(y)
		fy := float64(y)
		for x := range row {
			fx := float64(x)
			v := math.Sin(fx*0.06+t) +
				math.Sin(fy*0.05-t) +
				math.Sin((fx+fy)*0.04+t*0.5) +
				math.Sin(math.Hypot(fx-float64(buf.Width)/2, fy-float64(buf.Height)/2)*0.08)
			row[x] = pixel.RGB(
				channel(v, 0),
				channel(v, 2*math.Pi/3),
				channel(v, 4*math.Pi/3),
			)
		}
	}
}

func channel(v, phase float64) uint8 {
	return uint8(127.5 + 127.5*math.Sin(v*math.Pi/2+phase))
}

// noise fills the buffer with grey xorshift noise that changes per frame.
type noise struct {
	seed uint32
}

func (p noise) Draw(buf pixel.Buffer, n int) {
	s := (p.seed + uint32(n)*0x9E3779B9) | 1
	for y := range buf.Height {
		row := buf.Row(y)
		for x := range row {
			s ^= s << 13
			s ^= s >> 17
			s ^= s << 5
			v := uint8(s >> 24)
			row[x] = pixel.RGB(v, v, v)
		}
	}
}
