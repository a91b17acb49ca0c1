// Package sprite loads character portraits and removes their near-white backdrop.
package sprite

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"golang.org/x/image/draw"
)

// Threshold is the per-channel level above which a pixel counts as backdrop.
const Threshold = 245

var ErrEmptyImage = errors.New("sprite: image has no pixels")

// Keyed is a backdrop-free sprite and the size it should be drawn at.
type Keyed struct {
	Image  *image.RGBA
	Width  float64
	Height float64
}

// Key loads the image at path, keys out its backdrop and computes a size that
// fits within maxW by maxH. The scale is not capped, so small sources grow.
func Key(path string, maxW, maxH float64) (*Keyed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sprite: open: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sprite: decode %s: %w", path, err)
	}
	return FromImage(src, maxW, maxH)
}

// FromImage keys an already decoded image.
func FromImage(src image.Image, maxW, maxH float64) (*Keyed, error) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	// Keying runs on straight alpha so the threshold sees true channel values.
	buf := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(buf, buf.Bounds(), src, b.Min, draw.Src)
	KeyWhite(buf)

	// Commit into a separate premultiplied buffer; buf is not used again.
	out := image.NewRGBA(buf.Bounds())
	draw.Draw(out, out.Bounds(), buf, image.Point{}, draw.Src)

	scale := math.Min(maxW/float64(b.Dx()), maxH/float64(b.Dy()))
	return &Keyed{
		Image:  out,
		Width:  float64(b.Dx()) * scale,
		Height: float64(b.Dy()) * scale,
	}, nil
}

// KeyWhite zeroes the alpha of every pixel whose R, G and B all exceed
// Threshold and returns how many pixels it changed.
func KeyWhite(img *image.NRGBA) int {
	n := 0
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			if row[i] > Threshold && row[i+1] > Threshold && row[i+2] > Threshold {
				row[i+3] = 0
				n++
			}
		}
	}
	return n
}

// Fit resamples the keyed image to its computed draw size.
func (k *Keyed) Fit() *image.RGBA {
	w := max(1, int(math.Round(k.Width)))
	h := max(1, int(math.Round(k.Height)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), k.Image, k.Image.Bounds(), draw.Src, nil)
	return dst
}
