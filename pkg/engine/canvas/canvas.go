// Package canvas provides the 2D drawing surface used to compose dialogue bubbles.
//
// Surface is the capability set the compositor draws with. Raster is the software
// implementation backed by an *image.RGBA; each render owns its own Raster, so
// independent surfaces can be drawn on concurrently.
package canvas

import (
	"errors"
	"image"
	"image/color"
	"io"
	"math"
)

// ErrInvalidSize is returned when a surface is requested with a non-positive dimension.
var ErrInvalidSize = errors.New("canvas: invalid surface size")

// Align is the horizontal anchor of a text run relative to its x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical anchor of a text run relative to its y coordinate.
type Baseline int

const (
	BaselineTop Baseline = iota
	BaselineMiddle
	BaselineAlphabetic
)

// Rect is a rectangle in surface coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Bounds returns the smallest integer rectangle covering r.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)), int(math.Ceil(r.Y+r.H)),
	)
}

// Inset shrinks r by d on every side. A negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// FontSpec selects a face: a prioritized family list plus size and style.
// Measurements are a pure function of (text, FontSpec).
type FontSpec struct {
	Families []string
	Size     float64
	Bold     bool
	Italic   bool
}

// Surface is the set of drawing operations the bubble compositor relies on.
// Paints are image.Image sources in surface coordinates (see Solid and LinearGradient).
type Surface interface {
	Width() int
	Height() int

	FillRect(r Rect, paint image.Image)
	FillRoundedRect(r Rect, radius float64, paint image.Image)
	StrokeRoundedRect(r Rect, radius, lineWidth float64, paint image.Image)

	// ClipRoundedRect restricts subsequent fills and strokes to the rounded
	// rectangle until ResetClip. Text and images are never clipped.
	ClipRoundedRect(r Rect, radius float64)
	ResetClip()

	MeasureText(s string, f FontSpec) float64
	DrawText(s string, x, y float64, f FontSpec, paint image.Image, align Align, baseline Baseline)
	DrawImage(img image.Image, x, y, w, h float64)

	Encode(w io.Writer) error
}

// Solid returns a uniform paint.
func Solid(c color.Color) image.Image {
	return image.NewUniform(c)
}
