package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient is a two-stop linear gradient paint. Points before the start
// take the start colour and points past the end take the end colour.
type Gradient struct {
	x0, y0   float64
	dx, dy   float64
	invLen2  float64
	from, to colorful.Color
	a0, a1   float64
}

// LinearGradient returns a paint running from (x0,y0) in colour from to (x1,y1) in colour to.
func LinearGradient(x0, y0, x1, y1 float64, from, to color.Color) *Gradient {
	g := &Gradient{x0: x0, y0: y0, dx: x1 - x0, dy: y1 - y0}
	if l2 := g.dx*g.dx + g.dy*g.dy; l2 > 0 {
		g.invLen2 = 1 / l2
	}
	g.from, g.a0 = toColorful(from)
	g.to, g.a1 = toColorful(to)
	return g
}

// T returns the gradient parameter in [0,1] for a point.
func (g *Gradient) T(x, y float64) float64 {
	if g.invLen2 == 0 {
		return 0
	}
	t := ((x-g.x0)*g.dx + (y-g.y0)*g.dy) * g.invLen2
	return math.Max(0, math.Min(1, t))
}

// ColorModel implements image.Image.
func (g *Gradient) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image. A gradient paint is unbounded.
func (g *Gradient) Bounds() image.Rectangle {
	return image.Rect(-1<<30, -1<<30, 1<<30, 1<<30)
}

// At samples the gradient at the centre of pixel (x, y).
func (g *Gradient) At(x, y int) color.Color {
	t := g.T(float64(x)+0.5, float64(y)+0.5)
	r, gg, b := g.from.BlendRgb(g.to, t).Clamped().RGB255()
	a := g.a0 + (g.a1-g.a0)*t
	return color.NRGBA{R: r, G: gg, B: b, A: uint8(math.Round(a * 255))}
}
