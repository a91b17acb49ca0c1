package canvas

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/vector"
)

// Raster is a software Surface backed by an RGBA image. It starts fully
// transparent. Failures inside drawing calls are sticky and reported by Err
// and Encode.
type Raster struct {
	img   *image.RGBA
	fonts *FontLibrary
	// clip covers only the clip rectangle; pixels outside its bounds read as 0.
	clip  *image.Alpha
	faces map[string][]font.Face
	err   error
}

var _ Surface = (*Raster)(nil)

// New creates a w by h surface. fonts may be nil, in which case only the
// bundled Go fonts are available.
func New(w, h int, fonts *FontLibrary) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if fonts == nil {
		fonts = NewFontLibrary(nil, 0)
	}
	return &Raster{
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		fonts: fonts,
		faces: make(map[string][]font.Face),
	}, nil
}

func (r *Raster) Width() int  { return r.img.Bounds().Dx() }
func (r *Raster) Height() int { return r.img.Bounds().Dy() }

// Image exposes the backing pixels.
func (r *Raster) Image() *image.RGBA { return r.img }

// Err returns the first failure recorded while drawing.
func (r *Raster) Err() error { return r.err }

func (r *Raster) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// coverage rasterizes a path over area. The returned mask is indexed from (0,0),
// which corresponds to area.Min on the surface.
func (r *Raster) coverage(area image.Rectangle, path func(z *vector.Rasterizer, ox, oy float32)) *image.Alpha {
	z := vector.NewRasterizer(area.Dx(), area.Dy())
	path(z, float32(-area.Min.X), float32(-area.Min.Y))
	mask := image.NewAlpha(image.Rect(0, 0, area.Dx(), area.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

func (r *Raster) fill(area image.Rectangle, paint image.Image, path func(z *vector.Rasterizer, ox, oy float32)) {
	area = area.Intersect(r.img.Bounds())
	if area.Empty() || paint == nil {
		return
	}
	mask := r.coverage(area, path)
	if r.clip != nil {
		applyClip(mask, r.clip, area.Min)
	}
	draw.DrawMask(r.img, area, paint, area.Min, mask, image.Point{}, draw.Over)
}

func applyClip(mask, clip *image.Alpha, origin image.Point) {
	b := mask.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := y * mask.Stride
		for x := 0; x < b.Dx(); x++ {
			c := clip.AlphaAt(origin.X+x, origin.Y+y).A
			i := row + x
			mask.Pix[i] = uint8(uint16(mask.Pix[i]) * uint16(c) / 255)
		}
	}
}

func roundedRectPath(rc Rect, radius float64, clockwise bool) func(z *vector.Rasterizer, ox, oy float32) {
	return func(z *vector.Rasterizer, ox, oy float32) {
		appendRoundedRect(z,
			float32(rc.X)+ox, float32(rc.Y)+oy,
			float32(rc.W), float32(rc.H),
			float32(radius), clockwise)
	}
}

func (r *Raster) FillRect(rc Rect, paint image.Image) {
	if r.clip == nil && pixelAligned(rc) {
		area := rc.Bounds().Intersect(r.img.Bounds())
		if !area.Empty() && paint != nil {
			draw.Draw(r.img, area, paint, area.Min, draw.Over)
		}
		return
	}
	r.fill(rc.Bounds(), paint, roundedRectPath(rc, 0, true))
}

// pixelAligned reports whether every edge of rc falls on a pixel boundary, so
// its coverage is all or nothing.
func pixelAligned(rc Rect) bool {
	whole := func(v float64) bool { return v == math.Trunc(v) }
	return whole(rc.X) && whole(rc.Y) && whole(rc.X+rc.W) && whole(rc.Y+rc.H)
}

func (r *Raster) FillRoundedRect(rc Rect, radius float64, paint image.Image) {
	r.fill(rc.Bounds(), paint, roundedRectPath(rc, radius, true))
}

// StrokeRoundedRect draws a band of lineWidth centred on the rectangle's edge.
func (r *Raster) StrokeRoundedRect(rc Rect, radius, lineWidth float64, paint image.Image) {
	if lineWidth <= 0 {
		return
	}
	half := lineWidth / 2
	outer := rc.Inset(-half)
	inner := rc.Inset(half)
	outerPath := roundedRectPath(outer, radius+half, true)
	innerPath := roundedRectPath(inner, math.Max(0, radius-half), false)

	r.fill(outer.Bounds(), paint, func(z *vector.Rasterizer, ox, oy float32) {
		outerPath(z, ox, oy)
		if inner.W > 0 && inner.H > 0 {
			innerPath(z, ox, oy)
		}
	})
}

// ClipRoundedRect restricts later fills to the rounded rectangle, intersected
// with any clip already in place.
func (r *Raster) ClipRoundedRect(rc Rect, radius float64) {
	area := rc.Bounds().Intersect(r.img.Bounds())
	if area.Empty() {
		r.clip = &image.Alpha{Rect: area}
		return
	}
	m := r.coverage(area, roundedRectPath(rc, radius, true))
	if r.clip != nil {
		applyClip(m, r.clip, area.Min)
	}
	// Rebase the mask so it is addressed in surface coordinates.
	m.Rect = area
	r.clip = m
}

func (r *Raster) ResetClip() { r.clip = nil }

// DrawImage scales img into the destination rectangle and composites it over the surface.
// An image drawn at its own size is copied without resampling.
func (r *Raster) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	dst := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
	if dst.Empty() {
		return
	}
	if sb := img.Bounds(); dst.Dx() == sb.Dx() && dst.Dy() == sb.Dy() {
		draw.Draw(r.img, dst, img, sb.Min, draw.Over)
		return
	}
	draw.CatmullRom.Scale(r.img, dst, img, img.Bounds(), draw.Over, nil)
}

// Encode writes the surface as PNG.
func (r *Raster) Encode(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("canvas: encode png: %w", err)
	}
	return nil
}
