package canvas

import (
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type glyph struct {
	face font.Face
	r    rune
	kern fixed.Int26_6
	adv  fixed.Int26_6
}

// faceChain returns the faces for a spec, primary first.
func (r *Raster) faceChain(spec FontSpec) []font.Face {
	key := fmt.Sprintf("%s|%g|%t|%t", strings.Join(spec.Families, ","), spec.Size, spec.Bold, spec.Italic)
	if fs, ok := r.faces[key]; ok {
		return fs
	}

	fonts, err := r.fonts.Resolve(spec)
	if err != nil {
		r.fail(err)
		return nil
	}
	fs := make([]font.Face, 0, len(fonts))
	for _, f := range fonts {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    spec.Size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			r.fail(fmt.Errorf("canvas: face %gpx: %w", spec.Size, err))
			return nil
		}
		fs = append(fs, face)
	}
	r.faces[key] = fs
	return fs
}

// shape assigns each rune the first face that has it. Runes no face covers
// keep the primary face so their .notdef advance still counts toward width.
func shape(faces []font.Face, s string) ([]glyph, fixed.Int26_6) {
	var (
		out   = make([]glyph, 0, len(s))
		total fixed.Int26_6
		prev  glyph
	)
	for i, ch := range []rune(s) {
		g := glyph{face: faces[0], r: ch}
		found := false
		for _, f := range faces {
			if adv, ok := f.GlyphAdvance(ch); ok {
				g.face, g.adv, found = f, adv, true
				break
			}
		}
		if !found {
			g.adv, _ = faces[0].GlyphAdvance(ch)
		}
		if i > 0 && prev.face == g.face {
			g.kern = g.face.Kern(prev.r, ch)
		}
		total += g.kern + g.adv
		out = append(out, g)
		prev = g
	}
	return out, total
}

// MeasureText returns the advance width of s in pixels.
func (r *Raster) MeasureText(s string, spec FontSpec) float64 {
	if s == "" {
		return 0
	}
	faces := r.faceChain(spec)
	if len(faces) == 0 {
		return 0
	}
	_, w := shape(faces, s)
	return float64(w) / 64
}

// DrawText renders a single line with no wrapping.
func (r *Raster) DrawText(s string, x, y float64, spec FontSpec, paint image.Image, align Align, baseline Baseline) {
	if s == "" || paint == nil {
		return
	}
	faces := r.faceChain(spec)
	if len(faces) == 0 {
		return
	}
	glyphs, width := shape(faces, s)

	switch align {
	case AlignCenter:
		x -= float64(width) / 128
	case AlignRight:
		x -= float64(width) / 64
	}

	m := faces[0].Metrics()
	ascent, descent := float64(m.Ascent)/64, float64(m.Descent)/64
	switch baseline {
	case BaselineTop:
		y += ascent
	case BaselineMiddle:
		y += (ascent - descent) / 2
	}

	dot := fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
	for _, g := range glyphs {
		dot.X += g.kern
		dr, mask, maskp, adv, _ := g.face.Glyph(dot, g.r)
		if mask != nil && !dr.Empty() {
			draw.DrawMask(r.img, dr, paint, dr.Min, mask, maskp, draw.Over)
		}
		dot.X += adv
	}
}
