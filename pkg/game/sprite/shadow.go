package sprite

import (
	"image"
	"image/color"
)

// Shadow returns a soft silhouette of img in colour c, grown by blur pixels on
// every side. Draw it at the sprite position minus the returned padding.
// The blur approximates a Gaussian with sigma blur/2 using three box passes.
func Shadow(img image.Image, blur int, c color.NRGBA) (*image.NRGBA, int) {
	b := img.Bounds()
	pad := max(blur, 0)
	w, h := b.Dx()+2*pad, b.Dy()+2*pad

	a := make([]int32, w*h)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			_, _, _, al := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			a[(y+pad)*w+x+pad] = int32(al >> 8 << 8)
		}
	}

	if r := blur / 2; r > 0 {
		tmp := make([]int32, len(a))
		for i := 0; i < 3; i++ {
			boxBlur(a, tmp, w, h, r)
		}
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, v := range a {
		p := out.Pix[i*4 : i*4+4]
		p[0], p[1], p[2] = c.R, c.G, c.B
		p[3] = uint8((v >> 8) * int32(c.A) / 255)
	}
	return out, pad
}

// boxBlur runs one horizontal and one vertical box pass of radius r over a.
func boxBlur(a, tmp []int32, w, h, r int) {
	d := int32(2*r + 1)
	for y := 0; y < h; y++ {
		row := a[y*w : (y+1)*w]
		var sum int32
		for x := 0; x <= r && x < w; x++ {
			sum += row[x]
		}
		for x := 0; x < w; x++ {
			tmp[y*w+x] = sum / d
			if out := x - r; out >= 0 {
				sum -= row[out]
			}
			if in := x + r + 1; in < w {
				sum += row[in]
			}
		}
	}
	for x := 0; x < w; x++ {
		var sum int32
		for y := 0; y <= r && y < h; y++ {
			sum += tmp[y*w+x]
		}
		for y := 0; y < h; y++ {
			a[y*w+x] = sum / d
			if out := y - r; out >= 0 {
				sum -= tmp[out*w+x]
			}
			if in := y + r + 1; in < h {
				sum += tmp[in*w+x]
			}
		}
	}
}
