package canvas

import "golang.org/x/image/vector"

// kappa places cubic control points so a quarter curve approximates a circular arc.
const kappa = 0.5522847498

// appendRoundedRect adds a rounded rectangle to the rasterizer. (x, y) is top-left in
// rasterizer space; w, h are size; r is corner radius. A clockwise rectangle combined with
// a counter-clockwise one inside it leaves a hole, which is how strokes are built.
func appendRoundedRect(z *vector.Rasterizer, x, y, w, h, r float32, clockwise bool) {
	if w <= 0 || h <= 0 {
		return
	}
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	if r <= 0 {
		z.MoveTo(x, y)
		if clockwise {
			z.LineTo(x+w, y)
			z.LineTo(x+w, y+h)
			z.LineTo(x, y+h)
		} else {
			z.LineTo(x, y+h)
			z.LineTo(x+w, y+h)
			z.LineTo(x+w, y)
		}
		z.ClosePath()
		return
	}

	k := float32(kappa) * r
	if clockwise {
		z.MoveTo(x+r, y)
		z.LineTo(x+w-r, y)
		z.CubeTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
		z.LineTo(x+w, y+h-r)
		z.CubeTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
		z.LineTo(x+r, y+h)
		z.CubeTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
		z.LineTo(x, y+r)
		z.CubeTo(x, y+r-k, x+r-k, y, x+r, y)
	} else {
		z.MoveTo(x+r, y)
		z.CubeTo(x+r-k, y, x, y+r-k, x, y+r)
		z.LineTo(x, y+h-r)
		z.CubeTo(x, y+h-r+k, x+r-k, y+h, x+r, y+h)
		z.LineTo(x+w-r, y+h)
		z.CubeTo(x+w-r+k, y+h, x+w, y+h-r+k, x+w, y+h-r)
		z.LineTo(x+w, y+r)
		z.CubeTo(x+w, y+r-k, x+w-r+k, y, x+w-r, y)
	}
	z.ClosePath()
}
