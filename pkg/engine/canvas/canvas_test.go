package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"runtime"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

func newRaster(t *testing.T, w, h int) *Raster {
	t.Helper()
	r, err := New(w, h, nil)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", w, h, err)
	}
	return r
}

func TestNewRejectsEmptySize(t *testing.T) {
	for _, tc := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := New(tc[0], tc[1], nil); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", tc[0], tc[1], err)
		}
	}
}

func TestNewIsTransparent(t *testing.T) {
	r := newRaster(t, 4, 4)
	if got := r.Image().RGBAAt(2, 2); got != (color.RGBA{}) {
		t.Errorf("fresh pixel = %v, want transparent", got)
	}
	if r.Width() != 4 || r.Height() != 4 {
		t.Errorf("size = %dx%d, want 4x4", r.Width(), r.Height())
	}
}

func TestFillRect(t *testing.T) {
	r := newRaster(t, 20, 20)
	r.FillRect(Rect{X: 5, Y: 5, W: 10, H: 10}, Solid(red))

	if got := r.Image().RGBAAt(10, 10); got != red {
		t.Errorf("inside = %v, want %v", got, red)
	}
	if got := r.Image().RGBAAt(2, 2); got.A != 0 {
		t.Errorf("outside alpha = %d, want 0", got.A)
	}
}

func TestFillRoundedRectLeavesCornersEmpty(t *testing.T) {
	r := newRaster(t, 40, 40)
	r.FillRoundedRect(Rect{X: 0, Y: 0, W: 40, H: 40}, 12, Solid(red))

	if got := r.Image().RGBAAt(0, 0); got.A != 0 {
		t.Errorf("corner alpha = %d, want 0", got.A)
	}
	if got := r.Image().RGBAAt(20, 20); got != red {
		t.Errorf("centre = %v, want %v", got, red)
	}
}

func TestStrokeRoundedRectHollow(t *testing.T) {
	r := newRaster(t, 60, 60)
	r.StrokeRoundedRect(Rect{X: 10, Y: 10, W: 40, H: 40}, 6, 4, Solid(red))

	if got := r.Image().RGBAAt(30, 30); got.A != 0 {
		t.Errorf("interior alpha = %d, want 0", got.A)
	}
	if got := r.Image().RGBAAt(30, 10); got.A == 0 {
		t.Error("top edge not painted")
	}
	if got := r.Image().RGBAAt(30, 3); got.A != 0 {
		t.Errorf("pixel beyond stroke alpha = %d, want 0", got.A)
	}
}

func TestClipRestrictsFills(t *testing.T) {
	r := newRaster(t, 40, 40)
	r.ClipRoundedRect(Rect{X: 0, Y: 0, W: 20, H: 40}, 0)
	r.FillRect(Rect{X: 0, Y: 0, W: 40, H: 40}, Solid(red))

	if got := r.Image().RGBAAt(10, 20); got != red {
		t.Errorf("inside clip = %v, want %v", got, red)
	}
	if got := r.Image().RGBAAt(30, 20); got.A != 0 {
		t.Errorf("outside clip alpha = %d, want 0", got.A)
	}

	r.ResetClip()
	r.FillRect(Rect{X: 0, Y: 0, W: 40, H: 40}, Solid(red))
	if got := r.Image().RGBAAt(30, 20); got != red {
		t.Errorf("after ResetClip = %v, want %v", got, red)
	}
}

func TestLinearGradientEndpoints(t *testing.T) {
	from := color.NRGBA{R: 255, A: 255}
	to := color.NRGBA{B: 255, A: 255}
	g := LinearGradient(0, 0, 100, 0, from, to)

	if got := g.T(-10, 0); got != 0 {
		t.Errorf("T before start = %v, want 0", got)
	}
	if got := g.T(200, 0); got != 1 {
		t.Errorf("T past end = %v, want 1", got)
	}
	if got := g.At(-5, 0); got != from {
		t.Errorf("At start = %v, want %v", got, from)
	}
	if got := g.At(150, 0); got != to {
		t.Errorf("At end = %v, want %v", got, to)
	}
}

func TestDegenerateGradientUsesStartColour(t *testing.T) {
	from := color.NRGBA{G: 200, A: 255}
	g := LinearGradient(5, 5, 5, 5, from, color.NRGBA{A: 255})
	if got := g.At(40, 40); got != from {
		t.Errorf("At = %v, want %v", got, from)
	}
}

func TestMeasureText(t *testing.T) {
	r := newRaster(t, 10, 10)
	spec := FontSpec{Families: []string{"Missing Family", "sans-serif"}, Size: 20}

	if got := r.MeasureText("", spec); got != 0 {
		t.Errorf("MeasureText(\"\") = %v, want 0", got)
	}
	a := r.MeasureText("a", spec)
	ab := r.MeasureText("ab", spec)
	if a <= 0 || ab <= a {
		t.Errorf("MeasureText a = %v, ab = %v; want 0 < a < ab", a, ab)
	}
	if again := r.MeasureText("ab", spec); again != ab {
		t.Errorf("MeasureText not deterministic: %v then %v", ab, again)
	}
	big := r.MeasureText("ab", FontSpec{Families: spec.Families, Size: 40})
	if big <= ab {
		t.Errorf("40px width %v not wider than 20px width %v", big, ab)
	}
	if cjk := r.MeasureText("你", spec); cjk <= 0 {
		t.Errorf("uncovered rune width = %v, want > 0", cjk)
	}
	if r.Err() != nil {
		t.Errorf("Err() = %v", r.Err())
	}
}

func TestDrawTextPaintsNearAnchor(t *testing.T) {
	r := newRaster(t, 200, 60)
	spec := FontSpec{Families: []string{"sans-serif"}, Size: 24, Bold: true}
	r.DrawText("HHHH", 100, 30, spec, Solid(red), AlignCenter, BaselineMiddle)

	var left, right int
	b := r.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r.Image().RGBAAt(x, y).A == 0 {
				continue
			}
			if x < 100 {
				left++
			} else {
				right++
			}
		}
	}
	if left == 0 || right == 0 {
		t.Errorf("centred text painted left=%d right=%d, want both sides", left, right)
	}
}

func TestEncodeRoundTripsSize(t *testing.T) {
	r := newRaster(t, 30, 17)
	r.FillRect(Rect{W: 30, H: 17}, Solid(red))

	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if got := img.Bounds().Size(); got.X != 30 || got.Y != 17 {
		t.Errorf("decoded size = %v, want 30x17", got)
	}
}

func allocatedBy(f func()) uint64 {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	f()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}

func TestTallSurfaceClipAndBackgroundStaySmall(t *testing.T) {
	r := newRaster(t, 800, 20000)
	const limit = 1 << 20

	if n := allocatedBy(func() { r.FillRect(Rect{W: 800, H: 20000}, Solid(red)) }); n > limit {
		t.Errorf("full-surface FillRect allocated %d bytes, want <= %d", n, limit)
	}
	if n := allocatedBy(func() { r.ClipRoundedRect(Rect{X: 560, Y: 19500, W: 200, H: 24}, 12) }); n > limit {
		t.Errorf("ClipRoundedRect(200x24) allocated %d bytes, want <= %d", n, limit)
	}
	r.ResetClip()
}

func TestNestedClipIntersects(t *testing.T) {
	r := newRaster(t, 60, 60)
	r.ClipRoundedRect(Rect{X: 10, Y: 10, W: 30, H: 30}, 0)
	r.ClipRoundedRect(Rect{X: 20, Y: 20, W: 30, H: 30}, 0)
	r.FillRect(Rect{W: 60, H: 60}, Solid(red))

	tests := []struct {
		x, y int
		want bool
	}{
		{25, 25, true},
		{15, 15, false}, // first clip only
		{45, 45, false}, // second clip only
		{5, 5, false},
		{55, 30, false},
	}
	for _, tt := range tests {
		if got := r.Image().RGBAAt(tt.x, tt.y).A != 0; got != tt.want {
			t.Errorf("pixel (%d,%d) painted = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestClipOffSurfaceBlocksFills(t *testing.T) {
	r := newRaster(t, 20, 20)
	r.ClipRoundedRect(Rect{X: 100, Y: 100, W: 10, H: 10}, 2)
	r.FillRoundedRect(Rect{W: 20, H: 20}, 0, Solid(red))
	if got := r.Image().RGBAAt(10, 10); got.A != 0 {
		t.Errorf("fill outside an off-surface clip alpha = %d, want 0", got.A)
	}
}

func TestDrawImageAtNativeSizeCopiesPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				src.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
			} else {
				src.SetRGBA(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	r := newRaster(t, 10, 10)
	r.DrawImage(src, 3, 2, 4, 4)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got, want := r.Image().RGBAAt(x+3, y+2), src.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x+3, y+2, got, want)
			}
		}
	}
}
