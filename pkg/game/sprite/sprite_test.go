package sprite

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sprite.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return path
}

func TestKeyThreshold(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 1))
	pixels := []color.NRGBA{
		{250, 250, 250, 255}, // backdrop
		{246, 246, 246, 255}, // just over on every channel
		{245, 250, 250, 255}, // red at threshold
		{250, 250, 245, 255}, // blue at threshold
		{10, 20, 30, 128},    // translucent foreground
	}
	for x, c := range pixels {
		src.SetNRGBA(x, 0, c)
	}

	k, err := Key(writePNG(t, src), 5, 1)
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	want := []uint8{0, 0, 255, 255, 128}
	for x, a := range want {
		if got := k.Image.RGBAAt(x, 0).A; got != a {
			t.Errorf("pixel %d alpha = %d, want %d", x, got, a)
		}
	}
}

func TestKeyPreservesAspectRatio(t *testing.T) {
	sizes := [][2]int{{300, 600}, {800, 200}, {123, 457}}
	bounds := [][2]float64{{600, 570}, {100, 100}, {1000, 30}}
	for _, s := range sizes {
		src := image.NewNRGBA(image.Rect(0, 0, s[0], s[1]))
		for _, b := range bounds {
			k, err := FromImage(src, b[0], b[1])
			if err != nil {
				t.Fatalf("FromImage() error = %v", err)
			}
			if k.Width > b[0]+1e-9 || k.Height > b[1]+1e-9 {
				t.Errorf("%v in %v: size %vx%v exceeds bound", s, b, k.Width, k.Height)
			}
			got := k.Width / k.Height
			want := float64(s[0]) / float64(s[1])
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("%v in %v: ratio %v, want %v", s, b, got, want)
			}
		}
	}
}

func TestKeyUpscalesSmallSprites(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 20))
	k, err := FromImage(src, 600, 570)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if k.Width != 285 || k.Height != 570 {
		t.Errorf("size = %vx%v, want 285x570", k.Width, k.Height)
	}
}

func TestKeyErrors(t *testing.T) {
	if _, err := Key(filepath.Join(t.TempDir(), "missing.png"), 10, 10); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file error = %v, want fs.ErrNotExist", err)
	}

	garbage := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(garbage, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Key(garbage, 10, 10); err == nil {
		t.Error("Key(garbage) expected error")
	}

	if _, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 10)), 10, 10); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("empty image error = %v, want ErrEmptyImage", err)
	}
}

func TestKeyDoesNotTouchSource(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	if _, err := FromImage(src, 1, 1); err != nil {
		t.Fatal(err)
	}
	if got := src.NRGBAAt(0, 0).A; got != 255 {
		t.Errorf("source alpha = %d, want 255", got)
	}
}

func TestFit(t *testing.T) {
	k := &Keyed{Image: image.NewRGBA(image.Rect(0, 0, 40, 80)), Width: 20.4, Height: 40.6}
	if got := k.Fit().Bounds().Size(); got != (image.Point{X: 20, Y: 41}) {
		t.Errorf("Fit() size = %v, want (20,41)", got)
	}
}

func TestShadow(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			src.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	sh, pad := Shadow(src, 10, color.NRGBA{A: 26})
	if pad != 10 {
		t.Errorf("pad = %d, want 10", pad)
	}
	if got := sh.Bounds().Size(); got != (image.Point{X: 40, Y: 40}) {
		t.Errorf("size = %v, want 40x40", got)
	}
	centre := sh.NRGBAAt(20, 20).A
	if centre == 0 || centre > 26 {
		t.Errorf("centre alpha = %d, want in (0, 26]", centre)
	}
	if got := sh.NRGBAAt(0, 0).A; got != 0 {
		t.Errorf("corner alpha = %d, want 0", got)
	}
	if edge := sh.NRGBAAt(13, 20).A; edge == 0 || edge >= centre {
		t.Errorf("blurred edge alpha = %d, want between 0 and centre %d", edge, centre)
	}
}
