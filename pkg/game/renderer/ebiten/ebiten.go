package ebiten

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/leonelquinteros/gotext"

	"galbubble/pkg/game/renderer"
)

// EbitenPresenter shows each frame in a window with a caption strip
// underneath. Present blocks until the window is closed.
type EbitenPresenter struct {
	Title string

	fontSource *text.GoTextFaceSource
	fontErr    error

	cachedCaptionFace *text.GoTextFace
	cachedHintFace    *text.GoTextFace

	frame   *ebiten.Image
	caption string
	width   int
	height  int
}

// New creates a new Ebiten presenter
func New() *EbitenPresenter {
	return &EbitenPresenter{Title: "galbubble"}
}

// Init loads the caption font
func (e *EbitenPresenter) Init() {
	e.fontSource, e.fontErr = loadFontSource()
}

// Present opens the preview window for f and returns once it is closed.
func (e *EbitenPresenter) Present(f renderer.Frame) error {
	if e.fontErr != nil {
		return e.fontErr
	}
	if e.fontSource == nil {
		e.Init()
		if e.fontErr != nil {
			return e.fontErr
		}
	}

	img := f.Image
	if img == nil {
		decoded, err := png.Decode(bytes.NewReader(f.PNG))
		if err != nil {
			return fmt.Errorf("decode frame: %w", err)
		}
		img = decoded
	}
	e.setFrame(img, f.Caption)

	ebiten.SetWindowSize(e.width, e.height)
	ebiten.SetWindowTitle(e.Title)
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

func (e *EbitenPresenter) setFrame(img image.Image, caption string) {
	b := img.Bounds()
	e.frame = ebiten.NewImageFromImage(img)
	e.caption = caption
	e.width = b.Dx()
	e.height = b.Dy() + captionHeight
}

// StyleText returns text unchanged; the window draws its own colours.
func (e *EbitenPresenter) StyleText(text string, style renderer.TextStyle) string {
	return text
}

// Update implements ebiten.Game. Esc or Q closes the window.
func (e *EbitenPresenter) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game
func (e *EbitenPresenter) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if e.frame == nil {
		return
	}
	screen.DrawImage(e.frame, &ebiten.DrawImageOptions{})

	top := float32(e.height - captionHeight)
	drawPanel(screen,
		captionPadding/2, top+captionPadding/2,
		float32(e.width)-captionPadding, captionHeight-captionPadding,
		captionRadius, colorPanelBackground, colorPanelBorder)

	face := e.captionFace()
	_, lineH := text.Measure(e.caption, face, 0)
	textY := float64(top) + (captionHeight-lineH)/2
	drawText(screen, e.caption, face, captionPadding*1.5, textY, colorText)

	hint := gotext.Get("Esc to close")
	hf := e.hintFace()
	hw, hh := text.Measure(hint, hf, 0)
	drawText(screen, hint, hf, float64(e.width)-hw-captionPadding*1.5, float64(top)+(captionHeight-hh)/2, colorSubtle)
}

// Layout implements ebiten.Game
func (e *EbitenPresenter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.width, e.height
}
