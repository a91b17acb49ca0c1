// Package bubble composes the dialogue-bubble image: backdrop, character
// sprite, dialogue box, name tag, wrapped text and the favorability gauge.
//
// A Compositor holds only read-only configuration and a shared font library,
// so Render may be called from many goroutines at once. Each call draws on its
// own surface.
package bubble

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"galbubble/pkg/engine/canvas"
	"galbubble/pkg/engine/layout"
	"galbubble/pkg/game/character"
	"galbubble/pkg/game/gauge"
	"galbubble/pkg/game/sprite"
)

var (
	ErrUnknownPersonality = character.ErrUnknownPersonality
	ErrUnknownEmotion     = character.ErrUnknownEmotion
)

var (
	colorName         = color.NRGBA{255, 255, 255, 255}
	colorSpriteShadow = color.NRGBA{0, 0, 0, 26} // rgba(0,0,0,0.1)
)

// Compositor renders requests against a sprite directory and font library.
type Compositor struct {
	spriteDir string
	fonts     *canvas.FontLibrary
	logger    *log.Logger
	shadow    bool
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithLogger sets where warnings go. The default is log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSpriteShadow toggles the soft shadow under the character. It is on by default.
func WithSpriteShadow(on bool) Option {
	return func(c *Compositor) { c.shadow = on }
}

// New creates a Compositor. fonts may be nil to use only the bundled fonts.
func New(spriteDir string, fonts *canvas.FontLibrary, opts ...Option) *Compositor {
	if fonts == nil {
		fonts = canvas.NewFontLibrary(nil, 0)
	}
	c := &Compositor{
		spriteDir: spriteDir,
		fonts:     fonts,
		logger:    log.Default(),
		shadow:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SpriteDir is the base directory sprites are resolved against.
func (c *Compositor) SpriteDir() string { return c.spriteDir }

// Render composes req and returns it PNG-encoded.
func (c *Compositor) Render(req Request) ([]byte, error) {
	s, _, err := c.Compose(req)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return nil, fmt.Errorf("bubble: %w", err)
	}
	return buf.Bytes(), nil
}

// Compose draws req onto a fresh surface and returns it with its metrics.
func (c *Compositor) Compose(req Request) (*canvas.Raster, Metrics, error) {
	req, err := req.Resolve()
	if err != nil {
		return nil, Metrics{}, fmt.Errorf("bubble: %w", err)
	}
	prof, _ := character.Lookup(req.Personality)
	style := prof.Style

	scratch, err := canvas.New(1, 1, c.fonts)
	if err != nil {
		return nil, Metrics{}, fmt.Errorf("bubble: scratch surface: %w", err)
	}
	m := ComputeMetrics(req, scratch, style.Fonts)
	if err := scratch.Err(); err != nil {
		return nil, Metrics{}, fmt.Errorf("bubble: measure: %w", err)
	}

	s, err := canvas.New(m.Width, m.Height, c.fonts)
	if err != nil {
		return nil, Metrics{}, fmt.Errorf("bubble: surface: %w", err)
	}

	c.drawBackground(s, style)
	c.drawSprite(s, req)
	c.drawBox(s, m, style, character.DisplayName(req.Personality))
	c.drawText(s, req, m, style)
	if req.HasBar() {
		bar := gauge.Bar{X: float64(m.Width - barRight), Y: m.BoxTop - barRise, W: barWidth, H: barHeight}
		gauge.Draw(s, bar, *req.Favorability, req.FavorabilityDelta, gauge.Style{
			Start: style.BarStart,
			End:   style.BarEnd,
			Fonts: style.Fonts,
		})
	}

	if err := s.Err(); err != nil {
		return nil, Metrics{}, fmt.Errorf("bubble: draw: %w", err)
	}
	return s, m, nil
}

func (c *Compositor) drawBackground(s canvas.Surface, style character.Style) {
	h := float64(s.Height())
	paint := canvas.LinearGradient(0, 0, 0, h, style.BgTop, style.BgBottom)
	s.FillRect(canvas.Rect{W: float64(s.Width()), H: h}, paint)
}

// drawSprite places the character against the base canvas, not the grown one,
// so it neither stretches nor drops when the box grows.
func (c *Compositor) drawSprite(s canvas.Surface, req Request) {
	path := character.SpritePath(c.spriteDir, req.Personality, req.Emotion)
	k, err := sprite.Key(path, BaseWidth*0.75, BaseHeight*0.95)
	if err != nil {
		c.logger.Printf("[Bubble] Sprite skipped for %s/%s: %v", req.Personality, req.Emotion, err)
		return
	}

	// Fit has already scaled the sprite, so it is placed whole-pixel at its own size.
	img := k.Fit()
	x := math.Round((BaseWidth-k.Width)/2 + spriteOffsetX)
	y := math.Round(BaseHeight - k.Height)
	if c.shadow {
		sh, pad := sprite.Shadow(img, spriteShadow, colorSpriteShadow)
		b := sh.Bounds()
		s.DrawImage(sh, x-float64(pad), y-float64(pad), float64(b.Dx()), float64(b.Dy()))
	}
	b := img.Bounds()
	s.DrawImage(img, x, y, float64(b.Dx()), float64(b.Dy()))
}

func (c *Compositor) drawBox(s canvas.Surface, m Metrics, style character.Style, name string) {
	box := canvas.Rect{X: boxMargin, Y: m.BoxTop, W: float64(m.Width - 2*boxMargin), H: m.BoxHeight}
	s.FillRoundedRect(box, boxRadius, canvas.Solid(style.BoxFill))
	s.StrokeRoundedRect(box, boxRadius, boxBorderWidth, canvas.Solid(style.BoxBorder))

	tag := canvas.Rect{X: boxMargin, Y: m.BoxTop - tagRise, W: tagWidth, H: tagHeight}
	s.FillRoundedRect(tag, tagRadius, canvas.Solid(style.BoxBorder))
	s.DrawText(name, tag.X+tag.W/2, tag.Y+tag.H/2,
		canvas.FontSpec{Families: style.Fonts, Size: nameSize, Bold: true},
		canvas.Solid(colorName), canvas.AlignCenter, canvas.BaselineMiddle)
}

func (c *Compositor) drawText(s canvas.Surface, req Request, m Metrics, style character.Style) {
	x := float64(boxMargin + boxPadding)
	y := m.BoxTop + textTopOffset

	if thought := req.ThoughtLine(); thought != "" {
		run := textRun{s: s, font: thoughtFont(style.Fonts), paint: canvas.Solid(style.TextSub)}
		y = layout.DrawWrapped(thought, x, y, MaxTextWidth, thoughtLineHeight, run)
		y += thoughtSpacing
	}

	run := textRun{s: s, font: mainFont(style.Fonts), paint: canvas.Solid(style.TextMain)}
	layout.DrawWrapped(req.Text, x, y, MaxTextWidth, mainLineHeight, run)
}

// textRun draws left-aligned, top-anchored lines in one font and paint.
type textRun struct {
	s     canvas.Surface
	font  canvas.FontSpec
	paint image.Image
}

func (t textRun) MeasureText(str string) float64 { return t.s.MeasureText(str, t.font) }

func (t textRun) DrawLine(str string, x, y float64) {
	t.s.DrawText(str, x, y, t.font, t.paint, canvas.AlignLeft, canvas.BaselineTop)
}
