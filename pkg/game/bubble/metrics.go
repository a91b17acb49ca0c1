package bubble

import (
	"math"

	"galbubble/pkg/engine/canvas"
	"galbubble/pkg/engine/layout"
)

const (
	BaseWidth    = 800
	BaseHeight   = 600
	MinBoxHeight = 220

	boxMargin      = 20
	boxPadding     = 30
	boxExtra       = 70
	boxRadius      = 15
	boxBorderWidth = 4
	textTopOffset  = 35

	mainFontSize      = 26
	mainLineHeight    = 34
	thoughtFontSize   = 20
	thoughtLineHeight = 28
	thoughtSpacing    = 10

	tagWidth  = 140
	tagHeight = 40
	tagRise   = 30
	tagRadius = 5
	nameSize  = 22

	barWidth  = 200
	barHeight = 24
	barRight  = 240
	barRise   = 35

	spriteOffsetX = 120
	spriteShadow  = 10
)

// MaxTextWidth is the wrap width inside the dialogue box.
const MaxTextWidth = BaseWidth - 2*boxMargin - 2*boxPadding

// Metrics are the sizes derived from a request before anything is drawn.
type Metrics struct {
	TextHeight float64
	BoxHeight  float64
	Width      int
	Height     int
	BoxTop     float64
}

// Measurer measures a single line of text in a font.
type Measurer interface {
	MeasureText(s string, f canvas.FontSpec) float64
}

// fontMeasurer binds a Measurer to one font for the layout engine.
type fontMeasurer struct {
	m    Measurer
	font canvas.FontSpec
}

func (f fontMeasurer) MeasureText(s string) float64 { return f.m.MeasureText(s, f.font) }

func mainFont(families []string) canvas.FontSpec {
	return canvas.FontSpec{Families: families, Size: mainFontSize}
}

func thoughtFont(families []string) canvas.FontSpec {
	return canvas.FontSpec{Families: families, Size: thoughtFontSize, Italic: true}
}

// ComputeMetrics pre-measures the text of req to size the box and canvas.
// The box grows downward only; its top stays where a minimum box would put it.
func ComputeMetrics(req Request, m Measurer, families []string) Metrics {
	var textHeight float64
	if thought := req.ThoughtLine(); thought != "" {
		textHeight += layout.MeasureHeight(thought, MaxTextWidth, thoughtLineHeight, fontMeasurer{m, thoughtFont(families)})
		textHeight += thoughtSpacing
	}
	textHeight += layout.MeasureHeight(req.Text, MaxTextWidth, mainLineHeight, fontMeasurer{m, mainFont(families)})

	boxHeight := math.Max(MinBoxHeight, textHeight+boxExtra)
	height := BaseHeight + int(math.Ceil(boxHeight-MinBoxHeight))
	return Metrics{
		TextHeight: textHeight,
		BoxHeight:  boxHeight,
		Width:      BaseWidth,
		Height:     height,
		BoxTop:     float64(height) - boxHeight - boxMargin,
	}
}
