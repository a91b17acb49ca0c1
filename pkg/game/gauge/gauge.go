// Package gauge draws the two-sided favorability bar.
package gauge

import (
	"image/color"
	"strconv"

	"galbubble/pkg/engine/canvas"
)

const (
	Min = -100
	Max = 100
)

// Fixed colours of the gauge; only the positive fill follows the character style.
var (
	colorTrack         = color.NRGBA{0, 0, 0, 128}       // rgba(0,0,0,0.5)
	colorNegativeInner = color.NRGBA{139, 0, 0, 255}     // #8B0000 at the midpoint
	colorNegativeOuter = color.NRGBA{255, 0, 0, 255}     // #FF0000 at the fill edge
	colorDivider       = color.NRGBA{245, 245, 245, 255} // #F5F5F5
	colorLabel         = color.NRGBA{255, 255, 255, 255}
	colorLabelShadow   = color.NRGBA{0, 0, 0, 255}
	ColorDeltaUp       = color.NRGBA{255, 105, 180, 255} // #FF69B4
	ColorDeltaDown     = color.NRGBA{176, 196, 222, 255} // #B0C4DE
)

// Bar is the track rectangle.
type Bar struct {
	X, Y, W, H float64
}

// Style carries the character-specific parts of the gauge.
type Style struct {
	Start color.Color
	End   color.Color
	Fonts []string
}

// Clamp limits v to [Min, Max].
func Clamp(v int) int {
	return max(Min, min(Max, v))
}

// Midpoint is the x of the zero mark.
func (b Bar) Midpoint() float64 {
	return b.X + b.W/2
}

// FillSpan returns the left edge and width of the fill for value v. The fill
// always touches the midpoint and never crosses it.
func (b Bar) FillSpan(v int) (start, width float64) {
	v = Clamp(v)
	mid := b.Midpoint()
	width = float64(abs(v)) / Max * (b.W / 2)
	if v < 0 {
		return mid - width, width
	}
	return mid, width
}

// DeltaText formats a change with an explicit sign. It returns "" for zero.
func DeltaText(delta int) string {
	switch {
	case delta > 0:
		return "+" + strconv.Itoa(delta)
	case delta < 0:
		return strconv.Itoa(delta)
	}
	return ""
}

// DeltaColor returns the annotation colour for a change.
func DeltaColor(delta int) color.Color {
	if delta > 0 {
		return ColorDeltaUp
	}
	return ColorDeltaDown
}

// Draw renders the gauge for value with an optional delta annotation
// (zero means none). Out-of-range values are clamped.
func Draw(s canvas.Surface, b Bar, value, delta int, style Style) {
	value = Clamp(value)
	track := canvas.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
	radius := b.H / 2
	mid := b.Midpoint()

	s.FillRoundedRect(track, radius, canvas.Solid(colorTrack))

	s.ClipRoundedRect(track, radius)
	start, width := b.FillSpan(value)
	switch {
	case value > 0:
		paint := canvas.LinearGradient(mid, b.Y, mid+width, b.Y, style.Start, style.End)
		s.FillRect(canvas.Rect{X: start, Y: b.Y, W: width, H: b.H}, paint)
	case value < 0:
		paint := canvas.LinearGradient(mid, b.Y, mid-width, b.Y, colorNegativeInner, colorNegativeOuter)
		s.FillRect(canvas.Rect{X: start, Y: b.Y, W: width, H: b.H}, paint)
	}
	s.ResetClip()

	s.FillRect(canvas.Rect{X: mid - 1, Y: b.Y, W: 2, H: b.H}, canvas.Solid(colorDivider))

	label := strconv.Itoa(value)
	labelFont := canvas.FontSpec{Families: style.Fonts, Size: 16, Bold: true}
	s.DrawText(label, mid+1, b.Y+b.H/2+1, labelFont, canvas.Solid(colorLabelShadow), canvas.AlignCenter, canvas.BaselineMiddle)
	s.DrawText(label, mid, b.Y+b.H/2, labelFont, canvas.Solid(colorLabel), canvas.AlignCenter, canvas.BaselineMiddle)

	if text := DeltaText(delta); text != "" {
		deltaFont := canvas.FontSpec{Families: style.Fonts, Size: 20, Bold: true}
		s.DrawText(text, b.X+b.W+5, b.Y-5, deltaFont, canvas.Solid(DeltaColor(delta)), canvas.AlignRight, canvas.BaselineMiddle)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
