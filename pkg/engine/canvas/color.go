package canvas

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// toColorful splits a colour into its straight RGB part and alpha in [0,1].
func toColorful(c color.Color) (colorful.Color, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return colorful.Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
	}, float64(n.A) / 255
}
