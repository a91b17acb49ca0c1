// Package ebiten provides an Ebiten preview window for composed bubbles.
package ebiten

import "image/color"

// Preview palette
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}   // Dark blue-gray behind the frame
	colorPanelBackground = color.RGBA{30, 30, 50, 220}   // Semi-transparent caption pill
	colorPanelBorder     = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorText            = color.RGBA{200, 210, 245, 255}
	colorSubtle          = color.RGBA{120, 130, 180, 255}
)

const (
	captionFontSize = 16
	hintFontSize    = 12
	captionHeight   = 48
	captionPadding  = 12
	captionRadius   = 10
)
