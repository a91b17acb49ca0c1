package renderer

import (
	"fmt"

	"github.com/gookit/color"

	"galbubble/pkg/game/bubble"
	"galbubble/pkg/game/character"
)

var (
	ColorAction  color.Style
	ColorDenied  color.Style
	ColorItem    color.Style
	ColorSubtle  color.Style
	ColorHeading color.Style
)

// InitColors initializes the color styles used for command-line output
func InitColors() {
	ColorAction = color.Style{color.FgMagenta}
	ColorDenied = color.Style{color.FgRed, color.OpBold}
	ColorItem = color.Style{color.FgGreen, color.OpBold}
	ColorSubtle = color.Style{color.FgGray, color.OpBold}
	ColorHeading = color.Style{color.FgMagenta, color.OpBold}
}

// Caption describes a resolved request in one line, e.g. "奈奈 · 高兴 · 好感 50 (+5)".
func Caption(req bubble.Request) string {
	s := character.DisplayName(req.Personality)
	if label := character.Label(req.Personality, req.Emotion); label != "" {
		s += " · " + label
	}
	if req.HasBar() {
		s += fmt.Sprintf(" · 好感 %d", *req.Favorability)
		if req.FavorabilityDelta > 0 {
			s += fmt.Sprintf(" (+%d)", req.FavorabilityDelta)
		} else if req.FavorabilityDelta < 0 {
			s += fmt.Sprintf(" (%d)", req.FavorabilityDelta)
		}
	}
	return s
}
