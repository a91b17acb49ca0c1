// Package layout wraps text greedily, one grapheme cluster at a time, against a
// pixel width budget. Measuring and drawing share Wrap, so a height measured on
// one surface matches the lines later drawn on another with the same font.
package layout

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Measurer reports the advance width of a single line of text.
type Measurer interface {
	MeasureText(s string) float64
}

// Drawer is a Measurer that can also paint a line with its top at y.
type Drawer interface {
	Measurer
	DrawLine(s string, x, y float64)
}

// Wrap splits text into lines no wider than maxWidth where possible. A cluster
// that alone exceeds maxWidth still gets its own line. Line feeds force a break.
// The result always has at least one element.
func Wrap(text string, maxWidth float64, m Measurer) []string {
	var (
		lines []string
		line  strings.Builder
	)
	g := uniseg.NewGraphemes(norm.NFC.String(text))
	for g.Next() {
		cluster := g.Str()
		if isLineFeed(cluster) {
			lines = append(lines, line.String())
			line.Reset()
			continue
		}
		candidate := line.String() + cluster
		if line.Len() > 0 && m.MeasureText(candidate) > maxWidth {
			lines = append(lines, line.String())
			line.Reset()
		}
		line.WriteString(cluster)
	}
	return append(lines, line.String())
}

func isLineFeed(cluster string) bool {
	return cluster == "\n" || cluster == "\r\n" || cluster == "\r"
}

// MeasureHeight returns the height of text wrapped at maxWidth. It is never
// less than one lineHeight.
func MeasureHeight(text string, maxWidth, lineHeight float64, m Measurer) float64 {
	return float64(len(Wrap(text, maxWidth, m))) * lineHeight
}

// DrawWrapped draws text starting at (x, y) and returns the y just below the
// last line.
func DrawWrapped(text string, x, y, maxWidth, lineHeight float64, d Drawer) float64 {
	for _, line := range Wrap(text, maxWidth, d) {
		if line != "" {
			d.DrawLine(line, x, y)
		}
		y += lineHeight
	}
	return y
}
