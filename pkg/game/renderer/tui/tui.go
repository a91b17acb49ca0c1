// Package tui presents frames in a terminal session: the image goes to a file
// and a coloured summary line goes to the output stream.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"galbubble/pkg/engine/terminal"
	"galbubble/pkg/game/renderer"
)

// TUIPresenter writes each frame to Path and reports it on Out.
type TUIPresenter struct {
	Path string
	Out  io.Writer

	colorAction color.Style
	colorDenied color.Style
	colorItem   color.Style
	colorSubtle color.Style
}

// New creates a presenter writing to path and reporting on stdout.
func New(path string) *TUIPresenter {
	return &TUIPresenter{Path: path, Out: os.Stdout}
}

// Init initializes the colour styles
func (t *TUIPresenter) Init() {
	t.colorAction = color.Style{color.FgMagenta}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorItem = color.Style{color.FgGreen, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
}

// Present writes the PNG to Path and prints a summary.
func (t *TUIPresenter) Present(f renderer.Frame) error {
	if err := os.WriteFile(t.Path, f.PNG, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", t.Path, err)
	}

	size := ""
	if f.Image != nil {
		b := f.Image.Bounds()
		size = fmt.Sprintf(" %dx%d", b.Dx(), b.Dy())
	}

	rule := strings.Repeat("─", min(terminal.Width(os.Stdout), 60))
	fmt.Fprintln(t.Out, t.StyleText(rule, renderer.StyleSubtle))
	fmt.Fprintf(t.Out, "%s %s%s\n",
		t.StyleText(gotext.Get("Wrote"), renderer.StyleAction),
		t.StyleText(t.Path, renderer.StyleItem),
		t.StyleText(size, renderer.StyleSubtle))
	if f.Caption != "" {
		fmt.Fprintln(t.Out, f.Caption)
	}
	return nil
}

// StyleText applies a style to text
func (t *TUIPresenter) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StyleItem:
		return t.colorItem.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	}
	return text
}
