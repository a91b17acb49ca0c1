package renderer

import (
	"errors"
	"image"
)

// ErrNoPresenter is returned by Present when no presenter has been set.
var ErrNoPresenter = errors.New("renderer: no presenter set")

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleAction
	StyleDenied
	StyleSubtle
	StyleItem
)

// Frame is one composed bubble ready to be shown.
type Frame struct {
	Image   image.Image
	PNG     []byte
	Caption string
}

// Presenter defines the interface for output backends.
// Implementations include the terminal summary writer and the Ebiten preview window.
type Presenter interface {
	// Init prepares the presenter (colours, window, etc.)
	Init()

	// Present shows or stores one frame. It may block until the user dismisses it.
	Present(f Frame) error

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string
}

// Current holds the active presenter instance
var Current Presenter

// SetPresenter sets the active presenter
func SetPresenter(p Presenter) {
	Current = p
}

// Init initializes the current presenter
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// Present hands a frame to the current presenter
func Present(f Frame) error {
	if Current == nil {
		return ErrNoPresenter
	}
	return Current.Present(f)
}
