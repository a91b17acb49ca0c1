package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFontSource parses the bundled Go Regular face for captions.
func loadFontSource() (*text.GoTextFaceSource, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load caption font: %w", err)
	}
	return src, nil
}

// captionFace returns a cached face for the caption line
func (e *EbitenPresenter) captionFace() *text.GoTextFace {
	if e.cachedCaptionFace == nil {
		e.cachedCaptionFace = &text.GoTextFace{Source: e.fontSource, Size: captionFontSize}
	}
	return e.cachedCaptionFace
}

// hintFace returns a cached face for the key hint
func (e *EbitenPresenter) hintFace() *text.GoTextFace {
	if e.cachedHintFace == nil {
		e.cachedHintFace = &text.GoTextFace{Source: e.fontSource, Size: hintFontSize}
	}
	return e.cachedHintFace
}
