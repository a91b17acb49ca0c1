package bubble

import (
	"fmt"

	"galbubble/pkg/game/character"
)

// Request is everything one render needs. It is treated as immutable.
type Request struct {
	Text              string                `json:"text"`
	Emotion           character.Emotion     `json:"emotion"`
	Personality       character.Personality `json:"personality"`
	ShowFavorability  bool                  `json:"showFavorability,omitempty"`
	Favorability      *int                  `json:"favorability,omitempty"`
	FavorabilityDelta int                   `json:"favorabilityDelta,omitempty"`
	ShowInnerThought  bool                  `json:"showInnerThought,omitempty"`
	InnerThought      string                `json:"innerThought,omitempty"`
}

// Resolve returns a copy of r with aliases mapped to canonical ids. An "auto"
// emotion is derived from the full text, then, when inner thoughts are enabled
// but none was given, a "[心理: ...]" aside is lifted out of the text.
func (r Request) Resolve() (Request, error) {
	p, err := character.ParsePersonality(string(r.Personality))
	if err != nil {
		return Request{}, err
	}
	r.Personality = p

	e, err := character.ParseEmotion(string(r.Emotion))
	if err != nil {
		return Request{}, err
	}
	// Detection sees the aside too, so a thought can set the mood.
	if e == character.Auto {
		e = character.DetectEmotion(r.Text)
	}
	r.Emotion = e

	if r.ShowInnerThought && r.InnerThought == "" {
		r.Text, r.InnerThought = character.SplitInnerThought(r.Text)
	}
	return r, nil
}

// ThoughtLine is the decorated inner thought, or "" when none is shown.
func (r Request) ThoughtLine() string {
	if !r.ShowInnerThought || r.InnerThought == "" {
		return ""
	}
	return fmt.Sprintf("(💭 %s)", r.InnerThought)
}

// HasBar reports whether the favorability gauge is drawn.
func (r Request) HasBar() bool {
	return r.ShowFavorability && r.Favorability != nil
}

// Int is a convenience for filling Request.Favorability.
func Int(v int) *int { return &v }
