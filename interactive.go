package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"galbubble/pkg/engine/input"
	"galbubble/pkg/game/bubble"
	"galbubble/pkg/game/character"
	"galbubble/pkg/game/renderer"
	"galbubble/pkg/game/renderer/tui"
)

// session renders one bubble per typed line, numbering the output files.
// Lines starting with "/" change the speaker state instead:
//
//	/p NAME    switch personality
//	/e EMOTION switch emotion (or "auto")
//	/f N       set favorability; the change from the last value is shown
//	/t TEXT    inner thought for the next line
//	/q         quit
type session struct {
	compositor *bubble.Compositor
	presenter  *tui.TUIPresenter
	out        io.Writer

	stem string
	ext  string
	n    int

	req  bubble.Request
	lift bool
}

func newSession(c *bubble.Compositor, output string, out io.Writer, base bubble.Request) *session {
	ext := filepath.Ext(output)
	if ext == "" {
		ext = ".png"
	}
	p := tui.New("")
	p.Out = out
	p.Init()
	return &session{
		compositor: c,
		presenter:  p,
		out:        out,
		stem:       strings.TrimSuffix(output, filepath.Ext(output)),
		ext:        ext,
		req:        base,
		lift:       base.ShowInnerThought && base.InnerThought == "",
	}
}

// run reads lines until EOF or /q and returns the number of images written.
func (s *session) run(in io.Reader) (int, error) {
	lines := input.NewLineReader(in, s.out, "> ")
	for {
		line, err := lines.ReadLine()
		if errors.Is(err, io.EOF) {
			return s.n, nil
		}
		if err != nil {
			return s.n, err
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "/q":
			return s.n, nil
		case strings.HasPrefix(line, "/"):
			if err := s.command(line); err != nil {
				fmt.Fprintln(s.out, s.presenter.StyleText(err.Error(), renderer.StyleDenied))
			}
			continue
		}

		if err := s.say(line); err != nil {
			fmt.Fprintln(s.out, s.presenter.StyleText(err.Error(), renderer.StyleDenied))
		}
	}
}

func (s *session) command(line string) error {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/p":
		p, err := character.ParsePersonality(arg)
		if err != nil {
			return err
		}
		s.req.Personality = p
	case "/e":
		e, err := character.ParseEmotion(arg)
		if err != nil {
			return err
		}
		s.req.Emotion = e
	case "/f":
		v, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("favorability: %w", err)
		}
		s.req.FavorabilityDelta = 0
		if s.req.Favorability != nil {
			s.req.FavorabilityDelta = v - *s.req.Favorability
		}
		s.req.Favorability = bubble.Int(v)
		s.req.ShowFavorability = true
	case "/t":
		s.req.InnerThought = arg
		s.req.ShowInnerThought = arg != "" || s.lift
	default:
		return fmt.Errorf("unknown command %s", name)
	}
	return nil
}

func (s *session) say(text string) error {
	req := s.req
	req.Text = text

	img, _, err := s.compositor.Compose(req)
	if err != nil {
		return err
	}
	frame, err := newFrame(img, req)
	if err != nil {
		return err
	}

	s.presenter.Path = fmt.Sprintf("%s-%03d%s", s.stem, s.n+1, s.ext)
	if err := s.presenter.Present(frame); err != nil {
		return err
	}
	s.n++

	// The thought and the delta belong to the line they were set for.
	s.req.InnerThought = ""
	s.req.ShowInnerThought = s.lift
	s.req.FavorabilityDelta = 0
	return nil
}
