// Command galbubble renders visual-novel style dialogue bubbles as PNG images,
// either once from the command line or as an HTTP/WebSocket service.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/spf13/pflag"

	"galbubble/pkg/engine/canvas"
	"galbubble/pkg/engine/terminal"
	"galbubble/pkg/game/bubble"
	"galbubble/pkg/game/character"
	"galbubble/pkg/game/config"
	"galbubble/pkg/game/devtools"
	"galbubble/pkg/game/renderer"
	ebitenrenderer "galbubble/pkg/game/renderer/ebiten"
	"galbubble/pkg/game/renderer/tui"
)

var (
	version = "dev"
	commit  = "none"
)

// options holds the parsed command line.
type options struct {
	configPath       string
	spriteDir        string
	personality      string
	emotion          string
	favorability     int
	delta            int
	showFavorability bool
	thought          string
	showThought      bool
	output           string
	preview          bool
	serve            bool
	interactive      bool
	sheet            string
	noShadow         bool
	showVersion      bool
	showHelp         bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("galbubble", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var o options
	fs.StringVarP(&o.configPath, "config", "c", "", "Path to a YAML config file")
	fs.StringVar(&o.spriteDir, "sprites", "", "Sprite directory (overrides the config)")
	fs.StringVarP(&o.personality, "personality", "p", "loli", "Personality id or name (loli, ojou, milf, danshi)")
	fs.StringVarP(&o.emotion, "emotion", "e", "auto", "Emotion (happy, sad, angry, think, auto)")
	fs.IntVar(&o.favorability, "favorability", 0, "Favorability value; setting it shows the gauge")
	fs.IntVar(&o.delta, "delta", 0, "Favorability change to annotate next to the gauge")
	fs.BoolVar(&o.showFavorability, "show-favorability", false, "Show the favorability gauge")
	fs.StringVar(&o.thought, "thought", "", "Inner thought shown above the dialogue")
	fs.BoolVar(&o.showThought, "show-thought", false, "Lift a [心理: ...] aside out of the text as the inner thought")
	fs.StringVarP(&o.output, "output", "o", "bubble.png", "Output PNG path, or - for stdout")
	fs.BoolVar(&o.preview, "preview", false, "Open a preview window instead of writing a file")
	fs.BoolVar(&o.serve, "serve", false, "Run the HTTP/WebSocket render service")
	fs.BoolVarP(&o.interactive, "interactive", "i", false, "Read lines from stdin and render one numbered image per line")
	fs.StringVar(&o.sheet, "sheet", "", "Write a contact sheet of every personality and emotion into this directory")
	fs.BoolVar(&o.noShadow, "no-shadow", false, "Disable the sprite shadow")
	fs.BoolVarP(&o.showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&o.showHelp, "help", "h", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if o.showHelp {
		printHelp(fs)
		return 0
	}
	if o.showVersion {
		fmt.Printf("galbubble version %s (commit: %s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if o.spriteDir != "" {
		cfg.SpriteDir = o.spriteDir
	}
	if o.noShadow {
		cfg.SpriteShadow = false
	}

	gotext.Configure(cfg.LocaleDir, cfg.Language, "galbubble")
	renderer.InitColors()

	compositor := bubble.New(cfg.SpriteDir, cfg.FontLibrary(), bubble.WithSpriteShadow(cfg.SpriteShadow))

	if o.serve {
		if err := serve(cfg, compositor); err != nil {
			log.Printf("[Server] %v", err)
			return 1
		}
		return 0
	}

	if o.interactive {
		sess := newSession(compositor, o.output, os.Stdout, o.request("", fs.Changed("favorability")))
		n, err := sess.run(os.Stdin)
		fmt.Printf("%s\n", renderer.ColorSubtle.Sprintf("%d image(s) written", n))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" {
		fmt.Fprintln(os.Stderr, renderer.ColorDenied.Sprint("Error: no text provided"))
		printHelp(fs)
		return 1
	}

	if o.sheet != "" {
		index, err := devtools.SaveContactSheet(o.sheet, compositor, text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("%s %s\n", renderer.ColorAction.Sprint(gotext.Get("Contact sheet")), renderer.ColorItem.Sprint(index))
		return 0
	}

	req := o.request(text, fs.Changed("favorability"))
	s, _, err := compositor.Compose(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	frame, err := newFrame(s, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if o.output == "-" && !o.preview {
		return writeStdout(os.Stdout, frame.PNG)
	}

	if o.preview {
		renderer.SetPresenter(ebitenrenderer.New())
	} else {
		renderer.SetPresenter(tui.New(o.output))
	}
	renderer.Init()
	if err := renderer.Present(frame); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newFrame encodes a composed surface. The caption reports what was actually
// drawn, with aliases and "auto" resolved.
func newFrame(s *canvas.Raster, req bubble.Request) (renderer.Frame, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return renderer.Frame{}, err
	}
	resolved, err := req.Resolve()
	if err != nil {
		return renderer.Frame{}, err
	}
	return renderer.Frame{Image: s.Image(), PNG: buf.Bytes(), Caption: renderer.Caption(resolved)}, nil
}

// request builds the render request from the flags. The gauge is shown when
// asked for explicitly or when a favorability value was given.
func (o options) request(text string, favorabilitySet bool) bubble.Request {
	req := bubble.Request{
		Text:              text,
		Personality:       character.Personality(o.personality),
		Emotion:           character.Emotion(o.emotion),
		ShowFavorability:  o.showFavorability || favorabilitySet,
		FavorabilityDelta: o.delta,
		ShowInnerThought:  o.showThought || o.thought != "",
		InnerThought:      o.thought,
	}
	if req.ShowFavorability {
		req.Favorability = bubble.Int(o.favorability)
	}
	return req
}

// writeStdout writes the image to stdout, refusing when stdout is a terminal.
func writeStdout(f *os.File, data []byte) int {
	if terminal.IsTerminal(f) {
		fmt.Fprintln(os.Stderr, renderer.ColorDenied.Sprint("Error: refusing to write PNG data to a terminal; use -o FILE or redirect stdout"))
		return 1
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printHelp(fs *pflag.FlagSet) {
	fmt.Println(renderer.ColorHeading.Sprint("galbubble") + " - dialogue bubble renderer")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  galbubble [options] <text>")
	fmt.Println("  galbubble -i [options]")
	fmt.Println("  galbubble --serve [--config FILE]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Print(fs.FlagUsages())
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println(`  galbubble -p ojou -e happy "今天的红茶不错。"`)
	fmt.Println(`  galbubble -p loli --favorability 60 --delta 5 -o nana.png "谢谢你！"`)
	fmt.Println(`  galbubble --sheet out "早上好"`)
}
