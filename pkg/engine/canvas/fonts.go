package canvas

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/zyedidia/generic/cache"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFontCacheSize bounds the number of parsed font files kept in memory.
const DefaultFontCacheSize = 16

// FontFiles maps the four style variants of a family to font files on disk.
// Missing variants fall back to Regular.
type FontFiles struct {
	Regular    string `yaml:"regular"`
	Bold       string `yaml:"bold"`
	Italic     string `yaml:"italic"`
	BoldItalic string `yaml:"bold_italic"`
}

func (f FontFiles) pick(bold, italic bool) string {
	switch {
	case bold && italic && f.BoldItalic != "":
		return f.BoldItalic
	case bold && f.Bold != "":
		return f.Bold
	case italic && f.Italic != "":
		return f.Italic
	}
	return f.Regular
}

// genericFamilies always resolve to the bundled Go fonts.
var genericFamilies = map[string]bool{
	"sans-serif": true,
	"serif":      true,
	"monospace":  true,
	"system-ui":  true,
}

// FontLibrary resolves family stacks to parsed fonts. Parsed fonts are shared
// across surfaces; faces are not, since a face carries per-use glyph buffers.
type FontLibrary struct {
	families map[string]FontFiles

	mu     sync.Mutex
	parsed *cache.Cache[string, *opentype.Font]
	failed map[string]bool
}

// NewFontLibrary creates a library over the given family table. Family names are
// matched case-insensitively.
func NewFontLibrary(families map[string]FontFiles, cacheSize int) *FontLibrary {
	if cacheSize <= 0 {
		cacheSize = DefaultFontCacheSize
	}
	l := &FontLibrary{
		families: make(map[string]FontFiles, len(families)),
		parsed:   cache.New[string, *opentype.Font](cacheSize),
		failed:   make(map[string]bool),
	}
	for name, files := range families {
		l.families[strings.ToLower(strings.TrimSpace(name))] = files
	}
	return l
}

// Resolve returns the fonts for a spec in priority order. Families that are not
// configured or fail to load are skipped; the bundled Go font for the requested
// style is appended last so every rune has somewhere to land.
func (l *FontLibrary) Resolve(spec FontSpec) ([]*opentype.Font, error) {
	var (
		out  []*opentype.Font
		seen = make(map[string]bool)
	)
	add := func(key string, load func() (*opentype.Font, error)) error {
		if seen[key] {
			return nil
		}
		seen[key] = true
		f, err := l.load(key, load)
		if err != nil {
			return err
		}
		if f != nil {
			out = append(out, f)
		}
		return nil
	}

	for _, family := range spec.Families {
		name := strings.ToLower(strings.TrimSpace(family))
		if genericFamilies[name] {
			continue
		}
		files, ok := l.families[name]
		if !ok {
			continue
		}
		path := files.pick(spec.Bold, spec.Italic)
		if path == "" {
			continue
		}
		// Unreadable files are logged once and skipped.
		_ = add(path, func() (*opentype.Font, error) { return parseFile(path) })
	}

	key, data := goFont(spec.Bold, spec.Italic)
	if err := add(key, func() (*opentype.Font, error) { return opentype.Parse(data) }); err != nil {
		return nil, fmt.Errorf("canvas: bundled font %s: %w", key, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("canvas: no usable font for %v", spec.Families)
	}
	return out, nil
}

func (l *FontLibrary) load(key string, load func() (*opentype.Font, error)) (*opentype.Font, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if f, ok := l.parsed.Get(key); ok {
		return f, nil
	}
	if l.failed[key] {
		return nil, nil
	}
	f, err := load()
	if err != nil {
		if strings.HasPrefix(key, "go:") {
			return nil, err
		}
		log.Printf("[Fonts] Skipping %s: %v", key, err)
		l.failed[key] = true
		return nil, nil
	}
	l.parsed.Put(key, f)
	return f, nil
}

func parseFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if f, err := opentype.Parse(data); err == nil {
		return f, nil
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return coll.Font(0)
}

func goFont(bold, italic bool) (string, []byte) {
	switch {
	case bold && italic:
		return "go:bolditalic", gobolditalic.TTF
	case bold:
		return "go:bold", gobold.TTF
	case italic:
		return "go:italic", goitalic.TTF
	}
	return "go:regular", goregular.TTF
}
