// Package character holds the fixed cast: personalities, emotions, their visual
// styles and where their sprites live on disk. The tables are read-only after
// package initialisation.
package character

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/leonelquinteros/gotext"
)

var (
	ErrUnknownPersonality = errors.New("unknown personality")
	ErrUnknownEmotion     = errors.New("unknown emotion")
)

// Personality is one of the four character archetypes.
type Personality string

const (
	Loli   Personality = "loli"
	Ojou   Personality = "ojou"
	Milf   Personality = "milf"
	Danshi Personality = "danshi"
)

// Emotion selects which sprite variant is drawn.
type Emotion string

const (
	Happy Emotion = "happy"
	Sad   Emotion = "sad"
	Angry Emotion = "angry"
	Think Emotion = "think"

	// Auto asks the caller to derive the emotion from the message text.
	Auto Emotion = "auto"
)

var personalities = []Personality{Loli, Ojou, Milf, Danshi}

var emotions = []Emotion{Happy, Sad, Angry, Think}

// FontStack is the family list every profile renders with: a CJK-capable
// primary, platform fallbacks, then the generic family.
var FontStack = []string{"Microsoft YaHei", "SimHei", "WenQuanYi Micro Hei", "sans-serif"}

// Style is the palette of one personality.
type Style struct {
	BgTop     color.NRGBA
	BgBottom  color.NRGBA
	BoxFill   color.NRGBA
	BoxBorder color.NRGBA
	TextMain  color.NRGBA
	TextSub   color.NRGBA
	BarStart  color.NRGBA
	BarEnd    color.NRGBA
	Fonts     []string
}

// Profile describes one personality.
type Profile struct {
	ID          Personality
	Name        string
	Description string
	Folder      string
	Style       Style
	Labels      map[Emotion]string
}

var profiles = map[Personality]Profile{
	Loli: {
		ID:          Loli,
		Name:        "奈奈",
		Description: "可爱、天真、调皮的邻家小妹",
		Folder:      "loli",
		Style: Style{
			BgTop:     color.NRGBA{255, 240, 245, 255}, // #FFF0F5
			BgBottom:  color.NRGBA{255, 228, 225, 255}, // #FFE4E1
			BoxFill:   color.NRGBA{255, 255, 255, 230}, // white, 0.9
			BoxBorder: color.NRGBA{255, 105, 180, 255}, // #FF69B4
			TextMain:  color.NRGBA{255, 20, 147, 255},  // #FF1493
			TextSub:   color.NRGBA{136, 136, 136, 255}, // #888
			BarStart:  color.NRGBA{255, 182, 193, 255}, // #FFB6C1
			BarEnd:    color.NRGBA{255, 20, 147, 255},  // #FF1493
		},
		Labels: map[Emotion]string{Happy: "高兴", Sad: "悲伤", Angry: "生气", Think: "思考"},
	},
	Ojou: {
		ID:          Ojou,
		Name:        "蕾娜",
		Description: "优雅、成熟、高冷的财阀千金",
		Folder:      "gril",
		Style: Style{
			BgTop:     color.NRGBA{243, 229, 245, 255}, // #F3E5F5
			BgBottom:  color.NRGBA{225, 190, 231, 255}, // #E1BEE7
			BoxFill:   color.NRGBA{40, 30, 50, 230},    // dark violet, 0.9
			BoxBorder: color.NRGBA{255, 215, 0, 255},   // #FFD700
			TextMain:  color.NRGBA{255, 255, 255, 255}, // #FFFFFF
			TextSub:   color.NRGBA{204, 204, 204, 255}, // #CCC
			BarStart:  color.NRGBA{147, 112, 219, 255}, // #9370DB
			BarEnd:    color.NRGBA{75, 0, 130, 255},    // #4B0082
		},
		Labels: map[Emotion]string{Happy: "愉悦", Sad: "失落", Angry: "愠怒", Think: "沉思"},
	},
	Milf: {
		ID:          Milf,
		Name:        "小百合",
		Description: "温柔、成熟、包容的知性女性",
		Folder:      "woman",
		Style: Style{
			BgTop:     color.NRGBA{255, 248, 225, 255}, // #FFF8E1
			BgBottom:  color.NRGBA{255, 224, 178, 255}, // #FFE0B2
			BoxFill:   color.NRGBA{255, 250, 240, 242}, // floral white, 0.95
			BoxBorder: color.NRGBA{255, 160, 122, 255}, // #FFA07A
			TextMain:  color.NRGBA{139, 69, 19, 255},   // #8B4513
			TextSub:   color.NRGBA{160, 82, 45, 255},   // #A0522D
			BarStart:  color.NRGBA{255, 218, 185, 255}, // #FFDAB9
			BarEnd:    color.NRGBA{255, 127, 80, 255},  // #FF7F50
		},
		Labels: map[Emotion]string{Happy: "微笑", Sad: "忧愁", Angry: "责怪", Think: "牵挂"},
	},
	Danshi: {
		ID:          Danshi,
		Name:        "小薰",
		Description: "秀气、温柔、灵动的可爱男孩子",
		Folder:      "mft",
		Style: Style{
			BgTop:     color.NRGBA{224, 247, 250, 255}, // #E0F7FA
			BgBottom:  color.NRGBA{178, 235, 242, 255}, // #B2EBF2
			BoxFill:   color.NRGBA{255, 255, 255, 230}, // white, 0.9
			BoxBorder: color.NRGBA{0, 206, 209, 255},   // #00CED1
			TextMain:  color.NRGBA{0, 139, 139, 255},   // #008B8B
			TextSub:   color.NRGBA{95, 158, 160, 255},  // #5F9EA0
			BarStart:  color.NRGBA{175, 238, 238, 255}, // #AFEEEE
			BarEnd:    color.NRGBA{0, 206, 209, 255},   // #00CED1
		},
		Labels: map[Emotion]string{Happy: "嘻嘻", Sad: "难过", Angry: "哼", Think: "发呆"},
	},
}

// aliases maps display names and archetype nicknames to personalities.
var aliases = map[string]Personality{
	"奈奈": Loli, "萝莉": Loli,
	"蕾娜": Ojou, "御姐": Ojou,
	"小百合": Milf, "少妇": Milf,
	"小薰": Danshi, "男娘": Danshi,
}

// dynamicGet avoids vet's non-constant format string warning on gotext.Get.
var dynamicGet = gotext.Get

// Personalities returns every personality in display order.
func Personalities() []Personality {
	return append([]Personality(nil), personalities...)
}

// Emotions returns every drawable emotion in display order.
func Emotions() []Emotion {
	return append([]Emotion(nil), emotions...)
}

// Lookup returns the profile for p.
func Lookup(p Personality) (Profile, bool) {
	prof, ok := profiles[p]
	if !ok {
		return Profile{}, false
	}
	prof.Style.Fonts = append([]string(nil), FontStack...)
	return prof, true
}

// DisplayName returns the localised name of p. Without a loaded catalogue the
// built-in name is returned.
func DisplayName(p Personality) string {
	prof, ok := profiles[p]
	if !ok {
		return string(p)
	}
	return dynamicGet(prof.Name)
}

// Label returns the in-character word for an emotion, e.g. 愉悦 for Ojou/Happy.
func Label(p Personality, e Emotion) string {
	return profiles[p].Labels[e]
}

// ParsePersonality accepts an id, a display name or an archetype nickname.
func ParsePersonality(s string) (Personality, error) {
	s = strings.TrimSpace(s)
	if p := Personality(strings.ToLower(s)); p.Valid() {
		return p, nil
	}
	if p, ok := aliases[s]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPersonality, s)
}

// ParseEmotion accepts an emotion id, "auto", or any personality's label for it.
func ParseEmotion(s string) (Emotion, error) {
	s = strings.TrimSpace(s)
	e := Emotion(strings.ToLower(s))
	if e == Auto || e.Valid() {
		return e, nil
	}
	for _, prof := range profiles {
		for em, label := range prof.Labels {
			if label == s {
				return em, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEmotion, s)
}

// Valid reports whether p is one of the four personalities.
func (p Personality) Valid() bool {
	_, ok := profiles[p]
	return ok
}

// Valid reports whether e selects a sprite. Auto is not valid here.
func (e Emotion) Valid() bool {
	switch e {
	case Happy, Sad, Angry, Think:
		return true
	}
	return false
}

// SpritePath resolves base/folder/emotion.png.
func SpritePath(base string, p Personality, e Emotion) string {
	return filepath.Join(base, profiles[p].Folder, string(e)+".png")
}
