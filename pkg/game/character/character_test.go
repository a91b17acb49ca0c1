package character

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestEveryPersonalityHasProfile(t *testing.T) {
	for _, p := range Personalities() {
		prof, ok := Lookup(p)
		if !ok {
			t.Errorf("Lookup(%q) missing", p)
			continue
		}
		if prof.ID != p {
			t.Errorf("Lookup(%q).ID = %q", p, prof.ID)
		}
		if len(prof.Style.Fonts) == 0 || prof.Style.Fonts[len(prof.Style.Fonts)-1] != "sans-serif" {
			t.Errorf("%q font stack = %v, want generic fallback last", p, prof.Style.Fonts)
		}
		for _, e := range Emotions() {
			if Label(p, e) == "" {
				t.Errorf("Label(%q, %q) empty", p, e)
			}
		}
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	prof, _ := Lookup(Loli)
	prof.Style.Fonts[0] = "Comic Sans"
	again, _ := Lookup(Loli)
	if again.Style.Fonts[0] != FontStack[0] {
		t.Errorf("font stack mutated through Lookup: %v", again.Style.Fonts)
	}
}

func TestParsePersonality(t *testing.T) {
	tests := map[string]Personality{
		"loli":    Loli,
		" OJOU ":  Ojou,
		"小百合":     Milf,
		"男娘":      Danshi,
		"萝莉":      Loli,
		"御姐":      Ojou,
		"danshi":  Danshi,
	}
	for in, want := range tests {
		got, err := ParsePersonality(in)
		if err != nil || got != want {
			t.Errorf("ParsePersonality(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParsePersonality("robot"); !errors.Is(err, ErrUnknownPersonality) {
		t.Errorf("ParsePersonality(robot) error = %v, want ErrUnknownPersonality", err)
	}
}

func TestParseEmotion(t *testing.T) {
	tests := map[string]Emotion{
		"happy": Happy,
		"Think": Think,
		"auto":  Auto,
		"愠怒":    Angry,
		"发呆":    Think,
		"忧愁":    Sad,
	}
	for in, want := range tests {
		got, err := ParseEmotion(in)
		if err != nil || got != want {
			t.Errorf("ParseEmotion(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseEmotion("bored"); !errors.Is(err, ErrUnknownEmotion) {
		t.Errorf("ParseEmotion(bored) error = %v, want ErrUnknownEmotion", err)
	}
}

func TestSpritePath(t *testing.T) {
	tests := []struct {
		p    Personality
		e    Emotion
		want string
	}{
		{Loli, Happy, filepath.Join("base", "loli", "happy.png")},
		{Ojou, Sad, filepath.Join("base", "gril", "sad.png")},
		{Milf, Angry, filepath.Join("base", "woman", "angry.png")},
		{Danshi, Think, filepath.Join("base", "mft", "think.png")},
	}
	for _, tt := range tests {
		if got := SpritePath("base", tt.p, tt.e); got != tt.want {
			t.Errorf("SpritePath(%q, %q) = %q, want %q", tt.p, tt.e, got, tt.want)
		}
	}
}

func TestDisplayNameWithoutCatalogue(t *testing.T) {
	if got := DisplayName(Ojou); got != "蕾娜" {
		t.Errorf("DisplayName(Ojou) = %q, want 蕾娜", got)
	}
}

func TestDetectEmotion(t *testing.T) {
	tests := []struct {
		text string
		want Emotion
	}{
		{"今天天气不错。", Think},
		{"哈哈，好开心！", Happy},
		{"呜呜，好难过", Sad},
		{"讨厌！开心不起来", Angry},
		{"滚！哭什么", Angry},
	}
	for _, tt := range tests {
		if got := DetectEmotion(tt.text); got != tt.want {
			t.Errorf("DetectEmotion(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestSplitInnerThought(t *testing.T) {
	text, thought := SplitInnerThought("[心理: 他好可爱]\n你好呀")
	if text != "你好呀" || thought != "他好可爱" {
		t.Errorf("SplitInnerThought() = %q, %q", text, thought)
	}

	text, thought = SplitInnerThought("没有心理活动")
	if text != "没有心理活动" || thought != "" {
		t.Errorf("SplitInnerThought(plain) = %q, %q", text, thought)
	}
}

func TestPersonalityValid(t *testing.T) {
	tests := []struct {
		p    Personality
		want bool
	}{
		{Loli, true},
		{Danshi, true},
		{"萝莉", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := tt.p.Valid(); got != tt.want {
			t.Errorf("Personality(%q).Valid() = %v, want %v", tt.p, got, tt.want)
		}
	}
}
