package character

import (
	"regexp"
	"strings"
)

var (
	happyWords = []string{"哈哈", "开心", "喜欢", "❤️", "😊", "棒"}
	sadWords   = []string{"难过", "呜", "哭", "😢", "失望"}
	angryWords = []string{"生气", "滚", "讨厌", "😠", "😡"}
)

// DetectEmotion guesses an emotion from keyword hits. Ties favour Angry, then
// Sad, then Happy; no hits yields Think.
func DetectEmotion(text string) Emotion {
	lower := strings.ToLower(text)
	count := func(words []string) int {
		n := 0
		for _, w := range words {
			if strings.Contains(lower, w) {
				n++
			}
		}
		return n
	}

	happy, sad, angry := count(happyWords), count(sadWords), count(angryWords)
	best := max(happy, sad, angry)
	switch {
	case best == 0:
		return Think
	case angry == best:
		return Angry
	case sad == best:
		return Sad
	}
	return Happy
}

var (
	thoughtMarker  = regexp.MustCompile(`\[心理:\s*(.+?)\]`)
	thoughtSection = regexp.MustCompile(`\[心理:.+?\]\n?`)
)

// SplitInnerThought pulls a "[心理: ...]" aside out of a reply. It returns the
// remaining text and the thought, or the input unchanged and "" when no aside exists.
func SplitInnerThought(reply string) (text, thought string) {
	m := thoughtMarker.FindStringSubmatch(reply)
	if m == nil {
		return reply, ""
	}
	return strings.TrimSpace(thoughtSection.ReplaceAllString(reply, "")), m[1]
}
