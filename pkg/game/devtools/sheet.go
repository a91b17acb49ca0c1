// Package devtools provides developer tools for checking every sprite and
// palette combination at a glance.
package devtools

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"galbubble/pkg/game/bubble"
	"galbubble/pkg/game/character"
)

// Renderer is the part of a compositor the contact sheet needs.
type Renderer interface {
	Render(req bubble.Request) ([]byte, error)
}

// SaveContactSheet renders text for every personality and emotion into a new
// timestamped directory under dir, plus an index.html that shows them in a
// grid. It returns the path of the index. A failed cell is listed in the page
// and does not stop the others.
func SaveContactSheet(dir string, r Renderer, text string) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	out := filepath.Join(dir, fmt.Sprintf("sheet-%s", timestamp))
	if err := os.MkdirAll(out, 0o755); err != nil {
		return "", fmt.Errorf("contact sheet: %w", err)
	}

	var page strings.Builder
	page.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>galbubble - Contact Sheet</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: sans-serif;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 20px;
        }
        table { border-spacing: 12px; }
        th { color: #888; font-weight: normal; }
        img { width: 320px; border-radius: 8px; }
        .failed { color: #ff4444; }
    </style>
</head>
<body>
`)
	fmt.Fprintf(&page, `    <div class="header">%s</div>`+"\n", html.EscapeString(text))
	page.WriteString("    <table>\n        <tr><th></th>")
	for _, e := range character.Emotions() {
		fmt.Fprintf(&page, "<th>%s</th>", e)
	}
	page.WriteString("</tr>\n")

	for _, p := range character.Personalities() {
		fmt.Fprintf(&page, "        <tr><th>%s</th>", html.EscapeString(character.DisplayName(p)))
		for _, e := range character.Emotions() {
			name := fmt.Sprintf("%s-%s.png", p, e)
			data, err := r.Render(bubble.Request{Text: text, Personality: p, Emotion: e})
			if err == nil {
				err = os.WriteFile(filepath.Join(out, name), data, 0o644)
			}
			if err != nil {
				fmt.Fprintf(&page, `<td class="failed">%s</td>`, html.EscapeString(err.Error()))
				continue
			}
			fmt.Fprintf(&page, `<td><img src="%s" alt="%s"></td>`, name, html.EscapeString(character.Label(p, e)))
		}
		page.WriteString("</tr>\n")
	}

	page.WriteString(`    </table>
</body>
</html>
`)

	index := filepath.Join(out, "index.html")
	if err := os.WriteFile(index, []byte(page.String()), 0o644); err != nil {
		return "", fmt.Errorf("contact sheet: %w", err)
	}
	return index, nil
}
