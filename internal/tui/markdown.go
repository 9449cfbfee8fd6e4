package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
)

// jokeRenderer renders joke lists through glamour, rebuilding the term
// renderer only when the wrap width changes.
type jokeRenderer struct {
	renderer *glamour.TermRenderer
	width    int
}

func (r *jokeRenderer) get(width int) (*glamour.TermRenderer, error) {
	if r.renderer == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return nil, err
		}
		r.renderer = tr
		r.width = width
	}
	return r.renderer, nil
}

// render returns jokes as a numbered list wrapped at width. If glamour
// fails the list is rendered as plain text.
func (r *jokeRenderer) render(jokes []string, width int) string {
	var md strings.Builder
	for i, joke := range jokes {
		fmt.Fprintf(&md, "%d. %s\n", i+1, markdownEscaper.Replace(joke))
	}

	if tr, err := r.get(width); err == nil {
		if out, err := tr.Render(md.String()); err == nil {
			return strings.Trim(out, "\n")
		}
	}

	var plain strings.Builder
	for i, joke := range jokes {
		fmt.Fprintf(&plain, "%d. %s\n", i+1, joke)
	}
	return strings.TrimRight(plain.String(), "\n")
}
