package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultWrap = 80

// RenderMarkdown renders free text with glamour using the colourless style,
// so output is the same on a terminal, in a pipe and in the TUI. Rendering
// failures fall back to the plain text.
func RenderMarkdown(text string, width int) string {
	if width <= 0 {
		width = defaultWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
