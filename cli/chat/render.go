package chat

import (
	"github.com/charmbracelet/glamour"
)

// renderer handles markdown rendering of assistant replies.
type renderer struct {
	glamour *glamour.TermRenderer
	width   int
}

// newRenderer creates a new markdown renderer.
func newRenderer(width int) (*renderer, error) {
	gr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &renderer{glamour: gr, width: width}, nil
}

// toMarkdown renders content as terminal markdown, falling back to the raw
// text when rendering fails.
func (r *renderer) toMarkdown(content string) string {
	rendered, err := r.glamour.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
