package render

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Terminal renders model answers as markdown for interactive display. When
// stdout is not a terminal (piped output) the text passes through as-is.
type Terminal struct {
	renderer *glamour.TermRenderer
}

// NewTerminal builds a renderer sized to the current terminal.
func NewTerminal() *Terminal {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return &Terminal{}
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width, 100)),
	)
	if err != nil {
		return &Terminal{}
	}
	return &Terminal{renderer: renderer}
}

// Markdown renders text for the terminal, falling back to the raw text when
// no renderer is available.
func (t *Terminal) Markdown(text string) string {
	if t.renderer == nil {
		return text
	}
	out, err := t.renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}
