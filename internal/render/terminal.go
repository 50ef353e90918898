package render

import (
	"strings"

	"github.com/abdulachik/mesostic/internal/meso"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("#8BC34A")
	warning = lipgloss.Color("#FFC107")
	muted   = lipgloss.Color("#6B7280")

	letterStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	successStyle = lipgloss.NewStyle().Foreground(muted).Italic(true)
	failureStyle = lipgloss.NewStyle().Foreground(warning)
)

// Options controls terminal rendering.
type Options struct {
	// Color styles the message and spine letters with ANSI escapes when
	// the terminal supports them.
	Color bool
}

// Text renders the message, a blank line and the aligned poem.
func Text(res *meso.Result, opts Options) string {
	highlight := meso.Plain
	message := res.Message
	if opts.Color {
		highlight = func(letter string) string { return letterStyle.Render(letter) }
		if res.Succeeded() {
			message = successStyle.Render(message)
		} else {
			message = failureStyle.Render(message)
		}
	}

	var b strings.Builder
	b.WriteString(message)
	b.WriteString("\n\n")
	for _, ln := range res.Lines {
		b.WriteString(compose(ln, highlight))
		b.WriteString("\n")
	}
	return b.String()
}
