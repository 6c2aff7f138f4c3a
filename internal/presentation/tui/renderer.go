package tui

import (
	"github.com/aretw0/guessr/pkg/runner"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a renderer that turns markdown into styled terminal text using glamour.
// If the terminal style cannot be set up, messages are printed unchanged.
func NewRenderer() runner.ContentRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return func(s string) (string, error) { return s, nil }
	}
	return r.Render
}
