package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`   __ _ _   _  ___  ___ ___ _ __ `, "#818cf8"},
	{`  / _' | | | |/ _ \/ __/ __| '__|`, "#a78bfa"},
	{` | (_| | |_| |  __/\__ \__ \ |   `, "#c084fc"},
	{`  \__, |\__,_|\___||___/___/_|   `, "#e879f9"},
	{`  |___/                          `, "#f472b6"},
}

// PrintBanner writes the ASCII art banner and version to w.
// Colors follow the capabilities of w, so plain writers get plain text.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
