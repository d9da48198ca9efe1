package main

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed about.md
var aboutMarkdown string

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Describe the screensaver",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		out, err := renderAbout(terminalWidth())
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

// renderAbout renders the embedded description for a terminal of the given width.
func renderAbout(width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("about: %w", err)
	}
	out, err := renderer.Render(aboutMarkdown)
	if err != nil {
		return "", fmt.Errorf("about: %w", err)
	}
	return out, nil
}

func terminalWidth() int {
	w, _ := terminalSize()
	return min(w, 100)
}
