package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-saver/internal/platform/tui"
)

var configureCmd = &cobra.Command{
	Use:     "configure [hwnd]",
	Aliases: []string{"config"},
	Short:   "Edit the piece colors",
	Long: `Open the color settings. Each of the seven shapes has an RGB color;
the darker tile edge is derived from it.

Controls:
  Up/Down   - Select a shape
  Enter     - Edit the selected color / apply the edit
  Tab       - Next channel while editing
  D         - Reset the selected shape to its default
  S         - Save and close
  Q/Esc     - Close without saving

Examples:
  saver configure
  saver configure --palette ./palette.ini
  saver /c`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigure,
}

func runConfigure(_ *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	_, saved, err := tui.RunConfigure(s.palettePath, s.palette)
	if err != nil {
		return err
	}
	if saved {
		fmt.Printf("Palette saved to %s\n", s.palettePath)
	}
	return nil
}
