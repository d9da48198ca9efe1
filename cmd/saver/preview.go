package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-saver/internal/platform/tui"
	"github.com/vovakirdan/tetris-saver/internal/storage"
)

var previewCmd = &cobra.Command{
	Use:   "preview [hwnd]",
	Short: "Run a small inline preview",
	Long: `Run the saver inline in a small box (preview.width x preview.height
cells) until a key is pressed. The optional window handle passed by
screensaver hosts is accepted and ignored.

Examples:
  saver preview
  saver /p 1234`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func runPreview(_ *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closeLog := newFileLogger()
	defer closeLog()
	if len(args) == 1 {
		logger.Debug("preview host window ignored", "hwnd", args[0])
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	summary, err := tui.RunPreview(tui.SaverOptions{
		Config:  s.saver,
		Palette: s.palette,
		Seed:    flagSeed,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	recordSession(store, logger, summary, storage.ModePreview)
	return nil
}
