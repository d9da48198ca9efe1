package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-saver/internal/platform/tui"
	"github.com/vovakirdan/tetris-saver/internal/storage"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"start"},
	Short:   "Run the screensaver full screen",
	Long: `Run the screensaver on the alternate screen until a key is pressed or
the mouse moves more than exit_threshold cells.

Examples:
  saver run
  saver run --seed 42
  saver run --tick 50 --config ./saver.yaml`,
	Args: cobra.NoArgs,
	RunE: runSaver,
}

func runSaver(_ *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	logger, closeLog := newFileLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	logger.Debug("starting saver", "width", width, "height", height, "tick_ms", s.saver.TickMS)

	summary, err := tui.RunSaver(tui.SaverOptions{
		Config:  s.saver,
		Palette: s.palette,
		Seed:    flagSeed,
		Width:   width,
		Height:  height,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("saver failed", "error", err)
		return err
	}

	recordSession(store, logger, summary, storage.ModeRun)
	return nil
}
