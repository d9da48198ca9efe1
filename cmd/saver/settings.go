package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/vovakirdan/tetris-saver/internal/config"
	"github.com/vovakirdan/tetris-saver/internal/palette"
	"github.com/vovakirdan/tetris-saver/internal/platform/tui"
	"github.com/vovakirdan/tetris-saver/internal/storage"
)

// settings bundles everything loaded from disk before a saver starts.
type settings struct {
	saver       config.SaverConfig
	palette     palette.Palette
	palettePath string
}

// loadSettings reads the YAML settings and the palette, applying flag
// overrides. An explicit --config that cannot be read is an error; palette
// problems only print a warning.
func loadSettings() (settings, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return settings{}, err
	}
	if flagTick > 0 {
		cfg.TickMS = flagTick
	}

	path, err := palettePath()
	if err != nil {
		return settings{}, err
	}
	p, err := palette.Load(path)
	if err != nil {
		// Unreadable entries keep their defaults
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	return settings{saver: cfg, palette: p, palettePath: path}, nil
}

func palettePath() (string, error) {
	if flagPalette != "" {
		return flagPalette, nil
	}
	return palette.DefaultPath()
}

// newFileLogger returns a logger writing to the state directory, so full
// screen modes never print over the alternate screen. The returned func
// closes the file.
func newFileLogger() (*log.Logger, func()) {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}

	var w io.Writer = io.Discard
	closer := func() {}

	if path, err := xdg.StateFile("tetris-saver/saver.log"); err == nil {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			w = f
			closer = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "saver",
		Level:           level,
	})
	return logger, closer
}

// openStore opens the history database. Failures are logged and yield nil:
// the saver runs without history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open history database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// recordSession stores a finished session, logging the outcome.
func recordSession(store *storage.Store, logger *log.Logger, summary tui.Summary, mode string) {
	id := uuid.NewString()
	logger.Info("session finished",
		"session", id,
		"mode", mode,
		"duration", summary.Duration.Round(time.Millisecond),
		"pieces", summary.Stats.Pieces,
		"lines", summary.Stats.Lines,
		"wipes", summary.Stats.Wipes,
		"exit", summary.ExitReason,
	)
	if store == nil {
		return
	}
	if _, err := store.SaveSession(summary.Session(id, mode)); err != nil {
		logger.Warn("could not save session", "error", err)
	}
}

// terminalSize returns the size of stdout, or 80x24 when unknown.
func terminalSize() (width, height int) {
	width, height = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
