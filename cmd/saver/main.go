// saver is a self-playing falling-blocks screensaver for the terminal.
//
// Usage:
//
//	saver run                - Run the screensaver full screen
//	saver preview            - Run a small inline preview
//	saver configure          - Edit the piece colors
//	saver serve              - Start SSH server showing the saver
//	saver history            - Show recorded sessions
//	saver about              - Show a short description
//
// Windows-style screensaver arguments are accepted too: /s runs, /p [hwnd]
// previews and /c[:hwnd] configures. Without arguments the settings open.
//
// Global flags:
//
//	--config <path>   - Settings YAML (default: search order, then built-in)
//	--palette <path>  - Palette file (default: $XDG_CONFIG_HOME/tetris-saver/palette.ini)
//	--db <path>       - History database (default: $XDG_DATA_HOME/tetris-saver/history.db)
//	--seed <value>    - Set RNG seed for a reproducible run
//	--tick <ms>       - Override the tick interval
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagPalette string
	flagDBPath  string
	flagSeed    int64
	flagTick    int
	flagDebug   bool
)

func main() {
	args, err := translateLegacyArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "saver",
	Short: "Tetris Saver - a self-playing falling-blocks screensaver",
	Long: `Tetris Saver fills the terminal with randomly falling pieces that
wiggle and turn on their way down. Full rows vanish; when the stack reaches
the top the board is wiped and the show starts over.

Available commands:
  run        - Run the screensaver full screen
  preview    - Run a small inline preview
  configure  - Edit the piece colors
  serve      - Start SSH server showing the saver
  history    - Show recorded sessions
  about      - What is this?

Examples:
  saver run
  saver run --seed 42 --tick 60
  saver preview
  saver configure
  saver serve --ssh :2222
  saver /s`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagPalette, "palette", "", "Path to palette file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", filepath.Join(xdg.DataHome, "tetris-saver", "history.db"), "Path to history database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagTick, "tick", 0, "Tick interval in milliseconds (0 = from settings)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug messages to the log")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(aboutCmd)
}

// translateLegacyArgs maps screensaver host arguments onto subcommands.
// No arguments opens the settings, as screensaver hosts expect.
func translateLegacyArgs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{"configure"}, nil
	}

	first := args[0]
	if !strings.HasPrefix(first, "/") {
		return args, nil
	}

	// /c:1234 carries the parent window inline
	flag, inline, hasInline := strings.Cut(first, ":")
	rest := args[1:]
	if hasInline && inline != "" {
		rest = append([]string{inline}, rest...)
	}

	var cmd string
	switch strings.ToLower(flag) {
	case "/s":
		cmd = "run"
	case "/p":
		cmd = "preview"
	case "/c":
		cmd = "configure"
	default:
		return nil, fmt.Errorf("unrecognized screensaver flag %q", first)
	}
	if cmd == "run" && len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument %q after %s", rest[0], flag)
	}
	return append([]string{cmd}, rest...), nil
}
