package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-saver/internal/platform/tui"
	"github.com/vovakirdan/tetris-saver/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded saver sessions",
	Long: `Display the most recent saver sessions and overall totals.

Examples:
  saver history
  saver history --limit 50
  saver history --tui      # Interactive table
  saver history --clear    # Forget all sessions`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse sessions interactively")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded sessions")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearSessions(); err != nil {
			return err
		}
		fmt.Println("History cleared.")
		return nil
	}

	if flagHistoryTUI {
		width, height := terminalSize()
		return tui.RunHistory(store, width, height)
	}

	return printHistory(os.Stdout, os.Stderr, store, flagHistoryLimit)
}

// historySource is the part of the store the text listing reads.
type historySource interface {
	RecentSessions(limit int) ([]storage.Session, error)
	Totals() (*storage.Totals, error)
}

// printHistory writes the recent sessions and the totals to out. A totals
// failure is reported on errOut without failing the listing.
func printHistory(out, errOut io.Writer, src historySource, limit int) error {
	sessions, err := src.RecentSessions(limit)
	if err != nil {
		return fmt.Errorf("retrieving sessions: %w", err)
	}

	fmt.Fprintln(out, "Saver History")
	fmt.Fprintln(out)

	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'saver run' to start one!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-16s  %-8s  %-10s  %-7s  %-6s  %-6s  %s\n", "Started", "Mode", "Duration", "Pieces", "Lines", "Wipes", "Exit")
	fmt.Fprintf(out, "  %-16s  %-8s  %-10s  %-7s  %-6s  %-6s  %s\n", "-------", "----", "--------", "------", "-----", "-----", "----")

	// Print sessions
	for _, s := range sessions {
		fmt.Fprintf(out, "  %-16s  %-8s  %-10s  %-7d  %-6d  %-6d  %s\n",
			s.StartedAt.Format("2006-01-02 15:04"),
			s.Mode,
			s.Duration.Round(time.Second),
			s.Pieces, s.Lines, s.Wipes,
			s.ExitReason,
		)
	}

	// Show totals
	totals, err := src.Totals()
	if err != nil {
		fmt.Fprintf(errOut, "Error: computing totals: %v\n", err)
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total: %d sessions, %s, %d pieces, %d lines, %d wipes\n",
		totals.Sessions, totals.Duration.Round(time.Second), totals.Pieces, totals.Lines, totals.Wipes)
	return nil
}
