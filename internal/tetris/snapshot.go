package tetris

import (
	"fmt"
	"strings"
)

// Snapshot captures the simulation state for determinism tests and debug
// output. Digest holds the board rows as tag digits, one row per line.
type Snapshot struct {
	Width  int
	Height int
	Active Piece
	Next   Shape
	Filled int
	Stats  Stats
	Digest string
}

// Snapshot returns the current state.
func (s *Sim) Snapshot() Snapshot {
	return Snapshot{
		Width:  s.board.width,
		Height: s.board.height,
		Active: s.active,
		Next:   s.next,
		Filled: s.board.filledCount(),
		Stats:  s.stats,
		Digest: s.board.String(),
	}
}

// String renders the board as rows of tag digits, '.' for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for y, row := range b.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			if c.Empty() {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(byte('0' + c.Tag()))
		}
	}
	return sb.String()
}

// DebugState returns a short human-readable summary.
func (s *Sim) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Board: %dx%d, Filled: %d\n", s.board.width, s.board.height, s.board.filledCount())
	fmt.Fprintf(&b, "Active: %s at (%d, %d), Next: %s\n", s.active.Shape, s.active.X, s.active.Y, s.next)
	fmt.Fprintf(&b, "Ticks: %d, Pieces: %d, Lines: %d, Wipes: %d\n",
		s.stats.Ticks, s.stats.Pieces, s.stats.Lines, s.stats.Wipes)
	return b.String()
}
