package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetris-saver/internal/core"
	"github.com/vovakirdan/tetris-saver/internal/palette"
)

// namedColors maps the fixed core colors to ANSI colors.
var namedColors = map[core.Color]lipgloss.Color{
	core.ColorRed:     lipgloss.Color("1"),
	core.ColorGreen:   lipgloss.Color("2"),
	core.ColorYellow:  lipgloss.Color("3"),
	core.ColorBlue:    lipgloss.Color("4"),
	core.ColorMagenta: lipgloss.Color("5"),
	core.ColorCyan:    lipgloss.Color("6"),
	core.ColorWhite:   lipgloss.Color("7"),
	core.ColorGray:    lipgloss.Color("245"),
}

// Theme resolves core colors to lipgloss styles for one palette.
type Theme struct {
	styles map[core.Color]lipgloss.Style
	base   lipgloss.Style
}

// NewTheme builds styles for the named colors and every palette slot.
// Palette slots use the true color of the shape, edges its darker shade.
// background is a hex color or empty for the terminal default.
func NewTheme(p palette.Palette, background string) *Theme {
	base := lipgloss.NewStyle()
	if background != "" {
		base = base.Background(lipgloss.Color(background))
	}

	t := &Theme{
		styles: make(map[core.Color]lipgloss.Style, len(namedColors)+2*palette.Size+1),
		base:   base,
	}
	t.styles[core.ColorDefault] = base
	for c, fg := range namedColors {
		t.styles[c] = base.Foreground(fg)
	}
	for i, rgb := range p {
		t.styles[core.PieceColor(i)] = base.Foreground(lipgloss.Color(rgb.Hex()))
		t.styles[core.EdgeColor(i)] = base.Foreground(lipgloss.Color(rgb.Darker().Hex()))
	}
	return t
}

// Style returns the style for c, falling back to the background style.
func (t *Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.styles[c]; ok {
		return s
	}
	return t.base
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme *Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(theme.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
