package core

// Color identifies the foreground of a screen cell. Named values are fixed
// ANSI colors; piece and edge colors index the configurable palette and are
// resolved by the platform renderer.
type Color uint8

// Predefined colors for frames and text.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
)

// PaletteSize is the number of palette slots, one per piece shape.
const PaletteSize = 7

const (
	colorPieceBase Color = 32
	colorEdgeBase  Color = colorPieceBase + PaletteSize
)

// PieceColor returns the color for the body of a tile in palette slot i.
func PieceColor(slot int) Color {
	return colorPieceBase + Color(Clamp(slot, 0, PaletteSize-1))
}

// EdgeColor returns the darker shade used for the edge of a tile in palette
// slot i.
func EdgeColor(slot int) Color {
	return colorEdgeBase + Color(Clamp(slot, 0, PaletteSize-1))
}

// Slot returns the palette slot a color refers to. ok is false for the
// named ANSI colors.
func (c Color) Slot() (slot int, edge bool, ok bool) {
	switch {
	case c >= colorPieceBase && c < colorEdgeBase:
		return int(c - colorPieceBase), false, true
	case c >= colorEdgeBase && c < colorEdgeBase+PaletteSize:
		return int(c - colorEdgeBase), true, true
	default:
		return 0, false, false
	}
}
