package tetris

import (
	"github.com/vovakirdan/tetris-saver/internal/core"
)

// blockRune fills every character of a tile.
const blockRune = '█'

// Layout describes how board cells map onto screen characters.
type Layout struct {
	TileW, TileH     int // Characters per board cell
	OffsetX, OffsetY int // Screen position of board cell (0, 0)
	ShowNext         bool
}

// LayoutFor returns a layout that tiles the board from the top-left corner
// of the screen using the configured tile size.
func LayoutFor(cfg core.RuntimeConfig, showNext bool) Layout {
	return Layout{
		TileW:    core.Max(cfg.TileW, 1),
		TileH:    core.Max(cfg.TileH, 1),
		ShowNext: showNext,
	}
}

// Render draws the locked cells, the falling piece and, when enabled, the
// next-piece preview into dst. The screen is cleared first.
func (s *Sim) Render(dst *core.Screen, l Layout) {
	dst.Clear()
	l.TileW = core.Max(l.TileW, 1)
	l.TileH = core.Max(l.TileH, 1)

	for y := 0; y < s.board.height; y++ {
		for x := 0; x < s.board.width; x++ {
			if shape, ok := s.board.rows[y][x].Shape(); ok {
				drawTile(dst, l, x, y, shape)
			}
		}
	}

	for _, c := range s.active.Cells() {
		if c.Y < 0 {
			continue
		}
		drawTile(dst, l, c.X, c.Y, s.active.Shape)
	}

	if l.ShowNext {
		s.renderNext(dst, l)
	}
}

// drawTile paints board cell (bx, by). The right column and bottom row of a
// multi-character tile use the darker edge shade.
func drawTile(dst *core.Screen, l Layout, bx, by int, shape Shape) {
	x0 := l.OffsetX + bx*l.TileW
	y0 := l.OffsetY + by*l.TileH
	body := core.PieceColor(int(shape))
	edge := core.EdgeColor(int(shape))

	for dy := 0; dy < l.TileH; dy++ {
		for dx := 0; dx < l.TileW; dx++ {
			c := body
			if (l.TileW > 1 && dx == l.TileW-1) || (l.TileH > 1 && dy == l.TileH-1) {
				c = edge
			}
			dst.SetCell(x0+dx, y0+dy, blockRune, c)
		}
	}
}

// NextBox returns the screen area of the next-piece preview for a screen of
// the given width. ok is false when the screen is too narrow to hold it.
func NextBox(screenW int, l Layout) (r core.Rect, ok bool) {
	w := 4*core.Max(l.TileW, 1) + 4
	h := 2*core.Max(l.TileH, 1) + 2
	x := screenW - w - 1
	if x < 0 {
		return core.Rect{}, false
	}
	return core.NewRect(x, 1, w, h), true
}

func (s *Sim) renderNext(dst *core.Screen, l Layout) {
	box, ok := NextBox(dst.Width(), l)
	if !ok || box.Bottom() > dst.Height() {
		return
	}

	dst.DrawRect(box.Inset(1), ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorGray)
	dst.DrawText(box.X+2, box.Y, " NEXT ", core.ColorGray)

	inner := Layout{
		TileW:   l.TileW,
		TileH:   l.TileH,
		OffsetX: box.X + 2,
		OffsetY: box.Y + 1,
	}
	for _, p := range s.NextCells() {
		drawTile(dst, inner, p.X, p.Y, s.next)
	}
}
