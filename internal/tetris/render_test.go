package tetris

import (
	"testing"

	"github.com/vovakirdan/tetris-saver/internal/core"
)

func TestRenderLockedAndActive(t *testing.T) {
	s, _ := newTestSim(t, 6, 5, ShapeO, 1)
	s.board.set(0, 4, FilledCell(ShapeZ))
	s.active.Y = 2

	dst := core.NewScreen(12, 5)
	s.Render(dst, Layout{TileW: 2, TileH: 1})

	// Locked Z at board (0, 4): body then edge shade
	if c := dst.GetCell(0, 4); c.Rune != blockRune || c.Color != core.PieceColor(int(ShapeZ)) {
		t.Errorf("locked tile body = %+v", c)
	}
	if c := dst.GetCell(1, 4); c.Color != core.EdgeColor(int(ShapeZ)) {
		t.Errorf("locked tile edge = %+v", c)
	}

	// Active O at pivot (1, 2) covers board (1..2, 2..3) -> screen columns 2..5
	for _, p := range []Point{{2, 2}, {4, 2}, {2, 3}, {4, 3}} {
		if c := dst.GetCell(p.X, p.Y); c.Color != core.PieceColor(int(ShapeO)) {
			t.Errorf("active tile at %v = %+v", p, c)
		}
	}

	if dst.Get(6, 2) != ' ' || dst.Get(0, 0) != ' ' {
		t.Error("empty board cells should stay blank")
	}
}

func TestRenderSkipsCellsAboveBoard(t *testing.T) {
	s, _ := newTestSim(t, 6, 5, ShapeO, 0)
	s.active.Y = -1

	dst := core.NewScreen(6, 5)
	s.Render(dst, Layout{TileW: 1, TileH: 1})

	if dst.Get(0, 0) != blockRune || dst.Get(1, 0) != blockRune {
		t.Error("lower row of the piece should be visible")
	}
	if dst.GetCell(0, 0).Color != core.PieceColor(int(ShapeO)) {
		t.Error("single-character tiles have no edge shade")
	}
	if dst.Get(0, 1) != ' ' {
		t.Error("nothing should be drawn below the visible piece")
	}
}

func TestRenderNextPreview(t *testing.T) {
	s, _ := newTestSim(t, 20, 10, ShapeT, 0)
	l := Layout{TileW: 2, TileH: 1, ShowNext: true}

	dst := core.NewScreen(40, 10)
	s.Render(dst, l)

	box, ok := NextBox(dst.Width(), l)
	if !ok {
		t.Fatal("40 columns should fit the preview")
	}
	if dst.Get(box.X, box.Y) != '┌' {
		t.Errorf("preview frame missing at (%d, %d)", box.X, box.Y)
	}

	// Next shape is O: offsets (0,0) (1,0) (0,1) (1,1)
	for _, p := range ShapeO.Offsets() {
		x := box.X + 2 + p.X*2
		y := box.Y + 1 + p.Y
		if c := dst.GetCell(x, y); c.Color != core.PieceColor(int(ShapeO)) {
			t.Errorf("preview tile %v at (%d, %d) = %+v", p, x, y, c)
		}
	}
}

func TestNextBoxTooNarrow(t *testing.T) {
	if _, ok := NextBox(8, Layout{TileW: 2, TileH: 1}); ok {
		t.Error("8 columns cannot hold a 12-column preview")
	}
}

func TestLayoutFor(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.TileW = 0
	l := LayoutFor(cfg, true)
	if l.TileW != 1 || l.TileH != 1 || !l.ShowNext {
		t.Errorf("LayoutFor() = %+v", l)
	}
}
