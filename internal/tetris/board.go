package tetris

// Board is a fixed-size grid of cells. Row 0 is the top.
type Board struct {
	width  int
	height int
	rows   [][]Cell
}

// newBoard allocates an empty board.
func newBoard(width, height int) *Board {
	b := &Board{width: width, height: height}
	b.rows = make([][]Cell, height)
	for y := range b.rows {
		b.rows[y] = make([]Cell, width)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// At returns the cell at (x, y). Out-of-range coordinates read as empty.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return EmptyCell()
	}
	return b.rows[y][x]
}

func (b *Board) set(x, y int, c Cell) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.rows[y][x] = c
}

func (b *Board) rowFull(y int) bool {
	for _, c := range b.rows[y] {
		if c.Empty() {
			return false
		}
	}
	return true
}

// removeRow drops row y and inserts an empty row at the top, so every row
// above y moves down by one and the height is unchanged.
func (b *Board) removeRow(y int) {
	copy(b.rows[1:y+1], b.rows[:y])
	b.rows[0] = make([]Cell, b.width)
}

// clearLines removes every full row in a single top-to-bottom pass and
// returns how many rows were removed. After a removal at y the row now at y
// is the one that was above it, which the scan has already seen, so the
// pass never skips a full row.
func (b *Board) clearLines() int {
	cleared := 0
	for y := 0; y < b.height; y++ {
		if b.rowFull(y) {
			b.removeRow(y)
			cleared++
		}
	}
	return cleared
}

func (b *Board) wipe() {
	for y := range b.rows {
		for x := range b.rows[y] {
			b.rows[y][x] = EmptyCell()
		}
	}
}

// filledCount returns the number of non-empty cells.
func (b *Board) filledCount() int {
	n := 0
	for y := range b.rows {
		for _, c := range b.rows[y] {
			if !c.Empty() {
				n++
			}
		}
	}
	return n
}
