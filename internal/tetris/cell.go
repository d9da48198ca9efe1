package tetris

// Cell is a single board square: either empty or filled by a locked piece
// of a known shape.
type Cell struct {
	shape  Shape
	filled bool
}

// EmptyCell returns an unoccupied cell.
func EmptyCell() Cell {
	return Cell{}
}

// FilledCell returns a cell locked by a piece of the given shape.
func FilledCell(s Shape) Cell {
	return Cell{shape: s, filled: true}
}

// Empty reports whether nothing is locked in the cell.
func (c Cell) Empty() bool {
	return !c.filled
}

// Shape returns the shape that filled the cell. ok is false for empty cells.
func (c Cell) Shape() (s Shape, ok bool) {
	return c.shape, c.filled
}

// Tag returns the compact integer form: 0 for empty, shape+1 otherwise.
func (c Cell) Tag() int {
	if !c.filled {
		return 0
	}
	return int(c.shape) + 1
}
