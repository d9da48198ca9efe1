// Package tetris implements the self-playing board simulation behind the
// screensaver: piece spawn, gravity, collision, locking, line clearing and
// the random jitter that keeps the descent from looking mechanical.
//
// The package has no dependencies beyond the core screen buffer used by
// Render, so the simulation can be driven and inspected from plain tests.
package tetris

// Shape identifies one of the seven tetromino variants.
type Shape uint8

const (
	ShapeI Shape = iota
	ShapeO
	ShapeT
	ShapeS
	ShapeZ
	ShapeL
	ShapeJ
)

// ShapeCount is the number of distinct shapes.
const ShapeCount = 7

// Point is an integer cell coordinate or offset.
type Point struct {
	X, Y int
}

// shapeOffsets holds the canonical orientation of every shape, relative to
// the pivot at {0, 0}.
var shapeOffsets = [ShapeCount][4]Point{
	ShapeI: {{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	ShapeO: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	ShapeT: {{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	ShapeS: {{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	ShapeZ: {{1, 0}, {2, 0}, {0, 1}, {1, 1}},
	ShapeL: {{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	ShapeJ: {{2, 0}, {0, 1}, {1, 1}, {2, 1}},
}

// Valid reports whether s names one of the seven shapes.
func (s Shape) Valid() bool {
	return s < ShapeCount
}

// Offsets returns the canonical offsets of the shape.
func (s Shape) Offsets() [4]Point {
	if !s.Valid() {
		return [4]Point{}
	}
	return shapeOffsets[s]
}

// String returns the conventional single-letter name.
func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeS:
		return "S"
	case ShapeZ:
		return "Z"
	case ShapeL:
		return "L"
	case ShapeJ:
		return "J"
	default:
		return "?"
	}
}

// rotate turns every offset a quarter turn around the pivot: (x, y) -> (-y, x).
func rotate(offsets [4]Point) [4]Point {
	var out [4]Point
	for i, p := range offsets {
		out[i] = Point{X: -p.Y, Y: p.X}
	}
	return out
}
