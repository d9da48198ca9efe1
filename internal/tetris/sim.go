package tetris

import (
	"errors"
	"fmt"
)

// MinBoardSize is the smallest width or height a board may have. Spawn
// places a pivot anywhere in [0, width-4], so narrower boards cannot host
// an I piece.
const MinBoardSize = 4

// DefaultJitterRange is the size of the jitter draw: one value in
// [1, DefaultJitterRange] per unobstructed tick, where 1, 2 and 3 nudge the
// piece and everything else leaves it alone.
const DefaultJitterRange = 32

// jitterMargin keeps shifted pieces this many columns away from either edge
// so every orientation of every shape stays laterally in bounds.
const jitterMargin = 3

// ErrBoardTooSmall is returned by New for boards below MinBoardSize.
var ErrBoardTooSmall = errors.New("tetris: board too small")

// Rand is the source of randomness for spawn positions, next-piece choice
// and jitter. *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Jitter names the cosmetic perturbation applied during a tick.
type Jitter int

const (
	JitterNone Jitter = iota
	JitterRight
	JitterLeft
	JitterRotate
)

// String returns a human-readable name for the jitter.
func (j Jitter) String() string {
	switch j {
	case JitterNone:
		return "none"
	case JitterRight:
		return "right"
	case JitterLeft:
		return "left"
	case JitterRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// Piece is a shape in a particular orientation at a board position.
type Piece struct {
	Shape   Shape
	Offsets [4]Point // Current orientation, relative to (X, Y)
	X, Y    int      // Pivot position
}

// Cells returns the absolute board coordinates the piece occupies. Rows
// above the board (negative Y) are included.
func (p Piece) Cells() [4]Point {
	var out [4]Point
	for i, o := range p.Offsets {
		out[i] = Point{X: p.X + o.X, Y: p.Y + o.Y}
	}
	return out
}

// StepResult describes what happened during one Step.
type StepResult struct {
	Moved  bool   // The piece fell one row
	Jitter Jitter // Perturbation applied after the fall
	Locked bool   // The piece could not fall and was locked
	Lines  int    // Rows cleared by the lock
	Wiped  bool   // The board was exhausted and reset
}

// Stats accumulates counters over the lifetime of a simulation.
type Stats struct {
	Ticks   uint64
	Pieces  uint64 // Pieces locked
	Lines   uint64
	Wipes   uint64
	Jitters uint64
}

// Sim owns the whole simulation state: board, active piece and next shape.
// It is not safe for concurrent use; the shell drives it from one loop.
type Sim struct {
	board       *Board
	rng         Rand
	active      Piece
	next        Shape
	jitterRange int
	stats       Stats
}

// New creates an empty width x height board and spawns the first piece.
func New(width, height int, rng Rand) (*Sim, error) {
	if width < MinBoardSize || height < MinBoardSize {
		return nil, fmt.Errorf("%w: %dx%d (minimum %dx%d)",
			ErrBoardTooSmall, width, height, MinBoardSize, MinBoardSize)
	}
	if rng == nil {
		return nil, errors.New("tetris: nil random source")
	}

	s := &Sim{
		board:       newBoard(width, height),
		rng:         rng,
		jitterRange: DefaultJitterRange,
	}
	s.next = s.randomShape()
	s.Spawn()
	return s, nil
}

// SetJitterRange changes the size of the jitter draw. Values below 1 restore
// the default.
func (s *Sim) SetJitterRange(n int) {
	if n < 1 {
		n = DefaultJitterRange
	}
	s.jitterRange = n
}

// Reset wipes the board and spawns a fresh piece. Counters are kept.
func (s *Sim) Reset() {
	s.board.wipe()
	s.next = s.randomShape()
	s.Spawn()
}

// Width returns the board width.
func (s *Sim) Width() int {
	return s.board.width
}

// Height returns the board height.
func (s *Sim) Height() int {
	return s.board.height
}

// At returns the locked cell at (x, y).
func (s *Sim) At(x, y int) Cell {
	return s.board.At(x, y)
}

// Active returns the falling piece.
func (s *Sim) Active() Piece {
	return s.active
}

// Next returns the shape that becomes active on the next spawn.
func (s *Sim) Next() Shape {
	return s.next
}

// NextCells returns the offsets of the next shape in canonical orientation.
func (s *Sim) NextCells() []Point {
	offsets := s.next.Offsets()
	return offsets[:]
}

// Stats returns the accumulated counters.
func (s *Sim) Stats() Stats {
	return s.stats
}

func (s *Sim) randomShape() Shape {
	return Shape(s.rng.Intn(ShapeCount))
}

// Spawn promotes the next shape to the active piece at a random column in
// [0, width-4] on row 0, then draws a new next shape.
func (s *Sim) Spawn() {
	s.active = Piece{
		Shape:   s.next,
		Offsets: s.next.Offsets(),
		X:       s.rng.Intn(s.board.width - 3),
		Y:       0,
	}
	s.next = s.randomShape()
}

// CheckCollision reports whether the active piece moved by (dx, dy) would
// leave the board horizontally, reach the bottom bound, or overlap a locked
// cell. Cells above the board are only checked laterally.
func (s *Sim) CheckCollision(dx, dy int) bool {
	return s.collides(s.active, dx, dy)
}

func (s *Sim) collides(p Piece, dx, dy int) bool {
	for _, c := range p.Cells() {
		x, y := c.X+dx, c.Y+dy
		if x < 0 || x >= s.board.width || y >= s.board.height {
			return true
		}
		if y >= 0 && !s.board.rows[y][x].Empty() {
			return true
		}
	}
	return false
}

// Step advances the simulation by one tick: the piece falls one row and may
// jitter, or, if it cannot fall, it is locked.
func (s *Sim) Step() StepResult {
	s.stats.Ticks++

	if s.CheckCollision(0, 1) {
		lines, wiped := s.Lock()
		return StepResult{Locked: true, Lines: lines, Wiped: wiped}
	}

	s.active.Y++
	j := s.jitter()
	if j != JitterNone {
		s.stats.Jitters++
	}
	return StepResult{Moved: true, Jitter: j}
}

// jitter draws one value in [1, jitterRange] and applies the matching nudge.
// Shifts respect the edge margin and never move into a collision; rotation
// reverts itself on collision.
func (s *Sim) jitter() Jitter {
	switch s.rng.Intn(s.jitterRange) + 1 {
	case 1:
		if s.active.X+1 <= s.board.width-1-jitterMargin && !s.CheckCollision(1, 0) {
			s.active.X++
			return JitterRight
		}
	case 2:
		if s.active.X-1 >= jitterMargin && !s.CheckCollision(-1, 0) {
			s.active.X--
			return JitterLeft
		}
	case 3:
		if s.Rotate() {
			return JitterRotate
		}
	}
	return JitterNone
}

// Lock commits the active piece into the board, clears full rows and spawns
// the next piece. If the new piece collides where it spawns the board is
// exhausted and every cell is wiped. It returns the number of cleared rows
// and whether the board was wiped.
func (s *Sim) Lock() (lines int, wiped bool) {
	cell := FilledCell(s.active.Shape)
	for _, c := range s.active.Cells() {
		if c.Y >= 0 {
			s.board.set(c.X, c.Y, cell)
		}
	}
	s.stats.Pieces++

	lines = s.ClearLines()
	s.Spawn()

	if s.CheckCollision(0, 0) {
		s.board.wipe()
		s.stats.Wipes++
		wiped = true
	}
	return lines, wiped
}

// ClearLines removes every full row, shifting the rows above down and
// inserting empty rows at the top. It returns the number of rows removed.
func (s *Sim) ClearLines() int {
	n := s.board.clearLines()
	s.stats.Lines += uint64(n)
	return n
}

// Rotate turns the active piece a quarter turn around its pivot. The turn
// is discarded if the rotated piece would collide. It reports whether the
// rotation was kept.
func (s *Sim) Rotate() bool {
	candidate := s.active
	candidate.Offsets = rotate(s.active.Offsets)
	if s.collides(candidate, 0, 0) {
		return false
	}
	s.active = candidate
	return true
}
