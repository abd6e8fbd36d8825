package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Board is the playing field geometry. It is immutable for the length of a run.
type Board struct {
	Rows int
	Cols int
	Wrap bool // Leaving one edge re-enters at the opposite edge
}

// Cells returns the total number of cells.
func (b Board) Cells() int {
	return b.Rows * b.Cols
}

// Contains reports whether p lies inside [0,Cols) x [0,Rows).
func (b Board) Contains(p core.Point) bool {
	return p.X >= 0 && p.X < b.Cols && p.Y >= 0 && p.Y < b.Rows
}

// Center returns the cell the snake starts on.
func (b Board) Center() core.Point {
	return core.Point{X: b.Cols / 2, Y: b.Rows / 2}
}

// Next returns the neighbour of p in direction d and whether it is on the board.
// With wrapping both axes are normalised, so the result is always in bounds.
// Without wrapping an off-board point is returned as-is and flagged false.
func (b Board) Next(p core.Point, d Direction) (core.Point, bool) {
	next := p.Add(d.Delta())
	if b.Wrap {
		next.X = core.Mod(next.X, b.Cols)
		next.Y = core.Mod(next.Y, b.Rows)
		return next, true
	}
	return next, b.Contains(next)
}

// Distance is the number of single-cell moves between two cells, taking the
// shorter way round each axis when wrapping is on.
func (b Board) Distance(a, c core.Point) int {
	dx := core.Abs(a.X - c.X)
	dy := core.Abs(a.Y - c.Y)
	if b.Wrap {
		dx = min(dx, b.Cols-dx)
		dy = min(dy, b.Rows-dy)
	}
	return dx + dy
}

// forEachCell visits cells in row-major order.
func (b Board) forEachCell(fn func(core.Point)) {
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			fn(core.Point{X: x, Y: y})
		}
	}
}
