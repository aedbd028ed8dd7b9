package framecache

import "github.com/gogpu/framecache/core"

// invalidCell is the sentinel stored in the previous-frame grid when
// the baseline is unusable (surface resized, explicit invalidation).
// No real hash ever equals it next to a freshly seeded cell, so every
// cell reads as changed.
const invalidCell uint32 = 0xFFFFFFFF

// cellGrid is the double-buffered change detection grid. Each cell
// accumulates the hashes of every command whose clipped bounds overlap
// it; comparing cur against prev after a frame yields the changed
// cells. The two buffers are swapped between frames, never copied.
type cellGrid struct {
	cellSize   int
	cols, rows int
	cur, prev  []uint32
}

// resize adapts the grid to a surface of the given point dimensions.
// When the cell count changes both buffers are reallocated and the
// baseline is invalidated; when it does not, the grid is left alone.
func (g *cellGrid) resize(w, h int) {
	cols := (w + g.cellSize - 1) / g.cellSize
	rows := (h + g.cellSize - 1) / g.cellSize
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == g.cols && rows == g.rows {
		return
	}
	g.cols, g.rows = cols, rows
	g.cur = make([]uint32, cols*rows)
	g.prev = make([]uint32, cols*rows)
	g.reset()
	g.invalidate()
}

// reset seeds every current cell for a new frame.
func (g *cellGrid) reset() {
	for i := range g.cur {
		g.cur[i] = core.HashSeed
	}
}

// invalidate poisons the previous-frame baseline so the next diff marks
// every cell changed.
func (g *cellGrid) invalidate() {
	for i := range g.prev {
		g.prev[i] = invalidCell
	}
}

// cellRange converts a point rectangle to the inclusive cell index
// range it covers, clamped to the grid.
func (g *cellGrid) cellRange(r core.Rect) (x1, y1, x2, y2 int) {
	x1 = max(r.X/g.cellSize, 0)
	y1 = max(r.Y/g.cellSize, 0)
	x2 = min((r.X+r.W-1)/g.cellSize, g.cols-1)
	y2 = min((r.Y+r.H-1)/g.cellSize, g.rows-1)
	return x1, y1, x2, y2
}

// fold mixes a command hash into every cell the rectangle overlaps.
// The rectangle must already be clipped to the surface bounds.
func (g *cellGrid) fold(r core.Rect, h uint32) {
	if r.Empty() {
		return
	}
	x1, y1, x2, y2 := g.cellRange(r)
	for cy := y1; cy <= y2; cy++ {
		row := cy * g.cols
		for cx := x1; cx <= x2; cx++ {
			g.cur[row+cx] = core.HashUint32(g.cur[row+cx], h)
		}
	}
}

// diff calls fn for every cell whose hash changed since the previous
// frame, in row-major order, and re-seeds the compared-against cell so
// that after swap an unpainted cell always reads as clean.
func (g *cellGrid) diff(fn func(cx, cy int)) {
	for cy := 0; cy < g.rows; cy++ {
		row := cy * g.cols
		for cx := 0; cx < g.cols; cx++ {
			i := row + cx
			if g.cur[i] != g.prev[i] {
				fn(cx, cy)
			}
			g.prev[i] = core.HashSeed
		}
	}
}

// swap exchanges the buffers, making this frame's hashes the next
// frame's baseline.
func (g *cellGrid) swap() {
	g.cur, g.prev = g.prev, g.cur
}
