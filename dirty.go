package framecache

import "github.com/gogpu/framecache/core"

// dirtyList collects the changed regions of one frame, merging
// overlapping rectangles greedily as they arrive. The merge is a single
// pass, not an optimal partition: non-adjacent regions stay separate,
// and a rectangle that overlaps an existing entry replaces it with
// their union.
type dirtyList struct {
	rects []core.Rect
	max   int
}

func (d *dirtyList) reset() {
	d.rects = d.rects[:0]
}

// push adds a rectangle. When the tracked-region bound is reached a
// non-overlapping rectangle merges into the last entry instead of being
// dropped, trading repaint precision for completeness.
func (d *dirtyList) push(r core.Rect) {
	for i, existing := range d.rects {
		if existing.Overlaps(r) {
			d.rects[i] = existing.Union(r)
			return
		}
	}
	if len(d.rects) >= d.max {
		last := len(d.rects) - 1
		d.rects[last] = d.rects[last].Union(r)
		return
	}
	d.rects = append(d.rects, r)
}
