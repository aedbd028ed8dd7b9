package framecache

import (
	"testing"

	"github.com/gogpu/framecache/core"
)

func TestDirtyOverlapMergesToUnion(t *testing.T) {
	d := dirtyList{max: 256}
	d.push(core.Rect{W: 2, H: 2})
	d.push(core.Rect{X: 1, Y: 1, W: 2, H: 2})

	if len(d.rects) != 1 {
		t.Fatalf("len = %d, want 1", len(d.rects))
	}
	if d.rects[0] != (core.Rect{W: 3, H: 3}) {
		t.Errorf("merged = %+v, want the union {0 0 3 3}", d.rects[0])
	}
}

func TestDirtyTouchingMerges(t *testing.T) {
	d := dirtyList{max: 256}
	d.push(core.Rect{W: 1, H: 1})
	d.push(core.Rect{X: 1, W: 1, H: 1})

	if len(d.rects) != 1 || d.rects[0] != (core.Rect{W: 2, H: 1}) {
		t.Errorf("rects = %v, want one {0 0 2 1}", d.rects)
	}
}

func TestDirtySeparateStaysSeparate(t *testing.T) {
	d := dirtyList{max: 256}
	d.push(core.Rect{W: 1, H: 1})
	d.push(core.Rect{X: 5, Y: 5, W: 1, H: 1})

	if len(d.rects) != 2 {
		t.Errorf("len = %d, want 2 separate regions", len(d.rects))
	}
}

func TestDirtyBoundMergesInsteadOfDropping(t *testing.T) {
	d := dirtyList{max: 1}
	d.push(core.Rect{W: 1, H: 1})
	d.push(core.Rect{X: 5, Y: 5, W: 1, H: 1})

	if len(d.rects) != 1 {
		t.Fatalf("len = %d, want the bound of 1", len(d.rects))
	}
	if d.rects[0] != (core.Rect{W: 6, H: 6}) {
		t.Errorf("rect = %+v, want the union {0 0 6 6}", d.rects[0])
	}
}

func TestDirtyReset(t *testing.T) {
	d := dirtyList{max: 256}
	d.push(core.Rect{W: 1, H: 1})
	d.reset()
	if len(d.rects) != 0 {
		t.Errorf("len = %d after reset, want 0", len(d.rects))
	}
}
