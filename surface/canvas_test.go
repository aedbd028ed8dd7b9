// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/framecache/core"
)

func TestCanvasSetGetPixel(t *testing.T) {
	cv := NewCanvas(8, 8)

	c := core.Color{R: 10, G: 20, B: 30, A: 0xFF}
	if err := cv.SetPixel(3, 4, c); err != nil {
		t.Fatalf("SetPixel() error = %v", err)
	}
	if got := cv.GetPixel(3, 4); got != c {
		t.Errorf("GetPixel(3, 4) = %+v, want %+v", got, c)
	}
	if got := cv.GetPixel(100, 100); got != (core.Color{}) {
		t.Errorf("GetPixel out of bounds = %+v, want zero", got)
	}
}

func TestCanvasSetPixelOutOfBounds(t *testing.T) {
	cv := NewCanvas(4, 4)
	v := cv.Version()
	if err := cv.SetPixel(-1, 10, core.Color{R: 1}); err != nil {
		t.Fatalf("SetPixel() error = %v", err)
	}
	if cv.Version() != v {
		t.Error("out-of-bounds SetPixel bumped the version")
	}
}

func TestCanvasVersion(t *testing.T) {
	cv := NewCanvas(4, 4)

	v0 := cv.Version()
	if err := cv.Fill(core.Color{R: 1, A: 0xFF}); err != nil {
		t.Fatalf("Fill() error = %v", err)
	}
	if cv.Version() == v0 {
		t.Error("Fill() did not bump the version")
	}

	v1 := cv.Version()
	if err := cv.SetPixel(0, 0, core.Color{G: 1}); err != nil {
		t.Fatalf("SetPixel() error = %v", err)
	}
	if cv.Version() == v1 {
		t.Error("SetPixel() did not bump the version")
	}
}

func TestCanvasPinBlocksMutation(t *testing.T) {
	cv := NewCanvas(4, 4)
	cv.Retain()

	if err := cv.SetPixel(0, 0, core.Color{R: 1}); !errors.Is(err, ErrCanvasPinned) {
		t.Errorf("SetPixel() on pinned canvas error = %v, want ErrCanvasPinned", err)
	}
	if err := cv.Fill(core.Color{}); !errors.Is(err, ErrCanvasPinned) {
		t.Errorf("Fill() on pinned canvas error = %v, want ErrCanvasPinned", err)
	}
	if err := cv.CopyScaled(NewCanvas(2, 2), core.Rect{W: 2, H: 2}, core.Rect{W: 4, H: 4}); !errors.Is(err, ErrCanvasPinned) {
		t.Errorf("CopyScaled() on pinned canvas error = %v, want ErrCanvasPinned", err)
	}

	cv.Release()
	if cv.Pinned() {
		t.Error("Pinned() = true after Release")
	}
	if err := cv.SetPixel(0, 0, core.Color{R: 1}); err != nil {
		t.Errorf("SetPixel() after Release error = %v", err)
	}
}

func TestCanvasNestedPins(t *testing.T) {
	cv := NewCanvas(2, 2)
	cv.Retain()
	cv.Retain()
	cv.Release()
	if !cv.Pinned() {
		t.Error("Pinned() = false with one pin remaining")
	}
	cv.Release()
	if cv.Pinned() {
		t.Error("Pinned() = true with no pins remaining")
	}
}

func TestCanvasReleaseWithoutRetainPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Release() without Retain did not panic")
		}
	}()
	NewCanvas(2, 2).Release()
}

func TestCanvasCopyScaled(t *testing.T) {
	src := NewCanvas(2, 2)
	if err := src.SetPixel(0, 0, core.Color{R: 0xFF, A: 0xFF}); err != nil {
		t.Fatalf("SetPixel() error = %v", err)
	}
	if err := src.SetPixel(1, 1, core.Color{B: 0xFF, A: 0xFF}); err != nil {
		t.Fatalf("SetPixel() error = %v", err)
	}

	dst := NewCanvas(4, 4)
	if err := dst.CopyScaled(src, core.Rect{W: 2, H: 2}, core.Rect{W: 4, H: 4}); err != nil {
		t.Fatalf("CopyScaled() error = %v", err)
	}

	// 2x upscale: each source pixel covers a 2x2 block.
	if got := dst.GetPixel(1, 1); got.R != 0xFF {
		t.Errorf("upscaled (1,1) = %+v, want red", got)
	}
	if got := dst.GetPixel(3, 3); got.B != 0xFF {
		t.Errorf("upscaled (3,3) = %+v, want blue", got)
	}
}

func TestCanvasCopyScaledEmptyRegions(t *testing.T) {
	dst := NewCanvas(4, 4)
	v := dst.Version()
	if err := dst.CopyScaled(NewCanvas(2, 2), core.Rect{}, core.Rect{W: 4, H: 4}); err != nil {
		t.Fatalf("CopyScaled() error = %v", err)
	}
	if dst.Version() != v {
		t.Error("empty-region copy bumped the version")
	}
}
