// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"testing"

	"github.com/gogpu/framecache/core"
)

func TestFillPolyTriangle(t *testing.T) {
	s := NewImageSurface(40, 40)
	defer s.Close()

	s.FillPoly([]core.Point{
		{X: 20, Y: 5},
		{X: 35, Y: 35},
		{X: 5, Y: 35},
	}, core.Color{R: 0xFF, A: 0xFF})

	if got := pixelAt(s.Image(), 20, 25); got.R < 200 {
		t.Errorf("centroid pixel = %+v, want filled", got)
	}
	if got := pixelAt(s.Image(), 2, 2); got.R != 0 {
		t.Errorf("outside pixel = %+v, want untouched", got)
	}
}

func TestFillPolyQuadCurve(t *testing.T) {
	s := NewImageSurface(40, 40)
	defer s.Close()

	// A filled shape whose top edge bulges upward through a quadratic
	// control point.
	s.FillPoly([]core.Point{
		{X: 5, Y: 20},
		{X: 20, Y: 0, Tag: core.PointControlQuad},
		{X: 35, Y: 20},
		{X: 35, Y: 35},
		{X: 5, Y: 35},
	}, core.Color{G: 0xFF, A: 0xFF})

	// The curve apex is above the chord between the end points.
	if got := pixelAt(s.Image(), 20, 12); got.G < 100 {
		t.Errorf("pixel under curve apex = %+v, want filled", got)
	}
	if got := pixelAt(s.Image(), 20, 2); got.G > 100 {
		t.Errorf("pixel above curve = %+v, want untouched", got)
	}
}

func TestFillPolyRespectsClip(t *testing.T) {
	s := NewImageSurface(40, 40)
	defer s.Close()
	s.SetClip(core.Rect{X: 0, Y: 0, W: 20, H: 40})

	s.FillPoly([]core.Point{
		{X: 5, Y: 5},
		{X: 35, Y: 5},
		{X: 35, Y: 35},
		{X: 5, Y: 35},
	}, core.Color{B: 0xFF, A: 0xFF})

	if got := pixelAt(s.Image(), 10, 10); got.B < 200 {
		t.Errorf("pixel inside clip = %+v, want filled", got)
	}
	if got := pixelAt(s.Image(), 30, 10); got.B != 0 {
		t.Errorf("pixel outside clip = %+v, want untouched", got)
	}
}

func TestFillPolyDegenerate(t *testing.T) {
	s := NewImageSurface(10, 10)
	defer s.Close()

	// Fewer than three points or zero alpha draw nothing.
	s.FillPoly([]core.Point{{X: 1, Y: 1}, {X: 5, Y: 5}}, core.Color{R: 0xFF, A: 0xFF})
	s.FillPoly([]core.Point{{X: 1, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 5}}, core.Color{R: 0xFF})
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if got := pixelAt(s.Image(), x, y); got.R != 0 {
				t.Fatalf("pixel (%d,%d) = %+v, want untouched", x, y, got)
			}
		}
	}
}
