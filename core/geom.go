// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package core

import "math"

// Rect is an axis-aligned rectangle in integer coordinates.
// W and H are extents, not corner coordinates; a Rect with W <= 0 or
// H <= 0 is empty.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Overlaps reports whether r and o share area or touch edges.
// Touching rectangles count as overlapping so that adjacent dirty cells
// merge into a single region.
func (r Rect) Overlaps(o Rect) bool {
	return o.X+o.W >= r.X && o.X <= r.X+r.W &&
		o.Y+o.H >= r.Y && o.Y <= r.Y+r.H
}

// Intersect returns the intersection of r and o.
// The result has zero width and/or height when they do not intersect.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.W, o.X+o.W)
	y2 := min(r.Y+r.H, o.Y+o.H)
	return Rect{X: x1, Y: y1, W: max(0, x2-x1), H: max(0, y2-y1)}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x1 := min(r.X, o.X)
	y1 := min(r.Y, o.Y)
	x2 := max(r.X+r.W, o.X+o.W)
	y2 := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Scale returns r with every coordinate multiplied by the given factors.
func (r Rect) Scale(sx, sy float64) Rect {
	return Rect{
		X: int(float64(r.X) * sx),
		Y: int(float64(r.Y) * sy),
		W: int(float64(r.W) * sx),
		H: int(float64(r.H) * sy),
	}
}

// RectFromFloats converts a fractional rectangle to an integer Rect by
// snapping both edges to the nearest integer. Snapping edges rather than
// rounding width keeps abutting fractional rectangles gap-free.
func RectFromFloats(x, y, w, h float64) Rect {
	x1 := int(x + 0.5)
	y1 := int(y + 0.5)
	x2 := int(x + w + 0.5)
	y2 := int(y + h + 0.5)
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// PointTag classifies a polygon point.
type PointTag uint8

const (
	// PointOnCurve marks a point the outline passes through.
	PointOnCurve PointTag = iota
	// PointControlQuad marks the control point of a quadratic segment.
	PointControlQuad
	// PointControlCubic marks a control point of a cubic segment.
	PointControlCubic
)

// Point is a polygon vertex or Bezier control point.
type Point struct {
	X, Y float64
	Tag  PointTag
}

// PolyBounds computes the control box of a point list: the bounds of all
// on-curve and control points. Curves are not flattened, so the box may
// slightly over-estimate the drawn extent. Returns false for an empty
// point list.
func PolyBounds(points []Point) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	x1, y1 := int(math.Floor(minX)), int(math.Floor(minY))
	x2, y2 := int(math.Ceil(maxX)), int(math.Ceil(maxY))
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}, true
}
