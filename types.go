package framecache

import "github.com/gogpu/framecache/core"

// Rect is an axis-aligned rectangle in integer point coordinates.
type Rect = core.Rect

// Color is a non-premultiplied RGBA color.
type Color = core.Color

// Point is a polygon vertex or Bezier control point.
type Point = core.Point

// Point tags for DrawPoly outlines.
const (
	PointOnCurve      = core.PointOnCurve
	PointControlQuad  = core.PointControlQuad
	PointControlCubic = core.PointControlCubic
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color { return core.RGB(r, g, b) }

// Hex parses a color from a hex string such as "#1e1e2e".
func Hex(hex string) Color { return core.Hex(hex) }

// RectFromFloats converts a fractional rectangle to a Rect by snapping
// both edges to the nearest integer.
func RectFromFloats(x, y, w, h float64) Rect { return core.RectFromFloats(x, y, w, h) }
