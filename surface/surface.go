// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/framecache/core"
)

// Surface is the rendering target abstraction the frame cache replays
// commands into.
//
// Geometry passed to drawing operations is in points; the surface
// converts to device pixels using its scale factors. Present receives
// the dirty regions in device pixels.
//
// Surfaces are NOT thread-safe. Each surface should be used from a
// single goroutine, or external synchronization must be used.
type Surface interface {
	// Size returns the surface dimensions in device pixels.
	Size() (w, h int)

	// Scale returns device pixels per point in each axis.
	Scale() (sx, sy float64)

	// SetClip sets the clip rectangle in points. Drawing outside it is
	// discarded. The rectangle is intersected with the surface bounds.
	SetClip(r core.Rect)

	// Clip returns the active clip rectangle in points.
	Clip() core.Rect

	// PixelClip returns the active clip rectangle in device pixels.
	PixelClip() core.Rect

	// FillRect fills a rectangle given in points. An opaque color or
	// replace=true stores the color directly; otherwise the fill is
	// alpha blended over the destination.
	FillRect(r core.Rect, c core.Color, replace bool)

	// FillPoly fills a closed outline of tagged points given in points.
	// Quadratic and cubic control tags are honored.
	FillPoly(pts []core.Point, c core.Color)

	// Blit copies a canvas onto the surface at a point offset,
	// stretching by the scale factors. blend=false replaces destination
	// pixels.
	Blit(src *Canvas, x, y int, blend bool)

	// Image exposes the backing pixels. GPU surfaces keep a CPU copy of
	// the frame, so this is always non-nil for an open surface.
	Image() *image.RGBA

	// Present pushes the listed dirty regions (device pixels) to the
	// output. Implementations may ignore regions they cannot use.
	Present(dirty []core.Rect) error

	// Close releases the surface's resources. Close is idempotent.
	Close() error
}

// Resizable is an optional interface for surfaces whose backing store
// can change dimensions.
type Resizable interface {
	Surface

	// Resize changes the surface dimensions in device pixels. Existing
	// content is discarded.
	Resize(w, h int) error
}

// Options configures surface creation through the registry.
type Options struct {
	// Width and Height are the surface dimensions in device pixels.
	Width  int
	Height int

	// Scale is the device pixels per point factor for both axes.
	// Zero means 1.
	Scale float64
}

func (o Options) scaleOrDefault() float64 {
	if o.Scale > 0 {
		return o.Scale
	}
	return 1
}
