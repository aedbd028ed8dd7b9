// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"sync/atomic"

	"github.com/gogpu/framecache/core"
)

// Canvas is an off-screen pixel buffer that can be blitted onto a
// surface. A frame that records a canvas draw pins it; mutations are
// refused until every recorded frame has released it, so the pixels a
// frame replays are the pixels it recorded.
//
// The version counter advances on every mutation and feeds change
// detection: a canvas redrawn with identical content still invalidates
// the cells it covers.
type Canvas struct {
	id      uint64
	surf    *ImageSurface
	version atomic.Uint64
	pins    atomic.Int32
}

// canvasIDs hands out process-unique canvas identities.
var canvasIDs atomic.Uint64

// NewCanvas creates a canvas with the given dimensions in device
// pixels.
func NewCanvas(width, height int, opts ...ImageOption) *Canvas {
	return &Canvas{id: canvasIDs.Add(1), surf: NewImageSurface(width, height, opts...)}
}

// ID returns the canvas's process-unique identity.
func (c *Canvas) ID() uint64 { return c.id }

// Size returns the canvas dimensions in device pixels.
func (c *Canvas) Size() (int, int) { return c.surf.Size() }

// Scale returns the canvas device pixels per point factors.
func (c *Canvas) Scale() (float64, float64) { return c.surf.Scale() }

// Image exposes the backing pixels. Callers must not write through it
// while the canvas is pinned.
func (c *Canvas) Image() *image.RGBA { return c.surf.Image() }

// Surface returns the canvas's drawing surface for rendering into it
// with the same machinery as a window surface. Callers must check
// Pinned before drawing into it and call Bump afterwards so change
// detection sees the new content.
func (c *Canvas) Surface() *ImageSurface { return c.surf }

// Version returns the mutation counter.
func (c *Canvas) Version() uint64 { return c.version.Load() }

// Bump advances the mutation counter. Callers that write through
// Surface or Image directly must call it so change detection sees the
// new content.
func (c *Canvas) Bump() { c.version.Add(1) }

// Retain pins the canvas against mutation.
func (c *Canvas) Retain() { c.pins.Add(1) }

// Release drops one pin. Releasing an unpinned canvas panics, since it
// means retain bookkeeping is broken.
func (c *Canvas) Release() {
	if c.pins.Add(-1) < 0 {
		panic("surface: Canvas.Release without matching Retain")
	}
}

// Pinned reports whether any recorded frame holds the canvas.
func (c *Canvas) Pinned() bool { return c.pins.Load() > 0 }

// GetPixel reads one pixel. Out-of-bounds reads return the zero color.
func (c *Canvas) GetPixel(x, y int) core.Color {
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return core.Color{}
	}
	img := c.surf.Image()
	i := y*img.Stride + x*4
	return core.Color{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
}

// SetPixel writes one pixel. Out-of-bounds writes are dropped silently;
// writes to a pinned canvas fail.
func (c *Canvas) SetPixel(x, y int, col core.Color) error {
	if c.Pinned() {
		return ErrCanvasPinned
	}
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return nil
	}
	img := c.surf.Image()
	i := y*img.Stride + x*4
	img.Pix[i] = col.R
	img.Pix[i+1] = col.G
	img.Pix[i+2] = col.B
	img.Pix[i+3] = col.A
	c.version.Add(1)
	return nil
}

// Fill stores the color into every pixel.
func (c *Canvas) Fill(col core.Color) error {
	if c.Pinned() {
		return ErrCanvasPinned
	}
	w, h := c.Size()
	c.surf.fillSolid(core.Rect{W: w, H: h}, col)
	c.version.Add(1)
	return nil
}

// CopyScaled stretches the src region of another canvas into the dst
// region of this one with nearest-neighbor sampling. Regions are in
// device pixels and are clamped to their canvas bounds.
func (c *Canvas) CopyScaled(src *Canvas, srcRect, dstRect core.Rect) error {
	if c.Pinned() {
		return ErrCanvasPinned
	}
	if src == nil || srcRect.Empty() || dstRect.Empty() {
		return nil
	}
	sw, sh := src.Size()
	srcRect = srcRect.Intersect(core.Rect{W: sw, H: sh})
	dw, dh := c.Size()
	vis := dstRect.Intersect(core.Rect{W: dw, H: dh})
	if srcRect.Empty() || vis.Empty() {
		return nil
	}

	srcImg := src.Image()
	dstImg := c.surf.Image()
	for dy := vis.Y; dy < vis.Y+vis.H; dy++ {
		sy := srcRect.Y + (dy-dstRect.Y)*srcRect.H/dstRect.H
		srcRow := srcImg.Pix[sy*srcImg.Stride:]
		dstRow := dstImg.Pix[dy*dstImg.Stride:]
		for dx := vis.X; dx < vis.X+vis.W; dx++ {
			sx := srcRect.X + (dx-dstRect.X)*srcRect.W/dstRect.W
			copy(dstRow[dx*4:dx*4+4], srcRow[sx*4:sx*4+4])
		}
	}
	c.version.Add(1)
	return nil
}
