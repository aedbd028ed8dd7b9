// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/gogpu/framecache/core"
)

// PresentFunc delivers a finished frame to the window system. img holds
// the full frame; dirty lists the regions (device pixels) that changed
// since the previous present.
type PresentFunc func(img *image.RGBA, dirty []core.Rect) error

// ImageSurface is the CPU backend, rendering into an *image.RGBA.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.FillRect(core.Rect{X: 10, Y: 10, W: 100, H: 40}, core.RGB(200, 50, 50), false)
//	img := s.Image()
type ImageSurface struct {
	img *image.RGBA

	sx, sy float64

	clip      core.Rect // points
	pixelClip core.Rect // device pixels

	present PresentFunc
	closed  bool
}

// ImageOption configures an ImageSurface.
type ImageOption func(*ImageSurface)

// WithSurfaceScale sets the device pixels per point factors.
func WithSurfaceScale(sx, sy float64) ImageOption {
	return func(s *ImageSurface) {
		if sx > 0 {
			s.sx = sx
		}
		if sy > 0 {
			s.sy = sy
		}
	}
}

// WithPresentFunc sets the callback invoked by Present.
func WithPresentFunc(fn PresentFunc) ImageOption {
	return func(s *ImageSurface) { s.present = fn }
}

// NewImageSurface creates a CPU surface with the given dimensions in
// device pixels.
func NewImageSurface(width, height int, opts ...ImageOption) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	s := &ImageSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		sx:  1,
		sy:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetClip()
	return s
}

// Size returns the surface dimensions in device pixels.
func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Scale returns the device pixels per point factors.
func (s *ImageSurface) Scale() (float64, float64) { return s.sx, s.sy }

// pointBounds returns the surface bounds in points.
func (s *ImageSurface) pointBounds() core.Rect {
	w, h := s.Size()
	return core.Rect{W: int(float64(w) / s.sx), H: int(float64(h) / s.sy)}
}

func (s *ImageSurface) resetClip() {
	s.clip = s.pointBounds()
	w, h := s.Size()
	s.pixelClip = core.Rect{W: w, H: h}
}

// SetClip sets the clip rectangle in points, intersected with the
// surface bounds.
func (s *ImageSurface) SetClip(r core.Rect) {
	s.clip = r.Intersect(s.pointBounds())
	w, h := s.Size()
	s.pixelClip = s.clip.Scale(s.sx, s.sy).Intersect(core.Rect{W: w, H: h})
}

// Clip returns the active clip rectangle in points.
func (s *ImageSurface) Clip() core.Rect { return s.clip }

// PixelClip returns the active clip rectangle in device pixels.
func (s *ImageSurface) PixelClip() core.Rect { return s.pixelClip }

// Image exposes the backing pixels.
func (s *ImageSurface) Image() *image.RGBA { return s.img }

// FillRect fills a rectangle given in points.
func (s *ImageSurface) FillRect(r core.Rect, c core.Color, replace bool) {
	if s.closed {
		return
	}
	if c.A == 0 && !replace {
		return
	}
	px := r.Scale(s.sx, s.sy).Intersect(s.pixelClip)
	if px.Empty() {
		return
	}

	if replace || c.A == 0xFF {
		s.fillSolid(px, c)
		return
	}
	s.fillBlended(px, c)
}

// fillSolid stores the color into every pixel of the region.
func (s *ImageSurface) fillSolid(px core.Rect, c core.Color) {
	for y := px.Y; y < px.Y+px.H; y++ {
		row := s.img.Pix[y*s.img.Stride:]
		for x := px.X; x < px.X+px.W; x++ {
			i := x * 4
			row[i] = c.R
			row[i+1] = c.G
			row[i+2] = c.B
			row[i+3] = c.A
		}
	}
}

// fillBlended alpha blends the color over the region, preserving the
// destination alpha.
func (s *ImageSurface) fillBlended(px core.Rect, c core.Color) {
	a := uint32(c.A)
	ia := 255 - a
	cr, cg, cb := uint32(c.R)*a, uint32(c.G)*a, uint32(c.B)*a
	for y := px.Y; y < px.Y+px.H; y++ {
		row := s.img.Pix[y*s.img.Stride:]
		for x := px.X; x < px.X+px.W; x++ {
			i := x * 4
			row[i] = uint8((cr + uint32(row[i])*ia + 127) / 255)
			row[i+1] = uint8((cg + uint32(row[i+1])*ia + 127) / 255)
			row[i+2] = uint8((cb + uint32(row[i+2])*ia + 127) / 255)
		}
	}
}

// Blit copies a canvas onto the surface at point offset (x, y),
// stretching by the ratio between destination and canvas scales.
// Nearest-neighbor sampling keeps pixel art crisp.
func (s *ImageSurface) Blit(src *Canvas, x, y int, blend bool) {
	if s.closed || src == nil {
		return
	}
	srcImg := src.Image()
	sw, sh := src.Size()
	if sw == 0 || sh == 0 {
		return
	}
	csx, csy := src.Scale()

	// Destination rect in device pixels.
	dw := int(float64(sw) / csx * s.sx)
	dh := int(float64(sh) / csy * s.sy)
	dst := core.Rect{X: int(float64(x) * s.sx), Y: int(float64(y) * s.sy), W: dw, H: dh}
	vis := dst.Intersect(s.pixelClip)
	if vis.Empty() {
		return
	}

	for dy := vis.Y; dy < vis.Y+vis.H; dy++ {
		syi := (dy - dst.Y) * sh / dh
		srcRow := srcImg.Pix[syi*srcImg.Stride:]
		dstRow := s.img.Pix[dy*s.img.Stride:]
		for dx := vis.X; dx < vis.X+vis.W; dx++ {
			sxi := (dx - dst.X) * sw / dw
			si := sxi * 4
			di := dx * 4
			if !blend {
				copy(dstRow[di:di+4], srcRow[si:si+4])
				continue
			}
			a := uint32(srcRow[si+3])
			if a == 0 {
				continue
			}
			ia := 255 - a
			dstRow[di] = uint8((uint32(srcRow[si])*a + uint32(dstRow[di])*ia + 127) / 255)
			dstRow[di+1] = uint8((uint32(srcRow[si+1])*a + uint32(dstRow[di+1])*ia + 127) / 255)
			dstRow[di+2] = uint8((uint32(srcRow[si+2])*a + uint32(dstRow[di+2])*ia + 127) / 255)
		}
	}
}

// Present delivers the frame through the configured PresentFunc. A
// surface without one accepts and drops the frame, which suits
// off-screen rendering and tests.
func (s *ImageSurface) Present(dirty []core.Rect) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if s.present == nil {
		return nil
	}
	return s.present(s.img, dirty)
}

// Resize reallocates the backing store. Content is discarded and the
// clip resets to the full surface.
func (s *ImageSurface) Resize(w, h int) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.resetClip()
	return nil
}

// Close releases the surface. Close is idempotent.
func (s *ImageSurface) Close() error {
	s.closed = true
	return nil
}

func init() {
	Register("software", 10, func(opts Options) (Surface, error) {
		sc := opts.scaleOrDefault()
		return NewImageSurface(opts.Width, opts.Height, WithSurfaceScale(sc, sc)), nil
	}, nil)
}
