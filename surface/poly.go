// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"golang.org/x/image/vector"

	"github.com/gogpu/framecache/core"
)

// FillPoly fills a closed outline described by tagged points in point
// coordinates. On-curve points connect with lines; control points form
// quadratic or cubic segments with the following on-curve point. The
// outline is closed automatically.
func (s *ImageSurface) FillPoly(pts []core.Point, c core.Color) {
	if s.closed || len(pts) < 3 || c.A == 0 {
		return
	}

	bounds, ok := core.PolyBounds(pts)
	if !ok {
		return
	}
	vis := bounds.Scale(s.sx, s.sy).Intersect(s.pixelClip)
	if vis.Empty() {
		return
	}

	// Rasterize relative to the visible region so the mask stays small.
	var r vector.Rasterizer
	r.Reset(vis.W, vis.H)
	appendPoly(&r, pts, s.sx, s.sy, float64(vis.X), float64(vis.Y))
	mask := image.NewAlpha(image.Rect(0, 0, vis.W, vis.H))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	a := uint32(c.A)
	cr, cg, cb := uint32(c.R), uint32(c.G), uint32(c.B)
	for y := 0; y < vis.H; y++ {
		srcRow := mask.Pix[y*mask.Stride:]
		dstRow := s.img.Pix[(vis.Y+y)*s.img.Stride:]
		for x := 0; x < vis.W; x++ {
			cov := uint32(srcRow[x]) * a / 255
			if cov == 0 {
				continue
			}
			ia := 255 - cov
			i := (vis.X + x) * 4
			dstRow[i] = uint8((cr*cov + uint32(dstRow[i])*ia + 127) / 255)
			dstRow[i+1] = uint8((cg*cov + uint32(dstRow[i+1])*ia + 127) / 255)
			dstRow[i+2] = uint8((cb*cov + uint32(dstRow[i+2])*ia + 127) / 255)
		}
	}
}

// appendPoly walks the tagged points, emitting curve segments for
// control tags. A trailing control point without a following on-curve
// point closes against the first point.
func appendPoly(r *vector.Rasterizer, pts []core.Point, sx, sy, offX, offY float64) {
	px := func(p core.Point) (float32, float32) {
		return float32(p.X*sx - offX), float32(p.Y*sy - offY)
	}

	x0, y0 := px(pts[0])
	r.MoveTo(x0, y0)
	for i := 1; i < len(pts); i++ {
		p := pts[i]
		switch p.Tag {
		case core.PointControlQuad:
			cx, cy := px(p)
			ex, ey := x0, y0
			if i+1 < len(pts) {
				i++
				ex, ey = px(pts[i])
			}
			r.QuadTo(cx, cy, ex, ey)
		case core.PointControlCubic:
			c1x, c1y := px(p)
			c2x, c2y := c1x, c1y
			ex, ey := x0, y0
			if i+1 < len(pts) {
				i++
				c2x, c2y = px(pts[i])
			}
			if i+1 < len(pts) {
				i++
				ex, ey = px(pts[i])
			}
			r.CubeTo(c1x, c1y, c2x, c2y, ex, ey)
		default:
			x, y := px(p)
			r.LineTo(x, y)
		}
	}
	r.ClosePath()
}
