package text

import (
	"image"
	"math"

	"github.com/gogpu/framecache/core"
)

// Target is the drawing destination Draw renders glyphs onto. It is a
// narrow view of surface.Surface, declared here so the text package
// does not depend on the surface package.
type Target interface {
	// Image exposes the backing pixels for the glyph blit loop.
	Image() *image.RGBA
	// PixelClip returns the active clip rectangle in device pixels.
	PixelClip() core.Rect
	// Scale returns device pixels per point in each axis.
	Scale() (float64, float64)
	// FillRect fills a rectangle given in points. Used for underline,
	// strikethrough, and the placeholder box.
	FillRect(r core.Rect, c core.Color, replace bool)
}

// Draw renders shaped text at baseline origin (x, y) in points and
// returns the pen x position after the last glyph, in points.
//
// Underline and strikethrough are accumulated per run: a contiguous
// sequence of glyphs resolved from the same font produces one rectangle
// rather than one per glyph.
func Draw(dst Target, g *FontGroup, text string, x, y float64, col core.Color, tab Tab) float64 {
	sx, sy := dst.Scale()
	first := g.First()
	penX := x * sx
	pixelY := y * sy

	glyphs := g.shaper.Shape(first, text)
	if len(glyphs) == 0 {
		return x
	}

	underline := first.style&StyleUnderline != 0
	strike := first.style&StyleStrikethrough != 0

	var runFont *Font
	runStartX := penX
	flushRun := func(endX float64) {
		if runFont == nil || (!underline && !strike) {
			return
		}
		thickness := int(math.Ceil(float64(runFont.underlineThicknessPx) / runFont.scale))
		if thickness < 1 {
			thickness = 1
		}
		w := (endX - runStartX) / sx
		if w <= 0 {
			return
		}
		if underline {
			dst.FillRect(core.RectFromFloats(runStartX/sx, y+float64(runFont.Height()-1), w, float64(thickness)), col, false)
		}
		if strike {
			dst.FillRect(core.RectFromFloats(runStartX/sx, y+float64(runFont.Height())/2, w, float64(thickness)), col, false)
		}
	}

	for _, sg := range glyphs {
		phase := int(math.Mod(penX, 1.0) * subpixelPhases)
		font, metric, set := g.GetGlyph(sg.GID, sg.Rune, phase)
		if metric == nil {
			break
		}

		if !metric.Loaded && sg.Rune > 0xFF {
			// Box for the truly unknown codepoint, so something
			// bounded is always rendered.
			dst.FillRect(core.RectFromFloats(
				penX/sx+1, y, font.spaceAdvancePx/sx-1, float64(g.Height())), col, false)
		}

		if set != nil && set.pixels != nil && col.A > 0 {
			startX := int(math.Floor(penX)) + metric.BitmapLeft
			blitGlyph(dst.Image(), dst.PixelClip(), set, metric, font,
				startX, int(pixelY), col)
		}

		if runFont != font {
			flushRun(penX)
			runFont = font
			runStartX = penX
		}
		penX += g.glyphAdvance(font, metric, sg.Rune, penX-x*sx, tab)
	}
	flushRun(penX)

	return penX / sx
}

// blitGlyph blends one glyph from its atlas strip onto the image,
// clipped to the device-pixel clip rectangle. Grayscale and mono strips
// use the same coverage for all three channels; subpixel strips carry
// per-channel coverage.
func blitGlyph(img *image.RGBA, clip core.Rect, set *glyphSet, m *GlyphMetric, f *Font, startX, pixelY int, col core.Color) {
	width := m.X1 - m.X0
	if width <= 0 {
		return
	}
	clipEndX := clip.X + clip.W
	clipEndY := clip.Y + clip.H
	if startX >= clipEndX || startX+width < clip.X {
		return
	}

	top := pixelY + f.baselinePx - m.BitmapTop
	subpixel := f.antialiasing == AntialiasingSubpixel
	ca := uint32(col.A)
	cr, cg, cb := uint32(col.R), uint32(col.G), uint32(col.B)

	for line := m.Y0; line < m.Y1; line++ {
		ty := top + line - m.Y0
		if ty < clip.Y {
			continue
		}
		if ty >= clipEndY {
			break
		}

		gx0, gx1 := 0, width
		if startX+gx1 > clipEndX {
			gx1 = clipEndX - startX
		}
		if startX+gx0 < clip.X {
			gx0 = clip.X - startX
		}

		srcRow := set.pixels[line*set.stride:]
		dstRow := img.Pix[ty*img.Stride:]
		for gx := gx0; gx < gx1; gx++ {
			var sr, sg, sb uint32
			if subpixel {
				si := (m.X0 + gx) * 3
				sr = uint32(srcRow[si])
				sg = uint32(srcRow[si+1])
				sb = uint32(srcRow[si+2])
			} else {
				s := uint32(srcRow[m.X0+gx])
				sr, sg, sb = s, s, s
			}
			if sr|sg|sb == 0 {
				continue
			}

			di := (startX + gx) * 4
			dr := uint32(dstRow[di])
			dg := uint32(dstRow[di+1])
			db := uint32(dstRow[di+2])

			dstRow[di] = uint8((cr*sr*ca + dr*(65025-sr*ca) + 32767) / 65025)
			dstRow[di+1] = uint8((cg*sg*ca + dg*(65025-sg*ca) + 32767) / 65025)
			dstRow[di+2] = uint8((cb*sb*ca + db*(65025-sb*ca) + 32767) / 65025)
		}
	}
}
