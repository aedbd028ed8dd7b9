package text

import (
	"image"
	"math"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"
)

// glyphSet is a block of glyphSetSize consecutive glyph indices
// rasterized together into one horizontal strip. Grayscale and mono
// strips hold one coverage byte per pixel; subpixel strips hold three.
type glyphSet struct {
	pixels  []uint8
	stride  int
	rows    int
	bpp     int
	metrics [glyphSetSize]GlyphMetric
}

// lcdWeights is the fixed 5-tap FIR filter applied to the 3x
// horizontally oversampled coverage in subpixel mode.
var lcdWeights = [5]uint32{0x10, 0x40, 0x70, 0x40, 0x10}

type outlinePoint struct {
	X, Y float64
}

type outlineSeg struct {
	Op   sfnt.SegmentOp
	Args [3]outlinePoint
}

// loadGlyphSet rasterizes the glyph block idx for one subpixel phase.
// Glyphs the font cannot supply keep a zero metric with Loaded false.
func (f *Font) loadGlyphSet(idx, phase int) *glyphSet {
	set := &glyphSet{bpp: 1}
	if f.antialiasing == AntialiasingSubpixel {
		set.bpp = 3
	}

	type pendingGlyph struct {
		segs  []outlineSeg
		width int
		rows  int
	}
	var pend [glyphSetSize]pendingGlyph

	// Subpixel filtering bleeds one pixel to each side; bold and smooth
	// widen the outline by up to one pixel.
	padLeft, padRight, padBottom := 0, 1, 1
	if f.antialiasing == AntialiasingSubpixel {
		padLeft++
		padRight++
	}

	phaseOffset := float64(phase) / subpixelPhases
	numGlyphs := f.sf.NumGlyphs()
	penX := 0
	maxRows := 0

	// Measurement pass: transform outlines, compute strip layout and
	// advances.
	for i := 0; i < glyphSetSize; i++ {
		gid := idx*glyphSetSize + i
		if gid == 0 || gid >= numGlyphs {
			continue
		}
		rawSegs, err := f.sf.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), f.ppem(), nil)
		if err != nil {
			continue
		}
		adv, err := f.sf.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), f.ppem(), f.xHinting())
		if err != nil {
			continue
		}
		// Hinting alone reports uneven advances for some monospace
		// faces, so fixed-pitch faces take the unhinted advance instead.
		if f.fixedPitch {
			if unhinted, uerr := f.sf.GlyphAdvance(&f.buf, sfnt.GlyphIndex(gid), f.ppem(), xfont.HintingNone); uerr == nil {
				adv = unhinted
			}
		}

		m := &set.metrics[i]
		m.Loaded = true
		m.XAdvance = fixedToFloat(adv)

		segs := transformOutline(rawSegs, f.style, phaseOffset)
		if len(segs) == 0 {
			// Whitespace glyph: valid, advances, draws nothing.
			continue
		}
		minX, minY, maxX, maxY := outlineBounds(segs)
		x0 := int(math.Floor(minX)) - padLeft
		x1 := int(math.Ceil(maxX)) + padRight
		y0 := int(math.Floor(minY))
		y1 := int(math.Ceil(maxY)) + padBottom

		width := x1 - x0
		rows := y1 - y0
		if width <= 0 || rows <= 0 {
			continue
		}

		m.X0 = penX
		m.X1 = penX + width
		m.Y0 = 0
		m.Y1 = rows
		m.BitmapLeft = x0
		m.BitmapTop = -y0

		// Shift the outline so the bitmap origin is (0, 0).
		translateOutline(segs, -float64(x0), -float64(y0))
		pend[i] = pendingGlyph{segs: segs, width: width, rows: rows}

		penX += width
		if rows > maxRows {
			maxRows = rows
		}
	}

	if penX == 0 {
		return set
	}
	set.rows = maxRows
	set.stride = penX * set.bpp
	set.pixels = make([]uint8, set.stride*maxRows)

	// Raster pass.
	var r vector.Rasterizer
	for i := range pend {
		p := &pend[i]
		if p.segs == nil {
			continue
		}
		mask := f.rasterizeGlyph(&r, p.segs, p.width, p.rows)
		f.storeGlyph(set, &set.metrics[i], mask, p.width, p.rows)
	}
	return set
}

// transformOutline converts sfnt segments to pixel-space outline
// segments, applying style synthesis (italic shear) and the subpixel
// phase offset. Bold and smooth emboldening happen at raster time by
// accumulating offset passes.
func transformOutline(segs sfnt.Segments, style Style, phaseOffset float64) []outlineSeg {
	if len(segs) == 0 {
		return nil
	}
	shear := 0.0
	if style&StyleItalic != 0 {
		shear = 0.25
	}
	out := make([]outlineSeg, len(segs))
	for i, s := range segs {
		out[i].Op = s.Op
		for j, a := range s.Args {
			x := fixedToFloat(a.X)
			y := fixedToFloat(a.Y)
			// y grows downward, so a rightward slant subtracts the
			// sheared y.
			out[i].Args[j] = outlinePoint{X: x - shear*y + phaseOffset, Y: y}
		}
	}
	return out
}

func translateOutline(segs []outlineSeg, dx, dy float64) {
	for i := range segs {
		for j := range segs[i].Args {
			segs[i].Args[j].X += dx
			segs[i].Args[j].Y += dy
		}
	}
}

func outlineBounds(segs []outlineSeg) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, s := range segs {
		n := segmentArgs(s.Op)
		for j := 0; j < n; j++ {
			p := s.Args[j]
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	return
}

func segmentArgs(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}

// rasterizeGlyph renders the outline to an alpha mask. Subpixel mode
// oversamples 3x horizontally; bold and smooth accumulate extra offset
// passes, which widens coverage without touching finished bitmaps.
func (f *Font) rasterizeGlyph(r *vector.Rasterizer, segs []outlineSeg, width, rows int) *image.Alpha {
	xScale := 1.0
	maskW := width
	if f.antialiasing == AntialiasingSubpixel {
		xScale = subpixelPhases
		maskW = width * subpixelPhases
	}

	offsets := [][2]float64{{0, 0}}
	if f.style&StyleBold != 0 {
		offsets = append(offsets, [2]float64{0.5, 0})
	}
	if f.style&StyleSmooth != 0 {
		offsets = append(offsets, [2]float64{0.5, 0}, [2]float64{0, 0.5})
	}

	mask := image.NewAlpha(image.Rect(0, 0, maskW, rows))
	for _, off := range offsets {
		r.Reset(maskW, rows)
		appendOutline(r, segs, off[0], off[1], xScale)
		r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	}
	return mask
}

func appendOutline(r *vector.Rasterizer, segs []outlineSeg, dx, dy, xScale float64) {
	px := func(p outlinePoint) (float32, float32) {
		return float32((p.X + dx) * xScale), float32(p.Y + dy)
	}
	started := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				r.ClosePath()
			}
			x, y := px(s.Args[0])
			r.MoveTo(x, y)
			started = true
		case sfnt.SegmentOpLineTo:
			x, y := px(s.Args[0])
			r.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			bx, by := px(s.Args[0])
			cx, cy := px(s.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := px(s.Args[0])
			cx, cy := px(s.Args[1])
			ex, ey := px(s.Args[2])
			r.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	if started {
		r.ClosePath()
	}
}

// storeGlyph copies a rasterized mask into the strip, applying the
// per-mode coverage encoding.
func (f *Font) storeGlyph(set *glyphSet, m *GlyphMetric, mask *image.Alpha, width, rows int) {
	switch f.antialiasing {
	case AntialiasingSubpixel:
		for y := 0; y < rows; y++ {
			src := mask.Pix[y*mask.Stride:]
			dst := set.pixels[y*set.stride+m.X0*3:]
			for x := 0; x < width; x++ {
				for k := 0; k < 3; k++ {
					s := x*3 + k
					var acc uint32
					for t := 0; t < 5; t++ {
						si := s + t - 2
						if si < 0 || si >= width*3 {
							continue
						}
						acc += lcdWeights[t] * uint32(src[si])
					}
					v := acc / 256
					if v > 255 {
						v = 255
					}
					dst[x*3+k] = uint8(v)
				}
			}
		}
	case AntialiasingNone:
		for y := 0; y < rows; y++ {
			src := mask.Pix[y*mask.Stride:]
			dst := set.pixels[y*set.stride+m.X0:]
			for x := 0; x < width; x++ {
				if src[x] >= 128 {
					dst[x] = 0xFF
				}
			}
		}
	default:
		for y := 0; y < rows; y++ {
			copy(set.pixels[y*set.stride+m.X0:][:width], mask.Pix[y*mask.Stride:][:width])
		}
	}
}
