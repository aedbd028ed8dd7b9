package framecache

import (
	"math/rand/v2"
	"slices"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/framecache/core"
	"github.com/gogpu/framecache/recording"
	"github.com/gogpu/framecache/surface"
	"github.com/gogpu/framecache/text"
)

// Cache is the differential frame renderer. Callers bracket each frame
// with BeginFrame and EndFrame and issue every draw call in between as
// if redrawing the whole frame; the cache repaints only the regions
// whose content changed since the previous frame.
//
// Cache is not safe for concurrent use.
type Cache struct {
	cfg  config
	rec  *recording.Recorder
	grid cellGrid

	surf       surface.Surface
	bounds     core.Rect // current frame surface bounds, points
	lastBounds core.Rect
	inFrame    bool

	dirty       dirtyList
	dirtyPixels []core.Rect
	scratch     []byte
}

// New creates a Cache. The zero configuration uses 96 point cells, 256
// tracked dirty regions and a 16 MiB command log budget.
func New(opts ...Option) *Cache {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache{
		cfg:   cfg,
		rec:   recording.NewRecorder(cfg.maxBytes, Logger),
		grid:  cellGrid{cellSize: cfg.cellSize},
		dirty: dirtyList{max: cfg.maxDirtyRects},
	}
}

// BeginFrame opens a frame against the given surface. The clip resets
// to the full surface bounds; if the surface's point dimensions changed
// since the previous frame the change detection baseline is invalidated
// so the next EndFrame repaints everything.
//
// Calling BeginFrame with a frame still open abandons the open frame
// without painting.
func (c *Cache) BeginFrame(s surface.Surface) {
	if c.inFrame {
		c.releaseCanvases()
	}

	c.surf = s
	w, h := s.Size()
	sx, sy := s.Scale()
	c.bounds = core.Rect{W: int(float64(w) / sx), H: int(float64(h) / sy)}

	if c.bounds != c.lastBounds {
		c.grid.resize(c.bounds.W, c.bounds.H)
		c.grid.invalidate()
		c.lastBounds = c.bounds
	}

	s.SetClip(c.bounds)
	c.rec.Reset(c.bounds)
	c.inFrame = true
}

// Invalidate forces the next EndFrame to repaint every cell, regardless
// of what changed.
func (c *Cache) Invalidate() {
	c.grid.invalidate()
}

// Degraded reports whether the current frame hit the command log budget
// and dropped draw calls. Degraded regions keep their previous content.
func (c *Cache) Degraded() bool { return c.rec.Degraded() }

// SetClipRect narrows the clip for subsequent draw calls. The rectangle
// is intersected with the surface bounds; callers manage nesting and
// supply one flattened rectangle per call.
func (c *Cache) SetClipRect(r Rect) {
	c.rec.PushSetClip(r)
}

// DrawRect fills a rectangle, blending by the color's alpha.
func (c *Cache) DrawRect(r Rect, col Color) {
	c.rec.PushDrawRect(recording.DrawRect{Rect: r, Color: col})
}

// DrawRectReplace fills a rectangle storing the color directly,
// including its alpha. Used for preparing translucent canvases.
func (c *Cache) DrawRectReplace(r Rect, col Color) {
	c.rec.PushDrawRect(recording.DrawRect{Rect: r, Color: col, Replace: true})
}

// DrawText records shaped text with its top-left corner at (x, y) in
// points and returns the pen x position after the last glyph. The
// bounding box spans the shaped width and the group's line height, so
// fallback glyphs from taller fonts are never clipped.
func (c *Cache) DrawText(fonts *text.FontGroup, str string, x, y float64, col Color, tab text.Tab) float64 {
	width := fonts.Width(str, tab)
	rect := core.RectFromFloats(x, y, width, float64(fonts.Height()))
	c.rec.PushDrawText(recording.DrawText{
		Rect:  rect,
		Color: col,
		Fonts: fonts,
		Text:  str,
		X:     x,
		Tab:   tab,
	})
	return x + width
}

// DrawPoly fills a closed outline of tagged points and returns its
// control box. The box covers all on-curve and control points without
// flattening curves, so it may slightly over-estimate the drawn extent.
func (c *Cache) DrawPoly(pts []Point, col Color) Rect {
	bounds, ok := core.PolyBounds(pts)
	if !ok {
		return Rect{}
	}
	c.rec.PushDrawPoly(recording.DrawPoly{
		Rect:   bounds,
		Color:  col,
		Points: slices.Clone(pts),
	})
	return bounds
}

// DrawCanvas blits an off-screen canvas with its top-left corner at
// point offset (x, y). The canvas is pinned until the frame finishes;
// mutating it through its own API fails while pinned.
func (c *Cache) DrawCanvas(cv *surface.Canvas, x, y int, blend bool) {
	if cv == nil {
		return
	}
	w, h := cv.Size()
	csx, csy := cv.Scale()
	rect := core.Rect{X: x, Y: y, W: int(float64(w) / csx), H: int(float64(h) / csy)}
	c.rec.PushDrawCanvas(recording.DrawCanvas{
		Rect:    rect,
		Canvas:  cv,
		X:       x,
		Y:       y,
		Blend:   blend,
		Version: cv.Version(),
	})
}

// EndFrame finds what changed, repaints exactly those regions and
// presents them. It returns the repainted rectangles in device pixels;
// an empty result means the frame was identical to the previous one and
// nothing was presented. The returned slice is reused by the next
// EndFrame.
func (c *Cache) EndFrame() []Rect {
	if !c.inFrame || c.surf == nil {
		return nil
	}

	// Abstract replay: walk the log once tracking the ambient clip, and
	// fold each command's payload hash into every cell its clipped
	// bounds overlap. Clip changes hash too, like any other command.
	clip := c.bounds
	scratch := c.scratch
	for _, cmd := range c.rec.Commands() {
		if sc, ok := cmd.(recording.SetClip); ok {
			clip = sc.Rect
		}
		vis := cmd.Bounds().Intersect(clip)
		if vis.Empty() {
			continue
		}
		payload := cmd.AppendPayload(scratch[:0])
		scratch = payload[:0]
		c.grid.fold(vis, core.HashBytes(core.HashSeed, payload))
	}
	c.scratch = scratch

	// Changed cells merge into repaint regions in cell units.
	c.dirty.reset()
	c.grid.diff(func(cx, cy int) {
		c.dirty.push(core.Rect{X: cx, Y: cy, W: 1, H: 1})
	})
	c.grid.swap()

	// Replay the full log once per region, re-clipped to it, then
	// present the repainted rectangles in one call.
	sx, sy := c.surf.Scale()
	pw, ph := c.surf.Size()
	pixelBounds := core.Rect{W: pw, H: ph}
	cs := c.grid.cellSize

	c.dirtyPixels = c.dirtyPixels[:0]
	for _, cr := range c.dirty.rects {
		region := core.Rect{X: cr.X * cs, Y: cr.Y * cs, W: cr.W * cs, H: cr.H * cs}.Intersect(c.bounds)
		if region.Empty() {
			continue
		}
		c.replayRegion(region)
		px := region.Scale(sx, sy).Intersect(pixelBounds)
		if !px.Empty() {
			c.dirtyPixels = append(c.dirtyPixels, px)
		}
	}
	c.surf.SetClip(c.bounds)

	if len(c.dirtyPixels) > 0 {
		if err := c.surf.Present(c.dirtyPixels); err != nil {
			Logger().Warn("framecache: present failed", "err", err)
		}
	}
	Logger().Debug("framecache: frame finished",
		"commands", c.rec.Len(),
		"dirty", len(c.dirtyPixels),
		"degraded", c.rec.Degraded())

	c.releaseCanvases()
	c.rec.Reset(c.bounds)
	c.inFrame = false

	return c.dirtyPixels
}

// replayRegion replays the entire command log clipped to one repaint
// region. A command spanning several regions is redrawn once per
// region, each time clipped to just that region.
func (c *Cache) replayRegion(region core.Rect) {
	c.surf.SetClip(region)
	for _, cmd := range c.rec.Commands() {
		switch cmd := cmd.(type) {
		case recording.SetClip:
			c.surf.SetClip(cmd.Rect.Intersect(region))
		case recording.DrawRect:
			c.surf.FillRect(cmd.Rect, cmd.Color, cmd.Replace)
		case recording.DrawText:
			text.Draw(c.surf, cmd.Fonts, cmd.Text, cmd.X, float64(cmd.Rect.Y), cmd.Color, cmd.Tab)
		case recording.DrawPoly:
			c.surf.FillPoly(cmd.Points, cmd.Color)
		case recording.DrawCanvas:
			c.surf.Blit(cmd.Canvas, cmd.X, cmd.Y, cmd.Blend)
		}
	}

	if c.cfg.debugOverlay {
		c.surf.SetClip(region)
		r, g, b := colorful.Hsv(rand.Float64()*360, 0.6, 1).RGB255()
		c.surf.FillRect(region, core.Color{R: r, G: g, B: b, A: 50}, false)
	}
}

// releaseCanvases drops the pin taken for every recorded canvas draw,
// exactly once per command.
func (c *Cache) releaseCanvases() {
	for _, cmd := range c.rec.Commands() {
		if cv, ok := cmd.(recording.DrawCanvas); ok {
			cv.Canvas.Release()
		}
	}
}
