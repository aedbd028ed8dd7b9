// Package framecache is a differential frame renderer: callers redraw
// the whole frame every time with immediate-mode draw calls, and the
// cache repaints only the regions whose content actually changed since
// the previous frame.
//
// Each frame's draw calls are recorded into a command log. At EndFrame
// the log is hashed into a coarse grid of cells; cells whose hash
// differs from the previous frame are merged into dirty rectangles, the
// log is replayed clipped to each rectangle, and only those rectangles
// are presented.
//
//	s := surface.NewImageSurface(800, 600)
//	fc := framecache.New()
//
//	for running {
//	    fc.BeginFrame(s)
//	    fc.DrawRect(framecache.Rect{X: 10, Y: 10, W: 100, H: 40}, framecache.RGB(200, 50, 50))
//	    fc.DrawText(fonts, "hello", 10, 60, framecache.RGB(230, 230, 230), text.Tab{})
//	    fc.EndFrame()
//	}
//
// A Cache is not safe for concurrent use; all calls between BeginFrame
// and EndFrame must come from the goroutine that owns the surface.
package framecache
