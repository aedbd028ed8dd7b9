package framecache

import "github.com/gogpu/framecache/recording"

// Option configures a Cache during creation.
//
// Example:
//
//	// Defaults: 96px cells, 256 tracked regions.
//	fc := framecache.New()
//
//	// Coarser cells and a visual churn overlay for debugging.
//	fc := framecache.New(framecache.WithCellSize(128), framecache.WithDebugOverlay(true))
type Option func(*config)

// config holds optional Cache configuration.
type config struct {
	cellSize      int
	maxDirtyRects int
	maxBytes      int
	debugOverlay  bool
}

func defaultConfig() config {
	return config{
		cellSize:      96,
		maxDirtyRects: 256,
		maxBytes:      recording.DefaultMaxBytes,
	}
}

// WithCellSize sets the change detection cell size in points. Smaller
// cells localize damage more precisely at the cost of a larger grid.
// Values below 1 are ignored.
func WithCellSize(px int) Option {
	return func(c *config) {
		if px >= 1 {
			c.cellSize = px
		}
	}
}

// WithMaxDirtyRects bounds how many separate dirty regions a frame
// tracks. Once the bound is reached further damage merges into an
// existing region instead of adding a new one. Values below 1 are
// ignored.
func WithMaxDirtyRects(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.maxDirtyRects = n
		}
	}
}

// WithMaxCommandBytes sets the per-frame command log byte budget. A
// frame exceeding it degrades: further draws are dropped and the
// affected regions keep their previous content. Values below 1 select
// the default budget.
func WithMaxCommandBytes(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.maxBytes = n
		}
	}
}

// WithDebugOverlay fills each repainted region with a translucent
// random color, making per-frame churn visible.
func WithDebugOverlay(on bool) Option {
	return func(c *config) { c.debugOverlay = on }
}
