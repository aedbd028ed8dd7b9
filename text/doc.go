// Package text provides font loading, HarfBuzz shaping, and the glyph
// rasterization cache used by the frame cache.
//
// A Font owns its glyph atlas: bitmaps are rasterized lazily in blocks
// of consecutive glyph indices, one bitmap strip per subpixel phase when
// subpixel antialiasing is active. A FontGroup is an ordered fallback
// chain of fonts; glyph lookup walks the chain and falls back to a
// placeholder glyph so that drawing never encounters an unresolved
// glyph.
//
// Shaping is delegated to go-text/typesetting's HarfBuzz port. Only
// left-to-right layout is supported here; bidirectional reordering is a
// concern of higher layers.
//
// Nothing in this package is safe for concurrent use. Fonts and groups
// belong to the thread that owns the render surface, matching the
// single-threaded frame model of the cache.
package text
