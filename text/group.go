package text

import (
	"math"
	"slices"
	"sync/atomic"
)

// MaxFallback is the maximum number of fonts in a fallback group.
const MaxFallback = 10

// groupIDs hands out process-unique group identities.
var groupIDs atomic.Uint64

// FontGroup is an ordered font fallback chain. The first font drives
// shaping; later fonts supply glyphs the first cannot. The group shares
// its member fonts with whoever else references them, but owns none of
// them.
//
// FontGroup is not safe for concurrent use.
type FontGroup struct {
	id     uint64
	fonts  []*Font
	shaper *Shaper
}

// NewGroup builds a fallback chain from the given fonts.
func NewGroup(fonts ...*Font) (*FontGroup, error) {
	if len(fonts) == 0 {
		return nil, ErrEmptyGroup
	}
	if len(fonts) > MaxFallback {
		return nil, ErrTooManyFonts
	}
	return &FontGroup{
		id:     groupIDs.Add(1),
		fonts:  slices.Clone(fonts),
		shaper: NewShaper(),
	}, nil
}

// ID returns the group's process-unique identity. Two groups over the
// same fonts still have distinct IDs.
func (g *FontGroup) ID() uint64 { return g.id }

// GroupOf wraps a single font in a group. It panics on a nil font,
// which always indicates an ignored load error.
func GroupOf(f *Font) *FontGroup {
	if f == nil {
		panic("text: GroupOf called with nil font; check the Load error")
	}
	g, _ := NewGroup(f)
	return g
}

// First returns the primary font of the chain.
func (g *FontGroup) First() *Font { return g.fonts[0] }

// Fonts returns the chain in fallback order.
func (g *FontGroup) Fonts() []*Font { return g.fonts }

// Height returns the line height in points, covering the ascent and
// descent of every font in the chain so text bounds never clip a
// fallback glyph.
func (g *FontGroup) Height() int {
	h := 0
	for _, f := range g.fonts {
		if fh := f.Height(); fh > h {
			h = fh
		}
	}
	return h
}

// Baseline returns the primary font's ascent in points.
func (g *FontGroup) Baseline() int { return g.fonts[0].Baseline() }

// Size returns the primary font's size in points.
func (g *FontGroup) Size() float64 { return g.fonts[0].size }

// SetSize resizes every font in the chain, discarding their atlases.
func (g *FontGroup) SetSize(size float64) error {
	for _, f := range g.fonts {
		if err := f.SetSize(size); err != nil {
			return err
		}
	}
	return nil
}

// SetTabSize sets the tab advance on every font in the chain.
func (g *FontGroup) SetTabSize(n int) {
	for _, f := range g.fonts {
		f.SetTabSize(n)
	}
}

// TabSize returns the primary font's tab size in space advances.
func (g *FontGroup) TabSize() int { return g.fonts[0].TabSize() }

// GetGlyph resolves a shaped glyph index against the chain for one
// subpixel phase. The primary font is tried with the shaped index; when
// the glyph is unmapped and a fallback rune is known, each subsequent
// font is tried with its own index for that rune. When no font can
// supply a non-basic codepoint, a second bounded pass resolves the
// placeholder glyph instead, so valid input never yields a nil metric.
func (g *FontGroup) GetGlyph(gid GlyphID, fallback rune, phase int) (*Font, *GlyphMetric, *glyphSet) {
	if fallback == '\t' {
		// Tabs render as nothing; the advance is resolved by
		// glyphAdvance. Clearing the fallback accepts the primary
		// font's (possibly empty) glyph.
		fallback = 0
	}
	if phase < 0 {
		phase += subpixelPhases
	}

	var metric *GlyphMetric
	var set *glyphSet
	var owner *Font
	for attempt := 0; attempt < 2; attempt++ {
		for i, f := range g.fonts {
			cp := gid
			if i > 0 || attempt > 0 {
				cp = f.GlyphIndex(fallback)
			}
			s := f.glyphSetFor(cp, phase)
			m := &s.metrics[int(cp)%glyphSetSize]
			owner, metric, set = f, m, s
			if m.Loaded || fallback == 0 {
				return f, m, s
			}
		}
		if fallback <= 0xFF || fallback == placeholderRune {
			break
		}
		fallback = placeholderRune
	}
	if owner == nil {
		owner = g.fonts[0]
	}
	return owner, metric, set
}

// glyphAdvance returns the pen advance for one resolved glyph in
// pixels. Tabs jump to the next tab stop measured from the draw origin
// shifted by tab.Offset; unresolved glyphs fall back to the primary
// font's space advance.
func (g *FontGroup) glyphAdvance(f *Font, m *GlyphMetric, r rune, penRel float64, tab Tab) float64 {
	if r == '\t' {
		ta := f.tabAdvancePx
		if ta <= 0 {
			ta = f.spaceAdvancePx * 2
		}
		rel := penRel + tab.Offset*f.scale
		next := (math.Floor(rel/ta) + 1) * ta
		return next - rel
	}
	if m != nil && m.XAdvance != 0 {
		return m.XAdvance
	}
	return g.fonts[0].spaceAdvancePx
}

// Width measures the shaped width of text in points, using the same
// glyph resolution as drawing so measurement and rendering agree.
func (g *FontGroup) Width(text string, tab Tab) float64 {
	if text == "" {
		return 0
	}
	first := g.fonts[0]
	penX := 0.0
	for _, sg := range g.shaper.Shape(first, text) {
		f, m, _ := g.GetGlyph(sg.GID, sg.Rune, 0)
		penX += g.glyphAdvance(f, m, sg.Rune, penX, tab)
	}
	return penX / first.scale
}
