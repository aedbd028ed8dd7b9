package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// Shaper maps UTF-8 text plus a font into positioned glyph indices with
// source-cluster tracking, using go-text/typesetting's HarfBuzz port.
// Shaping is left-to-right only; bidirectional reordering belongs to
// callers.
//
// HarfbuzzShaper instances carry internal buffers and are not safe for
// concurrent use, so they are pooled.
type Shaper struct {
	pool sync.Pool
}

// NewShaper creates a Shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// Shape converts text into a glyph sequence for the given font.
// Each glyph records the rune and byte offset of its source cluster so
// fallback lookup and cluster mapping stay subpixel-exact.
func (s *Shaper) Shape(f *Font, text string) []ShapedGlyph {
	if f == nil || text == "" {
		return nil
	}

	runes := make([]rune, 0, len(text))
	offsets := make([]int, 0, len(text))
	for b, r := range text {
		runes = append(runes, r)
		offsets = append(offsets, b)
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.shaped,
		Size:      f.ppem(),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	result := make([]ShapedGlyph, 0, len(output.Glyphs))
	for _, g := range output.Glyphs {
		cluster := g.TextIndex()
		if cluster < 0 || cluster >= len(runes) {
			cluster = 0
		}
		result = append(result, ShapedGlyph{
			GID:        GlyphID(g.GlyphID),
			Cluster:    cluster,
			ByteOffset: offsets[cluster],
			Rune:       runes[cluster],
		})
	}
	return result
}

// detectScript inspects the runes and returns the script of the first
// non-space character. Mixed-script text should be split into runs by
// the caller before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
