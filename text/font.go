package text

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"github.com/flopp/go-findfont"
	gtfont "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

const (
	// glyphSetSize is the number of consecutive glyph indices rasterized
	// together into one atlas strip.
	glyphSetSize = 16

	// subpixelPhases is the number of horizontal subpixel phases cached
	// when subpixel antialiasing is active.
	subpixelPhases = 3

	// placeholderRune is drawn for codepoints no font in a chain can
	// supply (WHITE SQUARE).
	placeholderRune = '□'
)

// Font owns a parsed font face, a shaping handle bound to the same
// bytes, and the glyph atlas cache. The atlas is owned exclusively by
// the Font and is discarded on size or style changes.
//
// Font is not safe for concurrent use.
type Font struct {
	path string
	data []byte

	sf  *sfnt.Font
	buf sfnt.Buffer

	// shaped is the go-text face used by the Shaper. It wraps the same
	// font bytes as sf.
	shaped *gtfont.Face

	size  float64 // in points
	scale float64 // device pixels per point

	antialiasing Antialiasing
	hinting      Hinting
	style        Style

	// fixedPitch is the post-table monospace flag. Fixed-pitch faces
	// take unhinted advances so columns stay aligned.
	fixedPitch bool

	// Derived metrics, all in device pixels.
	heightPx             int
	baselinePx           int
	underlineThicknessPx int
	spaceAdvancePx       float64
	tabAdvancePx         float64

	// sets holds the atlas strips, one map per subpixel phase, keyed by
	// glyph-index block.
	sets [subpixelPhases]map[int]*glyphSet
}

// FontOption configures a Font during loading.
type FontOption func(*fontConfig)

type fontConfig struct {
	antialiasing Antialiasing
	hinting      Hinting
	style        Style
	scale        float64
}

func defaultFontConfig() fontConfig {
	return fontConfig{
		antialiasing: AntialiasingGrayscale,
		hinting:      HintingSlight,
		scale:        1,
	}
}

// WithAntialiasing sets the antialiasing mode.
func WithAntialiasing(a Antialiasing) FontOption {
	return func(c *fontConfig) { c.antialiasing = a }
}

// WithHinting sets the hinting mode.
func WithHinting(h Hinting) FontOption {
	return func(c *fontConfig) { c.hinting = h }
}

// WithStyle sets the synthesized style flags.
func WithStyle(s Style) FontOption {
	return func(c *fontConfig) { c.style = s }
}

// WithScale sets the device pixel scale the font renders at. Pass the
// surface scale factor so glyphs rasterize at device resolution.
func WithScale(scale float64) FontOption {
	return func(c *fontConfig) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// Load reads and parses a font file. A load failure returns an error
// and no partial Font.
func Load(path string, size float64, opts ...FontOption) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	f, err := NewFontFromData(data, size, opts...)
	if err != nil {
		return nil, err
	}
	f.path = path
	return f, nil
}

// LoadByName resolves a system font by family name and loads it.
func LoadByName(name string, size float64, opts ...FontOption) (*Font, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return nil, fmt.Errorf("text: font %q not found: %w", name, err)
	}
	return Load(path, size, opts...)
}

// NewFontFromData parses a font from TTF or OTF bytes. The slice is
// retained; callers must not mutate it afterwards.
func NewFontFromData(data []byte, size float64, opts ...FontOption) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	cfg := defaultFontConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	shaped, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font for shaping: %w", err)
	}

	f := &Font{
		data:         data,
		sf:           sf,
		shaped:       shaped,
		scale:        cfg.scale,
		antialiasing: cfg.antialiasing,
		hinting:      cfg.hinting,
		style:        cfg.style,
	}
	if post := sf.PostTable(); post != nil {
		f.fixedPitch = post.IsFixedPitch
	}
	if err := f.setSize(size); err != nil {
		return nil, err
	}
	return f, nil
}

// Copy returns a new Font sharing the same bytes with a different size,
// antialiasing, hinting, or style. Pass negative values (or zero style
// via KeepStyle) to inherit from the source font.
func (f *Font) Copy(size float64, a Antialiasing, h Hinting, s Style) (*Font, error) {
	if size <= 0 {
		size = f.size
	}
	if a < 0 {
		a = f.antialiasing
	}
	if h < 0 {
		h = f.hinting
	}
	nf, err := NewFontFromData(f.data, size,
		WithAntialiasing(a), WithHinting(h), WithStyle(s), WithScale(f.scale))
	if err != nil {
		return nil, err
	}
	nf.path = f.path
	return nf, nil
}

// Path returns the file path the font was loaded from, if any.
func (f *Font) Path() string { return f.path }

// Size returns the font size in points.
func (f *Font) Size() float64 { return f.size }

// Style returns the synthesized style flags.
func (f *Font) Style() Style { return f.style }

// Antialiasing returns the antialiasing mode.
func (f *Font) Antialiasing() Antialiasing { return f.antialiasing }

// Hinting returns the hinting mode.
func (f *Font) Hinting() Hinting { return f.hinting }

// Height returns the line height in points.
func (f *Font) Height() int {
	return int(math.Ceil(float64(f.heightPx) / f.scale))
}

// Baseline returns the ascent in points.
func (f *Font) Baseline() int {
	return int(math.Ceil(float64(f.baselinePx) / f.scale))
}

// SpaceAdvance returns the advance of U+0020 in points.
func (f *Font) SpaceAdvance() float64 {
	return f.spaceAdvancePx / f.scale
}

// SetSize changes the font size. All cached atlas strips are discarded
// first; stale bitmaps are never served after a size change.
func (f *Font) SetSize(size float64) error {
	f.ClearCache()
	return f.setSize(size)
}

// SetStyle changes the synthesized style flags, discarding the atlas.
func (f *Font) SetStyle(s Style) {
	if s == f.style {
		return
	}
	f.ClearCache()
	f.style = s
}

// ClearCache discards every cached atlas strip.
func (f *Font) ClearCache() {
	for i := range f.sets {
		f.sets[i] = nil
	}
}

// SetTabSize sets the tab advance to n space advances.
func (f *Font) SetTabSize(n int) {
	if n < 1 {
		n = 1
	}
	f.tabAdvancePx = f.spaceAdvancePx * float64(n)
}

// TabSize returns the tab advance in space-advance units.
func (f *Font) TabSize() int {
	if f.spaceAdvancePx > 0 {
		return int(f.tabAdvancePx / f.spaceAdvancePx)
	}
	return int(f.tabAdvancePx)
}

// ppem returns the pixels-per-em the font rasterizes at.
func (f *Font) ppem() fixed.Int26_6 {
	return fixed.Int26_6(f.size * f.scale * 64)
}

func (f *Font) setSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("text: invalid font size %v", size)
	}
	f.size = size

	m, err := f.sf.Metrics(&f.buf, f.ppem(), f.xHinting())
	if err != nil {
		return fmt.Errorf("text: font metrics: %w", err)
	}
	f.baselinePx = m.Ascent.Ceil()
	f.heightPx = (m.Ascent + m.Descent).Ceil()

	// Underline thickness falls back to height/14 when the font does
	// not specify one.
	f.underlineThicknessPx = underlineThickness(f.sf, f.ppem())
	if f.underlineThicknessPx == 0 {
		f.underlineThicknessPx = int(math.Ceil(float64(f.heightPx) / 14.0))
	}

	adv, err := f.runeAdvance(' ')
	if err != nil {
		return fmt.Errorf("text: font has no space glyph: %w", err)
	}
	f.spaceAdvancePx = adv
	f.tabAdvancePx = adv * 2
	return nil
}

// GlyphIndex resolves a rune to this font's glyph index. Zero means the
// rune is unmapped.
func (f *Font) GlyphIndex(r rune) GlyphID {
	gid, err := f.sf.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return GlyphID(gid)
}

// runeAdvance returns the unhinted advance of a rune in pixels.
func (f *Font) runeAdvance(r rune) (float64, error) {
	gid, err := f.sf.GlyphIndex(&f.buf, r)
	if err != nil || gid == 0 {
		return 0, fmt.Errorf("text: no glyph for %q", r)
	}
	adv, err := f.sf.GlyphAdvance(&f.buf, gid, f.ppem(), xfont.HintingNone)
	if err != nil {
		return 0, err
	}
	return fixedToFloat(adv), nil
}

// xHinting maps the font's hinting mode to x/image hinting.
func (f *Font) xHinting() xfont.Hinting {
	switch f.hinting {
	case HintingNone:
		return xfont.HintingNone
	case HintingSlight:
		return xfont.HintingVertical
	default:
		return xfont.HintingFull
	}
}

// glyphSetFor returns the atlas strip containing gid for the given
// subpixel phase, rasterizing the whole block on first reference.
func (f *Font) glyphSetFor(gid GlyphID, phase int) *glyphSet {
	if f.antialiasing != AntialiasingSubpixel {
		phase = 0
	}
	if f.sets[phase] == nil {
		f.sets[phase] = make(map[int]*glyphSet)
	}
	idx := int(gid) / glyphSetSize
	set, ok := f.sets[phase][idx]
	if !ok {
		set = f.loadGlyphSet(idx, phase)
		f.sets[phase][idx] = set
	}
	return set
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}
