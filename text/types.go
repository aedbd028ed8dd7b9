package text

// Antialiasing selects how glyph coverage is rasterized.
type Antialiasing int

const (
	// AntialiasingNone thresholds coverage to a 1-bit mask.
	AntialiasingNone Antialiasing = iota
	// AntialiasingGrayscale keeps 8-bit coverage.
	AntialiasingGrayscale
	// AntialiasingSubpixel renders three horizontal phases with an LCD
	// filter, three bytes of coverage per pixel.
	AntialiasingSubpixel
)

// String returns the string representation of the antialiasing mode.
func (a Antialiasing) String() string {
	switch a {
	case AntialiasingNone:
		return "None"
	case AntialiasingGrayscale:
		return "Grayscale"
	case AntialiasingSubpixel:
		return "Subpixel"
	default:
		return "Unknown"
	}
}

// Hinting selects the glyph hinting mode.
type Hinting int

const (
	// HintingNone disables hinting entirely.
	HintingNone Hinting = iota
	// HintingSlight hints vertical metrics only.
	HintingSlight
	// HintingFull hints in both axes.
	HintingFull
)

// Style is a bit set of synthesized font styles.
type Style uint8

const (
	// StyleBold synthesizes a bold weight by widening the outline.
	StyleBold Style = 1 << iota
	// StyleItalic synthesizes an oblique slant.
	StyleItalic
	// StyleUnderline draws an underline per same-font run.
	StyleUnderline
	// StyleSmooth slightly emboldens the outline in both axes.
	StyleSmooth
	// StyleStrikethrough draws a strikethrough per same-font run.
	StyleStrikethrough
)

// Tab carries per-draw tab alignment metadata. Offset shifts the origin
// of the tab stops, letting a caller align tabs of a substring with the
// line it was cut from.
type Tab struct {
	Offset float64
}

// GlyphID is a glyph index within a font.
type GlyphID uint32

// GlyphMetric describes one cached glyph within its atlas strip.
// X0/X1 are pixel columns in the strip, Y0/Y1 the row span.
// A zero Loaded flag means the font has no outline for this glyph and
// the caller must fall back.
type GlyphMetric struct {
	X0, X1     int
	Y0, Y1     int
	BitmapLeft int
	BitmapTop  int
	XAdvance   float64
	Loaded     bool
}

// ShapedGlyph is one positioned glyph produced by the Shaper.
type ShapedGlyph struct {
	// GID is the glyph index in the first font of the chain.
	GID GlyphID
	// Cluster is the rune index of the source cluster.
	Cluster int
	// ByteOffset is the byte offset of the source cluster in the
	// original UTF-8 string.
	ByteOffset int
	// Rune is the first rune of the source cluster, used for fallback
	// lookup in secondary fonts.
	Rune rune
}
