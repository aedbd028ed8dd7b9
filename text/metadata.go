package text

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/unicode"
)

// MetaTag identifies a font name-table entry.
type MetaTag int

const (
	// MetaFamily is the font family name.
	MetaFamily MetaTag = iota
	// MetaSubfamily is the subfamily (style) name.
	MetaSubfamily
	// MetaID is the unique font identifier.
	MetaID
	// MetaFullName is the full font name.
	MetaFullName
	// MetaVersion is the version string.
	MetaVersion
	// MetaPSName is the PostScript name.
	MetaPSName
	// MetaTFamily is the typographic family name.
	MetaTFamily
	// MetaTSubfamily is the typographic subfamily name.
	MetaTSubfamily
	// MetaWWSFamily is the WWS family name.
	MetaWWSFamily
	// MetaWWSSubfamily is the WWS subfamily name.
	MetaWWSSubfamily
)

// nameIDToTag maps OpenType name IDs to MetaTags. IDs outside the map
// are skipped.
var nameIDToTag = map[uint16]MetaTag{
	1:  MetaFamily,
	2:  MetaSubfamily,
	3:  MetaID,
	4:  MetaFullName,
	5:  MetaVersion,
	6:  MetaPSName,
	16: MetaTFamily,
	17: MetaTSubfamily,
	21: MetaWWSFamily,
	22: MetaWWSSubfamily,
}

// MetaEntry is one decoded name-table record.
type MetaEntry struct {
	Tag   MetaTag
	Value string
}

// Metadata reads the English name-table entries of a font file and
// reports whether the face is fixed pitch. The name strings are decoded
// from UTF-16BE where the platform requires it.
func Metadata(path string) ([]MetaEntry, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("text: failed to read font file: %w", err)
	}
	return MetadataFromData(data)
}

// MetadataFromData is Metadata over in-memory font bytes.
func MetadataFromData(data []byte) ([]MetaEntry, bool, error) {
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, false, fmt.Errorf("text: parse font: %w", err)
	}
	monospaced := false
	if post := sf.PostTable(); post != nil {
		monospaced = post.IsFixedPitch
	}

	entries, err := parseNameTable(data)
	if err != nil {
		return nil, monospaced, err
	}
	return entries, monospaced, nil
}

// parseNameTable walks the raw sfnt name table, keeping English records
// mapped to known tags.
func parseNameTable(data []byte) ([]MetaEntry, error) {
	table, err := locateTable(data, "name")
	if err != nil {
		return nil, err
	}
	if len(table) < 6 {
		return nil, ErrNoNameTable
	}

	count := int(binary.BigEndian.Uint16(table[2:]))
	stringOffset := int(binary.BigEndian.Uint16(table[4:]))

	utf16be := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()

	var entries []MetaEntry
	for i := 0; i < count; i++ {
		rec := 6 + i*12
		if rec+12 > len(table) {
			break
		}
		platformID := binary.BigEndian.Uint16(table[rec:])
		languageID := binary.BigEndian.Uint16(table[rec+4:])
		nameID := binary.BigEndian.Uint16(table[rec+6:])
		length := int(binary.BigEndian.Uint16(table[rec+8:]))
		offset := int(binary.BigEndian.Uint16(table[rec+10:]))

		tag, ok := nameIDToTag[nameID]
		if !ok || !isEnglish(platformID, languageID) {
			continue
		}
		start := stringOffset + offset
		if start+length > len(table) {
			continue
		}
		raw := table[start : start+length]

		var value string
		switch platformID {
		case 0, 3: // Unicode and Windows store UTF-16BE
			decoded, derr := utf16be.Bytes(raw)
			if derr != nil {
				continue
			}
			value = string(decoded)
		default: // Macintosh Roman is close enough to Latin-1 for names
			value = string(raw)
		}
		entries = append(entries, MetaEntry{Tag: tag, Value: value})
	}
	return entries, nil
}

// isEnglish filters name records to English variants: Macintosh
// language 0, or any Windows locale whose primary language is English
// (0x09).
func isEnglish(platformID, languageID uint16) bool {
	switch platformID {
	case 1:
		return languageID == 0
	case 3:
		return languageID&0xFF == 0x09
	default:
		return true
	}
}

// locateTable finds a top-level sfnt table by tag, handling TTC
// collections by using the first font.
func locateTable(data []byte, tag string) ([]byte, error) {
	if len(data) < 12 {
		return nil, ErrNoNameTable
	}
	base := 0
	if string(data[0:4]) == "ttcf" {
		if len(data) < 16 {
			return nil, ErrNoNameTable
		}
		base = int(binary.BigEndian.Uint32(data[12:]))
		if base+12 > len(data) {
			return nil, ErrNoNameTable
		}
	}
	numTables := int(binary.BigEndian.Uint16(data[base+4:]))
	for i := 0; i < numTables; i++ {
		rec := base + 12 + i*16
		if rec+16 > len(data) {
			break
		}
		if string(data[rec:rec+4]) == tag {
			off := int(binary.BigEndian.Uint32(data[rec+8:]))
			length := int(binary.BigEndian.Uint32(data[rec+12:]))
			if off+length > len(data) {
				return nil, ErrNoNameTable
			}
			return data[off : off+length], nil
		}
	}
	return nil, ErrNoNameTable
}

// underlineThickness derives the post-table underline thickness in
// device pixels at the given ppem. Zero means the font does not
// specify one.
func underlineThickness(sf *sfnt.Font, ppem fixed.Int26_6) int {
	post := sf.PostTable()
	if post == nil || post.UnderlineThickness == 0 {
		return 0
	}
	upem := sf.UnitsPerEm()
	if upem == 0 {
		return 0
	}
	px := float64(post.UnderlineThickness) * fixedToFloat(ppem) / float64(upem)
	return int(math.Ceil(px))
}
