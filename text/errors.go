package text

import "errors"

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrTooManyFonts is returned when a group exceeds MaxFallback fonts.
	ErrTooManyFonts = errors.New("text: too many fonts in fallback group")

	// ErrEmptyGroup is returned when a group is created with no fonts.
	ErrEmptyGroup = errors.New("text: font group cannot be empty")

	// ErrNoNameTable is returned by Metadata for fonts without a
	// readable name table.
	ErrNoNameTable = errors.New("text: font has no name table")
)
