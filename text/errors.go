package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrReservedFont is returned when registering over the default font.
	ErrReservedFont = errors.New("text: font 0 is reserved for the default font")
)
