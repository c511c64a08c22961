package pmdfonttool

import (
	"fmt"
	"image"
)

// NameError reports a glyph file name that does not follow the six-field
// metadata convention.
type NameError struct {
	Stem   string
	Field  string // offending field, empty when the overall shape is wrong
	Reason string
}

func (e *NameError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed glyph name %q: %s", e.Stem, e.Reason)
	}
	return fmt.Sprintf("malformed glyph name %q: bad %s: %s", e.Stem, e.Field, e.Reason)
}

// DuplicateGlyphError reports two glyph sources claiming the same
// character code.
type DuplicateGlyphError struct {
	Code   uint16
	First  string
	Second string
}

func (e *DuplicateGlyphError) Error() string {
	return fmt.Sprintf("duplicate glyph for character %d: %s conflicts with %s",
		e.Code, e.Second, e.First)
}

// PlacementError reports a stored glyph rectangle that does not fit
// inside its atlas.
type PlacementError struct {
	Code      uint16
	Placement image.Rectangle
	Atlas     image.Rectangle
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("glyph %d placement %v lies outside the %dx%d atlas",
		e.Code, e.Placement, e.Atlas.Dx(), e.Atlas.Dy())
}

// GlyphTooWideError reports a glyph bitmap too large for the 16-bit
// placement fields of the dictionary format.
type GlyphTooWideError struct {
	Code   uint16
	Width  int
	Height int
}

func (e *GlyphTooWideError) Error() string {
	return fmt.Sprintf("glyph %d is %dx%d, which exceeds the 16-bit placement space",
		e.Code, e.Width, e.Height)
}

// AtlasOverflowError reports packing running out of vertical placement
// space. Glyph sets small enough to be real fonts never trigger it.
type AtlasOverflowError struct {
	Code   uint16
	Bottom int
}

func (e *AtlasOverflowError) Error() string {
	return fmt.Sprintf("glyph %d would extend the atlas to %d rows, past the 16-bit placement space",
		e.Code, e.Bottom)
}
