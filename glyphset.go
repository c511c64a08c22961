package pmdfonttool

import (
	"image"
	"sort"
)

// Glyph pairs one character's bitmap with its layout metadata. The bitmap
// is owned by whichever stage currently holds the Glyph; stages hand it
// over rather than sharing it.
type Glyph struct {
	GlyphMeta
	Image *image.NRGBA
}

// GlyphSet collects glyphs keyed by character code. It rejects duplicate
// codes at insertion time and iterates in ascending code order regardless
// of insertion order, which is what makes rebuilds deterministic.
type GlyphSet struct {
	codes   []uint16
	glyphs  map[uint16]Glyph
	sources map[uint16]string
}

// NewGlyphSet returns an empty set.
func NewGlyphSet() *GlyphSet {
	return &GlyphSet{
		glyphs:  make(map[uint16]Glyph),
		sources: make(map[uint16]string),
	}
}

// Add inserts a glyph. source names where the glyph came from, usually a
// file path, and is reported when a later insert collides with it.
func (s *GlyphSet) Add(g Glyph, source string) error {
	if first, ok := s.sources[g.Code]; ok {
		return &DuplicateGlyphError{Code: g.Code, First: first, Second: source}
	}
	i := sort.Search(len(s.codes), func(i int) bool { return s.codes[i] >= g.Code })
	s.codes = append(s.codes, 0)
	copy(s.codes[i+1:], s.codes[i:])
	s.codes[i] = g.Code
	s.glyphs[g.Code] = g
	s.sources[g.Code] = source
	return nil
}

// Len returns the number of glyphs in the set.
func (s *GlyphSet) Len() int {
	return len(s.codes)
}

// Glyphs returns the glyphs in ascending character code order.
func (s *GlyphSet) Glyphs() []Glyph {
	out := make([]Glyph, len(s.codes))
	for i, code := range s.codes {
		out[i] = s.glyphs[code]
	}
	return out
}
