package pmdfonttool

import (
	"errors"
	"testing"

	"github.com/marius851000/pmdfonttool/imageutil"
)

func TestGlyphSetOrdersByCode(t *testing.T) {
	t.Parallel()

	set := NewGlyphSet()
	for _, code := range []uint16{500, 3, 65535, 0, 42} {
		g := Glyph{
			GlyphMeta: GlyphMeta{Code: code},
			Image:     imageutil.CreateGlyphPattern(code, 4, 4),
		}
		if err := set.Add(g, "test"); err != nil {
			t.Fatalf("Failed to add glyph %d: %v", code, err)
		}
	}

	if set.Len() != 5 {
		t.Fatalf("Expected 5 glyphs, got %d", set.Len())
	}
	want := []uint16{0, 3, 42, 500, 65535}
	for i, g := range set.Glyphs() {
		if g.Code != want[i] {
			t.Errorf("Expected code %d at position %d, got %d", want[i], i, g.Code)
		}
	}
}

func TestGlyphSetRejectsDuplicates(t *testing.T) {
	t.Parallel()

	set := NewGlyphSet()
	g := Glyph{GlyphMeta: GlyphMeta{Code: 'A'}, Image: imageutil.CreateSolidGlyph(2, 2, 255)}
	if err := set.Add(g, "first.png"); err != nil {
		t.Fatalf("Failed to add glyph: %v", err)
	}

	err := set.Add(g, "second.png")
	if err == nil {
		t.Fatal("Expected an error for a duplicate character code, got nil")
	}
	var dup *DuplicateGlyphError
	if !errors.As(err, &dup) {
		t.Fatalf("Expected a *DuplicateGlyphError, got %T: %v", err, err)
	}
	if dup.Code != 'A' {
		t.Errorf("Expected the error to name code %d, got %d", 'A', dup.Code)
	}
	if dup.First != "first.png" || dup.Second != "second.png" {
		t.Errorf("Expected the error to name both sources, got %q and %q", dup.First, dup.Second)
	}

	if set.Len() != 1 {
		t.Errorf("Expected the set to stay at 1 glyph after the rejected insert, got %d", set.Len())
	}
}

func TestGlyphSetEmpty(t *testing.T) {
	t.Parallel()

	set := NewGlyphSet()
	if set.Len() != 0 {
		t.Errorf("Expected an empty set, got %d glyphs", set.Len())
	}
	if got := set.Glyphs(); len(got) != 0 {
		t.Errorf("Expected no glyphs, got %d", len(got))
	}
}
