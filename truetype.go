package pmdfonttool

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// reservedDefault is the value imported glyphs carry in the two reserved
// metadata fields. Extracted game fonts carry 10 there, so imported
// directories blend in with extracted ones.
const reservedDefault = 10

// LoadFont reads and parses a TrueType font file.
func LoadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return ttf, nil
}

// ImportGlyphs rasterizes one glyph per rune at the given pixel scale and
// shapes each result the way the packer expects: transparent black with
// the rasterizer's coverage in the alpha channel. Glyphs are returned in
// input order. A rune the font cannot render yields an error in the
// second return value instead of aborting the batch.
func ImportGlyphs(ttf *truetype.Font, runes []rune, scale int) ([]Glyph, []error) {
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(scale),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	glyphs := make([]Glyph, 0, len(runes))
	var failed []error
	for _, r := range runes {
		g, err := importGlyph(ttf, face, r, scale)
		if err != nil {
			failed = append(failed, err)
			continue
		}
		logrus.Debugf("rasterized glyph %d (%q) at %dx%d",
			g.Code, r, g.Image.Bounds().Dx(), g.Image.Bounds().Dy())
		glyphs = append(glyphs, g)
	}
	return glyphs, failed
}

func importGlyph(ttf *truetype.Font, face font.Face, r rune, scale int) (Glyph, error) {
	if r > 0xFFFF {
		return Glyph{}, fmt.Errorf("%q (U+%04X) is outside the 16-bit character space", r, r)
	}
	if r != 0 && ttf.Index(r) == 0 {
		return Glyph{}, fmt.Errorf("font has no glyph for %q (U+%04X)", r, r)
	}
	bounds, advance, ok := face.GlyphBounds(r)
	if !ok {
		return Glyph{}, fmt.Errorf("failed to measure glyph %q (U+%04X)", r, r)
	}

	minX := int(bounds.Min.X) >> 6
	minY := int(bounds.Min.Y) >> 6
	maxX := int(bounds.Max.X+63) >> 6
	maxY := int(bounds.Max.Y+63) >> 6
	width := maxX - minX
	height := maxY - minY

	adv := advance.Floor()
	if adv < 0 {
		adv = 0
	}
	meta := GlyphMeta{
		Code:     uint16(r),
		XBearing: int16(minX),
		// Aligns the bitmap against a baseline placed scale pixels under
		// the line top: maxY is how far the bitmap reaches below the
		// baseline.
		YBearing:  int16(scale - height + maxY),
		Advance:   uint16(adv),
		Reserved4: reservedDefault,
		Reserved5: reservedDefault,
	}

	// Whitespace rasterizes to nothing. Keep a 1x1 transparent bitmap so
	// downstream packing never handles a zero-sized rectangle.
	if width <= 0 || height <= 0 {
		return Glyph{GlyphMeta: meta, Image: image.NewNRGBA(image.Rect(0, 0, 1, 1))}, nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(-minX, -minY),
	}
	d.DrawString(string(r))

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: mask.AlphaAt(x, y).A})
		}
	}
	return Glyph{GlyphMeta: meta, Image: img}, nil
}
