package pmdfonttool

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"

	"github.com/marius851000/pmdfonttool/cte"
	"github.com/marius851000/pmdfonttool/kand"
)

// nominalAtlasWidth is the row width the packer aims for. Rows wrap at
// this width; only a single glyph wider than it can push the final atlas
// beyond it.
const nominalAtlasWidth = 512

// roundUp8 rounds v up to the next multiple of 8. Zero stays zero, so an
// empty glyph set yields an empty atlas instead of an underflowed one.
func roundUp8(v int) int {
	if v == 0 {
		return 0
	}
	return ((v-1)/8 + 1) * 8
}

// packCursor is the placement state threaded across glyphs: the next
// candidate position, the bottom of everything placed so far, and the
// widest glyph seen.
type packCursor struct {
	x, y      int
	rowBottom int
	maxWidth  int
}

// place assigns the origin for a w by h glyph and returns the advanced
// cursor. A glyph that would reach the nominal width starts a new row
// below everything placed before it.
func (c packCursor) place(w, h int) (packCursor, image.Point) {
	if c.x+w >= nominalAtlasWidth {
		c.x = 0
		c.y = c.rowBottom
	}
	origin := image.Pt(c.x, c.y)
	if bottom := c.y + h; bottom > c.rowBottom {
		c.rowBottom = bottom
	}
	c.x += w
	if w > c.maxWidth {
		c.maxWidth = w
	}
	return c, origin
}

// Pack places glyphs into a fresh atlas using a greedy row layout and
// returns the atlas together with one dictionary entry per glyph, in
// input order. The input must already be ordered by ascending character
// code with distinct codes; GlyphSet guarantees both.
//
// Packing is deterministic: the same ordered input always yields the same
// placements and the same atlas dimensions. The atlas is sized to the
// smallest multiple of 8 covering the placed rows, never narrower than
// the nominal width, and each bitmap is copied in verbatim.
func Pack(glyphs []Glyph) (*image.NRGBA, []kand.Char, error) {
	cursor := packCursor{}
	chars := make([]kand.Char, 0, len(glyphs))
	for _, g := range glyphs {
		b := g.Image.Bounds()
		w, h := b.Dx(), b.Dy()
		if w > math.MaxUint16 || h > math.MaxUint16 {
			return nil, nil, &GlyphTooWideError{Code: g.Code, Width: w, Height: h}
		}
		var origin image.Point
		cursor, origin = cursor.place(w, h)
		if origin.Y > math.MaxUint16 || origin.Y+h > cte.MaxDim {
			return nil, nil, &AtlasOverflowError{Code: g.Code, Bottom: origin.Y + h}
		}
		chars = append(chars, kand.Char{
			Code:      g.Code,
			OriginX:   uint16(origin.X),
			OriginY:   uint16(origin.Y),
			Width:     uint16(w),
			Height:    uint16(h),
			XBearing:  g.XBearing,
			YBearing:  g.YBearing,
			Advance:   g.Advance,
			Reserved4: g.Reserved4,
			Reserved5: g.Reserved5,
		})
	}

	width := roundUp8(max(nominalAtlasWidth, cursor.maxWidth))
	height := roundUp8(cursor.rowBottom)
	atlas := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, g := range glyphs {
		draw.Draw(atlas, chars[i].Bounds(), g.Image, g.Image.Bounds().Min, draw.Src)
	}
	return atlas, chars, nil
}

// Slice cuts every dictionary entry's rectangle back out of a packed
// atlas. Each returned bitmap is an independent copy, so editing one
// never touches the atlas. An entry that does not fit inside the atlas
// fails with a *PlacementError; a well-formed dictionary and texture pair
// never triggers that, a corrupted or hand-edited one can.
func Slice(atlas *image.NRGBA, chars []kand.Char) ([]Glyph, error) {
	bounds := atlas.Bounds()
	glyphs := make([]Glyph, 0, len(chars))
	for _, c := range chars {
		r := c.Bounds()
		if !r.In(bounds) {
			return nil, &PlacementError{Code: c.Code, Placement: r, Atlas: bounds}
		}
		glyphs = append(glyphs, Glyph{
			GlyphMeta: GlyphMeta{
				Code:      c.Code,
				XBearing:  c.XBearing,
				YBearing:  c.YBearing,
				Advance:   c.Advance,
				Reserved4: c.Reserved4,
				Reserved5: c.Reserved5,
			},
			Image: imaging.Crop(atlas, r),
		})
	}
	return glyphs, nil
}
