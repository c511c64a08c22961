package imageutil

import (
	"image"
	"image/color"
)

// CreateGlyphPattern creates a glyph-shaped test bitmap: transparent black
// with an alpha pattern derived from the seed, so two patterns with
// different seeds never compare equal and positional mixups are visible.
func CreateGlyphPattern(seed uint16, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := uint8(1 + (int(seed)*37+x*11+y*23)%255)
			img.SetNRGBA(x, y, color.NRGBA{A: a})
		}
	}
	return img
}

// CreateSolidGlyph creates a uniform-coverage test bitmap.
func CreateSolidGlyph(width, height int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: alpha})
		}
	}
	return img
}

// CreateAlphaGradient creates a horizontal coverage ramp.
func CreateAlphaGradient(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := uint8(255)
			if width > 1 {
				a = uint8(255 * x / (width - 1))
			}
			img.SetNRGBA(x, y, color.NRGBA{A: a})
		}
	}
	return img
}

// CountPixelDiffs returns the number of pixel positions at which the two
// images differ. Images with different bounds sizes count every pixel of
// the larger extent as a difference.
func CountPixelDiffs(img1, img2 *image.NRGBA) int {
	b1, b2 := img1.Bounds(), img2.Bounds()
	if b1.Dx() != b2.Dx() || b1.Dy() != b2.Dy() {
		w, h := max(b1.Dx(), b2.Dx()), max(b1.Dy(), b2.Dy())
		return w * h
	}
	diffs := 0
	for y := 0; y < b1.Dy(); y++ {
		for x := 0; x < b1.Dx(); x++ {
			p1 := img1.NRGBAAt(b1.Min.X+x, b1.Min.Y+y)
			p2 := img2.NRGBAAt(b2.Min.X+x, b2.Min.Y+y)
			if p1 != p2 {
				diffs++
			}
		}
	}
	return diffs
}
