// Package imageutil provides image loading and saving helpers plus
// deterministic test-pattern generators. Every loaded image is normalized
// to NRGBA so the rest of the pipeline works on a single pixel layout.
package imageutil

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"

	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder

	_ "github.com/spakin/netpbm" // Register PNM decoders
	_ "golang.org/x/image/tiff"  // Register TIFF decoder
)

// LoadNRGBA loads an image from the specified path and normalizes it to
// NRGBA. Supports PNG, JPEG, GIF, TIFF, and PNM formats.
func LoadNRGBA(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return imaging.Clone(img), nil
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return png.Encode(f, img)
}
