package imageutil

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/tiff"
)

func TestSaveLoadPNGRoundTrip(t *testing.T) {
	t.Parallel()

	src := CreateGlyphPattern(42, 13, 9)
	path := filepath.Join(t.TempDir(), "glyph.png")

	if err := SavePNG(src, path); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}
	loaded, err := LoadNRGBA(path)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}
	if diffs := CountPixelDiffs(src, loaded); diffs != 0 {
		t.Errorf("Expected a lossless PNG round trip, got %d differing pixels", diffs)
	}
}

func TestLoadNRGBADecodesTIFF(t *testing.T) {
	t.Parallel()

	src := CreateAlphaGradient(16, 4)
	path := filepath.Join(t.TempDir(), "glyph.tiff")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := tiff.Encode(f, src, nil); err != nil {
		f.Close()
		t.Fatalf("Failed to encode TIFF: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close file: %v", err)
	}

	loaded, err := LoadNRGBA(path)
	if err != nil {
		t.Fatalf("Failed to load TIFF: %v", err)
	}
	if diffs := CountPixelDiffs(src, loaded); diffs != 0 {
		t.Errorf("Expected a lossless TIFF round trip, got %d differing pixels", diffs)
	}
}

func TestLoadNRGBADecodesPGM(t *testing.T) {
	t.Parallel()

	// Raw PGM, 2x2, values 0 64 128 255.
	data := append([]byte("P5\n2 2\n255\n"), 0, 64, 128, 255)
	path := filepath.Join(t.TempDir(), "glyph.pgm")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write PGM fixture: %v", err)
	}

	loaded, err := LoadNRGBA(path)
	if err != nil {
		t.Fatalf("Failed to load PGM: %v", err)
	}
	if got := loaded.Bounds(); got.Dx() != 2 || got.Dy() != 2 {
		t.Fatalf("Expected 2x2 bounds, got %v", got)
	}
	px := loaded.NRGBAAt(1, 0)
	if px.R != 64 || px.G != 64 || px.B != 64 || px.A != 255 {
		t.Errorf("Expected gray value 64 normalized to NRGBA, got %v", px)
	}
}

func TestLoadNRGBANormalizesToNRGBA(t *testing.T) {
	t.Parallel()

	// PNG encodes a pure-gray image as 8-bit grayscale; loading must still
	// come back in the NRGBA layout.
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i * 16)
	}
	path := filepath.Join(t.TempDir(), "gray.png")
	if err := SavePNG(gray, path); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	loaded, err := LoadNRGBA(path)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected an NRGBA image, got nil")
	}
	if px := loaded.NRGBAAt(1, 0); px.R != 16 || px.A != 255 {
		t.Errorf("Expected gray 16 at (1,0) with full alpha, got %v", px)
	}
}

func TestLoadNRGBAErrors(t *testing.T) {
	t.Parallel()

	if _, err := LoadNRGBA(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected an error for a missing file, got nil")
	}

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if _, err := LoadNRGBA(garbage); err == nil {
		t.Error("Expected an error for undecodable data, got nil")
	}
}
