package cte

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// testPattern fills an image with deterministic per-channel values so
// positional mixups show up as mismatches.
func testPattern(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 7),
				G: uint8(y * 13),
				B: uint8((x + y) * 3),
				A: uint8(x*31 + y*17),
			})
		}
	}
	return img
}

func TestMortonIndex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x, y, want int
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 2},
		{1, 1, 3},
		{2, 0, 4},
		{0, 2, 8},
		{4, 0, 16},
		{0, 4, 32},
		{7, 7, 63},
	}
	for _, tt := range tests {
		if got := mortonIndex(tt.x, tt.y); got != tt.want {
			t.Errorf("Expected mortonIndex(%d, %d) = %d, got %d", tt.x, tt.y, tt.want, got)
		}
	}

	seen := make(map[int]bool)
	for y := 0; y < tileSize; y++ {
		for x := 0; x < tileSize; x++ {
			i := mortonIndex(x, y)
			if i < 0 || i >= tileSize*tileSize {
				t.Fatalf("mortonIndex(%d, %d) = %d is outside the tile", x, y, i)
			}
			if seen[i] {
				t.Fatalf("mortonIndex(%d, %d) = %d collides with another pixel", x, y, i)
			}
			seen[i] = true
		}
	}
}

func TestTiledPayloadLayout(t *testing.T) {
	t.Parallel()

	// 16x8: two tiles side by side. Mark one pixel per region of interest
	// and check the exact payload offset it lands on.
	img := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	img.SetNRGBA(0, 0, color.NRGBA{A: 0x11})
	img.SetNRGBA(1, 0, color.NRGBA{A: 0x22})
	img.SetNRGBA(0, 1, color.NRGBA{A: 0x33})
	img.SetNRGBA(7, 7, color.NRGBA{A: 0x44})
	img.SetNRGBA(8, 0, color.NRGBA{A: 0x55})

	var buf bytes.Buffer
	if err := (&Image{Format: A8, Pixels: img}).Encode(&buf); err != nil {
		t.Fatalf("Failed to encode texture: %v", err)
	}
	payload := buf.Bytes()[32:]
	if len(payload) != 16*8 {
		t.Fatalf("Expected a 128-byte payload, got %d", len(payload))
	}

	tests := []struct {
		offset int
		want   byte
		desc   string
	}{
		{0, 0x11, "tile origin"},
		{1, 0x22, "x neighbor interleaves to bit 0"},
		{2, 0x33, "y neighbor interleaves to bit 1"},
		{63, 0x44, "tile corner"},
		{64, 0x55, "second tile starts after 64 pixels"},
	}
	for _, tt := range tests {
		if payload[tt.offset] != tt.want {
			t.Errorf("Expected 0x%02x at payload offset %d (%s), got 0x%02x",
				tt.want, tt.offset, tt.desc, payload[tt.offset])
		}
	}
}

func TestEncodeDecodeRoundTripA8(t *testing.T) {
	t.Parallel()

	src := testPattern(24, 16)
	var buf bytes.Buffer
	if err := (&Image{Format: A8, Pixels: src}).Encode(&buf); err != nil {
		t.Fatalf("Failed to encode texture: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode texture: %v", err)
	}
	if decoded.Format != A8 {
		t.Errorf("Expected format A8, got %s", decoded.Format)
	}
	if got := decoded.Pixels.Bounds(); got != src.Bounds() {
		t.Fatalf("Expected bounds %v, got %v", src.Bounds(), got)
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			got := decoded.Pixels.NRGBAAt(x, y)
			want := color.NRGBA{A: src.NRGBAAt(x, y).A}
			if got != want {
				t.Fatalf("Pixel (%d, %d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestEncodeDecodeRoundTripRGBA8(t *testing.T) {
	t.Parallel()

	src := testPattern(8, 32)
	var buf bytes.Buffer
	if err := (&Image{Format: RGBA8, Pixels: src}).Encode(&buf); err != nil {
		t.Fatalf("Failed to encode texture: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode texture: %v", err)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 8; x++ {
			if got, want := decoded.Pixels.NRGBAAt(x, y), src.NRGBAAt(x, y); got != want {
				t.Fatalf("Pixel (%d, %d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestEncodeDecodeEmptyTexture(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 512, 0))
	var buf bytes.Buffer
	if err := (&Image{Format: A8, Pixels: src}).Encode(&buf); err != nil {
		t.Fatalf("Failed to encode empty texture: %v", err)
	}
	if buf.Len() != 32 {
		t.Errorf("Expected an empty texture to be header-only (32 bytes), got %d", buf.Len())
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode empty texture: %v", err)
	}
	bounds := decoded.Pixels.Bounds()
	if bounds.Dx() != 512 || bounds.Dy() != 0 {
		t.Errorf("Expected 512x0 bounds, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestDecodeRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	valid := func() []byte {
		var buf bytes.Buffer
		img := &Image{Format: A8, Pixels: image.NewNRGBA(image.Rect(0, 0, 8, 8))}
		if err := img.Encode(&buf); err != nil {
			t.Fatalf("Failed to build fixture: %v", err)
		}
		return buf.Bytes()
	}()

	corrupt := func(offset int, b byte) []byte {
		data := append([]byte(nil), valid...)
		data[offset] = b
		return data
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"bad magic", corrupt(0, 'X')},
		{"unknown format", corrupt(4, 7)},
		{"width not a tile multiple", corrupt(8, 9)},
		{"truncated payload", valid[:len(valid)-1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(bytes.NewReader(tt.data)); err == nil {
				t.Errorf("Expected an error for %s, got nil", tt.name)
			}
		})
	}
}

func TestEncodeRejectsUnalignedDimensions(t *testing.T) {
	t.Parallel()

	img := &Image{Format: A8, Pixels: image.NewNRGBA(image.Rect(0, 0, 10, 8))}
	if err := img.Encode(&bytes.Buffer{}); err == nil {
		t.Error("Expected an error for a width that is not a multiple of 8, got nil")
	}
}

func TestA8KeepsOnlyAlpha(t *testing.T) {
	t.Parallel()

	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	src.SetNRGBA(3, 5, color.NRGBA{R: 200, G: 100, B: 50, A: 77})

	var buf bytes.Buffer
	if err := (&Image{Format: A8, Pixels: src}).Encode(&buf); err != nil {
		t.Fatalf("Failed to encode texture: %v", err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode texture: %v", err)
	}
	want := color.NRGBA{A: 77}
	if got := decoded.Pixels.NRGBAAt(3, 5); got != want {
		t.Errorf("Expected color channels dropped, alpha kept (%v), got %v", want, got)
	}
}
