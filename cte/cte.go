// Package cte reads and writes CTE textures, the image container used by
// the game's font and UI assets. Pixel data is stored the way the console's
// texture unit expects it: the image is split into 8x8 tiles, tiles are laid
// out left to right and top to bottom, and within each tile the pixel order
// interleaves the x and y coordinate bits (Z order). Both dimensions must
// therefore be multiples of 8; zero is allowed and yields an empty payload.
//
// All multi-byte values are little-endian.
//
// File layout:
//
//	Offset  Size  Description
//	0x00    0x04  Magic "cte "
//	0x04    0x04  Pixel format
//	0x08    0x04  Width in pixels
//	0x0C    0x04  Height in pixels
//	0x10    0x10  Reserved
//	0x20    ...   Tiled pixel data
package cte

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Magic identifies a CTE texture file.
var Magic = [4]byte{'c', 't', 'e', ' '}

// MaxDim bounds texture dimensions. Glyph placements are 16-bit, so a
// larger texture can never be addressed.
const MaxDim = 1 << 16

// Format is the pixel format tag stored in the file header.
type Format uint32

const (
	// RGBA8 stores four bytes per pixel, r g b a.
	RGBA8 Format = 0
	// A8 stores one alpha byte per pixel. Font textures use this format;
	// decoding expands it to transparent black with the stored coverage.
	A8 Format = 8
)

func (f Format) String() string {
	switch f {
	case RGBA8:
		return "RGBA8"
	case A8:
		return "A8"
	}
	return fmt.Sprintf("Format(%d)", uint32(f))
}

// bytesPerPixel returns the payload stride of the format, or 0 if the
// format is not one this package understands.
func (f Format) bytesPerPixel() int {
	switch f {
	case RGBA8:
		return 4
	case A8:
		return 1
	}
	return 0
}

// Image is a decoded texture: the pixel format it was (or will be) stored
// in, plus the untiled pixels.
type Image struct {
	Format Format
	Pixels *image.NRGBA
}

type fileHeader struct {
	Magic    [4]byte
	Format   uint32
	Width    uint32
	Height   uint32
	Reserved [16]byte
}

// tileSize is the edge length of one texture tile.
const tileSize = 8

// mortonIndex returns the offset of (x, y) within a tile. The console
// interleaves the low three bits of both coordinates.
func mortonIndex(x, y int) int {
	return (x & 1) | (y&1)<<1 | (x&2)<<1 | (y&2)<<2 | (x&4)<<2 | (y&4)<<3
}

// Decode parses a texture from r.
func Decode(r io.Reader) (*Image, error) {
	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("failed to read texture header: %w", err)
	}
	if hdr.Magic != Magic {
		return nil, fmt.Errorf("bad texture magic %q", hdr.Magic[:])
	}
	format := Format(hdr.Format)
	bpp := format.bytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("unsupported pixel format %s", format)
	}
	width, height := int(hdr.Width), int(hdr.Height)
	if width > MaxDim || height > MaxDim {
		return nil, fmt.Errorf("texture dimensions %dx%d exceed the 16-bit placement space", width, height)
	}
	if width%tileSize != 0 || height%tileSize != 0 {
		return nil, fmt.Errorf("texture dimensions %dx%d are not multiples of %d", width, height, tileSize)
	}

	payload := make([]byte, width*height*bpp)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("failed to read %d bytes of pixel data: %w", len(payload), err)
	}

	pixels := image.NewNRGBA(image.Rect(0, 0, width, height))
	forEachTiledPixel(width, height, bpp, func(x, y, offset int) {
		switch format {
		case A8:
			pixels.SetNRGBA(x, y, color.NRGBA{A: payload[offset]})
		case RGBA8:
			pixels.SetNRGBA(x, y, color.NRGBA{
				R: payload[offset],
				G: payload[offset+1],
				B: payload[offset+2],
				A: payload[offset+3],
			})
		}
	})
	return &Image{Format: format, Pixels: pixels}, nil
}

// Encode serializes the texture to w in its Format. Encoding to A8 keeps
// only the alpha plane.
func (m *Image) Encode(w io.Writer) error {
	bpp := m.Format.bytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("unsupported pixel format %s", m.Format)
	}
	bounds := m.Pixels.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > MaxDim || height > MaxDim {
		return fmt.Errorf("texture dimensions %dx%d exceed the 16-bit placement space", width, height)
	}
	if width%tileSize != 0 || height%tileSize != 0 {
		return fmt.Errorf("texture dimensions %dx%d are not multiples of %d", width, height, tileSize)
	}

	payload := make([]byte, width*height*bpp)
	forEachTiledPixel(width, height, bpp, func(x, y, offset int) {
		px := m.Pixels.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
		switch m.Format {
		case A8:
			payload[offset] = px.A
		case RGBA8:
			payload[offset] = px.R
			payload[offset+1] = px.G
			payload[offset+2] = px.B
			payload[offset+3] = px.A
		}
	})

	hdr := fileHeader{
		Magic:  Magic,
		Format: uint32(m.Format),
		Width:  uint32(width),
		Height: uint32(height),
	}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("failed to write texture header: %w", err)
	}
	if len(payload) == 0 {
		return nil
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write %d bytes of pixel data: %w", len(payload), err)
	}
	return nil
}

// forEachTiledPixel walks every pixel of a width x height image in image
// coordinates and hands fn the payload offset the tiled layout assigns it.
func forEachTiledPixel(width, height, bpp int, fn func(x, y, offset int)) {
	tilesPerRow := width / tileSize
	for ty := 0; ty < height/tileSize; ty++ {
		for tx := 0; tx < tilesPerRow; tx++ {
			tileBase := (ty*tilesPerRow + tx) * tileSize * tileSize
			for py := 0; py < tileSize; py++ {
				for px := 0; px < tileSize; px++ {
					offset := (tileBase + mortonIndex(px, py)) * bpp
					fn(tx*tileSize+px, ty*tileSize+py, offset)
				}
			}
		}
	}
}
