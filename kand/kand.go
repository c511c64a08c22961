// Package kand reads and writes KAND glyph dictionaries, the index files
// that accompany CTE font textures. A dictionary lists every glyph stored
// in the texture together with its placement rectangle and layout metrics.
//
// All multi-byte values are little-endian.
//
// File layout:
//
//	Offset  Size  Description
//	0x00    0x04  Magic "KAND"
//	0x04    0x02  Reserved1
//	0x06    0x02  Reserved2
//	0x08    0x04  Glyph entry count
//	0x0C    ...   Glyph entries, 20 bytes each
//
// Glyph entry layout:
//
//	Offset  Size  Description
//	0x00    0x02  Character code
//	0x02    0x02  X origin in the texture
//	0x04    0x02  Y origin in the texture
//	0x06    0x02  Width
//	0x08    0x02  Height
//	0x0A    0x02  X bearing (signed)
//	0x0C    0x02  Y bearing (signed)
//	0x0E    0x02  Advance
//	0x10    0x02  Reserved4
//	0x12    0x02  Reserved5
package kand

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"
)

// Magic identifies a KAND dictionary file.
var Magic = [4]byte{'K', 'A', 'N', 'D'}

// MaxChars is the largest entry count a dictionary can hold. Character
// codes are 16-bit and must be unique, so a higher count is never valid.
const MaxChars = 1 << 16

// Char is a single glyph entry. The field order matches the wire layout.
type Char struct {
	Code      uint16
	OriginX   uint16
	OriginY   uint16
	Width     uint16
	Height    uint16
	XBearing  int16
	YBearing  int16
	Advance   uint16
	Reserved4 uint16
	Reserved5 uint16
}

// Bounds returns the glyph's placement rectangle within the texture.
func (c Char) Bounds() image.Rectangle {
	return image.Rect(int(c.OriginX), int(c.OriginY),
		int(c.OriginX)+int(c.Width), int(c.OriginY)+int(c.Height))
}

// File is a parsed dictionary. Chars preserves file order. The reserved
// header fields have no known meaning and round-trip unchanged.
type File struct {
	Reserved1 uint16
	Reserved2 uint16
	Chars     []Char
}

type fileHeader struct {
	Magic     [4]byte
	Reserved1 uint16
	Reserved2 uint16
	Count     uint32
}

// Read parses a dictionary from r.
func Read(r io.Reader) (*File, error) {
	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("failed to read dictionary header: %w", err)
	}
	if hdr.Magic != Magic {
		return nil, fmt.Errorf("bad dictionary magic %q", hdr.Magic[:])
	}
	if hdr.Count > MaxChars {
		return nil, fmt.Errorf("glyph count %d exceeds the 16-bit code space", hdr.Count)
	}
	f := &File{Reserved1: hdr.Reserved1, Reserved2: hdr.Reserved2}
	if hdr.Count == 0 {
		return f, nil
	}
	f.Chars = make([]Char, hdr.Count)
	if err := binary.Read(r, binary.LittleEndian, f.Chars); err != nil {
		return nil, fmt.Errorf("failed to read %d glyph entries: %w", hdr.Count, err)
	}
	return f, nil
}

// Write serializes the dictionary to w.
func (f *File) Write(w io.Writer) error {
	if len(f.Chars) > MaxChars {
		return fmt.Errorf("glyph count %d exceeds the 16-bit code space", len(f.Chars))
	}
	hdr := fileHeader{
		Magic:     Magic,
		Reserved1: f.Reserved1,
		Reserved2: f.Reserved2,
		Count:     uint32(len(f.Chars)),
	}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("failed to write dictionary header: %w", err)
	}
	if len(f.Chars) == 0 {
		return nil
	}
	if err := binary.Write(w, binary.LittleEndian, f.Chars); err != nil {
		return fmt.Errorf("failed to write %d glyph entries: %w", len(f.Chars), err)
	}
	return nil
}
