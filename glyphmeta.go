package pmdfonttool

import (
	"strconv"
	"strings"
)

// GlyphMeta is the per-glyph layout metadata carried by a glyph's file
// name: everything a dictionary entry holds except the bitmap dimensions
// and the placement the packer assigns. The two reserved fields have no
// known meaning and pass through every conversion verbatim.
type GlyphMeta struct {
	Code      uint16
	XBearing  int16
	YBearing  int16
	Advance   uint16
	Reserved4 uint16
	Reserved5 uint16
}

// StemFieldCount is the number of underscore-separated fields a glyph
// file name carries. It pins the naming schema: a directory written with
// a different field count is not this convention.
const StemFieldCount = 6

// Glyph file names encode the metadata as underscore-separated decimal
// fields in this fixed order. The convention is frozen; changing it would
// orphan every previously extracted directory.
var stemFields = [StemFieldCount]string{
	"character code",
	"x bearing",
	"y bearing",
	"advance",
	"reserved4",
	"reserved5",
}

// ParseStem decodes a glyph file name stem (the name without its
// extension) into metadata. It fails with a *NameError when fewer than
// six fields are present or a field does not parse within its numeric
// range. Extra trailing fields are tolerated and ignored.
func ParseStem(stem string) (GlyphMeta, error) {
	fields := strings.Split(stem, "_")
	if len(fields) < StemFieldCount {
		return GlyphMeta{}, &NameError{
			Stem:   stem,
			Reason: "expected " + strconv.Itoa(StemFieldCount) + " underscore-separated fields, found " + strconv.Itoa(len(fields)),
		}
	}

	parseU16 := func(i int) (uint16, error) {
		v, err := strconv.ParseUint(fields[i], 10, 16)
		if err != nil {
			return 0, &NameError{Stem: stem, Field: stemFields[i], Reason: "not an unsigned 16-bit integer: " + strconv.Quote(fields[i])}
		}
		return uint16(v), nil
	}
	parseI16 := func(i int) (int16, error) {
		v, err := strconv.ParseInt(fields[i], 10, 16)
		if err != nil {
			return 0, &NameError{Stem: stem, Field: stemFields[i], Reason: "not a signed 16-bit integer: " + strconv.Quote(fields[i])}
		}
		return int16(v), nil
	}

	var meta GlyphMeta
	var err error
	if meta.Code, err = parseU16(0); err != nil {
		return GlyphMeta{}, err
	}
	if meta.XBearing, err = parseI16(1); err != nil {
		return GlyphMeta{}, err
	}
	if meta.YBearing, err = parseI16(2); err != nil {
		return GlyphMeta{}, err
	}
	if meta.Advance, err = parseU16(3); err != nil {
		return GlyphMeta{}, err
	}
	if meta.Reserved4, err = parseU16(4); err != nil {
		return GlyphMeta{}, err
	}
	if meta.Reserved5, err = parseU16(5); err != nil {
		return GlyphMeta{}, err
	}
	return meta, nil
}

// Stem encodes the metadata as a file name stem. It is the exact inverse
// of ParseStem and cannot fail: every field is in range by construction.
func (m GlyphMeta) Stem() string {
	fields := []string{
		strconv.FormatUint(uint64(m.Code), 10),
		strconv.FormatInt(int64(m.XBearing), 10),
		strconv.FormatInt(int64(m.YBearing), 10),
		strconv.FormatUint(uint64(m.Advance), 10),
		strconv.FormatUint(uint64(m.Reserved4), 10),
		strconv.FormatUint(uint64(m.Reserved5), 10),
	}
	return strings.Join(fields, "_")
}

// FileName returns the stem with the given extension appended, e.g.
// FileName(".png").
func (m GlyphMeta) FileName(ext string) string {
	return m.Stem() + ext
}
