package pmdfonttool

import (
	"bytes"
	"os"
	"unicode/utf8"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/unicode"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// ReadCharList reads the characters to import from a text file: every
// distinct code point it contains, returned in ascending order. The file
// must be valid UTF-8, except that a UTF-16 byte order mark switches
// decoding to UTF-16, which translator tooling regularly emits. Code
// points beyond the 16-bit character space can never become glyph codes
// and are skipped with a warning.
func ReadCharList(path string) ([]rune, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read character list")
	}
	text, err := decodeCharList(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode character list %s", path)
	}

	seen := bitset.New(1 << 16)
	for _, r := range text {
		if r > 0xFFFF {
			logrus.Warnf("skipping %q (U+%04X): outside the 16-bit character space", r, r)
			continue
		}
		seen.Set(uint(r))
	}

	runes := make([]rune, 0, seen.Count())
	for i, ok := seen.NextSet(0); ok; i, ok = seen.NextSet(i + 1) {
		runes = append(runes, rune(i))
	}
	return runes, nil
}

func decodeCharList(data []byte) (string, error) {
	if bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM) {
		decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", errors.Wrap(err, "bad UTF-16 text")
		}
		return string(decoded), nil
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", errors.New("not valid UTF-8 text")
	}
	return string(data), nil
}
