package pmdfonttool

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/marius851000/pmdfonttool/imageutil"
)

// ReadGlyphDir loads every file in dir as a glyph image whose name
// carries the metadata. Any regular file that does not follow the naming
// convention aborts the scan, so a typo cannot silently drop a glyph from
// a rebuilt font. Subdirectories are ignored.
func ReadGlyphDir(dir string) (*GlyphSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan glyph directory %s", dir)
	}

	set := NewGlyphSet()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		path := filepath.Join(dir, name)
		meta, err := ParseStem(strings.TrimSuffix(name, filepath.Ext(name)))
		if err != nil {
			return nil, errors.Wrapf(err, "cannot use %s", path)
		}
		img, err := imageutil.LoadNRGBA(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load glyph %s", path)
		}
		if err := set.Add(Glyph{GlyphMeta: meta, Image: img}, path); err != nil {
			return nil, err
		}
		logrus.Debugf("loaded glyph %d from %s", meta.Code, name)
	}
	return set, nil
}

// WriteGlyphDir writes one PNG per glyph into dir, creating the directory
// if needed. Each file is named after its glyph's metadata, which is what
// ReadGlyphDir parses back.
func WriteGlyphDir(glyphs []Glyph, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", dir)
	}
	for _, g := range glyphs {
		path := filepath.Join(dir, g.FileName(".png"))
		if err := imageutil.SavePNG(g.Image, path); err != nil {
			return errors.Wrapf(err, "failed to write glyph %s", path)
		}
		logrus.Debugf("wrote glyph %d to %s", g.Code, path)
	}
	return nil
}
