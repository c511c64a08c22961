package pmdfonttool

import (
	"bytes"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/marius851000/pmdfonttool/cte"
	"github.com/marius851000/pmdfonttool/imageutil"
	"github.com/marius851000/pmdfonttool/kand"
)

// Extract reads a dictionary and texture pair and writes each glyph as an
// individually editable PNG into outDir.
func Extract(dicPath, imgPath, outDir string) error {
	dicFile, err := os.Open(dicPath)
	if err != nil {
		return errors.Wrap(err, "failed to open dictionary")
	}
	defer dicFile.Close()
	dic, err := kand.Read(dicFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read dictionary %s", dicPath)
	}

	imgFile, err := os.Open(imgPath)
	if err != nil {
		return errors.Wrap(err, "failed to open texture")
	}
	defer imgFile.Close()
	texture, err := cte.Decode(imgFile)
	if err != nil {
		return errors.Wrapf(err, "failed to read texture %s", imgPath)
	}

	glyphs, err := Slice(texture.Pixels, dic.Chars)
	if err != nil {
		return err
	}
	if err := WriteGlyphDir(glyphs, outDir); err != nil {
		return err
	}
	logrus.Infof("extracted %d glyphs into %s", len(glyphs), outDir)
	return nil
}

// BuildOptions adjusts Build beyond its required outputs.
type BuildOptions struct {
	// PreviewPath, when set, additionally writes the packed atlas as a
	// plain PNG for eyeballing the layout.
	PreviewPath string
}

// Build packs every glyph image in inDir into a dictionary and texture
// pair. Both outputs are staged in memory and land on disk through
// temporary files, so a failing build never leaves a partial file or a
// mismatched pair behind.
func Build(inDir, dicPath, imgPath string, opts BuildOptions) error {
	set, err := ReadGlyphDir(inDir)
	if err != nil {
		return err
	}
	atlas, chars, err := Pack(set.Glyphs())
	if err != nil {
		return err
	}
	logrus.Infof("packed %d glyphs into a %dx%d atlas",
		len(chars), atlas.Bounds().Dx(), atlas.Bounds().Dy())

	var dicBuf bytes.Buffer
	if err := (&kand.File{Chars: chars}).Write(&dicBuf); err != nil {
		return errors.Wrap(err, "failed to encode dictionary")
	}
	var imgBuf bytes.Buffer
	if err := (&cte.Image{Format: cte.A8, Pixels: atlas}).Encode(&imgBuf); err != nil {
		return errors.Wrap(err, "failed to encode texture")
	}

	if opts.PreviewPath != "" {
		if err := imageutil.SavePNG(atlas, opts.PreviewPath); err != nil {
			return errors.Wrapf(err, "failed to write preview %s", opts.PreviewPath)
		}
		logrus.Infof("wrote atlas preview to %s", opts.PreviewPath)
	}

	if err := writeFileAtomic(dicPath, dicBuf.Bytes()); err != nil {
		return errors.Wrapf(err, "failed to write dictionary %s", dicPath)
	}
	if err := writeFileAtomic(imgPath, imgBuf.Bytes()); err != nil {
		return errors.Wrapf(err, "failed to write texture %s", imgPath)
	}
	logrus.Infof("wrote %s and %s", dicPath, imgPath)
	return nil
}

// Import rasterizes every character named by the list file from a
// TrueType font and writes the same editable directory layout Extract
// produces. Characters the font cannot render are reported and skipped;
// Import fails outright only when nothing could be imported at all.
func Import(charListPath, fontPath, outDir string, scale int) error {
	if scale < 1 || scale > math.MaxInt16 {
		return errors.Errorf("scale %d is outside the supported range 1 to %d", scale, math.MaxInt16)
	}
	runes, err := ReadCharList(charListPath)
	if err != nil {
		return err
	}
	ttf, err := LoadFont(fontPath)
	if err != nil {
		return errors.Wrapf(err, "failed to load font %s", fontPath)
	}

	glyphs, failed := ImportGlyphs(ttf, runes, scale)
	for _, ferr := range failed {
		logrus.Warnf("skipping character: %v", ferr)
	}
	if len(glyphs) == 0 && len(runes) > 0 {
		return errors.New("no characters could be imported")
	}

	if err := WriteGlyphDir(glyphs, outDir); err != nil {
		return err
	}
	logrus.Infof("imported %d of %d characters into %s", len(glyphs), len(runes), outDir)
	return nil
}

// writeFileAtomic stages data in a sibling temporary file and renames it
// into place, so readers never observe a half-written file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
