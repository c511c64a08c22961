package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/thatisuday/commando"

	"github.com/marius851000/pmdfonttool"
)

func main() {
	commando.
		SetExecutableName("pmdfonttool").
		SetVersion("0.1.0").
		SetDescription("Converts between a game font (a .dic glyph dictionary plus a .img glyph texture) " +
			"and a directory of individually editable glyph images, and imports glyphs from TrueType fonts.")

	commando.
		Register("extract").
		SetDescription("Read a .dic and .img pair and write each glyph as an editable image named after its metadata.").
		SetShortDescription("unpack a font into editable glyphs").
		AddArgument("dic", "input glyph dictionary (.dic)", "").
		AddArgument("img", "input glyph texture (.img)", "").
		AddArgument("output-dir", "directory to write the glyph images into", "").
		AddFlag("verbose,V", "log per-glyph detail", commando.Bool, nil).
		SetAction(runExtractCommand)

	commando.
		Register("build").
		SetDescription("Pack a directory of glyph images, as produced by extract or import, back into a .dic and .img pair.").
		SetShortDescription("pack glyphs into a font").
		AddArgument("input-dir", "directory of glyph images to pack", "").
		AddArgument("dic", "output glyph dictionary (.dic)", "").
		AddArgument("img", "output glyph texture (.img)", "").
		AddFlag("preview,p", "also write the packed atlas as a plain PNG at this path", commando.String, "-").
		AddFlag("verbose,V", "log per-glyph detail", commando.Bool, nil).
		SetAction(runBuildCommand)

	commando.
		Register("import").
		SetDescription("Rasterize every character listed in a text file from a TrueType font into a directory the build command can pack.").
		SetShortDescription("import glyphs from a TrueType font").
		AddArgument("char-list", "text file whose characters form the import set", "").
		AddArgument("font", "input TrueType font (.ttf)", "").
		AddArgument("output-dir", "directory to write the glyph images into", "").
		AddFlag("scale,s", "pixel height to rasterize at", commando.Int, 18).
		AddFlag("verbose,V", "log per-glyph detail", commando.Bool, nil).
		SetAction(runImportCommand)

	commando.Parse(nil)
}

func runExtractCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	configureLogging(flags)
	dic := requireArg(args, "dic")
	img := requireArg(args, "img")
	outDir := requireArg(args, "output-dir")
	if err := pmdfonttool.Extract(dic, img, outDir); err != nil {
		fatalf("%v", err)
	}
}

func runBuildCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	configureLogging(flags)
	inDir := requireArg(args, "input-dir")
	dic := requireArg(args, "dic")
	img := requireArg(args, "img")

	preview, err := flags["preview"].GetString()
	if err != nil {
		fatalf("invalid --preview flag: %v", err)
	}
	if preview == "-" {
		preview = ""
	}

	opts := pmdfonttool.BuildOptions{PreviewPath: preview}
	if err := pmdfonttool.Build(inDir, dic, img, opts); err != nil {
		fatalf("%v", err)
	}
}

func runImportCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	configureLogging(flags)
	charList := requireArg(args, "char-list")
	fontPath := requireArg(args, "font")
	outDir := requireArg(args, "output-dir")

	scale, err := flags["scale"].GetInt()
	if err != nil {
		fatalf("invalid --scale flag: %v", err)
	}

	if err := pmdfonttool.Import(charList, fontPath, outDir, scale); err != nil {
		fatalf("%v", err)
	}
}

func configureLogging(flags map[string]commando.FlagValue) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose, err := flags["verbose"].GetBool(); err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

func requireArg(args map[string]commando.ArgValue, name string) string {
	value := strings.TrimSpace(args[name].Value)
	if value == "" {
		fatalf("%s is required", name)
	}
	return value
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "pmdfonttool: "+format+"\n", args...)
	os.Exit(1)
}
