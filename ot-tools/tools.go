package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/typeshape"
	"github.com/thatisuday/commando"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.1.0").
		SetDescription("CLI for testing OpenType shaping and font diagnostics.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("shape").
		SetDescription("Shape text with a given OpenType font and print glyph stream output.").
		SetShortDescription("shape text").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("text...", "text to shape", "").
		AddFlag("script,s", "script (ISO 15924, e.g. Latn, Arab, Deva); derived from the text if empty", commando.String, "-").
		AddFlag("lang,l", "language tag (BCP 47, e.g. en, ar, hi)", commando.String, "-").
		AddFlag("direction,d", "direction: ltr|rtl", commando.String, "ltr").
		AddFlag("features,f", "feature list (e.g. liga=1,kern=0,+rlig,-calt)", commando.String, "-").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0627,U+0644)", commando.String, "-").
		SetAction(runShapeCommand)

	commando.
		Register("view").
		SetDescription("Render shaped text to a PNG image.").
		SetShortDescription("shape to image").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("text...", "text to shape before rendering", "").
		AddFlag("script,s", "script (ISO 15924, e.g. Latn, Arab, Deva); derived from the text if empty", commando.String, "-").
		AddFlag("lang,l", "language tag (BCP 47, e.g. en, ar, hi)", commando.String, "-").
		AddFlag("direction,d", "direction: ltr|rtl", commando.String, "ltr").
		AddFlag("features,f", "feature list (e.g. liga=1,kern=0,+rlig,-calt)", commando.String, "-").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0627,U+0644)", commando.String, "-").
		AddFlag("output,o", "output PNG file", commando.String, "ot-tools-view.png").
		AddFlag("show-bboxes,B", "draw red bounding-box outlines per rendered glyph", commando.Bool, nil).
		AddFlag("ppem,p", "render scale in pixels-per-em", commando.Int, 96).
		AddFlag("width,W", "image width in pixels", commando.Int, 320).
		AddFlag("height,H", "image height in pixels", commando.Int, 240).
		SetAction(runViewCommand)

	commando.
		Register("font").
		SetDescription("Print diagnostics and layout table information for an OpenType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path", "").
		AddFlag("errors,e", "print tolerated malformations of the layout tables", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.Parse(nil)
}

// typesetting parameters common to shape and view
type typesetParams struct {
	script language.Script // 0 if to be derived from the text
	lang   xlanguage.Tag
	dir    bidi.Direction
}

func parseTypesetFlags(flags map[string]commando.FlagValue) (typesetParams, error) {
	var p typesetParams
	var err error
	if p.script, err = parseScript(flags["script"]); err != nil {
		return p, err
	}
	if p.lang, err = parseLanguage(flags["lang"]); err != nil {
		return p, err
	}
	p.dir, err = parseDirection(flags["direction"])
	return p, err
}

func parseScript(flag commando.FlagValue) (language.Script, error) {
	s, err := flag.GetString()
	if err != nil {
		return 0, fmt.Errorf("invalid --script flag: %w", err)
	}
	if s = strings.TrimSpace(s); s == "" || s == "-" {
		return 0, nil
	}
	script, err := language.ParseScript(s)
	if err != nil {
		return 0, fmt.Errorf("invalid script %q: %w", s, err)
	}
	return script, nil
}

func parseLanguage(flag commando.FlagValue) (xlanguage.Tag, error) {
	s, err := flag.GetString()
	if err != nil {
		return xlanguage.Und, fmt.Errorf("invalid --lang flag: %w", err)
	}
	if s = strings.TrimSpace(s); s == "" || s == "-" {
		return xlanguage.Und, nil
	}
	tag, err := xlanguage.Parse(s)
	if err != nil {
		return xlanguage.Und, fmt.Errorf("invalid language %q: %w", s, err)
	}
	return tag, nil
}

func parseDirection(flag commando.FlagValue) (bidi.Direction, error) {
	s, err := flag.GetString()
	if err != nil {
		return bidi.LeftToRight, fmt.Errorf("invalid --direction flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ltr":
		return bidi.LeftToRight, nil
	case "rtl":
		return bidi.RightToLeft, nil
	default:
		return bidi.LeftToRight, fmt.Errorf("unsupported direction %q (expected ltr|rtl)", s)
	}
}

func mustLoadFont(path string) *typeshape.ScalableFont {
	f, err := typeshape.LoadOpenTypeFont(path)
	if err != nil {
		fatalf("cannot load font: %v", err)
	}
	return f
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	v, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return v
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	v, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return v
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}
