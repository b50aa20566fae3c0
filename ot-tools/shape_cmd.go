package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/typeshape"
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
	"github.com/thatisuday/commando"
)

func runShapeCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path argument is required")
	}
	f := mustLoadFont(fontPath)
	buf := shapeFromFlags(f, args, flags)
	fmt.Println(formatGlyphOutput(buf))
}

// shapeFromFlags shapes the input text of a command. It exits on errors.
func shapeFromFlags(f *typeshape.ScalableFont, args map[string]commando.ArgValue,
	flags map[string]commando.FlagValue) *otlayout.Buffer {
	//
	params, err := parseTypesetFlags(flags)
	if err != nil {
		fatalf("%v", err)
	}
	opts, err := parseFeatureList(flags["features"])
	if err != nil {
		fatalf("%v", err)
	}
	opts.Language = params.lang
	input, err := parseShapeInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	if input == "" {
		fatalf("input text is empty")
	}
	script := params.script
	if script == 0 {
		script = typeshape.ScriptOf(input)
	}
	buf := otlayout.NewBuffer(params.dir, script)
	for i, r := range []rune(input) {
		buf.AddCodePoint(r, i)
	}
	if err := typeshape.ShapeBuffer(f, buf, opts); err != nil {
		fatalf("shape failed: %v", err)
	}
	return buf
}

// ---Parsing flags and arguments ---------------------------------------

func parseShapeInput(textArg commando.ArgValue, cpFlag commando.FlagValue) (string, error) {
	cp, err := cpFlag.GetString()
	if err != nil {
		return "", fmt.Errorf("invalid --codepoints flag: %w", err)
	}
	cp = strings.TrimSpace(cp)
	if cp == "-" {
		cp = ""
	}
	if cp != "" {
		runes, err := parseCodepoints(cp)
		if err != nil {
			return "", err
		}
		return string(runes), nil
	}
	return textArg.Value, nil
}

func parseFeatureList(flag commando.FlagValue) (otshape.Options, error) {
	var opts otshape.Options
	spec, err := flag.GetString()
	if err != nil {
		return opts, fmt.Errorf("invalid --features flag: %w", err)
	}
	spec = strings.TrimSpace(spec)
	if spec == "-" || spec == "" {
		return opts, nil
	}
	for _, p := range splitCSVSpace(spec) {
		f, alt, err := parseFeatureItem(p)
		if err != nil {
			return opts, err
		}
		opts.Features = append(opts.Features, f)
		if alt > 0 {
			opts.Alternate = alt
		}
	}
	return opts, nil
}

var noFeatures = otshape.FeatureRange{}

// We try to follow Harfbuzz's `hb-shape` features parameter syntax, which is
// unfortunately not well documented.
//
// Disable ligatures:      --features="-liga"
// or                      --features="liga=0"
// Select alternate 2:     --features="salt=3"
//
// Feature ranges are not supported yet ("liga[3:5]").
func parseFeatureItem(item string) (otshape.FeatureRange, int, error) {
	if item = strings.TrimSpace(item); item == "" {
		return noFeatures, 0, errors.New("empty feature entry in --features")
	}
	on, isMinus := true, false
	if item, on = strings.CutPrefix(item, "+"); !on {
		if item, isMinus = strings.CutPrefix(item, "-"); isMinus {
			on = false
		} else {
			on = true
		}
	}
	tagPart, value, hasEqual := strings.Cut(item, "=")
	alternate := 0
	if hasEqual {
		if value == "" {
			return noFeatures, 0, fmt.Errorf("empty feature value in %q", item)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return noFeatures, 0, fmt.Errorf("invalid feature value in %q: %w", item, err)
		}
		on = n != 0
		if n > 1 {
			alternate = n - 1
		}
	}
	tagPart = strings.TrimSpace(tagPart)
	if len(tagPart) != 4 {
		return noFeatures, 0, fmt.Errorf("feature tag %q is not 4 characters", tagPart)
	}
	return otshape.FeatureRange{
		Feature: ot.T(tagPart),
		On:      on,
	}, alternate, nil
}

func parseCodepoints(spec string) ([]rune, error) {
	parts := splitCSVSpace(spec)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	return rune(u), nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// ---Formatting the Output ---------------------------------------------

// formatGlyphOutput prints glyphs as hb-shape does, e.g. "[36=0+1200|72=1+1100@0,20]".
func formatGlyphOutput(buf *otlayout.Buffer) string {
	var b strings.Builder
	for i := range buf.Glyphs {
		g := buf.At(i)
		if b.Len() > 0 {
			b.WriteString("|")
		}
		part := fmt.Sprintf("%d=%d+%d", g.GlyphID, g.Cluster, g.Pos.XAdvance)
		if g.Pos.YAdvance != 0 {
			part = fmt.Sprintf("%s,%d", part, g.Pos.YAdvance)
		}
		if g.Pos.XOffset != 0 || g.Pos.YOffset != 0 {
			part = fmt.Sprintf("%s@%d,%d", part, g.Pos.XOffset, g.Pos.YOffset)
		}
		b.WriteString(part)
	}
	return "[" + b.String() + "]"
}
