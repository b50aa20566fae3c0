package typeshape

import (
	"bytes"
	"fmt"
	"os"

	otloader "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ScalableFont is an internal representation of an outline-font of type
// TTF of OTF.
//
// A ScalableFont provides the glyph metrics for shaping and may be shared
// between goroutines.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
	Layout   *ot.Font   // GSUB, GPOS and GDEF
	ppem     fixed.Int26_6
}

var _ otlayout.GlyphMetrics = (*ScalableFont)(nil)

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
// The layout tables are decoded right away; a font with broken layout tables
// is rejected with an error matching ot.ErrInvalidFont.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	// glyph outlines and advances are requested at one pixel per design unit
	f.ppem = fixed.Int26_6(f.SFNT.UnitsPerEm()) << 6
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	ld, err := otloader.NewLoader(bytes.NewReader(fbytes))
	if err != nil {
		return nil, err
	}
	var tables [3][]byte
	for i, tag := range []string{"GSUB", "GPOS", "GDEF"} {
		if t := otloader.MustNewTag(tag); ld.HasTable(t) {
			if tables[i], err = ld.RawTable(t); err != nil {
				return nil, err
			}
		}
	}
	if f.Layout, err = ot.Parse(tables[0], tables[1], tables[2]); err != nil {
		return nil, err
	}
	for _, w := range f.Layout.Warnings() {
		tracer().Infof("font %s: %v", f.Fontname, w)
	}
	return f, nil
}

// UnitsPerEm returns the number of design units per em.
func (f *ScalableFont) UnitsPerEm() int32 {
	return int32(f.SFNT.UnitsPerEm())
}

// GlyphIndex is part of interface otlayout.GlyphMetrics.
func (f *ScalableFont) GlyphIndex(r rune) (ot.GlyphIndex, bool) {
	var b sfnt.Buffer
	g, err := f.SFNT.GlyphIndex(&b, r)
	if err != nil || g == 0 {
		return 0, false
	}
	return ot.GlyphIndex(g), true
}

// Advance is part of interface otlayout.GlyphMetrics.
func (f *ScalableFont) Advance(g ot.GlyphIndex) int32 {
	var b sfnt.Buffer
	adv, err := f.SFNT.GlyphAdvance(&b, sfnt.GlyphIndex(g), f.ppem, font.HintingNone)
	if err != nil {
		tracer().Debugf("no advance for glyph %d: %v", g, err)
		return 0
	}
	return int32(adv.Round())
}

// OutlinePoints is part of interface otlayout.GlyphMetrics.
//
// Points are numbered in the order of the decoded outline segments, with
// control points included. For TrueType outlines without implied on-curve
// points this matches the point numbers of the glyf table.
func (f *ScalableFont) OutlinePoints(g ot.GlyphIndex) []otlayout.Point {
	var b sfnt.Buffer
	segments, err := f.SFNT.LoadGlyph(&b, sfnt.GlyphIndex(g), f.ppem, nil)
	if err != nil {
		return nil
	}
	points := make([]otlayout.Point, 0, len(segments))
	for _, seg := range segments {
		n := 1
		switch seg.Op {
		case sfnt.SegmentOpQuadTo:
			n = 2
		case sfnt.SegmentOpCubeTo:
			n = 3
		}
		for _, p := range seg.Args[:n] {
			// sfnt has y growing downwards
			points = append(points, otlayout.Point{X: int32(p.X.Round()), Y: int32(-p.Y.Round())})
		}
	}
	return points
}
