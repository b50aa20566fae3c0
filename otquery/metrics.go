package otquery

import (
	"github.com/npillmayer/typeshape/ot"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// FontSupportsScript returns a tuple (script-tag, language-tag) for a given input
// of a script tag and a language tag. If the language has no special support in the
// font, DFLT will be returned. If the script has no support in the font,
// DFLT will be returned for the script.
func FontSupportsScript(f *Font, scr ot.Tag, lang ot.Tag) (ot.Tag, ot.Tag) {
	if f == nil {
		return 0, 0
	}
	if f.Layout == nil || f.Layout.GSUB == nil {
		return ot.DFLT, ot.DFLT
	}
	script := f.Layout.GSUB.Script(scr)
	if script == nil {
		tracer().Infof("cannot find script %s in font", scr.String())
		return ot.DFLT, ot.DFLT
	}
	tracer().Debugf("script %s is contained in GSUB", scr.String())
	if lang != ot.DFLT && script.LanguageSystem(lang) != script.DefaultLangSys {
		return scr, lang
	}
	return scr, ot.DFLT
}

const (
	hheaSize      = 36
	os2TypoSize   = 74 // up to and including sTypoLineGap
	os2TypoOffset = 68
)

// FontMetrics retrieves selected metrics of a font.
// Ascent and descent are taken from table 'hhea'. If both are zero, the
// typographic values of table 'OS/2' are used instead.
func FontMetrics(f *Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if hhea := f.table("hhea"); len(hhea) >= hheaSize {
		metrics.Ascent = sfnt.Units(i16(hhea[4:]))
		metrics.Descent = sfnt.Units(i16(hhea[6:]))
		metrics.LineGap = sfnt.Units(i16(hhea[8:]))
		metrics.MaxAdvance = sfnt.Units(u16(hhea[10:]))
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if os2 := f.table("OS/2"); len(os2) >= os2TypoSize {
			tracer().Debugf("OS/2")
			a := sfnt.Units(i16(os2[os2TypoOffset:]))
			if a > metrics.Ascent {
				tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
				metrics.Ascent = a
			}
			d := sfnt.Units(i16(os2[os2TypoOffset+2:]))
			if d < metrics.Descent {
				tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
				metrics.Descent = d
			}
			metrics.LineGap = sfnt.Units(i16(os2[os2TypoOffset+4:]))
		}
	}
	if head, ok := HeaderInfo(f); ok {
		metrics.UnitsPerEm = head.UnitsPerEm
	}
	return metrics
}

// --- Glyph Routines --------------------------------------------------------

// GlyphClass returns the GDEF class of a glyph, or 0 if the font has no glyph
// class definitions.
func GlyphClass(f *Font, gid ot.GlyphIndex) ot.GlyphClass {
	if f == nil || f.Layout == nil || f.Layout.GDEF == nil {
		return 0
	}
	return f.Layout.GDEF.GlyphClass(gid)
}

// GlyphMetrics retrieves metrics for a given glyph.
func GlyphMetrics(f *Font, gid ot.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	//
	// table hmtx: advance width and left side bearing
	if aw, lsb, ok := hMetrics(f, gid); ok {
		metrics.Advance = sfnt.Units(aw)
		metrics.LSB = sfnt.Units(lsb)
	}
	//
	// table glyf: bounding box
	if b := glyphData(f, gid); len(b) >= 10 {
		metrics.BBox = BoundingBox{
			MinX: sfnt.Units(i16(b[2:])),
			MinY: sfnt.Units(i16(b[4:])),
			MaxX: sfnt.Units(i16(b[6:])),
			MaxY: sfnt.Units(i16(b[8:])),
		}
	}
	// RSB calculation: rsb = aw - (lsb + xMax - xMin)
	// If a glyph has no contours, xMax/xMin are not defined. The left side bearing
	// indicated in the 'hmtx' table for such glyphs should be zero.
	if !metrics.BBox.IsEmpty() {
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}

// hMetrics looks up advance width and left side bearing of a glyph in table
// 'hmtx'. Glyphs beyond numberOfHMetrics share the last advance width.
func hMetrics(f *Font, gid ot.GlyphIndex) (uint16, int16, bool) {
	hhea, hmtx := f.table("hhea"), f.table("hmtx")
	if len(hhea) < hheaSize || hmtx == nil {
		return 0, 0, false
	}
	n := int(u16(hhea[34:]))
	if n == 0 || len(hmtx) < 4*n {
		return 0, 0, false
	}
	g := int(gid)
	if g < n {
		return u16(hmtx[4*g:]), i16(hmtx[4*g+2:]), true
	}
	aw := u16(hmtx[4*(n-1):])
	off := 4*n + 2*(g-n)
	if off+2 > len(hmtx) {
		return aw, 0, true
	}
	return aw, i16(hmtx[off:]), true
}

// glyphData returns the 'glyf' entry of a glyph, located via table 'loca'.
// Glyphs without outline yield nil.
func glyphData(f *Font, gid ot.GlyphIndex) []byte {
	head, ok := HeaderInfo(f)
	if !ok {
		return nil
	}
	loca, glyf := f.table("loca"), f.table("glyf")
	if loca == nil || glyf == nil {
		return nil
	}
	var start, end int
	g := int(gid)
	if !head.LongLoca {
		if 2*g+4 > len(loca) {
			return nil
		}
		start, end = 2*int(u16(loca[2*g:])), 2*int(u16(loca[2*g+2:]))
	} else {
		if 4*g+8 > len(loca) {
			return nil
		}
		start, end = int(u32(loca[4*g:])), int(u32(loca[4*g+4:]))
	}
	if start >= end || end > len(glyf) {
		return nil
	}
	return glyf[start:end]
}
