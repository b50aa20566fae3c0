package ot

// GlyphClass is a glyph class as defined by the GDEF glyph class definition table.
type GlyphClass uint16

// GDEF glyph classes.
const (
	UnclassifiedGlyph GlyphClass = 0 // not classified
	BaseGlyph         GlyphClass = 1 // single character, spacing glyph
	LigatureGlyph     GlyphClass = 2 // multiple character, spacing glyph
	MarkGlyph         GlyphClass = 3 // non-spacing combining glyph
	ComponentGlyph    GlyphClass = 4 // part of single character, spacing glyph
)

// GDef is a loaded GDEF table. Attachment point lists and ligature caret lists
// are not needed for shaping and are not loaded.
type GDef struct {
	MajorVersion      uint16
	MinorVersion      uint16
	GlyphClasses      ClassDef   // glyph class definition, may be empty
	MarkAttachClasses ClassDef   // mark attachment class definition, may be empty
	MarkGlyphSets     []Coverage // since version 1.2
}

// HasGlyphClasses reports whether the GDEF table classifies glyphs.
func (gdef *GDef) HasGlyphClasses() bool {
	return gdef != nil && !gdef.GlyphClasses.IsEmpty()
}

// GlyphClass returns the GDEF class of a glyph.
func (gdef *GDef) GlyphClass(g GlyphIndex) GlyphClass {
	if gdef == nil {
		return UnclassifiedGlyph
	}
	return GlyphClass(gdef.GlyphClasses.Class(g))
}

// IsMark reports whether a glyph is classified as a mark.
func (gdef *GDef) IsMark(g GlyphIndex) bool {
	return gdef.GlyphClass(g) == MarkGlyph
}

// MarkAttachClass returns the mark attachment class of a glyph.
func (gdef *GDef) MarkAttachClass(g GlyphIndex) uint16 {
	if gdef == nil {
		return 0
	}
	return gdef.MarkAttachClasses.Class(g)
}

// InMarkGlyphSet reports whether a glyph is contained in a mark glyph set.
func (gdef *GDef) InMarkGlyphSet(set uint16, g GlyphIndex) bool {
	if gdef == nil || int(set) >= len(gdef.MarkGlyphSets) {
		return false
	}
	return gdef.MarkGlyphSets[set].Contains(g)
}

/*
GDEF Header, version 1.0 – 1.3

	uint16    majorVersion             Major version of the GDEF table, = 1
	uint16    minorVersion             Minor version of the GDEF table, = 0, 2 or 3
	Offset16  glyphClassDefOffset      Offset to class definition table for glyph type, from beginning of GDEF header (may be NULL)
	Offset16  attachListOffset         Offset to attachment point list table, from beginning of GDEF header (may be NULL)
	Offset16  ligCaretListOffset       Offset to ligature caret list table, from beginning of GDEF header (may be NULL)
	Offset16  markAttachClassDefOffset Offset to class definition table for mark attachment type, from beginning of GDEF header (may be NULL)
	Offset16  markGlyphSetsDefOffset   (1.2) Offset to the table of mark glyph set definitions, from beginning of GDEF header (may be NULL)
	Offset32  itemVarStoreOffset       (1.3) Offset to the Item Variation Store table, from beginning of GDEF header (may be NULL)
*/
func parseGDef(data []byte) (*GDef, []FontWarning, error) {
	r := newReader(TagGDEF, data)
	gdef := &GDef{}
	var err error
	if gdef.MajorVersion, err = r.u16(); err != nil {
		return nil, nil, err
	}
	if gdef.MinorVersion, err = r.u16(); err != nil {
		return nil, nil, err
	}
	if gdef.MajorVersion != 1 {
		return nil, nil, r.errorf("header", 0, "unsupported GDEF version %d.%d", gdef.MajorVersion, gdef.MinorVersion)
	}
	offsets, err := r.u16s(4)
	if err != nil {
		return nil, nil, err
	}
	if offsets[0] != 0 {
		if gdef.GlyphClasses, err = parseClassDef(r, int(offsets[0])); err != nil {
			return nil, nil, err
		}
	}
	if offsets[3] != 0 {
		if gdef.MarkAttachClasses, err = parseClassDef(r, int(offsets[3])); err != nil {
			return nil, nil, err
		}
	}
	if gdef.MinorVersion >= 2 {
		setsOffset, err := r.u16()
		if err != nil {
			return nil, nil, err
		}
		if setsOffset != 0 {
			if gdef.MarkGlyphSets, err = parseMarkGlyphSets(r, int(setsOffset)); err != nil {
				return nil, nil, err
			}
		}
	}
	tracer().Debugf("GDEF %d.%d: glyph classes=%v, %d mark glyph sets", gdef.MajorVersion,
		gdef.MinorVersion, !gdef.GlyphClasses.IsEmpty(), len(gdef.MarkGlyphSets))
	return gdef, r.warn.list, nil
}

/*
Mark Glyph Sets table

	uint16    format                Format identifier == 1
	uint16    markGlyphSetCount     Number of mark glyph sets defined
	Offset32  coverageOffsets[markGlyphSetCount]  Array of offsets to mark glyph set coverage tables, from the start of the MarkGlyphSets table.
*/
func parseMarkGlyphSets(r *reader, base int) ([]Coverage, error) {
	defer r.jump(base)()
	format, err := r.u16()
	if err != nil {
		return nil, err
	}
	if format != 1 {
		r.warn.add(base, "unknown mark glyph sets format %d", format)
		return nil, nil
	}
	count, err := r.u16()
	if err != nil {
		return nil, err
	}
	sets := make([]Coverage, count)
	for i := range sets {
		off, err := r.u32()
		if err != nil {
			return nil, err
		}
		if off == 0 {
			continue
		}
		if sets[i], err = parseCoverage(r, base+int(off)); err != nil {
			return nil, err
		}
	}
	return sets, nil
}
