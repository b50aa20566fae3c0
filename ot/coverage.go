package ot

import (
	"iter"
	"sort"
)

// --- Coverage table --------------------------------------------------------

// Coverage denotes an indexed set of glyphs.
// Each LookupSubtable (except an Extension LookupType subtable) in a lookup references
// a Coverage table (Coverage), which specifies all the glyphs affected by a
// substitution or positioning operation described in the subtable.
// The GSUB, GPOS, and GDEF tables rely on this notion of coverage. If a glyph does
// not appear in a Coverage table, the client can skip that subtable and move
// immediately to the next subtable.
//
// The zero value is an empty coverage.
type Coverage struct {
	format uint16
	glyphs []GlyphIndex    // format 1, strictly increasing
	ranges []CoverageRange // format 2, sorted by Start, non-overlapping
}

// CoverageRange is a range record of a format 2 coverage table.
type CoverageRange struct {
	Start, End GlyphIndex // first and last glyph ID in the range
	StartIndex uint16     // coverage index of Start
}

// NewCoverageList creates a format 1 coverage from a list of glyphs, which must be
// strictly increasing.
func NewCoverageList(glyphs ...GlyphIndex) Coverage {
	return Coverage{format: 1, glyphs: glyphs}
}

// NewCoverageRanges creates a format 2 coverage from range records.
func NewCoverageRanges(ranges ...CoverageRange) Coverage {
	return Coverage{format: 2, ranges: ranges}
}

// Format returns 1 or 2, or 0 for an empty coverage.
func (c Coverage) Format() uint16 {
	return c.format
}

// Index returns the coverage index of glyph g, or None if g is not covered.
func (c Coverage) Index(g GlyphIndex) Option[int] {
	switch c.format {
	case 1:
		i := sort.Search(len(c.glyphs), func(i int) bool { return c.glyphs[i] >= g })
		if i < len(c.glyphs) && c.glyphs[i] == g {
			return Some(i)
		}
	case 2:
		i := sort.Search(len(c.ranges), func(i int) bool { return c.ranges[i].End >= g })
		if i < len(c.ranges) && c.ranges[i].Start <= g {
			return Some(int(c.ranges[i].StartIndex) + int(g-c.ranges[i].Start))
		}
	}
	return None[int]()
}

// Match returns the coverage index for a glyph, and true if present.
func (c Coverage) Match(g GlyphIndex) (int, bool) {
	return c.Index(g).Unwrap()
}

// Contains reports whether a glyph is present in the coverage.
func (c Coverage) Contains(g GlyphIndex) bool {
	return c.Index(g).IsSome()
}

// Len returns the number of glyphs covered.
func (c Coverage) Len() int {
	switch c.format {
	case 1:
		return len(c.glyphs)
	case 2:
		n := 0
		for _, r := range c.ranges {
			if r.End >= r.Start {
				n += int(r.End-r.Start) + 1
			}
		}
		return n
	}
	return 0
}

// Glyphs iterates over the covered glyphs, yielding coverage index and glyph,
// in declaration order.
func (c Coverage) Glyphs() iter.Seq2[int, GlyphIndex] {
	return func(yield func(int, GlyphIndex) bool) {
		switch c.format {
		case 1:
			for i, g := range c.glyphs {
				if !yield(i, g) {
					return
				}
			}
		case 2:
			for _, r := range c.ranges {
				for g := int(r.Start); g <= int(r.End); g++ {
					if !yield(int(r.StartIndex)+g-int(r.Start), GlyphIndex(g)) {
						return
					}
				}
			}
		}
	}
}

// --- Class definition table ------------------------------------------------

// ClassDef groups glyphs into classes, denoted as integer values.
//
// From the OpenType documentation:
// For efficiency and ease of representation, a font developer can group glyph indices
// to form glyph classes. Class assignments vary in meaning from one lookup subtable
// to another. For example, in the GSUB and GPOS tables, classes are used to describe
// glyph contexts. GDEF tables also use the idea of glyph classes.
//
// Any glyph not included in the range of covered glyph IDs automatically belongs
// to Class 0. The zero value of ClassDef maps every glyph to class 0.
type ClassDef struct {
	format  uint16
	start   GlyphIndex   // format 1: glyph ID of the first entry
	classes []uint16     // format 1: one class per glyph ID
	ranges  []ClassRange // format 2: sorted by Start, non-overlapping
}

// ClassRange is a class range record of a format 2 class definition table.
type ClassRange struct {
	Start, End GlyphIndex
	Class      uint16
}

// NewClassDefArray creates a format 1 class definition, assigning classes to
// consecutive glyph IDs beginning with start.
func NewClassDefArray(start GlyphIndex, classes ...uint16) ClassDef {
	return ClassDef{format: 1, start: start, classes: classes}
}

// NewClassDefRanges creates a format 2 class definition from sorted range records.
func NewClassDefRanges(ranges ...ClassRange) ClassDef {
	return ClassDef{format: 2, ranges: ranges}
}

// Format returns 1 or 2, or 0 for an empty class definition.
func (cd ClassDef) Format() uint16 {
	return cd.format
}

// Class returns the class defined for a glyph, or 0 (= default class).
func (cd ClassDef) Class(g GlyphIndex) uint16 {
	switch cd.format {
	case 1:
		if g < cd.start || int(g-cd.start) >= len(cd.classes) {
			return 0
		}
		return cd.classes[g-cd.start]
	case 2:
		i := sort.Search(len(cd.ranges), func(i int) bool { return cd.ranges[i].End >= g })
		if i < len(cd.ranges) && cd.ranges[i].Start <= g {
			return cd.ranges[i].Class
		}
	}
	return 0
}

// IsEmpty reports whether every glyph maps to class 0.
func (cd ClassDef) IsEmpty() bool {
	return len(cd.classes) == 0 && len(cd.ranges) == 0
}
