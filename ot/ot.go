package ot

import (
	"errors"
	"fmt"
)

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by OpenType as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("GSUB"))
func MakeTag(b []byte) Tag {
	if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append(append([]byte{}, b...), []byte("    ")[:4-len(b)]...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// Well-known tags.
var (
	TagGSUB = T("GSUB")
	TagGPOS = T("GPOS")
	TagGDEF = T("GDEF")

	// DFLT is the script tag for features that are not script-specific.
	DFLT = T("DFLT")
	// DefaultLanguage is 'dflt', which is not a valid language tag, but some fonts
	// mistakenly use it.
	DefaultLanguage = T("dflt")
)

// --- Font ------------------------------------------------------------------

// Font groups the advanced-typography layout tables of a font. Any of the tables
// may be nil, if the font does not contain it.
//
// A Font is immutable after loading and may be shared between goroutines shaping
// independent runs of text.
type Font struct {
	GSUB     *LayoutTable
	GPOS     *LayoutTable
	GDEF     *GDef
	warnings []FontWarning
}

// Parse loads the layout tables from their binary representation. Every argument
// may be empty, meaning that the font does not contain the respective table.
// Parse will fail fast: no shaping is possible with a font returning an error.
func Parse(gsub, gpos, gdef []byte) (*Font, error) {
	otf := &Font{}
	var err error
	if len(gdef) > 0 {
		var w []FontWarning
		if otf.GDEF, w, err = parseGDef(gdef); err != nil {
			return nil, fmt.Errorf("loading GDEF: %w", err)
		}
		otf.warnings = append(otf.warnings, w...)
	}
	if len(gsub) > 0 {
		if otf.GSUB, err = ParseLayoutTable(TagGSUB, gsub); err != nil {
			return nil, fmt.Errorf("loading GSUB: %w", err)
		}
		otf.warnings = append(otf.warnings, otf.GSUB.warnings...)
	}
	if len(gpos) > 0 {
		if otf.GPOS, err = ParseLayoutTable(TagGPOS, gpos); err != nil {
			return nil, fmt.Errorf("loading GPOS: %w", err)
		}
		otf.warnings = append(otf.warnings, otf.GPOS.warnings...)
	}
	tracer().Debugf("loaded layout tables: GSUB=%v, GPOS=%v, GDEF=%v",
		otf.GSUB != nil, otf.GPOS != nil, otf.GDEF != nil)
	return otf, nil
}

// Warnings returns the tolerated malformations found while loading the font.
func (otf *Font) Warnings() []FontWarning {
	return otf.warnings
}

// HasGSUB reports whether the font contains a GSUB table.
func (otf *Font) HasGSUB() bool {
	return otf != nil && otf.GSUB != nil
}

// HasGPOS reports whether the font contains a GPOS table.
func (otf *Font) HasGPOS() bool {
	return otf != nil && otf.GPOS != nil
}

// Table returns the layout table for tag GSUB or GPOS, or nil.
func (otf *Font) Table(tag Tag) *LayoutTable {
	if otf == nil {
		return nil
	}
	switch tag {
	case TagGSUB:
		return otf.GSUB
	case TagGPOS:
		return otf.GPOS
	}
	return nil
}

// IsInvalidFont is a shortcut for errors.Is(err, ErrInvalidFont).
func IsInvalidFont(err error) bool {
	return errors.Is(err, ErrInvalidFont)
}
