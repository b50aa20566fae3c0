package otquery

import (
	"bytes"
	"fmt"

	otloader "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/typeshape/ot"
)

// Font gives query access to the tables of a font binary.
type Font struct {
	ld     *otloader.Loader
	Layout *ot.Font // parsed layout tables, may be nil
}

// Open reads the table directory of a font binary. layout may be nil, in
// which case layout queries report no support.
func Open(binary []byte, layout *ot.Font) (*Font, error) {
	ld, err := otloader.NewLoader(bytes.NewReader(binary))
	if err != nil {
		return nil, fmt.Errorf("reading table directory: %w", err)
	}
	return &Font{ld: ld, Layout: layout}, nil
}

// table returns the bytes of a table, or nil if the font does not contain it.
func (f *Font) table(tag string) []byte {
	if f == nil || f.ld == nil {
		return nil
	}
	t := otloader.MustNewTag(tag)
	if !f.ld.HasTable(t) {
		return nil
	}
	b, err := f.ld.RawTable(t)
	if err != nil {
		tracer().Errorf("cannot read table %s: %v", tag, err)
		return nil
	}
	return b
}

// TableTags returns the tags of all tables in the font, in directory order.
func (f *Font) TableTags() []string {
	if f == nil || f.ld == nil {
		return nil
	}
	tags := f.ld.Tables()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.String()
	}
	return names
}

// FontType returns "TrueType" for fonts with glyf outlines, "OpenType" for
// fonts with CFF outlines, and "unknown" otherwise.
func FontType(f *Font) string {
	switch {
	case f.table("glyf") != nil:
		return "TrueType"
	case f.table("CFF ") != nil || f.table("CFF2") != nil:
		return "OpenType"
	}
	return "unknown"
}

// LayoutTables returns the tags of the layout tables a font contains.
func LayoutTables(f *Font) []string {
	var tags []string
	for _, tag := range []string{"GDEF", "GSUB", "GPOS", "BASE", "JSTF", "MATH"} {
		if f.table(tag) != nil {
			tags = append(tags, tag)
		}
	}
	return tags
}
