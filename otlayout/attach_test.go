package otlayout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeshape/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/bidi"
)

func anchor(x, y int16) *ot.Anchor {
	return &ot.Anchor{Format: 1, X: x, Y: y}
}

// Glyphs 1, 2, 4 are bases, 3 is a mark; 1 2 4 form ligature 10.
var ligatureGDef = &ot.GDef{MajorVersion: 1,
	GlyphClasses: ot.NewClassDefArray(1, 1, 1, 3, 1, 0, 0, 0, 0, 0, 2)}

func ligatureFont() *ot.Font {
	otf := font(ot.TagGSUB, ligatureGDef, ot.Lookup{
		Type: ot.GSubLookupTypeLigature,
		Flag: ot.LookupIgnoreMarks,
		Subtables: []ot.Subtable{&ot.LigatureSubstFmt1{
			Cov:          cov(1),
			LigatureSets: [][]ot.Ligature{{{Glyph: 10, Components: []ot.GlyphIndex{2, 4}}}},
		}},
	})
	otf.GPOS = ot.NewLayoutTable(ot.TagGPOS, nil, nil, []ot.Lookup{{
		Type: ot.GPosLookupTypeMarkToLigature,
		Subtables: []ot.Subtable{&ot.MarkLigPosFmt1{
			MarkCov:    cov(3),
			LigCov:     cov(10),
			ClassCount: 1,
			Marks:      []ot.MarkRecord{{Class: 0, Anchor: anchor(0, 0)}},
			Ligatures: [][][]*ot.Anchor{{
				{anchor(100, 500)}, {anchor(300, 600)}, {anchor(500, 700)},
			}},
		}},
	}})
	return otf
}

func TestLigatureKeepsMarkComponent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	otf := ligatureFont()
	buf := glyphBuffer(bidi.LeftToRight, 1, 2, 3, 4)
	require.True(t, NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len()))
	require.Equal(t, []ot.GlyphIndex{10, 3}, buf.GlyphIDs())
	lig, mark := buf.At(0), buf.At(1)
	assert.NotZero(t, lig.LigatureID)
	assert.Equal(t, 3, lig.LigatureComponentCount)
	assert.Equal(t, lig.LigatureID, mark.LigatureID)
	assert.Equal(t, 2, mark.LigatureComponent, "mark should stay with the second component")
	assert.Equal(t, ot.LigatureGlyph, lig.Class)
	assert.Equal(t, 0, mark.Cluster)
}

func TestMarkToLigatureComponent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	otf := ligatureFont()
	layout := NewLayout(otf, nil)
	metrics := &MetricsMap{Advances: map[ot.GlyphIndex]int32{10: 900, 3: 0}, DefaultAdvance: 400}
	//
	buf := glyphBuffer(bidi.LeftToRight, 1, 2, 3, 4)
	layout.ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len())
	buf.InitPositions(metrics)
	require.True(t, layout.ApplyLookup(ot.TagGPOS, 0, buf, 0, 0, buf.Len()))
	mark := buf.At(1).Pos
	assert.Equal(t, int32(300), mark.XOffset)
	assert.Equal(t, int32(600), mark.YOffset)
	assert.Equal(t, AttachMark, mark.AttachKind)
	assert.Equal(t, -1, mark.AttachChain)
	ResolveAttachments(buf)
	assert.Equal(t, int32(300-900), buf.At(1).Pos.XOffset)
	//
	// a mark following the ligature attaches to the last component
	buf = glyphBuffer(bidi.LeftToRight, 1, 2, 4, 3)
	layout.ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len())
	buf.InitPositions(metrics)
	require.Equal(t, []ot.GlyphIndex{10, 3}, buf.GlyphIDs())
	layout.ApplyLookup(ot.TagGPOS, 0, buf, 0, 0, buf.Len())
	assert.Equal(t, int32(500), buf.At(1).Pos.XOffset)
}

func TestMarkToBaseAndMarkToMark(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	// 1 is a base, 3 and 5 are marks
	gdef := &ot.GDef{MajorVersion: 1, GlyphClasses: ot.NewClassDefArray(1, 1, 0, 3, 0, 3)}
	otf := font(ot.TagGPOS, gdef,
		ot.Lookup{Type: ot.GPosLookupTypeMarkToBase, Subtables: []ot.Subtable{&ot.MarkBasePosFmt1{
			MarkCov:    cov(3, 5),
			BaseCov:    cov(1),
			ClassCount: 1,
			Marks:      []ot.MarkRecord{{Anchor: anchor(50, 0)}, {Anchor: anchor(50, 0)}},
			Bases:      [][]*ot.Anchor{{anchor(250, 700)}},
		}}},
		ot.Lookup{Type: ot.GPosLookupTypeMarkToMark, Subtables: []ot.Subtable{&ot.MarkMarkPosFmt1{
			Mark1Cov:   cov(5),
			Mark2Cov:   cov(3),
			ClassCount: 1,
			Marks:      []ot.MarkRecord{{Anchor: anchor(50, 0)}},
			Mark2s:     [][]*ot.Anchor{{anchor(50, 200)}},
		}}},
	)
	layout := NewLayout(otf, nil)
	buf := glyphBuffer(bidi.LeftToRight, 1, 3, 5)
	buf.InitPositions(&MetricsMap{Advances: map[ot.GlyphIndex]int32{1: 600}})
	require.True(t, layout.ApplyLookup(ot.TagGPOS, 0, buf, 0, 0, buf.Len()))
	require.True(t, layout.ApplyLookup(ot.TagGPOS, 1, buf, 0, 0, buf.Len()))
	// mark 5 was attached to the base first, then to mark 3
	assert.Equal(t, Position{XOffset: 200, YOffset: 700, AttachKind: AttachMark, AttachChain: -1}, buf.At(1).Pos)
	assert.Equal(t, Position{XOffset: 0, YOffset: 200, AttachKind: AttachMark, AttachChain: -1}, buf.At(2).Pos)
	ResolveAttachments(buf)
	assert.Equal(t, int32(200-600), buf.At(1).Pos.XOffset)
	assert.Equal(t, int32(200-600), buf.At(2).Pos.XOffset)
	assert.Equal(t, int32(900), buf.At(2).Pos.YOffset)
}

func TestMarkToBaseSkipsMultipliedGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	otf := font(ot.TagGSUB, nil,
		ot.Lookup{Type: ot.GSubLookupTypeMultiple, Subtables: []ot.Subtable{&ot.MultipleSubstFmt1{
			Cov:       cov(1),
			Sequences: [][]ot.GlyphIndex{{7, 8}},
		}}},
	)
	otf.GPOS = ot.NewLayoutTable(ot.TagGPOS, nil, nil, []ot.Lookup{{
		Type: ot.GPosLookupTypeMarkToBase,
		Subtables: []ot.Subtable{&ot.MarkBasePosFmt1{
			MarkCov:    cov(3),
			BaseCov:    cov(7, 8),
			ClassCount: 1,
			Marks:      []ot.MarkRecord{{Anchor: anchor(0, 0)}},
			Bases:      [][]*ot.Anchor{{anchor(10, 0)}, {anchor(20, 0)}},
		}},
	}})
	buf := NewBuffer(bidi.LeftToRight, 0)
	buf.AddGlyph(1, 0)
	buf.AddCodePoint(0x0301, 1)
	buf.At(1).GlyphID = 3
	layout := NewLayout(otf, nil)
	layout.ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len())
	require.Equal(t, []ot.GlyphIndex{7, 8, 3}, buf.GlyphIDs())
	buf.InitPositions(nil)
	require.True(t, layout.ApplyLookup(ot.TagGPOS, 0, buf, 0, 0, buf.Len()))
	assert.Equal(t, -2, buf.At(2).Pos.AttachChain)
	assert.Equal(t, int32(10), buf.At(2).Pos.XOffset)
}

func TestAnchorOnOutlinePoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	otf := font(ot.TagGPOS, nil, ot.Lookup{Type: ot.GPosLookupTypeMarkToBase,
		Subtables: []ot.Subtable{&ot.MarkBasePosFmt1{
			MarkCov:    cov(3),
			BaseCov:    cov(1),
			ClassCount: 1,
			Marks:      []ot.MarkRecord{{Anchor: anchor(0, 0)}},
			Bases:      [][]*ot.Anchor{{{Format: 2, X: 100, Y: 100, AnchorPoint: 1}}},
		}}})
	metrics := &MetricsMap{Points: map[ot.GlyphIndex][]Point{1: {{0, 0}, {333, 444}}}}
	for _, m := range []GlyphMetrics{nil, metrics} {
		buf := NewBuffer(bidi.LeftToRight, 0)
		buf.AddGlyph(1, 0)
		buf.AddCodePoint(0x0308, 1)
		buf.At(1).GlyphID = 3
		NewLayout(otf, m).ApplyLookup(ot.TagGPOS, 0, buf, 0, 0, buf.Len())
		if m == nil {
			assert.Equal(t, int32(100), buf.At(1).Pos.XOffset)
		} else {
			assert.Equal(t, int32(333), buf.At(1).Pos.XOffset)
			assert.Equal(t, int32(444), buf.At(1).Pos.YOffset)
		}
	}
}

func TestCursiveAttachment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	curs := &ot.CursivePosFmt1{
		Cov: cov(1),
		Records: []ot.EntryExit{
			{Entry: anchor(500, 100), Exit: anchor(0, 300)},
		},
	}
	otf := font(ot.TagGPOS, nil, ot.Lookup{
		Type:      ot.GPosLookupTypeCursive,
		Flag:      ot.LookupRightToLeft,
		Subtables: []ot.Subtable{curs},
	})
	buf := glyphBuffer(bidi.RightToLeft, 1, 1, 1)
	buf.InitPositions(&MetricsMap{DefaultAdvance: 600})
	require.True(t, NewLayout(otf, nil).ApplyLookup(ot.TagGPOS, 0, buf, 0, 0, buf.Len()))
	// exit anchors are at x=0, entry glyphs end at their entry anchor
	assert.Equal(t, []int32{600, 500, 500}, advances(buf))
	// logical predecessor is the child of its successor
	assert.Equal(t, AttachCursive, buf.At(0).Pos.AttachKind)
	assert.Equal(t, 1, buf.At(0).Pos.AttachChain)
	assert.Equal(t, 1, buf.At(1).Pos.AttachChain)
	assert.Equal(t, 0, buf.At(2).Pos.AttachChain)
	assert.Equal(t, int32(-200), buf.At(1).Pos.YOffset)
	ResolveAttachments(buf)
	assert.Equal(t, int32(0), buf.At(2).Pos.YOffset)
	assert.Equal(t, int32(-200), buf.At(1).Pos.YOffset)
	assert.Equal(t, int32(-400), buf.At(0).Pos.YOffset)
}

func TestZeroMarkAdvances(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	buf := NewBuffer(bidi.LeftToRight, 0)
	buf.AddCodePoint('a', 0)
	buf.AddCodePoint(0x0301, 1)
	buf.InitPositions(&MetricsMap{DefaultAdvance: 300})
	ZeroMarkAdvances(buf, nil, true)
	assert.Equal(t, int32(300), buf.At(0).Pos.XAdvance)
	assert.Equal(t, Position{XOffset: -300}, buf.At(1).Pos)
	//
	buf.InitPositions(&MetricsMap{DefaultAdvance: 300})
	ZeroMarkAdvances(buf, nil, false)
	assert.Equal(t, Position{}, buf.At(1).Pos)
}
