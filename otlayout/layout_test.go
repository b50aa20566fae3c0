package otlayout

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeshape/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/bidi"
)

// font assembles a font from lookups of a single layout table.
func font(table ot.Tag, gdef *ot.GDef, lookups ...ot.Lookup) *ot.Font {
	lt := ot.NewLayoutTable(table, nil, nil, lookups)
	otf := &ot.Font{GDEF: gdef}
	if table == ot.TagGSUB {
		otf.GSUB = lt
	} else {
		otf.GPOS = lt
	}
	return otf
}

func glyphBuffer(dir bidi.Direction, glyphs ...ot.GlyphIndex) *Buffer {
	buf := NewBuffer(dir, 0)
	for i, g := range glyphs {
		buf.AddGlyph(g, i)
	}
	return buf
}

func cov(glyphs ...ot.GlyphIndex) ot.Coverage {
	return ot.NewCoverageList(glyphs...)
}

func single(g, subst ot.GlyphIndex) *ot.SingleSubstFmt2 {
	return &ot.SingleSubstFmt2{Cov: cov(g), Substitutes: []ot.GlyphIndex{subst}}
}

func kerning() *ot.PairPosFmt1 {
	return &ot.PairPosFmt1{
		Cov:          cov(5),
		ValueFormat1: ot.ValueXAdvance,
		PairSets: [][]ot.PairValueRecord{
			{{SecondGlyph: 9, Value1: ot.ValueRecord{XAdvance: -50}}},
		},
	}
}

func advances(buf *Buffer) []int32 {
	adv := make([]int32, buf.Len())
	for i := range buf.Glyphs {
		adv[i] = buf.Glyphs[i].Pos.XAdvance
	}
	return adv
}

func TestPairPosFormat1Kerning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	otf := font(ot.TagGPOS, nil, ot.Lookup{Type: ot.GPosLookupTypePair, Subtables: []ot.Subtable{kerning()}})
	buf := glyphBuffer(bidi.LeftToRight, 5, 9, 5, 7, 9)
	buf.InitPositions(&MetricsMap{DefaultAdvance: 500})
	applied := NewLayout(otf, nil).ApplyLookup(ot.TagGPOS, 0, buf, 0, 0, buf.Len())
	assert.True(t, applied)
	assert.Equal(t, []int32{450, 500, 500, 500, 500}, advances(buf))
}

func TestSingleSubstDeltaWrapsAround(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	otf := font(ot.TagGSUB, nil, ot.Lookup{Type: ot.GSubLookupTypeSingle,
		Subtables: []ot.Subtable{&ot.SingleSubstFmt1{Cov: cov(1, 3), Delta: -2}}})
	buf := glyphBuffer(bidi.LeftToRight, 1, 2, 3)
	require.True(t, NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len()))
	assert.Equal(t, []ot.GlyphIndex{65535, 2, 1}, buf.GlyphIDs())
	assert.True(t, buf.At(0).Substituted)
	assert.False(t, buf.At(1).Substituted)
}

func TestFirstApplicableSubtableWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	otf := font(ot.TagGSUB, nil, ot.Lookup{Type: ot.GSubLookupTypeSingle,
		Subtables: []ot.Subtable{single(1, 10), single(1, 20), single(2, 30)}})
	buf := glyphBuffer(bidi.LeftToRight, 1, 2)
	NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len())
	assert.Equal(t, []ot.GlyphIndex{10, 30}, buf.GlyphIDs())
}

func TestLookupRespectsFeatureAndWindow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	otf := font(ot.TagGSUB, nil, ot.Lookup{Type: ot.GSubLookupTypeSingle,
		Subtables: []ot.Subtable{single(1, 10)}})
	smcp := ot.T("smcp")
	buf := glyphBuffer(bidi.LeftToRight, 1, 1, 1, 1)
	buf.EnableFeatures(0, 3, smcp)
	buf.DisableFeature(1, smcp)
	NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, smcp, 0, 4)
	assert.Equal(t, []ot.GlyphIndex{10, 1, 10, 1}, buf.GlyphIDs())
	//
	buf = glyphBuffer(bidi.LeftToRight, 1, 1, 1, 1)
	NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 1, 2)
	assert.Equal(t, []ot.GlyphIndex{1, 10, 10, 1}, buf.GlyphIDs())
}

func TestMultipleSubstitution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	otf := font(ot.TagGSUB, nil, ot.Lookup{Type: ot.GSubLookupTypeMultiple,
		Subtables: []ot.Subtable{&ot.MultipleSubstFmt1{
			Cov:       cov(1, 2),
			Sequences: [][]ot.GlyphIndex{{7, 8, 9}, {}},
		}}})
	buf := glyphBuffer(bidi.LeftToRight, 2, 1, 3, 1)
	// window covers glyphs 1 to 2 only
	require.True(t, NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 1, 2))
	assert.Equal(t, []ot.GlyphIndex{2, 7, 8, 9, 3, 1}, buf.GlyphIDs())
	for k, i := range []int{1, 2, 3} {
		assert.Equal(t, k, buf.At(i).LigatureComponent)
		assert.True(t, buf.At(i).Multiplied)
		assert.Equal(t, 1, buf.At(i).Cluster)
	}
	// empty sequence deletes
	buf = glyphBuffer(bidi.LeftToRight, 2, 2, 3)
	require.True(t, NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, 3))
	assert.Equal(t, []ot.GlyphIndex{3}, buf.GlyphIDs())
}

func TestAlternateSelection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	otf := font(ot.TagGSUB, nil, ot.Lookup{Type: ot.GSubLookupTypeAlternate,
		Subtables: []ot.Subtable{&ot.AlternateSubstFmt1{
			Cov:        cov(18),
			Alternates: [][]ot.GlyphIndex{{20, 21, 22}},
		}}})
	for _, c := range []struct {
		alt      int
		expected ot.GlyphIndex
	}{{0, 20}, {1, 21}, {2, 22}, {7, 22}, {-1, 20}} {
		layout := NewLayout(otf, nil)
		layout.Options.Alternate = c.alt
		buf := glyphBuffer(bidi.LeftToRight, 18)
		layout.ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, 1)
		assert.Equal(t, c.expected, buf.At(0).GlyphID, "alternate %d", c.alt)
	}
}

func TestChainedContextAppliesNestedLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	chain := &ot.ChainedSequenceContextFmt3{
		BacktrackCoverages: []ot.Coverage{cov(0)},
		InputCoverages:     []ot.Coverage{cov(1), cov(2)},
		LookaheadCoverages: []ot.Coverage{cov(3)},
		Records:            []ot.SequenceLookupRecord{{SequenceIndex: 1, LookupListIndex: 1}},
	}
	otf := font(ot.TagGSUB, nil,
		ot.Lookup{Type: ot.GSubLookupTypeChainingContext, Subtables: []ot.Subtable{chain}},
		ot.Lookup{Type: ot.GSubLookupTypeSingle, Subtables: []ot.Subtable{single(2, 20)}},
	)
	layout := NewLayout(otf, nil)
	buf := glyphBuffer(bidi.LeftToRight, 0, 1, 2, 3, 1, 2, 4)
	require.True(t, layout.ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len()))
	assert.Equal(t, []ot.GlyphIndex{0, 1, 20, 3, 1, 2, 4}, buf.GlyphIDs())
}

func TestContextClassRulesWithLigature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	// class 1 = {1}, class 2 = {2, 3}; rule 1 2 2 ligates the first two glyphs,
	// then substitutes the (shifted) third one
	classes := ot.NewClassDefArray(1, 1, 2, 2)
	ctx := &ot.SequenceContextFmt2{
		Cov:      cov(1),
		ClassDef: classes,
		RuleSets: [][]ot.ClassSequenceRule{nil, {{
			Input: []uint16{2, 2},
			Records: []ot.SequenceLookupRecord{
				{SequenceIndex: 0, LookupListIndex: 1},
				{SequenceIndex: 2, LookupListIndex: 2},
			},
		}}},
	}
	otf := font(ot.TagGSUB, nil,
		ot.Lookup{Type: ot.GSubLookupTypeContext, Subtables: []ot.Subtable{ctx}},
		ot.Lookup{Type: ot.GSubLookupTypeLigature, Subtables: []ot.Subtable{&ot.LigatureSubstFmt1{
			Cov:          cov(1),
			LigatureSets: [][]ot.Ligature{{{Glyph: 12, Components: []ot.GlyphIndex{2}}}},
		}}},
		ot.Lookup{Type: ot.GSubLookupTypeSingle, Subtables: []ot.Subtable{single(3, 30)}},
	)
	buf := glyphBuffer(bidi.LeftToRight, 1, 2, 3, 3)
	require.True(t, NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len()))
	assert.Equal(t, []ot.GlyphIndex{12, 30, 3}, buf.GlyphIDs())
	assert.Equal(t, 0, buf.At(0).Cluster)
	assert.Equal(t, 2, buf.At(0).CodePointCount)
}

func TestReverseChainSubstitution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	// substitute 1 by 2 if followed by 2: applied from the end, this cascades
	rev := &ot.ReverseChainSingleSubstFmt1{
		Cov:         cov(1),
		Lookahead:   []ot.Coverage{cov(2)},
		Substitutes: []ot.GlyphIndex{2},
	}
	otf := font(ot.TagGSUB, nil, ot.Lookup{Type: ot.GSubLookupTypeReverseChaining,
		Subtables: []ot.Subtable{rev}})
	buf := glyphBuffer(bidi.LeftToRight, 1, 1, 1, 2)
	require.True(t, NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len()))
	assert.Equal(t, []ot.GlyphIndex{2, 2, 2, 2}, buf.GlyphIDs())
}

func TestLookupFlagsSkipMarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	gdef := &ot.GDef{MajorVersion: 1, GlyphClasses: ot.NewClassDefArray(5, 1, 3, 3, 1)}
	otf := font(ot.TagGPOS, gdef,
		ot.Lookup{Type: ot.GPosLookupTypePair, Flag: ot.LookupIgnoreMarks,
			Subtables: []ot.Subtable{kerning()}},
		ot.Lookup{Type: ot.GPosLookupTypePair,
			Subtables: []ot.Subtable{kerning()}},
	)
	layout := NewLayout(otf, nil)
	buf := glyphBuffer(bidi.LeftToRight, 5, 6, 7, 9) // 6, 7 are marks
	buf.InitPositions(&MetricsMap{DefaultAdvance: 500})
	require.True(t, layout.ApplyLookup(ot.TagGPOS, 0, buf, 0, 0, buf.Len()))
	assert.Equal(t, int32(450), buf.At(0).Pos.XAdvance)
	//
	buf = glyphBuffer(bidi.LeftToRight, 5, 6, 7, 9)
	buf.InitPositions(&MetricsMap{DefaultAdvance: 500})
	assert.False(t, layout.ApplyLookup(ot.TagGPOS, 1, buf, 0, 0, buf.Len()))
}

func TestMarkFilteringSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	gdef := &ot.GDef{
		MajorVersion:  1,
		MinorVersion:  2,
		GlyphClasses:  ot.NewClassDefArray(5, 1, 3, 3),
		MarkGlyphSets: []ot.Coverage{cov(6)},
	}
	lig := &ot.LigatureSubstFmt1{
		Cov:          cov(5),
		LigatureSets: [][]ot.Ligature{{{Glyph: 50, Components: []ot.GlyphIndex{6}}}},
	}
	otf := font(ot.TagGSUB, gdef, ot.Lookup{Type: ot.GSubLookupTypeLigature,
		Flag: ot.LookupUseMarkFilteringSet, MarkFilteringSet: 0, Subtables: []ot.Subtable{lig}})
	// mark 7 is not in the set and therefore skipped
	buf := glyphBuffer(bidi.LeftToRight, 5, 7, 6)
	require.True(t, NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len()))
	assert.Equal(t, []ot.GlyphIndex{50, 7}, buf.GlyphIDs())
	assert.Equal(t, 0, buf.At(1).LigatureID, "ligature of base and marks is not a ligature")
}

// extensionGPOS lays out a GPOS table with a single kerning lookup, optionally
// wrapped into an extension subtable.
func extensionGPOS(wrap bool) []byte {
	words := func(w ...int) []byte {
		b := make([]byte, 0, 2*len(w))
		for _, x := range w {
			b = binary.BigEndian.AppendUint16(b, uint16(x))
		}
		return b
	}
	pairPos := words(1, 12, 4, 0, 1, 18, // header, coverage at 12, pair set at 18
		1, 1, 5, // coverage
		1, 9, 0xFFCE) // pair set: glyph 9, xAdvance -50
	lookup := append(words(2, 0, 1, 8), pairPos...)
	if wrap {
		ext := append(words(1, 2, 0, 8), pairPos...)
		lookup = append(words(9, 0, 1, 8), ext...)
	}
	lookupList := append(words(1, 4), lookup...)
	return append(words(1, 0, 10, 12, 14, 0, 0), lookupList...)
}

func TestExtensionPositioningIsTransparent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	var results [2][]Position
	for k, wrap := range []bool{false, true} {
		otf, err := ot.Parse(nil, extensionGPOS(wrap), nil)
		require.NoError(t, err)
		require.Equal(t, wrap, otf.GPOS.Lookup(0).Extension)
		buf := glyphBuffer(bidi.LeftToRight, 5, 9, 9, 5, 5, 9)
		buf.InitPositions(&MetricsMap{DefaultAdvance: 600})
		NewLayout(otf, nil).ApplyLookup(ot.TagGPOS, 0, buf, 0, 0, buf.Len())
		for i := range buf.Glyphs {
			results[k] = append(results[k], buf.Glyphs[i].Pos)
		}
	}
	assert.Equal(t, int32(550), results[0][0].XAdvance)
	assert.Equal(t, int32(600), results[0][3].XAdvance)
	if diff := cmp.Diff(results[0], results[1]); diff != "" {
		t.Errorf("extension lookup positions differently (-direct +extension):\n%s", diff)
	}
}

func TestNestingIsBounded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	// lookup 0 calls itself for every input glyph
	loop := &ot.SequenceContextFmt3{
		InputCoverages: []ot.Coverage{cov(1)},
		Records:        []ot.SequenceLookupRecord{{SequenceIndex: 0, LookupListIndex: 0}},
	}
	otf := font(ot.TagGSUB, nil, ot.Lookup{Type: ot.GSubLookupTypeContext, Subtables: []ot.Subtable{loop}})
	buf := glyphBuffer(bidi.LeftToRight, 1, 1, 1)
	assert.True(t, NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len()))
	assert.Equal(t, []ot.GlyphIndex{1, 1, 1}, buf.GlyphIDs())
}

func TestContextLengthIsBounded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	components := make([]ot.GlyphIndex, MaxContextLength)
	input := make([]ot.GlyphIndex, MaxContextLength+1)
	for i := range components {
		components[i] = 1
	}
	for i := range input {
		input[i] = 1
	}
	lig := &ot.LigatureSubstFmt1{
		Cov:          cov(1),
		LigatureSets: [][]ot.Ligature{{{Glyph: 99, Components: components}}},
	}
	otf := font(ot.TagGSUB, nil, ot.Lookup{Type: ot.GSubLookupTypeLigature, Subtables: []ot.Subtable{lig}})
	buf := glyphBuffer(bidi.LeftToRight, input...)
	assert.False(t, NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len()))
	assert.Equal(t, MaxContextLength+1, buf.Len())
}

func TestBufferGrowthIsBounded(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.layout")
	defer teardown()
	//
	seq := make([]ot.GlyphIndex, 1000)
	for i := range seq {
		seq[i] = 2
	}
	mult := &ot.MultipleSubstFmt1{Cov: cov(1), Sequences: [][]ot.GlyphIndex{seq}}
	otf := font(ot.TagGSUB, nil, ot.Lookup{Type: ot.GSubLookupTypeMultiple, Subtables: []ot.Subtable{mult}})
	input := make([]ot.GlyphIndex, 20)
	for i := range input {
		input[i] = 1
	}
	buf := glyphBuffer(bidi.LeftToRight, input...)
	require.True(t, NewLayout(otf, nil).ApplyLookup(ot.TagGSUB, 0, buf, 0, 0, buf.Len()))
	assert.LessOrEqual(t, buf.Len(), MaxLengthMinimum)
	assert.Greater(t, buf.Len(), 10*len(seq))
	assert.Equal(t, ot.GlyphIndex(1), buf.At(buf.Len()-1).GlyphID, "last glyph should not be expanded")
}
