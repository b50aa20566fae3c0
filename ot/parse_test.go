package ot

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmp.AllowUnexported(Coverage{}, ClassDef{}),
	cmpopts.EquateEmpty(),
}

func singleSubstFmt1(delta int, glyphs ...int) []byte {
	return table([]any{1, ref(0), delta}, coverage1(glyphs...))
}

func ligatureSubst() []byte {
	lig := table([]any{100, 2, 11})
	ligSet := table([]any{1, ref(0)}, lig)
	return table([]any{1, ref(0), 1, ref(1)}, coverage1(10), ligSet)
}

func TestParseGSubLatnLiga(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	langSys := table([]any{0, 0xFFFF, 1, 0})
	script := table([]any{ref(0), 0}, langSys)
	scriptList := table([]any{1, "latn", ref(0)}, script)
	feature := table([]any{0, 1, 0})
	featureList := table([]any{1, "liga", ref(0)}, feature)
	lookupList := table([]any{1, ref(0)}, lookup(4, 0, ligatureSubst()))
	gsub := table([]any{1, 0, ref(0), ref(1), ref(2)}, scriptList, featureList, lookupList)

	otf, err := Parse(gsub, nil, nil)
	require.NoError(t, err)
	require.True(t, otf.HasGSUB())
	assert.False(t, otf.HasGPOS())

	lt := otf.GSUB
	s := lt.SelectScript(T("arab"), T("latn"))
	require.NotNil(t, s)
	assert.Equal(t, T("latn"), s.Tag)
	ls := s.LanguageSystem(T("DEU "))
	require.NotNil(t, ls, "expected fallback to default language system")
	assert.Equal(t, []int{0}, lt.FeatureLookups(ls, T("liga")))
	assert.Empty(t, lt.FeatureLookups(ls, T("kern")))
	assert.Equal(t, []Tag{T("liga")}, lt.FeatureTags(ls))

	require.Equal(t, 1, lt.LookupCount())
	l := lt.Lookup(0)
	assert.Equal(t, GSubLookupTypeLigature, l.Type)
	want := &LigatureSubstFmt1{
		Cov: NewCoverageList(10),
		LigatureSets: [][]Ligature{
			{{Glyph: 100, Components: []GlyphIndex{11}}},
		},
	}
	if diff := cmp.Diff(Subtable(want), l.Subtables[0], cmpOpts...); diff != "" {
		t.Errorf("ligature subtable mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, lt.Lookup(1))
}

func TestParseExtensionIsTransparent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	direct, err := ParseLayoutTable(TagGSUB, layoutTable(lookup(1, 0, singleSubstFmt1(5, 10, 11))))
	require.NoError(t, err)
	ext, err := ParseLayoutTable(TagGSUB, layoutTable(lookup(7, 0, extension(1, singleSubstFmt1(5, 10, 11)))))
	require.NoError(t, err)
	l1, l2 := direct.Lookup(0), ext.Lookup(0)
	assert.False(t, l1.Extension)
	assert.True(t, l2.Extension)
	assert.Equal(t, l1.Type, l2.Type)
	if diff := cmp.Diff(l1.Subtables, l2.Subtables, cmpOpts...); diff != "" {
		t.Errorf("extension changed subtables (-direct +extension):\n%s", diff)
	}
}

func TestParseExtensionMixedTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	lt, err := ParseLayoutTable(TagGSUB, layoutTable(
		lookup(7, 0, extension(1, singleSubstFmt1(1, 10)), extension(4, ligatureSubst()))))
	require.NoError(t, err)
	l := lt.Lookup(0)
	require.Len(t, l.Subtables, 2)
	assert.Equal(t, GSubLookupTypeSingle, l.Type)
	assert.IsType(t, &SingleSubstFmt1{}, l.Subtables[0])
	assert.IsType(t, &UnsupportedSubtable{}, l.Subtables[1])
	assert.Len(t, lt.Warnings(), 1)
}

func TestParseFatalErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	tests := []struct {
		name string
		tag  Tag
		data []byte
	}{
		{"unknown GSUB lookup type", TagGSUB, layoutTable(lookup(99, 0, singleSubstFmt1(1, 10)))},
		{"unknown GPOS lookup type", TagGPOS, layoutTable(lookup(10, 0, singleSubstFmt1(1, 10)))},
		{"extension of extension", TagGSUB, layoutTable(lookup(7, 0, extension(7, singleSubstFmt1(1, 10))))},
		{"unknown extension format", TagGPOS, layoutTable(lookup(9, 0, table([]any{2, 1, 0, 8})))},
		{"unknown coverage format", TagGSUB, layoutTable(lookup(1, 0, table([]any{1, ref(0), 5}, table([]any{3, 0}))))},
		{"unknown class def format", TagGSUB, layoutTable(lookup(5, 0,
			table([]any{2, ref(0), ref(1), 0}, coverage1(10), table([]any{7, 0}))))},
		{"version 2.0", TagGSUB, table([]any{2, 0, 0, 0, 0})},
		{"truncated", TagGSUB, layoutTable(lookup(4, 0, ligatureSubst()))[:30]},
		{"truncated header", TagGPOS, []byte{0, 1, 0}},
		{"pair class matrix beyond table", TagGPOS, layoutTable(lookup(2, 0,
			table([]any{2, ref(0), int(ValueXAdvance), 0, nullRef, nullRef, 4096, 4096, -30}, coverage1(10))))},
	}
	for _, tt := range tests {
		_, err := ParseLayoutTable(tt.tag, tt.data)
		if err == nil {
			t.Errorf("%s: expected error, got none", tt.name)
			continue
		}
		if !errors.Is(err, ErrInvalidFont) {
			t.Errorf("%s: expected ErrInvalidFont, got %v", tt.name, err)
		}
	}
}

func TestParseUnknownSubtableFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	lt, err := ParseLayoutTable(TagGSUB, layoutTable(lookup(1, 0, table([]any{7, 0}))))
	require.NoError(t, err)
	st := lt.Lookup(0).Subtables[0]
	assert.Equal(t, &UnsupportedSubtable{Type: GSubLookupTypeSingle, Format: 7}, st)
	assert.Len(t, lt.Warnings(), 1)
}

func TestParseContextSubtables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	rule := table([]any{2, 1, 1, 0, 0})
	ruleSet := table([]any{1, ref(0)}, rule)
	ctx2 := table([]any{2, ref(0), ref(1), 2, nullRef, ref(2)}, coverage1(10), classDef1(10, 0, 1), ruleSet)
	chain3 := table([]any{3, 1, ref(0), 1, ref(1), 1, ref(2), 1, 0, 1},
		coverage1(1), coverage1(2), coverage1(3))
	chainRule := table([]any{1, 5, 2, 7, 0, 1, 1, 3})
	chain1 := table([]any{1, ref(0), 1, ref(1)}, coverage1(6), table([]any{1, ref(0)}, chainRule))
	lt, err := ParseLayoutTable(TagGSUB, layoutTable(
		lookup(5, 0, ctx2), lookup(6, 0, chain3), lookup(6, 0, chain1)))
	require.NoError(t, err)

	want := []Subtable{
		&SequenceContextFmt2{
			Cov:      NewCoverageList(10),
			ClassDef: NewClassDefArray(10, 0, 1),
			RuleSets: [][]ClassSequenceRule{
				nil,
				{{Input: []uint16{1}, Records: []SequenceLookupRecord{{SequenceIndex: 0, LookupListIndex: 0}}}},
			},
		},
		&ChainedSequenceContextFmt3{
			BacktrackCoverages: []Coverage{NewCoverageList(1)},
			InputCoverages:     []Coverage{NewCoverageList(2)},
			LookaheadCoverages: []Coverage{NewCoverageList(3)},
			Records:            []SequenceLookupRecord{{SequenceIndex: 0, LookupListIndex: 1}},
		},
		&ChainedSequenceContextFmt1{
			Cov: NewCoverageList(6),
			RuleSets: [][]ChainedSequenceRule{{{
				Backtrack: []GlyphIndex{5},
				Input:     []GlyphIndex{7},
				Lookahead: nil,
				Records:   []SequenceLookupRecord{{SequenceIndex: 1, LookupListIndex: 3}},
			}}},
		},
	}
	for i, w := range want {
		if diff := cmp.Diff(w, lt.Lookup(i).Subtables[0], cmpOpts...); diff != "" {
			t.Errorf("lookup %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestParsePairPos(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	pairSet := table([]any{1, 20, -50})
	fmt1 := table([]any{1, ref(0), int(ValueXAdvance), 0, 1, ref(1)}, coverage1(10), pairSet)
	fmt2 := table([]any{2, ref(0), int(ValueXAdvance), 0, ref(1), ref(2), 2, 2, []int{0, 0, 0, -30}},
		coverage1(10, 11), classDef1(10, 0, 1), classDef1(20, 1))
	lt, err := ParseLayoutTable(TagGPOS, layoutTable(lookup(2, 0, fmt1, fmt2)))
	require.NoError(t, err)
	sts := lt.Lookup(0).Subtables
	require.Len(t, sts, 2)

	p1, ok := sts[0].(*PairPosFmt1)
	require.True(t, ok)
	require.Len(t, p1.PairSets, 1)
	assert.Equal(t, []PairValueRecord{{SecondGlyph: 20, Value1: ValueRecord{XAdvance: -50}}}, p1.PairSets[0])

	p2, ok := sts[1].(*PairPosFmt2)
	require.True(t, ok)
	v, ok := p2.Pair(p2.ClassDef1.Class(11), p2.ClassDef2.Class(20))
	require.True(t, ok)
	assert.Equal(t, int16(-30), v.Value1.XAdvance)
	v, _ = p2.Pair(0, 1)
	assert.True(t, v.Value1.IsZero())
}

func TestParsePairPosWithoutValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	fmt2 := table([]any{2, ref(0), 0, 0, nullRef, nullRef, 0xFFFF, 0xFFFF}, coverage1(10))
	lt, err := ParseLayoutTable(TagGPOS, layoutTable(lookup(2, 0, fmt2)))
	require.NoError(t, err)
	p2, ok := lt.Lookup(0).Subtables[0].(*PairPosFmt2)
	require.True(t, ok)
	assert.Empty(t, p2.Records)
	v, ok := p2.Pair(0xFFFE, 0xFFFE)
	assert.True(t, ok)
	assert.Equal(t, PairValues{}, v)
	_, ok = p2.Pair(0xFFFF, 0)
	assert.False(t, ok)
}

func TestParseValueRecordDevices(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	dev := table([]any{12, 15, 1, 0x7200})
	varIndex := table([]any{3, 4, 0x8000})
	tests := []struct {
		name     string
		subtable []byte
		want     ValueRecord
	}{
		{"placement and advance devices", table([]any{1, ref(0), int(ValueXPlacement | ValueXAdvance | ValueXPlaDevice | ValueXAdvDevice),
			10, -20, ref(1), ref(2)}, coverage1(5), dev, varIndex),
			ValueRecord{XPlacement: 10, XAdvance: -20,
				XPlaDevice: &Device{StartSize: 12, EndSize: 15, DeltaFormat: 1, Deltas: []int8{1, -1, 0, -2}},
				XAdvDevice: &Device{StartSize: 3, EndSize: 4, DeltaFormat: 0x8000}}},
		{"vertical with NULL device", table([]any{1, ref(0), int(ValueYPlacement | ValueYAdvance | ValueYPlaDevice | ValueYAdvDevice),
			7, 8, nullRef, ref(1)}, coverage1(5), dev),
			ValueRecord{YPlacement: 7, YAdvance: 8,
				YAdvDevice: &Device{StartSize: 12, EndSize: 15, DeltaFormat: 1, Deltas: []int8{1, -1, 0, -2}}}},
		{"device only", table([]any{1, ref(0), int(ValueYPlaDevice), ref(1)}, coverage1(5), varIndex),
			ValueRecord{YPlaDevice: &Device{StartSize: 3, EndSize: 4, DeltaFormat: 0x8000}}},
	}
	for _, tt := range tests {
		lt, err := ParseLayoutTable(TagGPOS, layoutTable(lookup(1, 0, tt.subtable)))
		require.NoError(t, err, tt.name)
		sp, ok := lt.Lookup(0).Subtables[0].(*SinglePosFmt1)
		require.True(t, ok, tt.name)
		if diff := cmp.Diff(tt.want, sp.Value, cmpOpts...); diff != "" {
			t.Errorf("%s: value record mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
	//
	// device offsets of pair value records are relative to the PairSet
	pairSet := table([]any{1, 20, ref(0)}, dev)
	fmt1 := table([]any{1, ref(0), int(ValueXAdvDevice), 0, 1, ref(1)}, coverage1(10), pairSet)
	lt, err := ParseLayoutTable(TagGPOS, layoutTable(lookup(2, 0, fmt1)))
	require.NoError(t, err)
	p1 := lt.Lookup(0).Subtables[0].(*PairPosFmt1)
	require.Len(t, p1.PairSets[0], 1)
	require.NotNil(t, p1.PairSets[0][0].Value1.XAdvDevice)
	assert.Equal(t, []int8{1, -1, 0, -2}, p1.PairSets[0][0].Value1.XAdvDevice.Deltas)
}

func TestParseAnchorFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	dev := table([]any{12, 15, 1, 0x7200})
	tests := []struct {
		name   string
		anchor []byte
		want   *Anchor
	}{
		{"format 1", table([]any{1, 300, -500}), &Anchor{Format: 1, X: 300, Y: -500}},
		{"format 2", table([]any{2, 10, 20, 7}), &Anchor{Format: 2, X: 10, Y: 20, AnchorPoint: 7}},
		{"format 3", table([]any{3, 100, -50, ref(0), nullRef}, dev), &Anchor{Format: 3, X: 100, Y: -50,
			XDevice: &Device{StartSize: 12, EndSize: 15, DeltaFormat: 1, Deltas: []int8{1, -1, 0, -2}}}},
		{"format 3 y device", table([]any{3, 1, 2, nullRef, ref(0)}, dev), &Anchor{Format: 3, X: 1, Y: 2,
			YDevice: &Device{StartSize: 12, EndSize: 15, DeltaFormat: 1, Deltas: []int8{1, -1, 0, -2}}}},
	}
	for _, tt := range tests {
		// the anchor does not start at the beginning of the data, so offsets
		// resolved against the wrong base read the padding
		data := append([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, tt.anchor...)
		r := newReader(TagGPOS, data)
		a, err := parseAnchor(r, 6)
		require.NoError(t, err, tt.name)
		if diff := cmp.Diff(tt.want, a, cmpOpts...); diff != "" {
			t.Errorf("%s: anchor mismatch (-want +got):\n%s", tt.name, diff)
		}
		assert.Empty(t, r.warn.list, tt.name)
	}
}

func TestParseClassDefFormat2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	r := newReader(TagGSUB, classDef2(10, 12, 1, 20, 20, 3, 30, 35, 2))
	cd, err := parseClassDef(r, 0)
	require.NoError(t, err)
	want := NewClassDefRanges(
		ClassRange{Start: 10, End: 12, Class: 1},
		ClassRange{Start: 20, End: 20, Class: 3},
		ClassRange{Start: 30, End: 35, Class: 2},
	)
	if diff := cmp.Diff(want, cd, cmpOpts...); diff != "" {
		t.Errorf("class definition mismatch (-want +got):\n%s", diff)
	}
	for g, class := range map[GlyphIndex]uint16{9: 0, 10: 1, 12: 1, 13: 0, 20: 3, 33: 2, 36: 0} {
		assert.Equal(t, class, cd.Class(g), "class of glyph %d", g)
	}
	assert.Empty(t, r.warn.list)
	//
	// class definitions of a context subtable are relative to the subtable
	ctx2 := table([]any{2, ref(0), ref(1), 0}, coverage1(10), classDef2(10, 11, 1))
	lt, err := ParseLayoutTable(TagGSUB, layoutTable(lookup(5, 0, ctx2)))
	require.NoError(t, err)
	sc, ok := lt.Lookup(0).Subtables[0].(*SequenceContextFmt2)
	require.True(t, ok)
	assert.Equal(t, uint16(1), sc.ClassDef.Class(11))
	//
	r = newReader(TagGSUB, classDef2(20, 25, 1, 22, 30, 2))
	_, err = parseClassDef(r, 0)
	require.NoError(t, err)
	assert.Len(t, r.warn.list, 1)
}

func TestParseMarkBasePos(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	markArray := table([]any{1, 0, ref(0)}, table([]any{1, 300, 500}))
	baseArray := table([]any{1, ref(0)}, table([]any{1, 250, 700}))
	markBase := table([]any{1, ref(0), ref(1), 1, ref(2), ref(3)},
		coverage1(50), coverage1(10), markArray, baseArray)
	lt, err := ParseLayoutTable(TagGPOS, layoutTable(lookup(4, 0, markBase)))
	require.NoError(t, err)
	mb, ok := lt.Lookup(0).Subtables[0].(*MarkBasePosFmt1)
	require.True(t, ok)
	assert.Equal(t, uint16(1), mb.ClassCount)
	assert.Equal(t, []MarkRecord{{Class: 0, Anchor: &Anchor{Format: 1, X: 300, Y: 500}}}, mb.Marks)
	assert.Equal(t, [][]*Anchor{{{Format: 1, X: 250, Y: 700}}}, mb.Bases)
	assert.True(t, mb.Coverage().Contains(50))
}

func TestUnknownAnchorFormatIsEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	r := newReader(TagGPOS, table([]any{9, 1, 2}))
	a, err := parseAnchor(r, 0)
	require.NoError(t, err)
	assert.Equal(t, &Anchor{}, a)
	assert.Len(t, r.warn.list, 1)
}

func TestParseDevice(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	// 2-bit deltas 1, -1, 0, -2 for sizes 12…15
	r := newReader(TagGPOS, table([]any{12, 15, 1, 0x7200}))
	dev, err := parseDevice(r, 0)
	require.NoError(t, err)
	assert.Equal(t, []int8{1, -1, 0, -2}, dev.Deltas)
	assert.False(t, dev.IsVariationIndex())

	r = newReader(TagGPOS, table([]any{3, 4, 0x8000}))
	dev, err = parseDevice(r, 0)
	require.NoError(t, err)
	assert.True(t, dev.IsVariationIndex())
}

func TestParseGDef(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	markSets := table([]any{1, 1, ref32(0)}, coverage1(11))
	gdef := table([]any{1, 2, ref(0), 0, 0, ref(1), ref(2)},
		classDef1(10, 1, 3, 2), classDef1(11, 1), markSets)
	otf, err := Parse(nil, nil, gdef)
	require.NoError(t, err)
	g := otf.GDEF
	assert.Equal(t, BaseGlyph, g.GlyphClass(10))
	assert.True(t, g.IsMark(11))
	assert.Equal(t, LigatureGlyph, g.GlyphClass(12))
	assert.Equal(t, UnclassifiedGlyph, g.GlyphClass(13))
	assert.Equal(t, uint16(1), g.MarkAttachClass(11))
	assert.True(t, g.InMarkGlyphSet(0, 11))
	assert.False(t, g.InMarkGlyphSet(0, 10))
	assert.False(t, g.InMarkGlyphSet(1, 11))

	var none *GDef
	assert.False(t, none.IsMark(11))
	assert.False(t, none.HasGlyphClasses())

	_, err = Parse(nil, nil, table([]any{2, 0, 0, 0, 0, 0}))
	assert.True(t, IsInvalidFont(err))
}

func TestLookupCannotModifyTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.ot")
	defer teardown()
	//
	lt, err := ParseLayoutTable(TagGSUB, layoutTable(lookup(1, 0, singleSubstFmt1(5, 10, 11))))
	require.NoError(t, err)
	l := lt.Lookup(0)
	l.Flag = LookupIgnoreMarks
	l.Subtables[0] = nil
	l.Subtables = append(l.Subtables, &UnsupportedSubtable{})
	again := lt.Lookup(0)
	assert.Equal(t, LookupFlag(0), again.Flag)
	require.Len(t, again.Subtables, 1)
	assert.IsType(t, &SingleSubstFmt1{}, again.Subtables[0])
}
