package othangul_test

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
	"github.com/npillmayer/typeshape/otshape/othangul"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/bidi"
)

const (
	choseongKiyeok  = 0x1100 // L
	jungseongA      = 0x1161 // V
	jongseongKiyeok = 0x11A8 // T
	syllableGa      = 0xAC00 // LV
	syllableGak     = 0xAC01 // LVT
	toneSingleDot   = 0x302E
)

func hangulBuffer(cps ...rune) *otlayout.Buffer {
	buf := otlayout.NewBuffer(bidi.LeftToRight, language.Hangul)
	for i, cp := range cps {
		buf.AddCodePoint(cp, i)
	}
	return buf
}

func metrics(glyphs map[rune]ot.GlyphIndex) *otlayout.MetricsMap {
	return &otlayout.MetricsMap{Glyphs: glyphs, DefaultAdvance: 1000}
}

func shape(t *testing.T, m *otlayout.MetricsMap, cps ...rune) *otlayout.Buffer {
	buf := hangulBuffer(cps...)
	require.NoError(t, otshape.Shape(othangul.New(), &ot.Font{}, m, buf, otshape.Options{}))
	return buf
}

func TestJamoComposeIntoSyllable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	m := metrics(map[rune]ot.GlyphIndex{choseongKiyeok: 1, jungseongA: 2, jongseongKiyeok: 4,
		syllableGa: 3, syllableGak: 5})
	buf := shape(t, m, choseongKiyeok, jungseongA)
	assert.Equal(t, []ot.GlyphIndex{3}, buf.GlyphIDs())
	assert.Equal(t, rune(syllableGa), buf.At(0).CodePoint)
	assert.Equal(t, 2, buf.At(0).CodePointCount)
	//
	buf = shape(t, m, choseongKiyeok, jungseongA, jongseongKiyeok)
	assert.Equal(t, []ot.GlyphIndex{5}, buf.GlyphIDs())
	assert.Equal(t, 3, buf.At(0).CodePointCount)
	//
	buf = shape(t, m, syllableGa, jongseongKiyeok)
	assert.Equal(t, []ot.GlyphIndex{5}, buf.GlyphIDs())
	assert.Equal(t, 0, buf.At(0).Cluster)
}

func TestJamoWithoutSyllableGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	m := metrics(map[rune]ot.GlyphIndex{choseongKiyeok: 1, jungseongA: 2, jongseongKiyeok: 4})
	buf := shape(t, m, choseongKiyeok, jungseongA, jongseongKiyeok)
	assert.Equal(t, []ot.GlyphIndex{1, 2, 4}, buf.GlyphIDs())
	assert.True(t, buf.HasFeature(0, ot.T("ljmo")))
	assert.True(t, buf.HasFeature(1, ot.T("vjmo")))
	assert.True(t, buf.HasFeature(2, ot.T("tjmo")))
	for i := range 3 {
		assert.Equal(t, 0, buf.At(i).Cluster)
	}
}

func TestSyllableDecomposition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	m := metrics(map[rune]ot.GlyphIndex{choseongKiyeok: 1, jungseongA: 2, jongseongKiyeok: 4})
	buf := shape(t, m, syllableGak, 'x')
	assert.Equal(t, []ot.GlyphIndex{1, 2, 4, otshape.NOTDEF}, buf.GlyphIDs())
	assert.True(t, buf.At(0).Decomposed)
	assert.True(t, buf.HasFeature(1, ot.T("vjmo")))
	assert.Equal(t, 0, buf.At(2).Cluster)
	assert.Equal(t, 1, buf.At(3).Cluster)
	//
	// LV syllable followed by a trailing jamo without an LVT glyph
	m.Glyphs[syllableGa] = 3
	buf = shape(t, m, syllableGa, jongseongKiyeok)
	assert.Equal(t, []ot.GlyphIndex{1, 2, 4}, buf.GlyphIDs())
	assert.True(t, buf.HasFeature(2, ot.T("tjmo")))
	//
	// syllable glyph present: nothing to do
	buf = shape(t, m, syllableGa)
	assert.Equal(t, []ot.GlyphIndex{3}, buf.GlyphIDs())
	assert.False(t, buf.HasFeature(0, ot.T("ljmo")))
}

func TestToneMarks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	m := metrics(map[rune]ot.GlyphIndex{syllableGa: 3, toneSingleDot: 7, otshape.DottedCircle: 9})
	buf := shape(t, m, syllableGa, toneSingleDot)
	assert.Equal(t, []ot.GlyphIndex{7, 3}, buf.GlyphIDs(), "tone mark moves in front")
	assert.Equal(t, 0, buf.At(0).Cluster)
	assert.Equal(t, 0, buf.At(1).Cluster)
	//
	buf = shape(t, m, toneSingleDot)
	assert.Equal(t, []ot.GlyphIndex{7, 9}, buf.GlyphIDs(), "lone tone mark gets a dotted circle")
	//
	m.Advances = map[ot.GlyphIndex]int32{7: 0}
	buf = shape(t, m, syllableGa, toneSingleDot)
	assert.Equal(t, []ot.GlyphIndex{3, 7}, buf.GlyphIDs(), "zero-width tone mark stays")
	buf = shape(t, m, 'x', toneSingleDot)
	assert.Equal(t, []ot.GlyphIndex{otshape.NOTDEF, 9, 7}, buf.GlyphIDs())
}

func TestContextualAlternatesAreOff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	calt := ot.Lookup{Type: ot.GSubLookupTypeSingle, Subtables: []ot.Subtable{
		&ot.SingleSubstFmt2{Cov: ot.NewCoverageList(3), Substitutes: []ot.GlyphIndex{8}},
	}}
	scripts := []ot.Script{{Tag: ot.T("hang"), DefaultLangSys: &ot.LangSys{
		RequiredFeature: ot.NoRequiredFeature, FeatureIndices: []uint16{0},
	}}}
	features := []ot.Feature{{Tag: ot.T("calt"), LookupIndices: []uint16{0}}}
	otf := &ot.Font{GSUB: ot.NewLayoutTable(ot.TagGSUB, scripts, features, []ot.Lookup{calt})}
	m := metrics(map[rune]ot.GlyphIndex{syllableGa: 3})
	//
	buf := hangulBuffer(syllableGa)
	require.NoError(t, otshape.Shape(othangul.New(), otf, m, buf, otshape.Options{}))
	assert.Equal(t, []ot.GlyphIndex{3}, buf.GlyphIDs())
	//
	buf = hangulBuffer(syllableGa)
	require.NoError(t, otshape.Shape(otshape.DefaultShaper{}, otf, m, buf, otshape.Options{}))
	assert.Equal(t, []ot.GlyphIndex{8}, buf.GlyphIDs())
}

func TestEngineSurface(t *testing.T) {
	engine := othangul.New()
	assert.Equal(t, "hangul", engine.Name())
	assert.Equal(t, otlayout.MarkZeroingNone, engine.MarkZeroing())
	policy, ok := engine.(otshape.ShapingEnginePolicy)
	require.True(t, ok)
	assert.Equal(t, otshape.NormalizationNone, policy.NormalizationPreference())
}
