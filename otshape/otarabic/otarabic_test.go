package otarabic_test

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
	"github.com/npillmayer/typeshape/otshape/otarabic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/bidi"
)

const beh = 0x0628

// formsFont substitutes beh (glyph 1) by glyph 10+form for each positional
// form feature.
func formsFont() *ot.Font {
	var features []ot.Feature
	var lookups []ot.Lookup
	var indices []uint16
	for i, form := range []otarabic.Form{otarabic.FormIsol, otarabic.FormFina,
		otarabic.FormMedi, otarabic.FormInit} {
		features = append(features, ot.Feature{Tag: form.Feature(), LookupIndices: []uint16{uint16(i)}})
		lookups = append(lookups, ot.Lookup{Type: ot.GSubLookupTypeSingle, Subtables: []ot.Subtable{
			&ot.SingleSubstFmt2{Cov: ot.NewCoverageList(1), Substitutes: []ot.GlyphIndex{ot.GlyphIndex(10 + form)}},
		}})
		indices = append(indices, uint16(i))
	}
	scripts := []ot.Script{{Tag: ot.T("arab"), DefaultLangSys: &ot.LangSys{
		RequiredFeature: ot.NoRequiredFeature, FeatureIndices: indices,
	}}}
	return &ot.Font{GSUB: ot.NewLayoutTable(ot.TagGSUB, scripts, features, lookups)}
}

func arabicBuffer(cps ...rune) *otlayout.Buffer {
	buf := otlayout.NewBuffer(bidi.RightToLeft, language.Arabic)
	for i, cp := range cps {
		buf.AddCodePoint(cp, i)
	}
	return buf
}

func TestShapeJoiningForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	metrics := &otlayout.MetricsMap{Glyphs: map[rune]ot.GlyphIndex{beh: 1, ' ': 3}, DefaultAdvance: 500}
	buf := arabicBuffer(beh, beh, beh, ' ', beh)
	err := otshape.Shape(otarabic.New(), formsFont(), metrics, buf, otshape.Options{})
	require.NoError(t, err)
	assert.Equal(t, []ot.GlyphIndex{16, 14, 11, 3, 10}, buf.GlyphIDs())
	assert.True(t, buf.HasFeature(0, ot.T("init")))
	assert.False(t, buf.HasFeature(0, ot.T("fina")))
}

func TestShapeWithPresentationForms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	metrics := &otlayout.MetricsMap{Glyphs: map[rune]ot.GlyphIndex{
		beh:    1,
		0xFE8F: 21, // isolated
		0xFE90: 22, // final
		0xFE91: 23, // initial
		0xFE92: 24, // medial
	}, DefaultAdvance: 500}
	buf := arabicBuffer(beh, beh, beh)
	err := otshape.Shape(otarabic.New(), &ot.Font{}, metrics, buf, otshape.Options{})
	require.NoError(t, err)
	assert.Equal(t, []ot.GlyphIndex{23, 24, 22}, buf.GlyphIDs())
	//
	buf = arabicBuffer(beh)
	require.NoError(t, otshape.Shape(otarabic.New(), &ot.Font{}, metrics, buf, otshape.Options{}))
	assert.Equal(t, []ot.GlyphIndex{21}, buf.GlyphIDs())
}

func TestModifierMarksMoveToFront(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	const fatha, hamzaAbove = 0x064E, 0x0654 // combining classes 30 and 230
	metrics := &otlayout.MetricsMap{Glyphs: map[rune]ot.GlyphIndex{
		beh: 1, fatha: 5, hamzaAbove: 6,
	}, DefaultAdvance: 500}
	buf := arabicBuffer(beh, fatha, hamzaAbove)
	require.NoError(t, otshape.Shape(otarabic.New(), &ot.Font{}, metrics, buf, otshape.Options{}))
	assert.Equal(t, []ot.GlyphIndex{1, 6, 5}, buf.GlyphIDs())
	assert.Equal(t, 1, buf.At(1).Cluster)
	assert.Equal(t, 1, buf.At(2).Cluster)
}

func TestEngineSurface(t *testing.T) {
	engine := otarabic.New()
	assert.Equal(t, "arabic", engine.Name())
	assert.Equal(t, otlayout.MarkZeroingLate, engine.MarkZeroing())
	_, ok := engine.(otshape.ShapingEnginePlanHooks)
	assert.True(t, ok)
	_, ok = engine.(otshape.ShapingEngineAssignHook)
	assert.True(t, ok)
}
