package otindic_test

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
	"github.com/npillmayer/typeshape/otshape/otindic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/bidi"
)

const (
	ka     = 0x0915
	ra     = 0x0930
	virama = 0x094D
	matraI = 0x093F
)

// Glyphs of the test fonts.
const (
	gKa, gI, gVirama, gRa = 1, 2, 3, 4
	gDottedCircle         = 9
	gReph                 = 10
	gHalfKa               = 20
	gRaBelow              = 30
)

func metrics() *otlayout.MetricsMap {
	return &otlayout.MetricsMap{Glyphs: map[rune]ot.GlyphIndex{
		ka: gKa, matraI: gI, virama: gVirama, ra: gRa, otshape.DottedCircle: gDottedCircle,
	}, DefaultAdvance: 500}
}

// ligature creates a lookup forming a ligature of first and second.
func ligature(first, second, lig ot.GlyphIndex) ot.Lookup {
	return ot.Lookup{Type: ot.GSubLookupTypeLigature, Subtables: []ot.Subtable{&ot.LigatureSubstFmt1{
		Cov:          ot.NewCoverageList(first),
		LigatureSets: [][]ot.Ligature{{{Glyph: lig, Components: []ot.GlyphIndex{second}}}},
	}}}
}

// devaFont creates a font with script 'dev2', with one ligature lookup per
// feature.
func devaFont(features map[string]ot.Lookup) *ot.Font {
	var fs []ot.Feature
	var lookups []ot.Lookup
	var indices []uint16
	for tag, lookup := range features {
		i := uint16(len(lookups))
		fs = append(fs, ot.Feature{Tag: ot.T(tag), LookupIndices: []uint16{i}})
		lookups = append(lookups, lookup)
		indices = append(indices, i)
	}
	scripts := []ot.Script{{Tag: ot.T("dev2"), DefaultLangSys: &ot.LangSys{
		RequiredFeature: ot.NoRequiredFeature, FeatureIndices: indices,
	}}}
	return &ot.Font{GSUB: ot.NewLayoutTable(ot.TagGSUB, scripts, fs, lookups)}
}

func shape(t *testing.T, otf *ot.Font, cps ...rune) *otlayout.Buffer {
	buf := otlayout.NewBuffer(bidi.LeftToRight, language.Devanagari)
	for i, cp := range cps {
		buf.AddCodePoint(cp, i)
	}
	require.NoError(t, otshape.Shape(otindic.New(), otf, metrics(), buf, otshape.Options{}))
	return buf
}

func clusters(buf *otlayout.Buffer) []int {
	c := make([]int, buf.Len())
	for i := range buf.Glyphs {
		c[i] = buf.At(i).Cluster
	}
	return c
}

func TestPreBaseMatra(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	buf := shape(t, devaFont(nil), ka, matraI)
	assert.Equal(t, []ot.GlyphIndex{gI, gKa}, buf.GlyphIDs())
	assert.Equal(t, []int{0, 0}, clusters(buf))
	assert.True(t, buf.HasFeature(0, ot.T("init")))
}

func TestMatraMovesAfterHalant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	// no half form: the matra goes before the base consonant only
	buf := shape(t, devaFont(nil), ka, virama, ka, matraI)
	assert.Equal(t, []ot.GlyphIndex{gKa, gVirama, gI, gKa}, buf.GlyphIDs())
	assert.Equal(t, []int{0, 1, 2, 2}, clusters(buf))
	//
	// half form: the matra goes before the conjunct
	otf := devaFont(map[string]ot.Lookup{"half": ligature(gKa, gVirama, gHalfKa)})
	buf = shape(t, otf, ka, virama, ka, matraI)
	assert.Equal(t, []ot.GlyphIndex{gI, gHalfKa, gKa}, buf.GlyphIDs())
	assert.Equal(t, []int{0, 0, 0}, clusters(buf))
}

func TestRephMovesToEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	otf := devaFont(map[string]ot.Lookup{"rphf": ligature(gRa, gVirama, gReph)})
	buf := shape(t, otf, ra, virama, ka)
	assert.Equal(t, []ot.GlyphIndex{gKa, gReph}, buf.GlyphIDs())
	assert.Equal(t, []int{0, 0}, clusters(buf))
	//
	// without rphf, Ra,H is a pre-base consonant
	buf = shape(t, devaFont(nil), ra, virama, ka)
	assert.Equal(t, []ot.GlyphIndex{gRa, gVirama, gKa}, buf.GlyphIDs())
	assert.True(t, buf.HasFeature(0, ot.T("half")))
	assert.False(t, buf.HasFeature(0, ot.T("rphf")))
}

func TestBelowBaseForm(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	otf := devaFont(map[string]ot.Lookup{"blwf": ligature(gVirama, gRa, gRaBelow)})
	buf := shape(t, otf, ka, virama, ra)
	assert.Equal(t, []ot.GlyphIndex{gKa, gRaBelow}, buf.GlyphIDs())
	assert.True(t, buf.HasFeature(1, ot.T("blwf")))
	assert.False(t, buf.HasFeature(0, ot.T("blwf")))
}

func TestBrokenClusterGetsDottedCircle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	buf := shape(t, devaFont(nil), matraI)
	assert.Equal(t, []ot.GlyphIndex{gI, gDottedCircle}, buf.GlyphIDs())
	assert.Equal(t, []int{0, 0}, clusters(buf))
}

func TestEngineSurface(t *testing.T) {
	engine := otindic.New()
	assert.Equal(t, "indic", engine.Name())
	assert.Equal(t, otlayout.MarkZeroingNone, engine.MarkZeroing())
	_, ok := engine.(otshape.ShapingEnginePlanHooks)
	assert.True(t, ok)
	_, ok = engine.(otshape.ShapingEngineAssignHook)
	assert.True(t, ok)
}
