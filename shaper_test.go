package typeshape

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otshape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/unicode/bidi"
)

func TestSelectShaper(t *testing.T) {
	for _, tc := range []struct {
		script    language.Script
		scriptTag string
		engine    string
	}{
		{language.Latin, "latn", "default"},
		{language.Arabic, "arab", "arabic"},
		{language.Arabic, "", "arabic"},
		{language.Syriac, "syrc", "arabic"},
		{language.Syriac, "DFLT", "default"},
		{language.Hangul, "hang", "hangul"},
		{language.Devanagari, "dev2", "indic"},
		{language.Devanagari, "deva", "indic"},
		{language.Devanagari, "dev3", "use"},
		{language.Devanagari, "DFLT", "default"},
		{language.Tamil, "", "indic"},
		{language.Tamil, "latn", "default"},
		{language.Bengali, "DFLT", "default"},
		{language.Khmer, "khmr", "use"},
		{language.Balinese, "", "use"},
		{language.Myanmar, "mym2", "myanmar"},
		{language.Myanmar, "mymr", "none"},
		{language.Myanmar, "latn", "default"},
		{language.Myanmar, "", "myanmar"},
		{language.Greek, "grek", "default"},
	} {
		var tag ot.Tag
		if tc.scriptTag != "" {
			tag = ot.T(tc.scriptTag)
		}
		engine := SelectShaper(tc.script, tag)
		assert.Equal(t, tc.engine, engine.Name(), "%s with tag %q", tc.script, tc.scriptTag)
	}
}

func TestScriptOf(t *testing.T) {
	assert.Equal(t, language.Latin, ScriptOf("1. Hello"))
	assert.Equal(t, language.Arabic, ScriptOf(" \u0628\u0627"))
	assert.Equal(t, language.Common, ScriptOf("123 !"))
}

func TestLoadFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	assert.Contains(t, f.Fontname, "Go")
	assert.Equal(t, int32(2048), f.UnitsPerEm())
	g, ok := f.GlyphIndex('H')
	require.True(t, ok)
	assert.True(t, f.Advance(g) > 0)
	assert.NotEmpty(t, f.OutlinePoints(g))
	_, ok = f.GlyphIndex(0x0915)
	assert.False(t, ok)
}

func TestShapeText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape")
	defer teardown()
	//
	f, err := ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	buf, err := Shape(f, "Hallo", bidi.LeftToRight, otshape.Options{})
	require.NoError(t, err)
	require.Equal(t, 5, buf.Len())
	a, _ := f.GlyphIndex('a')
	assert.Equal(t, a, buf.At(1).GlyphID)
	for i := range buf.Glyphs {
		assert.Equal(t, i, buf.At(i).Cluster)
		assert.True(t, buf.At(i).Pos.XAdvance > 0)
	}
	//
	buf, err = Shape(nil, "abc", bidi.LeftToRight, otshape.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, buf.Len())
}
