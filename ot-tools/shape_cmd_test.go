package main

import (
	"testing"

	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/bidi"
)

func TestParseFeatureItem(t *testing.T) {
	f, alt, err := parseFeatureItem("-liga")
	require.NoError(t, err)
	assert.Equal(t, ot.T("liga"), f.Feature)
	assert.False(t, f.On)
	assert.Equal(t, 0, alt)
	//
	f, _, err = parseFeatureItem("kern=0")
	require.NoError(t, err)
	assert.False(t, f.On)
	//
	f, alt, err = parseFeatureItem("salt=3")
	require.NoError(t, err)
	assert.True(t, f.On)
	assert.Equal(t, 2, alt)
	//
	f, _, err = parseFeatureItem("smcp")
	require.NoError(t, err)
	assert.True(t, f.On)
	//
	_, _, err = parseFeatureItem("ligature")
	assert.Error(t, err)
}

func TestParseCodepoints(t *testing.T) {
	runes, err := parseCodepoints("U+0627, 0x644 41")
	require.NoError(t, err)
	assert.Equal(t, []rune{0x0627, 0x0644, 0x41}, runes)
	_, err = parseCodepoints("U+XYZ")
	assert.Error(t, err)
}

func TestFormatGlyphOutput(t *testing.T) {
	buf := otlayout.NewBuffer(bidi.LeftToRight, 0)
	buf.AddGlyph(36, 0)
	buf.AddGlyph(72, 1)
	buf.At(0).Pos.XAdvance = 1200
	buf.At(1).Pos.XAdvance = 1100
	buf.At(1).Pos.YOffset = 20
	assert.Equal(t, "[36=0+1200|72=1+1100@0,20]", formatGlyphOutput(buf))
}
