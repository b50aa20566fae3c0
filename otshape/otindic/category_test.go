package otindic

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	for _, tc := range []struct {
		cp  rune
		cat category
		pos position
	}{
		{0x0915, catC, posBaseC},           // ka
		{0x0930, catRa, posBaseC},          // ra
		{0x0905, catV, posBaseC},           // a
		{0x094D, catH, posEnd},             // virama
		{0x093C, catN, posEnd},             // nukta
		{0x093F, catM, posPreM},            // i
		{0x093E, catM, posAfterSub},        // aa
		{0x0941, catM, posAfterSub},        // u
		{0x0902, catSM, posSMVD},           // anusvara
		{0x0966, catPlaceholder, posBaseC}, // digit zero
		{0x0A41, catM, posAfterPost},       // Gurmukhi u
		{0x0D4E, catRepha, posEnd},
		{0x200C, catZWNJ, posEnd},
		{0x200D, catZWJ, posEnd},
		{0x25CC, catDottedCircle, posBaseC},
		{0x00A0, catPlaceholder, posBaseC},
		{'a', catX, posEnd},
	} {
		cat, pos := classify(tc.cp)
		assert.Equal(t, tc.cat, cat, "category of %U", tc.cp)
		assert.Equal(t, tc.pos, pos, "position of %U", tc.cp)
	}
}

func TestScriptConfig(t *testing.T) {
	cfg := configFor(language.Malayalam)
	assert.Equal(t, rephLogical, cfg.rephMode)
	assert.Equal(t, rune(0x0D4D), cfg.virama)
	cfg = configFor(language.Sinhala)
	assert.Equal(t, baseLastSinhala, cfg.basePos)
	assert.False(t, cfg.hasOldSpec)
	cfg = configFor(language.Latin)
	assert.Equal(t, rune(0), cfg.virama)
	assert.Equal(t, posBeforePost, cfg.rephPos)
}

func TestFindSyllables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	for _, tc := range []struct {
		name    string
		input   []category
		serials []uint16
		types   []syllableType
	}{
		{"C H C M", []category{catC, catH, catC, catM},
			[]uint16{1, 1, 1, 1},
			[]syllableType{consonantSyllable, consonantSyllable, consonantSyllable, consonantSyllable}},
		{"C M C", []category{catC, catM, catC},
			[]uint16{1, 1, 2},
			[]syllableType{consonantSyllable, consonantSyllable, consonantSyllable}},
		{"C H ZWNJ C", []category{catC, catH, catZWNJ, catC},
			[]uint16{1, 1, 1, 2},
			[]syllableType{consonantSyllable, consonantSyllable, consonantSyllable, consonantSyllable}},
		{"Ra H V", []category{catRa, catH, catV},
			[]uint16{1, 1, 1},
			[]syllableType{vowelSyllable, vowelSyllable, vowelSyllable}},
		{"M", []category{catM},
			[]uint16{1},
			[]syllableType{brokenCluster}},
		{"X C", []category{catX, catC},
			[]uint16{1, 2},
			[]syllableType{nonIndicCluster, consonantSyllable}},
		{"Symbol SM", []category{catSymbol, catSM},
			[]uint16{1, 1},
			[]syllableType{symbolCluster, symbolCluster}},
		{"Placeholder M", []category{catPlaceholder, catM},
			[]uint16{1, 1},
			[]syllableType{standaloneCluster, standaloneCluster}},
	} {
		infos := findSyllables(tc.input)
		serials := make([]uint16, len(infos))
		types := make([]syllableType, len(infos))
		for i, si := range infos {
			serials[i], types[i] = si.serial, si.typ
		}
		assert.Equal(t, tc.serials, serials, tc.name)
		assert.Equal(t, tc.types, types, tc.name)
	}
}
