package otuse

import (
	"testing"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/typeshape/otshape/otarabic"
	"github.com/stretchr/testify/assert"
)

// three dual-joining letters for every cursive script of this engine
var joiningLetters = map[language.Script][]rune{
	language.Adlam:           {0x1E900, 0x1E901, 0x1E902},
	language.Chorasmian:      {0x10FB0, 0x10FB2, 0x10FB3},
	language.Hanifi_Rohingya: {0x10D01, 0x10D02, 0x10D03},
	language.Mandaic:         {0x0841, 0x0842, 0x0843},
	language.Manichaean:      {0x10AC0, 0x10AC1, 0x10AC2},
	language.Mongolian:       {0x1820, 0x1821, 0x1822},
	language.Nko:             {0x07CA, 0x07CB, 0x07CC},
	language.Old_Uyghur:      {0x10F70, 0x10F71, 0x10F72},
	language.Phags_Pa:        {0xA840, 0xA841, 0xA842},
	language.Psalter_Pahlavi: {0x10B80, 0x10B82, 0x10B86},
	language.Sogdian:         {0x10F30, 0x10F31, 0x10F32},
}

func TestJoiningScripts(t *testing.T) {
	want := []otarabic.Form{otarabic.FormInit, otarabic.FormMedi, otarabic.FormFina}
	for script, cps := range joiningLetters {
		assert.True(t, joinsLikeArabic(script), "%s", script)
		for _, cp := range cps {
			assert.Equal(t, script, language.LookupScript(cp), "%U", cp)
		}
		assert.Equal(t, want, otarabic.JoiningForms(cps), "%s", script)
	}
}

func TestNonJoiningScripts(t *testing.T) {
	for _, script := range []language.Script{language.Old_Sogdian, language.Khmer, language.Balinese} {
		assert.False(t, joinsLikeArabic(script), "%s", script)
	}
	// Old Sogdian letters have no joining type
	forms := otarabic.JoiningForms([]rune{0x10F00, 0x10F01, 0x10F02})
	assert.Equal(t, []otarabic.Form{otarabic.FormNone, otarabic.FormNone, otarabic.FormNone}, forms)
}
