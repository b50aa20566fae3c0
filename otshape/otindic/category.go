package otindic

import (
	"unicode"

	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/unicodedata"
	"github.com/npillmayer/typeshape/otshape"
)

// category is the shaping category of a code point. Categories are the
// symbols of the syllable grammar.
type category uint8

const (
	catX           category = iota // other
	catC                           // consonant
	catV                           // independent vowel
	catN                           // nukta
	catH                           // halant, virama
	catZWNJ                        // zero width non-joiner
	catZWJ                         // zero width joiner
	catM                           // matra, dependent vowel
	catSM                          // syllable modifier
	catA                           // vedic accent
	catPlaceholder                 // digits, NBSP and similar
	catDottedCircle                // U+25CC
	catRS                          // register shifter
	catMPst                        // post-base matra
	catRepha                       // logical repha
	catRa                          // ra, may form a reph
	catCM                          // consonant medial
	catSymbol                      // avagraha and similar
	catCS                          // consonant with stacker
	categoryCount
)

var categoryNames = [categoryCount]string{
	"X", "C", "V", "N", "H", "ZWNJ", "ZWJ", "M", "SM", "A", "PLACEHOLDER",
	"DOTTEDCIRCLE", "RS", "MPst", "Repha", "Ra", "CM", "Symbol", "CS",
}

func (c category) String() string {
	if c >= categoryCount {
		return "?"
	}
	return categoryNames[c]
}

// position is the position of a glyph in a syllable, in visual order.
// Initial re-ordering sorts the glyphs of a syllable by position.
type position uint8

const (
	posStart position = iota
	posRaToBecomeReph
	posPreM
	posPreC
	posBaseC
	posAfterMain
	posAboveC
	posBeforeSub
	posBelowC
	posAfterSub
	posBeforePost
	posPostC
	posAfterPost
	posSMVD
	posEnd
)

// isConsonant reports whether a category behaves like a consonant in a
// syllable. Vowels and placeholders are shaped like consonants.
func isConsonant(c category) bool {
	switch c {
	case catC, catCS, catRa, catV, catPlaceholder, catDottedCircle:
		return true
	}
	return false
}

func isJoiner(c category) bool {
	return c == catZWJ || c == catZWNJ
}

// --- Script configuration --------------------------------------------------

type rephMode uint8

const (
	rephImplicit rephMode = iota // Ra,H
	rephExplicit                 // Ra,H,ZWJ
	rephLogical                  // encoded repha character
)

type blwfMode uint8

const (
	blwfPreAndPost blwfMode = iota // below-forms before and after the base
	blwfPostOnly                   // below-forms after the base only
)

type basePos uint8

const (
	baseLast        basePos = iota // last consonant without below- or post-form
	baseLastSinhala                // last consonant not preceded by ZWJ
)

// scriptConfig holds the shaping parameters of a script.
type scriptConfig struct {
	script     language.Script
	block      rune // first code point of the Unicode block
	virama     rune
	hasOldSpec bool
	rephPos    position
	rephMode   rephMode
	blwfMode   blwfMode
	basePos    basePos
}

var scriptConfigs = []scriptConfig{
	{language.Devanagari, 0x0900, 0x094D, true, posBeforePost, rephImplicit, blwfPreAndPost, baseLast},
	{language.Bengali, 0x0980, 0x09CD, true, posAfterSub, rephImplicit, blwfPreAndPost, baseLast},
	{language.Gurmukhi, 0x0A00, 0x0A4D, true, posBeforeSub, rephImplicit, blwfPreAndPost, baseLast},
	{language.Gujarati, 0x0A80, 0x0ACD, true, posBeforePost, rephImplicit, blwfPreAndPost, baseLast},
	{language.Oriya, 0x0B00, 0x0B4D, true, posAfterMain, rephImplicit, blwfPreAndPost, baseLast},
	{language.Tamil, 0x0B80, 0x0BCD, true, posAfterPost, rephImplicit, blwfPreAndPost, baseLast},
	{language.Telugu, 0x0C00, 0x0C4D, true, posAfterPost, rephExplicit, blwfPostOnly, baseLast},
	{language.Kannada, 0x0C80, 0x0CCD, true, posAfterPost, rephImplicit, blwfPostOnly, baseLast},
	{language.Malayalam, 0x0D00, 0x0D4D, true, posAfterMain, rephLogical, blwfPreAndPost, baseLast},
	{language.Sinhala, 0x0D80, 0x0DCA, false, posAfterPost, rephExplicit, blwfPreAndPost, baseLastSinhala},
}

// defaultConfig is used for scripts without an entry in scriptConfigs.
var defaultConfig = scriptConfig{
	rephPos:  posBeforePost,
	rephMode: rephImplicit,
	blwfMode: blwfPreAndPost,
	basePos:  baseLast,
}

func configFor(script language.Script) scriptConfig {
	for _, cfg := range scriptConfigs {
		if cfg.script == script {
			return cfg
		}
	}
	return defaultConfig
}

// blockConfig returns the configuration of the script whose Unicode block
// contains cp.
func blockConfig(cp rune) (scriptConfig, bool) {
	for _, cfg := range scriptConfigs {
		if cfg.block <= cp && cp < cfg.block+0x80 {
			return cfg, true
		}
	}
	return defaultConfig, false
}

// --- Classification --------------------------------------------------------

// raLetters are the consonants which may form a reph.
var raLetters = []rune{
	0x0930, 0x09B0, 0x09F0, 0x0A30, 0x0AB0, 0x0B30, 0x0BB0, 0x0C30, 0x0CB0,
	0x0D30, 0x0DBB,
}

func isRa(cp rune) bool {
	for _, ra := range raLetters {
		if ra == cp {
			return true
		}
	}
	return false
}

// leftMatras are the dependent vowels written before the base consonant.
var leftMatras = &unicode.RangeTable{R16: []unicode.Range16{
	{Lo: 0x093F, Hi: 0x093F, Stride: 1},
	{Lo: 0x094E, Hi: 0x094E, Stride: 1},
	{Lo: 0x09BF, Hi: 0x09BF, Stride: 1},
	{Lo: 0x09C7, Hi: 0x09C8, Stride: 1},
	{Lo: 0x0A3F, Hi: 0x0A3F, Stride: 1},
	{Lo: 0x0ABF, Hi: 0x0ABF, Stride: 1},
	{Lo: 0x0B47, Hi: 0x0B47, Stride: 1},
	{Lo: 0x0BC6, Hi: 0x0BC8, Stride: 1},
	{Lo: 0x0D46, Hi: 0x0D48, Stride: 1},
	{Lo: 0x0DD9, Hi: 0x0DD9, Stride: 1},
	{Lo: 0x0DDB, Hi: 0x0DDB, Stride: 1},
}}

// belowMatras are the dependent vowels written below the base consonant.
var belowMatras = &unicode.RangeTable{R16: []unicode.Range16{
	{Lo: 0x0941, Hi: 0x0944, Stride: 1},
	{Lo: 0x0956, Hi: 0x0957, Stride: 1},
	{Lo: 0x0962, Hi: 0x0963, Stride: 1},
	{Lo: 0x09C1, Hi: 0x09C4, Stride: 1},
	{Lo: 0x09E2, Hi: 0x09E3, Stride: 1},
	{Lo: 0x0A41, Hi: 0x0A42, Stride: 1},
	{Lo: 0x0AC1, Hi: 0x0AC4, Stride: 1},
	{Lo: 0x0AE2, Hi: 0x0AE3, Stride: 1},
	{Lo: 0x0B41, Hi: 0x0B44, Stride: 1},
	{Lo: 0x0B62, Hi: 0x0B63, Stride: 1},
	{Lo: 0x0C56, Hi: 0x0C56, Stride: 1},
	{Lo: 0x0C62, Hi: 0x0C63, Stride: 1},
	{Lo: 0x0CE2, Hi: 0x0CE3, Stride: 1},
	{Lo: 0x0D43, Hi: 0x0D44, Stride: 1},
	{Lo: 0x0D62, Hi: 0x0D63, Stride: 1},
	{Lo: 0x0DD4, Hi: 0x0DD6, Stride: 2},
}}

// placeholders stand in for a consonant.
var placeholders = &unicode.RangeTable{R16: []unicode.Range16{
	{Lo: 0x00A0, Hi: 0x00A0, Stride: 1},
	{Lo: 0x00D7, Hi: 0x00D7, Stride: 1},
	{Lo: 0x2010, Hi: 0x2015, Stride: 1},
	{Lo: 0x2022, Hi: 0x2022, Stride: 1},
	{Lo: 0x25FB, Hi: 0x25FE, Stride: 1},
}}

// classify returns the shaping category of a code point and its position in
// a syllable.
func classify(cp rune) (category, position) {
	switch {
	case cp == 0x200C:
		return catZWNJ, posEnd
	case cp == 0x200D:
		return catZWJ, posEnd
	case cp == otshape.DottedCircle:
		return catDottedCircle, posBaseC
	case cp == 0x0D4E: // Malayalam dot reph
		return catRepha, posEnd
	case unicode.Is(placeholders, cp):
		return catPlaceholder, posBaseC
	}
	cfg, ok := blockConfig(cp)
	if !ok {
		return catX, posEnd
	}
	offset := cp - cfg.block
	switch {
	case unicode.Is(unicodedata.IndicVirama, cp):
		return catH, posEnd
	case unicode.Is(unicodedata.IndicVowel_Dependent, cp):
		return catM, matraPosition(cp, cfg.script)
	case offset == 0x3C && unicode.Is(unicode.Mn, cp):
		return catN, posEnd
	case unicode.Is(unicode.Nd, cp):
		return catPlaceholder, posBaseC
	case offset <= 0x03 && unicode.In(cp, unicode.Mn, unicode.Mc, unicode.Lo):
		return catSM, posSMVD
	case offset >= 0x51 && offset <= 0x54 && unicode.Is(unicode.Mn, cp):
		return catA, posSMVD
	case offset == 0x3D || offset == 0x50:
		if offset == 0x3D && unicode.Is(unicode.Lo, cp) {
			return catSymbol, posSMVD
		}
		return catX, posEnd
	case unicode.Is(unicode.Lo, cp):
		if isVowelLetter(cp, cfg) {
			return catV, posBaseC
		}
		if isRa(cp) {
			return catRa, posBaseC
		}
		return catC, posBaseC
	case unicode.In(cp, unicode.Mn, unicode.Mc):
		return catSM, posSMVD
	}
	return catX, posEnd
}

func isVowelLetter(cp rune, cfg scriptConfig) bool {
	if cfg.script == language.Sinhala {
		return 0x0D85 <= cp && cp <= 0x0D96
	}
	offset := cp - cfg.block
	switch {
	case 0x04 <= offset && offset <= 0x14, offset == 0x60, offset == 0x61:
		return true
	case cfg.script == language.Devanagari && 0x72 <= offset && offset <= 0x77:
		return true
	case cfg.script == language.Gurmukhi && (offset == 0x72 || offset == 0x73):
		return true
	case cfg.script == language.Malayalam && offset == 0x5F:
		return true
	}
	return false
}

// matraPosition places a dependent vowel relative to the consonants of a
// syllable.
func matraPosition(cp rune, script language.Script) position {
	switch {
	case unicode.Is(leftMatras, cp):
		return posPreM
	case unicode.Is(belowMatras, cp):
		switch script {
		case language.Gurmukhi, language.Gujarati, language.Tamil, language.Malayalam:
			return posAfterPost
		case language.Telugu, language.Kannada:
			return posBeforeSub
		}
		return posAfterSub
	case unicode.Is(unicode.Mn, cp): // above
		switch script {
		case language.Gurmukhi:
			return posAfterPost
		case language.Oriya:
			return posAfterMain
		case language.Telugu, language.Kannada:
			return posBeforeSub
		}
		return posAfterSub
	}
	// right
	switch script {
	case language.Devanagari, language.Sinhala:
		return posAfterSub
	case language.Telugu:
		if cp <= 0x0C42 {
			return posBeforeSub
		}
		return posAfterSub
	case language.Kannada:
		if cp < 0x0CC3 || cp > 0x0CD6 {
			return posBeforeSub
		}
		return posAfterSub
	}
	return posAfterPost
}
