package otuse

import (
	"unicode"

	"github.com/go-text/typesetting/unicodedata"
	"github.com/npillmayer/typeshape/otshape"
	"golang.org/x/text/unicode/norm"
)

// category is a category of the Universal Shaping Engine.
type category uint8

const (
	catO     category = iota // other
	catB                     // base
	catN                     // number
	catGB                    // generic base
	catCGJ                   // joiners, ignorable before marks
	catZWNJ                  // zero width non-joiner
	catH                     // halant
	catHN                    // number joiner
	catIS                    // invisible stacker
	catSk                    // sakot
	catR                     // repha
	catVPre                  // vowel signs
	catVAbv
	catVBlw
	catVPst
	catVMPre                 // vowel modifiers
	catVMAbv
	catVMBlw
	catVMPst
	catMPre                  // medial consonants
	catMAbv
	catMBlw
	catMPst
	catCMAbv                 // consonant modifiers
	catCMBlw
	catFAbv                  // final consonants
	catFBlw
	catFPst
	categoryCount
)

var categoryNames = [categoryCount]string{
	"O", "B", "N", "GB", "CGJ", "ZWNJ", "H", "HN", "IS", "Sk", "R",
	"VPre", "VAbv", "VBlw", "VPst", "VMPre", "VMAbv", "VMBlw", "VMPst",
	"MPre", "MAbv", "MBlw", "MPst", "CMAbv", "CMBlw", "FAbv", "FBlw", "FPst",
}

func (c category) String() string {
	if c >= categoryCount {
		return "?"
	}
	return categoryNames[c]
}

// isPostBase reports whether a category follows the base visually. A repha
// is moved before the first of them.
func isPostBase(c category) bool {
	return c >= catVPre && c <= catFPst && c != catCMAbv && c != catCMBlw
}

func isHalantCategory(c category) bool {
	return c == catH || c == catIS
}

// isMark reports whether a category attaches to a base. Joiners before a
// mark are ignored by the cluster grammar.
func isMark(c category) bool {
	return c >= catH && c != catR && c != catHN
}

var (
	invisibleStackers = []rune{
		0x1039, 0x17D2, 0x1BAB, 0xAAF6, 0x11133, 0x11A47, 0x11A99, 0x11D45, 0x11D97,
	}
	sakot   = []rune{0x1A60}
	rephas  = []rune{0x0D4E, 0x11D46}
	special = map[rune]category{
		0x1B03: catFAbv,  // Balinese surang
		0x1B04: catFPst,  // Balinese bisah
		0x1B34: catCMAbv, // Balinese rerekan
		0xA981: catFAbv,  // Javanese cecak
		0xA982: catFAbv,  // Javanese layar
		0xA983: catVMPst, // Javanese wignyan
		0xA9B3: catCMAbv, // Javanese cecak telu
		0x1A55: catMPre,  // Tai Tham medial ra
		0x1A56: catMBlw,  // Tai Tham medial la
		0x1B81: catFAbv,  // Sundanese panglayar
		0x1B82: catFPst,  // Sundanese pangwisad
		0x1BA1: catMPst,  // Sundanese pamingkal
		0x1BA2: catMBlw,  // Sundanese panyakra
		0x1BA3: catMBlw,  // Sundanese panyiku
	}
)

// preBaseVowels are dependent vowels written before the base.
var preBaseVowels = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0BC6, Hi: 0x0BC8, Stride: 1},
		{Lo: 0x1031, Hi: 0x1031, Stride: 1},
		{Lo: 0x1084, Hi: 0x1084, Stride: 1},
		{Lo: 0x17C1, Hi: 0x17C3, Stride: 1},
		{Lo: 0x1A19, Hi: 0x1A19, Stride: 1},
		{Lo: 0x1A6E, Hi: 0x1A72, Stride: 1},
		{Lo: 0x1B3E, Hi: 0x1B3F, Stride: 1},
		{Lo: 0x1BA6, Hi: 0x1BA6, Stride: 1},
		{Lo: 0xA9BA, Hi: 0xA9BB, Stride: 1},
		{Lo: 0xAAEB, Hi: 0xAAEB, Stride: 1},
		{Lo: 0xAAEE, Hi: 0xAAEE, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x110B1, Hi: 0x110B1, Stride: 1},
		{Lo: 0x1112C, Hi: 0x1112C, Stride: 1},
		{Lo: 0x111B4, Hi: 0x111B4, Stride: 1},
		{Lo: 0x11347, Hi: 0x11348, Stride: 1},
	},
}

func contains(cps []rune, cp rune) bool {
	for _, c := range cps {
		if c == cp {
			return true
		}
	}
	return false
}

func isBelow(cp rune) bool {
	ccc := norm.NFD.PropertiesString(string(cp)).CCC()
	return ccc == 202 || ccc == 220
}

// classify returns the category of a code point.
func classify(cp rune) category {
	if cat, ok := special[cp]; ok {
		return cat
	}
	switch {
	case cp == 0x200C:
		return catZWNJ
	case cp == 0x200D, cp == 0x034F:
		return catCGJ
	case cp == 0x1107F: // Brahmi number joiner
		return catHN
	case cp == otshape.DottedCircle, cp == 0x00A0:
		return catGB
	case contains(invisibleStackers, cp):
		return catIS
	case contains(sakot, cp):
		return catSk
	case contains(rephas, cp):
		return catR
	case unicode.Is(unicodedata.IndicVirama, cp):
		return catH
	case unicode.Is(unicodedata.IndicVowel_Dependent, cp):
		switch {
		case unicode.Is(preBaseVowels, cp):
			return catVPre
		case unicode.Is(unicode.Mc, cp):
			return catVPst
		case isBelow(cp):
			return catVBlw
		}
		return catVAbv
	case unicode.Is(unicode.Nd, cp):
		return catN
	case unicode.In(cp, unicode.Lo, unicode.Lm):
		return catB
	case unicode.Is(unicode.Mc, cp):
		return catVMPst
	case unicode.Is(unicode.Mn, cp):
		if isBelow(cp) {
			return catVMBlw
		}
		return catVMAbv
	}
	return catO
}
