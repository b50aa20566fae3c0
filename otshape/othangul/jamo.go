package othangul

import (
	"unicode"

	"github.com/go-text/typesetting/unicodedata"
)

// Conjoining jamo and the precomposed syllables they compose into.
const (
	lBase  = 0x1100
	vBase  = 0x1161
	tBase  = 0x11A7
	sBase  = 0xAC00
	lCount = 19
	vCount = 21
	tCount = 28
	nCount = vCount * tCount
)

// Tone marks, Hangul single and double dot.
const (
	toneSingleDot = 0x302E
	toneDoubleDot = 0x302F
)

// isL, isV and isT include archaic jamo, which do not compose.
func isL(r rune) bool { return unicode.Is(unicodedata.GraphemeBreakL, r) }
func isV(r rune) bool { return unicode.Is(unicodedata.GraphemeBreakV, r) }
func isT(r rune) bool { return unicode.Is(unicodedata.GraphemeBreakT, r) }

func isCombiningL(r rune) bool { return lBase <= r && r < lBase+lCount }
func isCombiningV(r rune) bool { return vBase <= r && r < vBase+vCount }
func isCombiningT(r rune) bool { return tBase < r && r < tBase+tCount }

// isSyllable reports whether r is a precomposed syllable, LV or LVT.
func isSyllable(r rune) bool {
	return unicode.In(r, unicodedata.GraphemeBreakLV, unicodedata.GraphemeBreakLVT)
}

func isTone(r rune) bool { return r == toneSingleDot || r == toneDoubleDot }

// compose returns the syllable of a conjoining L, V and optional T (0 if
// absent), or 0 if the jamo do not compose.
func compose(l, v, t rune) rune {
	if !isCombiningL(l) || !isCombiningV(v) {
		return 0
	}
	var tindex rune
	if t != 0 {
		if !isCombiningT(t) {
			return 0
		}
		tindex = t - tBase
	}
	return sBase + (l-lBase)*nCount + (v-vBase)*tCount + tindex
}

// decompose splits a precomposed syllable into L, V and T. t is 0 for LV
// syllables.
func decompose(s rune) (l, v, t rune) {
	sindex := s - sBase
	l = lBase + sindex/nCount
	v = vBase + (sindex%nCount)/tCount
	if tindex := sindex % tCount; tindex != 0 {
		t = tBase + tindex
	}
	return
}
