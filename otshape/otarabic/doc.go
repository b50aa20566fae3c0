/*
Package otarabic provides the shaping engine for Arabic, Syriac and other
scripts with cursive joining, for package otshape.

Joining behaviour is driven by a state machine over the joining types of
characters: non-joining, left-joining, right-joining, dual-joining and the
Syriac joining groups Alaph and Dalath/Rish. Transparent characters, i.e.
most marks, are skipped without changing the state. The result is a
positional form for every character, which enables one of the features
isol, fina, fin2, fin3, medi, med2 or init.

Fonts without lookups for positional forms are shaped with the glyphs of the
Arabic Presentation Forms blocks, if the font maps them.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otarabic

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'typeshape.shaper'
func tracer() tracing.Trace {
	return tracing.Select("typeshape.shaper")
}
