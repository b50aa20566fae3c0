/*
Package othangul provides the shaping engine for Korean Hangul, for package
otshape.

Hangul text may come as precomposed syllables or as sequences of conjoining
jamo. The engine composes jamo sequences into syllables if the font has a
glyph for the syllable, and otherwise decomposes syllables into jamo, which
are then shaped by the features ljmo, vjmo and tjmo. Tone marks are moved in
front of the syllable they belong to.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package othangul

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'typeshape.shaper'
func tracer() tracing.Trace {
	return tracing.Select("typeshape.shaper")
}
