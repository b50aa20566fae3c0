/*
Package otindic provides the shaping engine for the Brahmi-derived scripts of
India and Sri Lanka, for package otshape: Devanagari, Bengali, Gurmukhi,
Gujarati, Oriya, Tamil, Telugu, Kannada, Malayalam and Sinhala.

Shaping of these scripts happens syllable by syllable. Code points are
classified into shaping categories from Unicode character data, independent
of the font. A grammar over these categories splits the text into syllables;
syllables which do not conform to the grammar are "broken" and get a dotted
circle as their base, if the font has one.

Within a syllable, the base consonant is identified and the glyphs are
re-ordered into visual order before the basic shaping features are applied
(initial re-ordering). Reph, pre-base matras and pre-base re-ordering
consonants are moved to their final places after the basic features have
been applied (final re-ordering). Both passes probe the font for the forms it
supports, e.g. whether a consonant has a below-base form, without touching
the text being shaped.

Fonts with old-style script tags ('deva', 'beng', …) are shaped by the
rules of the first Indic OpenType specification, fonts with new-style tags
('dev2', 'bng2', …) by the current ones.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otindic

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'typeshape.shaper'
func tracer() tracing.Trace {
	return tracing.Select("typeshape.shaper")
}
