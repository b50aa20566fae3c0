/*
Package otmyanmar provides the shaping engine for Myanmar, for package otshape.

The engine plans the Myanmar features in the order the Myanmar script
requires: locl and ccmp first, then the basic features rphf, pref, blwf and
pstf one at a time, then the presentation features pres, abvs, blws and psts.

Syllables are not analysed and glyphs are not re-ordered: a pre-base vowel
sign such as U+1031 stays in logical order, and so does a kinzi. Fonts which
rely on the shaper for visual order will therefore display such syllables
incorrectly. Apart from the feature plan, text is shaped as by the default
engine.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otmyanmar

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'typeshape.shaper'
func tracer() tracing.Trace {
	return tracing.Select("typeshape.shaper")
}
