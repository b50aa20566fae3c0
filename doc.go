/*
Package typeshape is for typeface and font handling, and for shaping text
with OpenType fonts.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

▪︎ A "typecase" is a scaled font, i.e. a font in a certain size for
a certain script and language. The name is reminiscend on the wooden
boxes of typesetters in the era of metal type.
An example is "Helvetica regular 11pt, Latin, en_US".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Package typeshape connects the font container with the shaping machinery:
[ScalableFont] provides the layout tables (package ot) and the glyph metrics
(package otlayout) of a font file, [SelectShaper] picks the shaping engine
for a script, and [Shape] shapes a piece of text in one go.

# Status

Does not yet contain methods for font collections (*.ttc), e.g.,
/System/Library/Fonts/Helvetica.ttc on Mac OS.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package typeshape

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'typeshape'
func tracer() tracing.Trace {
	return tracing.Select("typeshape")
}
