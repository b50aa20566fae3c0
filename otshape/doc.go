/*
Package otshape shapes runs of text with OpenType fonts.

Shaping is driven by [Shape], which takes a glyph buffer filled with the code
points of a single run, a font and a shaping engine. Shaping engines implement
the script specific parts of shaping; package otshape provides the default
engine ([DefaultShaper]) and [NoShaper], script engines live in sub-packages.

Shape proceeds in fixed steps:

  - plan: collect the features to apply, in stages. Direction features come
    first, then the features of the shaping engine, then the common and
    horizontal features and the features the client requests.
  - normalize and map code points to glyphs.
  - assign features: enable features on glyphs. Engines may re-order, insert
    or compose glyphs here.
  - substitute: apply the GSUB lookups of the plan, stage by stage. Engines
    may register pauses between stages.
  - position: set advances from the glyph metrics, zero mark advances,
    apply the GPOS lookups of the plan and resolve attachments.

A plan de-duplicates lookups shared by features of the same stage, applying
each lookup once in lookup list order.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otshape

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/typeshape/ot"
)

// NOTDEF is the glyph index for OpenType ".notdef".
const NOTDEF = ot.GlyphIndex(0)

// DottedCircle is the placeholder code point inserted into broken clusters.
const DottedCircle = '◌'

// tracer returns a trace sink for the otshape package namespace.
func tracer() tracing.Trace {
	return tracing.Select("typeshape.shaper")
}

// errShaper wraps a message as a user-facing shaping error.
func errShaper(x string) error {
	return fmt.Errorf("OpenType text shaping: %s", x)
}
