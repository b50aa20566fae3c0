/*
Package otlayout applies OpenType layout lookups to a glyph buffer.

Lookups are taken from tables loaded by package `ot`. Package otlayout
implements the GSUB lookup types 1–8 and the GPOS lookup types 1–9 (extension
lookups are resolved by the loader), the contextual matcher with its lookup
flag filtering, the ligature and mark bookkeeping needed to attach marks to
ligature components, and the final resolution of mark and cursive attachments.

The unit of work is a Buffer: a sequence of GlyphShapingData, created for a
single run of text and owned by a single shaping call. Fonts are never
mutated by lookup application and may be shared between goroutines, buffers
may not.

# Resource guards

Shaping runs against untrusted font and text input. Every lookup application
is bounded by an operation budget and a maximum buffer length, both derived
from the length of the buffer when application starts. Exceeding a budget
ends the current lookup application, which then reports "no change" for the
remaining positions. Nested lookup calls from contextual lookups are limited
to MaxNesting levels.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otlayout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'typeshape.layout'
func tracer() tracing.Trace {
	return tracing.Select("typeshape.layout")
}

// Guards against unbounded work on crafted fonts.
const (
	MaxContextLength     = 64    // maximum length of an input, backtrack or lookahead sequence
	MaxLengthFactor      = 64    // buffer may grow to MaxLengthFactor × its initial length …
	MaxLengthMinimum     = 16384 // … but at least to MaxLengthMinimum glyphs
	MaxOperationsFactor  = 1024  // operations per glyph of the initial buffer …
	MaxOperationsMinimum = 16384 // … but at least MaxOperationsMinimum operations
	MaxNesting           = 6     // nesting depth of lookups invoked by contextual lookups
)
