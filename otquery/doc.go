/*
Package otquery decodes font-wide information from the raw tables of a font
binary: the 'head', 'maxp', 'hhea', 'OS/2', 'name', 'hmtx', 'loca' and 'glyf'
tables. Layout queries are answered from a parsed ot.Font, if given.

Values are decoded directly from the table bytes. Tables too short for the
fields requested are reported as missing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'typeshape.fonts'
func tracer() tracing.Trace {
	return tracing.Select("typeshape.fonts")
}
