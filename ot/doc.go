/*
Package ot loads the OpenType advanced-typography tables GSUB, GPOS and GDEF.

Intended audience for this package are text shapers: package `ot` decodes the
binary tables into typed, immutable in-memory structures, but does not apply
them to text. Applying lookups to a glyph buffer is the task of the sister
package `otlayout`; script-specific shaping lives in `otshape`.

OpenType layout tables are recursive structures of offsets, where every
offset is relative to the start of the immediately enclosing table. Package `ot`
hides these details: clients see coverage sets, class definitions, anchors,
value records and lookups, but never offsets.

Lookups are loaded once into a flat, indexable array per layout table.
Lookups referencing other lookups (contextual and chained-contextual
subtables) do so by lookup index; these indices are resolved at application
time, never during loading. Extension lookups are resolved during loading and
are transparent to clients.

# Error handling

Fonts in the wild regularly infringe upon the OpenType specification. Package
`ot` distinguishes between malformations it can tolerate (an unknown anchor
format, an unknown subtable format of a known lookup type, NULL offsets) and
malformations which make the binary layout of a table unknown (an unknown
lookup type, coverage or class definition formats other than 1 or 2, version
mismatches). The former degrade to harmless empty values, the latter are
reported as errors which satisfy errors.Is(err, ErrInvalidFont).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

// Code comments often cite passages from the OpenType specification version 1.9;
// see https://learn.microsoft.com/en-us/typography/opentype/spec/.

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'typeshape.ot'
func tracer() tracing.Trace {
	return tracing.Select("typeshape.ot")
}

func errFontFormat(table Tag, section string, offset int, format string, args ...any) error {
	return FontError{
		Table:    table,
		Section:  section,
		Issue:    fmt.Sprintf(format, args...),
		Severity: SeverityCritical,
		Offset:   uint32(max(offset, 0)),
	}
}
