package ot

import "fmt"

// Limits guarding against crafted fonts claiming unreasonably large structures.
const (
	MaxLookupCount   = 0xFFFF // lookups in a lookup list
	MaxSubtableTotal = 65536  // subtables of all lookups of a layout table together
)

/*
ParseLayoutTable loads a GSUB or GPOS table.

GSUB/GPOS Header, Version 1.0 and 1.1

	uint16    majorVersion        Major version of the table, = 1
	uint16    minorVersion        Minor version of the table, = 0 or 1
	Offset16  scriptListOffset    Offset to ScriptList table, from beginning of table
	Offset16  featureListOffset   Offset to FeatureList table, from beginning of table
	Offset16  lookupListOffset    Offset to LookupList table, from beginning of table
	Offset32  featureVariationsOffset  (1.1) Offset to FeatureVariations table, from beginning of table (may be NULL)

Feature variations are not applied and therefore not loaded.
*/
func ParseLayoutTable(tag Tag, data []byte) (*LayoutTable, error) {
	if tag != TagGSUB && tag != TagGPOS {
		return nil, fmt.Errorf("not a layout table: %s", tag)
	}
	r := newReader(tag, data)
	hdr, err := r.u16s(5)
	if err != nil {
		return nil, err
	}
	lt := &LayoutTable{Tag: tag, MajorVersion: hdr[0], MinorVersion: hdr[1]}
	if lt.MajorVersion != 1 || lt.MinorVersion > 1 {
		return nil, r.errorf("header", 0, "unsupported table version %d.%d", hdr[0], hdr[1])
	}
	if hdr[2] != 0 {
		if lt.Scripts, err = parseScriptList(r, int(hdr[2])); err != nil {
			return nil, err
		}
	}
	if hdr[3] != 0 {
		if lt.Features, err = parseFeatureList(r, int(hdr[3])); err != nil {
			return nil, err
		}
	}
	if hdr[4] != 0 {
		if lt.lookups, err = parseLookupList(r, int(hdr[4])); err != nil {
			return nil, err
		}
	}
	lt.warnings = r.warn.list
	tracer().Debugf("%s %d.%d: %d scripts, %d features, %d lookups", tag, lt.MajorVersion,
		lt.MinorVersion, len(lt.Scripts), len(lt.Features), len(lt.lookups))
	return lt, nil
}

/*
ScriptList table

	uint16        scriptCount    Number of ScriptRecords
	ScriptRecord  scriptRecords[scriptCount]  Array of ScriptRecords, listed alphabetically by script tag

	ScriptRecord: Tag scriptTag, Offset16 scriptOffset (from beginning of ScriptList)
*/
func parseScriptList(r *reader, pos int) ([]Script, error) {
	defer r.jump(pos)()
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	scripts := make([]Script, 0, n)
	for i := 0; i < int(n); i++ {
		tag, err := r.tag32()
		if err != nil {
			return nil, err
		}
		off, err := r.u16()
		if err != nil {
			return nil, err
		}
		if off == 0 {
			continue
		}
		script, err := parseScript(r, pos+int(off))
		if err != nil {
			return nil, err
		}
		script.Tag = tag
		scripts = append(scripts, script)
	}
	return scripts, nil
}

/*
Script table

	Offset16       defaultLangSysOffset  Offset to default LangSys table, from beginning of Script table (may be NULL)
	uint16         langSysCount          Number of LangSysRecords for this script, excluding the default LangSys
	LangSysRecord  langSysRecords[langSysCount]  Array of LangSysRecords, listed alphabetically by LangSys tag

	LangSysRecord: Tag langSysTag, Offset16 langSysOffset (from beginning of Script table)
*/
func parseScript(r *reader, pos int) (Script, error) {
	defer r.jump(pos)()
	var script Script
	defOff, err := r.u16()
	if err != nil {
		return script, err
	}
	if defOff != 0 {
		ls, err := parseLangSys(r, pos+int(defOff))
		if err != nil {
			return script, err
		}
		script.DefaultLangSys = &ls
	}
	n, err := r.u16()
	if err != nil {
		return script, err
	}
	for i := 0; i < int(n); i++ {
		tag, err := r.tag32()
		if err != nil {
			return script, err
		}
		off, err := r.u16()
		if err != nil {
			return script, err
		}
		if off == 0 {
			continue
		}
		ls, err := parseLangSys(r, pos+int(off))
		if err != nil {
			return script, err
		}
		script.LangSys = append(script.LangSys, LangSysRecord{Tag: tag, LangSys: ls})
	}
	return script, nil
}

/*
LangSys table

	Offset16  lookupOrderOffset     = NULL (reserved for an offset to a reordering table)
	uint16    requiredFeatureIndex  Index of a feature required for this language system; if no required features = 0xFFFF
	uint16    featureIndexCount     Number of feature index values for this language system, excludes the required feature
	uint16    featureIndices[featureIndexCount]  Array of indices into the FeatureList, in arbitrary order
*/
func parseLangSys(r *reader, pos int) (LangSys, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(2)
	if err != nil {
		return LangSys{}, err
	}
	indices, err := r.countedU16s()
	if err != nil {
		return LangSys{}, err
	}
	return LangSys{RequiredFeature: hdr[1], FeatureIndices: indices}, nil
}

/*
FeatureList table

	uint16         featureCount    Number of FeatureRecords in this table
	FeatureRecord  featureRecords[featureCount]  Array of FeatureRecords, zero-based (first feature has FeatureIndex = 0), listed alphabetically by feature tag

	FeatureRecord: Tag featureTag, Offset16 featureOffset (from beginning of FeatureList)

Feature table

	Offset16  featureParamsOffset  Offset from start of Feature table to FeatureParams table, if defined for the feature and present, else NULL
	uint16    lookupIndexCount     Number of LookupList indices for this feature
	uint16    lookupListIndices[lookupIndexCount]  Array of indices into the LookupList, zero-based (first lookup is LookupListIndex = 0)
*/
func parseFeatureList(r *reader, pos int) ([]Feature, error) {
	defer r.jump(pos)()
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	features := make([]Feature, n)
	for i := range features {
		if features[i].Tag, err = r.tag32(); err != nil {
			return nil, err
		}
		off, err := r.u16()
		if err != nil {
			return nil, err
		}
		if off == 0 {
			continue
		}
		if features[i].LookupIndices, err = parseFeatureLookups(r, pos+int(off)); err != nil {
			return nil, err
		}
	}
	return features, nil
}

func parseFeatureLookups(r *reader, pos int) ([]uint16, error) {
	defer r.jump(pos + 2)() // skip featureParamsOffset
	return r.countedU16s()
}

/*
LookupList table

	uint16    lookupCount  Number of lookups in this table
	Offset16  lookupOffsets[lookupCount]  Array of offsets to Lookup tables, from beginning of LookupList, zero based (first lookup is Lookup index = 0)

All lookups are loaded into a flat array before any of them is applied, lookup
references between lookups stay indices.
*/
func parseLookupList(r *reader, pos int) ([]Lookup, error) {
	defer r.jump(pos)()
	offs, err := r.countedU16s()
	if err != nil {
		return nil, err
	}
	lookups := make([]Lookup, len(offs))
	total := 0
	for i, off := range offs {
		if off == 0 {
			r.warn.add(pos, "NULL offset for lookup %d", i)
			continue
		}
		if lookups[i], err = parseLookup(r, pos+int(off)); err != nil {
			return nil, fmt.Errorf("lookup %d: %w", i, err)
		}
		total += len(lookups[i].Subtables)
		if total > MaxSubtableTotal {
			return nil, r.errorf("LookupList", pos, "too many lookup subtables")
		}
	}
	return lookups, nil
}

/*
Lookup table

	uint16    lookupType        Different enumerations for GSUB and GPOS
	uint16    lookupFlag        Lookup qualifiers
	uint16    subTableCount     Number of subtables for this lookup
	Offset16  subtableOffsets[subTableCount]  Array of offsets to lookup subtables, from beginning of Lookup table
	uint16    markFilteringSet  Index (base 0) into GDEF mark glyph sets structure. This field is only present if the USE_MARK_FILTERING_SET lookup flag is set.
*/
func parseLookup(r *reader, pos int) (Lookup, error) {
	defer r.jump(pos)()
	var lookup Lookup
	hdr, err := r.u16s(2)
	if err != nil {
		return lookup, err
	}
	lookup.Type, lookup.Flag = LookupType(hdr[0]), LookupFlag(hdr[1])
	if lookup.Type == 0 || lookup.Type > maxLookupType(r.tag) {
		return lookup, r.errorf("Lookup", pos, "unknown lookup type %d", lookup.Type)
	}
	offs, err := r.countedU16s()
	if err != nil {
		return lookup, err
	}
	if lookup.Flag&LookupUseMarkFilteringSet != 0 {
		if lookup.MarkFilteringSet, err = r.u16(); err != nil {
			return lookup, err
		}
	}
	ext := extensionType(r.tag)
	lookup.Subtables = make([]Subtable, 0, len(offs))
	for _, off := range offs {
		if off == 0 {
			continue
		}
		stpos, lt := pos+int(off), lookup.Type
		if lt == ext {
			if stpos, lt, err = resolveExtension(r, stpos); err != nil {
				return lookup, err
			}
			if !lookup.Extension { // first extension subtable decides the type of the lookup
				lookup.Extension = true
				lookup.Type = lt
			} else if lt != lookup.Type {
				r.warn.add(stpos, "extension subtable of type %d in lookup of type %d", lt, lookup.Type)
				lookup.Subtables = append(lookup.Subtables, &UnsupportedSubtable{Type: lt})
				continue
			}
		}
		st, err := parseSubtable(r, lt, stpos)
		if err != nil {
			return lookup, err
		}
		lookup.Subtables = append(lookup.Subtables, st)
	}
	tracer().Debugf("%s lookup type %s, flags %#04x, %d subtables", r.tag,
		LookupTypeName(r.tag, lookup.Type), lookup.Flag, len(lookup.Subtables))
	return lookup, nil
}

/*
Extension Substitution/Positioning Subtable Format 1

	uint16    format               Format identifier. Set to 1.
	uint16    extensionLookupType  Lookup type of subtable referenced by extensionOffset (that is, the extension subtable).
	Offset32  extensionOffset      Offset to the extension subtable, of lookup type extensionLookupType, relative to the start of the ExtensionSubstFormat1 subtable.

An extension must not reference another extension subtable.
*/
func resolveExtension(r *reader, pos int) (int, LookupType, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(2)
	if err != nil {
		return 0, 0, err
	}
	if hdr[0] != 1 {
		return 0, 0, r.errorf("Extension", pos, "unknown extension format %d", hdr[0])
	}
	off, err := r.u32()
	if err != nil {
		return 0, 0, err
	}
	lt := LookupType(hdr[1])
	if lt == extensionType(r.tag) {
		return 0, 0, r.errorf("Extension", pos, "extension subtable references another extension")
	}
	if lt == 0 || lt > maxLookupType(r.tag) {
		return 0, 0, r.errorf("Extension", pos, "unknown lookup type %d", lt)
	}
	target := pos + int(off)
	if off == 0 || target >= len(r.data) {
		return 0, 0, r.errorf("Extension", pos, "extension offset %d out of bounds", off)
	}
	return target, lt, nil
}

// parseSubtable dispatches on lookup type to the concrete subtable loaders.
func parseSubtable(r *reader, lt LookupType, pos int) (Subtable, error) {
	if r.tag == TagGPOS {
		switch lt {
		case GPosLookupTypeSingle:
			return parseSinglePos(r, pos)
		case GPosLookupTypePair:
			return parsePairPos(r, pos)
		case GPosLookupTypeCursive:
			return parseCursivePos(r, pos)
		case GPosLookupTypeMarkToBase:
			return parseMarkBasePos(r, pos)
		case GPosLookupTypeMarkToLigature:
			return parseMarkLigPos(r, pos)
		case GPosLookupTypeMarkToMark:
			return parseMarkMarkPos(r, pos)
		case GPosLookupTypeContextPos:
			return parseSequenceContext(r, lt, pos)
		case GPosLookupTypeChainedContext:
			return parseChainedSequenceContext(r, lt, pos)
		}
	} else {
		switch lt {
		case GSubLookupTypeSingle:
			return parseSingleSubst(r, pos)
		case GSubLookupTypeMultiple:
			return parseMultipleSubst(r, pos)
		case GSubLookupTypeAlternate:
			return parseAlternateSubst(r, pos)
		case GSubLookupTypeLigature:
			return parseLigatureSubst(r, pos)
		case GSubLookupTypeContext:
			return parseSequenceContext(r, lt, pos)
		case GSubLookupTypeChainingContext:
			return parseChainedSequenceContext(r, lt, pos)
		case GSubLookupTypeReverseChaining:
			return parseReverseChainSingleSubst(r, pos)
		}
	}
	return nil, r.errorf("Lookup", pos, "unknown lookup type %d", lt)
}

// unsupported creates an inert subtable for an unknown format of a known lookup type.
func unsupported(r *reader, lt LookupType, format uint16, pos int) (Subtable, error) {
	r.warn.add(pos, "%s: unknown subtable format %d", LookupTypeName(r.tag, lt), format)
	return &UnsupportedSubtable{Type: lt, Format: format}, nil
}
