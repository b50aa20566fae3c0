package ot

// Loaders for the common table formats shared by GSUB, GPOS and GDEF.
// Every loader receives the absolute position of the table it loads. Offsets
// read inside a table are relative to the start of that table.

/*
Coverage Format 1

	uint16      coverageFormat   Format identifier, format = 1
	uint16      glyphCount       Number of glyphs in the glyph array
	uint16      glyphArray[glyphCount]   Array of glyph IDs, in numerical order

Coverage Format 2

	uint16      coverageFormat   Format identifier, format = 2
	uint16      rangeCount       Number of RangeRecords
	RangeRecord rangeRecords[rangeCount] Array of glyph ranges, ordered by startGlyphID.

	RangeRecord: uint16 startGlyphID, uint16 endGlyphID, uint16 startCoverageIndex
*/
func parseCoverage(r *reader, pos int) (Coverage, error) {
	defer r.jump(pos)()
	format, err := r.u16()
	if err != nil {
		return Coverage{}, err
	}
	switch format {
	case 1:
		glyphs, err := r.countedGlyphs()
		if err != nil {
			return Coverage{}, err
		}
		for i := 1; i < len(glyphs); i++ {
			if glyphs[i] <= glyphs[i-1] {
				r.warn.add(pos, "coverage glyphs not strictly increasing at index %d", i)
				break
			}
		}
		return Coverage{format: 1, glyphs: glyphs}, nil
	case 2:
		n, err := r.u16()
		if err != nil {
			return Coverage{}, err
		}
		b, err := r.bytes(int(n) * 6)
		if err != nil {
			return Coverage{}, err
		}
		ranges := make([]CoverageRange, n)
		for i := range ranges {
			rec := b[i*6:]
			ranges[i] = CoverageRange{
				Start:      GlyphIndex(u16(rec)),
				End:        GlyphIndex(u16(rec[2:])),
				StartIndex: u16(rec[4:]),
			}
		}
		for i := range ranges {
			if ranges[i].End < ranges[i].Start || i > 0 && ranges[i].Start <= ranges[i-1].End {
				r.warn.add(pos, "coverage ranges overlap or unsorted at record %d", i)
				break
			}
		}
		return Coverage{format: 2, ranges: ranges}, nil
	}
	return Coverage{}, r.errorf("Coverage", pos, "illegal coverage format %d", format)
}

// parseCoverages loads a list of coverage tables from offsets relative to base.
func parseCoverages(r *reader, base int, offsets []uint16) ([]Coverage, error) {
	covs := make([]Coverage, len(offsets))
	for i, off := range offsets {
		if off == 0 {
			continue
		}
		var err error
		if covs[i], err = parseCoverage(r, base+int(off)); err != nil {
			return nil, err
		}
	}
	return covs, nil
}

/*
ClassDef Format 1

	uint16  classFormat      Format identifier, format = 1
	uint16  startGlyphID     First glyph ID of the classValueArray
	uint16  glyphCount       Size of the classValueArray
	uint16  classValueArray[glyphCount]  Array of Class Values, one per glyph ID

ClassDef Format 2

	uint16  classFormat      Format identifier, format = 2
	uint16  classRangeCount  Number of ClassRangeRecords
	ClassRangeRecord classRangeRecords[classRangeCount] Array of ClassRangeRecords, ordered by startGlyphID

	ClassRangeRecord: uint16 startGlyphID, uint16 endGlyphID, uint16 class
*/
func parseClassDef(r *reader, pos int) (ClassDef, error) {
	defer r.jump(pos)()
	format, err := r.u16()
	if err != nil {
		return ClassDef{}, err
	}
	switch format {
	case 1:
		start, err := r.u16()
		if err != nil {
			return ClassDef{}, err
		}
		classes, err := r.countedU16s()
		if err != nil {
			return ClassDef{}, err
		}
		return ClassDef{format: 1, start: GlyphIndex(start), classes: classes}, nil
	case 2:
		n, err := r.u16()
		if err != nil {
			return ClassDef{}, err
		}
		b, err := r.bytes(int(n) * 6)
		if err != nil {
			return ClassDef{}, err
		}
		ranges := make([]ClassRange, n)
		for i := range ranges {
			rec := b[i*6:]
			ranges[i] = ClassRange{
				Start: GlyphIndex(u16(rec)),
				End:   GlyphIndex(u16(rec[2:])),
				Class: u16(rec[4:]),
			}
			if i > 0 && ranges[i].Start <= ranges[i-1].End {
				r.warn.add(pos, "class ranges overlap or unsorted at record %d", i)
			}
		}
		return ClassDef{format: 2, ranges: ranges}, nil
	}
	return ClassDef{}, r.errorf("ClassDef", pos, "illegal class definition format %d", format)
}

// parseOptClassDef loads a class definition at base+off, or returns the empty
// class definition for a NULL offset.
func parseOptClassDef(r *reader, base int, off uint16) (ClassDef, error) {
	if off == 0 {
		return ClassDef{}, nil
	}
	return parseClassDef(r, base+int(off))
}

/*
Device table

	uint16  startSize    Smallest size to correct, in ppem
	uint16  endSize      Largest size to correct, in ppem
	uint16  deltaFormat  Format of deltaValue array data: 0x0001, 0x0002, or 0x0003
	uint16  deltaValue[ ]  Array of compressed data

VariationIndex table

	uint16  deltaSetOuterIndex  A delta-set outer index
	uint16  deltaSetInnerIndex  A delta-set inner index
	uint16  deltaFormat         Format, = 0x8000
*/
func parseDevice(r *reader, pos int) (*Device, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(3)
	if err != nil {
		return nil, err
	}
	dev := &Device{StartSize: hdr[0], EndSize: hdr[1], DeltaFormat: hdr[2]}
	var bits int
	switch dev.DeltaFormat {
	case 1:
		bits = 2
	case 2:
		bits = 4
	case 3:
		bits = 8
	case 0x8000:
		return dev, nil
	default:
		r.warn.add(pos, "unknown device delta format %#x", dev.DeltaFormat)
		return dev, nil
	}
	if dev.EndSize < dev.StartSize {
		return dev, nil
	}
	count := int(dev.EndSize-dev.StartSize) + 1
	perWord := 16 / bits
	words, err := r.u16s((count + perWord - 1) / perWord)
	if err != nil {
		return nil, err
	}
	dev.Deltas = make([]int8, count)
	mask := uint16(1)<<bits - 1
	for i := range dev.Deltas {
		w := words[i/perWord]
		shift := 16 - bits*(i%perWord+1)
		v := int(w >> shift & mask)
		if v >= 1<<(bits-1) { // sign extend
			v -= 1 << bits
		}
		dev.Deltas[i] = int8(v)
	}
	return dev, nil
}

func parseOptDevice(r *reader, base int, off uint16) (*Device, error) {
	if off == 0 {
		return nil, nil
	}
	return parseDevice(r, base+int(off))
}

// parseValueRecord reads a value record of the given format at the current position.
// Device offsets are relative to base, the start of the immediate parent table.
func parseValueRecord(r *reader, format ValueFormat, base int) (ValueRecord, error) {
	var vr ValueRecord
	var devOffsets [4]uint16
	for bit := ValueFormat(1); bit <= ValueYAdvDevice; bit <<= 1 {
		if format&bit == 0 {
			continue
		}
		v, err := r.u16()
		if err != nil {
			return vr, err
		}
		switch bit {
		case ValueXPlacement:
			vr.XPlacement = int16(v)
		case ValueYPlacement:
			vr.YPlacement = int16(v)
		case ValueXAdvance:
			vr.XAdvance = int16(v)
		case ValueYAdvance:
			vr.YAdvance = int16(v)
		case ValueXPlaDevice:
			devOffsets[0] = v
		case ValueYPlaDevice:
			devOffsets[1] = v
		case ValueXAdvDevice:
			devOffsets[2] = v
		case ValueYAdvDevice:
			devOffsets[3] = v
		}
	}
	var err error
	devices := [4]**Device{&vr.XPlaDevice, &vr.YPlaDevice, &vr.XAdvDevice, &vr.YAdvDevice}
	for i, off := range devOffsets {
		if *devices[i], err = parseOptDevice(r, base, off); err != nil {
			return vr, err
		}
	}
	return vr, nil
}

/*
Anchor Table Format 1: Design Units

	uint16  anchorFormat  Format identifier, = 1
	int16   xCoordinate   Horizontal value, in design units
	int16   yCoordinate   Vertical value, in design units

Format 2 adds

	uint16  anchorPoint   Index to glyph contour point

Format 3 adds

	Offset16  xDeviceOffset  Offset to Device table (non-variable font) / VariationIndex table (variable font) for X coordinate, from beginning of Anchor table (may be NULL)
	Offset16  yDeviceOffset  Offset to Device table (non-variable font) / VariationIndex table (variable font) for Y coordinate, from beginning of Anchor table (may be NULL)

Anchors of unknown format are loaded as the empty anchor (0,0).
*/
func parseAnchor(r *reader, pos int) (*Anchor, error) {
	defer r.jump(pos)()
	format, err := r.u16()
	if err != nil {
		return nil, err
	}
	if format < 1 || format > 3 {
		r.warn.add(pos, "unknown anchor format %d", format)
		return &Anchor{}, nil
	}
	a := &Anchor{Format: format}
	if a.X, err = r.i16(); err != nil {
		return nil, err
	}
	if a.Y, err = r.i16(); err != nil {
		return nil, err
	}
	switch format {
	case 2:
		if a.AnchorPoint, err = r.u16(); err != nil {
			return nil, err
		}
	case 3:
		offs, err := r.u16s(2)
		if err != nil {
			return nil, err
		}
		if a.XDevice, err = parseOptDevice(r, pos, offs[0]); err != nil {
			return nil, err
		}
		if a.YDevice, err = parseOptDevice(r, pos, offs[1]); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func parseOptAnchor(r *reader, base int, off uint16) (*Anchor, error) {
	if off == 0 {
		return nil, nil
	}
	return parseAnchor(r, base+int(off))
}

/*
MarkArray table

	uint16      markCount               Number of MarkRecords
	MarkRecord  markRecords[markCount]  Array of MarkRecords, ordered by corresponding glyphs in the associated mark Coverage table.

	MarkRecord: uint16 markClass, Offset16 markAnchorOffset (from beginning of MarkArray table)
*/
func parseMarkArray(r *reader, pos int) ([]MarkRecord, error) {
	defer r.jump(pos)()
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	recs, err := r.u16s(2 * int(n))
	if err != nil {
		return nil, err
	}
	marks := make([]MarkRecord, n)
	for i := range marks {
		marks[i].Class = recs[2*i]
		if marks[i].Anchor, err = parseOptAnchor(r, pos, recs[2*i+1]); err != nil {
			return nil, err
		}
	}
	return marks, nil
}

/*
parseAnchorMatrix loads a BaseArray, Mark2Array or a LigatureAttach table: a
count of records, each consisting of classCount offsets to anchor tables, from
the beginning of the table.
*/
func parseAnchorMatrix(r *reader, pos int, classCount int) ([][]*Anchor, error) {
	defer r.jump(pos)()
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	offs, err := r.u16s(int(n) * classCount)
	if err != nil {
		return nil, err
	}
	rows := make([][]*Anchor, n)
	for i := range rows {
		rows[i] = make([]*Anchor, classCount)
		for c := 0; c < classCount; c++ {
			if rows[i][c], err = parseOptAnchor(r, pos, offs[i*classCount+c]); err != nil {
				return nil, err
			}
		}
	}
	return rows, nil
}

/*
LigatureArray table

	uint16    ligatureCount  Number of LigatureAttach table offsets
	Offset16  ligatureAttachOffsets[ligatureCount]  Array of offsets to LigatureAttach tables. Offsets are from beginning of LigatureArray table, ordered by ligatureCoverage index.
*/
func parseLigatureArray(r *reader, pos int, classCount int) ([][][]*Anchor, error) {
	defer r.jump(pos)()
	offs, err := r.countedU16s()
	if err != nil {
		return nil, err
	}
	ligs := make([][][]*Anchor, len(offs))
	for i, off := range offs {
		if off == 0 {
			continue
		}
		if ligs[i], err = parseAnchorMatrix(r, pos+int(off), classCount); err != nil {
			return nil, err
		}
	}
	return ligs, nil
}

/*
SequenceLookupRecord

	uint16  sequenceIndex    Index (zero-based) into the input glyph sequence
	uint16  lookupListIndex  Index (zero-based) into the LookupList
*/
func parseSequenceLookupRecords(r *reader, n int) ([]SequenceLookupRecord, error) {
	v, err := r.u16s(2 * n)
	if err != nil {
		return nil, err
	}
	recs := make([]SequenceLookupRecord, n)
	for i := range recs {
		recs[i] = SequenceLookupRecord{SequenceIndex: v[2*i], LookupListIndex: v[2*i+1]}
	}
	return recs, nil
}
