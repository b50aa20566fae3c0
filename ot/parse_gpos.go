package ot

/*
Single Adjustment Positioning Format 1: Single Positioning Value

	uint16       posFormat       Format identifier: format = 1
	Offset16     coverageOffset  Offset to Coverage table, from beginning of SinglePos subtable.
	uint16       valueFormat     Defines the types of data in the ValueRecord.
	ValueRecord  valueRecord     Defines positioning value(s), applied to all glyphs in the Coverage table.

Single Adjustment Positioning Format 2: Array of Positioning Values

	uint16       posFormat       Format identifier: format = 2
	Offset16     coverageOffset  Offset to Coverage table, from beginning of SinglePos subtable.
	uint16       valueFormat     Defines the types of data in the ValueRecords.
	uint16       valueCount      Number of ValueRecords, must equal glyphCount in the Coverage table.
	ValueRecord  valueRecords[valueCount]  Array of ValueRecords, positioning values applied to glyphs.
*/
func parseSinglePos(r *reader, pos int) (Subtable, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(3)
	if err != nil {
		return nil, err
	}
	if hdr[0] != 1 && hdr[0] != 2 {
		return unsupported(r, GPosLookupTypeSingle, hdr[0], pos)
	}
	cov, err := parseCoverage(r, pos+int(hdr[1]))
	if err != nil {
		return nil, err
	}
	vf := ValueFormat(hdr[2])
	if hdr[0] == 1 {
		v, err := parseValueRecord(r, vf, pos)
		if err != nil {
			return nil, err
		}
		return &SinglePosFmt1{Cov: cov, ValueFormat: vf, Value: v}, nil
	}
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	st := &SinglePosFmt2{Cov: cov, ValueFormat: vf, Values: make([]ValueRecord, n)}
	for i := range st.Values {
		if st.Values[i], err = parseValueRecord(r, vf, pos); err != nil {
			return nil, err
		}
	}
	return st, nil
}

/*
Pair Adjustment Positioning Format 1: Adjustments for Glyph Pairs

	uint16    posFormat       Format identifier: format = 1
	Offset16  coverageOffset  Offset to Coverage table, from beginning of PairPos subtable.
	uint16    valueFormat1    Defines the types of data in valueRecord1, for the first glyph in the pair (may be zero).
	uint16    valueFormat2    Defines the types of data in valueRecord2, for the second glyph in the pair (may be zero).
	uint16    pairSetCount    Number of PairSet tables
	Offset16  pairSetOffsets[pairSetCount]  Array of offsets to PairSet tables. Offsets are from beginning of PairPos subtable, ordered by Coverage Index.

PairSet table

	uint16           pairValueCount  Number of PairValueRecords
	PairValueRecord  pairValueRecords[pairValueCount]  Array of PairValueRecords, ordered by glyph ID of the second glyph.

Pair Adjustment Positioning Format 2: Class Pair Adjustment

	uint16    posFormat        Format identifier: format = 2
	Offset16  coverageOffset   Offset to Coverage table, from beginning of PairPos subtable.
	uint16    valueFormat1     ValueRecord definition, for the first glyph of the pair (may be zero).
	uint16    valueFormat2     ValueRecord definition, for the second glyph of the pair (may be zero).
	Offset16  classDef1Offset  Offset to ClassDef table, from beginning of PairPos subtable, for the first glyph of the pair.
	Offset16  classDef2Offset  Offset to ClassDef table, from beginning of PairPos subtable, for the second glyph of the pair.
	uint16    class1Count      Number of classes in classDef1 table, includes Class 0.
	uint16    class2Count      Number of classes in classDef2 table, includes Class 0.
	Class1Record  class1Records[class1Count]  Array of Class1 records, ordered by classes in classDef1.
*/
func parsePairPos(r *reader, pos int) (Subtable, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(4)
	if err != nil {
		return nil, err
	}
	if hdr[0] != 1 && hdr[0] != 2 {
		return unsupported(r, GPosLookupTypePair, hdr[0], pos)
	}
	cov, err := parseCoverage(r, pos+int(hdr[1]))
	if err != nil {
		return nil, err
	}
	vf1, vf2 := ValueFormat(hdr[2]), ValueFormat(hdr[3])
	if hdr[0] == 1 {
		offs, err := r.countedU16s()
		if err != nil {
			return nil, err
		}
		st := &PairPosFmt1{Cov: cov, ValueFormat1: vf1, ValueFormat2: vf2, PairSets: make([][]PairValueRecord, len(offs))}
		for i, off := range offs {
			if off == 0 {
				continue
			}
			if st.PairSets[i], err = parsePairSet(r, pos+int(off), vf1, vf2); err != nil {
				return nil, err
			}
		}
		return st, nil
	}
	cls, err := r.u16s(4)
	if err != nil {
		return nil, err
	}
	st := &PairPosFmt2{Cov: cov, ValueFormat1: vf1, ValueFormat2: vf2, Class1Count: cls[2], Class2Count: cls[3]}
	if st.ClassDef1, err = parseOptClassDef(r, pos, cls[0]); err != nil {
		return nil, err
	}
	if st.ClassDef2, err = parseOptClassDef(r, pos, cls[1]); err != nil {
		return nil, err
	}
	n := int(st.Class1Count) * int(st.Class2Count)
	size := vf1.Size() + vf2.Size()
	if size == 0 {
		// every class pair matches with zero adjustments
		return st, nil
	}
	if n*size > len(r.data)-r.tell() {
		return nil, r.errorf("PairPos", pos, "%d×%d class records exceed subtable", st.Class1Count, st.Class2Count)
	}
	st.Records = make([]PairValues, n)
	for i := range st.Records {
		if st.Records[i].Value1, err = parseValueRecord(r, vf1, pos); err != nil {
			return nil, err
		}
		if st.Records[i].Value2, err = parseValueRecord(r, vf2, pos); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func parsePairSet(r *reader, pos int, vf1, vf2 ValueFormat) ([]PairValueRecord, error) {
	defer r.jump(pos)()
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	set := make([]PairValueRecord, n)
	for i := range set {
		g, err := r.u16()
		if err != nil {
			return nil, err
		}
		set[i].SecondGlyph = GlyphIndex(g)
		if set[i].Value1, err = parseValueRecord(r, vf1, pos); err != nil {
			return nil, err
		}
		if set[i].Value2, err = parseValueRecord(r, vf2, pos); err != nil {
			return nil, err
		}
	}
	return set, nil
}

/*
Cursive Attachment Positioning Format1: Cursive attachment

	uint16          posFormat       Format identifier: format = 1
	Offset16        coverageOffset  Offset to Coverage table, from beginning of CursivePos subtable.
	uint16          entryExitCount  Number of EntryExit records
	EntryExitRecord entryExitRecord[entryExitCount]  Array of EntryExit records, in Coverage index order.

	EntryExitRecord: Offset16 entryAnchorOffset, Offset16 exitAnchorOffset (from beginning of CursivePos subtable, may be NULL)
*/
func parseCursivePos(r *reader, pos int) (Subtable, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(2)
	if err != nil {
		return nil, err
	}
	if hdr[0] != 1 {
		return unsupported(r, GPosLookupTypeCursive, hdr[0], pos)
	}
	st := &CursivePosFmt1{}
	if st.Cov, err = parseCoverage(r, pos+int(hdr[1])); err != nil {
		return nil, err
	}
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	offs, err := r.u16s(2 * int(n))
	if err != nil {
		return nil, err
	}
	st.Records = make([]EntryExit, n)
	for i := range st.Records {
		if st.Records[i].Entry, err = parseOptAnchor(r, pos, offs[2*i]); err != nil {
			return nil, err
		}
		if st.Records[i].Exit, err = parseOptAnchor(r, pos, offs[2*i+1]); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// markAttachHeader is the common header of GPOS types 4, 5 and 6.
type markAttachHeader struct {
	cov1, cov2 Coverage
	classCount uint16
	marks      []MarkRecord
	arrayPos   int // absolute position of the base/ligature/mark2 array
}

/*
MarkBasePos, MarkLigPos and MarkMarkPos Format 1 share a header layout

	uint16    posFormat         Format identifier: format = 1
	Offset16  markCoverageOffset  Offset to mark (or mark1) Coverage table, from beginning of the subtable.
	Offset16  baseCoverageOffset  Offset to base (ligature, mark2) Coverage table, from beginning of the subtable.
	uint16    markClassCount    Number of classes defined for marks
	Offset16  markArrayOffset   Offset to MarkArray (Mark1Array) table, from beginning of the subtable.
	Offset16  baseArrayOffset   Offset to BaseArray (LigatureArray, Mark2Array) table, from beginning of the subtable.
*/
func parseMarkAttachHeader(r *reader, lt LookupType, pos int) (*markAttachHeader, Subtable, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(6)
	if err != nil {
		return nil, nil, err
	}
	if hdr[0] != 1 {
		st, err := unsupported(r, lt, hdr[0], pos)
		return nil, st, err
	}
	h := &markAttachHeader{classCount: hdr[3], arrayPos: pos + int(hdr[5])}
	if h.cov1, err = parseCoverage(r, pos+int(hdr[1])); err != nil {
		return nil, nil, err
	}
	if h.cov2, err = parseCoverage(r, pos+int(hdr[2])); err != nil {
		return nil, nil, err
	}
	if h.marks, err = parseMarkArray(r, pos+int(hdr[4])); err != nil {
		return nil, nil, err
	}
	for i, m := range h.marks {
		if m.Class >= h.classCount {
			r.warn.add(pos, "mark record %d has class %d >= class count %d", i, m.Class, h.classCount)
		}
	}
	return h, nil, nil
}

func parseMarkBasePos(r *reader, pos int) (Subtable, error) {
	h, st, err := parseMarkAttachHeader(r, GPosLookupTypeMarkToBase, pos)
	if h == nil {
		return st, err
	}
	bases, err := parseAnchorMatrix(r, h.arrayPos, int(h.classCount))
	if err != nil {
		return nil, err
	}
	return &MarkBasePosFmt1{MarkCov: h.cov1, BaseCov: h.cov2, ClassCount: h.classCount,
		Marks: h.marks, Bases: bases}, nil
}

func parseMarkLigPos(r *reader, pos int) (Subtable, error) {
	h, st, err := parseMarkAttachHeader(r, GPosLookupTypeMarkToLigature, pos)
	if h == nil {
		return st, err
	}
	ligs, err := parseLigatureArray(r, h.arrayPos, int(h.classCount))
	if err != nil {
		return nil, err
	}
	return &MarkLigPosFmt1{MarkCov: h.cov1, LigCov: h.cov2, ClassCount: h.classCount,
		Marks: h.marks, Ligatures: ligs}, nil
}

func parseMarkMarkPos(r *reader, pos int) (Subtable, error) {
	h, st, err := parseMarkAttachHeader(r, GPosLookupTypeMarkToMark, pos)
	if h == nil {
		return st, err
	}
	mark2s, err := parseAnchorMatrix(r, h.arrayPos, int(h.classCount))
	if err != nil {
		return nil, err
	}
	return &MarkMarkPosFmt1{Mark1Cov: h.cov1, Mark2Cov: h.cov2, ClassCount: h.classCount,
		Marks: h.marks, Mark2s: mark2s}, nil
}
