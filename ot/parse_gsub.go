package ot

/*
Single Substitution Format 1

	uint16    substFormat     Format identifier: format = 1
	Offset16  coverageOffset  Offset to Coverage table, from beginning of substitution subtable
	int16     deltaGlyphID    Add to original glyph ID to get substitute glyph ID

Single Substitution Format 2

	uint16    substFormat     Format identifier: format = 2
	Offset16  coverageOffset  Offset to Coverage table, from beginning of substitution subtable
	uint16    glyphCount      Number of glyph IDs in the substituteGlyphIDs array
	uint16    substituteGlyphIDs[glyphCount]  Array of substitute glyph IDs, ordered by Coverage index
*/
func parseSingleSubst(r *reader, pos int) (Subtable, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(2)
	if err != nil {
		return nil, err
	}
	if hdr[0] != 1 && hdr[0] != 2 {
		return unsupported(r, GSubLookupTypeSingle, hdr[0], pos)
	}
	cov, err := parseCoverage(r, pos+int(hdr[1]))
	if err != nil {
		return nil, err
	}
	if hdr[0] == 1 {
		delta, err := r.i16()
		if err != nil {
			return nil, err
		}
		return &SingleSubstFmt1{Cov: cov, Delta: delta}, nil
	}
	glyphs, err := r.countedGlyphs()
	if err != nil {
		return nil, err
	}
	return &SingleSubstFmt2{Cov: cov, Substitutes: glyphs}, nil
}

// parseGlyphSequences loads a list of offsets to glyph sequences (Sequence tables
// or AlternateSet tables), each a counted list of glyph IDs, relative to pos.
func parseGlyphSequences(r *reader, pos int) ([][]GlyphIndex, error) {
	offs, err := r.countedU16s()
	if err != nil {
		return nil, err
	}
	seqs := make([][]GlyphIndex, len(offs))
	for i, off := range offs {
		if off == 0 {
			continue
		}
		restore := r.jump(pos + int(off))
		seqs[i], err = r.countedGlyphs()
		restore()
		if err != nil {
			return nil, err
		}
	}
	return seqs, nil
}

/*
Multiple Substitution Format 1

	uint16    substFormat     Format identifier: format = 1
	Offset16  coverageOffset  Offset to Coverage table, from beginning of substitution subtable
	uint16    sequenceCount   Number of Sequence table offsets in the sequenceOffsets array
	Offset16  sequenceOffsets[sequenceCount]  Array of offsets to Sequence tables. Offsets are from beginning of substitution subtable, ordered by Coverage index

	Sequence table: uint16 glyphCount, uint16 substituteGlyphIDs[glyphCount]
*/
func parseMultipleSubst(r *reader, pos int) (Subtable, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(2)
	if err != nil {
		return nil, err
	}
	if hdr[0] != 1 {
		return unsupported(r, GSubLookupTypeMultiple, hdr[0], pos)
	}
	cov, err := parseCoverage(r, pos+int(hdr[1]))
	if err != nil {
		return nil, err
	}
	seqs, err := parseGlyphSequences(r, pos)
	if err != nil {
		return nil, err
	}
	return &MultipleSubstFmt1{Cov: cov, Sequences: seqs}, nil
}

/*
Alternate Substitution Format 1

	uint16    substFormat        Format identifier: format = 1
	Offset16  coverageOffset     Offset to Coverage table, from beginning of substitution subtable
	uint16    alternateSetCount  Number of AlternateSet tables
	Offset16  alternateSetOffsets[alternateSetCount]  Array of offsets to AlternateSet tables. Offsets are from beginning of substitution subtable, ordered by Coverage index

	AlternateSet table: uint16 glyphCount, uint16 alternateGlyphIDs[glyphCount]
*/
func parseAlternateSubst(r *reader, pos int) (Subtable, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(2)
	if err != nil {
		return nil, err
	}
	if hdr[0] != 1 {
		return unsupported(r, GSubLookupTypeAlternate, hdr[0], pos)
	}
	cov, err := parseCoverage(r, pos+int(hdr[1]))
	if err != nil {
		return nil, err
	}
	alts, err := parseGlyphSequences(r, pos)
	if err != nil {
		return nil, err
	}
	return &AlternateSubstFmt1{Cov: cov, Alternates: alts}, nil
}

/*
Ligature Substitution Format 1

	uint16    substFormat       Format identifier: format = 1
	Offset16  coverageOffset    Offset to Coverage table, from beginning of substitution subtable
	uint16    ligatureSetCount  Number of LigatureSet tables
	Offset16  ligatureSetOffsets[ligatureSetCount]  Array of offsets to LigatureSet tables. Offsets are from beginning of substitution subtable, ordered by Coverage index

LigatureSet table: All ligatures beginning with the same glyph

	uint16    ligatureCount    Number of Ligature tables
	Offset16  ligatureOffsets[LigatureCount]  Array of offsets to Ligature tables. Offsets are from beginning of LigatureSet table, ordered by preference.

Ligature table: Glyph components for one ligature

	uint16  ligatureGlyph   glyph ID of ligature to substitute
	uint16  componentCount  Number of components in the ligature
	uint16  componentGlyphIDs[componentCount - 1]  Array of component glyph IDs, start with the second component, ordered in writing direction
*/
func parseLigatureSubst(r *reader, pos int) (Subtable, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(2)
	if err != nil {
		return nil, err
	}
	if hdr[0] != 1 {
		return unsupported(r, GSubLookupTypeLigature, hdr[0], pos)
	}
	cov, err := parseCoverage(r, pos+int(hdr[1]))
	if err != nil {
		return nil, err
	}
	setOffs, err := r.countedU16s()
	if err != nil {
		return nil, err
	}
	sets := make([][]Ligature, len(setOffs))
	for i, off := range setOffs {
		if off == 0 {
			continue
		}
		if sets[i], err = parseLigatureSet(r, pos+int(off)); err != nil {
			return nil, err
		}
	}
	return &LigatureSubstFmt1{Cov: cov, LigatureSets: sets}, nil
}

func parseLigatureSet(r *reader, pos int) ([]Ligature, error) {
	defer r.jump(pos)()
	offs, err := r.countedU16s()
	if err != nil {
		return nil, err
	}
	ligs := make([]Ligature, 0, len(offs))
	for _, off := range offs {
		if off == 0 {
			continue
		}
		restore := r.jump(pos + int(off))
		hdr, err := r.u16s(2)
		if err != nil {
			restore()
			return nil, err
		}
		var comps []GlyphIndex
		if hdr[1] > 0 {
			comps, err = r.glyphs(int(hdr[1]) - 1)
		}
		restore()
		if err != nil {
			return nil, err
		}
		ligs = append(ligs, Ligature{Glyph: GlyphIndex(hdr[0]), Components: comps})
	}
	return ligs, nil
}

/*
Reverse Chaining Contextual Single Substitution Format 1

	uint16    substFormat          Format identifier: format = 1
	Offset16  coverageOffset       Offset to Coverage table, from beginning of substitution subtable.
	uint16    backtrackGlyphCount  Number of glyphs in the backtrack sequence.
	Offset16  backtrackCoverageOffsets[backtrackGlyphCount]  Array of offsets to coverage tables in backtrack sequence, in glyph sequence order.
	uint16    lookaheadGlyphCount  Number of glyphs in lookahead sequence.
	Offset16  lookaheadCoverageOffsets[lookaheadGlyphCount]  Array of offsets to coverage tables in lookahead sequence, in glyph sequence order.
	uint16    glyphCount           Number of glyph IDs in the substituteGlyphIDs array.
	uint16    substituteGlyphIDs[glyphCount]  Array of substitute glyph IDs, ordered by Coverage index.
*/
func parseReverseChainSingleSubst(r *reader, pos int) (Subtable, error) {
	defer r.jump(pos)()
	hdr, err := r.u16s(2)
	if err != nil {
		return nil, err
	}
	if hdr[0] != 1 {
		return unsupported(r, GSubLookupTypeReverseChaining, hdr[0], pos)
	}
	st := &ReverseChainSingleSubstFmt1{}
	if st.Cov, err = parseCoverage(r, pos+int(hdr[1])); err != nil {
		return nil, err
	}
	offs, err := r.countedU16s()
	if err != nil {
		return nil, err
	}
	if st.Backtrack, err = parseCoverages(r, pos, offs); err != nil {
		return nil, err
	}
	if offs, err = r.countedU16s(); err != nil {
		return nil, err
	}
	if st.Lookahead, err = parseCoverages(r, pos, offs); err != nil {
		return nil, err
	}
	if st.Substitutes, err = r.countedGlyphs(); err != nil {
		return nil, err
	}
	return st, nil
}
