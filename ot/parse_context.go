package ot

// Loaders for sequence context (GSUB 5, GPOS 7) and chained sequence context
// (GSUB 6, GPOS 8) subtables, which share their binary layout.

// parseRuleSets loads rule sets from offsets relative to base. Each rule set is a
// counted list of offsets to rules, relative to the start of the rule set.
// NULL offsets result in empty rule sets.
func parseRuleSets[T any](r *reader, base int, offs []uint16, rule func(*reader) (T, error)) ([][]T, error) {
	sets := make([][]T, len(offs))
	for i, off := range offs {
		if off == 0 {
			continue
		}
		set, err := parseRuleSet(r, base+int(off), rule)
		if err != nil {
			return nil, err
		}
		sets[i] = set
	}
	return sets, nil
}

func parseRuleSet[T any](r *reader, pos int, rule func(*reader) (T, error)) ([]T, error) {
	defer r.jump(pos)()
	offs, err := r.countedU16s()
	if err != nil {
		return nil, err
	}
	rules := make([]T, 0, len(offs))
	for _, off := range offs {
		if off == 0 {
			continue
		}
		restore := r.jump(pos + int(off))
		rl, err := rule(r)
		restore()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rl)
	}
	return rules, nil
}

/*
SequenceRule / ClassSequenceRule table

	uint16  glyphCount      Number of glyphs in the input glyph sequence
	uint16  seqLookupCount  Number of SequenceLookupRecords
	uint16  inputSequence[glyphCount - 1]  Array of input glyph IDs (or classes), starting with the second glyph
	SequenceLookupRecord  seqLookupRecords[seqLookupCount]  Array of Sequence lookup records
*/
func parseSequenceRuleBody(r *reader) ([]uint16, []SequenceLookupRecord, error) {
	hdr, err := r.u16s(2)
	if err != nil {
		return nil, nil, err
	}
	var input []uint16
	if hdr[0] > 0 {
		if input, err = r.u16s(int(hdr[0]) - 1); err != nil {
			return nil, nil, err
		}
	}
	recs, err := parseSequenceLookupRecords(r, int(hdr[1]))
	return input, recs, err
}

func parseSequenceRule(r *reader) (SequenceRule, error) {
	input, recs, err := parseSequenceRuleBody(r)
	if err != nil {
		return SequenceRule{}, err
	}
	return SequenceRule{Input: asGlyphs(input), Records: recs}, nil
}

func parseClassSequenceRule(r *reader) (ClassSequenceRule, error) {
	input, recs, err := parseSequenceRuleBody(r)
	if err != nil {
		return ClassSequenceRule{}, err
	}
	return ClassSequenceRule{Input: input, Records: recs}, nil
}

/*
ChainedSequenceRule / ChainedClassSequenceRule table

	uint16  backtrackGlyphCount  Number of glyphs in the backtrack sequence
	uint16  backtrackSequence[backtrackGlyphCount]  Array of backtrack glyph IDs (or classes)
	uint16  inputGlyphCount      Number of glyphs in the input sequence
	uint16  inputSequence[inputGlyphCount - 1]  Array of input glyph IDs (or classes), start with second glyph
	uint16  lookaheadGlyphCount  Number of glyphs in the lookahead sequence
	uint16  lookaheadSequence[lookaheadGlyphCount]  Array of lookahead glyph IDs (or classes)
	uint16  seqLookupCount       Number of SequenceLookupRecords
	SequenceLookupRecord  seqLookupRecords[seqLookupCount]  Array of SequenceLookupRecords
*/
func parseChainedRuleBody(r *reader) (back, input, ahead []uint16, recs []SequenceLookupRecord, err error) {
	if back, err = r.countedU16s(); err != nil {
		return
	}
	var n uint16
	if n, err = r.u16(); err != nil {
		return
	}
	if n > 0 {
		if input, err = r.u16s(int(n) - 1); err != nil {
			return
		}
	}
	if ahead, err = r.countedU16s(); err != nil {
		return
	}
	if n, err = r.u16(); err != nil {
		return
	}
	recs, err = parseSequenceLookupRecords(r, int(n))
	return
}

func parseChainedSequenceRule(r *reader) (ChainedSequenceRule, error) {
	back, input, ahead, recs, err := parseChainedRuleBody(r)
	if err != nil {
		return ChainedSequenceRule{}, err
	}
	return ChainedSequenceRule{
		Backtrack: asGlyphs(back),
		Input:     asGlyphs(input),
		Lookahead: asGlyphs(ahead),
		Records:   recs,
	}, nil
}

func parseChainedClassSequenceRule(r *reader) (ChainedClassSequenceRule, error) {
	back, input, ahead, recs, err := parseChainedRuleBody(r)
	if err != nil {
		return ChainedClassSequenceRule{}, err
	}
	return ChainedClassSequenceRule{Backtrack: back, Input: input, Lookahead: ahead, Records: recs}, nil
}

func asGlyphs(v []uint16) []GlyphIndex {
	if v == nil {
		return nil
	}
	g := make([]GlyphIndex, len(v))
	for i, x := range v {
		g[i] = GlyphIndex(x)
	}
	return g
}

/*
parseSequenceContext loads a GSUB type 5 or GPOS type 7 subtable.

Sequence Context Format 1: simple glyph contexts

	uint16    format            Format identifier: format = 1
	Offset16  coverageOffset    Offset to Coverage table, from beginning of SequenceContextFormat1 table
	uint16    seqRuleSetCount   Number of SequenceRuleSet tables
	Offset16  seqRuleSetOffsets[seqRuleSetCount]  Array of offsets to SequenceRuleSet tables, from beginning of SequenceContextFormat1 table (offsets may be NULL)

Sequence Context Format 2: class-based glyph contexts

	uint16    format                Format identifier: format = 2
	Offset16  coverageOffset        Offset to Coverage table, from beginning of SequenceContextFormat2 table
	Offset16  classDefOffset        Offset to ClassDef table, from beginning of SequenceContextFormat2 table
	uint16    classSeqRuleSetCount  Number of ClassSequenceRuleSet tables
	Offset16  classSeqRuleSetOffsets[classSeqRuleSetCount]  Array of offsets to ClassSequenceRuleSet tables, from beginning of SequenceContextFormat2 table (may be NULL)

Sequence Context Format 3: coverage-based glyph contexts

	uint16    format          Format identifier: format = 3
	uint16    glyphCount      Number of glyphs in the input sequence
	uint16    seqLookupCount  Number of SequenceLookupRecords
	Offset16  coverageOffsets[glyphCount]  Array of offsets to Coverage tables, from beginning of SequenceContextFormat3 subtable
	SequenceLookupRecord  seqLookupRecords[seqLookupCount]  Array of SequenceLookupRecords
*/
func parseSequenceContext(r *reader, lt LookupType, pos int) (Subtable, error) {
	defer r.jump(pos)()
	format, err := r.u16()
	if err != nil {
		return nil, err
	}
	switch format {
	case 1:
		covOff, err := r.u16()
		if err != nil {
			return nil, err
		}
		st := &SequenceContextFmt1{}
		if st.Cov, err = parseCoverage(r, pos+int(covOff)); err != nil {
			return nil, err
		}
		offs, err := r.countedU16s()
		if err != nil {
			return nil, err
		}
		if st.RuleSets, err = parseRuleSets(r, pos, offs, parseSequenceRule); err != nil {
			return nil, err
		}
		return st, nil
	case 2:
		hdr, err := r.u16s(2)
		if err != nil {
			return nil, err
		}
		st := &SequenceContextFmt2{}
		if st.Cov, err = parseCoverage(r, pos+int(hdr[0])); err != nil {
			return nil, err
		}
		if st.ClassDef, err = parseOptClassDef(r, pos, hdr[1]); err != nil {
			return nil, err
		}
		offs, err := r.countedU16s()
		if err != nil {
			return nil, err
		}
		if st.RuleSets, err = parseRuleSets(r, pos, offs, parseClassSequenceRule); err != nil {
			return nil, err
		}
		return st, nil
	case 3:
		hdr, err := r.u16s(2)
		if err != nil {
			return nil, err
		}
		offs, err := r.u16s(int(hdr[0]))
		if err != nil {
			return nil, err
		}
		st := &SequenceContextFmt3{}
		if st.InputCoverages, err = parseCoverages(r, pos, offs); err != nil {
			return nil, err
		}
		if st.Records, err = parseSequenceLookupRecords(r, int(hdr[1])); err != nil {
			return nil, err
		}
		return st, nil
	}
	return unsupported(r, lt, format, pos)
}

/*
parseChainedSequenceContext loads a GSUB type 6 or GPOS type 8 subtable.

Chained Sequence Context Format 1: simple glyph contexts

	uint16    format                  Format identifier: format = 1
	Offset16  coverageOffset          Offset to Coverage table, from beginning of ChainSequenceContextFormat1 table
	uint16    chainedSeqRuleSetCount  Number of ChainedSequenceRuleSet tables
	Offset16  chainedSeqRuleSetOffsets[chainedSeqRuleSetCount]  Array of offsets to ChainedSeqRuleSet tables, from beginning of ChainedSequenceContextFormat1 table (may be NULL)

Chained Sequence Context Format 2: class-based glyph contexts

	uint16    format                    Format identifier: format = 2
	Offset16  coverageOffset            Offset to Coverage table, from beginning of ChainedSequenceContextFormat2 table
	Offset16  backtrackClassDefOffset   Offset to ClassDef table containing backtrack sequence context, from beginning of ChainedSequenceContextFormat2 table
	Offset16  inputClassDefOffset       Offset to ClassDef table containing input sequence context, from beginning of ChainedSequenceContextFormat2 table
	Offset16  lookaheadClassDefOffset   Offset to ClassDef table containing lookahead sequence context, from beginning of ChainedSequenceContextFormat2 table
	uint16    chainedClassSeqRuleSetCount  Number of ChainedClassSequenceRuleSet tables
	Offset16  chainedClassSeqRuleSetOffsets[chainedClassSeqRuleSetCount]  Array of offsets to ChainedClassSequenceRuleSet tables, from beginning of ChainedSequenceContextFormat2 table (may be NULL)

Chained Sequence Context Format 3: coverage-based glyph contexts

	uint16    format               Format identifier: format = 3
	uint16    backtrackGlyphCount  Number of glyphs in the backtrack sequence
	Offset16  backtrackCoverageOffsets[backtrackGlyphCount]  Array of offsets to coverage tables for the backtrack sequence
	uint16    inputGlyphCount      Number of glyphs in the input sequence
	Offset16  inputCoverageOffsets[inputGlyphCount]  Array of offsets to coverage tables for the input sequence
	uint16    lookaheadGlyphCount  Number of glyphs in the lookahead sequence
	Offset16  lookaheadCoverageOffsets[lookaheadGlyphCount]  Array of offsets to coverage tables for the lookahead sequence
	uint16    seqLookupCount       Number of SequenceLookupRecords
	SequenceLookupRecord  seqLookupRecords[seqLookupCount]  Array of SequenceLookupRecords
*/
func parseChainedSequenceContext(r *reader, lt LookupType, pos int) (Subtable, error) {
	defer r.jump(pos)()
	format, err := r.u16()
	if err != nil {
		return nil, err
	}
	switch format {
	case 1:
		covOff, err := r.u16()
		if err != nil {
			return nil, err
		}
		st := &ChainedSequenceContextFmt1{}
		if st.Cov, err = parseCoverage(r, pos+int(covOff)); err != nil {
			return nil, err
		}
		offs, err := r.countedU16s()
		if err != nil {
			return nil, err
		}
		if st.RuleSets, err = parseRuleSets(r, pos, offs, parseChainedSequenceRule); err != nil {
			return nil, err
		}
		return st, nil
	case 2:
		hdr, err := r.u16s(4)
		if err != nil {
			return nil, err
		}
		st := &ChainedSequenceContextFmt2{}
		if st.Cov, err = parseCoverage(r, pos+int(hdr[0])); err != nil {
			return nil, err
		}
		if st.BacktrackClassDef, err = parseOptClassDef(r, pos, hdr[1]); err != nil {
			return nil, err
		}
		if st.InputClassDef, err = parseOptClassDef(r, pos, hdr[2]); err != nil {
			return nil, err
		}
		if st.LookaheadClassDef, err = parseOptClassDef(r, pos, hdr[3]); err != nil {
			return nil, err
		}
		offs, err := r.countedU16s()
		if err != nil {
			return nil, err
		}
		if st.RuleSets, err = parseRuleSets(r, pos, offs, parseChainedClassSequenceRule); err != nil {
			return nil, err
		}
		return st, nil
	case 3:
		st := &ChainedSequenceContextFmt3{}
		covs := []*[]Coverage{&st.BacktrackCoverages, &st.InputCoverages, &st.LookaheadCoverages}
		for _, c := range covs {
			offs, err := r.countedU16s()
			if err != nil {
				return nil, err
			}
			if *c, err = parseCoverages(r, pos, offs); err != nil {
				return nil, err
			}
		}
		n, err := r.u16()
		if err != nil {
			return nil, err
		}
		if st.Records, err = parseSequenceLookupRecords(r, int(n)); err != nil {
			return nil, err
		}
		return st, nil
	}
	return unsupported(r, lt, format, pos)
}
