package otlayout

import "github.com/npillmayer/typeshape/ot"

// GSUB LookupType 1: Single Substitution Subtable
//
// Single substitution (SingleSubst) subtables tell a client to replace a single glyph
// with another glyph. The subtables can be either of two formats. Both formats require
// two distinct sets of glyph indices: one that defines input glyphs (specified in the
// Coverage table), and one that defines the output glyphs.

// GSUB LookupSubtable Type 1 Format 1 calculates the indices of the output glyphs, which
// are not explicitly defined in the subtable. To calculate an output glyph index,
// Format 1 adds a constant delta value to the input glyph index. Addition of
// deltaGlyphID is modulo 65536.
func gsubLookupType1Fmt1(ctx *applyCtx, st *ot.SingleSubstFmt1, pos int) (int, bool) {
	g := ctx.glyph(pos)
	if !st.Cov.Contains(g) {
		return pos, false
	}
	subst := ot.GlyphIndex(uint16(int(g) + int(st.Delta)))
	tracer().Debugf("GSUB 1/1: subst %d for %d", subst, g)
	ctx.buf.ReplaceGlyph(pos, subst)
	return pos + 1, true
}

// GSUB LookupSubtable Type 1 Format 2 provides an array of output glyph indices
// (substituteGlyphIDs) explicitly matched to the input glyph indices specified in the
// Coverage table.
func gsubLookupType1Fmt2(ctx *applyCtx, st *ot.SingleSubstFmt2, pos int) (int, bool) {
	g := ctx.glyph(pos)
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.Substitutes) {
		return pos, false
	}
	tracer().Debugf("GSUB 1/2: subst %d for %d", st.Substitutes[inx], g)
	ctx.buf.ReplaceGlyph(pos, st.Substitutes[inx])
	return pos + 1, true
}

// LookupType 2: Multiple Substitution Subtable
//
// A Multiple Substitution (MultipleSubst) subtable replaces a single glyph with more
// than one glyph, as when multiple glyphs replace a single ligature.
//
// An empty sequence deletes the glyph. Glyphs of the output sequence not
// belonging to a ligature are numbered as components, which lets mark
// attachment find the first glyph of the sequence.
func gsubLookupType2Fmt1(ctx *applyCtx, st *ot.MultipleSubstFmt1, pos int) (int, bool) {
	g := ctx.glyph(pos)
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.Sequences) {
		return pos, false
	}
	seq := st.Sequences[inx]
	if ctx.buf.Len()+len(seq)-1 > ctx.budget.maxLen {
		tracer().Infof("GSUB 2/1: maximum buffer length reached")
		return pos, false
	}
	tracer().Debugf("GSUB 2/1: subst %v for %d", seq, g)
	ligID := ctx.buf.Glyphs[pos].LigatureID
	wasLigature := ctx.buf.GlyphClass(pos, ctx.gdef) == ot.LigatureGlyph
	ctx.buf.ReplaceWithSequence(pos, seq)
	for k := range seq {
		gd := &ctx.buf.Glyphs[pos+k]
		gd.Multiplied = true
		if ligID == 0 {
			gd.LigatureComponent = k
		}
		if wasLigature {
			gd.Class = ot.BaseGlyph
		}
	}
	return pos + len(seq), true
}

// LookupType 3: Alternate Substitution Subtable
//
// An Alternate Substitution (AlternateSubst) subtable identifies any number of aesthetic
// alternatives from which a user can choose a glyph variant to replace the input glyph.
//
// The alternate is selected by ApplyOptions.Alternate, defaulting to the first one.
func gsubLookupType3Fmt1(ctx *applyCtx, st *ot.AlternateSubstFmt1, pos int) (int, bool) {
	g := ctx.glyph(pos)
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.Alternates) || len(st.Alternates[inx]) == 0 {
		return pos, false
	}
	alts := st.Alternates[inx]
	alt := alts[min(max(ctx.layout.Options.Alternate, 0), len(alts)-1)]
	tracer().Debugf("GSUB 3/1: subst alternate %d for %d", alt, g)
	ctx.buf.ReplaceGlyph(pos, alt)
	return pos + 1, true
}

// LookupType 4: Ligature Substitution Subtable
//
// A Ligature Substitution (LigatureSubst) subtable identifies ligature substitutions where
// a single glyph replaces multiple glyphs. One LigatureSubst subtable can specify any
// number of ligature substitutions. Ligatures within a set are tried in order,
// the first matching one wins.
func gsubLookupType4Fmt1(ctx *applyCtx, st *ot.LigatureSubstFmt1, pos int) (int, bool) {
	g := ctx.glyph(pos)
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.LigatureSets) {
		return pos, false
	}
	for _, lig := range st.LigatureSets[inx] {
		positions, ok := ctx.matchInput(pos, len(lig.Components)+1, matchGlyphs(lig.Components))
		if !ok {
			continue
		}
		tracer().Debugf("GSUB 4/1: ligature %d for %v", lig.Glyph, positions)
		return ctx.ligate(positions, lig.Glyph), true
	}
	return pos, false
}

// LookupType 8: Reverse Chaining Contextual Single Substitution Subtable
//
// Reverse Chaining Contextual Single Substitution (ReverseChainSingleSubst) subtable
// describes single-glyph substitutions in context with an ability to look back and/or
// look ahead in the sequence of glyphs. The major difference between this and other
// lookup types is that processing of input glyph sequence goes from end to start.
func gsubLookupType8Fmt1(ctx *applyCtx, st *ot.ReverseChainSingleSubstFmt1, pos int) (int, bool) {
	g := ctx.glyph(pos)
	inx, ok := st.Cov.Match(g)
	if !ok || inx >= len(st.Substitutes) {
		return pos, false
	}
	if !ctx.matchBacktrack(pos, len(st.Backtrack), matchCoverages(st.Backtrack)) {
		return pos, false
	}
	if !ctx.matchLookahead(pos, len(st.Lookahead), matchCoverages(st.Lookahead)) {
		return pos, false
	}
	tracer().Debugf("GSUB 8/1: subst %d for %d", st.Substitutes[inx], g)
	ctx.buf.ReplaceGlyph(pos, st.Substitutes[inx])
	return pos + 1, true
}
