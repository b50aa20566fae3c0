package otlayout

import (
	"slices"

	"github.com/npillmayer/typeshape/ot"
)

// matchFn checks glyph gd against item k of a sequence.
type matchFn func(k int, gd *GlyphShapingData) bool

// matchInput matches an input sequence of n glyphs, the first of which is at
// pos and has already been matched by the caller. Skipped glyphs are not
// counted. It returns the buffer positions of all n input glyphs.
func (ctx *applyCtx) matchInput(pos, n int, match matchFn) ([]int, bool) {
	if n > MaxContextLength {
		return nil, false
	}
	positions := make([]int, n)
	positions[0] = pos
	cur := pos + 1
	for k := 1; k < n; k++ {
		mpos, ok := ctx.nextMatchable(cur)
		if !ok || !match(k-1, &ctx.buf.Glyphs[mpos]) {
			return nil, false
		}
		positions[k] = mpos
		cur = mpos + 1
	}
	return positions, true
}

// matchBacktrack matches n glyphs before pos, closest glyph first.
func (ctx *applyCtx) matchBacktrack(pos, n int, match matchFn) bool {
	if n > MaxContextLength {
		return false
	}
	cur := pos - 1
	for k := 0; k < n; k++ {
		mpos, ok := ctx.prevMatchable(cur)
		if !ok || !match(k, &ctx.buf.Glyphs[mpos]) {
			return false
		}
		cur = mpos - 1
	}
	return true
}

// matchLookahead matches n glyphs after pos, which is the last input glyph.
func (ctx *applyCtx) matchLookahead(pos, n int, match matchFn) bool {
	if n > MaxContextLength {
		return false
	}
	cur := pos + 1
	for k := 0; k < n; k++ {
		mpos, ok := ctx.nextMatchable(cur)
		if !ok || !match(k, &ctx.buf.Glyphs[mpos]) {
			return false
		}
		cur = mpos + 1
	}
	return true
}

func matchGlyphs(glyphs []ot.GlyphIndex) matchFn {
	return func(k int, gd *GlyphShapingData) bool {
		return gd.GlyphID == glyphs[k]
	}
}

func matchClasses(cd ot.ClassDef, classes []uint16) matchFn {
	return func(k int, gd *GlyphShapingData) bool {
		return cd.Class(gd.GlyphID) == classes[k]
	}
}

func matchCoverages(covs []ot.Coverage) matchFn {
	return func(k int, gd *GlyphShapingData) bool {
		return covs[k].Contains(gd.GlyphID)
	}
}

// --- Sequence lookup records -----------------------------------------------

// applyRecords applies the nested lookups of a matched contextual rule. Each
// record applies its lookup once, at the buffer position of the input glyph it
// references. Positions of later input glyphs follow changes of the buffer
// length. It returns the position after the (possibly changed) input sequence.
func (ctx *applyCtx) applyRecords(positions []int, records []ot.SequenceLookupRecord) (int, bool) {
	end := positions[len(positions)-1] + 1
	if ctx.depth >= MaxNesting {
		tracer().Infof("maximum lookup nesting reached, ignoring %d nested lookups", len(records))
		return end, true
	}
	positions = slices.Clone(positions)
	for _, rec := range records {
		k := int(rec.SequenceIndex)
		if k >= len(positions) {
			continue
		}
		p := positions[k]
		if p >= ctx.buf.Len() {
			continue
		}
		lookup := ctx.table.Lookup(int(rec.LookupListIndex))
		if lookup == nil {
			continue
		}
		tracer().Debugf("nested lookup #%d at input %d (position %d)", rec.LookupListIndex, k, p)
		n := ctx.buf.Len()
		if _, ok := ctx.nested(lookup).applyAt(p); !ok {
			continue
		}
		delta := ctx.buf.Len() - n
		if delta == 0 {
			continue
		}
		for j := k + 1; j < len(positions); j++ {
			positions[j] = max(positions[j]+delta, p)
		}
		end = max(end+delta, p)
	}
	return min(end, ctx.buf.Len()), true
}

// --- Contextual subtables (GSUB 5/6, GPOS 7/8) -----------------------------

// Sequence context format 1: rule sets are selected by the coverage index of
// the first glyph, rules match glyph IDs.
func applySequenceContextFmt1(ctx *applyCtx, st *ot.SequenceContextFmt1, pos int) (int, bool) {
	inx, ok := st.Cov.Match(ctx.glyph(pos))
	if !ok || inx >= len(st.RuleSets) {
		return pos, false
	}
	for _, rule := range st.RuleSets[inx] {
		positions, ok := ctx.matchInput(pos, len(rule.Input)+1, matchGlyphs(rule.Input))
		if ok {
			return ctx.applyRecords(positions, rule.Records)
		}
	}
	return pos, false
}

// Sequence context format 2: rule sets are selected by the class of the first
// glyph, rules match glyph classes.
func applySequenceContextFmt2(ctx *applyCtx, st *ot.SequenceContextFmt2, pos int) (int, bool) {
	g := ctx.glyph(pos)
	if !st.Cov.Contains(g) {
		return pos, false
	}
	class := int(st.ClassDef.Class(g))
	if class >= len(st.RuleSets) {
		return pos, false
	}
	for _, rule := range st.RuleSets[class] {
		positions, ok := ctx.matchInput(pos, len(rule.Input)+1, matchClasses(st.ClassDef, rule.Input))
		if ok {
			return ctx.applyRecords(positions, rule.Records)
		}
	}
	return pos, false
}

// Sequence context format 3: a single rule matching a sequence of coverages.
func applySequenceContextFmt3(ctx *applyCtx, st *ot.SequenceContextFmt3, pos int) (int, bool) {
	if len(st.InputCoverages) == 0 || !st.InputCoverages[0].Contains(ctx.glyph(pos)) {
		return pos, false
	}
	positions, ok := ctx.matchInput(pos, len(st.InputCoverages), matchCoverages(st.InputCoverages[1:]))
	if !ok {
		return pos, false
	}
	return ctx.applyRecords(positions, st.Records)
}

// Chained sequence context format 1: like format 1, with backtrack and
// lookahead glyph sequences.
func applyChainedSequenceContextFmt1(ctx *applyCtx, st *ot.ChainedSequenceContextFmt1, pos int) (int, bool) {
	inx, ok := st.Cov.Match(ctx.glyph(pos))
	if !ok || inx >= len(st.RuleSets) {
		return pos, false
	}
	for _, rule := range st.RuleSets[inx] {
		positions, ok := ctx.matchInput(pos, len(rule.Input)+1, matchGlyphs(rule.Input))
		if !ok {
			continue
		}
		if !ctx.matchBacktrack(pos, len(rule.Backtrack), matchGlyphs(rule.Backtrack)) {
			continue
		}
		last := positions[len(positions)-1]
		if !ctx.matchLookahead(last, len(rule.Lookahead), matchGlyphs(rule.Lookahead)) {
			continue
		}
		return ctx.applyRecords(positions, rule.Records)
	}
	return pos, false
}

// Chained sequence context format 2: backtrack, input and lookahead sequences
// are matched by class, each with its own class definition.
func applyChainedSequenceContextFmt2(ctx *applyCtx, st *ot.ChainedSequenceContextFmt2, pos int) (int, bool) {
	g := ctx.glyph(pos)
	if !st.Cov.Contains(g) {
		return pos, false
	}
	class := int(st.InputClassDef.Class(g))
	if class >= len(st.RuleSets) {
		return pos, false
	}
	for _, rule := range st.RuleSets[class] {
		positions, ok := ctx.matchInput(pos, len(rule.Input)+1, matchClasses(st.InputClassDef, rule.Input))
		if !ok {
			continue
		}
		if !ctx.matchBacktrack(pos, len(rule.Backtrack), matchClasses(st.BacktrackClassDef, rule.Backtrack)) {
			continue
		}
		last := positions[len(positions)-1]
		if !ctx.matchLookahead(last, len(rule.Lookahead), matchClasses(st.LookaheadClassDef, rule.Lookahead)) {
			continue
		}
		return ctx.applyRecords(positions, rule.Records)
	}
	return pos, false
}

// Chained sequence context format 3: backtrack, input and lookahead sequences
// of coverages.
func applyChainedSequenceContextFmt3(ctx *applyCtx, st *ot.ChainedSequenceContextFmt3, pos int) (int, bool) {
	if len(st.InputCoverages) == 0 || !st.InputCoverages[0].Contains(ctx.glyph(pos)) {
		return pos, false
	}
	positions, ok := ctx.matchInput(pos, len(st.InputCoverages), matchCoverages(st.InputCoverages[1:]))
	if !ok {
		return pos, false
	}
	if !ctx.matchBacktrack(pos, len(st.BacktrackCoverages), matchCoverages(st.BacktrackCoverages)) {
		return pos, false
	}
	last := positions[len(positions)-1]
	if !ctx.matchLookahead(last, len(st.LookaheadCoverages), matchCoverages(st.LookaheadCoverages)) {
		return pos, false
	}
	return ctx.applyRecords(positions, st.Records)
}
