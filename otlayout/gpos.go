package otlayout

import (
	"cmp"
	"slices"

	"github.com/npillmayer/typeshape/ot"
)

// GPOS LookupType 1: Single Adjustment Positioning Subtable
//
// A single adjustment positioning subtable (SinglePos) is used to adjust the placement or
// advance of a single glyph, such as a subscript or superscript. In addition, a SinglePos
// subtable is commonly used to implement lookup data for contextual positioning.

// GPOS LookupSubtable Type 1 Format 1 applies the same value record to all
// covered glyphs.
func gposLookupType1Fmt1(ctx *applyCtx, st *ot.SinglePosFmt1, pos int) (int, bool) {
	if !st.Cov.Contains(ctx.glyph(pos)) {
		return pos, false
	}
	ctx.applyValue(pos, st.Value)
	return pos + 1, true
}

// GPOS LookupSubtable Type 1 Format 2 applies one value record per covered glyph.
func gposLookupType1Fmt2(ctx *applyCtx, st *ot.SinglePosFmt2, pos int) (int, bool) {
	inx, ok := st.Cov.Match(ctx.glyph(pos))
	if !ok || inx >= len(st.Values) {
		return pos, false
	}
	ctx.applyValue(pos, st.Values[inx])
	return pos + 1, true
}

// LookupType 2: Pair Adjustment Positioning Subtable
//
// A pair adjustment positioning subtable (PairPos) is used to adjust the placement or
// advances of two glyphs in relation to one another, for instance to specify kerning
// data for pairs of glyphs. The second glyph of a pair is the next glyph not
// skipped by the lookup flags. If the second glyph is not adjusted, it may
// start another pair.

// GPOS LookupSubtable Type 2 Format 1 identifies pairs by glyph IDs.
func gposLookupType2Fmt1(ctx *applyCtx, st *ot.PairPosFmt1, pos int) (int, bool) {
	inx, ok := st.Cov.Match(ctx.glyph(pos))
	if !ok || inx >= len(st.PairSets) {
		return pos, false
	}
	j, ok := ctx.nextMatchable(pos + 1)
	if !ok {
		return pos, false
	}
	set := st.PairSets[inx]
	k, found := slices.BinarySearchFunc(set, ctx.glyph(j), func(rec ot.PairValueRecord, g ot.GlyphIndex) int {
		return cmp.Compare(rec.SecondGlyph, g)
	})
	if !found {
		return pos, false
	}
	tracer().Debugf("GPOS 2/1: adjusting pair (%d,%d)", ctx.glyph(pos), ctx.glyph(j))
	ctx.applyValue(pos, set[k].Value1)
	ctx.applyValue(j, set[k].Value2)
	return pairNext(st.ValueFormat2, j), true
}

// GPOS LookupSubtable Type 2 Format 2 identifies pairs by glyph classes.
func gposLookupType2Fmt2(ctx *applyCtx, st *ot.PairPosFmt2, pos int) (int, bool) {
	g := ctx.glyph(pos)
	if !st.Cov.Contains(g) {
		return pos, false
	}
	j, ok := ctx.nextMatchable(pos + 1)
	if !ok {
		return pos, false
	}
	values, ok := st.Pair(st.ClassDef1.Class(g), st.ClassDef2.Class(ctx.glyph(j)))
	if !ok {
		return pos, false
	}
	tracer().Debugf("GPOS 2/2: adjusting pair (%d,%d)", g, ctx.glyph(j))
	ctx.applyValue(pos, values.Value1)
	ctx.applyValue(j, values.Value2)
	return pairNext(st.ValueFormat2, j), true
}

func pairNext(vf2 ot.ValueFormat, j int) int {
	if vf2 != 0 {
		return j + 1
	}
	return j
}

// LookupType 3: Cursive Attachment Positioning Subtable
//
// Some cursive fonts are designed so that adjacent glyphs join when rendered with their
// default positioning. However, if positioning adjustments are needed to join the glyphs,
// a cursive attachment positioning (CursivePos) subtable can describe how to connect the
// glyphs by aligning two anchor points: the designated exit point of a glyph, and the
// designated entry point of the following glyph.
//
// The lookup applies at the glyph with the entry anchor. Along the main
// direction, the exit glyph's advance ends at the exit anchor and the entry
// glyph starts at its entry anchor. Across the main direction, one glyph of
// the pair is attached to the other: the first glyph (the child) to the
// second for lookups with flag RightToLeft, the other way round otherwise.
func gposLookupType3Fmt1(ctx *applyCtx, st *ot.CursivePosFmt1, pos int) (int, bool) {
	inx, ok := st.Cov.Match(ctx.glyph(pos))
	if !ok || inx >= len(st.Records) || st.Records[inx].Entry == nil {
		return pos, false
	}
	i, ok := ctx.prevMatchable(pos - 1)
	if !ok {
		return pos, false
	}
	prev, ok := st.Cov.Match(ctx.glyph(i))
	if !ok || prev >= len(st.Records) || st.Records[prev].Exit == nil {
		return pos, false
	}
	j := pos
	exitX, exitY := ctx.anchor(st.Records[prev].Exit, ctx.glyph(i))
	entryX, entryY := ctx.anchor(st.Records[inx].Entry, ctx.glyph(j))
	glyphs := ctx.buf.Glyphs
	pi, pj := &glyphs[i].Pos, &glyphs[j].Pos
	switch {
	case ctx.buf.Vertical:
		pi.YAdvance = exitY + pi.YOffset
		d := entryY + pj.YOffset
		pj.YAdvance -= d
		pj.YOffset -= d
	case ctx.buf.IsRTL():
		d := exitX + pi.XOffset
		pi.XAdvance -= d
		pi.XOffset -= d
		pj.XAdvance = entryX + pj.XOffset
	default:
		pi.XAdvance = exitX + pi.XOffset
		d := entryX + pj.XOffset
		pj.XAdvance -= d
		pj.XOffset -= d
	}
	child, parent := i, j
	xOffset, yOffset := entryX-exitX, entryY-exitY
	if ctx.flag&ot.LookupRightToLeft == 0 {
		child, parent = parent, child
		xOffset, yOffset = -xOffset, -yOffset
	}
	reverseCursiveChain(glyphs, child, parent, ctx.buf.Vertical, len(glyphs))
	pc, pp := &glyphs[child].Pos, &glyphs[parent].Pos
	pc.AttachKind = AttachCursive
	pc.AttachChain = parent - child
	if ctx.buf.Vertical {
		pc.XOffset = xOffset
	} else {
		pc.YOffset = yOffset
	}
	if pp.AttachChain == -pc.AttachChain { // parent was attached to child
		pp.AttachChain = 0
		if ctx.buf.Vertical {
			pp.XOffset = 0
		} else {
			pp.YOffset = 0
		}
	}
	tracer().Debugf("GPOS 3/1: cursive attachment %d → %d", child, parent)
	return pos + 1, true
}

// reverseCursiveChain detaches glyph i from its cursive parent, reversing the
// links of its old chain, so that the chain attaches to i.
func reverseCursiveChain(glyphs []GlyphShapingData, i, newParent int, vertical bool, limit int) {
	p := &glyphs[i].Pos
	chain := p.AttachChain
	if chain == 0 || p.AttachKind != AttachCursive || limit == 0 {
		return
	}
	p.AttachChain = 0
	j := i + chain
	if j == newParent || j < 0 || j >= len(glyphs) {
		return
	}
	reverseCursiveChain(glyphs, j, newParent, vertical, limit-1)
	pj := &glyphs[j].Pos
	if vertical {
		pj.XOffset = -p.XOffset
	} else {
		pj.YOffset = -p.YOffset
	}
	pj.AttachChain = -chain
	pj.AttachKind = AttachCursive
}

// LookupType 4: Mark-to-Base Attachment Positioning Subtable
//
// The MarkToBase attachment (MarkBasePos) subtable is used to position combining mark
// glyphs with respect to base glyphs. The base glyph is the closest preceding
// glyph which is not a mark. Of the glyphs of a multiple substitution, only the
// first one serves as a base.
func gposLookupType4Fmt1(ctx *applyCtx, st *ot.MarkBasePosFmt1, pos int) (int, bool) {
	markInx, ok := st.MarkCov.Match(ctx.glyph(pos))
	if !ok || markInx >= len(st.Marks) {
		return pos, false
	}
	j := pos - 1
	for {
		j, ok = ctx.prevWithFlag(j, ot.LookupIgnoreMarks)
		if !ok {
			return pos, false
		}
		if !ctx.isFollowingComponent(j) {
			break
		}
		j--
	}
	baseInx, ok := st.BaseCov.Match(ctx.glyph(j))
	if !ok || baseInx >= len(st.Bases) {
		return pos, false
	}
	return ctx.attachMark(pos, st.Marks[markInx], st.Bases[baseInx], j)
}

// isFollowingComponent reports whether the glyph at position j is part of the
// output of a multiple substitution, but not its first glyph.
func (ctx *applyCtx) isFollowingComponent(j int) bool {
	gd := &ctx.buf.Glyphs[j]
	if !gd.Multiplied || gd.LigatureComponent == 0 || j == 0 {
		return false
	}
	prev := &ctx.buf.Glyphs[j-1]
	return !ctx.buf.IsMark(j-1, ctx.gdef) && prev.Multiplied && prev.LigatureID == gd.LigatureID &&
		prev.LigatureComponent+1 == gd.LigatureComponent
}

// LookupType 5: Mark-to-Ligature Attachment Positioning Subtable
//
// The MarkToLigature attachment (MarkLigPos) subtable is used to position combining mark
// glyphs with respect to ligature base glyphs. A mark carrying the ligature ID
// of the ligature attaches to the component it follows, any other mark to the
// last component.
func gposLookupType5Fmt1(ctx *applyCtx, st *ot.MarkLigPosFmt1, pos int) (int, bool) {
	markInx, ok := st.MarkCov.Match(ctx.glyph(pos))
	if !ok || markInx >= len(st.Marks) {
		return pos, false
	}
	j, ok := ctx.prevWithFlag(pos-1, ot.LookupIgnoreMarks)
	if !ok {
		return pos, false
	}
	ligInx, ok := st.LigCov.Match(ctx.glyph(j))
	if !ok || ligInx >= len(st.Ligatures) {
		return pos, false
	}
	comps := st.Ligatures[ligInx]
	if len(comps) == 0 {
		return pos, false
	}
	lig, mark := &ctx.buf.Glyphs[j], &ctx.buf.Glyphs[pos]
	comp := len(comps) - 1
	if lig.LigatureID != 0 && lig.LigatureID == mark.LigatureID && mark.LigatureComponent > 0 {
		comp = min(len(comps), mark.LigatureComponent) - 1
	}
	tracer().Debugf("GPOS 5/1: mark at %d attaches to ligature component %d", pos, comp)
	return ctx.attachMark(pos, st.Marks[markInx], comps[comp], j)
}

// LookupType 6: Mark-to-Mark Attachment Positioning Subtable
//
// The MarkToMark attachment (MarkMarkPos) subtable is identical in form to the MarkToBase
// attachment subtable, although its function is different. Mark-to-mark attachment defines
// the position of one mark relative to another mark. Both marks have to belong
// to the same base or the same ligature component.
func gposLookupType6Fmt1(ctx *applyCtx, st *ot.MarkMarkPosFmt1, pos int) (int, bool) {
	markInx, ok := st.Mark1Cov.Match(ctx.glyph(pos))
	if !ok || markInx >= len(st.Marks) {
		return pos, false
	}
	ignoreFlags := ot.LookupIgnoreBaseGlyphs | ot.LookupIgnoreLigatures | ot.LookupIgnoreMarks
	j, ok := ctx.prevWithFlag(pos-1, ctx.flag&^ignoreFlags)
	if !ok || !ctx.buf.IsMark(j, ctx.gdef) {
		return pos, false
	}
	m1, m2 := &ctx.buf.Glyphs[pos], &ctx.buf.Glyphs[j]
	if !sameAttachmentBase(m1, m2) {
		return pos, false
	}
	mark2Inx, ok := st.Mark2Cov.Match(ctx.glyph(j))
	if !ok || mark2Inx >= len(st.Mark2s) {
		return pos, false
	}
	return ctx.attachMark(pos, st.Marks[markInx], st.Mark2s[mark2Inx], j)
}

func sameAttachmentBase(m1, m2 *GlyphShapingData) bool {
	if m1.LigatureID == m2.LigatureID {
		return m1.LigatureID == 0 || m1.LigatureComponent == m2.LigatureComponent
	}
	// one of the marks may itself be a ligature
	return (m1.LigatureID > 0 && m1.LigatureComponent == 0) || (m2.LigatureID > 0 && m2.LigatureComponent == 0)
}

// --- Helpers ---------------------------------------------------------------

// applyValue applies a value record to the glyph at position i. Device
// tables are not applied.
func (ctx *applyCtx) applyValue(i int, vr ot.ValueRecord) {
	p := &ctx.buf.Glyphs[i].Pos
	p.XOffset += int32(vr.XPlacement)
	p.YOffset += int32(vr.YPlacement)
	if ctx.buf.Vertical {
		p.YAdvance += int32(vr.YAdvance)
	} else {
		p.XAdvance += int32(vr.XAdvance)
	}
}

// anchor returns the coordinates of an anchor on glyph g. Anchors of format 2
// are placed on an outline point, if outlines are available.
func (ctx *applyCtx) anchor(a *ot.Anchor, g ot.GlyphIndex) (int32, int32) {
	if a.Format == 2 && ctx.layout.Metrics != nil {
		if points := ctx.layout.Metrics.OutlinePoints(g); int(a.AnchorPoint) < len(points) {
			pt := points[a.AnchorPoint]
			return pt.X, pt.Y
		}
	}
	return int32(a.X), int32(a.Y)
}

// attachMark attaches the mark at position pos to the glyph at position base,
// aligning the mark's anchor with the anchor for its mark class. If there is
// no anchor for the class, the subtable does not apply, giving later subtables
// a chance.
func (ctx *applyCtx) attachMark(pos int, mark ot.MarkRecord, anchors []*ot.Anchor, base int) (int, bool) {
	if int(mark.Class) >= len(anchors) || anchors[mark.Class] == nil || mark.Anchor == nil {
		return pos, false
	}
	markX, markY := ctx.anchor(mark.Anchor, ctx.glyph(pos))
	baseX, baseY := ctx.anchor(anchors[mark.Class], ctx.glyph(base))
	p := &ctx.buf.Glyphs[pos].Pos
	p.XOffset = baseX - markX
	p.YOffset = baseY - markY
	p.AttachKind = AttachMark
	p.AttachChain = base - pos
	tracer().Debugf("GPOS: mark at %d attached to %d, offset (%d,%d)", pos, base, p.XOffset, p.YOffset)
	return pos + 1, true
}
