package otlayout

import "github.com/npillmayer/typeshape/ot"

// ligate replaces the glyphs at positions by a ligature glyph, which takes the
// place of the first component. Glyphs skipped while matching stay in place,
// following the ligature. It returns the position after the last glyph
// consumed.
//
// Marks are tied to ligature components by ligature ID and (1-based)
// component number:
//
//   - a ligature of a base glyph and marks only is treated as a base glyph
//   - a ligature of marks only keeps the IDs of its first mark, so that
//     it may still attach to the ligature the marks belonged to
//   - any other ligature gets a fresh ligature ID. Marks between and after
//     its components are re-numbered to the ligature component they follow,
//     counting the components of already formed ligatures among them.
func (ctx *applyCtx) ligate(positions []int, lig ot.GlyphIndex) int {
	buf := ctx.buf
	first, last := positions[0], positions[len(positions)-1]
	isMark := func(i int) bool { return buf.IsMark(i, ctx.gdef) }
	isBaseLig := buf.GlyphClass(first, ctx.gdef) == ot.BaseGlyph
	isMarkLig := isMark(first)
	for _, p := range positions[1:] {
		if !isMark(p) {
			isBaseLig, isMarkLig = false, false
			break
		}
	}
	isLigature := !isBaseLig && !isMarkLig
	total, codepoints := 0, 0
	for _, p := range positions {
		total += buf.Glyphs[p].numComponents()
		codepoints += buf.Glyphs[p].CodePointCount
	}
	buf.MergeClusters(first, last+1)

	ligID := 0
	if isLigature {
		ligID = buf.AllocLigatureID()
	}
	lastLigID := buf.Glyphs[first].LigatureID
	lastNumComps := buf.Glyphs[first].numComponents()
	compsSoFar := lastNumComps

	head := &buf.Glyphs[first]
	head.GlyphID = lig
	head.Substituted = true
	head.Ligated = true
	head.CodePointCount = codepoints
	switch {
	case isLigature:
		head.LigatureID = ligID
		head.LigatureComponent = 0
		head.LigatureComponentCount = total
		head.Class = ot.LigatureGlyph
	case isMarkLig:
		head.Class = ot.MarkGlyph
	default:
		head.Class = ot.BaseGlyph
	}
	renumber := func(gd *GlyphShapingData) {
		comp := gd.LigatureComponent
		if comp == 0 {
			comp = lastNumComps
		}
		gd.LigatureID = ligID
		gd.LigatureComponent = compsSoFar - lastNumComps + min(comp, lastNumComps)
	}
	for k := 1; k < len(positions); k++ {
		for i := positions[k-1] + 1; i < positions[k]; i++ {
			if isLigature {
				renumber(&buf.Glyphs[i])
			}
		}
		gd := &buf.Glyphs[positions[k]]
		lastLigID = gd.LigatureID
		lastNumComps = gd.numComponents()
		compsSoFar += lastNumComps
	}
	if !isMarkLig && lastLigID != 0 {
		// marks following the last component, which belonged to a ligature
		for i := last + 1; i < buf.Len(); i++ {
			gd := &buf.Glyphs[i]
			if gd.LigatureID != lastLigID || gd.LigatureComponent == 0 {
				break
			}
			renumber(gd)
		}
	}
	for k := len(positions) - 1; k > 0; k-- {
		buf.Delete(positions[k], positions[k]+1)
	}
	return last - (len(positions) - 1) + 1
}
