package otindic

import (
	"unicode"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
)

// reorderer holds what re-ordering needs to know about the script and the
// font of a run.
type reorderer struct {
	run     *otshape.Run
	buf     *otlayout.Buffer
	cfg     scriptConfig
	oldSpec bool
	virama  ot.GlyphIndex // 0 if the font has no virama glyph
}

func newReorderer(run *otshape.Run) *reorderer {
	cfg := configFor(run.Context.Script)
	r := &reorderer{
		run:     run,
		buf:     run.Buffer,
		cfg:     cfg,
		oldSpec: cfg.hasOldSpec && !otshape.IsNewIndicTag(run.Context.ScriptTag),
	}
	if cfg.virama != 0 {
		r.virama, _ = run.GlyphIndex(cfg.virama)
	}
	return r
}

// fontHas reports whether the font implements a feature for the language
// system of the run.
func (r *reorderer) fontHas(feature ot.Tag) bool {
	return len(r.run.Plan.FeatureLookups(ot.TagGSUB, feature)) > 0
}

func (r *reorderer) at(i int) *otlayout.GlyphShapingData {
	return r.buf.At(i)
}

func (r *reorderer) isConsonantAt(i int) bool {
	gd := r.at(i)
	return !gd.Ligated && isConsonant(categoryOf(gd))
}

func (r *reorderer) isJoinerAt(i int) bool {
	gd := r.at(i)
	return !gd.Ligated && isJoiner(categoryOf(gd))
}

func (r *reorderer) catAt(i int) category {
	return categoryOf(r.at(i))
}

func (r *reorderer) posAt(i int) position {
	return positionOf(r.at(i))
}

func (r *reorderer) setPos(i int, pos position) {
	setPosition(r.at(i), pos)
}

// --- Initial re-ordering ---------------------------------------------------

// initialReordering positions the glyphs of every syllable and enables the
// basic features for them.
func initialReordering(run *otshape.Run) error {
	r := newReorderer(run)
	r.updateConsonantPositions()
	syllables(r.buf, func(start, end int) int {
		switch syllableType(r.at(start).Engine.SyllableType) {
		case consonantSyllable, vowelSyllable, standaloneCluster, brokenCluster:
			r.reorderConsonantSyllable(start, end)
		}
		return end
	})
	return nil
}

// updateConsonantPositions asks the font which consonants have below-base or
// post-base forms.
func (r *reorderer) updateConsonantPositions() {
	if r.virama == 0 {
		return
	}
	for i := range r.buf.Glyphs {
		if r.posAt(i) == posBaseC {
			r.setPos(i, r.consonantPosition(r.at(i).GlyphID))
		}
	}
}

func (r *reorderer) consonantPosition(g ot.GlyphIndex) position {
	wouldForm := func(feature ot.Tag) bool {
		return r.run.WouldSubstitute(feature, r.virama, g) || r.run.WouldSubstitute(feature, g, r.virama)
	}
	switch {
	case wouldForm(tagBlwf), wouldForm(tagVatu):
		return posBelowC
	case wouldForm(tagPstf), wouldForm(tagPref):
		return posPostC
	}
	return posBaseC
}

func (r *reorderer) reorderConsonantSyllable(start, end int) {
	buf := r.buf
	if r.cfg.script == language.Kannada && start+3 <= end &&
		r.catAt(start) == catRa && r.catAt(start+1) == catH && r.catAt(start+2) == catZWJ {
		// Ra,H,ZWJ behaves like Ra,ZWJ,H
		buf.MergeClusters(start+1, start+3)
		buf.Glyphs[start+1], buf.Glyphs[start+2] = buf.Glyphs[start+2], buf.Glyphs[start+1]
	}
	base, hasReph := r.findBase(start, end)
	for i := start; i < base; i++ {
		r.setPos(i, min(posPreC, r.posAt(i)))
	}
	if base < end {
		r.setPos(base, posBaseC)
	}
	if hasReph {
		r.setPos(start, posRaToBecomeReph)
	}
	if r.oldSpec {
		r.moveOldSpecHalant(base, end)
	}
	r.attachMiscMarks(start, end, base)
	base = r.sortSyllable(start, end, base)
	r.enableBasicFeatures(start, end, base)
}

// findBase finds the base consonant of a syllable and whether the syllable
// starts with a reph.
func (r *reorderer) findBase(start, end int) (base int, hasReph bool) {
	base, limit := end, start
	if r.fontHas(tagRphf) && start+3 <= end &&
		(r.cfg.rephMode == rephImplicit && !r.isJoinerAt(start+2) ||
			r.cfg.rephMode == rephExplicit && r.catAt(start+2) == catZWJ) {
		g0, g1, g2 := r.at(start).GlyphID, r.at(start+1).GlyphID, r.at(start+2).GlyphID
		if r.run.WouldSubstitute(tagRphf, g0, g1) ||
			r.cfg.rephMode == rephExplicit && r.run.WouldSubstitute(tagRphf, g0, g1, g2) {
			limit += 2
			for limit < end && r.isJoinerAt(limit) {
				limit++
			}
			base, hasReph = start, true
		}
	} else if r.cfg.rephMode == rephLogical && r.catAt(start) == catRepha {
		limit++
		for limit < end && r.isJoinerAt(limit) {
			limit++
		}
		base, hasReph = start, true
	}
	switch r.cfg.basePos {
	case baseLast:
		seenBelow := false
		for i := end - 1; i >= limit; i-- {
			if r.isConsonantAt(i) {
				pos := r.posAt(i)
				if pos != posBelowC && (pos != posPostC || seenBelow) {
					base = i
					break
				}
				if pos == posBelowC {
					seenBelow = true
				}
				base = i
			} else if start < i && r.catAt(i) == catZWJ && r.catAt(i-1) == catH {
				// explicit half form
				break
			}
		}
	case baseLastSinhala:
		if !hasReph {
			base = limit
		}
		for i := limit; i < end; i++ {
			if !r.isConsonantAt(i) {
				continue
			}
			if limit < i && r.catAt(i-1) == catZWJ {
				break
			}
			base = i
		}
		for i := base + 1; i < end; i++ {
			if r.isConsonantAt(i) {
				r.setPos(i, posBelowC)
			}
		}
	}
	if hasReph && base == start && limit-base <= 2 {
		// Ra is the only consonant and becomes the base
		hasReph = false
	}
	return base, hasReph
}

// moveOldSpecHalant moves the first post-base halant after the last
// consonant, as fonts for the old script tags expect.
func (r *reorderer) moveOldSpecHalant(base, end int) {
	noDoubleHalants := r.cfg.script == language.Kannada
	for i := base + 1; i < end; i++ {
		if r.catAt(i) != catH {
			continue
		}
		j := end - 1
		for ; j > i; j-- {
			if r.isConsonantAt(j) || noDoubleHalants && r.catAt(j) == catH {
				break
			}
		}
		if r.catAt(j) != catH && j > i {
			r.buf.Move(i, j)
		}
		return
	}
}

// attachMiscMarks gives joiners, nuktas and halants the position of the
// glyph before them, and lets post-base consonants own the marks before them.
func (r *reorderer) attachMiscMarks(start, end, base int) {
	lastPos := posStart
	for i := start; i < end; i++ {
		switch cat := r.catAt(i); {
		case isJoiner(cat), cat == catN, cat == catRS, cat == catCM, cat == catH:
			r.setPos(i, lastPos)
			if cat == catH && lastPos == posPreM {
				// a halant does not move with a left matra
				for j := i; j > start; j-- {
					if r.posAt(j-1) != posPreM {
						r.setPos(i, r.posAt(j-1))
						break
					}
				}
			}
		case r.posAt(i) != posSMVD:
			if cat == catMPst && i > start && r.catAt(i-1) == catSM {
				r.setPos(i-1, r.posAt(i))
			}
			lastPos = r.posAt(i)
		}
	}
	last := base
	for i := base + 1; i < end; i++ {
		if r.isConsonantAt(i) {
			for j := last + 1; j < i; j++ {
				if r.posAt(j) < posSMVD {
					r.setPos(j, r.posAt(i))
				}
			}
			last = i
		} else if cat := r.catAt(i); cat == catM || cat == catMPst {
			last = i
		}
	}
}

const sortedAway = 0xFFFF

// sortSyllable sorts the glyphs of a syllable by position and merges the
// clusters of glyphs which moved across the base. It returns the new base.
func (r *reorderer) sortSyllable(start, end, base int) int {
	buf := r.buf
	syllable := r.at(start).Engine.Syllable
	for i := start; i < end; i++ {
		r.at(i).Engine.Syllable = uint16(i - start)
	}
	buf.Sort(start, end, func(a, b otlayout.GlyphShapingData) int {
		return int(positionOf(&a)) - int(positionOf(&b))
	})
	base = end
	firstLeft, lastLeft := end, end
	for i := start; i < end; i++ {
		if r.posAt(i) == posBaseC {
			base = i
			break
		}
		if r.posAt(i) == posPreM {
			if firstLeft == end {
				firstLeft = i
			}
			lastLeft = i
		}
	}
	if firstLeft < lastLeft {
		// left matras are displayed in reverse order, nuktas stay with them
		reverse(buf, firstLeft, lastLeft+1)
		i := firstLeft
		for j := i; j <= lastLeft; j++ {
			if cat := r.catAt(j); cat == catM || cat == catMPst {
				reverse(buf, i, j+1)
				i = j + 1
			}
		}
	}
	if r.oldSpec {
		buf.MergeClusters(base, end)
	} else {
		for i := base; i < end; i++ {
			if r.at(i).Engine.Syllable == sortedAway {
				continue
			}
			lo, hi := i, i
			j := start + int(r.at(i).Engine.Syllable)
			for j != i {
				lo, hi = min(lo, j), max(hi, j)
				next := start + int(r.at(j).Engine.Syllable)
				r.at(j).Engine.Syllable = sortedAway
				j = next
			}
			buf.MergeClusters(max(base, lo), hi+1)
		}
	}
	for i := start; i < end; i++ {
		r.at(i).Engine.Syllable = syllable
	}
	return base
}

func reverse(buf *otlayout.Buffer, start, end int) {
	for i, j := start, end-1; i < j; i, j = i+1, j-1 {
		buf.Glyphs[i], buf.Glyphs[j] = buf.Glyphs[j], buf.Glyphs[i]
	}
}

// enableBasicFeatures enables the non-global basic features for the glyphs
// of a syllable, depending on their position relative to the base.
func (r *reorderer) enableBasicFeatures(start, end, base int) {
	buf := r.buf
	for i := start; i < end && r.posAt(i) == posRaToBecomeReph; i++ {
		buf.EnableFeature(i, tagRphf)
	}
	preBase := []ot.Tag{tagHalf}
	if !r.oldSpec && r.cfg.blwfMode == blwfPreAndPost {
		preBase = append(preBase, tagBlwf)
	}
	buf.EnableFeatures(start, min(base, end), preBase...)
	if base < end {
		buf.EnableFeatures(base+1, end, tagBlwf, tagAbvf, tagPstf)
	}
	if r.oldSpec && r.cfg.script == language.Devanagari {
		// eyelash Ra
		for i := start; i+1 < base; i++ {
			if r.catAt(i) == catRa && r.catAt(i+1) == catH &&
				(i+2 == base || r.catAt(i+2) != catZWJ) {
				buf.EnableFeatures(i, i+2, tagBlwf)
			}
		}
	}
	if r.fontHas(tagPref) && base+2 < end {
		for i := base + 1; i+1 < end; i++ {
			if r.run.WouldSubstitute(tagPref, r.at(i).GlyphID, r.at(i+1).GlyphID) {
				buf.EnableFeatures(i, i+2, tagPref)
				break
			}
		}
	}
	for i := start + 1; i < end; i++ {
		if !r.isJoinerAt(i) || r.catAt(i) != catZWNJ {
			continue
		}
		// ZWNJ prevents half forms
		for j := i - 1; j >= start; j-- {
			buf.DisableFeature(j, tagHalf)
			if r.isConsonantAt(j) {
				break
			}
		}
	}
}

// --- Final re-ordering -----------------------------------------------------

// finalReordering moves pre-base matras, reph and pre-base-reordering
// consonants to their final places, after the basic features have formed
// ligatures.
func finalReordering(run *otshape.Run) error {
	r := newReorderer(run)
	syllables(r.buf, func(start, end int) int {
		r.reorderFinal(start, end)
		return end
	})
	return nil
}

func (r *reorderer) reorderFinal(start, end int) {
	if r.virama != 0 {
		for i := start; i < end; i++ {
			gd := r.at(i)
			if gd.GlyphID == r.virama && gd.Ligated && gd.Multiplied {
				// a halant which lost its category in a decomposition
				gd.Engine.Category = uint8(catH)
				gd.Ligated, gd.Multiplied = false, false
			}
		}
	}
	tryPref := r.fontHas(tagPref)
	base := r.findFinalBase(start, end, &tryPref)
	base = r.movePreBaseMatras(start, end, base)
	base = r.moveReph(start, end, base)
	if tryPref && base+1 < end {
		r.movePref(start, end, base)
	}
	if r.posAt(start) == posPreM && (start == 0 || !isLetterOrMark(r.at(start-1).CodePoint)) {
		r.buf.EnableFeature(start, tagInit)
	}
}

func isLetterOrMark(cp rune) bool {
	return unicode.In(cp, unicode.L, unicode.M, unicode.Cf, unicode.Co, unicode.Cs)
}

func (r *reorderer) isHalantAt(i int) bool {
	return isHalant(r.at(i))
}

// findFinalBase finds the base of a syllable after basic shaping. A pref
// candidate which did not form a ligature is the base.
func (r *reorderer) findFinalBase(start, end int, tryPref *bool) int {
	base := start
	for ; base < end; base++ {
		if r.posAt(base) < posBaseC {
			continue
		}
		if *tryPref && base+1 < end {
			for i := base + 1; i < end; i++ {
				if !r.buf.HasFeature(i, tagPref) {
					continue
				}
				if gd := r.at(i); !(gd.Substituted && ligatedAndDidntMultiply(gd)) {
					base = i
					for base < end && r.isHalantAt(base) {
						base++
					}
					if base < end {
						r.setPos(base, posBaseC)
					}
					*tryPref = false
				}
				break
			}
			if base == end {
				break
			}
		}
		if r.cfg.script == language.Malayalam {
			// skip unformed below-forms
			for i := base + 1; i < end; i++ {
				for i < end && r.isJoinerAt(i) {
					i++
				}
				if i == end || !r.isHalantAt(i) {
					break
				}
				i++
				for i < end && r.isJoinerAt(i) {
					i++
				}
				if i < end && r.isConsonantAt(i) && r.posAt(i) == posBelowC {
					base = i
					r.setPos(base, posBaseC)
				}
			}
		}
		if start < base && r.posAt(base) > posBaseC {
			base--
		}
		break
	}
	if base == end && start < base && isOneOf(r.at(base-1), catZWJ) {
		base--
	}
	if base < end {
		for start < base && isOneOf(r.at(base), catN, catH) {
			base--
		}
	}
	return base
}

// movePreBaseMatras moves pre-base matras after the last halant before the
// base, as half forms have been formed by now.
func (r *reorderer) movePreBaseMatras(start, end, base int) int {
	if start+1 >= end || start >= base {
		return base
	}
	buf := r.buf
	newPos := base - 1
	if base == end {
		newPos = base - 2
	}
	if r.cfg.script != language.Malayalam && r.cfg.script != language.Tamil {
		for {
			for newPos > start && !isOneOf(r.at(newPos), catM, catMPst, catH) {
				newPos--
			}
			if r.isHalantAt(newPos) && r.posAt(newPos) != posPreM {
				// a matra is not moved across halant,ZWJ
				if newPos+1 < end && r.catAt(newPos+1) == catZWJ && newPos > start {
					newPos--
					continue
				}
			} else {
				newPos = start
			}
			break
		}
	}
	if start < newPos && r.posAt(newPos) != posPreM {
		for i := newPos; i > start; i-- {
			if r.posAt(i-1) != posPreM {
				continue
			}
			oldPos := i - 1
			if oldPos < base && base <= newPos {
				base--
			}
			buf.Move(oldPos, newPos)
			buf.MergeClusters(newPos, min(end, base+1))
			newPos--
		}
		return base
	}
	for i := start; i < base; i++ {
		if r.posAt(i) == posPreM {
			buf.MergeClusters(i, min(end, base+1))
			break
		}
	}
	return base
}

// moveReph moves a reph to its place, as given by the script. Reph formed by
// Ra,H is moved only if it ligated; a logical repha only if it did not.
func (r *reorderer) moveReph(start, end, base int) int {
	if start+1 >= end || r.posAt(start) != posRaToBecomeReph {
		return base
	}
	if (r.catAt(start) == catRepha) == ligatedAndDidntMultiply(r.at(start)) {
		return base
	}
	newPos := r.rephTarget(start, end, base)
	r.buf.MergeClusters(start, newPos+1)
	r.buf.Move(start, newPos)
	if start < base && base <= newPos {
		base--
	}
	return base
}

func (r *reorderer) rephTarget(start, end, base int) int {
	afterHalant := func() (int, bool) {
		pos := start + 1
		for pos < base && !r.isHalantAt(pos) {
			pos++
		}
		if pos < base && r.isHalantAt(pos) {
			if pos+1 < base && r.isJoinerAt(pos+1) {
				pos++
			}
			return pos, true
		}
		return pos, false
	}
	rephPos := r.cfg.rephPos
	if rephPos != posAfterPost {
		if pos, ok := afterHalant(); ok {
			return pos
		}
		switch rephPos {
		case posAfterMain:
			pos := base
			for pos+1 < end && r.posAt(pos+1) <= posAfterMain {
				pos++
			}
			if pos < end {
				return pos
			}
		case posAfterSub:
			pos := base
			for pos+1 < end {
				p := r.posAt(pos + 1)
				if p == posPostC || p == posAfterPost || p == posSMVD {
					break
				}
				pos++
			}
			if pos < end {
				return pos
			}
		}
	}
	if pos, ok := afterHalant(); ok {
		return pos
	}
	pos := end - 1
	for pos > start && r.posAt(pos) == posSMVD {
		pos--
	}
	if r.isHalantAt(pos) {
		// stay before the halant of a matra,halant sequence
		for i := base + 1; i < pos; i++ {
			if cat := r.catAt(i); cat == catM || cat == catMPst {
				pos--
			}
		}
	}
	return pos
}

// movePref moves a pre-base-reordering consonant which formed a ligature
// before the base.
func (r *reorderer) movePref(start, end, base int) {
	for i := base + 1; i < end; i++ {
		if !r.buf.HasFeature(i, tagPref) {
			continue
		}
		if !ligatedAndDidntMultiply(r.at(i)) {
			return
		}
		newPos := base
		if r.cfg.script != language.Malayalam && r.cfg.script != language.Tamil {
			for newPos > start && !isOneOf(r.at(newPos-1), catM, catMPst, catH) {
				newPos--
			}
		}
		if newPos > start && r.isHalantAt(newPos-1) {
			if newPos < end && r.isJoinerAt(newPos) {
				newPos++
			}
		}
		r.buf.MergeClusters(newPos, i+1)
		r.buf.Move(i, newPos)
		return
	}
}
