package otlayout

import (
	"slices"

	"github.com/npillmayer/typeshape/ot"
)

// ApplyOptions configures lookup application.
type ApplyOptions struct {
	// Alternate selects the glyph of alternate substitutions (GSUB type 3),
	// 0 being the first alternate. Indices beyond the available alternates
	// select the last one.
	Alternate int
	// PerSyllable restricts matching to the syllable of the glyph a lookup
	// starts at, as assigned by a script shaper.
	PerSyllable bool
}

// Layout applies the lookups of a font to glyph buffers. A Layout holds no
// state besides its configuration and may be used for any number of buffers.
type Layout struct {
	Font    *ot.Font
	Metrics GlyphMetrics // used to resolve anchors on outline points; may be nil
	Options ApplyOptions
}

// NewLayout creates a layout for a font.
func NewLayout(otf *ot.Font, metrics GlyphMetrics) *Layout {
	return &Layout{Font: otf, Metrics: metrics}
}

// ApplyLookup applies lookup number lookupIndex of layout table GSUB or GPOS to
// the glyphs [index, index+count) of a buffer. Only glyphs with feature enabled
// take part, where feature 0 stands for all glyphs. Glyphs outside the window
// may serve as context.
//
// The window follows changes in buffer length caused by substitutions. Each
// position is tried against the subtables of the lookup in order, and the first
// subtable applying wins. ApplyLookup reports whether anything was applied.
func (l *Layout) ApplyLookup(table ot.Tag, lookupIndex int, buf *Buffer, feature ot.Tag,
	index, count int) bool {
	//
	if feature == 0 {
		return l.ApplyLookupForFeatures(table, lookupIndex, buf, nil, index, count)
	}
	return l.ApplyLookupForFeatures(table, lookupIndex, buf, []ot.Tag{feature}, index, count)
}

// ApplyLookupForFeatures is ApplyLookup for a lookup shared by several
// features. A glyph takes part if it has any of features enabled. An empty
// list of features stands for all glyphs.
func (l *Layout) ApplyLookupForFeatures(table ot.Tag, lookupIndex int, buf *Buffer, features []ot.Tag,
	index, count int) bool {
	//
	lt := l.Font.Table(table)
	lookup := lt.Lookup(lookupIndex)
	if lookup == nil || buf.Len() == 0 {
		return false
	}
	index = max(index, 0)
	end := min(index+count, buf.Len())
	if index >= end {
		return false
	}
	ctx := l.newApplyCtx(lt, buf, features)
	ctx.setLookup(lookup)
	tracer().Debugf("applying %s lookup #%d (%s) flags=0x%04x on [%d,%d)", table, lookupIndex,
		ot.LookupTypeName(table, lookup.Type), uint16(lookup.Flag), index, end)
	if table == ot.TagGSUB && lookup.Type == ot.GSubLookupTypeReverseChaining {
		return ctx.applyReverse(index, end)
	}
	applied := false
	for i := index; i < end && i < buf.Len(); {
		if !ctx.budget.spend() {
			tracer().Infof("operation budget exhausted at position %d", i)
			break
		}
		if !ctx.mayApply(i) {
			i++
			continue
		}
		n := buf.Len()
		next, ok := ctx.applyAt(i)
		if !ok {
			i++
			continue
		}
		applied = true
		end += buf.Len() - n
		if next > i || buf.Len() < n {
			i = next
		} else {
			i++
		}
	}
	return applied
}

// ApplyLookups applies a list of lookups of a layout table to the whole
// buffer, in order.
func (l *Layout) ApplyLookups(table ot.Tag, lookups []int, buf *Buffer, feature ot.Tag) bool {
	applied := false
	for _, inx := range lookups {
		if l.ApplyLookup(table, inx, buf, feature, 0, buf.Len()) {
			applied = true
		}
	}
	return applied
}

// ApplyFeature applies all lookups a language system links to a feature tag,
// for glyphs having the feature enabled.
func (l *Layout) ApplyFeature(table ot.Tag, ls *ot.LangSys, feature ot.Tag, buf *Buffer) bool {
	lookups := l.Font.Table(table).FeatureLookups(ls, feature)
	return l.ApplyLookups(table, lookups, buf, feature)
}

// --- Application context ---------------------------------------------------

// budget limits the work of a top-level lookup application, shared with all
// nested lookup applications.
type budget struct {
	ops    int // remaining operations
	maxLen int // maximum buffer length
}

func newBudget(n int) *budget {
	return &budget{
		ops:    max(n*MaxOperationsFactor, MaxOperationsMinimum),
		maxLen: max(n*MaxLengthFactor, MaxLengthMinimum),
	}
}

func (b *budget) spend() bool {
	b.ops--
	return b.ops >= 0
}

// applyCtx bundles the state of a single lookup application.
type applyCtx struct {
	layout   *Layout
	table    *ot.LayoutTable // GSUB or GPOS, for nested lookups
	gdef     *ot.GDef        // may be nil
	buf      *Buffer         // buffer owned by the shaping call
	feature  []ot.Tag        // glyphs must have one of these enabled, if any
	lookup   *ot.Lookup      // lookup currently applied
	flag     ot.LookupFlag   // lookup flags of lookup
	markSet  uint16          // mark filtering set, if flag says so
	depth    int             // nesting level of contextual lookups
	syllable uint16          // syllable matching is restricted to, if per syllable
	budget   *budget
}

func (l *Layout) newApplyCtx(lt *ot.LayoutTable, buf *Buffer, feature []ot.Tag) *applyCtx {
	return &applyCtx{
		layout:  l,
		table:   lt,
		gdef:    l.Font.GDEF,
		buf:     buf,
		feature: feature,
		budget:  newBudget(buf.Len()),
	}
}

func (ctx *applyCtx) setLookup(lookup *ot.Lookup) {
	ctx.lookup = lookup
	ctx.flag = lookup.Flag
	ctx.markSet = lookup.MarkFilteringSet
}

// nested creates a context for a lookup invoked from a contextual lookup.
func (ctx *applyCtx) nested(lookup *ot.Lookup) *applyCtx {
	n := *ctx
	n.setLookup(lookup)
	n.depth++
	return &n
}

// mayApply reports whether the lookup may start at position i.
func (ctx *applyCtx) mayApply(i int) bool {
	if len(ctx.feature) > 0 && !slices.ContainsFunc(ctx.feature, func(f ot.Tag) bool {
		return ctx.buf.HasFeature(i, f)
	}) {
		return false
	}
	return !ctx.skip(i)
}

func (ctx *applyCtx) glyph(i int) ot.GlyphIndex {
	return ctx.buf.Glyphs[i].GlyphID
}

// applyAt tries the subtables of the current lookup at position i, returning
// the position to continue with.
func (ctx *applyCtx) applyAt(i int) (int, bool) {
	if ctx.depth == 0 {
		ctx.syllable = ctx.buf.Glyphs[i].syllable()
	}
	for k, st := range ctx.lookup.Subtables {
		next, ok := ctx.applySubtable(st, i)
		if ok {
			tracer().Debugf("subtable #%d (%T) applied at %d", k, st, i)
			return next, true
		}
	}
	return i, false
}

// applySubtable dispatches on the concrete subtable type. Contextual subtables
// are shared between GSUB and GPOS.
func (ctx *applyCtx) applySubtable(st ot.Subtable, i int) (int, bool) {
	switch s := st.(type) {
	// GSUB
	case *ot.SingleSubstFmt1:
		return gsubLookupType1Fmt1(ctx, s, i)
	case *ot.SingleSubstFmt2:
		return gsubLookupType1Fmt2(ctx, s, i)
	case *ot.MultipleSubstFmt1:
		return gsubLookupType2Fmt1(ctx, s, i)
	case *ot.AlternateSubstFmt1:
		return gsubLookupType3Fmt1(ctx, s, i)
	case *ot.LigatureSubstFmt1:
		return gsubLookupType4Fmt1(ctx, s, i)
	case *ot.ReverseChainSingleSubstFmt1:
		return gsubLookupType8Fmt1(ctx, s, i)
	// GPOS
	case *ot.SinglePosFmt1:
		return gposLookupType1Fmt1(ctx, s, i)
	case *ot.SinglePosFmt2:
		return gposLookupType1Fmt2(ctx, s, i)
	case *ot.PairPosFmt1:
		return gposLookupType2Fmt1(ctx, s, i)
	case *ot.PairPosFmt2:
		return gposLookupType2Fmt2(ctx, s, i)
	case *ot.CursivePosFmt1:
		return gposLookupType3Fmt1(ctx, s, i)
	case *ot.MarkBasePosFmt1:
		return gposLookupType4Fmt1(ctx, s, i)
	case *ot.MarkLigPosFmt1:
		return gposLookupType5Fmt1(ctx, s, i)
	case *ot.MarkMarkPosFmt1:
		return gposLookupType6Fmt1(ctx, s, i)
	// GSUB 5/6, GPOS 7/8
	case *ot.SequenceContextFmt1:
		return applySequenceContextFmt1(ctx, s, i)
	case *ot.SequenceContextFmt2:
		return applySequenceContextFmt2(ctx, s, i)
	case *ot.SequenceContextFmt3:
		return applySequenceContextFmt3(ctx, s, i)
	case *ot.ChainedSequenceContextFmt1:
		return applyChainedSequenceContextFmt1(ctx, s, i)
	case *ot.ChainedSequenceContextFmt2:
		return applyChainedSequenceContextFmt2(ctx, s, i)
	case *ot.ChainedSequenceContextFmt3:
		return applyChainedSequenceContextFmt3(ctx, s, i)
	case *ot.UnsupportedSubtable:
		return i, false
	}
	tracer().Errorf("unknown subtable type %T", st)
	return i, false
}

// applyReverse applies a reverse chaining lookup, from the end of the window
// towards its start. Substitutions of this type never change the buffer length.
func (ctx *applyCtx) applyReverse(index, end int) bool {
	applied := false
	for i := end - 1; i >= index; i-- {
		if !ctx.budget.spend() {
			break
		}
		if !ctx.mayApply(i) {
			continue
		}
		if _, ok := ctx.applyAt(i); ok {
			applied = true
		}
	}
	return applied
}

// --- Lookup flag filtering -------------------------------------------------

// skip applies the lookup flags to decide whether to skip the glyph at
// position i while matching.
func (ctx *applyCtx) skip(i int) bool {
	return skipGlyph(ctx.buf, i, ctx.gdef, ctx.flag, ctx.markSet)
}

func skipGlyph(buf *Buffer, i int, gdef *ot.GDef, flag ot.LookupFlag, markSet uint16) bool {
	switch buf.GlyphClass(i, gdef) {
	case ot.BaseGlyph:
		return flag&ot.LookupIgnoreBaseGlyphs != 0
	case ot.LigatureGlyph:
		return flag&ot.LookupIgnoreLigatures != 0
	case ot.MarkGlyph:
		if flag&ot.LookupIgnoreMarks != 0 {
			return true
		}
		g := buf.Glyphs[i].GlyphID
		if flag&ot.LookupUseMarkFilteringSet != 0 {
			return !gdef.InMarkGlyphSet(markSet, g)
		}
		if matype := flag.MarkAttachmentType(); matype != 0 {
			return gdef.MarkAttachClass(g) != matype
		}
	}
	return false
}

// nextMatchable returns the first position ≥ pos not skipped by the lookup flags.
func (ctx *applyCtx) nextMatchable(pos int) (int, bool) {
	return ctx.nextWithFlag(pos, ctx.flag)
}

// prevMatchable returns the first position ≤ pos not skipped by the lookup flags.
func (ctx *applyCtx) prevMatchable(pos int) (int, bool) {
	return ctx.prevWithFlag(pos, ctx.flag)
}

func (ctx *applyCtx) nextWithFlag(pos int, flag ot.LookupFlag) (int, bool) {
	for i := pos; i < ctx.buf.Len(); i++ {
		if !ctx.budget.spend() || ctx.outsideSyllable(i) {
			return 0, false
		}
		if !skipGlyph(ctx.buf, i, ctx.gdef, flag, ctx.markSet) {
			return i, true
		}
	}
	return 0, false
}

func (ctx *applyCtx) prevWithFlag(pos int, flag ot.LookupFlag) (int, bool) {
	for i := min(pos, ctx.buf.Len()-1); i >= 0; i-- {
		if !ctx.budget.spend() || ctx.outsideSyllable(i) {
			return 0, false
		}
		if !skipGlyph(ctx.buf, i, ctx.gdef, flag, ctx.markSet) {
			return i, true
		}
	}
	return 0, false
}

func (ctx *applyCtx) outsideSyllable(i int) bool {
	return ctx.layout.Options.PerSyllable && ctx.buf.Glyphs[i].syllable() != ctx.syllable
}
