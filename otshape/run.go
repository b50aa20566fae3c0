package otshape

import (
	"slices"

	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
)

// Run is the state of a single shaping call, handed to the hooks of shaping
// engines. A Run must not be retained after the hook returns.
type Run struct {
	Buffer  *otlayout.Buffer
	Font    *ot.Font
	Metrics otlayout.GlyphMetrics
	Plan    *Plan
	Context SelectionContext
	layout  *otlayout.Layout
	probe   *otlayout.Buffer // scratch buffer for WouldSubstitute
}

func newRun(buf *otlayout.Buffer, otf *ot.Font, metrics otlayout.GlyphMetrics, plan *Plan,
	ctx SelectionContext, opts Options) *Run {
	//
	layout := otlayout.NewLayout(otf, metrics)
	layout.Options.Alternate = opts.Alternate
	return &Run{
		Buffer:  buf,
		Font:    otf,
		Metrics: metrics,
		Plan:    plan,
		Context: ctx,
		layout:  layout,
	}
}

// GlyphIndex maps a code point to a glyph of the font.
func (r *Run) GlyphIndex(cp rune) (ot.GlyphIndex, bool) {
	return r.Metrics.GlyphIndex(cp)
}

// HasGlyph reports whether the font has a glyph for a code point.
func (r *Run) HasGlyph(cp rune) bool {
	_, ok := r.Metrics.GlyphIndex(cp)
	return ok
}

// NewGlyph creates the shaping data for a code point, mapped to its glyph.
func (r *Run) NewGlyph(cp rune, cluster int) otlayout.GlyphShapingData {
	g, _ := r.Metrics.GlyphIndex(cp)
	return otlayout.GlyphShapingData{
		CodePoint:      cp,
		CodePointCount: 1,
		GlyphID:        g,
		Cluster:        cluster,
		Class:          otlayout.ClassOfRune(cp),
	}
}

// SetCodePoint replaces the code point of the glyph at position i and maps
// it to its glyph.
func (r *Run) SetCodePoint(i int, cp rune) {
	gd := r.Buffer.At(i)
	gd.CodePoint = cp
	gd.GlyphID, _ = r.Metrics.GlyphIndex(cp)
	gd.Class = otlayout.ClassOfRune(cp)
}

// WouldSubstitute reports whether a GSUB feature, as enabled by the language
// system of the run, would substitute a sequence of glyphs starting with the
// first one. The buffer of the run is not touched.
func (r *Run) WouldSubstitute(feature ot.Tag, glyphs ...ot.GlyphIndex) bool {
	if len(glyphs) == 0 {
		return false
	}
	if r.probe == nil {
		r.probe = otlayout.NewBuffer(r.Buffer.Direction, r.Buffer.Script)
	}
	for _, inx := range r.Plan.FeatureLookups(ot.TagGSUB, feature) {
		r.probe.Reset()
		for _, g := range glyphs {
			r.probe.AddGlyph(g, 0)
		}
		if r.layout.ApplyLookup(ot.TagGSUB, inx, r.probe, 0, 0, 1) {
			return true
		}
	}
	return false
}

// InsertDottedCircle inserts a dotted circle before position i, as part of
// the given cluster. The dotted circle takes the features and engine data of
// the glyph at i. It returns false if the font has no glyph for it.
func (r *Run) InsertDottedCircle(i int, cluster int) bool {
	if !r.HasGlyph(DottedCircle) {
		return false
	}
	gd := r.NewGlyph(DottedCircle, cluster)
	gd.Engine = &otlayout.EngineInfo{}
	if i < r.Buffer.Len() {
		next := r.Buffer.At(i)
		gd.Features = slices.Clone(next.Features)
		if next.Engine != nil {
			*gd.Engine = *next.Engine
		}
	}
	r.Buffer.Insert(i, gd)
	return true
}

// applyGSUBStage applies the lookups of a GSUB stage to the whole buffer.
func (r *Run) applyGSUBStage(st stage) {
	for _, op := range st.lookups {
		r.applyLookup(ot.TagGSUB, op)
	}
}

func (r *Run) applyLookup(table ot.Tag, op lookupOp) bool {
	layout := r.layout
	if op.perSyllable {
		l := *r.layout
		l.Options.PerSyllable = true
		layout = &l
	}
	return layout.ApplyLookupForFeatures(table, op.index, r.Buffer, op.features, 0, r.Buffer.Len())
}
