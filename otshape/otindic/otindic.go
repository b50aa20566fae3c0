package otindic

import (
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
	"golang.org/x/text/unicode/norm"
)

var (
	tagNukt = ot.T("nukt")
	tagAkhn = ot.T("akhn")
	tagRphf = ot.T("rphf")
	tagRkrf = ot.T("rkrf")
	tagPref = ot.T("pref")
	tagBlwf = ot.T("blwf")
	tagAbvf = ot.T("abvf")
	tagHalf = ot.T("half")
	tagPstf = ot.T("pstf")
	tagVatu = ot.T("vatu")
	tagCjct = ot.T("cjct")
	tagInit = ot.T("init")
	tagPres = ot.T("pres")
	tagAbvs = ot.T("abvs")
	tagBlws = ot.T("blws")
	tagPsts = ot.T("psts")
	tagHaln = ot.T("haln")
	tagLocl = ot.T("locl")
	tagCCMP = ot.T("ccmp")
)

type feature struct {
	tag    ot.Tag
	global bool
}

func (f feature) flags() otshape.FeatureFlags {
	if f.global {
		return otshape.FeatureGlobal | otshape.FeaturePerSyllable
	}
	return otshape.FeaturePerSyllable
}

// basicFeatures are applied one after the other, between initial and final
// re-ordering. Features which are not global are enabled for the glyphs of a
// syllable by initial re-ordering.
var basicFeatures = []feature{
	{tagNukt, true},
	{tagAkhn, true},
	{tagRphf, false},
	{tagRkrf, true},
	{tagPref, false},
	{tagBlwf, false},
	{tagAbvf, false},
	{tagHalf, false},
	{tagPstf, false},
	{tagVatu, true},
	{tagCjct, true},
}

// otherFeatures are applied together, after final re-ordering.
var otherFeatures = []feature{
	{tagInit, false},
	{tagPres, true},
	{tagAbvs, true},
	{tagBlws, true},
	{tagPsts, true},
	{tagHaln, true},
}

// Shaper is the shaping engine for Indic scripts.
type Shaper struct{}

var (
	_ otshape.ShapingEngine           = Shaper{}
	_ otshape.ShapingEnginePlanHooks  = Shaper{}
	_ otshape.ShapingEngineAssignHook = Shaper{}
)

// New returns the Indic shaping engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name is part of interface otshape.ShapingEngine.
func (Shaper) Name() string {
	return "indic"
}

// MarkZeroing is part of interface otshape.ShapingEngine.
func (Shaper) MarkZeroing() otlayout.MarkZeroing {
	return otlayout.MarkZeroingNone
}

// CollectFeatures plans the basic features each in a stage of its own,
// bracketed by the re-ordering passes.
func (Shaper) CollectFeatures(plan otshape.FeaturePlanner, ctx otshape.SelectionContext) {
	plan.AddGSUBPause(setupSyllables)
	plan.EnableFeature(tagLocl)
	plan.EnableFeature(tagCCMP)
	plan.AddGSUBPause(initialReordering)
	for _, f := range basicFeatures {
		plan.AddFeature(f.tag, f.flags())
		plan.AddGSUBPause(nil)
	}
	plan.AddGSUBPause(finalReordering)
	for _, f := range otherFeatures {
		plan.AddFeature(f.tag, f.flags())
	}
}

// AssignFeatures decomposes split matras and classifies the code points of
// the run.
func (Shaper) AssignFeatures(run *otshape.Run) error {
	decomposeSplitMatras(run)
	for i := range run.Buffer.Glyphs {
		gd := run.Buffer.At(i)
		cat, pos := classify(gd.CodePoint)
		gd.Engine = &otlayout.EngineInfo{Category: uint8(cat), Position: uint8(pos)}
	}
	return nil
}

// decomposeSplitMatras replaces two- and three-part matras by their parts,
// if the font has glyphs for all of them. Re-ordering then moves the parts
// individually.
func decomposeSplitMatras(run *otshape.Run) {
	buf := run.Buffer
	for i := 0; i < buf.Len(); i++ {
		gd := buf.At(i)
		cat, _ := classify(gd.CodePoint)
		if cat != catM {
			continue
		}
		parts := []rune(norm.NFD.String(string(gd.CodePoint)))
		if len(parts) < 2 {
			continue
		}
		glyphs := make([]otlayout.GlyphShapingData, len(parts))
		ok := true
		for k, cp := range parts {
			if !run.HasGlyph(cp) {
				ok = false
				break
			}
			glyphs[k] = run.NewGlyph(cp, gd.Cluster)
			glyphs[k].Decomposed = true
		}
		if !ok {
			continue
		}
		tracer().Debugf("indic: split matra %U into %d parts", gd.CodePoint, len(parts))
		buf.Delete(i, i+1)
		buf.Insert(i, glyphs...)
		i += len(glyphs) - 1
	}
}

// --- Helpers for glyphs of a syllable --------------------------------------

func categoryOf(gd *otlayout.GlyphShapingData) category {
	if gd.Engine == nil {
		return catX
	}
	return category(gd.Engine.Category)
}

func positionOf(gd *otlayout.GlyphShapingData) position {
	if gd.Engine == nil {
		return posEnd
	}
	return position(gd.Engine.Position)
}

func setPosition(gd *otlayout.GlyphShapingData, pos position) {
	if gd.Engine != nil {
		gd.Engine.Position = uint8(pos)
	}
}

// isOneOf reports whether a glyph has one of the categories. Ligatures have
// lost their category.
func isOneOf(gd *otlayout.GlyphShapingData, cats ...category) bool {
	if gd.Ligated {
		return false
	}
	c := categoryOf(gd)
	for _, cat := range cats {
		if c == cat {
			return true
		}
	}
	return false
}

func isHalant(gd *otlayout.GlyphShapingData) bool {
	return isOneOf(gd, catH)
}

func ligatedAndDidntMultiply(gd *otlayout.GlyphShapingData) bool {
	return gd.Ligated && !gd.Multiplied
}

// syllables calls fn for every syllable of the run. fn returns the end of
// the syllable, which it may have changed by inserting or deleting glyphs.
func syllables(buf *otlayout.Buffer, fn func(start, end int) int) {
	for start := 0; start < buf.Len(); {
		serial := buf.At(start).Engine.Syllable
		end := start + 1
		for end < buf.Len() && buf.At(end).Engine != nil && buf.At(end).Engine.Syllable == serial {
			end++
		}
		start = fn(start, end)
	}
}
