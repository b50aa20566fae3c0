package othangul

import (
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
)

var (
	tagLJMO = ot.T("ljmo")
	tagVJMO = ot.T("vjmo")
	tagTJMO = ot.T("tjmo")
	tagCalt = ot.T("calt")
)

// jamoFeatures are the features for leading, vowel and trailing jamo.
var jamoFeatures = [3]ot.Tag{tagLJMO, tagVJMO, tagTJMO}

// Shaper is the shaping engine for Hangul.
type Shaper struct{}

var (
	_ otshape.ShapingEngine             = Shaper{}
	_ otshape.ShapingEnginePolicy       = Shaper{}
	_ otshape.ShapingEnginePlanHooks    = Shaper{}
	_ otshape.ShapingEngineOverrideHook = Shaper{}
	_ otshape.ShapingEngineAssignHook   = Shaper{}
)

// New returns the Hangul shaping engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name is part of interface otshape.ShapingEngine.
func (Shaper) Name() string {
	return "hangul"
}

// MarkZeroing is part of interface otshape.ShapingEngine.
func (Shaper) MarkZeroing() otlayout.MarkZeroing {
	return otlayout.MarkZeroingNone
}

// NormalizationPreference is part of interface otshape.ShapingEnginePolicy.
// Composition of jamo depends on the glyphs of the font and is done by
// AssignFeatures.
func (Shaper) NormalizationPreference() otshape.NormalizationMode {
	return otshape.NormalizationNone
}

// CollectFeatures is part of interface otshape.ShapingEnginePlanHooks.
func (Shaper) CollectFeatures(plan otshape.FeaturePlanner, ctx otshape.SelectionContext) {
	for _, tag := range jamoFeatures {
		plan.AddFeature(tag, otshape.FeatureNone)
	}
}

// OverrideFeatures disables calt, which interferes with jamo shaping in
// many fonts.
func (Shaper) OverrideFeatures(plan otshape.FeaturePlanner) {
	plan.DisableFeature(tagCalt)
}

// AssignFeatures composes and decomposes syllables, depending on the glyphs
// the font has, and enables the jamo features on decomposed syllables.
func (Shaper) AssignFeatures(run *otshape.Run) error {
	in := run.Buffer.Glyphs
	out := make([]otlayout.GlyphShapingData, 0, len(in)+len(in)/2)
	// start and end delimit the last syllable in out. A tone mark following
	// a syllable is recognized by end == len(out).
	start, end := 0, 0
	for i := 0; i < len(in); {
		u := in[i].CodePoint
		if isTone(u) {
			out, i = appendTone(run, out, in, i, start, end)
			start, end = len(out), len(out)
			continue
		}
		start = len(out)
		switch {
		case isL(u) && i+1 < len(in) && isV(in[i+1].CodePoint):
			var t rune
			if i+2 < len(in) && isT(in[i+2].CodePoint) {
				t = in[i+2].CodePoint
			}
			if s := compose(u, in[i+1].CodePoint, t); s != 0 && run.HasGlyph(s) {
				n := 2
				if t != 0 {
					n = 3
				}
				out = append(out, composed(run, s, in[i:i+n]))
				i += n
				end = len(out)
				continue
			}
			n := 2
			if t != 0 {
				n = 3
			}
			for k := range n {
				gd := in[i+k]
				gd.EnableFeature(jamoFeatures[k])
				out = append(out, gd)
			}
			i += n
			end = len(out)
			mergeClusters(out[start:end])
		case isSyllable(u):
			hasGlyph := run.HasGlyph(u)
			l, v, t := decompose(u)
			followedByT := t == 0 && i+1 < len(in) && isT(in[i+1].CodePoint)
			if followedByT && isCombiningT(in[i+1].CodePoint) {
				if s := u + in[i+1].CodePoint - tBase; run.HasGlyph(s) {
					out = append(out, composed(run, s, in[i:i+2]))
					i += 2
					end = len(out)
					continue
				}
			}
			if !hasGlyph || followedByT {
				jamo := []rune{l, v}
				if t != 0 {
					jamo = append(jamo, t)
				}
				if allPresent(run, jamo) {
					for k, r := range jamo {
						gd := run.NewGlyph(r, in[i].Cluster)
						gd.Decomposed = true
						gd.EnableFeature(jamoFeatures[k])
						out = append(out, gd)
					}
					i++
					if hasGlyph && followedByT {
						gd := in[i]
						gd.EnableFeature(tagTJMO)
						out = append(out, gd)
						i++
					}
					end = len(out)
					mergeClusters(out[start:end])
					continue
				}
			}
			out = append(out, in[i])
			i++
			if hasGlyph {
				end = len(out)
			}
		default:
			out = append(out, in[i])
			i++
		}
	}
	if len(out) != len(in) {
		tracer().Debugf("hangul: %d code points shaped as %d glyphs", len(in), len(out))
	}
	run.Buffer.Glyphs = out
	return nil
}

// appendTone appends the tone mark in[i] to out. A tone mark following a
// syllable is moved in front of it, unless it has no advance. A tone mark
// without a syllable gets a dotted circle as its base.
func appendTone(run *otshape.Run, out, in []otlayout.GlyphShapingData, i, start, end int) (
	[]otlayout.GlyphShapingData, int) {
	//
	tone := in[i]
	zeroWidth := isZeroWidth(run, tone.CodePoint)
	if start < end && end == len(out) {
		out = append(out, tone)
		if !zeroWidth {
			copy(out[start+1:], out[start:end])
			out[start] = tone
			mergeClusters(out[start:])
		}
		return out, i + 1
	}
	if !run.HasGlyph(otshape.DottedCircle) {
		return append(out, tone), i + 1
	}
	dc := run.NewGlyph(otshape.DottedCircle, tone.Cluster)
	if zeroWidth {
		return append(out, dc, tone), i + 1
	}
	return append(out, tone, dc), i + 1
}

// composed returns a glyph for syllable s, standing for the glyphs of jamo.
func composed(run *otshape.Run, s rune, jamo []otlayout.GlyphShapingData) otlayout.GlyphShapingData {
	gd := run.NewGlyph(s, jamo[0].Cluster)
	gd.CodePointCount = 0
	for _, j := range jamo {
		gd.CodePointCount += max(j.CodePointCount, 1)
		gd.Cluster = min(gd.Cluster, j.Cluster)
	}
	return gd
}

func allPresent(run *otshape.Run, cps []rune) bool {
	for _, cp := range cps {
		if !run.HasGlyph(cp) {
			return false
		}
	}
	return true
}

func isZeroWidth(run *otshape.Run, cp rune) bool {
	g, ok := run.GlyphIndex(cp)
	return ok && run.Metrics.Advance(g) == 0
}

func mergeClusters(glyphs []otlayout.GlyphShapingData) {
	if len(glyphs) < 2 {
		return
	}
	c := glyphs[0].Cluster
	for _, gd := range glyphs[1:] {
		c = min(c, gd.Cluster)
	}
	for i := range glyphs {
		glyphs[i].Cluster = c
	}
}
