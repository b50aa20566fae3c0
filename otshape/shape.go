package otshape

import (
	"fmt"

	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
)

// Shape shapes a run of text. buf holds the code points of the run and is
// transformed into positioned glyphs, in logical order. A nil engine selects
// DefaultShaper.
//
// Shape fails only for missing arguments and for errors of shaping engines.
// Lookups which cannot be applied to the glyphs at hand leave the buffer
// untouched.
func Shape(engine ShapingEngine, otf *ot.Font, metrics otlayout.GlyphMetrics,
	buf *otlayout.Buffer, opts Options) error {
	//
	switch {
	case otf == nil:
		return errShaper("no font")
	case metrics == nil:
		return errShaper("no glyph metrics")
	case buf == nil:
		return errShaper("no glyph buffer")
	}
	if engine == nil {
		engine = DefaultShaper{}
	}
	ctx := SelectionContext{
		Direction: buf.Direction,
		Script:    buf.Script,
		Language:  opts.Language,
		LangTag:   LanguageSystemTag(opts.Language),
		Vertical:  opts.Vertical || buf.Vertical,
	}
	scriptTags := ScriptTags(buf.Script)
	if opts.ScriptTag != 0 {
		scriptTags = []ot.Tag{opts.ScriptTag}
	}
	ctx.ScriptTag = selectScriptTag(otf, scriptTags)
	tracer().Infof("shaping %d code points, engine %s, script %s", buf.Len(), engine.Name(), ctx.ScriptTag)
	//
	plan := planFeatures(engine, otf, ctx, scriptTags, opts)
	buf.Vertical = ctx.Vertical
	run := newRun(buf, otf, metrics, plan, ctx, opts)
	if normalizationMode(engine) == NormalizationAuto {
		normalize(buf, run)
	}
	mapGlyphs(run)
	if hook, ok := engine.(ShapingEngineAssignHook); ok {
		if err := hook.AssignFeatures(run); err != nil {
			return fmt.Errorf("%s: assigning features: %w", engine.Name(), err)
		}
	}
	assignGlobalFeatures(run, opts)
	assignFractions(run)
	if err := substitute(run, engine); err != nil {
		return err
	}
	if hook, ok := engine.(ShapingEnginePostprocessHook); ok {
		if err := hook.PostprocessRun(run); err != nil {
			return fmt.Errorf("%s: post-processing: %w", engine.Name(), err)
		}
	}
	position(run, engine.MarkZeroing())
	return nil
}

// planFeatures plans direction features, then the features of the engine,
// then common features and the features requested by the client. Engines
// may override common features before client features are planned.
func planFeatures(engine ShapingEngine, otf *ot.Font, ctx SelectionContext, scriptTags []ot.Tag,
	opts Options) *Plan {
	//
	pb := &planBuilder{}
	planPreprocess(pb, ctx)
	if hooks, ok := engine.(ShapingEnginePlanHooks); ok {
		hooks.CollectFeatures(pb, ctx)
	}
	planPostprocess(pb, ctx)
	if hook, ok := engine.(ShapingEngineOverrideHook); ok {
		hook.OverrideFeatures(pb)
	}
	planUserFeatures(pb, opts)
	return pb.compile(otf, scriptTags, ctx.LangTag)
}

// selectScriptTag returns the tag of the script table selected from GSUB,
// or from GPOS if there is no GSUB, or 0.
func selectScriptTag(otf *ot.Font, scriptTags []ot.Tag) ot.Tag {
	for _, lt := range []*ot.LayoutTable{otf.GSUB, otf.GPOS} {
		if s := lt.SelectScript(scriptTags...); s != nil {
			return s.Tag
		}
	}
	return 0
}

func normalizationMode(engine ShapingEngine) NormalizationMode {
	if policy, ok := engine.(ShapingEnginePolicy); ok {
		return policy.NormalizationPreference()
	}
	return NormalizationAuto
}

// mapGlyphs maps the code points of a buffer to glyphs. Missing glyphs are
// mapped to NOTDEF.
func mapGlyphs(run *Run) {
	buf := run.Buffer
	for i := range buf.Glyphs {
		gd := &buf.Glyphs[i]
		if gd.CodePoint == 0 {
			continue
		}
		g, ok := run.Metrics.GlyphIndex(gd.CodePoint)
		if !ok {
			tracer().Debugf("no glyph for %U", gd.CodePoint)
			g = NOTDEF
		}
		gd.GlyphID = g
	}
}

// substitute applies the GSUB stages of the plan, calling the pause hook
// after each stage.
func substitute(run *Run, engine ShapingEngine) error {
	for i, st := range run.Plan.gsub {
		run.applyGSUBStage(st)
		if st.pause == nil {
			continue
		}
		if err := st.pause(run); err != nil {
			return fmt.Errorf("%s: GSUB pause after stage %d: %w", engine.Name(), i, err)
		}
	}
	return nil
}

// position sets glyph advances and applies the GPOS lookups of the plan.
func position(run *Run, zeroing otlayout.MarkZeroing) {
	buf := run.Buffer
	buf.InitPositions(run.Metrics)
	adjust := !run.Font.HasGPOS()
	if zeroing == otlayout.MarkZeroingEarly {
		otlayout.ZeroMarkAdvances(buf, run.Font.GDEF, adjust)
	}
	for _, op := range run.Plan.gpos {
		run.applyLookup(ot.TagGPOS, op)
	}
	if zeroing == otlayout.MarkZeroingLate {
		otlayout.ZeroMarkAdvances(buf, run.Font.GDEF, adjust)
	}
	otlayout.ResolveAttachments(buf)
}
