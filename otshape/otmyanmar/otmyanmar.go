package otmyanmar

import (
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
)

var (
	// applied in order, one at a time
	basicFeatures = []ot.Tag{ot.T("rphf"), ot.T("pref"), ot.T("blwf"), ot.T("pstf")}
	// applied all at once
	otherFeatures = []ot.Tag{ot.T("pres"), ot.T("abvs"), ot.T("blws"), ot.T("psts")}
)

// Shaper is the shaping engine for Myanmar.
type Shaper struct{}

var (
	_ otshape.ShapingEngine          = Shaper{}
	_ otshape.ShapingEnginePlanHooks = Shaper{}
)

// New returns the Myanmar shaping engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name is part of interface otshape.ShapingEngine.
func (Shaper) Name() string {
	return "myanmar"
}

// MarkZeroing is part of interface otshape.ShapingEngine.
func (Shaper) MarkZeroing() otlayout.MarkZeroing {
	return otlayout.MarkZeroingEarly
}

// CollectFeatures is part of interface otshape.ShapingEnginePlanHooks.
func (Shaper) CollectFeatures(plan otshape.FeaturePlanner, ctx otshape.SelectionContext) {
	tracer().Debugf("myanmar: planning features without syllable re-ordering")
	plan.EnableFeature(ot.T("locl"))
	plan.EnableFeature(ot.T("ccmp"))
	plan.AddGSUBPause(nil)
	for _, tag := range basicFeatures {
		plan.EnableFeature(tag)
		plan.AddGSUBPause(nil)
	}
	for _, tag := range otherFeatures {
		plan.EnableFeature(tag)
	}
}
