package otshape

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// SelectionContext carries the segment metadata a shaping engine plans for.
type SelectionContext struct {
	Direction bidi.Direction
	Script    language.Script // unicode.org/iso15924/iso15924-codes.html
	Language  xlanguage.Tag
	ScriptTag ot.Tag // script tag found in the font, 0 if none
	LangTag   ot.Tag // language system tag, 0 for the default language system
	Vertical  bool
}

// NormalizationMode controls Unicode normalization before glyph mapping.
type NormalizationMode uint8

const (
	// NormalizationAuto decomposes characters missing from the font, re-orders
	// marks by combining class and composes pairs the font has a glyph for.
	NormalizationAuto NormalizationMode = iota
	// NormalizationNone leaves the code points alone.
	NormalizationNone
)

// FeatureFlags guide how a planned feature is applied.
type FeatureFlags uint16

// FeatureNone is a non-global feature, enabled on glyphs by the shaping engine.
const FeatureNone FeatureFlags = 0

const (
	// FeatureGlobal features are enabled on all glyphs.
	FeatureGlobal FeatureFlags = 1 << iota
	// FeaturePerSyllable features do not match across syllable boundaries.
	FeaturePerSyllable
)

// FeaturePlanner is the plan-time interface for collecting features.
type FeaturePlanner interface {
	// EnableFeature adds a global feature to the current stage.
	EnableFeature(tag ot.Tag)
	// AddFeature adds a feature to the current stage.
	AddFeature(tag ot.Tag, flags FeatureFlags)
	// DisableFeature removes a feature from the plan.
	DisableFeature(tag ot.Tag)
	// AddGSUBPause ends the current stage. fn is called after GSUB lookups of
	// the stage have been applied; it may be nil.
	AddGSUBPause(fn PauseHook)
	// HasFeature reports whether a feature has been planned.
	HasFeature(tag ot.Tag) bool
}

// PauseHook may mutate run data between GSUB stages.
type PauseHook func(run *Run) error

// ShapingEngine is the mandatory interface of shaping engines.
type ShapingEngine interface {
	// Name identifies the engine in traces.
	Name() string
	// MarkZeroing tells when mark advances are set to zero.
	MarkZeroing() otlayout.MarkZeroing
}

// ShapingEnginePolicy exposes policy decisions used by the base pipeline.
type ShapingEnginePolicy interface {
	NormalizationPreference() NormalizationMode
}

// ShapingEnginePlanHooks exposes the plan-time hook.
type ShapingEnginePlanHooks interface {
	// CollectFeatures plans the features of the engine. It is called after
	// the direction features have been planned and before the common ones.
	CollectFeatures(plan FeaturePlanner, ctx SelectionContext)
}

// ShapingEngineOverrideHook exposes a plan-time hook called after the common
// features have been planned, e.g. to disable some of them.
type ShapingEngineOverrideHook interface {
	OverrideFeatures(plan FeaturePlanner)
}

// ShapingEngineAssignHook exposes the hook to assign features to glyphs.
// Engines may change the buffer in any way, as long as every glyph keeps
// its shaping data consistent.
type ShapingEngineAssignHook interface {
	AssignFeatures(run *Run) error
}

// ShapingEnginePostprocessHook exposes a hook after GSUB is complete and
// before glyphs are positioned.
type ShapingEnginePostprocessHook interface {
	PostprocessRun(run *Run) error
}
