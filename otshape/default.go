package otshape

import "github.com/npillmayer/typeshape/otlayout"

// DefaultShaper is the shaping engine for scripts without script specific
// shaping requirements, e.g. Latin, Greek or Cyrillic. All of its features
// are planned by Shape.
type DefaultShaper struct{}

var _ ShapingEngine = DefaultShaper{}

// Name is part of interface ShapingEngine.
func (DefaultShaper) Name() string { return "default" }

// MarkZeroing is part of interface ShapingEngine.
func (DefaultShaper) MarkZeroing() otlayout.MarkZeroing { return otlayout.MarkZeroingLate }

// NoShaper applies the features of the font without any preparation: no
// normalization takes place and mark advances are left alone.
type NoShaper struct{}

var (
	_ ShapingEngine       = NoShaper{}
	_ ShapingEnginePolicy = NoShaper{}
)

// Name is part of interface ShapingEngine.
func (NoShaper) Name() string { return "none" }

// MarkZeroing is part of interface ShapingEngine.
func (NoShaper) MarkZeroing() otlayout.MarkZeroing { return otlayout.MarkZeroingNone }

// NormalizationPreference is part of interface ShapingEnginePolicy.
func (NoShaper) NormalizationPreference() NormalizationMode { return NormalizationNone }
