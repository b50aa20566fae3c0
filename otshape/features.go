package otshape

import (
	"unicode"

	"github.com/npillmayer/typeshape/ot"
	"golang.org/x/text/unicode/bidi"
)

// Feature tags planned by Shape.
var (
	featureRVRN = ot.T("rvrn")
	featureFRAC = ot.T("frac")
	featureNUMR = ot.T("numr")
	featureDNOM = ot.T("dnom")

	// direction features: ltra, ltrm or rtla, rtlm
	ltrFeatures = []ot.Tag{ot.T("ltra"), ot.T("ltrm")}
	rtlFeatures = []ot.Tag{ot.T("rtla"), ot.T("rtlm")}

	commonFeatures = []ot.Tag{
		ot.T("abvm"), ot.T("blwm"), ot.T("ccmp"), ot.T("locl"),
		ot.T("mark"), ot.T("mkmk"), ot.T("rlig"),
	}
	horizontalFeatures = []ot.Tag{
		ot.T("calt"), ot.T("clig"), ot.T("curs"), ot.T("dist"),
		ot.T("kern"), ot.T("liga"), ot.T("rclt"),
	}
	verticalFeatures = []ot.Tag{ot.T("vert")}
)

// fractionSlash is U+2044 FRACTION SLASH.
const fractionSlash = '⁄'

// planPreprocess plans the features every run starts with.
func planPreprocess(pb *planBuilder, ctx SelectionContext) {
	pb.EnableFeature(featureRVRN)
	pb.AddGSUBPause(nil)
	if ctx.Direction == bidi.RightToLeft {
		for _, f := range rtlFeatures {
			pb.EnableFeature(f)
		}
	} else {
		for _, f := range ltrFeatures {
			pb.EnableFeature(f)
		}
	}
	pb.AddFeature(featureFRAC, FeatureNone)
	pb.AddFeature(featureNUMR, FeatureNone)
	pb.AddFeature(featureDNOM, FeatureNone)
}

// planPostprocess plans the common features, after the shaping engine has
// planned its features.
func planPostprocess(pb *planBuilder, ctx SelectionContext) {
	for _, f := range commonFeatures {
		pb.EnableFeature(f)
	}
	if ctx.Vertical {
		for _, f := range verticalFeatures {
			pb.EnableFeature(f)
		}
	} else {
		for _, f := range horizontalFeatures {
			pb.EnableFeature(f)
		}
	}
}

// planUserFeatures plans the features requested by the client. Features
// turned off for the whole run are removed from the plan.
func planUserFeatures(pb *planBuilder, opts Options) {
	for _, fr := range opts.Features {
		switch {
		case fr.On && fr.global():
			pb.EnableFeature(fr.Feature)
		case fr.On:
			pb.AddFeature(fr.Feature, FeatureNone)
		case fr.global():
			pb.DisableFeature(fr.Feature)
		}
	}
}

// assignGlobalFeatures enables the global features of a plan on every glyph,
// then applies the feature ranges of the client.
func assignGlobalFeatures(run *Run, opts Options) {
	buf := run.Buffer
	buf.EnableFeatures(0, buf.Len(), run.Plan.globalFeatures()...)
	for _, fr := range opts.Features {
		if fr.global() {
			continue
		}
		for i := range buf.Glyphs {
			if !fr.covers(buf.Glyphs[i].Cluster) {
				continue
			}
			if fr.On {
				buf.EnableFeature(i, fr.Feature)
			} else {
				buf.DisableFeature(i, fr.Feature)
			}
		}
	}
}

// assignFractions enables numr and frac on the digits before a fraction
// slash, frac on the slash and frac and dnom on the digits after it.
func assignFractions(run *Run) {
	if !run.Plan.HasFeature(featureFRAC) {
		return
	}
	buf := run.Buffer
	isDigit := func(i int) bool {
		return unicode.Is(unicode.Nd, buf.At(i).CodePoint)
	}
	for i := 0; i < buf.Len(); i++ {
		if buf.At(i).CodePoint != fractionSlash {
			continue
		}
		start, end := i, i+1
		for start > 0 && isDigit(start-1) {
			start--
		}
		for end < buf.Len() && isDigit(end) {
			end++
		}
		if start == i || end == i+1 {
			continue
		}
		buf.EnableFeatures(start, i, featureNUMR, featureFRAC)
		buf.EnableFeatures(i, i+1, featureFRAC)
		buf.EnableFeatures(i+1, end, featureFRAC, featureDNOM)
		tracer().Debugf("fraction at [%d,%d)", start, end)
		i = end - 1
	}
}
