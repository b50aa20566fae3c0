package otuse

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
	"github.com/npillmayer/typeshape/otshape/otarabic"
)

var (
	tagRphf = ot.T("rphf")
	tagPref = ot.T("pref")

	// applied to each cluster before the reph and pre-base forms
	preprocessingFeatures = []ot.Tag{ot.T("locl"), ot.T("ccmp"), ot.T("nukt"), ot.T("akhn")}
	// orthographic unit shaping, applied to each cluster
	basicFeatures = []ot.Tag{
		ot.T("rkrf"), ot.T("abvf"), ot.T("blwf"), ot.T("half"),
		ot.T("pstf"), ot.T("vatu"), ot.T("cjct"),
	}
	// enabled by the joining forms of the glyphs
	topographicalFeatures = []ot.Tag{ot.T("isol"), ot.T("init"), ot.T("medi"), ot.T("fina")}
	// standard typographic presentation
	otherFeatures = []ot.Tag{ot.T("abvs"), ot.T("blws"), ot.T("haln"), ot.T("pres"), ot.T("psts")}
)

// Shaper is the Universal Shaping Engine.
type Shaper struct{}

var (
	_ otshape.ShapingEngine           = Shaper{}
	_ otshape.ShapingEnginePlanHooks  = Shaper{}
	_ otshape.ShapingEngineAssignHook = Shaper{}
)

// New returns the Universal Shaping Engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name is part of interface otshape.ShapingEngine.
func (Shaper) Name() string {
	return "use"
}

// MarkZeroing is part of interface otshape.ShapingEngine.
func (Shaper) MarkZeroing() otlayout.MarkZeroing {
	return otlayout.MarkZeroingEarly
}

// CollectFeatures plans the feature groups of the engine, separated by the
// pauses which segment and re-order clusters.
func (Shaper) CollectFeatures(plan otshape.FeaturePlanner, ctx otshape.SelectionContext) {
	const perCluster = otshape.FeatureGlobal | otshape.FeaturePerSyllable
	plan.AddGSUBPause(setupClusters)
	for _, tag := range preprocessingFeatures {
		plan.AddFeature(tag, perCluster)
	}
	plan.AddGSUBPause(clearSubstitutionFlags)
	plan.AddFeature(tagRphf, otshape.FeaturePerSyllable)
	plan.AddGSUBPause(recordReph)
	plan.AddFeature(tagPref, perCluster)
	plan.AddGSUBPause(recordPref)
	for _, tag := range basicFeatures {
		plan.AddFeature(tag, perCluster)
	}
	plan.AddGSUBPause(reorder)
	for _, tag := range topographicalFeatures {
		plan.AddFeature(tag, otshape.FeatureNone)
	}
	plan.AddGSUBPause(nil)
	for _, tag := range otherFeatures {
		plan.EnableFeature(tag)
	}
}

// AssignFeatures classifies the code points of the run. For scripts joining
// like Arabic, it enables the topographical features from the joining forms.
func (Shaper) AssignFeatures(run *otshape.Run) error {
	buf := run.Buffer
	for i := range buf.Glyphs {
		gd := buf.At(i)
		gd.Engine = &otlayout.EngineInfo{Category: uint8(classify(gd.CodePoint))}
	}
	if !joinsLikeArabic(run.Context.Script) {
		return nil
	}
	cps := make([]rune, buf.Len())
	for i := range buf.Glyphs {
		cps[i] = buf.At(i).CodePoint
	}
	for i, form := range otarabic.JoiningForms(cps) {
		if tag := form.Feature(); tag != 0 {
			buf.EnableFeature(i, tag)
		}
	}
	return nil
}

// joinsLikeArabic reports whether a script shaped by this engine has cursive
// joining.
func joinsLikeArabic(script language.Script) bool {
	switch script {
	case language.Mongolian, language.Nko, language.Phags_Pa, language.Mandaic,
		language.Manichaean, language.Psalter_Pahlavi, language.Adlam, language.Hanifi_Rohingya,
		language.Sogdian, language.Chorasmian, language.Old_Uyghur:
		return true
	}
	return false
}

// setTopographicalForms lets clusters join like the letters of Arabic text:
// a cluster following another one is final and makes the previous one
// initial or medial.
func setTopographicalForms(buf *otlayout.Buffer) {
	const ( // indices into topographicalFeatures
		isol = iota
		initial
		medi
		fina
		none
	)
	setForm := func(start, end, form int) {
		for i := start; i < end; i++ {
			for f, tag := range topographicalFeatures {
				if f == form {
					buf.EnableFeature(i, tag)
				} else {
					buf.DisableFeature(i, tag)
				}
			}
		}
	}
	lastForm, lastStart := none, 0
	clusters(buf, func(start, end int) {
		if clusterType(buf.At(start).Engine.SyllableType) == nonCluster {
			lastForm = none
			lastStart = start
			return
		}
		join := lastForm == fina || lastForm == isol
		if join {
			if lastForm == fina {
				setForm(lastStart, start, medi)
			} else {
				setForm(lastStart, start, initial)
			}
			lastForm = fina
		} else {
			lastForm = isol
		}
		setForm(start, end, lastForm)
		lastStart = start
	})
}

func clearSubstitutionFlags(run *otshape.Run) error {
	for i := range run.Buffer.Glyphs {
		run.Buffer.At(i).Substituted = false
	}
	return nil
}

// recordReph marks a glyph substituted by rphf as repha.
func recordReph(run *otshape.Run) error {
	buf := run.Buffer
	clusters(buf, func(start, end int) {
		for i := start; i < end && buf.HasFeature(i, tagRphf); i++ {
			if gd := buf.At(i); gd.Substituted {
				gd.Engine.Category = uint8(catR)
				break
			}
		}
	})
	return clearSubstitutionFlags(run)
}

// recordPref marks a glyph substituted by pref as pre-base vowel, as both
// move the same way.
func recordPref(run *otshape.Run) error {
	buf := run.Buffer
	clusters(buf, func(start, end int) {
		for i := start; i < end; i++ {
			if gd := buf.At(i); gd.Substituted {
				gd.Engine.Category = uint8(catVPre)
				break
			}
		}
	})
	return nil
}

func isHalant(gd *otlayout.GlyphShapingData) bool {
	return !gd.Ligated && isHalantCategory(categoryOf(gd))
}

// reorder moves a repha towards the end of its cluster and pre-base vowels
// to its start.
func reorder(run *otshape.Run) error {
	buf := run.Buffer
	clusters(buf, func(start, end int) {
		switch clusterType(buf.At(start).Engine.SyllableType) {
		case viramaTerminatedCluster, sakotTerminatedCluster, standardCluster,
			symbolCluster, brokenCluster:
			reorderCluster(buf, start, end)
		}
	})
	return nil
}

func reorderCluster(buf *otlayout.Buffer, start, end int) {
	if categoryOf(buf.At(start)) == catR && end-start > 1 {
		for i := start + 1; i < end; i++ {
			postBase := isPostBase(categoryOf(buf.At(i))) || isHalant(buf.At(i))
			if !postBase && i < end-1 {
				continue
			}
			if postBase {
				i--
			}
			buf.MergeClusters(start, i+1)
			buf.Move(start, i)
			break
		}
	}
	j := start
	for i := start; i < end; i++ {
		gd := buf.At(i)
		if isHalant(gd) {
			j = i + 1
			continue
		}
		cat := categoryOf(gd)
		if (cat == catVPre || cat == catVMPre) && gd.LigatureComponent == 0 && j < i {
			buf.MergeClusters(j, i+1)
			buf.Move(i, j)
		}
	}
}
