package otshape

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/typeshape/ot"
)

type planTable uint8

const (
	planGSUB planTable = iota
	planGPOS
)

func (t planTable) String() string {
	if t == planGPOS {
		return "GPOS"
	}
	return "GSUB"
}

func (t planTable) tag() ot.Tag {
	if t == planGPOS {
		return ot.TagGPOS
	}
	return ot.TagGSUB
}

type plannedFeature struct {
	tag   ot.Tag
	flags FeatureFlags
	stage int
}

func (f plannedFeature) global() bool {
	return f.flags&FeatureGlobal != 0
}

// lookupOp applies one lookup for glyphs having any of features enabled.
type lookupOp struct {
	index       int
	features    []ot.Tag
	perSyllable bool
}

type stage struct {
	lookups []lookupOp
	pause   PauseHook
}

// --- Collecting features ---------------------------------------------------

// planBuilder collects features in stages. It implements FeaturePlanner.
type planBuilder struct {
	features []plannedFeature
	pauses   []PauseHook // pauses[i] ends stage i
}

var _ FeaturePlanner = (*planBuilder)(nil)

func (pb *planBuilder) stage() int {
	return len(pb.pauses)
}

func (pb *planBuilder) EnableFeature(tag ot.Tag) {
	pb.AddFeature(tag, FeatureGlobal)
}

// AddFeature adds a feature to the current stage. A feature added a second
// time stays in its stage, and becomes global if either one is global.
func (pb *planBuilder) AddFeature(tag ot.Tag, flags FeatureFlags) {
	for i := range pb.features {
		if pb.features[i].tag == tag {
			pb.features[i].flags |= flags
			return
		}
	}
	pb.features = append(pb.features, plannedFeature{tag: tag, flags: flags, stage: pb.stage()})
}

func (pb *planBuilder) DisableFeature(tag ot.Tag) {
	pb.features = slices.DeleteFunc(pb.features, func(f plannedFeature) bool {
		return f.tag == tag
	})
}

func (pb *planBuilder) AddGSUBPause(fn PauseHook) {
	pb.pauses = append(pb.pauses, fn)
}

func (pb *planBuilder) HasFeature(tag ot.Tag) bool {
	return slices.ContainsFunc(pb.features, func(f plannedFeature) bool {
		return f.tag == tag
	})
}

// --- Compiled plans --------------------------------------------------------

// Plan is the result of feature planning for a run: the language systems
// selected from the font and the lookups to apply, in stages.
type Plan struct {
	ScriptTag ot.Tag // script tag selected from GSUB, or from GPOS if no GSUB
	LangTag   ot.Tag // requested language system tag
	features  []plannedFeature
	langSys   [2]*ot.LangSys // GSUB, GPOS
	gsub      []stage
	gpos      []lookupOp
	font      *ot.Font
}

// compile resolves the collected features against the layout tables of a font.
func (pb *planBuilder) compile(otf *ot.Font, scriptTags []ot.Tag, langTag ot.Tag) *Plan {
	plan := &Plan{LangTag: langTag, font: otf}
	for _, t := range []planTable{planGSUB, planGPOS} {
		lt := otf.Table(t.tag())
		script := lt.SelectScript(scriptTags...)
		if script == nil {
			continue
		}
		if plan.ScriptTag == 0 {
			plan.ScriptTag = script.Tag
		}
		ls := script.LanguageSystem(langTag)
		plan.langSys[t] = ls
		if ls != nil && ls.RequiredFeature != ot.NoRequiredFeature {
			if f := lt.Feature(int(ls.RequiredFeature)); f != nil && !pb.HasFeature(f.Tag) {
				tracer().Debugf("plan: required feature %s", f.Tag)
				pb.features = slices.Insert(pb.features, 0, plannedFeature{
					tag: f.Tag, flags: FeatureGlobal,
				})
			}
		}
	}
	plan.features = slices.Clone(pb.features)
	plan.gsub = make([]stage, len(pb.pauses)+1)
	for s := range plan.gsub {
		plan.gsub[s].lookups = plan.collectLookups(planGSUB, func(f plannedFeature) bool {
			return f.stage == s
		})
		if s < len(pb.pauses) {
			plan.gsub[s].pause = pb.pauses[s]
		}
	}
	plan.gpos = plan.collectLookups(planGPOS, func(plannedFeature) bool { return true })
	tracer().Debugf("plan: script %s, language %s, %d GSUB stages, %d GPOS lookups",
		plan.ScriptTag, langTag, len(plan.gsub), len(plan.gpos))
	return plan
}

// collectLookups returns the lookups of the selected features, in lookup list
// order. A lookup shared by several features is applied once, for glyphs
// having any of these features enabled.
func (plan *Plan) collectLookups(t planTable, selected func(plannedFeature) bool) []lookupOp {
	lt := plan.font.Table(t.tag())
	ls := plan.langSys[t]
	if lt == nil || ls == nil {
		return nil
	}
	seen := bitset.New(uint(lt.LookupCount()))
	ops := make(map[int]*lookupOp)
	for _, f := range plan.features {
		if !selected(f) {
			continue
		}
		for _, inx := range lt.FeatureLookups(ls, f.tag) {
			op, ok := ops[inx]
			if !ok {
				op = &lookupOp{index: inx}
				ops[inx] = op
				seen.Set(uint(inx))
			}
			if !slices.Contains(op.features, f.tag) {
				op.features = append(op.features, f.tag)
			}
			op.perSyllable = op.perSyllable || f.flags&FeaturePerSyllable != 0
		}
	}
	lookups := make([]lookupOp, 0, seen.Count())
	for i, ok := seen.NextSet(0); ok; i, ok = seen.NextSet(i + 1) {
		lookups = append(lookups, *ops[int(i)])
	}
	return lookups
}

// Features returns the tags of the planned features, in planning order.
func (plan *Plan) Features() []ot.Tag {
	tags := make([]ot.Tag, len(plan.features))
	for i, f := range plan.features {
		tags[i] = f.tag
	}
	return tags
}

// HasFeature reports whether a feature is planned.
func (plan *Plan) HasFeature(tag ot.Tag) bool {
	return slices.ContainsFunc(plan.features, func(f plannedFeature) bool {
		return f.tag == tag
	})
}

// FeatureLookups returns the GSUB or GPOS lookups of a feature, as enabled by
// the language system selected for the run.
func (plan *Plan) FeatureLookups(table ot.Tag, tag ot.Tag) []int {
	t := planGSUB
	if table == ot.TagGPOS {
		t = planGPOS
	}
	return plan.font.Table(table).FeatureLookups(plan.langSys[t], tag)
}

// StageCount returns the number of GSUB stages.
func (plan *Plan) StageCount() int {
	return len(plan.gsub)
}

func (plan *Plan) globalFeatures() []ot.Tag {
	var tags []ot.Tag
	for _, f := range plan.features {
		if f.global() {
			tags = append(tags, f.tag)
		}
	}
	return tags
}
