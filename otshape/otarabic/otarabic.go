package otarabic

import (
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"
)

var (
	tagStch = ot.T("stch")
	tagCCMP = ot.T("ccmp")
	tagLocl = ot.T("locl")
	tagRlig = ot.T("rlig")
	tagCalt = ot.T("calt")
	tagRclt = ot.T("rclt")
	tagLiga = ot.T("liga")
	tagClig = ot.T("clig")
	tagMset = ot.T("mset")
)

// formFeatures are the feature tags of the positional forms, indexed by Form.
var formFeatures = [formCount]ot.Tag{
	ot.T("isol"), ot.T("fina"), ot.T("fin2"), ot.T("fin3"),
	ot.T("medi"), ot.T("med2"), ot.T("init"),
}

// Feature returns the feature tag of a positional form, or 0 for FormNone.
func (f Form) Feature() ot.Tag {
	if f < 0 || f >= formCount {
		return 0
	}
	return formFeatures[f]
}

// Shaper is the shaping engine for Arabic, Syriac and other joining scripts.
type Shaper struct{}

var (
	_ otshape.ShapingEngine           = Shaper{}
	_ otshape.ShapingEnginePlanHooks  = Shaper{}
	_ otshape.ShapingEngineAssignHook = Shaper{}
)

// New returns the Arabic shaping engine.
func New() otshape.ShapingEngine {
	return Shaper{}
}

// Name is part of interface otshape.ShapingEngine.
func (Shaper) Name() string {
	return "arabic"
}

// MarkZeroing is part of interface otshape.ShapingEngine.
func (Shaper) MarkZeroing() otlayout.MarkZeroing {
	return otlayout.MarkZeroingLate
}

// CollectFeatures plans the positional forms, each in a stage of its own, so
// that a form applies to the results of the forms before it.
func (Shaper) CollectFeatures(plan otshape.FeaturePlanner, ctx otshape.SelectionContext) {
	plan.EnableFeature(tagStch)
	plan.AddGSUBPause(nil)
	plan.EnableFeature(tagCCMP)
	plan.EnableFeature(tagLocl)
	plan.AddGSUBPause(nil)
	for _, tag := range formFeatures {
		plan.AddFeature(tag, otshape.FeatureNone)
		plan.AddGSUBPause(nil)
	}
	plan.EnableFeature(tagRlig)
	plan.AddGSUBPause(nil)
	plan.EnableFeature(tagCalt)
	plan.AddGSUBPause(nil)
	plan.EnableFeature(tagRclt)
	plan.EnableFeature(tagLiga)
	plan.EnableFeature(tagClig)
	plan.EnableFeature(tagMset)
}

// AssignFeatures re-orders modifier combining marks and enables the feature
// of the positional form of every glyph. If the font has no lookups for
// positional forms, glyphs are mapped to presentation forms instead.
func (Shaper) AssignFeatures(run *otshape.Run) error {
	buf := run.Buffer
	reorderModifierMarks(buf)
	cps := make([]rune, buf.Len())
	for i := range buf.Glyphs {
		cps[i] = buf.Glyphs[i].CodePoint
	}
	forms := JoiningForms(cps)
	fallback := !hasFormLookups(run.Plan)
	for i, form := range forms {
		if form == FormNone {
			continue
		}
		buf.EnableFeature(i, form.Feature())
		if fallback {
			if cp, ok := presentationForm(cps[i], form); ok && run.HasGlyph(cp) {
				g, _ := run.GlyphIndex(cp)
				buf.ReplaceGlyph(i, g)
			}
		}
	}
	tracer().Debugf("arabic: joining forms %v", forms)
	return nil
}

func hasFormLookups(plan *otshape.Plan) bool {
	for _, tag := range formFeatures {
		if len(plan.FeatureLookups(ot.TagGSUB, tag)) > 0 {
			return true
		}
	}
	return false
}

// --- Mark re-ordering ------------------------------------------------------

// modifier combining marks, which have to precede other marks of the same
// combining class
var modifierCombiningMarks = []rune{
	0x0654, // ARABIC HAMZA ABOVE
	0x0655, // ARABIC HAMZA BELOW
	0x0658, // ARABIC MARK NOON GHUNNA
	0x06DC, // ARABIC SMALL HIGH SEEN
	0x06E3, // ARABIC SMALL LOW SEEN
	0x06E7, // ARABIC SMALL HIGH YEH
	0x06E8, // ARABIC SMALL HIGH NOON
	0x08CA, // ARABIC SMALL HIGH FARSI YEH
	0x08CB, // ARABIC SMALL HIGH YEH BARREE WITH TWO DOTS BELOW
	0x08CD, // ARABIC SMALL HIGH ZAH
	0x08CE, // ARABIC LARGE ROUND DOT ABOVE
	0x08CF, // ARABIC LARGE ROUND DOT BELOW
	0x08D3, // ARABIC SMALL LOW WAW
	0x08F3, // ARABIC SMALL HIGH WAW
}

func isModifierCombiningMark(cp rune) bool {
	for _, m := range modifierCombiningMarks {
		if m == cp {
			return true
		}
	}
	return false
}

func combiningClass(cp rune) uint8 {
	return norm.NFD.PropertiesString(string(cp)).CCC()
}

// reorderModifierMarks moves modifier combining marks of class 220 and 230
// to the front of their sequence of marks.
func reorderModifierMarks(buf *otlayout.Buffer) {
	for i := 0; i < buf.Len(); {
		if combiningClass(buf.At(i).CodePoint) == 0 {
			i++
			continue
		}
		end := i + 1
		for end < buf.Len() && combiningClass(buf.At(end).CodePoint) != 0 {
			end++
		}
		reorderMarkRun(buf, i, end)
		i = end
	}
}

func reorderMarkRun(buf *otlayout.Buffer, start, end int) {
	i := start
	for _, cc := range []uint8{220, 230} {
		for i < end && combiningClass(buf.At(i).CodePoint) < cc {
			i++
		}
		if i == end {
			return
		}
		if combiningClass(buf.At(i).CodePoint) > cc {
			continue
		}
		j := i
		for j < end && combiningClass(buf.At(j).CodePoint) == cc && isModifierCombiningMark(buf.At(j).CodePoint) {
			j++
		}
		if i == j {
			continue
		}
		buf.MergeClusters(start, j)
		for k := i; k < j; k++ {
			buf.Move(k, start+k-i)
		}
		start += j - i
		i = j
	}
}

// --- Presentation forms ----------------------------------------------------

var (
	presentationFormsOnce sync.Once
	presentationForms     map[rune][formCount]rune
)

// presentationForm returns the code point of the presentation form of an
// Arabic letter, from the Arabic Presentation Forms blocks.
func presentationForm(cp rune, form Form) (rune, bool) {
	presentationFormsOnce.Do(func() {
		presentationForms = make(map[rune][formCount]rune, 256)
		collectPresentationForms(0xFB50, 0xFDFF)
		collectPresentationForms(0xFE70, 0xFEFF)
	})
	forms, ok := presentationForms[cp]
	if !ok {
		return 0, false
	}
	switch form {
	case FormFin2, FormFin3:
		form = FormFina
	case FormMed2:
		form = FormMedi
	}
	if forms[form] != 0 {
		return forms[form], true
	}
	return 0, false
}

func collectPresentationForms(from, to rune) {
	for u := from; u <= to; u++ {
		form, ok := presentationFormFromName(u)
		if !ok {
			continue
		}
		base := presentationBase(u)
		if base == 0 {
			continue
		}
		forms := presentationForms[base]
		if forms[form] == 0 {
			forms[form] = u
			presentationForms[base] = forms
		}
	}
}

func presentationFormFromName(u rune) (Form, bool) {
	name := runenames.Name(u)
	if !strings.HasPrefix(name, "ARABIC LETTER") {
		return FormNone, false
	}
	switch {
	case strings.HasSuffix(name, "ISOLATED FORM"):
		return FormIsol, true
	case strings.HasSuffix(name, "FINAL FORM"):
		return FormFina, true
	case strings.HasSuffix(name, "INITIAL FORM"):
		return FormInit, true
	case strings.HasSuffix(name, "MEDIAL FORM"):
		return FormMedi, true
	}
	return FormNone, false
}

// presentationBase returns the letter a presentation form decomposes to, if
// it is a single letter.
func presentationBase(u rune) rune {
	d := []rune(norm.NFKC.String(string(u)))
	if len(d) != 1 || !unicode.In(d[0], unicode.Arabic) {
		return 0
	}
	return d[0]
}
