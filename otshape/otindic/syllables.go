package otindic

import (
	"github.com/npillmayer/typeshape/otshape"
	"github.com/npillmayer/typeshape/otshape/internal/fsm"
)

// syllableType is the type of a syllable, i.e. the grammar rule matching it.
type syllableType uint8

const (
	consonantSyllable syllableType = iota
	vowelSyllable
	standaloneCluster
	symbolCluster
	brokenCluster
	nonIndicCluster
)

var syllableTypeNames = []string{
	"consonant syllable", "vowel syllable", "standalone cluster",
	"symbol cluster", "broken cluster", "non-Indic cluster",
}

func (t syllableType) String() string {
	if int(t) >= len(syllableTypeNames) {
		return "?"
	}
	return syllableTypeNames[t]
}

func sym(cats ...category) fsm.Expr {
	syms := make([]fsm.Symbol, len(cats))
	for i, c := range cats {
		syms[i] = fsm.Symbol(c)
	}
	return fsm.Sym(syms...)
}

// syllableMachine recognizes the syllables of Indic text. The rules are
// listed in order of syllableType.
var syllableMachine = func() *fsm.Machine {
	c := sym(catC, catRa)
	n := fsm.Seq(fsm.Opt(fsm.Seq(fsm.Opt(sym(catZWNJ)), sym(catRS))), fsm.Opt(fsm.Seq(sym(catN), fsm.Opt(sym(catN)))))
	z := sym(catZWJ, catZWNJ)
	reph := fsm.Alt(fsm.Seq(sym(catRa), sym(catH)), sym(catRepha))
	sm := sym(catSM)
	cn := fsm.Seq(c, fsm.Opt(sym(catZWJ)), fsm.Opt(n))
	symbol := fsm.Seq(sym(catSymbol), fsm.Opt(sym(catN)))
	matraGroup := fsm.Seq(fsm.Star(z), fsm.Alt(sym(catM), fsm.Seq(fsm.Opt(sm), sym(catMPst))),
		fsm.Opt(sym(catN)), fsm.Opt(sym(catH)))
	syllableTail := fsm.Seq(
		fsm.Opt(fsm.Seq(fsm.Opt(z), sm, fsm.Opt(sm), fsm.Opt(sym(catZWNJ)))),
		fsm.Star(sym(catA)))
	halantGroup := fsm.Seq(fsm.Opt(z), sym(catH), fsm.Opt(fsm.Seq(sym(catZWJ), fsm.Opt(sym(catN)))))
	finalHalantGroup := fsm.Alt(halantGroup, fsm.Seq(sym(catH), sym(catZWNJ)))
	medialGroup := fsm.Opt(sym(catCM))
	halantOrMatraGroup := fsm.Alt(finalHalantGroup, fsm.Star(matraGroup))
	complexTail := fsm.Seq(fsm.Star(fsm.Seq(halantGroup, cn)), medialGroup, halantOrMatraGroup, syllableTail)
	return fsm.Compile(
		fsm.Rule{Name: consonantSyllable.String(), Expr: fsm.Seq(
			fsm.Opt(sym(catRepha, catCS)), cn, complexTail)},
		fsm.Rule{Name: vowelSyllable.String(), Expr: fsm.Seq(
			fsm.Opt(reph), sym(catV), fsm.Opt(n), fsm.Alt(sym(catZWJ), complexTail))},
		fsm.Rule{Name: standaloneCluster.String(), Expr: fsm.Seq(
			fsm.Alt(fsm.Seq(fsm.Opt(sym(catRepha, catCS)), sym(catPlaceholder)),
				fsm.Seq(fsm.Opt(reph), sym(catDottedCircle))),
			fsm.Opt(n), complexTail)},
		fsm.Rule{Name: symbolCluster.String(), Expr: fsm.Seq(symbol, syllableTail)},
		fsm.Rule{Name: brokenCluster.String(), Expr: fsm.Seq(
			fsm.Opt(reph), fsm.Opt(n), complexTail)},
	)
}()

// findSyllables numbers the syllables of a run, starting at 1, and records
// their type with every glyph.
func findSyllables(buf []category) []syllableInfo {
	syms := make([]fsm.Symbol, len(buf))
	for i, c := range buf {
		syms[i] = fsm.Symbol(c)
	}
	infos := make([]syllableInfo, len(buf))
	serial := uint16(0)
	syllableMachine.Segment(syms, func(start, end, rule int) {
		serial++
		if serial == 0 {
			serial = 1
		}
		typ := nonIndicCluster
		if rule >= 0 {
			typ = syllableType(rule)
		}
		for i := start; i < end; i++ {
			infos[i] = syllableInfo{serial: serial, typ: typ}
		}
	})
	return infos
}

type syllableInfo struct {
	serial uint16
	typ    syllableType
}

// setupSyllables segments the run into syllables. Broken clusters get a
// dotted circle as their base, after a leading repha.
func setupSyllables(run *otshape.Run) error {
	buf := run.Buffer
	cats := make([]category, buf.Len())
	for i := range buf.Glyphs {
		cats[i] = categoryOf(buf.At(i))
	}
	for i, si := range findSyllables(cats) {
		e := buf.At(i).Engine
		e.Syllable = si.serial
		e.SyllableType = uint8(si.typ)
	}
	insertDottedCircles(run)
	return nil
}

func insertDottedCircles(run *otshape.Run) {
	buf := run.Buffer
	for i := 0; i < buf.Len(); i++ {
		e := buf.At(i).Engine
		if syllableType(e.SyllableType) != brokenCluster {
			continue
		}
		if i > 0 && buf.At(i-1).Engine.Syllable == e.Syllable {
			continue
		}
		syllable, cluster := e.Syllable, buf.At(i).Cluster
		at := i
		if category(e.Category) == catRepha {
			at++
		}
		if !run.InsertDottedCircle(at, cluster) {
			return
		}
		dc := buf.At(at).Engine
		dc.Category = uint8(catDottedCircle)
		dc.Position = uint8(posBaseC)
		dc.Syllable = syllable
		dc.SyllableType = uint8(brokenCluster)
		tracer().Debugf("indic: dotted circle for broken cluster at %d", at)
		i = at
	}
}
