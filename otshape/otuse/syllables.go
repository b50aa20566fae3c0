package otuse

import (
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
	"github.com/npillmayer/typeshape/otshape/internal/fsm"
)

// clusterType is the type of a cluster, i.e. the grammar rule matching it.
type clusterType uint8

const (
	viramaTerminatedCluster clusterType = iota
	sakotTerminatedCluster
	standardCluster
	numberJoinerTerminatedCluster
	numeralCluster
	symbolCluster
	brokenCluster
	nonCluster
)

var clusterTypeNames = []string{
	"virama terminated", "sakot terminated", "standard", "number joiner terminated",
	"numeral", "symbol", "broken", "non-cluster",
}

func (t clusterType) String() string {
	if int(t) >= len(clusterTypeNames) {
		return "?"
	}
	return clusterTypeNames[t]
}

func sym(cats ...category) fsm.Expr {
	syms := make([]fsm.Symbol, len(cats))
	for i, c := range cats {
		syms[i] = fsm.Symbol(c)
	}
	return fsm.Sym(syms...)
}

// clusterMachine recognizes the clusters of the Universal Shaping Engine.
// Vowel signs, vowel modifiers and finals may come in any order of their
// positions.
var clusterMachine = func() *fsm.Machine {
	h := sym(catH, catIS, catSk)
	consonantModifiers := fsm.Seq(fsm.Star(sym(catCMAbv)), fsm.Star(sym(catCMBlw)),
		fsm.Star(fsm.Seq(h, sym(catB), fsm.Star(sym(catCMAbv, catCMBlw)))))
	medials := fsm.Seq(fsm.Opt(sym(catMPre)), fsm.Opt(sym(catMAbv)), fsm.Opt(sym(catMBlw)), fsm.Opt(sym(catMPst)))
	vowels := fsm.Alt(fsm.Star(sym(catVPre, catVAbv, catVBlw, catVPst)), sym(catH))
	vowelModifiers := fsm.Star(sym(catVMPre, catVMAbv, catVMBlw, catVMPst))
	finals := fsm.Star(sym(catFAbv, catFBlw, catFPst))
	start := fsm.Seq(fsm.Opt(sym(catR)), sym(catB, catGB))
	middle := fsm.Seq(consonantModifiers, medials, vowels, vowelModifiers,
		fsm.Star(fsm.Seq(sym(catSk), sym(catB))))
	tail := fsm.Seq(middle, finals)
	numberJoinerTail := fsm.Seq(fsm.Star(fsm.Seq(sym(catHN), sym(catN))), sym(catHN))
	numeralTail := fsm.Plus(fsm.Seq(sym(catHN), sym(catN)))
	viramaTail := fsm.Seq(consonantModifiers, sym(catIS))
	sakotTail := fsm.Seq(middle, sym(catSk))
	anyTail := fsm.Alt(tail, sakotTail, viramaTail)
	return fsm.Compile(
		fsm.Rule{Name: viramaTerminatedCluster.String(), Expr: fsm.Seq(start, viramaTail)},
		fsm.Rule{Name: sakotTerminatedCluster.String(), Expr: fsm.Seq(start, sakotTail)},
		fsm.Rule{Name: standardCluster.String(), Expr: fsm.Seq(start, tail)},
		fsm.Rule{Name: numberJoinerTerminatedCluster.String(), Expr: fsm.Seq(sym(catN), numberJoinerTail)},
		fsm.Rule{Name: numeralCluster.String(), Expr: fsm.Seq(sym(catN), fsm.Opt(numeralTail))},
		fsm.Rule{Name: symbolCluster.String(), Expr: fsm.Seq(sym(catO, catGB), fsm.Opt(anyTail))},
		fsm.Rule{Name: brokenCluster.String(), Expr: fsm.Seq(fsm.Opt(sym(catR)),
			fsm.Alt(anyTail, numberJoinerTail, numeralTail))},
	)
}()

type clusterInfo struct {
	serial uint16
	typ    clusterType
}

// findClusters numbers the clusters of a run, starting at 1. Joiners
// followed by a mark are not seen by the grammar and belong to the cluster
// of the mark.
func findClusters(cats []category) []clusterInfo {
	var syms []fsm.Symbol
	var index []int // position in cats of each symbol
	for i, c := range cats {
		if (c == catCGJ || c == catZWNJ) && i+1 < len(cats) && isMark(cats[i+1]) {
			continue
		}
		syms = append(syms, fsm.Symbol(c))
		index = append(index, i)
	}
	infos := make([]clusterInfo, len(cats))
	serial := uint16(0)
	clusterMachine.Segment(syms, func(start, end, rule int) {
		serial++
		if serial == 0 {
			serial = 1
		}
		typ := nonCluster
		if rule >= 0 {
			typ = clusterType(rule)
		}
		for k := start; k < end; k++ {
			infos[index[k]] = clusterInfo{serial: serial, typ: typ}
		}
	})
	for i := len(cats) - 1; i >= 0; i-- {
		if infos[i].serial == 0 && i+1 < len(cats) {
			infos[i] = infos[i+1]
		}
	}
	return infos
}

func categoryOf(gd *otlayout.GlyphShapingData) category {
	if gd.Engine == nil {
		return catO
	}
	return category(gd.Engine.Category)
}

// setupClusters segments the run into clusters, inserts dotted circles into
// broken clusters and enables the reph and topographical features.
func setupClusters(run *otshape.Run) error {
	buf := run.Buffer
	cats := make([]category, buf.Len())
	for i := range buf.Glyphs {
		cats[i] = categoryOf(buf.At(i))
	}
	for i, ci := range findClusters(cats) {
		e := buf.At(i).Engine
		e.Syllable = ci.serial
		e.SyllableType = uint8(ci.typ)
	}
	insertDottedCircles(run)
	clusters(buf, func(start, end int) {
		limit := min(3, end-start)
		if categoryOf(buf.At(start)) == catR {
			limit = 1
		}
		buf.EnableFeatures(start, start+limit, tagRphf)
	})
	if !joinsLikeArabic(run.Context.Script) {
		setTopographicalForms(buf)
	}
	return nil
}

func insertDottedCircles(run *otshape.Run) {
	buf := run.Buffer
	for i := 0; i < buf.Len(); i++ {
		e := buf.At(i).Engine
		if clusterType(e.SyllableType) != brokenCluster {
			continue
		}
		if i > 0 && buf.At(i-1).Engine.Syllable == e.Syllable {
			continue
		}
		serial, cluster := e.Syllable, buf.At(i).Cluster
		at := i
		if category(e.Category) == catR {
			at++
		}
		if !run.InsertDottedCircle(at, cluster) {
			return
		}
		dc := buf.At(at).Engine
		dc.Category = uint8(catB)
		dc.Syllable = serial
		dc.SyllableType = uint8(brokenCluster)
		tracer().Debugf("use: dotted circle for broken cluster at %d", at)
		i = at
	}
}

// clusters calls fn for every cluster of a buffer.
func clusters(buf *otlayout.Buffer, fn func(start, end int)) {
	for start := 0; start < buf.Len(); {
		serial := buf.At(start).Engine.Syllable
		end := start + 1
		for end < buf.Len() && buf.At(end).Engine.Syllable == serial {
			end++
		}
		fn(start, end)
		start = end
	}
}
