/*
Package fsm compiles regular expressions over small integer symbols into
deterministic finite automata, and segments symbol strings with them.

Script shapers classify code points into shaping categories and describe
syllables as regular expressions over these categories. A Machine is compiled
once per grammar and is safe for concurrent use afterwards.

	consonant := fsm.Sym(C, Ra)
	m := fsm.Compile(
		fsm.Rule{Name: "consonant syllable", Expr: fsm.Seq(consonant, fsm.Star(fsm.Seq(fsm.Sym(H), consonant)))},
		fsm.Rule{Name: "broken", Expr: fsm.Plus(fsm.Sym(M))},
	)
	m.Segment(categories, func(start, end, rule int) { … })

Segmentation takes the longest match at each position. If two rules match
the same longest input, the rule listed first wins.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fsm

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'typeshape.shaper'
func tracer() tracing.Trace {
	return tracing.Select("typeshape.shaper")
}

// Symbol is an input symbol, usually a shaping category.
type Symbol = uint8

type exprKind uint8

const (
	exprEmpty exprKind = iota
	exprSym
	exprSeq
	exprAlt
	exprStar
)

// Expr is a regular expression over symbols.
type Expr struct {
	kind exprKind
	syms []Symbol
	subs []Expr
}

// Empty matches the empty string.
func Empty() Expr {
	return Expr{kind: exprEmpty}
}

// Sym matches any one of the given symbols.
func Sym(symbols ...Symbol) Expr {
	return Expr{kind: exprSym, syms: symbols}
}

// Seq matches a concatenation of expressions.
func Seq(exprs ...Expr) Expr {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return Expr{kind: exprSeq, subs: exprs}
}

// Alt matches any one of the given expressions.
func Alt(exprs ...Expr) Expr {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return Expr{kind: exprAlt, subs: exprs}
}

// Star matches zero or more repetitions of e.
func Star(e Expr) Expr {
	return Expr{kind: exprStar, subs: []Expr{e}}
}

// Plus matches one or more repetitions of e.
func Plus(e Expr) Expr {
	return Seq(e, Star(e))
}

// Opt matches e or the empty string.
func Opt(e Expr) Expr {
	return Alt(e, Empty())
}

// Repeat matches between min and max repetitions of e.
func Repeat(e Expr, min, max int) Expr {
	var seq []Expr
	for range min {
		seq = append(seq, e)
	}
	for range max - min {
		seq = append(seq, Opt(e))
	}
	if len(seq) == 0 {
		return Empty()
	}
	return Seq(seq...)
}

// Rule is a named expression of a grammar.
type Rule struct {
	Name string
	Expr Expr
}

// --- NFA -------------------------------------------------------------------

type nstate struct {
	on     []Symbol // symbols of the single outgoing symbol edge
	to     int      // target of the symbol edge
	eps    []int
	accept int // rule index or -1
}

type nfa struct {
	states []nstate
	maxSym int
}

func (n *nfa) add() int {
	n.states = append(n.states, nstate{to: -1, accept: -1})
	return len(n.states) - 1
}

func (n *nfa) epsilon(from, to int) {
	n.states[from].eps = append(n.states[from].eps, to)
}

// build creates the Thompson fragment of e, returning its start and end state.
func (n *nfa) build(e Expr) (int, int) {
	s, t := n.add(), n.add()
	switch e.kind {
	case exprEmpty:
		n.epsilon(s, t)
	case exprSym:
		n.states[s].on = e.syms
		n.states[s].to = t
		for _, sym := range e.syms {
			n.maxSym = max(n.maxSym, int(sym))
		}
	case exprSeq:
		cur := s
		for _, sub := range e.subs {
			a, b := n.build(sub)
			n.epsilon(cur, a)
			cur = b
		}
		n.epsilon(cur, t)
	case exprAlt:
		for _, sub := range e.subs {
			a, b := n.build(sub)
			n.epsilon(s, a)
			n.epsilon(b, t)
		}
	case exprStar:
		a, b := n.build(e.subs[0])
		n.epsilon(s, a)
		n.epsilon(s, t)
		n.epsilon(b, a)
		n.epsilon(b, t)
	}
	return s, t
}

func (n *nfa) closure(set *bitset.BitSet) *bitset.BitSet {
	var stack []int
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		stack = append(stack, int(i))
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range n.states[s].eps {
			if !set.Test(uint(t)) {
				set.Set(uint(t))
				stack = append(stack, t)
			}
		}
	}
	return set
}

// --- DFA -------------------------------------------------------------------

// Machine is a compiled grammar.
type Machine struct {
	rules  []string
	nsym   int
	trans  []int32 // state × symbol → state, -1 for no transition
	accept []int   // state → rule index, -1 for non-accepting states
}

// Compile compiles the rules of a grammar into a Machine.
func Compile(rules ...Rule) *Machine {
	n := &nfa{}
	start := n.add()
	for i, r := range rules {
		a, b := n.build(r.Expr)
		n.epsilon(start, a)
		n.states[b].accept = i
	}
	m := &Machine{nsym: n.maxSym + 1}
	for _, r := range rules {
		m.rules = append(m.rules, r.Name)
	}
	initial := bitset.New(uint(len(n.states)))
	initial.Set(uint(start))
	queue := []*bitset.BitSet{n.closure(initial)}
	index := map[string]int{queue[0].String(): 0}
	for k := 0; k < len(queue); k++ {
		set := queue[k]
		m.accept = append(m.accept, acceptOf(n, set))
		for sym := range m.nsym {
			next := bitset.New(uint(len(n.states)))
			for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
				st := &n.states[i]
				if st.to >= 0 && slices.Contains(st.on, Symbol(sym)) {
					next.Set(uint(st.to))
				}
			}
			if next.None() {
				m.trans = append(m.trans, -1)
				continue
			}
			n.closure(next)
			key := next.String()
			target, ok := index[key]
			if !ok {
				target = len(queue)
				index[key] = target
				queue = append(queue, next)
			}
			m.trans = append(m.trans, int32(target))
		}
	}
	tracer().Debugf("fsm: compiled %d rules to %d states", len(rules), len(m.accept))
	return m
}

func acceptOf(n *nfa, set *bitset.BitSet) int {
	rule := -1
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if a := n.states[i].accept; a >= 0 && (rule < 0 || a < rule) {
			rule = a
		}
	}
	return rule
}

// StateCount returns the number of states of the automaton.
func (m *Machine) StateCount() int {
	return len(m.accept)
}

// RuleName returns the name of rule number i.
func (m *Machine) RuleName(i int) string {
	if i < 0 || i >= len(m.rules) {
		return "<none>"
	}
	return m.rules[i]
}

// Longest returns the end of the longest match starting at input[start], and
// the rule matched. If no rule matches a non-empty prefix, rule is -1.
func (m *Machine) Longest(input []Symbol, start int) (end int, rule int) {
	end, rule = start, -1
	state := 0
	for p := start; p < len(input); p++ {
		sym := int(input[p])
		if sym >= m.nsym {
			break
		}
		next := m.trans[state*m.nsym+sym]
		if next < 0 {
			break
		}
		state = int(next)
		if r := m.accept[state]; r >= 0 {
			end, rule = p+1, r
		}
	}
	return end, rule
}

// Segment splits input into consecutive segments, calling fn for each one.
// Symbols not starting any match form segments of length 1 with rule -1.
func (m *Machine) Segment(input []Symbol, fn func(start, end, rule int)) {
	for p := 0; p < len(input); {
		end, rule := m.Longest(input, p)
		if rule < 0 {
			end = p + 1
		}
		fn(p, end, rule)
		p = end
	}
}
