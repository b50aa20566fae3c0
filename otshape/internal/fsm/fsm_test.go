package fsm

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const (
	X Symbol = iota
	C
	H
	M
	N
)

type segment struct {
	start, end, rule int
}

func segments(m *Machine, input []Symbol) []segment {
	var segs []segment
	m.Segment(input, func(start, end, rule int) {
		segs = append(segs, segment{start, end, rule})
	})
	return segs
}

func TestSyllableSegmentation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	cn := Seq(Sym(C), Opt(Sym(N)))
	m := Compile(
		Rule{Name: "consonant", Expr: Seq(Star(Seq(cn, Sym(H))), cn, Star(Sym(M)))},
		Rule{Name: "broken", Expr: Plus(Sym(M))},
	)
	input := []Symbol{C, H, C, N, M, X, M, M, C}
	assert.Equal(t, []segment{
		{0, 5, 0}, // C H C N M
		{5, 6, -1},
		{6, 8, 1},
		{8, 9, 0},
	}, segments(m, input))
	assert.Equal(t, "broken", m.RuleName(1))
	assert.Equal(t, "<none>", m.RuleName(-1))
}

func TestLongestMatchAndPriority(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	m := Compile(
		Rule{Name: "pair", Expr: Seq(Sym(C), Sym(H))},
		Rule{Name: "any", Expr: Plus(Sym(C, H))},
	)
	end, rule := m.Longest([]Symbol{C, H}, 0)
	assert.Equal(t, 2, end)
	assert.Equal(t, 0, rule, "first rule wins a tie")
	end, rule = m.Longest([]Symbol{C, H, C}, 0)
	assert.Equal(t, 3, end)
	assert.Equal(t, 1, rule, "longest match wins")
	end, rule = m.Longest([]Symbol{M, C}, 0)
	assert.Equal(t, 0, end)
	assert.Equal(t, -1, rule)
}

func TestRepeat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shaper")
	defer teardown()
	//
	m := Compile(Rule{Name: "marks", Expr: Seq(Sym(C), Repeat(Sym(M), 1, 2))})
	assert.Equal(t, []segment{{0, 3, 0}, {3, 4, -1}}, segments(m, []Symbol{C, M, M, M}))
	assert.Equal(t, []segment{{0, 1, -1}}, segments(m, []Symbol{C}))
	assert.Greater(t, m.StateCount(), 0)
}
