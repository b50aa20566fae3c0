package otarabic

import (
	"sort"
	"unicode"
)

// joiningType is the input alphabet of the joining state machine. Transparent
// characters are not part of the alphabet; the state machine skips them.
type joiningType uint8

const (
	joiningU           joiningType = iota // non-joining
	joiningL                              // left-joining
	joiningR                              // right-joining
	joiningD                              // dual-joining, and join-causing
	joiningAlaph                          // Syriac Alaph
	joiningDalathRish                     // Syriac Dalath and Rish
	joiningTypeCount                      // columns of the state table
	joiningT                              // transparent
)

func (jt joiningType) String() string {
	switch jt {
	case joiningU:
		return "U"
	case joiningL:
		return "L"
	case joiningR:
		return "R"
	case joiningD:
		return "D"
	case joiningAlaph:
		return "ALAPH"
	case joiningDalathRish:
		return "DALATH_RISH"
	case joiningT:
		return "T"
	}
	return "?"
}

// Form is the positional form a joining glyph is set in.
type Form int8

// Positional forms, in the order of their feature tags.
const (
	FormNone Form = iota - 1
	FormIsol
	FormFina
	FormFin2
	FormFin3
	FormMedi
	FormMed2
	FormInit
	formCount
)

var formNames = [...]string{"isol", "fina", "fin2", "fin3", "medi", "med2", "init"}

func (f Form) String() string {
	if f < 0 || f >= formCount {
		return "none"
	}
	return formNames[f]
}

type joiningTransition struct {
	prev  Form // form to set for the previous joining character
	curr  Form // form of the current character
	state uint8
}

// joiningStates is the joining state machine. Rows are states, columns are
// joining types of the current character.
//
//	state 0: previous was U, not willing to join
//	state 1: previous was R, or an isolated Alaph, not willing to join
//	state 2: previous was D or L in isolated form, willing to join
//	state 3: previous was D in final form, willing to join
//	state 4: previous was a final Alaph, not willing to join
//	state 5: previous was an Alaph in form fin2 or fin3, not willing to join
//	state 6: previous was Dalath or Rish, not willing to join
var joiningStates = [7][joiningTypeCount]joiningTransition{
	/*    U                   L                   R                   D                   ALAPH               DALATH_RISH */
	{{FormNone, FormNone, 0}, {FormNone, FormIsol, 2}, {FormNone, FormIsol, 1}, {FormNone, FormIsol, 2}, {FormNone, FormIsol, 1}, {FormNone, FormIsol, 6}},
	{{FormNone, FormNone, 0}, {FormNone, FormIsol, 2}, {FormNone, FormIsol, 1}, {FormNone, FormIsol, 2}, {FormNone, FormFin2, 5}, {FormNone, FormIsol, 6}},
	{{FormNone, FormNone, 0}, {FormNone, FormIsol, 2}, {FormInit, FormFina, 1}, {FormInit, FormFina, 3}, {FormInit, FormFina, 4}, {FormInit, FormFina, 6}},
	{{FormNone, FormNone, 0}, {FormNone, FormIsol, 2}, {FormMedi, FormFina, 1}, {FormMedi, FormFina, 3}, {FormMedi, FormFina, 4}, {FormMedi, FormFina, 6}},
	{{FormNone, FormNone, 0}, {FormNone, FormIsol, 2}, {FormMed2, FormIsol, 1}, {FormMed2, FormIsol, 2}, {FormMed2, FormFin2, 5}, {FormMed2, FormIsol, 6}},
	{{FormNone, FormNone, 0}, {FormNone, FormIsol, 2}, {FormIsol, FormIsol, 1}, {FormIsol, FormIsol, 2}, {FormIsol, FormFin2, 5}, {FormIsol, FormIsol, 6}},
	{{FormNone, FormNone, 0}, {FormNone, FormIsol, 2}, {FormNone, FormIsol, 1}, {FormNone, FormIsol, 2}, {FormNone, FormFin3, 5}, {FormNone, FormIsol, 6}},
}

// JoiningForms computes the positional forms of a sequence of characters in
// logical order. Transparent characters get FormNone and do not interrupt
// joining.
func JoiningForms(cps []rune) []Form {
	forms := make([]Form, len(cps))
	prev, state := -1, uint8(0)
	for i, cp := range cps {
		jt := joiningTypeOf(cp)
		if jt == joiningT {
			forms[i] = FormNone
			continue
		}
		tr := joiningStates[state][jt]
		if tr.prev != FormNone && prev >= 0 {
			forms[prev] = tr.prev
		}
		forms[i] = tr.curr
		prev, state = i, tr.state
	}
	return forms
}

// --- Joining types ---------------------------------------------------------

type joiningRange struct {
	lo, hi rune
	typ    joiningType
}

func joiningTypeOf(cp rune) joiningType {
	i := sort.Search(len(joiningTypes), func(i int) bool { return joiningTypes[i].hi >= cp })
	if i < len(joiningTypes) && joiningTypes[i].lo <= cp {
		return joiningTypes[i].typ
	}
	if unicode.In(cp, unicode.Mn, unicode.Me, unicode.Cf) {
		return joiningT
	}
	return joiningU
}
