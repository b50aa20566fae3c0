package ot

import "fmt"

// LookupType is the type of a lookup, interpreted differently for GSUB and GPOS.
type LookupType uint16

// GSUB lookup types.
const (
	GSubLookupTypeSingle          LookupType = 1 // Replace one glyph with one glyph
	GSubLookupTypeMultiple        LookupType = 2 // Replace one glyph with more than one glyph
	GSubLookupTypeAlternate       LookupType = 3 // Replace one glyph with one of many glyphs
	GSubLookupTypeLigature        LookupType = 4 // Replace multiple glyphs with one glyph
	GSubLookupTypeContext         LookupType = 5 // Replace one or more glyphs in context
	GSubLookupTypeChainingContext LookupType = 6 // Replace one or more glyphs in chained context
	GSubLookupTypeExtension       LookupType = 7 // Extension mechanism for other substitutions
	GSubLookupTypeReverseChaining LookupType = 8 // Applied in reverse order, replace single glyph in chaining context
)

// GPOS lookup types.
const (
	GPosLookupTypeSingle          LookupType = 1 // Adjust position of a single glyph
	GPosLookupTypePair            LookupType = 2 // Adjust position of a pair of glyphs
	GPosLookupTypeCursive         LookupType = 3 // Attach cursive glyphs
	GPosLookupTypeMarkToBase      LookupType = 4 // Attach a combining mark to a base glyph
	GPosLookupTypeMarkToLigature  LookupType = 5 // Attach a combining mark to a ligature
	GPosLookupTypeMarkToMark      LookupType = 6 // Attach a combining mark to another mark
	GPosLookupTypeContextPos      LookupType = 7 // Position one or more glyphs in context
	GPosLookupTypeChainedContext  LookupType = 8 // Position one or more glyphs in chained context
	GPosLookupTypeExtensionPos    LookupType = 9 // Extension mechanism for other positionings
)

func extensionType(table Tag) LookupType {
	if table == TagGPOS {
		return GPosLookupTypeExtensionPos
	}
	return GSubLookupTypeExtension
}

func maxLookupType(table Tag) LookupType {
	if table == TagGPOS {
		return GPosLookupTypeExtensionPos
	}
	return GSubLookupTypeReverseChaining
}

// LookupTypeName returns a descriptive name for a lookup type of a table.
func LookupTypeName(table Tag, t LookupType) string {
	var names []string
	if table == TagGPOS {
		names = []string{"", "SinglePos", "PairPos", "CursivePos", "MarkBasePos", "MarkLigPos",
			"MarkMarkPos", "ContextPos", "ChainContextPos", "ExtensionPos"}
	} else {
		names = []string{"", "SingleSubst", "MultipleSubst", "AlternateSubst", "LigatureSubst",
			"ContextSubst", "ChainContextSubst", "ExtensionSubst", "ReverseChainSingleSubst"}
	}
	if int(t) < len(names) && t > 0 {
		return names[t]
	}
	return fmt.Sprintf("Unknown(%d)", t)
}

// LookupFlag holds the lookup qualifiers of a lookup table.
type LookupFlag uint16

// Lookup flags.
const (
	LookupRightToLeft         LookupFlag = 0x0001 // relevant only for cursive attachment (GPOS 3)
	LookupIgnoreBaseGlyphs    LookupFlag = 0x0002 // skip over base glyphs
	LookupIgnoreLigatures     LookupFlag = 0x0004 // skip over ligatures
	LookupIgnoreMarks         LookupFlag = 0x0008 // skip over all combining marks
	LookupUseMarkFilteringSet LookupFlag = 0x0010 // skip marks not in the lookup's mark filtering set
	LookupMarkAttachTypeMask  LookupFlag = 0xFF00 // skip marks not of this mark attachment class, if not zero
)

// MarkAttachmentType returns the mark attachment class selected by the flag, or 0.
func (f LookupFlag) MarkAttachmentType() uint16 {
	return uint16(f&LookupMarkAttachTypeMask) >> 8
}

// Lookup is an entry of a layout table's lookup list: a lookup type, lookup flags
// and an ordered list of subtables. Extension lookups are resolved at load time:
// Type is the type of the wrapped subtables and Extension is set.
type Lookup struct {
	Type             LookupType
	Flag             LookupFlag
	MarkFilteringSet uint16 // valid if Flag has LookupUseMarkFilteringSet set
	Extension        bool   // loaded through extension subtables
	Subtables        []Subtable
}

// Subtable is a lookup subtable. It is a closed union of the concrete subtable
// types of this package, one per lookup type and format; clients dispatch with
// a type switch.
type Subtable interface {
	isSubtable()
}

// Covered is implemented by all subtables which have a primary coverage table.
type Covered interface {
	Coverage() Coverage
}

// UnsupportedSubtable is a subtable of a known lookup type with a format this
// module does not know. It never applies.
type UnsupportedSubtable struct {
	Type   LookupType
	Format uint16
}

func (*UnsupportedSubtable) isSubtable() {}

// --- GSUB subtables --------------------------------------------------------

// SingleSubstFmt1 adds a constant delta to the glyph ID of covered glyphs.
type SingleSubstFmt1 struct {
	Cov   Coverage
	Delta int16 // added to glyph ID, modulo 65536
}

// SingleSubstFmt2 replaces covered glyphs by explicit substitutes, in coverage
// index order.
type SingleSubstFmt2 struct {
	Cov         Coverage
	Substitutes []GlyphIndex
}

// MultipleSubstFmt1 replaces a covered glyph by a sequence of glyphs.
type MultipleSubstFmt1 struct {
	Cov       Coverage
	Sequences [][]GlyphIndex
}

// AlternateSubstFmt1 lists alternate glyphs for covered glyphs.
type AlternateSubstFmt1 struct {
	Cov        Coverage
	Alternates [][]GlyphIndex
}

// Ligature is a single ligature of a ligature set. Components does not
// include the first component, which is given by the coverage.
type Ligature struct {
	Glyph      GlyphIndex
	Components []GlyphIndex
}

// LigatureSubstFmt1 replaces sequences of glyphs by ligature glyphs. Ligature sets
// are indexed by the coverage index of the first component; within a set,
// ligatures are ordered by preference.
type LigatureSubstFmt1 struct {
	Cov          Coverage
	LigatureSets [][]Ligature
}

// ReverseChainSingleSubstFmt1 is a single substitution in chained context,
// applied from the end of the glyph run towards its start.
type ReverseChainSingleSubstFmt1 struct {
	Cov         Coverage
	Backtrack   []Coverage // closest glyph first
	Lookahead   []Coverage
	Substitutes []GlyphIndex
}

func (*SingleSubstFmt1) isSubtable()             {}
func (*SingleSubstFmt2) isSubtable()             {}
func (*MultipleSubstFmt1) isSubtable()           {}
func (*AlternateSubstFmt1) isSubtable()          {}
func (*LigatureSubstFmt1) isSubtable()           {}
func (*ReverseChainSingleSubstFmt1) isSubtable() {}

func (s *SingleSubstFmt1) Coverage() Coverage             { return s.Cov }
func (s *SingleSubstFmt2) Coverage() Coverage             { return s.Cov }
func (s *MultipleSubstFmt1) Coverage() Coverage           { return s.Cov }
func (s *AlternateSubstFmt1) Coverage() Coverage          { return s.Cov }
func (s *LigatureSubstFmt1) Coverage() Coverage           { return s.Cov }
func (s *ReverseChainSingleSubstFmt1) Coverage() Coverage { return s.Cov }

// --- Contextual subtables (GSUB 5/6, GPOS 7/8) -----------------------------

// SequenceLookupRecord identifies a nested lookup to apply at a position
// within a matched input sequence.
type SequenceLookupRecord struct {
	SequenceIndex   uint16 // index into the matched input sequence
	LookupListIndex uint16 // index into the layout table's lookup list
}

// SequenceRule is a glyph sequence rule. Input does not include the first glyph,
// which is given by the coverage.
type SequenceRule struct {
	Input   []GlyphIndex
	Records []SequenceLookupRecord
}

// ClassSequenceRule is a class sequence rule. Input does not include the class
// of the first glyph, which selects the rule set.
type ClassSequenceRule struct {
	Input   []uint16
	Records []SequenceLookupRecord
}

// ChainedSequenceRule is a chained glyph sequence rule. Backtrack is stored with
// the glyph closest to the input first; Input does not include the first glyph.
type ChainedSequenceRule struct {
	Backtrack []GlyphIndex
	Input     []GlyphIndex
	Lookahead []GlyphIndex
	Records   []SequenceLookupRecord
}

// ChainedClassSequenceRule is a chained class sequence rule, analogous to
// ChainedSequenceRule.
type ChainedClassSequenceRule struct {
	Backtrack []uint16
	Input     []uint16
	Lookahead []uint16
	Records   []SequenceLookupRecord
}

// SequenceContextFmt1 holds glyph sequence rule sets, indexed by the coverage
// index of the first glyph.
type SequenceContextFmt1 struct {
	Cov      Coverage
	RuleSets [][]SequenceRule
}

// SequenceContextFmt2 holds class sequence rule sets, indexed by the class of
// the first glyph.
type SequenceContextFmt2 struct {
	Cov      Coverage
	ClassDef ClassDef
	RuleSets [][]ClassSequenceRule
}

// SequenceContextFmt3 matches a sequence of coverages.
type SequenceContextFmt3 struct {
	InputCoverages []Coverage
	Records        []SequenceLookupRecord
}

// ChainedSequenceContextFmt1 holds chained glyph sequence rule sets.
type ChainedSequenceContextFmt1 struct {
	Cov      Coverage
	RuleSets [][]ChainedSequenceRule
}

// ChainedSequenceContextFmt2 holds chained class sequence rule sets, indexed
// by the input class of the first glyph.
type ChainedSequenceContextFmt2 struct {
	Cov               Coverage
	BacktrackClassDef ClassDef
	InputClassDef     ClassDef
	LookaheadClassDef ClassDef
	RuleSets          [][]ChainedClassSequenceRule
}

// ChainedSequenceContextFmt3 matches sequences of coverages.
type ChainedSequenceContextFmt3 struct {
	BacktrackCoverages []Coverage // closest glyph first
	InputCoverages     []Coverage
	LookaheadCoverages []Coverage
	Records            []SequenceLookupRecord
}

func (*SequenceContextFmt1) isSubtable()        {}
func (*SequenceContextFmt2) isSubtable()        {}
func (*SequenceContextFmt3) isSubtable()        {}
func (*ChainedSequenceContextFmt1) isSubtable() {}
func (*ChainedSequenceContextFmt2) isSubtable() {}
func (*ChainedSequenceContextFmt3) isSubtable() {}

func (s *SequenceContextFmt1) Coverage() Coverage        { return s.Cov }
func (s *SequenceContextFmt2) Coverage() Coverage        { return s.Cov }
func (s *ChainedSequenceContextFmt1) Coverage() Coverage { return s.Cov }
func (s *ChainedSequenceContextFmt2) Coverage() Coverage { return s.Cov }

// Coverage returns the coverage of the first input glyph.
func (s *SequenceContextFmt3) Coverage() Coverage {
	if len(s.InputCoverages) == 0 {
		return Coverage{}
	}
	return s.InputCoverages[0]
}

// Coverage returns the coverage of the first input glyph.
func (s *ChainedSequenceContextFmt3) Coverage() Coverage {
	if len(s.InputCoverages) == 0 {
		return Coverage{}
	}
	return s.InputCoverages[0]
}

// SubtableFormat returns the binary format number of a subtable.
func SubtableFormat(st Subtable) uint16 {
	switch s := st.(type) {
	case *SingleSubstFmt2, *PairPosFmt2, *SinglePosFmt2, *SequenceContextFmt2, *ChainedSequenceContextFmt2:
		return 2
	case *SequenceContextFmt3, *ChainedSequenceContextFmt3:
		return 3
	case *UnsupportedSubtable:
		return s.Format
	}
	return 1
}
