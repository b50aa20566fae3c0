package ot

// --- Value records ---------------------------------------------------------

// ValueFormat is a bitmask selecting which fields of a ValueRecord are present
// in the binary representation.
type ValueFormat uint16

// Value format flags.
const (
	ValueXPlacement ValueFormat = 0x0001 // Includes horizontal adjustment for placement
	ValueYPlacement ValueFormat = 0x0002 // Includes vertical adjustment for placement
	ValueXAdvance   ValueFormat = 0x0004 // Includes horizontal adjustment for advance
	ValueYAdvance   ValueFormat = 0x0008 // Includes vertical adjustment for advance
	ValueXPlaDevice ValueFormat = 0x0010 // Includes Device table (non-variable font) / VariationIndex table (variable font) for horizontal placement
	ValueYPlaDevice ValueFormat = 0x0020 // Includes Device table (non-variable font) / VariationIndex table (variable font) for vertical placement
	ValueXAdvDevice ValueFormat = 0x0040 // Includes Device table (non-variable font) / VariationIndex table (variable font) for horizontal advance
	ValueYAdvDevice ValueFormat = 0x0080 // Includes Device table (non-variable font) / VariationIndex table (variable font) for vertical advance
)

// Size returns the number of bytes a value record of this format occupies.
func (f ValueFormat) Size() int {
	n := 0
	for v := f & 0x00ff; v != 0; v >>= 1 {
		if v&1 != 0 {
			n += 2
		}
	}
	return n
}

// ValueRecord describes all the variables and values used to adjust the position of
// a glyph or set of glyphs. Fields absent in the binary are zero.
type ValueRecord struct {
	XPlacement int16   // Horizontal adjustment for placement, in design units.
	YPlacement int16   // Vertical adjustment for placement, in design units.
	XAdvance   int16   // Horizontal adjustment for advance, in design units (only used for horizontal layout).
	YAdvance   int16   // Vertical adjustment for advance, in design units (only used for vertical layout).
	XPlaDevice *Device // Device table (non-variable font) / VariationIndex table (variable font) for horizontal placement.
	YPlaDevice *Device
	XAdvDevice *Device
	YAdvDevice *Device
}

// IsZero reports whether the value record adjusts nothing.
func (vr ValueRecord) IsZero() bool {
	return vr.XPlacement == 0 && vr.YPlacement == 0 && vr.XAdvance == 0 && vr.YAdvance == 0
}

// Device holds either a device table or a variation index table. Device
// deltas are loaded, but never applied by this module.
type Device struct {
	StartSize   uint16 // Smallest size to correct, in ppem; outer index for variation index tables
	EndSize     uint16 // Largest size to correct, in ppem; inner index for variation index tables
	DeltaFormat uint16 // 1–3 for device tables, 0x8000 for variation index tables
	Deltas      []int8 // One delta per ppem size, device tables only
}

// IsVariationIndex reports whether this is a variation index table.
func (d *Device) IsVariationIndex() bool {
	return d != nil && d.DeltaFormat == 0x8000
}

// --- Anchors ---------------------------------------------------------------

// Anchor is an attachment point for cursive or mark positioning, in design units.
// Format 2 anchors carry a contour point index, which may be resolved against a
// glyph outline, format 3 anchors carry device tables.
//
// An Anchor with Format 0 is the empty anchor (0,0), which results from unknown
// anchor formats.
type Anchor struct {
	Format      uint16
	X, Y        int16
	AnchorPoint uint16  // format 2 only
	XDevice     *Device // format 3 only
	YDevice     *Device // format 3 only
}

// --- Mark arrays -----------------------------------------------------------

// MarkRecord assigns a mark class and an anchor to a mark glyph.
type MarkRecord struct {
	Class  uint16
	Anchor *Anchor
}

// PairValueRecord is a single glyph pair of a PairPos format 1 pair set.
type PairValueRecord struct {
	SecondGlyph GlyphIndex
	Value1      ValueRecord
	Value2      ValueRecord
}

// PairValues holds the adjustments for a class pair of PairPos format 2.
type PairValues struct {
	Value1 ValueRecord
	Value2 ValueRecord
}

// EntryExit holds the cursive attachment anchors of a glyph. Either may be nil.
type EntryExit struct {
	Entry *Anchor
	Exit  *Anchor
}

// --- GPOS subtables --------------------------------------------------------

// SinglePosFmt1 applies one value record to all covered glyphs.
type SinglePosFmt1 struct {
	Cov         Coverage
	ValueFormat ValueFormat
	Value       ValueRecord
}

// SinglePosFmt2 applies one value record per covered glyph, in coverage index order.
type SinglePosFmt2 struct {
	Cov         Coverage
	ValueFormat ValueFormat
	Values      []ValueRecord
}

// PairPosFmt1 adjusts pairs of glyphs identified by glyph ID. PairSets are indexed
// by the coverage index of the first glyph.
type PairPosFmt1 struct {
	Cov          Coverage
	ValueFormat1 ValueFormat
	ValueFormat2 ValueFormat
	PairSets     [][]PairValueRecord // each set sorted by SecondGlyph
}

// PairPosFmt2 adjusts pairs of glyphs identified by class.
type PairPosFmt2 struct {
	Cov          Coverage
	ValueFormat1 ValueFormat
	ValueFormat2 ValueFormat
	ClassDef1    ClassDef
	ClassDef2    ClassDef
	Class1Count  uint16
	Class2Count  uint16
	Records      []PairValues // Class1Count × Class2Count, row major; empty for empty value formats
}

// Pair returns the adjustments for a class pair.
func (p *PairPosFmt2) Pair(class1, class2 uint16) (PairValues, bool) {
	if class1 >= p.Class1Count || class2 >= p.Class2Count {
		return PairValues{}, false
	}
	if p.ValueFormat1.Size()+p.ValueFormat2.Size() == 0 {
		return PairValues{}, true
	}
	i := int(class1)*int(p.Class2Count) + int(class2)
	if i >= len(p.Records) {
		return PairValues{}, false
	}
	return p.Records[i], true
}

// CursivePosFmt1 connects glyphs by their exit and entry anchors.
type CursivePosFmt1 struct {
	Cov     Coverage
	Records []EntryExit // in coverage index order
}

// MarkBasePosFmt1 attaches marks to base glyphs.
type MarkBasePosFmt1 struct {
	MarkCov    Coverage
	BaseCov    Coverage
	ClassCount uint16
	Marks      []MarkRecord // in mark coverage index order
	Bases      [][]*Anchor  // per base glyph, one anchor per mark class
}

// MarkLigPosFmt1 attaches marks to a component of a ligature glyph.
type MarkLigPosFmt1 struct {
	MarkCov    Coverage
	LigCov     Coverage
	ClassCount uint16
	Marks      []MarkRecord
	Ligatures  [][][]*Anchor // per ligature, per component, one anchor per mark class
}

// MarkMarkPosFmt1 attaches marks to preceding marks.
type MarkMarkPosFmt1 struct {
	Mark1Cov   Coverage
	Mark2Cov   Coverage
	ClassCount uint16
	Marks      []MarkRecord // Mark1Array
	Mark2s     [][]*Anchor  // per mark2 glyph, one anchor per mark class
}

func (*SinglePosFmt1) isSubtable()   {}
func (*SinglePosFmt2) isSubtable()   {}
func (*PairPosFmt1) isSubtable()     {}
func (*PairPosFmt2) isSubtable()     {}
func (*CursivePosFmt1) isSubtable()  {}
func (*MarkBasePosFmt1) isSubtable() {}
func (*MarkLigPosFmt1) isSubtable()  {}
func (*MarkMarkPosFmt1) isSubtable() {}

// Coverage returns the primary coverage of a subtable.
func (s *SinglePosFmt1) Coverage() Coverage   { return s.Cov }
func (s *SinglePosFmt2) Coverage() Coverage   { return s.Cov }
func (s *PairPosFmt1) Coverage() Coverage     { return s.Cov }
func (s *PairPosFmt2) Coverage() Coverage     { return s.Cov }
func (s *CursivePosFmt1) Coverage() Coverage  { return s.Cov }
func (s *MarkBasePosFmt1) Coverage() Coverage { return s.MarkCov }
func (s *MarkLigPosFmt1) Coverage() Coverage  { return s.MarkCov }
func (s *MarkMarkPosFmt1) Coverage() Coverage { return s.Mark1Cov }
