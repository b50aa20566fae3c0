package otlayout

import (
	"slices"
	"unicode"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/typeshape/ot"
	"golang.org/x/text/unicode/bidi"
)

// FeatureEntry is a feature tag, enabled or disabled for a glyph.
type FeatureEntry struct {
	Tag     ot.Tag
	Enabled bool
}

// AttachKind describes how a glyph is attached to another glyph.
type AttachKind uint8

const (
	AttachNone    AttachKind = iota
	AttachMark               // mark-to-base, mark-to-ligature or mark-to-mark
	AttachCursive            // cursive attachment
)

// Position holds the positioning of a glyph, in font design units.
// Advances are absolute (initialized from the glyph metrics), offsets are
// relative to the pen position.
//
// Attachments are recorded while GPOS lookups are applied and resolved by
// ResolveAttachments: AttachChain is the distance to the glyph this glyph is
// attached to (negative for preceding glyphs), or 0.
type Position struct {
	XAdvance    int32
	YAdvance    int32
	XOffset     int32
	YOffset     int32
	AttachKind  AttachKind
	AttachChain int
}

// EngineInfo carries per-glyph data of complex script shapers. Category and
// position values are defined by the shaper.
type EngineInfo struct {
	Category     uint8
	Position     uint8
	Syllable     uint16 // serial number of the syllable, starting at 1
	SyllableType uint8
}

// GlyphShapingData is the shaping state of a single glyph in a buffer.
//
// Ligature bookkeeping follows the usual conventions: a ligature glyph has a
// LigatureID and LigatureComponent 0; a mark following a ligature has the
// LigatureID of the ligature and the (1-based) component it belongs to.
type GlyphShapingData struct {
	CodePoint              rune          // code point the glyph originates from
	CodePointCount         int           // number of code points represented, > 1 for ligatures
	GlyphID                ot.GlyphIndex // current glyph
	Cluster                int           // cluster index, usually the text position
	Class                  ot.GlyphClass // glyph class used if the font does not classify glyphs
	Features               []FeatureEntry
	LigatureID             int
	LigatureComponent      int
	LigatureComponentCount int
	Substituted            bool // produced by a substitution
	Ligated                bool // produced by a ligature substitution
	Decomposed             bool // produced by decomposition of a code point
	Multiplied             bool // produced by a multiple substitution
	Engine                 *EngineInfo
	Pos                    Position
}

// HasFeature reports whether a feature is enabled for the glyph.
func (gd *GlyphShapingData) HasFeature(tag ot.Tag) bool {
	for _, f := range gd.Features {
		if f.Tag == tag {
			return f.Enabled
		}
	}
	return false
}

// EnableFeature enables a feature for the glyph.
func (gd *GlyphShapingData) EnableFeature(tag ot.Tag) {
	gd.setFeature(tag, true)
}

// DisableFeature disables a feature for the glyph.
func (gd *GlyphShapingData) DisableFeature(tag ot.Tag) {
	gd.setFeature(tag, false)
}

func (gd *GlyphShapingData) setFeature(tag ot.Tag, enabled bool) {
	for i := range gd.Features {
		if gd.Features[i].Tag == tag {
			gd.Features[i].Enabled = enabled
			return
		}
	}
	gd.Features = append(gd.Features, FeatureEntry{Tag: tag, Enabled: enabled})
}

// clone copies glyph data, detaching the feature list from the original.
func (gd GlyphShapingData) clone() GlyphShapingData {
	gd.Features = slices.Clone(gd.Features)
	if gd.Engine != nil {
		e := *gd.Engine
		gd.Engine = &e
	}
	return gd
}

// numComponents is the number of ligature components a glyph stands for.
func (gd *GlyphShapingData) numComponents() int {
	if gd.LigatureID != 0 && gd.LigatureComponent == 0 && gd.LigatureComponentCount > 0 {
		return gd.LigatureComponentCount
	}
	return 1
}

func (gd *GlyphShapingData) syllable() uint16 {
	if gd.Engine == nil {
		return 0
	}
	return gd.Engine.Syllable
}

// ClassOfRune derives a glyph class from the general category of a code point,
// for fonts without GDEF glyph classes.
func ClassOfRune(r rune) ot.GlyphClass {
	if unicode.In(r, unicode.Mn, unicode.Me) {
		return ot.MarkGlyph
	}
	return ot.BaseGlyph
}

// --- Buffer ----------------------------------------------------------------

// Buffer is the glyph buffer of a single shaping call. Glyphs are kept in
// logical order, for right-to-left runs as well.
type Buffer struct {
	Glyphs    []GlyphShapingData
	Direction bidi.Direction
	Script    language.Script
	Vertical  bool
	nextLigID int
}

// NewBuffer creates an empty buffer for a run of text.
func NewBuffer(dir bidi.Direction, script language.Script) *Buffer {
	return &Buffer{Direction: dir, Script: script}
}

// AddCodePoint appends a code point, with glyph ID still unresolved.
func (b *Buffer) AddCodePoint(r rune, cluster int) {
	b.Glyphs = append(b.Glyphs, GlyphShapingData{
		CodePoint:      r,
		CodePointCount: 1,
		Cluster:        cluster,
		Class:          ClassOfRune(r),
	})
}

// AddGlyph appends a glyph without code point.
func (b *Buffer) AddGlyph(g ot.GlyphIndex, cluster int) {
	b.Glyphs = append(b.Glyphs, GlyphShapingData{
		GlyphID:        g,
		CodePointCount: 1,
		Cluster:        cluster,
		Class:          ot.BaseGlyph,
	})
}

// Reset empties the buffer, keeping its capacity.
func (b *Buffer) Reset() {
	b.Glyphs = b.Glyphs[:0]
	b.nextLigID = 0
}

// Len returns the number of glyphs.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Glyphs)
}

// At returns the glyph at position i.
func (b *Buffer) At(i int) *GlyphShapingData {
	return &b.Glyphs[i]
}

// IsRTL reports whether the run is set right-to-left.
func (b *Buffer) IsRTL() bool {
	return b.Direction == bidi.RightToLeft
}

// GlyphIDs returns the current glyph IDs.
func (b *Buffer) GlyphIDs() []ot.GlyphIndex {
	ids := make([]ot.GlyphIndex, len(b.Glyphs))
	for i := range b.Glyphs {
		ids[i] = b.Glyphs[i].GlyphID
	}
	return ids
}

// GlyphClass returns the class of the glyph at position i. If the font's GDEF
// table classifies glyphs, its class is used, otherwise the class derived
// while shaping.
func (b *Buffer) GlyphClass(i int, gdef *ot.GDef) ot.GlyphClass {
	if gdef.HasGlyphClasses() {
		return gdef.GlyphClass(b.Glyphs[i].GlyphID)
	}
	return b.Glyphs[i].Class
}

// IsMark reports whether the glyph at position i is a mark.
func (b *Buffer) IsMark(i int, gdef *ot.GDef) bool {
	return b.GlyphClass(i, gdef) == ot.MarkGlyph
}

// ReplaceGlyph substitutes the glyph at position i.
func (b *Buffer) ReplaceGlyph(i int, g ot.GlyphIndex) {
	b.Glyphs[i].GlyphID = g
	b.Glyphs[i].Substituted = true
}

// ReplaceWithSequence replaces the glyph at position i by a sequence of glyphs,
// each inheriting the shaping data of the original glyph. An empty sequence
// deletes the glyph.
func (b *Buffer) ReplaceWithSequence(i int, glyphs []ot.GlyphIndex) {
	if len(glyphs) == 0 {
		b.Delete(i, i+1)
		return
	}
	orig := b.Glyphs[i]
	seq := make([]GlyphShapingData, len(glyphs))
	for k, g := range glyphs {
		seq[k] = orig.clone()
		seq[k].GlyphID = g
		seq[k].Substituted = true
	}
	b.Glyphs = slices.Replace(b.Glyphs, i, i+1, seq...)
}

// Insert inserts glyphs before position i.
func (b *Buffer) Insert(i int, glyphs ...GlyphShapingData) {
	b.Glyphs = slices.Insert(b.Glyphs, i, glyphs...)
}

// Delete removes the glyphs in [i, j).
func (b *Buffer) Delete(i, j int) {
	b.Glyphs = slices.Delete(b.Glyphs, i, j)
}

// Move moves the glyph at position from to position to, shifting the glyphs
// in between.
func (b *Buffer) Move(from, to int) {
	if from == to {
		return
	}
	gd := b.Glyphs[from]
	if from < to {
		copy(b.Glyphs[from:to], b.Glyphs[from+1:to+1])
	} else {
		copy(b.Glyphs[to+1:from+1], b.Glyphs[to:from])
	}
	b.Glyphs[to] = gd
}

// Sort sorts the glyphs in [start, end) stably.
func (b *Buffer) Sort(start, end int, cmp func(a, b GlyphShapingData) int) {
	slices.SortStableFunc(b.Glyphs[start:end], cmp)
}

// EnableFeature enables a feature for the glyph at position i.
func (b *Buffer) EnableFeature(i int, tag ot.Tag) {
	b.Glyphs[i].EnableFeature(tag)
}

// DisableFeature disables a feature for the glyph at position i.
func (b *Buffer) DisableFeature(i int, tag ot.Tag) {
	b.Glyphs[i].DisableFeature(tag)
}

// HasFeature reports whether a feature is enabled for the glyph at position i.
func (b *Buffer) HasFeature(i int, tag ot.Tag) bool {
	return b.Glyphs[i].HasFeature(tag)
}

// EnableFeatures enables features for all glyphs in [start, end).
func (b *Buffer) EnableFeatures(start, end int, tags ...ot.Tag) {
	for i := start; i < end; i++ {
		for _, tag := range tags {
			b.Glyphs[i].EnableFeature(tag)
		}
	}
}

// AllocLigatureID returns a fresh ligature ID, > 0.
func (b *Buffer) AllocLigatureID() int {
	b.nextLigID++
	return b.nextLigID
}

// MergeClusters sets the cluster of all glyphs in [start, end) to the smallest
// cluster among them.
func (b *Buffer) MergeClusters(start, end int) {
	if end-start < 2 {
		return
	}
	c := b.Glyphs[start].Cluster
	for i := start + 1; i < end; i++ {
		c = min(c, b.Glyphs[i].Cluster)
	}
	for i := start; i < end; i++ {
		b.Glyphs[i].Cluster = c
	}
}

// InitPositions sets the advance of each glyph from the glyph metrics and
// clears offsets and attachments.
func (b *Buffer) InitPositions(metrics GlyphMetrics) {
	for i := range b.Glyphs {
		var adv int32
		if metrics != nil {
			adv = metrics.Advance(b.Glyphs[i].GlyphID)
		}
		if b.Vertical {
			b.Glyphs[i].Pos = Position{YAdvance: adv}
		} else {
			b.Glyphs[i].Pos = Position{XAdvance: adv}
		}
	}
}
