package otlayout

import "github.com/npillmayer/typeshape/ot"

// GlyphMetrics is the interface to the font container, which provides
// everything about glyphs not contained in the layout tables.
type GlyphMetrics interface {
	// GlyphIndex maps a code point to a glyph, reporting false for a missing glyph.
	GlyphIndex(r rune) (ot.GlyphIndex, bool)
	// Advance returns the advance of a glyph in design units.
	Advance(g ot.GlyphIndex) int32
	// OutlinePoints returns the points of a glyph outline, in contour order.
	// It may return nil if outlines are not available.
	OutlinePoints(g ot.GlyphIndex) []Point
}

// Point is a point of a glyph outline, in design units.
type Point struct {
	X, Y int32
}

// MetricsMap is a GlyphMetrics implementation backed by maps, for synthesized
// fonts. Glyphs without an entry in Advances advance by DefaultAdvance.
type MetricsMap struct {
	Glyphs         map[rune]ot.GlyphIndex
	Advances       map[ot.GlyphIndex]int32
	Points         map[ot.GlyphIndex][]Point
	DefaultAdvance int32
}

var _ GlyphMetrics = (*MetricsMap)(nil)

// GlyphIndex is part of interface GlyphMetrics.
func (m *MetricsMap) GlyphIndex(r rune) (ot.GlyphIndex, bool) {
	g, ok := m.Glyphs[r]
	return g, ok
}

// Advance is part of interface GlyphMetrics.
func (m *MetricsMap) Advance(g ot.GlyphIndex) int32 {
	if adv, ok := m.Advances[g]; ok {
		return adv
	}
	return m.DefaultAdvance
}

// OutlinePoints is part of interface GlyphMetrics.
func (m *MetricsMap) OutlinePoints(g ot.GlyphIndex) []Point {
	return m.Points[g]
}
