package otshape

import (
	"cmp"
	"unicode/utf8"

	"github.com/npillmayer/typeshape/otlayout"
	"golang.org/x/text/unicode/norm"
)

// normalize prepares the code points of a buffer for glyph mapping, with
// respect to the glyphs available in the font:
//
//   - characters missing from the font are decomposed canonically, if all
//     their parts are available
//   - runs of marks are re-ordered by canonical combining class
//   - pairs of characters are composed, if the font has the composite
//
// Glyph IDs are not assigned.
func normalize(buf *otlayout.Buffer, run *Run) {
	decompose(buf, run)
	reorderMarks(buf)
	compose(buf, run)
}

func decompose(buf *otlayout.Buffer, run *Run) {
	for i := 0; i < buf.Len(); i++ {
		cp := buf.At(i).CodePoint
		if run.HasGlyph(cp) {
			continue
		}
		d := norm.NFD.String(string(cp))
		if utf8.RuneCountInString(d) < 2 {
			continue
		}
		parts := []rune(d)
		if !allPresent(run, parts) {
			continue
		}
		orig := *buf.At(i)
		seq := make([]otlayout.GlyphShapingData, len(parts))
		for k, r := range parts {
			seq[k] = orig
			seq[k].Features = nil
			seq[k].CodePoint = r
			seq[k].Class = otlayout.ClassOfRune(r)
			seq[k].Decomposed = true
		}
		buf.Delete(i, i+1)
		buf.Insert(i, seq...)
		tracer().Debugf("normalize: decomposed %U into %d parts", cp, len(parts))
		i += len(parts) - 1
	}
}

func allPresent(run *Run, parts []rune) bool {
	for _, r := range parts {
		if !run.HasGlyph(r) {
			return false
		}
	}
	return true
}

func combiningClass(r rune) uint8 {
	return norm.NFD.PropertiesString(string(r)).CCC()
}

// reorderMarks sorts maximal runs of characters with non-zero combining class.
func reorderMarks(buf *otlayout.Buffer) {
	for i := 0; i < buf.Len(); {
		if combiningClass(buf.At(i).CodePoint) == 0 {
			i++
			continue
		}
		j := i + 1
		for j < buf.Len() && combiningClass(buf.At(j).CodePoint) != 0 {
			j++
		}
		if j-i > 1 {
			buf.Sort(i, j, func(a, b otlayout.GlyphShapingData) int {
				return cmp.Compare(combiningClass(a.CodePoint), combiningClass(b.CodePoint))
			})
		}
		i = j
	}
}

// compose replaces adjacent pairs by their canonical composite, if the font
// has a glyph for it. A composed character may compose again with a
// following mark.
func compose(buf *otlayout.Buffer, run *Run) {
	for i := 1; i < buf.Len(); {
		a, b := buf.At(i-1), buf.At(i)
		if combiningClass(b.CodePoint) == 0 {
			i++
			continue
		}
		c, ok := composite(a.CodePoint, b.CodePoint)
		if !ok || !run.HasGlyph(c) {
			i++
			continue
		}
		a.CodePoint = c
		a.Class = otlayout.ClassOfRune(c)
		a.CodePointCount += b.CodePointCount
		a.Cluster = min(a.Cluster, b.Cluster)
		buf.Delete(i, i+1)
	}
}

// composite returns the canonical composition of two characters, if there is one.
func composite(a, b rune) (rune, bool) {
	s := norm.NFC.String(string([]rune{a, b}))
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, true
}
