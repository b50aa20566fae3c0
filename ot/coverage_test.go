package ot

import (
	"errors"
	"testing"
)

func TestCoverageIndex(t *testing.T) {
	list := NewCoverageList(3, 7, 8, 20)
	ranges := NewCoverageRanges(
		CoverageRange{Start: 3, End: 3, StartIndex: 0},
		CoverageRange{Start: 7, End: 8, StartIndex: 1},
		CoverageRange{Start: 20, End: 20, StartIndex: 3},
	)
	for _, cov := range []Coverage{list, ranges} {
		if cov.Len() != 4 {
			t.Errorf("format %d: expected 4 glyphs, have %d", cov.Format(), cov.Len())
		}
		n := 0
		for inx, g := range cov.Glyphs() {
			if i, ok := cov.Match(g); !ok || i != inx {
				t.Errorf("format %d: glyph %d expected at index %d, have %d/%v", cov.Format(), g, inx, i, ok)
			}
			n++
		}
		if n != 4 {
			t.Errorf("format %d: iterated %d glyphs", cov.Format(), n)
		}
		for _, g := range []GlyphIndex{0, 4, 9, 19, 21} {
			if cov.Contains(g) {
				t.Errorf("format %d: glyph %d should not be covered", cov.Format(), g)
			}
		}
	}
	var empty Coverage
	if empty.Contains(0) || empty.Len() != 0 || empty.Index(0).IsSome() {
		t.Errorf("empty coverage should cover nothing")
	}
}

func TestClassDef(t *testing.T) {
	array := NewClassDefArray(10, 1, 0, 2)
	ranges := NewClassDefRanges(
		ClassRange{Start: 10, End: 10, Class: 1},
		ClassRange{Start: 12, End: 12, Class: 2},
	)
	for _, cd := range []ClassDef{array, ranges} {
		for g, class := range map[GlyphIndex]uint16{9: 0, 10: 1, 11: 0, 12: 2, 13: 0} {
			if c := cd.Class(g); c != class {
				t.Errorf("format %d: class of glyph %d is %d, expected %d", cd.Format(), g, c, class)
			}
		}
	}
	if !(ClassDef{}).IsEmpty() || (ClassDef{}).Class(5) != 0 {
		t.Errorf("zero class definition should map everything to class 0")
	}
}

func TestParseCoverageFormat2(t *testing.T) {
	r := newReader(TagGSUB, coverage2(5, 6, 0, 9, 9, 2))
	cov, err := parseCoverage(r, 0)
	if err != nil {
		t.Fatal(err)
	}
	if i, ok := cov.Match(9); !ok || i != 2 {
		t.Errorf("expected glyph 9 at coverage index 2, have %d", i)
	}
	if len(r.warn.list) != 0 {
		t.Errorf("expected well-formed ranges to raise no warning, have %v", r.warn.list)
	}
	for _, ranges := range [][]int{
		{9, 9, 0, 5, 6, 1}, // unsorted
		{5, 7, 0, 7, 9, 3}, // overlapping
		{6, 5, 0},          // end before start
	} {
		r = newReader(TagGSUB, coverage2(ranges...))
		if _, err = parseCoverage(r, 0); err != nil {
			t.Fatal(err)
		}
		if len(r.warn.list) != 1 {
			t.Errorf("ranges %v: expected 1 warning, have %d", ranges, len(r.warn.list))
		}
	}
	r = newReader(TagGSUB, table([]any{3, 0}))
	if _, err = parseCoverage(r, 0); !errors.Is(err, ErrInvalidFont) {
		t.Errorf("expected invalid font error for coverage format 3, have %v", err)
	}
}

func TestTag(t *testing.T) {
	if s := T("liga").String(); s != "liga" {
		t.Errorf("expected 'liga', have %q", s)
	}
	if s := T("ab").String(); s != "ab  " {
		t.Errorf("expected short tag to be padded, have %q", s)
	}
	if MakeTag([]byte("GSUBX")) != TagGSUB {
		t.Errorf("expected long tag to be cut")
	}
}

func TestFontErrorUnwrap(t *testing.T) {
	critical := FontError{Table: TagGSUB, Section: "Lookup", Issue: "broken", Severity: SeverityCritical}
	if !errors.Is(critical, ErrInvalidFont) {
		t.Errorf("critical font errors should match ErrInvalidFont")
	}
	major := FontError{Table: TagGPOS, Section: "Anchor", Issue: "odd", Severity: SeverityMajor, Offset: 12}
	if errors.Is(major, ErrInvalidFont) {
		t.Errorf("major font errors should not match ErrInvalidFont")
	}
	if s := major.Error(); s != "[MAJOR] GPOS/Anchor at offset 12: odd" {
		t.Errorf("unexpected error message %q", s)
	}
}
