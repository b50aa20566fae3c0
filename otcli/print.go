package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/typeshape"
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otquery"
	"github.com/npillmayer/typeshape/otshape"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/runenames"
)

func printFeatures(table *ot.LayoutTable, indices []uint16) {
	data := [][]string{
		{"Index", "Tag", "Lookups"},
	}
	for _, i := range indices {
		f := table.Feature(int(i))
		if f == nil {
			continue
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			f.Tag.String(),
			fmt.Sprintf("%v", f.LookupIndices),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLookupList(table *ot.LayoutTable) {
	count := table.LookupCount()
	pterm.Printf("%s LookupList has %d entries\n", table.Tag, count)
	if count == 0 {
		return
	}
	data := [][]string{
		{"Index", "Type", "Subtables", "Flags"},
	}
	for i := range count {
		lookup := table.Lookup(i)
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			formatLookupType(table.Tag, lookup),
			fmt.Sprintf("%d", len(lookup.Subtables)),
			formatLookupFlags(lookup.Flag),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLookup(table *ot.LayoutTable, index int) {
	lookup := table.Lookup(index)
	if lookup == nil {
		pterm.Error.Printf("Lookup index out of range: %d\n", index)
		return
	}
	pterm.Printf("Lookup %d: type=%s flags=%s subtables=%d\n",
		index,
		formatLookupType(table.Tag, lookup),
		formatLookupFlags(lookup.Flag),
		len(lookup.Subtables),
	)
	data := [][]string{
		{"Sub", "Subtable", "Format", "Coverage"},
	}
	for i, sub := range lookup.Subtables {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			strings.TrimPrefix(fmt.Sprintf("%T", sub), "*ot."),
			fmt.Sprintf("%d", ot.SubtableFormat(sub)),
			formatCoverageSummary(sub),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func formatLookupType(table ot.Tag, lookup *ot.Lookup) string {
	name := ot.LookupTypeName(table, lookup.Type)
	if lookup.Extension {
		return name + " (ext)"
	}
	return name
}

func formatLookupFlags(flag ot.LookupFlag) string {
	if flag == 0 {
		return "-"
	}
	parts := make([]string, 0, 6)
	if flag&ot.LookupRightToLeft != 0 {
		parts = append(parts, "RightToLeft")
	}
	if flag&ot.LookupIgnoreBaseGlyphs != 0 {
		parts = append(parts, "IgnoreBase")
	}
	if flag&ot.LookupIgnoreLigatures != 0 {
		parts = append(parts, "IgnoreLigatures")
	}
	if flag&ot.LookupIgnoreMarks != 0 {
		parts = append(parts, "IgnoreMarks")
	}
	if flag&ot.LookupUseMarkFilteringSet != 0 {
		parts = append(parts, "UseMarkFilteringSet")
	}
	if t := flag.MarkAttachmentType(); t != 0 {
		parts = append(parts, fmt.Sprintf("MarkAttachType=%d", t))
	}
	return strings.Join(parts, "|")
}

func formatCoverageSummary(sub ot.Subtable) string {
	c, ok := sub.(ot.Covered)
	if !ok {
		return "-"
	}
	cov := c.Coverage()
	return fmt.Sprintf("fmt=%d count=%d", cov.Format(), cov.Len())
}

// --- Glyphs and shaping -----------------------------------------------

func glyphsOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return errors.New("no text given"), false
	}
	q, err := otquery.Open(intp.font.Binary, intp.font.Layout)
	if err != nil {
		return err, false
	}
	data := [][]string{
		{"Code point", "Name", "Glyph", "Advance", "LSB", "RSB", "Class"},
	}
	for _, r := range op.arg {
		row := []string{fmt.Sprintf("%U", r), runenames.Name(r), "(missing)", "-", "-", "-", "-"}
		if g, ok := intp.font.GlyphIndex(r); ok {
			m := otquery.GlyphMetrics(q, g)
			row[2] = fmt.Sprintf("%d", g)
			row[3] = fmt.Sprintf("%d", intp.font.Advance(g))
			row[4] = fmt.Sprintf("%d", m.LSB)
			row[5] = fmt.Sprintf("%d", m.RSB)
			row[6] = fmt.Sprintf("%d", otquery.GlyphClass(q, g))
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func shapeOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return errors.New("no text given"), false
	}
	dir := direction(op.arg)
	buf, err := typeshape.Shape(intp.font, op.arg, dir, otshape.Options{})
	if err != nil {
		return err, false
	}
	script := typeshape.ScriptOf(op.arg)
	pterm.Printf("shaped %d code points to %d glyphs, script %s\n",
		len([]rune(op.arg)), buf.Len(), script)
	data := [][]string{
		{"Glyph", "Cluster", "Advance", "Offset"},
	}
	for i := range buf.Glyphs {
		gd := buf.At(i)
		data = append(data, []string{
			fmt.Sprintf("%d", gd.GlyphID),
			fmt.Sprintf("%d", gd.Cluster),
			fmt.Sprintf("%d", gd.Pos.XAdvance),
			fmt.Sprintf("(%d,%d)", gd.Pos.XOffset, gd.Pos.YOffset),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// direction returns the direction of the first strong character of text.
func direction(text string) bidi.Direction {
	for _, r := range text {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L:
			return bidi.LeftToRight
		case bidi.R, bidi.AL:
			return bidi.RightToLeft
		}
	}
	return bidi.LeftToRight
}
