package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otquery"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	f := mustLoadFont(fontPath)

	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Name: %s\n", f.Fontname)
	fmt.Printf("Units per em: %d\n", f.UnitsPerEm())
	fmt.Printf("Glyphs: %d\n", f.SFNT.NumGlyphs())
	if q, err := otquery.Open(f.Binary, f.Layout); err == nil {
		printFontInfo(q)
	}
	for _, lt := range []*ot.LayoutTable{f.Layout.GSUB, f.Layout.GPOS} {
		if lt == nil {
			continue
		}
		scripts := make([]string, len(lt.Scripts))
		for i, s := range lt.Scripts {
			scripts[i] = s.Tag.String()
		}
		fmt.Printf("%s %d.%d: scripts=[%s] features=%d lookups=%d\n", lt.Tag,
			lt.MajorVersion, lt.MinorVersion, strings.Join(scripts, ","),
			len(lt.Features), lt.LookupCount())
	}
	if f.Layout.GDEF != nil {
		fmt.Println("GDEF: present")
	}
	warnings := f.Layout.Warnings()
	fmt.Printf("Issues: warnings=%d\n", len(warnings))
	if mustFlagBool(flags["errors"], "errors") {
		for _, w := range warnings {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

func printFontInfo(q *otquery.Font) {
	names := otquery.NameInfo(q)
	for _, key := range []string{"family", "subfamily", "version"} {
		if v, ok := names[key]; ok {
			fmt.Printf("%s: %s\n", key, v)
		}
	}
	fmt.Printf("Type: %s\n", otquery.FontType(q))
	if h, ok := otquery.HeaderInfo(q); ok {
		fmt.Printf("Revision: %.3f, created %s\n", h.Revision, h.Created.Format("2006-01-02"))
		fmt.Printf("Bounding box: (%d,%d)-(%d,%d)\n", h.XMin, h.YMin, h.XMax, h.YMax)
	}
	m := otquery.FontMetrics(q)
	fmt.Printf("Ascent: %d, descent: %d, line gap: %d, max advance: %d\n",
		m.Ascent, m.Descent, m.LineGap, m.MaxAdvance)
	fmt.Printf("Tables: %s\n", strings.Join(q.TableTags(), " "))
}
