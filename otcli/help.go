package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "script", "scripts", "scriptList":
		pterm.Info.Println("ScriptList / Script")
		pterm.Println(`
	ScriptList is a property of GSUB and GPOS.
	It consists of ScriptRecords:
	+------------+----------------+
	| Script Tag | Link to Script |
	+------------+----------------+

	A Script table links to a default LangSys entry, and contains a list of LangSys records:
	+--------------------------------+
	| Link to LangSys record         |
	+--------------+-----------------+
	| Language Tag | Link to LangSys |
	+--------------+-----------------+

	scripts            lists the scripts of the current table
	scripts:<tag>      lists the language systems of a script
	`)
	case "lang", "langsys", "langs", "language", "features":
		pterm.Info.Println("LangSys / Features")
		pterm.Println(`
	LangSys is pointed to from a Script Record.
	It links a language with features to activate. It does so using an index into the feature table.
	+-----------------------------------+
	| Index of required feature or null |
	+-----------------------------------+
	| Index of feature 1                |
	+-----------------------------------+
	| ...                               |
	+-----------------------------------+

	features                 lists all features of the current table
	features:<script>        lists the features of a script's default language system
	features:<script>:<lang> lists the features of a language system
	`)
	case "lookups", "lookup":
		pterm.Info.Println("Lookups")
		pterm.Println(`
	lookups            lists the lookups of the current table with type and flags
	lookups:<n>        lists the subtables of lookup n
	`)
	case "shape", "glyphs":
		pterm.Info.Println("Shaping")
		pterm.Println(`
	shape:<text>       shapes text with the engine selected for its script and
	                   prints glyph IDs, clusters, advances and offsets
	glyphs:<text>      prints the glyph of each code point of text
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	table:GSUB | table:GPOS   select a layout table
	scripts, features, lookups, glyphs, shape, quit
	help:<command>            more on a command
	`)
	}
}
