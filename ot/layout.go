package ot

import "slices"

// LayoutTable is a loaded GSUB or GPOS table: the indirection chain
// Script → LangSys → Feature → Lookup, where the lookups are kept in a flat
// array addressed by lookup index.
type LayoutTable struct {
	Tag          Tag // GSUB or GPOS
	MajorVersion uint16
	MinorVersion uint16
	Scripts      []Script  // sorted by tag
	Features     []Feature // in feature index order
	lookups      []Lookup
	warnings     []FontWarning
}

// Script is a script table of a layout table's script list.
type Script struct {
	Tag            Tag
	DefaultLangSys *LangSys // may be nil
	LangSys        []LangSysRecord
}

// LangSysRecord ties a language system tag to a language system table.
type LangSysRecord struct {
	Tag     Tag
	LangSys LangSys
}

// NoRequiredFeature is the value of LangSys.RequiredFeature if there is none.
const NoRequiredFeature = 0xFFFF

// LangSys is a language system table: the features enabled for a script/language.
type LangSys struct {
	RequiredFeature uint16   // feature index or NoRequiredFeature
	FeatureIndices  []uint16 // indices into the feature list
}

// Feature is a feature list entry, i.e. a feature tag and the lookups it comprises.
type Feature struct {
	Tag           Tag
	LookupIndices []uint16 // indices into the lookup list
}

// LookupCount returns the number of lookups in the lookup list.
func (lt *LayoutTable) LookupCount() int {
	if lt == nil {
		return 0
	}
	return len(lt.lookups)
}

// Lookup returns a copy of the lookup at index i of the lookup list, or nil if i
// is out of range. Lookups are addressed by index only, which makes nested lookup
// references (possibly to later lookups) plain integers until applied.
//
// Subtables are shared with the layout table and must not be modified.
func (lt *LayoutTable) Lookup(i int) *Lookup {
	if lt == nil || i < 0 || i >= len(lt.lookups) {
		return nil
	}
	l := lt.lookups[i]
	l.Subtables = slices.Clone(l.Subtables)
	return &l
}

// Script returns the script table for a script tag, or nil.
func (lt *LayoutTable) Script(tag Tag) *Script {
	if lt == nil {
		return nil
	}
	for i := range lt.Scripts {
		if lt.Scripts[i].Tag == tag {
			return &lt.Scripts[i]
		}
	}
	return nil
}

// SelectScript returns the first script found from a list of candidate tags,
// falling back to 'DFLT', 'dflt' and 'latn', in that order. It returns nil if
// none of these exist.
func (lt *LayoutTable) SelectScript(candidates ...Tag) *Script {
	for _, tag := range candidates {
		if s := lt.Script(tag); s != nil {
			return s
		}
	}
	for _, tag := range []Tag{DFLT, DefaultLanguage, T("latn")} {
		if s := lt.Script(tag); s != nil {
			return s
		}
	}
	return nil
}

// LanguageSystem returns the language system for a language tag, falling back to
// the script's default language system. The result may be nil.
func (s *Script) LanguageSystem(lang Tag) *LangSys {
	if s == nil {
		return nil
	}
	for i := range s.LangSys {
		if s.LangSys[i].Tag == lang {
			return &s.LangSys[i].LangSys
		}
	}
	return s.DefaultLangSys
}

// Feature returns the feature at index i, or nil.
func (lt *LayoutTable) Feature(i int) *Feature {
	if lt == nil || i < 0 || i >= len(lt.Features) {
		return nil
	}
	return &lt.Features[i]
}

// FeatureLookups returns the lookup indices for a feature tag, as enabled by a
// language system. If the language system has a required feature with this tag,
// its lookups are included. Lookup indices are returned in ascending order without
// duplicates, which is the order in which they have to be applied.
func (lt *LayoutTable) FeatureLookups(ls *LangSys, feature Tag) []int {
	if lt == nil || ls == nil {
		return nil
	}
	var lookups []int
	collect := func(finx uint16) {
		f := lt.Feature(int(finx))
		if f == nil || f.Tag != feature {
			return
		}
		for _, l := range f.LookupIndices {
			if int(l) < len(lt.lookups) {
				lookups = append(lookups, int(l))
			}
		}
	}
	if ls.RequiredFeature != NoRequiredFeature {
		collect(ls.RequiredFeature)
	}
	for _, finx := range ls.FeatureIndices {
		collect(finx)
	}
	slices.Sort(lookups)
	return slices.Compact(lookups)
}

// HasFeature reports whether a language system enables a feature tag with at
// least one lookup.
func (lt *LayoutTable) HasFeature(ls *LangSys, feature Tag) bool {
	return len(lt.FeatureLookups(ls, feature)) > 0
}

// FeatureTags returns the distinct feature tags enabled by a language system,
// in feature list order.
func (lt *LayoutTable) FeatureTags(ls *LangSys) []Tag {
	if lt == nil || ls == nil {
		return nil
	}
	var tags []Tag
	add := func(finx uint16) {
		if f := lt.Feature(int(finx)); f != nil && !slices.Contains(tags, f.Tag) {
			tags = append(tags, f.Tag)
		}
	}
	if ls.RequiredFeature != NoRequiredFeature {
		add(ls.RequiredFeature)
	}
	for _, finx := range ls.FeatureIndices {
		add(finx)
	}
	return tags
}

// NewLayoutTable assembles a layout table from its parts. It is used for
// synthesized tables; fonts are loaded with ParseLayoutTable.
func NewLayoutTable(tag Tag, scripts []Script, features []Feature, lookups []Lookup) *LayoutTable {
	return &LayoutTable{
		Tag:          tag,
		MajorVersion: 1,
		Scripts:      scripts,
		Features:     features,
		lookups:      lookups,
	}
}

// Warnings returns the tolerated malformations found while loading the table.
func (lt *LayoutTable) Warnings() []FontWarning {
	if lt == nil {
		return nil
	}
	return lt.warnings
}
