package otshape

import (
	"strings"
	"sync"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/typeshape/ot"
	xlanguage "golang.org/x/text/language"
)

// oldScriptTag returns the OpenType script tag of the first generation of
// script tags.
func oldScriptTag(script language.Script) ot.Tag {
	switch script {
	case 0, language.Common, language.Inherited, language.Unknown:
		return ot.DFLT
	case language.Mathematical_notation:
		return ot.T("math")
	case language.Hiragana, language.Katakana:
		return ot.T("kana")
	case language.Lao:
		return ot.T("lao ")
	case language.Yi:
		return ot.T("yi  ")
	case language.Nko:
		return ot.T("nko ")
	case language.Vai:
		return ot.T("vai ")
	}
	// change first char to lowercase
	return ot.Tag(uint32(script) | 0x20000000)
}

// newScriptTag returns the script tag of the second generation of Indic
// script tags, or DFLT.
func newScriptTag(script language.Script) ot.Tag {
	switch script {
	case language.Bengali:
		return ot.T("bng2")
	case language.Devanagari:
		return ot.T("dev2")
	case language.Gujarati:
		return ot.T("gjr2")
	case language.Gurmukhi:
		return ot.T("gur2")
	case language.Kannada:
		return ot.T("knd2")
	case language.Malayalam:
		return ot.T("mlm2")
	case language.Oriya:
		return ot.T("ory2")
	case language.Tamil:
		return ot.T("tml2")
	case language.Telugu:
		return ot.T("tel2")
	case language.Myanmar:
		return ot.T("mym2")
	}
	return ot.DFLT
}

// ScriptTags returns the OpenType script tags for a script, in order of
// preference: third and second generation Indic tags before the old ones.
func ScriptTags(script language.Script) []ot.Tag {
	var tags []ot.Tag
	if tag := newScriptTag(script); tag != ot.DFLT {
		if tag != ot.T("mym2") {
			tags = append(tags, tag&^0xff|'3')
		}
		tags = append(tags, tag)
	}
	if tag := oldScriptTag(script); tag != ot.DFLT {
		tags = append(tags, tag)
	}
	return tags
}

// IsNewIndicTag reports whether a script tag is a second or third generation
// Indic script tag, e.g. 'dev2'.
func IsNewIndicTag(tag ot.Tag) bool {
	last := byte(tag & 0xff)
	return last == '2' || last == '3'
}

// OpenType language system tags that differ from upper-cased ISO 639-3.
var otLanguages = map[string]string{
	"am": "AMH", "ar": "ARA", "az": "AZE", "be": "BEL", "bg": "BGR", "bn": "BEN",
	"bo": "TIB", "ca": "CAT", "cs": "CSY", "cy": "WEL", "da": "DAN", "de": "DEU",
	"dv": "DIV", "el": "ELL", "en": "ENG", "es": "ESP", "et": "ETI", "eu": "EUS",
	"fa": "FAR", "fi": "FIN", "fr": "FRA", "ga": "IRI", "gl": "GAL", "gu": "GUJ",
	"he": "IWR", "hi": "HIN", "hr": "HRV", "hu": "HUN", "hy": "HYE", "id": "IND",
	"is": "ISL", "it": "ITA", "ja": "JAN", "ka": "KAT", "kk": "KAZ", "km": "KHM",
	"kn": "KAN", "ko": "KOR", "ku": "KUR", "ky": "KIR", "lo": "LAO", "lt": "LTH",
	"lv": "LVI", "mk": "MKD", "ml": "MAL", "mn": "MNG", "mr": "MAR", "ms": "MLY",
	"my": "BRM", "ne": "NEP", "nl": "NLD", "nb": "NOR", "no": "NOR", "or": "ORI",
	"pa": "PAN", "pl": "PLK", "ps": "PAS", "pt": "PTG", "ro": "ROM", "ru": "RUS",
	"sa": "SAN", "sd": "SND", "si": "SNH", "sk": "SKY", "sl": "SLV", "sq": "SQI",
	"sr": "SRB", "sv": "SVE", "sw": "SWK", "ta": "TAM", "te": "TEL", "th": "THA",
	"ti": "TGY", "tl": "TGL", "tr": "TRK", "ug": "UYG", "uk": "UKR", "ur": "URD",
	"uz": "UZB", "vi": "VIT", "yi": "JII", "zh": "ZHS", "syr": "SYR",
}

var (
	otLanguageIndexOnce sync.Once
	otLanguageIndex     map[string]ot.Tag
)

func initOTLanguageIndex() {
	otLanguageIndex = make(map[string]ot.Tag, len(otLanguages))
	for lang, tag := range otLanguages {
		otLanguageIndex[lang] = ot.T(tag)
	}
}

// LanguageSystemTag returns the OpenType language system tag for a BCP 47
// language tag. Languages without an explicit mapping use their upper-cased
// ISO 639-3 code. It returns 0, i.e. the default language system, for
// undetermined languages.
func LanguageSystemTag(tag xlanguage.Tag) ot.Tag {
	if tag == xlanguage.Und {
		return 0
	}
	base, conf := tag.Base()
	if conf == xlanguage.No {
		return 0
	}
	otLanguageIndexOnce.Do(initOTLanguageIndex)
	primary := base.String()
	if primary == "zh" {
		return chineseTag(tag)
	}
	if t, ok := otLanguageIndex[primary]; ok {
		return t
	}
	if iso3 := base.ISO3(); len(iso3) == 3 {
		return ot.T(strings.ToUpper(iso3))
	}
	return 0
}

func chineseTag(tag xlanguage.Tag) ot.Tag {
	script, _ := tag.Script()
	region, _ := tag.Region()
	switch {
	case region.String() == "HK" || region.String() == "MO":
		return ot.T("ZHH")
	case script.String() == "Hant" || region.String() == "TW":
		return ot.T("ZHT")
	}
	return ot.T("ZHS")
}
