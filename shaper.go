package typeshape

import (
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/typeshape/ot"
	"github.com/npillmayer/typeshape/otlayout"
	"github.com/npillmayer/typeshape/otshape"
	"github.com/npillmayer/typeshape/otshape/otarabic"
	"github.com/npillmayer/typeshape/otshape/othangul"
	"github.com/npillmayer/typeshape/otshape/otindic"
	"github.com/npillmayer/typeshape/otshape/otmyanmar"
	"github.com/npillmayer/typeshape/otshape/otuse"
	"golang.org/x/text/unicode/bidi"
)

// SelectShaper returns a new shaping engine for a script. scriptTag is the
// script tag selected from the font's layout tables (0 if the font has none);
// it distinguishes fonts for the old and new Indic shaping models. Complex
// scripts fall back to the default engine only if the font offers nothing but
// the DFLT or latn script for them.
//
// The result depends on the arguments only.
func SelectShaper(script language.Script, scriptTag ot.Tag) otshape.ShapingEngine {
	generic := scriptTag == ot.DFLT || scriptTag == ot.T("latn")
	switch script {
	case language.Arabic:
		return otarabic.New()
	case language.Syriac:
		if scriptTag != ot.DFLT {
			return otarabic.New()
		}
	case language.Hangul:
		return othangul.New()
	case language.Bengali, language.Devanagari, language.Gujarati, language.Gurmukhi,
		language.Kannada, language.Malayalam, language.Oriya, language.Tamil,
		language.Telugu, language.Sinhala:
		switch {
		case generic:
			break
		case byte(scriptTag&0xff) == '3':
			return otuse.New()
		default:
			return otindic.New()
		}
	case language.Myanmar:
		switch {
		case scriptTag == ot.T("mymr"):
			// old-model fonts expect no preparation of the text
			return otshape.NoShaper{}
		case !generic:
			return otmyanmar.New()
		}
	default:
		if usesUniversalShaper(script) {
			return otuse.New()
		}
	}
	return otshape.DefaultShaper{}
}

func usesUniversalShaper(script language.Script) bool {
	switch script {
	case language.Adlam, language.Ahom, language.Balinese, language.Batak, language.Bhaiksuki,
		language.Brahmi, language.Buginese, language.Buhid, language.Chakma, language.Cham,
		language.Chorasmian, language.Dives_Akuru, language.Dogra, language.Duployan,
		language.Egyptian_Hieroglyphs, language.Elymaic, language.Grantha, language.Gunjala_Gondi,
		language.Hanifi_Rohingya, language.Hanunoo, language.Javanese, language.Kaithi,
		language.Kawi, language.Kharoshthi, language.Khmer, language.Khojki, language.Khudawadi,
		language.Lepcha, language.Limbu, language.Mahajani, language.Makasar, language.Mandaic,
		language.Manichaean, language.Masaram_Gondi, language.Medefaidrin, language.Meetei_Mayek,
		language.Mende_Kikakui, language.Modi, language.Mongolian, language.Multani,
		language.Nandinagari, language.Newa, language.Nko, language.Old_Sogdian,
		language.Old_Uyghur, language.Phags_Pa, language.Psalter_Pahlavi, language.Rejang,
		language.Saurashtra, language.Sharada, language.Siddham, language.Sogdian,
		language.Soyombo, language.Sundanese, language.Syloti_Nagri, language.Tagalog,
		language.Tagbanwa, language.Tai_Le, language.Tai_Tham, language.Tai_Viet,
		language.Takri, language.Tibetan, language.Tirhuta, language.Wancho,
		language.Yezidi, language.Zanabazar_Square:
		return true
	}
	return false
}

// ScriptOf returns the script of a text, which is the script of the first
// code point with a script other than Common or Inherited. It returns
// language.Common if there is none.
func ScriptOf(text string) language.Script {
	for _, r := range text {
		switch s := language.LookupScript(r); s {
		case language.Common, language.Inherited, language.Unknown:
			continue
		default:
			return s
		}
	}
	return language.Common
}

// Shape shapes a piece of text as a single run, selecting the shaping engine
// for the script of the text. Clusters are the rune positions of the text.
//
// This is a convenience API for short pieces of text. Clients who need more
// control over shaping, such as shaping multiple runs or re-using buffers,
// need to use package otshape directly.
func Shape(f *ScalableFont, text string, dir bidi.Direction, opts otshape.Options) (*otlayout.Buffer, error) {
	script := ScriptOf(text)
	buf := otlayout.NewBuffer(dir, script)
	i := 0
	for _, r := range text {
		buf.AddCodePoint(r, i)
		i++
	}
	if f == nil || buf.Len() == 0 {
		return buf, nil
	}
	return buf, ShapeBuffer(f, buf, opts)
}

// ShapeBuffer shapes the code points of a buffer, selecting the shaping
// engine for the script of the buffer.
func ShapeBuffer(f *ScalableFont, buf *otlayout.Buffer, opts otshape.Options) error {
	tags := otshape.ScriptTags(buf.Script)
	if opts.ScriptTag != 0 {
		tags = []ot.Tag{opts.ScriptTag}
	}
	var scriptTag ot.Tag
	for _, lt := range []*ot.LayoutTable{f.Layout.GSUB, f.Layout.GPOS} {
		if s := lt.SelectScript(tags...); s != nil {
			scriptTag = s.Tag
			break
		}
	}
	engine := SelectShaper(buf.Script, scriptTag)
	tracer().Debugf("shaping %d code points with engine %s", buf.Len(), engine.Name())
	return otshape.Shape(engine, f.Layout, f, buf, opts)
}
