package otquery

import (
	"time"

	"golang.org/x/image/font/sfnt"
)

const (
	headSize   = 54
	headMagic  = 0x5F0F3CF5
	maxpSize   = 6  // version 0.5, fonts with CFF outlines
	maxpSizeTT = 32 // version 1.0, fonts with TrueType outlines
)

// macEpoch is 1904-01-01, the reference of the timestamps in 'head', in Unix seconds.
const macEpoch = -2082844800

// Header collects the font-wide values of tables 'head' and 'maxp'.
type Header struct {
	Revision               float64 // set by the font vendor
	UnitsPerEm             sfnt.Units
	Created, Modified      time.Time
	XMin, YMin, XMax, YMax sfnt.Units // bounding box of all glyphs
	MacStyle               uint16
	LowestPPEM             uint16 // smallest readable size in pixels
	LongLoca               bool   // table 'loca' holds 32-bit offsets
	NumGlyphs              int
	// Limits of the TrueType instruction engine, zero for CFF fonts.
	MaxFunctionDefs   int
	MaxStackElements  int
	MaxComponentDepth int
}

// HeaderInfo decodes tables 'head' and 'maxp'. It reports false if 'head' is
// missing, truncated or lacks the magic number. A missing 'maxp' leaves the
// glyph count at zero.
func HeaderInfo(f *Font) (Header, bool) {
	var h Header
	head := f.table("head")
	if len(head) < headSize || u32(head[12:]) != headMagic {
		return h, false
	}
	h.Revision = float64(int32(u32(head[4:]))) / 65536
	h.UnitsPerEm = sfnt.Units(u16(head[18:]))
	h.Created, h.Modified = macTime(head[20:]), macTime(head[28:])
	h.XMin, h.YMin = sfnt.Units(i16(head[36:])), sfnt.Units(i16(head[38:]))
	h.XMax, h.YMax = sfnt.Units(i16(head[40:])), sfnt.Units(i16(head[42:]))
	h.MacStyle = u16(head[44:])
	h.LowestPPEM = u16(head[46:])
	h.LongLoca = i16(head[50:]) != 0
	maxp := f.table("maxp")
	if len(maxp) < maxpSize {
		tracer().Infof("font has no usable table 'maxp'")
		return h, true
	}
	h.NumGlyphs = int(u16(maxp[4:]))
	if u32(maxp) == 0x00010000 && len(maxp) >= maxpSizeTT {
		h.MaxFunctionDefs = int(u16(maxp[20:]))
		h.MaxStackElements = int(u16(maxp[24:]))
		h.MaxComponentDepth = int(u16(maxp[30:]))
	}
	return h, true
}

// macTime converts a LONGDATETIME of table 'head'.
func macTime(b []byte) time.Time {
	secs := int64(u32(b))<<32 | int64(u32(b[4:]))
	return time.Unix(secs+macEpoch, 0).UTC()
}
