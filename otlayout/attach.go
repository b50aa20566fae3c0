package otlayout

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/npillmayer/typeshape/ot"
)

// ResolveAttachments turns the attachments recorded by GPOS lookups into
// offsets relative to the pen position of each glyph. It has to be called once,
// after all GPOS lookups have been applied, with glyphs still in logical order.
//
// A cursively attached glyph accumulates the cross-direction offset of the
// glyph it is attached to. A mark accumulates the offsets of its base, and is
// moved back by the advances of the glyphs between its base and itself.
func ResolveAttachments(buf *Buffer) {
	n := buf.Len()
	if n == 0 {
		return
	}
	done := bitset.New(uint(n))
	for i := range n {
		resolveAttachment(buf, i, done)
	}
}

func resolveAttachment(buf *Buffer, i int, done *bitset.BitSet) {
	if done.Test(uint(i)) {
		return
	}
	done.Set(uint(i))
	p := &buf.Glyphs[i].Pos
	if p.AttachChain == 0 {
		return
	}
	j := i + p.AttachChain
	if j < 0 || j >= buf.Len() {
		return
	}
	resolveAttachment(buf, j, done)
	pj := &buf.Glyphs[j].Pos
	switch p.AttachKind {
	case AttachCursive:
		if buf.Vertical {
			p.XOffset += pj.XOffset
		} else {
			p.YOffset += pj.YOffset
		}
	case AttachMark:
		p.XOffset += pj.XOffset
		p.YOffset += pj.YOffset
		if j > i {
			break
		}
		if buf.IsRTL() {
			for k := j + 1; k <= i; k++ {
				p.XOffset += buf.Glyphs[k].Pos.XAdvance
				p.YOffset += buf.Glyphs[k].Pos.YAdvance
			}
		} else {
			for k := j; k < i; k++ {
				p.XOffset -= buf.Glyphs[k].Pos.XAdvance
				p.YOffset -= buf.Glyphs[k].Pos.YAdvance
			}
		}
	}
}

// MarkZeroing selects when the advances of marks are set to zero.
type MarkZeroing uint8

const (
	MarkZeroingNone  MarkZeroing = iota // marks keep their advance
	MarkZeroingEarly                    // before GPOS is applied
	MarkZeroingLate                     // after GPOS is applied
)

func (mz MarkZeroing) String() string {
	switch mz {
	case MarkZeroingEarly:
		return "early"
	case MarkZeroingLate:
		return "late"
	}
	return "none"
}

// ZeroMarkAdvances sets the advance of all marks to zero. With adjustOffsets
// set, the offsets of marks in left-to-right runs are moved back by their
// former advance.
func ZeroMarkAdvances(buf *Buffer, gdef *ot.GDef, adjustOffsets bool) {
	adjust := adjustOffsets && !buf.IsRTL() && !buf.Vertical
	for i := range buf.Glyphs {
		if !buf.IsMark(i, gdef) {
			continue
		}
		p := &buf.Glyphs[i].Pos
		if adjust {
			p.XOffset -= p.XAdvance
		}
		p.XAdvance, p.YAdvance = 0, 0
	}
}
