package ot

import (
	"errors"
)

// Reading bytes from a layout table's binary representation

var errBufferBounds = errors.New("buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binarySegm is a segment of byte data, usually a complete layout table.
type binarySegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n < 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// --- Reader ----------------------------------------------------------------

// reader is a big-endian cursor over a table's binary data. Positions are
// absolute within the table, offsets read from the table have to be
// converted by the caller, relative to the enclosing (sub-)table.
//
// Nested tables are loaded with a detour: jump moves the cursor and returns a
// function which restores the position of the caller, so that sibling fields
// may be read after a nested table has been loaded inline.
type reader struct {
	data binarySegm
	pos  int
	tag  Tag
	warn *warnings
}

func newReader(tag Tag, data []byte) *reader {
	return &reader{
		data: data,
		tag:  tag,
		warn: &warnings{table: tag},
	}
}

// tell returns the current absolute position.
func (r *reader) tell() int {
	return r.pos
}

// seek moves the cursor to an absolute position.
func (r *reader) seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return r.errorf("reader", pos, "seek beyond end of table")
	}
	r.pos = pos
	return nil
}

// jump moves the cursor to pos and returns a function restoring the old position.
// Usage:
//
//	defer r.jump(offset)()
func (r *reader) jump(pos int) func() {
	saved := r.pos
	r.pos = pos
	return func() {
		r.pos = saved
	}
}

func (r *reader) bytes(n int) (binarySegm, error) {
	b, err := r.data.view(r.pos, n)
	if err != nil {
		return nil, r.errorf("reader", r.pos, "cannot read %d bytes: %v", n, err)
	}
	r.pos += n
	return b, nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return u16(b), nil
}

func (r *reader) i16() (int16, error) {
	n, err := r.u16()
	return int16(n), err
}

func (r *reader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return u32(b), nil
}

func (r *reader) tag32() (Tag, error) {
	n, err := r.u32()
	return Tag(n), err
}

// u16s reads n consecutive uint16 values.
func (r *reader) u16s(n int) ([]uint16, error) {
	b, err := r.bytes(2 * n)
	if err != nil {
		return nil, err
	}
	s := make([]uint16, n)
	for i := range s {
		s[i] = u16(b[2*i:])
	}
	return s, nil
}

// countedU16s reads a uint16 count followed by count uint16 values.
func (r *reader) countedU16s() ([]uint16, error) {
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	return r.u16s(int(n))
}

// glyphs reads n glyph IDs.
func (r *reader) glyphs(n int) ([]GlyphIndex, error) {
	b, err := r.bytes(2 * n)
	if err != nil {
		return nil, err
	}
	g := make([]GlyphIndex, n)
	for i := range g {
		g[i] = GlyphIndex(u16(b[2*i:]))
	}
	return g, nil
}

// countedGlyphs reads a uint16 count followed by count glyph IDs.
func (r *reader) countedGlyphs() ([]GlyphIndex, error) {
	n, err := r.u16()
	if err != nil {
		return nil, err
	}
	return r.glyphs(int(n))
}

// errorf creates a fatal format error for the reader's table.
func (r *reader) errorf(section string, pos int, format string, args ...any) error {
	return errFontFormat(r.tag, section, pos, format, args...)
}
