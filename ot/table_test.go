package ot

import "encoding/binary"

// Helpers to synthesize binary layout tables for tests.
//
// table lays out a table header followed by its child tables. Header fields
// are given as:
//
//	int     uint16 (or int16) field
//	[]int   sequence of uint16 fields
//	string  4-byte tag
//	ref     Offset16 to a child table, relative to the start of this table
//	ref32   Offset32 to a child table
//
// A ref of nullRef is written as a NULL offset.
type ref int
type ref32 int

const nullRef = ref(-1)

func table(fields []any, children ...[]byte) []byte {
	size := 0
	for _, f := range fields {
		switch v := f.(type) {
		case []int:
			size += 2 * len(v)
		case string, ref32:
			size += 4
		default:
			size += 2
		}
	}
	pos := make([]int, len(children))
	p := size
	for i, c := range children {
		pos[i] = p
		p += len(c)
	}
	b := make([]byte, 0, p)
	for _, f := range fields {
		switch v := f.(type) {
		case int:
			b = binary.BigEndian.AppendUint16(b, uint16(v))
		case []int:
			for _, x := range v {
				b = binary.BigEndian.AppendUint16(b, uint16(x))
			}
		case string:
			b = append(b, (v + "    ")[:4]...)
		case ref:
			off := 0
			if v >= 0 {
				off = pos[v]
			}
			b = binary.BigEndian.AppendUint16(b, uint16(off))
		case ref32:
			b = binary.BigEndian.AppendUint32(b, uint32(pos[v]))
		default:
			panic("unknown field type in test table")
		}
	}
	for _, c := range children {
		b = append(b, c...)
	}
	return b
}

func coverage1(glyphs ...int) []byte {
	return table([]any{1, len(glyphs), glyphs})
}

// coverage2 takes triples of (start, end, startIndex).
func coverage2(ranges ...int) []byte {
	return table([]any{2, len(ranges) / 3, ranges})
}

func classDef1(start int, classes ...int) []byte {
	return table([]any{1, start, len(classes), classes})
}

// classDef2 takes triples of (start, end, class).
func classDef2(ranges ...int) []byte {
	return table([]any{2, len(ranges) / 3, ranges})
}

// lookup lays out a lookup table with the given subtables.
func lookup(typ, flag int, subtables ...[]byte) []byte {
	fields := []any{typ, flag, len(subtables)}
	for i := range subtables {
		fields = append(fields, ref(i))
	}
	return table(fields, subtables...)
}

// extension wraps a subtable into an extension subtable.
func extension(typ int, subtable []byte) []byte {
	return table([]any{1, typ, ref32(0)}, subtable)
}

// layoutTable lays out a GSUB or GPOS table without scripts and features.
func layoutTable(lookups ...[]byte) []byte {
	fields := []any{len(lookups)}
	for i := range lookups {
		fields = append(fields, ref(i))
	}
	return table([]any{1, 0, ref(0), ref(1), ref(2)},
		table([]any{0}), table([]any{0}), table(fields, lookups...))
}
