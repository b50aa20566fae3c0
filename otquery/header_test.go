package otquery

import (
	"testing"

	otloader "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
)

func headTable(unitsPerEm uint16, longLoca bool) []byte {
	b := make([]byte, headSize)
	// version 1.0, revision 2.5
	copy(b[0:], []byte{0, 1, 0, 0, 0, 2, 0x80, 0})
	copy(b[12:], []byte{0x5F, 0x0F, 0x3C, 0xF5})
	b[18], b[19] = byte(unitsPerEm>>8), byte(unitsPerEm)
	// created 2016-11-10
	copy(b[20:], []byte{0, 0, 0, 0, 0xD4, 0x49, 0x69, 0x00})
	// bounding box
	copy(b[36:], []byte{0xFF, 0x00, 0xFE, 0x00, 0x04, 0x00, 0x08, 0x00})
	if longLoca {
		b[51] = 1
	}
	return b
}

func synthFont(t *testing.T, tables ...otloader.Table) *Font {
	f, err := Open(otloader.WriteTTF(tables), nil)
	require.NoError(t, err)
	return f
}

func TestHeaderInfo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.fonts")
	defer teardown()
	//
	maxp := []byte{0, 0, 0x50, 0, 0x01, 0x2C} // version 0.5, 300 glyphs
	f := synthFont(t,
		otloader.Table{Tag: otloader.MustNewTag("head"), Content: headTable(1000, true)},
		otloader.Table{Tag: otloader.MustNewTag("maxp"), Content: maxp},
	)
	h, ok := HeaderInfo(f)
	require.True(t, ok)
	assert.Equal(t, 2.5, h.Revision)
	assert.Equal(t, sfnt.Units(1000), h.UnitsPerEm)
	assert.Equal(t, "2016-11-10", h.Created.Format("2006-01-02"))
	assert.Equal(t, [4]sfnt.Units{-256, -512, 1024, 2048}, [4]sfnt.Units{h.XMin, h.YMin, h.XMax, h.YMax})
	assert.True(t, h.LongLoca)
	assert.Equal(t, 300, h.NumGlyphs)
	assert.Equal(t, 0, h.MaxComponentDepth, "CFF fonts have no TrueType limits")
}

func TestHeaderInfoRejectsBrokenHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.fonts")
	defer teardown()
	//
	badMagic := headTable(1000, false)
	badMagic[12] = 0
	for name, head := range map[string][]byte{
		"truncated": headTable(1000, false)[:headSize-2],
		"bad magic": badMagic,
	} {
		f := synthFont(t, otloader.Table{Tag: otloader.MustNewTag("head"), Content: head})
		_, ok := HeaderInfo(f)
		assert.False(t, ok, name)
	}
	_, ok := HeaderInfo(&Font{})
	assert.False(t, ok, "font without tables")
	f := synthFont(t, otloader.Table{Tag: otloader.MustNewTag("head"), Content: headTable(2048, false)})
	h, ok := HeaderInfo(f)
	assert.True(t, ok, "'maxp' is optional")
	assert.Equal(t, 0, h.NumGlyphs)
}
