package section

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rmalmain/alcov/errs"
)

func TestBlock_RoundTrip(t *testing.T) {
	b := NewBlock(1, 2, 500, 32, 12)
	meta := BlockMeta{NbOutEdges: 2, OutEdgesOffset: 48}

	buf := AppendBlock(nil, b, meta)
	require.Len(t, buf, BlockSize)

	parsedBlock, parsedMeta, err := ParseBlock(buf)
	require.NoError(t, err)
	require.Equal(t, b, parsedBlock)
	require.Equal(t, meta, parsedMeta)
}

func TestBlock_Layout(t *testing.T) {
	b := Block{
		ModuleID:      0x0102,
		SegmentID:     0x0304,
		SegmentOffset: 0x1122334455667788,
		Size:          0xaabbccdd,
		NbTaken:       7,
	}
	buf := AppendBlock(nil, b, BlockMeta{NbOutEdges: 3, OutEdgesOffset: 96})

	require.Equal(t, b.SegmentOffset, binary.LittleEndian.Uint64(buf[0:8]))
	require.Equal(t, b.Size, binary.LittleEndian.Uint32(buf[8:12]))
	require.Equal(t, b.ModuleID, binary.LittleEndian.Uint16(buf[12:14]))
	require.Equal(t, b.SegmentID, binary.LittleEndian.Uint16(buf[14:16]))
	require.Equal(t, uint64(3), binary.LittleEndian.Uint64(buf[16:24]))
	require.Equal(t, uint64(96), binary.LittleEndian.Uint64(buf[24:32]))
	require.Equal(t, b.NbTaken, binary.LittleEndian.Uint64(buf[32:40]))
}

func TestParseBlock_Truncated(t *testing.T) {
	buf := AppendBlock(nil, NewBlock(0, 0, 0, 0, 0), BlockMeta{})

	_, _, err := ParseBlock(buf[:BlockSize-1])
	require.ErrorIs(t, err, errs.ErrMalformedBinary)
}
