package section

import (
	"encoding/binary"
	"fmt"

	"github.com/rmalmain/alcov/errs"
)

// Block is one basic-block observation. ModuleID and SegmentID index into the
// snapshot's module list and that module's segment list; SegmentOffset is the
// block's byte offset inside the segment.
type Block struct {
	ModuleID      uint16
	SegmentID     uint16
	SegmentOffset uint64
	Size          uint32
	NbTaken       uint64
}

// NewBlock builds a block observation.
func NewBlock(moduleID, segmentID uint16, segmentOffset uint64, size uint32, nbTaken uint64) Block {
	return Block{
		ModuleID:      moduleID,
		SegmentID:     segmentID,
		SegmentOffset: segmentOffset,
		Size:          size,
		NbTaken:       nbTaken,
	}
}

// BlockMeta is the edge back-reference stored in a block record but not in the
// in-memory block: the length of the block's adjacency and its byte offset
// inside the decompressed edges chunk. Both are zero when the block has no
// outgoing edges.
type BlockMeta struct {
	NbOutEdges     uint64
	OutEdgesOffset uint64
}

// AppendBlock appends the fixed-size wire record of b to buf.
func AppendBlock(buf []byte, b Block, meta BlockMeta) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, b.SegmentOffset)
	buf = binary.LittleEndian.AppendUint32(buf, b.Size)
	buf = binary.LittleEndian.AppendUint16(buf, b.ModuleID)
	buf = binary.LittleEndian.AppendUint16(buf, b.SegmentID)
	buf = binary.LittleEndian.AppendUint64(buf, meta.NbOutEdges)
	buf = binary.LittleEndian.AppendUint64(buf, meta.OutEdgesOffset)
	buf = binary.LittleEndian.AppendUint64(buf, b.NbTaken)

	return buf
}

// ParseBlock parses one block record from the front of data.
func ParseBlock(data []byte) (Block, BlockMeta, error) {
	if len(data) < BlockSize {
		return Block{}, BlockMeta{}, fmt.Errorf("%w: truncated block record", errs.ErrMalformedBinary)
	}

	b := Block{
		SegmentOffset: binary.LittleEndian.Uint64(data[0:8]),
		Size:          binary.LittleEndian.Uint32(data[8:12]),
		ModuleID:      binary.LittleEndian.Uint16(data[12:14]),
		SegmentID:     binary.LittleEndian.Uint16(data[14:16]),
		NbTaken:       binary.LittleEndian.Uint64(data[32:40]),
	}
	meta := BlockMeta{
		NbOutEdges:     binary.LittleEndian.Uint64(data[16:24]),
		OutEdgesOffset: binary.LittleEndian.Uint64(data[24:32]),
	}

	return b, meta, nil
}
