package section

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/rmalmain/alcov/errs"
)

// AppendAdjacency appends one block's adjacency to the edges chunk, one
// (dst_block_id, nb_taken) pair per outgoing edge. Pairs are written in
// ascending dst_block_id order so that equal adjacencies encode identically;
// readers do not depend on the order.
func AppendAdjacency(buf []byte, adjacency map[uint64]uint64) []byte {
	dsts := make([]uint64, 0, len(adjacency))
	for dst := range adjacency {
		dsts = append(dsts, dst)
	}
	slices.Sort(dsts)

	for _, dst := range dsts {
		buf = binary.LittleEndian.AppendUint64(buf, dst)
		buf = binary.LittleEndian.AppendUint64(buf, adjacency[dst])
	}

	return buf
}

// ParseAdjacency reads count (dst_block_id, nb_taken) pairs at offset inside
// the decompressed edges chunk.
func ParseAdjacency(edges []byte, offset, count uint64) (map[uint64]uint64, error) {
	need := count * EdgeSize
	if count > uint64(len(edges))/EdgeSize || offset > uint64(len(edges)) || offset+need > uint64(len(edges)) {
		return nil, fmt.Errorf("%w: adjacency of %d edges at offset %d outside edges chunk of %d bytes",
			errs.ErrMalformedBinary, count, offset, len(edges))
	}

	adjacency := make(map[uint64]uint64, count)
	for i := uint64(0); i < count; i++ {
		rec := edges[offset+i*EdgeSize:]
		dst := binary.LittleEndian.Uint64(rec[0:8])
		taken := binary.LittleEndian.Uint64(rec[8:16])
		adjacency[dst] = taken
	}

	return adjacency, nil
}
