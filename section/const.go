package section

import "math"

// Wire sizes of the fixed-layout records. All multi-byte integers are
// little-endian.
const (
	// HeaderSize is the size of the file header in bytes. It equals the
	// modules_start offset written into every header.
	HeaderSize = 74

	// ModuleFixedSize is the size of a module record before its segment
	// records: base address, path offset and segment count.
	ModuleFixedSize = 17

	// SegmentSize is the size of one segment record: range start and range
	// size.
	SegmentSize = 16

	// BlockSize is the size of one block record.
	BlockSize = 40

	// EdgeSize is the size of one (dst_block_id, nb_taken) pair in the edges
	// chunk.
	EdgeSize = 16

	// MaxSegments is the largest segment count a module record can carry.
	MaxSegments = math.MaxUint8
)

// NoPathOffset is the path_offset value of a module without a path.
const NoPathOffset int64 = -1
