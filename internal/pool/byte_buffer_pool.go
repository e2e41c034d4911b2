package pool

import "sync"

const (
	// SectionBufferDefaultSize is the initial capacity of a pooled buffer,
	// sized for a typical modules-plus-paths chunk.
	SectionBufferDefaultSize = 1024 * 4
	// SectionBufferMaxThreshold bounds the capacity of buffers returned to the
	// pool; larger ones are dropped for the GC.
	SectionBufferMaxThreshold = 1024 * 1024
)

// ByteBuffer is a reusable growable byte slice used by the snapshot writer to
// stage sections before the header offsets are known.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

var sectionBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, SectionBufferDefaultSize)}
	},
}

// GetSectionBuffer returns an empty ByteBuffer from the pool.
func GetSectionBuffer() *ByteBuffer {
	bb, _ := sectionBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutSectionBuffer returns a ByteBuffer to the pool. Oversized buffers are
// dropped to keep the pool's memory footprint bounded.
func PutSectionBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > SectionBufferMaxThreshold {
		return
	}
	sectionBufferPool.Put(bb)
}
