package section

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/rmalmain/alcov/errs"
	"github.com/rmalmain/alcov/format"
)

// Header is the fixed-size prefix of an alcov file. The section offsets are
// absolute from the start of the file; ModulesStart always equals HeaderSize.
type Header struct {
	VersionMajor uint64 // byte offset 8-15
	VersionMinor uint64 // byte offset 16-23
	NbModules    uint32 // byte offset 24-27
	NbBlocks     uint32 // byte offset 28-31
	NbEdges      uint64 // byte offset 32-39
	ModulesStart uint64 // byte offset 40-47
	PathsStart   uint64 // byte offset 48-55
	BlocksStart  uint64 // byte offset 56-63
	EdgesStart   uint64 // byte offset 64-71, 0 when FlagEdges is clear

	Flags format.Flags // byte offset 72-73
}

// Bytes serializes the header into a new HeaderSize-byte slice, with the
// magic number at offset 0.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	binary.LittleEndian.PutUint64(b[0:8], format.MagicNumber)
	binary.LittleEndian.PutUint64(b[8:16], h.VersionMajor)
	binary.LittleEndian.PutUint64(b[16:24], h.VersionMinor)
	binary.LittleEndian.PutUint32(b[24:28], h.NbModules)
	binary.LittleEndian.PutUint32(b[28:32], h.NbBlocks)
	binary.LittleEndian.PutUint64(b[32:40], h.NbEdges)
	binary.LittleEndian.PutUint64(b[40:48], h.ModulesStart)
	binary.LittleEndian.PutUint64(b[48:56], h.PathsStart)
	binary.LittleEndian.PutUint64(b[56:64], h.BlocksStart)
	binary.LittleEndian.PutUint64(b[64:72], h.EdgesStart)
	binary.LittleEndian.PutUint16(b[72:74], uint16(h.Flags))

	return b
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes.
// It rejects a wrong magic number and any unknown flag bit.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, want %d", errs.ErrMalformedBinary, len(data), HeaderSize)
	}

	if magic := binary.LittleEndian.Uint64(data[0:8]); magic != format.MagicNumber {
		return fmt.Errorf("%w: got %#016x", errs.ErrWrongMagic, magic)
	}

	h.VersionMajor = binary.LittleEndian.Uint64(data[8:16])
	h.VersionMinor = binary.LittleEndian.Uint64(data[16:24])
	h.NbModules = binary.LittleEndian.Uint32(data[24:28])
	h.NbBlocks = binary.LittleEndian.Uint32(data[28:32])
	h.NbEdges = binary.LittleEndian.Uint64(data[32:40])
	h.ModulesStart = binary.LittleEndian.Uint64(data[40:48])
	h.PathsStart = binary.LittleEndian.Uint64(data[48:56])
	h.BlocksStart = binary.LittleEndian.Uint64(data[56:64])
	h.EdgesStart = binary.LittleEndian.Uint64(data[64:72])

	rawFlags := binary.LittleEndian.Uint16(data[72:74])
	h.Flags = format.Flags(rawFlags)
	if !h.Flags.Valid() {
		return fmt.Errorf("%w: %#06x", errs.ErrWrongFlags, rawFlags)
	}

	return nil
}

// ReadHeader reads and parses a header from r.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, fmt.Errorf("read header: %w", err)
	}

	var h Header
	if err := h.Parse(buf); err != nil {
		return Header{}, err
	}

	return h, nil
}
