package section

import (
	"encoding/binary"
	"fmt"

	"github.com/rmalmain/alcov/errs"
)

// Segment is a half-open byte range [Start, End) inside a module's address
// space, relative to the module base.
type Segment struct {
	Start uint64
	End   uint64
}

// Size returns the byte length of the segment, which is what the wire record
// stores alongside Start.
func (s Segment) Size() uint64 {
	return s.End - s.Start
}

// Module is one loaded binary image: a base load address, an optional path
// (empty string means no path) and at least one segment.
type Module struct {
	BaseAddress uint64
	Path        string
	Segments    []Segment
}

// NewModule builds a module, rejecting an empty segment list.
func NewModule(baseAddress uint64, path string, segments []Segment) (Module, error) {
	if len(segments) == 0 {
		return Module{}, errs.ErrEmptyModule
	}

	return Module{
		BaseAddress: baseAddress,
		Path:        path,
		Segments:    segments,
	}, nil
}

// Equal reports whether two modules have the same base address, path and
// segment list.
func (m Module) Equal(other Module) bool {
	if m.BaseAddress != other.BaseAddress || m.Path != other.Path || len(m.Segments) != len(other.Segments) {
		return false
	}
	for i := range m.Segments {
		if m.Segments[i] != other.Segments[i] {
			return false
		}
	}

	return true
}

// AppendModule appends the wire record of m to buf. pathOffset is the byte
// offset of the module's path inside the paths chunk, or NoPathOffset when the
// module has none.
func AppendModule(buf []byte, m Module, pathOffset int64) ([]byte, error) {
	if len(m.Segments) == 0 {
		return nil, errs.ErrEmptyModule
	}
	if len(m.Segments) > MaxSegments {
		return nil, fmt.Errorf("%w: %d segments, max %d", errs.ErrSizeOverflow, len(m.Segments), MaxSegments)
	}

	buf = binary.LittleEndian.AppendUint64(buf, m.BaseAddress)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(pathOffset))
	buf = append(buf, uint8(len(m.Segments)))

	for _, seg := range m.Segments {
		buf = binary.LittleEndian.AppendUint64(buf, seg.Start)
		buf = binary.LittleEndian.AppendUint64(buf, seg.Size())
	}

	return buf, nil
}

// ParseModules parses count module records from the modules chunk, resolving
// each path against the paths chunk.
func ParseModules(data []byte, paths []byte, count uint32) ([]Module, error) {
	modules := make([]Module, 0, count)
	off := 0

	for i := uint32(0); i < count; i++ {
		if len(data)-off < ModuleFixedSize {
			return nil, fmt.Errorf("%w: truncated module record %d", errs.ErrMalformedBinary, i)
		}

		baseAddress := binary.LittleEndian.Uint64(data[off : off+8])
		pathOffset := int64(binary.LittleEndian.Uint64(data[off+8 : off+16]))
		nbSegments := int(data[off+16])
		off += ModuleFixedSize

		if nbSegments == 0 {
			return nil, errs.ErrEmptyModule
		}
		if len(data)-off < nbSegments*SegmentSize {
			return nil, fmt.Errorf("%w: truncated segments of module %d", errs.ErrMalformedBinary, i)
		}

		segments := make([]Segment, 0, nbSegments)
		for s := 0; s < nbSegments; s++ {
			start := binary.LittleEndian.Uint64(data[off : off+8])
			size := binary.LittleEndian.Uint64(data[off+8 : off+16])
			segments = append(segments, Segment{Start: start, End: start + size})
			off += SegmentSize
		}

		path := ""
		if pathOffset >= 0 {
			var err error
			path, err = ReadPath(paths, pathOffset)
			if err != nil {
				return nil, err
			}
		}

		modules = append(modules, Module{
			BaseAddress: baseAddress,
			Path:        path,
			Segments:    segments,
		})
	}

	if off != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes in modules chunk", errs.ErrMalformedBinary, len(data)-off)
	}
	if len(modules) == 0 {
		return nil, nil
	}

	return modules, nil
}
