// Package format defines the wire-level constants shared by every section of
// the alcov coverage container: the file magic, the format version, the header
// flag word and the compression algorithm identifiers.
package format

import "strings"

// MagicNumber is the fixed 64-bit magic at offset 0 of every alcov file.
// On the wire (little-endian) it reads as the bytes "ALCOVv0\x00".
const MagicNumber uint64 = 0x003076564f434c41

// Format version emitted by the writer. Major version 0 covers the current
// layout; the minor version is informational only.
const (
	VersionMajor uint64 = 0
	VersionMinor uint64 = 1
)

// Flags is the 16-bit flag word stored at the end of the file header.
type Flags uint16

const (
	// FlagEdges is set when the file carries an edges chunk.
	FlagEdges Flags = 0x0001
	// FlagCompress is set when the blocks and edges chunks are LZMA2-compressed.
	FlagCompress Flags = 0x0002
	// FlagInputPath is set when the paths chunk starts with the input path.
	FlagInputPath Flags = 0x0004

	knownFlagsMask = FlagEdges | FlagCompress | FlagInputPath
)

// Has reports whether all bits of flag are set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// Valid reports whether the flag word contains only recognized bits.
// Readers must reject a header whose flag word fails this check.
func (f Flags) Valid() bool {
	return f&^knownFlagsMask == 0
}

func (f Flags) String() string {
	names := make([]string, 0, 3)
	if f.Has(FlagEdges) {
		names = append(names, "Edges")
	}
	if f.Has(FlagCompress) {
		names = append(names, "Compress")
	}
	if f.Has(FlagInputPath) {
		names = append(names, "InputPath")
	}

	return strings.Join(names, ", ")
}

// CompressionType identifies a compression algorithm.
//
// CompressionLZMA2 is the only algorithm the container format itself uses
// (for the blocks and edges chunks, under FlagCompress). The remaining types
// identify whole-file encapsulation formats recognized by magic prefix when
// reading snapshot files from disk.
type CompressionType uint8

const (
	CompressionNone  CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionLZMA2 CompressionType = 0x2 // CompressionLZMA2 represents a raw LZMA2 chunk stream.
	CompressionZstd  CompressionType = 0x3 // CompressionZstd represents a Zstandard frame.
	CompressionLZ4   CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame.
	CompressionGzip  CompressionType = 0x5 // CompressionGzip represents a gzip stream.
	CompressionXZ    CompressionType = 0x6 // CompressionXZ represents an xz stream.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionLZMA2:
		return "LZMA2"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	case CompressionXZ:
		return "XZ"
	default:
		return "Unknown"
	}
}
