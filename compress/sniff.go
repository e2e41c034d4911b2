package compress

import (
	"bytes"
	"encoding/binary"

	"github.com/rmalmain/alcov/format"
)

// Container magics of the encapsulation formats recognized by Detect.
var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// Detect inspects the leading bytes of data and returns the encapsulation
// format it carries, or CompressionNone when no container magic matches.
//
// Raw LZMA2 chunk streams have no magic and are never detected; inside an
// alcov file their extent comes from the header offsets instead.
func Detect(data []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(data, xzMagic):
		return format.CompressionXZ
	case bytes.HasPrefix(data, gzipMagic):
		return format.CompressionGzip
	default:
		return format.CompressionNone
	}
}

// Decapsulate decompresses data when it carries a known container magic, and
// returns it unchanged otherwise. Snapshot files stored as .zst, .lz4, .gz or
// .xz pass through here before the snapshot reader sees them.
func Decapsulate(data []byte) ([]byte, error) {
	ct := Detect(data)
	if ct == format.CompressionNone {
		return data, nil
	}

	codec, err := GetCodec(ct)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}

// IsSnapshot reports whether data starts with the alcov file magic, before any
// decapsulation.
func IsSnapshot(data []byte) bool {
	return len(data) >= 8 && binary.LittleEndian.Uint64(data[:8]) == format.MagicNumber
}
