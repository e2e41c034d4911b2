package compress

import (
	"fmt"

	"github.com/rmalmain/alcov/format"
)

// Compressor compresses a complete in-memory payload.
//
// Each payload (the blocks chunk or the edges chunk from the alcov writer, or a
// whole snapshot file for encapsulation) is handed to a Compressor as one byte
// slice; there is no streaming.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	// The returned slice is owned by the caller; the input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor is the inverse of Compressor.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	// Corrupted or mismatched input yields an error wrapping errs.ErrDecompress.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:  NewNoOpCompressor(),
	format.CompressionLZMA2: NewLZMA2Compressor(),
	format.CompressionZstd:  NewZstdCompressor(),
	format.CompressionLZ4:   NewLZ4Compressor(),
	format.CompressionGzip:  NewGzipCompressor(),
	format.CompressionXZ:    NewXZCompressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
