package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"

	"github.com/rmalmain/alcov/errs"
)

// LZMA2Compressor implements the compression applied to the blocks and edges
// chunks of an alcov file when the COMPRESS header flag is set.
//
// The stream is a raw LZMA2 chunk sequence with an end-of-stream marker, with
// no container around it; the chunk boundaries inside the file come from the
// header offsets, not from the compressed stream itself.
type LZMA2Compressor struct{}

var _ Codec = (*LZMA2Compressor)(nil)

// NewLZMA2Compressor creates a new LZMA2 compressor.
func NewLZMA2Compressor() LZMA2Compressor {
	return LZMA2Compressor{}
}

// Compress compresses data into a raw LZMA2 chunk stream.
func (c LZMA2Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, err := lzma.NewWriter2(&buf)
	if err != nil {
		return nil, fmt.Errorf("lzma2 writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lzma2 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lzma2 flush: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses a raw LZMA2 chunk stream.
func (c LZMA2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := lzma.NewReader2(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: lzma2 init: %v", errs.ErrDecompress, err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: lzma2: %v", errs.ErrDecompress, err)
	}

	return out, nil
}
