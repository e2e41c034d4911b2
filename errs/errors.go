// Package errs defines the sentinel errors returned by the alcov codec.
//
// Callers match them with errors.Is; the codec wraps each sentinel with
// fmt.Errorf("%w: ...") to attach context. Underlying I/O errors are wrapped
// directly and are not represented by a sentinel.
package errs

import "errors"

var (
	// ErrWrongMagic indicates the first eight bytes of the stream are not the
	// alcov magic number.
	ErrWrongMagic = errors.New("wrong magic number")

	// ErrWrongFlags indicates the header flag word carries bits outside the
	// recognized set.
	ErrWrongFlags = errors.New("unknown flag bits")

	// ErrEmptyModule indicates a module with zero segments, on construction,
	// write or read.
	ErrEmptyModule = errors.New("module has no segments")

	// ErrSizeOverflow indicates an integer does not fit its wire field width,
	// e.g. more than 255 segments in one module.
	ErrSizeOverflow = errors.New("integer exceeds field width")

	// ErrMalformedBinary indicates a structural inconsistency not covered by a
	// narrower error, e.g. section offsets out of order or a truncated record.
	ErrMalformedBinary = errors.New("malformed coverage container")

	// ErrPathRead indicates path bytes are not NUL-terminated within the paths
	// chunk.
	ErrPathRead = errors.New("path not NUL-terminated in paths chunk")

	// ErrPathEncoding indicates a path contains non-ASCII bytes.
	ErrPathEncoding = errors.New("path is not ASCII")

	// ErrDecompress indicates the LZMA2 decoder (or an encapsulation decoder)
	// failed on a compressed chunk.
	ErrDecompress = errors.New("decompression failed")

	// ErrModuleMismatch indicates snapshots with different module lists were
	// handed to Merge.
	ErrModuleMismatch = errors.New("module lists differ")
)
