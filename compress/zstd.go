package compress

// ZstdCompressor handles Zstandard frames, the most common encapsulation for
// snapshot corpora on disk. It is not used inside the container format itself.
//
// Two implementations exist behind build tags: a cgo binding (gozstd) when cgo
// is available, and a pure-Go fallback otherwise. Both produce standard zstd
// frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
