// Package snapshot implements the in-memory form of an alcov coverage
// snapshot and its lossless round-trip to the binary container format: a
// fixed header, module records against a shared paths chunk, fixed-size block
// records, and an optional edges chunk, with the blocks and edges chunks
// independently LZMA2-compressed when requested.
package snapshot

import (
	"fmt"
	"io"
	"math"

	"github.com/rmalmain/alcov/compress"
	"github.com/rmalmain/alcov/errs"
	"github.com/rmalmain/alcov/format"
	"github.com/rmalmain/alcov/internal/hash"
	"github.com/rmalmain/alcov/internal/pool"
	"github.com/rmalmain/alcov/section"
)

// Snapshot is one complete coverage record: the header fields, the loaded
// modules, the observed basic blocks, and optionally the edges between them.
//
// A Snapshot is owned by one caller at a time; neither Write nor Read needs
// external synchronization as long as the snapshot is not shared.
type Snapshot struct {
	VersionMajor uint64
	VersionMinor uint64

	// Compress requests LZMA2 compression of the blocks and edges chunks on
	// write. It is restored from the header flag on read.
	Compress bool

	// InputPath is the path of the binary whose coverage was collected.
	// Empty means absent.
	InputPath string

	Modules []section.Module
	Blocks  []section.Block

	// Edges is nil when the snapshot carries no edge graph.
	Edges *EdgeGraph
}

// New creates an empty snapshot at the current format version.
func New(inputPath string, compressed bool) *Snapshot {
	return &Snapshot{
		VersionMajor: format.VersionMajor,
		VersionMinor: format.VersionMinor,
		Compress:     compressed,
		InputPath:    inputPath,
	}
}

// Flags derives the header flag word from the populated fields.
func (s *Snapshot) Flags() format.Flags {
	var flags format.Flags

	if s.Edges != nil {
		flags |= format.FlagEdges
	}
	if s.Compress {
		flags |= format.FlagCompress
	}
	if s.InputPath != "" {
		flags |= format.FlagInputPath
	}

	return flags
}

// ShouldCompress reports whether the blocks and edges chunks are compressed.
func (s *Snapshot) ShouldCompress() bool {
	return s.Compress
}

// HasEdges reports whether the snapshot carries an edge graph.
func (s *Snapshot) HasEdges() bool {
	return s.Edges != nil
}

// HasInput reports whether the snapshot carries an input path.
func (s *Snapshot) HasInput() bool {
	return s.InputPath != ""
}

// pathTable accumulates the shared paths chunk on write. Identical paths are
// interned into one NUL-terminated string.
type pathTable struct {
	buf     []byte
	offsets map[string]int64
}

func newPathTable() *pathTable {
	return &pathTable{offsets: make(map[string]int64)}
}

func (t *pathTable) add(path string) (int64, error) {
	if offset, ok := t.offsets[path]; ok {
		return offset, nil
	}

	offset := int64(len(t.buf))
	buf, err := section.AppendPath(t.buf, path)
	if err != nil {
		return 0, err
	}

	t.buf = buf
	t.offsets[path] = offset

	return offset, nil
}

// payloadCodec returns the codec applied to the blocks and edges chunks.
func payloadCodec(flags format.Flags) compress.Codec {
	if flags.Has(format.FlagCompress) {
		return compress.NewLZMA2Compressor()
	}

	return compress.NewNoOpCompressor()
}

// Write serializes the snapshot to w in the container's wire form:
// header || modules || paths || blocks || edges.
//
// The entire post-header payload is staged in memory first because the header
// offsets depend on final section sizes. Partial bytes already accepted by w
// when an error occurs are the caller's to discard.
func (s *Snapshot) Write(w io.Writer) error {
	flags := s.Flags()

	if len(s.Modules) > math.MaxUint32 || len(s.Blocks) > math.MaxUint32 {
		return fmt.Errorf("%w: %d modules, %d blocks", errs.ErrSizeOverflow, len(s.Modules), len(s.Blocks))
	}
	if s.Edges != nil && len(s.Edges.Adjacency) > len(s.Blocks) {
		return fmt.Errorf("%w: edge graph has %d sources for %d blocks",
			errs.ErrMalformedBinary, len(s.Edges.Adjacency), len(s.Blocks))
	}

	post := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(post)

	paths := newPathTable()
	if s.InputPath != "" {
		if _, err := paths.add(s.InputPath); err != nil {
			return err
		}
	}

	for i := range s.Modules {
		pathOffset := section.NoPathOffset
		if s.Modules[i].Path != "" {
			var err error
			pathOffset, err = paths.add(s.Modules[i].Path)
			if err != nil {
				return err
			}
		}

		buf, err := section.AppendModule(post.B, s.Modules[i], pathOffset)
		if err != nil {
			return err
		}
		post.B = buf
	}

	modulesStart := uint64(section.HeaderSize)
	pathsStart := modulesStart + uint64(post.Len())
	post.MustWrite(paths.buf)
	blocksStart := modulesStart + uint64(post.Len())

	codec := payloadCodec(flags)

	blocks := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(blocks)

	var edgesStart, nbEdges uint64

	if s.Edges != nil {
		edges := pool.GetSectionBuffer()
		defer pool.PutSectionBuffer(edges)

		for i := range s.Blocks {
			adjacency := s.Edges.adjacencyAt(i)

			var meta section.BlockMeta
			if len(adjacency) > 0 {
				meta = section.BlockMeta{
					NbOutEdges:     uint64(len(adjacency)),
					OutEdgesOffset: uint64(edges.Len()),
				}
			}

			blocks.B = section.AppendBlock(blocks.B, s.Blocks[i], meta)
			edges.B = section.AppendAdjacency(edges.B, adjacency)
		}

		compressedBlocks, err := codec.Compress(blocks.B)
		if err != nil {
			return err
		}
		post.MustWrite(compressedBlocks)

		edgesStart = modulesStart + uint64(post.Len())

		compressedEdges, err := codec.Compress(edges.B)
		if err != nil {
			return err
		}
		post.MustWrite(compressedEdges)

		nbEdges = s.Edges.NbEdges()
	} else {
		for i := range s.Blocks {
			blocks.B = section.AppendBlock(blocks.B, s.Blocks[i], section.BlockMeta{})
		}

		compressedBlocks, err := codec.Compress(blocks.B)
		if err != nil {
			return err
		}
		post.MustWrite(compressedBlocks)
	}

	header := section.Header{
		VersionMajor: s.VersionMajor,
		VersionMinor: s.VersionMinor,
		NbModules:    uint32(len(s.Modules)),
		NbBlocks:     uint32(len(s.Blocks)),
		NbEdges:      nbEdges,
		ModulesStart: modulesStart,
		PathsStart:   pathsStart,
		BlocksStart:  blocksStart,
		EdgesStart:   edgesStart,
		Flags:        flags,
	}

	if _, err := w.Write(header.Bytes()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(post.B); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}

	return nil
}

// Bytes serializes the snapshot and returns its wire form.
func (s *Snapshot) Bytes() ([]byte, error) {
	buf := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(buf)

	if err := s.Write(byteBufferWriter{buf}); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)

	return out, nil
}

// byteBufferWriter adapts a pooled ByteBuffer to io.Writer.
type byteBufferWriter struct {
	bb *pool.ByteBuffer
}

func (w byteBufferWriter) Write(p []byte) (int, error) {
	w.bb.MustWrite(p)
	return len(p), nil
}

// Fingerprint returns the xxHash64 of the snapshot's canonical encoding (the
// wire form with compression disabled). It is stable across the Compress knob
// and identifies snapshot content for corpus deduplication.
func (s *Snapshot) Fingerprint() (uint64, error) {
	canonical := *s
	canonical.Compress = false

	data, err := canonical.Bytes()
	if err != nil {
		return 0, err
	}

	return hash.Sum64(data), nil
}

// Read parses a snapshot from r, mirroring Write section by section. The whole
// stream is materialized; there is no random access or streaming iteration.
func Read(r io.Reader) (*Snapshot, error) {
	header, err := section.ReadHeader(r)
	if err != nil {
		return nil, err
	}

	if header.ModulesStart != section.HeaderSize ||
		header.PathsStart < header.ModulesStart ||
		header.BlocksStart < header.PathsStart {
		return nil, fmt.Errorf("%w: section offsets out of order", errs.ErrMalformedBinary)
	}
	if header.Flags.Has(format.FlagEdges) && header.EdgesStart < header.BlocksStart {
		return nil, fmt.Errorf("%w: edges chunk before blocks chunk", errs.ErrMalformedBinary)
	}

	modulesBuf, err := readSection(r, header.PathsStart-header.ModulesStart, "modules")
	if err != nil {
		return nil, err
	}
	pathsBuf, err := readSection(r, header.BlocksStart-header.PathsStart, "paths")
	if err != nil {
		return nil, err
	}

	inputPath := ""
	if header.Flags.Has(format.FlagInputPath) {
		inputPath, err = section.ReadPath(pathsBuf, 0)
		if err != nil {
			return nil, err
		}
	}

	var rawBlocks []byte
	if header.Flags.Has(format.FlagEdges) {
		rawBlocks, err = readSection(r, header.EdgesStart-header.BlocksStart, "blocks")
	} else {
		rawBlocks, err = io.ReadAll(r)
		if err != nil {
			err = fmt.Errorf("read blocks section: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	codec := payloadCodec(header.Flags)

	blocksBuf, err := codec.Decompress(rawBlocks)
	if err != nil {
		return nil, err
	}
	if uint64(len(blocksBuf)) != uint64(header.NbBlocks)*section.BlockSize {
		return nil, fmt.Errorf("%w: blocks chunk is %d bytes for %d blocks",
			errs.ErrMalformedBinary, len(blocksBuf), header.NbBlocks)
	}

	modules, err := section.ParseModules(modulesBuf, pathsBuf, header.NbModules)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{
		VersionMajor: header.VersionMajor,
		VersionMinor: header.VersionMinor,
		Compress:     header.Flags.Has(format.FlagCompress),
		InputPath:    inputPath,
		Modules:      modules,
	}
	if header.NbBlocks > 0 {
		s.Blocks = make([]section.Block, 0, header.NbBlocks)
	}

	if header.Flags.Has(format.FlagEdges) {
		rawEdges, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read edges section: %w", err)
		}
		edgesBuf, err := codec.Decompress(rawEdges)
		if err != nil {
			return nil, err
		}

		graph := NewEdgeGraph()
		for i := uint32(0); i < header.NbBlocks; i++ {
			block, meta, err := section.ParseBlock(blocksBuf[uint64(i)*section.BlockSize:])
			if err != nil {
				return nil, err
			}

			adjacency, err := section.ParseAdjacency(edgesBuf, meta.OutEdgesOffset, meta.NbOutEdges)
			if err != nil {
				return nil, err
			}

			s.Blocks = append(s.Blocks, block)
			graph.Adjacency = append(graph.Adjacency, adjacency)
		}
		s.Edges = graph
	} else {
		for i := uint32(0); i < header.NbBlocks; i++ {
			block, _, err := section.ParseBlock(blocksBuf[uint64(i)*section.BlockSize:])
			if err != nil {
				return nil, err
			}
			s.Blocks = append(s.Blocks, block)
		}
	}

	return s, nil
}

// readSection reads exactly size bytes of one section.
func readSection(r io.Reader, size uint64, name string) ([]byte, error) {
	if size > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %s section of %d bytes", errs.ErrMalformedBinary, name, size)
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read %s section: %w", name, err)
	}

	return buf, nil
}
