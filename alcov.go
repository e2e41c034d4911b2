// Package alcov reads and writes alcov files, a binary container for
// program-execution coverage: the executable basic blocks observed in a set of
// loaded modules, their taken counts, and optionally the control-flow edges
// between them.
//
// # File layout
//
// An alcov file is header || modules || paths || blocks || edges, all
// little-endian. The header carries absolute offsets to every section; the
// blocks and edges chunks are independently LZMA2-compressed when the snapshot
// requests compression. See the snapshot and section packages for the codec
// itself.
//
// # Basic usage
//
// Reading a snapshot file:
//
//	snap, err := alcov.ReadFile("coverage.alcov")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d blocks in %d modules\n", len(snap.Blocks), len(snap.Modules))
//
// Building and writing one:
//
//	snap := alcov.New("/usr/bin/target", true)
//	mod, _ := section.NewModule(0x400000, "/usr/bin/target", segments)
//	snap.Modules = append(snap.Modules, mod)
//	snap.Blocks = append(snap.Blocks, section.NewBlock(0, 0, 0x1f4, 32, 12))
//
//	edges := alcov.NewEdgeGraph()
//	edges.Add(0, 1)
//	snap.Edges = edges
//
//	err := alcov.WriteFile(snap, "coverage.alcov")
//
// ReadFile and ReadBytes transparently decapsulate whole-file compression
// (zstd, LZ4, gzip, xz) before decoding, so compressed corpora can be read
// directly.
package alcov

import (
	"bytes"
	"io"
	"os"

	"github.com/rmalmain/alcov/compress"
	"github.com/rmalmain/alcov/snapshot"
)

// Snapshot and EdgeGraph are re-exported so that most callers only need this
// package and section.
type (
	Snapshot  = snapshot.Snapshot
	EdgeGraph = snapshot.EdgeGraph
)

// New creates an empty snapshot at the current format version. inputPath may
// be empty; compressed selects LZMA2 compression of the blocks and edges
// chunks.
func New(inputPath string, compressed bool) *snapshot.Snapshot {
	return snapshot.New(inputPath, compressed)
}

// NewEdgeGraph creates an empty edge graph to attach to a snapshot.
func NewEdgeGraph() *snapshot.EdgeGraph {
	return snapshot.NewEdgeGraph()
}

// Read parses a snapshot from r. The stream must be a bare alcov file; use
// ReadBytes for possibly-encapsulated data.
func Read(r io.Reader) (*snapshot.Snapshot, error) {
	return snapshot.Read(r)
}

// ReadBytes parses a snapshot from data, first stripping any whole-file
// compression layer recognized by its magic prefix.
func ReadBytes(data []byte) (*snapshot.Snapshot, error) {
	data, err := compress.Decapsulate(data)
	if err != nil {
		return nil, err
	}

	return snapshot.Read(bytes.NewReader(data))
}

// ReadFile reads a snapshot from the file at path, decapsulating whole-file
// compression if present.
func ReadFile(path string) (*snapshot.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ReadBytes(data)
}

// Write serializes snap to w.
func Write(snap *snapshot.Snapshot, w io.Writer) error {
	return snap.Write(w)
}

// WriteFile writes snap to the file at path, creating or truncating it.
func WriteFile(snap *snapshot.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := snap.Write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
