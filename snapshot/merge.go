package snapshot

import (
	"fmt"

	"github.com/rmalmain/alcov/errs"
	"github.com/rmalmain/alcov/section"
)

// blockKey identifies a block by location, independent of its position in any
// particular snapshot's block list.
type blockKey struct {
	moduleID      uint16
	segmentID     uint16
	segmentOffset uint64
	size          uint32
}

func keyOf(b section.Block) blockKey {
	return blockKey{
		moduleID:      b.ModuleID,
		segmentID:     b.SegmentID,
		segmentOffset: b.SegmentOffset,
		size:          b.Size,
	}
}

// Merge combines snapshots collected from the same target into one.
//
// All snapshots must carry identical module lists. The block lists are unioned
// by (module, segment, offset, size) with taken counts summed; edges are
// remapped through the merged block indices with their taken counts summed.
// The result inherits version, compression and input path from the first
// snapshot, and carries an edge graph iff any input does.
func Merge(snapshots ...*Snapshot) (*Snapshot, error) {
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("%w: nothing to merge", errs.ErrModuleMismatch)
	}

	base := snapshots[0]
	merged := &Snapshot{
		VersionMajor: base.VersionMajor,
		VersionMinor: base.VersionMinor,
		Compress:     base.Compress,
		InputPath:    base.InputPath,
		Modules:      append([]section.Module(nil), base.Modules...),
	}

	index := make(map[blockKey]uint64)

	for _, snap := range snapshots {
		if snap.HasEdges() {
			merged.Edges = NewEdgeGraph()
			break
		}
	}

	for n, snap := range snapshots {
		if len(snap.Modules) != len(merged.Modules) {
			return nil, fmt.Errorf("%w: snapshot %d has %d modules, want %d",
				errs.ErrModuleMismatch, n, len(snap.Modules), len(merged.Modules))
		}
		for i := range snap.Modules {
			if !snap.Modules[i].Equal(merged.Modules[i]) {
				return nil, fmt.Errorf("%w: module %d of snapshot %d", errs.ErrModuleMismatch, i, n)
			}
		}

		// Map this snapshot's block indices into the merged list.
		mapping := make([]uint64, len(snap.Blocks))
		for i, block := range snap.Blocks {
			key := keyOf(block)
			idx, ok := index[key]
			if !ok {
				idx = uint64(len(merged.Blocks))
				index[key] = idx
				block.NbTaken = 0
				merged.Blocks = append(merged.Blocks, block)
			}
			merged.Blocks[idx].NbTaken += snap.Blocks[i].NbTaken
			mapping[i] = idx
		}

		if snap.Edges == nil {
			continue
		}
		if len(snap.Edges.Adjacency) > len(snap.Blocks) {
			return nil, fmt.Errorf("%w: snapshot %d edge graph has %d sources for %d blocks",
				errs.ErrMalformedBinary, n, len(snap.Edges.Adjacency), len(snap.Blocks))
		}

		for src, adjacency := range snap.Edges.Adjacency {
			for dst, taken := range adjacency {
				if dst >= uint64(len(snap.Blocks)) {
					return nil, fmt.Errorf("%w: snapshot %d edge destination %d outside %d blocks",
						errs.ErrMalformedBinary, n, dst, len(snap.Blocks))
				}
				merged.Edges.AddTaken(mapping[src], mapping[dst], taken)
			}
		}
	}

	return merged, nil
}
