package snapshot

// BlockEdges is the adjacency of one source block: destination block index to
// taken count. Keys are unique; iteration order is not part of the format.
type BlockEdges map[uint64]uint64

// EdgeGraph records the control-flow transitions observed between blocks.
// Adjacency is indexed by the source block's position in the snapshot's block
// list; destinations are indices into the same list. Self-edges and cycles are
// legal.
type EdgeGraph struct {
	Adjacency []BlockEdges
}

// NewEdgeGraph creates an empty edge graph.
func NewEdgeGraph() *EdgeGraph {
	return &EdgeGraph{}
}

// Add records one observed transition from src to dst, growing the adjacency
// vector so that src is addressable and incrementing the edge's taken count
// (inserting it with count 1 if absent).
//
// No bounds check is performed against the snapshot's block list; a wild src
// grows the vector accordingly.
func (g *EdgeGraph) Add(src, dst uint64) {
	g.AddTaken(src, dst, 1)
}

// AddTaken records count observations of the transition from src to dst.
// Merge uses it to fold whole adjacencies together.
func (g *EdgeGraph) AddTaken(src, dst, count uint64) {
	for uint64(len(g.Adjacency)) <= src {
		g.Adjacency = append(g.Adjacency, BlockEdges{})
	}

	g.Adjacency[src][dst] += count
}

// NbEdges returns the total number of distinct edges across all adjacencies.
func (g *EdgeGraph) NbEdges() uint64 {
	var total uint64
	for _, adjacency := range g.Adjacency {
		total += uint64(len(adjacency))
	}

	return total
}

// adjacencyAt returns the adjacency of block i, or nil when the graph has no
// row for it. The writer treats a missing row as an empty adjacency.
func (g *EdgeGraph) adjacencyAt(i int) BlockEdges {
	if i < len(g.Adjacency) {
		return g.Adjacency[i]
	}

	return nil
}
