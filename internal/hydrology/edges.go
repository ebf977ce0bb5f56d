package hydrology

import "github.com/Hemifuture/terragen/internal/mesh"

// EdgeIndex enumerates each unique Voronoi-adjacent cell pair once,
// giving it a dense edge id. internal/hydrology owns this indexing since
// rivers are the only edge-indexed stage (spec §3 edge fields,
// internal/mapsystem.New).
type EdgeIndex struct {
	idOf  map[[2]int]int
	pairs [][2]int
}

func buildEdgeIndex(m *mesh.Mesh) *EdgeIndex {
	idx := &EdgeIndex{idOf: make(map[[2]int]int)}
	for i, nbs := range m.Neighbors {
		for _, j := range nbs {
			if j <= i {
				continue
			}
			key := [2]int{i, j}
			idx.idOf[key] = len(idx.pairs)
			idx.pairs = append(idx.pairs, key)
		}
	}
	return idx
}

// Len returns the number of distinct edges.
func (idx *EdgeIndex) Len() int { return len(idx.pairs) }

// ID returns the dense edge id for the unordered cell pair (a,b), if the
// cells are adjacent.
func (idx *EdgeIndex) ID(a, b int) (int, bool) {
	if a > b {
		a, b = b, a
	}
	id, ok := idx.idOf[[2]int{a, b}]
	return id, ok
}
