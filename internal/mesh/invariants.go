package mesh

import "github.com/Hemifuture/terragen/internal/apperr"

// checkInvariants verifies the mesh well-formedness properties required
// by spec §8 property 2: neighbor mutuality, index validity, and minimal
// polygon vertex counts. It is run once after Build and never again,
// since the mesh is immutable thereafter.
func (m *Mesh) checkInvariants() error {
	n := m.N()

	for i, neighbors := range m.Neighbors {
		for _, j := range neighbors {
			if j < 0 || j >= n {
				return apperr.InvariantViolated("mesh", "neighbor index out of range")
			}
			if !contains(m.Neighbors[j], i) {
				return apperr.InvariantViolated("mesh", "neighbor relation is not mutual")
			}
		}
	}

	for i, t := range m.Triangles {
		for _, v := range t {
			if v < 0 || v >= n {
				return apperr.InvariantViolated("mesh", "triangle references out-of-range vertex")
			}
		}
		_ = i
	}

	for i, r := range m.CellVertexRanges {
		if r.Length == 0 {
			continue // boundary cells with no incident triangle are legal but degenerate
		}
		if r.Length < 3 {
			return apperr.InvariantViolated("mesh", "voronoi polygon has fewer than 3 vertices")
		}
		if r.Offset < 0 || r.Offset+r.Length > len(m.VoronoiVertices) {
			return apperr.InvariantViolated("mesh", "cell vertex range out of bounds")
		}
		_ = i
	}

	return nil
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
