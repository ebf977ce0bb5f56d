package features

import "github.com/Hemifuture/terragen/internal/mesh"

// continentThreshold is C_threshold from spec §4.5: a land region larger
// than this many cells is a continent rather than a plain landmass.
const continentThreshold = 100

// region is one flood-filled connected component before it is classified
// into a Landmass, Lake, or Ocean.
type region struct {
	cells    []int
	isWater  bool
	boundary bool // touches the map edge
}

// label runs BFS flood fill over same-polarity neighbors, assigning every
// cell a region index (spec §4.5 "flood-fill labeling"), grounded on the
// multi-source BFS shape used for plate assignment
// (internal/tectonics.AssignPlates) generalized here to single-source
// per-region growth since regions aren't known in advance.
func label(m *mesh.Mesh, isWater []bool) ([]int, []region) {
	n := len(isWater)
	regionOf := make([]int, n)
	for i := range regionOf {
		regionOf[i] = -1
	}

	var regions []region
	for start := 0; start < n; start++ {
		if regionOf[start] != -1 {
			continue
		}
		id := len(regions)
		r := region{isWater: isWater[start]}

		queue := []int{start}
		regionOf[start] = id
		for len(queue) > 0 {
			cell := queue[0]
			queue = queue[1:]
			r.cells = append(r.cells, cell)
			if m.OnBoundary(cell) {
				r.boundary = true
			}
			for _, nb := range m.Neighbors[cell] {
				if regionOf[nb] != -1 || isWater[nb] != isWater[start] {
					continue
				}
				regionOf[nb] = id
				queue = append(queue, nb)
			}
		}
		regions = append(regions, r)
	}

	return regionOf, regions
}
