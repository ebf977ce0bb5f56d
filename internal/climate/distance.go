// Package climate computes per-cell temperature and precipitation from
// the elevation, feature, and hydrology fields (spec §4.7).
package climate

import "github.com/Hemifuture/terragen/internal/mesh"

// distanceToWater returns each cell's BFS hop-count distance to the
// nearest water cell, used as distance_to_sea_cells in the precipitation
// formula (spec §4.7). Grounded on the same multi-source BFS shape as
// internal/tectonics.AssignPlates, generalized from growing a fixed
// number of plate regions to growing a single "distance from any water
// cell" field.
func distanceToWater(m *mesh.Mesh, isWater []bool) []int {
	n := m.N()
	dist := make([]int, n)
	visited := make([]bool, n)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if isWater[i] {
			visited[i] = true
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		for _, nb := range m.Neighbors[cell] {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			dist[nb] = dist[cell] + 1
			queue = append(queue, nb)
		}
	}
	return dist
}
