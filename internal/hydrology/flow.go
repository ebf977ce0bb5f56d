// Package hydrology derives flow direction, depression-filled lake
// surfaces, flow accumulation, and traced rivers from the elevation and
// feature fields (spec §4.6).
package hydrology

import "github.com/Hemifuture/terragen/internal/mesh"

// noDirection marks a water cell or an unresolved pit candidate.
const noDirection = -1

// computeFlowDirection assigns each land cell the neighbor it drains
// into: the globally lowest neighbor (ties broken by lowest id, which
// falls out naturally since m.Neighbors[i] is sorted ascending and only
// a strictly lower height replaces the running minimum), accepted only
// if that neighbor is lower than i or is itself water (spec §4.6 "Flow
// direction"). A land cell with no accepted neighbor is a pit candidate
// and gets noDirection.
func computeFlowDirection(m *mesh.Mesh, height []float64, isWater []bool) []int {
	dir := make([]int, m.N())
	for i := range dir {
		dir[i] = noDirection
		if isWater[i] {
			continue
		}

		best := -1
		bestHeight := 0.0
		for _, nb := range m.Neighbors[i] {
			if best == -1 || height[nb] < bestHeight {
				best = nb
				bestHeight = height[nb]
			}
		}
		if best == -1 {
			continue
		}
		if bestHeight < height[i] || isWater[best] {
			dir[i] = best
		}
	}
	return dir
}
