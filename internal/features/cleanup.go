package features

import (
	"sort"

	"github.com/Hemifuture/terragen/internal/mesh"
)

// submergeIslands sets is_water = true for every land region, including
// one that touches the map edge, that is smaller than minIslandSize.
// Submerging is a polarity flip only (spec §4.5 "Islands smaller than
// min_island_size are submerged"): height is left unchanged.
func submergeIslands(isWater []bool, regions []region, minIslandSize int) bool {
	changed := false
	for _, r := range regions {
		if r.isWater {
			continue
		}
		if len(r.cells) >= minIslandSize {
			continue
		}
		for _, c := range r.cells {
			isWater[c] = true
		}
		changed = true
	}
	return changed
}

// fillLakes sets is_water = false for every inland water region smaller
// than minLakeSize, raising each cell's height to the minimum height of
// the region's surrounding ring of land neighbors (spec §4.5 "Lakes
// smaller than min_lake_size are filled").
func fillLakes(m *mesh.Mesh, isWater []bool, height []float64, regions []region, minLakeSize int) bool {
	changed := false
	for _, r := range regions {
		if !r.isWater || r.boundary {
			continue
		}
		if len(r.cells) >= minLakeSize {
			continue
		}

		ringMin, found := ringMinHeight(m, isWater, height, r.cells)
		for _, c := range r.cells {
			isWater[c] = false
			if found {
				height[c] = ringMin
			}
		}
		changed = true
	}
	return changed
}

// ringMinHeight returns the minimum height among land cells adjacent to
// but not part of the region.
func ringMinHeight(m *mesh.Mesh, isWater []bool, height []float64, cells []int) (float64, bool) {
	inRegion := make(map[int]bool, len(cells))
	for _, c := range cells {
		inRegion[c] = true
	}

	min := 0.0
	found := false
	for _, c := range cells {
		for _, nb := range m.Neighbors[c] {
			if inRegion[nb] || isWater[nb] {
				continue
			}
			if !found || height[nb] < min {
				min = height[nb]
				found = true
			}
		}
	}
	return min, found
}

// smoothCoastline runs k passes over every cell: if strictly more than
// half its neighbors have the opposite polarity, the cell flips polarity
// and its height is set to the local median height of cells with the
// target polarity among its neighbors (spec §4.5 "Coastline smoothing").
func smoothCoastline(m *mesh.Mesh, isWater []bool, height []float64, k int) {
	for pass := 0; pass < k; pass++ {
		flips := make([]int, 0)
		for i, nbs := range m.Neighbors {
			if len(nbs) == 0 {
				continue
			}
			opposite := 0
			for _, nb := range nbs {
				if isWater[nb] != isWater[i] {
					opposite++
				}
			}
			if opposite*2 > len(nbs) {
				flips = append(flips, i)
			}
		}
		if len(flips) == 0 {
			return
		}
		for _, i := range flips {
			target := !isWater[i]
			if median, ok := neighborMedianHeight(m, isWater, height, i, target); ok {
				height[i] = median
			}
			isWater[i] = target
		}
	}
}

func neighborMedianHeight(m *mesh.Mesh, isWater []bool, height []float64, cell int, targetPolarity bool) (float64, bool) {
	var vals []float64
	for _, nb := range m.Neighbors[cell] {
		if isWater[nb] == targetPolarity {
			vals = append(vals, height[nb])
		}
	}
	if len(vals) == 0 {
		return 0, false
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid], true
	}
	return (vals[mid-1] + vals[mid]) / 2, true
}
