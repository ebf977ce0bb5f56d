package hydrology

import (
	"math"
	"sort"

	"github.com/Hemifuture/terragen/internal/mapsystem"
	"github.com/Hemifuture/terragen/internal/mesh"
)

// traceRivers finds every river mouth — a land cell whose flux meets
// threshold and whose flow direction is water — and traces each
// upstream, at every step following the inbound neighbor with maximum
// flux, stopping once flux falls below threshold or the trace reaches a
// cell already claimed by another river, in which case the relation is
// recorded as a tributary join rather than re-traced (spec §4.6 "River
// extraction").
func traceRivers(m *mesh.Mesh, dir []int, flux []uint16, isWater []bool, threshold uint16) []mapsystem.River {
	n := m.N()
	inbound := make([][]int, n)
	for i, d := range dir {
		if d != noDirection {
			inbound[d] = append(inbound[d], i)
		}
	}

	var mouths []int
	for i := 0; i < n; i++ {
		if isWater[i] || dir[i] == noDirection {
			continue
		}
		if flux[i] >= threshold && isWater[dir[i]] {
			mouths = append(mouths, i)
		}
	}
	sort.Ints(mouths)

	claimed := make([]uint16, n) // 0 = unclaimed; river ids stored as id+1

	var rivers []mapsystem.River
	for _, mouth := range mouths {
		path := []int{mouth}
		var tributaryOf uint16
		cell := mouth

		for {
			best := -1
			var bestFlux uint16
			for _, up := range inbound[cell] {
				if best == -1 || flux[up] > bestFlux {
					best = up
					bestFlux = flux[up]
				}
			}
			if best == -1 || flux[best] < threshold {
				break
			}
			if claimed[best] != 0 {
				tributaryOf = claimed[best]
				break
			}
			cell = best
			path = append(path, cell)
		}

		id := uint16(len(rivers))
		for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
			path[l], path[r] = path[r], path[l]
		}
		for _, c := range path {
			claimed[c] = id + 1
		}

		widthKM := 0.5 * math.Log(math.Max(1, float64(flux[mouth])))
		if widthKM < 0.1 {
			widthKM = 0.1
		}

		river := mapsystem.River{
			ID:      id,
			Cells:   path,
			Source:  path[0],
			Mouth:   mouth,
			WidthKM: widthKM,
		}
		if tributaryOf != 0 {
			river.Tributary = true
			river.JoinsID = tributaryOf - 1
		}
		rivers = append(rivers, river)
	}

	return rivers
}
