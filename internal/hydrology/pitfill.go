package hydrology

import (
	"container/heap"

	"github.com/Hemifuture/terragen/internal/mesh"
)

// lakeEpsilon is the minimum raise that counts a cell as flooded rather
// than numerically unchanged by the priority flood.
const lakeEpsilon = 1e-6

type cellHeight struct {
	cell   int
	height float64
}

// cellHeap is a min-heap over (cell, height), grounded on
// internal/combat/action/queue.go's ActionHeap shape (container/heap with
// a slice-backed Push/Pop).
type cellHeap []cellHeight

func (h cellHeap) Len() int            { return len(h) }
func (h cellHeap) Less(i, j int) bool {
	if h[i].height != h[j].height {
		return h[i].height < h[j].height
	}
	return h[i].cell < h[j].cell
}
func (h cellHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cellHeap) Push(x interface{}) { *h = append(*h, x.(cellHeight)) }
func (h *cellHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// priorityFlood fills depressions so every land cell has a monotone
// downhill path to water or the map boundary (spec §4.6 "Pit filling /
// lake surfaces"). It returns a filled-height copy of height; cells
// raised by at least lakeEpsilon are flood candidates, grouped into
// lakes by lakeRegions. The real elevation field is left untouched here;
// only the caller decides whether a raised cell becomes water.
func priorityFlood(m *mesh.Mesh, height []float64, isWater []bool) []float64 {
	n := len(height)
	filled := make([]float64, n)
	copy(filled, height)

	visited := make([]bool, n)
	pq := make(cellHeap, 0, n)
	for i := 0; i < n; i++ {
		if isWater[i] || m.OnBoundary(i) {
			visited[i] = true
			pq = append(pq, cellHeight{cell: i, height: filled[i]})
		}
	}
	heap.Init(&pq)

	for pq.Len() > 0 {
		u := heap.Pop(&pq).(cellHeight)
		for _, v := range m.Neighbors[u.cell] {
			if visited[v] {
				continue
			}
			visited[v] = true
			if filled[v] < u.height {
				filled[v] = u.height
			}
			heap.Push(&pq, cellHeight{cell: v, height: filled[v]})
		}
	}

	return filled
}

// lakeRegions groups cells raised by the flood into connected lakes
// sharing the same filled height, and records each lake's outlet: the
// lowest non-raised neighbor the flood wave entered from (spec §4.6
// "surface_level is the filled height and outlet_cell is the first cell
// along the drainage boundary").
func lakeRegions(m *mesh.Mesh, height, filled []float64, isWater []bool) (groups [][]int, surfaceLevel []float64, outlet []int) {
	n := len(height)
	raised := make([]bool, n)
	for i := 0; i < n; i++ {
		raised[i] = !isWater[i] && filled[i] > height[i]+lakeEpsilon
	}

	groupOf := make([]int, n)
	for i := range groupOf {
		groupOf[i] = -1
	}

	for start := 0; start < n; start++ {
		if !raised[start] || groupOf[start] != -1 {
			continue
		}
		id := len(groups)
		level := filled[start]
		outletCell := -1
		outletHeight := 0.0

		cells := []int{start}
		groupOf[start] = id
		queue := []int{start}
		for len(queue) > 0 {
			cell := queue[0]
			queue = queue[1:]
			for _, nb := range m.Neighbors[cell] {
				if raised[nb] && groupOf[nb] == -1 && filled[nb] == level {
					groupOf[nb] = id
					queue = append(queue, nb)
					cells = append(cells, nb)
					continue
				}
				if !raised[nb] && (outletCell == -1 || filled[nb] < outletHeight) {
					outletCell = nb
					outletHeight = filled[nb]
				}
			}
		}

		groups = append(groups, cells)
		surfaceLevel = append(surfaceLevel, level)
		outlet = append(outlet, outletCell)
	}

	return groups, surfaceLevel, outlet
}
