package terrain

import (
	"math"

	"github.com/Hemifuture/terragen/internal/mesh"
)

func dist(a, b mesh.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// tracePath greedily walks from start to end: at each step, among the
// current cell's neighbors, pick the one that most reduces distance to
// end, with ~15% probability of instead taking a uniformly random
// neighbor (spec §4.2 "Range/Trough growth"). Stops when end is reached
// or after a generous step cap to guarantee termination on a
// disconnected or degenerate mesh.
func tracePath(points []mesh.Point, neighbors [][]int, start, end int, rng randSource) []int {
	path := []int{start}
	visited := map[int]bool{start: true}
	current := start

	maxSteps := len(points) + 8
	for step := 0; step < maxSteps && current != end; step++ {
		candidates := neighbors[current]
		if len(candidates) == 0 {
			break
		}

		var next int
		if rng.float64() < 0.15 {
			next = candidates[rng.intn(len(candidates))]
		} else {
			best := -1
			bestDist := math.MaxFloat64
			for _, c := range candidates {
				d := dist(points[c], points[end])
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			next = best
		}

		if visited[next] {
			// Avoid an infinite loop on a local pocket; fall back to any
			// unvisited neighbor, or stop if the path is fully boxed in.
			found := false
			for _, c := range candidates {
				if !visited[c] {
					next = c
					found = true
					break
				}
			}
			if !found {
				break
			}
		}

		path = append(path, next)
		visited[next] = true
		current = next
	}

	return path
}
