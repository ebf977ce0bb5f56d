package tectonics

import (
	"math/rand"

	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/mesh"
)

// Simulate runs cfg.Iterations passes of boundary effects followed by
// isostatic relaxation over the height field (spec §4.3 step 5). height
// must be sized to m.N() and is mutated in place.
func Simulate(m *mesh.Mesh, plateOf []int, plates []Plate, cfg config.TectonicConfig, height []float64, r *rand.Rand) {
	boundaries, cellBoundaries := DetectBoundaries(m.Neighbors, plateOf, plates)

	for iter := 0; iter < cfg.Iterations; iter++ {
		applyBoundaryEffects(m, plateOf, plates, boundaries, cellBoundaries, cfg, height, r)
		applyIsostasy(m, height, cfg.IsostaticRate)
	}
}

func applyBoundaryEffects(m *mesh.Mesh, plateOf []int, plates []Plate, boundaries map[boundaryKey]Boundary, cellBoundaries [][]boundaryKey, cfg config.TectonicConfig, height []float64, r *rand.Rand) {
	for cell, keys := range cellBoundaries {
		for _, key := range keys {
			b := boundaries[key]
			intensity := intensityOf(b)

			switch b.Kind {
			case Convergent, WeakConvergent:
				applyConvergentRing(m, plateOf, plates, key, intensity, cfg, height, cell)
			case Divergent:
				applyDivergentRing(m, intensity, cfg, height, cell)
			case Transform:
				height[cell] += (r.Float64()*2 - 1) * intensity * cfg.NoiseStrength
			}
		}
	}
}

func intensityOf(b Boundary) float64 {
	if b.Kind == Transform {
		return b.Shear
	}
	return absf(b.Approach)
}

// subductingPlate returns which plate subducts at a convergent boundary
// (the denser one); tie is true when densities match, in which case
// neither subducts (spec §4.3 step 4, "none if densities tie").
func subductingPlate(a, b Plate) (subducting, overriding int, tie bool) {
	da, db := a.Type.Density(), b.Type.Density()
	if da == db {
		return -1, -1, true
	}
	if da > db {
		return a.ID, b.ID, false
	}
	return b.ID, a.ID, false
}

// applyConvergentRing raises the overriding side and lowers the
// subducting side with linear falloff out to cfg.BoundaryWidth cells
// from the boundary cell (spec §4.3 step 5, convergent). When densities
// tie (both plates continental, or both oceanic), both sides are raised
// at the higher "no subduction" rate instead.
func applyConvergentRing(m *mesh.Mesh, plateOf []int, plates []Plate, key boundaryKey, intensity float64, cfg config.TectonicConfig, height []float64, origin int) {
	subducting, overriding, tie := subductingPlate(plates[key.a], plates[key.b])
	rings := bfsRing(m.Neighbors, origin, cfg.BoundaryWidth)

	for cell, d := range rings {
		falloff := 1 - float64(d)/float64(cfg.BoundaryWidth)
		if falloff <= 0 {
			continue
		}
		if tie {
			height[cell] += cfg.CollisionUpliftRate * intensity * falloff * 0.15
			continue
		}
		switch plateOf[cell] {
		case overriding:
			height[cell] += cfg.CollisionUpliftRate * intensity * falloff * 0.1
		case subducting:
			height[cell] -= cfg.SubductionRate * intensity * falloff * 0.1
		}
	}
}

// applyDivergentRing lowers the rift valley in rings 0-2 of the boundary
// cell and raises the ridge shoulders beyond it with a linear falloff that
// reaches zero at ring 5, so rings 3 and 4 are raised (spec §4.3 step 5,
// divergent: the ring bounds are fixed constants, not configuration).
func applyDivergentRing(m *mesh.Mesh, intensity float64, cfg config.TectonicConfig, height []float64, origin int) {
	const shoulderWidth = 5
	rings := bfsRing(m.Neighbors, origin, shoulderWidth)

	for cell, d := range rings {
		switch {
		case d <= 2:
			height[cell] -= cfg.RiftDepthRate * intensity * 0.1
		case d <= shoulderWidth:
			falloff := 1 - float64(d)/shoulderWidth
			if falloff > 0 {
				height[cell] += cfg.RiftDepthRate * intensity * falloff * 0.02
			}
		}
	}
}

// bfsRing returns, for every cell reachable from start within maxDist
// hops, its hop distance (0 for start itself).
func bfsRing(neighbors [][]int, start, maxDist int) map[int]int {
	dist := map[int]int{start: 0}
	queue := []int{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[cur]
		if d >= maxDist {
			continue
		}
		for _, nb := range neighbors[cur] {
			if _, ok := dist[nb]; ok {
				continue
			}
			dist[nb] = d + 1
			queue = append(queue, nb)
		}
	}
	return dist
}

// applyIsostasy relaxes each cell toward its neighbors' mean height at
// rate, one simultaneous pass (spec §4.3 step 5, isostatic relaxation).
func applyIsostasy(m *mesh.Mesh, height []float64, rate float64) {
	next := make([]float64, len(height))
	copy(next, height)

	for i := range height {
		nbs := m.Neighbors[i]
		if len(nbs) == 0 {
			continue
		}
		var sum float64
		for _, nb := range nbs {
			sum += height[nb]
		}
		mean := sum / float64(len(nbs))
		next[i] = height[i] + (mean-height[i])*rate
	}

	copy(height, next)
}

// Normalize range-normalizes height to [0, 255] (spec §4.3 finalization).
func Normalize(height []float64) {
	if len(height) == 0 {
		return
	}
	min, max := height[0], height[0]
	for _, h := range height {
		if h < min {
			min = h
		}
		if h > max {
			max = h
		}
	}
	span := max - min
	if span == 0 {
		for i := range height {
			height[i] = 0
		}
		return
	}
	for i := range height {
		height[i] = (height[i] - min) / span * 255
	}
}
