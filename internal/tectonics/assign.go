package tectonics

import (
	"math"
	"math/rand"

	"github.com/Hemifuture/terragen/internal/apperr"
	"github.com/Hemifuture/terragen/internal/mesh"
)

// AssignPlates chooses count seed cells uniformly and flood-fills every
// remaining cell to the nearest seed via multi-source BFS, so every cell
// is owned by exactly one plate (spec §4.3 step 1). Plates are classified
// continental/oceanic by continentalRatio and given random kinematics
// (step 2).
func AssignPlates(m *mesh.Mesh, count int, continentalRatio float64, r *rand.Rand) ([]int, []Plate, error) {
	n := m.N()
	if count < 2 {
		return nil, nil, apperr.InvalidConfig("plate_count", "must be at least 2")
	}
	if count > n {
		return nil, nil, apperr.InvalidConfig("plate_count", "cannot exceed cell count")
	}

	seeds := distinctSeeds(n, count, r)
	plates := make([]Plate, count)
	continentalCount := int(float64(count) * continentalRatio)

	for i, seed := range seeds {
		t := Oceanic
		if i < continentalCount {
			t = Continental
		}
		plates[i] = Plate{
			ID:               i,
			Type:             t,
			SeedCell:         seed,
			Centroid:         m.Points[seed],
			DirectionRadians: r.Float64() * 2 * math.Pi,
			Speed:            0.5 + r.Float64()*1.5,
		}
	}

	plateOf := make([]int, n)
	for i := range plateOf {
		plateOf[i] = -1
	}

	queue := make([]int, 0, count)
	for i, seed := range seeds {
		plateOf[seed] = i
		queue = append(queue, seed)
	}

	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		for _, nb := range m.Neighbors[cell] {
			if plateOf[nb] != -1 {
				continue
			}
			plateOf[nb] = plateOf[cell]
			queue = append(queue, nb)
		}
	}

	recomputeCentroids(m, plateOf, plates)
	return plateOf, plates, nil
}

// distinctSeeds draws count distinct cell indices uniformly without
// replacement.
func distinctSeeds(n, count int, r *rand.Rand) []int {
	chosen := make(map[int]bool, count)
	seeds := make([]int, 0, count)
	for len(seeds) < count {
		c := r.Intn(n)
		if chosen[c] {
			continue
		}
		chosen[c] = true
		seeds = append(seeds, c)
	}
	return seeds
}

// recomputeCentroids replaces each plate's seed-cell centroid with the
// true mean position of its assigned region, used by boundary
// classification (spec §4.3 step 4).
func recomputeCentroids(m *mesh.Mesh, plateOf []int, plates []Plate) {
	sumX := make([]float64, len(plates))
	sumY := make([]float64, len(plates))
	count := make([]int, len(plates))

	for cell, p := range plateOf {
		sumX[p] += m.Points[cell].X
		sumY[p] += m.Points[cell].Y
		count[p]++
	}

	for i := range plates {
		if count[i] == 0 {
			continue
		}
		plates[i].Centroid = mesh.Point{X: sumX[i] / float64(count[i]), Y: sumY[i] / float64(count[i])}
	}
}
