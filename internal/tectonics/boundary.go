package tectonics

// Kind classifies the relative motion at a plate boundary (spec §4.3
// step 4).
type Kind int

const (
	Convergent Kind = iota
	Divergent
	Transform
	// WeakConvergent is the spec's fallback case: approach/shear both
	// below threshold, treated as a weak convergent boundary.
	WeakConvergent
)

// boundaryThreshold is the spec's ±0.3 approach/shear cutoff (step 4).
const boundaryThreshold = 0.3

// Boundary is one unordered pair of adjacent plates and its classified
// interaction.
type Boundary struct {
	PlateA, PlateB int
	Kind           Kind
	Approach       float64 // positive = convergent, negative = divergent
	Shear          float64
}

// Classify determines the boundary kind between two plates from their
// centroids and velocities (spec §4.3 step 4): n̂ points from A to B,
// t̂ is its +90° rotation; approach is the combined closing speed along
// n̂, shear is the relative tangential speed.
func Classify(a, b Plate) Boundary {
	bVec := vec2{x: b.Centroid.X, y: b.Centroid.Y}
	aVec := vec2{x: a.Centroid.X, y: a.Centroid.Y}
	normal := bVec.sub(aVec).normalize()
	tangent := normal.rot90()

	va, vb := a.velocity(), b.velocity()
	approach := va.dot(normal) + vb.dot(normal.scale(-1))
	shear := absf(va.dot(tangent) - vb.dot(tangent))

	boundary := Boundary{PlateA: a.ID, PlateB: b.ID, Approach: approach, Shear: shear}
	switch {
	case approach > boundaryThreshold:
		boundary.Kind = Convergent
	case approach < -boundaryThreshold:
		boundary.Kind = Divergent
	case shear > boundaryThreshold:
		boundary.Kind = Transform
	default:
		boundary.Kind = WeakConvergent
	}
	return boundary
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// boundaryKey is an unordered plate-pair key.
type boundaryKey struct{ a, b int }

func makeBoundaryKey(a, b int) boundaryKey {
	if a > b {
		a, b = b, a
	}
	return boundaryKey{a, b}
}

// DetectBoundaries finds every cell with at least one neighbor in a
// different plate (spec §4.3 step 3) and classifies each distinct plate
// pair exactly once (step 4). It returns the distinct classified
// boundaries keyed by plate pair, and for every cell the keys of the
// boundaries it lies on (empty for a cell inside a plate).
func DetectBoundaries(neighbors [][]int, plateOf []int, plates []Plate) (map[boundaryKey]Boundary, [][]boundaryKey) {
	boundaries := make(map[boundaryKey]Boundary)
	cellBoundaries := make([][]boundaryKey, len(plateOf))

	for cell, p := range plateOf {
		seen := make(map[boundaryKey]bool)
		for _, nb := range neighbors[cell] {
			if plateOf[nb] == p {
				continue
			}
			key := makeBoundaryKey(p, plateOf[nb])
			if _, ok := boundaries[key]; !ok {
				boundaries[key] = Classify(plates[key.a], plates[key.b])
			}
			if !seen[key] {
				seen[key] = true
				cellBoundaries[cell] = append(cellBoundaries[cell], key)
			}
		}
	}

	return boundaries, cellBoundaries
}
