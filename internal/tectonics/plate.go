// Package tectonics implements the plate-tectonics elevation path: plate
// assignment by multi-source BFS, boundary classification by relative
// plate kinematics, and an iterated height update driven by convergent,
// divergent, and transform boundary effects plus isostatic relaxation
// (spec §4.3).
package tectonics

import (
	"math"

	"github.com/Hemifuture/terragen/internal/mesh"
)

// Type is a plate's crust type, carrying the density used to decide
// which side of a convergent boundary subducts.
type Type int

const (
	Oceanic Type = iota
	Continental
)

// Density returns the plate's crust density (spec §4.3 step 1:
// "continental (density 2.7) or oceanic (density 3.0)").
func (t Type) Density() float64 {
	if t == Continental {
		return 2.7
	}
	return 3.0
}

// Plate is one tectonic plate: its crust type, the cell it was seeded
// from, its true centroid among assigned cells, and its kinematics.
type Plate struct {
	ID       int
	Type     Type
	SeedCell int
	Centroid mesh.Point

	DirectionRadians float64 // θ ∈ [0, 2π)
	Speed            float64 // v ∈ [0.5, 2.0]
}

// velocity returns the plate's 2D velocity vector (speed in the
// direction of travel), used by boundary classification.
func (p Plate) velocity() vec2 {
	return vec2{x: p.Speed * math.Cos(p.DirectionRadians), y: p.Speed * math.Sin(p.DirectionRadians)}
}
