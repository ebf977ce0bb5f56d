package detail

import (
	"math"
	"math/rand"

	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/mesh"
)

// ApplyThermalErosion transfers half the excess over the talus angle from
// each cell to each neighbor it out-slopes by more than that angle,
// repeated for the configured number of passes, grounded on
// geography/erosion.go's ApplyThermalErosion (spec §4.4). Unlike the
// teacher's single-steepest-neighbor version, this follows the spec
// literally: every neighbor pair over the talus threshold transfers,
// computed into a delta buffer so transfers within one pass don't chain.
func ApplyThermalErosion(m *mesh.Mesh, height []float64, iterations int, talus float64) {
	delta := make([]float64, len(height))
	for iter := 0; iter < iterations; iter++ {
		for i := range delta {
			delta[i] = 0
		}
		for i, h := range height {
			for _, nb := range m.Neighbors[i] {
				diff := h - height[nb]
				if diff <= talus {
					continue
				}
				transfer := (diff - talus) / 2
				delta[i] -= transfer
				delta[nb] += transfer
			}
		}
		for i := range height {
			height[i] += delta[i]
		}
	}
}

// ErosionParams configures one hydraulic-erosion droplet pass
// (spec §4.4).
type ErosionParams struct {
	Droplets       int
	MaxSteps       int
	Inertia        float64
	Capacity       float64
	ErosionRate    float64
	DepositionRate float64
	Evaporation    float64
	MinVolume      float64
}

// ParamsFromConfig adapts config.ErosionConfig to ErosionParams.
func ParamsFromConfig(c config.ErosionConfig) ErosionParams {
	return ErosionParams{
		Droplets:       c.HydraulicDroplets,
		MaxSteps:       c.HydraulicMaxSteps,
		Inertia:        c.Inertia,
		Capacity:       c.Capacity,
		ErosionRate:    c.ErosionRate,
		DepositionRate: c.DepositionRate,
		Evaporation:    c.Evaporation,
		MinVolume:      c.MinWaterVolume,
	}
}

// ApplyHydraulicErosion runs p.Droplets independent droplet simulations,
// each following the local height gradient, eroding downhill cells and
// depositing on uphill ones, subject to sediment capacity (spec §4.4).
// Grounded on geography/erosion.go's ApplyHydraulicErosion: since the
// mesh has no regular grid, the "bilinear interpolation of the four
// nearest cells" gradient sample is replaced with a distance-weighted
// gradient over the current cell's Delaunay neighbors (see gradient
// below) — the natural analogue on an unstructured mesh.
func ApplyHydraulicErosion(m *mesh.Mesh, height []float64, p ErosionParams, r *rand.Rand) {
	for d := 0; d < p.Droplets; d++ {
		runDroplet(m, height, p, r)
	}
}

func runDroplet(m *mesh.Mesh, height []float64, p ErosionParams, r *rand.Rand) {
	pos := mesh.Point{X: r.Float64() * m.Width, Y: r.Float64() * m.Height}
	velX, velY := 0.0, 0.0
	volume := 1.0
	sediment := 0.0

	for step := 0; step < p.MaxSteps && volume > p.MinVolume; step++ {
		cell := m.NearestCell(pos)
		gx, gy := gradient(m, height, cell)

		velX = velX*p.Inertia - gx*(1-p.Inertia)
		velY = velY*p.Inertia - gy*(1-p.Inertia)

		speed := math.Hypot(velX, velY)
		if speed < 1e-9 {
			return
		}
		velX /= speed
		velY /= speed

		pos.X += velX
		pos.Y += velY
		if pos.X < 0 || pos.X > m.Width || pos.Y < 0 || pos.Y > m.Height {
			return
		}

		newCell := m.NearestCell(pos)
		heightDiff := height[newCell] - height[cell]
		capacity := math.Max(-heightDiff, p.MinVolume) * speed * volume * p.Capacity

		switch {
		case heightDiff > 0:
			amount := math.Min(sediment, heightDiff)
			sediment -= amount
			height[cell] += amount
		case sediment > capacity:
			amount := (sediment - capacity) * p.DepositionRate
			sediment -= amount
			height[cell] += amount
		default:
			amount := math.Min((capacity-sediment)*p.ErosionRate, -heightDiff)
			sediment += amount
			height[cell] -= amount
		}

		volume *= 1 - p.Evaporation
	}
}

// gradient estimates the local downhill direction at cell from a
// distance-weighted average of its neighbors' height differences.
func gradient(m *mesh.Mesh, height []float64, cell int) (float64, float64) {
	site := m.Points[cell]
	var gx, gy float64
	for _, nb := range m.Neighbors[cell] {
		d := m.Points[nb]
		dx, dy := d.X-site.X, d.Y-site.Y
		distSq := dx*dx + dy*dy
		if distSq < 1e-12 {
			continue
		}
		diff := height[nb] - height[cell]
		gx += diff * dx / distSq
		gy += diff * dy / distSq
	}
	return gx, gy
}
