package detail

import (
	"math"

	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/mesh"
)

// ApplyMediumScale adds the medium-scale fBm layer (octaves=3, base
// frequency 0.01, amplitude 0.2): boosted 1.5x on continental cells,
// suppressed 0.5x on oceanic cells, with additional suppression near
// plate boundaries to preserve sharp tectonic features (spec §4.4).
// boundaryDistNormalized[i] is 0 at a boundary cell, approaching 1 far
// from any boundary; pass nil to skip boundary suppression entirely.
func ApplyMediumScale(m *mesh.Mesh, height []float64, continental []bool, boundaryDistNormalized []float64, cfg config.DetailConfig, masterSeed uint64) {
	const (
		octaves     = 3
		baseFreq    = 0.01
		amplitude   = 0.2
		persistence = 0.5
		lacunarity  = 2.0
	)
	layers := newFBMLayers(masterSeed, mediumScalePass, octaves)

	for i, p := range m.Points {
		n := fbm(layers, p.X, p.Y, baseFreq, persistence, lacunarity)

		mult := 0.5
		if continental[i] {
			mult = 1.5
		}

		suppression := 1.0
		if boundaryDistNormalized != nil {
			suppression = 1 - math.Exp(-5*boundaryDistNormalized[i])
		}

		height[i] += n * amplitude * cfg.MediumNoiseStrength * mult * suppression
	}
}

// ApplySmallScale adds the small-scale fBm layer (octaves=5, base
// frequency 0.05, amplitude 0.1), modulated by height relative to sea
// level: amplified above sea level, halved below it (spec §4.4).
func ApplySmallScale(m *mesh.Mesh, height []float64, seaLevel float64, cfg config.DetailConfig, masterSeed uint64) {
	const (
		octaves     = 5
		baseFreq    = 0.05
		amplitude   = 0.1
		persistence = 0.5
		lacunarity  = 2.0
	)
	layers := newFBMLayers(masterSeed, smallScalePass, octaves)

	for i, p := range m.Points {
		n := fbm(layers, p.X, p.Y, baseFreq, persistence, lacunarity)

		mod := 0.5
		if height[i] > seaLevel {
			mod = 1 + (height[i]-seaLevel)/255*0.5
		}

		height[i] += n * amplitude * cfg.DetailNoiseStrength * mod
	}
}
