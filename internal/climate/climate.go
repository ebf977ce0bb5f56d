package climate

import (
	"math"

	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/mapsystem"
	"github.com/Hemifuture/terragen/internal/mesh"
)

// defaultMaxAltitudeKM matches Everest's rough altitude, used when the
// config leaves MaxAltitudeKM at its zero value.
const defaultMaxAltitudeKM = 8.8

// Run computes temperature (latitude + lapse rate) and precipitation
// (distance-to-sea + rain shadow + equatorial bias) for every cell,
// grounded on geography/biomes.go's calculateTemperature (spec §4.7). It
// requires the Hydrology stage to have run.
func Run(state *mapsystem.State, cfg config.ClimateConfig) error {
	if err := state.Require(mapsystem.StageHydrology); err != nil {
		return err
	}

	m := state.Mesh
	n := m.N()
	height := state.Cells.Height
	isWater := state.Cells.IsWater

	distToSea := distanceToWater(m, isWater)

	maxAltitudeKM := cfg.MaxAltitudeKM
	if maxAltitudeKM == 0 {
		maxAltitudeKM = defaultMaxAltitudeKM
	}
	windDX := math.Cos(cfg.WindDirectionRadians)
	windDY := math.Sin(cfg.WindDirectionRadians)

	temperature := make([]int8, n)
	precipitation := make([]uint8, n)

	for i, p := range m.Points {
		normalizedY := p.Y / m.Height
		latFactor := math.Abs(normalizedY-0.5) * 2

		base := 30 - 60*latFactor
		altitudeKM := math.Max(0, height[i]-20) / 235 * maxAltitudeKM
		temperature[i] = clampI8(base - 6.5*altitudeKM)

		baseRain := 200 - 0.5*float64(distToSea[i])
		upwind := mesh.Point{X: p.X - windDX*100, Y: p.Y - windDY*100}
		upwindCell := m.NearestCell(upwind)

		shadowFactor := 1.0
		switch {
		case height[i] > height[upwindCell]+50:
			shadowFactor = 1.5
		case height[upwindCell] > height[i]+50:
			shadowFactor = 0.5
		}

		equatorialBias := 0.5 + 1 - math.Abs(normalizedY-0.5)
		precipitation[i] = clampU8(baseRain * shadowFactor * equatorialBias)
	}

	state.Cells.Temperature = temperature
	state.Cells.Precipitation = precipitation

	state.Advance(mapsystem.StageClimate)
	return nil
}

func clampI8(v float64) int8 {
	if v < -128 {
		return -128
	}
	if v > 127 {
		return 127
	}
	return int8(v)
}

func clampU8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
