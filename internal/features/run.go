package features

import (
	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/mapsystem"
)

// Run classifies every cell as water or land, flood-fills connected
// regions into Landmass/Lake/Ocean tables, applies size-threshold
// cleanup, and smooths the coastline, writing the results into state
// (spec §4.5). It requires the Detail stage to have run.
func Run(state *mapsystem.State, cfg config.FeaturesConfig, seaLevel float64) error {
	if err := state.Require(mapsystem.StageDetail); err != nil {
		return err
	}

	m := state.Mesh
	height := state.Cells.Height
	isWater := Classify(height, seaLevel)

	if cfg.EnableFeatureCleanup {
		_, regions := label(m, isWater)
		for submergeIslands(isWater, regions, int(cfg.MinIslandSize)) ||
			fillLakes(m, isWater, height, regions, int(cfg.MinLakeSize)) {
			_, regions = label(m, isWater)
		}

		k := int(cfg.CoastlineSmoothing)
		if k == 0 {
			k = 1
		}
		smoothCoastline(m, isWater, height, k)
	}

	_, regions := label(m, isWater)

	var landmasses []mapsystem.Landmass
	var lakes []mapsystem.Lake
	var oceans []mapsystem.Ocean
	featureID := make([]uint16, m.N())

	// feature_id is a single id space over all regions (spec §4.5 "every
	// cell belongs to exactly one feature"); Landmass/Lake/Ocean.ID reuse
	// it rather than running a separate counter per table.
	for regionID, r := range regions {
		id := uint16(regionID)
		markFeature(featureID, r.cells, id)
		switch {
		case r.isWater && r.boundary:
			oceans = append(oceans, mapsystem.Ocean{ID: id, Cells: r.cells})
		case r.isWater:
			lakes = append(lakes, mapsystem.Lake{ID: id, Cells: r.cells, OutletCell: -1, SurfaceLevel: clampU8(surfaceHeight(height, r.cells))})
		default:
			landmasses = append(landmasses, mapsystem.Landmass{ID: id, Cells: r.cells, IsContinent: len(r.cells) > continentThreshold})
		}
	}

	state.Cells.IsWater = isWater
	state.Cells.FeatureID = featureID
	state.Landmasses = landmasses
	state.Lakes = lakes
	state.Oceans = oceans

	state.Advance(mapsystem.StageFeatures)
	return nil
}

func markFeature(featureID []uint16, cells []int, id uint16) {
	for _, c := range cells {
		featureID[c] = id
	}
}

func surfaceHeight(height []float64, cells []int) float64 {
	max := height[cells[0]]
	for _, c := range cells[1:] {
		if height[c] > max {
			max = height[c]
		}
	}
	return max
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
