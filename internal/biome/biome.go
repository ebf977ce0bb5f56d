// Package biome classifies every cell into one of twelve biome codes
// from its temperature, precipitation, flux, and coastal-adjacency
// fields (spec §4.7), grounded on geography/biomes.go's resolveBiome
// table (elevation/latitude/moisture branches), adapted here to the
// spec's literal (temperature, precipitation, flux, is_coast) inputs.
package biome

import "github.com/Hemifuture/terragen/internal/mapsystem"

// Code identifies a biome. Values are stable across releases since they
// are written into the dense Cells.Biome field.
type Code uint16

const (
	Ocean Code = iota
	Lake
	Wetland
	Mangrove
	Alpine
	Tundra
	Taiga
	Desert
	Grassland
	TemperateForest
	Savanna
	Rainforest
)

// fluxWetlandThreshold overrides any land classification to Wetland
// regardless of temperature/precipitation (spec §4.7).
const fluxWetlandThreshold = 1000

// classifyLand maps (temperature, precipitation, flux, isCoast) to a
// biome code for a non-water cell (spec §4.7's classification table
// plus its two overrides).
func classifyLand(temperature int8, precipitation uint8, flux uint16, isCoast bool) Code {
	if flux > fluxWetlandThreshold {
		return Wetland
	}
	if isCoast && temperature >= 20 && precipitation >= 150 {
		return Mangrove
	}

	t := float64(temperature)
	p := float64(precipitation)

	switch {
	case t < -10:
		return Alpine
	case t < 0:
		return Tundra
	case t < 10:
		if p < 40 {
			return Tundra
		}
		return Taiga
	case t < 20:
		switch {
		case p < 40:
			return Desert
		case p < 100:
			return Grassland
		default:
			return TemperateForest
		}
	default:
		switch {
		case p < 40:
			return Desert
		case p < 100:
			return Savanna
		default:
			return Rainforest
		}
	}
}

// isCoastCell reports whether cell i has at least one opposite-polarity
// neighbor (a land cell next to water, or vice versa).
func isCoastCell(state *mapsystem.State, i int) bool {
	isWater := state.Cells.IsWater
	for _, nb := range state.Mesh.Neighbors[i] {
		if isWater[nb] != isWater[i] {
			return true
		}
	}
	return false
}

// lakeFeatureIDs collects the feature ids belonging to Lake regions, so
// water cells can be told apart from Ocean cells without a linear scan
// per cell.
func lakeFeatureIDs(state *mapsystem.State) map[uint16]bool {
	ids := make(map[uint16]bool, len(state.Lakes))
	for _, l := range state.Lakes {
		ids[l.ID] = true
	}
	return ids
}

// Run classifies every cell into a Code and writes it into
// state.Cells.Biome (spec §4.7). It requires the Climate stage to have
// run. Water cells are classified directly from the feature tables
// (Ocean vs Lake) rather than through the temperature/precipitation
// table, which applies to land cells only.
func Run(state *mapsystem.State) error {
	if err := state.Require(mapsystem.StageClimate); err != nil {
		return err
	}

	n := state.Mesh.N()
	biomes := make([]uint16, n)
	lakeIDs := lakeFeatureIDs(state)

	for i := 0; i < n; i++ {
		if state.Cells.IsWater[i] {
			if lakeIDs[state.Cells.FeatureID[i]] {
				biomes[i] = uint16(Lake)
			} else {
				biomes[i] = uint16(Ocean)
			}
			continue
		}

		code := classifyLand(
			state.Cells.Temperature[i],
			state.Cells.Precipitation[i],
			state.Cells.Flux[i],
			isCoastCell(state, i),
		)
		biomes[i] = uint16(code)
	}

	state.Cells.Biome = biomes
	state.Advance(mapsystem.StageBiomes)
	return nil
}
