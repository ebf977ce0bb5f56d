package hydrology

import (
	"math"

	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/mapsystem"
)

// Run computes flow direction, optionally fills depressions into lake
// surfaces, accumulates flux, and traces rivers, writing the results
// into state (spec §4.6). It requires the Features stage to have run.
func Run(state *mapsystem.State, cfg config.HydrologyConfig) error {
	if err := state.Require(mapsystem.StageFeatures); err != nil {
		return err
	}

	m := state.Mesh
	height := state.Cells.Height
	isWater := state.Cells.IsWater

	filled := height
	if cfg.EnableLakes {
		filled = priorityFlood(m, height, isWater)
		groups, surfaceLevel, outlet := lakeRegions(m, height, filled, isWater)
		appendFilledLakes(state, groups, surfaceLevel, outlet)
		isWater = state.Cells.IsWater
	}

	dir := computeFlowDirection(m, filled, isWater)
	flux := accumulateFlux(filled, dir, state.Cells.Precipitation, isWater)
	state.Cells.Flux = flux

	threshold := cfg.RiverThreshold
	if threshold == 0 {
		threshold = 100
	}
	rivers := traceRivers(m, dir, flux, isWater, threshold)
	state.Rivers = rivers

	writeRiverEdges(state, rivers, flux)

	state.Advance(mapsystem.StageHydrology)
	return nil
}

// appendFilledLakes records every depression the priority flood raised
// into water as a new Lake, extending the feature tables the Features
// stage produced (spec §4.6's pit-filled lakes are distinct from the
// sea-level lakes internal/features already found).
func appendFilledLakes(state *mapsystem.State, groups [][]int, surfaceLevel []float64, outlet []int) {
	if len(groups) == 0 {
		return
	}
	nextID := uint16(len(state.Landmasses) + len(state.Lakes) + len(state.Oceans))
	for i, cells := range groups {
		id := nextID
		nextID++
		state.Lakes = append(state.Lakes, mapsystem.Lake{
			ID:           id,
			Cells:        cells,
			OutletCell:   outlet[i],
			SurfaceLevel: clampU8(surfaceLevel[i]),
		})
		for _, c := range cells {
			state.Cells.IsWater[c] = true
			state.Cells.FeatureID[c] = id
		}
	}
}

// writeRiverEdges marks each traced river's path edges with its id and a
// width derived from flux, then marks every remaining land/water edge as
// a lake border where the water cell belongs to a lake and as a coastline
// otherwise (spec §3 edge fields, §4.6 per-cell river width).
func writeRiverEdges(state *mapsystem.State, rivers []mapsystem.River, flux []uint16) {
	idx := buildEdgeIndex(state.Mesh)
	riverID := make([]uint16, idx.Len())
	riverWidth := make([]uint8, idx.Len())
	border := make([]mapsystem.BorderType, idx.Len())

	for _, r := range rivers {
		fluxAtMouth := math.Max(1, float64(flux[r.Mouth]))
		for i := 0; i+1 < len(r.Cells); i++ {
			a, b := r.Cells[i], r.Cells[i+1]
			id, ok := idx.ID(a, b)
			if !ok {
				continue
			}
			riverID[id] = r.ID + 1
			border[id] = mapsystem.BorderRiver
			ratio := math.Sqrt(float64(flux[r.Cells[i]]) / fluxAtMouth)
			riverWidth[id] = clampU8(ratio * 255)
		}
	}

	isWater := state.Cells.IsWater
	isLake := make([]bool, len(isWater))
	for _, l := range state.Lakes {
		for _, c := range l.Cells {
			isLake[c] = true
		}
	}

	for i, nbs := range state.Mesh.Neighbors {
		for _, j := range nbs {
			if j <= i || isWater[i] == isWater[j] {
				continue
			}
			id, ok := idx.ID(i, j)
			if !ok || border[id] != mapsystem.BorderNone {
				continue
			}
			waterCell := i
			if isWater[j] {
				waterCell = j
			}
			if isLake[waterCell] {
				border[id] = mapsystem.BorderLake
			} else {
				border[id] = mapsystem.BorderCoast
			}
		}
	}

	state.Edges = mapsystem.EdgeFields{RiverID: riverID, RiverWidth: riverWidth, Border: border}
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
