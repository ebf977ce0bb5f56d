package pipeline

import (
	"context"

	"github.com/Hemifuture/terragen/internal/apperr"
	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/mapsystem"
)

// runCleanup range-normalizes Height to [0,255], quantizes it into
// HeightU8, and checks the invariants spec §4.8's Cleanup/normalize row
// promises: min/max of the normalized range, the island size threshold
// (min_lake_size is not re-checked), and mesh neighbor mutuality. The normalize/quantize pass is
// the "range normalization" data-parallel section named in spec §5,
// partitioned across workers via partitionCells.
func runCleanup(ctx context.Context, state *mapsystem.State, cfg config.GenerationConfig) error {
	if err := state.Require(mapsystem.StageBiomes); err != nil {
		return err
	}

	height := state.Cells.Height
	n := len(height)
	if n == 0 {
		state.Advance(mapsystem.StageCleanup)
		state.Advance(mapsystem.StageDone)
		return nil
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

	err := partitionCells(ctx, n, cfg.MaxWorkers, func(ctx context.Context, lo, hi int) error {
		if err := ctx.Err(); err != nil {
			return apperr.Canceled("cleanup")
		}
		for i := lo; i < hi; i++ {
			normalized := 0.0
			if span != 0 {
				normalized = (height[i] - min) / span * 255
			}
			height[i] = normalized
			state.Cells.HeightU8[i] = clampU8(normalized)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := checkInvariants(state, cfg); err != nil {
		return err
	}

	state.Advance(mapsystem.StageCleanup)
	state.Advance(mapsystem.StageDone)
	return nil
}

// checkInvariants verifies the cross-stage invariants spec §8 lists:
// mutual mesh adjacency, the normalized height range, and the minimum
// island size of every non-continent landmass in the final tables.
func checkInvariants(state *mapsystem.State, cfg config.GenerationConfig) error {
	m := state.Mesh
	for i, nbs := range m.Neighbors {
		for _, nb := range nbs {
			mutual := false
			for _, back := range m.Neighbors[nb] {
				if back == i {
					mutual = true
					break
				}
			}
			if !mutual {
				return apperr.InvariantViolated("cleanup", "mesh neighbor adjacency is not mutual")
			}
		}
	}

	n := len(state.Cells.Height)
	if n > 0 {
		min, max := state.Cells.Height[0], state.Cells.Height[0]
		for _, h := range state.Cells.Height {
			if h < min {
				min = h
			}
			if h > max {
				max = h
			}
		}
		if min != 0 || max != 255 {
			return apperr.InvariantViolated("cleanup", "normalized height must span [0, 255]")
		}
	}

	// min_lake_size is not re-checked here: Hydrology's priority-flood can
	// append new endorheic-basin lakes after Features has already reached
	// its fixed point on min_lake_size, and those are legitimately small.
	minIsland := int(cfg.Features.MinIslandSize)
	for _, l := range state.Landmasses {
		if !l.IsContinent && len(l.Cells) < minIsland {
			return apperr.InvariantViolated("cleanup", "island below min_island_size survived cleanup")
		}
	}

	return nil
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
