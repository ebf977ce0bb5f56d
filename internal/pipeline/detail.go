package pipeline

import (
	"context"

	"github.com/Hemifuture/terragen/internal/apperr"
	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/detail"
	"github.com/Hemifuture/terragen/internal/mapsystem"
	"github.com/Hemifuture/terragen/internal/randstream"
)

// runDetail layers the medium/small-scale fBm passes onto the Elevation
// stage's height field and, if configured, runs thermal and hydraulic
// erosion (spec §4.4).
func runDetail(ctx context.Context, state *mapsystem.State, cfg config.GenerationConfig, elev elevationResult) error {
	if err := state.Require(mapsystem.StageElevation); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return apperr.Canceled("detail")
	}

	m := state.Mesh
	height := state.Cells.Height

	detail.ApplyMediumScale(m, height, elev.continental, elev.boundaryDistNormalized, cfg.Detail, cfg.Seed)

	if err := ctx.Err(); err != nil {
		return apperr.Canceled("detail")
	}

	detail.ApplySmallScale(m, height, float64(cfg.SeaLevel), cfg.Detail, cfg.Seed)

	if e := cfg.Detail.Erosion; e != nil {
		if err := ctx.Err(); err != nil {
			return apperr.Canceled("detail")
		}

		if e.ThermalIterations > 0 {
			detail.ApplyThermalErosion(m, height, e.ThermalIterations, e.TalusAngle)
		}

		if err := ctx.Err(); err != nil {
			return apperr.Canceled("detail")
		}

		if e.HydraulicDroplets > 0 {
			r := randstream.Substream(cfg.Seed, randstream.StageErosion, 0)
			detail.ApplyHydraulicErosion(m, height, detail.ParamsFromConfig(*e), r)
		}
	}

	state.Advance(mapsystem.StageDetail)
	return nil
}
