package pipeline

import (
	"context"

	"github.com/Hemifuture/terragen/internal/apperr"
	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/mapsystem"
	"github.com/Hemifuture/terragen/internal/mesh"
	"github.com/Hemifuture/terragen/internal/randstream"
	"github.com/Hemifuture/terragen/internal/tectonics"
	"github.com/Hemifuture/terragen/internal/terrain"
)

// continentalBaseHeight and oceanicBaseHeight seed the tectonic path's
// height field before the iterated boundary update runs; Finalization
// (spec §4.3) range-normalizes afterward, so only their relative order
// matters, not their absolute scale.
const (
	continentalBaseHeight = 100.0
	oceanicBaseHeight     = 20.0
)

// elevationResult carries the Detail stage's two §4.4 inputs alongside
// the height field: which cells count as "continental" for the fBm
// boost/suppression, and each cell's normalized distance from the
// nearest plate boundary (nil when the Template path has no boundary
// concept to suppress around).
type elevationResult struct {
	height                 []float64
	continental            []bool
	boundaryDistNormalized []float64
}

// runElevation dispatches to the Template or Plates path per
// cfg.ElevationMode and writes the resulting scratch height field into
// state.Cells.Height (spec §4.2/§4.3).
func runElevation(ctx context.Context, state *mapsystem.State, cfg config.GenerationConfig) (elevationResult, error) {
	if err := state.Require(mapsystem.StageMesh); err != nil {
		return elevationResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return elevationResult{}, apperr.Canceled("elevation")
	}

	var result elevationResult
	var err error

	switch cfg.ElevationMode {
	case config.ElevationPlates:
		result, err = runPlatesElevation(ctx, state, cfg)
	default:
		result, err = runTemplateElevation(state, cfg)
	}
	if err != nil {
		return elevationResult{}, err
	}

	state.Cells.Height = result.height
	state.Advance(mapsystem.StageElevation)
	return result, nil
}

func runTemplateElevation(state *mapsystem.State, cfg config.GenerationConfig) (elevationResult, error) {
	text := cfg.TemplateText
	if text == "" {
		t, ok := terrain.NamedTemplate(cfg.TemplateName)
		if !ok {
			return elevationResult{}, apperr.InvalidConfig("template_name", "no built-in template with this name")
		}
		text = t
	}

	commands, err := terrain.ParseTemplate(text)
	if err != nil {
		return elevationResult{}, err
	}

	r := randstream.Substream(cfg.Seed, randstream.StageTerrain, 0)
	height := terrain.Run(state.Mesh, commands, r)

	seaLevel := float64(cfg.SeaLevel)
	continental := make([]bool, len(height))
	for i, h := range height {
		continental[i] = h >= seaLevel
	}

	return elevationResult{height: height, continental: continental}, nil
}

func runPlatesElevation(ctx context.Context, state *mapsystem.State, cfg config.GenerationConfig) (elevationResult, error) {
	m := state.Mesh
	r := randstream.Substream(cfg.Seed, randstream.StageTectonics, 0)

	plateOf, plates, err := tectonics.AssignPlates(m, cfg.Tectonic.PlateCount, cfg.Tectonic.ContinentalRatio, r)
	if err != nil {
		return elevationResult{}, err
	}

	height := make([]float64, m.N())
	continental := make([]bool, m.N())
	for i, p := range plateOf {
		if plates[p].Type == tectonics.Continental {
			height[i] = continentalBaseHeight
			continental[i] = true
		} else {
			height[i] = oceanicBaseHeight
		}
	}

	if err := ctx.Err(); err != nil {
		return elevationResult{}, apperr.Canceled("elevation")
	}

	simR := randstream.Substream(cfg.Seed, randstream.StageTectonics, 1)
	tectonics.Simulate(m, plateOf, plates, cfg.Tectonic, height, simR)

	tectonics.CollapseMountains(height, cfg.Tectonic.MountainCeiling)

	boundaryDist := boundaryDistanceNormalized(m, plateOf, plates)

	return elevationResult{
		height:                 height,
		continental:            continental,
		boundaryDistNormalized: boundaryDist,
	}, nil
}

// boundaryDistanceNormalized returns, for each cell, its hop distance
// from the nearest plate-boundary cell normalized to [0,1] by the
// farthest such distance on this mesh (spec §4.4's d_boundary_normalized
// term).
func boundaryDistanceNormalized(m *mesh.Mesh, plateOf []int, plates []tectonics.Plate) []float64 {
	_, cellBoundaries := tectonics.DetectBoundaries(m.Neighbors, plateOf, plates)

	isBoundary := make([]bool, m.N())
	queue := make([]int, 0, m.N())
	for i := range cellBoundaries {
		if len(cellBoundaries[i]) > 0 {
			isBoundary[i] = true
			queue = append(queue, i)
		}
	}

	dist := make([]int, m.N())
	for i := range dist {
		dist[i] = -1
	}
	for _, i := range queue {
		dist[i] = 0
	}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, nb := range m.Neighbors[cur] {
			if dist[nb] != -1 {
				continue
			}
			dist[nb] = dist[cur] + 1
			queue = append(queue, nb)
		}
	}

	maxDist := 1
	for _, d := range dist {
		if d > maxDist {
			maxDist = d
		}
	}

	normalized := make([]float64, m.N())
	for i, d := range dist {
		if d < 0 {
			d = maxDist
		}
		normalized[i] = float64(d) / float64(maxDist)
	}
	return normalized
}
