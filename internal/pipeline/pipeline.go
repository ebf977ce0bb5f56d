// Package pipeline sequences the generation stages over a shared
// mapsystem.State: Mesh, Elevation, Detail, Features, Hydrology, Climate,
// Biomes, and Cleanup/normalize, in strict order (spec §2, §4.8). It is
// the single-threaded stage driver; data-parallel work happens inside a
// stage via partitionCells. Grounded on orchestrator/service.go's
// GenerateWorld: numbered steps, a ctx.Err() check before each one, and
// errors wrapped with the failing step's name.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/Hemifuture/terragen/internal/apperr"
	"github.com/Hemifuture/terragen/internal/biome"
	"github.com/Hemifuture/terragen/internal/climate"
	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/features"
	"github.com/Hemifuture/terragen/internal/hydrology"
	"github.com/Hemifuture/terragen/internal/logging"
	"github.com/Hemifuture/terragen/internal/mapsystem"
	"github.com/Hemifuture/terragen/internal/mesh"
	"github.com/Hemifuture/terragen/internal/metrics"
	"github.com/Hemifuture/terragen/internal/randstream"
)

// Run builds a fresh mapsystem.State for cfg and drives it through every
// enabled stage in order, returning the final state once Cleanup has run.
// A stage whose bit is unset in cfg.StagesEnabled is skipped; since every
// stage's Run requires its predecessor's stage marker, skipping a stage
// that a later enabled stage depends on surfaces as MissingPrerequisite
// from that later stage, not silently.
func Run(ctx context.Context, cfg config.GenerationConfig) (*mapsystem.State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	metrics.SetActiveRuns(1)
	defer metrics.SetActiveRuns(0)

	state, elev, err := buildMeshAndElevation(ctx, cfg)
	if err != nil {
		return nil, err
	}

	type step struct {
		name string
		bit  config.StageSet
		run  func() error
	}

	steps := []step{
		{"detail", config.StageBitDetail, func() error { return runDetail(ctx, state, cfg, elev) }},
		{"features", config.StageBitFeatures, func() error {
			return features.Run(state, cfg.Features, float64(cfg.SeaLevel))
		}},
		{"hydrology", config.StageBitHydrology, func() error { return hydrology.Run(state, cfg.Hydrology) }},
		{"climate", config.StageBitClimate, func() error { return climate.Run(state, cfg.Climate) }},
		{"biomes", config.StageBitBiomes, func() error { return biome.Run(state) }},
		{"cleanup", config.StageBitCleanup, func() error { return runCleanup(ctx, state, cfg) }},
	}

	for _, s := range steps {
		if !cfg.StagesEnabled.Has(s.bit) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, apperr.Canceled(s.name)
		}

		start := time.Now()
		if err := s.run(); err != nil {
			logging.LogError(ctx, err, s.name)
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		elapsed := time.Since(start)

		metrics.RecordStageDuration(s.name, elapsed)
		metrics.RecordCellsProcessed(s.name, state.Mesh.N())
		logging.LogStage(ctx, s.name, elapsed, state.Mesh.N())
	}

	return state, nil
}

// buildMeshAndElevation runs the two stages every other stage depends on
// transitively (Mesh is never gated by StagesEnabled: without it there is
// no cell range for any later stage to partition).
func buildMeshAndElevation(ctx context.Context, cfg config.GenerationConfig) (*mapsystem.State, elevationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, elevationResult{}, apperr.Canceled("mesh")
	}

	start := time.Now()
	meshR := randstream.Substream(cfg.Seed, randstream.StageMesh, 0)
	m, err := mesh.Build(mesh.Params{
		Width:   float64(cfg.Width),
		Height:  float64(cfg.Height),
		Spacing: float64(cfg.CellSpacing),
	}, meshR)
	if err != nil {
		return nil, elevationResult{}, fmt.Errorf("mesh: %w", err)
	}
	metrics.RecordStageDuration("mesh", time.Since(start))
	metrics.RecordCellsProcessed("mesh", m.N())
	logging.LogStage(ctx, "mesh", time.Since(start), m.N())

	state := mapsystem.New(m)

	if !cfg.StagesEnabled.Has(config.StageBitElevation) {
		return state, elevationResult{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, elevationResult{}, apperr.Canceled("elevation")
	}

	start = time.Now()
	elev, err := runElevation(ctx, state, cfg)
	if err != nil {
		logging.LogError(ctx, err, "elevation")
		return nil, elevationResult{}, fmt.Errorf("elevation: %w", err)
	}
	elapsed := time.Since(start)
	metrics.RecordStageDuration("elevation", elapsed)
	metrics.RecordCellsProcessed("elevation", m.N())
	logging.LogStage(ctx, "elevation", elapsed, m.N())

	return state, elev, nil
}
