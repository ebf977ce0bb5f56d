// Package mapsystem holds the shared, stage-mutated map state: the dense
// per-cell and per-edge field arrays, the feature tables, and the
// generation-stage marker that gates which stage may run next (spec §3).
package mapsystem

import "github.com/Hemifuture/terragen/internal/mesh"

// Stage is the generation-stage marker. It advances monotonically;
// regeneration restarts from the last valid prefix.
type Stage int

const (
	StageNone Stage = iota
	StageMesh
	StageElevation
	StageDetail
	StageFeatures
	StageHydrology
	StageClimate
	StageBiomes
	StageCleanup
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageNone:
		return "none"
	case StageMesh:
		return "mesh"
	case StageElevation:
		return "elevation"
	case StageDetail:
		return "detail"
	case StageFeatures:
		return "features"
	case StageHydrology:
		return "hydrology"
	case StageClimate:
		return "climate"
	case StageBiomes:
		return "biomes"
	case StageCleanup:
		return "cleanup"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// BorderType classifies a Voronoi edge for the river/coast field set.
type BorderType uint8

const (
	BorderNone BorderType = iota
	BorderCoast
	BorderRiver
	BorderLake
)

// CellFields are the dense, per-cell arrays of spec §3, each of length
// mesh.N(). Height is kept as float64 scratch during generation (the
// template engine and tectonics/erosion passes accumulate fractional
// deltas) and only quantized to the spec's u8 range at Cleanup/normalize;
// HeightU8 mirrors the final clamped value once Cleanup has run.
type CellFields struct {
	Height        []float64
	HeightU8      []uint8
	IsWater       []bool
	Temperature   []int8
	Precipitation []uint8
	Flux          []uint16
	Biome         []uint16
	FeatureID     []uint16

	// Filled by later collaborators outside this core; present only so
	// a downstream layer has somewhere dense to write without widening
	// the field set. The core never reads or writes these itself.
	Culture  []uint16
	State    []uint16
	Province []uint16
	Religion []uint16
	Burg     []uint16
}

// EdgeFields are the dense, per-Voronoi-edge arrays of spec §3.
type EdgeFields struct {
	RiverID    []uint16
	RiverWidth []uint8
	Border     []BorderType
}

// Landmass is a named land region (spec §3).
type Landmass struct {
	ID          uint16
	Cells       []int
	IsContinent bool
}

// Lake is a named inland water region.
type Lake struct {
	ID           uint16
	Cells        []int
	OutletCell   int // -1 if none
	SurfaceLevel uint8
}

// Ocean is a named water region touching the map boundary.
type Ocean struct {
	ID    uint16
	Cells []int
}

// River is one traced flow path, source to mouth.
type River struct {
	ID        uint16
	Cells     []int // source -> mouth order
	Source    int
	Mouth     int
	WidthKM   float64
	Tributary bool
	JoinsID   uint16 // valid only if Tributary
}

// State is the full mutable map-generation state threaded through the
// pipeline: the immutable mesh plus every stage's output fields.
type State struct {
	Mesh *mesh.Mesh

	Cells CellFields
	Edges EdgeFields

	Landmasses []Landmass
	Lakes      []Lake
	Oceans     []Ocean
	Rivers     []River

	Stage Stage
}

// New allocates empty per-cell field arrays sized to m's cell count. Edge
// fields are left empty here: internal/hydrology builds the edge index and
// fills them, since rivers are the only edge-indexed stage.
func New(m *mesh.Mesh) *State {
	n := m.N()
	return &State{
		Mesh: m,
		Cells: CellFields{
			Height:        make([]float64, n),
			HeightU8:      make([]uint8, n),
			IsWater:       make([]bool, n),
			Temperature:   make([]int8, n),
			Precipitation: make([]uint8, n),
			Flux:          make([]uint16, n),
			Biome:         make([]uint16, n),
			FeatureID:     make([]uint16, n),
			Culture:       make([]uint16, n),
			State:         make([]uint16, n),
			Province:      make([]uint16, n),
			Religion:      make([]uint16, n),
			Burg:          make([]uint16, n),
		},
		Stage: StageMesh,
	}
}

// Require returns MissingPrerequisite unless the state has advanced at
// least to minStage; every stage calls this before touching its inputs
// (spec §4.8 pre-conditions).
func (s *State) Require(minStage Stage) error {
	if s.Stage < minStage {
		return missingPrerequisite(minStage)
	}
	return nil
}

// Advance sets the stage marker to at least next; it never moves the
// marker backward.
func (s *State) Advance(next Stage) {
	if next > s.Stage {
		s.Stage = next
	}
}
