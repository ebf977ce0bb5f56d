// Package config defines the GenerationConfig record fed to the pipeline
// (spec §6) and its validation rules.
package config

// ElevationMode selects which Elevation sub-path produces the height
// field (spec §2 and §4.2/§4.3).
type ElevationMode string

const (
	ElevationTemplate ElevationMode = "template"
	ElevationPlates   ElevationMode = "plates"
)

// TectonicConfig parameterizes the plate-tectonics elevation path
// (spec §4.3, §6).
type TectonicConfig struct {
	PlateCount          int     `json:"plate_count"`
	ContinentalRatio    float64 `json:"continental_ratio"`
	Iterations          int     `json:"iterations"`
	CollisionUpliftRate float64 `json:"collision_uplift_rate"`
	SubductionRate      float64 `json:"subduction_depth_rate"`
	RiftDepthRate       float64 `json:"rift_depth_rate"`
	IsostaticRate       float64 `json:"isostatic_rate"`
	BoundaryWidth       int     `json:"boundary_width"`
	NoiseStrength       float64 `json:"noise_strength"`

	// MountainCeiling bounds the supplemental mountain-collapse pass
	// (SPEC_FULL.md §4.9); 0 disables it.
	MountainCeiling float64 `json:"mountain_ceiling"`
}

// ErosionConfig parameterizes the optional Detail-stage erosion passes
// (spec §4.4).
type ErosionConfig struct {
	ThermalIterations int     `json:"thermal_iterations"`
	TalusAngle        float64 `json:"talus_angle"`

	HydraulicDroplets   int     `json:"hydraulic_droplets"`
	HydraulicMaxSteps   int     `json:"hydraulic_max_steps"`
	Inertia             float64 `json:"inertia"`
	Capacity            float64 `json:"capacity"`
	ErosionRate         float64 `json:"erosion_rate"`
	DepositionRate      float64 `json:"deposition_rate"`
	Evaporation         float64 `json:"evaporation"`
	MinWaterVolume      float64 `json:"min_water_volume"`
}

// DetailConfig parameterizes fBm layering plus optional erosion
// (spec §4.4).
type DetailConfig struct {
	MediumNoiseStrength float64        `json:"medium_noise_strength"`
	DetailNoiseStrength float64        `json:"detail_noise_strength"`
	Erosion             *ErosionConfig `json:"erosion,omitempty"`
}

// FeaturesConfig parameterizes connected-component cleanup (spec §4.5).
type FeaturesConfig struct {
	EnableFeatureCleanup bool   `json:"enable_feature_cleanup"`
	MinIslandSize        uint16 `json:"min_island_size"`
	MinLakeSize          uint16 `json:"min_lake_size"`
	CoastlineSmoothing   uint8  `json:"coastline_smoothing"`
}

// HydrologyConfig parameterizes flow routing and river tracing
// (spec §4.6).
type HydrologyConfig struct {
	RiverThreshold uint16 `json:"river_threshold"`
	EnableLakes    bool   `json:"enable_lakes"`
}

// ClimateConfig parameterizes temperature and precipitation (spec §4.7).
type ClimateConfig struct {
	WindDirectionRadians float64 `json:"wind_direction_radians"`
	MaxAltitudeKM        float64 `json:"max_altitude_km"`
}

// StageSet is a bit-set of which stages run, for partial-pipeline runs
// (spec §6 stages_enabled).
type StageSet uint16

const (
	StageBitMesh StageSet = 1 << iota
	StageBitElevation
	StageBitDetail
	StageBitFeatures
	StageBitHydrology
	StageBitClimate
	StageBitBiomes
	StageBitCleanup

	StageBitAll = StageBitMesh | StageBitElevation | StageBitDetail |
		StageBitFeatures | StageBitHydrology | StageBitClimate |
		StageBitBiomes | StageBitCleanup
)

func (s StageSet) Has(bit StageSet) bool { return s&bit != 0 }

// GenerationConfig is the single config record fed to the pipeline
// (spec §6).
type GenerationConfig struct {
	Seed        uint64 `json:"seed"`
	Width       uint32 `json:"width"`
	Height      uint32 `json:"height"`
	CellSpacing uint32 `json:"cell_spacing"`
	SeaLevel    uint8  `json:"sea_level"`

	ElevationMode ElevationMode   `json:"elevation_mode"`
	TemplateName  string          `json:"template_name,omitempty"`
	TemplateText  string          `json:"template_text,omitempty"`
	Tectonic      TectonicConfig  `json:"tectonic,omitempty"`

	Detail    DetailConfig    `json:"detail"`
	Features  FeaturesConfig  `json:"features"`
	Hydrology HydrologyConfig `json:"hydrology"`
	Climate   ClimateConfig   `json:"climate"`

	StagesEnabled StageSet `json:"stages_enabled"`

	// MaxWorkers caps the data-parallel worker pool used inside a stage
	// (spec §5); 0 means runtime.GOMAXPROCS(0).
	MaxWorkers int `json:"max_workers,omitempty"`
}

// Default returns a GenerationConfig with the spec's documented defaults
// applied (sea level 20, jitter 0.45 handled in internal/mesh, all
// stages enabled).
func Default() GenerationConfig {
	return GenerationConfig{
		SeaLevel:      20,
		ElevationMode: ElevationTemplate,
		Detail: DetailConfig{
			MediumNoiseStrength: 1,
			DetailNoiseStrength: 1,
		},
		Features: FeaturesConfig{
			EnableFeatureCleanup: true,
			MinIslandSize:        3,
			MinLakeSize:          2,
			CoastlineSmoothing:   1,
		},
		Hydrology: HydrologyConfig{
			RiverThreshold: 100,
			EnableLakes:    true,
		},
		Climate: ClimateConfig{
			WindDirectionRadians: 0,
			MaxAltitudeKM:        8.8,
		},
		StagesEnabled: StageBitAll,
	}
}
