package config

import "github.com/Hemifuture/terragen/internal/apperr"

// Validate checks a GenerationConfig against the constraints implied by
// spec §3/§4/§6, returning an *apperr.Error (KindInvalidConfig) for the
// first violation found; nothing is mutated before this check runs
// (spec §7).
func (c GenerationConfig) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return apperr.InvalidConfig("width/height", "map extent must be positive")
	}
	if c.CellSpacing == 0 {
		return apperr.InvalidConfig("cell_spacing", "must be positive")
	}
	if c.CellSpacing > c.Width || c.CellSpacing > c.Height {
		return apperr.InvalidConfig("cell_spacing", "must not exceed map extent")
	}

	switch c.ElevationMode {
	case ElevationTemplate:
		if c.TemplateName == "" && c.TemplateText == "" {
			return apperr.InvalidConfig("elevation_mode", "template mode requires template_name or template_text")
		}
	case ElevationPlates:
		if err := c.Tectonic.validate(); err != nil {
			return err
		}
	default:
		return apperr.InvalidConfig("elevation_mode", "must be \"template\" or \"plates\"")
	}

	if c.Detail.MediumNoiseStrength < 0 || c.Detail.DetailNoiseStrength < 0 {
		return apperr.InvalidConfig("detail", "noise strengths must be non-negative")
	}
	if e := c.Detail.Erosion; e != nil {
		if e.ThermalIterations < 0 {
			return apperr.InvalidConfig("detail.erosion.thermal_iterations", "must be non-negative")
		}
		if e.HydraulicDroplets < 0 {
			return apperr.InvalidConfig("detail.erosion.hydraulic_droplets", "must be non-negative")
		}
	}

	if c.Features.CoastlineSmoothing > 10 {
		return apperr.InvalidConfig("features.coastline_smoothing", "unreasonably large smoothing pass count")
	}

	if c.StagesEnabled == 0 {
		return apperr.InvalidConfig("stages_enabled", "must enable at least one stage")
	}

	return nil
}

func (t TectonicConfig) validate() error {
	if t.PlateCount < 2 {
		return apperr.InvalidConfig("tectonic.plate_count", "must be at least 2")
	}
	if t.ContinentalRatio < 0 || t.ContinentalRatio > 1 {
		return apperr.InvalidConfig("tectonic.continental_ratio", "must be in [0,1]")
	}
	if t.Iterations <= 0 {
		return apperr.InvalidConfig("tectonic.iterations", "must be positive")
	}
	if t.BoundaryWidth <= 0 {
		return apperr.InvalidConfig("tectonic.boundary_width", "must be positive")
	}
	return nil
}
