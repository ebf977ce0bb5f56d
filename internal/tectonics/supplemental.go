package tectonics

// CollapseMountains dampens any cell whose height exceeds ceiling,
// modeling gravitational mountain collapse instead of a hard clamp
// (SPEC_FULL.md §4.9 "mountain-collapse relaxation"), grounded on
// geography/crust.go's SimulateMountainCollapse. A zero ceiling disables
// the pass.
func CollapseMountains(height []float64, ceiling float64) {
	if ceiling <= 0 {
		return
	}
	for i, h := range height {
		if h <= ceiling {
			continue
		}
		excess := h - ceiling
		height[i] = ceiling + excess*0.5
	}
}

// SeismicScore returns the expected earthquake intensity for a boundary
// kind (SPEC_FULL.md §4.9 "seismic activity scoring"), grounded on
// geography/seismology.go's CalculateSeismicActivity. It is read-only
// and derived: it is never written back into the height field.
func SeismicScore(k Kind) float64 {
	switch k {
	case Convergent:
		return 9.5
	case Transform:
		return 8.0
	case Divergent:
		return 6.5
	default:
		return 5.0
	}
}
