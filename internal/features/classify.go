// Package features derives connected land/water regions from the
// elevation field: water/land classification, BFS flood-fill labeling
// into Landmass/Lake/Ocean, size-threshold cleanup, and coastline
// smoothing (spec §4.5).
package features

// Classify marks each cell water iff its height is below seaLevel
// (spec §4.5).
func Classify(height []float64, seaLevel float64) []bool {
	isWater := make([]bool, len(height))
	for i, h := range height {
		isWater[i] = h < seaLevel
	}
	return isWater
}
