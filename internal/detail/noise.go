// Package detail applies constrained fBm noise layering and optional
// thermal/hydraulic erosion on top of an elevation field already produced
// by the Elevation stage (spec §4.4).
package detail

import (
	"github.com/aquilax/go-perlin"

	"github.com/Hemifuture/terragen/internal/randstream"
)

// fbmPass distinguishes the two fBm passes so they don't draw from the
// same substream local-id range (both run at randstream.StageDetail).
type fbmPass uint64

const (
	mediumScalePass fbmPass = 0
	smallScalePass  fbmPass = 1
)

// newFBMLayers builds octaves independent single-layer Perlin generators,
// each seeded from its own substream, so summing them with per-layer
// amplitude/frequency gives the fBm value spec §4.4 describes ("each
// layer is seeded independently from the master seed"). n=1 on each
// underlying perlin.Perlin disables that library's own internal octave
// compounding, since this package does the octave summation itself.
func newFBMLayers(masterSeed uint64, pass fbmPass, octaves int) []*perlin.Perlin {
	layers := make([]*perlin.Perlin, octaves)
	for k := 0; k < octaves; k++ {
		localID := uint64(pass)*1000 + uint64(k)
		r := randstream.Substream(masterSeed, randstream.StageDetail, localID)
		layers[k] = perlin.NewPerlin(2, 2, 1, r.Int63())
	}
	return layers
}

// fbm sums octaves layers of 2D Perlin noise at (x,y), scaled by
// baseFreq*lacunarity^k in frequency and persistence^k in amplitude
// (spec §4.4).
func fbm(layers []*perlin.Perlin, x, y, baseFreq, persistence, lacunarity float64) float64 {
	var sum float64
	freq := baseFreq
	amp := 1.0
	for _, layer := range layers {
		sum += layer.Noise2D(x*freq, y*freq) * amp
		freq *= lacunarity
		amp *= persistence
	}
	return sum
}
