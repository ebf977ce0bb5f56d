// Package randstream provides the splittable deterministic random source
// used throughout the generation pipeline. Every stage derives its
// randomness from the master seed plus a stage id and a local id, never
// from the global math/rand source and never from a clock, so that two
// runs with the same GenerationConfig produce byte-identical output
// regardless of worker count or scheduling.
package randstream

import (
	"math/rand"
)

// Stage identifies which pipeline stage is requesting a substream. Values
// are stable across releases since they are mixed into the substream hash.
type Stage uint32

const (
	StageMesh      Stage = 1
	StageTerrain   Stage = 2
	StageTectonics Stage = 3
	StageDetail    Stage = 4
	StageErosion   Stage = 5
	StageFeatures  Stage = 6
	StageHydrology Stage = 7
	StageClimate   Stage = 8
	StageBiome     Stage = 9
	StageCleanup   Stage = 10
)

// splitmix64 advances a 64-bit state and returns a well-mixed output. It is
// the standard fixed-point mixing function used to turn a linear counter
// into a stream of well-distributed seeds; it is not itself a PRNG, only
// the substream-seed derivation step.
func splitmix64(state uint64) uint64 {
	state += 0x9E3779B97F4A7C15
	z := state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Substream derives the seed for one independent random stream identified
// by (masterSeed, stage, localID). localID distinguishes parallel callers
// within a stage: command index, blob index, BFS wave, or worker shard.
// Same inputs always yield the same seed; different localIDs yield
// statistically independent streams suitable for concurrent use.
func Substream(masterSeed uint64, stage Stage, localID uint64) *rand.Rand {
	h := splitmix64(masterSeed)
	h = splitmix64(h ^ uint64(stage))
	h = splitmix64(h ^ localID)
	h = splitmix64(h ^ (localID >> 32))
	// #nosec G404 -- determinism, not cryptographic security, is required here.
	return rand.New(rand.NewSource(int64(h)))
}

// Jitter returns a uniform value in [lo, hi) drawn from r, used for the
// per-neighbor multiplicative jitter in BFS blob diffusion (spec range
// 0.9..1.1) and similar bounded-noise needs.
func Jitter(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
