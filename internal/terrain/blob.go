package terrain

import "math"

// blobPowerAnchors are the log-linear interpolation anchors for the BFS
// blob-diffusion falloff exponent p (spec §4.2 "Blob power"): higher
// mesh cell count N needs a slower falloff (p closer to 1) to keep
// absolute blob sizes comparable across resolutions.
var blobPowerAnchors = []powerAnchor{
	{n: 1000, power: 0.93},
	{n: 10000, power: 0.98},
	{n: 100000, power: 0.9973},
}

// linePowerAnchors are the equivalent anchors for the Range/Trough
// path-seeded diffusion's line-power q.
var linePowerAnchors = []powerAnchor{
	{n: 1000, power: 0.93},
	{n: 10000, power: 0.98},
	{n: 100000, power: 0.9973},
}

type powerAnchor struct {
	n     int
	power float64
}

// interpolatePower log-linearly interpolates power across anchors by
// cell count n, clamped at the ends.
func interpolatePower(anchors []powerAnchor, n int) float64 {
	if n <= anchors[0].n {
		return anchors[0].power
	}
	last := len(anchors) - 1
	if n >= anchors[last].n {
		return anchors[last].power
	}

	for i := 0; i < last; i++ {
		lo, hi := anchors[i], anchors[i+1]
		if n >= lo.n && n <= hi.n {
			logLo, logHi := math.Log(float64(lo.n)), math.Log(float64(hi.n))
			t := (math.Log(float64(n)) - logLo) / (logHi - logLo)
			return lo.power + t*(hi.power-lo.power)
		}
	}
	return anchors[last].power
}

// BlobPower returns the BFS-diffusion falloff exponent for a mesh of n
// cells (spec §4.2).
func BlobPower(n int) float64 { return interpolatePower(blobPowerAnchors, n) }

// LinePower returns the path-seeded diffusion falloff exponent for a mesh
// of n cells (spec §4.2 "Range/Trough growth").
func LinePower(n int) float64 { return interpolatePower(linePowerAnchors, n) }

// diffuse grows a BFS blob from one or more seed cells, each seeded with
// initial delta blobHeight, spreading delta[n] = delta[q]^p * u to each
// unvisited neighbor (u uniform in [0.9,1.1]), continuing while
// delta[n] > 1. It returns the full per-cell delta array (length N),
// zero outside the blob's support (spec §4.2 "Blob growth (BFS diffusion)").
//
// seeds may contain more than one cell: Range/Trough treat the whole
// traced path as a multi-seed frontier (spec §4.2 "Range/Trough growth").
func diffuse(neighbors [][]int, seeds []int, blobHeight, power float64, rng randSource) []float64 {
	n := len(neighbors)
	delta := make([]float64, n)
	visited := make([]bool, n)

	queue := make([]int, 0, len(seeds))
	for _, s := range seeds {
		if visited[s] {
			continue
		}
		delta[s] = blobHeight
		visited[s] = true
		queue = append(queue, s)
	}

	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]

		for _, nb := range neighbors[q] {
			if visited[nb] {
				continue
			}
			u := rng.jitter(0.9, 1.1)
			d := math.Pow(delta[q], power) * u
			delta[nb] = d
			visited[nb] = true
			if d > 1 {
				queue = append(queue, nb)
			}
		}
	}

	return delta
}

// randSource is the minimal randomness surface the terrain package
// needs, satisfied by *rand.Rand via the randstream adapter (see rng.go)
// so blob diffusion can be unit-tested with a deterministic fake.
type randSource interface {
	jitter(lo, hi float64) float64
	float64() float64
	intn(n int) int
}
