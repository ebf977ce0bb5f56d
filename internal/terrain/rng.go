package terrain

import "math/rand"

// mathRandSource adapts a *rand.Rand (itself produced by
// internal/randstream.Substream) to the randSource interface.
type mathRandSource struct{ r *rand.Rand }

func newRandSource(r *rand.Rand) randSource { return mathRandSource{r: r} }

func (s mathRandSource) jitter(lo, hi float64) float64 { return lo + s.r.Float64()*(hi-lo) }
func (s mathRandSource) float64() float64              { return s.r.Float64() }
func (s mathRandSource) intn(n int) int                { return s.r.Intn(n) }
