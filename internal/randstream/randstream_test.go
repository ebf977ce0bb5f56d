package randstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstreamDeterministic(t *testing.T) {
	a := Substream(42, StageTerrain, 7)
	b := Substream(42, StageTerrain, 7)
	assert.Equal(t, a.Int63(), b.Int63())
}

func TestSubstreamDiffersByLocalID(t *testing.T) {
	a := Substream(42, StageTerrain, 1)
	b := Substream(42, StageTerrain, 2)
	assert.NotEqual(t, a.Int63(), b.Int63())
}

func TestSubstreamDiffersByStage(t *testing.T) {
	a := Substream(42, StageMesh, 1)
	b := Substream(42, StageHydrology, 1)
	assert.NotEqual(t, a.Int63(), b.Int63())
}

func TestJitterBounds(t *testing.T) {
	r := Substream(1, StageTerrain, 0)
	for i := 0; i < 1000; i++ {
		v := Jitter(r, 0.9, 1.1)
		assert.GreaterOrEqual(t, v, 0.9)
		assert.Less(t, v, 1.1)
	}
}
