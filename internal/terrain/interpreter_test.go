package terrain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Hemifuture/terragen/internal/mesh"
)

func TestApplyAddMultiply(t *testing.T) {
	h := []float64{0, 10, 20}
	applyAdd(h, AddCmd{Value: 5})
	assert.Equal(t, []float64{5, 15, 25}, h)

	applyMultiply(h, MultiplyCmd{Factor: 2})
	assert.Equal(t, []float64{10, 30, 50}, h)
}

func TestApplyNormalizeFlatField(t *testing.T) {
	h := []float64{7, 7, 7}
	applyNormalize(h)
	assert.Equal(t, []float64{0, 0, 0}, h)
}

func TestApplyMountainPeakExceedsEdges(t *testing.T) {
	m := buildTestMesh(t, 11)
	height := make([]float64, m.N())
	applyMountain(m, height, MountainCmd{Height: 200, X: 0.5, Y: 0.5, Radius: 0.3})

	center := m.NearestCell(mesh.Point{X: m.Width / 2, Y: m.Height / 2})
	corner := m.NearestCell(mesh.Point{X: 0, Y: 0})
	assert.Greater(t, height[center], height[corner])
}

func TestApplyStraitLowersBand(t *testing.T) {
	m := buildTestMesh(t, 12)
	height := make([]float64, m.N())
	applyStrait(m, height, StraitCmd{Width: 0.1, Direction: StraitHorizontal, Position: 0.5, Depth: 50})

	mid := m.NearestCell(mesh.Point{X: m.Width / 2, Y: m.Height / 2})
	far := m.NearestCell(mesh.Point{X: m.Width / 2, Y: 0})
	assert.Less(t, height[mid], 0.0)
	assert.GreaterOrEqual(t, height[far], height[mid])
}

func TestApplySmoothReducesVariance(t *testing.T) {
	m := buildTestMesh(t, 13)
	n := m.N()
	r := rand.New(rand.NewSource(99))
	height := make([]float64, n)
	for i := range height {
		height[i] = r.Float64() * 100
	}

	before := variance(height)
	applySmooth(m, height, SmoothCmd{Iterations: 3})
	after := variance(height)

	assert.Less(t, after, before)
}

func variance(xs []float64) float64 {
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var v float64
	for _, x := range xs {
		d := x - mean
		v += d * d
	}
	return v / float64(len(xs))
}

func TestRunAppliesCommandsInOrder(t *testing.T) {
	m := buildTestMesh(t, 21)
	r := rand.New(rand.NewSource(21))
	cmds := []Command{
		AddCmd{Value: 10},
		MultiplyCmd{Factor: 2},
	}
	height := Run(m, cmds, r)
	for _, h := range height {
		assert.Equal(t, 20.0, h)
	}
}

func TestApplyMaskEdgeFadeDimsBorder(t *testing.T) {
	m := buildTestMesh(t, 31)
	height := make([]float64, m.N())
	for i := range height {
		height[i] = 100
	}
	applyMask(m, height, MaskCmd{Mode: MaskEdgeFade, Strength: 1})

	center := m.NearestCell(mesh.Point{X: m.Width / 2, Y: m.Height / 2})
	corner := m.NearestCell(mesh.Point{X: 0, Y: 0})
	assert.Greater(t, height[center], height[corner])
}
