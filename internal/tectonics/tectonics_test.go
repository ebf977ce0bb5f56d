package tectonics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/mesh"
)

func buildTestMesh(t *testing.T, seed int64) *mesh.Mesh {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	m, err := mesh.Build(mesh.Params{Width: 200, Height: 200, Spacing: 10, Jitter: mesh.DefaultJitter}, r)
	require.NoError(t, err)
	return m
}

func TestAssignPlatesCoversEveryCell(t *testing.T) {
	m := buildTestMesh(t, 1)
	r := rand.New(rand.NewSource(1))
	plateOf, plates, err := AssignPlates(m, 6, 0.3, r)
	require.NoError(t, err)
	require.Len(t, plateOf, m.N())
	require.Len(t, plates, 6)

	for _, p := range plateOf {
		assert.GreaterOrEqual(t, p, 0)
		assert.Less(t, p, 6)
	}
}

func TestAssignPlatesRejectsTooFewPlates(t *testing.T) {
	m := buildTestMesh(t, 2)
	r := rand.New(rand.NewSource(2))
	_, _, err := AssignPlates(m, 1, 0.3, r)
	assert.Error(t, err)
}

func TestAssignPlatesContinentalRatio(t *testing.T) {
	m := buildTestMesh(t, 3)
	r := rand.New(rand.NewSource(3))
	_, plates, err := AssignPlates(m, 10, 0.3, r)
	require.NoError(t, err)

	continental := 0
	for _, p := range plates {
		if p.Type == Continental {
			continental++
		}
	}
	assert.Equal(t, 3, continental)
}

func TestClassifyConvergent(t *testing.T) {
	a := Plate{ID: 0, Centroid: mesh.Point{X: 0, Y: 0}, DirectionRadians: 0, Speed: 1.5}
	b := Plate{ID: 1, Centroid: mesh.Point{X: 10, Y: 0}, DirectionRadians: 3.14159265, Speed: 1.5}
	boundary := Classify(a, b)
	assert.Equal(t, Convergent, boundary.Kind)
	assert.Greater(t, boundary.Approach, 0.3)
}

func TestClassifyDivergent(t *testing.T) {
	a := Plate{ID: 0, Centroid: mesh.Point{X: 0, Y: 0}, DirectionRadians: 3.14159265, Speed: 1.5}
	b := Plate{ID: 1, Centroid: mesh.Point{X: 10, Y: 0}, DirectionRadians: 0, Speed: 1.5}
	boundary := Classify(a, b)
	assert.Equal(t, Divergent, boundary.Kind)
	assert.Less(t, boundary.Approach, -0.3)
}

func TestClassifyTransform(t *testing.T) {
	a := Plate{ID: 0, Centroid: mesh.Point{X: 0, Y: 0}, DirectionRadians: 1.5707963, Speed: 1.5}
	b := Plate{ID: 1, Centroid: mesh.Point{X: 10, Y: 0}, DirectionRadians: -1.5707963, Speed: 1.5}
	boundary := Classify(a, b)
	assert.Equal(t, Transform, boundary.Kind)
}

func TestSubductingPlateTieWhenDensitiesMatch(t *testing.T) {
	a := Plate{ID: 0, Type: Continental}
	b := Plate{ID: 1, Type: Continental}
	_, _, tie := subductingPlate(a, b)
	assert.True(t, tie)
}

func TestSubductingPlateDenserSubducts(t *testing.T) {
	oceanic := Plate{ID: 0, Type: Oceanic}
	continental := Plate{ID: 1, Type: Continental}
	subducting, overriding, tie := subductingPlate(oceanic, continental)
	assert.False(t, tie)
	assert.Equal(t, oceanic.ID, subducting)
	assert.Equal(t, continental.ID, overriding)
}

func TestSimulateProducesFiniteHeights(t *testing.T) {
	m := buildTestMesh(t, 5)
	r := rand.New(rand.NewSource(5))
	plateOf, plates, err := AssignPlates(m, 5, 0.3, r)
	require.NoError(t, err)

	cfg := config.TectonicConfig{
		PlateCount:          5,
		ContinentalRatio:    0.3,
		Iterations:          20,
		CollisionUpliftRate: 1.0,
		SubductionRate:      1.0,
		RiftDepthRate:       1.0,
		IsostaticRate:       0.1,
		BoundaryWidth:       5,
		NoiseStrength:       0.05,
	}

	height := make([]float64, m.N())
	Simulate(m, plateOf, plates, cfg, height, r)

	for _, h := range height {
		assert.False(t, h != h, "height must never be NaN")
	}
}

func TestNormalizeStretchesToFullRange(t *testing.T) {
	height := []float64{-50, 0, 100}
	Normalize(height)
	assert.Equal(t, 0.0, height[0])
	assert.Equal(t, 255.0, height[2])
}

func TestCollapseMountainsDampensExcess(t *testing.T) {
	height := []float64{100, 9000, 20000}
	CollapseMountains(height, 8800)

	assert.Equal(t, 100.0, height[0])
	assert.Greater(t, height[2], 8800.0)
	assert.Less(t, height[2], 20000.0)
}

func TestCollapseMountainsDisabledAtZeroCeiling(t *testing.T) {
	height := []float64{100, 9000}
	CollapseMountains(height, 0)
	assert.Equal(t, []float64{100, 9000}, height)
}

func TestSeismicScoreOrdering(t *testing.T) {
	assert.Greater(t, SeismicScore(Convergent), SeismicScore(Transform))
	assert.Greater(t, SeismicScore(Transform), SeismicScore(Divergent))
}

func TestBfsRingRespectsMaxDistance(t *testing.T) {
	neighbors := [][]int{{1}, {0, 2}, {1, 3}, {2}}
	rings := bfsRing(neighbors, 0, 2)
	assert.Equal(t, 0, rings[0])
	assert.Equal(t, 1, rings[1])
	assert.Equal(t, 2, rings[2])
	_, ok := rings[3]
	assert.False(t, ok)
}
