package features

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hemifuture/terragen/internal/config"
	"github.com/Hemifuture/terragen/internal/mapsystem"
	"github.com/Hemifuture/terragen/internal/mesh"
)

func buildTestMesh(t *testing.T, seed int64) *mesh.Mesh {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	m, err := mesh.Build(mesh.Params{Width: 100, Height: 100, Spacing: 10, Jitter: mesh.DefaultJitter}, r)
	require.NoError(t, err)
	return m
}

func TestClassify(t *testing.T) {
	height := []float64{10, 20, 30}
	isWater := Classify(height, 20)
	assert.True(t, isWater[0])
	assert.False(t, isWater[1]) // exactly sea level is land, not water
	assert.False(t, isWater[2])
}

func TestLabelSeparatesIslandFromOcean(t *testing.T) {
	m := buildTestMesh(t, 1)
	n := m.N()
	isWater := make([]bool, n)
	for i := range isWater {
		isWater[i] = true
	}
	// Carve a one-cell land region at the first interior cell.
	interior := -1
	for i := 0; i < n; i++ {
		if !m.OnBoundary(i) {
			interior = i
			break
		}
	}
	require.GreaterOrEqual(t, interior, 0)
	isWater[interior] = false

	regionOf, regions := label(m, isWater)
	landRegion := regionOf[interior]
	assert.False(t, regions[landRegion].isWater)
	assert.False(t, regions[landRegion].boundary)

	// every other cell should be one boundary-touching ocean region
	for i := 0; i < n; i++ {
		if i == interior {
			continue
		}
		assert.True(t, regions[regionOf[i]].isWater)
	}
}

func TestSubmergeIslandsRemovesSmallLand(t *testing.T) {
	m := buildTestMesh(t, 2)
	n := m.N()
	isWater := make([]bool, n)
	for i := range isWater {
		isWater[i] = true
	}
	var tinyIsland int
	for i := 0; i < n; i++ {
		if !m.OnBoundary(i) {
			tinyIsland = i
			break
		}
	}
	isWater[tinyIsland] = false

	_, regions := label(m, isWater)
	changed := submergeIslands(isWater, regions, 3)
	assert.True(t, changed)
	assert.True(t, isWater[tinyIsland])
}

func TestFillLakesRaisesSmallLakeToRingMinimum(t *testing.T) {
	m := buildTestMesh(t, 3)
	n := m.N()
	isWater := make([]bool, n)
	height := make([]float64, n)
	for i := range height {
		height[i] = 50
	}
	var tinyLake int
	for i := 0; i < n; i++ {
		if !m.OnBoundary(i) {
			tinyLake = i
			break
		}
	}
	isWater[tinyLake] = true
	height[tinyLake] = 5

	_, regions := label(m, isWater)
	changed := fillLakes(m, isWater, height, regions, 2)
	assert.True(t, changed)
	assert.False(t, isWater[tinyLake])
	assert.InDelta(t, 50, height[tinyLake], 1e-9)
}

func TestSmoothCoastlineFlipsSurroundedCell(t *testing.T) {
	m := buildTestMesh(t, 4)
	n := m.N()
	isWater := make([]bool, n)
	height := make([]float64, n)
	for i := range height {
		height[i] = 50
	}
	var target int
	for i := 0; i < n; i++ {
		if len(m.Neighbors[i]) >= 4 {
			target = i
			break
		}
	}
	isWater[target] = true
	for _, nb := range m.Neighbors[target] {
		isWater[nb] = false
	}

	smoothCoastline(m, isWater, height, 1)
	assert.False(t, isWater[target])
}

func TestRunProducesFeatureTablesCoveringEveryCell(t *testing.T) {
	m := buildTestMesh(t, 5)
	n := m.N()
	state := mapsystem.New(m)
	state.Stage = mapsystem.StageDetail

	r := rand.New(rand.NewSource(5))
	for i := 0; i < n; i++ {
		state.Cells.Height[i] = r.Float64() * 100
	}

	cfg := config.FeaturesConfig{
		EnableFeatureCleanup: true,
		MinIslandSize:        3,
		MinLakeSize:          2,
		CoastlineSmoothing:   1,
	}
	err := Run(state, cfg, 20)
	require.NoError(t, err)

	assert.Equal(t, mapsystem.StageFeatures, state.Stage)
	assert.NotEmpty(t, state.Oceans)

	total := 0
	for _, l := range state.Landmasses {
		total += len(l.Cells)
	}
	for _, l := range state.Lakes {
		total += len(l.Cells)
		assert.GreaterOrEqual(t, len(l.Cells), int(cfg.MinLakeSize))
	}
	for _, o := range state.Oceans {
		total += len(o.Cells)
	}
	assert.Equal(t, n, total)
}

func TestRunRequiresDetailStage(t *testing.T) {
	m := buildTestMesh(t, 6)
	state := mapsystem.New(m)
	state.Stage = mapsystem.StageElevation

	err := Run(state, config.FeaturesConfig{}, 20)
	assert.Error(t, err)
}
