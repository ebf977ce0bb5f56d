package climate

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
	m, err := mesh.Build(mesh.Params{Width: 200, Height: 200, Spacing: 10, Jitter: mesh.DefaultJitter}, r)
	require.NoError(t, err)
	return m
}

func TestDistanceToWaterIsZeroAtWaterAndGrows(t *testing.T) {
	m := buildTestMesh(t, 1)
	n := m.N()
	isWater := make([]bool, n)
	isWater[0] = true

	dist := distanceToWater(m, isWater)
	assert.Equal(t, 0, dist[0])
	for _, nb := range m.Neighbors[0] {
		assert.Equal(t, 1, dist[nb])
	}
}

func TestRunTemperatureColderAtPoles(t *testing.T) {
	m := buildTestMesh(t, 2)
	n := m.N()
	state := mapsystem.New(m)
	state.Stage = mapsystem.StageHydrology
	for i := range state.Cells.Height {
		state.Cells.Height[i] = 50
	}

	require.NoError(t, Run(state, config.ClimateConfig{MaxAltitudeKM: 8.8}))

	var equator, pole int8
	var foundEquator, foundPole bool
	for i, p := range m.Points {
		norm := p.Y / m.Height
		if !foundEquator && norm > 0.45 && norm < 0.55 {
			equator = state.Cells.Temperature[i]
			foundEquator = true
		}
		if !foundPole && (norm < 0.05 || norm > 0.95) {
			pole = state.Cells.Temperature[i]
			foundPole = true
		}
	}
	require.True(t, foundEquator)
	require.True(t, foundPole)
	assert.Greater(t, equator, pole)
	_ = n
}

func TestRunTemperatureColderAtHighAltitude(t *testing.T) {
	m := buildTestMesh(t, 3)
	n := m.N()
	state := mapsystem.New(m)
	state.Stage = mapsystem.StageHydrology
	for i := range state.Cells.Height {
		state.Cells.Height[i] = 20
	}
	state.Cells.Height[0] = 255

	require.NoError(t, Run(state, config.ClimateConfig{MaxAltitudeKM: 8.8}))
	assert.Less(t, state.Cells.Temperature[0], int8(30))
	_ = n
}

func TestRunPrecipitationHigherNearSea(t *testing.T) {
	m := buildTestMesh(t, 4)
	n := m.N()
	state := mapsystem.New(m)
	state.Stage = mapsystem.StageHydrology
	for i := range state.Cells.Height {
		state.Cells.Height[i] = 50
	}
	isWater := make([]bool, n)
	isWater[0] = true
	state.Cells.IsWater = isWater

	require.NoError(t, Run(state, config.ClimateConfig{}))

	near := state.Cells.Precipitation[m.Neighbors[0][0]]
	var far uint8
	farDist := 0
	dist := distanceToWater(m, isWater)
	for i, d := range dist {
		if d > farDist {
			farDist = d
			far = state.Cells.Precipitation[i]
		}
	}
	assert.GreaterOrEqual(t, near, far)
}

func TestRunRequiresHydrologyStage(t *testing.T) {
	m := buildTestMesh(t, 5)
	state := mapsystem.New(m)
	state.Stage = mapsystem.StageFeatures

	err := Run(state, config.ClimateConfig{})
	assert.Error(t, err)
}
