package mesh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestMesh(t *testing.T, seed int64) *Mesh {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	m, err := Build(Params{Width: 100, Height: 100, Spacing: 10, Jitter: 0.45}, r)
	require.NoError(t, err)
	return m
}

func TestBuildProducesCells(t *testing.T) {
	m := buildTestMesh(t, 1)
	assert.Greater(t, m.N(), 0)
	assert.NotEmpty(t, m.Triangles)
}

func TestNeighborsAreMutual(t *testing.T) {
	m := buildTestMesh(t, 2)
	for i, neighbors := range m.Neighbors {
		for _, j := range neighbors {
			assert.Contains(t, m.Neighbors[j], i)
		}
	}
}

func TestVoronoiPolygonsHaveAtLeastThreeVertices(t *testing.T) {
	m := buildTestMesh(t, 3)
	for i := range m.Points {
		poly := m.CellPolygon(i)
		if len(poly) == 0 {
			continue // degenerate boundary cell, allowed
		}
		assert.GreaterOrEqual(t, len(poly), 3)
	}
}

func TestNearestCellFindsClosestSite(t *testing.T) {
	m := buildTestMesh(t, 4)
	for i, p := range m.Points {
		nearest := m.NearestCell(p)
		assert.Equal(t, i, nearest, "site %d should be its own nearest cell", i)
	}
}

func TestBuildRejectsInvalidExtent(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	_, err := Build(Params{Width: 0, Height: 100, Spacing: 10}, r)
	assert.Error(t, err)
}

func TestBuildIsDeterministic(t *testing.T) {
	r1 := rand.New(rand.NewSource(99))
	r2 := rand.New(rand.NewSource(99))

	m1, err := Build(Params{Width: 50, Height: 50, Spacing: 8, Jitter: 0.4}, r1)
	require.NoError(t, err)
	m2, err := Build(Params{Width: 50, Height: 50, Spacing: 8, Jitter: 0.4}, r2)
	require.NoError(t, err)

	require.Equal(t, m1.N(), m2.N())
	for i := range m1.Points {
		assert.Equal(t, m1.Points[i], m2.Points[i])
	}
}

func TestCellsWithinRadius(t *testing.T) {
	m := buildTestMesh(t, 6)
	center := Point{50, 50}
	cells := m.CellsWithinRadius(center, 15)
	assert.NotEmpty(t, cells)
	for _, i := range cells {
		d := m.Points[i].sub(center)
		assert.LessOrEqual(t, d.dot(d), 15.0*15.0+1e-6)
	}
}
