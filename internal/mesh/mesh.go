// Package mesh builds and represents the immutable cell mesh every
// pipeline stage operates over: a jittered point set, its Delaunay
// triangulation, the Voronoi dual, per-cell neighbor adjacency, and a
// grid-bucket spatial index for nearest-cell queries.
package mesh

import "math"

// Point is a 2D position in map extent coordinates.
type Point struct {
	X, Y float64
}

func (p Point) sub(o Point) Point   { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) dot(o Point) float64 { return p.X*o.X + p.Y*o.Y }
func (p Point) length() float64     { return math.Sqrt(p.dot(p)) }

// Triangle is a vertex-index triple into Mesh.Points, ordered CCW.
type Triangle [3]int

// CellRange is a CSR-style (offset, length) pair into Mesh.VoronoiVertices
// describing cell i's polygon.
type CellRange struct {
	Offset, Length int
}

// Mesh is immutable once built. It is created exactly once per seed and
// shared read-only across every pipeline stage; only the per-cell and
// per-edge field arrays owned by individual stages (see mapsystem) change
// during generation.
type Mesh struct {
	Width, Height float64

	// Points is the jittered-lattice site for each cell, length N.
	Points []Point

	// Triangles is the Delaunay triangulation of Points.
	Triangles []Triangle

	// Neighbors[i] holds the set of cell indices sharing a Delaunay edge
	// with cell i, sorted ascending. Guaranteed mutual: j is in
	// Neighbors[i] iff i is in Neighbors[j].
	Neighbors [][]int

	// VoronoiVertices is the flat list of Voronoi polygon vertices
	// (triangle circumcenters), indexed via CellVertexRanges.
	VoronoiVertices []Point

	// CellVertexRanges[i] locates cell i's CCW-ordered polygon within
	// VoronoiVertices.
	CellVertexRanges []CellRange

	index *gridIndex
}

// N returns the number of cells (sites) in the mesh.
func (m *Mesh) N() int { return len(m.Points) }

// CellPolygon returns the Voronoi polygon vertices for cell i.
func (m *Mesh) CellPolygon(i int) []Point {
	r := m.CellVertexRanges[i]
	return m.VoronoiVertices[r.Offset : r.Offset+r.Length]
}

// NearestCell returns the index of the cell whose site is nearest to p,
// using the grid-bucket spatial index for expected O(1) lookup.
func (m *Mesh) NearestCell(p Point) int {
	return m.index.nearest(m.Points, p)
}

// CellsWithinRadius returns the indices of all cells whose site lies
// within radius of center, via the spatial index.
func (m *Mesh) CellsWithinRadius(center Point, radius float64) []int {
	return m.index.withinRadius(m.Points, center, radius)
}

// OnBoundary reports whether cell i's site lies on the map edge. The
// jittered lattice anchors boundary points exactly on [0,W]x[0,H]
// (see jitteredLattice), so an exact comparison is sufficient.
func (m *Mesh) OnBoundary(i int) bool {
	p := m.Points[i]
	return p.X == 0 || p.X == m.Width || p.Y == 0 || p.Y == m.Height
}
